package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
	pingLength = 60 * time.Millisecond
	// bounces closer together than this share one ping
	pingGap = 40 * time.Millisecond
)

// bounceSound plays a short ping for edge reflections.
type bounceSound struct {
	mu       sync.Mutex
	mixer    *beep.Mixer
	last     time.Time
	now      func() time.Time
	disabled bool
}

func newBounceSound() (*bounceSound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &bounceSound{mixer: &beep.Mixer{}, now: time.Now}
	speaker.Play(s.mixer)
	return s, nil
}

// Ping queues a ping pitched by axis: horizontal walls ring higher.
func (s *bounceSound) Ping(vertical bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return
	}
	now := s.now()
	if !s.last.IsZero() && now.Sub(s.last) < pingGap {
		return
	}
	s.last = now

	freq := 660.0
	if vertical {
		freq = 880
	}
	streamer := beep.Take(sampleRate.N(pingLength), newPingGenerator(sampleRate, freq))
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

func (s *bounceSound) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return
	}
	s.disabled = true
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// pingGenerator is a sine with a fast exponential decay.
type pingGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newPingGenerator(sr beep.SampleRate, freq float64) *pingGenerator {
	return &pingGenerator{sr: sr, freq: freq}
}

func (g *pingGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.2 * math.Exp(-t*40) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *pingGenerator) Err() error {
	return nil
}
