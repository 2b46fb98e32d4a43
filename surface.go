package main

import (
	"image"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/bouncer/common"
	"github.com/milk9111/bouncer/ecs"
	"github.com/milk9111/bouncer/ecs/render"
)

// spriteSurface draws every live handle's image onto an ebiten screen.
// Handles are written from the tick goroutine and read by Draw.
type spriteSurface struct {
	mu      sync.Mutex
	image   *ebiten.Image
	handles map[ecs.Entity]*ebitenHandle
	now     func() time.Time
}

// newSpriteSurface creates a surface that paints img for every handle.
func newSpriteSurface(img image.Image) *spriteSurface {
	return &spriteSurface{
		image:   ebiten.NewImageFromImage(img),
		handles: make(map[ecs.Entity]*ebitenHandle),
		now:     time.Now,
	}
}

// SetImage swaps the image painted for every handle.
func (s *spriteSurface) SetImage(img image.Image) {
	if img == nil {
		return
	}
	next := ebiten.NewImageFromImage(img)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = next
}

type ebitenHandle struct {
	render.Props
	id      ecs.Entity
	surface *spriteSurface

	// rotation easing
	fromRot  float64
	toRot    float64
	rotStart time.Time
	rotDur   time.Duration
}

func (s *spriteSurface) Create(id ecs.Entity) render.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &ebitenHandle{id: id, surface: s}
	s.handles[id] = h
	return h
}

// Len is the number of live handles.
func (s *spriteSurface) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// Draw paints handles in ascending z-order, ties broken by identity.
func (s *spriteSurface) Draw(screen *ebiten.Image) {
	if s == nil || screen == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	handles := make([]*ebitenHandle, 0, len(s.handles))
	for _, h := range s.handles {
		handles = append(handles, h)
	}
	sort.SliceStable(handles, func(i, j int) bool {
		if handles[i].ZIndex != handles[j].ZIndex {
			return handles[i].ZIndex < handles[j].ZIndex
		}
		return handles[i].id < handles[j].id
	})

	now := s.now()
	b := s.image.Bounds()
	imgW, imgH := float64(b.Dx()), float64(b.Dy())
	for _, h := range handles {
		if h.Width <= 0 || h.Height <= 0 {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(h.Width/imgW, h.Height/imgH)
		op.GeoM.Translate(-h.Width/2, -h.Height/2)
		if h.VerticalFlip {
			op.GeoM.Scale(1, -1)
		}
		op.GeoM.Rotate(h.rotationAt(now) * math.Pi / 180)
		op.GeoM.Translate(h.Left+h.Width/2, h.Top+h.Height/2)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(s.image, op)
	}
}

func (h *ebitenHandle) rotationAt(now time.Time) float64 {
	if h.rotDur <= 0 {
		return h.toRot
	}
	t := float64(now.Sub(h.rotStart)) / float64(h.rotDur)
	if t >= 1 {
		return h.toRot
	}
	if t < 0 {
		t = 0
	}
	return common.LerpDegrees(h.fromRot, h.toRot, t)
}

func (h *ebitenHandle) SetSize(width, height float64) {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	h.Props.SetSize(width, height)
}

func (h *ebitenHandle) SetPosition(left, top float64) {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	h.Props.SetPosition(left, top)
}

func (h *ebitenHandle) SetZIndex(z int) {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	h.Props.SetZIndex(z)
}

func (h *ebitenHandle) SetRotation(degrees int, transition time.Duration) {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	now := h.surface.now()
	if h.rotStart.IsZero() {
		// first write snaps into place
		h.fromRot = float64(degrees)
		transition = 0
	} else {
		h.fromRot = h.rotationAt(now)
	}
	h.toRot = float64(degrees)
	h.rotStart = now
	h.rotDur = transition
	h.Rotation = degrees
	h.Transition = transition
}

func (h *ebitenHandle) SetVerticalFlip(flip bool) {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	h.Props.SetVerticalFlip(flip)
}

func (h *ebitenHandle) Destroy() {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	if cur, ok := h.surface.handles[h.id]; ok && cur == h {
		delete(h.surface.handles, h.id)
	}
}
