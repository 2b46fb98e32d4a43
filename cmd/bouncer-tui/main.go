// Command bouncer-tui runs the sprite simulation in a terminal, one arrow
// glyph per sprite.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/bouncer/ecs"
	"github.com/milk9111/bouncer/ecs/render"
	"github.com/milk9111/bouncer/prefabs"
	"github.com/milk9111/bouncer/visual"
	"github.com/pkg/profile"
)

const frameInterval = 33 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "visual spec yaml (embedded default when empty); watched for changes")
	count := flag.Int("count", -1, "sprite count override (negative keeps the configured count)")
	sound := flag.Bool("sound", false, "ping on every edge bounce")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	logPath := flag.String("log", "", "log file (logging is discarded when empty)")
	cellWidth := flag.Float64("cell-width", 8, "viewport pixels per terminal column")
	cellHeight := flag.Float64("cell-height", 16, "viewport pixels per terminal row")
	flag.Parse()

	// the screen owns stdout
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Printf("unknown profile mode %q, profiling disabled", *profileMode)
	}

	spec, err := prefabs.LoadVisualSpec(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	fileSpec := *spec
	if *count >= 0 {
		spec.Count = *count
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	app := &app{
		screen:     screen,
		surface:    render.NewTerminalSurface(screen, *cellWidth, *cellHeight),
		configPath: *configPath,
		fileSpec:   fileSpec,
	}
	if *sound {
		s, err := newBounceSound()
		if err != nil {
			log.Printf("sound disabled: %v", err)
		} else {
			app.sound = s
		}
	}

	if err := app.start(*spec); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	app.run()
	app.cleanup()
}

type app struct {
	screen     tcell.Screen
	surface    *render.TerminalSurface
	visual     *visual.Visual
	sound      *bounceSound
	watcher    *prefabs.Watcher
	configPath string
	// fileSpec is the spec as last read from disk, before any count override
	fileSpec   prefabs.VisualSpec
}

func (a *app) start(spec prefabs.VisualSpec) error {
	var opts []visual.Option
	if a.sound != nil {
		opts = append(opts, visual.WithBounceHandler(func(ev ecs.BounceEvent) {
			a.sound.Ping(ev.Axis&ecs.BounceY != 0)
		}))
	}
	v, err := visual.New(a.surface, a.surface.Viewport(), spec, opts...)
	if err != nil {
		return err
	}
	a.visual = v

	if a.configPath != "" {
		w, err := prefabs.NewWatcher(a.configPath)
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			a.watcher = w
		}
	}
	return nil
}

func (a *app) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var reloads <-chan string
	if a.watcher != nil {
		reloads = a.watcher.Events
	}

	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}
		case path, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			a.reload(path)
		case <-ticker.C:
			a.surface.Draw()
		}
	}
}

func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == '+' || ev.Rune() == '='):
			a.setCount(a.visual.Spec().Count + 1)
		case ev.Key() == tcell.KeyRune && ev.Rune() == '-':
			a.setCount(a.visual.Spec().Count - 1)
		}
	case *tcell.EventResize:
		a.screen.Sync()
		vp := a.surface.Viewport()
		if err := a.visual.SetViewport(vp.Width, vp.Height); err != nil {
			log.Printf("set viewport: %v", err)
		}
	}
	return true
}

func (a *app) setCount(n int) {
	if err := a.visual.Update(n); err != nil {
		log.Printf("update count: %v", err)
	}
}

func (a *app) reload(path string) {
	spec, err := prefabs.LoadVisualSpec(a.configPath)
	if err != nil {
		log.Printf("reload %s: %v", path, err)
		return
	}
	next := visual.KeepCount(*spec, a.fileSpec, a.visual.Spec().Count)
	if err := a.visual.ApplySpec(next); err != nil {
		log.Printf("reload %s: %v", path, err)
		return
	}
	a.fileSpec = *spec
	log.Printf("reloaded %s", path)
}

func (a *app) cleanup() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	a.visual.Close()
	a.sound.Close()
	a.screen.Fini()
}
