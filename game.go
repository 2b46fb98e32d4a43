package main

import (
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/bouncer/ecs"
	"github.com/milk9111/bouncer/ecs/render"
	"github.com/milk9111/bouncer/prefabs"
	"github.com/milk9111/bouncer/visual"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	frames int
	debug  bool

	configPath string
	// fileSpec is the spec as last read from disk, before any count override
	fileSpec   prefabs.VisualSpec
	surface    *spriteSurface
	visual     *visual.Visual
	watcher    *prefabs.Watcher

	width, height int
}

// NewGame loads the visual spec at configPath (embedded default when empty)
// and starts the simulation. A non-negative count overrides the configured one.
func NewGame(configPath string, debug bool, count int) (*Game, error) {
	spec, err := prefabs.LoadVisualSpec(configPath)
	if err != nil {
		return nil, err
	}
	fileSpec := *spec
	if count >= 0 {
		spec.Count = count
	}

	surface := newSpriteSurface(spriteImage(*spec))
	v, err := visual.New(surface, ecs.Viewport{Width: baseWidth, Height: baseHeight}, *spec)
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:      debug,
		configPath: configPath,
		fileSpec:   fileSpec,
		surface:    surface,
		visual:     v,
		width:      baseWidth,
		height:     baseHeight,
	}

	if configPath != "" {
		w, err := prefabs.NewWatcher(configPath)
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func spriteImage(spec prefabs.VisualSpec) image.Image {
	return render.SpriteImage(spec.Sprite.Image, int(spec.Sprite.Width), int(spec.Sprite.Height))
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.setCount(g.visual.Spec().Count + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.setCount(g.visual.Spec().Count - 1)
	}

	g.pollWatcher()
	return nil
}

func (g *Game) setCount(n int) {
	if err := g.visual.Update(n); err != nil {
		log.Printf("update count: %v", err)
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("config watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	spec, err := prefabs.LoadVisualSpec(g.configPath)
	if err != nil {
		log.Printf("reload %s: %v", path, err)
		return
	}
	if spec.Sprite.Image != g.fileSpec.Sprite.Image ||
		spec.Sprite.Width != g.fileSpec.Sprite.Width ||
		spec.Sprite.Height != g.fileSpec.Sprite.Height {
		g.surface.SetImage(spriteImage(*spec))
	}
	next := visual.KeepCount(*spec, g.fileSpec, g.visual.Spec().Count)
	if err := g.visual.ApplySpec(next); err != nil {
		log.Printf("reload %s: %v", path, err)
		return
	}
	g.fileSpec = *spec
	log.Printf("reloaded %s", path)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Ticks: %d    Sprites: %d",
			g.frames, ebiten.ActualFPS(), g.visual.Ticks(), g.visual.Handles()))
	}
}

// Layout tracks the window size one to one so the viewport follows resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		if err := g.visual.SetViewport(float64(outsideWidth), float64(outsideHeight)); err != nil {
			log.Printf("set viewport: %v", err)
		}
	}
	return g.width, g.height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.visual.Close()
}
