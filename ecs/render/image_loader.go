package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/milk9111/bouncer/assets"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

var (
	imagesMu sync.Mutex
	images   = map[string]image.Image{}
)

// LoadImage loads an image from assets or filesystem and caches it by key.
func LoadImage(key string) (image.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}
	imagesMu.Lock()
	img, ok := images[key]
	imagesMu.Unlock()
	if ok {
		return img, nil
	}
	img, err := loadImageFromAssetsOrFS(key)
	if err != nil {
		return nil, err
	}
	imagesMu.Lock()
	images[key] = img
	imagesMu.Unlock()
	return img, nil
}

func loadImageFromAssetsOrFS(path string) (image.Image, error) {
	if img, err := assets.LoadImage(path); err == nil {
		return img, nil
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
				return im, nil
			}
		}
	}
	return nil, fmt.Errorf("failed to load image %s", path)
}

// SpriteImage returns the image at path scaled to width x height. A missing
// image falls back to a drawn arrow so the sprite stays visible.
func SpriteImage(path string, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	if path == "" {
		path = assets.DefaultSprite
	}
	src, err := LoadImage(path)
	if err != nil {
		log.Printf("render: %v, using placeholder", err)
		return Placeholder(width, height, colornames.Hotpink)
	}
	return FitImage(src, width, height)
}

// FitImage resamples src into a width x height RGBA image.
func FitImage(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// Placeholder rasterizes a right-pointing arrow, the heading-0 direction.
func Placeholder(width, height int, c color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	w, h := float32(width), float32(height)

	z := vector.NewRasterizer(width, height)
	z.MoveTo(w*0.1, h*0.35)
	z.LineTo(w*0.6, h*0.35)
	z.LineTo(w*0.6, h*0.15)
	z.LineTo(w*0.95, h*0.5)
	z.LineTo(w*0.6, h*0.85)
	z.LineTo(w*0.6, h*0.65)
	z.LineTo(w*0.1, h*0.65)
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
	return dst
}
