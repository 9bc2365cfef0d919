// Package render provides the shared image and font caches used by
// playstage actors and scenes.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

var images = map[string]*ebiten.Image{}

// Register stores an image under key, replacing any cached entry.
func Register(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// Get returns a cached image by key, or nil.
func Get(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

// Invalidate drops the cached image for key so the next Load re-reads it.
func Invalidate(key string) {
	delete(images, key)
}

// LoadRaw decodes the image at path without caching it.
func LoadRaw(path string) (image.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		tried := filepath.Base(path)
		if b, err = os.ReadFile(tried); err != nil {
			return nil, fmt.Errorf("read image %s: %w", path, err)
		}
	}
	im, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return im, nil
}

// Load decodes the image at path and caches it by path.
func Load(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("empty image path")
	}
	if img := Get(path); img != nil {
		return img, nil
	}
	im, err := LoadRaw(path)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(im)
	Register(path, img)
	return img, nil
}

// ColorKeyed returns a copy of src with every pixel matching key made
// fully transparent.
func ColorKeyed(src image.Image, key color.Color) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	kr, kg, kb, _ := key.RGBA()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.At(x, y)
			r, g, bl, _ := c.RGBA()
			if r == kr && g == kg && bl == kb {
				dst.Set(x, y, color.NRGBA{})
				continue
			}
			dst.Set(x, y, c)
		}
	}
	return dst
}

// Opaque returns a copy of src with every pixel forced fully opaque.
func Opaque(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			dst.Set(x, y, color.NRGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(bl >> 8),
				A: 0xff,
			})
		}
	}
	return dst
}

// HasTransparency reports whether any pixel of src is not fully opaque.
func HasTransparency(src image.Image) bool {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := src.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// Scaled returns src scaled by (sx, sy) using nearest filtering, or src
// itself when both factors are 1.
func Scaled(src *ebiten.Image, sx, sy float64) *ebiten.Image {
	if sx == 1 && sy == 1 {
		return src
	}
	w := float64(src.Bounds().Dx()) * sx
	h := float64(src.Bounds().Dy()) * sy
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := ebiten.NewImage(int(w), int(h))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	dst.DrawImage(src, op)
	return dst
}
