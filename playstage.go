// Package playstage is a small 2D game library: each actor couples one
// physics body and shape with an optional costume, and a Scene steps the
// physics space, dispatches input events, and draws everything through a
// movable camera.
//
// Coordinates are y-up world units; the vertical flip to screen pixels
// happens at draw time. Angles are degrees at the API surface and radians
// inside physics bodies.
package playstage

import (
	"errors"
	"image/color"
	"math/rand"

	"golang.org/x/image/colornames"
)

var (
	// ErrUnsupportedShape is returned when a geometry operation meets a
	// shape class it cannot handle.
	ErrUnsupportedShape = errors.New("playstage: unsupported shape class")

	// ErrConflictingPlacement is returned when both BottomLeft and Center
	// placement are set on the same Options.
	ErrConflictingPlacement = errors.New("playstage: both bottom-left and center placement set")

	// ErrNoImages is returned when a costume image is requested but the
	// costume holds none.
	ErrNoImages = errors.New("playstage: costume has no images")
)

// PaintMode selects how a costume frame is painted over the shape.
type PaintMode int

const (
	// PaintCenter draws one copy of the frame centered on the shape.
	PaintCenter PaintMode = iota
	// PaintTile repeats the frame across the shape's bounding box.
	PaintTile
)

// DrawOptions are per-actor debug drawing knobs.
type DrawOptions struct {
	// HeadingLineWidth draws a line from the shape center along its
	// heading when > 0.
	HeadingLineWidth float64
	HeadingLineColor color.Color

	// CenterRadius draws a dot at the shape center when > 0.
	CenterRadius float64
	CenterColor  color.Color
}

// ColorByName resolves an SVG 1.1 color name ("green", "rebeccapurple").
// Unknown names resolve to opaque black.
func ColorByName(name string) color.Color {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return color.RGBA{A: 0xff}
}

// RandomColor returns a random opaque color.
func RandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(256)),
		G: uint8(rand.Intn(256)),
		B: uint8(rand.Intn(256)),
		A: 0xff,
	}
}
