package playstage

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/playstage/render"
)

// Animation advances a frame index on wall-clock time. The zero value is
// stopped at frame zero.
type Animation struct {
	FrameTime float64
	Loop      bool

	started     bool
	index       int
	lastAdvance time.Time

	now func() time.Time
}

func (a *Animation) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

// Start begins (or restarts) the animation at fromIndex with the given
// per-frame duration in seconds. The frame timer rebases to now.
func (a *Animation) Start(loop bool, fromIndex int, frameTime float64) {
	a.Loop = loop
	a.FrameTime = frameTime
	a.index = fromIndex
	a.started = true
	a.lastAdvance = a.clock()
}

// Stop freezes the animation at its current frame.
func (a *Animation) Stop() {
	a.started = false
}

// Started reports whether the animation is advancing.
func (a *Animation) Started() bool { return a.started }

// Index returns the current frame index.
func (a *Animation) Index() int { return a.index }

// Update advances at most one frame per elapsed FrameTime. When the index
// runs past frameCount-1 it wraps if looping, otherwise it clamps to the
// last frame and stops.
func (a *Animation) Update(frameCount int) {
	if !a.started || frameCount <= 0 {
		return
	}
	now := a.clock()
	if now.Sub(a.lastAdvance).Seconds() < a.FrameTime {
		return
	}
	a.lastAdvance = now
	a.index++
	if a.index >= frameCount {
		if a.Loop {
			a.index = 0
		} else {
			a.index = frameCount - 1
			a.started = false
		}
	}
}

// Costume is a named, ordered set of images with a shared scale,
// transparency policy and paint mode, plus an embedded animation.
type Costume struct {
	Name string

	ScaleX, ScaleY float64
	Mode           PaintMode

	transparentColor color.Color
	alphaEnabled     bool

	sources   []string
	originals []*ebiten.Image
	scaled    []*ebiten.Image

	Anim Animation
}

// NewCostume returns an empty costume at scale 1 painted centered.
// A non-nil transparentColor wins over enableAlpha.
func NewCostume(name string, transparentColor color.Color, enableAlpha bool, mode PaintMode) *Costume {
	return &Costume{
		Name:             name,
		ScaleX:           1,
		ScaleY:           1,
		Mode:             mode,
		transparentColor: transparentColor,
		alphaEnabled:     enableAlpha && transparentColor == nil,
	}
}

// AddImages loads the images at the given paths, applies the costume's
// transparency policy, and appends them as frames.
func (c *Costume) AddImages(paths ...string) error {
	for _, path := range paths {
		im, err := render.LoadRaw(path)
		if err != nil {
			return err
		}
		switch {
		case c.transparentColor != nil:
			im = render.ColorKeyed(im, c.transparentColor)
		case !c.alphaEnabled:
			im = render.Opaque(im)
		}
		img := ebiten.NewImageFromImage(im)
		c.sources = append(c.sources, path)
		c.originals = append(c.originals, img)
		c.scaled = append(c.scaled, render.Scaled(img, c.ScaleX, c.ScaleY))
	}
	return nil
}

// AddFrames appends already-decoded images as frames.
func (c *Costume) AddFrames(imgs ...*ebiten.Image) {
	for _, img := range imgs {
		c.sources = append(c.sources, "")
		c.originals = append(c.originals, img)
		c.scaled = append(c.scaled, render.Scaled(img, c.ScaleX, c.ScaleY))
	}
}

// SetScale rescales every frame from its original image. Calling it
// repeatedly with the same factors never compounds.
func (c *Costume) SetScale(sx, sy float64) {
	c.ScaleX, c.ScaleY = sx, sy
	for i, orig := range c.originals {
		c.scaled[i] = render.Scaled(orig, sx, sy)
	}
}

// FrameCount returns the number of frames.
func (c *Costume) FrameCount() int { return len(c.scaled) }

// Image returns the current frame's pre-scaled image.
func (c *Costume) Image() (*ebiten.Image, error) {
	if len(c.scaled) == 0 {
		return nil, ErrNoImages
	}
	i := c.Anim.Index()
	if i >= len(c.scaled) {
		i = len(c.scaled) - 1
	}
	return c.scaled[i], nil
}

// OriginalSize returns the unscaled pixel size of the current frame.
func (c *Costume) OriginalSize() (float64, float64, error) {
	if len(c.originals) == 0 {
		return 0, 0, ErrNoImages
	}
	i := c.Anim.Index()
	if i >= len(c.originals) {
		i = len(c.originals) - 1
	}
	b := c.originals[i].Bounds()
	return float64(b.Dx()), float64(b.Dy()), nil
}

// Update advances the embedded animation.
func (c *Costume) Update() {
	c.Anim.Update(len(c.scaled))
}

// ReloadImages re-reads every frame that came from a file, keeping the
// current scale and transparency policy. Frames added with AddFrames are
// left alone.
func (c *Costume) ReloadImages() {
	for i, path := range c.sources {
		if path == "" {
			continue
		}
		im, err := render.LoadRaw(path)
		if err != nil {
			continue
		}
		switch {
		case c.transparentColor != nil:
			im = render.ColorKeyed(im, c.transparentColor)
		case !c.alphaEnabled:
			im = render.Opaque(im)
		}
		img := ebiten.NewImageFromImage(im)
		c.originals[i] = img
		c.scaled[i] = render.Scaled(img, c.ScaleX, c.ScaleY)
	}
}

// Sources returns the file paths the costume's frames were loaded from.
func (c *Costume) Sources() []string {
	out := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
