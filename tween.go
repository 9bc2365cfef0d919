package playstage

import (
	"github.com/jakecoffman/cp/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type glideTween struct {
	x, y *gween.Tween
}

// GlideTween moves the actor to target over the given duration in
// seconds, eased. Unlike GlideTo it is time-based: start it once and the
// scene advances it every frame. Starting a new tween replaces any
// running one.
func (a *Actor) GlideTween(target cp.Vector, duration float32) {
	pos := a.Position()
	a.glide = &glideTween{
		x: gween.New(float32(pos.X), float32(target.X), duration, ease.InOutQuad),
		y: gween.New(float32(pos.Y), float32(target.Y), duration, ease.InOutQuad),
	}
}

// Gliding reports whether a GlideTween is in progress.
func (a *Actor) Gliding() bool { return a.glide != nil }

// StopGlide cancels a running GlideTween in place.
func (a *Actor) StopGlide() { a.glide = nil }

func (a *Actor) updateGlide() {
	if a.glide == nil {
		return
	}
	dt := float32(1.0 / 60)
	if a.scene != nil && a.scene.cfg.FPS > 0 {
		dt = float32(1.0 / float64(a.scene.cfg.FPS))
	}
	x, doneX := a.glide.x.Update(dt)
	y, doneY := a.glide.y.Update(dt)
	a.SetPosition(cp.Vector{X: float64(x), Y: float64(y)})
	if doneX && doneY {
		a.glide = nil
	}
}
