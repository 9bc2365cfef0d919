package playstage

import (
	"fmt"
	"log"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Behavior is a compiled script run once per frame for its actor. The
// script reads x, y, vx, vy, angle and dt, and may assign out_vx,
// out_vy and out_angle to steer the actor. Runtime errors are logged
// and skip the frame, they never stop the scene.
type Behavior struct {
	name     string
	compiled *tengo.Compiled
}

// NewBehavior compiles src as a behavior script.
func NewBehavior(name string, src []byte) (*Behavior, error) {
	script := tengo.NewScript(src)
	_ = script.Add("x", 0.0)
	_ = script.Add("y", 0.0)
	_ = script.Add("vx", 0.0)
	_ = script.Add("vy", 0.0)
	_ = script.Add("angle", 0.0)
	_ = script.Add("dt", 0.0)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile behavior %s: %w", name, err)
	}
	return &Behavior{name: name, compiled: compiled}, nil
}

// LoadBehavior reads and compiles a behavior script file.
func LoadBehavior(path string) (*Behavior, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read behavior %s: %w", path, err)
	}
	return NewBehavior(path, src)
}

// Run executes the script against a's current state and applies any
// outputs the script assigned.
func (b *Behavior) Run(a *Actor, dt float64) {
	pos := a.Position()
	vel := a.Velocity()
	if err := b.set(map[string]interface{}{
		"x": pos.X, "y": pos.Y,
		"vx": vel.X, "vy": vel.Y,
		"angle": a.Angle(),
		"dt":    dt,
	}); err != nil {
		log.Printf("playstage: behavior %s: %v", b.name, err)
		return
	}
	if err := b.compiled.Run(); err != nil {
		log.Printf("playstage: behavior %s: %v", b.name, err)
		return
	}

	if b.compiled.IsDefined("out_vx") || b.compiled.IsDefined("out_vy") {
		v := a.Velocity()
		if b.compiled.IsDefined("out_vx") {
			v.X = b.compiled.Get("out_vx").Float()
		}
		if b.compiled.IsDefined("out_vy") {
			v.Y = b.compiled.Get("out_vy").Float()
		}
		a.SetVelocity(v)
	}
	if b.compiled.IsDefined("out_angle") {
		a.SetAngle(b.compiled.Get("out_angle").Float())
	}
}

func (b *Behavior) set(vars map[string]interface{}) error {
	for name, v := range vars {
		if err := b.compiled.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}
