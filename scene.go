package playstage

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp/v2"

	"github.com/milk9111/playstage/render"
)

// CameraControls binds keyboard keys to camera motion, with speeds in
// world units, degrees and zoom factor per frame.
type CameraControls struct {
	Left, Right, Up, Down        ebiten.Key
	RotateLeft, RotateRight      ebiten.Key
	ZoomIn, ZoomOut, Reset       ebiten.Key
	PanSpeed, TurnSpeed, ZoomStep float64
}

// DefaultCameraControls pans with the arrow keys, rotates with Q/E and
// zooms with +/-.
func DefaultCameraControls() CameraControls {
	return CameraControls{
		Left: ebiten.KeyArrowLeft, Right: ebiten.KeyArrowRight,
		Up: ebiten.KeyArrowUp, Down: ebiten.KeyArrowDown,
		RotateLeft: ebiten.KeyQ, RotateRight: ebiten.KeyE,
		ZoomIn: ebiten.KeyEqual, ZoomOut: ebiten.KeyMinus,
		Reset:    ebiten.KeyHome,
		PanSpeed: 5, TurnSpeed: 1, ZoomStep: 1.01,
	}
}

// Scene owns the physics space, the live actors, the camera and the
// event handlers. It implements ebiten.Game.
type Scene struct {
	cfg    Config
	space  *cp.Space
	camera *Camera

	actors   []*Actor
	handlers handlers
	texts    map[string]*TextInfo

	bgColor color.Color
	bgImage *ebiten.Image

	frameHook func()
	controls  *CameraControls
	watcher   *Watcher
	sounds    map[string]*soundPlayer

	lastMouse cp.Vector
	running   bool
}

// NewScene builds a scene from cfg. Gravity pulls along -Y when
// cfg.Gravity is positive.
func NewScene(cfg Config) *Scene {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.PhysicsMultiplier <= 0 {
		cfg.PhysicsMultiplier = 4
	}

	space := cp.NewSpace()
	space.Iterations = 20
	space.SleepTimeThreshold = 0.3
	space.SetGravity(cp.Vector{X: 0, Y: -cfg.Gravity})

	s := &Scene{
		cfg:     cfg,
		space:   space,
		camera:  NewCamera(),
		texts:   map[string]*TextInfo{},
		sounds:  map[string]*soundPlayer{},
		running: true,
	}

	if cfg.BackgroundColor != "" {
		s.bgColor = ColorByName(cfg.BackgroundColor)
	}
	if cfg.BackgroundImage != "" {
		img, err := render.Load(cfg.BackgroundImage)
		if err != nil {
			log.Printf("playstage: background image: %v", err)
		} else {
			s.bgImage = img
		}
	}
	return s
}

// Space exposes the physics space for advanced use.
func (s *Scene) Space() *cp.Space { return s.space }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Config returns the scene configuration.
func (s *Scene) Config() Config { return s.cfg }

// SetBackgroundColor replaces the clear color.
func (s *Scene) SetBackgroundColor(c color.Color) { s.bgColor = c }

// SetBackgroundImage replaces the background image, drawn scaled to the
// screen over the clear color.
func (s *Scene) SetBackgroundImage(img *ebiten.Image) { s.bgImage = img }

// OnFrame registers a hook that runs once per tick, after event dispatch
// and before actors update.
func (s *Scene) OnFrame(fn func()) { s.frameHook = fn }

// EnableCameraControls binds keyboard camera movement.
func (s *Scene) EnableCameraControls(c CameraControls) { s.controls = &c }

// add registers a's body and shape with the space and the draw list.
func (s *Scene) add(a *Actor) {
	if body := a.Body(); body != s.space.StaticBody {
		s.space.AddBody(body)
	}
	s.space.AddShape(a.shape)
	s.actors = append(s.actors, a)
}

// Remove detaches a from the scene: shape and body leave the space, all
// handlers bound to a are dropped, and it no longer updates or draws.
func (s *Scene) Remove(a *Actor) {
	for i, other := range s.actors {
		if other == a {
			s.actors = append(s.actors[:i], s.actors[i+1:]...)
			break
		}
	}
	s.space.RemoveShape(a.shape)
	if body := a.Body(); body != s.space.StaticBody {
		s.space.RemoveBody(body)
	}
	s.handlers.purge(a)
	a.glide = nil
	a.scene = nil
}

// Actors returns the live actors in draw order.
func (s *Scene) Actors() []*Actor { return s.actors }

// Scene-level text overlays, drawn after every actor at screen pixel
// positions.

func (s *Scene) AddText(name, txt string) *TextInfo {
	if name == "" {
		name = txt
	}
	ti := &TextInfo{Text: txt, Color: color.White}
	s.texts[name] = ti
	return ti
}

func (s *Scene) RemoveText(name string) {
	delete(s.texts, name)
}

// Screen helpers.

func (s *Scene) ScreenWidth() float64  { return float64(s.cfg.Width) }
func (s *Scene) ScreenHeight() float64 { return float64(s.cfg.Height) }

func (s *Scene) ScreenCenter() cp.Vector {
	return cp.Vector{X: s.ScreenWidth() / 2, Y: s.ScreenHeight() / 2}
}

func (s *Scene) ScreenLeft() float64   { return 0 }
func (s *Scene) ScreenRight() float64  { return s.ScreenWidth() }
func (s *Scene) ScreenBottom() float64 { return 0 }
func (s *Scene) ScreenTop() float64    { return s.ScreenHeight() }

// Off-screen predicates: true when the actor's bounding box lies fully
// past the named screen edge.

func (s *Scene) TooLeft(a *Actor) bool   { return a.Right() < 0 }
func (s *Scene) TooRight(a *Actor) bool  { return a.Left() > s.ScreenWidth() }
func (s *Scene) TooBottom(a *Actor) bool { return a.Top() < 0 }
func (s *Scene) TooTop(a *Actor) bool    { return a.Bottom() > s.ScreenHeight() }

// MouseXY returns the pointer position in world coordinates (y-up).
func (s *Scene) MouseXY() cp.Vector {
	x, y := ebiten.CursorPosition()
	return cp.Vector{X: float64(x), Y: s.ScreenHeight() - float64(y)}
}

// Stop ends the scene; the next Update returns ebiten.Termination.
// Stopping is terminal.
func (s *Scene) Stop() { s.running = false }

// IsRunning reports whether the scene is still live.
func (s *Scene) IsRunning() bool { return s.running }

func (s *Scene) applyCameraControls() {
	c := s.controls
	if c == nil {
		return
	}
	if ebiten.IsKeyPressed(c.Left) {
		s.camera.MoveBy(cp.Vector{X: -c.PanSpeed})
	}
	if ebiten.IsKeyPressed(c.Right) {
		s.camera.MoveBy(cp.Vector{X: c.PanSpeed})
	}
	if ebiten.IsKeyPressed(c.Up) {
		s.camera.MoveBy(cp.Vector{Y: c.PanSpeed})
	}
	if ebiten.IsKeyPressed(c.Down) {
		s.camera.MoveBy(cp.Vector{Y: -c.PanSpeed})
	}
	if ebiten.IsKeyPressed(c.RotateLeft) {
		s.camera.TurnBy(c.TurnSpeed)
	}
	if ebiten.IsKeyPressed(c.RotateRight) {
		s.camera.TurnBy(-c.TurnSpeed)
	}
	if ebiten.IsKeyPressed(c.ZoomIn) {
		s.camera.ZoomBy(c.ZoomStep)
	}
	if ebiten.IsKeyPressed(c.ZoomOut) {
		s.camera.ZoomBy(1 / c.ZoomStep)
	}
	if ebiten.IsKeyPressed(c.Reset) {
		s.camera.Reset()
	}
}

// stepPhysics advances the space by one frame's worth of fixed
// sub-steps.
func (s *Scene) stepPhysics() {
	dt := 1.0 / float64(s.cfg.FPS*s.cfg.PhysicsMultiplier)
	for i := 0; i < s.cfg.PhysicsMultiplier; i++ {
		s.space.Step(dt)
	}
}

// Update runs one scheduler tick: physics sub-steps, input dispatch,
// the frame hook, then per-actor updates.
func (s *Scene) Update() error {
	if !s.running {
		return ebiten.Termination
	}

	if ebiten.IsWindowBeingClosed() {
		if s.allowQuit() {
			s.Stop()
			return ebiten.Termination
		}
	}

	s.stepPhysics()
	s.pollEvents()
	s.applyCameraControls()

	dt := 1.0 / float64(s.cfg.FPS)
	s.camera.updateScroll(float32(dt))
	s.pollWatcher()

	for _, a := range s.actors {
		if a.behavior != nil {
			a.behavior.Run(a, dt)
		}
	}

	if s.frameHook != nil {
		s.frameHook()
	}

	for _, a := range s.actors {
		a.Update()
	}
	return nil
}

func (s *Scene) allowQuit() bool {
	if len(s.handlers.quit) == 0 {
		return true
	}
	for _, fn := range s.handlers.quit {
		if fn() {
			return true
		}
	}
	return false
}

// Draw clears the background and renders every actor, then the scene
// text overlays.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.bgColor != nil {
		screen.Fill(s.bgColor)
	}
	if s.bgImage != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(
			s.ScreenWidth()/float64(s.bgImage.Bounds().Dx()),
			s.ScreenHeight()/float64(s.bgImage.Bounds().Dy()),
		)
		screen.DrawImage(s.bgImage, op)
	}

	for _, a := range s.actors {
		if err := a.Draw(screen, s.camera); err != nil {
			log.Panicf("playstage: draw actor: %v", err)
		}
	}

	screenH := s.ScreenHeight()
	for _, ti := range s.texts {
		drawText(screen, ti, ti.Pos.X, screenH-ti.Pos.Y)
	}
}

// Layout reports the fixed logical screen size.
func (s *Scene) Layout(_, _ int) (int, int) {
	return s.cfg.Width, s.cfg.Height
}

// Run opens the window and blocks until the scene stops or the window
// closes.
func (s *Scene) Run() error {
	ebiten.SetWindowSize(s.cfg.Width, s.cfg.Height)
	ebiten.SetWindowTitle(s.cfg.Title)
	ebiten.SetTPS(s.cfg.FPS)
	ebiten.SetWindowClosingHandled(true)
	return ebiten.RunGame(s)
}
