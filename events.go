package playstage

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp/v2"
)

// KeyEvent is a single key edge (press or release).
type KeyEvent struct {
	Name string
	Key  ebiten.Key
}

// KeysEvent aggregates all keys held during one frame.
type KeysEvent struct {
	Keys []ebiten.Key
}

// MouseEvent is a single mouse button edge at a world position.
type MouseEvent struct {
	Pos    cp.Vector
	Button ebiten.MouseButton
}

// MouseButtonsEvent aggregates all mouse buttons held during one frame.
type MouseButtonsEvent struct {
	Pos     cp.Vector
	Buttons []ebiten.MouseButton
}

// MouseMoveEvent reports pointer motion in world coordinates.
type MouseMoveEvent struct {
	Pos     cp.Vector
	Delta   cp.Vector
	Buttons []ebiten.MouseButton
}

// WheelEvent reports scroll wheel motion.
type WheelEvent struct {
	X, Y float64
}

type (
	keyHandler          struct{ actor *Actor; fn func(*Actor, KeyEvent) }
	keysHandler         struct{ actor *Actor; fn func(*Actor, KeysEvent) }
	mouseHandler        struct{ actor *Actor; fn func(*Actor, MouseEvent) }
	mouseButtonsHandler struct{ actor *Actor; fn func(*Actor, MouseButtonsEvent) }
	mouseMoveHandler    struct{ actor *Actor; fn func(*Actor, MouseMoveEvent) }
	wheelHandler        struct{ actor *Actor; fn func(*Actor, WheelEvent) }
)

type handlers struct {
	keyDown      []keyHandler
	keyUp        []keyHandler
	keyPress     []keysHandler
	mouseDown    []mouseHandler
	mouseUp      []mouseHandler
	mouseButtons []mouseButtonsHandler
	mouseMove    []mouseMoveHandler
	wheel        []wheelHandler
	quit         []func() bool
}

// Handler registration. Handlers fire during the scene's event pass with
// the actor they were registered for.

func (s *Scene) HandleKeyDown(a *Actor, fn func(*Actor, KeyEvent)) {
	s.handlers.keyDown = append(s.handlers.keyDown, keyHandler{a, fn})
}

func (s *Scene) HandleKeyUp(a *Actor, fn func(*Actor, KeyEvent)) {
	s.handlers.keyUp = append(s.handlers.keyUp, keyHandler{a, fn})
}

// HandleKeyPress fires once per frame with every key currently held.
func (s *Scene) HandleKeyPress(a *Actor, fn func(*Actor, KeysEvent)) {
	s.handlers.keyPress = append(s.handlers.keyPress, keysHandler{a, fn})
}

func (s *Scene) HandleMouseDown(a *Actor, fn func(*Actor, MouseEvent)) {
	s.handlers.mouseDown = append(s.handlers.mouseDown, mouseHandler{a, fn})
}

func (s *Scene) HandleMouseUp(a *Actor, fn func(*Actor, MouseEvent)) {
	s.handlers.mouseUp = append(s.handlers.mouseUp, mouseHandler{a, fn})
}

// HandleMouseButtons fires once per frame with every button currently
// held.
func (s *Scene) HandleMouseButtons(a *Actor, fn func(*Actor, MouseButtonsEvent)) {
	s.handlers.mouseButtons = append(s.handlers.mouseButtons, mouseButtonsHandler{a, fn})
}

func (s *Scene) HandleMouseMove(a *Actor, fn func(*Actor, MouseMoveEvent)) {
	s.handlers.mouseMove = append(s.handlers.mouseMove, mouseMoveHandler{a, fn})
}

func (s *Scene) HandleWheel(a *Actor, fn func(*Actor, WheelEvent)) {
	s.handlers.wheel = append(s.handlers.wheel, wheelHandler{a, fn})
}

// HandleQuit registers a window close handler. Returning true allows the
// scene to stop. With no quit handlers registered, closing the window
// stops the scene unconditionally.
func (s *Scene) HandleQuit(fn func() bool) {
	s.handlers.quit = append(s.handlers.quit, fn)
}

// purgeHandlers drops every handler bound to a removed actor.
func (h *handlers) purge(a *Actor) {
	h.keyDown = filterKey(h.keyDown, a)
	h.keyUp = filterKey(h.keyUp, a)

	kept := h.keyPress[:0]
	for _, b := range h.keyPress {
		if b.actor != a {
			kept = append(kept, b)
		}
	}
	h.keyPress = kept

	h.mouseDown = filterMouse(h.mouseDown, a)
	h.mouseUp = filterMouse(h.mouseUp, a)

	mb := h.mouseButtons[:0]
	for _, b := range h.mouseButtons {
		if b.actor != a {
			mb = append(mb, b)
		}
	}
	h.mouseButtons = mb

	mm := h.mouseMove[:0]
	for _, b := range h.mouseMove {
		if b.actor != a {
			mm = append(mm, b)
		}
	}
	h.mouseMove = mm

	wh := h.wheel[:0]
	for _, b := range h.wheel {
		if b.actor != a {
			wh = append(wh, b)
		}
	}
	h.wheel = wh
}

func filterKey(hs []keyHandler, a *Actor) []keyHandler {
	kept := hs[:0]
	for _, b := range hs {
		if b.actor != a {
			kept = append(kept, b)
		}
	}
	return kept
}

func filterMouse(hs []mouseHandler, a *Actor) []mouseHandler {
	kept := hs[:0]
	for _, b := range hs {
		if b.actor != a {
			kept = append(kept, b)
		}
	}
	return kept
}

var pollButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButtonRight,
}

// pollEvents drains this frame's input and dispatches it to registered
// handlers. Held keys and held buttons fire as one aggregate event per
// frame.
func (s *Scene) pollEvents() {
	h := &s.handlers

	if len(h.keyDown) > 0 {
		for _, k := range inpututil.AppendJustPressedKeys(nil) {
			ev := KeyEvent{Name: k.String(), Key: k}
			for _, b := range h.keyDown {
				b.fn(b.actor, ev)
			}
		}
	}
	if len(h.keyUp) > 0 {
		for _, k := range inpututil.AppendJustReleasedKeys(nil) {
			ev := KeyEvent{Name: k.String(), Key: k}
			for _, b := range h.keyUp {
				b.fn(b.actor, ev)
			}
		}
	}
	if len(h.keyPress) > 0 {
		if held := inpututil.AppendPressedKeys(nil); len(held) > 0 {
			ev := KeysEvent{Keys: held}
			for _, b := range h.keyPress {
				b.fn(b.actor, ev)
			}
		}
	}

	pos := s.MouseXY()
	for _, btn := range pollButtons {
		if inpututil.IsMouseButtonJustPressed(btn) {
			ev := MouseEvent{Pos: pos, Button: btn}
			for _, b := range h.mouseDown {
				b.fn(b.actor, ev)
			}
		}
		if inpututil.IsMouseButtonJustReleased(btn) {
			ev := MouseEvent{Pos: pos, Button: btn}
			for _, b := range h.mouseUp {
				b.fn(b.actor, ev)
			}
		}
	}

	var held []ebiten.MouseButton
	for _, btn := range pollButtons {
		if ebiten.IsMouseButtonPressed(btn) {
			held = append(held, btn)
		}
	}
	if len(h.mouseButtons) > 0 && len(held) > 0 {
		ev := MouseButtonsEvent{Pos: pos, Buttons: held}
		for _, b := range h.mouseButtons {
			b.fn(b.actor, ev)
		}
	}

	if pos != s.lastMouse {
		if len(h.mouseMove) > 0 {
			ev := MouseMoveEvent{Pos: pos, Delta: pos.Sub(s.lastMouse), Buttons: held}
			for _, b := range h.mouseMove {
				b.fn(b.actor, ev)
			}
		}
		s.lastMouse = pos
	}

	if wx, wy := ebiten.Wheel(); (wx != 0 || wy != 0) && len(h.wheel) > 0 {
		ev := WheelEvent{X: wx, Y: wy}
		for _, b := range h.wheel {
			b.fn(b.actor, ev)
		}
	}
}
