package core

import (
	"time"

	"github.com/hubastard/veil/engine/colors"
)

// App defines the host hooks.
type App interface {
	OnStart(e *Engine)                 // called once after window/renderer init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App and its layers.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	Layers   LayerStack
	start    time.Time
	frame    time.Duration
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// FrameTime is the wall-clock duration of the previous frame.
func (e *Engine) FrameTime() time.Duration { return e.frame }

// PushLayer attaches l below every overlay layer.
func (e *Engine) PushLayer(l Layer) {
	e.Layers.Push(l)
	l.OnAttach(e)
}

// PushOverlay attaches l on top of the stack. Overlays see events first.
func (e *Engine) PushOverlay(l Layer) {
	e.Layers.PushOverlay(l)
	l.OnAttach(e)
}

// PopLayer detaches l. It reports false when l is not on the stack.
func (e *Engine) PopLayer(l Layer) bool {
	if !e.Layers.Remove(l) {
		return false
	}
	l.OnDetach(e)
	return true
}

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	Mods   Mod
}

func (EventMouseButton) isEvent() {}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

// EventCursorInside reports the pointer entering or leaving the window.
type EventCursorInside struct{ Inside bool }

func (EventCursorInside) isEvent() {}

// EventFocus reports the window gaining or losing keyboard focus.
type EventFocus struct{ Focused bool }

func (EventFocus) isEvent() {}

// EventContentScale carries the framebuffer pixels per window unit.
type EventContentScale struct{ Scale float64 }

func (EventContentScale) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyTab
	KeyF1
	KeyF2
	KeyP
	KeyQ
	KeyH
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Config for the engine run.
type Config struct {
	Title       string
	Width       int
	Height      int
	VSync       bool
	Transparent bool // transparent framebuffer, for overlaying another window
	ClearColor  colors.Color
}
