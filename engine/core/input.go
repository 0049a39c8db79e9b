package core

import (
	"time"

	"github.com/hubastard/veil/engine/ui"
)

// Input tracks keyboard and pointer state from window events and samples it
// once per frame for the UI.
type Input struct {
	keys           map[Key]bool
	buttons        [3]bool
	mouseX, mouseY float64
	outside        bool
	scrollY        float64
	scale          float64
	state          ui.InputState
}

// Offscreen is the pointer position reported while the cursor is outside the
// window, far enough that no element can be under it.
var Offscreen = ui.Vec2{X: -1e6, Y: -1e6}

func NewInput() *Input { return &Input{keys: map[Key]bool{}, scale: 1} }

// SetContentScale converts window coordinates into framebuffer pixels on
// high-DPI displays.
func (in *Input) SetContentScale(s float64) {
	if s > 0 {
		in.scale = s
	}
}

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X*in.scale, e.Y*in.scale
	case EventMouseButton:
		if e.Button >= 0 && int(e.Button) < len(in.buttons) {
			in.buttons[e.Button] = e.Down
		}
	case EventScroll:
		in.scrollY += e.Yoff
	case EventCursorInside:
		in.outside = !e.Inside
	case EventContentScale:
		in.SetContentScale(e.Scale)
	case EventFocus:
		// releases never arrive for buttons held while focus moves away
		if !e.Focused {
			in.buttons = [3]bool{}
			clear(in.keys)
		}
	}
}

func (in *Input) IsKeyDown(k Key) bool      { return in.keys[k] }
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }

// IsButtonDown reports the live state of a mouse button.
func (in *Input) IsButtonDown(b MouseButton) bool {
	return b >= 0 && int(b) < len(in.buttons) && in.buttons[b]
}

// TakeScroll returns the vertical scroll accumulated since the last call.
func (in *Input) TakeScroll() float64 {
	s := in.scrollY
	in.scrollY = 0
	return s
}

// Sample snapshots the pointer for one UI frame and returns it. Press and
// release edges are relative to the previous Sample.
func (in *Input) Sample(dt time.Duration) *ui.InputState {
	pos := ui.Vec2{X: float32(in.mouseX), Y: float32(in.mouseY)}
	if in.outside {
		pos = Offscreen
	}
	in.state.Advance(pos, in.buttons, dt)
	return &in.state
}
