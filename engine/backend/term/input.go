package term

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hubastard/veil/engine/ui"
)

// Input turns tcell mouse events into per-frame ui.InputState samples.
// Positions are reported at the centre of the cell under the pointer.
type Input struct {
	CellW, CellH float32

	mouse ui.Vec2
	down  [3]bool
	seen  [3]bool // down at any point since the last sample
	state ui.InputState
}

func NewInput() *Input { return &Input{CellW: DefaultCellW, CellH: DefaultCellH} }

// Handle consumes ev and reports whether it was a mouse event.
func (in *Input) Handle(ev tcell.Event) bool {
	m, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	x, y := m.Position()
	in.mouse = ui.Vec2{X: (float32(x) + 0.5) * in.CellW, Y: (float32(y) + 0.5) * in.CellH}
	b := m.Buttons()
	in.down = [3]bool{
		ui.MouseLeft:   b&tcell.Button1 != 0,
		ui.MouseRight:  b&tcell.Button2 != 0,
		ui.MouseMiddle: b&tcell.Button3 != 0,
	}
	for i, d := range in.down {
		in.seen[i] = in.seen[i] || d
	}
	return true
}

// Sample advances the pointer state by one frame. A press released before
// the sample is still seen as down for this frame. The returned state is
// reused by the next call.
func (in *Input) Sample(dt time.Duration) *ui.InputState {
	var down [3]bool
	for i := range down {
		down[i] = in.down[i] || in.seen[i]
	}
	in.state.Advance(in.mouse, down, dt)
	in.seen = [3]bool{}
	return &in.state
}
