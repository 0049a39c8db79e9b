package shell

import (
	"testing"
	"time"

	"github.com/hubastard/veil/engine/clip"
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/ui"
)

type host struct {
	in  ui.InputState
	out *ui.Recorder
	ctx *ui.Context
}

func newHost() *host {
	h := &host{out: &ui.Recorder{}}
	h.ctx = &ui.Context{DrawList: h.out, Input: &h.in, Viewport: ui.NewRect(0, 0, 800, 600)}
	return h
}

func (h *host) frame(mouse ui.Vec2, left bool, draw func(*ui.Context)) {
	h.out.Reset()
	h.in.Advance(mouse, [3]bool{left}, 16*time.Millisecond)
	draw(h.ctx)
}

func sized(id string, w, h float32) *ui.Element {
	e := ui.MustNew(id)
	e.Size = ui.Size{Width: w, Height: h}
	return e
}

func newTestWindow(t *testing.T) *Window {
	t.Helper()
	w, err := NewWindow("Stats", "Stats", DefaultStyle())
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if err := w.Add(sized("Graph", 100, 50)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	w.Root.Position = ui.Vec2{X: 10, Y: 20}
	return w
}

func TestWindow_Layout(t *testing.T) {
	w := newTestWindow(t)
	w.Root.ComputeLayout(&ui.Context{DrawList: &ui.Recorder{}}, ui.Vec2{})

	tests := map[string]struct {
		path string
		want ui.Rect
	}{
		"frame":     {path: "", want: ui.NewRect(10, 20, 116, 90)},
		"title bar": {path: "TitleBar", want: ui.NewRect(10, 20, 116, 24)},
		"close":     {path: "TitleBar.Close", want: ui.NewRect(102, 24, 16, 16)},
		"body":      {path: "Body", want: ui.NewRect(10, 44, 116, 66)},
		"content":   {path: "Body.Graph", want: ui.NewRect(18, 52, 100, 50)},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := w.Root
			if tt.path != "" {
				var err error
				if e, err = w.Root.Get(tt.path); err != nil {
					t.Fatalf("Get(%q): %v", tt.path, err)
				}
			}
			if got := e.ContentBox(); got != tt.want {
				t.Errorf("ContentBox() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWindow_FrameModes(t *testing.T) {
	tests := map[string]struct {
		open      bool
		occluders []ui.Rect
		want      FrameMode
	}{
		"closed":         {open: false, want: FrameSkipped},
		"unobstructed":   {open: true, want: FrameFull},
		"far occluder":   {open: true, occluders: []ui.Rect{ui.NewRect(500, 500, 10, 10)}, want: FrameFull},
		"fully covered":  {open: true, occluders: []ui.Rect{ui.NewRect(0, 0, 800, 600)}, want: FrameSkipped},
		"partly covered": {open: true, occluders: []ui.Rect{ui.NewRect(60, 20, 100, 30)}, want: FrameSplit},
		"covered by two": {open: true, occluders: []ui.Rect{ui.NewRect(0, 0, 60, 600), ui.NewRect(60, 0, 100, 600)}, want: FrameSkipped},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWindow(t)
			w.Clip = &clip.Occluders{Rects: tt.occluders}
			if tt.open {
				w.Open()
			}
			h := newHost()
			h.frame(ui.Vec2{}, false, w.Render)

			if got := w.LastFrame(); got != tt.want {
				t.Errorf("LastFrame() = %v, want %v", got, tt.want)
			}
			if drew := len(h.out.Commands) > 0; drew != (tt.want != FrameSkipped) {
				t.Errorf("drew %d commands in a %v frame", len(h.out.Commands), tt.want)
			}
		})
	}
}

func TestWindow_SplitReplaysPerPiece(t *testing.T) {
	w := newTestWindow(t)
	w.Clip = &clip.Occluders{Rects: []ui.Rect{ui.NewRect(60, 20, 100, 30)}}
	w.Open()

	single := newHost()
	w.Clip = nil
	single.frame(ui.Vec2{}, false, w.Render)
	fills := single.out.Count(ui.CmdFillRect)

	split := newHost()
	w.Clip = &clip.Occluders{Rects: []ui.Rect{ui.NewRect(60, 20, 100, 30)}}
	split.frame(ui.Vec2{}, false, w.Render)

	if got := split.out.Count(ui.CmdFillRect); got != 2*fills {
		t.Errorf("fills = %d, want %d (two pieces)", got, 2*fills)
	}
	first := split.out.Commands[0]
	if first.Kind != ui.CmdPushClip || first.Rect != ui.NewRect(10, 50, 116, 60) {
		t.Errorf("first command = %v %+v, want a clip to the piece below the occluder", first.Kind, first.Rect)
	}
}

func TestWindow_CloseButton(t *testing.T) {
	w := newTestWindow(t)
	w.Open()
	closed := 0
	w.OnClose.Subscribe(func(*Window) { closed++ })

	h := newHost()
	onClose := ui.Vec2{X: 110, Y: 30}
	h.frame(onClose, false, w.Render)
	if w.closeBg.Color != w.style.CloseHover {
		t.Errorf("close button not highlighted on hover")
	}
	h.frame(onClose, true, w.Render)
	h.frame(onClose, false, w.Render)

	if w.IsOpen() || closed != 1 {
		t.Errorf("IsOpen() = %v, OnClose fired %d times", w.IsOpen(), closed)
	}
	if w.dragging {
		t.Error("pressing the close button started a drag")
	}
	if w.closeBtn.IsMouseOver() || w.closeBg.Color != colors.Transparent {
		t.Error("close button still hovered after the window closed")
	}
	h.frame(onClose, false, w.Render)
	if len(h.out.Commands) != 0 {
		t.Error("closed window still drawn")
	}
}

func TestWindow_HidesPointerOverCoveredPart(t *testing.T) {
	w := newTestWindow(t)
	w.Clip = &clip.Occluders{Rects: []ui.Rect{ui.NewRect(90, 20, 50, 30)}}
	w.Open()

	h := newHost()
	h.frame(ui.Vec2{X: 110, Y: 30}, false, w.Render)
	if w.closeBtn.IsMouseOver() {
		t.Error("close button hovered through an occluder")
	}
	if w.LastFrame() != FrameSplit {
		t.Errorf("LastFrame() = %v", w.LastFrame())
	}
}

func TestWindow_Drag(t *testing.T) {
	w := newTestWindow(t)
	w.Open()
	h := newHost()

	grab := ui.Vec2{X: 20, Y: 25}
	h.frame(grab, false, w.Render)
	h.frame(grab, true, w.Render)
	h.frame(ui.Vec2{X: 120, Y: 125}, true, w.Render)
	if got := w.Root.ContentBox().Min(); got != (ui.Vec2{X: 110, Y: 120}) {
		t.Errorf("dragged to %+v, want {110 120}", got)
	}

	h.frame(ui.Vec2{X: 120, Y: 125}, false, w.Render)
	h.frame(ui.Vec2{}, false, w.Render)
	if got := w.Root.Position; got != (ui.Vec2{X: 110, Y: 120}) {
		t.Errorf("Position after release = %+v", got)
	}

	w.Draggable = false
	h.frame(ui.Vec2{X: 120, Y: 125}, false, w.Render)
	h.frame(ui.Vec2{X: 120, Y: 125}, true, w.Render)
	h.frame(ui.Vec2{X: 300, Y: 300}, true, w.Render)
	if got := w.Root.Position; got != (ui.Vec2{X: 110, Y: 120}) {
		t.Errorf("non-draggable window moved to %+v", got)
	}
}

func TestWindow_CloseMidPressThenReopen(t *testing.T) {
	w := newTestWindow(t)
	w.Open()
	h := newHost()

	grab := ui.Vec2{X: 20, Y: 25}
	h.frame(grab, false, w.Render)
	h.frame(grab, true, w.Render)
	w.Close()
	if w.TitleBar.IsMouseOver() || w.TitleBar.IsMouseDown(ui.MouseLeft) {
		t.Fatal("closed window kept the title bar pressed")
	}
	h.frame(grab, false, w.Render)

	w.Open()
	clicks := 0
	w.TitleBar.Events.Click.Subscribe(func(ui.MouseEvent) { clicks++ })
	h.frame(grab, false, w.Render)
	h.frame(grab, true, w.Render)
	if !w.dragging || !w.TitleBar.IsMouseDown(ui.MouseLeft) {
		t.Errorf("press after reopening: dragging = %v, down = %v", w.dragging, w.TitleBar.IsMouseDown(ui.MouseLeft))
	}
	h.frame(grab, false, w.Render)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestPopup_CloseReleasesPointer(t *testing.T) {
	p := newTestPopup(t)
	p.Root.Events.Click.Subscribe(func(ui.MouseEvent) {})
	p.OpenAt(ui.Vec2{X: 100, Y: 100})
	h := newHost()

	h.frame(ui.Vec2{X: 105, Y: 105}, false, p.Render)
	h.frame(ui.Vec2{X: 105, Y: 105}, true, p.Render)
	if !p.Root.IsMouseDown(ui.MouseLeft) {
		t.Fatal("popup not pressed")
	}
	p.Close()
	if p.Root.IsMouseOver() || p.Root.IsMouseDown(ui.MouseLeft) {
		t.Error("closed popup kept its pointer state")
	}
}

func TestWindow_Toggle(t *testing.T) {
	w := newTestWindow(t)
	w.Toggle()
	if !w.IsOpen() {
		t.Fatal("Toggle did not open")
	}
	w.Toggle()
	if w.IsOpen() {
		t.Fatal("Toggle did not close")
	}
	w.SetTitle("Profiler")
	if w.Title() != "Profiler" {
		t.Errorf("Title() = %q", w.Title())
	}
}

func newTestPopup(t *testing.T) *Popup {
	t.Helper()
	p, err := NewPopup("Menu", DefaultStyle())
	if err != nil {
		t.Fatalf("NewPopup: %v", err)
	}
	if err := p.Add(sized("Item", 100, 50)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return p
}

func TestPopup_DismissOnOutsidePress(t *testing.T) {
	owner := sized("Owner", 20, 20)
	owner.ComputeLayout(&ui.Context{}, ui.Vec2{})

	tests := map[string]struct {
		press    ui.Vec2
		wantOpen bool
	}{
		"inside":  {press: ui.Vec2{X: 150, Y: 120}, wantOpen: true},
		"owner":   {press: ui.Vec2{X: 10, Y: 10}, wantOpen: true},
		"outside": {press: ui.Vec2{X: 400, Y: 400}, wantOpen: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := newTestPopup(t)
			p.Owner = owner
			closed := 0
			p.OnClose.Subscribe(func(*Popup) { closed++ })
			p.OpenAt(ui.Vec2{X: 100, Y: 100})

			h := newHost()
			h.frame(tt.press, false, p.Render)
			h.frame(tt.press, true, p.Render)

			if p.IsOpen() != tt.wantOpen {
				t.Errorf("IsOpen() = %v, want %v", p.IsOpen(), tt.wantOpen)
			}
			if wantClosed := !tt.wantOpen; (closed == 1) != wantClosed {
				t.Errorf("OnClose fired %d times", closed)
			}
		})
	}
}

func TestPopup_StaysInsideViewport(t *testing.T) {
	p := newTestPopup(t)
	h := newHost()
	h.ctx.Viewport = ui.NewRect(0, 0, 200, 200)

	p.OpenAt(ui.Vec2{X: 150, Y: 180})
	h.frame(ui.Vec2{}, false, p.Render)
	if got := p.Root.ContentBox(); got != ui.NewRect(84, 134, 116, 66) {
		t.Errorf("ContentBox() = %+v", got)
	}

	p.Toggle(ui.Vec2{})
	if p.IsOpen() {
		t.Fatal("Toggle did not close")
	}
	h.frame(ui.Vec2{}, false, p.Render)
	if len(h.out.Commands) != 0 {
		t.Error("closed popup drawn")
	}
}
