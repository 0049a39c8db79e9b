package shell

import (
	"log"
	"math"

	"github.com/hubastard/veil/engine/clip"
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/ui"
)

// FrameMode records how the last Render call treated a window.
type FrameMode int

const (
	FrameSkipped FrameMode = iota // closed or fully occluded
	FrameFull
	FrameSplit // replayed once per visible piece
)

func (m FrameMode) String() string {
	switch m {
	case FrameFull:
		return "full"
	case FrameSplit:
		return "split"
	}
	return "skipped"
}

// Window is a draggable root element with a title bar, a close button and a
// body that stretches to the window width.
type Window struct {
	Root     *ui.Element
	TitleBar *ui.Element
	Body     *ui.Element

	// Clip reports which parts of the window are not covered by host UI.
	// Nil means nothing covers it.
	Clip      clip.Solver
	Draggable bool

	OnClose ui.Event[*Window]

	title    *ui.TextNode
	closeBtn *ui.Element
	closeBg  *ui.RectNode
	style    Style

	open     bool
	dragging bool
	grab     ui.Vec2
	rec      ui.Recorder
	last     FrameMode
}

func NewWindow(id, title string, style Style) (*Window, error) {
	root, err := ui.New(id)
	if err != nil {
		return nil, err
	}
	w := &Window{
		Root:      root,
		TitleBar:  ui.MustNew("TitleBar"),
		Body:      ui.MustNew("Body"),
		Draggable: true,
		style:     style,
	}
	root.Flow = ui.FlowVertical
	style.backdrop(root)

	w.TitleBar.Fit = true
	w.TitleBar.Padding = ui.SpacingXY(8, 4)
	w.TitleBar.Gap = 8
	w.TitleBar.AddNode(&ui.RectNode{NodeBase: ui.NodeBase{ID: "bg"}, Color: style.TitleBar, Rounding: style.Rounding})
	w.TitleBar.Events.MouseDown.Subscribe(w.startDrag)

	w.title = &ui.TextNode{NodeBase: ui.NodeBase{ID: "text"}, Text: title, FontSize: style.FontSize, Color: style.TitleText}
	titleEl := ui.MustNew("Title").AddNode(w.title)

	w.closeBg = &ui.RectNode{NodeBase: ui.NodeBase{ID: "bg"}, Rounding: 2}
	w.closeBtn = ui.MustNew("Close").AddNode(w.closeBg, &ui.TextNode{
		NodeBase: ui.NodeBase{ID: "text"},
		Text:     "×",
		FontSize: style.FontSize,
		Color:    style.TitleText,
		Align:    ui.TextAlignCenter,
	})
	w.closeBtn.Anchor = ui.AnchorRight
	w.closeBtn.Padding = ui.SpacingXY(4, 0)
	w.closeBtn.Events.MouseEnter.Subscribe(func(*ui.Element) { w.closeBg.Color = style.CloseHover })
	w.closeBtn.Events.MouseLeave.Subscribe(func(*ui.Element) { w.closeBg.Color = colors.Transparent })
	w.closeBtn.Events.Click.Subscribe(func(ev ui.MouseEvent) {
		if ev.Button == ui.MouseLeft {
			w.Close()
		}
	})

	w.Body.Fit = true
	w.Body.Flow = ui.FlowVertical
	w.Body.Padding = style.BodyPadding
	w.Body.Gap = style.BodyGap

	for _, c := range []struct{ parent, child *ui.Element }{
		{w.TitleBar, titleEl}, {w.TitleBar, w.closeBtn}, {root, w.TitleBar}, {root, w.Body},
	} {
		if err := c.parent.AddChild(c.child); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *Window) Title() string         { return w.title.Text }
func (w *Window) SetTitle(title string) { w.title.Text = title }
func (w *Window) IsOpen() bool          { return w.open }
func (w *Window) LastFrame() FrameMode  { return w.last }

// Add appends content to the window body.
func (w *Window) Add(children ...*ui.Element) error {
	for _, c := range children {
		if err := w.Body.AddChild(c); err != nil {
			return err
		}
	}
	return nil
}

// Open shows the window at its current position.
func (w *Window) Open() {
	if w.open {
		return
	}
	w.open = true
	log.Printf("shell: window %q opened", w.Root.ID())
}

// Close hides the window and notifies OnClose subscribers. Hover and held
// presses inside the window are released.
func (w *Window) Close() {
	if !w.open {
		return
	}
	w.open = false
	w.dragging = false
	w.Root.ReleasePointer()
	log.Printf("shell: window %q closed", w.Root.ID())
	w.OnClose.Emit(w)
}

func (w *Window) Toggle() {
	if w.open {
		w.Close()
	} else {
		w.Open()
	}
}

// Render draws an open window. A fully covered window is skipped without
// processing input. A partially covered one is recorded once and replayed
// under a clip for every visible piece, with the pointer hidden from it
// while it is over a covered part.
func (w *Window) Render(ctx *ui.Context) {
	w.last = FrameSkipped
	if !w.open {
		return
	}
	// a handler may close the window mid-pass, after Close already released
	defer func() {
		if !w.open {
			w.Root.ReleasePointer()
		}
	}()
	w.drag(ctx.Input)

	box := bounds(ctx, w.Root)
	solver := w.Clip
	if solver == nil {
		solver = clip.None{}
	}
	pieces := solver.Visible(box)
	switch {
	case len(pieces) == 0:
		w.Root.ReleasePointer()
		return
	case len(pieces) == 1 && pieces[0] == box:
		w.last = FrameFull
		w.Root.Render(ctx, ui.Vec2{})
		return
	}

	w.last = FrameSplit
	dl := ctx.DrawList
	w.rec.Reset()
	w.rec.Measurer = dl
	sub := *ctx
	sub.DrawList = &w.rec
	if ctx.Input != nil {
		sub.Input = &maskedInput{Input: ctx.Input, visible: pieces}
	}
	w.Root.Render(&sub, ui.Vec2{})
	if dl == nil {
		return
	}
	for _, p := range pieces {
		dl.PushClip(p)
		w.rec.Replay(dl)
		dl.PopClip()
	}
}

func (w *Window) startDrag(ev ui.MouseEvent) {
	if !w.Draggable || ev.Button != ui.MouseLeft || w.closeBtn.IsMouseOver() {
		return
	}
	w.dragging = true
	w.grab = ev.Position.Sub(w.Root.Position)
}

func (w *Window) drag(in ui.Input) {
	if !w.dragging || in == nil {
		return
	}
	if !in.IsMouseDown(ui.MouseLeft) {
		w.dragging = false
		return
	}
	w.Root.Position = in.MousePosition().Sub(w.grab)
}

// maskedInput moves the pointer out of reach while it is over a covered
// part of the window.
type maskedInput struct {
	ui.Input
	visible []ui.Rect
}

var offscreen = ui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32}

func (m *maskedInput) MousePosition() ui.Vec2 {
	p := m.Input.MousePosition()
	for _, r := range m.visible {
		if r.Contains(p) {
			return p
		}
	}
	return offscreen
}
