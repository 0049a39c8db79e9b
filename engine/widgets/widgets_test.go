package widgets

import (
	"testing"
	"time"

	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/ui"
)

type frames struct {
	root *ui.Element
	in   ui.InputState
	ctx  *ui.Context
}

func newFrames(root *ui.Element) *frames {
	f := &frames{root: root}
	f.ctx = &ui.Context{DrawList: &ui.Recorder{}, Input: &f.in}
	return f
}

func (f *frames) step(mouse ui.Vec2, left bool) {
	f.in.Advance(mouse, [3]bool{left}, 16*time.Millisecond)
	f.root.Render(f.ctx, ui.Vec2{})
}

func TestToolbar_Layout(t *testing.T) {
	bar := Toolbar("bar")
	save, load := Button("save", "Save"), Button("load", "Load")
	if err := bar.Add(save.Element, load.Element); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := bar.Add(Button("save", "Again").Element); err == nil {
		t.Error("duplicate button id accepted")
	}

	bar.ComputeLayout(&ui.Context{DrawList: &ui.Recorder{}}, ui.Vec2{})

	tests := map[string]struct {
		el   *ui.Element
		want ui.Rect
	}{
		"toolbar": {el: bar.Element, want: ui.NewRect(0, 0, 116, 36)},
		"save":    {el: save.Element, want: ui.NewRect(4, 4, 52, 28)},
		"load":    {el: load.Element, want: ui.NewRect(60, 4, 52, 28)},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.el.ContentBox(); got != tt.want {
				t.Errorf("ContentBox() = %+v, want %+v", got, tt.want)
			}
		})
	}

	bar.Vertical()
	bar.ComputeLayout(&ui.Context{DrawList: &ui.Recorder{}}, ui.Vec2{})
	if got := load.ContentBox(); got != ui.NewRect(4, 36, 52, 28) {
		t.Errorf("vertical load ContentBox() = %+v", got)
	}
}

func TestButton_ShadingAndClick(t *testing.T) {
	base := colors.Color{0.4, 0.4, 0.4, 1}
	clicks := 0
	b := Button("ok", "OK").BgColor(base).OnClick(func(ui.MouseEvent) { clicks++ })
	f := newFrames(b.Element)
	over, away := ui.Vec2{X: 5, Y: 5}, ui.Vec2{X: 500, Y: 500}

	steps := []struct {
		mouse ui.Vec2
		left  bool
		bg    colors.Color
	}{
		{away, false, base},
		{over, false, base.Scale(HoverShade)},
		{over, true, base.Scale(PressedShade)},
		{over, false, base.Scale(HoverShade)},
		{away, false, base},
	}
	for i, s := range steps {
		f.step(s.mouse, s.left)
		if got := b.Background(); got != s.bg {
			t.Errorf("step %d background = %v, want %v", i, got, s.bg)
		}
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestButton_IgnoresRightClickAndDisabled(t *testing.T) {
	clicks := 0
	b := Button("ok", "OK").OnClick(func(ui.MouseEvent) { clicks++ })
	f := newFrames(b.Element)
	over := ui.Vec2{X: 5, Y: 5}

	f.step(over, false)
	f.in.Advance(over, [3]bool{false, true}, time.Millisecond)
	b.Render(f.ctx, ui.Vec2{})
	f.in.Advance(over, [3]bool{}, time.Millisecond)
	b.Render(f.ctx, ui.Vec2{})
	if clicks != 0 {
		t.Errorf("right click counted, clicks = %d", clicks)
	}

	b.SetDisabled(true)
	if b.Background()[3] != colors.DarkGray[3]*0.5 {
		t.Errorf("disabled alpha = %v", b.Background()[3])
	}
	f.step(over, true)
	f.step(over, false)
	if clicks != 0 {
		t.Errorf("disabled button clicked, clicks = %d", clicks)
	}
}

func TestLabel_Builders(t *testing.T) {
	l := Label("title", "Gearsets").FontSize(20).Color(colors.Yellow).MaxWidth(100)
	n, err := ui.NodeAs[*ui.TextNode](l.Element, "text")
	if err != nil {
		t.Fatalf("NodeAs: %v", err)
	}
	if n.FontSize != 20 || n.Color != colors.Yellow || !n.Wrap || n.MaxWidth != 100 {
		t.Errorf("text node = %+v", n)
	}
	l.SetText("Other")
	if l.Text() != "Other" {
		t.Errorf("Text() = %q", l.Text())
	}
}

func TestIcon_NaturalSizeAndTooltip(t *testing.T) {
	icon := Icon("gear", nil, 24, 24).Hint("Settings")
	size := icon.ComputeSize(&ui.Context{})
	if size != (ui.Size{Width: 24, Height: 24}) {
		t.Errorf("ComputeSize() = %+v", size)
	}
	if !icon.IsInteractive() {
		t.Error("icon with a tooltip is not interactive")
	}
}
