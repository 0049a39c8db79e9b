package widgets

import (
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/ui"
)

// Shading applied to a button's background while hovered or pressed.
const (
	HoverShade   = 1.25
	PressedShade = 0.8
)

type UIButton struct {
	*ui.Element
	bg    *ui.RectNode
	label *ui.TextNode
	base  colors.Color
}

func Button(id, str string) *UIButton {
	b := &UIButton{
		Element: ui.MustNew(id),
		bg:      &ui.RectNode{NodeBase: ui.NodeBase{ID: "bg"}, Rounding: 4},
		label: &ui.TextNode{
			NodeBase: ui.NodeBase{ID: "text"},
			Text:     str,
			FontSize: DefaultFontSize,
			Color:    colors.White,
			Align:    ui.TextAlignCenter,
			VAlign:   ui.AnchorMiddle,
		},
	}
	b.Padding = ui.SpacingXY(10, 6)
	b.AddNode(b.bg, b.label)
	b.BgColor(colors.DarkGray)

	b.Events.MouseEnter.Subscribe(func(*ui.Element) { b.shade() })
	b.Events.MouseLeave.Subscribe(func(*ui.Element) { b.shade() })
	b.Events.MouseDown.Subscribe(func(ui.MouseEvent) { b.shade() })
	b.Events.MouseUp.Subscribe(func(ui.MouseEvent) { b.shade() })
	return b
}

func (b *UIButton) BgColor(c colors.Color) *UIButton   { b.base = c; b.shade(); return b }
func (b *UIButton) TextColor(c colors.Color) *UIButton { b.label.Color = c; return b }
func (b *UIButton) FontSize(size float32) *UIButton    { b.label.FontSize = size; return b }
func (b *UIButton) Rounding(r float32) *UIButton       { b.bg.Rounding = r; return b }
func (b *UIButton) Hint(tooltip string) *UIButton      { b.Tooltip = tooltip; return b }
func (b *UIButton) Sized(w, h float32) *UIButton       { b.Size = ui.Size{Width: w, Height: h}; return b }
func (b *UIButton) Pad(h, v float32) *UIButton         { b.Padding = ui.SpacingXY(h, v); return b }
func (b *UIButton) Anchored(a ui.Anchor) *UIButton     { b.Anchor = a; return b }
func (b *UIButton) Text() string                       { return b.label.Text }
func (b *UIButton) Background() colors.Color           { return b.bg.Color }

// OnClick subscribes fn to left-button clicks.
func (b *UIButton) OnClick(fn func(ui.MouseEvent)) *UIButton {
	b.Events.Click.Subscribe(func(ev ui.MouseEvent) {
		if ev.Button == ui.MouseLeft {
			fn(ev)
		}
	})
	return b
}

// SetDisabled greys the button out and stops it from reacting to the pointer.
func (b *UIButton) SetDisabled(disabled bool) *UIButton {
	b.Disabled = disabled
	b.shade()
	return b
}

func (b *UIButton) shade() {
	c := b.base
	switch {
	case b.Disabled:
		c = c.WithAlpha(c[3] * 0.5)
	case b.IsMouseDown(ui.MouseLeft):
		c = c.Scale(PressedShade)
	case b.IsMouseOver():
		c = c.Scale(HoverShade)
	}
	b.bg.Color = c
}
