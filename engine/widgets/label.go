// Package widgets builds small reusable element subtrees (labels, buttons,
// icons, toolbars) on top of the ui engine. Builders chain:
//
//	widgets.Button("save", "Save").FontSize(14).OnClick(func(ui.MouseEvent) { ... })
package widgets

import (
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/ui"
)

const DefaultFontSize = 16

type UILabel struct {
	*ui.Element
	text *ui.TextNode
}

func Label(id, str string) *UILabel {
	l := &UILabel{Element: ui.MustNew(id), text: &ui.TextNode{
		NodeBase: ui.NodeBase{ID: "text"},
		Text:     str,
		FontSize: DefaultFontSize,
		Color:    colors.White,
	}}
	l.AddNode(l.text)
	return l
}

func (l *UILabel) FontSize(size float32) *UILabel { l.text.FontSize = size; return l }
func (l *UILabel) Color(c colors.Color) *UILabel  { l.text.Color = c; return l }
func (l *UILabel) Align(a ui.TextAlign) *UILabel  { l.text.Align = a; return l }
func (l *UILabel) Wrap(enabled bool) *UILabel     { l.text.Wrap = enabled; return l }
func (l *UILabel) SetText(s string) *UILabel      { l.text.Text = s; return l }
func (l *UILabel) Text() string                   { return l.text.Text }
func (l *UILabel) TextNode() *ui.TextNode         { return l.text }
func (l *UILabel) Anchored(a ui.Anchor) *UILabel  { l.Anchor = a; return l }
func (l *UILabel) Margins(s ui.Spacing) *UILabel  { l.Margin = s; return l }
func (l *UILabel) VAlign(a ui.Anchor) *UILabel    { l.text.VAlign = a; return l }
func (l *UILabel) Sized(w, h float32) *UILabel    { l.Size = ui.Size{Width: w, Height: h}; return l }
func (l *UILabel) MaxWidth(width float32) *UILabel {
	l.text.MaxWidth = width
	if width > 0 {
		l.text.Wrap = true
	}
	return l
}
