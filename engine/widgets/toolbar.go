package widgets

import (
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/ui"
)

// UIToolbar is a root strip of buttons laid out along one axis.
type UIToolbar struct {
	*ui.Element
	bg *ui.RectNode
}

func Toolbar(id string) *UIToolbar {
	t := &UIToolbar{Element: ui.MustNew(id), bg: &ui.RectNode{
		NodeBase: ui.NodeBase{ID: "bg"},
		Color:    colors.Black.WithAlpha(0.6),
		Rounding: 6,
	}}
	t.Gap = 4
	t.Padding = ui.SpacingAll(4)
	t.AddNode(t.bg)
	return t
}

func (t *UIToolbar) Vertical() *UIToolbar              { t.Flow = ui.FlowVertical; return t }
func (t *UIToolbar) BgColor(c colors.Color) *UIToolbar { t.bg.Color = c; return t }
func (t *UIToolbar) At(pos ui.Vec2, a ui.Anchor) *UIToolbar {
	t.Position = pos
	t.Anchor = a
	return t
}

// Add appends items in order. It fails on duplicate ids.
func (t *UIToolbar) Add(items ...*ui.Element) error {
	for _, it := range items {
		if err := t.AddChild(it); err != nil {
			return err
		}
	}
	return nil
}
