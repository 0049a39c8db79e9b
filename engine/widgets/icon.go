package widgets

import (
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/ui"
)

// UIIcon shows a backend image at a fixed size.
type UIIcon struct {
	*ui.Element
	img *ui.ImageNode
}

func Icon(id string, img any, w, h float32) *UIIcon {
	i := &UIIcon{Element: ui.MustNew(id), img: &ui.ImageNode{
		NodeBase: ui.NodeBase{ID: "image"},
		Image:    img,
		Natural:  ui.Size{Width: w, Height: h},
		Tint:     colors.White,
	}}
	i.AddNode(i.img)
	return i
}

func (i *UIIcon) Tint(c colors.Color) *UIIcon  { i.img.Tint = c; return i }
func (i *UIIcon) Rotate(rad float32) *UIIcon   { i.img.Rotation = rad; return i }
func (i *UIIcon) Hint(tooltip string) *UIIcon  { i.Tooltip = tooltip; return i }
func (i *UIIcon) Anchored(a ui.Anchor) *UIIcon { i.Anchor = a; return i }
func (i *UIIcon) ImageNode() *ui.ImageNode     { return i.img }
