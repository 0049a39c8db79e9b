// Package shell composes element trees into windows and popups: chrome,
// backdrop, dragging, open state and occlusion-aware rendering.
package shell

import (
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/ui"
)

// Style is the chrome shared by windows and popups.
type Style struct {
	FontSize    float32
	Background  colors.Color
	Border      colors.Color
	TitleBar    colors.Color
	TitleText   colors.Color
	CloseHover  colors.Color
	Shadow      colors.Color
	ShadowSize  float32
	Rounding    float32
	BodyPadding ui.Spacing
	BodyGap     float32
}

func DefaultStyle() Style {
	return Style{
		FontSize:    16,
		Background:  colors.DarkGray.WithAlpha(0.92),
		Border:      colors.Gray.WithAlpha(0.6),
		TitleBar:    colors.Color{0.14, 0.17, 0.22, 1},
		TitleText:   colors.White,
		CloseHover:  colors.Color{0.75, 0.2, 0.2, 1},
		Shadow:      colors.Black.WithAlpha(0.5),
		ShadowSize:  6,
		Rounding:    4,
		BodyPadding: ui.SpacingAll(8),
		BodyGap:     4,
	}
}

// backdrop adds the shadow and background nodes to e.
func (s Style) backdrop(e *ui.Element) {
	e.AddNode(
		&ui.ShadowNode{NodeBase: ui.NodeBase{ID: "shadow"}, Color: s.Shadow, Size: s.ShadowSize, Offset: ui.Vec2{X: 2, Y: 2}},
		&ui.RectNode{NodeBase: ui.NodeBase{ID: "backdrop"}, Color: s.Background, BorderColor: s.Border, BorderWidth: 1, Rounding: s.Rounding},
	)
}

// bounds is where a root element's content box lands when rendered at the
// origin, without running a full layout.
func bounds(ctx *ui.Context, root *ui.Element) ui.Rect {
	pos := root.RootPosition(ctx, ui.Vec2{})
	size := root.ComputeSize(ctx)
	return ui.NewRect(pos.X+root.Margin.Left, pos.Y+root.Margin.Top, size.Width, size.Height)
}
