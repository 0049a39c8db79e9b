// Package r2d draws UI element trees with the batched GPU renderer.
package r2d

import (
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/gfx/renderer2d"
	"github.com/hubastard/veil/engine/text"
	"github.com/hubastard/veil/engine/ui"
)

// DrawList implements ui.DrawList on a Renderer2D scene. Calls must happen
// between the renderer's BeginScene and EndScene.
type DrawList struct {
	R    *renderer2d.Renderer2D
	Font *text.Font
}

var _ ui.DrawList = (*DrawList)(nil)

func New(r *renderer2d.Renderer2D, font *text.Font) *DrawList {
	return &DrawList{R: r, Font: font}
}

func (d *DrawList) MeasureText(s string, size float32) ui.Size {
	if d.Font == nil {
		return ui.FixedMeasurer{}.MeasureText(s, size)
	}
	w, h := text.MeasureText(d.Font, s, size)
	return ui.Size{Width: w, Height: h}
}

// FillRect fills r. Rounded corners are approximated by a cross of two rects
// with the corner squares cut out.
func (d *DrawList) FillRect(r ui.Rect, c colors.Color, rounding float32) {
	rad := min(rounding, r.Width*0.5, r.Height*0.5)
	if rad < 1 {
		d.R.DrawRect(r.X, r.Y, r.Width, r.Height, c)
		return
	}
	d.R.DrawRect(r.X+rad, r.Y, r.Width-2*rad, r.Height, c)
	d.R.DrawRect(r.X, r.Y+rad, rad, r.Height-2*rad, c)
	d.R.DrawRect(r.Right()-rad, r.Y+rad, rad, r.Height-2*rad, c)
}

func (d *DrawList) StrokeRect(r ui.Rect, c colors.Color, thickness, _ float32) {
	d.R.DrawRectOutline(r.X, r.Y, r.Width, r.Height, thickness, c)
}

func (d *DrawList) Line(from, to ui.Vec2, c colors.Color, thickness float32) {
	d.R.DrawLine(from.X, from.Y, to.X, to.Y, thickness, c)
}

func (d *DrawList) Text(pos ui.Vec2, s string, size float32, c colors.Color) {
	if d.Font == nil {
		return
	}
	text.DrawText(d.R, d.Font, pos.X, pos.Y, s, size, c)
}

// Image draws img, which is a core.Texture or a renderer2d.SubTexture2D,
// stretched over r and rotated about its centre.
func (d *DrawList) Image(r ui.Rect, img any, tint colors.Color, rotation float32) {
	switch img := img.(type) {
	case renderer2d.SubTexture2D:
		d.R.DrawSub(r.X, r.Y, r.Width, r.Height, img, tint, rotation)
	default:
		// nil draws a solid quad; anything else is a whole core.Texture
		d.R.Submit(renderer2d.Quad{X: r.X, Y: r.Y, W: r.Width, H: r.Height, Color: tint, Rotation: rotation, Texture: img})
	}
}

func (d *DrawList) PushClip(r ui.Rect) { d.R.PushClip(r.X, r.Y, r.Width, r.Height) }
func (d *DrawList) PopClip()           { d.R.PopClip() }
