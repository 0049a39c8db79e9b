package ui

import (
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/profiler"
)

// Context carries the per-frame collaborators of a render pass.
type Context struct {
	DrawList DrawList
	Input    Input // nil disables interaction for the pass
	Viewport Rect

	TooltipColor     colors.Color
	TooltipTextColor colors.Color
	TooltipFontSize  float32

	tooltip *Element
}

func (ctx *Context) measurer() TextMeasurer {
	if ctx == nil || ctx.DrawList == nil {
		return nil
	}
	return ctx.DrawList
}

// Render draws e and its visible descendants. A root element is laid out at
// position first; a non-root element is drawn where its last layout put it.
// Hidden elements drop any hover or press they held.
func (e *Element) Render(ctx *Context, position Vec2) {
	if !e.Visible {
		e.ReleasePointer()
		return
	}
	root := e.parent == nil
	if root {
		end := profiler.Start("ui.layout")
		e.ComputeLayout(ctx, position)
		end()
		ctx.tooltip = nil
	}

	end := profiler.Start("ui.render")
	e.render(ctx, e.parentOpacity())
	end()

	if root && ctx.tooltip != nil {
		e.drawTooltip(ctx)
	}
}

func (e *Element) parentOpacity() float32 {
	op := float32(1)
	for p := e.parent; p != nil; p = p.parent {
		op *= p.Opacity
	}
	return op
}

// Opacity after inheritance, as of the last render.
func (e *Element) ComputedOpacity() float32 { return e.opacity }

func (e *Element) render(ctx *Context, inherited float32) {
	e.Events.BeforeRender.Emit(e)
	e.opacity = clampf(e.Opacity, 0, 1) * inherited

	e.HandleInput(ctx.Input)
	if e.IsTooltipVisible() {
		ctx.tooltip = e
	}

	if ctx.DrawList != nil && e.opacity > 0 {
		e.drawNodes(ctx.DrawList)
	}

	for _, c := range e.children {
		if c.Visible {
			c.render(ctx, e.opacity)
		} else {
			c.ReleasePointer()
		}
	}
	e.Events.AfterRender.Emit(e)
}

func (e *Element) drawNodes(dl DrawList) {
	if len(e.Nodes) == 0 || e.contentBox.IsEmpty() {
		return
	}
	// Shadows spill outside the content box, so they are drawn before the clip.
	for _, n := range e.Nodes {
		if s, ok := n.(*ShadowNode); ok && !s.Hidden {
			drawShadow(dl, e.contentBox.Shrink(s.Inset), s, e.opacity)
		}
	}
	// Rects fill the content box; every other node stays inside the padding.
	dl.PushClip(e.contentBox)
	inner := false
	for _, n := range e.Nodes {
		if _, shadow := n.(*ShadowNode); shadow || n.base().Hidden {
			continue
		}
		_, box := n.(*RectNode)
		switch {
		case !box && !inner:
			dl.PushClip(e.InnerBox())
			inner = true
		case box && inner:
			dl.PopClip()
			inner = false
		}
		e.drawNode(dl, n)
	}
	if inner {
		dl.PopClip()
	}
	dl.PopClip()
}

func (e *Element) drawNode(dl DrawList, n Node) {
	op := e.opacity
	switch n := n.(type) {
	case *RectNode:
		r := e.contentBox.Shrink(n.Inset)
		if n.Color[3] > 0 {
			dl.FillRect(r, multiplyAlpha(n.Color, op), n.Rounding)
		}
		if n.BorderWidth > 0 && n.BorderColor[3] > 0 {
			dl.StrokeRect(r, multiplyAlpha(n.BorderColor, op), n.BorderWidth, n.Rounding)
		}
	case *TextNode:
		e.drawText(dl, n, op)
	case *ImageNode:
		r := e.InnerBox().Shrink(n.Inset)
		tint := n.Tint
		if tint == (colors.Color{}) {
			tint = colors.White
		}
		dl.Image(r, n.Image, multiplyAlpha(tint, op), n.Rotation)
	case *LineNode:
		origin := e.InnerBox().Shrink(n.Inset).Min()
		thickness := n.Thickness
		if thickness <= 0 {
			thickness = 1
		}
		dl.Line(origin.Add(n.From), origin.Add(n.To), multiplyAlpha(n.Color, op), thickness)
	case *CustomNode:
		if n.Draw != nil {
			n.Draw(dl, e.InnerBox().Shrink(n.Inset), op)
		}
	}
}

func (e *Element) drawText(dl DrawList, n *TextNode, op float32) {
	r := e.InnerBox().Shrink(n.Inset)
	limit := n.MaxWidth
	if limit == 0 && n.Wrap {
		limit = r.Width
	}
	lines, total := layoutText(dl, n.Text, n.FontSize, n.Wrap, limit)
	if len(lines) == 0 {
		return
	}
	color := n.Color
	if color == (colors.Color{}) {
		color = colors.White
	}
	color = multiplyAlpha(color, op)

	y := r.Y
	switch n.VAlign.vertical() {
	case AnchorMiddle:
		y += (r.Height - total.Height) / 2
	case AnchorBottom:
		y += r.Height - total.Height
	}
	lineH := total.Height / float32(len(lines))
	for _, line := range lines {
		x := r.X
		if n.Align != TextAlignLeft {
			w := dl.MeasureText(line, n.FontSize).Width
			if n.Align == TextAlignCenter {
				x += (r.Width - w) / 2
			} else {
				x += r.Width - w
			}
		}
		if line != "" {
			dl.Text(Vec2{x, y}, line, n.FontSize, color)
		}
		y += lineH
	}
}

// drawShadow approximates a blurred shadow with concentric translucent rects.
func drawShadow(dl DrawList, r Rect, n *ShadowNode, op float32) {
	steps := int(n.Size)
	if steps <= 0 || n.Color[3] <= 0 {
		return
	}
	r.X += n.Offset.X
	r.Y += n.Offset.Y
	step := n.Color[3] * op / float32(steps)
	for i := steps; i > 0; i-- {
		grow := float32(i)
		dl.FillRect(r.Expand(SpacingAll(grow)), n.Color.WithAlpha(step), grow)
	}
}

func (e *Element) drawTooltip(ctx *Context) {
	dl := ctx.DrawList
	if dl == nil || ctx.Input == nil {
		return
	}
	size := ctx.TooltipFontSize
	if size <= 0 {
		size = 14
	}
	bg, fg := ctx.TooltipColor, ctx.TooltipTextColor
	if bg == (colors.Color{}) {
		bg = colors.Black.WithAlpha(0.85)
	}
	if fg == (colors.Color{}) {
		fg = colors.White
	}

	text := ctx.tooltip.Tooltip
	ts := dl.MeasureText(text, size)
	pad := size / 2
	mouse := ctx.Input.MousePosition()
	box := Rect{X: mouse.X + 16, Y: mouse.Y + 16, Width: ts.Width + pad*2, Height: ts.Height + pad*2}
	if !ctx.Viewport.IsEmpty() {
		if box.Right() > ctx.Viewport.Right() {
			box.X = mouse.X - box.Width - 4
		}
		if box.Bottom() > ctx.Viewport.Bottom() {
			box.Y = mouse.Y - box.Height - 4
		}
	}
	dl.FillRect(box, bg, 4)
	dl.Text(Vec2{box.X + pad, box.Y + pad}, text, size, fg)
}

// TooltipOwner returns the element whose tooltip was shown in the last root
// render, or nil.
func (ctx *Context) TooltipOwner() *Element { return ctx.tooltip }

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
