package ui

import (
	"cmp"
	"slices"
)

// ContentBox is the element's box excluding margin, as of the last layout.
func (e *Element) ContentBox() Rect { return e.contentBox }

// BoundingBox is the content box expanded by the margin.
func (e *Element) BoundingBox() Rect { return e.boundingBox }

// InnerBox is the content box minus padding; children are placed inside it.
func (e *Element) InnerBox() Rect { return e.contentBox.Shrink(e.Padding) }

// ComputeSize resolves the content box size. Each axis is the explicit Size
// when non-zero, otherwise the larger of the node sizes and the children's
// total along the flow axis (gaps included) or maximum across it. Padding is
// always added.
func (e *Element) ComputeSize(ctx *Context) Size {
	w, h := e.Size.Width, e.Size.Height
	if w == 0 || h == 0 {
		natural := e.naturalSize(ctx)
		if w == 0 {
			w = natural.Width
		}
		if h == 0 {
			h = natural.Height
		}
	}
	return Size{
		Width:  maxf(0, w+e.Padding.Horizontal()),
		Height: maxf(0, h+e.Padding.Vertical()),
	}
}

func (e *Element) outerSize(ctx *Context) Size {
	s := e.ComputeSize(ctx)
	return Size{s.Width + e.Margin.Horizontal(), s.Height + e.Margin.Vertical()}
}

func (e *Element) naturalSize(ctx *Context) Size {
	var s Size
	m := ctx.measurer()
	for _, n := range e.Nodes {
		if n.base().Hidden {
			continue
		}
		ns := nodeSize(m, n, e.Size.Width)
		s.Width = maxf(s.Width, ns.Width)
		s.Height = maxf(s.Height, ns.Height)
	}

	var along, across float32
	count := 0
	for _, c := range e.children {
		if !c.Visible {
			continue
		}
		cs := c.outerSize(ctx)
		if e.Flow == FlowVertical {
			along += cs.Height
			across = maxf(across, cs.Width)
		} else {
			along += cs.Width
			across = maxf(across, cs.Height)
		}
		count++
	}
	if count > 1 {
		along += e.Gap * float32(count-1)
	}
	if e.Flow == FlowVertical {
		s.Width = maxf(s.Width, across)
		s.Height = maxf(s.Height, along)
	} else {
		s.Width = maxf(s.Width, along)
		s.Height = maxf(s.Height, across)
	}
	return s
}

// ComputeLayout lays out e and every visible descendant in one top-down pass.
// For a root element the bounding box is placed at origin+Position, shifted by
// its own size when anchored Right/Center or Bottom/Middle. Non-root elements
// ignore origin and keep the position assigned by their parent's last layout.
func (e *Element) ComputeLayout(ctx *Context, origin Vec2) {
	e.prepare()
	if e.parent != nil {
		e.layout(ctx, e.boundingBox.Min())
		return
	}
	e.layout(ctx, e.RootPosition(ctx, origin))
}

// RootPosition returns where a root element's bounding box starts when laid
// out at origin.
func (e *Element) RootPosition(ctx *Context, origin Vec2) Vec2 {
	return origin.Add(e.Position).Add(e.anchorOffset(e.outerSize(ctx)))
}

func (e *Element) anchorOffset(s Size) Vec2 {
	var off Vec2
	switch e.Anchor.horizontal() {
	case AnchorRight:
		off.X = -s.Width
	case AnchorCenter:
		off.X = -s.Width / 2
	}
	switch e.Anchor.vertical() {
	case AnchorBottom:
		off.Y = -s.Height
	case AnchorMiddle:
		off.Y = -s.Height / 2
	}
	return off
}

// prepare runs the before-compute hooks top-down and sorts children, so that
// sizes computed afterwards see the final content of the whole subtree.
func (e *Element) prepare() {
	e.Events.BeforeCompute.Emit(e)
	e.sortChildren()
	for _, c := range e.children {
		if c.Visible {
			c.prepare()
		}
	}
}

// sortChildren orders children by SortIndex. When every index is zero the
// insertion order is left untouched.
func (e *Element) sortChildren() {
	if !slices.ContainsFunc(e.children, func(c *Element) bool { return c.SortIndex != 0 }) {
		return
	}
	slices.SortStableFunc(e.children, func(a, b *Element) int {
		return cmp.Compare(a.SortIndex, b.SortIndex)
	})
}

func (e *Element) layout(ctx *Context, at Vec2) {
	size := e.ComputeSize(ctx)
	if e.fitSize.Width > 0 {
		size.Width = e.fitSize.Width
	}
	if e.fitSize.Height > 0 {
		size.Height = e.fitSize.Height
	}

	e.boundingBox = Rect{
		X:      at.X,
		Y:      at.Y,
		Width:  size.Width + e.Margin.Horizontal(),
		Height: size.Height + e.Margin.Vertical(),
	}
	e.contentBox = Rect{X: at.X + e.Margin.Left, Y: at.Y + e.Margin.Top, Width: size.Width, Height: size.Height}

	inner := e.InnerBox()
	visible := make([]*Element, 0, len(e.children))
	for _, c := range e.children {
		if c.Visible {
			c.fitSize = Size{}
			visible = append(visible, c)
		}
	}
	if len(visible) == 0 {
		return
	}

	sizes := make([]Size, len(visible))
	for i, c := range visible {
		sizes[i] = c.outerSize(ctx)
	}
	xs := e.placeAxis(visible, sizes, inner.X, inner.Width, e.Flow == FlowHorizontal, true)
	ys := e.placeAxis(visible, sizes, inner.Y, inner.Height, e.Flow == FlowVertical, false)
	for i, c := range visible {
		c.layout(ctx, Vec2{xs[i], ys[i]})
	}

	e.resolveFit(ctx, visible, inner)
}

type lane int

const (
	laneStart lane = iota
	laneEnd
	laneCenter
)

func (a Anchor) lane(horizontal bool) lane {
	if horizontal {
		switch a.horizontal() {
		case AnchorRight:
			return laneEnd
		case AnchorCenter:
			return laneCenter
		}
		return laneStart
	}
	switch a.vertical() {
	case AnchorBottom:
		return laneEnd
	case AnchorMiddle:
		return laneCenter
	}
	return laneStart
}

// placeAxis positions children along one axis. Each child falls into one lane
// (start, end or centre) by its anchor. When the axis is the flow axis the
// members of a lane advance a cursor; otherwise they share the lane edge.
// The centre lane is centred as a group.
func (e *Element) placeAxis(children []*Element, sizes []Size, start, length float32, flowing, horizontal bool) []float32 {
	extent := func(i int) float32 {
		if horizontal {
			return sizes[i].Width
		}
		return sizes[i].Height
	}

	var centerTotal float32
	centerCount := 0
	if flowing {
		for i, c := range children {
			if c.Anchor.lane(horizontal) == laneCenter {
				centerTotal += extent(i)
				centerCount++
			}
		}
		if centerCount > 1 {
			centerTotal += e.Gap * float32(centerCount-1)
		}
	}

	out := make([]float32, len(children))
	var head, tail float32
	centerCursor := (length - centerTotal) / 2
	for i, c := range children {
		size := extent(i)
		switch c.Anchor.lane(horizontal) {
		case laneEnd:
			out[i] = start + length - tail - size
			if flowing {
				tail += size + e.Gap
			}
		case laneCenter:
			if flowing {
				out[i] = start + centerCursor
				centerCursor += size + e.Gap
			} else {
				out[i] = start + (length-size)/2
			}
		default:
			out[i] = start + head
			if flowing {
				head += size + e.Gap
			}
		}
	}
	return out
}

// resolveFit stretches Fit children across the parent's flow: their cross
// axis consumes the whole inner box, and they are laid out again from the
// lane start.
func (e *Element) resolveFit(ctx *Context, children []*Element, inner Rect) {
	for _, c := range children {
		if !c.Fit {
			continue
		}
		at := c.boundingBox.Min()
		if e.Flow == FlowVertical {
			c.fitSize.Width = maxf(0, inner.Width-c.Margin.Horizontal())
			at.X = inner.X
		} else {
			c.fitSize.Height = maxf(0, inner.Height-c.Margin.Vertical())
			at.Y = inner.Y
		}
		c.layout(ctx, at)
	}
}
