package ui

import "strings"

type Vec2 struct{ X, Y float32 }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

type Size struct{ Width, Height float32 }

// Spacing is a four sided inset used for padding and margin.
type Spacing struct {
	Top, Right, Bottom, Left float32
}

// SpacingAll creates Spacing with the same value on all sides.
func SpacingAll(n float32) Spacing { return Spacing{n, n, n, n} }

// SpacingXY creates Spacing with horizontal (left/right) and vertical (top/bottom) values.
func SpacingXY(h, v float32) Spacing { return Spacing{Top: v, Right: h, Bottom: v, Left: h} }

func (s Spacing) Horizontal() float32 { return s.Left + s.Right }
func (s Spacing) Vertical() float32   { return s.Top + s.Bottom }

type Rect struct {
	X, Y, Width, Height float32
}

func NewRect(x, y, w, h float32) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

func (r Rect) Right() float32  { return r.X + r.Width }
func (r Rect) Bottom() float32 { return r.Y + r.Height }
func (r Rect) Min() Vec2       { return Vec2{r.X, r.Y} }
func (r Rect) Size() Size      { return Size{r.Width, r.Height} }
func (r Rect) IsEmpty() bool   { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Expand grows r outward by s. Used to derive a bounding box from a content box.
func (r Rect) Expand(s Spacing) Rect {
	return Rect{
		X:      r.X - s.Left,
		Y:      r.Y - s.Top,
		Width:  r.Width + s.Horizontal(),
		Height: r.Height + s.Vertical(),
	}
}

// Shrink moves r's edges inward by s. The result never has a negative size.
func (r Rect) Shrink(s Spacing) Rect {
	return Rect{
		X:      r.X + s.Left,
		Y:      r.Y + s.Top,
		Width:  maxf(0, r.Width-s.Horizontal()),
		Height: maxf(0, r.Height-s.Vertical()),
	}
}

// Intersect returns the overlap of r and o, or an empty rect at r's origin.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := maxf(r.X, o.X), maxf(r.Y, o.Y)
	x1, y1 := minf(r.Right(), o.Right()), minf(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Anchor selects which edge or centre line of the parent an element is placed
// against. Horizontal and vertical flags combine, e.g. AnchorTop|AnchorLeft.
type Anchor uint8

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight
	AnchorCenter // horizontal centre
	AnchorMiddle // vertical centre

	AnchorNone        Anchor = 0
	AnchorTopLeft            = AnchorTop | AnchorLeft
	AnchorTopRight           = AnchorTop | AnchorRight
	AnchorTopCenter          = AnchorTop | AnchorCenter
	AnchorBottomLeft         = AnchorBottom | AnchorLeft
	AnchorBottomRight        = AnchorBottom | AnchorRight
	AnchorBottomCenter       = AnchorBottom | AnchorCenter
	AnchorMiddleLeft         = AnchorMiddle | AnchorLeft
	AnchorMiddleRight        = AnchorMiddle | AnchorRight
	AnchorMiddleCenter       = AnchorMiddle | AnchorCenter
)

func (a Anchor) Has(flag Anchor) bool { return a&flag != 0 }

// horizontal returns the single horizontal lane of a: Left, Right or Center.
// Left wins when several are set and is the default when none is.
func (a Anchor) horizontal() Anchor {
	switch {
	case a.Has(AnchorLeft):
		return AnchorLeft
	case a.Has(AnchorRight):
		return AnchorRight
	case a.Has(AnchorCenter):
		return AnchorCenter
	}
	return AnchorLeft
}

// vertical returns the single vertical lane of a: Top, Bottom or Middle.
func (a Anchor) vertical() Anchor {
	switch {
	case a.Has(AnchorTop):
		return AnchorTop
	case a.Has(AnchorBottom):
		return AnchorBottom
	case a.Has(AnchorMiddle):
		return AnchorMiddle
	}
	return AnchorTop
}

var anchorNames = []struct {
	flag Anchor
	name string
}{
	{AnchorTop, "top"},
	{AnchorBottom, "bottom"},
	{AnchorLeft, "left"},
	{AnchorRight, "right"},
	{AnchorCenter, "center"},
	{AnchorMiddle, "middle"},
}

func (a Anchor) String() string {
	if a == AnchorNone {
		return "none"
	}
	var parts []string
	for _, n := range anchorNames {
		if a.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseAnchor parses "bottom|right" style strings. Separators may be '|', '+',
// ',' or spaces; names are case-insensitive.
func ParseAnchor(s string) (Anchor, bool) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '|' || r == '+' || r == ',' || r == ' '
	})
	var a Anchor
	for _, f := range fields {
		found := false
		for _, n := range anchorNames {
			if n.name == f {
				a |= n.flag
				found = true
				break
			}
		}
		if !found && f != "none" {
			return AnchorNone, false
		}
	}
	return a, true
}

// Flow is the axis along which an element lays out its children.
type Flow int

const (
	FlowHorizontal Flow = iota
	FlowVertical
)

func (f Flow) String() string {
	if f == FlowVertical {
		return "vertical"
	}
	return "horizontal"
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
