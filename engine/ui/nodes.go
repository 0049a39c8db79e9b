package ui

import (
	"fmt"
	"strings"

	"github.com/hubastard/veil/engine/colors"
)

// Node is a renderable attachment drawn inside an Element's box. The set of
// node kinds is closed: RectNode, TextNode, ImageNode, LineNode, ShadowNode
// and CustomNode.
type Node interface {
	base() *NodeBase
}

// NodeBase carries the fields shared by every node kind.
type NodeBase struct {
	ID     string
	Hidden bool
	Inset  Spacing // shrinks the node rect
}

func (b *NodeBase) base() *NodeBase { return b }

// RectNode fills (and optionally outlines) the whole content box. It is the
// background of an element and ignores padding.
type RectNode struct {
	NodeBase
	Color       colors.Color
	BorderColor colors.Color
	BorderWidth float32
	Rounding    float32
}

// ShadowNode draws a soft shadow around the content box.
type ShadowNode struct {
	NodeBase
	Color  colors.Color
	Size   float32 // spread in pixels
	Offset Vec2
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextNode draws text inside the padded box. With Wrap set, lines are broken
// on word boundaries at MaxWidth, or at the element's explicit width.
type TextNode struct {
	NodeBase
	Text     string
	FontSize float32
	Color    colors.Color
	Align    TextAlign
	VAlign   Anchor // AnchorTop, AnchorMiddle or AnchorBottom
	Wrap     bool
	MaxWidth float32
}

// ImageNode draws a backend image handle (a texture for the GPU backend).
type ImageNode struct {
	NodeBase
	Image    any
	Natural  Size
	Tint     colors.Color
	Rotation float32 // radians
}

// LineNode draws a straight line between two points relative to the padded box.
type LineNode struct {
	NodeBase
	From, To  Vec2
	Color     colors.Color
	Thickness float32
}

// CustomNode delegates drawing to a callback.
type CustomNode struct {
	NodeBase
	Natural Size
	Draw    func(dl DrawList, r Rect, opacity float32)
}

// Node returns the attachment with the given id.
func (e *Element) Node(id string) (Node, error) {
	for _, n := range e.Nodes {
		if n.base().ID == id {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: node %q on %q", ErrNotFound, id, e.FullPath())
}

// NodeAs returns the attachment with the given id as concrete type T.
func NodeAs[T Node](e *Element, id string) (T, error) {
	var zero T
	n, err := e.Node(id)
	if err != nil {
		return zero, err
	}
	t, ok := n.(T)
	if !ok {
		return zero, fmt.Errorf("%w: node %q on %q is %T", ErrNodeType, id, e.FullPath(), n)
	}
	return t, nil
}

// AddNode appends attachments and returns e for chaining in static trees.
func (e *Element) AddNode(nodes ...Node) *Element {
	e.Nodes = append(e.Nodes, nodes...)
	return e
}

// nodeSize is the natural size a node asks of its element. widthLimit is the
// element's explicit width, or 0 when the width is automatic.
func nodeSize(m TextMeasurer, n Node, widthLimit float32) Size {
	var s Size
	switch n := n.(type) {
	case *TextNode:
		limit := n.MaxWidth
		if limit == 0 && n.Wrap {
			limit = widthLimit
		}
		_, s = layoutText(m, n.Text, n.FontSize, n.Wrap, limit)
	case *ImageNode:
		s = n.Natural
	case *CustomNode:
		s = n.Natural
	case *LineNode:
		s = Size{maxf(n.From.X, n.To.X), maxf(n.From.Y, n.To.Y)}
	}
	in := n.base().Inset
	if s.Width > 0 {
		s.Width += in.Horizontal()
	}
	if s.Height > 0 {
		s.Height += in.Vertical()
	}
	return s
}

// layoutText measures s and, when wrap is set and maxWidth is positive,
// breaks it on spaces so that no line exceeds maxWidth unless a single word
// does.
func layoutText(m TextMeasurer, s string, size float32, wrap bool, maxWidth float32) ([]string, Size) {
	if s == "" || m == nil {
		return nil, Size{}
	}
	if !wrap || maxWidth <= 0 {
		lines := strings.Split(s, "\n")
		return lines, m.MeasureText(s, size)
	}

	lineH := m.MeasureText("M", size).Height
	spaceW := m.MeasureText(" ", size).Width

	var wrapped []string
	var widest float32
	for _, raw := range strings.Split(s, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			wrapped = append(wrapped, "")
			continue
		}
		current := words[0]
		currentW := m.MeasureText(current, size).Width
		for _, word := range words[1:] {
			wordW := m.MeasureText(word, size).Width
			if currentW+spaceW+wordW > maxWidth {
				wrapped = append(wrapped, current)
				widest = maxf(widest, currentW)
				current, currentW = word, wordW
				continue
			}
			current += " " + word
			currentW += spaceW + wordW
		}
		wrapped = append(wrapped, current)
		widest = maxf(widest, currentW)
	}
	return wrapped, Size{Width: widest, Height: lineH * float32(len(wrapped))}
}
