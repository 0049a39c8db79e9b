package ui

import "github.com/hubastard/veil/engine/colors"

// TextMeasurer reports the size of a text run at a font size.
type TextMeasurer interface {
	MeasureText(s string, size float32) Size
}

// DrawList is the drawing backend. All coordinates are absolute screen
// coordinates; the backend owns the pixels, the UI only issues commands.
type DrawList interface {
	TextMeasurer
	FillRect(r Rect, c colors.Color, rounding float32)
	StrokeRect(r Rect, c colors.Color, thickness, rounding float32)
	Line(from, to Vec2, c colors.Color, thickness float32)
	Text(pos Vec2, s string, size float32, c colors.Color)
	Image(r Rect, img any, tint colors.Color, rotation float32)
	PushClip(r Rect)
	PopClip()
}

type CommandKind uint8

const (
	CmdFillRect CommandKind = iota
	CmdStrokeRect
	CmdLine
	CmdText
	CmdImage
	CmdPushClip
	CmdPopClip
)

func (k CommandKind) String() string {
	switch k {
	case CmdFillRect:
		return "fill"
	case CmdStrokeRect:
		return "stroke"
	case CmdLine:
		return "line"
	case CmdText:
		return "text"
	case CmdImage:
		return "image"
	case CmdPushClip:
		return "push-clip"
	case CmdPopClip:
		return "pop-clip"
	}
	return "unknown"
}

// Command is one recorded draw call.
type Command struct {
	Kind      CommandKind
	Rect      Rect
	From, To  Vec2
	Color     colors.Color
	Thickness float32
	Rounding  float32
	Text      string
	FontSize  float32
	Image     any
	Rotation  float32
}

// Recorder is a DrawList that stores commands for later replay. Text is
// measured by Measurer, or with a fixed advance when Measurer is nil.
type Recorder struct {
	Measurer TextMeasurer
	Commands []Command
}

func (r *Recorder) Reset() { r.Commands = r.Commands[:0] }

func (r *Recorder) MeasureText(s string, size float32) Size {
	if r.Measurer != nil {
		return r.Measurer.MeasureText(s, size)
	}
	return FixedMeasurer{}.MeasureText(s, size)
}

func (r *Recorder) FillRect(rect Rect, c colors.Color, rounding float32) {
	r.Commands = append(r.Commands, Command{Kind: CmdFillRect, Rect: rect, Color: c, Rounding: rounding})
}

func (r *Recorder) StrokeRect(rect Rect, c colors.Color, thickness, rounding float32) {
	r.Commands = append(r.Commands, Command{Kind: CmdStrokeRect, Rect: rect, Color: c, Thickness: thickness, Rounding: rounding})
}

func (r *Recorder) Line(from, to Vec2, c colors.Color, thickness float32) {
	r.Commands = append(r.Commands, Command{Kind: CmdLine, From: from, To: to, Color: c, Thickness: thickness})
}

func (r *Recorder) Text(pos Vec2, s string, size float32, c colors.Color) {
	r.Commands = append(r.Commands, Command{Kind: CmdText, From: pos, Text: s, FontSize: size, Color: c})
}

func (r *Recorder) Image(rect Rect, img any, tint colors.Color, rotation float32) {
	r.Commands = append(r.Commands, Command{Kind: CmdImage, Rect: rect, Image: img, Color: tint, Rotation: rotation})
}

func (r *Recorder) PushClip(rect Rect) {
	r.Commands = append(r.Commands, Command{Kind: CmdPushClip, Rect: rect})
}

func (r *Recorder) PopClip() { r.Commands = append(r.Commands, Command{Kind: CmdPopClip}) }

// Replay issues the recorded commands to dl in order.
func (r *Recorder) Replay(dl DrawList) {
	for _, c := range r.Commands {
		switch c.Kind {
		case CmdFillRect:
			dl.FillRect(c.Rect, c.Color, c.Rounding)
		case CmdStrokeRect:
			dl.StrokeRect(c.Rect, c.Color, c.Thickness, c.Rounding)
		case CmdLine:
			dl.Line(c.From, c.To, c.Color, c.Thickness)
		case CmdText:
			dl.Text(c.From, c.Text, c.FontSize, c.Color)
		case CmdImage:
			dl.Image(c.Rect, c.Image, c.Color, c.Rotation)
		case CmdPushClip:
			dl.PushClip(c.Rect)
		case CmdPopClip:
			dl.PopClip()
		}
	}
}

// Count returns how many commands of kind k were recorded.
func (r *Recorder) Count(k CommandKind) int {
	n := 0
	for _, c := range r.Commands {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// FixedMeasurer measures every rune as 0.5em wide and every line as 1em tall.
type FixedMeasurer struct{}

func (FixedMeasurer) MeasureText(s string, size float32) Size {
	if s == "" {
		return Size{}
	}
	lines, widest, current := 1, 0, 0
	for _, r := range s {
		if r == '\n' {
			lines++
			widest = max(widest, current)
			current = 0
			continue
		}
		current++
	}
	widest = max(widest, current)
	return Size{Width: float32(widest) * size * 0.5, Height: float32(lines) * size}
}

// multiplyAlpha scales c's alpha by opacity.
func multiplyAlpha(c colors.Color, opacity float32) colors.Color {
	return c.WithAlpha(c[3] * opacity)
}
