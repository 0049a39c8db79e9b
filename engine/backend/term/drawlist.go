// Package term draws UI element trees into a terminal through tcell. Every
// cell covers CellW x CellH layout units, so trees authored in pixels keep
// their proportions.
package term

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/ui"
	"github.com/mattn/go-runewidth"
)

const (
	DefaultCellW = 8
	DefaultCellH = 16
)

// DrawList implements ui.DrawList on a tcell screen. Translucent fills are
// blended with the background already in the cell.
type DrawList struct {
	Screen       tcell.Screen
	CellW, CellH float32

	clips []cellRect
}

var _ ui.DrawList = (*DrawList)(nil)

func New(s tcell.Screen) *DrawList {
	return &DrawList{Screen: s, CellW: DefaultCellW, CellH: DefaultCellH}
}

type cellRect struct{ x0, y0, x1, y1 int }

func (c cellRect) empty() bool { return c.x1 <= c.x0 || c.y1 <= c.y0 }

func (c cellRect) intersect(o cellRect) cellRect {
	r := cellRect{max(c.x0, o.x0), max(c.y0, o.y0), min(c.x1, o.x1), min(c.y1, o.y1)}
	if r.empty() {
		return cellRect{}
	}
	return r
}

func round(v float32) int { return int(math.Floor(float64(v) + 0.5)) }

// Viewport is the screen size in layout units.
func (d *DrawList) Viewport() ui.Rect {
	w, h := d.Screen.Size()
	return ui.Rect{Width: float32(w) * d.CellW, Height: float32(h) * d.CellH}
}

func (d *DrawList) cells(r ui.Rect) cellRect {
	return cellRect{round(r.X / d.CellW), round(r.Y / d.CellH), round(r.Right() / d.CellW), round(r.Bottom() / d.CellH)}
}

func (d *DrawList) clip() cellRect {
	if n := len(d.clips); n > 0 {
		return d.clips[n-1]
	}
	w, h := d.Screen.Size()
	return cellRect{0, 0, w, h}
}

func (d *DrawList) visible(x, y int) bool {
	c := d.clip()
	return x >= c.x0 && x < c.x1 && y >= c.y0 && y < c.y1
}

// MeasureText counts display columns with runewidth. The font size is
// ignored; one line is one cell tall.
func (d *DrawList) MeasureText(s string, _ float32) ui.Size {
	if s == "" {
		return ui.Size{}
	}
	lines := strings.Split(s, "\n")
	widest := 0
	for _, l := range lines {
		widest = max(widest, runewidth.StringWidth(l))
	}
	return ui.Size{Width: float32(widest) * d.CellW, Height: float32(len(lines)) * d.CellH}
}

func (d *DrawList) FillRect(r ui.Rect, c colors.Color, _ float32) {
	if c[3] <= 0 {
		return
	}
	area := d.cells(r).intersect(d.clip())
	for y := area.y0; y < area.y1; y++ {
		for x := area.x0; x < area.x1; x++ {
			mainc, comb, style, _ := d.Screen.GetContent(x, y)
			_, bg, _ := style.Decompose()
			d.Screen.SetContent(x, y, mainc, comb, style.Background(blend(bg, c)))
		}
	}
}

func (d *DrawList) StrokeRect(r ui.Rect, c colors.Color, thickness, _ float32) {
	if thickness <= 0 || c[3] <= 0 {
		return
	}
	b := d.cells(r)
	if b.empty() {
		return
	}
	right, bottom := b.x1-1, b.y1-1
	for x := b.x0; x <= right; x++ {
		d.put(x, b.y0, '─', c)
		d.put(x, bottom, '─', c)
	}
	for y := b.y0; y <= bottom; y++ {
		d.put(b.x0, y, '│', c)
		d.put(right, y, '│', c)
	}
	d.put(b.x0, b.y0, '┌', c)
	d.put(right, b.y0, '┐', c)
	d.put(b.x0, bottom, '└', c)
	d.put(right, bottom, '┘', c)
}

// Line plots the segment with Bresenham's algorithm.
func (d *DrawList) Line(from, to ui.Vec2, c colors.Color, _ float32) {
	x0, y0 := int(from.X/d.CellW), int(from.Y/d.CellH)
	x1, y1 := int(to.X/d.CellW), int(to.Y/d.CellH)
	ch := '·'
	switch {
	case y0 == y1:
		ch = '─'
	case x0 == x1:
		ch = '│'
	}
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		d.put(x0, y0, ch, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (d *DrawList) Text(pos ui.Vec2, s string, _ float32, c colors.Color) {
	x0, y := round(pos.X/d.CellW), round(pos.Y/d.CellH)
	x := x0
	for _, r := range s {
		if r == '\n' {
			x = x0
			y++
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		d.put(x, y, r, c)
		x += w
	}
}

// Image has no terminal representation; the rect is shaded with the tint.
func (d *DrawList) Image(r ui.Rect, _ any, tint colors.Color, _ float32) {
	area := d.cells(r).intersect(d.clip())
	for y := area.y0; y < area.y1; y++ {
		for x := area.x0; x < area.x1; x++ {
			d.put(x, y, '▒', tint)
		}
	}
}

func (d *DrawList) PushClip(r ui.Rect) { d.clips = append(d.clips, d.cells(r).intersect(d.clip())) }

func (d *DrawList) PopClip() {
	if n := len(d.clips); n > 0 {
		d.clips = d.clips[:n-1]
	}
}

// put writes a glyph in c over the cell's current background.
func (d *DrawList) put(x, y int, r rune, c colors.Color) {
	if c[3] <= 0 || !d.visible(x, y) {
		return
	}
	_, _, style, _ := d.Screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	d.Screen.SetContent(x, y, r, nil, style.Foreground(blend(bg, c)))
}

// blend composites c over the cell color dst. The terminal default counts
// as black.
func blend(dst tcell.Color, c colors.Color) tcell.Color {
	var dr, dg, db float32
	if dst != tcell.ColorDefault {
		r, g, b := dst.RGB()
		dr, dg, db = float32(r)/255, float32(g)/255, float32(b)/255
	}
	a := min(max(c[3], 0), 1)
	mix := func(d, s float32) int32 { return int32(math.Round(float64((d*(1-a) + s*a) * 255))) }
	return tcell.NewRGBColor(mix(dr, c[0]), mix(dg, c[1]), mix(db, c[2]))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
