// Package clip computes which parts of a screen rectangle stay visible under
// a set of occluding rectangles, such as native windows drawn by the host.
package clip

import "github.com/hubastard/veil/engine/ui"

// Solver reports the sub-rectangles of r that are not covered. An empty
// result means r is fully occluded; a single rect equal to r means it is
// untouched.
type Solver interface {
	Visible(r ui.Rect) []ui.Rect
}

// None is a Solver without occluders.
type None struct{}

func (None) Visible(r ui.Rect) []ui.Rect {
	if r.IsEmpty() {
		return nil
	}
	return []ui.Rect{r}
}

// Occluders subtracts a fixed list of rectangles. The zero value occludes
// nothing. Rects are expected to be replaced once per frame by the host.
type Occluders struct {
	Rects []ui.Rect
}

func (o *Occluders) Add(r ui.Rect) {
	if !r.IsEmpty() {
		o.Rects = append(o.Rects, r)
	}
}

func (o *Occluders) Reset() { o.Rects = o.Rects[:0] }

func (o *Occluders) Visible(r ui.Rect) []ui.Rect {
	if r.IsEmpty() {
		return nil
	}
	visible := []ui.Rect{r}
	if o == nil {
		return visible
	}
	for _, hole := range o.Rects {
		var next []ui.Rect
		for _, piece := range visible {
			next = append(next, Subtract(piece, hole)...)
		}
		visible = next
		if len(visible) == 0 {
			break
		}
	}
	return visible
}

// Subtract returns r minus hole as at most four disjoint rects: full-width
// bands above and below the hole, then the left and right remainders.
func Subtract(r, hole ui.Rect) []ui.Rect {
	in := r.Intersect(hole)
	if in.IsEmpty() {
		return []ui.Rect{r}
	}
	out := make([]ui.Rect, 0, 4)
	add := func(x, y, w, h float32) {
		if w > 0 && h > 0 {
			out = append(out, ui.NewRect(x, y, w, h))
		}
	}
	add(r.X, r.Y, r.Width, in.Y-r.Y)
	add(r.X, in.Bottom(), r.Width, r.Bottom()-in.Bottom())
	add(r.X, in.Y, in.X-r.X, in.Height)
	add(in.Right(), in.Y, r.Right()-in.Right(), in.Height)
	return out
}

// Covered reports whether nothing of r remains visible under s.
func Covered(s Solver, r ui.Rect) bool { return len(s.Visible(r)) == 0 }

// Area sums the areas of rects, which are assumed disjoint.
func Area(rects []ui.Rect) float32 {
	var a float32
	for _, r := range rects {
		a += r.Width * r.Height
	}
	return a
}

// Scaled runs a Solver that works in a different unit, such as framebuffer
// pixels under a zoomed UI. Rects are multiplied by Factor on the way in and
// divided on the way out.
type Scaled struct {
	Solver Solver
	Factor float32
}

func (s Scaled) Visible(r ui.Rect) []ui.Rect {
	f := s.Factor
	if f <= 0 || f == 1 {
		return s.Solver.Visible(r)
	}
	in := ui.NewRect(r.X*f, r.Y*f, r.Width*f, r.Height*f)
	pieces := s.Solver.Visible(in)
	for i, p := range pieces {
		if p == in {
			// untouched; keep r exact so callers can compare against it
			pieces[i] = r
			continue
		}
		pieces[i] = ui.NewRect(p.X/f, p.Y/f, p.Width/f, p.Height/f)
	}
	return pieces
}
