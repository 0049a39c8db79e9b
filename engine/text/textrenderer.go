package text

import (
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/gfx/renderer2d"
)

// DrawText draws s with its top-left corner at (x,y), scaled from the atlas
// size to size. Y grows downward.
func DrawText(r2d *renderer2d.Renderer2D, font *Font, x, y float32, s string, size float32, c colors.Color) {
	scale := font.scale(size)
	font.walk(s, size, func(g Glyph, penX, baseline float32) {
		if g.W == 0 || g.H == 0 {
			return
		}
		r2d.Submit(renderer2d.Quad{
			X:       x + penX + g.BearingX*scale,
			Y:       y + baseline - g.BearingY*scale,
			W:       float32(g.W) * scale,
			H:       float32(g.H) * scale,
			Color:   c,
			Texture: font.Texture,
			UV:      [4]float32{g.U0, g.V0, g.U1, g.V1},
		})
	})
}

// MeasureText returns the size of s drawn at size. Height counts every line.
func MeasureText(font *Font, s string, size float32) (width, height float32) {
	return font.walk(s, size, nil)
}

// walk lays s out from a top-left origin and hands every glyph to fn with
// its pen x and baseline y. Runes missing from the atlas use the
// replacement glyph.
func (f *Font) walk(s string, size float32, fn func(g Glyph, penX, baseline float32)) (width, height float32) {
	if s == "" {
		return 0, 0
	}
	scale := f.scale(size)
	lineH := LineHeight(f) * scale
	baseline := f.Ascent * scale
	height = lineH

	var penX float32
	prev := rune(-1)
	for _, r := range s {
		if r == '\n' {
			width = max(width, penX)
			penX = 0
			baseline += lineH
			height += lineH
			prev = -1
			continue
		}
		g, ok := f.Glyph(r)
		if !ok {
			prev = -1
			continue
		}
		if prev >= 0 {
			penX += f.Kerning[[2]rune{prev, g.Rune}] * scale
		}
		if fn != nil {
			fn(g, penX, baseline)
		}
		penX += g.Advance * scale
		prev = g.Rune
	}
	return max(width, penX), height
}

func (f *Font) scale(size float32) float32 {
	if size <= 0 || f.SizePx <= 0 {
		return 1
	}
	return size / f.SizePx
}

func LineHeight(font *Font) float32 { return font.Ascent - font.Descent + font.LineGap }
