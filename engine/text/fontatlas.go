// Package text rasterizes TTF/OTF faces into a glyph atlas and draws text
// with renderer2d.
package text

import (
	"fmt"
	"image"

	"github.com/hubastard/veil/engine/core"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Replacement is drawn for runes the atlas does not hold.
const Replacement = '?'

const (
	atlasPadding = 2
	atlasMin     = 256
	atlasMax     = 4096
)

// Runes is the set baked into every atlas: printable Latin-1 plus the
// punctuation and symbols overlay widgets use.
var Runes = func() []rune {
	var rs []rune
	for c := rune(32); c <= 126; c++ {
		rs = append(rs, c)
	}
	for c := rune(160); c <= 255; c++ {
		rs = append(rs, c)
	}
	return append(rs, '…', '•', '←', '→', '↑', '↓', '✓')
}()

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // baseline to glyph top
	W, H     int     // bitmap size
	U0, V0   float32
	U1, V1   float32
}

// Font is a glyph atlas rasterized at SizePx. Drawing at another size scales
// the quads.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Kerning                  map[[2]rune]float32
	Texture                  core.Texture
	AtlasW, AtlasH           int
	Pixels                   []byte // RGBA atlas the texture was uploaded from
	closeFace                func()
}

func (f *Font) Close() {
	if f != nil && f.closeFace != nil {
		f.closeFace()
		f.closeFace = nil
	}
}

// Glyph returns the glyph for r, or the Replacement glyph.
func (f *Font) Glyph(r rune) (Glyph, bool) {
	if g, ok := f.Glyphs[r]; ok {
		return g, true
	}
	g, ok := f.Glyphs[Replacement]
	return g, ok
}

// LoadDefault builds an atlas from the embedded Go Regular face.
func LoadDefault(r core.Renderer, sizePx float32) (*Font, error) {
	return Load(r, goregular.TTF, sizePx)
}

// Load parses TTF/OTF data and builds a white glyph atlas with alpha
// coverage. With a nil renderer the atlas is built but not uploaded.
func Load(r core.Renderer, ttfData []byte, sizePx float32) (*Font, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("font size %v: must be positive", sizePx)
	}
	ft, err := opentype.Parse(ttfData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	glyphs := measure(face, Runes)
	size, pos, err := pack(glyphs)
	if err != nil {
		_ = face.Close()
		return nil, err
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	f := &Font{
		SizePx:    sizePx,
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   float32(m.Height.Round()) - ascent + descent,
		Glyphs:    make(map[rune]Glyph, len(glyphs)),
		Kerning:   kerning(face, glyphs),
		AtlasW:    size,
		AtlasH:    size,
		closeFace: func() { _ = face.Close() },
	}
	f.Pixels = rasterize(face, glyphs, pos, size, f.Glyphs)

	if r == nil {
		return f, nil
	}
	tex, err := r.CreateTexture(core.TextureDesc{
		Width: size, Height: size,
		Format:    core.TextureRGBA8,
		Pixels:    f.Pixels,
		MinFilter: "linear",
		MagFilter: "linear",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("upload font atlas: %w", err)
	}
	f.Texture = tex
	return f, nil
}

// measure returns the metrics of every rune the face has, UVs unset.
func measure(face font.Face, runes []rune) []Glyph {
	out := make([]Glyph, 0, len(runes))
	for _, r := range runes {
		b, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		out = append(out, Glyph{
			Rune:     r,
			Advance:  float32(adv.Round()),
			BearingX: float32(b.Min.X.Floor()),
			BearingY: float32(-b.Min.Y.Floor()),
			W:        (b.Max.X - b.Min.X).Ceil(),
			H:        (b.Max.Y - b.Min.Y).Ceil(),
		})
	}
	return out
}

// pack places glyph bitmaps on shelves in the smallest power-of-two square
// atlas that holds them all.
func pack(glyphs []Glyph) (int, map[rune]image.Point, error) {
	for size := atlasMin; size <= atlasMax; size *= 2 {
		if pos, ok := shelves(glyphs, size); ok {
			return size, pos, nil
		}
	}
	return 0, nil, fmt.Errorf("font atlas too large (>%d)", atlasMax)
}

func shelves(glyphs []Glyph, size int) (map[rune]image.Point, bool) {
	pos := make(map[rune]image.Point, len(glyphs))
	x, y, rowH := atlasPadding, atlasPadding, 0
	for _, g := range glyphs {
		if g.W == 0 || g.H == 0 {
			continue
		}
		if x+g.W+atlasPadding > size {
			x, y, rowH = atlasPadding, y+rowH+atlasPadding, 0
		}
		if x+g.W+atlasPadding > size || y+g.H+atlasPadding > size {
			return nil, false
		}
		pos[g.Rune] = image.Pt(x, y)
		x += g.W + atlasPadding
		rowH = max(rowH, g.H)
	}
	return pos, true
}

// rasterize draws every placed glyph into a size x size RGBA image and
// stores the finished glyphs, UVs included, in out.
func rasterize(face font.Face, glyphs []Glyph, pos map[rune]image.Point, size int, out map[rune]Glyph) []byte {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	d := &font.Drawer{Dst: dst, Src: image.White, Face: face}
	inv := 1 / float32(size)
	for _, g := range glyphs {
		if p, ok := pos[g.Rune]; ok {
			// the drawer's dot sits on the baseline
			d.Dot = fixed.P(p.X-int(g.BearingX), p.Y+int(g.BearingY))
			d.DrawString(string(g.Rune))
			g.U0, g.V0 = float32(p.X)*inv, float32(p.Y)*inv
			g.U1, g.V1 = float32(p.X+g.W)*inv, float32(p.Y+g.H)*inv
		}
		out[g.Rune] = g
	}
	return dst.Pix
}

func kerning(face font.Face, glyphs []Glyph) map[[2]rune]float32 {
	k := make(map[[2]rune]float32)
	for _, a := range glyphs {
		for _, b := range glyphs {
			if dx := face.Kern(a.Rune, b.Rune); dx != 0 {
				k[[2]rune{a.Rune, b.Rune}] = float32(dx) / 64
			}
		}
	}
	return k
}
