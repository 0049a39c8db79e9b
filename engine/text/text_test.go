package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func loadTestFont(t *testing.T) *Font {
	t.Helper()
	f, err := Load(nil, goregular.TTF, 16)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(f.Close)
	return f
}

func TestLoad_BuildsAtlas(t *testing.T) {
	f := loadTestFont(t)

	g, ok := f.Glyphs['A']
	if !ok {
		t.Fatal("glyph A missing")
	}
	if g.W == 0 || g.H == 0 || g.Advance == 0 {
		t.Errorf("glyph A = %+v, want a non-empty bitmap", g)
	}
	if g.U0 < 0 || g.U1 > 1 || g.V0 < 0 || g.V1 > 1 || g.U0 >= g.U1 || g.V0 >= g.V1 {
		t.Errorf("glyph A UVs = (%v,%v)-(%v,%v), want an ordered rect inside the atlas", g.U0, g.V0, g.U1, g.V1)
	}
	if len(f.Pixels) != f.AtlasW*f.AtlasH*4 {
		t.Errorf("atlas has %d bytes for %dx%d", len(f.Pixels), f.AtlasW, f.AtlasH)
	}
	if f.Texture != nil {
		t.Error("atlas uploaded without a renderer")
	}
	if LineHeight(f) <= f.Ascent {
		t.Errorf("LineHeight() = %v, want more than the ascent %v", LineHeight(f), f.Ascent)
	}
}

func TestLoad_RejectsBadInput(t *testing.T) {
	tests := map[string]struct {
		data []byte
		size float32
	}{
		"zero size":    {data: goregular.TTF, size: 0},
		"garbage data": {data: []byte("not a font"), size: 16},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(nil, tt.data, tt.size); err == nil {
				t.Error("Load() error = nil")
			}
		})
	}
}

func TestMeasureText(t *testing.T) {
	f := loadTestFont(t)

	if w, h := MeasureText(f, "", 16); w != 0 || h != 0 {
		t.Errorf("empty string measured %v x %v", w, h)
	}

	w1, h1 := MeasureText(f, "Hello", 16)
	if w1 <= 0 || h1 != LineHeight(f) {
		t.Errorf("MeasureText(Hello) = %v x %v, want positive width and one line", w1, h1)
	}

	w2, h2 := MeasureText(f, "Hello", 32)
	if w2 != w1*2 || h2 != h1*2 {
		t.Errorf("double size = %v x %v, want %v x %v", w2, h2, w1*2, h1*2)
	}

	wl, hl := MeasureText(f, "Hello\nHi", 16)
	if wl != w1 || hl != 2*h1 {
		t.Errorf("two lines = %v x %v, want %v x %v", wl, hl, w1, 2*h1)
	}
}

func TestFont_Glyph(t *testing.T) {
	f := loadTestFont(t)

	tests := map[string]struct {
		r    rune
		want rune
	}{
		"ascii":       {r: 'g', want: 'g'},
		"latin-1":     {r: 'é', want: 'é'},
		"ellipsis":    {r: '…', want: '…'},
		"not baked":   {r: '漢', want: Replacement},
		"private use": {r: '\ue000', want: Replacement},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g, ok := f.Glyph(tt.r)
			if !ok || g.Rune != tt.want {
				t.Errorf("Glyph(%q) = %q, %v, want %q", tt.r, g.Rune, ok, tt.want)
			}
		})
	}
}

func TestMeasureText_MissingRunesUseReplacement(t *testing.T) {
	f := loadTestFont(t)
	want, _ := MeasureText(f, "a?b", 16)
	if got, _ := MeasureText(f, "a漢b", 16); got != want {
		t.Errorf("MeasureText(a漢b) width = %v, want %v", got, want)
	}
}
