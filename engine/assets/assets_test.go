package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func withRoot(t *testing.T, fsys fs.FS) {
	t.Helper()
	prev := Root
	Root = fsys
	t.Cleanup(func() { Root = prev })
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestLoadPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(2, 1, color.NRGBA{B: 255, A: 255})
	withRoot(t, fstest.MapFS{"textures/icon.png": {Data: encodePNG(t, src)}})

	img, err := LoadPNG("icon.png")
	if err != nil {
		t.Fatalf("LoadPNG: %v", err)
	}
	if img.Width != 3 || img.Height != 2 || len(img.Pix) != 3*2*4 {
		t.Fatalf("LoadPNG = %dx%d with %d bytes", img.Width, img.Height, len(img.Pix))
	}
	if got := img.At(0, 0); !bytes.Equal(got, []byte{255, 0, 0, 255}) {
		t.Errorf("top-left texel = %v, want red", got)
	}
	if got := img.At(2, 1); !bytes.Equal(got, []byte{0, 0, 255, 255}) {
		t.Errorf("bottom-right texel = %v, want blue", got)
	}
}

func TestLoadPNG_Errors(t *testing.T) {
	withRoot(t, fstest.MapFS{"textures/bad.png": {Data: []byte("nope")}})

	if _, err := LoadPNG("missing.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want fs.ErrNotExist", err)
	}
	if _, err := LoadPNG("bad.png"); err == nil || !strings.Contains(err.Error(), "decode png") {
		t.Errorf("bad file error = %v, want a decode error", err)
	}
}

func TestLoadProgram(t *testing.T) {
	withRoot(t, fstest.MapFS{
		"shaders/quad.vert": {Data: []byte("void main() {}")},
		"shaders/quad.frag": {Data: []byte("void main() {}\x00")},
		"shaders/half.vert": {Data: []byte("void main() {}")},
	})

	p, err := LoadProgram("quad")
	if err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	for name, src := range map[string]string{"vertex": p.Vertex, "fragment": p.Fragment} {
		if !strings.HasSuffix(src, "\x00") || strings.Count(src, "\x00") != 1 {
			t.Errorf("%s source = %q, want exactly one trailing NUL", name, src)
		}
	}

	if _, err := LoadProgram("half"); !errors.Is(err, fs.ErrNotExist) || !strings.Contains(err.Error(), "half.frag") {
		t.Errorf("missing fragment error = %v", err)
	}
}

func TestLoadPNG_Paletted(t *testing.T) {
	src := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	src.SetColorIndex(1, 1, 1)
	withRoot(t, fstest.MapFS{"textures/mask.png": {Data: encodePNG(t, src)}})

	img, err := LoadPNG("mask.png")
	if err != nil {
		t.Fatalf("LoadPNG: %v", err)
	}
	if got := img.At(1, 1); !bytes.Equal(got, []byte{255, 255, 255, 255}) {
		t.Errorf("white texel = %v", got)
	}
	if got := img.At(0, 1); !bytes.Equal(got, []byte{0, 0, 0, 255}) {
		t.Errorf("black texel = %v", got)
	}
}
