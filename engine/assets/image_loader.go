package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"path"
)

// Image is tightly packed RGBA8, row 0 at the top, ready for upload.
type Image struct {
	Width, Height int
	Pix           []byte
}

// At returns the RGBA bytes of one pixel.
func (m Image) At(x, y int) []byte {
	i := (y*m.Width + x) * 4
	return m.Pix[i : i+4]
}

// LoadPNG decodes textures/<relPath>.
func LoadPNG(relPath string) (Image, error) {
	name := path.Join("textures", relPath)
	f, err := Root.Open(name)
	if err != nil {
		return Image{}, fmt.Errorf("open %q: %w", name, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return Image{}, fmt.Errorf("decode png %q: %w", name, err)
	}
	return pack(img), nil
}

// pack converts img to RGBA and drops any row padding.
func pack(img image.Image) Image {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) || rgba.Stride != 4*b.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return Image{Width: b.Dx(), Height: b.Dy(), Pix: rgba.Pix}
}
