package renderer2d

import (
	"fmt"

	"github.com/hubastard/veil/engine/core"
)

// SubTexture2D is a UV rect inside a texture. V grows downwards; the shader
// flips it.
type SubTexture2D struct {
	Texture core.Texture
	U0, V0  float32
	U1, V1  float32
}

// FromPixels maps the pixel rect (x,y,w,h) of an atlasW x atlasH texture to UVs.
func FromPixels(tex core.Texture, x, y, w, h, atlasW, atlasH int) SubTexture2D {
	return SubTexture2D{
		Texture: tex,
		U0:      float32(x) / float32(atlasW),
		V0:      float32(y) / float32(atlasH),
		U1:      float32(x+w) / float32(atlasW),
		V1:      float32(y+h) / float32(atlasH),
	}
}

// Atlas slices a texture into equally sized icons, left to right then top
// to bottom.
type Atlas struct {
	Texture       core.Texture
	Width, Height int
	Cell          int
}

func NewAtlas(tex core.Texture, w, h, cell int) (*Atlas, error) {
	if cell <= 0 || w%cell != 0 || h%cell != 0 {
		return nil, fmt.Errorf("atlas %dx%d: cell size %d does not tile it", w, h, cell)
	}
	return &Atlas{Texture: tex, Width: w, Height: h, Cell: cell}, nil
}

func (a *Atlas) Len() int { return (a.Width / a.Cell) * (a.Height / a.Cell) }

// Icon returns the i-th cell.
func (a *Atlas) Icon(i int) (SubTexture2D, error) {
	if i < 0 || i >= a.Len() {
		return SubTexture2D{}, fmt.Errorf("atlas icon %d out of range [0,%d)", i, a.Len())
	}
	cols := a.Width / a.Cell
	x, y := (i%cols)*a.Cell, (i/cols)*a.Cell
	return FromPixels(a.Texture, x, y, a.Cell, a.Cell, a.Width, a.Height), nil
}
