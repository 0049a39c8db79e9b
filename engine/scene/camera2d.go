// Package scene holds the screen projection shared by the host layers.
package scene

import "github.com/hubastard/veil/engine/ui"

const MinScale = 0.25

// Camera projects UI units onto the framebuffer: origin top-left, Y down,
// one unit = Scale pixels.
type Camera struct {
	fbW, fbH float32
	scale    float32
	vp       [16]float32
	dirty    bool
}

func NewCamera(fbWidth, fbHeight int) *Camera {
	c := &Camera{scale: 1}
	c.Resize(fbWidth, fbHeight)
	return c
}

// Resize takes the framebuffer size in pixels.
func (c *Camera) Resize(fbWidth, fbHeight int) {
	c.fbW, c.fbH = float32(fbWidth), float32(fbHeight)
	c.dirty = true
}

// SetScale zooms the UI. Values below MinScale are clamped.
func (c *Camera) SetScale(s float32) {
	c.scale = max(s, MinScale)
	c.dirty = true
}

func (c *Camera) Scale() float32 { return c.scale }

// Width and Height are the visible extent in UI units.
func (c *Camera) Width() float32  { return c.fbW / c.scale }
func (c *Camera) Height() float32 { return c.fbH / c.scale }

func (c *Camera) Viewport() ui.Rect { return ui.NewRect(0, 0, c.Width(), c.Height()) }

// ToUI converts a framebuffer pixel position to UI units.
func (c *Camera) ToUI(p ui.Vec2) ui.Vec2 { return ui.Vec2{X: p.X / c.scale, Y: p.Y / c.scale} }

func (c *Camera) VP() [16]float32 {
	if c.dirty {
		c.vp = ortho(0, c.Width(), c.Height(), 0, -1, 1)
		c.dirty = false
	}
	return c.vp
}

// Project maps a UI point to normalized device coordinates.
func (c *Camera) Project(x, y float32) (float32, float32) {
	m := c.VP()
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}

// ortho is a column-major GLSL-style orthographic projection.
func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}
