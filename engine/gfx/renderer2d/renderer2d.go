// Package renderer2d batches textured, tinted quads into as few draw calls as
// the texture slots and scissor changes allow.
package renderer2d

import (
	"log"
	"math"
	"strconv"

	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/core"
)

// common GL limit for sampler arrays
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1
const (
	vStride      = 9
	vertsPerQuad = 4
	indsPerQuad  = 6
)

var quadVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

// Statistics counts the work of one scene.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
	// quads dropped because they fell outside the active clip
	Culled int
}

func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }
func (s Statistics) TotalIndexCount() int  { return s.QuadCount * indsPerQuad }

// Quad is a rectangle given by its top-left corner, rotated about its centre.
// A nil Texture draws a solid Color; otherwise Color tints the texture.
type Quad struct {
	X, Y, W, H float32
	Color      colors.Color
	Rotation   float32
	Texture    core.Texture
	// u0, v0, u1, v1; the zero value samples the whole texture
	UV [4]float32
}

// clipRect is a clip in scene units, kept alongside its pixel scissor.
type clipRect struct {
	x0, y0, x1, y1 float32
	scissor        core.Scissor
}

type Renderer2D struct {
	r      core.Renderer
	pipe   core.Pipeline
	mesh   core.Mesh
	white  core.Texture // 1x1, always slot 0
	texArr [maxTexSlots]core.Texture
	texCnt int

	verts     []float32
	inds      []uint32
	quadCount int
	maxQuads  int

	samplers map[string]core.Texture
	uniforms map[string]any
	extra    map[string]any
	texNames [maxTexSlots]string

	vp         [16]float32
	pixelScale float32
	clips      []clipRect
	stats      Statistics
}

// New compiles the quad pipeline and allocates a mesh for maxQuads quads.
func New(r core.Renderer, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}
	white, err := r.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, err
	}
	mesh, err := r.CreateMesh(core.MeshDesc{
		Vertices: make([]float32, maxQuads*vertsPerQuad*vStride),
		Indices:  make([]uint32, maxQuads*indsPerQuad),
		Layout:   quadVertexLayout,
	})
	if err != nil {
		return nil, err
	}

	rd := &Renderer2D{
		r: r, pipe: pipe, mesh: mesh, white: white, maxQuads: maxQuads,
		verts:      make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:       make([]uint32, 0, maxQuads*indsPerQuad),
		samplers:   make(map[string]core.Texture, maxTexSlots),
		uniforms:   make(map[string]any, 4),
		pixelScale: 1,
	}
	for i := range maxTexSlots {
		rd.texNames[i] = "uTex[" + strconv.Itoa(i) + "]"
	}
	rd.resetBatch()
	return rd, nil
}

// BeginScene starts a frame projected by vp. pixelScale is framebuffer
// pixels per scene unit and converts clips to scissors; 0 means 1.
func (rd *Renderer2D) BeginScene(vp [16]float32, pixelScale float32) {
	rd.vp = vp
	rd.pixelScale = pixelScale
	if rd.pixelScale <= 0 {
		rd.pixelScale = 1
	}
	rd.stats = Statistics{}
	rd.clips = rd.clips[:0]
	rd.resetBatch()
}

func (rd *Renderer2D) EndScene() {
	rd.flush()
	rd.clips = rd.clips[:0]
}

// PushClip restricts drawing to (x, y, w, h) in scene units, intersected
// with the current clip. The pending batch is flushed under the previous
// clip first.
func (rd *Renderer2D) PushClip(x, y, w, h float32) {
	rd.flush()
	next := clipRect{x0: x, y0: y, x1: x + max(w, 0), y1: y + max(h, 0)}
	if n := len(rd.clips); n > 0 {
		top := rd.clips[n-1]
		next.x0, next.y0 = max(next.x0, top.x0), max(next.y0, top.y0)
		next.x1, next.y1 = max(min(next.x1, top.x1), next.x0), max(min(next.y1, top.y1), next.y0)
	}
	s := rd.pixelScale
	next.scissor = core.Scissor{
		X: int32(math.Floor(float64(next.x0 * s))),
		Y: int32(math.Floor(float64(next.y0 * s))),
		W: int32(math.Ceil(float64((next.x1 - next.x0) * s))),
		H: int32(math.Ceil(float64((next.y1 - next.y0) * s))),
	}
	if n := len(rd.clips); n > 0 {
		next.scissor = intersect(rd.clips[n-1].scissor, next.scissor)
	}
	rd.clips = append(rd.clips, next)
}

// PopClip restores the clip active before the matching PushClip.
func (rd *Renderer2D) PopClip() {
	if len(rd.clips) == 0 {
		return
	}
	rd.flush()
	rd.clips = rd.clips[:len(rd.clips)-1]
}

// Clip returns the active scissor in framebuffer pixels, if any.
func (rd *Renderer2D) Clip() (core.Scissor, bool) {
	if len(rd.clips) == 0 {
		return core.Scissor{}, false
	}
	return rd.clips[len(rd.clips)-1].scissor, true
}

func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// SetUniform sends an extra uniform with every draw call until it is
// overwritten or set to nil.
func (rd *Renderer2D) SetUniform(name string, value any) {
	if rd.extra == nil {
		rd.extra = make(map[string]any)
	}
	if value == nil {
		delete(rd.extra, name)
		return
	}
	rd.extra[name] = value
}

// Submit queues q. Unrotated quads entirely outside the clip are dropped.
func (rd *Renderer2D) Submit(q Quad) {
	if q.W <= 0 || q.H <= 0 {
		return
	}
	if q.Rotation == 0 && rd.outsideClip(q) {
		rd.stats.Culled++
		return
	}
	if rd.quadCount >= rd.maxQuads {
		rd.flush()
	}
	tex := q.Texture
	if tex == nil {
		tex = rd.white
	}
	if q.UV == ([4]float32{}) {
		q.UV = [4]float32{0, 0, 1, 1}
	}
	rd.emit(q, rd.texSlot(tex))
}

// DrawRect draws a solid axis-aligned rect from its top-left corner.
func (rd *Renderer2D) DrawRect(x, y, w, h float32, color colors.Color) {
	rd.Submit(Quad{X: x, Y: y, W: w, H: h, Color: color})
}

// DrawRectOutline draws the border of a rect as four quads inside its edge.
func (rd *Renderer2D) DrawRectOutline(x, y, w, h, thickness float32, color colors.Color) {
	t := min(thickness, w*0.5, h*0.5)
	if t <= 0 {
		return
	}
	rd.DrawRect(x, y, w, t, color)
	rd.DrawRect(x, y+h-t, w, t, color)
	rd.DrawRect(x, y+t, t, h-2*t, color)
	rd.DrawRect(x+w-t, y+t, t, h-2*t, color)
}

// DrawLine draws a segment as a rotated quad of the given thickness.
func (rd *Renderer2D) DrawLine(x0, y0, x1, y1, thickness float32, color colors.Color) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 || thickness <= 0 {
		return
	}
	rd.Submit(Quad{
		X: (x0+x1-length)*0.5, Y: (y0+y1-thickness)*0.5,
		W: length, H: thickness,
		Color:    color,
		Rotation: float32(math.Atan2(float64(dy), float64(dx))),
	})
}

// DrawSub draws sub stretched over (x, y, w, h).
func (rd *Renderer2D) DrawSub(x, y, w, h float32, sub SubTexture2D, tint colors.Color, rotation float32) {
	rd.Submit(Quad{
		X: x, Y: y, W: w, H: h,
		Color:    tint,
		Rotation: rotation,
		Texture:  sub.Texture,
		UV:       [4]float32{sub.U0, sub.V0, sub.U1, sub.V1},
	})
}

func (rd *Renderer2D) outsideClip(q Quad) bool {
	n := len(rd.clips)
	if n == 0 {
		return false
	}
	c := rd.clips[n-1]
	return q.X >= c.x1 || q.Y >= c.y1 || q.X+q.W <= c.x0 || q.Y+q.H <= c.y0
}

func (rd *Renderer2D) texSlot(t core.Texture) float32 {
	for i := range rd.texCnt {
		if rd.texArr[i] == t {
			return float32(i)
		}
	}
	if rd.texCnt >= maxTexSlots {
		rd.flush()
	}
	rd.texArr[rd.texCnt] = t
	rd.texCnt++
	rd.stats.TextureCount = max(rd.stats.TextureCount, rd.texCnt)
	return float32(rd.texCnt - 1)
}

func (rd *Renderer2D) emit(q Quad, texIndex float32) {
	halfW, halfH := q.W*0.5, q.H*0.5
	cx, cy := q.X+halfW, q.Y+halfH
	u0, v0, u1, v1 := q.UV[0], q.UV[1], q.UV[2], q.UV[3]

	// TL, TR, BL, BR; Y grows down so the top is -halfH
	corners := [4][4]float32{
		{-halfW, -halfH, u0, v0},
		{halfW, -halfH, u1, v0},
		{-halfW, halfH, u0, v1},
		{halfW, halfH, u1, v1},
	}
	c, s := float32(1), float32(0)
	if q.Rotation != 0 {
		c, s = float32(math.Cos(float64(q.Rotation))), float32(math.Sin(float64(q.Rotation)))
	}

	first := uint32(len(rd.verts) / vStride)
	for _, p := range corners {
		rd.verts = append(rd.verts,
			p[0]*c-p[1]*s+cx, p[0]*s+p[1]*c+cy,
			q.Color[0], q.Color[1], q.Color[2], q.Color[3],
			p[2], p[3],
			texIndex,
		)
	}
	rd.inds = append(rd.inds,
		first+0, first+2, first+1,
		first+1, first+2, first+3,
	)
	rd.quadCount++
	rd.stats.QuadCount++
}

func (rd *Renderer2D) flush() {
	if rd.quadCount == 0 {
		return
	}
	if err := rd.r.UpdateMesh(rd.mesh, rd.verts, rd.inds); err != nil {
		log.Printf("renderer2d: dropping batch of %d quads: %v", rd.quadCount, err)
		rd.resetBatch()
		return
	}

	clear(rd.samplers)
	for i := range rd.texCnt {
		rd.samplers[rd.texNames[i]] = rd.texArr[i]
	}
	clear(rd.uniforms)
	rd.uniforms["uVP"] = rd.vp
	for k, v := range rd.extra {
		rd.uniforms[k] = v
	}

	cmd := core.DrawCmd{
		Pipe:     rd.pipe,
		Mesh:     rd.mesh,
		Uniforms: rd.uniforms,
		Samplers: rd.samplers,
	}
	if n := len(rd.clips); n > 0 {
		scissor := rd.clips[n-1].scissor
		cmd.Scissor = &scissor
	}
	rd.r.Draw(cmd)
	rd.stats.DrawCalls++
	rd.resetBatch()
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
	rd.quadCount = 0
	clear(rd.texArr[:])
	rd.texArr[0] = rd.white
	rd.texCnt = 1
}

func intersect(a, b core.Scissor) core.Scissor {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.X+a.W, b.X+b.W), min(a.Y+a.H, b.Y+b.H)
	return core.Scissor{X: x0, Y: y0, W: max(0, x1-x0), H: max(0, y1-y0)}
}
