package core

// Renderer is the GPU abstraction renderer2d draws through.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()

	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateTexture(desc TextureDesc) (Texture, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error
	Draw(cmd DrawCmd)

	GPUVendor() string
	GPURenderer() string
	GPUVersion() string
}

// Pipeline, Texture and Mesh are opaque backend handles. Handles are compared
// by identity, so backends return pointers.
type (
	Pipeline any
	Texture  any
	Mesh     any
)

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

// TextureDesc describes a 2D texture. Filters are "nearest" or "linear",
// wraps are "clamp" or "repeat".
type TextureDesc struct {
	Width, Height        int
	Format               TextureFormat
	Pixels               []byte
	MinFilter, MagFilter string
	WrapU, WrapV         string
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location uint32
	Size     int32
	Type     AttribType
	Offset   int
}

type VertexLayout struct {
	Stride     int32
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

// Scissor is a clip rectangle in framebuffer pixels with a top-left origin.
type Scissor struct {
	X, Y, W, H int32
}

// DrawCmd draws the whole index range last uploaded to Mesh. A nil Scissor
// disables clipping.
type DrawCmd struct {
	Pipe     Pipeline
	Mesh     Mesh
	Uniforms map[string]any
	Samplers map[string]Texture
	Scissor  *Scissor
}
