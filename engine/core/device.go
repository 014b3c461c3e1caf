package core

import (
	"errors"
	"fmt"
)

// ErrInvalidHandle is returned when a device call receives a handle that
// was never created or has already been destroyed.
var ErrInvalidHandle = errors.New("core: invalid handle")

// RendererType identifies the graphics API a device drives.
type RendererType int

const (
	RendererNoop RendererType = iota
	RendererDirect3D9
	RendererDirect3D11
	RendererOpenGL
	RendererMetal
	RendererOpenGLES
	RendererVulkan
	RendererCount
)

func (t RendererType) String() string {
	switch t {
	case RendererNoop:
		return "Noop"
	case RendererDirect3D9:
		return "Direct3D9"
	case RendererDirect3D11:
		return "Direct3D11"
	case RendererOpenGL:
		return "OpenGL"
	case RendererMetal:
		return "Metal"
	case RendererOpenGLES:
		return "OpenGLES"
	case RendererVulkan:
		return "Vulkan"
	default:
		return fmt.Sprintf("RendererType(%d)", int(t))
	}
}

// Handles are small indices into device-owned tables.
type (
	ShaderHandle  uint16
	ProgramHandle uint16
	TextureHandle uint16
	UniformHandle uint16
)

// InvalidHandle is the zero-resource sentinel shared by every handle kind.
const InvalidHandle = 0xFFFF

type ViewID uint16

type ViewMode int

const (
	ViewModeDefault ViewMode = iota
	// ViewModeSequential replays draws in submission order.
	ViewModeSequential
)

type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
	TextureBGRA8
	TextureR8
)

// BytesPerPixel reports the storage size of one texel.
func (f TextureFormat) BytesPerPixel() int {
	if f == TextureR8 {
		return 1
	}
	return 4
}

type UniformType int

const (
	UniformSampler UniformType = iota
	UniformVec4
	UniformMat4
)

// SamplerFlags tune texture filtering/wrapping for one binding.
type SamplerFlags uint32

const (
	SamplerDefault    SamplerFlags = 0
	SamplerMinPoint   SamplerFlags = 1 << 0
	SamplerMagPoint   SamplerFlags = 1 << 1
	SamplerUClamp     SamplerFlags = 1 << 2
	SamplerVClamp     SamplerFlags = 1 << 3
	SamplerUVClamp                 = SamplerUClamp | SamplerVClamp
	SamplerPoint                   = SamplerMinPoint | SamplerMagPoint
	SamplerUseTexture SamplerFlags = 0xFFFFFFFF // keep flags given at creation
)

// ClearFlags select which attachments a view clears.
type ClearFlags uint16

const (
	ClearNone  ClearFlags = 0
	ClearColor ClearFlags = 1 << 0
	ClearDepth ClearFlags = 1 << 1
)

// Caps describes device properties the caller must respect.
type Caps struct {
	RendererType RendererType
	// HomogeneousDepth is true when clip-space depth is [-1,1] (GL) rather than [0,1].
	HomogeneousDepth bool
	// OriginBottomLeft is true when framebuffer row 0 is the bottom row.
	OriginBottomLeft   bool
	TransientVBSize    uint32 // bytes
	TransientIBSize    uint32 // bytes
	MaxTextureSize     uint16
	MaxTextureSamplers uint8
}

// TextureDesc describes a 2D texture upload. Pixels are tightly packed rows.
type TextureDesc struct {
	Width, Height uint16
	Format        TextureFormat
	Flags         SamplerFlags
	Pixels        []byte
}

// Validate checks the pixel payload against the declared size.
func (d TextureDesc) Validate() error {
	if d.Width == 0 || d.Height == 0 {
		return fmt.Errorf("core: texture size %dx%d", d.Width, d.Height)
	}
	want := int(d.Width) * int(d.Height) * d.Format.BytesPerPixel()
	if d.Pixels != nil && len(d.Pixels) != want {
		return fmt.Errorf("core: texture %dx%d wants %d bytes, got %d", d.Width, d.Height, want, len(d.Pixels))
	}
	return nil
}

// TransientVertexBuffer is frame-scoped vertex storage handed out by a
// Device. Data aliases device memory and must not be retained past the
// frame it was allocated in.
type TransientVertexBuffer struct {
	Data        []byte
	StartVertex uint32
	Size        uint32 // bytes
	Stride      uint16
	Layout      *VertexLayout
}

// TransientIndexBuffer is frame-scoped index storage; see TransientVertexBuffer.
type TransientIndexBuffer struct {
	Data       []byte
	StartIndex uint32
	Size       uint32 // bytes
	Index32    bool
}

// Device is the retained-mode graphics abstraction the UI translator
// submits to. All calls happen on the thread that owns the device.
type Device interface {
	RendererType() RendererType
	Caps() Caps

	CreateShader(stage ShaderStage, code []byte) (ShaderHandle, error)
	// CreateProgram links vs+fs. When destroyShaders is true the device
	// releases the shader objects once linking succeeded.
	CreateProgram(vs, fs ShaderHandle, destroyShaders bool) (ProgramHandle, error)
	CreateTexture2D(desc TextureDesc) (TextureHandle, error)
	CreateUniform(name string, typ UniformType, num uint16) (UniformHandle, error)

	DestroyShader(h ShaderHandle)
	DestroyProgram(h ProgramHandle)
	DestroyTexture(h TextureHandle)
	DestroyUniform(h UniformHandle)

	SetViewMode(id ViewID, mode ViewMode)
	SetViewTransform(id ViewID, view, proj [16]float32)
	SetViewRect(id ViewID, x, y, w, h uint16)
	SetViewClear(id ViewID, flags ClearFlags, rgba uint32, depth float32)
	Touch(id ViewID)

	// AvailTransientVertexBuffer returns how many of num vertices the
	// current frame can still hold.
	AvailTransientVertexBuffer(num uint32, layout *VertexLayout) uint32
	AvailTransientIndexBuffer(num uint32, index32 bool) uint32
	AllocTransientVertexBuffer(tvb *TransientVertexBuffer, num uint32, layout *VertexLayout)
	AllocTransientIndexBuffer(tib *TransientIndexBuffer, num uint32, index32 bool)

	// Reset resizes the back buffer and drops cached render state.
	Reset(width, height uint32)

	EncoderBegin() Encoder
	EncoderEnd(enc Encoder)

	// Frame flushes everything recorded since the previous Frame and
	// reclaims transient buffers. Returns the frame number.
	Frame() uint32
}

// Encoder records the state of a single draw and submits it to a view.
// State is cleared after every Submit.
type Encoder interface {
	SetScissor(x, y, w, h uint16)
	SetState(state State, rgba uint32)
	SetTexture(stage uint8, sampler UniformHandle, tex TextureHandle, flags SamplerFlags)
	SetTransientVertexBuffer(stream uint8, tvb *TransientVertexBuffer, start, num uint32)
	SetTransientIndexBuffer(tib *TransientIndexBuffer, start, num uint32)
	Submit(id ViewID, program ProgramHandle)
}
