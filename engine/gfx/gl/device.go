// Package glbackend implements core.Device on OpenGL 3.3 core. A GL
// context must be current on the calling thread for every call.
package glbackend

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/imbridge/engine/core"
)

const (
	DefaultTransientVBSize = 6 << 20
	DefaultTransientIBSize = 2 << 20
)

type Options struct {
	TransientVBSize uint32 // bytes, zero selects the default
	TransientIBSize uint32
}

type shader struct {
	id    uint32
	stage core.ShaderStage
}

type program struct {
	id       uint32
	viewProj int32
	samplers map[string]int32
}

type texture struct {
	id    uint32
	flags core.SamplerFlags
}

type uniform struct {
	name string
	typ  core.UniformType
}

type Device struct {
	caps          core.Caps
	width, height uint32

	handles  [4]core.HandlePool
	shaders  map[core.ShaderHandle]shader
	programs map[core.ProgramHandle]*program
	textures map[core.TextureHandle]texture
	uniforms map[core.UniformHandle]uniform

	views map[core.ViewID]*view

	vb, ib        *core.TransientArena
	vao, vbo, ibo uint32
	frame         uint32
}

const (
	kindShader = iota
	kindProgram
	kindTexture
	kindUniform
)

func NewDevice(opts Options) (*Device, error) {
	if opts.TransientVBSize == 0 {
		opts.TransientVBSize = DefaultTransientVBSize
	}
	if opts.TransientIBSize == 0 {
		opts.TransientIBSize = DefaultTransientIBSize
	}

	var maxTex, maxUnits int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)
	gl.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &maxUnits)

	d := &Device{
		caps: core.Caps{
			RendererType:       core.RendererOpenGL,
			HomogeneousDepth:   true,
			OriginBottomLeft:   true,
			TransientVBSize:    opts.TransientVBSize,
			TransientIBSize:    opts.TransientIBSize,
			MaxTextureSize:     uint16(min(maxTex, 0xFFFF)),
			MaxTextureSamplers: uint8(min(maxUnits, 16)),
		},
		shaders:  make(map[core.ShaderHandle]shader),
		programs: make(map[core.ProgramHandle]*program),
		textures: make(map[core.TextureHandle]texture),
		uniforms: make(map[core.UniformHandle]uniform),
		views:    make(map[core.ViewID]*view),
		vb:       core.NewTransientArena(opts.TransientVBSize),
		ib:       core.NewTransientArena(opts.TransientIBSize),
	}

	gl.GenVertexArrays(1, &d.vao)
	gl.GenBuffers(1, &d.vbo)
	gl.GenBuffers(1, &d.ibo)

	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, int(opts.TransientVBSize), nil, gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, int(opts.TransientIBSize), nil, gl.STREAM_DRAW)
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		d.Shutdown()
		return nil, fmt.Errorf("gl: device init error 0x%x", code)
	}
	slog.Debug("gl device ready",
		"max_texture", d.caps.MaxTextureSize,
		"samplers", d.caps.MaxTextureSamplers,
		"vb", opts.TransientVBSize, "ib", opts.TransientIBSize)
	return d, nil
}

func (d *Device) RendererType() core.RendererType { return core.RendererOpenGL }
func (d *Device) Caps() core.Caps                 { return d.caps }

func (d *Device) CreateShader(stage core.ShaderStage, code []byte) (core.ShaderHandle, error) {
	if len(code) == 0 {
		return core.InvalidHandle, errors.New("gl: empty shader code")
	}
	h, err := d.handles[kindShader].Alloc()
	if err != nil {
		return core.InvalidHandle, err
	}
	id, err := makeShader(string(code), stage)
	if err != nil {
		d.handles[kindShader].Release(h)
		return core.InvalidHandle, err
	}
	d.shaders[core.ShaderHandle(h)] = shader{id: id, stage: stage}
	return core.ShaderHandle(h), nil
}

func (d *Device) CreateProgram(vs, fs core.ShaderHandle, destroyShaders bool) (core.ProgramHandle, error) {
	v, okv := d.shaders[vs]
	f, okf := d.shaders[fs]
	if !okv || !okf {
		return core.InvalidHandle, fmt.Errorf("gl: program shaders %d/%d: %w", vs, fs, core.ErrInvalidHandle)
	}
	if v.stage != core.StageVertex || f.stage != core.StageFragment {
		return core.InvalidHandle, errors.New("gl: program shader stages mismatch")
	}
	h, err := d.handles[kindProgram].Alloc()
	if err != nil {
		return core.InvalidHandle, err
	}
	id, err := linkProgram(v.id, f.id)
	if err != nil {
		d.handles[kindProgram].Release(h)
		return core.InvalidHandle, err
	}
	d.programs[core.ProgramHandle(h)] = &program{
		id:       id,
		viewProj: uniformLocation(id, "u_viewProj"),
		samplers: make(map[string]int32),
	}
	if destroyShaders {
		d.DestroyShader(vs)
		d.DestroyShader(fs)
	}
	return core.ProgramHandle(h), nil
}

func (d *Device) CreateTexture2D(desc core.TextureDesc) (core.TextureHandle, error) {
	if err := desc.Validate(); err != nil {
		return core.InvalidHandle, err
	}
	if desc.Width > d.caps.MaxTextureSize || desc.Height > d.caps.MaxTextureSize {
		return core.InvalidHandle, fmt.Errorf("gl: texture %dx%d exceeds %d", desc.Width, desc.Height, d.caps.MaxTextureSize)
	}
	h, err := d.handles[kindTexture].Alloc()
	if err != nil {
		return core.InvalidHandle, err
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	applySampler(desc.Flags)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	internal, format, typ := textureFormat(desc.Format)
	var pixels unsafe.Pointer
	if len(desc.Pixels) > 0 {
		pixels = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, typ, pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		d.handles[kindTexture].Release(h)
		return core.InvalidHandle, fmt.Errorf("gl: texture upload error 0x%x", code)
	}
	d.textures[core.TextureHandle(h)] = texture{id: id, flags: desc.Flags}
	return core.TextureHandle(h), nil
}

// CreateUniform only records the name; locations are resolved per program.
func (d *Device) CreateUniform(name string, typ core.UniformType, _ uint16) (core.UniformHandle, error) {
	if name == "" {
		return core.InvalidHandle, errors.New("gl: empty uniform name")
	}
	h, err := d.handles[kindUniform].Alloc()
	if err != nil {
		return core.InvalidHandle, err
	}
	d.uniforms[core.UniformHandle(h)] = uniform{name: name, typ: typ}
	return core.UniformHandle(h), nil
}

func (d *Device) DestroyShader(h core.ShaderHandle) {
	s, ok := d.shaders[h]
	if !ok {
		slog.Warn("gl: destroy unknown shader", "handle", h)
		return
	}
	gl.DeleteShader(s.id)
	delete(d.shaders, h)
	d.handles[kindShader].Release(uint16(h))
}

func (d *Device) DestroyProgram(h core.ProgramHandle) {
	p, ok := d.programs[h]
	if !ok {
		slog.Warn("gl: destroy unknown program", "handle", h)
		return
	}
	gl.DeleteProgram(p.id)
	delete(d.programs, h)
	d.handles[kindProgram].Release(uint16(h))
}

func (d *Device) DestroyTexture(h core.TextureHandle) {
	t, ok := d.textures[h]
	if !ok {
		slog.Warn("gl: destroy unknown texture", "handle", h)
		return
	}
	gl.DeleteTextures(1, &t.id)
	delete(d.textures, h)
	d.handles[kindTexture].Release(uint16(h))
}

func (d *Device) DestroyUniform(h core.UniformHandle) {
	if _, ok := d.uniforms[h]; !ok {
		slog.Warn("gl: destroy unknown uniform", "handle", h)
		return
	}
	delete(d.uniforms, h)
	d.handles[kindUniform].Release(uint16(h))
}

func (d *Device) Reset(width, height uint32) {
	d.width, d.height = width, height
}

// Shutdown releases every GL object the device still owns.
func (d *Device) Shutdown() {
	for h := range d.programs {
		d.DestroyProgram(h)
	}
	for h := range d.shaders {
		d.DestroyShader(h)
	}
	for h := range d.textures {
		d.DestroyTexture(h)
	}
	clear(d.uniforms)
	if d.ibo != 0 {
		gl.DeleteBuffers(1, &d.ibo)
		d.ibo = 0
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
		d.vbo = 0
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func applySampler(flags core.SamplerFlags) {
	minF, magF, wrapS, wrapT := samplerParams(flags)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minF)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magF)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapS)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapT)
}
