// Package noop implements core.Device without a GPU. It keeps every
// resource, view setting and submission in memory so callers can inspect
// what a frame would have drawn.
package noop

import (
	"errors"
	"fmt"

	"github.com/hubastard/imbridge/engine/core"
)

const (
	DefaultTransientVBSize = 6 << 20
	DefaultTransientIBSize = 2 << 20
)

type Options struct {
	// Renderer is what RendererType reports. Zero selects OpenGL so the
	// shader table resolves.
	Renderer         core.RendererType
	HomogeneousDepth bool
	TransientVBSize  uint32 // bytes, zero selects the default
	TransientIBSize  uint32
	MaxTextureSize   uint16
}

// View is the recorded configuration of one view.
type View struct {
	Mode       core.ViewMode
	View, Proj [16]float32
	Rect       [4]uint16 // x, y, w, h
	ClearFlags core.ClearFlags
	ClearRGBA  uint32
	ClearDepth float32
	Touched    bool
}

// Submission is one recorded draw.
type Submission struct {
	View    core.ViewID
	Program core.ProgramHandle
	State   core.State
	RGBA    uint32

	HasScissor bool
	Scissor    [4]uint16 // x, y, w, h

	Stage        uint8
	Sampler      core.UniformHandle
	Texture      core.TextureHandle
	SamplerFlags core.SamplerFlags

	VB             core.TransientVertexBuffer
	VBStart, VBNum uint32
	IB             core.TransientIndexBuffer
	IBStart, IBNum uint32
	Frame          uint32
}

// Counts reports live resources and misuse seen by the device.
type Counts struct {
	Shaders, Programs, Textures, Uniforms int
	DoubleDestroys                       int
	OpenEncoders                         int
}

type shader struct {
	stage core.ShaderStage
	code  []byte
}

type program struct{ vs, fs core.ShaderHandle }

type uniform struct {
	name string
	typ  core.UniformType
	num  uint16
}

type Device struct {
	caps core.Caps

	// FailCreate, when set, is consulted before every Create call with
	// "shader", "program", "texture" or "uniform"; a non-nil error fails it.
	FailCreate func(kind string) error

	handles  [4]core.HandlePool
	shaders  map[core.ShaderHandle]shader
	programs map[core.ProgramHandle]program
	textures map[core.TextureHandle]core.TextureDesc
	uniforms map[core.UniformHandle]uniform

	views       map[core.ViewID]*View
	resets      [][2]uint32
	submissions []Submission
	counts      Counts

	vb, ib *core.TransientArena
	frame  uint32
}

func New(opts Options) *Device {
	if opts.Renderer == core.RendererNoop {
		opts.Renderer = core.RendererOpenGL
	}
	if opts.TransientVBSize == 0 {
		opts.TransientVBSize = DefaultTransientVBSize
	}
	if opts.TransientIBSize == 0 {
		opts.TransientIBSize = DefaultTransientIBSize
	}
	if opts.MaxTextureSize == 0 {
		opts.MaxTextureSize = 8192
	}
	return &Device{
		caps: core.Caps{
			RendererType:       opts.Renderer,
			HomogeneousDepth:   opts.HomogeneousDepth,
			TransientVBSize:    opts.TransientVBSize,
			TransientIBSize:    opts.TransientIBSize,
			MaxTextureSize:     opts.MaxTextureSize,
			MaxTextureSamplers: 16,
		},
		shaders:  make(map[core.ShaderHandle]shader),
		programs: make(map[core.ProgramHandle]program),
		textures: make(map[core.TextureHandle]core.TextureDesc),
		uniforms: make(map[core.UniformHandle]uniform),
		views:    make(map[core.ViewID]*View),
		vb:       core.NewTransientArena(opts.TransientVBSize),
		ib:       core.NewTransientArena(opts.TransientIBSize),
	}
}

func (d *Device) RendererType() core.RendererType { return d.caps.RendererType }
func (d *Device) Caps() core.Caps                 { return d.caps }

const (
	kindShader = iota
	kindProgram
	kindTexture
	kindUniform
)

func (d *Device) fail(kind string) error {
	if d.FailCreate == nil {
		return nil
	}
	if err := d.FailCreate(kind); err != nil {
		return fmt.Errorf("noop: create %s: %w", kind, err)
	}
	return nil
}

func (d *Device) CreateShader(stage core.ShaderStage, code []byte) (core.ShaderHandle, error) {
	if err := d.fail("shader"); err != nil {
		return core.InvalidHandle, err
	}
	if len(code) == 0 {
		return core.InvalidHandle, errors.New("noop: empty shader code")
	}
	h, err := d.handles[kindShader].Alloc()
	if err != nil {
		return core.InvalidHandle, err
	}
	d.shaders[core.ShaderHandle(h)] = shader{stage: stage, code: append([]byte(nil), code...)}
	d.counts.Shaders++
	return core.ShaderHandle(h), nil
}

func (d *Device) CreateProgram(vs, fs core.ShaderHandle, destroyShaders bool) (core.ProgramHandle, error) {
	if err := d.fail("program"); err != nil {
		return core.InvalidHandle, err
	}
	v, okv := d.shaders[vs]
	f, okf := d.shaders[fs]
	if !okv || !okf {
		return core.InvalidHandle, fmt.Errorf("noop: program shaders %d/%d: %w", vs, fs, core.ErrInvalidHandle)
	}
	if v.stage != core.StageVertex || f.stage != core.StageFragment {
		return core.InvalidHandle, errors.New("noop: program shader stages mismatch")
	}
	h, err := d.handles[kindProgram].Alloc()
	if err != nil {
		return core.InvalidHandle, err
	}
	d.programs[core.ProgramHandle(h)] = program{vs: vs, fs: fs}
	d.counts.Programs++
	if destroyShaders {
		d.DestroyShader(vs)
		d.DestroyShader(fs)
	}
	return core.ProgramHandle(h), nil
}

func (d *Device) CreateTexture2D(desc core.TextureDesc) (core.TextureHandle, error) {
	if err := d.fail("texture"); err != nil {
		return core.InvalidHandle, err
	}
	if err := desc.Validate(); err != nil {
		return core.InvalidHandle, err
	}
	if desc.Width > d.caps.MaxTextureSize || desc.Height > d.caps.MaxTextureSize {
		return core.InvalidHandle, fmt.Errorf("noop: texture %dx%d exceeds %d", desc.Width, desc.Height, d.caps.MaxTextureSize)
	}
	h, err := d.handles[kindTexture].Alloc()
	if err != nil {
		return core.InvalidHandle, err
	}
	desc.Pixels = append([]byte(nil), desc.Pixels...)
	d.textures[core.TextureHandle(h)] = desc
	d.counts.Textures++
	return core.TextureHandle(h), nil
}

func (d *Device) CreateUniform(name string, typ core.UniformType, num uint16) (core.UniformHandle, error) {
	if err := d.fail("uniform"); err != nil {
		return core.InvalidHandle, err
	}
	if name == "" {
		return core.InvalidHandle, errors.New("noop: empty uniform name")
	}
	h, err := d.handles[kindUniform].Alloc()
	if err != nil {
		return core.InvalidHandle, err
	}
	d.uniforms[core.UniformHandle(h)] = uniform{name: name, typ: typ, num: num}
	d.counts.Uniforms++
	return core.UniformHandle(h), nil
}

func (d *Device) DestroyShader(h core.ShaderHandle) {
	if _, ok := d.shaders[h]; !ok {
		d.counts.DoubleDestroys++
		return
	}
	delete(d.shaders, h)
	d.handles[kindShader].Release(uint16(h))
	d.counts.Shaders--
}

func (d *Device) DestroyProgram(h core.ProgramHandle) {
	if _, ok := d.programs[h]; !ok {
		d.counts.DoubleDestroys++
		return
	}
	delete(d.programs, h)
	d.handles[kindProgram].Release(uint16(h))
	d.counts.Programs--
}

func (d *Device) DestroyTexture(h core.TextureHandle) {
	if _, ok := d.textures[h]; !ok {
		d.counts.DoubleDestroys++
		return
	}
	delete(d.textures, h)
	d.handles[kindTexture].Release(uint16(h))
	d.counts.Textures--
}

func (d *Device) DestroyUniform(h core.UniformHandle) {
	if _, ok := d.uniforms[h]; !ok {
		d.counts.DoubleDestroys++
		return
	}
	delete(d.uniforms, h)
	d.handles[kindUniform].Release(uint16(h))
	d.counts.Uniforms--
}

func (d *Device) view(id core.ViewID) *View {
	v, ok := d.views[id]
	if !ok {
		v = &View{}
		d.views[id] = v
	}
	return v
}

func (d *Device) SetViewMode(id core.ViewID, mode core.ViewMode) { d.view(id).Mode = mode }

func (d *Device) SetViewTransform(id core.ViewID, view, proj [16]float32) {
	v := d.view(id)
	v.View, v.Proj = view, proj
}

func (d *Device) SetViewRect(id core.ViewID, x, y, w, h uint16) {
	d.view(id).Rect = [4]uint16{x, y, w, h}
}

func (d *Device) SetViewClear(id core.ViewID, flags core.ClearFlags, rgba uint32, depth float32) {
	v := d.view(id)
	v.ClearFlags, v.ClearRGBA, v.ClearDepth = flags, rgba, depth
}

func (d *Device) Touch(id core.ViewID) { d.view(id).Touched = true }

func (d *Device) Reset(width, height uint32) {
	d.resets = append(d.resets, [2]uint32{width, height})
}

func (d *Device) EncoderBegin() core.Encoder {
	d.counts.OpenEncoders++
	return &encoder{d: d}
}

func (d *Device) EncoderEnd(enc core.Encoder) {
	if _, ok := enc.(*encoder); ok {
		d.counts.OpenEncoders--
	}
}

// Frame drops recorded submissions and reclaims transient memory.
func (d *Device) Frame() uint32 {
	d.submissions = d.submissions[:0]
	d.vb.Reset()
	d.ib.Reset()
	for _, v := range d.views {
		v.Touched = false
	}
	d.frame++
	return d.frame
}

// Submissions returns the draws recorded since the last Frame.
func (d *Device) Submissions() []Submission { return d.submissions }

// View returns the recorded settings of id and whether any were made.
func (d *Device) View(id core.ViewID) (View, bool) {
	v, ok := d.views[id]
	if !ok {
		return View{}, false
	}
	return *v, true
}

// Resets returns every Reset call in order.
func (d *Device) Resets() [][2]uint32 { return d.resets }

func (d *Device) Counts() Counts { return d.counts }

// Texture returns the description (including a copy of the pixels) of h.
func (d *Device) Texture(h core.TextureHandle) (core.TextureDesc, bool) {
	t, ok := d.textures[h]
	return t, ok
}

// ProgramShaders returns the shaders h was linked from.
func (d *Device) ProgramShaders(h core.ProgramHandle) (vs, fs core.ShaderHandle, ok bool) {
	p, ok := d.programs[h]
	return p.vs, p.fs, ok
}

// UniformName returns the name a uniform was created with.
func (d *Device) UniformName(h core.UniformHandle) (string, bool) {
	u, ok := d.uniforms[h]
	return u.name, ok
}
