// Package uirender translates imgui draw data into core.Device submissions.
package uirender

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"github.com/hubastard/imbridge/engine/core"
	"github.com/hubastard/imbridge/engine/gfx/shaders"
	"github.com/hubastard/imbridge/engine/imgui"
	"github.com/hubastard/imbridge/engine/mat"
	"github.com/hubastard/imbridge/engine/profiler"
)

// ErrVertexLayoutMismatch means the device vertex layout and
// imgui.DrawVert disagree on stride or attribute offsets.
var ErrVertexLayoutMismatch = errors.New("uirender: vertex layout does not match imgui.DrawVert")

const (
	// MinDeltaTime is the smallest delta reported to the toolkit.
	MinDeltaTime = time.Microsecond
	// DefaultView is used until the first BeginFrame.
	DefaultView core.ViewID = 255

	projNear = 0
	projFar  = 1000

	backendName = "imbridge-uirender"
)

// renderState is alpha blending with color and alpha writes, no depth.
var renderState = core.StateWriteRGB | core.StateWriteA | core.StateMSAA |
	core.BlendFuncSeparate(core.BlendSrcAlpha, core.BlendInvSrcAlpha, core.BlendSrcAlpha, core.BlendInvSrcAlpha)

// Options tunes New. The zero value is ready to use.
type Options struct {
	// Clock replaces time.Now for delta-time measurement.
	Clock func() time.Time
}

// FrameInput is the platform state pushed into the toolkit each frame.
type FrameInput struct {
	MousePos     [2]float32
	MouseButtons uint8 // bit i set when button i is held
	MouseWheel   float32
	DisplaySize  [2]int
	Char         rune // 0 when nothing was typed
	View         core.ViewID
}

// Stats describes the last Render call.
type Stats struct {
	DrawCalls    int
	Culled       int
	ListsSkipped int
	Callbacks    int
	Resets       int
	Vertices     int
	Indices      int
}

// Renderer translates toolkit draw data into device submissions on one
// view. It is not safe for concurrent use.
type Renderer struct {
	dev core.Device

	program   core.ProgramHandle
	vs, fs    core.ShaderHandle
	layout    core.VertexLayout
	fontAtlas core.TextureHandle
	sampler   core.UniformHandle

	view  core.ViewID
	clock func() time.Time
	last  time.Time
	stats Stats

	destroyed bool
}

// New creates the device resources for drawing ctx: the font atlas
// texture, the shader program and the sampler uniform. It also disables
// settings persistence on ctx and declares vertex-offset support.
// On error everything created so far is destroyed.
func New(dev core.Device, ctx *imgui.Context, opts Options) (_ *Renderer, err error) {
	r := &Renderer{
		dev:       dev,
		program:   core.InvalidHandle,
		vs:        core.InvalidHandle,
		fs:        core.InvalidHandle,
		fontAtlas: core.InvalidHandle,
		sampler:   core.InvalidHandle,
		view:      DefaultView,
		clock:     opts.Clock,
	}
	if r.clock == nil {
		r.clock = time.Now
	}
	defer func() {
		if err != nil {
			r.release()
		}
	}()

	ctx.SetIniFilename("")
	io := ctx.IO()
	io.BackendFlags |= imgui.BackendFlagsRendererHasVtxOffset
	io.BackendRendererName = backendName

	if err = r.uploadFontAtlas(ctx); err != nil {
		return nil, err
	}

	var pair shaders.Pair
	if pair, err = shaders.Lookup(dev.RendererType()); err != nil {
		return nil, err
	}
	if r.vs, err = dev.CreateShader(core.StageVertex, pair.Vertex); err != nil {
		return nil, fmt.Errorf("create vertex shader: %w", err)
	}
	if r.fs, err = dev.CreateShader(core.StageFragment, pair.Fragment); err != nil {
		return nil, fmt.Errorf("create fragment shader: %w", err)
	}
	// Shaders stay alive until Destroy.
	if r.program, err = dev.CreateProgram(r.vs, r.fs, false); err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	r.layout.Begin().
		Add(core.AttribPosition, 2, core.AttribFloat32, false, false).
		Add(core.AttribTexCoord0, 2, core.AttribFloat32, false, false).
		Add(core.AttribColor0, 4, core.AttribUint8, true, false).
		End()
	if err = validateLayout(&r.layout); err != nil {
		return nil, err
	}

	if r.sampler, err = dev.CreateUniform("s_tex", core.UniformSampler, 1); err != nil {
		return nil, fmt.Errorf("create sampler uniform: %w", err)
	}

	r.last = r.clock()
	Logger().Info("uirender: initialized",
		"renderer", dev.RendererType(), "program", r.program, "font_atlas", r.fontAtlas)
	return r, nil
}

// validateLayout checks l against the in-memory DrawVert so vertex data
// can be copied byte for byte.
func validateLayout(l *core.VertexLayout) error {
	var v imgui.DrawVert
	if uintptr(l.Stride) != unsafe.Sizeof(v) {
		return fmt.Errorf("%w: stride %d, DrawVert is %d bytes", ErrVertexLayoutMismatch, l.Stride, unsafe.Sizeof(v))
	}
	for _, f := range []struct {
		attr   core.Attrib
		offset uintptr
	}{
		{core.AttribPosition, unsafe.Offsetof(v.Pos)},
		{core.AttribTexCoord0, unsafe.Offsetof(v.UV)},
		{core.AttribColor0, unsafe.Offsetof(v.Col)},
	} {
		at, ok := l.Attribute(f.attr)
		if !ok {
			return fmt.Errorf("%w: missing %s", ErrVertexLayoutMismatch, f.attr.Name())
		}
		if uintptr(at.Offset) != f.offset {
			return fmt.Errorf("%w: %s at offset %d, DrawVert has %d", ErrVertexLayoutMismatch, f.attr.Name(), at.Offset, f.offset)
		}
	}
	return nil
}

func (r *Renderer) uploadFontAtlas(ctx *imgui.Context) error {
	pixels, w, h, err := ctx.Fonts().GetTexDataAsRGBA32()
	if err != nil {
		return err
	}
	if w <= 0 || h <= 0 || w > 0xFFFF || h > 0xFFFF {
		return fmt.Errorf("uirender: font atlas size %dx%d", w, h)
	}
	tex, err := r.dev.CreateTexture2D(core.TextureDesc{
		Width:  uint16(w),
		Height: uint16(h),
		Format: core.TextureRGBA8,
		Pixels: pixels,
	})
	if err != nil {
		return fmt.Errorf("create font atlas texture: %w", err)
	}
	r.fontAtlas = tex
	ctx.Fonts().TexID = r.TextureID(tex)
	return nil
}

// RebuildFontAtlas rasterizes the context fonts again and replaces the
// atlas texture. The previous texture is kept when the rebuild fails.
func (r *Renderer) RebuildFontAtlas(ctx *imgui.Context) error {
	if r.destroyed {
		return errors.New("uirender: renderer destroyed")
	}
	old := r.fontAtlas
	if err := ctx.Fonts().Build(); err != nil {
		return err
	}
	if err := r.uploadFontAtlas(ctx); err != nil {
		r.fontAtlas = old
		ctx.Fonts().TexID = r.TextureID(old)
		return err
	}
	if old != core.InvalidHandle {
		r.dev.DestroyTexture(old)
	}
	Logger().Info("uirender: font atlas rebuilt", "texture", r.fontAtlas)
	return nil
}

// TextureID encodes a device texture for DrawList.AddImage. Zero is
// reserved for the font atlas.
func (r *Renderer) TextureID(h core.TextureHandle) imgui.TextureID {
	return imgui.TextureID(h) + 1
}

func (r *Renderer) texture(id imgui.TextureID) core.TextureHandle {
	if id == 0 {
		return r.fontAtlas
	}
	return core.TextureHandle(id - 1)
}

// Program returns the UI shader program.
func (r *Renderer) Program() core.ProgramHandle { return r.program }

// Stats returns counters for the most recent Render.
func (r *Renderer) Stats() Stats { return r.stats }

// BeginFrame pushes platform input and timing into ctx and remembers the
// target view. It performs no device work.
func (r *Renderer) BeginFrame(ctx *imgui.Context, in FrameInput) {
	r.view = in.View

	io := ctx.IO()
	io.MousePos = in.MousePos
	for i := range io.MouseDown {
		io.MouseDown[i] = in.MouseButtons&(1<<i) != 0
	}
	io.MouseWheel = in.MouseWheel
	io.DisplaySize = [2]float32{float32(in.DisplaySize[0]), float32(in.DisplaySize[1])}
	if in.Char != 0 {
		io.AddInputCharacter(in.Char)
	}

	now := r.clock()
	dt := now.Sub(r.last)
	if dt < MinDeltaTime {
		dt = MinDeltaTime
	}
	io.DeltaTime = float32(dt.Seconds())
	r.last = now
}

// Render submits dd to the view chosen in BeginFrame. Lists that no longer
// fit in the frame's transient buffers are dropped together with every
// list after them.
func (r *Renderer) Render(dd *imgui.DrawData) {
	defer profiler.Start("uirender.Render")()

	r.stats = Stats{}
	if r.destroyed || dd == nil {
		return
	}
	fbW, fbH := dd.FramebufferSize()
	if !(fbW > 0 && fbH > 0) {
		return
	}

	view := r.view
	r.dev.SetViewMode(view, core.ViewModeSequential)
	{
		x, y := dd.DisplayPos[0], dd.DisplayPos[1]
		w, h := dd.DisplaySize[0], dd.DisplaySize[1]
		proj := mat.OrthoLH(x, x+w, y+h, y, projNear, projFar, r.dev.Caps().HomogeneousDepth)
		r.dev.SetViewTransform(view, mat.Identity(), proj)
		r.dev.SetViewRect(view, 0, 0, toU16(fbW), toU16(fbH))
	}

	index32 := imgui.DrawIdxSize == 4
	for i, list := range dd.CmdLists {
		numVerts := uint32(len(list.VtxBuffer))
		numIdx := uint32(len(list.IdxBuffer))
		if r.dev.AvailTransientVertexBuffer(numVerts, &r.layout) != numVerts ||
			r.dev.AvailTransientIndexBuffer(numIdx, index32) != numIdx {
			r.stats.ListsSkipped = len(dd.CmdLists) - i
			Logger().Debug("uirender: transient buffers exhausted",
				"list", list.Name, "vertices", numVerts, "indices", numIdx, "skipped", r.stats.ListsSkipped)
			break
		}

		var tvb core.TransientVertexBuffer
		var tib core.TransientIndexBuffer
		r.dev.AllocTransientVertexBuffer(&tvb, numVerts, &r.layout)
		r.dev.AllocTransientIndexBuffer(&tib, numIdx, index32)
		copy(tvb.Data, vertexBytes(list.VtxBuffer))
		copy(tib.Data, indexBytes(list.IdxBuffer))
		r.stats.Vertices += int(numVerts)
		r.stats.Indices += int(numIdx)

		enc := r.dev.EncoderBegin()
		for ci := range list.CmdBuffer {
			cmd := &list.CmdBuffer[ci]
			switch cmd.Kind {
			case imgui.CmdElements:
				r.drawElements(enc, dd, cmd, &tvb, &tib, numVerts, fbW, fbH)
			case imgui.CmdResetRenderState:
				r.stats.Resets++
				r.dev.Reset(uint32(fbW), uint32(fbH))
			case imgui.CmdCallback:
				r.stats.Callbacks++
				if cmd.Callback != nil {
					cmd.Callback(list, cmd)
				}
			}
		}
		r.dev.EncoderEnd(enc)
	}
}

func (r *Renderer) drawElements(enc core.Encoder, dd *imgui.DrawData, cmd *imgui.DrawCmd,
	tvb *core.TransientVertexBuffer, tib *core.TransientIndexBuffer, numVerts uint32, fbW, fbH float32) {
	off, scale := dd.DisplayPos, dd.FramebufferScale
	clip := [4]float32{
		(cmd.ClipRect[0] - off[0]) * scale[0],
		(cmd.ClipRect[1] - off[1]) * scale[1],
		(cmd.ClipRect[2] - off[0]) * scale[0],
		(cmd.ClipRect[3] - off[1]) * scale[1],
	}
	if clip[0] >= fbW || clip[1] >= fbH || clip[2] <= 0 || clip[3] <= 0 || cmd.VtxOffset > numVerts {
		r.stats.Culled++
		return
	}
	x0, y0 := toU16(clip[0]), toU16(clip[1])
	x1, y1 := toU16(min(clip[2], fbW)), toU16(min(clip[3], fbH))
	// A rect that overlaps the framebuffer by less than one pixel truncates
	// to zero extent. It would scissor away every fragment, so it is culled
	// here instead of submitted.
	if x1 <= x0 || y1 <= y0 {
		r.stats.Culled++
		return
	}

	enc.SetScissor(x0, y0, x1-x0, y1-y0)
	enc.SetState(renderState, 0)
	enc.SetTexture(0, r.sampler, r.texture(cmd.TextureID), core.SamplerUseTexture)
	enc.SetTransientVertexBuffer(0, tvb, cmd.VtxOffset, numVerts-cmd.VtxOffset)
	enc.SetTransientIndexBuffer(tib, cmd.IdxOffset, cmd.ElemCount)
	enc.Submit(r.view, r.program)
	r.stats.DrawCalls++
}

// toU16 truncates toward zero and saturates to the uint16 range.
func toU16(f float32) uint16 {
	switch {
	case !(f > 0):
		return 0
	case f >= 0xFFFF:
		return 0xFFFF
	}
	return uint16(f)
}

func vertexBytes(v []imgui.DrawVert) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*int(unsafe.Sizeof(v[0])))
}

func indexBytes(idx []imgui.DrawIdx) []byte {
	if len(idx) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&idx[0])), len(idx)*imgui.DrawIdxSize)
}

// Destroy releases the program, its shaders, the font atlas and the
// sampler uniform. Later calls do nothing.
func (r *Renderer) Destroy() {
	if r == nil || r.destroyed {
		return
	}
	r.destroyed = true
	r.release()
	Logger().Info("uirender: destroyed")
}

func (r *Renderer) release() {
	if r.program != core.InvalidHandle {
		r.dev.DestroyProgram(r.program)
		r.program = core.InvalidHandle
	}
	if r.vs != core.InvalidHandle {
		r.dev.DestroyShader(r.vs)
		r.vs = core.InvalidHandle
	}
	if r.fs != core.InvalidHandle {
		r.dev.DestroyShader(r.fs)
		r.fs = core.InvalidHandle
	}
	if r.fontAtlas != core.InvalidHandle {
		r.dev.DestroyTexture(r.fontAtlas)
		r.fontAtlas = core.InvalidHandle
	}
	if r.sampler != core.InvalidHandle {
		r.dev.DestroyUniform(r.sampler)
		r.sampler = core.InvalidHandle
	}
}
