package glbackend

import (
	"slices"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/imbridge/engine/core"
	"github.com/hubastard/imbridge/engine/mat"
)

type view struct {
	mode       core.ViewMode
	viewProj   mat.Mat4
	rect       [4]uint16
	clearFlags core.ClearFlags
	clearRGBA  uint32
	clearDepth float32
	touched    bool
	draws      []draw
}

// draw is one submitted call, replayed at Frame.
type draw struct {
	program core.ProgramHandle
	state   core.State
	rgba    uint32

	hasScissor bool
	scissor    [4]uint16

	hasTexture bool
	stage      uint8
	sampler    core.UniformHandle
	texture    core.TextureHandle
	flags      core.SamplerFlags

	layout     *core.VertexLayout
	baseVertex uint32
	firstIndex uint32
	numIndices uint32
	index32    bool
}

func (d *Device) view(id core.ViewID) *view {
	v, ok := d.views[id]
	if !ok {
		v = &view{viewProj: mat.Identity()}
		d.views[id] = v
	}
	return v
}

// SetViewMode is recorded but both modes replay in submission order.
func (d *Device) SetViewMode(id core.ViewID, mode core.ViewMode) { d.view(id).mode = mode }

func (d *Device) SetViewTransform(id core.ViewID, viewMtx, proj [16]float32) {
	d.view(id).viewProj = mat.Mul(proj, viewMtx)
}

func (d *Device) SetViewRect(id core.ViewID, x, y, w, h uint16) {
	d.view(id).rect = [4]uint16{x, y, w, h}
}

func (d *Device) SetViewClear(id core.ViewID, flags core.ClearFlags, rgba uint32, depth float32) {
	v := d.view(id)
	v.clearFlags, v.clearRGBA, v.clearDepth = flags, rgba, depth
}

func (d *Device) Touch(id core.ViewID) { d.view(id).touched = true }

func (d *Device) AvailTransientVertexBuffer(num uint32, layout *core.VertexLayout) uint32 {
	if !layout.Valid() {
		return 0
	}
	return d.vb.Avail(num, uint32(layout.Stride))
}

func (d *Device) AvailTransientIndexBuffer(num uint32, index32 bool) uint32 {
	return d.ib.Avail(num, core.IndexSize(index32))
}

func (d *Device) AllocTransientVertexBuffer(tvb *core.TransientVertexBuffer, num uint32, layout *core.VertexLayout) {
	*tvb = core.TransientVertexBuffer{Layout: layout}
	if !layout.Valid() {
		return
	}
	data, first := d.vb.Alloc(num, uint32(layout.Stride))
	if data == nil {
		return
	}
	tvb.Data, tvb.StartVertex, tvb.Size, tvb.Stride = data, first, uint32(len(data)), layout.Stride
}

func (d *Device) AllocTransientIndexBuffer(tib *core.TransientIndexBuffer, num uint32, index32 bool) {
	*tib = core.TransientIndexBuffer{Index32: index32}
	data, first := d.ib.Alloc(num, core.IndexSize(index32))
	if data == nil {
		return
	}
	tib.Data, tib.StartIndex, tib.Size = data, first, uint32(len(data))
}

func (d *Device) EncoderBegin() core.Encoder { return &encoder{d: d} }

func (d *Device) EncoderEnd(core.Encoder) {}

type encoder struct {
	d   *Device
	cur draw
}

func (e *encoder) SetScissor(x, y, w, h uint16) {
	e.cur.hasScissor = true
	e.cur.scissor = [4]uint16{x, y, w, h}
}

func (e *encoder) SetState(state core.State, rgba uint32) {
	e.cur.state, e.cur.rgba = state, rgba
}

func (e *encoder) SetTexture(stage uint8, sampler core.UniformHandle, tex core.TextureHandle, flags core.SamplerFlags) {
	e.cur.hasTexture = true
	e.cur.stage, e.cur.sampler, e.cur.texture, e.cur.flags = stage, sampler, tex, flags
}

func (e *encoder) SetTransientVertexBuffer(_ uint8, tvb *core.TransientVertexBuffer, start, _ uint32) {
	e.cur.layout = tvb.Layout
	e.cur.baseVertex = tvb.StartVertex + start
}

func (e *encoder) SetTransientIndexBuffer(tib *core.TransientIndexBuffer, start, num uint32) {
	e.cur.firstIndex = tib.StartIndex + start
	e.cur.numIndices = num
	e.cur.index32 = tib.Index32
}

func (e *encoder) Submit(id core.ViewID, program core.ProgramHandle) {
	e.cur.program = program
	v := e.d.view(id)
	v.draws = append(v.draws, e.cur)
	e.cur = draw{}
}

// Frame uploads the transient arenas, replays every view in id order and
// resets per-frame state.
func (d *Device) Frame() uint32 {
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ibo)
	if vb := d.vb.Used(); len(vb) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vb), gl.Ptr(vb))
	}
	if ib := d.ib.Used(); len(ib) > 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(ib), gl.Ptr(ib))
	}

	ids := make([]core.ViewID, 0, len(d.views))
	for id := range d.views {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		v := d.views[id]
		if v.touched || len(v.draws) > 0 {
			d.replay(v)
		}
		v.touched = false
		v.draws = v.draws[:0]
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	d.vb.Reset()
	d.ib.Reset()
	d.frame++
	return d.frame
}

func (d *Device) viewRect(v *view) (int32, int32, int32, int32) {
	r := v.rect
	if r[2] == 0 || r[3] == 0 {
		r = [4]uint16{0, 0, uint16(min(d.width, 0xFFFF)), uint16(min(d.height, 0xFFFF))}
	}
	return flipRect(r[0], r[1], r[2], r[3], d.height)
}

func (d *Device) replay(v *view) {
	x, y, w, h := d.viewRect(v)
	gl.Viewport(x, y, w, h)

	if v.clearFlags != core.ClearNone {
		var mask uint32
		gl.Enable(gl.SCISSOR_TEST)
		gl.Scissor(x, y, w, h)
		if v.clearFlags&core.ClearColor != 0 {
			gl.ColorMask(true, true, true, true)
			gl.ClearColor(unpackRGBA(v.clearRGBA))
			mask |= gl.COLOR_BUFFER_BIT
		}
		if v.clearFlags&core.ClearDepth != 0 {
			gl.DepthMask(true)
			gl.ClearDepth(float64(v.clearDepth))
			mask |= gl.DEPTH_BUFFER_BIT
		}
		gl.Clear(mask)
	}

	for i := range v.draws {
		d.submit(v, &v.draws[i])
	}
}

func (d *Device) submit(v *view, dr *draw) {
	p, ok := d.programs[dr.program]
	if !ok || !dr.layout.Valid() || dr.numIndices == 0 {
		return
	}
	applyState(dr.state)

	if dr.hasScissor {
		gl.Enable(gl.SCISSOR_TEST)
		gl.Scissor(flipRect(dr.scissor[0], dr.scissor[1], dr.scissor[2], dr.scissor[3], d.height))
	} else {
		gl.Disable(gl.SCISSOR_TEST)
	}

	gl.UseProgram(p.id)
	if p.viewProj >= 0 {
		gl.UniformMatrix4fv(p.viewProj, 1, false, &v.viewProj[0])
	}
	if dr.hasTexture {
		d.bindTexture(p, dr)
	}

	bindLayout(dr.layout)
	size := core.IndexSize(dr.index32)
	gl.DrawElementsBaseVertex(gl.TRIANGLES, int32(dr.numIndices), indexType(dr.index32),
		gl.PtrOffset(int(dr.firstIndex*size)), int32(dr.baseVertex))
}

func (d *Device) bindTexture(p *program, dr *draw) {
	t, ok := d.textures[dr.texture]
	if !ok {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(dr.stage))
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	if dr.flags != core.SamplerUseTexture {
		applySampler(dr.flags)
	} else {
		applySampler(t.flags)
	}
	u, ok := d.uniforms[dr.sampler]
	if !ok {
		return
	}
	loc, ok := p.samplers[u.name]
	if !ok {
		loc = uniformLocation(p.id, u.name)
		p.samplers[u.name] = loc
	}
	if loc >= 0 {
		gl.Uniform1i(loc, int32(dr.stage))
	}
}

func bindLayout(l *core.VertexLayout) {
	stride := int32(l.Stride)
	var used [core.AttribCount]bool
	for _, a := range l.Attributes {
		if a.Location >= core.AttribCount {
			continue
		}
		used[a.Location] = true
		loc := uint32(a.Location)
		gl.EnableVertexAttribArray(loc)
		off := gl.PtrOffset(int(a.Offset))
		if a.AsInt {
			gl.VertexAttribIPointer(loc, int32(a.Size), attribType(a.Type), stride, off)
		} else {
			gl.VertexAttribPointer(loc, int32(a.Size), attribType(a.Type), a.Normalized, stride, off)
		}
	}
	for loc, on := range used {
		if !on {
			gl.DisableVertexAttribArray(uint32(loc))
		}
	}
}

func applyState(s core.State) {
	gl.ColorMask(s.Has(core.StateWriteR), s.Has(core.StateWriteG), s.Has(core.StateWriteB), s.Has(core.StateWriteA))
	gl.DepthMask(s.Has(core.StateWriteZ))

	if s.Has(core.StateDepthTestLess) {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	switch {
	case s.Has(core.StateCullCW):
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.BACK)
	case s.Has(core.StateCullCCW):
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.FRONT)
	default:
		gl.Disable(gl.CULL_FACE)
	}

	if srcRGB, dstRGB, srcA, dstA, ok := s.Blend(); ok {
		gl.Enable(gl.BLEND)
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFuncSeparate(blendFactor(srcRGB, false), blendFactor(dstRGB, true), blendFactor(srcA, false), blendFactor(dstA, true))
	} else {
		gl.Disable(gl.BLEND)
	}

	if s.Has(core.StateMSAA) {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}
}

var _ core.Device = (*Device)(nil)
