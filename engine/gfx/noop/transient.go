package noop

import "github.com/hubastard/imbridge/engine/core"

func (d *Device) AvailTransientVertexBuffer(num uint32, layout *core.VertexLayout) uint32 {
	if !layout.Valid() {
		return 0
	}
	return d.vb.Avail(num, uint32(layout.Stride))
}

func (d *Device) AvailTransientIndexBuffer(num uint32, index32 bool) uint32 {
	return d.ib.Avail(num, core.IndexSize(index32))
}

// AllocTransientVertexBuffer hands out at most what is available; callers
// check availability first.
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

type encoder struct {
	d   *Device
	cur Submission
}

func (e *encoder) SetScissor(x, y, w, h uint16) {
	e.cur.HasScissor = true
	e.cur.Scissor = [4]uint16{x, y, w, h}
}

func (e *encoder) SetState(state core.State, rgba uint32) {
	e.cur.State, e.cur.RGBA = state, rgba
}

func (e *encoder) SetTexture(stage uint8, sampler core.UniformHandle, tex core.TextureHandle, flags core.SamplerFlags) {
	e.cur.Stage, e.cur.Sampler, e.cur.Texture, e.cur.SamplerFlags = stage, sampler, tex, flags
}

func (e *encoder) SetTransientVertexBuffer(_ uint8, tvb *core.TransientVertexBuffer, start, num uint32) {
	e.cur.VB, e.cur.VBStart, e.cur.VBNum = *tvb, start, num
}

func (e *encoder) SetTransientIndexBuffer(tib *core.TransientIndexBuffer, start, num uint32) {
	e.cur.IB, e.cur.IBStart, e.cur.IBNum = *tib, start, num
}

// Submit records the pending draw and clears encoder state.
func (e *encoder) Submit(id core.ViewID, program core.ProgramHandle) {
	s := e.cur
	s.View, s.Program, s.Frame = id, program, e.d.frame
	e.d.submissions = append(e.d.submissions, s)
	e.cur = Submission{}
}
