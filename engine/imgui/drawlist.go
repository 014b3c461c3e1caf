package imgui

import (
	"math"

	"github.com/hubastard/imbridge/engine/text"
)

// maxVtxPerOffset is the number of vertices addressable from one
// VtxOffset with 16-bit indices.
const maxVtxPerOffset = 1 << 16

// DrawList accumulates vertices, indices and commands for one layer of
// the frame. Elements commands are merged while clip rect, texture and
// vertex offset stay the same.
type DrawList struct {
	Name string

	CmdBuffer []DrawCmd
	IdxBuffer []DrawIdx
	VtxBuffer []DrawVert

	clipStack [][4]float32
	texStack  []TextureID
	vtxOffset uint32

	hasVtxOffset bool
	font         *text.Font
	fontSize     float32
	whiteUV      [2]float32
}

func newDrawList(name string) *DrawList { return &DrawList{Name: name} }

func (dl *DrawList) reset(ctx *Context) {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.texStack = dl.texStack[:0]
	dl.vtxOffset = 0

	io := ctx.io
	dl.hasVtxOffset = io.BackendFlags&BackendFlagsRendererHasVtxOffset != 0
	dl.font = ctx.fonts.Font(0)
	dl.fontSize = DefaultFontSize
	if dl.font != nil {
		dl.fontSize = dl.font.SizePx
	}
	dl.fontSize *= io.FontGlobalScale
	dl.whiteUV = ctx.fonts.WhiteUV()

	dl.clipStack = append(dl.clipStack, [4]float32{0, 0, io.DisplaySize[0], io.DisplaySize[1]})
	dl.texStack = append(dl.texStack, ctx.fonts.TexID)
}

// ClipRect returns the current clip rectangle.
func (dl *DrawList) ClipRect() [4]float32 {
	if len(dl.clipStack) == 0 {
		return [4]float32{-8192, -8192, 8192, 8192}
	}
	return dl.clipStack[len(dl.clipStack)-1]
}

// PushClipRect restricts subsequent primitives to [min,max]. With
// intersect the rectangle is clipped against the current one.
func (dl *DrawList) PushClipRect(min, max [2]float32, intersect bool) {
	r := [4]float32{min[0], min[1], max[0], max[1]}
	if intersect {
		cur := dl.ClipRect()
		r[0] = float32(math.Max(float64(r[0]), float64(cur[0])))
		r[1] = float32(math.Max(float64(r[1]), float64(cur[1])))
		r[2] = float32(math.Min(float64(r[2]), float64(cur[2])))
		r[3] = float32(math.Min(float64(r[3]), float64(cur[3])))
	}
	r[2] = float32(math.Max(float64(r[0]), float64(r[2])))
	r[3] = float32(math.Max(float64(r[1]), float64(r[3])))
	dl.clipStack = append(dl.clipStack, r)
}

func (dl *DrawList) PopClipRect() {
	if len(dl.clipStack) > 1 {
		dl.clipStack = dl.clipStack[:len(dl.clipStack)-1]
	}
}

func (dl *DrawList) TextureID() TextureID {
	if len(dl.texStack) == 0 {
		return 0
	}
	return dl.texStack[len(dl.texStack)-1]
}

func (dl *DrawList) PushTextureID(id TextureID) { dl.texStack = append(dl.texStack, id) }

func (dl *DrawList) PopTextureID() {
	if len(dl.texStack) > 1 {
		dl.texStack = dl.texStack[:len(dl.texStack)-1]
	}
}

// currentCmd returns an Elements command matching the current clip,
// texture and vertex offset, appending one when needed.
func (dl *DrawList) currentCmd() *DrawCmd {
	clip, tex := dl.ClipRect(), dl.TextureID()
	if n := len(dl.CmdBuffer); n > 0 {
		c := &dl.CmdBuffer[n-1]
		if c.Kind == CmdElements {
			if c.ElemCount == 0 {
				c.ClipRect, c.TextureID = clip, tex
				c.VtxOffset, c.IdxOffset = dl.vtxOffset, uint32(len(dl.IdxBuffer))
				return c
			}
			if c.ClipRect == clip && c.TextureID == tex && c.VtxOffset == dl.vtxOffset {
				return c
			}
		}
	}
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		Kind:      CmdElements,
		ClipRect:  clip,
		TextureID: tex,
		VtxOffset: dl.vtxOffset,
		IdxOffset: uint32(len(dl.IdxBuffer)),
	})
	return &dl.CmdBuffer[len(dl.CmdBuffer)-1]
}

// PrimReserve grows the buffers by idxCount indices and vtxCount
// vertices and returns the new tails to fill. Index values are relative
// to the command's VtxOffset; base is the value of the first new vertex.
//
// With 16-bit indices a list may only exceed 64K vertices when the
// renderer declared BackendFlagsRendererHasVtxOffset; otherwise it panics.
func (dl *DrawList) PrimReserve(idxCount, vtxCount int) (vtx []DrawVert, idx []DrawIdx, base uint32) {
	if DrawIdxSize == 2 && len(dl.VtxBuffer)-int(dl.vtxOffset)+vtxCount > maxVtxPerOffset {
		if !dl.hasVtxOffset {
			panic("imgui: draw list exceeds 65536 vertices; set BackendFlagsRendererHasVtxOffset or build with imgui_idx32")
		}
		dl.vtxOffset = uint32(len(dl.VtxBuffer))
	}
	cmd := dl.currentCmd()
	cmd.ElemCount += uint32(idxCount)

	base = uint32(len(dl.VtxBuffer)) - dl.vtxOffset
	nv, ni := len(dl.VtxBuffer), len(dl.IdxBuffer)
	dl.VtxBuffer = grow(dl.VtxBuffer, vtxCount)
	dl.IdxBuffer = grow(dl.IdxBuffer, idxCount)
	return dl.VtxBuffer[nv:], dl.IdxBuffer[ni:], base
}

func grow[T any](s []T, n int) []T {
	if need := len(s) + n; need > cap(s) {
		ns := make([]T, len(s), max(need, 2*cap(s)))
		copy(ns, s)
		s = ns
	}
	return s[:len(s)+n]
}

// PrimRectUV writes one textured quad.
func (dl *DrawList) PrimRectUV(a, b, uvA, uvB [2]float32, col uint32) {
	vtx, idx, base := dl.PrimReserve(6, 4)
	vtx[0] = DrawVert{Pos: a, UV: uvA, Col: col}
	vtx[1] = DrawVert{Pos: [2]float32{b[0], a[1]}, UV: [2]float32{uvB[0], uvA[1]}, Col: col}
	vtx[2] = DrawVert{Pos: b, UV: uvB, Col: col}
	vtx[3] = DrawVert{Pos: [2]float32{a[0], b[1]}, UV: [2]float32{uvA[0], uvB[1]}, Col: col}
	i := DrawIdx(base)
	idx[0], idx[1], idx[2] = i, i+1, i+2
	idx[3], idx[4], idx[5] = i, i+2, i+3
}

// PrimRect writes one untextured quad sampling the white texel.
func (dl *DrawList) PrimRect(a, b [2]float32, col uint32) {
	dl.PrimRectUV(a, b, dl.whiteUV, dl.whiteUV, col)
}

func transparent(col uint32) bool { return col>>24 == 0 }

func (dl *DrawList) AddRectFilled(min, max [2]float32, col uint32) {
	if transparent(col) {
		return
	}
	dl.PrimRect(min, max, col)
}

// AddRect outlines [min,max] with an inner border of the given thickness.
func (dl *DrawList) AddRect(min, max [2]float32, col uint32, thickness float32) {
	if transparent(col) || thickness <= 0 {
		return
	}
	t := thickness
	dl.PrimRect(min, [2]float32{max[0], min[1] + t}, col)
	dl.PrimRect([2]float32{min[0], max[1] - t}, max, col)
	dl.PrimRect([2]float32{min[0], min[1] + t}, [2]float32{min[0] + t, max[1] - t}, col)
	dl.PrimRect([2]float32{max[0] - t, min[1] + t}, [2]float32{max[0], max[1] - t}, col)
}

func (dl *DrawList) AddLine(p1, p2 [2]float32, col uint32, thickness float32) {
	if transparent(col) {
		return
	}
	dx, dy := p2[0]-p1[0], p2[1]-p1[1]
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*thickness*0.5, dx/l*thickness*0.5

	vtx, idx, base := dl.PrimReserve(6, 4)
	uv := dl.whiteUV
	vtx[0] = DrawVert{Pos: [2]float32{p1[0] + nx, p1[1] + ny}, UV: uv, Col: col}
	vtx[1] = DrawVert{Pos: [2]float32{p2[0] + nx, p2[1] + ny}, UV: uv, Col: col}
	vtx[2] = DrawVert{Pos: [2]float32{p2[0] - nx, p2[1] - ny}, UV: uv, Col: col}
	vtx[3] = DrawVert{Pos: [2]float32{p1[0] - nx, p1[1] - ny}, UV: uv, Col: col}
	i := DrawIdx(base)
	idx[0], idx[1], idx[2] = i, i+1, i+2
	idx[3], idx[4], idx[5] = i, i+2, i+3
}

// AddImage draws a textured rectangle from a renderer-provided texture.
func (dl *DrawList) AddImage(tex TextureID, min, max, uvMin, uvMax [2]float32, col uint32) {
	if transparent(col) {
		return
	}
	dl.PushTextureID(tex)
	dl.PrimRectUV(min, max, uvMin, uvMax, col)
	dl.PopTextureID()
}

// AddText draws s with its top-left at pos. A size of 0 uses the font size.
func (dl *DrawList) AddText(pos [2]float32, size float32, col uint32, s string) {
	if transparent(col) || dl.font == nil || s == "" {
		return
	}
	if size <= 0 {
		size = dl.fontSize
	}
	clip := dl.ClipRect()
	text.Layout(dl.font, pos[0], pos[1], size, s, func(q text.Quad) {
		if q.X1 < clip[0] || q.Y1 < clip[1] || q.X0 > clip[2] || q.Y0 > clip[3] {
			return
		}
		dl.PrimRectUV(
			[2]float32{q.X0, q.Y0}, [2]float32{q.X1, q.Y1},
			[2]float32{q.U0, q.V0}, [2]float32{q.U1, q.V1}, col)
	})
}

// AddCallback inserts a user callback between the surrounding elements.
func (dl *DrawList) AddCallback(cb DrawCallback, userData any) {
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		Kind:      CmdCallback,
		ClipRect:  dl.ClipRect(),
		TextureID: dl.TextureID(),
		VtxOffset: dl.vtxOffset,
		IdxOffset: uint32(len(dl.IdxBuffer)),
		Callback:  cb,
		UserData:  userData,
	})
}

// AddResetRenderState asks the renderer to restore its state, typically
// after a callback changed it.
func (dl *DrawList) AddResetRenderState() {
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		Kind:      CmdResetRenderState,
		ClipRect:  dl.ClipRect(),
		VtxOffset: dl.vtxOffset,
		IdxOffset: uint32(len(dl.IdxBuffer)),
	})
}

// finish drops a trailing empty Elements command.
func (dl *DrawList) finish() {
	if n := len(dl.CmdBuffer); n > 0 {
		c := dl.CmdBuffer[n-1]
		if c.Kind == CmdElements && c.ElemCount == 0 {
			dl.CmdBuffer = dl.CmdBuffer[:n-1]
		}
	}
}
