package ui

import (
	"github.com/hubastard/imbridge/engine/colors"
	"github.com/hubastard/imbridge/engine/imgui"
)

// DrawListRenderer paints widgets into an imgui draw list.
type DrawListRenderer struct {
	Ctx  *imgui.Context
	List *imgui.DrawList
}

func (r DrawListRenderer) DrawRect(x, y, w, h float32, c colors.Color) {
	r.List.AddRectFilled([2]float32{x, y}, [2]float32{x + w, y + h}, c.Pack())
}

func (r DrawListRenderer) DrawText(x, y float32, s string, size float32, c colors.Color) {
	r.List.AddText([2]float32{x, y}, size, c.Pack(), s)
}

func (r DrawListRenderer) DrawImage(tex imgui.TextureID, x, y, w, h float32) {
	r.List.AddImage(tex, [2]float32{x, y}, [2]float32{x + w, y + h}, [2]float32{0, 0}, [2]float32{1, 1}, colors.White.Pack())
}

func (r DrawListRenderer) Measure(s string, size float32) (w, h float32) {
	return r.Ctx.CalcTextSize(s, size)
}

func (r DrawListRenderer) PushClip(x, y, w, h float32) {
	r.List.PushClipRect([2]float32{x, y}, [2]float32{x + w, y + h}, true)
}

func (r DrawListRenderer) PopClip() { r.List.PopClipRect() }
