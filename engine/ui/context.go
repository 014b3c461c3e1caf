// Package ui is a small immediate-mode layout and widget kit. Widgets are
// recorded between BeginFrame and Flush, laid out when their view ends,
// and painted through a Renderer.
package ui

import (
	"github.com/hubastard/imbridge/engine/colors"
	"github.com/hubastard/imbridge/engine/imgui"
)

type Renderer interface {
	// DrawRect fills the rectangle with top-left (x, y).
	DrawRect(x, y, w, h float32, color colors.Color)
	// DrawText draws text top-left at (x,y)
	DrawText(x, y float32, text string, size float32, color colors.Color)
	DrawImage(tex imgui.TextureID, x, y, w, h float32)
	// Measure returns the (w,h) of text at a font size.
	Measure(text string, size float32) (w, h float32)
	PushClip(x, y, w, h float32)
	PopClip()
}

type Input struct {
	MouseX, MouseY float32
	MouseDown      bool
	MousePressed   bool
	MouseReleased  bool
}

// InputFromIO reads the left mouse button state of the current frame.
func InputFromIO(io *imgui.IO) Input {
	return Input{
		MouseX:        io.MousePos[0],
		MouseY:        io.MousePos[1],
		MouseDown:     io.MouseDown[0],
		MousePressed:  io.MouseClicked[0],
		MouseReleased: io.MouseReleased[0],
	}
}

// ===== Immediate-UI context =====

type Ctx struct {
	R Renderer
	I *Input

	// Fixed-capacity stacks & buffers reused every frame
	viewStack []viewScope // layout scopes
	cmds      []cmd       // drawing + hit-test commands (deferred)
	items     []item      // transient per-view child list (reused)

	// Stable widget state (hot/active) keyed by widget id
	state map[int]widgetState

	dropped int
}

func New(capViews, capCmds, capItems int) *Ctx {
	return &Ctx{
		viewStack: make([]viewScope, 0, capViews),
		cmds:      make([]cmd, 0, capCmds),
		items:     make([]item, 0, capItems),
		state:     make(map[int]widgetState, 256),
	}
}

// BeginFrame resets the recorded commands. No heap allocations.
func BeginFrame(ctx *Ctx) {
	ctx.cmds = ctx.cmds[:0]
	ctx.viewStack = ctx.viewStack[:0]
	ctx.items = ctx.items[:0]
	ctx.dropped = 0
}

// Flush resolves interaction and paints every recorded command in order.
func Flush(ctx *Ctx) {
	for i := range ctx.cmds {
		resolveWidget(ctx, &ctx.cmds[i])
	}
}

// Dropped counts widgets discarded this frame because a buffer was full.
func (ctx *Ctx) Dropped() int { return ctx.dropped }
