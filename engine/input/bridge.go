// Package input feeds window events into an imgui context.
package input

import (
	"github.com/hubastard/imbridge/engine/core"
	"github.com/hubastard/imbridge/engine/imgui"
)

const platformName = "imbridge-input"

// keyMap binds toolkit navigation keys to core key codes.
var keyMap = [imgui.KeyCount]core.Key{
	imgui.KeyTab:         core.KeyTab,
	imgui.KeyLeftArrow:   core.KeyLeft,
	imgui.KeyRightArrow:  core.KeyRight,
	imgui.KeyUpArrow:     core.KeyUp,
	imgui.KeyDownArrow:   core.KeyDown,
	imgui.KeyPageUp:      core.KeyPageUp,
	imgui.KeyPageDown:    core.KeyPageDown,
	imgui.KeyHome:        core.KeyHome,
	imgui.KeyEnd:         core.KeyEnd,
	imgui.KeyInsert:      core.KeyInsert,
	imgui.KeyDelete:      core.KeyDelete,
	imgui.KeyBackspace:   core.KeyBackspace,
	imgui.KeySpace:       core.KeySpace,
	imgui.KeyEnter:       core.KeyEnter,
	imgui.KeyEscape:      core.KeyEscape,
	imgui.KeyKeyPadEnter: core.KeyKPEnter,
	imgui.KeyA:           core.KeyA,
	imgui.KeyC:           core.KeyC,
	imgui.KeyV:           core.KeyV,
	imgui.KeyX:           core.KeyX,
	imgui.KeyY:           core.KeyY,
	imgui.KeyZ:           core.KeyZ,
}

// ButtonPoller reports whether a mouse button is currently held.
// core.Window implements it.
type ButtonPoller interface {
	MouseButton(b core.MouseButton) bool
}

// Bridge keeps the per-frame input that the toolkit consumes once per
// frame: the last scroll offset and the last typed character.
type Bridge struct {
	mouseWheel float32
	lastChar   rune
}

// NewBridge writes the key map into ctx.
func NewBridge(ctx *imgui.Context) *Bridge {
	io := ctx.IO()
	for k, code := range keyMap {
		io.KeyMap[k] = int(code)
	}
	io.BackendPlatformName = platformName
	return &Bridge{}
}

// Reset clears the wheel and character accumulators. Call it once per
// frame before handling that frame's events.
func (b *Bridge) Reset() {
	b.mouseWheel = 0
	b.lastChar = 0
}

// HandleEvent applies one window event. Key state goes straight into
// ctx; scroll and characters are kept for the next BeginFrame.
func (b *Bridge) HandleEvent(ctx *imgui.Context, ev core.Event) {
	switch e := ev.(type) {
	case core.EventKey:
		handleKey(ctx.IO(), e)
	case core.EventScroll:
		b.mouseWheel = float32(e.Yoff)
	case core.EventChar:
		b.lastChar = e.Char
	}
}

func handleKey(io *imgui.IO, e core.EventKey) {
	if e.Action != core.ActionPress && e.Action != core.ActionRelease {
		return
	}
	down := e.Action == core.ActionPress
	switch e.Key {
	case core.KeyLeftShift, core.KeyRightShift:
		io.KeyShift = down
	case core.KeyLeftControl, core.KeyRightControl:
		io.KeyCtrl = down
	case core.KeyLeftAlt, core.KeyRightAlt:
		io.KeyAlt = down
	case core.KeyLeftSuper, core.KeyRightSuper:
		io.KeySuper = down
	case core.KeyUnknown:
	default:
		if e.Key > 0 && int(e.Key) < len(io.KeysDown) {
			io.KeysDown[e.Key] = down
		}
	}
}

func (b *Bridge) MouseWheel() float32 { return b.mouseWheel }

// LastCharacter is the most recent character this frame, or 0.
func (b *Bridge) LastCharacter() rune { return b.lastChar }

// MouseButtons polls left, right and middle into bits 0, 1 and 2.
func MouseButtons(p ButtonPoller) uint8 {
	var buttons uint8
	for i, mb := range []core.MouseButton{core.MouseButtonLeft, core.MouseButtonRight, core.MouseButtonMiddle} {
		if p.MouseButton(mb) {
			buttons |= 1 << i
		}
	}
	return buttons
}
