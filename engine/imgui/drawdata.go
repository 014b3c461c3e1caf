package imgui

// TextureID identifies the texture a draw command samples. The value is
// opaque to the toolkit; renderers define the encoding.
type TextureID uint64

// DrawVert is the vertex wire format shared with renderers: position and
// UV as float32 pairs followed by a packed RGBA color (R in the low byte).
// The struct is tightly packed (20 bytes) and must stay that way.
type DrawVert struct {
	Pos [2]float32
	UV  [2]float32
	Col uint32
}

type DrawCmdKind uint8

const (
	// CmdElements draws ElemCount indices starting at IdxOffset.
	CmdElements DrawCmdKind = iota
	// CmdResetRenderState asks the renderer to restore its device state.
	CmdResetRenderState
	// CmdCallback hands control to user code.
	CmdCallback
)

func (k DrawCmdKind) String() string {
	switch k {
	case CmdElements:
		return "Elements"
	case CmdResetRenderState:
		return "ResetRenderState"
	case CmdCallback:
		return "Callback"
	}
	return "Unknown"
}

// DrawCallback is invoked by renderers in command order.
type DrawCallback func(list *DrawList, cmd *DrawCmd)

type DrawCmd struct {
	Kind DrawCmdKind

	ElemCount uint32
	ClipRect  [4]float32 // left, top, right, bottom in display coordinates
	TextureID TextureID
	VtxOffset uint32
	IdxOffset uint32

	Callback DrawCallback
	UserData any
}

// DrawData is the output of one frame, ready for a renderer.
type DrawData struct {
	Valid         bool
	CmdLists      []*DrawList
	TotalVtxCount int
	TotalIdxCount int

	DisplayPos       [2]float32 // top-left of the displayed area
	DisplaySize      [2]float32
	FramebufferScale [2]float32 // framebuffer pixels per display unit
}

// FramebufferSize returns DisplaySize scaled to framebuffer pixels.
func (d *DrawData) FramebufferSize() (w, h float32) {
	return d.DisplaySize[0] * d.FramebufferScale[0], d.DisplaySize[1] * d.FramebufferScale[1]
}
