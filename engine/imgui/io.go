package imgui

type BackendFlags uint32

const (
	BackendFlagsNone BackendFlags = 0
	// BackendFlagsHasMouseCursors: the platform backend can change the cursor shape.
	BackendFlagsHasMouseCursors BackendFlags = 1 << 1
	// BackendFlagsRendererHasVtxOffset: the renderer honors DrawCmd.VtxOffset,
	// so 16-bit index lists may grow past 64K vertices.
	BackendFlagsRendererHasVtxOffset BackendFlags = 1 << 3
)

// Key names the navigation and shortcut keys a backend maps through
// IO.KeyMap. The backend's own key codes index IO.KeysDown.
type Key int

const (
	KeyTab Key = iota
	KeyLeftArrow
	KeyRightArrow
	KeyUpArrow
	KeyDownArrow
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyKeyPadEnter
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
	KeyCount
)

const (
	MouseButtonCount = 5
	KeysDownCount    = 512
)

// IO is the per-frame exchange area between backends and the toolkit.
// Backends write the input fields before NewFrame; the toolkit writes the
// derived fields (MouseClicked, MouseReleased, MouseDownDuration).
type IO struct {
	DisplaySize             [2]float32
	DisplayFramebufferScale [2]float32
	DeltaTime               float32 // seconds, must be > 0
	FontGlobalScale         float32

	BackendFlags        BackendFlags
	BackendPlatformName string
	BackendRendererName string

	MousePos   [2]float32
	MouseDown  [MouseButtonCount]bool
	MouseWheel float32

	KeyCtrl, KeyShift, KeyAlt, KeySuper bool
	KeysDown                            [KeysDownCount]bool
	KeyMap                              [KeyCount]int // -1 when unmapped

	MouseClicked      [MouseButtonCount]bool
	MouseReleased     [MouseButtonCount]bool
	MouseDownDuration [MouseButtonCount]float32 // -1 when up

	inputQueue  []rune
	prevMouseDn [MouseButtonCount]bool
}

func newIO() *IO {
	io := &IO{
		DisplaySize:             [2]float32{-1, -1},
		DisplayFramebufferScale: [2]float32{1, 1},
		DeltaTime:               1.0 / 60.0,
		FontGlobalScale:         1,
	}
	for i := range io.KeyMap {
		io.KeyMap[i] = -1
	}
	for i := range io.MouseDownDuration {
		io.MouseDownDuration[i] = -1
	}
	return io
}

// AddInputCharacter queues a typed code point for the current frame.
// NUL and invalid code points are dropped.
func (io *IO) AddInputCharacter(r rune) {
	if r == 0 || r > 0x10FFFF {
		return
	}
	io.inputQueue = append(io.inputQueue, r)
}

// InputQueueCharacters returns the characters queued for this frame.
func (io *IO) InputQueueCharacters() []rune { return io.inputQueue }

// IsKeyDown reports the state of a mapped key.
func (io *IO) IsKeyDown(k Key) bool {
	if k < 0 || k >= KeyCount {
		return false
	}
	code := io.KeyMap[k]
	return code >= 0 && code < KeysDownCount && io.KeysDown[code]
}

func (io *IO) updateMouse() {
	for i := range io.MouseDown {
		down, was := io.MouseDown[i], io.prevMouseDn[i]
		io.MouseClicked[i] = down && !was
		io.MouseReleased[i] = !down && was
		switch {
		case !down:
			io.MouseDownDuration[i] = -1
		case was:
			io.MouseDownDuration[i] += io.DeltaTime
		default:
			io.MouseDownDuration[i] = 0
		}
		io.prevMouseDn[i] = down
	}
}
