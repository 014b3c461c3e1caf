package core

import "time"

// App defines the application hooks driven by Run.
type App interface {
	OnStart(e *Engine)                 // called once after window/device init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // record draws with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before exit
}

// FrameStarter is implemented by apps that need a hook right before the
// platform pumps events for a new frame.
type FrameStarter interface {
	OnFrameStart(e *Engine)
}

// Engine exposes core services to the App.
type Engine struct {
	Window Window
	Device Device
	Layers LayerStack
	Config Config
	start  time.Time
	frame  uint32
	err    error
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Frame is the number of frames the device has presented.
func (e *Engine) Frame() uint32 { return e.frame }

// Fail stops the main loop; Run returns the first error passed here.
func (e *Engine) Fail(err error) {
	if e.err == nil {
		e.err = err
	}
	e.Window.RequestClose()
}

func (e *Engine) Err() error { return e.err }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	// Size is the window size in logical pixels.
	Size() (int, int)
	// FramebufferSize is the drawable size in physical pixels.
	FramebufferSize() (int, int)
	CursorPos() (float64, float64)
	MouseButton(b MouseButton) bool
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// FullscreenToggler is implemented by windows that can switch between
// windowed and fullscreen on the primary monitor.
type FullscreenToggler interface {
	ToggleFullscreen()
	Fullscreen() bool
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type Action int

const (
	ActionRelease Action = iota
	ActionPress
	ActionRepeat
)

type EventKey struct {
	Key    Key
	Action Action
	Mods   Mod
}

func (EventKey) isEvent() {}

// Down reports whether the key is held after this event.
func (e EventKey) Down() bool { return e.Action != ActionRelease }

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Action Action
	Mods   Mod
}

func (EventMouseButton) isEvent() {}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

// EventChar carries one typed unicode code point.
type EventChar struct{ Char rune }

func (EventChar) isEvent() {}

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButton4
	MouseButton5
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)
