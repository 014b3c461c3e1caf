package main

import "github.com/hubastard/imbridge/engine/core"

// headlessWindow stands in for a real window: it reports a fixed size,
// parks the cursor and asks to close after a number of frames.
type headlessWindow struct {
	w, h   int
	frames int
	cursor [2]float64
	onEv   func(core.Event)
	closed bool
	full   bool
}

func newHeadlessWindow(cfg core.Config) (core.Window, error) {
	return &headlessWindow{w: cfg.Width, h: cfg.Height, frames: max(cfg.HeadlessFrames, 1)}, nil
}

func (w *headlessWindow) PollEvents() {}

func (w *headlessWindow) SwapBuffers() {
	w.frames--
	if w.frames <= 0 {
		w.closed = true
	}
}

func (w *headlessWindow) ShouldClose() bool                    { return w.closed }
func (w *headlessWindow) RequestClose()                        { w.closed = true }
func (w *headlessWindow) Size() (int, int)                     { return w.w, w.h }
func (w *headlessWindow) FramebufferSize() (int, int)          { return w.w, w.h }
func (w *headlessWindow) CursorPos() (float64, float64)        { return w.cursor[0], w.cursor[1] }
func (w *headlessWindow) MouseButton(core.MouseButton) bool    { return false }
func (w *headlessWindow) SetTitle(string)                      {}
func (w *headlessWindow) SetEventCallback(cb func(core.Event)) { w.onEv = cb }

func (w *headlessWindow) Fullscreen() bool  { return w.full }
func (w *headlessWindow) ToggleFullscreen() { w.full = !w.full }
