package main

import (
	"log/slog"

	"github.com/hubastard/imbridge/engine/core"
	"github.com/hubastard/imbridge/engine/gfx/uirender"
	"github.com/hubastard/imbridge/engine/profiler"
)

type App struct {
	ui    *LayerUI
	debug *LayerDebug

	frames uint32
	stats  uirender.Stats
}

// Report is what a headless run prints.
type Report struct {
	Frames   uint32 `yaml:"frames"`
	Renderer string `yaml:"renderer"`
	Stats    struct {
		DrawCalls    int `yaml:"draw_calls"`
		Culled       int `yaml:"culled"`
		ListsSkipped int `yaml:"lists_skipped"`
		Callbacks    int `yaml:"callbacks"`
		Resets       int `yaml:"resets"`
		Vertices     int `yaml:"vertices"`
		Indices      int `yaml:"indices"`
	} `yaml:"last_frame"`
	AvgFrameMs float64 `yaml:"avg_frame_ms"`
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 10) // ~1K scope samples

	a.debug = &LayerDebug{}
	a.ui = &LayerUI{debug: a.debug}
	e.Layers.Push(e, a.debug)
	e.Layers.Push(e, a.ui)
}

func (a *App) OnFrameStart(e *core.Engine) {
	if a.ui != nil {
		a.ui.bridge.Reset()
	}
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	// Layers render after the app, so this reads the previous frame.
	if a.ui != nil && a.ui.renderer != nil {
		a.stats = a.ui.renderer.Stats()
	}
	a.frames = e.Frame()
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	switch ev := ev.(type) {
	case core.EventCloseRequested:
		e.Window.RequestClose()
	case core.EventKey:
		if ev.Action != core.ActionPress {
			return
		}
		switch {
		case ev.Key == core.KeyEscape:
			e.Window.RequestClose()
		case ev.Key == core.KeyEnter && ev.Mods&core.ModAlt != 0:
			if fs, ok := e.Window.(core.FullscreenToggler); ok {
				fs.ToggleFullscreen()
				slog.Info("fullscreen", "on", fs.Fullscreen())
			}
		}
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	if a.ui != nil && a.ui.renderer != nil {
		a.stats = a.ui.renderer.Stats()
	}
	a.frames = e.Frame()
	if profiler.Enabled() {
		if _, err := profiler.Dump("imbridge.prof.json"); err != nil {
			slog.Warn("profiler dump failed", "err", err)
		}
	}
}

func (a *App) Report() Report {
	var r Report
	r.Frames = a.frames
	if a.ui != nil {
		r.Renderer = a.ui.rendererType.String()
	}
	s := a.stats
	r.Stats.DrawCalls, r.Stats.Culled, r.Stats.ListsSkipped = s.DrawCalls, s.Culled, s.ListsSkipped
	r.Stats.Callbacks, r.Stats.Resets = s.Callbacks, s.Resets
	r.Stats.Vertices, r.Stats.Indices = s.Vertices, s.Indices
	if a.debug != nil {
		r.AvgFrameMs = a.debug.AvgFrameMs()
	}
	return r
}
