package main

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/hubastard/imbridge/engine/core"
	"github.com/hubastard/imbridge/engine/profiler"
)

// LayerDebug tracks frame times and logs a summary every few seconds.
type LayerDebug struct {
	last    time.Time
	ring    [120]float64 // ms
	n, head int
	logged  time.Time
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	l.last = time.Now()
	l.logged = l.last
}

func (l *LayerDebug) OnDetach(e *core.Engine) {
	slog.Info("frame times", "avg_ms", l.AvgFrameMs(), "frames", e.Frame())
}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("LayerDebug.OnRender")()

	now := time.Now()
	l.ring[l.head] = float64(now.Sub(l.last).Microseconds()) / 1000
	l.head = (l.head + 1) % len(l.ring)
	l.n = min(l.n+1, len(l.ring))
	l.last = now

	if now.Sub(l.logged) >= 5*time.Second {
		l.logged = now
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		slog.Debug("frame stats",
			"avg_ms", l.AvgFrameMs(),
			"heap_mb", float64(ms.HeapAlloc)/(1<<20),
			"goroutines", runtime.NumGoroutine())
	}
}

// OnEvent opens the captured profile in speedscope on Ctrl+P. Builds
// without the profile tag capture nothing and report an empty path.
func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || k.Action != core.ActionPress || k.Key != core.KeyP || k.Mods&core.ModCtrl == 0 {
		return false
	}
	path, err := profiler.OpenProfilerGraph()
	switch {
	case err != nil:
		slog.Warn("profiler graph", "err", err)
	case path == "":
		slog.Info("profiler disabled, build with -tags profile")
	default:
		slog.Info("speedscope dump", "path", path)
	}
	return true
}

// AvgFrameMs averages the recent frame durations.
func (l *LayerDebug) AvgFrameMs() float64 {
	if l.n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < l.n; i++ {
		sum += l.ring[i]
	}
	return sum / float64(l.n)
}
