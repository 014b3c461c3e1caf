//go:build profile

// Package profiler records nested timing scopes into a fixed ring and
// writes them out in the speedscope evented format. Without the profile
// build tag every call is a no-op.
package profiler

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const defaultCapacity = 1 << 20

// Init starts capturing into a ring of capacity events. Once the ring is
// full the oldest events are overwritten.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	rec.ring.reset(capacity)
}

// Start opens a scope and returns the func that closes it:
//
//	defer profiler.Start("uirender.Render")()
func Start(name string) func() {
	if !rec.ring.live.Load() {
		return func() {}
	}
	id := rec.names.id(name)
	opened := time.Now().UnixNano()
	rec.ring.push(event{at: opened, name: id, open: true})
	return func() {
		rec.ring.push(event{at: max(time.Now().UnixNano(), opened), name: id})
	}
}

// Enabled reports whether scopes are being captured.
func Enabled() bool { return rec.ring.live.Load() }

// Dump writes the captured scopes to path, or to a file in the OS temp
// dir when path is empty, and returns the path written.
func Dump(path string) (string, error) {
	evs := rec.ring.snapshot()
	if len(evs) == 0 {
		return "", fmt.Errorf("profiler: no events to dump")
	}
	if path == "" {
		path = filepath.Join(os.TempDir(), "imbridge.speedscope.json")
	}
	if err := writeSpeedscope(path, rec.names.list(), evs); err != nil {
		return "", fmt.Errorf("profiler: %w", err)
	}
	slog.Info("profiler dump written", "path", path, "events", len(evs))
	return path, nil
}

// OpenProfilerGraph dumps the capture and starts the speedscope viewer
// on it. A missing viewer is logged, not returned.
func OpenProfilerGraph() (string, error) {
	path, err := Dump("")
	if err != nil {
		return "", err
	}
	cmd := exec.Command("speedscope", path)
	cmd.SysProcAttr = viewerAttr()
	if err := cmd.Start(); err != nil {
		slog.Warn("launch speedscope", "err", err)
	}
	return path, nil
}

type event struct {
	at   int64 // unix ns
	name int
	open bool
}

// ring is written lock-free; snapshot may race with writers and is only
// meant to be called between frames.
type ring struct {
	live  atomic.Bool
	n     atomic.Uint64
	slots []event
}

func (r *ring) reset(capacity int) {
	r.slots = make([]event, capacity)
	r.n.Store(0)
	r.live.Store(true)
}

func (r *ring) push(e event) {
	i := r.n.Add(1) - 1
	r.slots[i%uint64(len(r.slots))] = e
}

// snapshot returns the retained events oldest first.
func (r *ring) snapshot() []event {
	n := r.n.Load()
	size := uint64(len(r.slots))
	if n == 0 || size == 0 {
		return nil
	}
	first := uint64(0)
	if n > size {
		first = n - size
	}
	out := make([]event, 0, n-first)
	for i := first; i < n; i++ {
		out = append(out, r.slots[i%size])
	}
	return out
}

// names maps scope names to dense ids.
type names struct {
	mu  sync.Mutex
	ids map[string]int
	all []string
}

func (t *names) id(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[name]; ok {
		return id
	}
	if t.ids == nil {
		t.ids = make(map[string]int)
	}
	id := len(t.all)
	t.ids[name] = id
	t.all = append(t.all, name)
	return id
}

func (t *names) list() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.all...)
}

var rec struct {
	ring  ring
	names names
}
