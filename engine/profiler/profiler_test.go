//go:build profile

package profiler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDumpBalancesOpenScopes(t *testing.T) {
	Init(64)
	endOuter := Start("outer")
	endInner := Start("inner")
	endInner()
	_ = endOuter // left open on purpose

	path := filepath.Join(t.TempDir(), "capture.json")
	got, err := Dump(path)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if got != path {
		t.Errorf("Dump path = %q, want %q", got, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc ssFile
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Profiles) != 1 {
		t.Fatalf("profiles = %d, want 1", len(doc.Profiles))
	}
	var opens, closes int
	for _, ev := range doc.Profiles[0].Events {
		switch ev.Type {
		case "O":
			opens++
		case "C":
			closes++
		}
	}
	if opens != closes {
		t.Errorf("opens = %d, closes = %d; want balanced", opens, closes)
	}
	if !Enabled() {
		t.Error("Enabled() = false after Init")
	}
}

func TestBalanceDropsStrayClosesAndKeepsTimeMonotonic(t *testing.T) {
	evs := []event{
		{at: 1_000_000, name: 0, open: true},
		{at: 1_500_000, name: 1}, // close without an open
		{at: 900_000, name: 1, open: true},
		{at: 3_000_000, name: 1},
		{at: 4_000_000, name: 2, open: true},
	}
	out, end := balance(evs)

	want := []ssEvent{
		{"O", 0, 0},
		{"O", 0, 1},
		{"C", 2000, 1},
		{"O", 3000, 2},
		{"C", 3000, 2},
		{"C", 3000, 0},
	}
	if len(out) != len(want) {
		t.Fatalf("events = %+v", out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, out[i], want[i])
		}
	}
	if end != 3000 {
		t.Errorf("end = %d, want 3000", end)
	}
}

func TestRingKeepsNewest(t *testing.T) {
	var r ring
	r.reset(3)
	for i := 0; i < 5; i++ {
		r.push(event{at: int64(i)})
	}
	got := r.snapshot()
	if len(got) != 3 || got[0].at != 2 || got[2].at != 4 {
		t.Errorf("snapshot = %+v", got)
	}
}
