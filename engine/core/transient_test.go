package core

import "testing"

func TestTransientArena(t *testing.T) {
	a := NewTransientArena(64)

	data, first := a.Alloc(7, 2)
	if len(data) != 14 || first != 0 {
		t.Fatalf("Alloc(7,2) = %d bytes at %d", len(data), first)
	}
	if got := a.Avail(100, 4); got != 12 {
		t.Errorf("Avail(100,4) = %d, want 12 (aligned to 16)", got)
	}
	data, first = a.Alloc(2, 4)
	if len(data) != 8 || first != 4 {
		t.Errorf("Alloc(2,4) = %d bytes at %d, want 8 at 4", len(data), first)
	}
	if len(a.Used()) != 24 {
		t.Errorf("Used = %d bytes, want 24", len(a.Used()))
	}

	data, _ = a.Alloc(1000, 4)
	if len(data) != 40 {
		t.Errorf("short Alloc = %d bytes, want 40", len(data))
	}
	if got := a.Avail(1, 1); got != 0 {
		t.Errorf("Avail when full = %d", got)
	}

	a.Reset()
	if got := a.Avail(1000, 20); got != 3 {
		t.Errorf("Avail after Reset = %d, want 3", got)
	}
}

func TestTransientArenaZeroSize(t *testing.T) {
	a := NewTransientArena(1)
	if got := a.Avail(1000, 20); got != 0 {
		t.Errorf("Avail = %d, want 0", got)
	}
	if data, _ := a.Alloc(10, 20); data != nil {
		t.Errorf("Alloc = %d bytes, want nil", len(data))
	}
	if got := a.Avail(5, 0); got != 0 {
		t.Errorf("Avail with zero element size = %d", got)
	}
}
