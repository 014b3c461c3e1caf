package scratch

import (
	"testing"

	"github.com/hubastard/imbridge/engine/core"
)

func TestSprintf(t *testing.T) {
	tx := New(64)
	tests := []struct {
		format string
		args   []any
		want   string
	}{
		{"draws %d", []any{12}, "draws 12"},
		{"%.2f ms", []any{16.666}, "16.67 ms"},
		{"%f", []any{float32(0.5)}, "0.500"},
		{"%s on %s", []any{"ui", core.RendererOpenGL}, "ui on OpenGL"},
		{"100%%", nil, "100%"},
		{"key %c", []any{'x'}, "key x"},
		{"%d of %d", []any{1}, "1 of "},
		{"%q", []any{1}, "%q"},
	}
	for _, tt := range tests {
		if got := tx.Sprintf(tt.format, tt.args...); got != tt.want {
			t.Errorf("Sprintf(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestStringsSurviveGrowth(t *testing.T) {
	tx := New(4)
	a := tx.Sprintf("first %d", 1)
	b := tx.Sprintf("second %d", 2)
	if a != "first 1" || b != "second 2" {
		t.Errorf("a=%q b=%q", a, b)
	}
	if tx.Grows() == 0 {
		t.Error("growth not counted")
	}
	tx.Reset()
	if tx.Len() != 0 || tx.Cap() < 15 {
		t.Errorf("after Reset len=%d cap=%d", tx.Len(), tx.Cap())
	}
}
