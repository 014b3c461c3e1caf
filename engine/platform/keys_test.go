package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/imbridge/engine/core"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		in   glfw.Key
		want core.Key
	}{
		{glfw.KeyA, core.KeyA},
		{glfw.KeyZ, core.KeyZ},
		{glfw.Key7, core.Key7},
		{glfw.KeyF12, core.KeyF12},
		{glfw.KeyEscape, core.KeyEscape},
		{glfw.KeyKPEnter, core.KeyKPEnter},
		{glfw.KeyLeftControl, core.KeyLeftControl},
		{glfw.KeyF25, core.KeyUnknown},
		{glfw.KeyUnknown, core.KeyUnknown},
	}
	for _, tt := range tests {
		if got := translateKey(tt.in); got != tt.want {
			t.Errorf("translateKey(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTranslateModsAndAction(t *testing.T) {
	if got := translateMods(glfw.ModShift | glfw.ModSuper); got != core.ModShift|core.ModSuper {
		t.Errorf("translateMods = %b", got)
	}
	if translateAction(glfw.Repeat) != core.ActionRepeat || translateAction(glfw.Release) != core.ActionRelease {
		t.Error("translateAction mismatch")
	}
}
