package glbackend

import (
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/imbridge/engine/core"
)

func TestBlendFactor(t *testing.T) {
	tests := []struct {
		f    core.BlendFactor
		dst  bool
		want uint32
	}{
		{core.BlendSrcAlpha, false, gl.SRC_ALPHA},
		{core.BlendInvSrcAlpha, true, gl.ONE_MINUS_SRC_ALPHA},
		{core.BlendOne, false, gl.ONE},
		{core.BlendNone, false, gl.ONE},
		{core.BlendNone, true, gl.ZERO},
	}
	for _, tt := range tests {
		if got := blendFactor(tt.f, tt.dst); got != tt.want {
			t.Errorf("blendFactor(%d, %v) = %#x, want %#x", tt.f, tt.dst, got, tt.want)
		}
	}
}

func TestFlipRect(t *testing.T) {
	x, y, w, h := flipRect(10, 20, 100, 50, 600)
	if x != 10 || y != 530 || w != 100 || h != 50 {
		t.Errorf("flipRect = %d,%d %dx%d", x, y, w, h)
	}
}

func TestSamplerParams(t *testing.T) {
	minF, magF, ws, wt := samplerParams(core.SamplerPoint | core.SamplerUClamp)
	if minF != gl.NEAREST || magF != gl.NEAREST || ws != gl.CLAMP_TO_EDGE || wt != gl.REPEAT {
		t.Errorf("samplerParams = %d %d %d %d", minF, magF, ws, wt)
	}
}

func TestUnpackRGBA(t *testing.T) {
	r, g, b, a := unpackRGBA(0xFF0080FF)
	if r != 1 || g != 0 || b < 0.5 || b > 0.51 || a != 1 {
		t.Errorf("unpackRGBA = %v %v %v %v", r, g, b, a)
	}
}

func TestCString(t *testing.T) {
	if got := cString("a"); got != "a\x00" {
		t.Errorf("cString = %q", got)
	}
	if got := cString("a\x00"); got != "a\x00" {
		t.Errorf("cString kept = %q", got)
	}
}
