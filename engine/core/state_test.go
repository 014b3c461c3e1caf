package core

import "testing"

func TestBlendFuncSeparateRoundTrip(t *testing.T) {
	s := StateWriteRGB | StateWriteA | StateMSAA | BlendFuncSeparate(BlendSrcAlpha, BlendInvSrcAlpha, BlendOne, BlendZero)

	srcRGB, dstRGB, srcA, dstA, ok := s.Blend()
	if !ok {
		t.Fatal("Blend() ok = false, want true")
	}
	if srcRGB != BlendSrcAlpha || dstRGB != BlendInvSrcAlpha || srcA != BlendOne || dstA != BlendZero {
		t.Errorf("Blend() = %v %v %v %v", srcRGB, dstRGB, srcA, dstA)
	}
	if !s.Has(StateWriteRGB) || !s.Has(StateWriteA) || !s.Has(StateMSAA) {
		t.Errorf("write/msaa bits lost: %#x", uint64(s))
	}
	if s.Has(StateWriteZ) {
		t.Errorf("unexpected depth write in %#x", uint64(s))
	}
}

func TestBlendFuncMatchesLegacyEncoding(t *testing.T) {
	// src | dst<<4 | src<<8 | dst<<12, shifted into the blend field.
	want := State(5|6<<4|5<<8|6<<12) << stateBlendShift
	if got := BlendFunc(BlendSrcAlpha, BlendInvSrcAlpha); got != want {
		t.Errorf("BlendFunc = %#x, want %#x", uint64(got), uint64(want))
	}
}

func TestNoBlend(t *testing.T) {
	if _, _, _, _, ok := StateDefault.Blend(); ok {
		t.Error("StateDefault should not carry blend factors")
	}
}

func TestVertexLayoutPacking(t *testing.T) {
	var l VertexLayout
	l.Begin().
		Add(AttribPosition, 2, AttribFloat32, false, false).
		Add(AttribTexCoord0, 2, AttribFloat32, false, false).
		Add(AttribColor0, 4, AttribUint8, true, false).
		End()

	if !l.Valid() {
		t.Fatal("layout not valid after End")
	}
	if l.Stride != 20 {
		t.Errorf("Stride = %d, want 20", l.Stride)
	}
	tests := []struct {
		attr   Attrib
		offset uint16
	}{
		{AttribPosition, 0},
		{AttribTexCoord0, 8},
		{AttribColor0, 16},
	}
	for _, tt := range tests {
		a, ok := l.Attribute(tt.attr)
		if !ok {
			t.Errorf("%s missing", tt.attr.Name())
			continue
		}
		if a.Offset != tt.offset {
			t.Errorf("%s offset = %d, want %d", tt.attr.Name(), a.Offset, tt.offset)
		}
	}
	if _, ok := l.Attribute(AttribNormal); ok {
		t.Error("unexpected normal attribute")
	}
}

func TestTextureDescValidate(t *testing.T) {
	tests := []struct {
		name    string
		desc    TextureDesc
		wantErr bool
	}{
		{"ok", TextureDesc{Width: 2, Height: 2, Format: TextureRGBA8, Pixels: make([]byte, 16)}, false},
		{"no pixels", TextureDesc{Width: 2, Height: 2, Format: TextureRGBA8}, false},
		{"zero size", TextureDesc{Width: 0, Height: 2}, true},
		{"short", TextureDesc{Width: 2, Height: 2, Format: TextureRGBA8, Pixels: make([]byte, 15)}, true},
		{"r8", TextureDesc{Width: 3, Height: 1, Format: TextureR8, Pixels: make([]byte, 3)}, false},
	}
	for _, tt := range tests {
		err := tt.desc.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestRendererTypeString(t *testing.T) {
	if RendererVulkan.String() != "Vulkan" {
		t.Errorf("got %q", RendererVulkan.String())
	}
	if RendererCount.String() != "RendererType(7)" {
		t.Errorf("got %q", RendererCount.String())
	}
}
