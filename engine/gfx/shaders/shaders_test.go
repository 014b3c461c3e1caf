package shaders

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hubastard/imbridge/engine/core"
)

func TestLookupSupported(t *testing.T) {
	for _, rt := range []core.RendererType{
		core.RendererDirect3D9,
		core.RendererDirect3D11,
		core.RendererOpenGL,
		core.RendererMetal,
		core.RendererOpenGLES,
		core.RendererVulkan,
	} {
		p, err := Lookup(rt)
		if err != nil {
			t.Errorf("Lookup(%s): %v", rt, err)
			continue
		}
		if len(p.Vertex) == 0 || len(p.Fragment) == 0 {
			t.Errorf("Lookup(%s): empty shader", rt)
		}
		if bytes.Equal(p.Vertex, p.Fragment) {
			t.Errorf("Lookup(%s): vertex and fragment are identical", rt)
		}
	}
}

func TestLookupUnsupported(t *testing.T) {
	for _, rt := range []core.RendererType{core.RendererNoop, core.RendererCount, core.RendererType(42)} {
		if _, err := Lookup(rt); !errors.Is(err, ErrUnsupportedRenderer) {
			t.Errorf("Lookup(%s) = %v, want ErrUnsupportedRenderer", rt, err)
		}
	}
}

func TestGLSLDeclaresBoundNames(t *testing.T) {
	p, err := Lookup(core.RendererOpenGL)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a_position", "a_texcoord0", "a_color0", "u_viewProj"} {
		if !bytes.Contains(p.Vertex, []byte(name)) {
			t.Errorf("vertex shader missing %s", name)
		}
	}
	if !bytes.Contains(p.Fragment, []byte("s_tex")) {
		t.Error("fragment shader missing s_tex")
	}
}
