// Package shaders holds the UI shader pair for every supported backend.
package shaders

import (
	"embed"
	"errors"
	"fmt"

	"github.com/hubastard/imbridge/engine/core"
)

// ErrUnsupportedRenderer is returned for backends without a shader variant.
var ErrUnsupportedRenderer = errors.New("shaders: unsupported renderer type")

// Pair is the vertex/fragment code for one backend, in the form that
// backend's CreateShader expects.
type Pair struct {
	Vertex   []byte
	Fragment []byte
}

//go:embed assets
var assets embed.FS

var variants = map[core.RendererType][2]string{
	core.RendererDirect3D9:  {"assets/dx9/vs_imgui.hlsl", "assets/dx9/fs_imgui.hlsl"},
	core.RendererDirect3D11: {"assets/dx11/vs_imgui.hlsl", "assets/dx11/fs_imgui.hlsl"},
	core.RendererOpenGL:     {"assets/glsl/vs_imgui.glsl", "assets/glsl/fs_imgui.glsl"},
	core.RendererMetal:      {"assets/metal/vs_imgui.metal", "assets/metal/fs_imgui.metal"},
	core.RendererOpenGLES:   {"assets/essl/vs_imgui.glsl", "assets/essl/fs_imgui.glsl"},
	core.RendererVulkan:     {"assets/spirv/vs_imgui.vert", "assets/spirv/fs_imgui.frag"},
}

// Lookup returns the UI shader pair for t.
func Lookup(t core.RendererType) (Pair, error) {
	v, ok := variants[t]
	if !ok {
		return Pair{}, fmt.Errorf("%w: %s", ErrUnsupportedRenderer, t)
	}
	vs, err := assets.ReadFile(v[0])
	if err != nil {
		return Pair{}, err
	}
	fs, err := assets.ReadFile(v[1])
	if err != nil {
		return Pair{}, err
	}
	return Pair{Vertex: vs, Fragment: fs}, nil
}
