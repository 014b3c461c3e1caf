package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/imbridge/engine/core"
)

func blendFactor(f core.BlendFactor, dst bool) uint32 {
	switch f {
	case core.BlendZero:
		return gl.ZERO
	case core.BlendOne:
		return gl.ONE
	case core.BlendSrcColor:
		return gl.SRC_COLOR
	case core.BlendInvSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case core.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case core.BlendInvSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case core.BlendDstAlpha:
		return gl.DST_ALPHA
	case core.BlendInvDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case core.BlendDstColor:
		return gl.DST_COLOR
	case core.BlendInvDstColor:
		return gl.ONE_MINUS_DST_COLOR
	}
	// BlendNone leaves the operand untouched.
	if dst {
		return gl.ZERO
	}
	return gl.ONE
}

// textureFormat returns internal format, pixel format and pixel type.
func textureFormat(f core.TextureFormat) (int32, uint32, uint32) {
	switch f {
	case core.TextureBGRA8:
		return gl.RGBA8, gl.BGRA, gl.UNSIGNED_BYTE
	case core.TextureR8:
		return gl.R8, gl.RED, gl.UNSIGNED_BYTE
	default:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	}
}

// samplerParams returns min filter, mag filter, wrap S and wrap T.
func samplerParams(flags core.SamplerFlags) (minF, magF, wrapS, wrapT int32) {
	minF, magF = gl.LINEAR, gl.LINEAR
	wrapS, wrapT = gl.REPEAT, gl.REPEAT
	if flags&core.SamplerMinPoint != 0 {
		minF = gl.NEAREST
	}
	if flags&core.SamplerMagPoint != 0 {
		magF = gl.NEAREST
	}
	if flags&core.SamplerUClamp != 0 {
		wrapS = gl.CLAMP_TO_EDGE
	}
	if flags&core.SamplerVClamp != 0 {
		wrapT = gl.CLAMP_TO_EDGE
	}
	return
}

func attribType(t core.AttribType) uint32 {
	switch t {
	case core.AttribUint8:
		return gl.UNSIGNED_BYTE
	case core.AttribInt16:
		return gl.SHORT
	default:
		return gl.FLOAT
	}
}

func indexType(index32 bool) uint32 {
	if index32 {
		return gl.UNSIGNED_INT
	}
	return gl.UNSIGNED_SHORT
}

// flipRect converts a top-left origin rectangle into GL window
// coordinates, whose origin is the bottom-left corner.
func flipRect(x, y, w, h uint16, fbHeight uint32) (int32, int32, int32, int32) {
	return int32(x), int32(fbHeight) - int32(y) - int32(h), int32(w), int32(h)
}

// unpackRGBA splits 0xRRGGBBAA into normalized floats.
func unpackRGBA(c uint32) (r, g, b, a float32) {
	return float32(c>>24) / 255, float32(c>>16&0xFF) / 255, float32(c>>8&0xFF) / 255, float32(c&0xFF) / 255
}
