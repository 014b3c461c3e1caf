// Package mat holds the few column-major 4x4 helpers the renderers need.
// Element (row r, column c) lives at index c*4+r, matching GLSL.
package mat

// Mat4 is a column-major 4x4 float32 matrix.
type Mat4 = [16]float32

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// OrthoLH builds a left-handed orthographic projection. With
// homogeneousDepth the depth range maps to [-1,1] (OpenGL); otherwise to
// [0,1] (D3D, Metal, Vulkan). Passing bottom > top flips Y so that the
// top edge of a Y-down UI space lands at clip +1.
func OrthoLH(left, right, bottom, top, near, far float32, homogeneousDepth bool) Mat4 {
	aa := 2 / (right - left)
	bb := 2 / (top - bottom)
	dd := (left + right) / (left - right)
	ee := (top + bottom) / (bottom - top)
	var cc, ff float32
	if homogeneousDepth {
		cc = 2 / (far - near)
		ff = (near + far) / (near - far)
	} else {
		cc = 1 / (far - near)
		ff = near / (near - far)
	}
	return Mat4{
		aa, 0, 0, 0,
		0, bb, 0, 0,
		0, 0, cc, 0,
		dd, ee, ff, 1,
	}
}

// Mul returns a*b (apply b first, then a).
func Mul(a, b Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = a[0*4+r]*b[c*4+0] + a[1*4+r]*b[c*4+1] + a[2*4+r]*b[c*4+2] + a[3*4+r]*b[c*4+3]
		}
	}
	return out
}
