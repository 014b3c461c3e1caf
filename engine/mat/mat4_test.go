package mat

import (
	"math"
	"testing"
)

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-5 }

func translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// transformPoint applies m to (x, y, z, 1) and divides by w.
func transformPoint(m Mat4, x, y, z float32) (float32, float32, float32) {
	tx := m[0]*x + m[4]*y + m[8]*z + m[12]
	ty := m[1]*x + m[5]*y + m[9]*z + m[13]
	tz := m[2]*x + m[6]*y + m[10]*z + m[14]
	tw := m[3]*x + m[7]*y + m[11]*z + m[15]
	return tx / tw, ty / tw, tz / tw
}

func TestOrthoLHMapsUIRect(t *testing.T) {
	// UI space: origin (10,20), size 200x100, Y down.
	x, y, w, h := float32(10), float32(20), float32(200), float32(100)

	tests := []struct {
		name        string
		homogeneous bool
		z           float32
		wantZ       float32
	}{
		{"zero-to-one depth at near", false, 0, 0},
		{"zero-to-one depth at far", false, 1000, 1},
		{"gl depth at near", true, 0, -1},
		{"gl depth at far", true, 1000, 1},
	}
	for _, tt := range tests {
		m := OrthoLH(x, x+w, y+h, y, 0, 1000, tt.homogeneous)

		cx, cy, cz := transformPoint(m, x, y, tt.z)
		if !near(cx, -1) || !near(cy, 1) || !near(cz, tt.wantZ) {
			t.Errorf("%s: top-left -> (%v,%v,%v)", tt.name, cx, cy, cz)
		}
		cx, cy, _ = transformPoint(m, x+w, y+h, tt.z)
		if !near(cx, 1) || !near(cy, -1) {
			t.Errorf("%s: bottom-right -> (%v,%v)", tt.name, cx, cy)
		}
	}
}

func TestMulIdentity(t *testing.T) {
	m := translate(3, 4, 5)
	if got := Mul(Identity(), m); got != m {
		t.Errorf("I*m = %v", got)
	}
	if got := Mul(m, Identity()); got != m {
		t.Errorf("m*I = %v", got)
	}
}

func TestMulComposesTranslations(t *testing.T) {
	m := Mul(translate(1, 0, 0), translate(0, 2, 0))
	x, y, z := transformPoint(m, 0, 0, 0)
	if x != 1 || y != 2 || z != 0 {
		t.Errorf("got (%v,%v,%v), want (1,2,0)", x, y, z)
	}
}
