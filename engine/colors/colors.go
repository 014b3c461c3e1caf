package colors

type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Scale multiplies RGB by f, leaving alpha alone.
func (c Color) Scale(f float32) Color {
	for i := 0; i < 3; i++ {
		c[i] = clamp01(c[i] * f)
	}
	return c
}

// Pack converts c to the UI vertex color: R in the low byte, then G, B, A.
// In memory on little-endian hosts this is the byte sequence R,G,B,A.
func (c Color) Pack() uint32 {
	return Pack(c[0], c[1], c[2], c[3])
}

func Pack(r, g, b, a float32) uint32 {
	return uint32(to8(r)) | uint32(to8(g))<<8 | uint32(to8(b))<<16 | uint32(to8(a))<<24
}

func to8(f float32) uint8 { return uint8(clamp01(f)*255 + 0.5) }

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
