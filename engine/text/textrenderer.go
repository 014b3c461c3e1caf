package text

// Quad is one positioned glyph rectangle, top-left origin, Y down.
type Quad struct {
	X0, Y0, X1, Y1 float32
	U0, V0, U1, V1 float32
}

// Layout walks s with its top-left at (x,y) rendered at size pixels and
// calls emit for every visible glyph.
func Layout(font *Font, x, y, size float32, s string, emit func(Quad)) {
	scale := size / font.SizePx
	penX := x
	baseY := y + BaselineToTop(font)*scale
	var prev rune = -1

	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += LineHeight(font) * scale
			prev = -1
			continue
		}

		g, ok := font.Glyphs[r]
		if !ok {
			if sp, ok2 := font.Glyphs[' ']; ok2 {
				penX += sp.Advance * scale
			}
			prev = r
			continue
		}

		if prev >= 0 && font.Face != nil {
			penX += float32(font.Face.Kern(prev, r)) / 64.0 * scale
		}

		if g.W > 0 && g.H > 0 {
			left := penX + g.BearingX*scale
			top := baseY - g.BearingY*scale
			emit(Quad{
				X0: left, Y0: top,
				X1: left + float32(g.W)*scale, Y1: top + float32(g.H)*scale,
				U0: g.U0, V0: g.V0, U1: g.U1, V1: g.V1,
			})
		}

		penX += g.Advance * scale
		prev = r
	}
}

func MeasureText(font *Font, s string, size float32) (width, height float32) {
	var lineW float32
	var prev rune = -1
	lineH := LineHeight(font)
	height = lineH

	scale := size / font.SizePx

	for _, r := range s {
		if r == '\n' {
			if lineW > width {
				width = lineW
			}
			lineW = 0
			height += lineH
			prev = -1
			continue
		}

		g, ok := font.Glyphs[r]
		if !ok {
			if sp, ok2 := font.Glyphs[' ']; ok2 {
				lineW += sp.Advance
			}
			prev = r
			continue
		}

		if prev >= 0 && font.Face != nil {
			lineW += float32(font.Face.Kern(prev, r)) / 64.0
		}

		lineW += g.Advance
		prev = r
	}

	if lineW > width {
		width = lineW
	}
	return width * scale, height * scale
}

// BaselineToTop is the distance from the baseline up to the line top.
func BaselineToTop(font *Font) float32 { return font.Ascent }

func LineHeight(font *Font) float32 { return font.Ascent - font.Descent + font.LineGap }
