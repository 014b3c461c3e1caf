package text

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	minAtlasSize = 256
	maxAtlasSize = 4096
	padding      = 2
)

var ErrAtlasTooLarge = fmt.Errorf("text: font atlas too large (>%d)", maxAtlasSize)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // top bearing in pixels (distance from baseline to glyph top)
	W, H     int     // glyph bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

// Font is one rasterized face inside an Atlas. Metrics are in pixels at SizePx.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Face                     font.Face
}

// FontSource describes one face to rasterize. Empty TTF selects the
// built-in Go Regular font; nil Runes selects Latin-1.
type FontSource struct {
	TTF    []byte
	SizePx float32
	Runes  []rune
}

// Atlas is an RGBA8 bitmap holding every glyph of every font plus a small
// opaque white block used for untextured fills.
type Atlas struct {
	Width, Height int
	Pixels        []byte // tightly packed RGBA rows, top-left origin
	WhiteUV       [2]float32
	Fonts         []*Font
}

// Close releases the faces held by the atlas fonts.
func (a *Atlas) Close() {
	if a == nil {
		return
	}
	for _, f := range a.Fonts {
		if f.Face != nil {
			_ = f.Face.Close()
			f.Face = nil
		}
	}
}

// Latin1 is the default rune set (printable ASCII and Latin-1 supplement).
func Latin1() []rune {
	runes := make([]rune, 0, 224)
	for r := rune(32); r <= rune(255); r++ {
		if r >= 127 && r < 160 {
			continue
		}
		runes = append(runes, r)
	}
	return runes
}

type meas struct {
	font   int
	r      rune
	w, h   int
	adv    float32
	bx, by float32
}

// BuildAtlas rasterizes every source into one white-on-transparent RGBA atlas.
func BuildAtlas(srcs []FontSource) (*Atlas, error) {
	if len(srcs) == 0 {
		return nil, errors.New("text: no font sources")
	}

	fonts := make([]*Font, 0, len(srcs))
	var measure []meas
	for i, src := range srcs {
		ttf := src.TTF
		if len(ttf) == 0 {
			ttf = goregular.TTF
		}
		ft, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse font %d: %w", i, err)
		}
		face, err := opentype.NewFace(ft, &opentype.FaceOptions{
			Size: float64(src.SizePx), DPI: 72, Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("new face %d: %w", i, err)
		}

		m := face.Metrics()
		ascent := float32(m.Ascent.Round())
		descent := float32(-m.Descent.Round())
		f := &Font{
			SizePx:  src.SizePx,
			Ascent:  ascent,
			Descent: descent,
			LineGap: float32(m.Height.Round()) - ascent + descent,
			Glyphs:  make(map[rune]Glyph),
			Face:    face,
		}
		fonts = append(fonts, f)

		runes := src.Runes
		if runes == nil {
			runes = Latin1()
		}
		for _, rr := range runes {
			br, adv, ok := face.GlyphBounds(rr)
			if !ok {
				continue
			}
			measure = append(measure, meas{
				font: i,
				r:    rr,
				w:    (br.Max.X - br.Min.X).Ceil(),
				h:    (br.Max.Y - br.Min.Y).Ceil(),
				adv:  float32(adv.Round()),
				bx:   float32(br.Min.X.Floor()),
				by:   float32(-br.Min.Y.Floor()), // distance from baseline to top
			})
		}
	}

	size, pos, err := pack(measure)
	if err != nil {
		closeFonts(fonts)
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{color.RGBA{}}, image.Point{}, draw.Src)

	// White block in the top-left corner; sample its center for solid fills.
	draw.Draw(dst, image.Rect(padding, padding, padding+2, padding+2), image.White, image.Point{}, draw.Src)
	white := [2]float32{(padding + 1) / float32(size), (padding + 1) / float32(size)}

	drawers := make([]*font.Drawer, len(fonts))
	for i, f := range fonts {
		drawers[i] = &font.Drawer{Dst: dst, Src: image.White, Face: f.Face}
	}

	for i, g := range measure {
		f := fonts[g.font]
		if g.w == 0 || g.h == 0 {
			f.Glyphs[g.r] = Glyph{
				Rune: g.r, Advance: g.adv,
				BearingX: g.bx, BearingY: g.by,
			}
			continue
		}
		p := pos[i]

		// Drawer expects a dot at the baseline; shift left by bearingX.
		d := drawers[g.font]
		d.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
		d.DrawString(string(g.r))

		f.Glyphs[g.r] = Glyph{
			Rune: g.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
			U0: float32(p.X) / float32(size),
			V0: float32(p.Y) / float32(size),
			U1: float32(p.X+g.w) / float32(size),
			V1: float32(p.Y+g.h) / float32(size),
		}
	}

	return &Atlas{
		Width:   size,
		Height:  size,
		Pixels:  dst.Pix,
		WhiteUV: white,
		Fonts:   fonts,
	}, nil
}

// pack places glyphs on shelves, doubling the square atlas until all fit.
// The first shelf starts below the white block.
func pack(measure []meas) (int, []image.Point, error) {
	size := minAtlasSize
	pos := make([]image.Point, len(measure))
	for {
		x, y, rowH := padding+2+padding, padding, 2
		fits := true
		for i, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if g.w+padding*2 > size || g.h+padding*2 > size {
				fits = false
				break
			}
			if x+g.w+padding > size {
				x = padding
				y += rowH + padding
				rowH = 0
			}
			if y+g.h+padding > size {
				fits = false
				break
			}
			pos[i] = image.Pt(x, y)
			x += g.w + padding
			if g.h > rowH {
				rowH = g.h
			}
		}
		if fits {
			return size, pos, nil
		}
		size *= 2
		if size > maxAtlasSize {
			return 0, nil, ErrAtlasTooLarge
		}
	}
}

func closeFonts(fonts []*Font) {
	for _, f := range fonts {
		_ = f.Face.Close()
	}
}
