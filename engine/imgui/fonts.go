package imgui

import (
	"fmt"

	"github.com/hubastard/imbridge/engine/text"
)

// DefaultFontSize is used when no font was added before the atlas builds.
const DefaultFontSize = 13

// FontAtlas collects font sources and rasterizes them into one RGBA
// texture. Renderers upload the pixels and store their handle in TexID.
type FontAtlas struct {
	TexID TextureID

	sources []text.FontSource
	atlas   *text.Atlas
}

// AddFontDefault adds the built-in Go Regular face.
func (f *FontAtlas) AddFontDefault(sizePx float32) {
	f.AddFontFromMemoryTTF(nil, sizePx, nil)
}

// AddFontFromMemoryTTF adds a TrueType/OpenType face. Nil runes selects
// Latin-1. The atlas must be rebuilt for the face to appear.
func (f *FontAtlas) AddFontFromMemoryTTF(ttf []byte, sizePx float32, runes []rune) {
	if sizePx <= 0 {
		sizePx = DefaultFontSize
	}
	f.sources = append(f.sources, text.FontSource{TTF: ttf, SizePx: sizePx, Runes: runes})
}

// Build rasterizes all sources, replacing any previous atlas.
func (f *FontAtlas) Build() error {
	if len(f.sources) == 0 {
		f.AddFontDefault(DefaultFontSize)
	}
	a, err := text.BuildAtlas(f.sources)
	if err != nil {
		return fmt.Errorf("build font atlas: %w", err)
	}
	f.atlas.Close()
	f.atlas = a
	return nil
}

// IsBuilt reports whether texture data is available.
func (f *FontAtlas) IsBuilt() bool { return f.atlas != nil }

// GetTexDataAsRGBA32 builds the atlas on first use and returns its pixels.
func (f *FontAtlas) GetTexDataAsRGBA32() (pixels []byte, width, height int, err error) {
	if f.atlas == nil {
		if err := f.Build(); err != nil {
			return nil, 0, 0, err
		}
	}
	return f.atlas.Pixels, f.atlas.Width, f.atlas.Height, nil
}

// Font returns the i-th face of the built atlas, or nil.
func (f *FontAtlas) Font(i int) *text.Font {
	if f.atlas == nil || i < 0 || i >= len(f.atlas.Fonts) {
		return nil
	}
	return f.atlas.Fonts[i]
}

// WhiteUV is the texture coordinate of the solid white texel.
func (f *FontAtlas) WhiteUV() [2]float32 {
	if f.atlas == nil {
		return [2]float32{}
	}
	return f.atlas.WhiteUV
}

// ClearFonts drops every source and the built texture data.
func (f *FontAtlas) ClearFonts() {
	f.sources = nil
	f.Clear()
}

// Clear drops the built texture data; sources are kept.
func (f *FontAtlas) Clear() {
	f.atlas.Close()
	f.atlas = nil
}
