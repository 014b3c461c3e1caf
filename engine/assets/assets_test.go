package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPNGConvertsToRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	path := writePNG(t, src)

	w, h, pix, err := LoadPNG(path)
	if err != nil {
		t.Fatal(err)
	}
	if w != 3 || h != 2 || len(pix) != 3*2*4 {
		t.Fatalf("LoadPNG = %dx%d, %d bytes", w, h, len(pix))
	}
	off := (1*3 + 2) * 4
	if pix[off] != 10 || pix[off+1] != 20 || pix[off+2] != 30 || pix[off+3] != 255 {
		t.Errorf("pixel = %v", pix[off:off+4])
	}
}

func TestLoadImageMissing(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("LoadImage succeeded on missing file")
	}
}

func TestLoadFont(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ttf")
	bad := filepath.Join(dir, "bad.ttf")
	if err := os.WriteFile(good, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadFont(good)
	if err != nil || len(b) != len(goregular.TTF) {
		t.Errorf("LoadFont(good) = %d bytes, %v", len(b), err)
	}
	if _, err := LoadFont(bad); err == nil {
		t.Error("LoadFont accepted garbage")
	}
}
