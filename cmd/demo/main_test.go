package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hubastard/imbridge/engine/core"
	"github.com/hubastard/imbridge/engine/gfx/noop"
	"gopkg.in/yaml.v3"
)

func TestHeadlessRun(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Width, cfg.Height = 640, 360
	cfg.HeadlessFrames = 3

	app := &App{}
	if err := core.Run(app, cfg, newHeadlessWindow, newNoopDevice); err != nil {
		t.Fatal(err)
	}
	r := app.Report()
	if r.Frames != 3 {
		t.Errorf("frames = %d, want 3", r.Frames)
	}
	if r.Renderer != "OpenGL" {
		t.Errorf("renderer = %q", r.Renderer)
	}
	if r.Stats.DrawCalls == 0 || r.Stats.Vertices == 0 {
		t.Errorf("nothing drawn: %+v", r.Stats)
	}
	if r.Stats.Callbacks != 1 || r.Stats.Resets != 1 {
		t.Errorf("callbacks/resets = %d/%d, want 1/1", r.Stats.Callbacks, r.Stats.Resets)
	}

	var buf bytes.Buffer
	if err := yaml.NewEncoder(&buf).Encode(r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "draw_calls:") {
		t.Errorf("report yaml:\n%s", buf.String())
	}
}

func TestHeadlessRunUnsupportedRenderer(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.HeadlessFrames = 5

	newDevice := func(core.Window, core.Config) (core.Device, error) {
		return noop.New(noop.Options{Renderer: core.RendererCount}), nil
	}
	app := &App{}
	err := core.Run(app, cfg, newHeadlessWindow, newDevice)
	if err == nil {
		t.Fatal("run succeeded without a shader table for the backend")
	}
	if !strings.Contains(err.Error(), "ui renderer") {
		t.Errorf("err = %v", err)
	}
	if app.frames != 0 {
		t.Errorf("frames = %d, want 0", app.frames)
	}
}

func TestHeadlessWindowCloses(t *testing.T) {
	w, _ := newHeadlessWindow(core.Config{Width: 10, Height: 20, HeadlessFrames: 2})
	if w.ShouldClose() {
		t.Fatal("closed before any frame")
	}
	w.SwapBuffers()
	w.SwapBuffers()
	if !w.ShouldClose() {
		t.Error("still open after the frame budget")
	}
	if fw, fh := w.FramebufferSize(); fw != 10 || fh != 20 {
		t.Errorf("framebuffer = %dx%d", fw, fh)
	}
}

func TestAltEnterTogglesFullscreen(t *testing.T) {
	w, _ := newHeadlessWindow(core.Config{Width: 10, Height: 10, HeadlessFrames: 1})
	e := &core.Engine{Window: w}
	app := &App{}
	hw := w.(*headlessWindow)

	app.OnEvent(e, core.EventKey{Key: core.KeyEnter, Action: core.ActionPress})
	if hw.Fullscreen() {
		t.Fatal("plain Enter toggled fullscreen")
	}
	app.OnEvent(e, core.EventKey{Key: core.KeyEnter, Action: core.ActionPress, Mods: core.ModAlt})
	if !hw.Fullscreen() {
		t.Fatal("Alt+Enter did not enter fullscreen")
	}
	app.OnEvent(e, core.EventKey{Key: core.KeyEnter, Action: core.ActionRelease, Mods: core.ModAlt})
	app.OnEvent(e, core.EventKey{Key: core.KeyEnter, Action: core.ActionRepeat, Mods: core.ModAlt})
	if !hw.Fullscreen() {
		t.Fatal("release or repeat toggled fullscreen")
	}
	app.OnEvent(e, core.EventKey{Key: core.KeyEnter, Action: core.ActionPress, Mods: core.ModAlt | core.ModShift})
	if hw.Fullscreen() {
		t.Error("second Alt+Enter did not leave fullscreen")
	}
	if hw.ShouldClose() {
		t.Error("window closed")
	}
}

func TestCheckerPixels(t *testing.T) {
	px := checkerPixels(2)
	if len(px) != 16 {
		t.Fatalf("len = %d", len(px))
	}
	if px[0] != 255 || px[1] != 255 || px[5] != 0 {
		t.Errorf("pixels = %v", px)
	}
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "panel.png")
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

func TestCreateImage(t *testing.T) {
	dev := noop.New(noop.Options{MaxTextureSize: 8})

	h, err := createImage(dev, "")
	if err != nil {
		t.Fatal(err)
	}
	if desc, ok := dev.Texture(h); !ok || desc.Width != 8 || desc.Flags != core.SamplerPoint {
		t.Errorf("checkerboard = %+v, %v", desc, ok)
	}

	h, err = createImage(dev, writePNG(t, 3, 2))
	if err != nil {
		t.Fatal(err)
	}
	desc, ok := dev.Texture(h)
	if !ok || desc.Width != 3 || desc.Height != 2 || len(desc.Pixels) != 3*2*4 {
		t.Fatalf("png texture = %dx%d, %d bytes", desc.Width, desc.Height, len(desc.Pixels))
	}
	if desc.Pixels[0] != 255 || desc.Pixels[3] != 255 {
		t.Errorf("first pixel = %v", desc.Pixels[:4])
	}

	if _, err := createImage(dev, writePNG(t, 9, 1)); err == nil {
		t.Error("image larger than the max texture size was accepted")
	}
	if _, err := createImage(dev, filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file was accepted")
	}
}

func TestLayerDebugCtrlP(t *testing.T) {
	l := &LayerDebug{}
	if l.OnEvent(nil, core.EventKey{Key: core.KeyP, Action: core.ActionPress}) {
		t.Error("plain P was consumed")
	}
	if l.OnEvent(nil, core.EventKey{Key: core.KeyP, Action: core.ActionRelease, Mods: core.ModCtrl}) {
		t.Error("release was consumed")
	}
	if !l.OnEvent(nil, core.EventKey{Key: core.KeyP, Action: core.ActionPress, Mods: core.ModCtrl}) {
		t.Error("Ctrl+P was not consumed")
	}
}
