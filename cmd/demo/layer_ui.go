package main

import (
	"fmt"
	"log/slog"

	"github.com/hubastard/imbridge/engine/assets"
	"github.com/hubastard/imbridge/engine/colors"
	"github.com/hubastard/imbridge/engine/core"
	"github.com/hubastard/imbridge/engine/gfx/uirender"
	"github.com/hubastard/imbridge/engine/imgui"
	"github.com/hubastard/imbridge/engine/input"
	"github.com/hubastard/imbridge/engine/profiler"
	"github.com/hubastard/imbridge/engine/scratch"
	"github.com/hubastard/imbridge/engine/ui"
)

const (
	idToggle = iota + 1
	idReset
	idQuit
)

// LayerUI drives the immediate-mode toolkit and hands its draw data to
// the device every frame.
type LayerUI struct {
	debug *LayerDebug

	ctx          *imgui.Context
	bridge       *input.Bridge
	renderer     *uirender.Renderer
	rendererType core.RendererType
	widgets      *ui.Ctx
	in           ui.Input
	text         *scratch.Text // label strings, reset every frame

	image      core.TextureHandle
	showImage  bool
	clicks     int
	fontSize   float32
	clearColor uint32
}

func (l *LayerUI) OnAttach(e *core.Engine) {
	l.image = core.InvalidHandle
	l.showImage = true
	l.fontSize = e.Config.FontSize
	l.clearColor = e.Config.ClearRGBA()

	l.ctx = imgui.CreateContext()
	l.bridge = input.NewBridge(l.ctx)
	if e.Config.FontPath != "" {
		ttf, err := assets.LoadFont(e.Config.FontPath)
		if err != nil {
			slog.Warn("font not loaded, using the built-in one", "err", err)
			l.ctx.Fonts().AddFontDefault(l.fontSize)
		} else {
			l.ctx.Fonts().AddFontFromMemoryTTF(ttf, l.fontSize, nil)
		}
	} else {
		l.ctx.Fonts().AddFontDefault(l.fontSize)
	}

	r, err := uirender.New(e.Device, l.ctx, uirender.Options{})
	if err != nil {
		e.Fail(fmt.Errorf("ui renderer: %w", err))
		return
	}
	l.renderer = r
	l.rendererType = e.Device.RendererType()

	l.image, err = createImage(e.Device, e.Config.ImagePath)
	if err != nil && e.Config.ImagePath != "" {
		slog.Warn("panel image not loaded, using the checkerboard", "path", e.Config.ImagePath, "err", err)
		l.image, err = createImage(e.Device, "")
	}
	if err != nil {
		slog.Warn("panel image texture not created", "err", err)
		l.image = core.InvalidHandle
	}

	l.text = scratch.New(512)
	l.widgets = ui.New(16, 256, 128)
	l.widgets.I = &l.in
}

func (l *LayerUI) OnDetach(e *core.Engine) {
	if l.image != core.InvalidHandle {
		e.Device.DestroyTexture(l.image)
	}
	if l.renderer != nil {
		l.renderer.Destroy()
	}
	if l.ctx != nil {
		if err := l.ctx.Shutdown(); err != nil {
			slog.Warn("imgui shutdown", "err", err)
		}
	}
}

func (l *LayerUI) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerUI) OnEvent(e *core.Engine, ev core.Event) bool {
	if l.ctx != nil {
		l.bridge.HandleEvent(l.ctx, ev)
	}
	return false
}

func (l *LayerUI) OnRender(e *core.Engine, alpha float64) {
	if l.renderer == nil {
		return
	}
	defer profiler.Start("LayerUI.OnRender")()

	view := e.Config.UIView
	e.Device.SetViewClear(view, core.ClearColor|core.ClearDepth, l.clearColor, 1)
	e.Device.Touch(view)

	w, h := e.Window.Size()
	fw, fh := e.Window.FramebufferSize()
	mx, my := e.Window.CursorPos()
	l.renderer.BeginFrame(l.ctx, uirender.FrameInput{
		MousePos:     [2]float32{float32(mx), float32(my)},
		MouseButtons: input.MouseButtons(e.Window),
		MouseWheel:   l.bridge.MouseWheel(),
		DisplaySize:  [2]int{w, h},
		Char:         l.bridge.LastCharacter(),
		View:         view,
	})
	if w > 0 && h > 0 {
		l.ctx.IO().DisplayFramebufferScale = [2]float32{float32(fw) / float32(w), float32(fh) / float32(h)}
	}
	if err := l.ctx.NewFrame(); err != nil {
		slog.Debug("ui frame skipped", "err", err)
		return
	}

	l.in = ui.InputFromIO(l.ctx.IO())
	l.buildPanel(e)

	l.renderer.Render(l.ctx.Render())
}

func (l *LayerUI) buildPanel(e *core.Engine) {
	list := l.ctx.DrawList("panel")
	l.widgets.R = ui.DrawListRenderer{Ctx: l.ctx, List: list}
	ui.Use(l.widgets)
	ui.BeginFrame(l.widgets)
	l.text.Reset()

	ui.BeginView(ui.Props{
		Axis:       ui.Vertical,
		CrossAlign: ui.Stretch,
		Gap:        6,
		Padding:    ui.Insets(12, 12, 12, 12),
		Bg:         colors.DarkGray.WithAlpha(0.9),
		Clip:       true,
		BoundsX:    16,
		BoundsY:    16,
	})
	ui.Label(ui.LabelProps{ID: 100, Text: "imbridge", FontSize: l.fontSize * 1.3, Color: colors.Yellow})
	ui.Label(ui.LabelProps{ID: 101, Text: l.text.Sprintf("%s  %.2f ms", l.rendererType, l.debug.AvgFrameMs())})

	s := l.renderer.Stats()
	ui.Label(ui.LabelProps{ID: 102, Text: l.text.Sprintf("draws %d  culled %d  vtx %d", s.DrawCalls, s.Culled, s.Vertices)})
	ui.Label(ui.LabelProps{ID: 103, Text: l.text.Sprintf("clicks %d  wheel %.1f", l.clicks, l.bridge.MouseWheel())})

	btn := ui.ButtonProps{FontSize: l.fontSize, Bg: colors.Blue.Scale(0.6), Padding: ui.Insets(8, 4, 8, 4)}
	btn.ID, btn.Text = idToggle, "Toggle image"
	if ui.Button(btn) {
		l.showImage = !l.showImage
		l.clicks++
	}
	btn.ID, btn.Text = idReset, "Reset clicks"
	if ui.Button(btn) {
		l.clicks = 0
	}
	btn.ID, btn.Text, btn.Bg = idQuit, "Quit", colors.Red.Scale(0.6)
	if ui.Button(btn) {
		e.Window.RequestClose()
	}
	if l.showImage && l.image != core.InvalidHandle {
		ui.Image(ui.ImageProps{ID: 104, Texture: l.renderer.TextureID(l.image), W: 64, H: 64})
	}
	ui.EndView()

	ui.Flush(l.widgets)
	if n := l.widgets.Dropped(); n > 0 {
		slog.Debug("ui widgets dropped", "count", n)
	}
	if g := l.text.Grows(); g > 0 && l.ctx.FrameCount() == 1 {
		slog.Debug("label arena grew", "times", g, "cap", l.text.Cap())
	}

	// A callback between the panel and the overlay restores state afterwards.
	list.AddCallback(func(*imgui.DrawList, *imgui.DrawCmd) {}, nil)
	list.AddResetRenderState()

	if io := l.ctx.IO(); io.MouseDown[0] {
		fg := l.ctx.ForegroundDrawList()
		p := io.MousePos
		fg.AddRect([2]float32{p[0] - 6, p[1] - 6}, [2]float32{p[0] + 6, p[1] + 6}, colors.Yellow.Pack(), 1)
	}
}

// createImage uploads the PNG at path, or an 8×8 checkerboard when path
// is empty.
func createImage(dev core.Device, path string) (core.TextureHandle, error) {
	desc := core.TextureDesc{Width: 8, Height: 8, Flags: core.SamplerPoint, Pixels: checkerPixels(8)}
	if path != "" {
		w, h, px, err := assets.LoadPNG(path)
		if err != nil {
			return core.InvalidHandle, err
		}
		if maxSize := int(dev.Caps().MaxTextureSize); w > maxSize || h > maxSize {
			return core.InvalidHandle, fmt.Errorf("image %dx%d exceeds max texture size %d", w, h, maxSize)
		}
		desc = core.TextureDesc{Width: uint16(w), Height: uint16(h), Pixels: px}
	}
	return dev.CreateTexture2D(desc)
}

// checkerPixels returns an n×n RGBA8 checkerboard.
func checkerPixels(n int) []byte {
	px := make([]byte, 0, n*n*4)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := colors.White
			if (x+y)%2 == 1 {
				c = colors.Magenta
			}
			px = append(px, byte(c[0]*255), byte(c[1]*255), byte(c[2]*255), 255)
		}
	}
	return px
}
