package ui

import (
	"fmt"
	"testing"

	"github.com/hubastard/imbridge/engine/colors"
	"github.com/hubastard/imbridge/engine/imgui"
)

// recorder measures every string as 10px per byte by 20px high.
type recorder struct {
	ops []string
}

func (r *recorder) DrawRect(x, y, w, h float32, _ colors.Color) {
	r.ops = append(r.ops, fmt.Sprintf("rect %g,%g %gx%g", x, y, w, h))
}

func (r *recorder) DrawText(x, y float32, s string, _ float32, _ colors.Color) {
	r.ops = append(r.ops, fmt.Sprintf("text %q %g,%g", s, x, y))
}

func (r *recorder) DrawImage(tex imgui.TextureID, x, y, w, h float32) {
	r.ops = append(r.ops, fmt.Sprintf("image %d %g,%g %gx%g", tex, x, y, w, h))
}

func (r *recorder) Measure(s string, _ float32) (float32, float32) {
	return float32(len(s)) * 10, 20
}

func (r *recorder) PushClip(x, y, w, h float32) {
	r.ops = append(r.ops, fmt.Sprintf("clip %g,%g %gx%g", x, y, w, h))
}

func (r *recorder) PopClip() { r.ops = append(r.ops, "unclip") }

func setup(in *Input) (*Ctx, *recorder) {
	rec := &recorder{}
	ctx := New(8, 64, 64)
	ctx.R = rec
	ctx.I = in
	Use(ctx)
	BeginFrame(ctx)
	return ctx, rec
}

func equalOps(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ops = %q\nwant %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVerticalLayout(t *testing.T) {
	ctx, rec := setup(&Input{})

	BeginView(Props{Axis: Vertical, Gap: 5, Padding: Insets(2, 3, 0, 0), BoundsX: 100, BoundsY: 50, Bg: colors.Gray})
	Label(LabelProps{Text: "ab"})
	Label(LabelProps{Text: "abcd"})
	EndView()
	Flush(ctx)

	equalOps(t, rec.ops, []string{
		"rect 100,50 42x48",
		`text "ab" 102,53`,
		`text "abcd" 102,78`,
	})
}

func TestCenterAndStretch(t *testing.T) {
	ctx, rec := setup(&Input{})

	BeginView(Props{Axis: Horizontal, MainAlign: Center, CrossAlign: Stretch, Sizing: Px(100, 40)})
	Image(ImageProps{Texture: 7, W: 20, H: 10})
	EndView()
	Flush(ctx)

	equalOps(t, rec.ops, []string{"image 7 40,0 20x40"})
}

func TestClipWrapsChildren(t *testing.T) {
	ctx, rec := setup(&Input{})

	BeginView(Props{Clip: true, Sizing: Px(50, 30), BoundsX: 10, BoundsY: 10})
	Label(LabelProps{Text: "wide label"})
	EndView()
	Flush(ctx)

	equalOps(t, rec.ops, []string{
		"clip 10,10 50x30",
		`text "wide label" 10,10`,
		"unclip",
	})
}

func TestButtonClickSurfacesNextFrame(t *testing.T) {
	in := &Input{MouseX: 5, MouseY: 5}
	ctx, _ := setup(in)

	frame := func() bool {
		BeginFrame(ctx)
		BeginView(Props{})
		clicked := Button(ButtonProps{ID: 1, Text: "ok", Bg: colors.Blue})
		EndView()
		Flush(ctx)
		return clicked
	}

	in.MousePressed, in.MouseDown = true, true
	if frame() {
		t.Fatal("clicked on press")
	}
	in.MousePressed, in.MouseDown, in.MouseReleased = false, false, true
	if frame() {
		t.Fatal("clicked before the release was resolved")
	}
	in.MouseReleased = false
	if !frame() {
		t.Fatal("release inside did not click")
	}
	if frame() {
		t.Fatal("click reported twice")
	}
}

func TestButtonReleaseOutsideDoesNotClick(t *testing.T) {
	in := &Input{MouseX: 5, MouseY: 5, MousePressed: true}
	ctx, _ := setup(in)
	frame := func() bool {
		BeginFrame(ctx)
		BeginView(Props{})
		c := Button(ButtonProps{ID: 1, Text: "ok"})
		EndView()
		Flush(ctx)
		return c
	}
	frame()
	in.MousePressed, in.MouseReleased, in.MouseX = false, true, 500
	frame()
	in.MouseReleased = false
	if frame() {
		t.Error("release outside clicked")
	}
}

func TestOverflowStaysBalanced(t *testing.T) {
	rec := &recorder{}
	ctx := New(1, 2, 1)
	ctx.R, ctx.I = rec, &Input{}
	Use(ctx)
	BeginFrame(ctx)

	BeginView(Props{})
	BeginView(Props{}) // past view capacity
	Label(LabelProps{Text: "a"})
	EndView()
	Label(LabelProps{Text: "b"})
	Label(LabelProps{Text: "c"}) // past command capacity
	EndView()
	Flush(ctx)

	if ctx.Dropped() == 0 {
		t.Error("nothing reported dropped")
	}
	if len(ctx.viewStack) != 0 {
		t.Errorf("view stack depth = %d after balanced calls", len(ctx.viewStack))
	}
}

func TestDrawListRenderer(t *testing.T) {
	ictx := imgui.CreateContext()
	ictx.SetIniFilename("")
	ictx.IO().DisplaySize = [2]float32{200, 100}
	if err := ictx.Fonts().Build(); err != nil {
		t.Fatal(err)
	}
	defer ictx.Shutdown()
	if err := ictx.NewFrame(); err != nil {
		t.Fatal(err)
	}

	in := InputFromIO(ictx.IO())
	ctx := New(4, 16, 16)
	ctx.R = DrawListRenderer{Ctx: ictx, List: ictx.DrawList("ui")}
	ctx.I = &in
	Use(ctx)
	BeginFrame(ctx)
	BeginView(Props{Clip: true, Sizing: Px(100, 50), Bg: colors.DarkGray})
	Label(LabelProps{Text: "Hi", FontSize: 13})
	EndView()
	Flush(ctx)

	dd := ictx.Render()
	if len(dd.CmdLists) != 1 {
		t.Fatalf("lists = %d, want 1", len(dd.CmdLists))
	}
	cmds := dd.CmdLists[0].CmdBuffer
	if len(cmds) < 2 {
		t.Fatalf("cmds = %d, want the full-rect background and the clipped label", len(cmds))
	}
	if got := cmds[len(cmds)-1].ClipRect; got != [4]float32{0, 0, 100, 50} {
		t.Errorf("label clip = %v", got)
	}
}

func TestInputFromIO(t *testing.T) {
	io := &imgui.IO{}
	io.MousePos = [2]float32{3, 4}
	io.MouseDown[0] = true
	io.MouseClicked[0] = true
	in := InputFromIO(io)
	if in.MouseX != 3 || in.MouseY != 4 || !in.MouseDown || !in.MousePressed || in.MouseReleased {
		t.Errorf("input = %+v", in)
	}
}
