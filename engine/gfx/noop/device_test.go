package noop

import (
	"errors"
	"testing"

	"github.com/hubastard/imbridge/engine/core"
)

func uiLayout() *core.VertexLayout {
	var l core.VertexLayout
	l.Begin().
		Add(core.AttribPosition, 2, core.AttribFloat32, false, false).
		Add(core.AttribTexCoord0, 2, core.AttribFloat32, false, false).
		Add(core.AttribColor0, 4, core.AttribUint8, true, false).
		End()
	return &l
}

func TestDefaultsReportOpenGL(t *testing.T) {
	d := New(Options{})
	if d.RendererType() != core.RendererOpenGL {
		t.Errorf("RendererType = %s", d.RendererType())
	}
	if c := d.Caps(); c.TransientVBSize != DefaultTransientVBSize || c.TransientIBSize != DefaultTransientIBSize {
		t.Errorf("caps = %+v", c)
	}
}

func TestTransientBudget(t *testing.T) {
	l := uiLayout()
	d := New(Options{TransientVBSize: 100 * 20, TransientIBSize: 64})

	if got := d.AvailTransientVertexBuffer(60, l); got != 60 {
		t.Fatalf("avail = %d, want 60", got)
	}
	var tvb core.TransientVertexBuffer
	d.AllocTransientVertexBuffer(&tvb, 60, l)
	if len(tvb.Data) != 60*20 || tvb.StartVertex != 0 || tvb.Stride != 20 {
		t.Fatalf("tvb = start %d len %d stride %d", tvb.StartVertex, len(tvb.Data), tvb.Stride)
	}
	if got := d.AvailTransientVertexBuffer(60, l); got != 40 {
		t.Errorf("avail after alloc = %d, want 40", got)
	}
	d.AllocTransientVertexBuffer(&tvb, 10, l)
	if tvb.StartVertex != 60 {
		t.Errorf("second StartVertex = %d, want 60", tvb.StartVertex)
	}

	var tib core.TransientIndexBuffer
	d.AllocTransientIndexBuffer(&tib, 7, false) // 14 bytes
	if got := d.AvailTransientIndexBuffer(100, true); got != 12 {
		t.Errorf("32-bit avail = %d, want 12 (aligned to 16)", got)
	}
	d.AllocTransientIndexBuffer(&tib, 2, true)
	if tib.StartIndex != 4 || !tib.Index32 {
		t.Errorf("tib = %+v", tib)
	}

	d.Frame()
	if got := d.AvailTransientVertexBuffer(100, l); got != 100 {
		t.Errorf("avail after Frame = %d, want 100", got)
	}
}

func TestZeroBudget(t *testing.T) {
	d := New(Options{TransientVBSize: 1, TransientIBSize: 1})
	if got := d.AvailTransientVertexBuffer(1000, uiLayout()); got != 0 {
		t.Errorf("vertex avail = %d, want 0", got)
	}
	if got := d.AvailTransientIndexBuffer(1000, false); got != 0 {
		t.Errorf("index avail = %d, want 0", got)
	}
}

func TestResourceLifecycle(t *testing.T) {
	d := New(Options{})
	vs, err := d.CreateShader(core.StageVertex, []byte("vs"))
	if err != nil {
		t.Fatal(err)
	}
	fs, err := d.CreateShader(core.StageFragment, []byte("fs"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreateProgram(fs, vs, false); err == nil {
		t.Error("CreateProgram accepted swapped stages")
	}
	p, err := d.CreateProgram(vs, fs, true)
	if err != nil {
		t.Fatal(err)
	}
	if c := d.Counts(); c.Shaders != 0 || c.Programs != 1 {
		t.Errorf("counts after destroyShaders = %+v", c)
	}
	if _, err := d.CreateProgram(vs, fs, false); !errors.Is(err, core.ErrInvalidHandle) {
		t.Errorf("CreateProgram on destroyed shaders = %v", err)
	}

	tex, err := d.CreateTexture2D(core.TextureDesc{Width: 2, Height: 2, Pixels: make([]byte, 16)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreateTexture2D(core.TextureDesc{Width: 2, Height: 2, Pixels: make([]byte, 3)}); err == nil {
		t.Error("CreateTexture2D accepted short pixels")
	}

	d.DestroyProgram(p)
	d.DestroyProgram(p)
	d.DestroyTexture(tex)
	if c := d.Counts(); c.Programs != 0 || c.Textures != 0 || c.DoubleDestroys != 1 {
		t.Errorf("counts = %+v", c)
	}
}

func TestFailCreate(t *testing.T) {
	boom := errors.New("boom")
	d := New(Options{})
	d.FailCreate = func(kind string) error {
		if kind == "uniform" {
			return boom
		}
		return nil
	}
	if _, err := d.CreateUniform("s_tex", core.UniformSampler, 1); !errors.Is(err, boom) {
		t.Errorf("CreateUniform = %v, want boom", err)
	}
	if _, err := d.CreateShader(core.StageVertex, []byte("x")); err != nil {
		t.Errorf("CreateShader = %v", err)
	}
}

func TestEncoderRecordsAndClears(t *testing.T) {
	d := New(Options{})
	enc := d.EncoderBegin()
	enc.SetScissor(1, 2, 3, 4)
	enc.SetState(core.StateWriteRGB, 0)
	enc.Submit(7, 3)
	enc.Submit(7, 3)
	d.EncoderEnd(enc)

	subs := d.Submissions()
	if len(subs) != 2 {
		t.Fatalf("submissions = %d, want 2", len(subs))
	}
	if !subs[0].HasScissor || subs[0].Scissor != [4]uint16{1, 2, 3, 4} || subs[0].View != 7 {
		t.Errorf("first = %+v", subs[0])
	}
	if subs[1].HasScissor || subs[1].State != 0 {
		t.Errorf("state leaked into second submit: %+v", subs[1])
	}
	if c := d.Counts(); c.OpenEncoders != 0 {
		t.Errorf("open encoders = %d", c.OpenEncoders)
	}
	if n := d.Frame(); n != 1 || len(d.Submissions()) != 0 {
		t.Errorf("Frame = %d, submissions = %d", n, len(d.Submissions()))
	}
}
