package core

import (
	"errors"
	"testing"
)

type recLayer struct {
	name    string
	log     *[]string
	handled bool
}

func (l *recLayer) OnAttach(*Engine)          { *l.log = append(*l.log, "attach "+l.name) }
func (l *recLayer) OnDetach(*Engine)          { *l.log = append(*l.log, "detach "+l.name) }
func (l *recLayer) OnUpdate(*Engine, float64) {}
func (l *recLayer) OnRender(*Engine, float64) { *l.log = append(*l.log, "render "+l.name) }
func (l *recLayer) OnEvent(*Engine, Event) bool {
	*l.log = append(*l.log, "event "+l.name)
	return l.handled
}

func TestLayerStackOrder(t *testing.T) {
	var log []string
	var ls LayerStack
	e := &Engine{}
	ls.Push(e, &recLayer{name: "a", log: &log})
	ls.Push(e, &recLayer{name: "b", log: &log, handled: true})

	ls.ForEach(func(l Layer) { l.OnRender(e, 0) })
	ls.ForEachReverse(func(l Layer) bool { return l.OnEvent(e, EventCloseRequested{}) })

	want := []string{"attach a", "attach b", "render a", "render b", "event b"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}

	l, ok := ls.Pop()
	if !ok || l.(*recLayer).name != "b" {
		t.Errorf("Pop = %v, %v", l, ok)
	}
	if ls.Len() != 1 {
		t.Errorf("Len = %d, want 1", ls.Len())
	}
	ls.Pop()
	if _, ok := ls.Pop(); ok {
		t.Error("Pop on empty stack returned ok")
	}
}

type closeWindow struct{ closed bool }

func (w *closeWindow) PollEvents()                   {}
func (w *closeWindow) SwapBuffers()                  {}
func (w *closeWindow) ShouldClose() bool             { return w.closed }
func (w *closeWindow) RequestClose()                 { w.closed = true }
func (w *closeWindow) Size() (int, int)              { return 1, 1 }
func (w *closeWindow) FramebufferSize() (int, int)   { return 1, 1 }
func (w *closeWindow) CursorPos() (float64, float64) { return 0, 0 }
func (w *closeWindow) MouseButton(MouseButton) bool  { return false }
func (w *closeWindow) SetTitle(string)               {}
func (w *closeWindow) SetEventCallback(func(Event))  {}

func TestEngineFailKeepsFirstError(t *testing.T) {
	w := &closeWindow{}
	e := &Engine{Window: w}
	if e.Err() != nil {
		t.Fatal("fresh engine has an error")
	}
	first := errors.New("first")
	e.Fail(first)
	e.Fail(errors.New("second"))
	if e.Err() != first {
		t.Errorf("Err() = %v, want %v", e.Err(), first)
	}
	if !w.ShouldClose() {
		t.Error("Fail did not close the window")
	}
}
