package core

import (
	"slices"
	"testing"
	"time"

	"github.com/hubastard/veil/engine/ui"
)

func TestInput_SampleEdges(t *testing.T) {
	in := NewInput()
	in.Handle(EventMouseMove{X: 10, Y: 20})
	in.Handle(EventMouseButton{Button: MouseLeft, Down: true})

	s := in.Sample(16 * time.Millisecond)
	if got := s.MousePosition(); got != (ui.Vec2{X: 10, Y: 20}) {
		t.Errorf("MousePosition() = %+v", got)
	}
	if !s.IsMousePressed(ui.MouseLeft) || !s.IsMouseDown(ui.MouseLeft) {
		t.Error("first sample after press is not a press edge")
	}

	s = in.Sample(16 * time.Millisecond)
	if s.IsMousePressed(ui.MouseLeft) || !s.IsMouseDown(ui.MouseLeft) {
		t.Error("held button reported a second press edge")
	}

	in.Handle(EventMouseButton{Button: MouseLeft, Down: false})
	s = in.Sample(16 * time.Millisecond)
	if !s.IsMouseReleased(ui.MouseLeft) || s.IsMouseDown(ui.MouseLeft) {
		t.Error("release edge missing")
	}
	if s.DeltaTime() != 16*time.Millisecond {
		t.Errorf("DeltaTime() = %v", s.DeltaTime())
	}
}

func TestInput_ContentScale(t *testing.T) {
	in := NewInput()
	in.SetContentScale(2)
	in.Handle(EventMouseMove{X: 10, Y: 5})
	if x, y := in.Mouse(); x != 20 || y != 10 {
		t.Errorf("Mouse() = %v, %v, want 20, 10", x, y)
	}
}

func TestInput_KeysAndScroll(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeyEscape, Down: true})
	in.Handle(EventScroll{Yoff: 1.5})
	in.Handle(EventScroll{Yoff: -0.5})

	if !in.IsKeyDown(KeyEscape) {
		t.Error("IsKeyDown(Escape) = false")
	}
	if got := in.TakeScroll(); got != 1 {
		t.Errorf("TakeScroll() = %v, want 1", got)
	}
	if got := in.TakeScroll(); got != 0 {
		t.Errorf("second TakeScroll() = %v, want 0", got)
	}
}

type recordingLayer struct {
	name    string
	handles bool
	log     *[]string
}

func (l *recordingLayer) OnAttach(*Engine)          { *l.log = append(*l.log, "attach:"+l.name) }
func (l *recordingLayer) OnDetach(*Engine)          {}
func (l *recordingLayer) OnUpdate(*Engine, float64) {}
func (l *recordingLayer) OnRender(*Engine, float64) {}
func (l *recordingLayer) OnEvent(*Engine, Event) bool {
	*l.log = append(*l.log, "event:"+l.name)
	return l.handles
}

func TestLayerStack_EventsStopAtHandler(t *testing.T) {
	var log []string
	e := &Engine{}
	e.PushLayer(&recordingLayer{name: "bottom", log: &log})
	e.PushLayer(&recordingLayer{name: "middle", handles: true, log: &log})
	e.PushLayer(&recordingLayer{name: "top", log: &log})

	e.Layers.ForEachReverse(func(l Layer) bool { return l.OnEvent(e, EventResize{}) })

	want := []string{"attach:bottom", "attach:middle", "attach:top", "event:top", "event:middle"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestLayerStack_OverlaysStayOnTop(t *testing.T) {
	var log []string
	e := &Engine{}
	hud := &recordingLayer{name: "hud", log: &log}
	e.PushOverlay(hud)
	e.PushLayer(&recordingLayer{name: "scene", log: &log})
	e.PushOverlay(&recordingLayer{name: "debug", log: &log})
	e.PushLayer(&recordingLayer{name: "world", log: &log})

	order := func() []string {
		var got []string
		e.Layers.ForEach(func(l Layer) { got = append(got, l.(*recordingLayer).name) })
		return got
	}

	if got, want := order(), []string{"scene", "world", "hud", "debug"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	if !e.PopLayer(hud) {
		t.Fatal("PopLayer(hud) = false")
	}
	if e.PopLayer(hud) {
		t.Error("second PopLayer(hud) = true")
	}
	e.PushLayer(&recordingLayer{name: "sky", log: &log})
	if got, want := order(), []string{"scene", "world", "sky", "debug"}; !slices.Equal(got, want) {
		t.Errorf("order after removal = %v, want %v", got, want)
	}

	l, ok := e.Layers.Pop()
	if !ok || l.(*recordingLayer).name != "debug" {
		t.Errorf("Pop() = %v, %v, want debug", l, ok)
	}
	e.PushLayer(&recordingLayer{name: "top", log: &log})
	if got, want := order(), []string{"scene", "world", "sky", "top"}; !slices.Equal(got, want) {
		t.Errorf("order after popping the last overlay = %v, want %v", got, want)
	}
}
