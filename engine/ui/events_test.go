package ui

import (
	"slices"
	"testing"
)

func TestEvent_SubscribeOrderAndRemove(t *testing.T) {
	var ev Event[int]
	var got []string
	ev.Subscribe(func(int) { got = append(got, "a") })
	sub := ev.Subscribe(func(int) { got = append(got, "b") })
	ev.Subscribe(func(int) { got = append(got, "c") })

	ev.Emit(1)
	sub.Remove()
	sub.Remove()
	ev.Emit(2)

	want := []string{"a", "b", "c", "a", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if ev.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ev.Len())
	}
}

func TestEvent_MutationDuringEmit(t *testing.T) {
	var ev Event[int]
	calls := 0
	var self *Subscription
	self = ev.Subscribe(func(int) {
		calls++
		self.Remove()
		ev.Subscribe(func(int) { calls += 10 })
	})

	ev.Emit(0)
	if calls != 1 {
		t.Fatalf("first Emit calls = %d, want 1", calls)
	}
	ev.Emit(0)
	if calls != 11 {
		t.Errorf("second Emit calls = %d, want 11", calls)
	}
}

func TestEvent_Clear(t *testing.T) {
	var ev Event[string]
	ev.Subscribe(func(string) { t.Error("cleared listener called") })
	ev.Clear()
	ev.Emit("x")
	if ev.Len() != 0 {
		t.Errorf("Len() = %d after Clear", ev.Len())
	}
}

func TestElement_ChildEvents(t *testing.T) {
	p := MustNew("P")
	var added, removed []string
	p.Events.ChildAdded.Subscribe(func(c *Element) { added = append(added, c.ID()) })
	p.Events.ChildRemoved.Subscribe(func(c *Element) { removed = append(removed, c.ID()) })

	a, b := MustNew("A"), MustNew("B")
	_ = p.AddChild(a)
	_ = p.AddChild(b)
	_ = p.RemoveChild(a)

	if !slices.Equal(added, []string{"A", "B"}) {
		t.Errorf("added = %v", added)
	}
	if !slices.Equal(removed, []string{"A"}) {
		t.Errorf("removed = %v", removed)
	}
}

func TestElement_PointerListenersMakeInteractive(t *testing.T) {
	e := MustNew("E")
	if e.IsInteractive() {
		t.Fatal("fresh element is interactive")
	}
	sub := e.Events.MouseEnter.Subscribe(func(*Element) {})
	if !e.IsInteractive() {
		t.Error("element with a MouseEnter listener is not interactive")
	}
	sub.Remove()
	e.Events.AfterRender.Subscribe(func(*Element) {})
	if e.IsInteractive() {
		t.Error("render hooks made the element interactive")
	}
}
