package ui

// Event is an ordered list of listeners owned by an Element. Subscribing
// returns a Subscription that removes exactly that listener.
type Event[T any] struct {
	listeners []listener[T]
	nextID    uint32
}

type listener[T any] struct {
	id uint32
	fn func(T)
}

// Subscription is the handle returned by Event.Subscribe.
type Subscription struct {
	remove func()
}

// Remove unregisters the listener. Calling it more than once is a no-op.
func (s *Subscription) Remove() {
	if s == nil || s.remove == nil {
		return
	}
	s.remove()
	s.remove = nil
}

func (ev *Event[T]) Subscribe(fn func(T)) *Subscription {
	ev.nextID++
	id := ev.nextID
	ev.listeners = append(ev.listeners, listener[T]{id: id, fn: fn})
	return &Subscription{remove: func() { ev.unsubscribe(id) }}
}

func (ev *Event[T]) unsubscribe(id uint32) {
	for i := range ev.listeners {
		if ev.listeners[i].id == id {
			copy(ev.listeners[i:], ev.listeners[i+1:])
			ev.listeners[len(ev.listeners)-1] = listener[T]{}
			ev.listeners = ev.listeners[:len(ev.listeners)-1]
			return
		}
	}
}

// Emit calls every listener in subscription order. Listeners added or removed
// during Emit take effect on the next call.
func (ev *Event[T]) Emit(v T) {
	if len(ev.listeners) == 0 {
		return
	}
	snapshot := make([]listener[T], len(ev.listeners))
	copy(snapshot, ev.listeners)
	for _, l := range snapshot {
		l.fn(v)
	}
}

func (ev *Event[T]) Len() int { return len(ev.listeners) }

// Clear drops every listener.
func (ev *Event[T]) Clear() {
	clear(ev.listeners)
	ev.listeners = ev.listeners[:0]
}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle

	mouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	}
	return "unknown"
}

// MouseEvent is the payload of pointer button events.
type MouseEvent struct {
	Element  *Element
	Button   MouseButton
	Position Vec2
}

// Events groups the observer lists of an Element.
type Events struct {
	ChildAdded    Event[*Element]
	ChildRemoved  Event[*Element]
	BeforeCompute Event[*Element]
	BeforeRender  Event[*Element]
	AfterRender   Event[*Element]

	MouseEnter Event[*Element]
	MouseLeave Event[*Element]
	MouseDown  Event[MouseEvent]
	MouseUp    Event[MouseEvent]
	Click      Event[MouseEvent]
}

func (e *Events) hasPointerListeners() bool {
	return e.MouseEnter.Len() > 0 || e.MouseLeave.Len() > 0 ||
		e.MouseDown.Len() > 0 || e.MouseUp.Len() > 0 || e.Click.Len() > 0
}

func (e *Events) clear() {
	e.ChildAdded.Clear()
	e.ChildRemoved.Clear()
	e.BeforeCompute.Clear()
	e.BeforeRender.Clear()
	e.AfterRender.Clear()
	e.MouseEnter.Clear()
	e.MouseLeave.Clear()
	e.MouseDown.Clear()
	e.MouseUp.Clear()
	e.Click.Clear()
}
