package core

// Layer is one slice of a frame. Layers update and render bottom to top and
// see events top to bottom.
type Layer interface {
	OnAttach(e *Engine)
	OnDetach(e *Engine)
	OnUpdate(e *Engine, dt float64)
	OnRender(e *Engine, alpha float64)
	OnEvent(e *Engine, ev Event) bool // true stops propagation
}

// LayerStack keeps scene layers below overlay layers. Pushing a scene layer
// never covers an overlay.
type LayerStack struct {
	list     []Layer
	overlays int // count of overlay layers at the top of list
}

func (ls *LayerStack) Len() int { return len(ls.list) }

// Push inserts l above the scene layers and below every overlay.
func (ls *LayerStack) Push(l Layer) {
	i := len(ls.list) - ls.overlays
	ls.list = append(ls.list, nil)
	copy(ls.list[i+1:], ls.list[i:])
	ls.list[i] = l
}

// PushOverlay puts l on top of the stack.
func (ls *LayerStack) PushOverlay(l Layer) {
	ls.list = append(ls.list, l)
	ls.overlays++
}

// Remove takes l out of the stack and reports whether it was there.
func (ls *LayerStack) Remove(l Layer) bool {
	for i, x := range ls.list {
		if x != l {
			continue
		}
		if i >= len(ls.list)-ls.overlays {
			ls.overlays--
		}
		ls.list = append(ls.list[:i], ls.list[i+1:]...)
		return true
	}
	return false
}

// Pop removes the top layer.
func (ls *LayerStack) Pop() (Layer, bool) {
	if len(ls.list) == 0 {
		return nil, false
	}
	l := ls.list[len(ls.list)-1]
	ls.Remove(l)
	return l, true
}

func (ls *LayerStack) ForEach(f func(Layer)) {
	for _, l := range ls.list {
		f(l)
	}
}

// ForEachReverse walks top to bottom until f returns true.
func (ls *LayerStack) ForEachReverse(f func(Layer) bool) {
	for i := len(ls.list) - 1; i >= 0; i-- {
		if f(ls.list[i]) {
			return
		}
	}
}
