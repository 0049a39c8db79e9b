package ui

import "time"

// Input is the host's per-frame view of the pointer.
type Input interface {
	MousePosition() Vec2
	IsMouseDown(b MouseButton) bool
	IsMousePressed(b MouseButton) bool  // went down this frame
	IsMouseReleased(b MouseButton) bool // went up this frame
	DeltaTime() time.Duration
}

// InputState is an Input sampled once per frame. Advance derives the
// pressed/released edges from the previous sample.
type InputState struct {
	Mouse    Vec2
	Delta    time.Duration
	down     [mouseButtonCount]bool
	pressed  [mouseButtonCount]bool
	released [mouseButtonCount]bool
}

// Advance records this frame's pointer sample.
func (s *InputState) Advance(mouse Vec2, down [3]bool, dt time.Duration) {
	s.Mouse = mouse
	s.Delta = dt
	for b := range s.down {
		s.pressed[b] = down[b] && !s.down[b]
		s.released[b] = !down[b] && s.down[b]
		s.down[b] = down[b]
	}
}

func (s *InputState) MousePosition() Vec2      { return s.Mouse }
func (s *InputState) DeltaTime() time.Duration { return s.Delta }

func (s *InputState) IsMouseDown(b MouseButton) bool {
	return b >= 0 && b < mouseButtonCount && s.down[b]
}

func (s *InputState) IsMousePressed(b MouseButton) bool {
	return b >= 0 && b < mouseButtonCount && s.pressed[b]
}

func (s *InputState) IsMouseReleased(b MouseButton) bool {
	return b >= 0 && b < mouseButtonCount && s.released[b]
}
