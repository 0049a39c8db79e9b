package ui

import "time"

const (
	// ClickThreshold is the longest press that still counts as a click.
	ClickThreshold = 500 * time.Millisecond
	// TooltipDelay is how long the pointer must hover before a tooltip shows.
	TooltipDelay = 500 * time.Millisecond
)

type pointerState struct {
	mouseOver bool
	down      [mouseButtonCount]bool
	held      [mouseButtonCount]time.Duration
	hover     time.Duration
	at        Vec2 // last pointer position seen
}

func (p *pointerState) reset() { *p = pointerState{} }

// IsInteractive reports whether the element takes part in hit-testing. Purely
// decorative elements (no pointer listeners, no tooltip) are skipped.
func (e *Element) IsInteractive() bool {
	return e.Tooltip != "" || e.Events.hasPointerListeners()
}

func (e *Element) IsMouseOver() bool { return e.pointer.mouseOver }

// IsMouseDown reports whether b was pressed on the element and not yet released.
func (e *Element) IsMouseDown(b MouseButton) bool {
	return b >= 0 && b < mouseButtonCount && e.pointer.down[b]
}

// IsTooltipVisible reports whether the element has hovered long enough to
// show its tooltip.
func (e *Element) IsTooltipVisible() bool {
	return e.Tooltip != "" && e.pointer.mouseOver && e.pointer.hover >= TooltipDelay
}

// HandleInput advances the pointer state machine of e by one frame. Each
// button moves Idle -> Hovered -> Pressed -> Idle; a release over the content
// box within ClickThreshold of the press also fires Click. Losing hover while a
// button is held synthesizes the release without a click.
func (e *Element) HandleInput(in Input) {
	if in == nil {
		return
	}
	p := &e.pointer
	if !e.Visible || e.Disabled || !e.IsInteractive() {
		if p.mouseOver {
			e.leave()
		}
		return
	}

	mouse := in.MousePosition()
	p.at = mouse
	dt := in.DeltaTime()
	over := e.contentBox.Contains(mouse)

	switch {
	case over && !p.mouseOver:
		p.mouseOver = true
		p.hover = 0
		e.Events.MouseEnter.Emit(e)
	case !over && p.mouseOver:
		e.leave()
		return
	case !over:
		return
	default:
		p.hover += dt
	}

	for b := MouseButton(0); b < mouseButtonCount; b++ {
		switch {
		case p.down[b] && in.IsMouseReleased(b):
			p.down[b] = false
			ev := MouseEvent{Element: e, Button: b, Position: mouse}
			e.Events.MouseUp.Emit(ev)
			if p.held[b] < ClickThreshold {
				e.Events.Click.Emit(ev)
			}
		case p.down[b]:
			p.held[b] += dt
		case in.IsMousePressed(b):
			p.down[b] = true
			p.held[b] = 0
			e.Events.MouseDown.Emit(MouseEvent{Element: e, Button: b, Position: mouse})
		}
	}
}

// ReleasePointer makes e and its descendants leave as if the pointer had
// moved away, releasing held buttons without a click. Elements that stop
// being rendered are released so their next press starts fresh.
func (e *Element) ReleasePointer() {
	if e.pointer.mouseOver {
		e.leave()
	}
	for _, c := range e.children {
		c.ReleasePointer()
	}
}

func (e *Element) leave() {
	p := &e.pointer
	mouse := p.at
	for b := MouseButton(0); b < mouseButtonCount; b++ {
		if p.down[b] {
			p.down[b] = false
			e.Events.MouseUp.Emit(MouseEvent{Element: e, Button: b, Position: mouse})
		}
	}
	p.mouseOver = false
	p.hover = 0
	e.Events.MouseLeave.Emit(e)
}
