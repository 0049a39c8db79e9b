package shell

import "github.com/hubastard/veil/engine/ui"

// Popup is a root element opened at a screen position and dismissed by a
// press outside of it.
type Popup struct {
	Root *ui.Element
	// Owner is the element that opens the popup. Presses on it do not
	// dismiss, so it can toggle the popup itself.
	Owner *ui.Element

	OnClose ui.Event[*Popup]

	open bool
}

func NewPopup(id string, style Style) (*Popup, error) {
	root, err := ui.New(id)
	if err != nil {
		return nil, err
	}
	root.Flow = ui.FlowVertical
	root.Padding = style.BodyPadding
	root.Gap = style.BodyGap
	style.backdrop(root)
	return &Popup{Root: root}, nil
}

func (p *Popup) IsOpen() bool { return p.open }

func (p *Popup) Add(children ...*ui.Element) error {
	for _, c := range children {
		if err := p.Root.AddChild(c); err != nil {
			return err
		}
	}
	return nil
}

// OpenAt shows the popup with its anchor point at pos.
func (p *Popup) OpenAt(pos ui.Vec2) {
	p.Root.Position = pos
	p.open = true
}

func (p *Popup) Close() {
	if !p.open {
		return
	}
	p.open = false
	p.Root.ReleasePointer()
	p.OnClose.Emit(p)
}

func (p *Popup) Toggle(pos ui.Vec2) {
	if p.open {
		p.Close()
	} else {
		p.OpenAt(pos)
	}
}

// Render draws an open popup, shifted back inside the viewport when it
// would overflow. A press outside the popup and its owner closes it after
// the frame.
func (p *Popup) Render(ctx *ui.Context) {
	if !p.open {
		return
	}
	p.keepInside(ctx)
	p.Root.Render(ctx, ui.Vec2{})
	if !p.open {
		p.Root.ReleasePointer()
		return
	}

	in := ctx.Input
	if in == nil {
		return
	}
	mouse := in.MousePosition()
	for b := ui.MouseLeft; b <= ui.MouseMiddle; b++ {
		if !in.IsMousePressed(b) {
			continue
		}
		if p.Root.ContentBox().Contains(mouse) || (p.Owner != nil && p.Owner.ContentBox().Contains(mouse)) {
			return
		}
		p.Close()
		return
	}
}

func (p *Popup) keepInside(ctx *ui.Context) {
	vp := ctx.Viewport
	if vp.IsEmpty() {
		return
	}
	box := bounds(ctx, p.Root)
	shift := func(lo, hi, vlo, vhi float32) float32 {
		switch {
		case hi > vhi:
			return max(vhi-hi, vlo-lo)
		case lo < vlo:
			return vlo - lo
		}
		return 0
	}
	p.Root.Position.X += shift(box.X, box.Right(), vp.X, vp.Right())
	p.Root.Position.Y += shift(box.Y, box.Bottom(), vp.Y, vp.Bottom())
}
