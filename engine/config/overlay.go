package config

import (
	"fmt"

	"github.com/hubastard/veil/engine/shell"
	"github.com/hubastard/veil/engine/ui"
	"github.com/hubastard/veil/engine/widgets"
)

// Overlay is the element forest built from a Config: one toolbar pinned to
// the viewport and the popups its buttons open.
type Overlay struct {
	Toolbar *widgets.UIToolbar
	Buttons map[string]*widgets.UIButton
	Popups  map[string]*shell.Popup

	// OnAction receives the action of buttons without a popup, and
	// "<popup>.<item>" when a popup item is picked.
	OnAction ui.Event[string]

	anchor ui.Anchor
	offset ui.Vec2
	order  []*shell.Popup
}

// Build creates the overlay trees. The configuration is validated first.
func (c Config) Build() (*Overlay, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	style, err := c.Theme.Style(c.Font.Size)
	if err != nil {
		return nil, err
	}
	anchor, _ := ui.ParseAnchor(c.Toolbar.Anchor)

	o := &Overlay{
		Toolbar: widgets.Toolbar("Toolbar"),
		Buttons: make(map[string]*widgets.UIButton, len(c.Toolbar.Buttons)),
		Popups:  make(map[string]*shell.Popup, len(c.Popups)),
		anchor:  anchor,
		offset:  ui.Vec2{X: c.Toolbar.X, Y: c.Toolbar.Y},
	}
	o.Toolbar.Anchor = anchor
	if c.Toolbar.Vertical {
		o.Toolbar.Vertical()
	}

	for _, pc := range c.Popups {
		p, err := o.buildPopup(pc, style)
		if err != nil {
			return nil, err
		}
		o.Popups[pc.ID] = p
		o.order = append(o.order, p)
	}

	for _, bc := range c.Toolbar.Buttons {
		b, err := o.buildButton(bc, style)
		if err != nil {
			return nil, err
		}
		if err := o.Toolbar.Add(b.Element); err != nil {
			return nil, err
		}
		o.Buttons[bc.ID] = b
	}
	return o, nil
}

func (o *Overlay) buildButton(bc ButtonConfig, style shell.Style) (*widgets.UIButton, error) {
	if _, dup := o.Buttons[bc.ID]; dup {
		return nil, fmt.Errorf("%w: duplicate button %q", ErrInvalid, bc.ID)
	}
	label := bc.Label
	if label == "" {
		label = bc.ID
	}
	b := widgets.Button(bc.ID, label).
		FontSize(style.FontSize).
		BgColor(style.TitleBar).
		TextColor(style.TitleText).
		Rounding(style.Rounding).
		Hint(bc.Tooltip)

	if bc.Popup == "" {
		action := bc.Action
		b.OnClick(func(ui.MouseEvent) { o.OnAction.Emit(action) })
		return b, nil
	}
	p := o.Popups[bc.Popup]
	p.Owner = b.Element
	b.OnClick(func(ui.MouseEvent) { p.Toggle(popupPoint(b.ContentBox(), p.Root.Anchor)) })
	return b, nil
}

func (o *Overlay) buildPopup(pc PopupConfig, style shell.Style) (*shell.Popup, error) {
	p, err := shell.NewPopup(pc.ID, style)
	if err != nil {
		return nil, err
	}
	p.Root.Anchor, _ = ui.ParseAnchor(pc.Anchor)
	p.Root.Size.Width = pc.Width
	for _, ic := range pc.Items {
		text := ic.Text
		if text == "" {
			text = ic.ID
		}
		item := widgets.Button(ic.ID, text).
			FontSize(style.FontSize).
			BgColor(style.Background).
			TextColor(style.TitleText).
			Hint(ic.Tooltip)
		item.Fit = true
		action := pc.ID + "." + ic.ID
		item.OnClick(func(ui.MouseEvent) {
			o.OnAction.Emit(action)
			p.Close()
		})
		if err := p.Add(item.Element); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// popupPoint is where a popup with the given anchor opens next to the
// button box b: above it for bottom-anchored popups, below otherwise.
func popupPoint(b ui.Rect, a ui.Anchor) ui.Vec2 {
	const gap = 4
	x := b.X
	switch {
	case a.Has(ui.AnchorRight):
		x = b.Right()
	case a.Has(ui.AnchorCenter):
		x = b.X + b.Width/2
	}
	if a.Has(ui.AnchorBottom) {
		return ui.Vec2{X: x, Y: b.Y - gap}
	}
	return ui.Vec2{X: x, Y: b.Bottom() + gap}
}

// Origin is the viewport point the toolbar is pinned to.
func (o *Overlay) Origin(vp ui.Rect) ui.Vec2 {
	p := ui.Vec2{X: vp.X, Y: vp.Y}
	switch {
	case o.anchor.Has(ui.AnchorRight):
		p.X = vp.Right()
	case o.anchor.Has(ui.AnchorCenter):
		p.X += vp.Width / 2
	}
	switch {
	case o.anchor.Has(ui.AnchorBottom):
		p.Y = vp.Bottom()
	case o.anchor.Has(ui.AnchorMiddle):
		p.Y += vp.Height / 2
	}
	return p.Add(o.offset)
}

// Render draws the toolbar, then every open popup above it.
func (o *Overlay) Render(ctx *ui.Context) {
	o.Toolbar.Render(ctx, o.Origin(ctx.Viewport))
	for _, p := range o.order {
		p.Render(ctx)
	}
}

// CloseAll dismisses every open popup.
func (o *Overlay) CloseAll() {
	for _, p := range o.order {
		p.Close()
	}
}
