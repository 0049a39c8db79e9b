package main

import (
	"log"

	"github.com/hubastard/veil/engine/assets"
	backend "github.com/hubastard/veil/engine/backend/r2d"
	"github.com/hubastard/veil/engine/clip"
	"github.com/hubastard/veil/engine/config"
	"github.com/hubastard/veil/engine/core"
	"github.com/hubastard/veil/engine/gfx/renderer2d"
	"github.com/hubastard/veil/engine/profiler"
	"github.com/hubastard/veil/engine/scene"
	"github.com/hubastard/veil/engine/text"
	"github.com/hubastard/veil/engine/ui"
	"github.com/hubastard/veil/engine/widgets"
)

// LayerOverlay draws the configured toolbar and popups, a profiler toggle
// icon in the top-right corner and the debug window.
type LayerOverlay struct {
	cam     *scene.Camera
	scale   float32
	r2d     *renderer2d.Renderer2D
	overlay *config.Overlay
	debug   *DebugWindow
	toggle  *widgets.UIIcon
	ctx     ui.Context
	stats   renderer2d.Statistics
}

func NewLayerOverlay(cfg config.Config, r *renderer2d.Renderer2D, font *text.Font, occluders clip.Solver) (*LayerOverlay, error) {
	overlay, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	style, err := cfg.Theme.Style(cfg.Font.Size)
	if err != nil {
		return nil, err
	}
	l := &LayerOverlay{r2d: r, overlay: overlay, scale: cfg.Window.UIScale}
	if l.debug, err = NewDebugWindow(style, &l.stats); err != nil {
		return nil, err
	}
	// the scene reports occluders in framebuffer pixels
	l.debug.Clip = clip.Scaled{Solver: occluders, Factor: l.scale}
	l.ctx.DrawList = backend.New(r, font)

	overlay.OnAction.Subscribe(func(action string) {
		if action == "debug" {
			l.debug.Toggle()
			return
		}
		log.Printf("overlay: action %s", action)
	})
	return l, nil
}

func (l *LayerOverlay) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewCamera(w, h)
	l.cam.SetScale(l.scale)
	l.debug.engine = e
	l.debug.Root.Position = ui.Vec2{X: 24, Y: 24}

	img, err := assets.LoadPNG("icons.png")
	if err != nil {
		log.Printf("overlay: no icons: %v", err)
		return
	}
	tex, err := e.Renderer.CreateTexture(core.TextureDesc{
		Width:     img.Width,
		Height:    img.Height,
		Format:    core.TextureRGBA8,
		Pixels:    img.Pix,
		MinFilter: "linear",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		log.Printf("overlay: icon texture: %v", err)
		return
	}
	icons, err := renderer2d.NewAtlas(tex, img.Width, img.Height, 16)
	if err != nil {
		log.Printf("overlay: icons: %v", err)
		return
	}
	gear, _ := icons.Icon(0)
	l.toggle = widgets.Icon("ProfilerToggle", gear, 24, 24).Hint("Profiler (F1)").Anchored(ui.AnchorTopRight)
	l.toggle.Position = ui.Vec2{X: -12, Y: 12}
	l.toggle.Events.Click.Subscribe(func(ui.MouseEvent) { l.debug.Toggle() })
}

func (l *LayerOverlay) OnDetach(e *core.Engine) {
	l.overlay.CloseAll()
	l.debug.Close()
}

func (l *LayerOverlay) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerOverlay) OnRender(e *core.Engine, alpha float64) {
	in := e.Input.Sample(e.FrameTime())
	in.Mouse = l.cam.ToUI(in.Mouse)
	l.ctx.Input = in
	l.ctx.Viewport = l.cam.Viewport()

	l.r2d.BeginScene(l.cam.VP(), l.cam.Scale())
	l.overlay.Render(&l.ctx)
	if l.toggle != nil {
		l.toggle.Render(&l.ctx, ui.Vec2{X: l.ctx.Viewport.Right()})
	}
	l.debug.Render(&l.ctx)
	l.r2d.EndScene()
	l.stats = l.r2d.Stats()
}

func (l *LayerOverlay) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if !v.Down {
			return false
		}
		switch {
		case v.Key == core.KeyF1:
			l.debug.Toggle()
			return true
		case v.Key == core.KeyEscape:
			l.overlay.CloseAll()
			return true
		case v.Key == core.KeyP && v.Mods&core.ModCtrl != 0:
			if path, err := profiler.Dump(); err == nil {
				log.Println("profile dump:", path)
			} else {
				log.Println("profile dump error:", err)
			}
			return true
		}
	case core.EventResize:
		l.cam.Resize(v.W, v.H)
	}
	return false
}
