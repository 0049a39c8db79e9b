package main

import (
	"math"

	"github.com/hubastard/veil/engine/clip"
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/core"
	"github.com/hubastard/veil/engine/gfx/renderer2d"
	"github.com/hubastard/veil/engine/profiler"
	"github.com/hubastard/veil/engine/scene"
	"github.com/hubastard/veil/engine/ui"
)

// LayerScene stands in for the game: a scrolling tile field and a native
// chat window in the bottom-left corner that occludes the overlay.
type LayerScene struct {
	cam       *scene.Camera
	r2d       *renderer2d.Renderer2D
	occluders *clip.Occluders
	t         float32
}

const tile = 48

var (
	tileA      = colors.Color{0.16, 0.22, 0.18, 1}
	tileB      = colors.Color{0.19, 0.26, 0.21, 1}
	chatWindow = colors.Color{0.05, 0.05, 0.08, 0.95}
)

func (l *LayerScene) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewCamera(w, h)
}

func (l *LayerScene) OnDetach(e *core.Engine) {}

func (l *LayerScene) OnUpdate(e *core.Engine, dt float64) { l.t += float32(dt) }

func (l *LayerScene) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("scene.render")
	defer end()

	w, h := l.cam.Width(), l.cam.Height()
	chat := ui.NewRect(12, h-212, 420, 200)
	l.occluders.Reset()
	l.occluders.Add(chat)

	l.r2d.BeginScene(l.cam.VP(), l.cam.Scale())
	shift := float32(math.Mod(float64(l.t*12), tile*2))
	for y := float32(-tile * 2); y < h; y += tile {
		for x := float32(-tile * 2); x < w+tile*2; x += tile {
			c := tileA
			if int((x+y)/tile)%2 == 0 {
				c = tileB
			}
			l.r2d.DrawRect(x+shift, y+shift, tile, tile, c)
		}
	}
	l.r2d.DrawRect(chat.X, chat.Y, chat.Width, chat.Height, chatWindow)
	l.r2d.DrawRectOutline(chat.X, chat.Y, chat.Width, chat.Height, 1, colors.Gray)
	l.r2d.EndScene()
}

func (l *LayerScene) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventResize); ok {
		l.cam.Resize(v.W, v.H)
	}
	return false
}
