// Command overlay runs the UI overlay over a stand-in game scene in a GLFW
// window. Settings come from overlay.toml in the working directory.
package main

import (
	"flag"
	"log"

	"github.com/hubastard/veil/engine/assets"
	"github.com/hubastard/veil/engine/clip"
	"github.com/hubastard/veil/engine/config"
	"github.com/hubastard/veil/engine/core"
	glbackend "github.com/hubastard/veil/engine/gfx/gl"
	"github.com/hubastard/veil/engine/gfx/renderer2d"
	"github.com/hubastard/veil/engine/platform"
	"github.com/hubastard/veil/engine/profiler"
	"github.com/hubastard/veil/engine/text"
)

type App struct {
	cfg  config.Config
	r2d  *renderer2d.Renderer2D
	font *text.Font

	// native windows of the game that the overlay must not draw over
	occluders clip.Occluders
}

func (a *App) OnStart(e *core.Engine) {
	prog, err := assets.LoadProgram("renderer2d")
	if err != nil {
		log.Fatal(err)
	}
	a.r2d, err = renderer2d.New(e.Renderer, prog.Vertex, prog.Fragment, 10000)
	if err != nil {
		log.Fatal(err)
	}

	a.font, err = a.cfg.Font.Load(e.Renderer)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("GL: %s / %s / %s", e.Renderer.GPUVendor(), e.Renderer.GPURenderer(), e.Renderer.GPUVersion())

	overlay, err := NewLayerOverlay(a.cfg, a.r2d, a.font, &a.occluders)
	if err != nil {
		log.Fatal(err)
	}
	e.PushOverlay(overlay)
	e.PushLayer(&LayerScene{r2d: a.r2d, occluders: &a.occluders})
}

func (a *App) OnUpdate(e *core.Engine, dt float64)    {}
func (a *App) OnRender(e *core.Engine, alpha float64) {}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	if k, ok := ev.(core.EventKey); ok && k.Down && k.Key == core.KeyQ && k.Mods&core.ModCtrl != 0 {
		e.Window.RequestClose()
	}
}

func (a *App) OnShutdown(e *core.Engine) { a.font.Close() }

func main() {
	path := flag.String("config", "overlay.toml", "overlay settings file")
	profile := flag.Bool("profile", true, "collect per-scope frame timings")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatal(err)
	}
	coreCfg, err := cfg.Window.Core()
	if err != nil {
		log.Fatal(err)
	}
	profiler.Enable(*profile)

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(&App{cfg: cfg}, coreCfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
