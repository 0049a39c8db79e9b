package core

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

const (
	tick     = time.Second / 60
	maxSteps = 10 // updates per frame before the clock drops time
)

// clock splits wall time into fixed update ticks and a render blend factor.
type clock struct {
	prev  time.Time
	accum time.Duration
}

// advance returns the elapsed frame time and how many ticks to run.
func (c *clock) advance(now time.Time) (time.Duration, int) {
	frame := now.Sub(c.prev)
	c.prev = now
	c.accum += frame
	n := min(int(c.accum/tick), maxSteps)
	c.accum -= time.Duration(n) * tick
	if n == maxSteps {
		c.accum %= tick
	}
	return frame, n
}

func (c *clock) alpha() float64 { return float64(c.accum) / float64(tick) }

// Run opens the window and renderer, then drives app and the layer stack
// until the window closes. Updates run at a fixed 60 Hz and renders receive
// the blend factor toward the next tick.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}
	rend, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{Window: win, Renderer: rend, Input: NewInput(), start: time.Now()}
	// until the window reports its content scale, guess it from the size
	if cfg.Width > 0 && w > cfg.Width {
		eng.Input.SetContentScale(float64(w) / float64(cfg.Width))
	}
	win.SetEventCallback(func(ev Event) { eng.Dispatch(app, ev) })
	app.OnStart(eng)

	clk := clock{prev: time.Now()}
	dt := tick.Seconds()
	bg := cfg.ClearColor
	for !win.ShouldClose() {
		frame, steps := clk.advance(time.Now())
		eng.frame = frame
		win.PollEvents()

		for range steps {
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
			app.OnUpdate(eng, dt)
		}

		alpha := clk.alpha()
		rend.Clear(bg[0], bg[1], bg[2], bg[3])
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng, alpha) })
		app.OnRender(eng, alpha)
		win.SwapBuffers()
	}

	for eng.Layers.Len() > 0 {
		l, _ := eng.Layers.Pop()
		l.OnDetach(eng)
	}
	app.OnShutdown(eng)
	log.Printf("core: exit after %s", eng.Uptime().Round(time.Millisecond))
	return nil
}

// Dispatch feeds ev to the input state, then offers it to the layers top to
// bottom and finally to app if no layer handled it. Zero-size resizes, sent
// while minimized, stop at the input state.
func (e *Engine) Dispatch(app App, ev Event) {
	e.Input.Handle(ev)
	switch v := ev.(type) {
	case EventResize:
		if v.W < 1 || v.H < 1 {
			return
		}
		e.Renderer.Resize(v.W, v.H)
	case EventCloseRequested:
		e.Window.RequestClose()
	}
	handled := false
	e.Layers.ForEachReverse(func(l Layer) bool {
		handled = l.OnEvent(e, ev)
		return handled
	})
	if !handled {
		app.OnEvent(e, ev)
	}
}
