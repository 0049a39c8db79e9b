// Command overlay-term previews the overlay in a terminal. The mouse drives
// the toolbar and popups; Esc closes popups, q quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hubastard/veil/engine/backend/term"
	"github.com/hubastard/veil/engine/clip"
	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/config"
	"github.com/hubastard/veil/engine/shell"
	"github.com/hubastard/veil/engine/ui"
	"github.com/hubastard/veil/engine/widgets"
)

const historySize = 5

type preview struct {
	screen    tcell.Screen
	dl        *term.DrawList
	in        *term.Input
	overlay   *config.Overlay
	history   *shell.Window
	lines     []*widgets.UILabel
	actions   []string
	occluders clip.Occluders
	ctx       ui.Context
}

func newPreview(screen tcell.Screen, cfg config.Config) (*preview, error) {
	overlay, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	style, err := cfg.Theme.Style(cfg.Font.Size)
	if err != nil {
		return nil, err
	}
	history, err := shell.NewWindow("History", "Actions", style)
	if err != nil {
		return nil, err
	}
	p := &preview{screen: screen, dl: term.New(screen), in: term.NewInput(), overlay: overlay, history: history}
	for i := range historySize {
		l := widgets.Label(fmt.Sprintf("Line%d", i), "")
		if err := history.Add(l.Element); err != nil {
			return nil, err
		}
		p.lines = append(p.lines, l)
	}
	history.Clip = &p.occluders
	history.Root.Position = ui.Vec2{X: 16, Y: 16}
	history.Open()

	overlay.OnAction.Subscribe(p.record)
	p.ctx.DrawList = p.dl
	return p, nil
}

func (p *preview) record(action string) {
	p.actions = append(p.actions, action)
	if len(p.actions) > historySize {
		p.actions = p.actions[1:]
	}
	for i, l := range p.lines {
		l.SetText("")
		if i < len(p.actions) {
			l.SetText(p.actions[len(p.actions)-1-i])
		}
	}
	if !p.history.IsOpen() {
		p.history.Open()
	}
}

// frame draws one frame: a backdrop with a fake native panel, then the overlay.
func (p *preview) frame(dt time.Duration) {
	p.ctx.Input = p.in.Sample(dt)
	p.ctx.Viewport = p.dl.Viewport()
	vp := p.ctx.Viewport

	panel := ui.NewRect(vp.Right()-320, 16, 304, 160)
	p.occluders.Reset()
	p.occluders.Add(panel)

	p.screen.Clear()
	p.dl.FillRect(vp, colors.Color{0.12, 0.18, 0.14, 1}, 0)
	p.dl.FillRect(panel, colors.Color{0.05, 0.05, 0.08, 1}, 0)
	p.dl.StrokeRect(panel, colors.Gray, 1, 0)
	p.dl.Text(ui.Vec2{X: panel.X + 16, Y: panel.Y + 16}, "native panel", 0, colors.Gray)

	p.overlay.Render(&p.ctx)
	p.history.Render(&p.ctx)
	p.screen.Show()
}

// handle consumes one terminal event and reports whether to keep running.
func (p *preview) handle(ev tcell.Event) bool {
	if p.in.Handle(ev) {
		return true
	}
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyEscape:
			p.overlay.CloseAll()
		case ev.Rune() == 'h':
			p.history.Toggle()
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	p, err := newPreview(screen, cfg)
	if err != nil {
		return err
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !p.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			p.frame(now.Sub(last))
			last = now
		}
	}
}

func main() {
	path := flag.String("config", "overlay.toml", "overlay settings file")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	// the terminal is busy drawing, so logs go to a file or nowhere
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(*path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
