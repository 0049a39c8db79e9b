package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/core"
	"github.com/hubastard/veil/engine/gfx/renderer2d"
	"github.com/hubastard/veil/engine/profiler"
	"github.com/hubastard/veil/engine/shell"
	"github.com/hubastard/veil/engine/ui"
	"github.com/hubastard/veil/engine/widgets"
)

// DebugWindow shows frame timing, renderer counters and profiler scopes.
// The text is refreshed right before each layout.
type DebugWindow struct {
	*shell.Window
	engine *core.Engine
	stats  *renderer2d.Statistics
	lines  map[string]*widgets.UILabel
}

var debugSections = []struct {
	title string
	keys  []string
}{
	{"Frame", []string{"frame"}},
	{"2D Renderer", []string{"draws", "quads", "culled", "textures"}},
	{"UI", []string{"layout", "render", "frames"}},
	{"Memory", []string{"heap", "allocs", "goroutines"}},
	{"GPU", []string{"vendor", "renderer", "version"}},
}

func NewDebugWindow(style shell.Style, stats *renderer2d.Statistics) (*DebugWindow, error) {
	w, err := shell.NewWindow("Debug", "Profiler", style)
	if err != nil {
		return nil, err
	}
	d := &DebugWindow{Window: w, stats: stats, lines: map[string]*widgets.UILabel{}}

	for i, s := range debugSections {
		header := widgets.Label(fmt.Sprintf("Section%d", i), s.title).Color(colors.Yellow).FontSize(style.FontSize)
		if i > 0 {
			header.Margin.Top = 8
		}
		if err := w.Add(header.Element); err != nil {
			return nil, err
		}
		for _, k := range s.keys {
			l := widgets.Label(k, "").FontSize(style.FontSize * 0.875)
			l.Margin.Left = 12
			if err := w.Add(l.Element); err != nil {
				return nil, err
			}
			d.lines[k] = l
		}
	}
	w.Body.Events.BeforeCompute.Subscribe(func(*ui.Element) { d.refresh() })
	return d, nil
}

func (d *DebugWindow) set(key, format string, args ...any) {
	d.lines[key].SetText(fmt.Sprintf(format, args...))
}

func (d *DebugWindow) refresh() {
	if d.engine != nil {
		ft := d.engine.FrameTime()
		fps := 0.0
		if ft > 0 {
			fps = float64(time.Second) / float64(ft)
		}
		d.set("frame", "%.3f ms (%.1f FPS)", float64(ft)/float64(time.Millisecond), fps)
		d.set("vendor", "Vendor: %s", d.engine.Renderer.GPUVendor())
		d.set("renderer", "Renderer: %s", d.engine.Renderer.GPURenderer())
		d.set("version", "Version: %s", d.engine.Renderer.GPUVersion())
	}
	d.set("draws", "Draw Calls: %d", d.stats.DrawCalls)
	d.set("quads", "Quads: %d (%d vertices)", d.stats.QuadCount, d.stats.TotalVertexCount())
	d.set("culled", "Culled: %d", d.stats.Culled)
	d.set("textures", "Textures: %d", d.stats.TextureCount)
	d.set("frames", "Window frame: %s", d.LastFrame())

	d.set("layout", "Layout: -")
	d.set("render", "Render: -")
	for _, s := range profiler.Snapshot() {
		switch s.Name {
		case "ui.layout":
			d.set("layout", "Layout: %v mean, %v max", s.Mean(), s.Max)
		case "ui.render":
			d.set("render", "Render: %v mean, %v max", s.Mean(), s.Max)
		}
	}

	d.set("heap", "Usage: %.3f MB", float64(profiler.MemoryUsage())/(1<<20))
	d.set("allocs", "Allocs: %d", profiler.MemoryAllocs())
	d.set("goroutines", "Goroutines: %d", runtime.NumGoroutine())
}
