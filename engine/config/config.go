// Package config loads overlay settings from TOML and builds the toolbar
// and popup element trees they describe.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/hubastard/veil/engine/colors"
	"github.com/hubastard/veil/engine/core"
	"github.com/hubastard/veil/engine/shell"
	"github.com/hubastard/veil/engine/text"
	"github.com/hubastard/veil/engine/ui"
	"github.com/pelletier/go-toml/v2"
)

var ErrInvalid = errors.New("config: invalid value")

// Config is the overlay.toml document.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Font    FontConfig    `toml:"font"`
	Theme   ThemeConfig   `toml:"theme"`
	Toolbar ToolbarConfig `toml:"toolbar"`
	Popups  []PopupConfig `toml:"popups"`
}

type WindowConfig struct {
	Title       string `toml:"title"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	VSync       bool   `toml:"vsync"`
	Transparent bool   `toml:"transparent"`
	ClearColor  string `toml:"clear_color"`
	// Overlay zoom; 1 draws one UI unit per framebuffer pixel
	UIScale float32 `toml:"ui_scale"`
}

type FontConfig struct {
	// TTF/OTF file; empty uses the embedded Go Regular face
	Path string  `toml:"path"`
	Size float32 `toml:"size"`
}

type ThemeConfig struct {
	Background string  `toml:"background"`
	Accent     string  `toml:"accent"`
	Text       string  `toml:"text"`
	Rounding   float32 `toml:"rounding"`
}

type ToolbarConfig struct {
	// Viewport point the toolbar is pinned to, e.g. "bottom|center"
	Anchor   string         `toml:"anchor"`
	X        float32        `toml:"x"`
	Y        float32        `toml:"y"`
	Vertical bool           `toml:"vertical"`
	Buttons  []ButtonConfig `toml:"buttons"`
}

type ButtonConfig struct {
	ID      string `toml:"id"`
	Label   string `toml:"label"`
	Tooltip string `toml:"tooltip"`
	// Popup to toggle on click. Without one the button emits its Action.
	Popup  string `toml:"popup"`
	Action string `toml:"action"`
}

type PopupConfig struct {
	ID string `toml:"id"`
	// Corner of the popup placed at the button, e.g. "bottom|left" to open upwards
	Anchor string       `toml:"anchor"`
	Width  float32      `toml:"width"`
	Items  []ItemConfig `toml:"items"`
}

type ItemConfig struct {
	ID      string `toml:"id"`
	Text    string `toml:"text"`
	Tooltip string `toml:"tooltip"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:       "veil",
			Width:       1280,
			Height:      720,
			VSync:       true,
			Transparent: false,
			ClearColor:  "#1e2a36",
			UIScale:     1,
		},
		Font: FontConfig{Size: 16},
		Theme: ThemeConfig{
			Background: "#14191fe6",
			Accent:     "#2b6cb0",
			Text:       "#ffffff",
			Rounding:   4,
		},
		Toolbar: ToolbarConfig{
			Anchor: "bottom|center",
			Y:      -12,
			Buttons: []ButtonConfig{
				{ID: "gearsets", Label: "Gearsets", Tooltip: "Switch gearset", Popup: "gearsets"},
				{ID: "markers", Label: "Markers", Tooltip: "Place a waymark", Popup: "markers"},
				{ID: "debug", Label: "Debug", Tooltip: "Toggle the profiler window", Action: "debug"},
			},
		},
		Popups: []PopupConfig{
			{ID: "gearsets", Anchor: "bottom|left", Width: 160, Items: []ItemConfig{
				{ID: "tank", Text: "Paladin"},
				{ID: "healer", Text: "White Mage"},
				{ID: "crafter", Text: "Carpenter", Tooltip: "Crafting set"},
			}},
			{ID: "markers", Anchor: "bottom|left", Width: 120, Items: []ItemConfig{
				{ID: "a", Text: "Waymark A"},
				{ID: "b", Text: "Waymark B"},
				{ID: "clear", Text: "Clear all"},
			}},
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	// Lists present in the file replace the default lists rather than
	// merging into them element by element.
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, ok := doc["popups"]; ok {
		cfg.Popups = nil
	}
	if tb, ok := doc["toolbar"].(map[string]any); ok {
		if _, ok := tb["buttons"]; ok {
			cfg.Toolbar.Buttons = nil
		}
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Validate checks colors, anchors, element ids and popup references.
func (c Config) Validate() error {
	for _, s := range []string{c.Window.ClearColor, c.Theme.Background, c.Theme.Accent, c.Theme.Text} {
		if _, err := parseColor(s); err != nil {
			return err
		}
	}
	if _, err := parseAnchor(c.Toolbar.Anchor); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.UIScale <= 0 {
		return fmt.Errorf("%w: ui scale %v", ErrInvalid, c.Window.UIScale)
	}
	popups := make(map[string]bool, len(c.Popups))
	for _, p := range c.Popups {
		if _, err := parseAnchor(p.Anchor); err != nil {
			return err
		}
		if err := validID(p.ID); err != nil {
			return err
		}
		if popups[p.ID] {
			return fmt.Errorf("%w: duplicate popup %q", ErrInvalid, p.ID)
		}
		for _, it := range p.Items {
			if err := validID(it.ID); err != nil {
				return err
			}
		}
		popups[p.ID] = true
	}
	for _, b := range c.Toolbar.Buttons {
		if err := validID(b.ID); err != nil {
			return err
		}
		if b.Popup != "" && !popups[b.Popup] {
			return fmt.Errorf("%w: button %q opens unknown popup %q", ErrInvalid, b.ID, b.Popup)
		}
	}
	return nil
}

// Core converts the window section into engine settings.
func (w WindowConfig) Core() (core.Config, error) {
	clearColor, err := parseColor(w.ClearColor)
	if err != nil {
		return core.Config{}, err
	}
	return core.Config{
		Title:       w.Title,
		Width:       w.Width,
		Height:      w.Height,
		VSync:       w.VSync,
		Transparent: w.Transparent,
		ClearColor:  clearColor,
	}, nil
}

// Load rasterizes the configured font. r may be nil for measuring only.
func (f FontConfig) Load(r core.Renderer) (*text.Font, error) {
	size := f.Size
	if size <= 0 {
		size = 16
	}
	if f.Path == "" {
		return text.LoadDefault(r, size)
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return text.Load(r, data, size)
}

// Style derives the window and popup chrome from the theme.
func (t ThemeConfig) Style(fontSize float32) (shell.Style, error) {
	s := shell.DefaultStyle()
	var err error
	if s.Background, err = parseColor(t.Background); err != nil {
		return s, err
	}
	if s.TitleBar, err = parseColor(t.Accent); err != nil {
		return s, err
	}
	if s.TitleText, err = parseColor(t.Text); err != nil {
		return s, err
	}
	s.Rounding = t.Rounding
	if fontSize > 0 {
		s.FontSize = fontSize
	}
	return s, nil
}

func parseColor(s string) (colors.Color, error) {
	c, err := colors.ParseHex(s)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return c, nil
}

func validID(id string) error {
	_, err := ui.New(id)
	return err
}

func parseAnchor(s string) (ui.Anchor, error) {
	a, ok := ui.ParseAnchor(s)
	if !ok {
		return a, fmt.Errorf("%w: anchor %q", ErrInvalid, s)
	}
	return a, nil
}
