package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fosdem/glboot/lib/utils"
	yaml "github.com/goccy/go-yaml"
)

const (
	DefaultTitle       = "Window"
	DefaultWidth       = 800
	DefaultHeight      = 600
	DefaultClearColour = "#000000ff"
	DefaultLogLevel    = "info"
)

type Config struct {
	Window      WindowCfg
	Program     ProgramCfg
	DebugOutput *bool  `yaml:"debug_output"`
	ClearColour string `yaml:"clear_colour"`
	LogLevel    string `yaml:"log_level"`
	Api         *ApiCfg
}

type WindowCfg struct {
	Title         string
	Width         int
	Height        int
	CaptureCursor *bool `yaml:"capture_cursor"`
	Floating      *bool
	Resizable     *bool
}

type ProgramCfg struct {
	Vertex   CfgPath
	Fragment CfgPath
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %s", filename, err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			slog.Warn("could not close config", "path", filename, "err", err)
		}
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	UnmarshalBase = filepath.Dir(absFilename)

	m := yaml.NewDecoder(f)
	cfg := &Config{}
	err = m.Decode(cfg)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, err
}

// Default returns the configuration used when no file is given: an
// 800x600 window called "Window" with cursor capture and debug output.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	if c.Window.Title == "" {
		c.Window.Title = DefaultTitle
	}
	if c.Window.Width == 0 {
		c.Window.Width = DefaultWidth
	}
	if c.Window.Height == 0 {
		c.Window.Height = DefaultHeight
	}
	if c.Window.CaptureCursor == nil {
		c.Window.CaptureCursor = boolPtr(true)
	}
	if c.Window.Floating == nil {
		c.Window.Floating = boolPtr(true)
	}
	if c.Window.Resizable == nil {
		c.Window.Resizable = boolPtr(true)
	}
	if c.DebugOutput == nil {
		c.DebugOutput = boolPtr(true)
	}
	if c.ClearColour == "" {
		c.ClearColour = DefaultClearColour
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// boolOr reads an optional flag on a config that may not have had
// ApplyDefaults called on it.
func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func boolPtr(b bool) *bool {
	return &b
}

func (c *Config) Validate() error {
	err := c.Window.Validate()
	if err != nil {
		return fmt.Errorf("window is invalid: %w", err)
	}
	err = c.Program.Validate()
	if err != nil {
		return fmt.Errorf("program is invalid: %w", err)
	}
	if c.Api != nil {
		err = c.Api.Validate()
		if err != nil {
			return fmt.Errorf("api is invalid: %w", err)
		}
	}

	if !utils.ColourValidate(c.ClearColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.ClearColour)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

func (w *WindowCfg) Validate() error {
	if w.Width < 0 || w.Height < 0 {
		return fmt.Errorf("window size %dx%d must be positive", w.Width, w.Height)
	}
	return nil
}

func (p *ProgramCfg) Validate() error {
	if p.Vertex == "" {
		return fmt.Errorf("vertex shader path must be specified")
	}
	if p.Fragment == "" {
		return fmt.Errorf("fragment shader path must be specified")
	}
	return nil
}

func (a *ApiCfg) Validate() error {
	if a.Bind == "" {
		return fmt.Errorf("bind address must be specified")
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %q %dx%d (capture cursor: %t, floating: %t)\n",
		c.Window.Title, c.Window.Width, c.Window.Height,
		boolOr(c.Window.CaptureCursor, true), boolOr(c.Window.Floating, true)))

	b.WriteString("\nProgram:\n")
	b.WriteString(fmt.Sprintf("  vertex:   %s\n", c.Program.Vertex))
	b.WriteString(fmt.Sprintf("  fragment: %s\n", c.Program.Fragment))

	b.WriteString(fmt.Sprintf("\nDebug output: %t\n", boolOr(c.DebugOutput, true)))
	b.WriteString(fmt.Sprintf("Clear colour: %s\n", c.ClearColour))

	if c.Api != nil {
		b.WriteString(fmt.Sprintf("\nApi: %s\n", c.Api.Bind))
	}

	return b.String()
}
