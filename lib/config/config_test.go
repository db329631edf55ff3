package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fosdem/glboot/lib/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glboot.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFull(t *testing.T) {
	path := writeConfig(t, `
window:
  title: Cube
  width: 1280
  height: 720
  capture_cursor: false
debug_output: false
clear_colour: "#101020ff"
log_level: debug
program:
  vertex: shaders/cube.vert
  fragment: /opt/shaders/cube.frag
api:
  bind: 127.0.0.1:8000
`)
	cfg, err := config.Parse(path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cfg.Window.Title != "Cube" || cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if *cfg.Window.CaptureCursor {
		t.Error("capture_cursor should be false")
	}
	if !*cfg.Window.Floating {
		t.Error("floating should default to true")
	}
	if *cfg.DebugOutput {
		t.Error("debug_output should be false")
	}
	if cfg.ClearColour != "#101020ff" || cfg.LogLevel != "debug" {
		t.Errorf("clear colour %q, log level %q", cfg.ClearColour, cfg.LogLevel)
	}

	wantVert := filepath.Join(filepath.Dir(path), "shaders", "cube.vert")
	if string(cfg.Program.Vertex) != wantVert {
		t.Errorf("vertex = %s, want %s", cfg.Program.Vertex, wantVert)
	}
	if cfg.Program.Fragment != "/opt/shaders/cube.frag" {
		t.Errorf("fragment = %s", cfg.Program.Fragment)
	}
	if cfg.Api == nil || cfg.Api.Bind != "127.0.0.1:8000" {
		t.Errorf("api = %+v", cfg.Api)
	}
}

func TestParseDefaults(t *testing.T) {
	path := writeConfig(t, `
program:
  vertex: a.vert
  fragment: a.frag
`)
	cfg, err := config.Parse(path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cfg.Window.Title != "Window" || cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("window defaults = %+v", cfg.Window)
	}
	if !*cfg.Window.CaptureCursor || !*cfg.Window.Resizable || !*cfg.DebugOutput {
		t.Error("boolean defaults should be true")
	}
	if cfg.ClearColour != config.DefaultClearColour {
		t.Errorf("clear colour = %s", cfg.ClearColour)
	}
	if cfg.Api != nil {
		t.Error("api should be disabled by default")
	}
	if !strings.Contains(cfg.String(), "800x600") {
		t.Errorf("String() = %q", cfg.String())
	}
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"no program": `
window: {title: x}
`,
		"no fragment": `
program: {vertex: a.vert}
`,
		"bad colour": `
clear_colour: red
program: {vertex: a.vert, fragment: a.frag}
`,
		"negative size": `
window: {width: -1}
program: {vertex: a.vert, fragment: a.frag}
`,
		"empty bind": `
api: {enable_profiler: true}
program: {vertex: a.vert, fragment: a.frag}
`,
		"bad level": `
log_level: chatty
program: {vertex: a.vert, fragment: a.frag}
`,
		"not yaml": `program: [`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Parse(writeConfig(t, content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := config.Parse(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error")
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if cfg.Window.Width != config.DefaultWidth || cfg.Window.Title != config.DefaultTitle {
		t.Errorf("unexpected defaults %+v", cfg.Window)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("default config without a program should not validate")
	}
}

func TestStringWithoutDefaults(t *testing.T) {
	cfg := &config.Config{}
	cfg.Window.Title = "bare"
	got := cfg.String()
	if !strings.Contains(got, "capture cursor: true") || !strings.Contains(got, "Debug output: true") {
		t.Errorf("String() = %q", got)
	}

	cfg.ApplyDefaults()
	if cfg.Window.Resizable == nil || !*cfg.Window.Resizable || cfg.Window.Title != "bare" {
		t.Errorf("defaults not applied: %+v", cfg.Window)
	}
}

func TestParseExample(t *testing.T) {
	cfg, err := config.Parse(filepath.Join("..", "..", "example", "glboot.yaml"))
	if err != nil {
		t.Fatalf("example config does not parse: %s", err)
	}
	for _, p := range []config.CfgPath{cfg.Program.Vertex, cfg.Program.Fragment} {
		if !filepath.IsAbs(p.String()) {
			t.Errorf("%s was not resolved to an absolute path", p)
		}
		if _, err := os.Stat(p.String()); err != nil {
			t.Errorf("example shader missing: %s", err)
		}
	}
}
