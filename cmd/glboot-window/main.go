package main

import (
	"flag"
	"log"
	"log/slog"
	"runtime"

	"github.com/fosdem/glboot/lib/bootstrap"
	"github.com/fosdem/glboot/lib/config"
	glbootlog "github.com/fosdem/glboot/lib/log"
)

func main() {
	titlePtr := flag.String("title", config.DefaultTitle, "Window title")
	widthPtr := flag.Uint("width", config.DefaultWidth, "Width of the window")
	heightPtr := flag.Uint("height", config.DefaultHeight, "Height of the window")
	vertPtr := flag.String("vert", "", "Vertex shader source file")
	fragPtr := flag.String("frag", "", "Fragment shader source file")
	noDebugPtr := flag.Bool("no-debug", false, "Do not enable GL debug output")
	freeCursorPtr := flag.Bool("free-cursor", false, "Do not capture the cursor")
	verbosePtr := flag.Bool("v", false, "Log debug messages")
	flag.Parse()

	runtime.LockOSThread()

	level := slog.LevelInfo
	if *verbosePtr {
		level = slog.LevelDebug
	}
	glbootlog.Setup(level)

	cfg := &config.Config{}
	cfg.Window.Title = *titlePtr
	cfg.Window.Width = int(*widthPtr)
	cfg.Window.Height = int(*heightPtr)
	cfg.Program.Vertex = config.CfgPath(*vertPtr)
	cfg.Program.Fragment = config.CfgPath(*fragPtr)
	debugOutput := !*noDebugPtr
	cfg.DebugOutput = &debugOutput
	captureCursor := !*freeCursorPtr
	cfg.Window.CaptureCursor = &captureCursor
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err != nil {
		log.Fatalf("invalid arguments: %s", err)
	}

	log.Printf("Opening %dx%d window %q\n", cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)

	err = bootstrap.MakeWindowAndRun(cfg)
	if err != nil {
		log.Fatalf("%s", err)
	}
}
