package main

import (
	"log"
	"os"
	"runtime"

	"github.com/fosdem/glboot/lib/bootstrap"
	"github.com/fosdem/glboot/lib/config"
	glbootlog "github.com/fosdem/glboot/lib/log"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <config file>", os.Args[0])
	}
	cfg, err := config.Parse(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	level, err := glbootlog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	glbootlog.Setup(level)

	err = bootstrap.MakeWindowAndRun(cfg)
	if err != nil {
		log.Fatalf("%s", err)
	}
}
