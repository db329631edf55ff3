package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fosdem/glboot/lib/config"
	"github.com/fosdem/glboot/lib/cstr"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <config file>", os.Args[0])
	}
	cfg, err := config.Parse(os.Args[1])
	if err != nil {
		fmt.Printf("Config invalid: %s\n", err)
		os.Exit(1)
	}

	// shaders are only compiled with a GL context, but they must at least
	// be readable
	for _, path := range []config.CfgPath{cfg.Program.Vertex, cfg.Program.Fragment} {
		_, err := cstr.FromFile(path.String())
		if err != nil {
			fmt.Printf("Config invalid: %s\n", err)
			os.Exit(1)
		}
	}

	fmt.Print("Config valid!\n\n")

	fmt.Print(cfg)
}
