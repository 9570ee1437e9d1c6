package main

import (
	"flag"
	"log"

	"VectorBoard/internal/config"
	"VectorBoard/internal/state"
	"VectorBoard/internal/ui"
)

func main() {
	var opts ui.Options
	flag.StringVar(&opts.ConfigPath, "config", config.DefaultPath(), "path of the settings file")
	flag.BoolVar(&opts.AutoConfigure, "autoconfigure", false, "ignore the stored canvas size and measure it again")
	flag.IntVar(&opts.GridSize, "grid", state.DefaultCellSize, "grid cell size in pixels")
	flag.Parse()

	log.Println("Starting VectorBoard")
	log.Printf("[CONFIG] Using %s", opts.ConfigPath)
	if err := ui.RunApp(opts); err != nil {
		log.Fatalf("VectorBoard: %v", err)
	}
}
