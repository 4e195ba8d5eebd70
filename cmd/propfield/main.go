package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"propfield/internal/config"
	"propfield/internal/game"
	"strings"
	"time"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the JSON scene config")
	seed := flag.Int64("seed", 0, "placement seed (0 = config value, then time-based)")
	flag.Parse()

	// A -config given on the command line is relative to where the user ran
	// us from, so pin it down before moving to the executable's directory.
	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	if explicit {
		if abs, err := filepath.Abs(*configPath); err == nil {
			*configPath = abs
		}
	}

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	load := config.Load
	if explicit {
		load = config.LoadFile
	}
	cfg, err := load(*configPath)
	if err != nil {
		log.Printf("Config: %v, using defaults", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	log.Printf("Config: seed %d", cfg.Seed)

	g := game.New(cfg, rand.New(rand.NewSource(cfg.Seed)))
	g.Run()
}
