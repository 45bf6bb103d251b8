// cmd/client/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-kanyonbird/pkg/client"
	"github.com/opd-ai/go-kanyonbird/pkg/config"
	"github.com/opd-ai/go-kanyonbird/pkg/logging"
)

func main() {
	configPath := flag.String("config", "kanyon.yaml", "Path to configuration file")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 1024, "Window width")
	height := flag.Int("height", 768, "Window height")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := context.Background()

	// Load configuration
	var cfg *config.Config

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "configuration file not found, using defaults", "path", *configPath)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		log.Fatalf("Failed to apply environment overrides: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	scene := client.NewScene(cfg, logger, nil)

	opts := engo.RunOptions{
		Title:      "Kanyon Bird",
		Width:      *width,
		Height:     *height,
		Fullscreen: *fullscreen,
		VSync:      true,
	}

	engo.Run(opts, scene)
}
