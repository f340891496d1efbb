// Package main is the entry point for the tinysr model viewer.
package main

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/mkarpov/tinysr/internal/config"
	"github.com/mkarpov/tinysr/internal/logger"
	"github.com/mkarpov/tinysr/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Write the effective config and exit when asked to.
	if config.WriteConfigRequested() {
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config write error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)
		return
	}

	logger.Info("=== tinysr ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// Without a model on the command line, ask for one.
	if cfg.Scene.Model == "" {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Open Model").
			Load()
		if err != nil {
			if err == dialog.ErrCancelled {
				fmt.Fprintln(os.Stderr, "No model selected")
				return
			}
			fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
			os.Exit(1)
		}
		cfg.Scene.Model = filename
	}

	// Create and run the viewer
	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
