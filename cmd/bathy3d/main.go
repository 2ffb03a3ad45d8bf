// Package main is the entry point for the bathy3d viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/bathy3d/internal/config"
	"github.com/Faultbox/bathy3d/internal/logger"
	"github.com/Faultbox/bathy3d/internal/viewer"
	"github.com/Faultbox/bathy3d/pkg/bathy"
	"github.com/Faultbox/bathy3d/pkg/grid"
	"github.com/Faultbox/bathy3d/pkg/scene"
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
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== bathy3d ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", config.SavePath()))
		return
	}

	if err := run(cfg); err != nil {
		logger.Error("bathy3d failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("closed normally")
}

func run(cfg *config.Config) error {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	g, err := grid.Load(cfg.Data.Dataset)
	if err != nil {
		return err
	}

	fig := scene.NewFigure(cfg.FigureConfig())
	defer fig.Close()

	if err := bathy.Render(fig, g, opts); err != nil {
		return err
	}

	v, err := viewer.New(viewer.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	}, fig)
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run()
}
