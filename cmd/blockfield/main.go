// Package main is the entry point for the blockfield viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/blockfield/internal/config"
	"github.com/Faultbox/blockfield/internal/engine/shader"
	"github.com/Faultbox/blockfield/internal/engine/window"
	"github.com/Faultbox/blockfield/internal/game"
	"github.com/Faultbox/blockfield/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== blockfield ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		window.Alert("blockfield", startupMessage(err))
		logger.Sync()
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// startupMessage formats a fatal startup error for the alert dialog.
func startupMessage(err error) string {
	var ce *shader.CompileError
	if errors.As(err, &ce) {
		return fmt.Sprintf("Failed to build the %s shader:\n\n%s", ce.Stage, ce.Log)
	}
	return fmt.Sprintf("Unable to start:\n\n%v", err)
}
