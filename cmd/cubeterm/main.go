// Package main runs the cube viewer in a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/config"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/internal/term"
	"github.com/Faultbox/cubeview/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// tcell owns the terminal, so logs only go to the file.
	opts := logger.Options{Level: cfg.Logging.Level}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("terminal viewer failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	v, err := viewer.New(cfg.Viewer.FaceSet(), append(cfg.Viewer.Options(), viewer.WithLogger(logger.Log))...)
	if err != nil {
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init failed: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer s.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := term.NewHost(s, v, term.HostOptions{
		FrameInterval: cfg.Terminal.FrameInterval,
		Render: term.Options{
			CellAspect: cfg.Terminal.CellAspect,
			ShowHUD:    cfg.Terminal.ShowHUD,
			Background: cfg.Window.Background,
		},
		Logger: logger.Log,
	})
	return host.Run(ctx)
}
