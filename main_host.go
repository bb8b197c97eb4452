//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"voxelbox/app"
	"voxelbox/hal"
	"voxelbox/internal/buildinfo"
)

func main() {
	var (
		headless   bool
		hz         int
		frames     uint64
		configPath string
		debug      bool
		metrics    string
		dataDir    string
		backend    string
	)
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", 0, "Frame rate in headless mode (default from config).")
	flag.Uint64Var(&frames, "frames", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.StringVar(&configPath, "config", "", "YAML host config (default $"+app.ConfigEnv+").")
	flag.BoolVar(&debug, "debug", false, "Development logging.")
	flag.StringVar(&metrics, "metrics", "", "Serve Prometheus metrics on this address.")
	flag.StringVar(&dataDir, "data", "", "Save directory.")
	flag.StringVar(&backend, "backend", "", "Save backend: file, badger or memory.")
	flag.Parse()

	log, err := newLogger(debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting", zap.String("version", buildinfo.Short()))

	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}
	if metrics != "" {
		cfg.MetricsAddr = metrics
	}
	if dataDir != "" {
		cfg.Persist.Dir = dataDir
	}
	if backend != "" {
		cfg.Persist.Backend = backend
	}
	if hz > 0 {
		cfg.Headless.Hz = hz
	}
	if frames > 0 {
		cfg.Headless.Frames = frames
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var a *app.App
	newApp := app.Runner(ctx, cfg, log, func(opened *app.App) { a = opened })

	if headless {
		err = hal.RunHeadless(ctx, newApp, cfg.Headless.HAL())
	} else {
		err = hal.RunWindow(ctx, hal.WindowConfig{
			Title:  "Voxelbox",
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Scale:  cfg.Window.Scale,
		}, newApp)
	}

	if a != nil {
		if cerr := a.Close(); cerr != nil {
			log.Error("shutdown save failed", zap.Error(cerr))
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("exit", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
