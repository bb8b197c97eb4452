// Package app wires the game to a HAL: key events in, frames out.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"voxelbox/hal"
	"voxelbox/voxel/game"
	"voxelbox/voxel/metrics"
	"voxelbox/voxel/persist"
	"voxelbox/voxel/projection"
	"voxelbox/voxel/settings"
)

// App owns the game and the services around it for one host session.
type App struct {
	h       hal.HAL
	log     *zap.Logger
	game    *game.Game
	metrics *metrics.Metrics
	server  *metrics.Server
	closed  bool
}

// New opens the save named by cfg and starts the game on h.
func New(ctx context.Context, h hal.HAL, cfg Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	gw, err := persist.Open(cfg.Persist, log)
	if err != nil {
		return nil, fmt.Errorf("open save: %w", err)
	}

	s, err := gw.LoadSettings(ctx)
	switch {
	case err == nil:
	case errors.Is(err, persist.ErrNotFound):
		s = settings.Defaults()
	default:
		log.Warn("settings unreadable, using defaults", zap.Error(err))
		s = settings.Defaults()
	}

	a := &App{h: h, log: log, metrics: metrics.New()}
	if cfg.MetricsAddr != "" {
		a.server = a.metrics.Serve(cfg.MetricsAddr, log)
	}

	fb := h.Display().Framebuffer()
	a.game, err = game.Open(ctx, game.Options{
		Settings: s,
		Gateway:  gw,
		Metrics:  a.metrics,
		Log:      log,
		Viewport: projection.Viewport{W: fb.Width(), H: fb.Height()},
	})
	if err != nil {
		_ = gw.Close()
		a.shutdownMetrics()
		return nil, err
	}
	return a, nil
}

// Game exposes the running game.
func (a *App) Game() *game.Game { return a.game }

// Step runs one host frame.
func (a *App) Step() error {
	a.drainKeys()

	fb := a.h.Display().Framebuffer()
	a.game.SetViewport(fb.Width(), fb.Height())
	if err := a.game.Step(a.h.Clock().Now()); err != nil {
		return err
	}
	a.blit(fb)
	return fb.Present()
}

func (a *App) drainKeys() {
	kbd := a.h.Input().Keyboard()
	if kbd == nil {
		return
	}
	ch := kbd.Events()
	for {
		select {
		case ev := <-ch:
			a.game.HandleKey(ev.Key, ev.Press)
		default:
			return
		}
	}
}

// blit copies the game canvas into the framebuffer row by row. A canvas
// that lags a resize by one frame is clipped.
func (a *App) blit(fb hal.Framebuffer) {
	c := a.game.Canvas()
	if c == nil || fb.Format() != hal.PixelFormatRGBA8888 {
		return
	}
	dst := fb.Buffer()
	stride := fb.StrideBytes()
	w := min(c.W, fb.Width()) * 4
	h := min(c.H, fb.Height())
	for y := 0; y < h; y++ {
		copy(dst[y*stride:y*stride+w], c.Buf[y*c.Stride:y*c.Stride+w])
	}
}

// Close saves the world and stops the metrics listener.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	err := a.game.Stop()
	a.shutdownMetrics()
	return err
}

func (a *App) shutdownMetrics() {
	if a.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Warn("metrics shutdown", zap.Error(err))
	}
	a.server = nil
}

// Runner adapts New to hal.NewApp. The created App is reported through
// opened so the caller can Close it after the host loop returns.
func Runner(ctx context.Context, cfg Config, log *zap.Logger, opened func(*App)) hal.NewApp {
	return func(h hal.HAL) (func() error, error) {
		a, err := New(ctx, h, cfg, log)
		if err != nil {
			return nil, err
		}
		if opened != nil {
			opened(a)
		}
		return a.Step, nil
	}
}
