//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Frames  uint64
	Width   int
	Height  int
	// Keys are fed to the keyboard before the step of their frame.
	Keys []ScriptedKey
}

// ScriptedKey is a key event delivered at a given frame (0-based).
type ScriptedKey struct {
	Frame uint64
	KeyEvent
}

// headlessEpoch is where the virtual clock starts.
var headlessEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// RunHeadless runs the game without opening a window. The clock is virtual
// and advances exactly 1/Hz per frame, so simulation is reproducible.
func RunHeadless(ctx context.Context, newApp NewApp, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 320, 240
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Width, cfg.Height, newVirtualClock(headlessEpoch))
	step, err := newApp(h)
	if err != nil {
		return err
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var frame uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.clk.step(d)
			for _, k := range cfg.Keys {
				if k.Frame == frame {
					h.kbd.feed(k.KeyEvent)
				}
			}
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			frame++
			if cfg.Frames > 0 && frame >= cfg.Frames {
				return nil
			}
		}
	}
}
