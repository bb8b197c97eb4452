//go:build !tinygo && cgo

package hal

import (
	"context"
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestWindowUpdateTerminatesWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	g := &hostGame{
		ctx:   ctx,
		h:     newHost(8, 8, newRealClock()),
		step:  func() error { steps++; return nil },
		scale: 1,
	}

	cancel()
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update after cancel: %v", err)
	}
	if steps != 0 {
		t.Fatalf("stepped %d times after cancel", steps)
	}
}

func TestWindowLayoutResizesFramebuffer(t *testing.T) {
	g := &hostGame{h: newHost(8, 8, newRealClock()), scale: 2}
	w, h := g.Layout(640, 480)
	if w != 320 || h != 240 {
		t.Fatalf("Layout=%dx%d", w, h)
	}
	if g.h.fb.Width() != 320 || g.h.fb.Height() != 240 {
		t.Fatalf("framebuffer %dx%d", g.h.fb.Width(), g.h.fb.Height())
	}
}
