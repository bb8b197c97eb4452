//go:build !tinygo && cgo

package hal

import (
	"context"

	"voxelbox/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// It blocks until the window closes, ctx is done, or the step function fails.
// A done ctx ends the loop cleanly and RunWindow returns nil.
func RunWindow(ctx context.Context, cfg WindowConfig, newApp NewApp) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Title == "" {
		cfg.Title = "Voxelbox"
	}
	h := newHost(cfg.Width/cfg.Scale, cfg.Height/cfg.Scale, newRealClock())
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{ctx: ctx, h: h, step: step, scale: cfg.Scale}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	ctx     context.Context
	h       *hostHAL
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
	scale   int
}

func (g *hostGame) Update() error {
	if g.ctx != nil && g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.h.kbd.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	fb.mu.Lock()
	w, h, n := fb.width, fb.height, len(fb.front)
	fb.mu.Unlock()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h || len(g.scratch) != n {
		g.scratch = make([]byte, n)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	if sw, sh := fb.snapshot(g.scratch); sw != w || sh != h {
		return
	}
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.h.fb.resize(outsideWidth/g.scale, outsideHeight/g.scale)
	return g.h.fb.Width(), g.h.fb.Height()
}
