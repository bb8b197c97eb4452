// Package render paints one frame of the voxel world: sky, clouds,
// particles, blocks, mobs, the player, the crosshair and the HUD, in that
// order. Depth is resolved with the painter's algorithm; there is no z-buffer.
package render

import (
	"math/rand"

	"github.com/aquilax/go-perlin"

	"voxelbox/voxel/entity"
	"voxelbox/voxel/hud"
	"voxelbox/voxel/projection"
	"voxelbox/voxel/raster"
	"voxelbox/voxel/world"
)

// Surface is the paint target. *raster.Canvas implements it.
type Surface interface {
	Size() (w, h int)
	Clear(c raster.Color)
	FillRect(x, y, w, h int, c raster.Color)
	StrokeRect(x, y, w, h int, c raster.Color)
	Line(x0, y0, x1, y1 int, c raster.Color)
	LineF(a, b raster.Point, c raster.Color)
	FillPolygon(pts []raster.Point, c raster.Color)
	StrokePolygon(pts []raster.Point, c raster.Color)
	GlowPolygon(pts []raster.Point, c raster.Color, radius int)
	Text(x, y int, s string, c raster.Color)
}

var _ Surface = (*raster.Canvas)(nil)

// Scene is the read-only input of one frame.
type Scene struct {
	World        *world.Store
	Player       *entity.Player
	PlayerMoving bool
	Mobs         []*entity.Mob
	Camera       projection.Camera
	Time         float64 // world ticks
	DayLength    float64
	Weather      world.Weather
	Biome        string
	HUD          *hud.Snapshot
}

type Options struct {
	RenderDistance int // blocks, per axis
	Particles      bool
	Clouds         bool
	HideBuried     bool // skip blocks and faces with opaque neighbours
	CloudHeight    float64
}

func DefaultOptions() Options {
	return Options{RenderDistance: 10, Particles: true, Clouds: true, HideBuried: true, CloudHeight: 64}
}

// FrameStats counts what one frame considered and painted.
type FrameStats struct {
	Candidates   int // blocks inside the render-distance box
	Hidden       int // skipped: every neighbour opaque
	CulledCorner int // skipped: a corner at or behind the near plane
	Offscreen    int // skipped: projected entirely outside the viewport
	Drawn        int // blocks painted
	Faces        int
	Mobs         int
	Particles    int
}

// Renderer keeps per-frame scratch buffers and the cosmetic state (floating
// damage numbers) between frames. Not safe for concurrent use.
type Renderer struct {
	opts  Options
	noise *perlin.Perlin
	rng   *rand.Rand

	blocks   []blockItem
	clouds   []cloudItem
	parts    []partItem
	mobs     []*entity.Mob
	floaters []floater
	poly     [4]raster.Point
}

func New(opts Options, seed int64) *Renderer {
	if opts.RenderDistance <= 0 {
		opts.RenderDistance = DefaultOptions().RenderDistance
	}
	if opts.CloudHeight == 0 {
		opts.CloudHeight = DefaultOptions().CloudHeight
	}
	return &Renderer{
		opts:  opts,
		noise: perlin.NewPerlin(2, 2, 3, seed),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (r *Renderer) Options() Options { return r.opts }

func (r *Renderer) SetOptions(o Options) {
	if o.RenderDistance <= 0 {
		o.RenderDistance = r.opts.RenderDistance
	}
	if o.CloudHeight == 0 {
		o.CloudHeight = r.opts.CloudHeight
	}
	r.opts = o
}

// Frame paints sc onto s. wall is wall-clock seconds, used only for cosmetic
// animation.
func (r *Renderer) Frame(s Surface, sc *Scene, wall float64) FrameStats {
	var st FrameStats
	w, h := s.Size()
	if w <= 0 || h <= 0 || sc == nil || sc.Player == nil {
		return st
	}
	pr := projection.NewProjector(sc.Camera, projection.Viewport{W: w, H: h})
	day := DayFactor(sc.Time, sc.DayLength)

	r.drawSky(s, pr, sc)
	r.drawClouds(s, pr, sc, day)
	r.drawParticles(s, pr, sc, wall, &st)
	if sc.World != nil {
		r.collectBlocks(pr, sc, &st)
		for i := range r.blocks {
			r.drawBlock(s, &r.blocks[i], sc, day, wall, &st)
		}
	}
	r.drawMobs(s, pr, sc, wall, day, &st)
	if sc.Camera.Mode != projection.FirstPerson {
		r.drawPlayer(s, pr, sc, wall, day)
	}
	r.drawHealthBars(s, pr, sc, wall)
	if sc.Camera.Mode == projection.FirstPerson {
		drawCrosshair(s, w, h)
	}
	if sc.HUD != nil {
		drawHUD(s, sc.HUD, w, h)
	}
	return st
}
