package render

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"voxelbox/voxel/projection"
	"voxelbox/voxel/raster"
)

const (
	skyBands     = 16
	celestialGap = 400.0 // distance at which sun and moon are placed
	cloudCell    = 12.0
	cloudReach   = 8 // cells around the player
	cloudDrift   = 0.02
	cloudCutoff  = 0.08
)

func (r *Renderer) drawSky(s Surface, pr *projection.Projector, sc *Scene) {
	w, h := s.Size()
	base := SkyColor(sc.Time, sc.DayLength)
	top, horizon := base.Scale(0.7), base.Brighten(0.2)
	for i := 0; i < skyBands; i++ {
		y0 := i * h / skyBands
		y1 := (i + 1) * h / skyBands
		s.FillRect(0, y0, w, y1-y0, raster.Lerp(top, horizon, float64(i)/float64(skyBands-1)))
	}

	if sc.DayLength <= 0 {
		return
	}
	a := 2 * math.Pi * sc.Time / sc.DayLength
	dir := mgl64.Vec3{math.Cos(a), math.Sin(a), 0}
	cam := pr.Camera().Pos
	if p, ok := pr.Project(cam.Add(dir.Mul(celestialGap))); ok {
		drawDisc(s, p, 14, raster.RGB(255, 240, 160))
	}
	if p, ok := pr.Project(cam.Sub(dir.Mul(celestialGap))); ok {
		drawDisc(s, p, 10, raster.RGB(220, 225, 240))
	}
}

func drawDisc(s Surface, p projection.Projected, size int, c raster.Color) {
	x, y := int(p.X)-size/2, int(p.Y)-size/2
	s.FillRect(x-2, y-2, size+4, size+4, c.WithAlpha(60))
	s.FillRect(x, y, size, size, c)
}

type cloudItem struct {
	p       projection.Projected
	density float64
}

func (r *Renderer) drawClouds(s Surface, pr *projection.Projector, sc *Scene, day float64) {
	if !r.opts.Clouds {
		return
	}
	w, _ := s.Size()
	drift := sc.Time * cloudDrift
	px, pz := sc.Player.Pos.X(), sc.Player.Pos.Z()
	c0x := int(math.Floor((px - drift) / cloudCell))
	c0z := int(math.Floor(pz / cloudCell))

	items := r.clouds[:0]
	for dz := -cloudReach; dz <= cloudReach; dz++ {
		for dx := -cloudReach; dx <= cloudReach; dx++ {
			cx, cz := c0x+dx, c0z+dz
			n := r.noise.Noise2D(float64(cx)*0.35, float64(cz)*0.35)
			if n < cloudCutoff {
				continue
			}
			center := mgl64.Vec3{
				float64(cx)*cloudCell + cloudCell/2 + drift,
				r.opts.CloudHeight,
				float64(cz)*cloudCell + cloudCell/2,
			}
			p, ok := pr.Project(center)
			if !ok {
				continue
			}
			items = append(items, cloudItem{p: p, density: n})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].p.Depth > items[j].p.Depth })
	r.clouds = items

	tint := raster.RGB(255, 255, 255).Scale(math.Max(0.45, day))
	for _, c := range items {
		cw := math.Min(cloudCell*c.p.Scale, float64(2*w))
		ch := math.Max(2, cw/5)
		alpha := uint8(math.Min(200, 80+c.density*300))
		x, y := int(c.p.X-cw/2), int(c.p.Y-ch/2)
		s.FillRect(x, y, int(cw), int(ch), tint.WithAlpha(alpha))
		s.FillRect(x+int(cw*0.2), y-int(ch*0.6), int(cw*0.55), int(ch*0.7), tint.WithAlpha(alpha/2))
	}
}
