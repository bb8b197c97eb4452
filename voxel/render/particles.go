package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelbox/voxel/projection"
	"voxelbox/voxel/raster"
	"voxelbox/voxel/world"
)

const (
	moteCount    = 24
	snowCount    = 120
	rainCount    = 160
	fireflyCount = 25
	fallBox      = 32.0 // side of the box around the player that precipitation fills
	fallHeight   = 14.0
)

func (r *Renderer) drawParticles(s Surface, pr *projection.Projector, sc *Scene, wall float64, st *FrameStats) {
	if !r.opts.Particles {
		return
	}
	origin := sc.Player.Pos
	dot := func(pt mgl64.Vec3, size float64, c raster.Color, maxDist float64) {
		q, ok := pr.Project(pt)
		if !ok || q.Distance > maxDist {
			return
		}
		px := int(math.Min(6, math.Max(1, size*q.Scale)))
		s.FillRect(int(q.X)-px/2, int(q.Y)-px/2, px, px, c)
		st.Particles++
	}

	for i := 0; i < moteCount; i++ {
		fi := float64(i)
		pt := origin.Add(mgl64.Vec3{
			math.Sin(wall*0.3+fi*1.7) * 8,
			2 + math.Sin(wall*0.5+fi)*1.5,
			math.Cos(wall*0.27+fi*2.3) * 8,
		})
		dot(pt, 0.05, raster.RGBA(255, 255, 230, 110), 16)
	}

	if world.IsSnowy(sc.Biome) {
		for i := 0; i < snowCount; i++ {
			fi := float64(i)
			pt := origin.Add(mgl64.Vec3{
				math.Mod(fi*7.31, fallBox) - fallBox/2 + math.Sin(wall+fi)*0.5,
				fallHeight - 2 - math.Mod(wall*1.5+fi*0.37, fallHeight),
				math.Mod(fi*3.77, fallBox) - fallBox/2 + math.Cos(wall*0.7+fi)*0.5,
			})
			dot(pt, 0.08, raster.RGBA(250, 250, 255, 220), 24)
		}
	}

	if sc.Weather.Wet() {
		rain := raster.RGBA(150, 170, 230, 150)
		for i := 0; i < rainCount; i++ {
			fi := float64(i)
			top := origin.Add(mgl64.Vec3{
				math.Mod(fi*5.13, fallBox) - fallBox/2,
				fallHeight - 2 - math.Mod(wall*12+fi*0.53, fallHeight),
				math.Mod(fi*9.71, fallBox) - fallBox/2,
			})
			a, ok1 := pr.Project(top)
			b, ok2 := pr.Project(top.Sub(mgl64.Vec3{0, 0.6, 0}))
			if !ok1 || !ok2 || a.Distance > 24 {
				continue
			}
			s.LineF(raster.Pt(a.X, a.Y), raster.Pt(b.X, b.Y), rain)
			st.Particles++
		}
		if sc.Weather == world.WeatherThunder && r.rng.Float64() < 0.004 {
			w, h := s.Size()
			s.FillRect(0, 0, w, h, raster.RGBA(255, 255, 255, 90))
		}
	}

	if IsNight(sc.Time, sc.DayLength) {
		for i := 0; i < fireflyCount; i++ {
			fi := float64(i)
			pt := origin.Add(mgl64.Vec3{
				math.Sin(wall*0.4+fi*2.1) * 10,
				1 + math.Sin(wall*0.9+fi)*0.8,
				math.Cos(wall*0.33+fi*1.3) * 10,
			})
			pulse := 0.5 + 0.5*math.Sin(wall*3+fi)
			dot(pt, 0.08, raster.RGBA(200, 255, 90, uint8(80+160*pulse)), 20)
		}
	}
}
