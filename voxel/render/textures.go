package render

import (
	"math"

	"voxelbox/voxel/raster"
	"voxelbox/voxel/world"
)

// minPatternSpan is the smallest face, in pixels, worth texturing.
const minPatternSpan = 10

// hash01 maps a block position and salt to a stable value in [0, 1).
func hash01(x, y, z, salt int) float64 {
	h := uint32(x)*73856093 ^ uint32(y)*19349663 ^ uint32(z)*83492791 ^ uint32(salt)*2654435761
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return float64(h&0xFFFFFF) / float64(1<<24)
}

// facePoint maps (u, v) in the unit square onto the projected quad.
func facePoint(q []raster.Point, u, v float64) raster.Point {
	ax := q[0].X + (q[1].X-q[0].X)*u
	ay := q[0].Y + (q[1].Y-q[0].Y)*u
	bx := q[3].X + (q[2].X-q[3].X)*u
	by := q[3].Y + (q[2].Y-q[3].Y)*u
	return raster.Pt(ax+(bx-ax)*v, ay+(by-ay)*v)
}

func span(q []raster.Point) float64 {
	minX, maxX, minY, maxY := q[0].X, q[0].X, q[0].Y, q[0].Y
	for _, p := range q[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return math.Min(maxX-minX, maxY-minY)
}

func drawPattern(s Surface, q []raster.Point, props world.BlockProps, b world.Block, f Face, light, wall float64) {
	if props.Pattern == world.PatternNone {
		return
	}
	sp := span(q)
	if sp < minPatternSpan {
		return
	}
	dotSize := int(math.Max(1, math.Min(4, sp/12)))
	accent := props.Accent.Scale(light)
	x, y, z := b.Pos.X, b.Pos.Y, b.Pos.Z
	salt := int(f) * 64
	dot := func(p raster.Point, c raster.Color) {
		s.FillRect(int(p.X)-dotSize/2, int(p.Y)-dotSize/2, dotSize, dotSize, c)
	}
	inset := func(v float64) float64 { return 0.1 + 0.8*v }

	switch props.Pattern {
	case world.PatternSpeckle:
		for i := 0; i < 5; i++ {
			dot(facePoint(q, inset(hash01(x, y, z, salt+2*i)), inset(hash01(x, y, z, salt+2*i+1))), accent)
		}
	case world.PatternCracks:
		for i := 0; i < 2; i++ {
			a := facePoint(q, inset(hash01(x, y, z, salt+6*i)), inset(hash01(x, y, z, salt+6*i+1)))
			m := facePoint(q, inset(hash01(x, y, z, salt+6*i+2)), inset(hash01(x, y, z, salt+6*i+3)))
			e := facePoint(q, inset(hash01(x, y, z, salt+6*i+4)), inset(hash01(x, y, z, salt+6*i+5)))
			s.LineF(a, m, accent)
			s.LineF(m, e, accent)
		}
	case world.PatternGrain:
		if f == FaceTop || f == FaceBottom {
			c := facePoint(q, 0.5, 0.5)
			ring := []raster.Point{facePoint(q, 0.3, 0.3), facePoint(q, 0.7, 0.3), facePoint(q, 0.7, 0.7), facePoint(q, 0.3, 0.7)}
			s.StrokePolygon(ring, accent)
			dot(c, accent)
			return
		}
		for i := 1; i <= 3; i++ {
			u := float64(i)/4 + (hash01(x, y, z, salt+i)-0.5)*0.1
			s.LineF(facePoint(q, u, 0.1), facePoint(q, u, 0.9), accent)
		}
	case world.PatternRipple:
		for i := 0; i < 2; i++ {
			v := 0.3 + 0.4*float64(i) + 0.1*math.Sin(wall*2+float64(x)*0.7+float64(z)*0.3+float64(i)*math.Pi)
			s.LineF(facePoint(q, 0.1, v), facePoint(q, 0.9, v), accent)
		}
	case world.PatternSparkle:
		for i := 0; i < 4; i++ {
			h := hash01(x, y, z, salt+3*i+2)
			c := accent
			if math.Sin(wall*4+h*2*math.Pi) > 0.6 {
				c = c.Brighten(0.5)
			}
			dot(facePoint(q, inset(hash01(x, y, z, salt+3*i)), inset(hash01(x, y, z, salt+3*i+1))), c)
		}
	case world.PatternBubbles:
		for i := 0; i < 3; i++ {
			u := inset(hash01(x, y, z, salt+2*i))
			_, rise := math.Modf(wall*0.5 + hash01(x, y, z, salt+2*i+1))
			dot(facePoint(q, u, 0.9-0.8*rise), accent)
		}
	}
}
