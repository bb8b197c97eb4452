package render

import (
	"math"
	"sort"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"voxelbox/voxel/entity"
	"voxelbox/voxel/projection"
	"voxelbox/voxel/raster"
)

const (
	healthBarRange = 10.0
	floaterChance  = 0.01
	floaterLife    = 1.2 // seconds
	maxFloaters    = 16
	maxPartPixels  = 4096.0
	walkRate       = 8.0
)

var playerEyes = raster.RGB(60, 60, 200)

type partItem struct {
	x, y, w, h int
	depth      float64
	color      raster.Color
	head       bool
}

type floater struct {
	mobID  string
	value  int
	born   float64
	offset float64
}

func (r *Renderer) drawMobs(s Surface, pr *projection.Projector, sc *Scene, wall, light float64, st *FrameStats) {
	cam := pr.Camera().Pos
	mobs := append(r.mobs[:0], sc.Mobs...)
	sort.SliceStable(mobs, func(i, j int) bool {
		return mobs[i].Pos.Sub(cam).Len() > mobs[j].Pos.Sub(cam).Len()
	})
	r.mobs = mobs
	for _, m := range mobs {
		sp := m.Kind.Species()
		if r.drawModel(s, pr, m.Pos, m.Heading, sp.Parts, sp.Eyes, m.Kind == entity.Creeper, m.Moving(), wall, light) {
			st.Mobs++
		}
	}
}

func (r *Renderer) drawPlayer(s Surface, pr *projection.Projector, sc *Scene, wall, light float64) {
	p := sc.Player
	r.drawModel(s, pr, p.Pos, p.RotY, entity.PlayerModel, playerEyes, false, sc.PlayerMoving, wall, light)
}

// drawModel paints a box model standing at origin facing heading. Parts whose
// center is behind the near plane are skipped. Reports whether anything was
// painted.
func (r *Renderer) drawModel(s Surface, pr *projection.Projector, origin mgl64.Vec3, heading float64, parts []entity.Part, eyes raster.Color, mouth, moving bool, wall, light float64) bool {
	amp := 0.05
	if moving {
		amp = 0.3
	}
	swing := math.Sin(wall*walkRate+origin.X()+origin.Z()) * amp
	rot := mgl64.Rotate3DY(heading)

	items := r.parts[:0]
	for _, p := range parts {
		off := p.Offset
		if p.Swing != 0 {
			off[2] += p.Swing * swing
		}
		q, ok := pr.Project(origin.Add(rot.Mul3x1(off)))
		if !ok {
			continue
		}
		w := math.Min(math.Max(math.Max(p.Size.X(), p.Size.Z())*q.Scale, 1), maxPartPixels)
		h := math.Min(math.Max(p.Size.Y()*q.Scale, 1), maxPartPixels)
		items = append(items, partItem{
			x:     int(q.X - w/2),
			y:     int(q.Y - h/2),
			w:     int(math.Ceil(w)),
			h:     int(math.Ceil(h)),
			depth: q.Depth,
			color: p.Color.Scale(light),
			head:  p.Role == entity.RoleHead,
		})
	}
	r.parts = items
	if len(items) == 0 {
		return false
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].depth > items[j].depth })

	fwd := mgl64.Vec3{-math.Sin(heading), 0, -math.Cos(heading)}
	facing := fwd.Dot(pr.Camera().Pos.Sub(origin)) > 0
	for _, it := range items {
		s.FillRect(it.x, it.y, it.w, it.h, it.color)
		s.StrokeRect(it.x, it.y, it.w, it.h, it.color.Scale(0.7))
		if it.head && facing && it.w >= 5 {
			drawFace(s, it, eyes, mouth)
		}
	}
	return true
}

func drawFace(s Surface, it partItem, eyes raster.Color, mouth bool) {
	ew := max(1, it.w/5)
	eh := max(1, it.h/6)
	ey := it.y + it.h*3/8
	s.FillRect(it.x+it.w/5, ey, ew, eh, eyes)
	s.FillRect(it.x+it.w*3/5, ey, ew, eh, eyes)
	if mouth {
		s.FillRect(it.x+it.w*2/5, it.y+it.h*5/8, max(1, it.w/5), max(1, it.h/4), eyes)
	}
}

// drawHealthBars puts a bar over nearby hostile mobs and animates the
// floating damage numbers.
func (r *Renderer) drawHealthBars(s Surface, pr *projection.Projector, sc *Scene, wall float64) {
	for _, m := range sc.Mobs {
		if !m.Hostile() {
			continue
		}
		q, ok := pr.Project(m.Pos.Add(mgl64.Vec3{0, m.Kind.Species().Height + 0.3, 0}))
		if !ok || q.Distance >= healthBarRange {
			continue
		}
		bw := int(math.Min(48, math.Max(16, q.Scale)))
		x, y := int(q.X)-bw/2, int(q.Y)-6
		frac := m.HealthFraction()
		s.FillRect(x-1, y-1, bw+2, 6, raster.RGBA(0, 0, 0, 180))
		s.FillRect(x, y, int(float64(bw)*frac), 4, raster.Lerp(raster.RGB(220, 40, 40), raster.RGB(60, 220, 60), frac))
		if len(r.floaters) < maxFloaters && r.rng.Float64() < floaterChance {
			r.floaters = append(r.floaters, floater{mobID: m.ID, value: 1 + r.rng.Intn(6), born: wall, offset: r.rng.Float64() - 0.5})
		}
	}

	kept := r.floaters[:0]
	for _, f := range r.floaters {
		age := wall - f.born
		if age < 0 || age > floaterLife {
			continue
		}
		m := findMob(sc.Mobs, f.mobID)
		if m == nil {
			continue
		}
		kept = append(kept, f)
		pos := m.Pos.Add(mgl64.Vec3{f.offset, m.Kind.Species().Height + 0.6 + age*0.8, 0})
		q, ok := pr.Project(pos)
		if !ok {
			continue
		}
		alpha := uint8(255 * (1 - age/floaterLife))
		s.Text(int(q.X), int(q.Y), "-"+strconv.Itoa(f.value), raster.RGBA(255, 80, 60, alpha))
	}
	r.floaters = kept
}

func findMob(mobs []*entity.Mob, id string) *entity.Mob {
	for _, m := range mobs {
		if m.ID == id {
			return m
		}
	}
	return nil
}
