package render

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"voxelbox/voxel/projection"
	"voxelbox/voxel/raster"
	"voxelbox/voxel/world"
)

// Cube corner i sits at offset (i&1, i>>1&1, i>>2&1) from the block origin.
var faceCorners = [6][4]int{
	FaceBottom: {0, 1, 5, 4},
	FaceTop:    {2, 3, 7, 6},
	FaceNorth:  {0, 1, 3, 2},
	FaceSouth:  {4, 5, 7, 6},
	FaceWest:   {0, 2, 6, 4},
	FaceEast:   {1, 3, 7, 5},
}

var faceNormal = [6]world.Pos{
	FaceBottom: {Y: -1},
	FaceTop:    {Y: 1},
	FaceNorth:  {Z: -1},
	FaceSouth:  {Z: 1},
	FaceWest:   {X: -1},
	FaceEast:   {X: 1},
}

// glowRange limits the glow halo to nearby blocks.
const glowRange = 14.0

type blockItem struct {
	block   world.Block
	corners [8]projection.Projected
	dist    float64
}

// collectBlocks fills r.blocks with every paintable block in the render box,
// sorted far to near. A block with any corner at or behind the near plane is
// dropped whole.
func (r *Renderer) collectBlocks(pr *projection.Projector, sc *Scene, st *FrameStats) {
	rd := r.opts.RenderDistance
	p := sc.Player.Pos
	c := world.Pos{X: int(math.Floor(p.X())), Y: int(math.Floor(p.Y())), Z: int(math.Floor(p.Z()))}
	cam := pr.Camera().Pos
	vp := pr.Viewport()

	items := r.blocks[:0]
	sc.World.ForEachInBox(c.Add(-rd, -rd, -rd), c.Add(rd, rd, rd), func(b world.Block) bool {
		st.Candidates++
		if r.opts.HideBuried && !sc.World.Exposed(b.Pos) {
			st.Hidden++
			return true
		}
		var it blockItem
		for i := 0; i < 8; i++ {
			corner := mgl64.Vec3{
				float64(b.Pos.X + i&1),
				float64(b.Pos.Y + (i>>1)&1),
				float64(b.Pos.Z + (i>>2)&1),
			}
			q, ok := pr.Project(corner)
			if !ok {
				st.CulledCorner++
				return true
			}
			it.corners[i] = q
		}
		if offscreen(&it.corners, vp) {
			st.Offscreen++
			return true
		}
		it.block = b
		center := mgl64.Vec3{float64(b.Pos.X) + 0.5, float64(b.Pos.Y) + 0.5, float64(b.Pos.Z) + 0.5}
		it.dist = center.Sub(cam).Len()
		items = append(items, it)
		return true
	})
	sort.SliceStable(items, func(i, j int) bool { return items[i].dist > items[j].dist })
	r.blocks = items
}

func offscreen(cs *[8]projection.Projected, vp projection.Viewport) bool {
	left, right, above, below := true, true, true, true
	for _, q := range cs {
		left = left && q.X < 0
		right = right && q.X >= float64(vp.W)
		above = above && q.Y < 0
		below = below && q.Y >= float64(vp.H)
	}
	return left || right || above || below
}

func (r *Renderer) drawBlock(s Surface, it *blockItem, sc *Scene, day, wall float64, st *FrameStats) {
	b := it.block
	props := b.Kind.Props()

	var order [6]Face
	var depth [6]float64
	n := 0
	for f := FaceBottom; f <= FaceEast; f++ {
		if r.opts.HideBuried && r.faceHidden(sc.World, b, f) {
			continue
		}
		var d float64
		for _, ci := range faceCorners[f] {
			d += it.corners[ci].Depth
		}
		order[n], depth[f] = f, d/4
		n++
	}
	if n == 0 {
		return
	}
	faces := order[:n]
	// Insertion sort, far faces first.
	for i := 1; i < len(faces); i++ {
		for j := i; j > 0 && depth[faces[j]] > depth[faces[j-1]]; j-- {
			faces[j], faces[j-1] = faces[j-1], faces[j]
		}
	}

	pts := r.poly[:]
	for _, f := range faces {
		for k, ci := range faceCorners[f] {
			pts[k] = raster.Pt(it.corners[ci].X, it.corners[ci].Y)
		}
		base := props.Color
		if f == FaceTop && props.Top.A != 0 {
			base = props.Top
		}
		light := faceFactor[f] * day
		col := base.Scale(light)
		s.FillPolygon(pts, col)
		s.StrokePolygon(pts, col.Scale(0.75))
		drawPattern(s, pts, props, b, f, light, wall)
		st.Faces++
	}

	if props.Glow && it.dist < glowRange {
		near := faces[len(faces)-1]
		for k, ci := range faceCorners[near] {
			pts[k] = raster.Pt(it.corners[ci].X, it.corners[ci].Y)
		}
		radius := 2
		if b.Kind == world.Water {
			radius = 1
		}
		s.GlowPolygon(pts, props.Accent.WithAlpha(120), radius)
	}
	st.Drawn++
}

// faceHidden reports whether face f of b is covered by its neighbour: an
// opaque block, or a transparent block of the same kind.
func (r *Renderer) faceHidden(w *world.Store, b world.Block, f Face) bool {
	d := faceNormal[f]
	n := b.Pos.Add(d.X, d.Y, d.Z)
	if n.Y < 0 {
		return true
	}
	k := w.Kind(n)
	return k.Opaque() || (k == b.Kind && k != world.Air)
}
