package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelbox/voxel/entity"
	"voxelbox/voxel/hud"
	"voxelbox/voxel/projection"
	"voxelbox/voxel/raster"
	"voxelbox/voxel/world"
)

const (
	testW   = 320
	testH   = 240
	dayLen  = 24000.0
	midday  = dayLen / 4
	midnite = 3 * dayLen / 4
)

type recorder struct {
	*raster.Canvas
	polys int
	lines [][4]int
}

func (r *recorder) FillPolygon(pts []raster.Point, c raster.Color) {
	r.polys++
	r.Canvas.FillPolygon(pts, c)
}

func (r *recorder) Line(x0, y0, x1, y1 int, c raster.Color) {
	r.lines = append(r.lines, [4]int{x0, y0, x1, y1})
	r.Canvas.Line(x0, y0, x1, y1, c)
}

func newRecorder() *recorder { return &recorder{Canvas: raster.NewCanvas(testW, testH)} }

func testWorld(blocks ...world.Pos) *world.Store {
	s := world.NewStore()
	for _, cc := range []world.ChunkCoord{{X: -1, Z: -1}, {X: 0, Z: -1}, {X: -1, Z: 0}, {X: 0, Z: 0}} {
		s.PutChunk(world.NewChunk(cc))
	}
	for _, p := range blocks {
		s.SetBlock(p, world.Stone)
	}
	return s
}

func testScene(w *world.Store, mode projection.Mode) *Scene {
	p := entity.NewPlayer("p", "steve", mgl64.Vec3{0.5, 10, 0.5})
	return &Scene{
		World:     w,
		Player:    p,
		Camera:    entity.DeriveCamera(p, mode, projection.DefaultFOV),
		Time:      midday,
		DayLength: dayLen,
		Biome:     "plains",
	}
}

func quiet() Options {
	return Options{RenderDistance: 10, HideBuried: true}
}

func TestBlockInFrontIsPainted(t *testing.T) {
	rec := newRecorder()
	r := New(quiet(), 1)
	st := r.Frame(rec, testScene(testWorld(world.Pos{X: 0, Y: 11, Z: -5}), projection.FirstPerson), 0)

	assert.Equal(t, 1, st.Candidates)
	assert.Equal(t, 1, st.Drawn)
	assert.Equal(t, 6, st.Faces)
	assert.Equal(t, 6, rec.polys)

	sky := SkyColor(midday, dayLen)
	q, ok := projection.Project(mgl64.Vec3{0.5, 11.5, -4}, testScene(nil, projection.FirstPerson).Camera, projection.Viewport{W: testW, H: testH})
	require.True(t, ok)
	assert.NotEqual(t, sky, rec.At(int(q.X), int(q.Y)))
}

func TestBlocksBehindOrStraddlingAreNeverPainted(t *testing.T) {
	rec := newRecorder()
	r := New(quiet(), 1)
	w := testWorld(
		world.Pos{X: 0, Y: 11, Z: 5}, // behind
		world.Pos{X: 0, Y: 11, Z: 0}, // contains the camera
		world.Pos{X: 3, Y: 11, Z: 0}, // beside, straddling the near plane
	)
	st := r.Frame(rec, testScene(w, projection.FirstPerson), 0)

	assert.Equal(t, 3, st.Candidates)
	assert.Equal(t, 3, st.CulledCorner)
	assert.Zero(t, st.Drawn)
	assert.Zero(t, rec.polys)
}

func TestRenderDistanceBoundsCandidates(t *testing.T) {
	w := testWorld(world.Pos{X: 0, Y: 11, Z: -5}, world.Pos{X: 0, Y: 11, Z: -15})
	r := New(quiet(), 1)
	st := r.Frame(newRecorder(), testScene(w, projection.FirstPerson), 0)
	assert.Equal(t, 1, st.Candidates)

	o := quiet()
	o.RenderDistance = 16
	r.SetOptions(o)
	st = r.Frame(newRecorder(), testScene(w, projection.FirstPerson), 0)
	assert.Equal(t, 2, st.Candidates)
}

func TestBuriedBlocksAndInnerFacesAreSkipped(t *testing.T) {
	c := world.Pos{X: 0, Y: 11, Z: -6}
	blocks := []world.Pos{c}
	for _, d := range []world.Pos{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1}} {
		blocks = append(blocks, c.Add(d.X, d.Y, d.Z))
	}
	r := New(quiet(), 1)
	st := r.Frame(newRecorder(), testScene(testWorld(blocks...), projection.FirstPerson), 0)

	assert.Equal(t, 7, st.Candidates)
	assert.Equal(t, 1, st.Hidden)
	assert.Equal(t, 6, st.Drawn)
	assert.Equal(t, 6*5, st.Faces, "each arm hides the face touching the center")
}

func TestCrosshairOnlyInFirstPerson(t *testing.T) {
	want := [4]int{testW/2 - crosshairArm, testH / 2, testW/2 + crosshairArm, testH / 2}
	r := New(quiet(), 1)

	rec := newRecorder()
	r.Frame(rec, testScene(testWorld(), projection.FirstPerson), 0)
	assert.Contains(t, rec.lines, want)

	for _, m := range []projection.Mode{projection.ThirdPersonBack, projection.ThirdPersonFront} {
		rec = newRecorder()
		r.Frame(rec, testScene(testWorld(), m), 0)
		assert.NotContains(t, rec.lines, want, m.String())
	}
}

func TestMobsAreDrawn(t *testing.T) {
	sc := testScene(testWorld(), projection.FirstPerson)
	sc.Mobs = []*entity.Mob{
		entity.NewMob("a", entity.Zombie, mgl64.Vec3{0.5, 10, -5}, 0),
		entity.NewMob("b", entity.Pig, mgl64.Vec3{0.5, 10, 8}, 0), // behind the camera
	}
	st := New(quiet(), 1).Frame(newRecorder(), sc, 0)
	assert.Equal(t, 1, st.Mobs)
}

func TestParticlesFollowWeatherAndBiome(t *testing.T) {
	o := quiet()
	o.Particles = true
	r := New(o, 1)

	sc := testScene(testWorld(), projection.FirstPerson)
	base := r.Frame(newRecorder(), sc, 1).Particles

	sc.Weather = world.WeatherRain
	rain := r.Frame(newRecorder(), sc, 1).Particles
	assert.Greater(t, rain, base)

	r.SetOptions(quiet())
	assert.Zero(t, r.Frame(newRecorder(), sc, 1).Particles)
}

func TestHUDDoesNotPanicOnEmptyCanvas(t *testing.T) {
	sc := testScene(testWorld(), projection.ThirdPersonBack)
	sc.HUD = &hud.Snapshot{ShowFPS: true, FPS: 60, Alert: "Saved", ShowInventory: true}
	r := New(DefaultOptions(), 1)
	assert.NotPanics(t, func() { r.Frame(raster.NewCanvas(0, 0), sc, 0) })
	assert.NotPanics(t, func() { r.Frame(raster.NewCanvas(testW, testH), sc, 0) })
}

func TestLighting(t *testing.T) {
	assert.InDelta(t, 1.0, DayFactor(midday, dayLen), 1e-9)
	assert.InDelta(t, NightFloor, DayFactor(midnite, dayLen), 1e-9)

	for step := 0.0; step < dayLen; step += 250 {
		for f := FaceBottom; f <= FaceEast; f++ {
			l := LightFactor(f, step, dayLen)
			assert.GreaterOrEqual(t, l, faceFactor[f]*NightFloor)
			assert.LessOrEqual(t, l, 1.0)
		}
	}
	// brighter sun never darkens a face
	prev := 0.0
	for step := -dayLen / 4; step <= dayLen/4; step += 100 {
		l := LightFactor(FaceTop, step, dayLen)
		assert.GreaterOrEqual(t, l, prev)
		prev = l
	}
	assert.Greater(t, LightFactor(FaceTop, midday, dayLen), LightFactor(FaceNorth, midday, dayLen))
	assert.Greater(t, LightFactor(FaceNorth, midday, dayLen), LightFactor(FaceEast, midday, dayLen))
	assert.Greater(t, LightFactor(FaceEast, midday, dayLen), LightFactor(FaceBottom, midday, dayLen))
}

func TestSkyColor(t *testing.T) {
	assert.Equal(t, skyDay, SkyColor(midday, dayLen))
	assert.Equal(t, skyNight, SkyColor(midnite, dayLen))
	assert.Equal(t, skyDawn, SkyColor(0, dayLen))
	assert.True(t, IsNight(midnite, dayLen))
	assert.False(t, IsNight(midday, dayLen))
}
