package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"voxelbox/voxel/entity"
	"voxelbox/voxel/hud"
	"voxelbox/voxel/metrics"
	"voxelbox/voxel/persist"
	"voxelbox/voxel/projection"
	"voxelbox/voxel/raster"
	"voxelbox/voxel/render"
	"voxelbox/voxel/settings"
	"voxelbox/voxel/sim"
	"voxelbox/voxel/world"
)

// ErrStopped is returned by Step after Stop.
var ErrStopped = errors.New("game stopped")

const saveTimeout = 10 * time.Second

// Options configure Open. Gateway is required; the rest have defaults.
type Options struct {
	Settings settings.Settings
	Gateway  persist.Gateway
	Metrics  *metrics.Metrics
	Log      *zap.Logger
	Viewport projection.Viewport
}

// Game is the single writer of the game state. Its methods must be called
// from one goroutine, the host's frame loop.
type Game struct {
	log      *zap.Logger
	gw       persist.Gateway
	metrics  *metrics.Metrics
	settings settings.Settings
	bindings *sim.Bindings

	state    *State
	gen      *world.Generator
	world    *world.Store
	streamer *world.Streamer
	entities *entity.Store
	rng      *rand.Rand

	keys     sim.KeyState
	clock    *sim.Clock
	saves    *rate.Limiter
	renderer *render.Renderer
	procs    *hud.ProcessSampler
	canvas   *raster.Canvas
	pending  projection.Viewport

	now        time.Time
	started    time.Time
	lastStep   time.Time
	lastAuto   time.Time
	fpsSince   time.Time
	fpsFrames  int
	moving     bool
	saveWanted bool
	frame      render.FrameStats
	stopped    bool
}

// Open loads the saved world from the gateway, or creates a fresh one when
// nothing was saved or the save cannot be read.
func Open(ctx context.Context, opts Options) (*Game, error) {
	if opts.Gateway == nil {
		return nil, errors.New("game: nil gateway")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Viewport.W <= 0 || opts.Viewport.H <= 0 {
		opts.Viewport = projection.Viewport{W: 320, H: 240}
	}
	s := opts.Settings
	if s.Gameplay.TickRate == 0 {
		s = settings.Defaults()
	}

	g := &Game{
		log:     log.With(zap.String("component", "game")),
		gw:      opts.Gateway,
		metrics: opts.Metrics,
		procs:   hud.NewProcessSampler(time.Second),
		canvas:  raster.NewCanvas(opts.Viewport.W, opts.Viewport.H),
		pending: opts.Viewport,
	}
	if err := g.applySettings(s); err != nil {
		g.log.Warn("settings rejected, using defaults", zap.Error(err))
		if err := g.applySettings(settings.Defaults()); err != nil {
			return nil, err
		}
	}

	snap, err := g.gw.LoadWorld(ctx)
	switch {
	case err == nil:
		if err := g.restore(snap); err != nil {
			g.log.Warn("saved world unusable, generating a new one", zap.Error(err))
			g.fresh(g.settings.World.Seed)
		} else {
			g.log.Info("world loaded", zap.Int64("seed", g.state.Seed), zap.Int("chunks", g.world.ChunkCount()))
		}
	case errors.Is(err, persist.ErrNotFound):
		g.fresh(g.settings.World.Seed)
		g.log.Info("world created", zap.Int64("seed", g.state.Seed))
	default:
		g.log.Warn("world load failed, generating a new one", zap.Error(err))
		g.fresh(g.settings.World.Seed)
	}
	return g, nil
}

// fresh builds a new world around the origin.
func (g *Game) fresh(seed int64) {
	g.gen = world.NewGenerator(seed)
	g.world = world.NewStore()
	g.rng = rand.New(rand.NewSource(seed))
	g.newStreamer()
	g.streamer.Fill(world.ChunkOf(0, 0), g.fillRadius())

	spawn := g.gen.SpawnPoint(0, 0)
	id := uuid.Must(uuid.NewRandomFromReader(g.rng)).String()
	p := entity.NewPlayer(id, "player", mgl64.Vec3{float64(spawn.X) + 0.5, float64(spawn.Y), float64(spawn.Z) + 0.5})
	if m, ok := entity.ParseGameMode(g.settings.Gameplay.GameMode); ok {
		p.Mode = m
	}
	g.entities = entity.NewStore(p)
	g.entities.Mobs = entity.SpawnPopulation(g.rng, g.surface, p.Pos, passiveMobs, hostileMobs, mobSpawnRadius)

	bar, inv := DefaultHotbar()
	g.state = &State{
		Seed:       seed,
		DayLength:  float64(g.settings.World.DayLength),
		Dimension:  Overworld,
		Inventory:  inv,
		Hotbar:     bar,
		Structures: world.ScatterStructures(g.gen, StructureCount, structureMinR, structureMaxR),
	}
	g.state.WeatherUntil = g.nextWeatherChange()
	g.state.Biome = world.Biome(spawn.X, spawn.Z)
}

func (g *Game) restore(snap *persist.Snapshot) error {
	store, err := persist.RestoreChunks(snap.Chunks)
	if err != nil {
		return err
	}
	g.gen = world.NewGenerator(snap.Header.Seed)
	g.world = store
	g.rng = rand.New(rand.NewSource(snap.Header.Seed ^ int64(snap.Time)))
	g.newStreamer()

	p := snap.Player
	g.entities = entity.NewStore(&p)
	mode, err := projection.ParseMode(snap.CameraMode)
	if err != nil {
		g.log.Warn("saved camera mode ignored", zap.Error(err))
	}
	g.entities.CameraMode = mode
	for i := range snap.Mobs {
		m := snap.Mobs[i]
		g.entities.Mobs = append(g.entities.Mobs, &m)
	}

	inv := snap.Inventory
	if inv == nil {
		inv = map[world.ItemKind]int{}
	}
	dayLength := snap.DayLength
	if dayLength <= 0 {
		dayLength = float64(g.settings.World.DayLength)
	}
	dim := snap.Dimension
	if dim == "" {
		dim = Overworld
	}
	g.state = &State{
		Seed:         snap.Header.Seed,
		Time:         snap.Time,
		DayLength:    dayLength,
		Weather:      snap.Weather,
		WeatherUntil: snap.WeatherUntil,
		Season:       snap.Season,
		Dimension:    dim,
		Biome:        snap.Biome,
		Inventory:    inv,
		Hotbar:       snap.Hotbar,
		Selected:     clampSlot(snap.Selected),
		Structures:   snap.Structures,
		Stats:        snap.Stats,
		Achievements: snap.Achievements,
		LastSave:     snap.Header.SavedAt,
	}
	return nil
}

func (g *Game) newStreamer() {
	g.streamer = world.NewStreamer(g.gen, g.world, g.settings.Performance.ChunkBudget.Limiter(), g.log)
	g.streamer.OnGenerate = func(world.ChunkCoord) { g.metrics.ChunkGenerated() }
}

// fillRadius is the chunk radius generated up front for a new world.
func (g *Game) fillRadius() int {
	return (g.settings.Performance.RenderDistance+world.ChunkSize-1)/world.ChunkSize + 1
}

// surface is the heightmap mobs walk on: terrain, or the water surface.
func (g *Game) surface(x, z int) int {
	return max(g.gen.Height(x, z), g.gen.SeaLevel)
}

// applySettings installs s. Bindings are checked first so a bad file
// changes nothing.
func (g *Game) applySettings(s settings.Settings) error {
	b, err := sim.NewBindings(s.Controls.KeyBindings)
	if err != nil {
		return fmt.Errorf("%w: %v", settings.ErrInvalid, err)
	}
	g.settings = s.Clone()
	g.bindings = b
	g.keys.Reset()
	g.clock = sim.NewClock(s.Gameplay.TickRate)
	g.saves = s.Gameplay.SaveThrottle.Limiter()
	opts := render.Options{
		RenderDistance: s.Performance.RenderDistance,
		Particles:      s.Performance.Particles,
		Clouds:         s.Performance.Clouds,
		HideBuried:     s.Performance.HideBuried,
	}
	if g.renderer == nil {
		g.renderer = render.New(opts, s.World.Seed)
	} else {
		g.renderer.SetOptions(opts)
	}
	if g.streamer != nil {
		g.streamer.SetLimiter(s.Performance.ChunkBudget.Limiter())
	}
	if g.state != nil {
		g.state.DayLength = float64(s.World.DayLength)
	}
	return nil
}

// SetViewport resizes the frame. It takes effect on the next Step.
func (g *Game) SetViewport(w, h int) {
	g.pending = projection.Viewport{W: w, H: h}
}

// Canvas is the most recently rendered frame.
func (g *Game) Canvas() *raster.Canvas { return g.canvas }

func (g *Game) State() *State                 { return g.state }
func (g *Game) Player() *entity.Player        { return g.entities.Player }
func (g *Game) Entities() *entity.Store       { return g.entities }
func (g *Game) World() *world.Store           { return g.world }
func (g *Game) Settings() settings.Settings   { return g.settings.Clone() }
func (g *Game) FrameStats() render.FrameStats { return g.frame }

// Step runs one frame: due simulation ticks, chunk streaming, rendering,
// the FPS counter and any pending save.
func (g *Game) Step(now time.Time) error {
	if g.stopped {
		return ErrStopped
	}
	g.now = now
	if g.started.IsZero() {
		g.started, g.lastStep, g.lastAuto, g.fpsSince = now, now, now, now
	}
	ticks := g.clock.Advance(now.Sub(g.lastStep))
	g.lastStep = now
	for i := 0; i < ticks; i++ {
		g.tick()
	}
	g.metrics.Ticks(ticks)

	p := g.entities.Player.Pos
	px, pz := int(math.Floor(p.X())), int(math.Floor(p.Z()))
	g.streamer.Ensure(now, px, pz, g.settings.Performance.RenderDistance)
	g.state.Biome = world.Biome(px, pz)

	g.draw(now)
	g.countFrame(now)

	if g.state.UI.Alert != "" && now.After(g.state.UI.alertUntil) {
		g.state.UI.Alert = ""
	}
	if g.saveWanted {
		g.saveWanted = false
		g.SaveNow(now)
	}
	if g.settings.World.AutoSave && g.settings.World.AutoSaveInterval > 0 &&
		now.Sub(g.lastAuto) >= time.Duration(g.settings.World.AutoSaveInterval)*time.Second {
		g.lastAuto = now
		_ = g.save("auto", now)
	}
	return nil
}

func (g *Game) draw(now time.Time) {
	if g.pending.W != g.canvas.W || g.pending.H != g.canvas.H {
		g.canvas = raster.NewCanvas(g.pending.W, g.pending.H)
	}
	start := time.Now()
	cam := g.entities.Camera(mgl64.DegToRad(g.settings.Video.FOV))
	scene := &render.Scene{
		World:        g.world,
		Player:       g.entities.Player,
		PlayerMoving: g.moving,
		Mobs:         g.entities.Mobs,
		Camera:       cam,
		Time:         g.state.Time,
		DayLength:    g.state.DayLength,
		Weather:      g.state.Weather,
		Biome:        g.state.Biome,
		HUD:          g.HUD(),
	}
	g.frame = g.renderer.Frame(g.canvas, scene, now.Sub(g.started).Seconds())
	g.metrics.Frame(time.Since(start), g.frame.Drawn, g.frame.CulledCorner, g.frame.Particles)
}

func (g *Game) countFrame(now time.Time) {
	el := now.Sub(g.fpsSince)
	if el <= 0 {
		return
	}
	g.fpsFrames++
	if el >= time.Second {
		g.state.FPS = int(math.Round(float64(g.fpsFrames) / el.Seconds()))
		g.fpsFrames = 0
		g.fpsSince = now
		g.metrics.FPS(g.state.FPS)
	}
}

// Run drives Step from a ticker at fps until ctx is done or frames frames
// have run (0 runs forever).
func (g *Game) Run(ctx context.Context, fps, frames int) error {
	if fps <= 0 {
		fps = g.settings.Gameplay.TickRate
	}
	t := time.NewTicker(time.Second / time.Duration(fps))
	defer t.Stop()
	for n := 0; frames <= 0 || n < frames; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if err := g.Step(now); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stop saves the world one last time and closes the gateway. Later calls do
// nothing.
func (g *Game) Stop() error {
	if g.stopped {
		return nil
	}
	g.stopped = true
	now := g.now
	if now.IsZero() {
		now = time.Now()
	}
	err := g.save("shutdown", now)
	if cerr := g.gw.Close(); cerr != nil && err == nil {
		err = cerr
	}
	g.log.Info("game stopped", zap.Int64("ticks", g.state.Stats.TicksPlayed), zap.Error(err))
	return err
}

func (g *Game) alert(now time.Time, msg string) {
	g.state.UI.Alert = msg
	g.state.UI.alertUntil = now.Add(alertDuration)
}

func clampSlot(i int) int {
	if i < 0 || i >= HotbarSize {
		return 0
	}
	return i
}
