package persist

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelbox/voxel/entity"
	"voxelbox/voxel/projection"
	"voxelbox/voxel/settings"
	"voxelbox/voxel/world"
)

func sampleSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	g := world.NewGenerator(9)
	store := world.NewStore()
	world.NewStreamer(g, store, nil, nil).Fill(world.ChunkCoord{}, 1)
	p := entity.NewPlayer("p1", "Alex", mgl64.Vec3{0.5, 30, 0.5})
	p.RotY = entity.YawLeft
	return &Snapshot{
		Header:       Header{Version: SnapshotVersion, Seed: 9, SavedAt: time.Unix(1700000000, 0).UTC()},
		Time:         1234,
		DayLength:    24000,
		Weather:      world.WeatherRain,
		Season:       world.Autumn,
		Dimension:    "overworld",
		Biome:        "Plains",
		CameraMode:   projection.ThirdPersonBack.String(),
		Player:       *p,
		Mobs:         []entity.Mob{*entity.NewMob("m1", entity.Creeper, mgl64.Vec3{3, 30, 3}, 1)},
		Inventory:    map[world.ItemKind]int{world.ItemDirt: 64, world.ItemDiamond: 2},
		Hotbar:       [9]world.ItemKind{world.ItemPickaxe, world.ItemDirt},
		Selected:     1,
		Structures:   world.ScatterStructures(g, 3, 20, 60),
		Chunks:       CaptureChunks(store),
		Stats:        entity.Stats{TicksPlayed: 99, Jumps: 3},
		Achievements: []string{"first_steps"},
	}
}

func TestSnapshotCodecRoundTrip(t *testing.T) {
	snap := sampleSnapshot(t)
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, snap))
	got, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestReadSnapshotRejectsVersion(t *testing.T) {
	_, err := ReadSnapshot(bytes.NewReader([]byte("{\"version\":7}\n{}")))
	assert.Error(t, err)
}

func TestRestoreChunks(t *testing.T) {
	snap := sampleSnapshot(t)
	store, err := RestoreChunks(snap.Chunks)
	require.NoError(t, err)
	assert.Equal(t, 9, store.ChunkCount())
	assert.Equal(t, len(snap.Chunks), store.ChunkCount())
}

func testGateway(t *testing.T, g Gateway) {
	ctx := context.Background()

	_, err := g.LoadWorld(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = g.LoadSettings(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	snap := sampleSnapshot(t)
	require.NoError(t, g.SaveWorld(ctx, snap))
	got, err := g.LoadWorld(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	s := settings.Defaults()
	s.Video.FOV = 85
	require.NoError(t, g.SaveSettings(ctx, s))
	gotS, err := g.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, gotS)

	require.NoError(t, g.Close())
}

func TestFileGateway(t *testing.T) {
	g, err := NewFileGateway(t.TempDir(), nil)
	require.NoError(t, err)
	testGateway(t, g)
}

func TestBadgerGatewayInMemory(t *testing.T) {
	g, err := OpenBadgerInMemory(nil)
	require.NoError(t, err)
	testGateway(t, g)
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{"", "file", "badger", "memory"} {
		g, err := Open(Config{Backend: backend, Dir: filepath.Join(dir, "b"+backend)}, nil)
		require.NoError(t, err, backend)
		require.NoError(t, g.Close())
	}
	_, err := Open(Config{Backend: "s3"}, nil)
	assert.Error(t, err)
}

func TestFileGatewayCorruptWorld(t *testing.T) {
	dir := t.TempDir()
	g, err := NewFileGateway(dir, nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, worldFile), []byte("garbage"), 0o644))
	_, err = g.LoadWorld(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestBackupRoundTrip(t *testing.T) {
	snap := sampleSnapshot(t)
	s := settings.Defaults()
	s.Performance.Clouds = false
	b := NewBackup(time.Unix(1700000100, 0), s, snap)

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, ExportBackupFile(path, b))
	got, err := ImportBackupFile(path)
	require.NoError(t, err)
	assert.Equal(t, b.Settings, got.Settings)
	assert.Equal(t, b.World, got.World)
	assert.Equal(t, []string{"first_steps"}, got.Achievements)
	assert.Equal(t, int64(99), got.Stats.TicksPlayed)
}

func TestImportBackupRejects(t *testing.T) {
	cases := map[string]string{
		"not json":       `{`,
		"missing world":  `{"version": 1, "settings": {}}`,
		"wrong version":  `{"version": 2, "settings": {}, "world": {"header": {"version": 1, "seed": 1}, "player": {"pos": [0,0,0]}, "chunks": []}}`,
		"bad settings":   `{"version": 1, "settings": {"video": {"fov": 500}}, "world": {"header": {"version": 1, "seed": 1}, "player": {"pos": [0,0,0]}, "chunks": []}}`,
		"short position": `{"version": 1, "settings": {}, "world": {"header": {"version": 1, "seed": 1}, "player": {"pos": [0]}, "chunks": []}}`,
		"bad chunk":      `{"version": 1, "settings": {}, "world": {"header": {"version": 1, "seed": 1}, "player": {"pos": [0,0,0]}, "chunks": [{"cx": 0, "cz": 0, "kinds": "AAAA"}]}}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ImportBackup([]byte(in))
			assert.ErrorIs(t, err, ErrInvalidBackup)
		})
	}
}

func TestImportBackupMinimal(t *testing.T) {
	b, err := ImportBackup([]byte(`{"version": 1, "settings": {}, "world": {"header": {"version": 1, "seed": 4}, "player": {"pos": [1,2,3]}, "chunks": []}}`))
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), b.Settings)
	assert.Equal(t, int64(4), b.World.Header.Seed)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, b.World.Player.Pos)
}
