package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voxelbox/voxel/persist"
	"voxelbox/voxel/settings"
)

func testOptions(t *testing.T) options {
	t.Helper()
	return options{dataDir: t.TempDir(), backend: "file", frames: 3, fps: 200}
}

func seed(t *testing.T, o options) {
	t.Helper()
	s := settings.Defaults()
	s.Performance.RenderDistance = 2
	s.Performance.Particles = false
	s.Performance.Clouds = false
	s.World.AutoSave = false
	gw, err := persist.NewFileGateway(o.dataDir, nil)
	require.NoError(t, err)
	require.NoError(t, gw.SaveSettings(context.Background(), s))
}

func TestSimulateThenInspect(t *testing.T) {
	o := testOptions(t)
	seed(t, o)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, run(ctx, "simulate", o, &out, zap.NewNop()))
	assert.Contains(t, out.String(), "simulated to")

	out.Reset()
	require.NoError(t, run(ctx, "inspect", o, &out, zap.NewNop()))
	assert.Contains(t, out.String(), "seed")
	assert.Contains(t, out.String(), "chunks")
}

func TestInspectWithoutSave(t *testing.T) {
	err := run(context.Background(), "inspect", testOptions(t), &bytes.Buffer{}, zap.NewNop())
	assert.ErrorIs(t, err, persist.ErrNotFound)
}

func TestSettingsRoundTrip(t *testing.T) {
	o := testOptions(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, run(ctx, "export-settings", o, &out, zap.NewNop()))
	s, err := settings.Import(out.Bytes())
	require.NoError(t, err)

	s.Performance.RenderDistance = 7
	o.in = filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, settings.ExportFile(o.in, s))
	require.NoError(t, run(ctx, "import-settings", o, &out, zap.NewNop()))

	gw, err := persist.NewFileGateway(o.dataDir, nil)
	require.NoError(t, err)
	got, err := gw.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Performance.RenderDistance)
}

func TestImportSettingsRejectsInvalid(t *testing.T) {
	o := testOptions(t)
	o.in = filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(o.in, []byte(`{"performance": {"renderDistance": 99}}`), 0o644))
	assert.Error(t, run(context.Background(), "import-settings", o, &bytes.Buffer{}, zap.NewNop()))
}

func TestBackupIntoFreshSave(t *testing.T) {
	o := testOptions(t)
	seed(t, o)
	ctx := context.Background()
	require.NoError(t, run(ctx, "simulate", o, &bytes.Buffer{}, zap.NewNop()))

	o.out = filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, run(ctx, "export-backup", o, &bytes.Buffer{}, zap.NewNop()))

	dst := testOptions(t)
	dst.in = o.out
	require.NoError(t, run(ctx, "import-backup", dst, &bytes.Buffer{}, zap.NewNop()))

	var a, b bytes.Buffer
	require.NoError(t, run(ctx, "inspect", o, &a, zap.NewNop()))
	require.NoError(t, run(ctx, "inspect", dst, &b, zap.NewNop()))
	assert.Equal(t, a.String(), b.String())
}

func TestUnknownCommand(t *testing.T) {
	assert.Error(t, run(context.Background(), "frobnicate", testOptions(t), &bytes.Buffer{}, zap.NewNop()))
}

func TestExportSettingsWritesJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "export-settings", testOptions(t), &out, zap.NewNop()))
	assert.True(t, json.Valid(out.Bytes()), "export-settings output is not JSON")
	assert.Contains(t, usage, "settings JSON document")
}
