package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelbox/hal"
	"voxelbox/voxel/persist"
	"voxelbox/voxel/settings"
)

type testFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFB(w, h int) *testFB { return &testFB{w: w, h: h, buf: make([]byte, w*h*4)} }

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGBA8888 }
func (f *testFB) StrideBytes() int        { return f.w * 4 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) ClearRGB(r, g, b uint8)  {}

func (f *testFB) Present() error {
	f.presents++
	return nil
}

type testKeyboard struct{ ch chan hal.KeyEvent }

func (k testKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

type testHAL struct {
	fb  *testFB
	kbd testKeyboard
	clk *testClock
}

func newTestHAL(w, h int) *testHAL {
	return &testHAL{
		fb:  newTestFB(w, h),
		kbd: testKeyboard{ch: make(chan hal.KeyEvent, 16)},
		clk: &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func (h *testHAL) Display() hal.Display { return h }
func (h *testHAL) Input() hal.Input     { return h }
func (h *testHAL) Clock() hal.Clock     { return h.clk }

func (h *testHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *testHAL) Keyboard() hal.Keyboard       { return h.kbd }

func seedSettings(t *testing.T, dir string) {
	t.Helper()
	s := settings.Defaults()
	s.Performance.RenderDistance = 4
	s.Performance.Particles = false
	s.Performance.Clouds = false
	s.World.AutoSave = false
	gw, err := persist.NewFileGateway(dir, nil)
	require.NoError(t, err)
	require.NoError(t, gw.SaveSettings(context.Background(), s))
}

func newTestApp(t *testing.T, h *testHAL) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	seedSettings(t, dir)
	cfg := DefaultConfig()
	cfg.Persist = persist.Config{Backend: "file", Dir: dir}
	a, err := New(context.Background(), h, cfg, nil)
	require.NoError(t, err)
	return a, dir
}

func TestStepPaintsAndPresents(t *testing.T) {
	h := newTestHAL(64, 48)
	a, _ := newTestApp(t, h)
	defer a.Close()

	assert.Equal(t, 4, a.Game().Settings().Performance.RenderDistance, "saved settings were not loaded")

	h.clk.now = h.clk.now.Add(50 * time.Millisecond)
	require.NoError(t, a.Step())
	assert.Equal(t, 1, h.fb.presents)

	painted := false
	for i := 3; i < len(h.fb.buf); i += 4 {
		if h.fb.buf[i] != 0 {
			painted = true
			break
		}
	}
	assert.True(t, painted, "framebuffer still blank after a step")
}

func TestStepForwardsKeyEvents(t *testing.T) {
	h := newTestHAL(64, 48)
	a, _ := newTestApp(t, h)
	defer a.Close()

	h.kbd.ch <- hal.KeyEvent{Key: "F3", Press: true}
	h.kbd.ch <- hal.KeyEvent{Key: "F3", Press: false}
	require.NoError(t, a.Step())
	assert.True(t, a.Game().State().UI.Debug)
	assert.Empty(t, h.kbd.ch)
}

func TestStepFollowsFramebufferSize(t *testing.T) {
	h := newTestHAL(64, 48)
	a, _ := newTestApp(t, h)
	defer a.Close()

	require.NoError(t, a.Step())
	h.fb = newTestFB(80, 40)
	h.clk.now = h.clk.now.Add(20 * time.Millisecond)
	require.NoError(t, a.Step())

	w, hh := a.Game().Canvas().Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 40, hh)
}

func TestCloseSavesOnce(t *testing.T) {
	h := newTestHAL(32, 24)
	a, dir := newTestApp(t, h)

	require.NoError(t, a.Step())
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	_, err := os.Stat(filepath.Join(dir, "world.snap.zst"))
	assert.NoError(t, err)
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Persist.Backend = "tape"
	_, err := New(context.Background(), newTestHAL(8, 8), cfg, nil)
	assert.Error(t, err)
}

func TestRunnerReportsApp(t *testing.T) {
	dir := t.TempDir()
	seedSettings(t, dir)
	cfg := DefaultConfig()
	cfg.Persist = persist.Config{Backend: "file", Dir: dir}

	var got *App
	step, err := Runner(context.Background(), cfg, nil, func(a *App) { got = a })(newTestHAL(16, 16))
	require.NoError(t, err)
	require.NotNil(t, got)
	defer got.Close()
	assert.NoError(t, step())
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "voxelbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
persist:
  backend: badger
  dir: /tmp/vb
metricsAddr: ":9100"
window:
  width: 640
  height: 480
  scale: 0
`), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "badger", cfg.Persist.Backend)
	assert.Equal(t, "/tmp/vb", cfg.Persist.Dir)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 1, cfg.Window.Scale)
	assert.Equal(t, 60, cfg.Headless.Hz, "unset sections keep defaults")

	t.Setenv(ConfigEnv, path)
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "badger", cfg.Persist.Backend)

	require.NoError(t, os.WriteFile(path, []byte(`
headless:
  frames: 30
  keys:
    - {frame: 2, key: W, press: true}
    - {frame: 9, key: W}
`), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	hc := cfg.Headless.HAL()
	assert.Equal(t, uint64(30), hc.Frames)
	require.Len(t, hc.Keys, 2)
	assert.Equal(t, hal.ScriptedKey{Frame: 2, KeyEvent: hal.KeyEvent{Key: "W", Press: true}}, hc.Keys[0])
	assert.False(t, hc.Keys[1].Press)

	require.NoError(t, os.WriteFile(path, []byte("window: [oops"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}
