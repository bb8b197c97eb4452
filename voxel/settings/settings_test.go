package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	s := Defaults()
	s.Performance.RenderDistance = 14
	s.Performance.Particles = false
	s.Video.FOV = 90
	s.Controls.KeyBindings["forward"] = []string{"Z"}
	s.World.Seed = -77

	data, err := Export(s)
	require.NoError(t, err)
	got, err := Import(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestImportPartialKeepsDefaults(t *testing.T) {
	got, err := Import([]byte(`{"video": {"fov": 100}}`))
	require.NoError(t, err)
	want := Defaults()
	want.Video.FOV = 100
	assert.Equal(t, want, got)
}

func TestImportRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"not json":         `{"video":`,
		"range":            `{"performance": {"renderDistance": 500}}`,
		"unknown section":  `{"graphics": {}}`,
		"bad enum":         `{"gameplay": {"difficulty": "nightmare"}}`,
		"bad limiter":      `{"gameplay": {"saveThrottle": {"everyMs": 0, "n": 1}}}`,
		"wrong type":       `{"audio": {"master": "loud"}}`,
		"empty key":        `{"controls": {"keyBindings": {"jump": [""]}}}`,
		"top level string": `"settings"`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Import([]byte(in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestDefaultsValidate(t *testing.T) {
	data, err := Export(Defaults())
	require.NoError(t, err)
	_, err = Import(data)
	assert.NoError(t, err)
}

func TestCloneIsDeep(t *testing.T) {
	a := Defaults()
	b := a.Clone()
	b.Controls.KeyBindings["jump"][0] = "J"
	assert.Equal(t, "Space", a.Controls.KeyBindings["jump"][0])
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := Defaults()
	s.Audio.Music = 0.25
	require.NoError(t, ExportFile(path, s))
	got, err := ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestLimiter(t *testing.T) {
	l := Limiter{EveryMs: 1000, N: 3}.Limiter()
	assert.Equal(t, 3, l.Burst())
}
