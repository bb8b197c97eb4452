package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"voxelbox/hal"
	"voxelbox/voxel/persist"
)

// ConfigEnv names the environment variable consulted when no -config flag is given.
const ConfigEnv = "VOXELBOX_CONFIG"

// Config is the host configuration. Game settings live in the save, not here.
type Config struct {
	Persist     persist.Config `yaml:"persist"`
	MetricsAddr string         `yaml:"metricsAddr"`
	Window      WindowConfig   `yaml:"window"`
	Headless    HeadlessConfig `yaml:"headless"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"`
}

type HeadlessConfig struct {
	Hz     int           `yaml:"hz"`
	Frames uint64        `yaml:"frames"`
	Width  int           `yaml:"width"`
	Height int           `yaml:"height"`
	Keys   []ScriptedKey `yaml:"keys"`
}

// ScriptedKey presses or releases Key at Frame of a headless run.
type ScriptedKey struct {
	Frame uint64 `yaml:"frame"`
	Key   string `yaml:"key"`
	Press bool   `yaml:"press"`
}

// HAL converts the config to the headless runner's form.
func (c HeadlessConfig) HAL() hal.HeadlessConfig {
	keys := make([]hal.ScriptedKey, 0, len(c.Keys))
	for _, k := range c.Keys {
		keys = append(keys, hal.ScriptedKey{Frame: k.Frame, KeyEvent: hal.KeyEvent{Key: k.Key, Press: k.Press}})
	}
	return hal.HeadlessConfig{
		Enabled: true,
		Hz:      c.Hz,
		Frames:  c.Frames,
		Width:   c.Width,
		Height:  c.Height,
		Keys:    keys,
	}
}

func DefaultConfig() Config {
	return Config{
		Persist:  persist.Config{Backend: "file", Dir: "data"},
		Window:   WindowConfig{Width: 960, Height: 720, Scale: 2},
		Headless: HeadlessConfig{Hz: 60, Width: 320, Height: 240},
	}
}

// LoadConfig reads path over the defaults. An empty path falls back to
// $VOXELBOX_CONFIG; a missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Window.Scale <= 0 {
		cfg.Window.Scale = 1
	}
	return cfg, nil
}
