// Package settings holds user-facing preferences and their JSON file format.
package settings

import (
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// ErrInvalid wraps every validation failure of an imported settings file.
var ErrInvalid = errors.New("invalid settings")

// Settings is the full preference tree. Field names are the export format.
type Settings struct {
	Performance Performance `json:"performance" yaml:"performance"`
	Video       Video       `json:"video" yaml:"video"`
	Controls    Controls    `json:"controls" yaml:"controls"`
	Audio       Audio       `json:"audio" yaml:"audio"`
	World       World       `json:"world" yaml:"world"`
	Gameplay    Gameplay    `json:"gameplay" yaml:"gameplay"`
}

type Performance struct {
	RenderDistance int     `json:"renderDistance" yaml:"renderDistance"`
	Particles      bool    `json:"particles" yaml:"particles"`
	Clouds         bool    `json:"clouds" yaml:"clouds"`
	HideBuried     bool    `json:"hideBuried" yaml:"hideBuried"`
	ChunkBudget    Limiter `json:"chunkBudget" yaml:"chunkBudget"`
}

type Video struct {
	FOV      float64 `json:"fov" yaml:"fov"` // degrees
	ShowFPS  bool    `json:"showFps" yaml:"showFps"`
	GUIScale int     `json:"guiScale" yaml:"guiScale"`
}

type Controls struct {
	KeyBindings map[string][]string `json:"keyBindings" yaml:"keyBindings"`
	Sensitivity float64             `json:"sensitivity" yaml:"sensitivity"`
}

type Audio struct {
	Master  float64 `json:"master" yaml:"master"`
	Music   float64 `json:"music" yaml:"music"`
	Effects float64 `json:"effects" yaml:"effects"`
}

type World struct {
	Seed             int64 `json:"seed" yaml:"seed"`
	AutoSave         bool  `json:"autoSave" yaml:"autoSave"`
	AutoSaveInterval int   `json:"autoSaveInterval" yaml:"autoSaveInterval"` // seconds
	DayLength        int   `json:"dayLength" yaml:"dayLength"`               // ticks
}

type Gameplay struct {
	Difficulty      string  `json:"difficulty" yaml:"difficulty"`
	GameMode        string  `json:"gameMode" yaml:"gameMode"`
	ShowCoordinates bool    `json:"showCoordinates" yaml:"showCoordinates"`
	TickRate        int     `json:"tickRate" yaml:"tickRate"`
	MoveSpeed       float64 `json:"moveSpeed" yaml:"moveSpeed"`
	SaveThrottle    Limiter `json:"saveThrottle" yaml:"saveThrottle"`
}

// Limiter is a token bucket: N actions every EveryMs milliseconds.
type Limiter struct {
	EveryMs int `json:"everyMs" yaml:"everyMs"`
	N       int `json:"n" yaml:"n"`
}

// Limiter builds the rate.Limiter described by l.
func (l Limiter) Limiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Duration(l.EveryMs)*time.Millisecond), l.N)
}

// Defaults returns a fresh copy of the built-in settings.
func Defaults() Settings {
	return Settings{
		Performance: Performance{
			RenderDistance: 10,
			Particles:      true,
			Clouds:         true,
			HideBuried:     true,
			ChunkBudget:    Limiter{EveryMs: 100, N: 2},
		},
		Video: Video{FOV: 70, ShowFPS: true, GUIScale: 1},
		Controls: Controls{
			KeyBindings: DefaultKeyBindings(),
			Sensitivity: 1,
		},
		Audio: Audio{Master: 1, Music: 0.6, Effects: 0.8},
		World: World{
			Seed:             12345,
			AutoSave:         true,
			AutoSaveInterval: 300,
			DayLength:        24000,
		},
		Gameplay: Gameplay{
			Difficulty:      "normal",
			GameMode:        "survival",
			ShowCoordinates: true,
			TickRate:        60,
			MoveSpeed:       0.5,
			SaveThrottle:    Limiter{EveryMs: 5000, N: 1},
		},
	}
}

// DefaultKeyBindings maps action names to host key names.
func DefaultKeyBindings() map[string][]string {
	return map[string][]string{
		"forward":         {"W", "ArrowUp"},
		"back":            {"S", "ArrowDown"},
		"left":            {"A", "ArrowLeft"},
		"right":           {"D", "ArrowRight"},
		"jump":            {"Space"},
		"crouch":          {"ShiftLeft", "ShiftRight"},
		"cycleCamera":     {"F5", "C"},
		"toggleInventory": {"E"},
		"toggleCrafting":  {"R"},
		"toggleMenu":      {"Escape"},
		"toggleDebug":     {"F3"},
		"saveNow":         {"F6"},
		"hotbar1":         {"Digit1"},
		"hotbar2":         {"Digit2"},
		"hotbar3":         {"Digit3"},
		"hotbar4":         {"Digit4"},
		"hotbar5":         {"Digit5"},
		"hotbar6":         {"Digit6"},
		"hotbar7":         {"Digit7"},
		"hotbar8":         {"Digit8"},
		"hotbar9":         {"Digit9"},
	}
}

// Clone deep-copies s.
func (s Settings) Clone() Settings {
	out := s
	if s.Controls.KeyBindings != nil {
		out.Controls.KeyBindings = make(map[string][]string, len(s.Controls.KeyBindings))
		for k, v := range s.Controls.KeyBindings {
			out.Controls.KeyBindings[k] = append([]string(nil), v...)
		}
	}
	return out
}
