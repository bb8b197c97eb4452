// Package hud assembles the heads-up display contents. Painting is done by
// the renderer; this package only decides what is shown.
package hud

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelbox/voxel/world"
)

type Slot struct {
	Item  world.ItemKind
	Count int
}

// Snapshot is everything the overlay shows for one frame.
type Snapshot struct {
	FPS        int
	ShowFPS    bool
	CameraMode string
	Clock      string
	Weather    string
	Season     string
	Pos        mgl64.Vec3
	ShowCoords bool
	Biome      string
	Dimension  string
	LastSave   string

	Health float64 // fractions in [0, 1]
	Hunger float64
	XP     float64
	Level  int

	Hotbar   [9]Slot
	Selected int
	Alert    string

	ShowInventory bool
	ShowCrafting  bool
	ShowMenu      bool
	ShowDebug     bool
	Inventory     []Slot
	Debug         []string
}

// Clock formats world time as a 24h clock. Time 0 is 06:00 (sunrise).
func Clock(worldTime, dayLength float64) string {
	if dayLength <= 0 {
		return "--:--"
	}
	day := math.Mod(worldTime, dayLength)
	if day < 0 {
		day += dayLength
	}
	minutes := int(day/dayLength*24*60) + 6*60
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Fraction is v/max clamped to [0, 1]; 0 when max is not positive.
func Fraction(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, v/max))
}

// Lines returns the status text block, top to bottom.
func (s *Snapshot) Lines() []string {
	var out []string
	if s.ShowFPS {
		out = append(out, fmt.Sprintf("FPS %d", s.FPS))
	}
	out = append(out,
		"Camera "+s.CameraMode,
		fmt.Sprintf("%s %s %s", s.Clock, s.Weather, s.Season),
	)
	if s.ShowCoords {
		out = append(out, fmt.Sprintf("XYZ %.1f %.1f %.1f", s.Pos.X(), s.Pos.Y(), s.Pos.Z()))
	}
	out = append(out, fmt.Sprintf("%s (%s)", s.Biome, s.Dimension))
	if s.LastSave == "" {
		out = append(out, "Saved never")
	} else {
		out = append(out, "Saved "+s.LastSave)
	}
	return out
}
