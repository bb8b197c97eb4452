// Package entity holds the player, the mob population and the camera derived
// from them.
package entity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// GameMode mirrors the classic survival/creative split.
type GameMode uint8

const (
	Survival GameMode = iota
	Creative
	Spectator
)

var gameModeNames = [...]string{"survival", "creative", "spectator"}

func (m GameMode) String() string {
	if int(m) < len(gameModeNames) {
		return gameModeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

func (m GameMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *GameMode) UnmarshalText(b []byte) error {
	v, ok := ParseGameMode(string(b))
	if !ok {
		return fmt.Errorf("unknown game mode %q", string(b))
	}
	*m = v
	return nil
}

func ParseGameMode(s string) (GameMode, bool) {
	for i, n := range gameModeNames {
		if n == s {
			return GameMode(i), true
		}
	}
	return Survival, false
}

// Cardinal yaw values. Yaw 0 faces -Z.
const (
	YawForward = 0.0
	YawBack    = math.Pi
	YawLeft    = math.Pi / 2
	YawRight   = -math.Pi / 2
)

// Player is the single controllable character. Pos is the feet position.
type Player struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Pos       mgl64.Vec3 `json:"pos"`
	RotY      float64    `json:"rotY"`
	Health    float64    `json:"health"`
	MaxHealth float64    `json:"maxHealth"`
	Hunger    float64    `json:"hunger"`
	MaxHunger float64    `json:"maxHunger"`
	XP        float64    `json:"xp"`
	Level     int        `json:"level"`
	Oxygen    float64    `json:"oxygen"`
	Armor     float64    `json:"armor"`
	Mode      GameMode   `json:"gameMode"`
}

// NewPlayer returns a player with full health and hunger at pos.
func NewPlayer(id, name string, pos mgl64.Vec3) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Pos:       pos,
		RotY:      YawForward,
		Health:    20,
		MaxHealth: 20,
		Hunger:    20,
		MaxHunger: 20,
		Oxygen:    300,
	}
}

// Forward is the horizontal unit vector the player faces.
func (p *Player) Forward() mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(p.RotY), 0, -math.Cos(p.RotY)}
}

// XPToNext is the experience needed to leave the current level.
func (p *Player) XPToNext() float64 { return float64(7 + 2*p.Level) }

// GainXP adds experience and rolls over levels.
func (p *Player) GainXP(v float64) {
	p.XP += v
	for p.XP >= p.XPToNext() {
		p.XP -= p.XPToNext()
		p.Level++
	}
}

// Stats are lifetime counters persisted with the world.
type Stats struct {
	TicksPlayed       int64   `json:"ticksPlayed"`
	DistanceWalked    float64 `json:"distanceWalked"`
	Jumps             int     `json:"jumps"`
	Saves             int     `json:"saves"`
	CameraSwitches    int     `json:"cameraSwitches"`
	StructuresVisited int     `json:"structuresVisited"`
	NightsSurvived    int     `json:"nightsSurvived"`
}
