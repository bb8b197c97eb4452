package entity

import (
	"math/rand"

	"voxelbox/voxel/projection"
)

// Store owns the player, the mob population and the camera mode.
type Store struct {
	Player     *Player
	Mobs       []*Mob
	CameraMode projection.Mode
	Brain      Brain
}

func NewStore(p *Player) *Store {
	return &Store{Player: p, Brain: DefaultBrain()}
}

// CycleCamera advances the camera mode and returns the new one.
func (s *Store) CycleCamera() projection.Mode {
	s.CameraMode = s.CameraMode.Next()
	return s.CameraMode
}

// Camera derives the current camera from the player.
func (s *Store) Camera(fov float64) projection.Camera {
	return DeriveCamera(s.Player, s.CameraMode, fov)
}

// Tick runs one AI step for the population.
func (s *Store) Tick(rng *rand.Rand, surface Heightmap) {
	s.Brain.Step(s.Mobs, s.Player, rng, surface)
}

// Hostiles counts hostile mobs within r blocks of the player.
func (s *Store) Hostiles(r float64) int {
	n := 0
	for _, m := range s.Mobs {
		if m.Hostile() && horizontalDist(m.Pos, s.Player.Pos) <= r {
			n++
		}
	}
	return n
}
