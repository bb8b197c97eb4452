package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"voxelbox/voxel/entity"
)

var cardinalYaw = map[Action]float64{
	Forward: entity.YawForward,
	Back:    entity.YawBack,
	Left:    entity.YawLeft,
	Right:   entity.YawRight,
}

// ApplyMovement runs one movement tick. Held directions translate the player
// along the world axes by speed; the player turns to face the most recent
// direction pressed. Jump and Crouch move straight up and down.
func ApplyMovement(p *entity.Player, keys *KeyState, speed float64) mgl64.Vec3 {
	var d mgl64.Vec3
	if keys.Down(Forward) {
		d[2] -= speed
	}
	if keys.Down(Back) {
		d[2] += speed
	}
	if keys.Down(Left) {
		d[0] -= speed
	}
	if keys.Down(Right) {
		d[0] += speed
	}
	if keys.Down(Jump) {
		d[1] += speed
	}
	if keys.Down(Crouch) {
		d[1] -= speed
	}
	if a, ok := keys.LastDirection(); ok {
		p.RotY = cardinalYaw[a]
	}
	p.Pos = p.Pos.Add(d)
	return d
}
