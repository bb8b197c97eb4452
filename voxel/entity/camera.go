package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelbox/voxel/projection"
)

const (
	EyeHeight       = 1.62
	ThirdPersonGap  = 4.0
	thirdPersonLift = 1.0
)

// DeriveCamera places the camera for mode relative to p.
func DeriveCamera(p *Player, mode projection.Mode, fov float64) projection.Camera {
	eye := p.Pos.Add(mgl64.Vec3{0, EyeHeight, 0})
	cam := projection.Camera{FOV: fov, Mode: mode}
	switch mode {
	case projection.ThirdPersonBack:
		cam.Pos = eye.Sub(p.Forward().Mul(ThirdPersonGap)).Add(mgl64.Vec3{0, thirdPersonLift, 0})
		cam.RotY, cam.RotX = lookAt(cam.Pos, eye)
	case projection.ThirdPersonFront:
		cam.Pos = eye.Add(p.Forward().Mul(ThirdPersonGap)).Add(mgl64.Vec3{0, thirdPersonLift, 0})
		cam.RotY, cam.RotX = lookAt(cam.Pos, eye)
	default:
		cam.Mode = projection.FirstPerson
		cam.Pos = eye
		cam.RotY = p.RotY
	}
	return cam
}

// lookAt returns the yaw and pitch that aim from at target.
func lookAt(from, target mgl64.Vec3) (yaw, pitch float64) {
	d := target.Sub(from)
	yaw = math.Atan2(-d.X(), -d.Z())
	pitch = math.Atan2(d.Y(), math.Hypot(d.X(), d.Z()))
	return yaw, pitch
}
