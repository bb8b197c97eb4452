// Package projection maps world-space points to screen space for a camera.
package projection

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Near is the minimum view-space depth a point must exceed to be visible.
	Near = 0.1

	DefaultFOV = 70 * math.Pi / 180
)

// Mode selects how the camera is derived from the player.
type Mode uint8

const (
	FirstPerson Mode = iota
	ThirdPersonBack
	ThirdPersonFront

	modeCount
)

var modeNames = [...]string{"first_person", "third_person_back", "third_person_front"}

// Next returns the following mode in the fixed cycle.
func (m Mode) Next() Mode { return (m + 1) % modeCount }

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return "unknown"
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMode looks up a mode by name.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return FirstPerson, fmt.Errorf("unknown camera mode %q", s)
}

// Camera is a position plus yaw (RotY) and pitch (RotX) in radians.
// Yaw 0 looks down -Z; positive yaw turns towards -X. Positive pitch looks up.
type Camera struct {
	Pos  mgl64.Vec3
	RotX float64
	RotY float64
	FOV  float64
	Mode Mode
}

// Forward is the unit view direction.
func (c Camera) Forward() mgl64.Vec3 {
	cp := math.Cos(c.RotX)
	return mgl64.Vec3{-math.Sin(c.RotY) * cp, math.Sin(c.RotX), -math.Cos(c.RotY) * cp}
}

// Viewport is the screen size in pixels.
type Viewport struct {
	W, H int
}

func (v Viewport) Aspect() float64 {
	if v.H <= 0 {
		return 1
	}
	return float64(v.W) / float64(v.H)
}

// Projected is a screen-space point. Depth is view-space depth along the view
// axis; Distance is the euclidean distance to the camera. Scale is pixels per
// world unit at that depth.
type Projected struct {
	X, Y     float64
	Depth    float64
	Distance float64
	Scale    float64
}

// Projector caches the per-frame terms of a camera/viewport pair.
type Projector struct {
	cam   Camera
	vp    Viewport
	rot   mgl64.Mat3
	focal float64
}

func NewProjector(cam Camera, vp Viewport) *Projector {
	fov := cam.FOV
	if fov <= 0 || fov >= math.Pi {
		fov = DefaultFOV
	}
	f := 1 / math.Tan(fov/2)
	return &Projector{
		cam:   cam,
		vp:    vp,
		rot:   mgl64.Rotate3DX(-cam.RotX).Mul3(mgl64.Rotate3DY(-cam.RotY)),
		focal: f * float64(vp.H) / 2,
	}
}

func (p *Projector) Camera() Camera     { return p.cam }
func (p *Projector) Viewport() Viewport { return p.vp }

// View transforms a world point into camera space (camera looks down -Z).
func (p *Projector) View(pt mgl64.Vec3) mgl64.Vec3 {
	return p.rot.Mul3x1(pt.Sub(p.cam.Pos))
}

// Project maps pt to the screen. ok is false when the point is at or behind
// the near plane; such points must not be drawn.
func (p *Projector) Project(pt mgl64.Vec3) (Projected, bool) {
	d := pt.Sub(p.cam.Pos)
	rel := p.rot.Mul3x1(d)
	depth := -rel.Z()
	if depth <= Near || math.IsNaN(depth) {
		return Projected{}, false
	}
	s := p.focal / depth
	return Projected{
		X:        float64(p.vp.W)/2 + rel.X()*s,
		Y:        float64(p.vp.H)/2 - rel.Y()*s,
		Depth:    depth,
		Distance: d.Len(),
		Scale:    s,
	}, true
}

// Project is the one-shot form of Projector.Project.
func Project(pt mgl64.Vec3, cam Camera, vp Viewport) (Projected, bool) {
	return NewProjector(cam, vp).Project(pt)
}
