package entity

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"voxelbox/voxel/raster"
)

// MobKind is a closed set of creature species.
type MobKind uint8

const (
	Pig MobKind = iota
	Cow
	Sheep
	Chicken
	Villager
	Wolf
	Zombie
	Skeleton
	Creeper
	Spider
	Enderman

	mobKindCount
)

// PartRole tells the renderer how a part animates.
type PartRole uint8

const (
	RoleBody PartRole = iota
	RoleHead
	RoleLeg
	RoleArm
)

// Part is one box of a creature model. Offset is the box center relative to the
// feet in the model frame (+X right, +Y up, -Z forward). Swing is the phase
// sign of the walk cycle for limbs, 0 for rigid parts.
type Part struct {
	Role   PartRole
	Offset mgl64.Vec3
	Size   mgl64.Vec3
	Color  raster.Color
	Swing  float64
}

// Species is the lookup row for a MobKind.
type Species struct {
	Name      string
	Hostile   bool
	MaxHealth float64
	Speed     float64 // blocks per tick while wandering
	Height    float64
	Eyes      raster.Color
	Parts     []Part
}

var species = [mobKindCount]Species{
	Pig:      {Name: "pig", MaxHealth: 10, Speed: 0.03, Height: 0.9, Eyes: raster.RGB(20, 20, 20), Parts: quadruped(raster.RGB(240, 160, 160), raster.RGB(245, 175, 175), 0.6, 0.5, 0.9, 0.35, 0.5)},
	Cow:      {Name: "cow", MaxHealth: 10, Speed: 0.03, Height: 1.4, Eyes: raster.RGB(20, 20, 20), Parts: quadruped(raster.RGB(70, 50, 40), raster.RGB(230, 230, 230), 0.8, 0.7, 1.2, 0.6, 0.55)},
	Sheep:    {Name: "sheep", MaxHealth: 8, Speed: 0.03, Height: 1.2, Eyes: raster.RGB(20, 20, 20), Parts: quadruped(raster.RGB(235, 235, 235), raster.RGB(200, 170, 150), 0.8, 0.7, 1.1, 0.5, 0.45)},
	Chicken:  {Name: "chicken", MaxHealth: 4, Speed: 0.025, Height: 0.8, Eyes: raster.RGB(20, 20, 20), Parts: bird(raster.RGB(250, 250, 250), raster.RGB(240, 200, 60))},
	Villager: {Name: "villager", MaxHealth: 20, Speed: 0.02, Height: 1.95, Eyes: raster.RGB(40, 120, 40), Parts: biped(raster.RGB(120, 80, 50), raster.RGB(190, 140, 110), raster.RGB(90, 60, 40), 1)},
	Wolf:     {Name: "wolf", MaxHealth: 8, Speed: 0.05, Height: 0.85, Eyes: raster.RGB(20, 20, 20), Parts: quadruped(raster.RGB(210, 210, 205), raster.RGB(220, 220, 215), 0.4, 0.4, 0.9, 0.4, 0.35)},
	Zombie:   {Name: "zombie", Hostile: true, MaxHealth: 20, Speed: 0.035, Height: 1.95, Eyes: raster.RGB(200, 20, 20), Parts: biped(raster.RGB(40, 160, 170), raster.RGB(90, 140, 70), raster.RGB(60, 60, 150), 1)},
	Skeleton: {Name: "skeleton", Hostile: true, MaxHealth: 20, Speed: 0.04, Height: 1.99, Eyes: raster.RGB(200, 20, 20), Parts: biped(raster.RGB(200, 200, 200), raster.RGB(220, 220, 220), raster.RGB(180, 180, 180), 0.7)},
	Creeper:  {Name: "creeper", Hostile: true, MaxHealth: 20, Speed: 0.035, Height: 1.7, Eyes: raster.RGB(10, 10, 10), Parts: creeper(raster.RGB(80, 180, 70))},
	Spider:   {Name: "spider", Hostile: true, MaxHealth: 16, Speed: 0.05, Height: 0.9, Eyes: raster.RGB(220, 20, 20), Parts: spider(raster.RGB(60, 50, 45))},
	Enderman: {Name: "enderman", Hostile: true, MaxHealth: 40, Speed: 0.06, Height: 2.9, Eyes: raster.RGB(200, 60, 230), Parts: biped(raster.RGB(20, 20, 25), raster.RGB(25, 25, 30), raster.RGB(20, 20, 25), 0.5)},
}

// Species returns the lookup row for k.
func (k MobKind) Species() Species {
	if k < mobKindCount {
		return species[k]
	}
	return species[Pig]
}

func (k MobKind) String() string {
	if k < mobKindCount {
		return species[k].Name
	}
	return fmt.Sprintf("mob(%d)", uint8(k))
}

func (k MobKind) Hostile() bool { return k.Species().Hostile }

func (k MobKind) MarshalText() ([]byte, error) {
	if k >= mobKindCount {
		return nil, fmt.Errorf("unknown mob kind %d", uint8(k))
	}
	return []byte(species[k].Name), nil
}

func (k *MobKind) UnmarshalText(b []byte) error {
	for i := range species {
		if species[i].Name == string(b) {
			*k = MobKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mob %q", string(b))
}

// PassiveKinds and HostileKinds list the spawnable species.
func PassiveKinds() []MobKind { return []MobKind{Pig, Cow, Sheep, Chicken, Villager, Wolf} }
func HostileKinds() []MobKind { return []MobKind{Zombie, Skeleton, Creeper, Spider, Enderman} }

// Mob is one creature. Pos is the feet position; Heading is a yaw.
type Mob struct {
	ID         string     `json:"id"`
	Kind       MobKind    `json:"kind"`
	Pos        mgl64.Vec3 `json:"pos"`
	Heading    float64    `json:"heading"`
	Health     float64    `json:"health"`
	State      AIState    `json:"state"`
	StateTicks int        `json:"stateTicks"`
}

func NewMob(id string, kind MobKind, pos mgl64.Vec3, heading float64) *Mob {
	return &Mob{ID: id, Kind: kind, Pos: pos, Heading: heading, Health: kind.Species().MaxHealth, State: StateIdle}
}

func (m *Mob) Hostile() bool { return m.Kind.Hostile() }

// HealthFraction is Health/MaxHealth clamped to [0, 1].
func (m *Mob) HealthFraction() float64 {
	max := m.Kind.Species().MaxHealth
	if max <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, m.Health/max))
}

// Heightmap reports the surface y of a column.
type Heightmap func(x, z int) int

// SpawnPopulation scatters passive and hostile mobs uniformly within radius
// of center, standing on the surface.
func SpawnPopulation(rng *rand.Rand, surface Heightmap, center mgl64.Vec3, passive, hostile int, radius float64) []*Mob {
	out := make([]*Mob, 0, passive+hostile)
	spawn := func(kinds []MobKind) {
		kind := kinds[rng.Intn(len(kinds))]
		angle := rng.Float64() * 2 * math.Pi
		r := math.Sqrt(rng.Float64()) * radius
		x := center.X() + math.Cos(angle)*r
		z := center.Z() + math.Sin(angle)*r
		y := float64(surface(int(math.Floor(x)), int(math.Floor(z))) + 1)
		id := uuid.Must(uuid.NewRandomFromReader(rng)).String()
		out = append(out, NewMob(id, kind, mgl64.Vec3{x, y, z}, rng.Float64()*2*math.Pi))
	}
	for i := 0; i < passive; i++ {
		spawn(PassiveKinds())
	}
	for i := 0; i < hostile; i++ {
		spawn(HostileKinds())
	}
	return out
}

func quadruped(body, head raster.Color, width, bodyH, length, legH, headSize float64) []Part {
	legW := width / 3
	return []Part{
		{Role: RoleBody, Offset: mgl64.Vec3{0, legH + bodyH/2, 0}, Size: mgl64.Vec3{width, bodyH, length}, Color: body},
		{Role: RoleHead, Offset: mgl64.Vec3{0, legH + bodyH*0.9, -(length/2 + headSize/2)}, Size: mgl64.Vec3{headSize, headSize, headSize}, Color: head},
		{Role: RoleLeg, Offset: mgl64.Vec3{-width / 3, legH / 2, -length / 3}, Size: mgl64.Vec3{legW, legH, legW}, Color: body.Scale(0.85), Swing: 1},
		{Role: RoleLeg, Offset: mgl64.Vec3{width / 3, legH / 2, -length / 3}, Size: mgl64.Vec3{legW, legH, legW}, Color: body.Scale(0.85), Swing: -1},
		{Role: RoleLeg, Offset: mgl64.Vec3{-width / 3, legH / 2, length / 3}, Size: mgl64.Vec3{legW, legH, legW}, Color: body.Scale(0.85), Swing: -1},
		{Role: RoleLeg, Offset: mgl64.Vec3{width / 3, legH / 2, length / 3}, Size: mgl64.Vec3{legW, legH, legW}, Color: body.Scale(0.85), Swing: 1},
	}
}

// biped builds a humanoid. armScale thins the arms.
func biped(shirt, skin, pants raster.Color, armScale float64) []Part {
	return []Part{
		{Role: RoleLeg, Offset: mgl64.Vec3{-0.125, 0.375, 0}, Size: mgl64.Vec3{0.25, 0.75, 0.25}, Color: pants, Swing: 1},
		{Role: RoleLeg, Offset: mgl64.Vec3{0.125, 0.375, 0}, Size: mgl64.Vec3{0.25, 0.75, 0.25}, Color: pants, Swing: -1},
		{Role: RoleBody, Offset: mgl64.Vec3{0, 1.125, 0}, Size: mgl64.Vec3{0.5, 0.75, 0.25}, Color: shirt},
		{Role: RoleArm, Offset: mgl64.Vec3{-0.375, 1.125, 0}, Size: mgl64.Vec3{0.25 * armScale, 0.75, 0.25 * armScale}, Color: skin, Swing: -1},
		{Role: RoleArm, Offset: mgl64.Vec3{0.375, 1.125, 0}, Size: mgl64.Vec3{0.25 * armScale, 0.75, 0.25 * armScale}, Color: skin, Swing: 1},
		{Role: RoleHead, Offset: mgl64.Vec3{0, 1.75, 0}, Size: mgl64.Vec3{0.5, 0.5, 0.5}, Color: skin},
	}
}

func bird(body, beak raster.Color) []Part {
	return []Part{
		{Role: RoleLeg, Offset: mgl64.Vec3{-0.08, 0.15, 0}, Size: mgl64.Vec3{0.06, 0.3, 0.06}, Color: beak, Swing: 1},
		{Role: RoleLeg, Offset: mgl64.Vec3{0.08, 0.15, 0}, Size: mgl64.Vec3{0.06, 0.3, 0.06}, Color: beak, Swing: -1},
		{Role: RoleBody, Offset: mgl64.Vec3{0, 0.45, 0}, Size: mgl64.Vec3{0.4, 0.35, 0.5}, Color: body},
		{Role: RoleArm, Offset: mgl64.Vec3{-0.23, 0.47, 0}, Size: mgl64.Vec3{0.06, 0.25, 0.35}, Color: body.Scale(0.9), Swing: 1},
		{Role: RoleArm, Offset: mgl64.Vec3{0.23, 0.47, 0}, Size: mgl64.Vec3{0.06, 0.25, 0.35}, Color: body.Scale(0.9), Swing: -1},
		{Role: RoleHead, Offset: mgl64.Vec3{0, 0.7, -0.25}, Size: mgl64.Vec3{0.25, 0.3, 0.2}, Color: body},
		{Role: RoleBody, Offset: mgl64.Vec3{0, 0.65, -0.4}, Size: mgl64.Vec3{0.12, 0.08, 0.1}, Color: beak},
	}
}

func creeper(skin raster.Color) []Part {
	return []Part{
		{Role: RoleLeg, Offset: mgl64.Vec3{-0.125, 0.1875, -0.2}, Size: mgl64.Vec3{0.25, 0.375, 0.25}, Color: skin.Scale(0.8), Swing: 1},
		{Role: RoleLeg, Offset: mgl64.Vec3{0.125, 0.1875, -0.2}, Size: mgl64.Vec3{0.25, 0.375, 0.25}, Color: skin.Scale(0.8), Swing: -1},
		{Role: RoleLeg, Offset: mgl64.Vec3{-0.125, 0.1875, 0.2}, Size: mgl64.Vec3{0.25, 0.375, 0.25}, Color: skin.Scale(0.8), Swing: -1},
		{Role: RoleLeg, Offset: mgl64.Vec3{0.125, 0.1875, 0.2}, Size: mgl64.Vec3{0.25, 0.375, 0.25}, Color: skin.Scale(0.8), Swing: 1},
		{Role: RoleBody, Offset: mgl64.Vec3{0, 0.8, 0}, Size: mgl64.Vec3{0.5, 0.75, 0.25}, Color: skin},
		{Role: RoleHead, Offset: mgl64.Vec3{0, 1.45, 0}, Size: mgl64.Vec3{0.5, 0.5, 0.5}, Color: skin.Brighten(0.1)},
	}
}

func spider(body raster.Color) []Part {
	parts := []Part{
		{Role: RoleBody, Offset: mgl64.Vec3{0, 0.5, 0.35}, Size: mgl64.Vec3{0.9, 0.6, 0.8}, Color: body},
		{Role: RoleBody, Offset: mgl64.Vec3{0, 0.45, -0.2}, Size: mgl64.Vec3{0.5, 0.4, 0.4}, Color: body.Scale(0.8)},
		{Role: RoleHead, Offset: mgl64.Vec3{0, 0.5, -0.6}, Size: mgl64.Vec3{0.55, 0.5, 0.45}, Color: body.Scale(0.9)},
	}
	for i := 0; i < 4; i++ {
		z := -0.35 + float64(i)*0.2
		swing := 1.0
		if i%2 == 1 {
			swing = -1
		}
		parts = append(parts,
			Part{Role: RoleLeg, Offset: mgl64.Vec3{-0.6, 0.35, z}, Size: mgl64.Vec3{0.7, 0.1, 0.1}, Color: body.Scale(0.7), Swing: swing},
			Part{Role: RoleLeg, Offset: mgl64.Vec3{0.6, 0.35, z}, Size: mgl64.Vec3{0.7, 0.1, 0.1}, Color: body.Scale(0.7), Swing: -swing},
		)
	}
	return parts
}

// PlayerModel is the humanoid drawn for the player in third person.
var PlayerModel = biped(raster.RGB(0, 170, 170), raster.RGB(200, 150, 120), raster.RGB(60, 60, 160), 1)

// Moving reports whether the mob's current state walks it around.
func (m *Mob) Moving() bool {
	switch m.State {
	case StateWander, StateChase, StateFlee, StateDefend, StateFollow:
		return true
	}
	return false
}
