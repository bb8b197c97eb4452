package entity

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// AIState is the behaviour a mob is currently executing.
type AIState uint8

const (
	StateIdle AIState = iota
	StateWander
	StateChase
	StateAttack
	StateFlee
	StateTrade
	StateDefend
	StateFollow

	aiStateCount
)

var aiStateNames = [aiStateCount]string{"idle", "wander", "chase", "attack", "flee", "trade", "defend", "follow"}

func (s AIState) String() string {
	if s < aiStateCount {
		return aiStateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

func (s AIState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *AIState) UnmarshalText(b []byte) error {
	for i, n := range aiStateNames {
		if n == string(b) {
			*s = AIState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown ai state %q", string(b))
}

// Brain holds the tuning shared by every mob.
type Brain struct {
	SightRange   float64
	AttackRange  float64
	FleeRange    float64
	TradeRange   float64
	FollowRange  float64
	ChaseFactor  float64 // speed multiplier while chasing or fleeing
	WanderChance float64 // per idle tick
	RestChance   float64 // per wandering tick
	Leash        float64 // max distance from the player before a mob turns back
}

func DefaultBrain() Brain {
	return Brain{
		SightRange:   12,
		AttackRange:  1.6,
		FleeRange:    3,
		TradeRange:   3,
		FollowRange:  10,
		ChaseFactor:  2,
		WanderChance: 0.02,
		RestChance:   0.01,
		Leash:        64,
	}
}

// Step advances every mob by one tick. Mobs only read the player and the
// surface; they never touch blocks.
func (b Brain) Step(mobs []*Mob, player *Player, rng *rand.Rand, surface Heightmap) {
	threat := false
	for _, m := range mobs {
		if m.Hostile() && m.State == StateChase {
			threat = true
			break
		}
	}
	for _, m := range mobs {
		b.think(m, player, rng, threat)
		b.move(m, player, surface)
		m.StateTicks++
	}
}

func (b Brain) setState(m *Mob, s AIState) {
	if m.State != s {
		m.State = s
		m.StateTicks = 0
	}
}

func (b Brain) think(m *Mob, player *Player, rng *rand.Rand, threat bool) {
	d := horizontalDist(m.Pos, player.Pos)
	if m.Hostile() {
		switch {
		case d <= b.AttackRange:
			b.setState(m, StateAttack)
			return
		case d <= b.SightRange:
			b.setState(m, StateChase)
			return
		case m.State == StateChase || m.State == StateAttack:
			b.setState(m, StateIdle)
		}
	} else {
		switch m.Kind {
		case Villager:
			if d <= b.TradeRange {
				b.setState(m, StateTrade)
				return
			}
		case Wolf:
			if threat && d <= b.FollowRange*2 {
				b.setState(m, StateDefend)
				return
			}
			if d <= b.FollowRange && d > b.FleeRange {
				b.setState(m, StateFollow)
				return
			}
		default:
			if d <= b.FleeRange {
				b.setState(m, StateFlee)
				return
			}
		}
		if m.State == StateTrade || m.State == StateDefend || m.State == StateFollow || m.State == StateFlee {
			b.setState(m, StateIdle)
		}
	}
	if d > b.Leash {
		m.Heading = headingTo(m.Pos, player.Pos)
		b.setState(m, StateWander)
		return
	}
	switch m.State {
	case StateIdle:
		if rng.Float64() < b.WanderChance {
			m.Heading = rng.Float64() * 2 * math.Pi
			b.setState(m, StateWander)
		}
	case StateWander:
		if rng.Float64() < b.RestChance {
			b.setState(m, StateIdle)
		}
	}
}

func (b Brain) move(m *Mob, player *Player, surface Heightmap) {
	speed := m.Kind.Species().Speed
	switch m.State {
	case StateWander:
	case StateChase, StateDefend, StateFollow:
		m.Heading = headingTo(m.Pos, player.Pos)
		speed *= b.ChaseFactor
		if m.State == StateFollow && horizontalDist(m.Pos, player.Pos) < b.FleeRange+0.5 {
			return
		}
	case StateFlee:
		m.Heading = headingTo(player.Pos, m.Pos)
		speed *= b.ChaseFactor
	case StateAttack, StateTrade:
		m.Heading = headingTo(m.Pos, player.Pos)
		return
	default:
		return
	}
	x := m.Pos.X() - math.Sin(m.Heading)*speed
	z := m.Pos.Z() - math.Cos(m.Heading)*speed
	y := m.Pos.Y()
	if surface != nil {
		ground := float64(surface(int(math.Floor(x)), int(math.Floor(z))) + 1)
		if ground-y > 1 {
			// too steep; turn around
			m.Heading += math.Pi
			return
		}
		y = ground
	}
	m.Pos = mgl64.Vec3{x, y, z}
}

// headingTo is the yaw that faces from a to b.
func headingTo(a, b mgl64.Vec3) float64 {
	dx := b.X() - a.X()
	dz := b.Z() - a.Z()
	return math.Atan2(-dx, -dz)
}

func horizontalDist(a, b mgl64.Vec3) float64 {
	return math.Hypot(a.X()-b.X(), a.Z()-b.Z())
}
