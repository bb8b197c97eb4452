package game

import (
	"math"

	"go.uber.org/zap"

	"voxelbox/voxel/sim"
	"voxelbox/voxel/world"
)

// tick advances the simulation by one fixed step.
func (g *Game) tick() {
	st := g.state
	p := g.entities.Player

	g.moving = false
	if !st.UI.Menu {
		d := sim.ApplyMovement(p, &g.keys, g.settings.Gameplay.MoveSpeed)
		if walked := math.Hypot(d.X(), d.Z()); walked > 0 {
			st.Stats.DistanceWalked += walked
			g.moving = true
		}
	}
	g.entities.Tick(g.rng, g.surface)

	prevDay := g.day()
	st.Time++
	st.Stats.TicksPlayed++
	if g.day() > prevDay {
		st.Stats.NightsSurvived++
	}
	st.Season = world.SeasonAt(st.Time, st.DayLength)
	if st.Time >= st.WeatherUntil {
		st.Weather = g.rollWeather()
		st.WeatherUntil = st.Time + g.nextWeatherChange()
		g.log.Debug("weather changed", zap.Stringer("weather", st.Weather))
	}

	g.visitStructures()
	g.unlockAchievements()
}

// day is the number of whole days elapsed. Each day starts at sunrise, so a
// new day means a night has just ended.
func (g *Game) day() int {
	if g.state.DayLength <= 0 {
		return 0
	}
	return int(g.state.Time / g.state.DayLength)
}

func (g *Game) rollWeather() world.Weather {
	switch r := g.rng.Float64(); {
	case r < 0.6:
		return world.WeatherClear
	case r < 0.9:
		return world.WeatherRain
	default:
		return world.WeatherThunder
	}
}

// nextWeatherChange is the ticks until the next weather roll.
func (g *Game) nextWeatherChange() float64 {
	return float64(weatherMinTicks + g.rng.Intn(weatherMaxTicks-weatherMinTicks+1))
}

func (g *Game) visitStructures() {
	p := g.entities.Player.Pos
	for i := range g.state.Structures {
		s := &g.state.Structures[i]
		if s.Visited {
			continue
		}
		if math.Hypot(p.X()-float64(s.Pos.X), p.Z()-float64(s.Pos.Z)) > visitRadius {
			continue
		}
		s.Visited = true
		g.state.Stats.StructuresVisited++
		g.entities.Player.GainXP(5)
		g.alert(g.now, "Discovered "+s.Name)
	}
}

func (g *Game) unlockAchievements() {
	for _, a := range achievements {
		if g.state.HasAchievement(a.ID) || !a.Done(g.state) {
			continue
		}
		g.state.Achievements = append(g.state.Achievements, a.ID)
		g.alert(g.now, "Achievement: "+a.Title)
		g.log.Info("achievement unlocked", zap.String("id", a.ID))
	}
}
