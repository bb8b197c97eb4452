// Package game owns the aggregate game state and the loop that advances it:
// input, fixed-rate simulation, chunk streaming, rendering and saving.
package game

import (
	"time"

	"voxelbox/voxel/entity"
	"voxelbox/voxel/world"
)

const (
	Overworld       = "overworld"
	HotbarSize      = 9
	StructureCount  = 12
	structureMinR   = 32
	structureMaxR   = 256
	passiveMobs     = 12
	hostileMobs     = 8
	mobSpawnRadius  = 40
	visitRadius     = 6.0
	alertDuration   = 3 * time.Second
	weatherMinTicks = 6000
	weatherMaxTicks = 12000
)

// State is the aggregate root: the persisted game plus transient UI state.
// The player, mobs and blocks live in the entity and world stores it is
// paired with.
type State struct {
	Seed         int64
	Time         float64 // ticks since creation
	DayLength    float64
	Weather      world.Weather
	WeatherUntil float64
	Season       world.Season
	Dimension    string
	Biome        string

	Inventory map[world.ItemKind]int
	Hotbar    [HotbarSize]world.ItemKind
	Selected  int

	Structures   []world.Structure
	Stats        entity.Stats
	Achievements []string

	LastSave time.Time
	FPS      int
	UI       UI
}

// UI is the transient overlay state. It is never persisted.
type UI struct {
	Inventory  bool
	Crafting   bool
	Menu       bool
	Debug      bool
	Alert      string
	alertUntil time.Time
}

// DefaultHotbar is what a new world starts with, with its stack sizes.
func DefaultHotbar() ([HotbarSize]world.ItemKind, map[world.ItemKind]int) {
	bar := [HotbarSize]world.ItemKind{
		world.ItemPickaxe, world.ItemSword, world.ItemAxe, world.ItemShovel,
		world.ItemDirt, world.ItemStone, world.ItemPlanks, world.ItemTorch, world.ItemBread,
	}
	inv := map[world.ItemKind]int{
		world.ItemPickaxe: 1,
		world.ItemSword:   1,
		world.ItemAxe:     1,
		world.ItemShovel:  1,
		world.ItemDirt:    64,
		world.ItemStone:   64,
		world.ItemPlanks:  32,
		world.ItemTorch:   16,
		world.ItemBread:   8,
	}
	return bar, inv
}

// HasAchievement reports whether id was unlocked.
func (s *State) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

type achievement struct {
	ID    string
	Title string
	Done  func(*State) bool
}

var achievements = []achievement{
	{ID: "first_steps", Title: "First Steps", Done: func(s *State) bool { return s.Stats.DistanceWalked >= 10 }},
	{ID: "explorer", Title: "Explorer", Done: func(s *State) bool { return s.Stats.DistanceWalked >= 250 }},
	{ID: "night_owl", Title: "Night Owl", Done: func(s *State) bool { return s.Stats.NightsSurvived >= 1 }},
	{ID: "high_jumper", Title: "High Jumper", Done: func(s *State) bool { return s.Stats.Jumps >= 50 }},
	{ID: "sightseer", Title: "Sightseer", Done: func(s *State) bool { return s.Stats.StructuresVisited >= 1 }},
}
