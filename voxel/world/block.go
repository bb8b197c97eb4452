// Package world holds the voxel terrain: block kinds, chunked storage, the
// deterministic generator, biomes, structures and chunk streaming.
package world

import (
	"fmt"

	"voxelbox/voxel/raster"
)

// BlockKind is a closed set of block types. The zero value is Air.
type BlockKind uint8

const (
	Air BlockKind = iota
	Grass
	Dirt
	Stone
	Bedrock
	CoalOre
	IronOre
	GoldOre
	DiamondOre
	Wood
	Leaves
	Sand
	Water
	Lava
	Obsidian
	Planks
	Glass
	Snow

	blockKindCount
)

// Pattern is the procedural overlay painted over a face.
type Pattern uint8

const (
	PatternNone Pattern = iota
	PatternSpeckle
	PatternCracks
	PatternGrain
	PatternRipple
	PatternSparkle
	PatternBubbles
)

// BlockProps is the per-kind lookup row.
type BlockProps struct {
	Name       string
	Color      raster.Color
	Top        raster.Color // top face, when it differs from Color
	Accent     raster.Color
	Pattern    Pattern
	Opaque     bool
	Glow       bool
	Durability int
}

var blockProps = [blockKindCount]BlockProps{
	Air:        {Name: "air"},
	Grass:      {Name: "grass", Color: raster.RGB(134, 96, 67), Top: raster.RGB(95, 159, 53), Accent: raster.RGB(70, 130, 40), Pattern: PatternSpeckle, Opaque: true, Durability: 3},
	Dirt:       {Name: "dirt", Color: raster.RGB(134, 96, 67), Accent: raster.RGB(110, 78, 52), Pattern: PatternSpeckle, Opaque: true, Durability: 3},
	Stone:      {Name: "stone", Color: raster.RGB(125, 125, 125), Accent: raster.RGB(96, 96, 96), Pattern: PatternCracks, Opaque: true, Durability: 8},
	Bedrock:    {Name: "bedrock", Color: raster.RGB(60, 60, 60), Accent: raster.RGB(30, 30, 30), Pattern: PatternCracks, Opaque: true, Durability: -1},
	CoalOre:    {Name: "coal_ore", Color: raster.RGB(115, 115, 115), Accent: raster.RGB(30, 30, 30), Pattern: PatternSparkle, Opaque: true, Durability: 10},
	IronOre:    {Name: "iron_ore", Color: raster.RGB(125, 120, 115), Accent: raster.RGB(216, 175, 147), Pattern: PatternSparkle, Opaque: true, Durability: 12},
	GoldOre:    {Name: "gold_ore", Color: raster.RGB(125, 122, 110), Accent: raster.RGB(252, 238, 75), Pattern: PatternSparkle, Opaque: true, Glow: true, Durability: 12},
	DiamondOre: {Name: "diamond_ore", Color: raster.RGB(120, 128, 128), Accent: raster.RGB(93, 236, 245), Pattern: PatternSparkle, Opaque: true, Glow: true, Durability: 15},
	Wood:       {Name: "wood", Color: raster.RGB(102, 81, 51), Top: raster.RGB(160, 130, 80), Accent: raster.RGB(76, 60, 38), Pattern: PatternGrain, Opaque: true, Durability: 5},
	Leaves:     {Name: "leaves", Color: raster.RGBA(60, 140, 40, 230), Accent: raster.RGB(40, 105, 28), Pattern: PatternSpeckle, Durability: 1},
	Sand:       {Name: "sand", Color: raster.RGB(219, 207, 163), Accent: raster.RGB(196, 184, 140), Pattern: PatternSpeckle, Opaque: true, Durability: 2},
	Water:      {Name: "water", Color: raster.RGBA(50, 90, 220, 170), Accent: raster.RGBA(140, 180, 255, 200), Pattern: PatternRipple, Glow: true},
	Lava:       {Name: "lava", Color: raster.RGB(220, 90, 20), Accent: raster.RGB(255, 210, 60), Pattern: PatternBubbles, Glow: true},
	Obsidian:   {Name: "obsidian", Color: raster.RGB(30, 20, 45), Accent: raster.RGB(90, 60, 140), Pattern: PatternSparkle, Opaque: true, Glow: true, Durability: 50},
	Planks:     {Name: "planks", Color: raster.RGB(162, 130, 78), Accent: raster.RGB(128, 100, 58), Pattern: PatternGrain, Opaque: true, Durability: 4},
	Glass:      {Name: "glass", Color: raster.RGBA(200, 230, 240, 90), Accent: raster.RGBA(255, 255, 255, 160), Durability: 1},
	Snow:       {Name: "snow", Color: raster.RGB(240, 250, 250), Accent: raster.RGB(215, 228, 235), Pattern: PatternSpeckle, Opaque: true, Durability: 1},
}

// Props returns the lookup row for k. Unknown kinds behave like air.
func (k BlockKind) Props() BlockProps {
	if k < blockKindCount {
		return blockProps[k]
	}
	return blockProps[Air]
}

func (k BlockKind) String() string {
	if k < blockKindCount {
		return blockProps[k].Name
	}
	return fmt.Sprintf("block(%d)", uint8(k))
}

func (k BlockKind) Opaque() bool { return k.Props().Opaque }

// Valid reports whether k is a known kind.
func (k BlockKind) Valid() bool { return k < blockKindCount }

// Pos is an integer block position. A block at Pos occupies the unit cube
// [X, X+1) x [Y, Y+1) x [Z, Z+1).
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (p Pos) Add(dx, dy, dz int) Pos { return Pos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz} }

// Block is one non-air voxel as seen by readers of the store.
type Block struct {
	Pos        Pos
	Kind       BlockKind
	Durability int
}
