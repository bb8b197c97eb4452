package world

import "math"

// BiomeRegion is the edge length of the square region sharing one biome.
const BiomeRegion = 64

var biomes = [...]string{
	"Plains", "Sunflower Plains", "Snowy Plains", "Ice Spikes", "Desert",
	"Swamp", "Mangrove Swamp", "Forest", "Flower Forest", "Birch Forest",
	"Dark Forest", "Old Growth Birch Forest", "Old Growth Pine Taiga", "Old Growth Spruce Taiga", "Taiga",
	"Snowy Taiga", "Savanna", "Savanna Plateau", "Windswept Hills", "Windswept Gravelly Hills",
	"Windswept Forest", "Windswept Savanna", "Jungle", "Sparse Jungle", "Bamboo Jungle",
	"Badlands", "Eroded Badlands", "Wooded Badlands", "Meadow", "Cherry Grove",
	"Grove", "Snowy Slopes", "Frozen Peaks", "Jagged Peaks", "Stony Peaks",
	"River", "Frozen River", "Beach", "Snowy Beach", "Stony Shore",
	"Warm Ocean", "Lukewarm Ocean", "Deep Lukewarm Ocean", "Ocean", "Deep Ocean",
	"Cold Ocean", "Deep Cold Ocean", "Frozen Ocean", "Deep Frozen Ocean", "Mushroom Fields",
	"Dripstone Caves", "Lush Caves", "Deep Dark", "Nether Wastes", "Warped Forest",
	"Crimson Forest", "Soul Sand Valley", "Basalt Deltas",
}

var snowyBiomes = map[string]bool{
	"Snowy Plains":      true,
	"Ice Spikes":        true,
	"Snowy Taiga":       true,
	"Grove":             true,
	"Snowy Slopes":      true,
	"Frozen Peaks":      true,
	"Jagged Peaks":      true,
	"Frozen River":      true,
	"Snowy Beach":       true,
	"Frozen Ocean":      true,
	"Deep Frozen Ocean": true,
}

// Biomes returns the fixed biome name list.
func Biomes() []string {
	out := make([]string, len(biomes))
	copy(out, biomes[:])
	return out
}

// Biome names the biome of column (x, z). Every column in the same
// BiomeRegion x BiomeRegion square shares a biome.
func Biome(x, z int) string {
	rx := float64(floorDiv(x, BiomeRegion))
	rz := float64(floorDiv(z, BiomeRegion))
	v := math.Sin(rx*12.9898+rz*78.233) * 43758.5453
	frac := v - math.Floor(v)
	i := int(frac * float64(len(biomes)))
	if i >= len(biomes) {
		i = len(biomes) - 1
	}
	return biomes[i]
}

// IsSnowy reports whether name is a cold biome that gets snow cover and snowfall.
func IsSnowy(name string) bool { return snowyBiomes[name] }
