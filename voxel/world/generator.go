package world

import (
	"math"
	"math/rand"
)

// OreWeights are the relative odds of each ore once a stone voxel rolls an ore.
type OreWeights struct {
	Coal, Iron, Gold, Diamond float64
}

// Generator produces terrain chunks. Height is a pure function of the column;
// ore and tree placement draws from a per-chunk RNG seeded from Seed and the
// chunk coordinate, so regenerating a chunk yields identical blocks.
type Generator struct {
	Seed       int64
	BaseHeight int
	SeaLevel   int
	DirtDepth  int     // dirt layers between stone and the surface block
	OreChance  float64 // per stone voxel
	Ores       OreWeights
	TreeChance float64 // per surface column
	LeafChance float64 // per canopy voxel
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		Seed:       seed,
		BaseHeight: 24,
		SeaLevel:   17,
		DirtDepth:  3,
		OreChance:  0.04,
		Ores:       OreWeights{Coal: 50, Iron: 30, Gold: 15, Diamond: 5},
		TreeChance: 0.02,
		LeafChance: 0.85,
	}
}

// Height is the y of the surface block of column (x, z).
func (g *Generator) Height(x, z int) int {
	fx, fz := float64(x), float64(z)
	h := float64(g.BaseHeight) +
		3*math.Sin(fx*0.08) +
		3*math.Cos(fz*0.08) +
		2*math.Sin((fx+fz)*0.045) +
		1.5*math.Cos(fx*0.19-fz*0.13) +
		0.8*math.Sin(fz*0.31)
	y := int(math.Floor(h))
	if y < 4 {
		y = 4
	}
	if y > MaxHeight-12 {
		y = MaxHeight - 12
	}
	return y
}

func (g *Generator) chunkRand(cc ChunkCoord) *rand.Rand {
	return rand.New(rand.NewSource(chunkSeed(g.Seed, cc)))
}

// chunkSeed mixes the world seed with the chunk coordinate so that nearby
// chunks get unrelated streams.
func chunkSeed(seed int64, cc ChunkCoord) int64 {
	h := uint64(seed) ^ uint64(int64(cc.X)*73856093) ^ uint64(int64(cc.Z)*19349663)<<32
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return int64(h)
}

// GenerateChunk builds the chunk at cc.
func (g *Generator) GenerateChunk(cc ChunkCoord) *Chunk {
	c := NewChunk(cc)
	rng := g.chunkRand(cc)
	o := cc.Origin()

	for lz := 0; lz < ChunkSize; lz++ {
		for lx := 0; lx < ChunkSize; lx++ {
			g.fillColumn(c, lx, lz, o.X+lx, o.Z+lz, rng)
		}
	}
	for lz := 2; lz < ChunkSize-2; lz++ {
		for lx := 2; lx < ChunkSize-2; lx++ {
			h := g.Height(o.X+lx, o.Z+lz)
			if c.Get(lx, h, lz) != Grass {
				continue
			}
			if rng.Float64() < g.TreeChance {
				g.plantTree(c, lx, h+1, lz, rng)
			}
		}
	}
	return c
}

func (g *Generator) fillColumn(c *Chunk, lx, lz, x, z int, rng *rand.Rand) {
	h := g.Height(x, z)
	dirt := g.DirtDepth + rng.Intn(2)
	top := Grass
	switch {
	case h < g.SeaLevel+1:
		top = Sand
	case IsSnowy(Biome(x, z)):
		top = Snow
	}
	for y := 0; y <= h; y++ {
		var k BlockKind
		switch {
		case y == 0:
			k = Bedrock
		case y == h:
			k = top
		case y >= h-dirt:
			k = Dirt
			if top == Sand {
				k = Sand
			}
		default:
			k = Stone
			if rng.Float64() < g.OreChance {
				k = g.pickOre(rng)
			}
		}
		c.Set(lx, y, lz, k)
	}
	for y := h + 1; y <= g.SeaLevel; y++ {
		c.Set(lx, y, lz, Water)
	}
}

func (g *Generator) pickOre(rng *rand.Rand) BlockKind {
	w := g.Ores
	total := w.Coal + w.Iron + w.Gold + w.Diamond
	if total <= 0 {
		return Stone
	}
	r := rng.Float64() * total
	switch {
	case r < w.Coal:
		return CoalOre
	case r < w.Coal+w.Iron:
		return IronOre
	case r < w.Coal+w.Iron+w.Gold:
		return GoldOre
	default:
		return DiamondOre
	}
}

// plantTree grows a 4-6 block trunk from (lx, y, lz) and a diamond-shaped
// canopy around its top. Leaves never replace existing blocks.
func (g *Generator) plantTree(c *Chunk, lx, y, lz int, rng *rand.Rand) {
	trunk := 4 + rng.Intn(3)
	if y+trunk+2 >= MaxHeight {
		return
	}
	for i := 0; i < trunk; i++ {
		c.Set(lx, y+i, lz, Wood)
	}
	top := y + trunk - 1
	for dy := -1; dy <= 2; dy++ {
		radius := 2
		if dy >= 1 {
			radius = 1
		}
		if dy == 2 {
			radius = 0
		}
		for dz := -radius; dz <= radius; dz++ {
			for dx := -radius; dx <= radius; dx++ {
				if absInt(dx)+absInt(dz) > radius {
					continue
				}
				if c.Get(lx+dx, top+dy, lz+dz) != Air {
					continue
				}
				if rng.Float64() < g.LeafChance {
					c.Set(lx+dx, top+dy, lz+dz, Leaves)
				}
			}
		}
	}
}

// SpawnPoint is the block position just above the surface at (x, z).
func (g *Generator) SpawnPoint(x, z int) Pos {
	return Pos{X: x, Y: g.Height(x, z) + 1, Z: z}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
