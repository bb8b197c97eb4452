package world

import (
	"fmt"
	"sort"
)

const (
	ChunkSize = 16
	MaxHeight = 128

	chunkVolume = ChunkSize * ChunkSize * MaxHeight
)

// ChunkCoord addresses a ChunkSize x ChunkSize column of the world.
type ChunkCoord struct {
	X, Z int
}

// ChunkOf returns the chunk containing block column (x, z).
func ChunkOf(x, z int) ChunkCoord {
	return ChunkCoord{X: floorDiv(x, ChunkSize), Z: floorDiv(z, ChunkSize)}
}

// Origin is the world position of the chunk's (0, 0, 0) block.
func (c ChunkCoord) Origin() Pos { return Pos{X: c.X * ChunkSize, Z: c.Z * ChunkSize} }

// Chunk stores block kinds densely and durability overrides sparsely.
type Chunk struct {
	Coord ChunkCoord

	kinds      []BlockKind
	durability map[int]int
	count      int
}

func NewChunk(cc ChunkCoord) *Chunk {
	return &Chunk{Coord: cc, kinds: make([]BlockKind, chunkVolume)}
}

func index(x, y, z int) int { return x + z*ChunkSize + y*ChunkSize*ChunkSize }

func inChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && z >= 0 && z < ChunkSize && y >= 0 && y < MaxHeight
}

// Get returns the kind at local coordinates, Air when out of range.
func (c *Chunk) Get(x, y, z int) BlockKind {
	if !inChunk(x, y, z) {
		return Air
	}
	return c.kinds[index(x, y, z)]
}

// Set stores k at local coordinates and resets its durability override.
func (c *Chunk) Set(x, y, z int, k BlockKind) bool {
	if !inChunk(x, y, z) || !k.Valid() {
		return false
	}
	i := index(x, y, z)
	old := c.kinds[i]
	if old == Air && k != Air {
		c.count++
	} else if old != Air && k == Air {
		c.count--
	}
	c.kinds[i] = k
	delete(c.durability, i)
	return true
}

// Durability returns the block's remaining durability, defaulting to its kind's.
func (c *Chunk) Durability(x, y, z int) int {
	if !inChunk(x, y, z) {
		return 0
	}
	i := index(x, y, z)
	if d, ok := c.durability[i]; ok {
		return d
	}
	return c.kinds[i].Props().Durability
}

func (c *Chunk) SetDurability(x, y, z, d int) bool {
	if !inChunk(x, y, z) || c.kinds[index(x, y, z)] == Air {
		return false
	}
	if c.durability == nil {
		c.durability = make(map[int]int)
	}
	c.durability[index(x, y, z)] = d
	return true
}

// Count is the number of non-air blocks.
func (c *Chunk) Count() int { return c.count }

// Kinds returns a copy of the dense kind array, one byte per block.
func (c *Chunk) Kinds() []byte {
	out := make([]byte, len(c.kinds))
	for i, k := range c.kinds {
		out[i] = byte(k)
	}
	return out
}

// DurabilityOverride is a block whose durability differs from its kind default.
type DurabilityOverride struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
	D int `json:"d"`
}

func (c *Chunk) DurabilityOverrides() []DurabilityOverride {
	if len(c.durability) == 0 {
		return nil
	}
	out := make([]DurabilityOverride, 0, len(c.durability))
	for i, d := range c.durability {
		x := i % ChunkSize
		z := (i / ChunkSize) % ChunkSize
		y := i / (ChunkSize * ChunkSize)
		out = append(out, DurabilityOverride{X: x, Y: y, Z: z, D: d})
	}
	sort.Slice(out, func(a, b int) bool {
		return index(out[a].X, out[a].Y, out[a].Z) < index(out[b].X, out[b].Y, out[b].Z)
	})
	return out
}

// ChunkFromKinds rebuilds a chunk from Kinds output.
func ChunkFromKinds(cc ChunkCoord, kinds []byte, overrides []DurabilityOverride) (*Chunk, error) {
	if len(kinds) != chunkVolume {
		return nil, fmt.Errorf("chunk %d,%d: %d kinds, want %d", cc.X, cc.Z, len(kinds), chunkVolume)
	}
	c := NewChunk(cc)
	for i, b := range kinds {
		k := BlockKind(b)
		if !k.Valid() {
			return nil, fmt.Errorf("chunk %d,%d: unknown block kind %d", cc.X, cc.Z, b)
		}
		c.kinds[i] = k
		if k != Air {
			c.count++
		}
	}
	for _, o := range overrides {
		c.SetDurability(o.X, o.Y, o.Z, o.D)
	}
	return c, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
