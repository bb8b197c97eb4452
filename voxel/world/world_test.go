package world

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestChunkOfHandlesNegatives(t *testing.T) {
	assert.Equal(t, ChunkCoord{0, 0}, ChunkOf(0, 15))
	assert.Equal(t, ChunkCoord{-1, -1}, ChunkOf(-1, -16))
	assert.Equal(t, ChunkCoord{-2, 1}, ChunkOf(-17, 16))
	assert.Equal(t, Pos{X: -32, Z: 16}, ChunkCoord{-2, 1}.Origin())
}

func TestStoreSetAndRemove(t *testing.T) {
	s := NewStore()
	p := Pos{X: -3, Y: 10, Z: 5}
	assert.False(t, s.SetBlock(p, Stone), "unloaded chunk accepted a block")

	s.PutChunk(NewChunk(ChunkOf(p.X, p.Z)))
	require.True(t, s.SetBlock(p, Stone))
	assert.Equal(t, Stone, s.Kind(p))
	assert.Equal(t, 1, s.Len())

	b, ok := s.Block(p)
	require.True(t, ok)
	assert.Equal(t, Stone.Props().Durability, b.Durability)
	require.True(t, s.SetDurability(p, 3))
	b, _ = s.Block(p)
	assert.Equal(t, 3, b.Durability)

	assert.True(t, s.SetBlock(p, Dirt))
	b, _ = s.Block(p)
	assert.Equal(t, Dirt.Props().Durability, b.Durability, "replacing a block resets its durability")

	assert.True(t, s.RemoveBlock(p))
	assert.False(t, s.RemoveBlock(p))
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.SetBlock(Pos{X: p.X, Y: MaxHeight, Z: p.Z}, Stone))
}

func TestExposed(t *testing.T) {
	s := NewStore()
	s.PutChunk(NewChunk(ChunkCoord{}))
	center := Pos{X: 5, Y: 5, Z: 5}
	for _, d := range neighbours {
		s.SetBlock(center.Add(d.X, d.Y, d.Z), Stone)
	}
	s.SetBlock(center, Stone)
	assert.False(t, s.Exposed(center))

	s.SetBlock(center.Add(0, 1, 0), Glass)
	assert.True(t, s.Exposed(center), "glass does not hide a neighbour")

	floor := Pos{X: 5, Y: 0, Z: 5}
	s.SetBlock(floor, Bedrock)
	for _, d := range neighbours {
		if d.Y >= 0 {
			s.SetBlock(floor.Add(d.X, d.Y, d.Z), Stone)
		}
	}
	assert.False(t, s.Exposed(floor), "below the world counts as opaque")
}

func TestForEachInBoxCrossesChunks(t *testing.T) {
	s := NewStore()
	for _, cc := range []ChunkCoord{{-1, 0}, {0, 0}, {1, 0}} {
		s.PutChunk(NewChunk(cc))
	}
	want := []Pos{{X: -1, Y: 2, Z: 3}, {X: 0, Y: 2, Z: 3}, {X: 16, Y: 2, Z: 3}, {X: 40, Y: 2, Z: 3}}
	for _, p := range want {
		s.SetBlock(p, Dirt)
	}

	var got []Pos
	s.ForEachInBox(Pos{X: -5, Y: 0, Z: 0}, Pos{X: 20, Y: 5, Z: 5}, func(b Block) bool {
		got = append(got, b.Pos)
		return true
	})
	assert.Equal(t, want[:3], got)

	n := 0
	s.ForEachInBox(Pos{X: -5, Y: -10, Z: 0}, Pos{X: 50, Y: 500, Z: 5}, func(Block) bool {
		n++
		return false
	})
	assert.Equal(t, 1, n, "fn returning false stops iteration")
}

func TestChunkKindsRoundTrip(t *testing.T) {
	c := NewGenerator(7).GenerateChunk(ChunkCoord{X: 2, Z: -1})
	c.SetDurability(1, 1, 1, 2)

	back, err := ChunkFromKinds(c.Coord, c.Kinds(), c.DurabilityOverrides())
	require.NoError(t, err)
	assert.Equal(t, c.Kinds(), back.Kinds())
	assert.Equal(t, c.Count(), back.Count())
	assert.Equal(t, 2, back.Durability(1, 1, 1))

	_, err = ChunkFromKinds(c.Coord, []byte{1, 2, 3}, nil)
	assert.Error(t, err)
	bad := c.Kinds()
	bad[0] = 250
	_, err = ChunkFromKinds(c.Coord, bad, nil)
	assert.Error(t, err)
}

func TestGeneratorIsDeterministic(t *testing.T) {
	a := NewGenerator(42).GenerateChunk(ChunkCoord{X: 3, Z: 4})
	b := NewGenerator(42).GenerateChunk(ChunkCoord{X: 3, Z: 4})
	assert.Equal(t, a.Kinds(), b.Kinds())

	other := NewGenerator(43).GenerateChunk(ChunkCoord{X: 3, Z: 4})
	assert.Equal(t, NewGenerator(42).Height(50, 66), NewGenerator(43).Height(50, 66), "height does not depend on seed")
	assert.NotEqual(t, a.Kinds(), other.Kinds(), "ores and trees depend on seed")
}

func TestGeneratedColumnLayers(t *testing.T) {
	g := NewGenerator(1)
	s := NewStore()
	s.PutChunk(g.GenerateChunk(ChunkCoord{}))
	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			h := g.Height(x, z)
			assert.Equal(t, Bedrock, s.Kind(Pos{X: x, Y: 0, Z: z}))
			top := s.Kind(Pos{X: x, Y: h, Z: z})
			assert.Contains(t, []BlockKind{Grass, Sand, Snow}, top, "surface at %d,%d", x, z)
			if h < g.SeaLevel {
				assert.Equal(t, Water, s.Kind(Pos{X: x, Y: g.SeaLevel, Z: z}))
			}
		}
	}
	sp := g.SpawnPoint(4, 4)
	assert.Equal(t, g.Height(4, 4)+1, sp.Y)
}

func TestBiomeSharedPerRegion(t *testing.T) {
	assert.Equal(t, Biome(0, 0), Biome(63, 63))
	assert.Equal(t, Biome(-1, -1), Biome(-64, -64))
	assert.Contains(t, Biomes(), Biome(1000, -5000))
	assert.Len(t, Biomes(), 58)
}

func TestSeasonAndWeather(t *testing.T) {
	assert.Equal(t, Spring, SeasonAt(0, 24000))
	assert.Equal(t, Summer, SeasonAt(4*24000, 24000))
	assert.Equal(t, Spring, SeasonAt(16*24000, 24000))
	assert.Equal(t, Spring, SeasonAt(1e6, 0))

	assert.False(t, WeatherClear.Wet())
	assert.True(t, WeatherThunder.Wet())

	data, err := json.Marshal(map[string]Weather{"w": WeatherRain})
	require.NoError(t, err)
	assert.JSONEq(t, `{"w":"rain"}`, string(data))
	var w Weather
	assert.Error(t, w.UnmarshalText([]byte("hail")))
}

func TestScatterStructures(t *testing.T) {
	g := NewGenerator(9)
	a := ScatterStructures(g, 12, 32, 256)
	b := ScatterStructures(g, 12, 32, 256)
	require.Len(t, a, 12)
	assert.Equal(t, a, b)
	for _, s := range a {
		d := float64(s.Pos.X*s.Pos.X + s.Pos.Z*s.Pos.Z)
		assert.GreaterOrEqual(t, d, 31.0*31.0, s.Name)
		assert.LessOrEqual(t, d, 257.0*257.0, s.Name)
		assert.NotEmpty(t, s.Loot)
	}
	a[0].Loot[ItemDiamond] = 99
	for _, arch := range Archetypes() {
		if arch.Name == a[0].Name {
			assert.NotEqual(t, 99, arch.Loot[ItemDiamond], "placed loot is a copy")
		}
	}
	assert.Len(t, Archetypes(), 30)
}

func TestStreamerRespectsBudget(t *testing.T) {
	g := NewGenerator(5)
	s := NewStore()
	var generated []ChunkCoord
	st := NewStreamer(g, s, rate.NewLimiter(rate.Every(time.Second), 2), nil)
	st.OnGenerate = func(cc ChunkCoord) { generated = append(generated, cc) }

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, st.Ensure(now, 8, 8, 16))
	assert.Equal(t, ChunkCoord{0, 0}, generated[0], "nearest chunk first")
	assert.Equal(t, 0, st.Ensure(now, 8, 8, 16), "budget spent")
	assert.Equal(t, 1, st.Ensure(now.Add(time.Second), 8, 8, 16))

	st.SetLimiter(nil)
	assert.Equal(t, 6, st.Ensure(now, 8, 8, 16))
	assert.Equal(t, 9, s.ChunkCount())
	assert.Equal(t, 0, st.Fill(ChunkCoord{}, 1))
	assert.Equal(t, 16, st.Fill(ChunkCoord{}, 2))
}

// scanChunks generates a size x size square of chunks around the origin.
func scanChunks(g *Generator, size int) *Store {
	s := NewStore()
	for cz := -size / 2; cz < size-size/2; cz++ {
		for cx := -size / 2; cx < size-size/2; cx++ {
			s.PutChunk(g.GenerateChunk(ChunkCoord{X: cx, Z: cz}))
		}
	}
	return s
}

func TestTreesHaveTrunkAndCanopy(t *testing.T) {
	g := NewGenerator(42)
	s := scanChunks(g, 6)
	trunks := map[int]int{}
	for _, cc := range s.Coords() {
		o := cc.Origin()
		for lz := 0; lz < ChunkSize; lz++ {
			for lx := 0; lx < ChunkSize; lx++ {
				x, z := o.X+lx, o.Z+lz
				h := g.Height(x, z)
				base := Pos{X: x, Y: h + 1, Z: z}
				if s.Kind(base) != Wood {
					continue
				}
				assert.Equal(t, Grass, s.Kind(Pos{X: x, Y: h, Z: z}), "tree at %d,%d not on grass", x, z)
				n := 0
				for s.Kind(base.Add(0, n, 0)) == Wood {
					n++
				}
				trunks[n]++
				top := base.Add(0, n-1, 0)
				leaves := 0
				s.ForEachInBox(top.Add(-2, -1, -2), top.Add(2, 2, 2), func(b Block) bool {
					if b.Kind == Leaves {
						leaves++
					}
					return true
				})
				assert.Positive(t, leaves, "trunk at %d,%d has no canopy", x, z)
			}
		}
	}
	require.NotEmpty(t, trunks)
	for n, count := range trunks {
		assert.True(t, n >= 4 && n <= 6, "trunk of %d blocks seen %d times", n, count)
	}
}

func TestOresReplaceStoneByRarity(t *testing.T) {
	g := NewGenerator(42)
	s := scanChunks(g, 6)
	counts := map[BlockKind]int{}
	s.ForEachInBox(Pos{X: -48, Y: 0, Z: -48}, Pos{X: 47, Y: MaxHeight - 1, Z: 47}, func(b Block) bool {
		switch b.Kind {
		case CoalOre, IronOre, GoldOre, DiamondOre:
			counts[b.Kind]++
			h := g.Height(b.Pos.X, b.Pos.Z)
			assert.True(t, b.Pos.Y >= 1 && b.Pos.Y < h-g.DirtDepth, "%s at %v outside the stone layer", b.Kind, b.Pos)
		}
		return true
	})
	assert.Greater(t, counts[CoalOre], counts[IronOre])
	assert.Greater(t, counts[IronOre], counts[GoldOre])
	assert.Greater(t, counts[GoldOre], counts[DiamondOre])
	assert.Positive(t, counts[DiamondOre])
}

func TestDirtBandUnderSurface(t *testing.T) {
	g := NewGenerator(42)
	s := scanChunks(g, 4)
	tops := map[BlockKind]int{}
	for x := -32; x < 32; x++ {
		for z := -32; z < 32; z++ {
			h := g.Height(x, z)
			top := s.Kind(Pos{X: x, Y: h, Z: z})
			band := Dirt
			if top == Sand {
				band = Sand
			}
			tops[top]++
			n := 0
			for s.Kind(Pos{X: x, Y: h - 1 - n, Z: z}) == band {
				n++
			}
			assert.Contains(t, []int{3, 4}, n, "%s column %d,%d has a %d block band", top, x, z, n)
		}
	}
	assert.Positive(t, tops[Grass])
}

func TestChunkSeedsDoNotCollide(t *testing.T) {
	g := NewGenerator(42)
	assert.NotEqual(t, chunkSeed(42, ChunkCoord{X: 17, Z: 0}), chunkSeed(42, ChunkCoord{X: 0, Z: 31}))
	assert.NotEqual(t,
		g.GenerateChunk(ChunkCoord{X: 17, Z: 0}).Kinds(),
		g.GenerateChunk(ChunkCoord{X: 0, Z: 31}).Kinds())

	seen := map[int64]ChunkCoord{}
	for cx := -20; cx <= 20; cx++ {
		for cz := -20; cz <= 20; cz++ {
			cc := ChunkCoord{X: cx, Z: cz}
			k := chunkSeed(42, cc)
			prev, dup := seen[k]
			assert.False(t, dup, "%v and %v share a seed", prev, cc)
			seen[k] = cc
		}
	}
}
