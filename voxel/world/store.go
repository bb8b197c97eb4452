package world

import "sort"

// Store is the in-memory block store, keyed by chunk. A position holds at most
// one block; air is the absence of a block.
//
// Store is not safe for concurrent use; the game loop owns it.
type Store struct {
	chunks map[ChunkCoord]*Chunk
}

func NewStore() *Store {
	return &Store{chunks: make(map[ChunkCoord]*Chunk)}
}

func (s *Store) Chunk(cc ChunkCoord) (*Chunk, bool) {
	c, ok := s.chunks[cc]
	return c, ok
}

func (s *Store) HasChunk(cc ChunkCoord) bool {
	_, ok := s.chunks[cc]
	return ok
}

// PutChunk installs c, replacing any chunk at the same coordinate.
func (s *Store) PutChunk(c *Chunk) {
	if c == nil {
		return
	}
	s.chunks[c.Coord] = c
}

// Coords lists loaded chunks in a stable order.
func (s *Store) Coords() []ChunkCoord {
	out := make([]ChunkCoord, 0, len(s.chunks))
	for cc := range s.chunks {
		out = append(out, cc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Z < out[j].Z
	})
	return out
}

func (s *Store) ChunkCount() int { return len(s.chunks) }

// Len is the number of non-air blocks across all chunks.
func (s *Store) Len() int {
	n := 0
	for _, c := range s.chunks {
		n += c.count
	}
	return n
}

func (s *Store) locate(p Pos) (*Chunk, int, int, bool) {
	if p.Y < 0 || p.Y >= MaxHeight {
		return nil, 0, 0, false
	}
	c, ok := s.chunks[ChunkOf(p.X, p.Z)]
	if !ok {
		return nil, 0, 0, false
	}
	return c, floorMod(p.X, ChunkSize), floorMod(p.Z, ChunkSize), true
}

// Kind returns the kind at p; Air for empty or unloaded positions.
func (s *Store) Kind(p Pos) BlockKind {
	c, lx, lz, ok := s.locate(p)
	if !ok {
		return Air
	}
	return c.Get(lx, p.Y, lz)
}

// Block returns the block at p, if any.
func (s *Store) Block(p Pos) (Block, bool) {
	c, lx, lz, ok := s.locate(p)
	if !ok {
		return Block{}, false
	}
	k := c.Get(lx, p.Y, lz)
	if k == Air {
		return Block{}, false
	}
	return Block{Pos: p, Kind: k, Durability: c.Durability(lx, p.Y, lz)}, true
}

// SetBlock places k at p. It fails for unloaded chunks and out-of-range heights.
func (s *Store) SetBlock(p Pos, k BlockKind) bool {
	c, lx, lz, ok := s.locate(p)
	if !ok {
		return false
	}
	return c.Set(lx, p.Y, lz, k)
}

// RemoveBlock clears p and reports whether a block was there.
func (s *Store) RemoveBlock(p Pos) bool {
	c, lx, lz, ok := s.locate(p)
	if !ok || c.Get(lx, p.Y, lz) == Air {
		return false
	}
	return c.Set(lx, p.Y, lz, Air)
}

func (s *Store) SetDurability(p Pos, d int) bool {
	c, lx, lz, ok := s.locate(p)
	if !ok {
		return false
	}
	return c.SetDurability(lx, p.Y, lz, d)
}

var neighbours = [6]Pos{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}

// Exposed reports whether any of p's six neighbours lets light through.
// Blocks below y=0 count as opaque so the bedrock floor stays hidden.
func (s *Store) Exposed(p Pos) bool {
	for _, d := range neighbours {
		n := p.Add(d.X, d.Y, d.Z)
		if n.Y < 0 {
			continue
		}
		if !s.Kind(n).Opaque() {
			return true
		}
	}
	return false
}

// ForEachInBox calls fn for every non-air block within the inclusive box
// [min, max], ordered by y, then z, then x. fn returns false to stop.
func (s *Store) ForEachInBox(min, max Pos, fn func(Block) bool) {
	if min.Y < 0 {
		min.Y = 0
	}
	if max.Y >= MaxHeight {
		max.Y = MaxHeight - 1
	}
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return
	}
	for y := min.Y; y <= max.Y; y++ {
		for z := min.Z; z <= max.Z; z++ {
			for cx := floorDiv(min.X, ChunkSize); cx <= floorDiv(max.X, ChunkSize); cx++ {
				c, ok := s.chunks[ChunkCoord{X: cx, Z: floorDiv(z, ChunkSize)}]
				if !ok {
					continue
				}
				lz := floorMod(z, ChunkSize)
				x0 := cx * ChunkSize
				x1 := x0 + ChunkSize - 1
				if x0 < min.X {
					x0 = min.X
				}
				if x1 > max.X {
					x1 = max.X
				}
				for x := x0; x <= x1; x++ {
					lx := x - cx*ChunkSize
					k := c.kinds[index(lx, y, lz)]
					if k == Air {
						continue
					}
					if !fn(Block{Pos: Pos{X: x, Y: y, Z: z}, Kind: k, Durability: c.Durability(lx, y, lz)}) {
						return
					}
				}
			}
		}
	}
}
