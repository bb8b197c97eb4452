package world

import (
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Streamer generates missing chunks around a moving center, nearest first,
// spending at most one limiter token per chunk.
type Streamer struct {
	gen     *Generator
	store   *Store
	limiter *rate.Limiter
	log     *zap.Logger

	// OnGenerate, when set, is called after each chunk is installed.
	OnGenerate func(ChunkCoord)

	queue []ChunkCoord
}

func NewStreamer(gen *Generator, store *Store, limiter *rate.Limiter, log *zap.Logger) *Streamer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Streamer{gen: gen, store: store, limiter: limiter, log: log}
}

// SetLimiter swaps the generation budget.
func (s *Streamer) SetLimiter(l *rate.Limiter) { s.limiter = l }

// Fill synchronously generates every chunk within radius chunks of center,
// ignoring the limiter. Used when a world is created.
func (s *Streamer) Fill(center ChunkCoord, radius int) int {
	n := 0
	for _, cc := range s.missing(center, radius) {
		s.generate(cc)
		n++
	}
	return n
}

// Ensure generates missing chunks within radiusBlocks of the block column
// (x, z) until the limiter runs dry. It returns the number generated.
func (s *Streamer) Ensure(now time.Time, x, z, radiusBlocks int) int {
	center := ChunkOf(x, z)
	radius := (radiusBlocks + ChunkSize - 1) / ChunkSize
	n := 0
	for _, cc := range s.missing(center, radius) {
		if s.limiter != nil && !s.limiter.AllowN(now, 1) {
			break
		}
		s.generate(cc)
		n++
	}
	return n
}

func (s *Streamer) generate(cc ChunkCoord) {
	s.store.PutChunk(s.gen.GenerateChunk(cc))
	s.log.Debug("chunk generated", zap.Int("cx", cc.X), zap.Int("cz", cc.Z))
	if s.OnGenerate != nil {
		s.OnGenerate(cc)
	}
}

func (s *Streamer) missing(center ChunkCoord, radius int) []ChunkCoord {
	q := s.queue[:0]
	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			cc := ChunkCoord{X: center.X + dx, Z: center.Z + dz}
			if !s.store.HasChunk(cc) {
				q = append(q, cc)
			}
		}
	}
	sort.Slice(q, func(i, j int) bool {
		di := sq(q[i].X-center.X) + sq(q[i].Z-center.Z)
		dj := sq(q[j].X-center.X) + sq(q[j].Z-center.Z)
		if di != dj {
			return di < dj
		}
		if q[i].X != q[j].X {
			return q[i].X < q[j].X
		}
		return q[i].Z < q[j].Z
	})
	s.queue = q
	return q
}

func sq(v int) int { return v * v }
