// Package persist saves and restores worlds and settings.
//
// A world is written as a Snapshot: a JSON header line followed by the JSON
// body, zstd-compressed. Two backends store it: plain files under a data
// directory, or a badger key-value store.
package persist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"voxelbox/voxel/entity"
	"voxelbox/voxel/world"
)

const SnapshotVersion = 1

var (
	// ErrNotFound is returned when nothing has been saved yet.
	ErrNotFound = errors.New("not found")
	// ErrInvalidBackup wraps backup files that fail validation.
	ErrInvalidBackup = errors.New("invalid backup")
)

type Header struct {
	Version int       `json:"version"`
	Seed    int64     `json:"seed"`
	SavedAt time.Time `json:"savedAt"`
}

// Snapshot is the persisted game state.
type Snapshot struct {
	Header Header `json:"header"`

	Time         float64       `json:"time"`
	DayLength    float64       `json:"dayLength"`
	Weather      world.Weather `json:"weather"`
	WeatherUntil float64       `json:"weatherUntil"`
	Season       world.Season  `json:"season"`
	Dimension    string        `json:"dimension"`
	Biome        string        `json:"biome"`
	CameraMode   string        `json:"cameraMode"`

	Player    entity.Player          `json:"player"`
	Mobs      []entity.Mob           `json:"mobs"`
	Inventory map[world.ItemKind]int `json:"inventory"`
	Hotbar    [9]world.ItemKind      `json:"hotbar"`
	Selected  int                    `json:"selected"`

	Structures   []world.Structure `json:"structures"`
	Chunks       []ChunkV1         `json:"chunks"`
	Stats        entity.Stats      `json:"stats"`
	Achievements []string          `json:"achievements"`
}

type ChunkV1 struct {
	CX         int                        `json:"cx"`
	CZ         int                        `json:"cz"`
	Kinds      []byte                     `json:"kinds"`
	Durability []world.DurabilityOverride `json:"durability,omitempty"`
}

// CaptureChunks copies every loaded chunk out of the store.
func CaptureChunks(s *world.Store) []ChunkV1 {
	coords := s.Coords()
	out := make([]ChunkV1, 0, len(coords))
	for _, cc := range coords {
		c, _ := s.Chunk(cc)
		out = append(out, ChunkV1{CX: cc.X, CZ: cc.Z, Kinds: c.Kinds(), Durability: c.DurabilityOverrides()})
	}
	return out
}

// RestoreChunks rebuilds a store from snapshot chunks.
func RestoreChunks(chunks []ChunkV1) (*world.Store, error) {
	s := world.NewStore()
	for _, ch := range chunks {
		c, err := world.ChunkFromKinds(world.ChunkCoord{X: ch.CX, Z: ch.CZ}, ch.Kinds, ch.Durability)
		if err != nil {
			return nil, err
		}
		s.PutChunk(c)
	}
	return s, nil
}

// WriteSnapshot encodes snap as a header line plus body. The caller compresses.
func WriteSnapshot(w io.Writer, snap *Snapshot) error {
	bw := bufio.NewWriterSize(w, 256*1024)
	hb, err := json.Marshal(snap.Header)
	if err != nil {
		return err
	}
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := json.NewEncoder(bw).Encode(snap); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return bw.Flush()
}

// ReadSnapshot decodes WriteSnapshot output.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	br := bufio.NewReaderSize(r, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(bytes.TrimSpace(line), &h); err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	if h.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", h.Version)
	}
	var snap Snapshot
	if err := json.NewDecoder(br).Decode(&snap); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	return &snap, nil
}
