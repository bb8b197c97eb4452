package persist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"voxelbox/voxel/settings"
)

var (
	keyWorld    = []byte("world/snapshot")
	keySettings = []byte("settings")
)

// BadgerGateway keeps the world and settings in a badger database. The world
// value is zstd-compressed.
type BadgerGateway struct {
	db  *badger.DB
	log *zap.Logger

	mu      sync.Mutex
	enc     *zstd.Encoder
	dec     *zstd.Decoder
	isReady bool
}

func OpenBadger(path string, log *zap.Logger) (*BadgerGateway, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	return openBadger(opts, log)
}

// OpenBadgerInMemory opens a throwaway database; nothing reaches disk.
func OpenBadgerInMemory(log *zap.Logger) (*BadgerGateway, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts, log)
}

func openBadger(opts badger.Options, log *zap.Logger) (*BadgerGateway, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BadgerGateway{db: db, log: log, enc: enc, dec: dec, isReady: true}, nil
}

func (g *BadgerGateway) put(ctx context.Context, key, val []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

func (g *BadgerGateway) get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var val []byte
	err := g.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (g *BadgerGateway) SaveWorld(ctx context.Context, snap *Snapshot) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.isReady {
		return fmt.Errorf("save world: store closed")
	}
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, snap); err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	if err := g.put(ctx, keyWorld, g.enc.EncodeAll(buf.Bytes(), nil)); err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	g.log.Debug("world saved", zap.Int("chunks", len(snap.Chunks)), zap.Int("raw_bytes", buf.Len()))
	return nil
}

func (g *BadgerGateway) LoadWorld(ctx context.Context) (*Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.isReady {
		return nil, fmt.Errorf("load world: store closed")
	}
	val, err := g.get(ctx, keyWorld)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load world: %w", err)
	}
	raw, err := g.dec.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}
	snap, err := ReadSnapshot(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}
	return snap, nil
}

func (g *BadgerGateway) SaveSettings(ctx context.Context, s settings.Settings) error {
	data, err := settings.Export(s)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.isReady {
		return fmt.Errorf("save settings: store closed")
	}
	return g.put(ctx, keySettings, data)
}

func (g *BadgerGateway) LoadSettings(ctx context.Context) (settings.Settings, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.isReady {
		return settings.Settings{}, fmt.Errorf("load settings: store closed")
	}
	val, err := g.get(ctx, keySettings)
	if err != nil {
		return settings.Settings{}, err
	}
	return settings.Import(val)
}

func (g *BadgerGateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.isReady {
		return nil
	}
	g.isReady = false
	g.enc.Close()
	g.dec.Close()
	return g.db.Close()
}
