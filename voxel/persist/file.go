package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"voxelbox/voxel/settings"
)

const (
	worldFile    = "world.snap.zst"
	settingsFile = "settings.json"
)

// FileGateway stores the world and settings as files in one directory.
// Writes go to a temp file and are renamed into place.
type FileGateway struct {
	dir string
	log *zap.Logger
}

func NewFileGateway(dir string, log *zap.Logger) (*FileGateway, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileGateway{dir: dir, log: log}, nil
}

func (g *FileGateway) SaveWorld(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(g.dir, worldFile)
	err := writeAtomic(path, func(f *os.File) error {
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		if err := WriteSnapshot(enc, snap); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	})
	if err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	g.log.Debug("world saved", zap.String("path", path), zap.Int("chunks", len(snap.Chunks)))
	return nil
}

func (g *FileGateway) LoadWorld(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(g.dir, worldFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}
	defer dec.Close()

	snap, err := ReadSnapshot(dec)
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}
	return snap, nil
}

func (g *FileGateway) SaveSettings(ctx context.Context, s settings.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := settings.Export(s)
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(g.dir, settingsFile), func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
}

func (g *FileGateway) LoadSettings(ctx context.Context) (settings.Settings, error) {
	if err := ctx.Err(); err != nil {
		return settings.Settings{}, err
	}
	s, err := settings.ImportFile(filepath.Join(g.dir, settingsFile))
	if errors.Is(err, os.ErrNotExist) {
		return settings.Settings{}, ErrNotFound
	}
	return s, err
}

func (g *FileGateway) Close() error { return nil }

func writeAtomic(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
