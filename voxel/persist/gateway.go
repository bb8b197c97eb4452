package persist

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"voxelbox/voxel/settings"
)

// Gateway is the persistence boundary. Implementations are synchronous.
type Gateway interface {
	SaveWorld(ctx context.Context, snap *Snapshot) error
	// LoadWorld returns ErrNotFound when no world was saved.
	LoadWorld(ctx context.Context) (*Snapshot, error)
	SaveSettings(ctx context.Context, s settings.Settings) error
	// LoadSettings returns ErrNotFound when no settings were saved.
	LoadSettings(ctx context.Context) (settings.Settings, error)
	Close() error
}

// Config selects and locates a backend.
type Config struct {
	Backend string `yaml:"backend"` // file, badger or memory
	Dir     string `yaml:"dir"`
}

// Open returns the gateway named by cfg.Backend.
func Open(cfg Config, log *zap.Logger) (Gateway, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "data"
	}
	switch cfg.Backend {
	case "", "file":
		return NewFileGateway(dir, log)
	case "badger":
		return OpenBadger(filepath.Join(dir, "db"), log)
	case "memory":
		return OpenBadgerInMemory(log)
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Backend)
	}
}
