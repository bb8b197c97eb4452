package persist

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"voxelbox/voxel/entity"
	"voxelbox/voxel/settings"
)

const (
	BackupVersion   = 1
	backupSchemaURL = "https://voxelbox.dev/schema/backup.json"
)

//go:embed backup.schema.json
var backupSchemaJSON string

var backupSchema struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

func compileBackupSchema() (*jsonschema.Schema, error) {
	backupSchema.once.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(settings.SchemaURL, strings.NewReader(settings.SchemaJSON)); err != nil {
			backupSchema.err = err
			return
		}
		if err := c.AddResource(backupSchemaURL, strings.NewReader(backupSchemaJSON)); err != nil {
			backupSchema.err = err
			return
		}
		backupSchema.schema, backupSchema.err = c.Compile(backupSchemaURL)
	})
	return backupSchema.schema, backupSchema.err
}

// Backup bundles settings, the world, achievements and statistics.
type Backup struct {
	Version      int               `json:"version"`
	CreatedAt    time.Time         `json:"createdAt"`
	Settings     settings.Settings `json:"settings"`
	World        *Snapshot         `json:"world"`
	Achievements []string          `json:"achievements"`
	Stats        entity.Stats      `json:"stats"`
}

// NewBackup assembles a bundle from a world snapshot and settings.
func NewBackup(now time.Time, s settings.Settings, snap *Snapshot) Backup {
	return Backup{
		Version:      BackupVersion,
		CreatedAt:    now.UTC(),
		Settings:     s,
		World:        snap,
		Achievements: snap.Achievements,
		Stats:        snap.Stats,
	}
}

// ExportBackup writes b as indented JSON.
func ExportBackup(w io.Writer, b Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// ImportBackup validates data before decoding it. Nothing is returned for a
// bundle that fails validation.
func ImportBackup(data []byte) (*Backup, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	sch, err := compileBackupSchema()
	if err != nil {
		return nil, fmt.Errorf("compile backup schema: %w", err)
	}
	if err := sch.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	var doc struct {
		Backup
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	s, err := settings.Import(doc.Settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	b := doc.Backup
	b.Settings = s
	if _, err := RestoreChunks(b.World.Chunks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return &b, nil
}

func ExportBackupFile(path string, b Backup) error {
	return writeAtomic(path, func(f *os.File) error {
		return ExportBackup(f, b)
	})
}

func ImportBackupFile(path string) (*Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ImportBackup(data)
}
