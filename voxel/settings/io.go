package settings

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaURL identifies the settings schema when other schemas reference it.
const SchemaURL = "https://voxelbox.dev/schema/settings.json"

//go:embed settings.schema.json
var SchemaJSON string

var compiled struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// Schema returns the compiled settings schema.
func Schema() (*jsonschema.Schema, error) {
	compiled.once.Do(func() {
		compiled.schema, compiled.err = jsonschema.CompileString(SchemaURL, SchemaJSON)
	})
	return compiled.schema, compiled.err
}

// Export encodes s as indented JSON.
func Export(s Settings) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Import validates data against the schema and decodes it over Defaults, so
// omitted sections keep their default values. A file that fails validation
// leaves nothing applied.
func Import(data []byte) (Settings, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := Validate(raw); err != nil {
		return Settings{}, err
	}
	s := Defaults()
	s.Controls.KeyBindings = nil
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if s.Controls.KeyBindings == nil {
		s.Controls.KeyBindings = DefaultKeyBindings()
	}
	return s, nil
}

// Validate checks an already-decoded JSON value against the schema.
func Validate(v interface{}) error {
	sch, err := Schema()
	if err != nil {
		return fmt.Errorf("compile settings schema: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ExportFile writes s to path.
func ExportFile(path string, s Settings) error {
	data, err := Export(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ImportFile reads and validates path.
func ImportFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	return Import(data)
}
