// Package snapshot is the engine's input boundary for celestial-body records:
// a YAML file of records, re-read whenever it changes on disk. Whatever
// produces the file (hand edits, the discovery agent, an external service) is
// invisible to the engine; it only ever sees complete snapshots.
package snapshot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"starsystem/internal/body"
)

// File is the on-disk document shape.
type File struct {
	Bodies []body.Record `yaml:"bodies"`
}

// Load reads and parses a snapshot file.
func Load(path string) ([]body.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a snapshot document.
func Parse(data []byte) ([]body.Record, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return f.Bodies, nil
}

// Save writes records back as a snapshot document (used by the discovery
// agent to append newly generated bodies).
func Save(path string, records []body.Record) error {
	data, err := yaml.Marshal(File{Bodies: records})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
