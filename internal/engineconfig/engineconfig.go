package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Path is the engine config file, relative to the process working directory.
const Path = "config/starsystem.json"

// Prefs holds engine preferences (overlays, orbit guides, bloom, the AI model
// used by the discovery agent). Persisted across runs.
type Prefs struct {
	ShowFPS           bool   `json:"show_fps"`
	ShowMemAlloc      bool   `json:"show_memalloc"`
	OrbitRingsVisible bool   `json:"orbit_rings_visible"`
	BloomEnabled      bool   `json:"bloom_enabled"`
	AIModel           string `json:"ai_model,omitempty"`
}

// Default returns default preferences: overlays off, orbit rings and bloom on.
func Default() Prefs {
	return Prefs{
		ShowFPS:           false,
		ShowMemAlloc:      false,
		OrbitRingsVisible: true,
		BloomEnabled:      true,
		AIModel:           "gpt-4o-mini",
	}
}

// Load reads preferences from Path. A missing or invalid file yields
// Default() and no error; the file is not created until Save.
func Load() (Prefs, error) {
	data, err := os.ReadFile(Path)
	if err != nil {
		return Default(), nil
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes preferences to Path, creating the config directory if needed.
func Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(Path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(Path, data, 0644)
}
