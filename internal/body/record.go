package body

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// VisualParams are the color and ring settings for one body, as delivered by the
// snapshot source. Colors are hex strings ("#rrggbb"); invalid or missing values
// fall back to defaults so a bad record never blanks the scene.
type VisualParams struct {
	Primary    string `yaml:"primary" json:"primary"`
	Secondary  string `yaml:"secondary" json:"secondary"`
	Atmosphere string `yaml:"atmosphere" json:"atmosphere"`
	Rings      bool   `yaml:"rings" json:"rings"`
}

// Record describes one celestial body. Records come from outside the engine
// (snapshot file, discovery agent) and are treated as immutable per ID: the
// registry never rebuilds a live body when a record with the same ID changes.
type Record struct {
	ID     string       `yaml:"id" json:"id"`
	Name   string       `yaml:"name" json:"name"`
	Class  string       `yaml:"class" json:"class"`
	Visual VisualParams `yaml:"visual" json:"visual"`
}

// Fallback colors used when a record's visual params are missing or unparseable.
var (
	fallbackPrimary    = colorful.Color{R: 0.55, G: 0.52, B: 0.60}
	fallbackSecondary  = colorful.Color{R: 0.18, G: 0.16, B: 0.24}
	fallbackAtmosphere = colorful.Color{R: 0.45, G: 0.60, B: 0.90}
)

// ParseColor parses a "#rrggbb" hex string, returning fallback when the value
// is empty or malformed.
func ParseColor(hex string, fallback colorful.Color) colorful.Color {
	if hex == "" {
		return fallback
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}

// PrimaryColor returns the parsed primary surface color, or its fallback.
func (r Record) PrimaryColor() colorful.Color {
	return ParseColor(r.Visual.Primary, fallbackPrimary)
}

// SecondaryColor returns the parsed secondary surface color, or its fallback.
func (r Record) SecondaryColor() colorful.Color {
	return ParseColor(r.Visual.Secondary, fallbackSecondary)
}

// AtmosphereColor returns the parsed atmosphere color, or its fallback.
func (r Record) AtmosphereColor() colorful.Color {
	return ParseColor(r.Visual.Atmosphere, fallbackAtmosphere)
}

// IsGasClass reports whether the record's class puts it in the enlarged
// geometry tier (anything mentioning "gas", e.g. "gas giant", "hot gas dwarf").
func (r Record) IsGasClass() bool {
	return strings.Contains(strings.ToLower(r.Class), "gas")
}
