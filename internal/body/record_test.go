package body

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	fallback := colorful.Color{R: 0.1, G: 0.2, B: 0.3}

	c := ParseColor("#ff0080", fallback)
	assert.InDelta(t, 1.0, c.R, 1e-6)
	assert.InDelta(t, 0.0, c.G, 1e-6)
	assert.InDelta(t, 128.0/255.0, c.B, 1e-6)

	assert.Equal(t, fallback, ParseColor("", fallback))
	assert.Equal(t, fallback, ParseColor("not-a-color", fallback))
	assert.Equal(t, fallback, ParseColor("#12", fallback))
}

func TestRecordColorFallbacks(t *testing.T) {
	var r Record // no visual params at all
	assert.Equal(t, fallbackPrimary, r.PrimaryColor())
	assert.Equal(t, fallbackSecondary, r.SecondaryColor())
	assert.Equal(t, fallbackAtmosphere, r.AtmosphereColor())

	r.Visual.Primary = "#336699"
	c := r.PrimaryColor()
	assert.InDelta(t, 0x33/255.0, c.R, 1e-6)
	assert.InDelta(t, 0x66/255.0, c.G, 1e-6)
	assert.InDelta(t, 0x99/255.0, c.B, 1e-6)
}

func TestIsGasClass(t *testing.T) {
	cases := map[string]bool{
		"gas giant": true,
		"Gas Dwarf": true,
		"hot gas":   true,
		"rocky":     false,
		"ice":       false,
		"lava":      false,
		"":          false,
	}
	for class, want := range cases {
		r := Record{Class: class}
		assert.Equal(t, want, r.IsGasClass(), "class %q", class)
	}
}
