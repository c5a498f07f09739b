package shading

import "github.com/chewxy/math32"

// State is the interaction state of the audio-reactive entity. Set by outside
// collaborators (voice layer, console), read once per rendered frame.
type State int

const (
	StateIdle State = iota
	StateListening
	StateSpeaking
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateListening:
		return "listening"
	case StateSpeaking:
		return "speaking"
	default:
		return "idle"
	}
}

// ParseState maps a state name to a State; unknown names fall back to idle.
func ParseState(name string) State {
	switch name {
	case "listening":
		return StateListening
	case "speaking":
		return StateSpeaking
	default:
		return StateIdle
	}
}

// Per-state base palettes for the entity program (linear RGB).
var (
	paletteIdle      = [3]float32{0.22, 0.38, 0.62}
	paletteListening = [3]float32{0.18, 0.62, 0.48}
	paletteSpeaking  = [3]float32{0.70, 0.42, 0.88}
)

// Palette returns the entity base color for a state.
func Palette(s State) [3]float32 {
	switch s {
	case StateListening:
		return paletteListening
	case StateSpeaking:
		return paletteSpeaking
	default:
		return paletteIdle
	}
}

// Speaking pulse: a fast sinusoid scaling the final entity color. Identity in
// every other state.
const (
	pulseRate  = float32(14.0)
	pulseDepth = float32(0.18)
)

// PulseFactor returns the color pulse multiplier for a state at elapsed time t.
// It is 1 outside Speaking and oscillates in [1-pulseDepth, 1+pulseDepth] while
// speaking.
func PulseFactor(s State, t float32) float32 {
	if s != StateSpeaking {
		return 1
	}
	return 1 + pulseDepth*math32.Sin(pulseRate*t)
}
