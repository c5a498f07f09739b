package audio

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sine returns n samples of a tone with the given number of cycles per window.
func sine(n int, cycles float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = 0.8 * math32.Sin(2*math32.Pi*cycles*float32(i)/windowSize)
	}
	return out
}

func TestDetachedBridgeStaysZero(t *testing.T) {
	b := NewBridge()
	b.Push(sine(windowSize*2, 40))
	assert.Equal(t, Field{}, b.Field(), "samples pushed while detached are dropped")
}

func TestToneRaisesItsBin(t *testing.T) {
	b := NewBridge()
	b.Attach()
	// 40 cycles per window lands on FFT coefficient 40, which groups into
	// field bin (40-1)/binGroup.
	b.Push(sine(windowSize, 40))

	f := b.Field()
	toneBin := (40 - 1) / binGroup
	assert.Greater(t, f[toneBin], float32(0.1))
	assert.Greater(t, f[toneBin], f[FieldSize-4], "tone bin must dominate a quiet high bin")
}

func TestFieldStaysInRange(t *testing.T) {
	b := NewBridge()
	b.Attach()
	// Clipping-loud noise-ish input: sum of several tones at full scale.
	samples := make([]float32, windowSize*2)
	for i := range samples {
		x := float32(i)
		samples[i] = math32.Sin(x*0.1) + math32.Sin(x*0.37) + math32.Sin(x*1.9)
	}
	b.Push(samples)

	for i, v := range b.Field() {
		assert.GreaterOrEqual(t, v, float32(0), "bin %d", i)
		assert.LessOrEqual(t, v, float32(1), "bin %d", i)
	}
}

func TestReleaseIsGradual(t *testing.T) {
	b := NewBridge()
	b.Attach()
	b.Push(sine(windowSize, 40))
	toneBin := (40 - 1) / binGroup
	loud := b.Field()[toneBin]
	require.Greater(t, loud, float32(0))

	b.Push(make([]float32, windowSize))
	quiet := b.Field()[toneBin]
	assert.Less(t, quiet, loud)
	assert.Greater(t, quiet, float32(0), "release smoothing keeps a tail")
}

func TestDetachResetsField(t *testing.T) {
	b := NewBridge()
	b.Attach()
	b.Push(sine(windowSize, 40))
	require.NotEqual(t, Field{}, b.Field())

	b.Detach()
	assert.Equal(t, Field{}, b.Field())
	assert.False(t, b.Attached())
}
