package body

import (
	"bytes"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradientImageDeterministic(t *testing.T) {
	primary := colorful.Color{R: 0.8, G: 0.5, B: 0.2}
	secondary := colorful.Color{R: 0.2, G: 0.1, B: 0.05}

	a := GradientImage(primary, secondary)
	b := GradientImage(primary, secondary)
	require.Equal(t, a.Bounds(), b.Bounds())
	assert.True(t, bytes.Equal(a.Pix, b.Pix), "same palette must give identical textures")
}

func TestGradientImageShape(t *testing.T) {
	img := GradientImage(colorful.Color{R: 1}, colorful.Color{B: 1})
	assert.Equal(t, texWidth, img.Bounds().Dx())
	assert.Equal(t, texHeight, img.Bounds().Dy())

	// The top rows lean toward primary (red), the bottom toward secondary (blue).
	top := img.RGBAAt(texWidth/2, 2)
	bottom := img.RGBAAt(texWidth/2, texHeight-3)
	assert.Greater(t, top.R, top.B)
	assert.Greater(t, bottom.B, bottom.R)
	assert.EqualValues(t, 255, top.A)
}

func TestGradientImageDiffersByPalette(t *testing.T) {
	a := GradientImage(colorful.Color{R: 1}, colorful.Color{B: 1})
	b := GradientImage(colorful.Color{G: 1}, colorful.Color{B: 1})
	assert.False(t, bytes.Equal(a.Pix, b.Pix))
}

func TestRingImageAnnulus(t *testing.T) {
	img := RingImage(colorful.Color{R: 0.7, G: 0.6, B: 0.4})
	size := img.Bounds().Dx()
	require.Equal(t, size, img.Bounds().Dy())
	center := size / 2

	// Transparent in the gap and at the corners, opaque somewhere mid-band.
	assert.EqualValues(t, 0, img.RGBAAt(center, center).A)
	assert.EqualValues(t, 0, img.RGBAAt(1, 1).A)

	bandX := center + int(0.79*float64(center))
	assert.Greater(t, img.RGBAAt(bandX, center).A, uint8(40))
}
