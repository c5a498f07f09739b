package body

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Gradient texture dimensions. Width wraps around the sphere's equator, height
// runs pole to pole.
const (
	texWidth  = 256
	texHeight = 128
	// bandAmplitude shifts the gradient position per row to fake latitude bands.
	bandAmplitude = 0.06
	// blurRadius softens the banding before upload (anti-banding).
	blurRadius = 1.6
)

// GradientImage synthesizes the surface texture for a body: a vertical Lab-space
// blend from primary to secondary with subtle latitude banding. Deterministic for
// a given color pair; the band phase is derived from the colors themselves.
func GradientImage(primary, secondary colorful.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, texWidth, texHeight))
	phase := bandPhase(primary, secondary)
	for y := 0; y < texHeight; y++ {
		t := float32(y) / float32(texHeight-1)
		band := bandAmplitude * math32.Sin(float32(y)*0.55+phase)
		tt := clamp01(t + band)
		c := primary.BlendLab(secondary, float64(tt)).Clamped()
		r8, g8, b8 := c.RGB255()
		for x := 0; x < texWidth; x++ {
			img.SetRGBA(x, y, color.RGBA{R: r8, G: g8, B: b8, A: 255})
		}
	}
	return blur.Gaussian(img, blurRadius)
}

// RingImage synthesizes the annulus texture for a ringed body: transparent except
// for a soft ring band tinted with a muted variant of the secondary color. Mapped
// onto a flat plane mesh, the alpha carries the annulus shape.
func RingImage(secondary colorful.Color) *image.RGBA {
	const size = 256
	muted := secondary.BlendLab(colorful.Color{R: 0.55, G: 0.55, B: 0.55}, 0.45).Clamped()
	r8, g8, b8 := muted.RGB255()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float32(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float32(x) - center) / center
			dy := (float32(y) - center) / center
			d := math32.Sqrt(dx*dx + dy*dy)
			// Ring band occupies the normalized radius range [0.60, 0.98],
			// matching the inner/outer annulus proportions of the ring mesh.
			a := ringAlpha(d)
			img.SetRGBA(x, y, color.RGBA{R: r8, G: g8, B: b8, A: a})
		}
	}
	return blur.Gaussian(img, blurRadius)
}

// ringAlpha maps a normalized radial distance to ring opacity: zero inside the
// gap and outside the rim, strongest mid-band, with a faint inner lane.
func ringAlpha(d float32) uint8 {
	if d < 0.60 || d > 0.98 {
		return 0
	}
	t := (d - 0.60) / 0.38
	fade := math32.Sin(t * math32.Pi)
	lane := 0.75 + 0.25*math32.Sin(t*21.0)
	a := 168 * fade * lane
	if a < 0 {
		a = 0
	}
	return uint8(a)
}

// bandPhase derives a deterministic band offset from the color pair so two
// bodies with different palettes do not show identical banding.
func bandPhase(a, b colorful.Color) float32 {
	h := float32(a.R*12.9898+a.G*78.233+a.B*37.719) +
		float32(b.R*93.989+b.G*67.345+b.B*11.135)
	_, frac := math32.Modf(h)
	return frac * 2 * math32.Pi
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
