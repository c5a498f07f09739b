// Package audio turns a live input stream into the fixed-size
// frequency-magnitude field sampled by the entity program. Analysis runs on
// the capture callback's cadence; the render loop reads the most recently
// completed field, so audio and video are not phase-locked by design.
package audio

import (
	"math"
	"sync"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// FieldSize is the number of magnitude bins exposed to the shader.
	FieldSize = 64
	// windowSize is the FFT window over mono PCM samples.
	windowSize = 1024
	// hopSize is how many new samples trigger a re-analysis.
	hopSize = 512
	// binGroup spectrum coefficients are averaged into each field bin.
	binGroup = (windowSize / 2) / FieldSize
	// Per-bin exponential smoothing: fast attack, slow release.
	attack  = float32(0.55)
	release = float32(0.08)
	// gain scales windowed magnitudes into a useful [0,1] range before the
	// soft compression curve.
	gain = float32(6.0)
)

// Field is one frame of the magnitude field, every sample in [0,1].
type Field [FieldSize]float32

// Bridge accumulates mono PCM pushed from a capture goroutine and maintains
// the smoothed magnitude field. When no source is attached the field is all
// zeros, so the entity renders pulseless rather than reading garbage.
type Bridge struct {
	mu       sync.Mutex
	ring     []float32
	w        int
	filled   bool
	pending  int
	attached bool

	fft     *fourier.FFT
	window  []float64
	scratch []float64
	coeffs  []complex128
	bins    Field
}

// NewBridge returns a detached bridge with a zero field.
func NewBridge() *Bridge {
	b := &Bridge{
		ring:    make([]float32, windowSize),
		fft:     fourier.NewFFT(windowSize),
		window:  hann(windowSize),
		scratch: make([]float64, windowSize),
		coeffs:  make([]complex128, windowSize/2+1),
	}
	return b
}

// Attach marks a live source as present. Samples pushed while detached are
// dropped.
func (b *Bridge) Attach() {
	b.mu.Lock()
	b.attached = true
	b.mu.Unlock()
}

// Detach drops the source and resets the field to neutral zero.
func (b *Bridge) Detach() {
	b.mu.Lock()
	b.attached = false
	b.w = 0
	b.filled = false
	b.pending = 0
	b.bins = Field{}
	b.mu.Unlock()
}

// Attached reports whether a source is currently feeding the bridge.
func (b *Bridge) Attached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attached
}

// Push appends mono samples (typically from the capture callback) and
// re-analyzes once enough new material has arrived.
func (b *Bridge) Push(samples []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return
	}
	for _, s := range samples {
		b.ring[b.w] = s
		b.w++
		if b.w == windowSize {
			b.w = 0
			b.filled = true
		}
	}
	b.pending += len(samples)
	if b.filled && b.pending >= hopSize {
		b.pending = 0
		b.analyze()
	}
}

// Field returns the latest magnitude field. Always all-zero while detached.
func (b *Bridge) Field() Field {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bins
}

// analyze recomputes the bins from the ring. Caller holds the lock.
func (b *Bridge) analyze() {
	// Unroll the ring into time order and apply the Hann window.
	for i := 0; i < windowSize; i++ {
		b.scratch[i] = float64(b.ring[(b.w+i)%windowSize]) * b.window[i]
	}
	b.fft.Coefficients(b.coeffs, b.scratch)

	for bin := 0; bin < FieldSize; bin++ {
		var sum float32
		// Skip the DC coefficient; group the rest evenly across bins.
		base := 1 + bin*binGroup
		for k := 0; k < binGroup; k++ {
			c := b.coeffs[base+k]
			re := float32(real(c))
			im := float32(imag(c))
			sum += math32.Sqrt(re*re + im*im)
		}
		mag := sum / float32(binGroup) / (windowSize / 4)
		v := compress(mag * gain)

		// Asymmetric smoothing keeps transients snappy without flicker.
		prev := b.bins[bin]
		k := release
		if v > prev {
			k = attack
		}
		b.bins[bin] = prev + (v-prev)*k
	}
}

// compress soft-limits a magnitude into [0,1].
func compress(v float32) float32 {
	if v <= 0 {
		return 0
	}
	v = math32.Pow(v, 0.6)
	if v > 1 {
		return 1
	}
	return v
}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}
