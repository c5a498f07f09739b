package audio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gen2brain/malgo"
)

const captureSampleRate = 44100

// Capture owns a microphone device feeding a Bridge. Failure to open a device
// is reported to the caller but is never fatal to the engine: the bridge just
// stays detached and the entity renders at level zero.
type Capture struct {
	ctx *malgo.AllocatedContext
	dev *malgo.Device
	br  *Bridge
}

// StartCapture opens the default capture device (mono float32) and begins
// pushing samples into the bridge.
func StartCapture(br *Bridge) (*Capture, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = malgo.FormatF32
	cfg.Capture.Channels = 1
	cfg.SampleRate = captureSampleRate

	onRecv := func(_, in []byte, frameCount uint32) {
		br.Push(decodeF32(in))
	}
	dev, err := malgo.InitDevice(ctx.Context, cfg, malgo.DeviceCallbacks{Data: onRecv})
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("capture device: %w", err)
	}
	if err := dev.Start(); err != nil {
		dev.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("capture start: %w", err)
	}
	br.Attach()
	return &Capture{ctx: ctx, dev: dev, br: br}, nil
}

// Close stops the hardware capture, frees the device and context, and detaches
// the bridge (resetting the field to neutral zero).
func (c *Capture) Close() {
	if c == nil {
		return
	}
	if c.dev != nil {
		c.dev.Uninit()
		c.dev = nil
	}
	if c.ctx != nil {
		_ = c.ctx.Uninit()
		c.ctx.Free()
		c.ctx = nil
	}
	c.br.Detach()
}

// decodeF32 reinterprets little-endian float32 PCM bytes as samples.
func decodeF32(in []byte) []float32 {
	n := len(in) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(in[i*4:])
		out[i] = math.Float32frombits(bits)
	}
	return out
}
