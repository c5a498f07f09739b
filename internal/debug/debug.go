package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// Refresh the overlay text every N frames to limit allocations.
	updateInterval = 30
)

// Debug draws runtime overlays (FPS, heap allocation) at the top-right. All
// overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool

	frameCount  uint32
	lastFpsText string
	lastMemText string
	memStats    runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// Draw renders any enabled overlays. Call last in the draw loop so the text
// sits above everything.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, screenW, y, rl.Green)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.memStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		drawRight(d.lastMemText, screenW, y, rl.Green)
	}
}

func drawRight(text string, screenW, y int32, c rl.Color) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, c)
}
