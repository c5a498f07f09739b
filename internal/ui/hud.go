// Package ui draws the small 2D overlay on top of the 3D scene: the hover
// tooltip next to the pointer, the focused-body caption, and the interaction
// state indicator.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"starsystem/internal/body"
	"starsystem/internal/shading"
)

const (
	fontSize     = 20
	smallSize    = 16
	padding      = 8
	tooltipShift = 18
)

var (
	tooltipBg  = rl.NewColor(16, 20, 30, 220)
	tooltipFg  = rl.NewColor(220, 228, 240, 255)
	captionFg  = rl.NewColor(170, 185, 210, 255)
	stateColor = map[shading.State]rl.Color{
		shading.StateIdle:      rl.NewColor(90, 130, 190, 255),
		shading.StateListening: rl.NewColor(70, 200, 150, 255),
		shading.StateSpeaking:  rl.NewColor(200, 130, 240, 255),
	}
)

// HUD is the overlay state for one frame. Callers fill the fields before Draw;
// zero values draw nothing.
type HUD struct {
	Hovered     body.Record
	HasHovered  bool
	Selected    body.Record
	HasSelected bool
	State       shading.State
	Scanning    bool
}

// Draw renders the overlay. Call after EndMode3D, before debug overlays.
func (h *HUD) Draw() {
	if h.HasHovered {
		h.drawTooltip()
	}
	if h.HasSelected {
		caption := h.Selected.Name + "  ·  " + h.Selected.Class
		rl.DrawText(caption, padding, int32(rl.GetScreenHeight())-fontSize-padding, fontSize, captionFg)
	}
	h.drawStateDot()
}

func (h *HUD) drawTooltip() {
	mouse := rl.GetMousePosition()
	label := h.Hovered.Name
	if h.Hovered.Class != "" {
		label += " (" + h.Hovered.Class + ")"
	}
	w := rl.MeasureText(label, smallSize)
	x := int32(mouse.X) + tooltipShift
	y := int32(mouse.Y) + tooltipShift
	if x+w+2*padding > int32(rl.GetScreenWidth()) {
		x = int32(mouse.X) - w - 2*padding - tooltipShift
	}
	rl.DrawRectangle(x, y, w+2*padding, smallSize+2*padding, tooltipBg)
	rl.DrawText(label, x+padding, y+padding, smallSize, tooltipFg)
}

func (h *HUD) drawStateDot() {
	c := stateColor[h.State]
	cx := int32(padding + 8)
	cy := int32(padding + 8)
	rl.DrawCircle(cx, cy, 7, c)
	label := h.State.String()
	if h.Scanning {
		label += "  ·  scanning"
	}
	rl.DrawText(label, cx+14, cy-smallSize/2, smallSize, captionFg)
}
