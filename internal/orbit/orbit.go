// Package orbit advances the stylized orbital motion of live bodies. Positions
// are a direct function of total elapsed time and per-body constants, never an
// accumulator, so variable frame timing cannot drift them.
package orbit

import (
	"github.com/chewxy/math32"

	"starsystem/internal/body"
)

// Step advances every body by one frame: spin accumulates with dt, position is
// recomputed from t on the XZ plane.
func Step(bodies []*body.Body, dt, t float32) {
	for _, b := range bodies {
		b.SpinAngle += body.SpinRate * dt
		a := t * b.OrbitSpeed
		b.Position[0] = math32.Cos(a) * b.OrbitRadius
		b.Position[1] = 0
		b.Position[2] = math32.Sin(a) * b.OrbitRadius
	}
}

// PositionAt returns where a body with the given constants sits at time t.
// Used by tests and by the focus camera to anticipate a body's location.
func PositionAt(radius, speed, t float32) [3]float32 {
	a := t * speed
	return [3]float32{math32.Cos(a) * radius, 0, math32.Sin(a) * radius}
}
