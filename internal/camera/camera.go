// Package camera smooths the rendered camera toward a commanded pose. The
// commanded pose is what selection logic asks for; the current pose is what is
// actually rendered and what hit-testing must use.
package camera

import (
	"github.com/chewxy/math32"
)

// Mode is the camera's logical mode.
type Mode int

const (
	// Free is the auto-rotating idle wide view.
	Free Mode = iota
	// Focused tracks a selected body.
	Focused
)

// Pose is a camera position plus look-at target.
type Pose struct {
	Position [3]float32
	Target   [3]float32
}

const (
	// Damping is the fixed per-frame interpolation factor. It is deliberately
	// not dt-normalized: the smoothing is frame-rate dependent, matching the
	// original feel.
	Damping = float32(0.05)
	// Free-mode idle drift around the system, rad/s.
	freeOrbitRate   = float32(0.05)
	freeOrbitRadius = float32(48)
	freeOrbitHeight = float32(26)
)

// FocusOffset frames a selected body from a consistent elevated-rear angle.
var FocusOffset = [3]float32{0, 4, 9}

// Rig holds the commanded and current poses and the mode state machine.
type Rig struct {
	Mode      Mode
	Current   Pose
	Commanded Pose
	freeAngle float32
}

// NewRig returns a rig in Free mode, already settled on the default wide view.
func NewRig() *Rig {
	r := &Rig{}
	r.Commanded = r.freePose()
	r.Current = r.Commanded
	return r
}

func (r *Rig) freePose() Pose {
	return Pose{
		Position: [3]float32{
			math32.Sin(r.freeAngle) * freeOrbitRadius,
			freeOrbitHeight,
			math32.Cos(r.freeAngle) * freeOrbitRadius,
		},
		Target: [3]float32{0, 0, 0},
	}
}

// Focus switches to Focused mode, commanding a pose that frames the given body
// position. Call every frame while a body is selected so the command tracks
// the body along its orbit.
func (r *Rig) Focus(bodyPos [3]float32) {
	r.Mode = Focused
	r.Commanded = Pose{
		Position: [3]float32{
			bodyPos[0] + FocusOffset[0],
			bodyPos[1] + FocusOffset[1],
			bodyPos[2] + FocusOffset[2],
		},
		Target: bodyPos,
	}
}

// ClearFocus reverts to Free mode; the commanded pose resumes the idle drift.
func (r *Rig) ClearFocus() {
	r.Mode = Free
}

// Step advances the free-mode drift by dt and moves the current pose toward
// the commanded one by the fixed damping factor.
func (r *Rig) Step(dt float32) {
	if r.Mode == Free {
		r.freeAngle += freeOrbitRate * dt
		r.Commanded = r.freePose()
	}
	lerp3(&r.Current.Position, r.Commanded.Position, Damping)
	lerp3(&r.Current.Target, r.Commanded.Target, Damping)
}

func lerp3(cur *[3]float32, want [3]float32, k float32) {
	cur[0] += (want[0] - cur[0]) * k
	cur[1] += (want[1] - cur[1]) * k
	cur[2] += (want[2] - cur[2]) * k
}

// Distance returns the straight-line distance between the current and
// commanded positions. Convergence diagnostics and tests.
func (r *Rig) Distance() float32 {
	dx := r.Commanded.Position[0] - r.Current.Position[0]
	dy := r.Commanded.Position[1] - r.Current.Position[1]
	dz := r.Commanded.Position[2] - r.Current.Position[2]
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}
