// Package picking resolves the pointer ray against the live body set. The math
// is plain ray/sphere intersection over each body's bounding sphere (ring
// extent when present, atmosphere shell otherwise); the nearest hit wins.
// Distinct orbits keep bodies from overlapping, so no further tie-break is
// needed.
package picking

import (
	"github.com/chewxy/math32"

	"starsystem/internal/body"
)

// Ray is a world-space ray. Dir must be normalized; Pick does not normalize
// it, since callers pass camera rays that already are.
type Ray struct {
	Origin [3]float32
	Dir    [3]float32
}

// Pick returns the id of the nearest body whose bounding sphere the ray
// enters, or ok=false when the ray misses everything or only hits behind the
// origin.
func Pick(ray Ray, bodies []*body.Body) (id string, ok bool) {
	best := float32(math32.MaxFloat32)
	for _, b := range bodies {
		t, hit := sphereHit(ray, b.Position, b.PickRadius())
		if hit && t < best {
			best = t
			id = b.Record.ID
			ok = true
		}
	}
	return id, ok
}

// sphereHit returns the ray parameter of the nearest intersection with the
// sphere at center/radius, or hit=false. Intersections behind the ray origin
// do not count.
func sphereHit(ray Ray, center [3]float32, radius float32) (t float32, hit bool) {
	ox := ray.Origin[0] - center[0]
	oy := ray.Origin[1] - center[1]
	oz := ray.Origin[2] - center[2]
	dx, dy, dz := ray.Dir[0], ray.Dir[1], ray.Dir[2]

	a := dx*dx + dy*dy + dz*dz
	if a == 0 {
		return 0, false
	}
	bq := 2 * (ox*dx + oy*dy + oz*dz)
	c := ox*ox + oy*oy + oz*oz - radius*radius
	disc := bq*bq - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t0 := (-bq - sq) / (2 * a)
	t1 := (-bq + sq) / (2 * a)
	if t0 > 0 {
		return t0, true
	}
	if t1 > 0 {
		// Origin inside the sphere; the exit point still counts as a hit.
		return t1, true
	}
	return 0, false
}
