package body

// Orbit layout and speed constants. Radius is assigned from the record's index
// in the snapshot at creation time and never changes afterwards, even when
// other bodies come and go.
const (
	BaseRadius = float32(10)
	RadiusStep = float32(6)
	// Orbital speed band, rad/s. Drawn once per body; cosmetic only.
	MinOrbitSpeed = float32(0.18)
	MaxOrbitSpeed = float32(0.45)
	// Self-rotation rate shared by all bodies, rad/s.
	SpinRate = float32(0.5)
	// Geometry tiers: core sphere radius by class.
	StandardRadius = float32(1.0)
	GasRadius      = float32(2.2)
	// Atmosphere shell scale relative to the core radius.
	AtmosphereScale = float32(1.08)
	// Ring annulus extent relative to the core radius.
	RingInnerScale = float32(1.4)
	RingOuterScale = float32(2.3)
)

// Visual is the GPU-side subtree of a live body. The real implementation draws
// raylib meshes; tests substitute a fake that counts disposals.
type Visual interface {
	// Draw renders the subtree for the body's current simulation state. Must be
	// called between BeginMode3D and EndMode3D.
	Draw(b *Body, camPos [3]float32)
	// Dispose releases every GPU resource of the subtree, exactly once.
	Dispose()
}

// Body is the engine's live instantiation of a Record plus its orbital state.
// Owned exclusively by the scene registry; OrbitRadius and OrbitSpeed are fixed
// at creation, SpinAngle and Position change every frame.
type Body struct {
	Record      Record
	OrbitRadius float32
	OrbitSpeed  float32
	SpinAngle   float32
	Position    [3]float32
	CoreRadius  float32
	RingRadius  float32 // outer ring extent in world units, 0 when ringless
	Visual      Visual
}

// OrbitRadiusFor returns the orbit radius for a snapshot index.
func OrbitRadiusFor(index int) float32 {
	return BaseRadius + RadiusStep*float32(index)
}

// PickRadius is the bounding radius used by the pointer hit test: the ring
// extent when present, otherwise the atmosphere shell.
func (b *Body) PickRadius() float32 {
	if b.RingRadius > 0 {
		return b.RingRadius
	}
	return b.CoreRadius * AtmosphereScale
}
