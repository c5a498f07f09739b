package scene

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"starsystem/internal/body"
)

const (
	starfieldCount  = 900
	starfieldRadius = 220
	starfieldSeed   = 7151
	starCoreRadius  = 3.2
)

var (
	starColor      = rl.NewColor(255, 214, 140, 255)
	starGlowColor  = rl.NewColor(255, 190, 90, 90)
	orbitRingColor = rl.NewColor(120, 130, 160, 60)
	scanTrailColor = rl.NewColor(90, 200, 220, 70)
)

// Scenery is the shared, body-independent scene content: the background
// starfield, the central star, optional orbit rings, and the scanning
// data-trail decoration. GPU resources are created on first Draw.
type Scenery struct {
	starfield *body.Node
	star      *body.Node
	starMtl   rl.Material
	loaded    bool

	OrbitRingsVisible bool
	Scanning          bool
}

// NewScenery returns scenery with orbit rings visible and scanning off. The
// starfield is generated immediately (CPU only, fixed seed); meshes wait for
// the GL context.
func NewScenery() *Scenery {
	s := &Scenery{OrbitRingsVisible: true}
	rng := rand.New(rand.NewSource(starfieldSeed))
	pts := make([][3]float32, 0, starfieldCount)
	for len(pts) < starfieldCount {
		x := rng.Float32()*2 - 1
		y := rng.Float32()*2 - 1
		z := rng.Float32()*2 - 1
		d := x*x + y*y + z*z
		if d < 0.04 || d > 1 {
			continue
		}
		pts = append(pts, [3]float32{x * starfieldRadius, y * starfieldRadius, z * starfieldRadius})
	}
	s.starfield = &body.Node{Kind: body.NodeLines, Points: pts}
	return s
}

func (s *Scenery) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.star = &body.Node{
		Kind: body.NodeMesh,
		Mesh: rl.GenMeshSphere(starCoreRadius, 20, 20),
	}
	s.starMtl = rl.LoadMaterialDefault()
	if albedo := s.starMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = starColor
	}
}

// Draw renders starfield, central star, and decorations. Must run between
// BeginMode3D and EndMode3D, before the bodies so additive glows layer on top.
func (s *Scenery) Draw(bodies []*body.Body) {
	s.ensureLoaded()

	for _, p := range s.starfield.Points {
		rl.DrawPoint3D(rl.NewVector3(p[0], p[1], p[2]), rl.White)
	}

	origin := rl.NewVector3(0, 0, 0)
	rl.DrawMesh(s.star.Mesh, s.starMtl, rl.MatrixIdentity())
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawSphere(origin, starCoreRadius*1.35, starGlowColor)
	rl.EndBlendMode()

	if s.OrbitRingsVisible {
		axis := rl.NewVector3(1, 0, 0)
		for _, b := range bodies {
			rl.DrawCircle3D(origin, b.OrbitRadius, axis, 90, orbitRingColor)
		}
	}

	if s.Scanning && len(bodies) > 1 {
		prev := bodies[0].Position
		for _, b := range bodies[1:] {
			rl.DrawLine3D(
				rl.NewVector3(prev[0], prev[1], prev[2]),
				rl.NewVector3(b.Position[0], b.Position[1], b.Position[2]),
				scanTrailColor,
			)
			prev = b.Position
		}
	}
}

// Dispose releases the star mesh and starfield buffers.
func (s *Scenery) Dispose() {
	s.starfield.Dispose()
	if s.loaded {
		s.star.Dispose()
		s.loaded = false
	}
}
