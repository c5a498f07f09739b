package body

import (
	"image"
	"math/rand"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"starsystem/internal/shading"
)

// Sphere mesh resolution for cores and atmosphere shells.
const sphereRings = 24
const sphereSlices = 24

// Factory builds renderable bodies from records. Materials are shared across
// bodies (only the bound texture changes per draw, set right before DrawMesh,
// same as drawing any textured primitive); meshes and textures are per body
// and owned by the body's subtree. Material creation is deferred until the
// first Create so GPU work happens after the window/GL context exists.
type Factory struct {
	lib      *shading.Library
	gpuReady bool

	surfaceMtl rl.Material
	atmoMtl    rl.Material
	ringMtl    rl.Material
}

// NewFactory returns a factory that compiles its programs through lib on first use.
func NewFactory(lib *shading.Library) *Factory {
	return &Factory{lib: lib}
}

func (f *Factory) ensureMaterials() {
	if f.gpuReady {
		return
	}
	f.gpuReady = true
	f.lib.Ensure()

	f.surfaceMtl = rl.LoadMaterialDefault()
	if rl.IsShaderValid(f.lib.Surface) {
		f.surfaceMtl.Shader = f.lib.Surface
	}
	f.atmoMtl = rl.LoadMaterialDefault()
	if rl.IsShaderValid(f.lib.Atmosphere) {
		f.atmoMtl.Shader = f.lib.Atmosphere
	}
	// Rings use raylib's default textured program; the annulus shape lives in
	// the texture's alpha channel.
	f.ringMtl = rl.LoadMaterialDefault()
}

// Create builds a live body for the record at the given snapshot index. The
// orbit radius follows the index; the orbit speed is drawn once from the fixed
// band and never changes for the body's lifetime. Must be called with the GL
// context current.
func (f *Factory) Create(rec Record, index int) *Body {
	f.ensureMaterials()

	core := StandardRadius
	if rec.IsGasClass() {
		core = GasRadius
	}
	b := &Body{
		Record:      rec,
		OrbitRadius: OrbitRadiusFor(index),
		OrbitSpeed:  MinOrbitSpeed + rand.Float32()*(MaxOrbitSpeed-MinOrbitSpeed),
		CoreRadius:  core,
	}
	b.Position = [3]float32{b.OrbitRadius, 0, 0}
	if rec.Visual.Rings {
		b.RingRadius = core * RingOuterScale
	}
	b.Visual = f.buildSubtree(rec, b)
	return b
}

// subtree is the real Visual: core sphere + atmosphere shell + optional ring,
// each a tagged node under one group.
type subtree struct {
	f         *Factory
	root      *Node
	coreNode  *Node
	atmoNode  *Node
	ringNode  *Node // nil when ringless
	atmoColor [4]float32
}

func (f *Factory) buildSubtree(rec Record, b *Body) *subtree {
	s := &subtree{f: f}

	coreTex := uploadImage(GradientImage(rec.PrimaryColor(), rec.SecondaryColor()))
	s.coreNode = &Node{
		Kind:    NodeMesh,
		Mesh:    rl.GenMeshSphere(b.CoreRadius, sphereRings, sphereSlices),
		Texture: coreTex,
	}

	s.atmoNode = &Node{
		Kind: NodeMesh,
		Mesh: rl.GenMeshSphere(b.CoreRadius*AtmosphereScale, sphereRings, sphereSlices),
	}
	ac := rec.AtmosphereColor()
	s.atmoColor = [4]float32{float32(ac.R), float32(ac.G), float32(ac.B), 0.85}

	kids := []*Node{s.coreNode, s.atmoNode}
	if rec.Visual.Rings {
		size := 2 * b.RingRadius
		s.ringNode = &Node{
			Kind:    NodeMesh,
			Mesh:    rl.GenMeshPlane(size, size, 1, 1),
			Texture: uploadImage(RingImage(rec.SecondaryColor())),
		}
		kids = append(kids, s.ringNode)
	}
	s.root = &Node{Kind: NodeGroup, Kids: kids}
	return s
}

// Draw renders core, atmosphere, and ring at the body's current position and
// spin. The surface light points from the body toward the central star at the
// origin.
func (s *subtree) Draw(b *Body, camPos [3]float32) {
	f := s.f
	pos := b.Position
	transform := rl.MatrixMultiply(
		rl.MatrixRotateY(b.SpinAngle),
		rl.MatrixTranslate(pos[0], pos[1], pos[2]),
	)

	f.lib.SetSurfaceFrame(camPos, starDirection(pos))
	rl.SetMaterialTexture(&f.surfaceMtl, rl.MapAlbedo, s.coreNode.Texture)
	rl.DrawMesh(s.coreNode.Mesh, f.surfaceMtl, transform)

	if s.ringNode != nil {
		ringTransform := rl.MatrixTranslate(pos[0], pos[1], pos[2])
		rl.SetMaterialTexture(&f.ringMtl, rl.MapAlbedo, s.ringNode.Texture)
		rl.DisableBackfaceCulling()
		rl.DrawMesh(s.ringNode.Mesh, f.ringMtl, ringTransform)
		rl.EnableBackfaceCulling()
	}

	f.lib.SetAtmosphereFrame(s.atmoColor, camPos)
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawMesh(s.atmoNode.Mesh, f.atmoMtl, transform)
	rl.EndBlendMode()
}

// Dispose releases the subtree's meshes and textures. The shared materials and
// programs stay with the factory/library.
func (s *subtree) Dispose() {
	s.root.Dispose()
}

// starDirection is the normalized direction from a body position toward the
// central star at the origin.
func starDirection(pos [3]float32) [3]float32 {
	d := math32.Sqrt(pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2])
	if d == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{-pos[0] / d, -pos[1] / d, -pos[2] / d}
}

// uploadImage moves a CPU image to the GPU with bilinear filtering.
func uploadImage(img *image.RGBA) rl.Texture2D {
	rimg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}
