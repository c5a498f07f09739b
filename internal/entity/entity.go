// Package entity renders the always-present audio-reactive actor: a floating
// orb above the central star whose shader breathes with the live audio field
// and the interaction state. It exists independently of the planet set.
package entity

import (
	"image/color"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"starsystem/internal/audio"
	"starsystem/internal/shading"
)

const (
	orbRadius = float32(1.6)
	// bobAmplitude/bobRate give the orb a slow vertical float.
	bobAmplitude = float32(0.6)
	bobRate      = float32(0.8)
)

var basePosition = [3]float32{0, 8.5, 0}

// Entity is the actor plus the GPU-side audio field texture it samples.
type Entity struct {
	lib    *shading.Library
	state  shading.State
	loaded bool

	mesh     rl.Mesh
	mtl      rl.Material
	audioTex rl.Texture2D
	pixels   []color.RGBA
}

// New returns an entity in the idle state. GPU resources are created on first
// Draw.
func New(lib *shading.Library) *Entity {
	return &Entity{lib: lib}
}

// SetState sets the interaction state read by the next frame's uniforms.
func (e *Entity) SetState(s shading.State) {
	e.state = s
}

// State returns the current interaction state.
func (e *Entity) State() shading.State {
	return e.state
}

func (e *Entity) ensureLoaded() {
	if e.loaded {
		return
	}
	e.loaded = true
	e.lib.Ensure()

	e.mesh = rl.GenMeshSphere(orbRadius, 32, 32)
	e.mtl = rl.LoadMaterialDefault()
	if rl.IsShaderValid(e.lib.Entity) {
		e.mtl.Shader = e.lib.Entity
	}

	img := rl.GenImageColor(audio.FieldSize, 1, rl.Black)
	e.audioTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(e.audioTex, rl.FilterBilinear)
	e.pixels = make([]color.RGBA, audio.FieldSize)
}

// UpdateAudio uploads the latest magnitude field into the 64x1 texture the
// entity program samples. Call once per frame before Draw.
func (e *Entity) UpdateAudio(field audio.Field) {
	e.ensureLoaded()
	for i, v := range field {
		g := uint8(clamp01(v) * 255)
		e.pixels[i] = color.RGBA{R: g, G: g, B: g, A: 255}
	}
	rl.UpdateTexture(e.audioTex, e.pixels)
}

// Draw renders the orb additively. Must run between BeginMode3D and EndMode3D,
// after the opaque scene content.
func (e *Entity) Draw(t float32, camPos [3]float32) {
	e.ensureLoaded()

	e.lib.SetEntityFrame(t, e.state, camPos, e.audioTex)
	bob := math32.Sin(t*bobRate) * bobAmplitude
	transform := rl.MatrixTranslate(basePosition[0], basePosition[1]+bob, basePosition[2])

	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DisableBackfaceCulling()
	rl.DrawMesh(e.mesh, e.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EndBlendMode()
}

// Dispose releases the orb mesh and the audio texture.
func (e *Entity) Dispose() {
	if !e.loaded {
		return
	}
	e.loaded = false
	rl.UnloadMesh(&e.mesh)
	rl.UnloadTexture(e.audioTex)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
