package shading

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Library owns the engine's GPU programs and their uniform locations. Loaded
// lazily on first use so shader compilation happens after the window/OpenGL
// context exists; materials share these programs, so only the library may
// unload them.
type Library struct {
	loaded bool

	Surface      rl.Shader
	surfViewPos  int32
	surfLightDir int32

	Atmosphere  rl.Shader
	atmoColor   int32
	atmoViewPos int32

	Entity       rl.Shader
	entTime      int32
	entPulse     int32
	entBaseColor int32
	entViewPos   int32
	entAudioTex  int32
}

// NewLibrary returns an empty library; programs compile on the first Ensure.
func NewLibrary() *Library {
	return &Library{}
}

// Ensure compiles the three programs if not yet loaded. Safe to call every
// frame; a failed compile leaves the zero shader and raylib falls back to its
// default program for that material.
func (l *Library) Ensure() {
	if l.loaded {
		return
	}
	l.loaded = true

	l.Surface = rl.LoadShaderFromMemory(commonVS, surfaceFS)
	if rl.IsShaderValid(l.Surface) {
		l.surfViewPos = rl.GetShaderLocation(l.Surface, "viewPos")
		l.surfLightDir = rl.GetShaderLocation(l.Surface, "lightDir")
	}

	l.Atmosphere = rl.LoadShaderFromMemory(commonVS, atmosphereFS)
	if rl.IsShaderValid(l.Atmosphere) {
		l.atmoColor = rl.GetShaderLocation(l.Atmosphere, "atmoColor")
		l.atmoViewPos = rl.GetShaderLocation(l.Atmosphere, "viewPos")
	}

	l.Entity = rl.LoadShaderFromMemory(commonVS, entityFS)
	if rl.IsShaderValid(l.Entity) {
		l.entTime = rl.GetShaderLocation(l.Entity, "time")
		l.entPulse = rl.GetShaderLocation(l.Entity, "pulse")
		l.entBaseColor = rl.GetShaderLocation(l.Entity, "baseColor")
		l.entViewPos = rl.GetShaderLocation(l.Entity, "viewPos")
		l.entAudioTex = rl.GetShaderLocation(l.Entity, "audioTex")
	}
}

// SetSurfaceFrame sets the per-draw surface uniforms: camera position and the
// direction from the body toward the central star (the scene's light source).
func (l *Library) SetSurfaceFrame(viewPos, lightDir [3]float32) {
	if !rl.IsShaderValid(l.Surface) {
		return
	}
	vp := viewPos
	ld := lightDir
	if l.surfViewPos >= 0 {
		rl.SetShaderValueV(l.Surface, l.surfViewPos, vp[:], rl.ShaderUniformVec3, 1)
	}
	if l.surfLightDir >= 0 {
		rl.SetShaderValueV(l.Surface, l.surfLightDir, ld[:], rl.ShaderUniformVec3, 1)
	}
}

// SetAtmosphereFrame sets the rim program's color and camera position for one
// body draw. color is RGBA in [0,1]; alpha scales the glow strength.
func (l *Library) SetAtmosphereFrame(color [4]float32, viewPos [3]float32) {
	if !rl.IsShaderValid(l.Atmosphere) {
		return
	}
	c := color
	vp := viewPos
	if l.atmoColor >= 0 {
		rl.SetShaderValueV(l.Atmosphere, l.atmoColor, c[:], rl.ShaderUniformVec4, 1)
	}
	if l.atmoViewPos >= 0 {
		rl.SetShaderValueV(l.Atmosphere, l.atmoViewPos, vp[:], rl.ShaderUniformVec3, 1)
	}
}

// SetEntityFrame sets the entity program's uniforms for this frame. The base
// color and pulse are resolved from the interaction state on the CPU (see
// Palette and PulseFactor) so the per-state rule stays testable.
func (l *Library) SetEntityFrame(t float32, state State, viewPos [3]float32, audioTex rl.Texture2D) {
	if !rl.IsShaderValid(l.Entity) {
		return
	}
	base := Palette(state)
	pulse := []float32{PulseFactor(state, t)}
	tval := []float32{t}
	vp := viewPos
	if l.entTime >= 0 {
		rl.SetShaderValue(l.Entity, l.entTime, tval, rl.ShaderUniformFloat)
	}
	if l.entPulse >= 0 {
		rl.SetShaderValue(l.Entity, l.entPulse, pulse, rl.ShaderUniformFloat)
	}
	if l.entBaseColor >= 0 {
		rl.SetShaderValueV(l.Entity, l.entBaseColor, base[:], rl.ShaderUniformVec3, 1)
	}
	if l.entViewPos >= 0 {
		rl.SetShaderValueV(l.Entity, l.entViewPos, vp[:], rl.ShaderUniformVec3, 1)
	}
	if l.entAudioTex >= 0 {
		rl.SetShaderValueTexture(l.Entity, l.entAudioTex, audioTex)
	}
}

// Dispose unloads the compiled programs. Call after every material referencing
// them has been disposed.
func (l *Library) Dispose() {
	if !l.loaded {
		return
	}
	l.loaded = false
	if rl.IsShaderValid(l.Surface) {
		rl.UnloadShader(l.Surface)
	}
	if rl.IsShaderValid(l.Atmosphere) {
		rl.UnloadShader(l.Atmosphere)
	}
	if rl.IsShaderValid(l.Entity) {
		rl.UnloadShader(l.Entity)
	}
}
