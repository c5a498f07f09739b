// Package post is the frame composition stage: the scene renders into an
// offscreen target, bright regions above a threshold are extracted at half
// resolution, blurred, and re-composited additively for the glow look. All
// parameters are fixed at initialization.
package post

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	threshold     = float32(0.60)
	blurPasses    = 2
	bloomStrength = float32(0.85)
)

const thresholdFS = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
uniform sampler2D texture0;
uniform float threshold;
out vec4 finalColor;
void main() {
  vec4 c = texture(texture0, fragTexCoord);
  float lum = dot(c.rgb, vec3(0.2126, 0.7152, 0.0722));
  float keep = smoothstep(threshold, threshold + 0.25, lum);
  finalColor = vec4(c.rgb * keep, 1.0);
}
`

// blurFS is a 9-tap separable gaussian; direction selects the axis.
const blurFS = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
uniform sampler2D texture0;
uniform vec2 resolution;
uniform vec2 direction;
out vec4 finalColor;
void main() {
  vec2 step = direction / resolution;
  vec3 sum = texture(texture0, fragTexCoord).rgb * 0.227027;
  float offs[4] = float[](1.0, 2.0, 3.0, 4.0);
  float wgts[4] = float[](0.1945946, 0.1216216, 0.054054, 0.016216);
  for (int i = 0; i < 4; i++) {
    sum += texture(texture0, fragTexCoord + step * offs[i]).rgb * wgts[i];
    sum += texture(texture0, fragTexCoord - step * offs[i]).rgb * wgts[i];
  }
  finalColor = vec4(sum, 1.0);
}
`

// Bloom owns the offscreen targets and the threshold/blur programs. Targets
// are (re)built lazily so creation happens with the GL context current and
// resizing is just an invalidation.
type Bloom struct {
	Enabled bool

	w, h   int32
	loaded bool

	sceneRT  rl.RenderTexture2D
	brightRT rl.RenderTexture2D
	pingRT   rl.RenderTexture2D

	thresholdShader rl.Shader
	thresholdLoc    int32
	blurShader      rl.Shader
	blurResLoc      int32
	blurDirLoc      int32
}

// New returns a bloom stage for the given initial surface size.
func New(w, h int32, enabled bool) *Bloom {
	return &Bloom{Enabled: enabled, w: w, h: h}
}

// Resize invalidates the render targets; they rebuild on the next frame at the
// new size. Must be called synchronously on resize events so no frame renders
// at a stale aspect ratio.
func (p *Bloom) Resize(w, h int32) {
	if w == p.w && h == p.h {
		return
	}
	p.w, p.h = w, h
	p.unloadTargets()
}

func (p *Bloom) ensureLoaded() {
	if p.loaded {
		return
	}
	p.loaded = true
	if p.w == 0 || p.h == 0 {
		p.w = int32(rl.GetScreenWidth())
		p.h = int32(rl.GetScreenHeight())
	}

	p.sceneRT = rl.LoadRenderTexture(p.w, p.h)
	p.brightRT = rl.LoadRenderTexture(p.w/2, p.h/2)
	p.pingRT = rl.LoadRenderTexture(p.w/2, p.h/2)
	rl.SetTextureFilter(p.brightRT.Texture, rl.FilterBilinear)
	rl.SetTextureFilter(p.pingRT.Texture, rl.FilterBilinear)

	if !rl.IsShaderValid(p.thresholdShader) {
		p.thresholdShader = rl.LoadShaderFromMemory("", thresholdFS)
		if rl.IsShaderValid(p.thresholdShader) {
			p.thresholdLoc = rl.GetShaderLocation(p.thresholdShader, "threshold")
		}
		p.blurShader = rl.LoadShaderFromMemory("", blurFS)
		if rl.IsShaderValid(p.blurShader) {
			p.blurResLoc = rl.GetShaderLocation(p.blurShader, "resolution")
			p.blurDirLoc = rl.GetShaderLocation(p.blurShader, "direction")
		}
	}
}

// Begin redirects subsequent drawing into the offscreen scene target. No-op
// when bloom is disabled (the scene then draws straight to the backbuffer).
func (p *Bloom) Begin() {
	if !p.Enabled {
		return
	}
	p.ensureLoaded()
	rl.BeginTextureMode(p.sceneRT)
	rl.ClearBackground(rl.Black)
}

// End stops offscreen capture.
func (p *Bloom) End() {
	if !p.Enabled {
		return
	}
	rl.EndTextureMode()
}

// Compose runs threshold and blur passes and draws the final frame to the
// current target (the backbuffer). Call between BeginDrawing and EndDrawing,
// after End.
func (p *Bloom) Compose() {
	if !p.Enabled {
		return
	}

	// Bright extraction at half resolution.
	rl.BeginTextureMode(p.brightRT)
	rl.ClearBackground(rl.Black)
	if rl.IsShaderValid(p.thresholdShader) {
		rl.BeginShaderMode(p.thresholdShader)
		if p.thresholdLoc >= 0 {
			rl.SetShaderValue(p.thresholdShader, p.thresholdLoc, []float32{threshold}, rl.ShaderUniformFloat)
		}
	}
	drawFlipped(p.sceneRT.Texture, float32(p.w/2), float32(p.h/2))
	if rl.IsShaderValid(p.thresholdShader) {
		rl.EndShaderMode()
	}
	rl.EndTextureMode()

	// Separable blur, ping-ponging between the half-res targets.
	if rl.IsShaderValid(p.blurShader) {
		res := [2]float32{float32(p.w / 2), float32(p.h / 2)}
		for i := 0; i < blurPasses; i++ {
			p.blurPass(&p.brightRT, &p.pingRT, res, [2]float32{1, 0})
			p.blurPass(&p.pingRT, &p.brightRT, res, [2]float32{0, 1})
		}
	}

	// Composite: scene first, then the blurred highlights additively on top.
	drawFlipped(p.sceneRT.Texture, float32(p.w), float32(p.h))
	rl.BeginBlendMode(rl.BlendAdditive)
	tint := rl.ColorFromNormalized(rl.Vector4{X: bloomStrength, Y: bloomStrength, Z: bloomStrength, W: 1})
	dst := rl.NewRectangle(0, 0, float32(p.w), float32(p.h))
	src := rl.NewRectangle(0, 0, float32(p.brightRT.Texture.Width), -float32(p.brightRT.Texture.Height))
	rl.DrawTexturePro(p.brightRT.Texture, src, dst, rl.NewVector2(0, 0), 0, tint)
	rl.EndBlendMode()
}

func (p *Bloom) blurPass(srcRT, dstRT *rl.RenderTexture2D, res, dir [2]float32) {
	rl.BeginTextureMode(*dstRT)
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(p.blurShader)
	if p.blurResLoc >= 0 {
		rl.SetShaderValueV(p.blurShader, p.blurResLoc, res[:], rl.ShaderUniformVec2, 1)
	}
	if p.blurDirLoc >= 0 {
		rl.SetShaderValueV(p.blurShader, p.blurDirLoc, dir[:], rl.ShaderUniformVec2, 1)
	}
	drawFlipped(srcRT.Texture, res[0], res[1])
	rl.EndShaderMode()
	rl.EndTextureMode()
}

// drawFlipped draws a render-texture (which raylib stores upside down) to fill
// a w×h destination.
func drawFlipped(tex rl.Texture2D, w, h float32) {
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	dst := rl.NewRectangle(0, 0, w, h)
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (p *Bloom) unloadTargets() {
	if !p.loaded {
		return
	}
	p.loaded = false
	rl.UnloadRenderTexture(p.sceneRT)
	rl.UnloadRenderTexture(p.brightRT)
	rl.UnloadRenderTexture(p.pingRT)
}

// Dispose releases targets and programs.
func (p *Bloom) Dispose() {
	p.unloadTargets()
	if rl.IsShaderValid(p.thresholdShader) {
		rl.UnloadShader(p.thresholdShader)
		p.thresholdShader = rl.Shader{}
	}
	if rl.IsShaderValid(p.blurShader) {
		rl.UnloadShader(p.blurShader)
		p.blurShader = rl.Shader{}
	}
}
