package shading

// GLSL 330 program text. Vertex attributes match raylib-generated meshes:
// vertexPosition, vertexTexCoord, vertexNormal.

const commonVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`

// surfaceFS lights the body's gradient texture with a single point source at
// the central star plus a dim ambient floor.
const surfaceFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform sampler2D texture0;
out vec4 finalColor;
void main() {
  vec4 tex = texture(texture0, fragTexCoord);
  vec3 tint = tex.rgb * colDiffuse.rgb;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint * NdotL;
  vec3 amb = tint * 0.16;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), 32.0) * 0.25;
  finalColor = vec4(amb + diffuse + vec3(spec) * step(0.0, NdotL), tex.a * colDiffuse.a);
}
`

// atmosphereFS is the rim-light glow: brightness peaks at grazing view angles
// and fades toward the disc center. Drawn additively; no time dependence.
const atmosphereFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 atmoColor;
uniform vec3 viewPos;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  float rim = 1.0 - max(dot(N, V), 0.0);
  rim = smoothstep(0.25, 1.0, pow(rim, 3.0));
  finalColor = vec4(atmoColor.rgb, rim * atmoColor.a);
}
`

// entityFS drives the audio-reactive actor. audioTex is the 64x1 magnitude
// field; the level average reads 8 fixed samples (cheaper than the full field),
// the band pattern is modulated by one low (u=0.05) and one high (u=0.85)
// sample, and a hashed dither breaks up banding. Base color and pulse arrive
// as uniforms resolved per interaction state on the CPU side.
const entityFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform float time;
uniform float pulse;
uniform vec3 baseColor;
uniform vec3 viewPos;
uniform sampler2D audioTex;
out vec4 finalColor;

float hash(vec2 p) {
  return fract(sin(dot(p, vec2(127.1, 311.7)) + time) * 43758.5453);
}

void main() {
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  float fresnel = pow(1.0 - max(dot(N, V), 0.0), 2.5);

  float level = 0.0;
  for (int i = 0; i < 8; i++) {
    level += texture(audioTex, vec2((float(i) + 0.5) / 8.0, 0.5)).r;
  }
  level /= 8.0;
  float low = texture(audioTex, vec2(0.05, 0.5)).r;
  float high = texture(audioTex, vec2(0.85, 0.5)).r;

  float bands = sin(fragTexCoord.y * (24.0 + low * 40.0) + time * 2.2) * 0.5 + 0.5;
  bands = pow(bands, 3.0) * (0.35 + high * 0.65);

  vec3 glow = baseColor * bands;
  vec3 col = mix(baseColor * 0.6, glow + baseColor, 0.5 + level * 0.5);
  col += fresnel * (baseColor + vec3(0.25));
  col *= pulse;
  col += vec3(hash(fragTexCoord * 521.0) - 0.5) * 0.02;

  float alpha = clamp(fresnel * (0.55 + 0.45 * level) + level * 0.25, 0.0, 1.0);
  finalColor = vec4(col, alpha);
}
`
