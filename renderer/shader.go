package renderer

import (
	"bytes"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"github.com/pthm-cable/sugarclouds/shading"
)

// vertexSource is raylib's default vertex stage, spelled out because the
// fragment stage is loaded from memory.
const vertexSource = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;
uniform mat4 mvp;
out vec2 fragTexCoord;
out vec4 fragColor;
void main()
{
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    gl_Position = mvp*vec4(vertexPosition, 1.0);
}
`

// fragmentTemplate mirrors the shading package function for function.
// Keep the two in step.
const fragmentTemplate = `#version 330

const ivec2 NOISES_DIMENSIONS = ivec2({{.GridX}}, {{.GridY}});
const int BLOBS_AMOUNT = {{.Blobs}};
const int STARS_AMOUNT = {{.Stars}};

uniform vec2 {{.U.Canvas}};
uniform vec2 {{.U.BlobsPos}}[BLOBS_AMOUNT];
uniform float {{.U.BlobsSize}}[BLOBS_AMOUNT];
uniform vec2 {{.U.StarsPos}}[STARS_AMOUNT];
uniform vec2 {{.U.Mouse}};
uniform float {{.U.Held}};
uniform float {{.U.TimeWave}};
uniform float {{.U.Underwater}};
{{range .Colors}}uniform vec3 {{.}};
{{end}}
out vec4 finalColor;

vec3 overmix(vec3 c0, vec3 c1, vec3 over, float amount, float factor)
{
    vec3 normal_mix = mix(c0, c1, min(amount, 1.0));
    return mix(normal_mix, over, clamp(amount - 1.0, 0.0, 1.0) * factor);
}

float wave_sine(float x)
{
    return sin(x * 4.0 + {{.U.TimeWave}}) * 0.6
        + sin(x * 7.0 + {{.U.TimeWave}}) * 0.95
        + sin(x * 14.0 + {{.U.TimeWave}}) * 0.9
        + sin(x * 23.0 + {{.U.TimeWave}} * 2.0) * 0.8;
}

float height_at(float x)
{
    float x_diff = x - {{.U.Mouse}}.x;
    float y_diff = {{.U.Mouse}}.y - {{f .WaveLevel}};

    float dist = sqrt(x_diff * x_diff + y_diff * y_diff);

    float bump = max(1.0 - dist, 0.0) * {{.U.Held}} * {{f .BumpFalloff}};
    if (y_diff < 0.0)
    {
        bump *= max(1.0 + y_diff * {{f .BumpBelowDamp}}, 0.0);
    }

    return {{f .WaveLevel}} + wave_sine(x) * {{f .WaveAmplitude}} + bump * bump * {{f .BumpHeight}};
}

vec2 noise_at(int x, int y)
{
    vec2 wave_pos = vec2(float(x) * 2.3 + float(y) * 1.23, float(y) * 1.77 + float(x) * 1.11);
    vec2 jitter = abs(sin({{.U.Underwater}} + wave_pos)) * {{f .Jitter}};
    return vec2(float(x), float(y)) + jitter;
}

float voronoi_at(vec2 pos)
{
    int x_cell = int(pos.x);
    int y_cell = int(pos.y);

    vec2 min_dist = vec2(1.0, 1.0);
    for (int y = -1; y < 2; ++y)
    {
        for (int x = -1; x < 2; ++x)
        {
            int c_x = x_cell + x;
            int c_y = y_cell + y;
            if (c_x < 0 || c_x > NOISES_DIMENSIONS.x - 1 || c_y < 0 || c_y > NOISES_DIMENSIONS.y - 1)
            {
                continue;
            }

            float dist = distance(noise_at(c_x, c_y), pos);
            if (dist < min_dist.x)
            {
                min_dist.y = min_dist.x;
                min_dist.x = dist;
            }
            else if (dist < min_dist.y)
            {
                min_dist.y = dist;
            }
        }
    }

    return 1.0 - min(min_dist.y - min_dist.x, 1.0);
}

vec3 sky_at(vec2 pixel)
{
    float cloud_density = 0.0;
    for (int i = 0; i < BLOBS_AMOUNT; ++i)
    {
        if ({{.U.BlobsSize}}[i] <= 0.0)
        {
            continue;
        }
        float dist = distance(pixel, {{.U.BlobsPos}}[i]) * {{.U.Canvas}}.x;
        cloud_density += max(log(min({{.U.BlobsSize}}[i] / dist, 1.0)) + 1.0, 0.0);
    }

    vec3 color = mix({{.C.SkyBottom}}, {{.C.SkyTop}}, pixel.y);

    float star_total = 0.0;
    for (int i = 0; i < STARS_AMOUNT; ++i)
    {
        vec2 diff = pixel - {{.U.StarsPos}}[i];
        star_total += max({{f .StarIntensity}} / (abs(diff.x) + abs(diff.y)), 0.0);
    }
    float star_pre = star_total / float(STARS_AMOUNT);
    color = overmix(color, {{.C.Star}}, vec3(1.0), star_pre * star_pre, {{f .StarOvermix}});

    float edge = step({{f .CloudEdge}}, cloud_density);
    float amount = edge * (cloud_density - {{f .CloudEdge}}) / (1.0 - {{f .CloudEdge}});
    color = overmix(color, {{.C.Cloud}}, vec3(1.0), amount, {{f .CloudOvermix}});

    return color;
}

void main()
{
    vec2 pixel = gl_FragCoord.xy / {{.U.Canvas}};

    vec3 color = sky_at(pixel);
    float height = height_at(pixel.x);

    if (abs(pixel.y - height) < {{f .WaveWidth}})
    {
        color = mix(color, {{.C.WaveTop}}, {{f .WaveTopMix}});
    }
    else if (pixel.y < height)
    {
        float depth = height - pixel.y;

        if (depth < {{f .ReflectDepth}})
        {
            float k = max(({{f .ReflectDepth}} - depth) / {{f .ReflectDepth}} * {{f .ReflectGain}}, 0.0);
            color = mix(color, sky_at(vec2(pixel.x, height + depth)), k * k);
        }

        float noise_start = depth + {{f .NoiseStartBias}};
        vec2 wavy = pixel + vec2(wave_sine(pixel.y), wave_sine(pixel.x)) * {{f .Wobble}};
        vec2 scaled = wavy * vec2(NOISES_DIMENSIONS);
        scaled.y /= noise_start;

        float fade = min(max(noise_start - pixel.y, 0.0) / noise_start / {{f .NoiseFull}}, 1.0);
        float noise = fade * pow(voronoi_at(scaled), {{f .NoisePower}});

        color = mix(
            mix(color, {{.C.Water}}, min(depth * {{f .DepthGain}} + {{f .DepthBias}}, 1.0)),
            {{.C.Refraction}},
            noise * {{f .NoiseMix}}
        );
    }

    finalColor = vec4(color, 1.0);
}
`

type uniformNames struct {
	Canvas, BlobsPos, BlobsSize, StarsPos, Mouse, Held, TimeWave, Underwater string
}

type colorNames struct {
	SkyBottom, SkyTop, Star, Cloud, WaveTop, Water, Refraction string
}

var (
	fragmentOnce   sync.Once
	fragmentSource string
	fragmentErr    error
)

// FragmentSource returns the GLSL fragment shader generated from the shading
// constants and uniform names.
func FragmentSource() (string, error) {
	fragmentOnce.Do(func() {
		fragmentSource, fragmentErr = generateFragment()
	})
	return fragmentSource, fragmentErr
}

func generateFragment() (string, error) {
	tmpl, err := template.New("fragment").Funcs(template.FuncMap{"f": glslFloat}).Parse(fragmentTemplate)
	if err != nil {
		return "", err
	}

	colors := make([]string, 0, shading.NumColors)
	for slot := shading.SkyBottom; slot < shading.NumColors; slot++ {
		colors = append(colors, slot.Uniform())
	}

	data := map[string]any{
		"GridX": shading.NoiseGridX,
		"GridY": shading.NoiseGridY,
		"Blobs": shading.BlobsAmount,
		"Stars": shading.StarsAmount,
		"U": uniformNames{
			Canvas:     shading.UniformCanvasDimensions,
			BlobsPos:   shading.UniformBlobsPos,
			BlobsSize:  shading.UniformBlobsSize,
			StarsPos:   shading.UniformStarsPos,
			Mouse:      shading.UniformMousePos,
			Held:       shading.UniformHeldTime,
			TimeWave:   shading.UniformTimeWave,
			Underwater: shading.UniformUnderwaterWave,
		},
		"Colors": colors,
		"C": colorNames{
			SkyBottom:  shading.SkyBottom.Uniform(),
			SkyTop:     shading.SkyTop.Uniform(),
			Star:       shading.Star.Uniform(),
			Cloud:      shading.Cloud.Uniform(),
			WaveTop:    shading.WaveTop.Uniform(),
			Water:      shading.Water.Uniform(),
			Refraction: shading.WaterRefraction.Uniform(),
		},
		"StarIntensity":  shading.StarIntensity,
		"StarOvermix":    shading.StarOvermix,
		"CloudEdge":      shading.CloudEdgeStart,
		"CloudOvermix":   shading.CloudOvermix,
		"WaveLevel":      shading.WaveLevel,
		"WaveAmplitude":  shading.WaveAmplitude,
		"BumpHeight":     shading.BumpHeight,
		"BumpFalloff":    shading.BumpFalloff,
		"BumpBelowDamp":  shading.BumpBelowDamp,
		"WaveWidth":      shading.WaveWidth,
		"WaveTopMix":     shading.WaveTopMix,
		"ReflectDepth":   shading.ReflectDepth,
		"ReflectGain":    shading.ReflectGain,
		"NoiseStartBias": shading.NoiseStartBias,
		"NoiseFull":      shading.NoiseFull,
		"NoisePower":     shading.NoisePower,
		"NoiseMix":       shading.NoiseMix,
		"Wobble":         shading.WobbleScale,
		"DepthGain":      shading.WaterDepthGain,
		"DepthBias":      shading.WaterDepthBias,
		"Jitter":         shading.JitterAmount,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// glslFloat formats v as a GLSL float literal, which needs a decimal point.
func glslFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
