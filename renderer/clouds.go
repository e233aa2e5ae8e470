// Package renderer draws the scene, either through a raylib fragment shader
// or with the CPU rasterizer.
package renderer

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sugarclouds/shading"
)

// ErrShaderUnavailable means the fragment shader could not be compiled or
// linked. raylib falls back to its default shader in that case, which has
// none of the scene uniforms.
var ErrShaderUnavailable = errors.New("cloud shader unavailable")

// Clouds renders the scene as one fullscreen quad through the generated
// fragment shader.
type Clouds struct {
	shader rl.Shader

	canvasLoc     int32
	blobsPosLoc   int32
	blobsSizeLoc  int32
	starsPosLoc   int32
	mouseLoc      int32
	heldLoc       int32
	timeWaveLoc   int32
	underwaterLoc int32
	colorLocs     [shading.NumColors]int32

	width, height int32
	initialized   bool
}

// NewClouds compiles the shader. Must be called after the raylib window is
// created.
func NewClouds(width, height int32) (*Clouds, error) {
	fs, err := FragmentSource()
	if err != nil {
		return nil, fmt.Errorf("generating fragment shader: %w", err)
	}

	c := &Clouds{width: width, height: height}
	c.shader = rl.LoadShaderFromMemory(vertexSource, fs)

	c.canvasLoc = rl.GetShaderLocation(c.shader, shading.UniformCanvasDimensions)
	if c.canvasLoc < 0 {
		rl.UnloadShader(c.shader)
		return nil, ErrShaderUnavailable
	}
	c.blobsPosLoc = rl.GetShaderLocation(c.shader, shading.UniformBlobsPos)
	c.blobsSizeLoc = rl.GetShaderLocation(c.shader, shading.UniformBlobsSize)
	c.starsPosLoc = rl.GetShaderLocation(c.shader, shading.UniformStarsPos)
	c.mouseLoc = rl.GetShaderLocation(c.shader, shading.UniformMousePos)
	c.heldLoc = rl.GetShaderLocation(c.shader, shading.UniformHeldTime)
	c.timeWaveLoc = rl.GetShaderLocation(c.shader, shading.UniformTimeWave)
	c.underwaterLoc = rl.GetShaderLocation(c.shader, shading.UniformUnderwaterWave)
	for slot := shading.SkyBottom; slot < shading.NumColors; slot++ {
		c.colorLocs[slot] = rl.GetShaderLocation(c.shader, slot.Uniform())
	}

	c.initialized = true
	return c, nil
}

// Ready reports whether the shader is loaded.
func (c *Clouds) Ready() bool {
	return c != nil && c.initialized
}

// Upload sends the snapshot to the shader uniforms.
func (c *Clouds) Upload(u *shading.Uniforms) {
	if !c.Ready() {
		return
	}
	p := u.Pack()

	rl.SetShaderValue(c.shader, c.canvasLoc, p.CanvasDimensions[:], rl.ShaderUniformVec2)
	rl.SetShaderValueV(c.shader, c.blobsPosLoc, p.BlobsPos, rl.ShaderUniformVec2, shading.BlobsAmount)
	rl.SetShaderValueV(c.shader, c.blobsSizeLoc, p.BlobsSize, rl.ShaderUniformFloat, shading.BlobsAmount)
	rl.SetShaderValueV(c.shader, c.starsPosLoc, p.StarsPos, rl.ShaderUniformVec2, shading.StarsAmount)
	rl.SetShaderValue(c.shader, c.mouseLoc, p.MousePos[:], rl.ShaderUniformVec2)
	rl.SetShaderValue(c.shader, c.heldLoc, []float32{p.HeldTime}, rl.ShaderUniformFloat)
	rl.SetShaderValue(c.shader, c.timeWaveLoc, []float32{p.TimeWave}, rl.ShaderUniformFloat)
	rl.SetShaderValue(c.shader, c.underwaterLoc, []float32{p.UnderwaterWave}, rl.ShaderUniformFloat)
	for slot, loc := range c.colorLocs {
		rl.SetShaderValue(c.shader, loc, p.Colors[slot][:], rl.ShaderUniformVec3)
	}
}

// Draw renders the fullscreen quad.
func (c *Clouds) Draw() {
	if !c.Ready() {
		return
	}
	rl.BeginShaderMode(c.shader)
	rl.DrawRectangle(0, 0, c.width, c.height, rl.White)
	rl.EndShaderMode()
}

// Resize updates the quad size. The canvas uniform follows with the next
// upload.
func (c *Clouds) Resize(width, height int32) {
	c.width = width
	c.height = height
}

// Unload frees resources.
func (c *Clouds) Unload() {
	if c.initialized {
		rl.UnloadShader(c.shader)
		c.initialized = false
	}
}
