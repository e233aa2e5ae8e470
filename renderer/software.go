package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sugarclouds/shading"
)

// Software rasterizes the scene on the CPU with the same per-pixel pipeline
// the fragment shader runs. It is the render target in headless mode.
type Software struct {
	img      *image.RGBA
	uniforms shading.Uniforms
	uploaded bool
	pool     *rowPool
}

// NewSoftware creates a rasterizer with a width x height framebuffer.
// workers <= 0 uses GOMAXPROCS.
func NewSoftware(width, height, workers int) *Software {
	s := &Software{img: image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))}
	s.pool = newRowPool(workers, s.shadeRows)
	return s
}

// Ready reports whether the framebuffer exists.
func (s *Software) Ready() bool {
	return s != nil && s.img != nil
}

// Upload stores the snapshot for the next Render.
func (s *Software) Upload(u *shading.Uniforms) {
	s.uniforms = *u
	s.uploaded = true
}

// Render shades every pixel from the last uploaded snapshot. Before the first
// upload it returns the cleared framebuffer.
func (s *Software) Render() *image.RGBA {
	if !s.uploaded {
		return s.img
	}
	s.pool.run(s.img.Bounds().Dy())
	return s.img
}

// shadeRows fills image rows [start, end). Image rows run top-down while
// fragment coordinates run bottom-up from pixel centers.
func (s *Software) shadeRows(start, end int) {
	w := s.img.Bounds().Dx()
	h := s.img.Bounds().Dy()
	u := &s.uniforms

	for row := start; row < end; row++ {
		y := (float64(h-row) - 0.5) / float64(h)
		for col := 0; col < w; col++ {
			p := r2.Vec{X: (float64(col) + 0.5) / float64(w), Y: y}
			s.img.SetRGBA(col, row, shading.RGBA(shading.Shade(p, u)))
		}
	}
}

// WritePNG renders the current snapshot and saves it to path.
func (s *Software) WritePNG(path string) error {
	img := s.Render()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return f.Close()
}

// Close stops the worker pool.
func (s *Software) Close() {
	s.pool.stop()
}
