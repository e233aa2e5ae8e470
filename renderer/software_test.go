package renderer

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sugarclouds/shading"
)

func testUniforms(w, h float64) *shading.Uniforms {
	return &shading.Uniforms{
		Canvas:   r2.Vec{X: w, Y: h},
		BlobPos:  shading.Vec2s{{X: 0.5, Y: 0.7}},
		BlobSize: []float64{30},
		StarPos:  shading.Vec2s{{X: 0.2, Y: 0.9}},
		Palette: shading.Palette{
			shading.SkyBottom:       {R: 0.9, G: 0.7, B: 0.8},
			shading.SkyTop:          {R: 0.1, G: 0.1, B: 0.3},
			shading.Star:            {R: 1, G: 0.95, B: 0.7},
			shading.Cloud:           {R: 1, G: 1, B: 1},
			shading.WaveTop:         {R: 0.9, G: 0.95, B: 1},
			shading.Water:           {R: 0.1, G: 0.3, B: 0.45},
			shading.WaterRefraction: {R: 0.5, G: 0.8, B: 1},
		},
	}
}

func TestSoftware_ReadyBeforeUpload(t *testing.T) {
	s := NewSoftware(8, 8, 1)
	defer s.Close()

	if !s.Ready() {
		t.Fatal("expected software target to be ready")
	}
	img := s.Render()
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestSoftware_MatchesShade(t *testing.T) {
	const w, h = 64, 48
	u := testUniforms(w, h)

	// Parallel and inline rendering must agree pixel for pixel.
	parallel := NewSoftware(w, h, 4)
	defer parallel.Close()
	inline := NewSoftware(w, h, 1)
	defer inline.Close()

	parallel.Upload(u)
	inline.Upload(u)
	a := parallel.Render()
	b := inline.Render()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) differs: %v vs %v", x, y, a.RGBAAt(x, y), b.RGBAAt(x, y))
			}
		}
	}

	// Top-left image pixel is the top-left fragment.
	p := r2.Vec{X: 0.5 / w, Y: (h - 0.5) / h}
	want := shading.RGBA(shading.Shade(p, u))
	if got := a.RGBAAt(0, 0); got != want {
		t.Errorf("pixel (0,0) = %v, want %v", got, want)
	}

	// The bottom row is under water, so it is no longer the plain sky.
	bottomFrag := r2.Vec{X: 0.5 / w, Y: 0.5 / h}
	sky := shading.RGBA(shading.SkyAt(bottomFrag, u))
	if got := a.RGBAAt(0, h-1); got == sky {
		t.Errorf("bottom pixel %v shows the sky without water", got)
	}
}

func TestSoftware_WritePNG(t *testing.T) {
	s := NewSoftware(16, 9, 2)
	defer s.Close()
	u := testUniforms(16, 9)
	// No Render call: WritePNG shades the uploaded snapshot itself.
	s.Upload(u)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := s.WritePNG(path); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding written png: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 9 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}

	want := shading.RGBA(shading.Shade(r2.Vec{X: 0.5 / 16, Y: 8.5 / 9}, u))
	r, g, b, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("pixel (0,0) = (%d,%d,%d), want %+v", r>>8, g>>8, b>>8, want)
	}
}

func TestRowPool_CoversEveryRow(t *testing.T) {
	const rows = 100
	hits := make([]int, rows)
	pool := newRowPool(3, func(start, end int) {
		for i := start; i < end; i++ {
			hits[i]++
		}
	})
	defer pool.stop()

	pool.run(rows)
	pool.run(rows)
	for i, n := range hits {
		if n != 2 {
			t.Fatalf("row %d shaded %d times, want 2", i, n)
		}
	}
}
