package shading

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-9

func colorNear(a, b colorful.Color, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol && math.Abs(a.G-b.G) <= tol && math.Abs(a.B-b.B) <= tol
}

func testPalette() Palette {
	return Palette{
		SkyBottom:       {R: 0.9, G: 0.7, B: 0.8},
		SkyTop:          {R: 0.1, G: 0.1, B: 0.3},
		Star:            {R: 1, G: 0.95, B: 0.7},
		Cloud:           {R: 0.95, G: 0.95, B: 1},
		WaveTop:         {R: 0.9, G: 0.95, B: 1},
		Water:           {R: 0.1, G: 0.3, B: 0.45},
		WaterRefraction: {R: 0.5, G: 0.8, B: 1},
	}
}

func TestOvermix_Identities(t *testing.T) {
	base := colorful.Color{R: 0.2, G: 0.4, B: 0.6}
	target := colorful.Color{R: 0.9, G: 0.1, B: 0.3}
	highlight := colorful.Color{R: 1, G: 1, B: 1}

	tests := []struct {
		name   string
		amount float64
		factor float64
		want   colorful.Color
	}{
		{"zero amount keeps base", 0, 1, base},
		{"unit amount reaches target", 1, 1, target},
		{"saturated reaches highlight", 2, 1, highlight},
		{"far past saturation stays at highlight", 50, 1, highlight},
		{"zero factor never highlights", 3, 0, target},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Overmix(base, target, highlight, tc.amount, tc.factor)
			if got != tc.want {
				t.Errorf("Overmix(amount=%v, factor=%v) = %+v, want %+v", tc.amount, tc.factor, got, tc.want)
			}
		})
	}
}

func TestOvermix_PartialHighlight(t *testing.T) {
	base := colorful.Color{}
	target := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	highlight := colorful.Color{R: 1, G: 1, B: 1}

	// amount 1.5 with factor 0.2 moves 10% of the way from target to highlight
	got := Overmix(base, target, highlight, 1.5, 0.2)
	want := colorful.Color{R: 0.55, G: 0.55, B: 0.55}
	if !colorNear(got, want, eps) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestColorSlot_Names(t *testing.T) {
	if WaterRefraction.Uniform() != "water_refraction_color" {
		t.Errorf("unexpected uniform name %q", WaterRefraction.Uniform())
	}
	for s := SkyBottom; s < NumColors; s++ {
		got, ok := SlotByName(s.String())
		if !ok || got != s {
			t.Errorf("SlotByName(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if _, ok := SlotByName("fog"); ok {
		t.Error("expected unknown slot name to be rejected")
	}
}

func TestRGBA_Clamps(t *testing.T) {
	px := RGBA(colorful.Color{R: 1.7, G: -0.2, B: 0.5})
	if px.R != 255 || px.G != 0 || px.A != 255 {
		t.Errorf("RGBA did not clamp: %+v", px)
	}
}

func TestVoronoiAt_Range(t *testing.T) {
	for _, uw := range []float64{0, 0.7, math.Pi, 5.9} {
		for y := -0.5; y <= NoiseGridY+0.5; y += 0.13 {
			for x := -0.5; x <= NoiseGridX+0.5; x += 0.17 {
				v := VoronoiAt(r2.Vec{X: x, Y: y}, uw)
				if v < 0 || v > 1 {
					t.Fatalf("VoronoiAt(%v, %v, uw=%v) = %v, out of [0,1]", x, y, uw, v)
				}
			}
		}
	}
}

func TestVoronoiDistances_OwnPointNearest(t *testing.T) {
	uw := 1.3
	for cy := 0; cy < NoiseGridY; cy++ {
		for cx := 0; cx < NoiseGridX; cx++ {
			p := NoiseAt(cx, cy, uw)
			nearest, second := VoronoiDistances(p, uw)
			if nearest > eps {
				t.Errorf("cell (%d,%d): nearest = %v, want 0 at its own point", cx, cy, nearest)
			}
			if second < nearest || second > 1 {
				t.Errorf("cell (%d,%d): second = %v out of order", cx, cy, second)
			}
			// The field peaks on cell borders; at a feature point it is
			// just the inverted distance to the next point.
			if v := VoronoiAt(p, uw); math.Abs(v-(1-second)) > eps {
				t.Errorf("cell (%d,%d): VoronoiAt = %v, want %v", cx, cy, v, 1-second)
			}
		}
	}
}

func TestVoronoiDistances_SkipsCellsOutsideGrid(t *testing.T) {
	// Far outside the grid every neighbor is skipped, so both distances keep their start value.
	nearest, second := VoronoiDistances(r2.Vec{X: 20, Y: 20}, 0)
	if nearest != 1 || second != 1 {
		t.Errorf("expected (1, 1), got (%v, %v)", nearest, second)
	}
	if v := VoronoiAt(r2.Vec{X: 20, Y: 20}, 0); v != 1 {
		t.Errorf("VoronoiAt outside grid = %v, want 1", v)
	}
}

func TestNoiseAt_JitterBounds(t *testing.T) {
	for _, uw := range []float64{0, 1, 2.5, 4} {
		p := NoiseAt(4, 2, uw)
		if p.X < 4 || p.X > 4+JitterAmount || p.Y < 2 || p.Y > 2+JitterAmount {
			t.Errorf("NoiseAt(4, 2, %v) = %+v escapes its cell", uw, p)
		}
	}
}

func TestPhase(t *testing.T) {
	tests := []struct {
		name          string
		total, period float64
		want          float64
	}{
		{"start", 0, 40, 0},
		{"half period", 20, 40, math.Pi},
		{"wraps", 60, 40, math.Pi},
		{"negative period runs backwards", 10, -8, -math.Pi / 2},
		{"zero period", 5, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Phase(tc.total, tc.period)
			if math.Abs(got-tc.want) > eps {
				t.Errorf("Phase(%v, %v) = %v, want %v", tc.total, tc.period, got, tc.want)
			}
		})
	}
}

func TestPack_PadsToFixedSizes(t *testing.T) {
	u := &Uniforms{
		Canvas:   r2.Vec{X: 640, Y: 360},
		BlobPos:  Vec2s{{X: 0.25, Y: 0.5}, {X: 0.75, Y: 0.9}},
		BlobSize: []float64{20, 30},
		StarPos:  make(Vec2s, StarsAmount+4),
		HeldTime: 0.25,
		Palette:  testPalette(),
	}

	p := u.Pack()
	if len(p.BlobsPos) != BlobsAmount*2 {
		t.Fatalf("blob positions = %d floats, want %d", len(p.BlobsPos), BlobsAmount*2)
	}
	if len(p.BlobsSize) != BlobsAmount {
		t.Fatalf("blob sizes = %d floats, want %d", len(p.BlobsSize), BlobsAmount)
	}
	if len(p.StarsPos) != StarsAmount*2 {
		t.Fatalf("star positions = %d floats, want %d", len(p.StarsPos), StarsAmount*2)
	}

	if p.BlobsPos[2] != 0.75 || p.BlobsPos[3] != 0.9 {
		t.Errorf("second blob packed as (%v, %v)", p.BlobsPos[2], p.BlobsPos[3])
	}
	if p.BlobsPos[4] != 0 || p.BlobsSize[2] != 0 {
		t.Error("expected zero padding after the last blob")
	}
	if p.CanvasDimensions != [2]float32{640, 360} || p.HeldTime != 0.25 {
		t.Errorf("scalars packed incorrectly: %+v", p)
	}
	if p.Colors[Water][2] != 0.45 {
		t.Errorf("water blue = %v, want 0.45", p.Colors[Water][2])
	}
}

func TestHeightAt(t *testing.T) {
	x := 0.4
	sine := WaveSine(x, 1.1) * WaveAmplitude

	tests := []struct {
		name    string
		pointer r2.Vec
		held    float64
		want    float64
	}{
		{"released is baseline plus sine", r2.Vec{X: x, Y: 0.8}, 0, WaveLevel + sine},
		// Pointer on the baseline above x: bump = 0.5, squared and scaled by 0.3
		{"held on the surface raises a bump", r2.Vec{X: x, Y: WaveLevel}, 1, WaveLevel + sine + 0.075},
		{"held deep below is fully damped", r2.Vec{X: x, Y: WaveLevel - 0.2}, 1, WaveLevel + sine},
		{"held far away has no bump", r2.Vec{X: x + 3, Y: WaveLevel}, 1, WaveLevel + sine},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := &Uniforms{Pointer: tc.pointer, HeldTime: tc.held, TimeWave: 1.1}
			got := HeightAt(x, u)
			if math.Abs(got-tc.want) > eps {
				t.Errorf("HeightAt = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSkyAt_EmptySceneIsGradient(t *testing.T) {
	u := &Uniforms{Canvas: r2.Vec{X: 640, Y: 360}, Palette: testPalette()}
	p := r2.Vec{X: 0.3, Y: 0.65}

	got := SkyAt(p, u)
	want := Mix(u.Palette[SkyBottom], u.Palette[SkyTop], 0.65)
	if !colorNear(got, want, eps) {
		t.Errorf("SkyAt = %+v, want %+v", got, want)
	}
}

func TestSkyAt_CloudCenterIsCloudColor(t *testing.T) {
	u := &Uniforms{
		Canvas:   r2.Vec{X: 640, Y: 360},
		BlobPos:  Vec2s{{X: 0.5, Y: 0.6}},
		BlobSize: []float64{40},
		Palette:  testPalette(),
	}

	got := SkyAt(r2.Vec{X: 0.5, Y: 0.6}, u)
	if !colorNear(got, u.Palette[Cloud], 1e-6) {
		t.Errorf("cloud center = %+v, want %+v", got, u.Palette[Cloud])
	}

	// Far outside the blob radius the sky shows through.
	far := SkyAt(r2.Vec{X: 0.05, Y: 0.95}, u)
	want := Mix(u.Palette[SkyBottom], u.Palette[SkyTop], 0.95)
	if !colorNear(far, want, eps) {
		t.Errorf("far from cloud = %+v, want sky %+v", far, want)
	}
}

func TestSkyAt_ZeroSizedBlobsIgnored(t *testing.T) {
	u := &Uniforms{
		Canvas:   r2.Vec{X: 640, Y: 360},
		BlobPos:  Vec2s{{X: 0.5, Y: 0.5}},
		BlobSize: []float64{0},
		Palette:  testPalette(),
	}
	got := SkyAt(r2.Vec{X: 0.5, Y: 0.5}, u)
	if math.IsNaN(got.R) || math.IsNaN(got.G) || math.IsNaN(got.B) {
		t.Fatal("zero sized blob produced NaN")
	}
}

func TestShade_WaveTopBand(t *testing.T) {
	u := &Uniforms{Canvas: r2.Vec{X: 640, Y: 360}, TimeWave: 0.3, Palette: testPalette()}
	x := 0.6
	h := HeightAt(x, u)

	got := Shade(r2.Vec{X: x, Y: h}, u)
	want := Mix(SkyAt(r2.Vec{X: x, Y: h}, u), u.Palette[WaveTop], WaveTopMix)
	if !colorNear(got, want, eps) {
		t.Errorf("wave top = %+v, want %+v", got, want)
	}
}

func TestShade_UniformPaletteIsFlat(t *testing.T) {
	c := colorful.Color{R: 0.3, G: 0.5, B: 0.2}
	var pal Palette
	for i := range pal {
		pal[i] = c
	}
	u := &Uniforms{Canvas: r2.Vec{X: 320, Y: 180}, TimeWave: 2, UnderwaterWave: 1, Palette: pal}

	for _, p := range []r2.Vec{{X: 0.1, Y: 0.9}, {X: 0.5, Y: 0.19}, {X: 0.9, Y: 0.05}, {X: 0.3, Y: 0.001}} {
		got := Shade(p, u)
		if !colorNear(got, c, 1e-9) {
			t.Errorf("Shade(%+v) = %+v, want flat %+v", p, got, c)
		}
	}
}

func TestShade_UnderwaterTowardsWater(t *testing.T) {
	u := &Uniforms{Canvas: r2.Vec{X: 640, Y: 360}, Palette: testPalette()}
	// Near the bottom the water blend is at least 1.5*0.15+0.13 and refraction adds at most 25%.
	got := Shade(r2.Vec{X: 0.5, Y: 0.02}, u)
	sky := SkyAt(r2.Vec{X: 0.5, Y: 0.02}, u)
	water := u.Palette[Water]
	if math.Abs(got.R-water.R) >= math.Abs(sky.R-water.R) {
		t.Errorf("underwater red %v did not move from sky %v toward water %v", got.R, sky.R, water.R)
	}
}
