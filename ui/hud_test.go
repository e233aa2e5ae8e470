package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestFormatSugar(t *testing.T) {
	tests := []struct {
		grams float64
		want  string
	}{
		{0, "sugar: 0.00 grams"},
		{1.25, "sugar: 1.25 grams"},
		{12.345678, "sugar: 12.35 grams"},
		{1000, "sugar: 1000.00 grams"},
	}
	for _, tt := range tests {
		if got := FormatSugar(tt.grams); got != tt.want {
			t.Errorf("FormatSugar(%v) = %q, want %q", tt.grams, got, tt.want)
		}
	}
}

func TestColorConversion_Roundtrip(t *testing.T) {
	in := rl.Color{R: 12, G: 200, B: 255, A: 255}
	if got := ToRaylib(FromRaylib(in)); got != in {
		t.Errorf("roundtrip = %+v, want %+v", got, in)
	}
}

func TestToRaylib_ClampsAndIsOpaque(t *testing.T) {
	got := ToRaylib(colorful.Color{R: 1.5, G: -0.2, B: 0.5})
	if got.R != 255 || got.G != 0 || got.A != 255 {
		t.Errorf("ToRaylib = %+v, want clamped opaque color", got)
	}
}

func TestColorPanel_ContainsOnlyWhenVisible(t *testing.T) {
	p := NewColorPanel(100, 50)
	if p.Contains(110, 60) {
		t.Error("hidden panel should not capture the pointer")
	}
	p.Toggle()
	if !p.Contains(110, 60) {
		t.Error("visible panel should capture a point inside it")
	}
	if p.Contains(10, 10) {
		t.Error("point outside the panel should not be captured")
	}
}
