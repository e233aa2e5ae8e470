package shading

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorSlot names one of the seven configurable scene colors.
type ColorSlot int

const (
	SkyBottom ColorSlot = iota
	SkyTop
	Star
	Cloud
	WaveTop
	Water
	WaterRefraction

	NumColors
)

var slotNames = [NumColors]string{
	"sky_bottom",
	"sky_top",
	"star",
	"cloud",
	"wave_top",
	"water",
	"water_refraction",
}

// String returns the config key of the slot.
func (s ColorSlot) String() string {
	if s < 0 || s >= NumColors {
		return "unknown"
	}
	return slotNames[s]
}

// Uniform returns the shader uniform name of the slot.
func (s ColorSlot) Uniform() string {
	return s.String() + "_color"
}

// SlotByName looks up a slot by its config key.
func SlotByName(name string) (ColorSlot, bool) {
	for i, n := range slotNames {
		if n == name {
			return ColorSlot(i), true
		}
	}
	return 0, false
}

// Palette holds the scene colors indexed by slot.
type Palette [NumColors]colorful.Color

var white = colorful.Color{R: 1, G: 1, B: 1}

// Mix linearly interpolates from a to b. t=0 yields a and t=1 yields b exactly.
func Mix(a, b colorful.Color, t float64) colorful.Color {
	return colorful.Color{
		R: a.R*(1-t) + b.R*t,
		G: a.G*(1-t) + b.G*t,
		B: a.B*(1-t) + b.B*t,
	}
}

// Overmix blends base toward target by amount. Amounts past 1 keep pushing
// toward the highlight color by (amount-1)*factor, capped at a full blend, so
// stacked densities saturate into a visible highlight instead of clipping.
func Overmix(base, target, highlight colorful.Color, amount, factor float64) colorful.Color {
	normal := Mix(base, target, min(amount, 1))
	return Mix(normal, highlight, clamp(amount-1, 0, 1)*factor)
}

// RGBA converts a shaded color to an opaque 8-bit pixel.
func RGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
