package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/sugarclouds/shading"
)

// ColorPanel lets the user repaint the scene at runtime, one palette slot at
// a time.
type ColorPanel struct {
	renderer *Renderer
	x, y     int32
	visible  bool
	slot     shading.ColorSlot
}

// NewColorPanel creates a hidden color panel anchored at x, y.
func NewColorPanel(x, y int32) *ColorPanel {
	return &ColorPanel{renderer: NewRenderer(), x: x, y: y}
}

// Toggle switches panel visibility.
func (c *ColorPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ColorPanel) IsVisible() bool {
	return c.visible
}

// SetPosition updates the panel anchor.
func (c *ColorPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// Contains reports whether a screen point lies on the visible panel, so
// pointer input over it is not forwarded to the scene.
func (c *ColorPanel) Contains(px, py float32) bool {
	if !c.visible {
		return false
	}
	w, h := c.size()
	return px >= float32(c.x) && px < float32(c.x+w) && py >= float32(c.y) && py < float32(c.y+h)
}

func (c *ColorPanel) size() (int32, int32) {
	p := c.renderer.Theme.Padding
	return 200 + 2*p + 24, 30 + 200 + 3*p + c.renderer.Theme.LineHeight
}

// Draw renders the panel for the current palette. When the user picks a new
// color it returns the slot, the color and true.
func (c *ColorPanel) Draw(palette shading.Palette) (shading.ColorSlot, colorful.Color, bool) {
	if !c.visible {
		return 0, colorful.Color{}, false
	}

	r := c.renderer
	pad := r.Theme.Padding
	w, h := c.size()
	r.DrawPanel(c.x, c.y, w, h)

	x := float32(c.x + pad)
	y := float32(c.y + pad)

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 30, Height: 30}, "<") {
		c.slot = (c.slot + shading.NumColors - 1) % shading.NumColors
	}
	if gui.Button(rl.Rectangle{X: x + 170, Y: y, Width: 30, Height: 30}, ">") {
		c.slot = (c.slot + 1) % shading.NumColors
	}
	r.DrawShadowText(c.slot.String(), int32(x)+40, int32(y)+8, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += 30 + float32(pad)

	current := palette[c.slot]
	picked := gui.ColorPicker(rl.Rectangle{X: x, Y: y, Width: 200, Height: 200}, "", ToRaylib(current))
	y += 200 + float32(pad)

	r.DrawShadowText(current.Clamped().Hex(), int32(x), int32(y), r.Theme.FontSize, r.Theme.ValueColor)

	if picked == ToRaylib(current) {
		return c.slot, current, false
	}
	return c.slot, FromRaylib(picked), true
}

// ToRaylib converts a scene color to an opaque raylib color.
func ToRaylib(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.Color{R: r, G: g, B: b, A: 255}
}

// FromRaylib converts a raylib color to a scene color, dropping alpha.
func FromRaylib(c rl.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
