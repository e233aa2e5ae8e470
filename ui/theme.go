// Package ui draws the overlays on top of the scene: the sugar readout,
// runtime color pickers and notices.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	TextShadow    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	Warning       rl.Color
	Error         rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	SugarFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		TextShadow:     rl.Color{R: 0, G: 0, B: 0, A: 120},
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 200},
		BarFill:        rl.Color{R: 230, G: 230, B: 255, A: 255},
		Warning:        rl.Color{R: 200, G: 160, B: 60, A: 230},
		Error:          rl.Color{R: 170, G: 50, B: 50, A: 240},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     60,
		BarHeight:      8,
		FontSize:       12,
		HeaderFontSize: 14,
		SugarFontSize:  20,
	}
}

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawShadowText draws text with a one pixel drop shadow so it stays
// readable over both the bright sky and the dark water.
func (r *Renderer) DrawShadowText(text string, x, y, size int32, color rl.Color) {
	rl.DrawText(text, x+1, y+1, size, r.Theme.TextShadow)
	rl.DrawText(text, x, y, size, color)
}

// DrawBar draws a progress bar for [0, 1] values and returns the next Y.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32) int32 {
	value = min(max(value, 0), 1)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 40

	r.DrawShadowText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*value), r.Theme.BarHeight, r.Theme.BarFill)
	r.DrawShadowText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}
