package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FormatSugar renders the sugar readout.
func FormatSugar(grams float64) string {
	return fmt.Sprintf("sugar: %.2f grams", grams)
}

// HUDData holds everything the HUD shows for one frame.
type HUDData struct {
	Sugar    float64
	HeldTime float64
	FPS      int32

	// Debug adds the frame rate and hold easing below the sugar line.
	Debug bool

	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x, y := r.Theme.Padding, r.Theme.Padding

	r.DrawShadowText(FormatSugar(data.Sugar), x, y, r.Theme.SugarFontSize, r.Theme.ValueColor)
	if !data.Debug {
		return
	}

	y += r.Theme.SugarFontSize + 6
	r.DrawShadowText(fmt.Sprintf("FPS: %d", data.FPS), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	r.DrawBar(x, y, "held", float32(data.HeldTime), 200)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, h.renderer.Theme.Padding, screenHeight-22, h.renderer.Theme.FontSize, rl.Gray)
}
