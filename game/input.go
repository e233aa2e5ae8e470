package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// handleInput processes keyboard and pointer input.
func (g *Game) handleInput() {
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyD) {
		g.debug = !g.debug
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.colorPanel.Toggle()
	}

	g.handlePointer()
}

// handlePointer converts the mouse to scene space, origin bottom-left.
// Leaving the window releases the hold; the position keeps its last value.
func (g *Game) handlePointer() {
	if !rl.IsCursorOnScreen() {
		g.pointer.Held = false
		return
	}

	m := rl.GetMousePosition()
	if g.colorPanel.Contains(m.X, m.Y) {
		g.pointer.Held = false
		return
	}

	g.pointer = Pointer{
		Pos:  screenToScene(m.X, m.Y, float32(g.width), float32(g.height)),
		Held: rl.IsMouseButtonDown(rl.MouseButtonLeft),
	}
}

// screenToScene maps window pixels to normalized canvas coordinates.
func screenToScene(x, y, width, height float32) r2.Vec {
	return r2.Vec{
		X: float64(x / width),
		Y: 1 - float64(y/height),
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.width && h == g.height {
		return
	}
	if err := g.scene.Resize(int(w), int(h)); err != nil {
		// Minimized windows report zero size; keep the last canvas.
		return
	}
	g.width = w
	g.height = h

	g.clouds.Resize(w, h)
	g.colorPanel.SetPosition(w-250, 10)
}
