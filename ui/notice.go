package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// NoticeLevel distinguishes blocking failures from recoverable ones.
type NoticeLevel int

const (
	NoticeWarning NoticeLevel = iota // banner, the scene keeps drawing
	NoticeFatal                      // covers the screen
)

// Notice is a message shown to the user in place of, or over, the scene.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// DrawNotice renders n. Fatal notices fill the screen; warnings are a banner
// along the top edge.
func (r *Renderer) DrawNotice(n Notice, screenWidth, screenHeight int32) {
	pad := r.Theme.Padding

	if n.Level == NoticeFatal {
		rl.DrawRectangle(0, 0, screenWidth, screenHeight, r.Theme.Error)
		textW := rl.MeasureText(n.Text, r.Theme.SugarFontSize)
		rl.DrawText(n.Text, (screenWidth-textW)/2, screenHeight/2-r.Theme.SugarFontSize/2, r.Theme.SugarFontSize, rl.White)
		return
	}

	height := r.Theme.LineHeight + 2*pad
	rl.DrawRectangle(0, 0, screenWidth, height, r.Theme.Warning)
	rl.DrawText(n.Text, pad, pad, r.Theme.HeaderFontSize, rl.Black)
}
