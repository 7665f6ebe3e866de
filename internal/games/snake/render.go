package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	snakecore "github.com/vovakirdan/tui-snake/internal/games/snake/core"
)

// cellStyle maps a grid cell to the rune and color drawn on screen.
func cellStyle(t snakecore.CellType) (rune, core.Color) {
	switch t {
	case snakecore.CellHead:
		return t.Rune(), core.ColorBrightGreen
	case snakecore.CellBody:
		return t.Rune(), core.ColorGreen
	case snakecore.CellFood:
		return t.Rune(), core.ColorBrightRed
	default:
		return t.Rune(), core.ColorGray
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall() {
		w, h := g.requiredSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d, resize to continue", w, h))
		return
	}

	if g.sim == nil && g.fault == nil {
		return
	}

	g.renderBoard(dst)

	// Draw overlays
	switch {
	case g.fault != nil:
		g.renderOverlay(dst, "Error", g.fault.Error())
	case g.sim.IsCleared():
		g.renderOverlay(dst, "Board cleared!", fmt.Sprintf("Length %d - press R to restart", g.sim.Len()))
	case g.sim.IsDead():
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Hit %s - press R to restart", describeCause(g.cause)))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := " " + g.title
	if g.sim != nil {
		hud = fmt.Sprintf(" %s | Length: %d  Delay: %.1f  Steps: %d",
			g.title, g.sim.Len(), g.sim.TickDelay(), g.sim.Steps())
	}
	dst.DrawTextColor(0, 0, hud, core.ColorCyan)

	for x, n := 0, dst.Width(); x < n; x++ {
		dst.SetColor(x, 1, '─', core.ColorGray)
	}
}

// renderBoard draws the boxed grid from the last rendered frame.
func (g *Game) renderBoard(dst *core.Screen) {
	if g.frame == nil {
		return
	}

	boxW, boxH := g.requiredSize()
	boxH -= hudHeight
	x0 := (dst.Width() - boxW) / 2
	y0 := hudHeight
	dst.DrawBox(core.NewRect(x0, y0, boxW, boxH), core.ColorGray)

	for y, n := 0, g.frame.Height(); y < n; y++ {
		for x, n := 0, g.frame.Width(); x < n; x++ {
			t, _ := g.frame.Get(snakecore.C(x, y))
			r, c := cellStyle(t)
			dst.SetColor(x0+1+x*cellWidth, y0+1+y, r, c)
		}
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	box := core.Centered(dst.Width(), dst.Height(), maxLen+4, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorYellow)
	drawCentered(dst, box.Y+1, line1, core.ColorYellow)
	drawCentered(dst, box.Y+3, line2, core.ColorDefault)
}

// drawCentered draws text centered horizontally.
func drawCentered(dst *core.Screen, y int, text string, c core.Color) {
	x := (dst.Width() - len([]rune(text))) / 2
	dst.DrawTextColor(x, y, text, c)
}

func describeCause(cause string) string {
	switch cause {
	case CauseWall:
		return "the wall"
	case CauseSelf:
		return "yourself"
	default:
		return cause
	}
}
