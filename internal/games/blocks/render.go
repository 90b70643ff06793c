package blocks

import (
	"fmt"

	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/piece"
)

const (
	hudHeight = 2
	cellW     = 2 // Screen columns per board cell
	panelW    = 22
	panelGap  = 2
)

var (
	blockCell = [cellW]rune{'█', '█'}
	ghostCell = [cellW]rune{'░', '░'}
	hintCell  = [cellW]rune{'[', ']'}
	flashCell = [cellW]rune{'▓', '▓'}
	emptyCell = [cellW]rune{' ', '.'}
)

// layout is the screen placement of the board box and side panel.
type layout struct {
	boardX, boardY int // Top-left of the first board cell
	panelX         int
}

func (g *Game) boardSize() (int, int) {
	return g.state.Board.Width(), g.state.Board.Height()
}

// fits reports whether the board, its frame, the HUD and the panel fit.
func (g *Game) fits() bool {
	w, h := g.boardSize()
	needW := w*cellW + 2 + panelGap + panelW
	needH := h + 2 + hudHeight
	return g.screenW >= needW && g.screenH >= needH
}

func (g *Game) layout(dst *core.Screen) layout {
	w, _ := g.boardSize()
	total := w*cellW + 2 + panelGap + panelW
	x := max(0, (dst.Width()-total)/2)
	return layout{
		boardX: x + 1,
		boardY: hudHeight + 1,
		panelX: x + w*cellW + 2 + panelGap,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		w, h := g.boardSize()
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", w*cellW+2+panelGap+panelW, h+2+hudHeight))
		return
	}

	l := g.layout(dst)
	g.renderBoard(dst, l)
	g.renderPanel(dst, l)

	switch {
	case g.state.Won:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Score %d  Press R", g.state.Score))
	case g.state.GameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.state.Paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Lines: %d  Level: %d", g.Title(), g.state.Score, g.state.Lines, g.state.Level)
	if g.autoplay {
		hud += "  [AUTO]"
	}
	dst.DrawText(0, 0, hud)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) drawCell(dst *core.Screen, l layout, x, y int, glyph [cellW]rune, c core.Color) {
	sx := l.boardX + x*cellW
	sy := l.boardY + y
	for i, r := range glyph {
		dst.SetCell(sx+i, sy, r, c)
	}
}

func (g *Game) renderBoard(dst *core.Screen, l layout) {
	w, h := g.boardSize()
	dst.DrawBox(core.NewRect(l.boardX-1, l.boardY-1, w*cellW+2, h+2))

	b := g.state.Board
	for y := range h {
		for x := range w {
			if c := b.At(x, y); c != core.ColorDefault {
				g.drawCell(dst, l, x, y, blockCell, c)
			} else {
				g.drawCell(dst, l, x, y, emptyCell, core.ColorDim)
			}
		}
	}

	if g.flashLeft > 0 {
		for _, y := range g.flashRows {
			for x := range w {
				g.drawCell(dst, l, x, y, flashCell, core.ColorWhite)
			}
		}
	}

	cur, ok := g.state.Active()
	if !ok {
		return
	}

	if m, ok := g.Hint(); ok {
		target := piece.New(cur.Type, m.X, m.Y).WithRotation(m.Rotation)
		for _, c := range target.Cells() {
			g.drawCell(dst, l, c.X, c.Y, hintCell, core.ColorWhite)
		}
	}

	if ghost, ok := g.ghosts.Ghost(g.state); ok && ghost.Y != cur.Y {
		for _, c := range ghost.Cells() {
			g.drawCell(dst, l, c.X, c.Y, ghostCell, ghost.Color())
		}
	}

	for _, c := range cur.Cells() {
		g.drawCell(dst, l, c.X, c.Y, blockCell, cur.Color())
	}
}

func (g *Game) renderPanel(dst *core.Screen, l layout) {
	x := l.panelX
	y := l.boardY - 1

	dst.DrawText(x, y, "Next")
	next := piece.Get(g.state.Next)
	for _, c := range next.Shape.Cells() {
		for i, r := range blockCell {
			dst.SetCell(x+2+c.X*cellW+i, y+2+c.Y, r, next.Color)
		}
	}
	y += 7

	lines := []string{
		fmt.Sprintf("Score  %d", g.state.Score),
		fmt.Sprintf("Lines  %d", g.state.Lines),
		fmt.Sprintf("Level  %d", g.state.Level),
		fmt.Sprintf("Pieces %d", g.state.PiecesPlaced),
		"Time   " + clock(g.state.Elapsed),
	}
	mc := g.eng.ModeConfig(g.mode)
	if mc.Timed() {
		lines = append(lines, "Left   "+clock(g.state.Remaining))
	}
	if mc.TideInterval > 0 {
		lines = append(lines, fmt.Sprintf("Tide   %ds", g.state.NextGarbage))
	}
	if mc.Win.Lines > 0 {
		lines = append(lines, fmt.Sprintf("Goal   %d/%d", min(g.state.Lines, mc.Win.Lines), mc.Win.Lines))
	}
	for _, s := range lines {
		dst.DrawText(x, y, s)
		y++
	}

	y++
	if m, ok := g.Hint(); ok {
		dst.DrawTextColor(x, y, "Hint:", core.ColorYellow)
		dst.DrawText(x, y+1, truncate(m.Reasoning, panelW))
	} else {
		dst.DrawTextColor(x, y, "H hint  A autoplay", core.ColorDim)
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r)
	dst.DrawTextCentered(r.Y+1, line1)
	dst.DrawTextCentered(r.Y+3, line2)
}

func clock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
