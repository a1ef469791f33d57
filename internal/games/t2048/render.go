package t2048

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// boardDims returns the on-screen size of an N×N board including borders.
func boardDims(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	size := g.session.Config().Size
	boardW, boardH := boardDims(size)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	renderGrid(dst, size, boardX, boardY)
	renderTiles(dst, g.session.Views(), boardX, boardY)
	dst.DrawTextCentered(boardY+boardH+1, g.Controls())
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the score and target info.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "2048"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorYellow)

	dst.DrawTextColored(boardX, 1, fmt.Sprintf("Score: %d", g.session.Score()), core.ColorText)

	var info string
	switch {
	case g.mode == ModeCampaign:
		info = fmt.Sprintf("Level %d/%d  Target: %d", g.levelIndex+1, len(g.levels), g.session.Target())
	case g.session.Target() == 0 || g.session.Continued():
		info = fmt.Sprintf("Max: %d", g.session.MaxTile())
	default:
		info = fmt.Sprintf("Target: %d", g.session.Target())
	}
	infoX := max(boardX+boardW-len(info), boardX)
	dst.DrawTextColored(infoX, 1, info, core.ColorText)

	var modeStr string
	switch g.mode {
	case ModeCampaign:
		modeStr = "Campaign"
	case ModeEndless:
		modeStr = "Endless"
	default:
		modeStr = "Classic"
	}
	dst.DrawTextColored(boardX+(boardW-len(modeStr))/2, 2, modeStr, core.ColorGray)
}

// renderGrid draws the N×N cell borders.
func renderGrid(dst *core.Screen, size, boardX, boardY int) {
	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == size:
				corner = '┐'
			case y == size && x == 0:
				corner = '└'
			case y == size && x == size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorBoard)

			if x < size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorBoard)
				}
			}
			if y < size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorBoard)
				}
			}
		}
	}
}

// renderTiles draws tiles at their current, possibly fractional, positions.
// Later views are drawn on top, so a merge survivor covers the tile it absorbs.
func renderTiles(dst *core.Screen, views []TileView, boardX, boardY int) {
	const inner = cellWidth - 1
	for _, v := range views {
		cx := boardX + int(math.Round(v.X*cellWidth)) + 1
		cy := boardY + int(math.Round(v.Y*cellHeight)) + 1
		color := core.TileColor(v.Value)

		text := tileLabel(v.Value, inner)
		pad := max((inner-len(text))/2, 0)

		// A sliding tile hides the border it is crossing.
		dst.FillRect(core.NewRect(cx, cy, inner, 1), ' ', core.ColorDefault)
		dst.DrawTextColored(cx+pad, cy, text, color)
		if v.Spawned && pad > 0 {
			dst.SetColored(cx, cy, '+', color)
		}
	}
}

// tileUnits are binary suffixes; every tile is a power of two, so a label
// like "1M" or "4E" is exact.
var tileUnits = []struct {
	size   int
	suffix string
}{
	{1 << 60, "E"},
	{1 << 50, "P"},
	{1 << 40, "T"},
	{1 << 30, "G"},
	{1 << 20, "M"},
	{1 << 10, "K"},
}

// tileLabel formats a tile value in at most width columns.
func tileLabel(value, width int) string {
	text := strconv.Itoa(value)
	if len(text) <= width {
		return text
	}
	for _, u := range tileUnits {
		if value < u.size {
			continue
		}
		if short := strconv.Itoa(value/u.size) + u.suffix; len(short) <= width {
			return short
		}
	}
	return text[:width]
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.campaignDone:
		drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", "You are the champion!", "Press R to restart")
	case g.levelCleared:
		targetStr := fmt.Sprintf("Target %d reached!", g.session.Target())
		if g.levelIndex >= len(g.levels)-1 {
			drawOverlay(dst, centerX, centerY, targetStr, "Final level complete!")
		} else {
			drawOverlay(dst, centerX, centerY, targetStr, fmt.Sprintf("Next: Level %d", g.levelIndex+2))
		}
	case g.session.Status() == StatusWon:
		drawOverlay(dst, centerX, centerY, "YOU WIN!", fmt.Sprintf("Reached %d", g.session.Target()), "C: Continue  R: Restart")
	case g.session.Status() == StatusLost:
		drawOverlay(dst, centerX, centerY, "GAME OVER", fmt.Sprintf("Max tile: %d", g.session.MaxTile()), "Press R to restart")
	}
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := core.Rect{
		X: centerX - (maxLen+4)/2,
		Y: centerY - (len(lines)+2)/2,
		W: maxLen + 4,
		H: len(lines) + 2,
	}

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorText)
	for i, line := range lines {
		dst.DrawTextColored(centerX-utf8.RuneCountInString(line)/2, box.Y+1+i, line, core.ColorText)
	}
}
