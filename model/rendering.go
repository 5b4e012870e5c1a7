package model

import "github.com/gdamore/tcell/v2"

const gridPosBlock = '█'

var (
	styleAlive  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStable = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// TerminalRenderer draws simulation states on a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
}

func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// Display draws the status lines followed by the grid, two columns per cell.
// Anything past the screen edge is clipped.
func (r *TerminalRenderer) Display(state State, lines ...string) {
	r.screen.Clear()
	width, height := r.screen.Size()

	for y, line := range lines {
		if y >= height {
			break
		}
		r.drawText(0, y, line, styleText)
	}

	cellStyle := styleAlive
	if state.Stable {
		cellStyle = styleStable
	}

	top := len(lines)
	g := state.Grid
	for row := range g.height {
		y := top + row
		if y >= height {
			break
		}
		for col := range g.width {
			x := col * 2
			if x+1 >= width {
				break
			}
			if g.cells[row][col] {
				r.screen.SetContent(x, y, gridPosBlock, nil, cellStyle)
				r.screen.SetContent(x+1, y, gridPosBlock, nil, cellStyle)
			}
		}
	}

	r.screen.Show()
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	width, _ := r.screen.Size()
	for _, ch := range text {
		if x >= width {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
