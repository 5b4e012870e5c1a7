package model

// CountNeighbors counts the living cells in the Moore neighborhood of c.
// Neighbors outside the grid are skipped, so edges and corners see fewer cells.
func CountNeighbors(g Grid, c Coordinate) int {
	return g.countNeighbors(c.Column, c.Row)
}

// countNeighbors counts living neighbors with optimized bounds checking
func (g Grid) countNeighbors(x, y int) int {
	count := 0

	// Calculate bounds once using integer min/max
	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue // Skip the cell itself
			}
			if g.cells[ny][nx] {
				count++
			}
		}
	}

	return count
}
