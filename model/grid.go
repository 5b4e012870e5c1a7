package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/utils"
)

// ErrOutOfBounds is returned by direct cell access with a coordinate outside the grid.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// CellState is the liveness of a single cell
type CellState uint8

const (
	Dead CellState = iota
	Alive
)

func (s CellState) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}

func stateOf(alive bool) CellState {
	if alive {
		return Alive
	}
	return Dead
}

// Coordinate identifies a cell by row and column
type Coordinate struct {
	Row    int
	Column int
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}

/*
Grid is a fixed-size board of cells with non-wrapping edges.

Grid has value semantics: no exported method mutates the receiver, every change
returns a new Grid. Copying a Grid value is cheap and safe to share.
*/
type Grid struct {
	width  int
	height int
	cells  [][]bool
}

// newGrid allocates an all-dead grid without validating the dimensions
func newGrid(height, width int) Grid {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// NewEmptyGrid creates a grid with every cell dead
func NewEmptyGrid(height, width int) (Grid, error) {
	if err := utils.ValidateDimensions(height, width); err != nil {
		return Grid{}, errors.Wrap(err, "[NewEmptyGrid]")
	}
	return newGrid(height, width), nil
}

// NewRandomGrid creates a grid where each cell is independently alive with
// probability liveProbability. Fixing the seed of rng makes the result reproducible.
func NewRandomGrid(height, width int, liveProbability float64, rng *rand.Rand) (Grid, error) {
	if err := utils.ValidateDimensions(height, width); err != nil {
		return Grid{}, errors.Wrap(err, "[NewRandomGrid]")
	}
	if err := utils.ValidateProbability(liveProbability); err != nil {
		return Grid{}, errors.Wrap(err, "[NewRandomGrid]")
	}
	if rng == nil {
		return Grid{}, errors.Wrap(utils.ErrInvalidConfiguration, "[NewRandomGrid] random source is nil")
	}

	g := newGrid(height, width)
	for y := range height {
		for x := range width {
			g.cells[y][x] = rng.Float64() < liveProbability
		}
	}
	return g, nil
}

// GetWidth returns the width of the grid
func (g Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g Grid) GetHeight() int {
	return g.height
}

// Contains reports whether c lies inside the grid
func (g Grid) Contains(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.height && c.Column >= 0 && c.Column < g.width
}

// Get returns the state of a cell
func (g Grid) Get(c Coordinate) (CellState, error) {
	if !g.Contains(c) {
		return Dead, errors.Wrapf(ErrOutOfBounds, "[Get] %v on %dx%d grid", c, g.height, g.width)
	}
	return stateOf(g.cells[c.Row][c.Column]), nil
}

// IsAlive returns the liveness of a cell, treating anything outside the grid as dead
func (g Grid) IsAlive(row, column int) bool {
	if row < 0 || row >= g.height || column < 0 || column >= g.width {
		return false
	}
	return g.cells[row][column]
}

// Set returns a copy of the grid with the cell at c set to state
func (g Grid) Set(c Coordinate, state CellState) (Grid, error) {
	if !g.Contains(c) {
		return g, errors.Wrapf(ErrOutOfBounds, "[Set] %v on %dx%d grid", c, g.height, g.width)
	}
	next := g.Clone()
	next.cells[c.Row][c.Column] = state == Alive
	return next, nil
}

// Toggle returns a copy of the grid with the cell at c flipped
func (g Grid) Toggle(c Coordinate) (Grid, error) {
	state, err := g.Get(c)
	if err != nil {
		return g, errors.Wrap(err, "[Toggle]")
	}
	if state == Alive {
		return g.Set(c, Dead)
	}
	return g.Set(c, Alive)
}

// CountLivingCells returns the total number of living cells
func (g Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// Equal reports whether both grids have the same dimensions and every cell matches
func (g Grid) Equal(other Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy that shares no cell storage with g
func (g Grid) Clone() Grid {
	return g.cloneInto(newGrid(g.height, g.width))
}

// cloneInto copies g's cells into dst, which must have the same dimensions
func (g Grid) cloneInto(dst Grid) Grid {
	for y := range g.height {
		copy(dst.cells[y], g.cells[y])
	}
	return dst
}

// Hash returns an MD5 digest of the grid state. Equal grids always share a hash;
// equal hashes must still be confirmed with Equal.
func (g Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.height, g.width)
	row := make([]byte, g.width)
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				row[x] = 1
			} else {
				row[x] = 0
			}
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// bounds is the bounding box of living cells
type bounds struct {
	minX, maxX, minY, maxY int
}

// activeBounds calculates the bounding box of living cells; ok is false when no cell is alive
func (g Grid) activeBounds() (b bounds, ok bool) {
	for y := range g.height {
		for x := range g.width {
			if !g.cells[y][x] {
				continue
			}
			if !ok {
				b = bounds{minX: x, maxX: x, minY: y, maxY: y}
				ok = true
				continue
			}
			b.minX = min(b.minX, x)
			b.maxX = max(b.maxX, x)
			b.minY = min(b.minY, y)
			b.maxY = max(b.maxY, y)
		}
	}
	return b, ok
}

// BoundingBoxSize returns the area of the smallest rectangle holding every living cell
func (g Grid) BoundingBoxSize() int {
	b, ok := g.activeBounds()
	if !ok {
		return 0
	}
	return (b.maxX - b.minX + 1) * (b.maxY - b.minY + 1)
}

// String renders the grid one row per line, '#' alive and '.' dead
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width + 1))
	for y := range g.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range g.width {
			if g.cells[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
