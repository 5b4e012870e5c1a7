package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/utils"
)

// Pattern is a small rectangle of cells, row-major, true meaning alive
type Pattern [][]bool

var (
	Glider = Pattern{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	// Blinker oscillates with period 2
	Blinker = Pattern{
		{true, true, true},
	}

	// Block is a still life
	Block = Pattern{
		{true, true},
		{true, true},
	}
)

// Size returns the height and width of the pattern
func (p Pattern) Size() (height, width int) {
	if len(p) == 0 {
		return 0, 0
	}
	return len(p), len(p[0])
}

// Place returns a copy of g with p stamped at the given top-left coordinate.
// Every pattern cell, dead or alive, overwrites the grid.
func Place(g Grid, p Pattern, at Coordinate) (Grid, error) {
	height, width := p.Size()
	if height == 0 {
		return g, nil
	}
	far := Coordinate{Row: at.Row + height - 1, Column: at.Column + width - 1}
	if !g.Contains(at) || !g.Contains(far) {
		return g, errors.Wrapf(ErrOutOfBounds, "[Place] %dx%d pattern at %v on %dx%d grid", height, width, at, g.height, g.width)
	}

	next := g.Clone()
	for y, row := range p {
		for x, cell := range row {
			next.cells[at.Row+y][at.Column+x] = cell
		}
	}
	return next, nil
}

// ParseGrid builds a grid from text rows: '#', 'O' or '*' alive, '.' or ' ' dead.
// Every row must have the same length.
func ParseGrid(rows ...string) (Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Grid{}, errors.Wrap(utils.ErrInvalidConfiguration, "[ParseGrid] no cells")
	}

	g := newGrid(len(rows), len(rows[0]))
	for y, row := range rows {
		if len(row) != g.width {
			return Grid{}, errors.Wrapf(utils.ErrInvalidConfiguration, "[ParseGrid] row %d has %d cells, expected %d", y, len(row), g.width)
		}
		for x := range len(row) {
			switch row[x] {
			case '#', 'O', '*':
				g.cells[y][x] = true
			case '.', ' ':
			default:
				return Grid{}, errors.Wrapf(utils.ErrInvalidConfiguration, "[ParseGrid] unexpected %q at row %d column %d", row[x], y, x)
			}
		}
	}
	return g, nil
}

type placement struct {
	pattern Pattern
	at      Coordinate
}

// NewPatternGrid fills a grid at the configured density, then adds gliders and
// blinkers when there is room for them
func NewPatternGrid(config utils.Config, rng *rand.Rand) (Grid, error) {
	g, err := NewRandomGrid(config.Height, config.Width, config.LiveProbability, rng)
	if err != nil {
		return Grid{}, errors.Wrap(err, "[NewPatternGrid]")
	}

	var placements []placement
	add := func(p Pattern, row, column int) {
		placements = append(placements, placement{pattern: p, at: Coordinate{Row: row, Column: column}})
	}

	if g.width >= 10 && g.height >= 10 {
		add(Glider, 5, 5)
		if g.width >= 20 && g.height >= 15 {
			add(Glider, 5, g.width-8)
		}

		add(Blinker, g.height/4, g.width/4)
		if g.width >= 30 {
			add(Blinker, 3*g.height/4, 3*g.width/4)
		}
	}

	for _, pl := range placements {
		if g, err = Place(g, pl.pattern, pl.at); err != nil {
			return Grid{}, errors.Wrap(err, "[NewPatternGrid]")
		}
	}
	return g, nil
}
