package model

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
	"github.com/sheikhrachel/go-life/utils"
)

// StepFunc produces the next generation of a grid without modifying it
type StepFunc func(Grid) Grid

// NewStepFunc picks the generation strategy from the configuration.
// Every strategy yields the same grid as NextGeneration.
func NewStepFunc(config utils.Config, pool *GridPool) StepFunc {
	switch {
	case config.UseBoundedGrid:
		return func(g Grid) Grid { return NextGenerationBounded(g, pool) }
	case config.UseParallel:
		return func(g Grid) Grid { return NextGenerationParallel(g, pool) }
	default:
		return NextGeneration
	}
}

// NextGeneration applies Conway's rules to every cell at once. Every neighbor
// count is taken from g, never from a partially written next grid.
func NextGeneration(g Grid) Grid {
	next := newGrid(g.height, g.width)
	g.computeRegion(next, 0, g.height-1, 0, g.width-1)
	return next
}

// NextGenerationParallel calculates the next generation using parallel processing.
// Workers only read g and each writes a disjoint band of rows in the next grid.
func NextGenerationParallel(g Grid, pool *GridPool) Grid {
	next := gridFromPool(pool, g.height, g.width)

	var (
		eg            errgroup.Group
		numWorkers    = runtime.GOMAXPROCS(0)
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			g.computeRegion(next, startRow, endRow-1, 0, g.width-1)
			return nil
		})
	}

	// workers never fail, Wait is only the barrier before next is published
	_ = eg.Wait()

	return next
}

// NextGenerationBounded calculates next generation only in the active region.
// Cells further than one step from any living cell cannot be born, so they stay dead.
func NextGenerationBounded(g Grid, pool *GridPool) Grid {
	next := gridFromPool(pool, g.height, g.width)

	b, ok := g.activeBounds()
	if !ok {
		return next
	}

	// Process only the active region + 1 margin
	g.computeRegion(next,
		max(0, b.minY-1), min(g.height-1, b.maxY+1),
		max(0, b.minX-1), min(g.width-1, b.maxX+1),
	)
	return next
}

// computeRegion writes the next state of every cell in the inclusive row and
// column ranges into next
func (g Grid) computeRegion(next Grid, minY, maxY, minX, maxX int) {
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			next.cells[y][x] = rules.ApplyConwayRules(g.countNeighbors(x, y), g.cells[y][x])
		}
	}
}
