package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid Grid, pool *GridPool) {
	if pool == nil {
		return
	}

	pool.Put(grid)
}

// gridFromPool takes an all-dead grid from the pool, or allocates one when pool is nil
func gridFromPool(pool *GridPool, height, width int) Grid {
	if pool == nil {
		return newGrid(height, width)
	}
	return pool.Get(height, width)
}

// GridPool recycles cell buffers. Only grids owned exclusively by the engine,
// never ones already handed to a caller, may be put back.
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Grid{}
			},
		},
	}
}

// Get retrieves an all-dead grid from the pool, resizing it when needed
func (p *GridPool) Get(height, width int) Grid {
	g := p.pool.Get().(*Grid)
	g.reset(height, width)
	return *g
}

// Put returns a grid to the pool, clearing its state
func (p *GridPool) Put(g Grid) {
	g.clear()
	p.pool.Put(&g)
}

// reset resizes the grid in place, reusing rows that already have the right width
func (g *Grid) reset(height, width int) {
	if g.width == width && g.height == height && len(g.cells) == height {
		return
	}
	g.width = width
	g.height = height

	if len(g.cells) != height {
		g.cells = make([][]bool, height)
	}
	for i := range g.cells {
		if len(g.cells[i]) != width {
			g.cells[i] = make([]bool, width)
		} else {
			clear(g.cells[i])
		}
	}
}

// clear kills every cell in place
func (g *Grid) clear() {
	for i := range g.cells {
		clear(g.cells[i])
	}
}
