package model

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/utils"
)

// snapshot is a private copy of a past grid with its cached hash
type snapshot struct {
	hash string
	grid Grid
}

/*
HistoryTracker keeps the most recent grids of a run, oldest first, and reports
whether a grid repeats one of them.

Only cycles with a period up to the capacity are detected. A longer cycle never
matches and the run keeps evolving.
*/
type HistoryTracker struct {
	capacity  int
	snapshots []snapshot
	pool      *GridPool
}

// NewHistoryTracker creates an empty tracker holding at most capacity grids.
// Evicted snapshots are returned to pool when it is not nil.
func NewHistoryTracker(capacity int, pool *GridPool) (*HistoryTracker, error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(utils.ErrInvalidConfiguration, "[NewHistoryTracker] capacity must be positive, got %d", capacity)
	}
	return &HistoryTracker{
		capacity:  capacity,
		snapshots: make([]snapshot, 0, capacity+1),
		pool:      pool,
	}, nil
}

// Len returns the number of snapshots currently held
func (h *HistoryTracker) Len() int {
	return len(h.snapshots)
}

// Capacity returns the maximum number of snapshots held
func (h *HistoryTracker) Capacity() int {
	return h.capacity
}

// Contains reports whether g equals any snapshot in the window
func (h *HistoryTracker) Contains(g Grid) bool {
	return h.contains(g, g.Hash())
}

func (h *HistoryTracker) contains(g Grid, hash string) bool {
	for _, s := range h.snapshots {
		// hash match alone is not proof, rule out collisions
		if s.hash == hash && s.grid.Equal(g) {
			return true
		}
	}
	return false
}

// Record appends a copy of g, evicting the oldest snapshot once over capacity
func (h *HistoryTracker) Record(g Grid) {
	h.record(g, g.Hash())
}

func (h *HistoryTracker) record(g Grid, hash string) {
	clone := g.cloneInto(gridFromPool(h.pool, g.height, g.width))
	h.snapshots = append(h.snapshots, snapshot{hash: hash, grid: clone})

	if len(h.snapshots) > h.capacity {
		GridToPool(h.snapshots[0].grid, h.pool)
		h.snapshots[0] = snapshot{}
		h.snapshots = append(h.snapshots[:0], h.snapshots[1:]...)
	}
}

// Observe checks g against the window before recording it. It returns true and
// leaves the window untouched when g repeats a snapshot; otherwise g is recorded.
func (h *HistoryTracker) Observe(g Grid) bool {
	hash := g.Hash()
	if h.contains(g, hash) {
		return true
	}
	h.record(g, hash)
	return false
}
