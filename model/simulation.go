package model

import (
	"context"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/utils"
)

// State is what a simulation reports to its caller once per tick
type State struct {
	Grid       Grid
	Generation int
	Stable     bool
	// StableGeneration is the generation at which the grid first repeated, nil while evolving
	StableGeneration *int
}

// Reporter receives the state once per tick. Returning an error stops Run.
type Reporter func(ctx context.Context, state State) error

// Simulation owns the grid, generation counter and history of a single run.
// It is not safe for concurrent use.
type Simulation struct {
	grid             Grid
	generation       int
	stableGeneration *int
	history          *HistoryTracker
	step             StepFunc
}

// NewSimulation starts a run from initial. The grid must match the configured dimensions.
func NewSimulation(initial Grid, config utils.Config, pool *GridPool) (*Simulation, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "[NewSimulation]")
	}
	if initial.height != config.Height || initial.width != config.Width {
		return nil, errors.Wrapf(utils.ErrInvalidConfiguration,
			"[NewSimulation] initial grid is %dx%d, configured %dx%d",
			initial.height, initial.width, config.Height, config.Width)
	}

	history, err := NewHistoryTracker(config.StabilityThreshold, pool)
	if err != nil {
		return nil, errors.Wrap(err, "[NewSimulation]")
	}

	return &Simulation{
		grid:    initial,
		history: history,
		step:    NewStepFunc(config, pool),
	}, nil
}

// Stable reports whether the run has repeated a recent grid
func (s *Simulation) Stable() bool {
	return s.stableGeneration != nil
}

// State returns the current grid, generation and stability
func (s *Simulation) State() State {
	state := State{
		Grid:       s.grid,
		Generation: s.generation,
		Stable:     s.Stable(),
	}
	if s.stableGeneration != nil {
		gen := *s.stableGeneration
		state.StableGeneration = &gen
	}
	return state
}

// Step performs one iteration: a grid that repeats the history window marks the
// run stable, any other grid is recorded and replaced by its next generation.
// Once stable, Step changes nothing.
func (s *Simulation) Step() State {
	if s.Stable() {
		return s.State()
	}

	if s.history.Observe(s.grid) {
		gen := s.generation
		s.stableGeneration = &gen
		return s.State()
	}

	s.grid = s.step(s.grid)
	s.generation++
	return s.State()
}

// Run reports the state, checks for cancellation and steps, until ctx is done
// or report returns an error. A stable run keeps reporting the same state.
func (s *Simulation) Run(ctx context.Context, report Reporter) error {
	for {
		if err := report(ctx, s.State()); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Step()
	}
}
