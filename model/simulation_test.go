package model

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/utils"
)

func testConfig(height, width, threshold int) utils.Config {
	config := utils.DefaultConfig()
	config.Height = height
	config.Width = width
	config.StabilityThreshold = threshold
	return config
}

func mustSimulation(t *testing.T, g Grid, config utils.Config) *Simulation {
	t.Helper()
	sim, err := NewSimulation(g, config, NewGridPool())
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	return sim
}

func TestNewSimulationInvalid(t *testing.T) {
	g, _ := NewEmptyGrid(5, 5)

	if _, err := NewSimulation(g, testConfig(5, 5, 0), nil); !errors.Is(err, utils.ErrInvalidConfiguration) {
		t.Errorf("zero threshold: expected ErrInvalidConfiguration, got %v", err)
	}
	if _, err := NewSimulation(g, testConfig(5, 6, 10), nil); !errors.Is(err, utils.ErrInvalidConfiguration) {
		t.Errorf("dimension mismatch: expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestSimulationInitialState(t *testing.T) {
	g, _ := NewRandomGrid(10, 10, 0.2, utils.NewRNG(3))
	sim := mustSimulation(t, g, testConfig(10, 10, 10))

	state := sim.State()
	if state.Generation != 0 {
		t.Errorf("Expected generation 0, got %d", state.Generation)
	}
	if state.Stable || state.StableGeneration != nil {
		t.Error("Expected a new run to be evolving")
	}
	if !state.Grid.Equal(g) {
		t.Error("Expected the initial grid to be reported")
	}
}

func TestSimulationEmptyGridStableAtGenerationOne(t *testing.T) {
	g, _ := NewEmptyGrid(6, 6)
	sim := mustSimulation(t, g, testConfig(6, 6, 10))

	state := sim.Step()
	if state.Stable || state.Generation != 1 {
		t.Fatalf("Expected evolving at generation 1, got stable=%v generation=%d", state.Stable, state.Generation)
	}

	state = sim.Step()
	if !state.Stable {
		t.Fatal("Expected empty grid to be stable on the second step")
	}
	if state.Generation != 1 {
		t.Errorf("Expected generation 1, got %d", state.Generation)
	}
	if state.StableGeneration == nil || *state.StableGeneration != 1 {
		t.Errorf("Expected stable generation 1, got %v", state.StableGeneration)
	}
}

func TestSimulationFrozenOnceStable(t *testing.T) {
	g := mustParse(t,
		"......",
		".##...",
		".##...",
		"......",
	)
	sim := mustSimulation(t, g, testConfig(4, 6, 10))

	var state State
	for range 3 {
		state = sim.Step()
	}
	if !state.Stable || *state.StableGeneration != 1 {
		t.Fatalf("Expected block to be stable at generation 1, got %+v", state)
	}

	historyLen := sim.history.Len()
	for range 5 {
		next := sim.Step()
		if next.Generation != state.Generation || !next.Grid.Equal(state.Grid) || !next.Stable {
			t.Fatalf("Expected stable run to stay frozen, got generation %d", next.Generation)
		}
	}
	if sim.history.Len() != historyLen {
		t.Errorf("Expected history to stay at %d snapshots, got %d", historyLen, sim.history.Len())
	}
}

func TestSimulationStableGenerationIsNotShared(t *testing.T) {
	g, _ := NewEmptyGrid(3, 3)
	sim := mustSimulation(t, g, testConfig(3, 3, 10))
	sim.Step()
	state := sim.Step()

	*state.StableGeneration = 42
	if got := *sim.State().StableGeneration; got != 1 {
		t.Errorf("Expected caller writes not to leak into the run, got %d", got)
	}
}

func TestSimulationBlinker(t *testing.T) {
	g := mustParse(t,
		".....",
		"..#..",
		"..#..",
		"..#..",
		".....",
	)

	sim := mustSimulation(t, g, testConfig(5, 5, 10))
	var state State
	for range 4 {
		state = sim.Step()
	}
	if !state.Stable || *state.StableGeneration != 2 {
		t.Errorf("Expected blinker to be stable at generation 2, got stable=%v generation=%d", state.Stable, state.Generation)
	}
	if !state.Grid.Equal(g) {
		t.Errorf("Expected the repeated phase to be reported, got\n%s", state.Grid)
	}

	// a window of one only remembers the opposite phase
	sim = mustSimulation(t, g, testConfig(5, 5, 1))
	for range 50 {
		state = sim.Step()
	}
	if state.Stable {
		t.Error("Expected a period 2 oscillator to go undetected with a window of 1")
	}
	if state.Generation != 50 {
		t.Errorf("Expected generation 50, got %d", state.Generation)
	}
}

func TestSimulationCycleLongerThanWindow(t *testing.T) {
	const period = 11

	// rotate the single living cell one column right per generation
	shift := func(g Grid) Grid {
		next := newGrid(g.height, g.width)
		for x := range g.width {
			next.cells[0][(x+1)%g.width] = g.cells[0][x]
		}
		return next
	}

	sim := mustSimulation(t, lineGrid(t, period, 0), testConfig(1, period, 10))
	sim.step = shift
	for range 200 {
		sim.Step()
	}
	if state := sim.State(); state.Stable || state.Generation != 200 {
		t.Errorf("Expected evolving at generation 200, got stable=%v generation=%d", state.Stable, state.Generation)
	}

	sim = mustSimulation(t, lineGrid(t, period, 0), testConfig(1, period, period))
	sim.step = shift
	for range 200 {
		sim.Step()
	}
	if state := sim.State(); !state.Stable || *state.StableGeneration != period {
		t.Errorf("Expected stable at generation %d, got %+v", period, state)
	}
}

func TestSimulationRunCancellation(t *testing.T) {
	g, _ := NewRandomGrid(20, 20, 0.3, utils.NewRNG(5))
	sim := mustSimulation(t, g, testConfig(20, 20, 10))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var generations []int
	err := sim.Run(ctx, func(ctx context.Context, state State) error {
		generations = append(generations, state.Generation)
		if len(generations) == 3 {
			cancel()
		}
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if len(generations) != 3 {
		t.Fatalf("Expected 3 reports, got %d", len(generations))
	}
	if sim.State().Generation != generations[2] {
		t.Errorf("Expected no step after cancellation, generation %d vs last report %d",
			sim.State().Generation, generations[2])
	}
}

func TestSimulationRunReporterError(t *testing.T) {
	g, _ := NewEmptyGrid(4, 4)
	sim := mustSimulation(t, g, testConfig(4, 4, 10))
	errStop := errors.New("stop")

	var last State
	reports := 0
	err := sim.Run(context.Background(), func(ctx context.Context, state State) error {
		reports++
		last = state
		if reports == 5 {
			return errStop
		}
		return nil
	})

	if !errors.Is(err, errStop) {
		t.Fatalf("Expected reporter error, got %v", err)
	}
	if !last.Stable || last.Generation != 1 {
		t.Errorf("Expected stable report at generation 1, got stable=%v generation=%d", last.Stable, last.Generation)
	}
}

func TestSimulationReportedGridsAreNotRecycled(t *testing.T) {
	g, _ := NewRandomGrid(12, 12, 0.3, utils.NewRNG(11))
	config := testConfig(12, 12, 2)
	config.UseParallel = true
	sim := mustSimulation(t, g, config)

	var reported []State
	for range 20 {
		reported = append(reported, sim.State())
		sim.Step()
	}

	want := g
	for i, state := range reported {
		if state.Stable {
			break
		}
		if !state.Grid.Equal(want) {
			t.Fatalf("Expected reported grid %d to be unchanged by later steps", i)
		}
		want = NextGeneration(want)
	}
}
