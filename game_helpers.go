package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

var (
	errQuit           = errors.New("quit requested")
	errMaxGenerations = errors.New("reached maximum generations")
	errRestart        = errors.New("restart after stability")
)

// initialGrid supplies the starting grid for a run according to the start mode
func initialGrid(config utils.Config) (model.Grid, error) {
	rng := utils.NewRNG(config.Seed)
	if config.StartMode == utils.StartModePatterns {
		return model.NewPatternGrid(config, rng)
	}
	return model.NewRandomGrid(config.Height, config.Width, config.LiveProbability, rng)
}

// initializeGame sets up the first simulation run
func initializeGame(config utils.Config) (*model.Simulation, *model.GridPool, error) {
	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}

	sim, err := newRun(config, pool)
	if err != nil {
		return nil, nil, err
	}
	return sim, pool, nil
}

// newRun creates a simulation over a freshly supplied grid
func newRun(config utils.Config, pool *model.GridPool) (*model.Simulation, error) {
	grid, err := initialGrid(config)
	if err != nil {
		return nil, errors.Wrap(err, "[newRun]")
	}
	sim, err := model.NewSimulation(grid, config, pool)
	if err != nil {
		return nil, errors.Wrap(err, "[newRun]")
	}
	return sim, nil
}

// statusLines formats the status shown above the grid
func statusLines(state model.State, stats *utils.Stats, config utils.Config) []string {
	grid := state.Grid
	livingCells := grid.CountLivingCells()
	density := float64(livingCells) / float64(grid.GetWidth()*grid.GetHeight()) * 100

	status := "Active"
	if state.Stable {
		status = fmt.Sprintf("Stable (since generation %d)", *state.StableGeneration)
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	boundingInfo := ""
	if config.UseBoundedGrid {
		boundingInfo = fmt.Sprintf(" | Bounding box: %d cells", grid.BoundingBoxSize())
	}

	return []string{
		fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s%s",
			state.Generation, livingCells, density, status, boundingInfo),
		fmt.Sprintf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs | q/Esc to quit",
			stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds()),
	}
}

// checkStopConditions decides whether the current run should end after this tick
func checkStopConditions(state model.State, config utils.Config, stableSince time.Time) error {
	if config.MaxGenerations > 0 && state.Generation >= config.MaxGenerations {
		return errMaxGenerations
	}
	if state.Stable && config.AutoRestart && time.Since(stableSince) >= config.RestartDelay {
		return errRestart
	}
	return nil
}

// isQuitKey reports whether a key event asks to end the program
func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// newReporter draws every state and paces the run at the configured frame rate.
// It blocks between frames, which is where quit keys and signals are observed.
func newReporter(
	renderer *model.TerminalRenderer,
	events <-chan tcell.Event,
	screen tcell.Screen,
	stats *utils.Stats,
	config utils.Config,
) model.Reporter {
	var (
		lastFrameTime = time.Now()
		stableSince   time.Time
		lastGen       = -1
	)

	return func(ctx context.Context, state model.State) error {
		if state.Generation != lastGen {
			stats.Update(state.Generation, state.Grid.CountLivingCells(), time.Since(lastFrameTime))
			lastFrameTime = time.Now()
			lastGen = state.Generation
		}
		if state.Stable && stableSince.IsZero() {
			stableSince = time.Now()
		}

		renderer.Display(state, statusLines(state, stats, config)...)

		if err := checkStopConditions(state, config, stableSince); err != nil {
			return err
		}

		timer := time.NewTimer(config.FrameRate)
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-timer.C:
				return nil
			case ev := <-events:
				switch ev := ev.(type) {
				case *tcell.EventKey:
					if isQuitKey(ev) {
						return errQuit
					}
				case *tcell.EventResize:
					screen.Sync()
				}
			}
		}
	}
}

// printFinalStats summarizes the session after the screen is released
func printFinalStats(stats *utils.Stats, state model.State, reason string) {
	fmt.Printf("Stopped: %s\n", reason)
	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		state.Generation, stats.Runtime().Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
	if state.Stable {
		fmt.Printf("Grid became stable at generation %d\n", *state.StableGeneration)
	}
}
