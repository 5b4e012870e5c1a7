package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig("config.json")
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Using default configuration (config.json not found)")
		config = utils.DefaultConfig()
	}

	sim, pool, err := initializeGame(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err = screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	var (
		stats    = utils.NewStats()
		renderer = model.NewTerminalRenderer(screen)
		reason   string
	)

	for {
		err = sim.Run(ctx, newReporter(renderer, events, screen, stats, config))
		if errors.Is(err, errRestart) {
			next, restartErr := newRun(config, pool)
			if restartErr != nil {
				err = restartErr
			} else {
				sim = next
				continue
			}
		}
		break
	}

	screen.Fini()

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, errQuit):
		reason = "shutting down gracefully"
	case errors.Is(err, errMaxGenerations):
		reason = fmt.Sprintf("reached maximum generations limit (%d)", config.MaxGenerations)
	default:
		fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
		os.Exit(1)
	}
	printFinalStats(stats, sim.State(), reason)
}
