package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sheikhrachel/go-universe/model"
	"github.com/sheikhrachel/go-universe/utils"
)

// initializeGrid builds the grid described by config
func initializeGrid(config utils.Config) *model.Grid {
	grid := model.NewGrid(config.Width, config.Height, model.AllDead)
	grid.SetDiagnostics(config.Debug)
	seedGrid(grid, config, utils.NewRNG(config.Seed))
	return grid
}

// seedGrid replaces the grid's contents with the configured starting pattern
func seedGrid(grid *model.Grid, config utils.Config, rng *utils.RNG) {
	switch config.Pattern {
	case utils.PatternDead:
		grid.ResetAllDead()
	case utils.PatternGlider:
		grid.ResetAllDead()
		grid.InsertGlider(grid.Height()/2, grid.Width()/2)
	case utils.PatternPulsar:
		grid.ResetAllDead()
		grid.InsertPulsar(grid.Height()/2, grid.Width()/2)
	default:
		grid.Reset(rng.Seed(config.RandomDensity))
	}
}

// gameStatus describes one frame of the headless loop
type gameStatus struct {
	livingCells int
	density     float64
	status      string
	stagnant    bool
}

// updateGameState records the grid in history and classifies it
func updateGameState(grid *model.Grid, history *model.History) gameStatus {
	livingCells := grid.LiveCells()
	var density float64
	if n := grid.Len(); n > 0 {
		density = float64(livingCells) / float64(n) * 100
	}

	stagnant := history.IsStagnant(grid)
	history.Update(grid)

	status := "Active"
	if stagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return gameStatus{
		livingCells: livingCells,
		density:     density,
		status:      status,
		stagnant:    stagnant,
	}
}

// checkRestartConditions determines if the game should reseed
func checkRestartConditions(st gameStatus, stagnantCount int, config utils.Config) (bool, string) {
	if st.livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// displayGameStatus shows the current game status
func displayGameStatus(generation int, st gameStatus, stats *utils.Stats) {
	fmt.Printf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		generation, st.livingCells, st.density, st.status)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
}

// runGame drives the headless loop until ctx is done or the generation limit is hit
func runGame(ctx context.Context, config utils.Config, grid *model.Grid, renderer *model.TerminalRenderer) error {
	var (
		rng           = utils.NewRNG(config.Seed)
		stats         = utils.NewStats()
		history       = &model.History{}
		stagnantCount = 0
	)

	for generation := 0; ; generation++ {
		select {
		case <-ctx.Done():
			fmt.Printf("Final stats: %d generations in %.1f seconds, %.1f avg population\n",
				generation, stats.Runtime().Seconds(), stats.AveragePopulation)
			return nil
		default:
		}

		st := updateGameState(grid, history)
		if st.stagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		renderer.Clear()
		displayGameStatus(generation, st, stats)
		renderer.Display(grid)

		if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
			return nil
		}

		if restart, reason := checkRestartConditions(st, stagnantCount, config); restart && config.AutoRestart {
			fmt.Printf("🔄 Reseeding due to %s...\n", reason)
			seedGrid(grid, utils.Config{Pattern: utils.PatternRandom, RandomDensity: config.RandomDensity}, rng)
			history.Clear()
			stagnantCount = 0
		}

		start := time.Now()
		grid.Tick()
		stats.Update(generation+1, grid.LiveCells(), time.Since(start))

		select {
		case <-ctx.Done():
		case <-time.After(config.FrameRate):
		}
	}
}
