package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/integrii/flaggy"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-universe/model"
	"github.com/sheikhrachel/go-universe/utils"
	"github.com/sheikhrachel/go-universe/view"
)

const defaultConfigFile = "config.json"

func main() {
	config, err := loadOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if !config.Debug || config.Interactive {
		utils.SetLogger(nil)
	}

	grid := initializeGrid(config)

	if config.Interactive {
		ui, err := view.NewConsoleUI(grid, config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err = ui.Start(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	// Handle Ctrl+C gracefully
	eg.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			fmt.Println("\n🛑 Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	eg.Go(func() error {
		defer cancel()
		return runGame(ctx, config, grid, model.NewTerminalRenderer(true))
	})

	if err = eg.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// configPath finds the -c/--config argument ahead of the full flag parse so
// that file values can serve as flag defaults
func configPath(args []string) string {
	for i, arg := range args {
		for _, name := range []string{"-c", "--config"} {
			if arg == name && i+1 < len(args) {
				return args[i+1]
			}
			if value, ok := strings.CutPrefix(arg, name+"="); ok {
				return value
			}
		}
	}
	return defaultConfigFile
}

// loadOptions reads the config file, then lets command line flags override it
func loadOptions(args []string) (utils.Config, error) {
	configFile := configPath(args)
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		if configFile != defaultConfigFile {
			return config, err
		}
		fmt.Println("Using default configuration (config.json not found)")
		config = utils.DefaultConfig()
	}

	parser := flaggy.NewParser("universe")
	parser.Description = "Conway's Game of Life on a toroidal grid"
	parser.ShowHelpOnUnexpected = true
	parser.String(&configFile, "c", "config", "JSON configuration file")
	parser.UInt32(&config.Width, "x", "width", "Width of the universe")
	parser.UInt32(&config.Height, "y", "height", "Height of the universe")
	parser.Duration(&config.FrameRate, "i", "interval", "Interval between generations, e.g. 150ms")
	parser.Int(&config.MaxGenerations, "s", "maxGenerations", "Stop after this many generations (0 runs forever)")
	parser.Float64(&config.RandomDensity, "d", "density", "Share of cells alive when seeding randomly")
	parser.Int64(&config.Seed, "", "seed", "Random seed")
	parser.String(&config.Pattern, "p", "pattern", "Initial pattern [random|dead|glider|pulsar]")
	parser.Bool(&config.Debug, "v", "debug", "Log tick timing and cell transitions")
	parser.Bool(&config.Interactive, "n", "interactive", "Start the interactive terminal UI")
	parser.Bool(&config.AutoRestart, "a", "autoRestart", "Reseed when the universe dies out or stagnates")
	if err := parser.ParseArgs(args); err != nil {
		return config, err
	}

	return config, config.Validate()
}
