// Emberwood is a turn-based forest survival game over a deterministic,
// data-driven simulation core.
// Usage: emberwood [--version] [--plain] [--seed <n>] [--save <file>] <content_directory>
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/nathoo/emberwood/cli"
	"github.com/nathoo/emberwood/config"
	"github.com/nathoo/emberwood/engine"
	"github.com/nathoo/emberwood/engine/save"
	"github.com/nathoo/emberwood/loader"
	"github.com/nathoo/emberwood/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("emberwood %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			cfg.Plain = true
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			seed, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed requires a number, got %q\n", args[i])
				os.Exit(1)
			}
			cfg.Seed = seed
		case "--save":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--save requires a file path\n")
				os.Exit(1)
			}
			i++
			cfg.SavePath = args[i]
		default:
			cfg.ContentDir = args[i]
		}
	}

	if cfg.ContentDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: emberwood [--version] [--plain] [--seed <n>] [--save <file>] <content_directory>\n")
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	reg, err := loader.Load(cfg.ContentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
		os.Exit(1)
	}

	repo := save.NewRepository(cfg.SavePath, log)

	// A corrupt save is a hard failure; a missing one starts a new game.
	loaded, err := repo.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading save %s: %v\n", cfg.SavePath, err)
		os.Exit(1)
	}

	usePlain := cfg.Plain || !isTerminal()

	// Character creation runs over the plain prompt even when the TUI
	// takes over for the game itself.
	ui := cli.New(usePlain)

	var eng *engine.Engine
	if loaded != nil {
		eng = engine.Resume(reg, ui, repo, loaded, log)
	} else {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		char := engine.CreateCharacter(reg, ui)
		eng = engine.New(reg, ui, repo, char, seed, log)
	}

	if usePlain {
		if reg.Game.Title != "" {
			fmt.Printf("%s v%s\n\n", reg.Game.Title, reg.Game.Version)
		}
		eng.Run()
		return
	}

	b := tui.NewBridge()
	eng.UI = b
	go func() {
		eng.Run()
		b.Finish()
	}()

	if err := tui.Run(b, eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
