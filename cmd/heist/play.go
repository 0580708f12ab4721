package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist"
	"github.com/vovakirdan/tui-heist/internal/platform/tui"
	"github.com/vovakirdan/tui-heist/internal/registry"
	"github.com/vovakirdan/tui-heist/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (heist by default).

Controls:
  Left/Right, A/D  - Move
  Up/Down, W/S     - Climb ladders, move the terminal cursor
  Space            - Jump
  E/F (hold)       - Search boxes and lockers, use the terminal
  Enter            - Confirm terminal command
  Esc/B            - Close terminal, back to menu when paused or done
  P                - Pause
  R                - Restart (after extraction)
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a screenshot

Difficulty options:
  easy   - Slower, short-sighted enemies and quicker respawns
  normal - Config values as they are
  hard   - Faster, far-sighted enemies and slower respawns

Examples:
  heist play
  heist play heist_tutorial
  heist play --difficulty hard
  heist play --world ./my-world.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the runs database, continuing without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := heist.ModeHeist
	if len(args) > 0 {
		mode = args[0]
	}

	// Check if mode exists
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q, run 'heist list' to see available modes", mode)
	}

	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("creating mode: %w", err)
	}

	// Open run storage; the run still works without it
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting run", "mode", mode, "seed", flagSeed, "difficulty", flagDifficulty)
	if err := tui.Run(game, store, terminalConfig()); err != nil {
		return fmt.Errorf("running mode: %w", err)
	}
	return nil
}
