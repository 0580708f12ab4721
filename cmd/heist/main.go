// heist is a terminal platformer about robbing a building room by room.
//
// Usage:
//
//	heist list               - List available modes
//	heist play [mode]        - Play a mode (default: heist)
//	heist menu               - Start menu to pick modes interactively
//	heist rooms              - Show the rooms of the world file
//	heist check              - Validate config and world files
//	heist scores [mode]      - Show the best runs of a mode
//	heist serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible card draws
//	--db <path>           - Set database path (default: ~/.heist/runs.db)
//	--config <path>       - Custom heist.yaml
//	--world <path>        - Custom world file
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/games/heist"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagWorld      string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

var (
	// logger is shared by the commands and the heist modes.
	logger = log.New(io.Discard)

	// logOutput is closed when the command finishes.
	logOutput io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logOutput != nil {
		logOutput.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "heist",
	Short: "TUI Heist - Sneak through a building and extract with the loot",
	Long: `TUI Heist is a terminal platformer. Climb ladders, search boxes and
lockers for cards, avoid drones and dogs, and reach the extraction point.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  rooms    - Show the rooms of a world file
  check    - Validate config and world files
  scores   - View the best runs
  serve    - Start SSH server for remote play

Examples:
  heist play
  heist play heist_tutorial
  heist play --difficulty hard --world ./my-world.yaml
  heist check --config ./heist.yaml
  heist serve --ssh :2222 --metrics :9090`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.heist/runs.db", "Path to runs database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom heist config YAML")
	pf.StringVar(&flagWorld, "world", "", "Path to custom world YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup validates global flags and configures the heist modes before any
// of them is created.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	logger, err = newLogger(cmd.Name() == serveCmd.Name())
	if err != nil {
		return err
	}

	heist.SetConfigPath(flagConfig)
	heist.SetWorldPath(flagWorld)
	heist.SetDifficultyPreset(preset)
	heist.SetLogger(logger)
	return nil
}

// newLogger builds the process logger. Interactive commands own the
// terminal, so without --log-file they only log when serving.
func newLogger(toStderr bool) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = io.Discard
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logOutput = f
		w = f
	case toStderr:
		w = os.Stderr
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "heist",
		Level:           level,
	}), nil
}
