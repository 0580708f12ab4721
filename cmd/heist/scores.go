package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-heist/internal/games/heist"
	"github.com/vovakirdan/tui-heist/internal/platform/tui"
	"github.com/vovakirdan/tui-heist/internal/registry"
	"github.com/vovakirdan/tui-heist/internal/storage"
)

var (
	flagScoresLimit int
	flagClearScores bool
	flagRecentRuns  bool
	flagRunID       string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs of a mode",
	Long: `Display the best runs of the specified mode (heist by default),
followed by totals for every mode that has been played.

With --recent, list the latest runs of all modes instead. With --run,
show a single run by the id printed in the recent list.

Examples:
  heist scores
  heist scores heist_tutorial --limit 20
  heist scores --recent
  heist scores --run 3f2b9c1e-...
  heist scores heist --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every recorded run of the mode")
	scoresCmd.Flags().BoolVar(&flagRecentRuns, "recent", false, "List the latest runs of every mode")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show one run by id")
	scoresCmd.MarkFlagsMutuallyExclusive("clear", "recent", "run")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := heist.ModeHeist
	if len(args) > 0 {
		mode = args[0]
	}

	// Check if mode exists
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q, run 'heist list' to see available modes", mode)
	}

	// Get mode title
	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("creating mode: %w", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClearScores:
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		logger.Info("cleared runs", "mode", mode)
		fmt.Printf("Cleared all runs of %s.\n", title)
		return nil
	case flagRecentRuns:
		return printRecent(os.Stdout, store, flagScoresLimit)
	case flagRunID != "":
		return printRun(os.Stdout, store, flagRunID)
	}

	if err := printTop(os.Stdout, store, mode, title, flagScoresLimit); err != nil {
		return err
	}
	return printTotals(os.Stdout, store)
}

func printTop(w io.Writer, store *storage.Store, mode, title string, limit int) error {
	runs, err := store.TopRuns(mode, limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintf(w, "Best Runs - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'heist play %s' and extract to set the first score!\n", mode)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-6s  %-5s  %-6s  %-6s  %s\n", "Rank", "Score", "Cards", "Deaths", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-6s  %-5s  %-6s  %-6s  %s\n", "----", "-----", "-----", "------", "----", "----")

	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-6d  %-5d  %-6d  %-6s  %s\n",
			i+1, r.Score, r.Cards, r.Deaths,
			tui.FormatRunTime(r.Ticks, flagFPS),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// printTotals prints one line per played mode, in mode order.
func printTotals(w io.Writer, store *storage.Store) error {
	all, err := store.GetAllModeStats()
	if err != nil {
		return fmt.Errorf("retrieving totals: %w", err)
	}
	if len(all) == 0 {
		return nil
	}

	modes := make([]string, 0, len(all))
	for m := range all {
		modes = append(modes, m)
	}
	slices.Sort(modes)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-16s  %-5s  %-4s  %-11s  %-6s  %s\n", "Mode", "Best", "Runs", "Extractions", "Avg", "Deaths")
	for _, m := range modes {
		st := all[m]
		fmt.Fprintf(w, "  %-16s  %-5d  %-4d  %-11d  %-6.1f  %d\n",
			m, st.BestScore, st.Runs, st.Extractions, st.AvgScore, st.TotalDeaths)
	}
	return nil
}

func printRecent(w io.Writer, store *storage.Store, limit int) error {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return fmt.Errorf("retrieving recent runs: %w", err)
	}

	fmt.Fprintf(w, "Recent Runs\n\n")
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-36s  %-16s  %-6s  %-9s  %s\n", "Run", "Mode", "Score", "Extracted", "Date")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-36s  %-16s  %-6d  %-9s  %s\n",
			r.RunID, r.Mode, r.Score, yesNo(r.Extracted), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRun(w io.Writer, store *storage.Store, id string) error {
	r, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no run with id %q", id)
	}

	fmt.Fprintf(w, "Run %s\n\n", r.RunID)
	fmt.Fprintf(w, "  Mode:      %s\n", r.Mode)
	fmt.Fprintf(w, "  Score:     %d\n", r.Score)
	fmt.Fprintf(w, "  Cards:     %d\n", r.Cards)
	fmt.Fprintf(w, "  Deaths:    %d\n", r.Deaths)
	fmt.Fprintf(w, "  Time:      %s\n", tui.FormatRunTime(r.Ticks, flagFPS))
	fmt.Fprintf(w, "  Extracted: %s\n", yesNo(r.Extracted))
	fmt.Fprintf(w, "  Date:      %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
