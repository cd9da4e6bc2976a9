package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tank-rampage/internal/platform/tui"
	"github.com/vovakirdan/tank-rampage/internal/storage"
)

const gameID = "tanks"

var (
	flagLimit       int
	flagInteractive bool
	flagClear       bool
	flagAll         bool
	flagRun         string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best runs recorded in the scores database.

Examples:
  tanks scores
  tanks scores --limit 25
  tanks scores --all
  tanks scores --run 3f6c1a52-...
  tanks scores --interactive
  tanks scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a scrollable table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Show every recorded run")
	scoresCmd.Flags().StringVar(&flagRun, "run", "", "Show a single run by its ID")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Scores cleared.")
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, gameID, "Tank Rampage", width, height)
	}

	if flagRun != "" {
		return showRun(cmd.OutOrStdout(), store, flagRun)
	}
	return listScores(cmd.OutOrStdout(), store, flagLimit, flagAll)
}

// showRun prints a single run, as logged when the run was saved.
func showRun(out io.Writer, store *storage.Store, runID string) error {
	entry, err := store.ScoreByRunID(runID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("no run with ID %q", runID)
	}
	fmt.Fprintf(out, "Run %s
", entry.RunID)
	fmt.Fprintf(out, "  Score: %s
", humanize.Comma(int64(entry.Score)))
	fmt.Fprintf(out, "  Level: %d
", entry.Level)
	fmt.Fprintf(out, "  When:  %s
", humanize.RelTime(entry.CreatedAt, time.Now(), "ago", "from now"))
	return nil
}

func listScores(out io.Writer, store *storage.Store, limit int, all bool) error {
	var scores []storage.ScoreEntry
	var err error
	if all {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, limit)
	}
	if err != nil {
		return err
	}
	best, err := store.HighScore(gameID)
	if err != nil {
		return err
	}
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "High Scores - Tank Rampage")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'tanks play' to set the first high score!")
		return nil
	}

	now := time.Now()
	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Level", "When")
	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-10s  %-5d  %s\n",
			i+1, humanize.Comma(int64(e.Score)), e.Level, humanize.RelTime(e.CreatedAt, now, "ago", "from now"))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %s (level %d)  Runs: %s  Average: %s\n",
		humanize.Comma(int64(best)), stats.BestLevel,
		humanize.Comma(int64(stats.GamesCount)), humanize.CommafWithDigits(stats.AvgScore, 1))
	return nil
}
