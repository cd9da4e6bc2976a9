// tanks is a top-down tank combat game for the terminal.
//
// Usage:
//
//	tanks play               - Play in this terminal
//	tanks sim                - Run the simulation headless and print status changes
//	tanks serve              - Start SSH server for remote play
//	tanks scores             - Show high scores
//	tanks config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Custom tanks.yaml
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tanks/scores.db)
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tank-rampage/internal/config"
	"github.com/vovakirdan/tank-rampage/internal/games/tanks"
	"github.com/vovakirdan/tank-rampage/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "Tank Rampage - top-down tank combat in your terminal",
	Long: `Tank Rampage is a top-down tank shooter. Clear every enemy tank to
finish a level; each level adds obstacles and enemies.

Examples:
  tanks play
  tanks play --difficulty hard
  tanks sim --steps 3600 --seed 42 --fire
  tanks serve --ssh :23235
  tanks scores`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		tanks.SetConfigPath(flagConfig)
		tanks.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to custom tanks.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath(), "Path to scores database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger. fallback receives logs when no
// --log-file is given; play passes io.Discard so logs never hit the screen.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tanks",
		Level:           level,
	})
	return logger, closeFn, nil
}
