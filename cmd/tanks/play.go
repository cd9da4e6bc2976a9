package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tank-rampage/internal/core"
	"github.com/vovakirdan/tank-rampage/internal/games/tanks"
	"github.com/vovakirdan/tank-rampage/internal/platform/tui"
	"github.com/vovakirdan/tank-rampage/internal/storage"
)

var flagFPS int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Tank Rampage",
	Long: `Start a game in this terminal.

Controls:
  W/Up, S/Down   - Drive forward / reverse
  A/Left, D/Right - Turn
  Space          - Fire
  Enter          - Next level (after clearing a level)
  P/Esc          - Pause
  R              - Restart (after game over)
  ?              - Toggle help
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Weaker enemies, more power-ups, AI sharpens slowly
  normal - AI starts at 30% and sharpens with each level
  hard   - Tougher enemies, fewer power-ups, AI starts at 70%
  fixed  - Constant AI (default)

Examples:
  tanks play
  tanks play --difficulty hard
  tanks play --config ./my-tanks.yaml --seed 7`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	// Surface config errors before taking over the terminal
	gameCfg, err := tanks.LoadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	game := tanks.NewWithConfig(gameCfg, logger)
	if err := tui.Run(game, store, cfg, logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
