package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tank-rampage/internal/config"
	"github.com/vovakirdan/tank-rampage/internal/games/tanks"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would run with, after the search
order and the difficulty preset are applied. The output is valid
tanks.yaml and can be saved to ~/.tanks/configs/tanks.yaml as a starting
point.

Examples:
  tanks config
  tanks config --difficulty hard
  tanks config --defaults > ~/.tanks/configs/tanks.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults file")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagDefaults {
		_, err := out.Write(config.GetDefaultYAML(gameID))
		return err
	}

	cfg, err := tanks.LoadConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = out.Write(data)
	return err
}
