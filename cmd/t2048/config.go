package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration a new game would use, as YAML.

The output already includes --config and the rule flags, so it can be
saved and edited:

  t2048 config --size 5 > ~/.t2048/configs/t2048.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig(cmd)
	if err != nil {
		return err
	}
	out, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

// loadGameConfig loads the YAML config and applies the rule flags the user
// set explicitly. The result is validated.
func loadGameConfig(cmd *cobra.Command) (config.T2048Config, error) {
	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Board.Size = flagSize
	}
	if flags.Changed("target") {
		cfg.Rules.WinTarget = flagTarget
	}
	if flags.Changed("spawn4") {
		cfg.Rules.Spawn4Probability = flagSpawn4
	}
	if flags.Changed("cell-ms") {
		cfg.Animation.CellDuration = time.Duration(flagCellMS) * time.Millisecond
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// applyGameConfig loads the config and hands it to the game package.
func applyGameConfig(cmd *cobra.Command) error {
	cfg, err := loadGameConfig(cmd)
	if err != nil {
		return err
	}
	t2048.UseConfig(cfg)
	return nil
}
