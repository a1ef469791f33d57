package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows the campaign levels from the effective config: the tile each
level asks for and how often new tiles are 4s.

Start from any of them with 't2048 play campaign --level N'.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	if err := applyGameConfig(cmd); err != nil {
		return err
	}

	levels := t2048.Levels()
	if len(levels) == 0 {
		fmt.Println("The campaign has no levels.")
		return nil
	}

	fmt.Println("Campaign levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-16s  %-7s  %s\n", "#", "Name", "Target", "4s")
	fmt.Printf("  %-3s  %-16s  %-7s  %s\n", "-", "----", "------", "--")
	for _, l := range levels {
		fmt.Printf("  %-3d  %-16s  %-7d  %.0f%%\n", l.ID, l.Name, l.Target, l.Spawn4*100)
	}
	return nil
}
