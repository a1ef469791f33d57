// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048 play [mode]        - Play classic, campaign or endless (menu if omitted)
//	t2048 list               - List game modes
//	t2048 levels             - List campaign levels
//	t2048 scores [mode]      - Show high scores
//	t2048 config             - Print the effective game config as YAML
//	t2048 serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible games
//	--db <path>      - Set database path (default: ~/.t2048/scores.db)
//	--config <path>  - Load game rules from a YAML file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string

	// Rule overrides, applied on top of the loaded config
	flagSize   int
	flagTarget int
	flagSpawn4 float64
	flagCellMS int
)

// main is the only place the process exits, so commands can rely on their
// deferred cleanup.
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `t2048 is the sliding-tile merge puzzle for the terminal.

Push every tile in one direction; equal neighbours merge into their sum.
Reach the target tile to win, or keep going until the board locks up.

Available commands:
  play     - Play a game (classic, campaign, endless)
  list     - Show the game modes
  levels   - Show the campaign levels
  scores   - View high scores
  config   - Print the effective configuration
  serve    - Start SSH server for remote play

Examples:
  t2048 play
  t2048 play endless --size 5
  t2048 play classic --target 1024 --seed 42
  t2048 serve --ssh :2222
  t2048 scores campaign`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.t2048/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "~/.t2048/t2048.log", "Log file for interactive play")

	pf.IntVar(&flagSize, "size", 0, "Board size N (2-8)")
	pf.IntVar(&flagTarget, "target", 0, "Winning tile value (power of two)")
	pf.Float64Var(&flagSpawn4, "spawn4", 0, "Probability that a spawned tile is a 4")
	pf.IntVar(&flagCellMS, "cell-ms", 0, "Slide time per cell in milliseconds")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
