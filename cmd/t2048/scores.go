package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagScoresLimit int

// printer groups digits in scores, e.g. 131,072.
var printer = message.NewPrinter(language.English)

var scoresCmd = &cobra.Command{
	Use:   "scores [classic|campaign|endless]",
	Short: "Show high scores",
	Long: `Without a mode, shows a summary of every mode played so far.
With a mode, lists its best runs.

Examples:
  t2048 scores
  t2048 scores endless --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to list")
}

func runScores(_ *cobra.Command, args []string) error {
	var game *t2048.Game
	if len(args) > 0 {
		g, err := newGame(args[0], 0)
		if err != nil {
			return err
		}
		game = g
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if game == nil {
		return printSummary(store)
	}
	return printTopScores(store, game.ID(), game.Title())
}

func printTopScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-4s  %-3s  %s\n", "Rank", "Score", "Tile", "Moves", "Size", "Won", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-4s  %-3s  %s\n", "----", "-----", "----", "-----", "----", "---", "----")
	for i, r := range scores {
		won := ""
		if r.Won {
			won = "yes"
		}
		printer.Printf("  %-4d  %-8d  %-6d  %-5d  %-4s  %-3s  %s\n",
			i+1, r.Score, r.MaxTile, r.Moves,
			fmt.Sprintf("%dx%d", r.GridSize, r.GridSize), won,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048 play' to set the first high score!")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-16s  %-5s  %-4s  %-8s  %-6s  %-8s  %s\n", "Mode", "Games", "Wins", "Best", "Tile", "Average", "Last played")
	fmt.Printf("  %-16s  %-5s  %-4s  %-8s  %-6s  %-8s  %s\n", "----", "-----", "----", "----", "----", "-------", "-----------")
	for _, id := range ids {
		s := stats[id]
		title := id
		if g, err := registry.Create(id); err == nil {
			title = g.Title()
		}
		printer.Printf("  %-16s  %-5d  %-4d  %-8d  %-6d  %-8.0f  %s\n",
			title, s.GamesCount, s.Wins, s.HighScore, s.BestTile, s.AvgScore,
			s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
