package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [classic|campaign|endless]",
	Short: "Play 2048",
	Long: `Start a game of 2048. Without a mode, a menu lets you pick one and
brings you back after each game.

Modes:
  classic   - Reach the target tile (default 2048), then keep going if you like
  campaign  - Ten levels with rising targets and more 4s
  endless   - No target; play until the board locks up

Controls:
  Arrows/WASD/hjkl - Push tiles
  C                - Keep playing after a win
  P                - Pause
  R                - Restart
  Esc              - Back to menu (when paused or over)
  Q/Ctrl+C         - Quit

Examples:
  t2048 play
  t2048 play campaign --level 4
  t2048 play endless --size 6 --cell-ms 40`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(t2048.ModeClassic), string(t2048.ModeCampaign), string(t2048.ModeEndless)},
	RunE:      runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start from (1-based)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := applyGameConfig(cmd); err != nil {
		return err
	}

	// Reject bad arguments before the terminal is taken over
	var game *t2048.Game
	if len(args) > 0 {
		g, err := newGame(args[0], flagLevel)
		if err != nil {
			return err
		}
		game = g
	} else if flagLevel != 0 {
		return errors.New("--level needs the campaign mode: t2048 play campaign --level N")
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size early for the mode menu
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

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	if game == nil {
		return runMenu(store, logger, cfg)
	}
	if _, err := tui.Run(game, store, logger, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// newGame creates the game for a mode name, pinned to a campaign level when
// level is non-zero.
func newGame(mode string, level int) (*t2048.Game, error) {
	game := t2048.NewMode(t2048.Mode(mode))
	if game == nil {
		return nil, fmt.Errorf("unknown mode %q (want classic, campaign or endless)", mode)
	}
	if level == 0 {
		return game, nil
	}
	if game.Mode() != t2048.ModeCampaign {
		return nil, errors.New("--level only applies to campaign mode")
	}
	if n := t2048.LevelCount(); level < 1 || level > n {
		return nil, fmt.Errorf("--level %d outside [1, %d]", level, n)
	}
	game.StartAt(level)
	return game, nil
}

// runMenu loops mode menu -> game -> menu until the player quits.
func runMenu(store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	for {
		result, err := tui.RunT2048ModeSelector(cfg)
		if err != nil {
			logger.Error("menu failed", "error", err)
			return err
		}
		cfg = result.Config

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		if result.Quit || result.Selection == nil {
			return nil
		}

		game, err := registry.Create(result.Selection.Mode.GameID())
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}
		if g, ok := game.(*t2048.Game); ok && result.Selection.Level > 0 {
			g.StartAt(result.Selection.Level)
		}

		// Fresh seed for each game unless the user pinned one
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, store, logger, cfg)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}
	}
}
