package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func TestMain(m *testing.M) {
	t2048.UseConfig(config.DefaultT2048Config())
	os.Exit(m.Run())
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

// send feeds msg to a model and returns the updated game Model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return gm
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	return send(t, m, TickMsg(time.Now()))
}

// playUntilMoved pushes in every direction until one of them changes the board.
func playUntilMoved(t *testing.T, m Model) Model {
	t.Helper()
	for _, k := range []tea.KeyType{tea.KeyLeft, tea.KeyRight, tea.KeyUp, tea.KeyDown} {
		m = send(t, m, tea.KeyMsg{Type: k})
		m = tick(t, m)
		if m.gameState.Moves > 0 {
			return m
		}
	}
	t.Fatal("no direction changed the opening board")
	return m
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestModelPushAndRender(t *testing.T) {
	m := NewModel(t2048.New(), nil, nil, testConfig())
	m.Init()

	m = playUntilMoved(t, m)
	if m.gameState.Moves != 1 {
		t.Errorf("Moves = %d, want 1", m.gameState.Moves)
	}

	view := m.View()
	if !strings.Contains(view, "Score:") {
		t.Errorf("View() missing HUD:\n%s", view)
	}
}

func TestModelRestartRecordsRun(t *testing.T) {
	store := openStore(t)
	m := NewModel(t2048.New(), store, nil, testConfig())
	m.Init()
	m = playUntilMoved(t, m)
	firstRun := m.runID

	m = send(t, m, runeKey('r'))
	m = tick(t, m)

	if m.runID == firstRun {
		t.Error("restart should start a new run id")
	}
	if m.gameState.Moves != 0 {
		t.Errorf("Moves after restart = %d, want 0", m.gameState.Moves)
	}

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("TopScores() returned %d rows, want 1", len(scores))
	}
	got := scores[0]
	if got.RunID != firstRun || got.Moves != 1 || got.GridSize != 4 {
		t.Errorf("saved record = %+v", got)
	}
}

func TestModelQuitSavesOnce(t *testing.T) {
	store := openStore(t)
	m := NewModel(t2048.New(), store, nil, testConfig())
	m.Init()
	m = playUntilMoved(t, m)

	m = send(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quit")
	}
	m.saveScore()

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Errorf("TopScores() returned %d rows, want exactly 1", len(scores))
	}
}

func TestModelUntouchedRunIsNotSaved(t *testing.T) {
	store := openStore(t)
	m := NewModel(t2048.New(), store, nil, testConfig())
	m.Init()
	m = tick(t, m)
	m = send(t, m, runeKey('q'))

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("a run without moves was saved: %+v", scores)
	}
}

func TestModelResizeKeepsBoard(t *testing.T) {
	m := NewModel(t2048.New(), nil, nil, testConfig())
	m.Init()
	m = playUntilMoved(t, m)

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = tick(t, m)
	if m.gameState.Moves != 1 {
		t.Errorf("resize reset the game: Moves = %d", m.gameState.Moves)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBackOnlyWhenPaused(t *testing.T) {
	m := NewModel(t2048.New(), nil, nil, testConfig())
	m.Init()
	m = tick(t, m)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("Back during play should be ignored")
	}
	m = tick(t, m)

	m = send(t, m, runeKey('p'))
	m = tick(t, m)
	if !m.gameState.Paused {
		t.Fatal("p should pause")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("Back while paused should return to the menu")
	}
}
