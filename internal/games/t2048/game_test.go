package t2048

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
)

func TestMain(m *testing.M) {
	// Keep tests independent of any config in the developer's home directory.
	UseConfig(config.DefaultT2048Config())
	os.Exit(m.Run())
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// stepUntil steps with empty input until cond holds, failing after limit ticks.
func stepUntil(t *testing.T, g *Game, limit int, cond func() bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if cond() {
			return
		}
		g.Step(frame())
	}
	if !cond() {
		t.Fatalf("condition not reached after %d ticks; snapshot %+v", limit, g.Snapshot())
	}
}

func loadRows(t *testing.T, g *Game, rows [][]int) {
	t.Helper()
	grid, err := GridFromValues(rows)
	if err != nil {
		t.Fatalf("GridFromValues() failed: %v", err)
	}
	if err := g.LoadGrid(grid); err != nil {
		t.Fatalf("LoadGrid() failed: %v", err)
	}
}

func TestRegisteredModes(t *testing.T) {
	tests := []struct {
		game  *Game
		id    string
		title string
	}{
		{New(), "2048", "2048"},
		{NewCampaign(), "2048_campaign", "2048 (Campaign)"},
		{NewEndless(), "2048_endless", "2048 (Endless)"},
	}
	for _, tt := range tests {
		if tt.game.ID() != tt.id {
			t.Errorf("ID() = %s, want %s", tt.game.ID(), tt.id)
		}
		if tt.game.Title() != tt.title {
			t.Errorf("Title() = %s, want %s", tt.game.Title(), tt.title)
		}
	}

	if NewMode("sideways") != nil {
		t.Error("NewMode(unknown) should be nil")
	}
	if g := NewMode(ModeEndless); g == nil || g.Mode() != ModeEndless {
		t.Errorf("NewMode(endless) = %v", g)
	}
}

func TestDeterministicSpawn(t *testing.T) {
	// Test that the same seed produces the same sequence of spawns
	g1 := New()
	g1.Reset(testRuntime())

	g2 := New()
	g2.Reset(testRuntime())

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !equalBoards(s1.Board, s2.Board) {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v", s1.Board, s2.Board)
	}

	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight} {
		g1.Step(frame(a))
		g2.Step(frame(a))
		for i := 0; i < 60; i++ {
			g1.Step(frame())
			g2.Step(frame())
		}
	}
	if !equalBoards(g1.Snapshot().Board, g2.Snapshot().Board) {
		t.Error("Same seed and input should keep boards identical")
	}
}

func equalBoards(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				return false
			}
		}
	}
	return true
}

func TestMoveAnimatesThenSpawns(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	loadRows(t, g, [][]int{
		{0, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := g.Step(frame(core.ActionLeft))
	if !res.Moved {
		t.Fatal("Step(Left) should move")
	}
	if g.Snapshot().State != StateAnimating {
		t.Fatalf("State = %s, want animating", g.Snapshot().State)
	}

	// Input during the slide is dropped.
	if res := g.Step(frame(core.ActionRight)); res.Moved {
		t.Error("push during animation should be dropped")
	}

	done := false
	for i := 0; i < 60 && !done; i++ {
		done = g.Step(frame()).TurnDone
	}
	if !done {
		t.Fatal("turn never finished")
	}

	snap := g.Snapshot()
	if snap.Board[0][0] != 2 {
		t.Errorf("Board[0][0] = %d, want 2", snap.Board[0][0])
	}
	tiles := 0
	for _, row := range snap.Board {
		for _, v := range row {
			if v != 0 {
				tiles++
			}
		}
	}
	if tiles != 2 {
		t.Errorf("tiles after turn = %d, want 2", tiles)
	}
	if snap.Moves != 1 {
		t.Errorf("Moves = %d, want 1", snap.Moves)
	}
}

func TestNoChangeNoSpawn(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	loadRows(t, g, [][]int{
		{2, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := g.Step(frame(core.ActionLeft))
	if res.Moved {
		t.Error("Moved should be false for no-op push")
	}
	for i := 0; i < 30; i++ {
		g.Step(frame())
	}
	if got := g.Snapshot().Board; !equalBoards(got, [][]int{{2, 4, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}) {
		t.Errorf("board changed after no-op push: %v", got)
	}
}

func TestGameOver(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	loadRows(t, g, [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})

	state := g.Step(frame(core.ActionLeft)).State
	if !state.GameOver {
		t.Error("locked board should be game over")
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("Snapshot State = %s, want game_over", g.Snapshot().State)
	}
}

func TestClassicWinAndContinue(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	loadRows(t, g, [][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(frame(core.ActionLeft))
	stepUntil(t, g, 60, func() bool { return g.State().Won })

	if g.State().GameOver {
		t.Error("a classic win is not game over")
	}

	// Pushes are ignored behind the banner.
	if res := g.Step(frame(core.ActionRight)); res.Moved {
		t.Error("push should be ignored while the win banner is up")
	}

	g.Step(frame(core.ActionContinue))
	if g.State().Won {
		t.Error("Continue should dismiss the win banner")
	}
	if !g.Session().Continued() {
		t.Error("session should be marked continued")
	}
	if res := g.Step(frame(core.ActionRight)); !res.Moved {
		t.Error("push should work after Continue")
	}
}

func TestCampaignProgression(t *testing.T) {
	g := NewCampaign()
	g.Reset(testRuntime())

	snap := g.Snapshot()
	if snap.Level != 1 || snap.Target != 128 {
		t.Fatalf("start = level %d target %d, want level 1 target 128", snap.Level, snap.Target)
	}

	loadRows(t, g, [][]int{
		{64, 64, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.Step(frame(core.ActionLeft))
	stepUntil(t, g, 60, func() bool { return g.Snapshot().State == StateLevelCleared })

	if !g.State().Paused {
		t.Error("level clear banner should pause the game")
	}

	stepUntil(t, g, levelClearDuration+5, func() bool { return g.Snapshot().Level == 2 })

	snap = g.Snapshot()
	if snap.Target != 256 {
		t.Errorf("Target = %d, want 256", snap.Target)
	}
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want playing", snap.State)
	}
	if snap.MaxTile != 128 {
		t.Errorf("board should carry over, MaxTile = %d", snap.MaxTile)
	}
}

func TestCampaignStartLevelAndCompletion(t *testing.T) {
	g := NewCampaign()
	g.StartAt(LevelCount())
	g.Reset(testRuntime())

	if lvl := g.Snapshot().Level; lvl != LevelCount() {
		t.Fatalf("Level = %d, want %d", lvl, LevelCount())
	}

	last := GetLevel(LevelCount() - 1)
	if g.Snapshot().Target != last.Target {
		t.Fatalf("Target = %d, want %d", g.Snapshot().Target, last.Target)
	}

	half := last.Target / 2
	loadRows(t, g, [][]int{
		{half, half, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.Step(frame(core.ActionLeft))
	stepUntil(t, g, 60+levelClearDuration+5, func() bool { return g.Snapshot().State == StateCampaignComplete })

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Errorf("campaign complete state = %+v, want GameOver and Won", st)
	}
}

func TestStartAtSurvivesRestart(t *testing.T) {
	g := NewCampaign()
	g.StartAt(3)
	for i := 0; i < 2; i++ {
		g.Reset(testRuntime())
		if lvl := g.Snapshot().Level; lvl != 3 {
			t.Fatalf("reset %d: Level = %d, want 3", i, lvl)
		}
	}

	other := NewCampaign()
	other.Reset(testRuntime())
	if lvl := other.Snapshot().Level; lvl != 1 {
		t.Errorf("another game starts at level %d, want 1", lvl)
	}
}

func TestConcurrentCampaignGames(t *testing.T) {
	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				g := NewCampaign()
				g.StartAt(1 + (w+i)%3)
				rc := testRuntime()
				rc.Seed = int64(w*100 + i)
				g.Reset(rc)
				g.Step(frame(core.ActionLeft))
				g.Step(frame())
				g.Render(core.NewScreen(rc.ScreenW, rc.ScreenH))
				if lvl := g.Snapshot().Level; lvl != 1+(w+i)%3 {
					t.Errorf("worker %d game %d: Level = %d", w, i, lvl)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestGameKeepsCampaignAcrossUseConfig(t *testing.T) {
	g := NewCampaign()
	g.Reset(testRuntime())

	short := config.DefaultT2048Config()
	short.Campaign.Levels = short.Campaign.Levels[:2]
	UseConfig(short)
	defer UseConfig(config.DefaultT2048Config())

	if LevelCount() != 2 {
		t.Fatalf("LevelCount() = %d, want 2", LevelCount())
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Level 1/10") {
		t.Errorf("running game should keep its own campaign:\n%s", screen.String())
	}
}

func TestResetFallsBackOnBrokenConfig(t *testing.T) {
	broken := config.DefaultT2048Config()
	broken.Board.Size = 99
	UseConfig(broken)
	defer UseConfig(config.DefaultT2048Config())

	g := New()
	g.Reset(testRuntime())
	if g.Session() == nil {
		t.Fatal("Reset left no session")
	}
	if g.GridSize() != DefaultConfig().Size {
		t.Errorf("GridSize() = %d, want the default %d", g.GridSize(), DefaultConfig().Size)
	}
}

func TestEndlessModeNoWin(t *testing.T) {
	g := NewEndless()
	g.Reset(testRuntime())
	loadRows(t, g, [][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(frame(core.ActionLeft))
	stepUntil(t, g, 60, func() bool { return g.Snapshot().State == StatePlaying })

	snap := g.Snapshot()
	if snap.MaxTile != 2048 {
		t.Errorf("MaxTile = %d, want 2048", snap.MaxTile)
	}
	if snap.Target != 0 {
		t.Errorf("endless Target = %d, want 0", snap.Target)
	}
	if g.State().Won {
		t.Error("endless mode should never win")
	}
}

func TestPauseToggle(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("Pause should pause")
	}
	before := g.Snapshot().Board
	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown} {
		if g.Step(frame(a)).Moved {
			t.Error("paused game should not move")
		}
	}
	if !equalBoards(before, g.Snapshot().Board) {
		t.Error("board changed while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second Pause should resume")
	}
}

func TestScreenTooSmall(t *testing.T) {
	rc := testRuntime()
	rc.ScreenW = 20
	rc.ScreenH = 10

	g := New()
	g.Reset(rc)

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %s, want paused_small_window", g.Snapshot().State)
	}
	if !g.State().Paused {
		t.Error("too-small window should report paused")
	}

	screen := core.NewScreen(rc.ScreenW, rc.ScreenH)
	g.Render(screen)
	if row := screen.Row(rc.ScreenH / 2); row != "  Window too small  " {
		t.Errorf("Row = %q", row)
	}
}

func TestResizeKeepsBoard(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	before := g.Snapshot().Board

	g.Resize(20, 10)
	if !g.State().Paused {
		t.Error("shrinking below the board should pause")
	}
	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("growing back should resume")
	}

	after := g.Snapshot().Board
	for r := range before {
		for c := range before[r] {
			if before[r][c] != after[r][c] {
				t.Fatalf("board changed at (%d,%d): %d -> %d", c, r, before[r][c], after[r][c])
			}
		}
	}
	if g.GridSize() != 4 {
		t.Errorf("GridSize() = %d, want 4", g.GridSize())
	}
}

func TestUseConfigSize(t *testing.T) {
	cfg := config.DefaultT2048Config()
	cfg.Board.Size = 5
	UseConfig(cfg)
	defer UseConfig(config.DefaultT2048Config())

	g := New()
	g.Reset(testRuntime())
	if n := len(g.Snapshot().Board); n != 5 {
		t.Errorf("board size = %d, want 5", n)
	}
}

func TestLevels(t *testing.T) {
	if LevelCount() != 10 {
		t.Errorf("LevelCount() = %d, want 10", LevelCount())
	}

	names := LevelNames()
	if len(names) != 10 || names[0] != "Warm-up" {
		t.Errorf("LevelNames() = %v", names)
	}

	targets := LevelTargets()
	for i := 1; i < len(targets); i++ {
		if targets[i] <= targets[i-1] {
			t.Errorf("level %d target %d does not exceed %d", i+1, targets[i], targets[i-1])
		}
	}

	if GetLevel(-1) != nil || GetLevel(LevelCount()) != nil {
		t.Error("GetLevel out of range should be nil")
	}
	if lvl := GetLevel(0); lvl.ID != 1 {
		t.Errorf("first level ID = %d, want 1", lvl.ID)
	}
}
