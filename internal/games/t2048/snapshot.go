package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying          GameStateType = "playing"
	StateAnimating        GameStateType = "animating"
	StateLevelCleared     GameStateType = "level_cleared"
	StateGameOver         GameStateType = "game_over"
	StateWin              GameStateType = "win"
	StateCampaignComplete GameStateType = "campaign_complete"
	StatePaused           GameStateType = "paused"
	StatePausedSmall      GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Mode    string // "classic", "campaign" or "endless"
	Level   int    // Current level (1-indexed), 0 outside the campaign
	Target  int    // Current target tile value, 0 when endless
	Score   int
	Moves   int
	Board   [][]int // Committed values, 0 for empty cells
	MaxTile int
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.campaignDone:
		state = StateCampaignComplete
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	case g.session.Status() == StatusLost:
		state = StateGameOver
	case g.session.Status() == StatusWon:
		state = StateWin
	case g.session.Status() == StatusAnimating:
		state = StateAnimating
	}

	level := 0
	if g.mode == ModeCampaign {
		level = g.levelIndex + 1
	}

	grid := g.session.Grid()
	return Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Level:   level,
		Target:  g.session.Target(),
		Score:   g.session.Score(),
		Moves:   g.session.Moves(),
		Board:   grid.Values(),
		MaxTile: grid.MaxValue(),
		State:   state,
	}
}
