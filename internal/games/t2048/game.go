package t2048

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// levelClearDuration is how many ticks the level-clear banner stays up.
const levelClearDuration = 120

// Game adapts a Session to the platform's fixed-tick game loop.
type Game struct {
	mode    Mode
	cfg     config.T2048Config
	levels  []Level // Campaign this game plays, fixed at Reset
	session *Session
	tick    uint64
	tickDur time.Duration

	levelIndex int // Current campaign level (0-indexed)
	startLevel int // 1-based level every Reset starts from; 0 is the first

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	paused          bool
	tooSmall        bool
	levelCleared    bool
	levelClearTicks int
	campaignDone    bool
}

// configMu guards configOverride and the package campaign. Games copy both
// at Reset, so sessions never share mutable state.
var (
	configMu       sync.RWMutex
	configOverride *config.T2048Config
)

// UseConfig makes every new game use cfg instead of loading from disk.
// The CLI calls it after applying flag overrides.
func UseConfig(cfg config.T2048Config) {
	configMu.Lock()
	defer configMu.Unlock()
	configOverride = &cfg
	levels = levelsFrom(cfg)
}

// New creates a new classic game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewCampaign creates a new campaign game.
func NewCampaign() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewMode creates a game for a mode name; unknown names yield nil.
func NewMode(m Mode) *Game {
	switch m {
	case ModeClassic:
		return New()
	case ModeCampaign:
		return NewCampaign()
	case ModeEndless:
		return NewEndless()
	}
	return nil
}

func init() {
	registry.Register("2048", func() registry.Game {
		return New()
	})
	registry.Register("2048_campaign", func() registry.Game {
		return NewCampaign()
	})
	registry.Register("2048_endless", func() registry.Game {
		return NewEndless()
	})
}

// StartAt pins the campaign level (1-based) this game starts from on every
// Reset. Other modes ignore it.
func (g *Game) StartAt(level int) {
	g.startLevel = level
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.mode {
	case ModeCampaign:
		return "2048_campaign"
	case ModeEndless:
		return "2048_endless"
	}
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeCampaign:
		return "2048 (Campaign)"
	case ModeEndless:
		return "2048 (Endless)"
	}
	return "2048"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Session exposes the underlying session, mainly for tests and tools.
func (g *Game) Session() *Session {
	return g.session
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.cfg = loadConfig()
	g.levels = levelsFrom(g.cfg)

	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.paused = false
	g.levelCleared = false
	g.levelClearTicks = 0
	g.campaignDone = false

	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.tickDur = time.Second / time.Duration(tickRate)

	// Apply selected start level (campaign only)
	g.levelIndex = 0
	if g.mode == ModeCampaign {
		if g.startLevel > 0 && g.startLevel <= len(g.levels) {
			g.levelIndex = g.startLevel - 1
		}
	}

	rng := rand.New(rand.NewSource(rc.Seed))
	s, err := NewSession(g.sessionConfig(), rng)
	if err != nil {
		// The config was validated on load; only a broken override lands here.
		fallback := DefaultConfig()
		fallback.Endless = g.mode == ModeEndless
		var fbErr error
		if s, fbErr = NewSession(fallback, rng); fbErr != nil {
			panic(fmt.Sprintf("t2048: default session rejected: %v", fbErr))
		}
	}
	g.session = s

	g.checkScreenSize()
}

// loadConfig returns the override if set, otherwise the file config.
func loadConfig() config.T2048Config {
	configMu.RLock()
	override := configOverride
	configMu.RUnlock()
	if override != nil {
		return *override
	}
	cfg, err := config.LoadT2048("")
	if err != nil {
		cfg = config.DefaultT2048Config()
	}
	return cfg
}

// sessionConfig translates the file config and the mode into engine rules.
func (g *Game) sessionConfig() Config {
	c := Config{
		Size:         g.cfg.Board.Size,
		Target:       g.cfg.Rules.WinTarget,
		Endless:      g.cfg.Rules.Endless,
		Spawn4Prob:   g.cfg.Rules.Spawn4Probability,
		CellDuration: g.cfg.Animation.CellDuration,
		InitialTiles: g.cfg.Rules.InitialTiles,
	}
	switch g.mode {
	case ModeEndless:
		c.Endless = true
	case ModeCampaign:
		lvl := g.level(g.levelIndex)
		c.Endless = false
		c.Target = lvl.Target
		c.Spawn4Prob = lvl.Spawn4
	}
	return c
}

// level returns the campaign level at index (0-based), clamped to the list.
// levelsFrom never returns an empty campaign.
func (g *Game) level(index int) Level {
	return g.levels[min(max(index, 0), len(g.levels)-1)]
}

// checkScreenSize checks if the screen is large enough for the board and HUD.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardDims(g.session.Config().Size)
	minW := boardW + 2
	minH := hudHeight + 1 + boardH + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.session != nil {
		g.checkScreenSize()
	}
}

// GridSize returns the board dimension in play.
func (g *Game) GridSize() int {
	if g.session == nil {
		return 0
	}
	return g.session.Config().Size
}

// LoadGrid replaces the board, keeping score and mode. Used by tests and
// by tools that replay a position.
func (g *Game) LoadGrid(grid *Grid) error {
	return g.session.Load(grid)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.campaignDone {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Handle level cleared banner
	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= levelClearDuration {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	var result core.StepResult

	switch g.session.Status() {
	case StatusWon:
		if g.mode == ModeClassic && in.Has(core.ActionContinue) {
			//nolint:errcheck // Status was checked above
			g.session.Continue()
		}
	case StatusReady:
		if a, ok := in.FirstDirection(); ok {
			if out, err := g.session.Push(actionDirection(a)); err == nil {
				result.Moved = out.Changed
			}
		}
	}

	wasAnimating := g.session.Status() == StatusAnimating
	//nolint:errcheck // Spawn cannot fail after a changed push; the session stays Ready if it does
	g.session.Tick(g.tickDur)
	result.TurnDone = wasAnimating && g.session.Status() != StatusAnimating

	if g.mode == ModeCampaign && g.session.Status() == StatusWon {
		g.levelCleared = true
		g.levelClearTicks = 0
	}

	result.State = g.State()
	return result
}

// actionDirection maps a directional action to a push direction.
func actionDirection(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionDown:
		return DirDown
	case core.ActionLeft:
		return DirLeft
	default:
		return DirRight
	}
}

// advanceLevel moves to the next level, keeping the board and score.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= len(g.levels)-1 {
		g.campaignDone = true
		return
	}

	g.levelIndex++
	lvl := g.level(g.levelIndex)
	//nolint:errcheck // Level targets and probabilities are validated with the config
	g.session.SetSpawn4Probability(lvl.Spawn4)
	if err := g.session.Retarget(lvl.Target); err != nil {
		g.campaignDone = true
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.Status()
	return core.GameState{
		Score:    g.session.Score(),
		MaxTile:  g.session.MaxTile(),
		Moves:    g.session.Moves(),
		GameOver: st == StatusLost || g.campaignDone,
		Won:      (g.mode == ModeClassic && st == StatusWon) || g.campaignDone,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move  P: Pause  R: Restart  Q: Quit"
}
