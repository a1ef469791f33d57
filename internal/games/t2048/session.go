package t2048

import (
	"fmt"
	"math/rand"
	"time"
)

// Status is the session's turn state.
type Status int

const (
	StatusReady Status = iota
	StatusResolving
	StatusAnimating
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusResolving:
		return "resolving"
	case StatusAnimating:
		return "animating"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Config holds the rules a session is played with.
type Config struct {
	Size         int           // grid dimension N
	Target       int           // tile value that wins; ignored when Endless
	Endless      bool          // no win condition
	Spawn4Prob   float64       // probability a spawned tile is a 4
	CellDuration time.Duration // slide time per cell crossed
	InitialTiles int           // tiles dealt at the start of a game
}

// DefaultConfig returns the classic 4×4 rules.
func DefaultConfig() Config {
	return Config{
		Size:         BoardSize,
		Target:       2048,
		Spawn4Prob:   0.1,
		CellDuration: DefaultCellDuration,
		InitialTiles: 2,
	}
}

// Validate reports the first field that cannot produce a playable board.
func (c Config) Validate() error {
	if c.Size < MinGridSize || c.Size > MaxGridSize {
		return invalidConfig("size", "%d outside [%d, %d]", c.Size, MinGridSize, MaxGridSize)
	}
	if !c.Endless {
		if err := validateTarget(c.Target); err != nil {
			return err
		}
	}
	if c.Spawn4Prob < 0 || c.Spawn4Prob > 1 {
		return invalidConfig("spawn4_probability", "%g outside [0, 1]", c.Spawn4Prob)
	}
	if c.CellDuration < 0 {
		return invalidConfig("cell_duration", "%s is negative", c.CellDuration)
	}
	if c.InitialTiles < 1 || c.InitialTiles > c.Size*c.Size {
		return invalidConfig("initial_tiles", "%d outside [1, %d]", c.InitialTiles, c.Size*c.Size)
	}
	return nil
}

func validateTarget(target int) error {
	if target < 4 || !isPowerOfTwo(target) {
		return invalidConfig("win_target", "%d is not a power of two >= 4", target)
	}
	return nil
}

// Session orchestrates turns: push, animate, spawn, then check for a win or
// a loss. It owns the grid; everything it hands out is a copy.
type Session struct {
	cfg  Config
	rng  *rand.Rand
	grid *Grid
	anim *Animator

	status    Status
	nextID    TileID
	score     int
	moves     int
	continued bool
	lastSpawn TileID
}

// NewSession validates cfg and deals the opening tiles.
// A nil rng is seeded from the clock.
func NewSession(cfg Config, rng *rand.Rand) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		cfg:  cfg,
		rng:  rng,
		anim: NewAnimator(cfg.CellDuration),
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset starts a new game, abandoning any animation in flight.
func (s *Session) Reset() error {
	s.anim.Cancel()
	s.grid = NewGrid(s.cfg.Size)
	s.status = StatusReady
	s.nextID = 0
	s.score = 0
	s.moves = 0
	s.continued = false
	s.lastSpawn = 0

	for range s.cfg.InitialTiles {
		if _, err := s.spawn(); err != nil {
			return err
		}
	}
	s.evaluate()
	return nil
}

// Load replaces the board with a copy of g and re-evaluates the status.
func (s *Session) Load(g *Grid) error {
	if s.status == StatusAnimating {
		return illegalTransition("load", s.status)
	}
	if g.Size() != s.cfg.Size {
		return fmt.Errorf("t2048: load %dx%d grid into %dx%d session", g.Size(), g.Size(), s.cfg.Size, s.cfg.Size)
	}
	s.grid = g.Clone()
	s.nextID = s.grid.maxID()
	s.lastSpawn = 0
	s.status = StatusReady
	s.evaluate()
	return nil
}

// Push resolves a move. Unchanged pushes leave the session Ready and
// consume nothing. A changed push commits the new grid immediately and starts
// the slide animation; the spawn happens once Tick sees it finish.
func (s *Session) Push(dir Direction) (MoveOutcome, error) {
	if s.status != StatusReady {
		return MoveOutcome{Direction: dir}, illegalTransition("push "+dir.String(), s.status)
	}

	s.status = StatusResolving
	out := Resolve(s.grid, dir)
	if !out.Changed {
		s.status = StatusReady
		return out, nil
	}

	if err := s.anim.Start(out); err != nil {
		s.status = StatusReady
		return MoveOutcome{Direction: dir}, err
	}
	s.grid = out.Grid
	s.score += out.ScoreGained
	s.moves++
	s.lastSpawn = 0
	s.status = StatusAnimating

	out.Grid = s.grid.Clone()
	return out, nil
}

// Tick advances the animation clock by dt and completes the turn when the
// slide has finished.
func (s *Session) Tick(dt time.Duration) error {
	if s.status != StatusAnimating {
		return nil
	}
	if !s.anim.Advance(dt) {
		return nil
	}

	if _, err := s.spawn(); err != nil {
		s.status = StatusReady
		return err
	}
	s.evaluate()
	return nil
}

// Continue resumes play after a win. The win does not fire again until the
// target is raised.
func (s *Session) Continue() error {
	if s.status != StatusWon {
		return illegalTransition("continue", s.status)
	}
	s.continued = true
	s.status = StatusReady
	s.evaluate()
	return nil
}

// Retarget sets a new win target and re-checks the board against it.
func (s *Session) Retarget(target int) error {
	if s.status != StatusReady && s.status != StatusWon {
		return illegalTransition("retarget", s.status)
	}
	if err := validateTarget(target); err != nil {
		return err
	}
	s.cfg.Target = target
	s.cfg.Endless = false
	s.continued = false
	s.status = StatusReady
	s.evaluate()
	return nil
}

// SetSpawn4Probability changes the chance of spawning a 4.
func (s *Session) SetSpawn4Probability(p float64) error {
	if p < 0 || p > 1 {
		return invalidConfig("spawn4_probability", "%g outside [0, 1]", p)
	}
	s.cfg.Spawn4Prob = p
	return nil
}

// spawn places a 2 (or a 4 with Spawn4Prob) on a uniformly random empty cell.
func (s *Session) spawn() (TileID, error) {
	cells := s.grid.EmptyCells()
	if len(cells) == 0 {
		return 0, fmt.Errorf("%w: spawn on a full grid", ErrIllegalTransition)
	}

	cell := cells[s.rng.Intn(len(cells))]
	value := 2
	if s.rng.Float64() < s.cfg.Spawn4Prob {
		value = 4
	}

	s.nextID++
	s.grid.put(cell, &Tile{ID: s.nextID, Value: value})
	s.lastSpawn = s.nextID
	return s.nextID, nil
}

// evaluate settles a Ready session into Won or Lost when the board says so.
func (s *Session) evaluate() {
	if s.status != StatusReady && s.status != StatusAnimating {
		return
	}
	switch {
	case !s.cfg.Endless && !s.continued && s.grid.MaxValue() >= s.cfg.Target:
		s.status = StatusWon
	case s.grid.IsFull() && !CanMove(s.grid):
		s.status = StatusLost
	default:
		s.status = StatusReady
	}
}

// Status returns the current turn state.
func (s *Session) Status() Status {
	return s.status
}

// AcceptsInput reports whether a push would be resolved right now.
func (s *Session) AcceptsInput() bool {
	return s.status == StatusReady
}

// Grid returns a copy of the committed grid.
func (s *Session) Grid() *Grid {
	return s.grid.Clone()
}

// Views returns the tiles to draw this frame.
func (s *Session) Views() []TileView {
	views := s.anim.Views(s.grid)
	if s.lastSpawn != 0 {
		for i := range views {
			if views[i].ID == s.lastSpawn {
				views[i].Spawned = true
			}
		}
	}
	return views
}

// Config returns the rules currently in force.
func (s *Session) Config() Config {
	return s.cfg
}

// Score returns the sum of all merge results so far.
func (s *Session) Score() int {
	return s.score
}

// Moves returns the number of pushes that changed the board.
func (s *Session) Moves() int {
	return s.moves
}

// MaxTile returns the highest tile value on the board.
func (s *Session) MaxTile() int {
	return s.grid.MaxValue()
}

// Target returns the win target, or 0 in endless play.
func (s *Session) Target() int {
	if s.cfg.Endless {
		return 0
	}
	return s.cfg.Target
}

// Continued reports whether the player chose to keep going after a win.
func (s *Session) Continued() bool {
	return s.continued
}

// LastSpawn returns the id of the most recently spawned tile.
func (s *Session) LastSpawn() TileID {
	return s.lastSpawn
}

// AnimationRemaining returns how long the current slide still runs.
func (s *Session) AnimationRemaining() time.Duration {
	return s.anim.Remaining()
}
