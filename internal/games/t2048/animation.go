package t2048

import (
	"fmt"
	"time"
)

// DefaultCellDuration is the time a sliding tile takes to cross one cell.
const DefaultCellDuration = 100 * time.Millisecond

// AnimState is the animator's state.
type AnimState int

const (
	AnimIdle AnimState = iota
	AnimAnimating
)

func (s AnimState) String() string {
	if s == AnimAnimating {
		return "animating"
	}
	return "idle"
}

// TileView is a tile as it should be drawn this frame.
// X and Y are in cells and may be fractional while a tile slides.
type TileView struct {
	ID      TileID
	Value   int
	X, Y    float64
	Merging bool // part of a merge that has not landed yet
	Spawned bool // placed by the most recent spawn
}

// track is a transition scheduled on the animation clock.
type track struct {
	Transition
	duration time.Duration
}

// Animator plays a resolved MoveOutcome as timed linear motion.
// Every track gets distance × cellDuration, so all tiles move at the same
// speed regardless of how far they travel.
type Animator struct {
	cellDuration time.Duration
	state        AnimState
	elapsed      time.Duration
	total        time.Duration
	tracks       []track
}

// NewAnimator creates an idle animator. A zero cellDuration makes every
// animation finish on the next Advance.
func NewAnimator(cellDuration time.Duration) *Animator {
	if cellDuration < 0 {
		cellDuration = 0
	}
	return &Animator{cellDuration: cellDuration}
}

// State returns the current state.
func (a *Animator) State() AnimState {
	return a.state
}

// Animating reports whether a move is in flight.
func (a *Animator) Animating() bool {
	return a.state == AnimAnimating
}

// CellDuration returns the time to cross one cell.
func (a *Animator) CellDuration() time.Duration {
	return a.cellDuration
}

// Start begins animating o. Unchanged outcomes are ignored.
func (a *Animator) Start(o MoveOutcome) error {
	if a.state == AnimAnimating {
		return fmt.Errorf("%w: animation already in flight", ErrIllegalTransition)
	}
	if !o.Changed {
		return nil
	}

	a.tracks = a.tracks[:0]
	a.total = 0
	// Consumed tiles first so the survivor of a merge is drawn on top.
	for _, consumedPass := range []bool{true, false} {
		for _, tr := range o.Transitions {
			if tr.Consumed() != consumedPass {
				continue
			}
			d := time.Duration(tr.Distance()) * a.cellDuration
			a.tracks = append(a.tracks, track{Transition: tr, duration: d})
			a.total = max(a.total, d)
		}
	}
	a.elapsed = 0
	a.state = AnimAnimating
	return nil
}

// Advance moves the animation clock forward by dt.
// It returns true exactly once, on the call that completes the animation.
func (a *Animator) Advance(dt time.Duration) bool {
	if a.state != AnimAnimating {
		return false
	}
	if dt > 0 {
		a.elapsed += dt
	}
	if a.elapsed >= a.total {
		a.finish()
		return true
	}
	return false
}

// Remaining returns the time left before the animation completes.
func (a *Animator) Remaining() time.Duration {
	if a.state != AnimAnimating {
		return 0
	}
	return a.total - a.elapsed
}

// Duration returns the total length of the current animation.
func (a *Animator) Duration() time.Duration {
	return a.total
}

// Cancel abandons the current animation. Only a session reset calls it.
func (a *Animator) Cancel() {
	a.finish()
}

func (a *Animator) finish() {
	a.state = AnimIdle
	a.elapsed = 0
	a.total = 0
	a.tracks = a.tracks[:0]
}

// progress returns how far along its own track a tile is, in [0, 1].
func (a *Animator) progress(t track) float64 {
	if t.duration <= 0 || a.elapsed >= t.duration {
		return 1
	}
	return float64(a.elapsed) / float64(t.duration)
}

// Views returns what to draw for g this frame. While idle it mirrors g;
// while animating, tiles with a transition are interpolated between their
// From and To cells and keep their pre-push value.
func (a *Animator) Views(g *Grid) []TileView {
	views := make([]TileView, 0, len(g.cells)+1)

	moving := make(map[TileID]bool, len(a.tracks))
	for _, t := range a.tracks {
		moving[t.TileID] = true
	}

	for _, t := range g.cells {
		if t == nil || moving[t.ID] {
			continue
		}
		views = append(views, TileView{
			ID:    t.ID,
			Value: t.Value,
			X:     float64(t.Pos.Col),
			Y:     float64(t.Pos.Row),
		})
	}

	for _, t := range a.tracks {
		p := a.progress(t)
		views = append(views, TileView{
			ID:      t.TileID,
			Value:   t.Value,
			X:       lerp(float64(t.From.Col), float64(t.To.Col), p),
			Y:       lerp(float64(t.From.Row), float64(t.To.Row), p),
			Merging: t.Consumed() || t.Absorbs != 0,
		})
	}
	return views
}

func lerp(from, to, p float64) float64 {
	return from + (to-from)*p
}
