package t2048

import "fmt"

// Transition describes what happened to one tile during a push.
type Transition struct {
	TileID TileID
	From   Coord
	To     Coord
	Value  int // value before the push, drawn while the tile slides

	// MergedInto is set on the consumed tile of a merge; the tile no longer
	// exists once the push is committed.
	MergedInto TileID
	// Absorbs is set on the surviving tile of a merge.
	Absorbs TileID
}

// Distance returns the number of cells crossed.
func (t Transition) Distance() int {
	return chebyshev(t.From, t.To)
}

// Consumed reports whether the tile was destroyed by a merge.
func (t Transition) Consumed() bool {
	return t.MergedInto != 0
}

// MoveOutcome is the fully resolved result of a push.
type MoveOutcome struct {
	Direction   Direction
	Changed     bool
	Grid        *Grid
	Transitions []Transition
	ScoreGained int
	Merges      int
}

// slot is one compacted position in a line while it is being resolved.
type slot struct {
	tile     *Tile
	from     Coord
	value    int
	absorbed *Tile
	absFrom  Coord
	absValue int
}

// Resolve computes the outcome of pushing every tile of g towards dir.
// g is not modified; the outcome carries a fresh grid. A malformed grid or
// an invalid direction panics, since neither can come from player input.
func Resolve(g *Grid, dir Direction) MoveOutcome {
	g.checkShape()
	if !dir.Valid() {
		panic(fmt.Sprintf("t2048: invalid direction %d", int(dir)))
	}

	next := g.Clone()
	out := MoveOutcome{Direction: dir, Grid: next}
	for line := range next.size {
		resolveLine(next, dir, line, &out)
	}
	out.Changed = len(out.Transitions) > 0
	return out
}

// lineCoord maps slot k of a line (k == 0 at the push edge) to a cell.
func lineCoord(size int, dir Direction, line, k int) Coord {
	switch dir {
	case DirLeft:
		return Coord{Col: k, Row: line}
	case DirRight:
		return Coord{Col: size - 1 - k, Row: line}
	case DirUp:
		return Coord{Col: line, Row: k}
	default:
		return Coord{Col: line, Row: size - 1 - k}
	}
}

// resolveLine compacts and merges one line in place on g.
// Cells are visited push-edge first; that order decides which pair merges.
func resolveLine(g *Grid, dir Direction, line int, out *MoveOutcome) {
	var tiles []*Tile
	for k := range g.size {
		c := lineCoord(g.size, dir, line, k)
		if t := g.at(c); t != nil {
			tiles = append(tiles, t)
			g.put(c, nil)
		}
	}
	if len(tiles) == 0 {
		return
	}

	slots := make([]slot, 0, len(tiles))
	for _, t := range tiles {
		// A slot that already absorbed a tile never merges again this push.
		if w := len(slots); w > 0 && slots[w-1].absorbed == nil && slots[w-1].tile.canMergeWith(t) {
			s := &slots[w-1]
			s.absorbed = t
			s.absFrom = t.Pos
			s.absValue = t.Value
			s.tile.Value *= 2
			out.ScoreGained += s.tile.Value
			out.Merges++
			continue
		}
		slots = append(slots, slot{tile: t, from: t.Pos, value: t.Value})
	}

	for k, s := range slots {
		to := lineCoord(g.size, dir, line, k)
		g.put(to, s.tile)

		if s.from != to || s.absorbed != nil {
			tr := Transition{TileID: s.tile.ID, From: s.from, To: to, Value: s.value}
			if s.absorbed != nil {
				tr.Absorbs = s.absorbed.ID
			}
			out.Transitions = append(out.Transitions, tr)
		}
		if s.absorbed != nil {
			out.Transitions = append(out.Transitions, Transition{
				TileID:     s.absorbed.ID,
				From:       s.absFrom,
				To:         to,
				Value:      s.absValue,
				MergedInto: s.tile.ID,
			})
		}
	}
}

// CanMove reports whether any direction would change g.
func CanMove(g *Grid) bool {
	for _, d := range Directions {
		if Resolve(g, d).Changed {
			return true
		}
	}
	return false
}
