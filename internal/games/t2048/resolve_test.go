package t2048

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineGrid places line on a 4×4 grid so that line[0] sits at the push edge of dir.
func lineGrid(t *testing.T, line [4]int, dir Direction) *Grid {
	t.Helper()
	g := NewGrid(4)
	var id TileID
	for k, v := range line {
		if v == 0 {
			continue
		}
		id++
		c := lineCell(dir, k)
		require.NoError(t, g.Set(c.Col, c.Row, &Tile{ID: id, Value: v}))
	}
	return g
}

// readLine reads back the line laid out by lineGrid.
func readLine(g *Grid, dir Direction) [4]int {
	var out [4]int
	for k := range out {
		c := lineCell(dir, k)
		if tile, _ := g.Get(c.Col, c.Row); tile != nil {
			out[k] = tile.Value
		}
	}
	return out
}

// lineCell maps slot k of the line under test to a cell: row 1 for
// horizontal pushes, column 2 for vertical ones.
func lineCell(dir Direction, k int) Coord {
	if dir == DirLeft || dir == DirRight {
		return lineCoord(4, dir, 1, k)
	}
	return lineCoord(4, dir, 2, k)
}

func TestResolveLine(t *testing.T) {
	tests := []struct {
		name     string
		input    [4]int
		expected [4]int
		score    int
	}{
		{"simple merge", [4]int{2, 2, 0, 0}, [4]int{4, 0, 0, 0}, 4},
		{"merge with trailing tile", [4]int{2, 2, 2, 0}, [4]int{4, 2, 0, 0}, 4},
		{"double merge", [4]int{2, 2, 2, 2}, [4]int{4, 4, 0, 0}, 8},
		{"gap then merge", [4]int{2, 0, 2, 4}, [4]int{4, 4, 0, 0}, 4},
		{"no chain merge", [4]int{2, 2, 4, 0}, [4]int{4, 4, 0, 0}, 4},
		{"two different merges", [4]int{4, 4, 8, 8}, [4]int{8, 16, 0, 0}, 24},
		{"merge across gaps", [4]int{4, 0, 0, 4}, [4]int{8, 0, 0, 0}, 8},
		{"slide only", [4]int{0, 0, 0, 2}, [4]int{2, 0, 0, 0}, 0},
		{"no merge possible", [4]int{2, 4, 8, 16}, [4]int{2, 4, 8, 16}, 0},
		{"empty", [4]int{0, 0, 0, 0}, [4]int{0, 0, 0, 0}, 0},
		{"single tile at edge", [4]int{8, 0, 0, 0}, [4]int{8, 0, 0, 0}, 0},
	}

	for _, dir := range Directions {
		for _, tt := range tests {
			t.Run(dir.String()+"/"+tt.name, func(t *testing.T) {
				g := lineGrid(t, tt.input, dir)
				out := Resolve(g, dir)

				assert.Equal(t, tt.expected, readLine(out.Grid, dir))
				assert.Equal(t, tt.score, out.ScoreGained)
				assert.Equal(t, tt.input != tt.expected, out.Changed)
				// Only the line under test holds tiles.
				assert.Equal(t, g.Sum(), out.Grid.Sum())
			})
		}
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 2, 0, 4},
		{0, 4, 4, 0},
		{8, 0, 0, 8},
		{2, 0, 2, 0},
	})
	before := g.Values()
	beforeTiles := g.Tiles()

	for _, d := range Directions {
		out := Resolve(g, d)
		require.True(t, out.Changed)
		assert.NotSame(t, g, out.Grid)
	}

	assert.Equal(t, before, g.Values())
	assert.Equal(t, beforeTiles, g.Tiles())
}

func TestResolveSurvivorIsNearerPushEdge(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	left := Resolve(g, DirLeft)
	require.Len(t, left.Transitions, 2)
	assert.Equal(t, Transition{TileID: 1, From: Coord{0, 0}, To: Coord{0, 0}, Value: 2, Absorbs: 2}, left.Transitions[0])
	assert.Equal(t, Transition{TileID: 2, From: Coord{1, 0}, To: Coord{0, 0}, Value: 2, MergedInto: 1}, left.Transitions[1])
	survivor, _ := left.Grid.Get(0, 0)
	require.NotNil(t, survivor)
	assert.Equal(t, TileID(1), survivor.ID)
	assert.Equal(t, 4, survivor.Value)
	assert.Equal(t, 1, left.Merges)

	right := Resolve(g, DirRight)
	survivor, _ = right.Grid.Get(3, 0)
	require.NotNil(t, survivor)
	assert.Equal(t, TileID(2), survivor.ID)
	assert.Nil(t, right.Grid.Find(1), "consumed tile is gone")
}

func TestResolveTransitionsForSlides(t *testing.T) {
	g := mustGrid(t, [][]int{
		{0, 0, 0, 2},
		{0, 4, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
	})

	out := Resolve(g, DirLeft)
	require.True(t, out.Changed)
	// The 8 is already at the edge and gets no transition.
	require.Len(t, out.Transitions, 2)

	byID := map[TileID]Transition{}
	for _, tr := range out.Transitions {
		byID[tr.TileID] = tr
	}
	assert.Equal(t, 3, byID[1].Distance())
	assert.Equal(t, Coord{0, 0}, byID[1].To)
	assert.Equal(t, 1, byID[2].Distance())
	assert.False(t, byID[2].Consumed())
}

func TestResolveValueCap(t *testing.T) {
	capped := mustGrid(t, [][]int{
		{MaxTileValue, MaxTileValue},
		{0, 0},
	})
	assert.False(t, Resolve(capped, DirLeft).Changed)

	below := mustGrid(t, [][]int{
		{MaxTileValue / 2, MaxTileValue / 2},
		{0, 0},
	})
	out := Resolve(below, DirLeft)
	require.True(t, out.Changed)
	assert.Equal(t, MaxTileValue, out.Grid.MaxValue())
}

func TestResolvePanics(t *testing.T) {
	g := NewGrid(4)
	assert.Panics(t, func() { Resolve(g, Direction(-1)) })
	assert.Panics(t, func() { Resolve(&Grid{size: 4}, DirLeft) })
	assert.Panics(t, func() { Resolve(nil, DirLeft) })
}

// randomGrid fills roughly half the cells with small powers of two.
func randomGrid(rng *rand.Rand, size int) *Grid {
	g := NewGrid(size)
	var id TileID
	for r := range size {
		for c := range size {
			if rng.Intn(2) == 0 {
				continue
			}
			id++
			g.put(Coord{Col: c, Row: r}, &Tile{ID: id, Value: 2 << rng.Intn(4)})
		}
	}
	return g
}

func TestResolveProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		g := randomGrid(rng, 2+rng.Intn(5))
		for _, d := range Directions {
			first := Resolve(g, d)

			// Value is conserved by a resolve.
			require.Equal(t, g.Sum(), first.Grid.Sum())
			// Changed is exactly "the board looks different".
			require.Equal(t, !g.Equal(first.Grid), first.Changed)

			// A resolved line is compacted, so a second push changes
			// nothing unless it finds a new equal pair.
			second := Resolve(first.Grid, d)
			if second.Merges == 0 {
				require.False(t, second.Changed, "second %s push changed:\n%s", d, first.Grid)
			}

			// Tile identity: every surviving id was on the input grid.
			for _, tile := range first.Grid.Tiles() {
				require.NotNil(t, g.Find(tile.ID))
			}
		}
	}
}

func TestSecondPushMergesNewPairs(t *testing.T) {
	g := lineGrid(t, [4]int{2, 2, 4, 0}, DirLeft)

	first := Resolve(g, DirLeft)
	assert.Equal(t, [4]int{4, 4, 0, 0}, readLine(first.Grid, DirLeft))

	second := Resolve(first.Grid, DirLeft)
	assert.True(t, second.Changed)
	assert.Equal(t, [4]int{8, 0, 0, 0}, readLine(second.Grid, DirLeft))

	third := Resolve(second.Grid, DirLeft)
	assert.False(t, third.Changed)
}

func TestCanMove(t *testing.T) {
	locked := mustGrid(t, [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})
	assert.False(t, CanMove(locked))

	fullButMergeable := mustGrid(t, [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 4},
	})
	assert.True(t, CanMove(fullButMergeable))

	assert.False(t, CanMove(NewGrid(3)))
	assert.True(t, CanMove(mustGrid(t, [][]int{{0, 2}, {0, 0}})))
}
