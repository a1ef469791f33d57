package t2048

import (
	"fmt"
	"strings"
)

// BoardSize is the default grid dimension.
const BoardSize = 4

// Grid size limits accepted by Config.Validate.
const (
	MinGridSize = 2
	MaxGridSize = 8
)

// Coord addresses a grid cell. Row 0 is the top row, Col 0 the left column.
type Coord struct {
	Col, Row int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// chebyshev returns the number of cells between a and b along the longer axis.
func chebyshev(a, b Coord) int {
	return max(abs(a.Col-b.Col), abs(a.Row-b.Row))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Grid is an N×N board of optional tiles. It is the single source of truth
// for where every tile is.
type Grid struct {
	size  int
	cells []*Tile // row-major, len == size*size
}

// NewGrid creates an empty size×size grid. It panics if size < 1.
func NewGrid(size int) *Grid {
	if size < 1 {
		panic(fmt.Sprintf("t2048: grid size %d must be positive", size))
	}
	return &Grid{
		size:  size,
		cells: make([]*Tile, size*size),
	}
}

// Size returns the grid dimension N.
func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && col < g.size && row >= 0 && row < g.size
}

func (g *Grid) index(col, row int) int {
	return row*g.size + col
}

// Get returns the tile at (col, row), or nil for an empty cell.
func (g *Grid) Get(col, row int) (*Tile, error) {
	if !g.inBounds(col, row) {
		return nil, &OutOfBoundsError{Col: col, Row: row, Size: g.size}
	}
	return g.cells[g.index(col, row)], nil
}

// Set places t at (col, row) and updates t.Pos. A nil tile clears the cell.
func (g *Grid) Set(col, row int, t *Tile) error {
	if !g.inBounds(col, row) {
		return &OutOfBoundsError{Col: col, Row: row, Size: g.size}
	}
	if t != nil {
		t.Pos = Coord{Col: col, Row: row}
	}
	g.cells[g.index(col, row)] = t
	return nil
}

// at is the unchecked accessor used by code that already iterates in bounds.
func (g *Grid) at(c Coord) *Tile {
	return g.cells[g.index(c.Col, c.Row)]
}

func (g *Grid) put(c Coord, t *Tile) {
	if t != nil {
		t.Pos = c
	}
	g.cells[g.index(c.Col, c.Row)] = t
}

// IsFull reports whether every cell holds a tile.
func (g *Grid) IsFull() bool {
	for _, t := range g.cells {
		if t == nil {
			return false
		}
	}
	return true
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func (g *Grid) EmptyCells() []Coord {
	var cells []Coord
	for i, t := range g.cells {
		if t == nil {
			cells = append(cells, Coord{Col: i % g.size, Row: i / g.size})
		}
	}
	return cells
}

// Clone returns a deep copy; tiles in the copy are distinct values.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.size)
	for i, t := range g.cells {
		if t != nil {
			cp := *t
			c.cells[i] = &cp
		}
	}
	return c
}

// Tiles returns value copies of every tile in row-major order.
func (g *Grid) Tiles() []Tile {
	tiles := make([]Tile, 0, len(g.cells))
	for _, t := range g.cells {
		if t != nil {
			tiles = append(tiles, *t)
		}
	}
	return tiles
}

// Find returns the tile with the given id, or nil.
func (g *Grid) Find(id TileID) *Tile {
	for _, t := range g.cells {
		if t != nil && t.ID == id {
			return t
		}
	}
	return nil
}

// Sum returns the total value of all tiles.
func (g *Grid) Sum() int {
	sum := 0
	for _, t := range g.cells {
		if t != nil {
			sum += t.Value
		}
	}
	return sum
}

// MaxValue returns the highest tile value, or 0 for an empty grid.
func (g *Grid) MaxValue() int {
	maxVal := 0
	for _, t := range g.cells {
		if t != nil && t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// Equal reports whether both grids hold the same values in the same cells.
// Tile identities are ignored.
func (g *Grid) Equal(other *Grid) bool {
	if g.size != other.size {
		return false
	}
	for i, t := range g.cells {
		o := other.cells[i]
		switch {
		case t == nil && o == nil:
		case t == nil || o == nil:
			return false
		case t.Value != o.Value:
			return false
		}
	}
	return true
}

// Values returns the grid as rows of values, 0 for empty cells.
func (g *Grid) Values() [][]int {
	rows := make([][]int, g.size)
	for r := range g.size {
		rows[r] = make([]int, g.size)
		for c := range g.size {
			if t := g.cells[g.index(c, r)]; t != nil {
				rows[r][c] = t.Value
			}
		}
	}
	return rows
}

// String renders the grid one row per line, empty cells as ".".
func (g *Grid) String() string {
	var sb strings.Builder
	for r := range g.size {
		for c := range g.size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if t := g.cells[g.index(c, r)]; t != nil {
				fmt.Fprintf(&sb, "%5d", t.Value)
			} else {
				sb.WriteString("    .")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// checkShape panics if the grid's storage disagrees with its size.
func (g *Grid) checkShape() {
	if g == nil || g.size < 1 || len(g.cells) != g.size*g.size {
		panic("t2048: malformed grid")
	}
}

// GridFromValues builds a grid from rows of values (0 = empty cell).
// Tiles get IDs 1, 2, ... in row-major order.
func GridFromValues(rows [][]int) (*Grid, error) {
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("t2048: empty grid literal")
	}
	g := NewGrid(size)
	var id TileID
	for r, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("t2048: row %d has %d cells, want %d", r, len(row), size)
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			if !isPowerOfTwo(v) || v < 2 {
				return nil, fmt.Errorf("t2048: value %d at (%d,%d) is not a power of two", v, c, r)
			}
			id++
			g.put(Coord{Col: c, Row: r}, &Tile{ID: id, Value: v})
		}
	}
	return g, nil
}

// maxID returns the highest tile id on the grid.
func (g *Grid) maxID() TileID {
	var id TileID
	for _, t := range g.cells {
		if t != nil && t.ID > id {
			id = t.ID
		}
	}
	return id
}
