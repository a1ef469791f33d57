package t2048

// TileID identifies a tile for its whole life. Zero means "no tile".
type TileID uint64

// MaxTileValue caps tile values; a merge that would exceed it is skipped.
const MaxTileValue = 1 << 62

// Tile is a numbered tile on the grid.
// The ID survives slides, Value only ever doubles, Pos mirrors the grid cell.
type Tile struct {
	ID    TileID
	Value int
	Pos   Coord
}

// canMergeWith reports whether t and other may collapse into one tile.
func (t *Tile) canMergeWith(other *Tile) bool {
	return t.Value == other.Value && t.Value <= MaxTileValue/2
}

// isPowerOfTwo reports whether v is a positive power of two.
func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}
