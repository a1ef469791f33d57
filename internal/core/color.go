package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to a terminal style.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorGray
	ColorBoard // grid lines
	ColorText  // HUD text

	// Tile colors, one per value band.
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileSuper // beyond 2048
)

// TileColor returns the color band for a tile value.
func TileColor(value int) Color {
	c := ColorTile2
	for v := 2; v < value && c < ColorTileSuper; v *= 2 {
		c++
	}
	return c
}
