// Package t2048 implements the 2048 sliding-tile puzzle: the grid, the move
// resolver, the slide animator, the turn-taking session, and the game modes
// (classic, campaign and endless) the platform plays.
package t2048

import "github.com/vovakirdan/tui-2048/internal/config"

// Level defines a campaign level with a target tile.
type Level struct {
	ID     int
	Name   string
	Target int     // Target tile value to reach
	Spawn4 float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// levels is the campaign listed by menus and the CLI. UseConfig replaces it
// under configMu; games keep their own copy.
var levels = levelsFrom(config.DefaultT2048Config())

// levelsFrom builds the campaign from a config, numbering levels from 1.
// An empty list falls back to the built-in campaign.
func levelsFrom(cfg config.T2048Config) []Level {
	src := cfg.Campaign.Levels
	if len(src) == 0 {
		src = config.DefaultT2048Config().Campaign.Levels
	}
	out := make([]Level, len(src))
	for i, l := range src {
		out[i] = Level{ID: i + 1, Name: l.Name, Target: l.Target, Spawn4: l.Spawn4}
	}
	return out
}

// Levels returns a copy of the campaign levels.
func Levels() []Level {
	configMu.RLock()
	defer configMu.RUnlock()
	return append([]Level(nil), levels...)
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	configMu.RLock()
	defer configMu.RUnlock()
	return len(levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	configMu.RLock()
	defer configMu.RUnlock()
	if index < 0 || index >= len(levels) {
		return nil
	}
	lvl := levels[index]
	return &lvl
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	configMu.RLock()
	defer configMu.RUnlock()
	names := make([]string, len(levels))
	for i, lvl := range levels {
		names[i] = lvl.Name
	}
	return names
}

// LevelTargets returns the targets of all levels.
func LevelTargets() []int {
	configMu.RLock()
	defer configMu.RUnlock()
	targets := make([]int, len(levels))
	for i, lvl := range levels {
		targets[i] = lvl.Target
	}
	return targets
}
