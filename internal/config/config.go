// Package config provides YAML-based game configuration loading for 2048.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned when a loaded configuration cannot produce a playable game.
var ErrInvalid = errors.New("config: invalid configuration")

// Limits mirrored from the engine so a bad file is rejected before a game starts.
const (
	MinBoardSize = 2
	MaxBoardSize = 8
)

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board     BoardConfig     `yaml:"board"`
	Rules     RulesConfig     `yaml:"rules"`
	Animation AnimationConfig `yaml:"animation"`
	Campaign  CampaignConfig  `yaml:"campaign"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Size int `yaml:"size"`
}

// RulesConfig defines winning and spawning rules.
type RulesConfig struct {
	WinTarget         int     `yaml:"win_target"`
	Endless           bool    `yaml:"endless"`
	Spawn4Probability float64 `yaml:"spawn4_probability"`
	InitialTiles      int     `yaml:"initial_tiles"`
}

// AnimationConfig defines slide timing. Durations are written as "100ms".
type AnimationConfig struct {
	CellDuration time.Duration `yaml:"cell_duration"`
}

// CampaignConfig lists the campaign levels in play order.
type CampaignConfig struct {
	Levels []LevelConfig `yaml:"levels"`
}

// LevelConfig defines one campaign level.
type LevelConfig struct {
	Name   string  `yaml:"name"`
	Target int     `yaml:"target"`
	Spawn4 float64 `yaml:"spawn4"`
}

// Validate checks every field and reports the first problem.
func (c T2048Config) Validate() error {
	if c.Board.Size < MinBoardSize || c.Board.Size > MaxBoardSize {
		return invalid("board.size", "%d outside [%d, %d]", c.Board.Size, MinBoardSize, MaxBoardSize)
	}
	if !c.Rules.Endless && !validTarget(c.Rules.WinTarget) {
		return invalid("rules.win_target", "%d is not a power of two >= 4", c.Rules.WinTarget)
	}
	if !validProbability(c.Rules.Spawn4Probability) {
		return invalid("rules.spawn4_probability", "%g outside [0, 1]", c.Rules.Spawn4Probability)
	}
	if cells := c.Board.Size * c.Board.Size; c.Rules.InitialTiles < 1 || c.Rules.InitialTiles > cells {
		return invalid("rules.initial_tiles", "%d outside [1, %d]", c.Rules.InitialTiles, cells)
	}
	if c.Animation.CellDuration < 0 {
		return invalid("animation.cell_duration", "%s is negative", c.Animation.CellDuration)
	}
	for i, lvl := range c.Campaign.Levels {
		field := fmt.Sprintf("campaign.levels[%d]", i)
		if lvl.Name == "" {
			return invalid(field+".name", "must not be empty")
		}
		if !validTarget(lvl.Target) {
			return invalid(field+".target", "%d is not a power of two >= 4", lvl.Target)
		}
		if i > 0 && lvl.Target <= c.Campaign.Levels[i-1].Target {
			return invalid(field+".target", "%d does not exceed the previous level", lvl.Target)
		}
		if !validProbability(lvl.Spawn4) {
			return invalid(field+".spawn4", "%g outside [0, 1]", lvl.Spawn4)
		}
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, field, fmt.Sprintf(format, args...))
}

func validTarget(v int) bool {
	return v >= 4 && v&(v-1) == 0
}

func validProbability(p float64) bool {
	return p >= 0 && p <= 1
}
