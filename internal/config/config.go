// Package config provides YAML-based configuration loading and difficulty
// presets for the heist simulation.
package config

import (
	"errors"
	"fmt"
)

// The world graph is a fixed grid of rooms; it is not configurable.
const (
	WorldRows = 5
	WorldCols = 8
)

// Special tile ids with side effects beyond collision.
const (
	TileDeath      = 9
	TileCheckpoint = 99
	TileExtraction = 100
)

// HeistConfig contains all tunable constants of the simulation.
type HeistConfig struct {
	World       WorldConfig       `yaml:"world"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Player      PlayerConfig      `yaml:"player"`
	Drone       EnemyConfig       `yaml:"drone"`
	Dog         EnemyConfig       `yaml:"dog"`
	Interaction InteractionConfig `yaml:"interaction"`
	Inventory   InventoryConfig   `yaml:"inventory"`
	Tiles       []TileConfig      `yaml:"tiles"`
}

// WorldConfig defines room geometry.
type WorldConfig struct {
	TileSize         int  `yaml:"tile_size"`   // Pixels per tile edge
	ScreenCols       int  `yaml:"screen_cols"` // Tiles per room row
	ScreenRows       int  `yaml:"screen_rows"` // Tile rows per room
	TransitionMargin int  `yaml:"transition_margin"`
	OutOfBoundsSolid bool `yaml:"out_of_bounds_solid"`
}

// ScreenWidth returns the room width in pixels.
func (w WorldConfig) ScreenWidth() int {
	return w.TileSize * w.ScreenCols
}

// ScreenHeight returns the room height in pixels.
func (w WorldConfig) ScreenHeight() int {
	return w.TileSize * w.ScreenRows
}

// PhysicsConfig defines integration constants shared by every entity.
type PhysicsConfig struct {
	Gravity      int `yaml:"gravity"`        // Added to vertical speed every tick
	MaxFallSpeed int `yaml:"max_fall_speed"` // Must stay below tile_size
	HitboxInset  int `yaml:"hitbox_inset"`   // Left/right/top inset of collision boxes
}

// PlayerConfig defines the player body and controller constants.
type PlayerConfig struct {
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	Speed             int     `yaml:"speed"`
	JumpImpulse       int     `yaml:"jump_impulse"`
	ClimbSpeed        int     `yaml:"climb_speed"`
	LadderTolerance   int     `yaml:"ladder_tolerance"`
	InteractRange     float64 `yaml:"interact_range"`
	RespawnDelayTicks int     `yaml:"respawn_delay_ticks"`
}

// EnemyConfig defines the constants of one enemy variant.
type EnemyConfig struct {
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	Speed              int     `yaml:"speed"`
	ChaseMultiplier    float64 `yaml:"chase_multiplier"`
	ChaseRangeTiles    int     `yaml:"chase_range_tiles"`
	PatrolRangeTiles   int     `yaml:"patrol_range_tiles"`
	SameLevelThreshold int     `yaml:"same_level_threshold"`
	WaitTicks          int     `yaml:"wait_ticks"` // Pause after an obstacle; 0 reverses immediately
}

// InteractionConfig defines hold-to-complete durations in ticks.
type InteractionConfig struct {
	BoxTicks         int `yaml:"box_ticks"`
	RedBoxTicks      int `yaml:"red_box_ticks"`
	MetalLockerTicks int `yaml:"metal_locker_ticks"`
	WoodLockerTicks  int `yaml:"wood_locker_ticks"`
	CardTicks        int `yaml:"card_ticks"`
	ComputerTicks    int `yaml:"computer_ticks"`
}

// InventoryConfig defines carrying capacity.
type InventoryConfig struct {
	CardSlots         int `yaml:"card_slots"`
	ComputerCardSlots int `yaml:"computer_card_slots"`
}

// TileConfig is one palette entry.
type TileConfig struct {
	ID        int    `yaml:"id"`
	Name      string `yaml:"name"`
	Collision bool   `yaml:"collision"`
}

// Validate checks the constants the simulation relies on.
func (c HeistConfig) Validate() error {
	var errs []error

	if c.World.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("world.tile_size must be positive, got %d", c.World.TileSize))
	}
	if c.World.ScreenCols <= 0 || c.World.ScreenRows <= 0 {
		errs = append(errs, fmt.Errorf("world screen must be at least 1x1 tiles, got %dx%d",
			c.World.ScreenCols, c.World.ScreenRows))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must be positive, got %d", c.Physics.Gravity))
	}
	if c.Physics.MaxFallSpeed <= 0 || c.Physics.MaxFallSpeed >= c.World.TileSize {
		errs = append(errs, fmt.Errorf("physics.max_fall_speed must be in (0, tile_size), got %d",
			c.Physics.MaxFallSpeed))
	}
	if c.Player.Width <= 2*c.Physics.HitboxInset || c.Player.Height <= c.Physics.HitboxInset {
		errs = append(errs, errors.New("player size must exceed the hitbox inset"))
	}
	if c.Player.RespawnDelayTicks < 0 {
		errs = append(errs, errors.New("player.respawn_delay_ticks must not be negative"))
	}
	for name, e := range map[string]EnemyConfig{"drone": c.Drone, "dog": c.Dog} {
		if e.Speed <= 0 || e.Width <= 0 || e.Height <= 0 {
			errs = append(errs, fmt.Errorf("%s: speed and size must be positive", name))
		}
	}
	if c.Inventory.CardSlots <= 0 {
		errs = append(errs, errors.New("inventory.card_slots must be positive"))
	}

	seen := make(map[int]bool, len(c.Tiles))
	for _, t := range c.Tiles {
		if t.ID <= 0 {
			errs = append(errs, fmt.Errorf("tile id %d must be positive", t.ID))
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Errorf("tile id %d defined twice", t.ID))
		}
		seen[t.ID] = true
	}

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value into a preset. Empty input keeps the config as is.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}
