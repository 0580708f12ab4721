package config

import (
	_ "embed"
)

//go:embed defaults/heist.yaml
var defaultHeistYAML []byte

// DefaultHeistConfig returns the hard-coded configuration, used when the
// embedded YAML cannot be parsed and as the base every YAML file overlays.
func DefaultHeistConfig() HeistConfig {
	return HeistConfig{
		World: WorldConfig{
			TileSize:         64,
			ScreenCols:       16,
			ScreenRows:       12,
			TransitionMargin: 4,
			OutOfBoundsSolid: false,
		},
		Physics: PhysicsConfig{
			Gravity:      1,
			MaxFallSpeed: 20,
			HitboxInset:  6,
		},
		Player: PlayerConfig{
			Width:             40,
			Height:            56,
			Speed:             4,
			JumpImpulse:       18,
			ClimbSpeed:        3,
			LadderTolerance:   8,
			InteractRange:     80,
			RespawnDelayTicks: 90, // 1.5s at 60 ticks
		},
		Drone: EnemyConfig{
			Width:              48,
			Height:             48,
			Speed:              3,
			ChaseMultiplier:    1.8,
			ChaseRangeTiles:    4,
			PatrolRangeTiles:   3,
			SameLevelThreshold: 32,
			WaitTicks:          0,
		},
		Dog: EnemyConfig{
			Width:              56,
			Height:             40,
			Speed:              4,
			ChaseMultiplier:    1.5,
			ChaseRangeTiles:    5,
			PatrolRangeTiles:   4,
			SameLevelThreshold: 32,
			WaitTicks:          45,
		},
		Interaction: InteractionConfig{
			BoxTicks:         90,
			RedBoxTicks:      120,
			MetalLockerTicks: 150,
			WoodLockerTicks:  120,
			CardTicks:        60,
			ComputerTicks:    60,
		},
		Inventory: InventoryConfig{
			CardSlots:         5,
			ComputerCardSlots: 1,
		},
		Tiles: DefaultTiles(),
	}
}

// DefaultTiles returns the built-in tile palette.
func DefaultTiles() []TileConfig {
	return []TileConfig{
		{ID: 1, Name: "wall", Collision: true},
		{ID: 2, Name: "floor", Collision: true},
		{ID: 3, Name: "platform", Collision: true},
		{ID: 4, Name: "crate", Collision: true},
		{ID: 5, Name: "backdrop", Collision: false},
		{ID: TileDeath, Name: "spikes", Collision: false},
		{ID: TileCheckpoint, Name: "checkpoint", Collision: false},
		{ID: TileExtraction, Name: "extraction", Collision: false},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultHeistYAML
}
