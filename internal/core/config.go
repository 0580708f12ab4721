package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters
	ScreenH  int   // Terminal height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic card draws
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is what a game reports to the platform after each tick.
type GameState struct {
	Score    int  // Current score (value of carried cards)
	GameOver bool // Run finished (extracted); the platform records the score once
	Paused   bool

	// Run statistics, recorded with the score.
	Cards  int
	Deaths int
	Ticks  uint64
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
