package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the driver (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	ConfigPath string // Optional YAML override for the game's tuning
	Difficulty string // Preset name: easy, normal, hard or fixed
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer

		Difficulty: "normal",
	}
}

// GameState is the coarse status the platform needs after every frame.
type GameState struct {
	Score    int  // Current score
	Best     int  // Best score known for this game
	GameOver bool // Whether the round has ended (won or lost)
	Won      bool // Whether the round ended in a win
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
}

// Rand is the random source the simulation draws from.
// *math/rand.Rand satisfies it; tests inject a seeded one.
type Rand interface {
	Float64() float64
	Intn(n int) int
}
