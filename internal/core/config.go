package core

// RuntimeConfig is passed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	Level    string // Level ID to start from; empty means the first level
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

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int    // Current score
	Level    string // Current level ID, empty in endless mode
	Shots    int    // Shots left, -1 when unlimited
	Won      bool   // Whether the field was cleared
	GameOver bool   // Whether the game has ended
	Paused   bool   // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Rounds int // Rounds completed during this tick
}
