package core

// RuntimeConfig contains configuration passed to a simulation at reset.
// Simulations use it to size their drawing and to seed their random source.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for reproducible runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the driver-facing summary of a running simulation.
type GameState struct {
	Tick     uint64 // Ticks since the last reset
	Phase    string // Current phase name
	Chain    int    // Current chain count
	MaxChain int    // Longest chain since the last reset
	Cleared  int    // Cells erased since the last reset
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState

	// ChainAdvanced is set when the tick started or extended a chain.
	ChainAdvanced bool
}
