package core

// RuntimeConfig contains per-session settings passed to the engine by the platform.
type RuntimeConfig struct {
	ScreenW   int     // Screen width in characters
	ScreenH   int     // Screen height in characters
	TickRate  int     // Viewer frames per second (default 30)
	Seed      int64   // RNG seed for deterministic play
	TimeScale float64 // Logical milliseconds advanced per real millisecond
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  30,
		Seed:      0, // 0 means use current time in platform layer
		TimeScale: 1.0,
	}
}
