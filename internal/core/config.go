package core

// RuntimeConfig is what a host needs at startup: the screen size and the
// frame rate.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second for the main loop (default 60)
}

// DefaultConfig returns an 80x24 screen at 60 frames per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}
