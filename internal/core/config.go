package core

// RuntimeConfig describes the drawing surface a host gives the simulation.
type RuntimeConfig struct {
	ScreenW int     // Screen width in characters
	ScreenH int     // Screen height in characters
	CellW   float64 // World units covered by one character column
	CellH   float64 // World units covered by one character row
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
// At 10x20 units per cell an 80x24 terminal shows an 800x480 viewport.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		CellW:   10,
		CellH:   20,
	}
}
