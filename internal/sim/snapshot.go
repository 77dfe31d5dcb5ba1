package sim

import "math"

// Snapshot captures the observable simulation state for determinism testing.
type Snapshot struct {
	Tick      uint64
	State     State
	PlayerX   float64
	PlayerY   float64
	PlayerVX  float64
	PlayerVY  float64
	CanJump   bool
	Coins     int
	CoinsLeft int
	// RoofProgress is -1 when the level has no roof.
	RoofProgress float64
	CameraX      float64
	CameraY      float64
}

// Snapshot returns the current state.
func (s *Simulation) Snapshot() Snapshot {
	roof := -1.0
	if s.level.Roof != nil {
		roof = s.level.Roof.Progress
	}

	return Snapshot{
		Tick:         s.tick,
		State:        s.state,
		PlayerX:      s.player.X,
		PlayerY:      s.player.Y,
		PlayerVX:     s.player.VX,
		PlayerVY:     s.player.VY,
		CanJump:      s.player.CanJump,
		Coins:        s.coins,
		CoinsLeft:    s.level.CoinsLeft(),
		RoofProgress: roof,
		CameraX:      s.cam.X,
		CameraY:      s.cam.Y,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.State) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.PlayerX)
	h = h*31 + math.Float64bits(snap.PlayerY)
	h = h*31 + math.Float64bits(snap.PlayerVX)
	h = h*31 + math.Float64bits(snap.PlayerVY)
	if snap.CanJump {
		h = h*31 + 1
	} else {
		h = h * 31
	}
	h = h*31 + uint64(snap.Coins)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.CoinsLeft) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.RoofProgress)
	h = h*31 + math.Float64bits(snap.CameraX)
	h = h*31 + math.Float64bits(snap.CameraY)
	return h
}
