package core

// Intent is the normalized per-frame input for a single player.
// The platform layer builds it from whatever device it polls; games never
// see raw key codes.
type Intent struct {
	Up     bool
	Down   bool
	Left   bool
	Right  bool
	Action bool // Special action (call, boost)
	Pause  bool // Pause toggle, edge-triggered by the engine
}

// Direction returns the movement direction as a unit vector, or zero when
// no direction (or only opposing directions) is held. Screen convention:
// +Y points down.
func (in Intent) Direction() Vec2 {
	var d Vec2
	if in.Up {
		d.Y--
	}
	if in.Down {
		d.Y++
	}
	if in.Left {
		d.X--
	}
	if in.Right {
		d.X++
	}
	return d.Normalize()
}

// Moving reports whether any direction is held.
func (in Intent) Moving() bool {
	return in.Up || in.Down || in.Left || in.Right
}

// Any reports whether the intent carries movement or the action.
// Pause alone does not count so that pausing never starts a round.
func (in Intent) Any() bool {
	return in.Moving() || in.Action
}
