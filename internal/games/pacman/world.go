package pacman

import (
	"math"

	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/sim"
)

// World heights in arena units, y-up.
const (
	PlayerHeight = 0.5
	PelletHeight = 0.3
	PowerHeight  = 0.5
	GhostHeight  = 0.6
	EyesHeight   = 1.8

	BobAmplitude = 0.15
	BobRate      = 4.0 // radians per second
)

// PlayerWorld lifts the player onto the maze floor.
func PlayerWorld(p sim.Player) core.Vec3 {
	return core.Ground(p.Pos, PlayerHeight)
}

// GhostWorld places a ghost at engine time now. Live ghosts bob out of
// phase with each other; eaten ghosts are eyes floating home overhead.
func GhostWorld(g sim.Pursuer, now float64) core.Vec3 {
	if g.Mode == sim.ModeEaten {
		return core.Ground(g.Pos, EyesHeight)
	}
	phase := float64(g.ID) * 1.7
	return core.Ground(g.Pos, GhostHeight+BobAmplitude*math.Sin(now*BobRate+phase))
}

// PelletWorld places a pellet; power pellets sit higher.
func PelletWorld(c sim.Collectible) core.Vec3 {
	if c.Kind == sim.KindPower {
		return core.Ground(c.Pos, PowerHeight)
	}
	return core.Ground(c.Pos, PelletHeight)
}

// WorldPos returns the world position of any live entity of the current
// round, for a 3D scene graph keyed by entity ID.
func (g *Game) WorldPos(id sim.EntityID) (core.Vec3, bool) {
	e := g.Engine()
	if e == nil {
		return core.Vec3{}, false
	}
	if p := e.Player(); p.ID == id {
		return PlayerWorld(p), true
	}
	for _, gh := range e.Pursuers() {
		if gh.ID == id {
			return GhostWorld(gh, e.Now()), true
		}
	}
	for _, c := range e.Collectibles() {
		if c.ID == id && !c.Caught {
			return PelletWorld(c), true
		}
	}
	return core.Vec3{}, false
}

// project maps a world position to a screen cell, raising it one row per
// cell height of altitude.
func project(v core.Viewport, p core.Vec3) (x, y int, ok bool) {
	x, y, ok = v.Project(p.XZ())
	if !ok || v.Screen.H <= 0 {
		return x, y, ok
	}
	rowHeight := v.World.Height() / float64(v.Screen.H)
	lift := int(math.Round(p.Y / rowHeight))
	return x, max(y-lift, v.Screen.Y), true
}
