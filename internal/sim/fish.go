package sim

import (
	"github.com/vovakirdan/chase-arcade/internal/core"
)

// updateFish runs the idle/swim/flee/respond machine for one fish.
func (e *Engine) updateFish(c *Collectible, dt float64) {
	f := e.rules.Fish
	pl := e.player

	if c.AI == FishResponding {
		if e.now < c.FreezeUntil {
			c.Vel = core.Vec2{}
			return
		}
		c.AI = FishFleeing
	}

	dist := c.Pos.Dist(pl.Pos)
	switch c.AI {
	case FishFleeing:
		if dist > f.FleeExitDistance {
			c.AI = FishSwimming
			c.Target = e.fishTarget(c)
		}
	default:
		if dist < f.FleeDistance {
			c.AI = FishFleeing
		}
	}

	c.Decision -= dt
	if c.Decision <= 0 {
		c.Decision = randRange(e.rng, f.DecisionMin.Seconds(), f.DecisionMax.Seconds())
		switch c.AI {
		case FishIdle:
			if e.rng.Float64() >= f.IdleChance {
				c.AI = FishSwimming
				c.Target = e.fishTarget(c)
			}
		case FishSwimming:
			if e.rng.Float64() < f.IdleChance {
				c.AI = FishIdle
			} else if e.rng.Float64() < f.RetargetChance {
				c.Target = e.fishTarget(c)
			}
		}
	}

	var desired core.Vec2
	switch c.AI {
	case FishSwimming:
		if c.Pos.Dist(c.Target) <= f.ArriveDistance {
			c.Target = e.fishTarget(c)
		}
		desired = c.Target.Sub(c.Pos).Normalize().Scale(f.Speed)
	case FishFleeing:
		away := c.Pos.Sub(pl.Pos).Normalize()
		desired = away.Scale(f.FleeSpeed)
		desired = desired.Add(e.edgeRepulsion(c.Pos, f.ArriveDistance*2, f.FleeSpeed))
	}

	c.Vel = c.Vel.Lerp(desired, core.ClampF(f.Response*dt, 0, 1))
	next := c.Pos.Add(c.Vel.Scale(dt))
	inner := e.rules.Arena.Inset(c.Radius)
	clamped := inner.ClampPoint(next)
	if clamped.X != next.X {
		c.Vel.X = 0
	}
	if clamped.Y != next.Y {
		c.Vel.Y = 0
	}
	c.Pos = clamped
}

// fishTarget picks a random reachable point inside the arena.
func (e *Engine) fishTarget(c *Collectible) core.Vec2 {
	inner := e.rules.Arena.Inset(c.Radius)
	return core.V2(
		inner.MinX+e.rng.Float64()*inner.Width(),
		inner.MinY+e.rng.Float64()*inner.Height(),
	)
}
