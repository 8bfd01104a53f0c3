package config

// Normalize clamps out-of-range tuning values in place. Values that
// cannot be repaired, such as a zero-size arena, are left for the
// engine to reject.
func (c *MarcoPoloConfig) Normalize() {
	c.Round.normalize()
	c.Player.normalize()
	c.Difficulty.normalize()
	c.Sharks.normalize()
	c.Combo.normalize()

	c.Call.Charges = atLeast(c.Call.Charges, 0)
	c.Call.CooldownMs = atLeast(c.Call.CooldownMs, 0)
	c.Call.ActiveMs = atLeast(c.Call.ActiveMs, 0)
	c.Call.Radius = atLeastF(c.Call.Radius, 0)

	c.Wall.Penalty = atLeast(c.Wall.Penalty, 0)
	c.Wall.CooldownMs = atLeast(c.Wall.CooldownMs, 0)
	c.Wall.Bounce = clampF(c.Wall.Bounce, 0, 1)

	f := &c.Fish
	f.Points = atLeast(f.Points, 0)
	f.MinPlayerDist = atLeastF(f.MinPlayerDist, 0)
	f.Speed = atLeastF(f.Speed, 0)
	f.FleeSpeed = atLeastF(f.FleeSpeed, 0)
	f.FleeDistance = atLeastF(f.FleeDistance, 0)
	if f.FleeExitDistance < f.FleeDistance {
		f.FleeExitDistance = f.FleeDistance
	}
	f.Response = atLeastF(f.Response, 0)
	f.DecisionMinMs = atLeast(f.DecisionMinMs, 1)
	if f.DecisionMaxMs < f.DecisionMinMs {
		f.DecisionMaxMs = f.DecisionMinMs
	}
	f.IdleChance = clampF(f.IdleChance, 0, 1)
	f.RetargetChance = clampF(f.RetargetChance, 0, 1)
	f.ArriveDistance = atLeastF(f.ArriveDistance, 0)
	f.FreezeMs = atLeast(f.FreezeMs, 0)
	f.RevealMs = atLeast(f.RevealMs, 0)

	c.Fog.Radius = atLeastF(c.Fog.Radius, 0)
}

// Normalize clamps out-of-range tuning values in place.
func (c *PacmanConfig) Normalize() {
	c.Round.normalize()
	c.Player.normalize()
	c.Difficulty.normalize()
	c.Ghosts.normalize()
	c.Combo.normalize()

	p := &c.Pellets
	p.Points = atLeast(p.Points, 0)
	p.MinPlayerDist = atLeastF(p.MinPlayerDist, 0)
	p.PowerCount = min(max(p.PowerCount, 0), 4)
	p.PowerPoints = atLeast(p.PowerPoints, 0)
	if p.PowerRadius <= 0 {
		p.PowerRadius = p.Radius
	}

	c.Power.DurationMs = atLeast(c.Power.DurationMs, 0)
	for i := range c.Schedule.Phases {
		c.Schedule.Phases[i].Ms = atLeast(c.Schedule.Phases[i].Ms, 0)
	}
	for i := range c.Schedule.Cycle {
		c.Schedule.Cycle[i].Ms = atLeast(c.Schedule.Cycle[i].Ms, 0)
	}
}

func (r *RoundConfig) normalize() {
	r.Lives = atLeast(r.Lives, 1)
	r.TimeLimitSec = atLeast(r.TimeLimitSec, 0)
	r.MaxLevel = atLeast(r.MaxLevel, 0)
	if r.MaxDeltaMs <= 0 || r.MaxDeltaMs > 250 {
		r.MaxDeltaMs = 100
	}
	r.SpatialHashAt = atLeast(r.SpatialHashAt, 0)
	r.CaptureSlack = atLeastF(r.CaptureSlack, 0)
}

func (p *PlayerConfig) normalize() {
	p.Speed = atLeastF(p.Speed, 0)
	p.Response = atLeastF(p.Response, 0)
}

func (d *DifficultyConfig) normalize() {
	d.InitialLevel = clampF(d.InitialLevel, 0, 1)
	switch d.Progression.Type {
	case "score", "time", "level", "none":
	default:
		d.Progression.Type = "none"
	}
	d.Progression.MaxAt = atLeast(d.Progression.MaxAt, 1)
	d.Scaling.SpeedMultiplier = atLeastF(d.Scaling.SpeedMultiplier, 0)
	d.Scaling.TimeReduction = clampF(d.Scaling.TimeReduction, 0, 0.9)
}

func (p *PursuerConfig) normalize() {
	p.Count = atLeast(p.Count, 0)
	p.Speed = atLeastF(p.Speed, 0)
	p.Points = atLeast(p.Points, 0)
	p.DecisionMinMs = atLeast(p.DecisionMinMs, 1)
	if p.DecisionMaxMs < p.DecisionMinMs {
		p.DecisionMaxMs = p.DecisionMinMs
	}
	for i, d := range p.SpawnDelaysMs {
		p.SpawnDelaysMs[i] = atLeast(d, 0)
	}
	p.Jitter = clampF(p.Jitter, 0, 1)
	p.EdgeMargin = atLeastF(p.EdgeMargin, 0)
	p.EdgeRepulsion = atLeastF(p.EdgeRepulsion, 0)
	p.FrightenedSpeedFactor = clampF(p.FrightenedSpeedFactor, 0.1, 1)
	if p.EatenSpeedFactor <= 0 {
		p.EatenSpeedFactor = 1
	}
}

func (c *ComboConfig) normalize() {
	c.Cap = atLeast(c.Cap, 1)
	c.TimeoutMs = atLeast(c.TimeoutMs, 0)
}

func atLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

func atLeastF(v, floor float64) float64 {
	if v != v || v < floor {
		return floor
	}
	return v
}
