package sim

import (
	"math"

	"github.com/vovakirdan/chase-arcade/internal/core"
)

// updateSchedule applies scatter/chase phase changes to every pursuer that
// is not frightened or eaten.
func (e *Engine) updateSchedule() {
	mode := e.rules.Schedule.ModeAt(e.round.LevelElapsed)
	if mode == e.schedMode {
		return
	}
	e.schedMode = mode
	e.emit(ModeChanged{Mode: mode})
	for i := range e.pursuers {
		p := &e.pursuers[i]
		if !p.Active || p.Mode == ModeFrightened || p.Mode == ModeEaten {
			continue
		}
		p.Mode = mode
		p.Decision = 0
	}
}

// updatePower ends the frightened window once it runs out.
func (e *Engine) updatePower() {
	if !e.round.Powered || e.now < e.round.PowerUntil {
		return
	}
	e.endPower()
	e.emit(PowerEnded{})
}

func (e *Engine) endPower() {
	e.round.Powered = false
	e.round.Combo.Count = 0
	for i := range e.pursuers {
		p := &e.pursuers[i]
		if p.Mode == ModeFrightened {
			p.Mode = ModeChase
			p.Speed = p.BaseSpeed
			p.Decision = 0
		}
	}
}

func (e *Engine) startPower() {
	if e.rules.Power <= 0 {
		return
	}
	e.round.Powered = true
	e.round.PowerUntil = e.now + e.rules.Power.Seconds()
	e.round.Combo.Count = 0
	factor := e.rules.Pursuers.FrightenedSpeedFactor
	for i := range e.pursuers {
		p := &e.pursuers[i]
		if !p.Active || p.Mode == ModeEaten {
			continue
		}
		p.Mode = ModeFrightened
		p.Speed = p.BaseSpeed * factor
		p.Decision = 0
	}
	e.emit(PowerStarted{DurationMs: float64(e.rules.Power.Milliseconds())})
}

// release activates a pursuer whose spawn delay elapsed. It joins an open
// power window frightened.
func (e *Engine) release(p *Pursuer) {
	p.Active = true
	p.Decision = 0
	if e.round.Powered {
		p.Mode = ModeFrightened
		p.Speed = p.BaseSpeed * e.rules.Pursuers.FrightenedSpeedFactor
	} else {
		p.Mode = e.schedMode
		p.Speed = p.BaseSpeed
	}
	e.emit(PursuerReleased{ID: p.ID})
}

// steerPursuer runs one pursuer's decision timer and integrates its motion.
func (e *Engine) steerPursuer(p *Pursuer, dt float64) {
	q := e.rules.Pursuers
	speed := p.Speed
	response := q.ChaseResponse

	switch p.Mode {
	case ModeEaten:
		speed = p.BaseSpeed * q.EatenSpeedFactor
		response = q.EatenResponse
		p.Target = p.Home
		if p.Pos.Dist(p.Home) <= math.Max(p.Radius, speed*dt) {
			e.respawn(p)
			return
		}
	case ModeFrightened:
		response = q.FrightenedResponse
		fallthrough
	default:
		p.Decision -= dt
		if p.Decision <= 0 {
			p.Target = e.pursuerTarget(p)
			p.Decision = randRange(e.rng, q.DecisionMin.Seconds(), q.DecisionMax.Seconds())
		}
	}

	desired := p.Target.Sub(p.Pos).Normalize().Scale(speed)
	if p.Mode != ModeEaten && q.Jitter > 0 {
		j := core.V2(e.rng.Float64()*2-1, e.rng.Float64()*2-1)
		desired = desired.Add(j.Scale(q.Jitter * speed))
	}
	desired = desired.Add(e.edgeRepulsion(p.Pos, q.EdgeMargin, q.EdgeRepulsion*speed))

	p.Vel = p.Vel.Lerp(desired, core.ClampF(response*dt, 0, 1))
	p.Vel = core.ClampLenRange(p.Vel, 0.5*speed, speed)
	p.Pos = e.rules.Arena.Inset(p.Radius).ClampPoint(p.Pos.Add(p.Vel.Scale(dt)))
}

// pursuerTarget picks the point a pursuer heads for in its current mode.
func (e *Engine) pursuerTarget(p *Pursuer) core.Vec2 {
	q := e.rules.Pursuers
	pl := e.player
	switch p.Mode {
	case ModeScatter:
		return p.Home
	case ModeFrightened:
		away := p.Pos.Sub(pl.Pos).Normalize()
		if away.IsZero() {
			away = core.FromAngle(e.rng.Float64() * 2 * math.Pi)
		}
		return e.rules.Arena.ClampPoint(p.Pos.Add(away.Scale(q.FleeLookahead)))
	}

	heading := pl.Vel.Normalize()
	switch p.Personality {
	case Ambusher:
		return pl.Pos.Add(heading.Scale(q.LeadDistance))
	case Flanker:
		if heading.IsZero() {
			heading = core.FromAngle(pl.Facing)
		}
		return pl.Pos.Add(heading.Perp().Scale(q.FlankOffset))
	case Opportunist:
		if p.Pos.Dist(pl.Pos) > q.OpportunistRange {
			return pl.Pos
		}
		return p.Home
	default:
		return pl.Pos
	}
}

// respawn returns an eaten pursuer to play at its home.
func (e *Engine) respawn(p *Pursuer) {
	p.Pos = p.Home
	p.Vel = core.Vec2{}
	p.Decision = 0
	if e.round.Powered {
		p.Mode = ModeFrightened
		p.Speed = p.BaseSpeed * e.rules.Pursuers.FrightenedSpeedFactor
	} else {
		p.Mode = ModeChase
		p.Speed = p.BaseSpeed
	}
	e.emit(PursuerRespawned{ID: p.ID})
}

// edgeRepulsion pushes inward proportionally to how far pos has entered
// the margin along each wall.
func (e *Engine) edgeRepulsion(pos core.Vec2, margin, strength float64) core.Vec2 {
	if margin <= 0 || strength <= 0 {
		return core.Vec2{}
	}
	a := e.rules.Arena
	var push core.Vec2
	if d := margin - (pos.X - a.MinX); d > 0 {
		push.X += d / margin
	}
	if d := margin - (a.MaxX - pos.X); d > 0 {
		push.X -= d / margin
	}
	if d := margin - (pos.Y - a.MinY); d > 0 {
		push.Y += d / margin
	}
	if d := margin - (a.MaxY - pos.Y); d > 0 {
		push.Y -= d / margin
	}
	return push.Scale(strength)
}
