package sim

import (
	"math"
	"slices"

	"github.com/vovakirdan/chase-arcade/internal/core"
)

// detectCaptures marks every collectible touching the player as caught.
func (e *Engine) detectCaptures(s *scratch) {
	s.candidates = e.captureCandidates(s.candidates[:0])
	pl := e.player
	slack := e.rules.CaptureSlack
	for _, i := range s.candidates {
		c := &e.collectibles[i]
		if c.Caught || !c.Active {
			continue
		}
		if core.CirclesOverlapSlack(pl.Pos, pl.Radius, c.Pos, c.Radius, slack) {
			e.capture(c)
		}
	}
}

// captureCandidates lists collectible indices worth an exact overlap
// test, in ascending order. Small sets are tested exhaustively.
func (e *Engine) captureCandidates(buf []int) []int {
	live := e.round.Total - e.round.Collected
	if e.hash == nil || live < e.rules.SpatialHashMin {
		for i := range e.collectibles {
			if !e.collectibles[i].Caught {
				buf = append(buf, i)
			}
		}
		return buf
	}

	e.hash.Clear()
	for i := range e.collectibles {
		if !e.collectibles[i].Caught {
			e.hash.Insert(i, e.collectibles[i].Pos)
		}
	}
	reach := e.player.Radius + e.rules.CaptureSlack +
		math.Max(e.rules.Collectibles.Radius, e.rules.Collectibles.PowerRadius)
	buf = e.hash.Query(e.player.Pos, reach, buf)
	slices.Sort(buf)
	return buf
}

func (e *Engine) capture(c *Collectible) {
	c.Caught = true
	c.Active = false
	c.Vel = core.Vec2{}
	e.round.Collected++

	points := c.Points
	if c.Kind == KindFish {
		combo := &e.round.Combo
		if e.rules.Combo.Timeout > 0 && e.now > combo.ExpiresAt {
			combo.Count = 0
		}
		points *= combo.Multiplier(e.rules.Combo.Cap)
		combo.Count++
		combo.ExpiresAt = e.now + e.rules.Combo.Timeout.Seconds()
	}
	e.emit(Captured{ID: c.ID, Kind: c.Kind, Points: points, Position: c.Pos, Combo: e.round.Combo.Count})
	e.addScore(points)

	if c.Kind == KindPower {
		e.startPower()
	}
}

// detectPursuerContacts resolves player/pursuer overlaps. A player hit ends
// the pass since every position is reset.
func (e *Engine) detectPursuerContacts() {
	pl := e.player
	for i := range e.pursuers {
		p := &e.pursuers[i]
		if !p.Active || !core.CirclesOverlap(pl.Pos, pl.Radius, p.Pos, p.Radius) {
			continue
		}
		switch p.Mode {
		case ModeEaten:
		case ModeFrightened:
			e.defeat(p)
		default:
			if pl.Special && e.rules.Special.Shield {
				continue
			}
			e.hitPlayer(p)
			return
		}
	}
}

func (e *Engine) defeat(p *Pursuer) {
	p.Mode = ModeEaten
	p.Decision = 0
	combo := &e.round.Combo
	points := e.rules.Pursuers.Points * combo.Multiplier(e.rules.Combo.Cap)
	combo.Count++
	e.emit(Captured{ID: p.ID, Kind: KindPursuer, Points: points, Position: p.Pos, Combo: combo.Count})
	e.addScore(points)
}

func (e *Engine) hitPlayer(by *Pursuer) {
	e.round.Lives--
	e.emit(PlayerHit{By: by.ID, LivesLeft: e.round.Lives})
	if e.round.Lives <= 0 {
		return
	}

	if e.round.Powered {
		e.endPower()
		e.emit(PowerEnded{})
	}
	e.player.Pos = e.rules.Player.Start
	e.player.Vel = core.Vec2{}
	for i := range e.pursuers {
		p := &e.pursuers[i]
		p.Pos = p.Home
		p.Vel = core.Vec2{}
		p.Target = p.Home
		p.Decision = 0
		p.Speed = p.BaseSpeed
		if p.Active {
			p.Mode = e.schedMode
		}
	}
}
