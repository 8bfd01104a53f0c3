// Package arena holds what the chase games share: turning YAML tuning
// into engine rules, the engine session behind the registry contract and
// the HUD drawing helpers.
package arena

import (
	"time"

	"github.com/vovakirdan/chase-arcade/internal/config"
	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/sim"
)

// Millis converts a millisecond tuning value.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Bounds returns the [0,w]x[0,h] arena.
func Bounds(a config.ArenaConfig) core.Bounds {
	return core.NewBounds(a.Width, a.Height)
}

// ApplyRound copies the round limits into r.
func ApplyRound(r *sim.Rules, rc config.RoundConfig) {
	r.Lives = rc.Lives
	r.TimeLimit = time.Duration(rc.TimeLimitSec) * time.Second
	r.MaxDelta = Millis(rc.MaxDeltaMs)
	r.MaxLevel = rc.MaxLevel
	r.CaptureSlack = rc.CaptureSlack
	r.SpatialHashMin = rc.SpatialHashAt
}

// Player builds the player rules. Negative start coordinates mean the
// arena center on that axis.
func Player(pc config.PlayerConfig, b core.Bounds) sim.PlayerRules {
	start := b.Center()
	if pc.StartX >= 0 {
		start.X = b.MinX + pc.StartX
	}
	if pc.StartY >= 0 {
		start.Y = b.MinY + pc.StartY
	}
	return sim.PlayerRules{
		Start:    start,
		Radius:   pc.Radius,
		Speed:    pc.Speed,
		Response: pc.Response,
	}
}

// Pursuers builds pursuer rules with the speed already scaled by the
// difficulty multiplier. Unknown personality names fall back to direct.
func Pursuers(pc config.PursuerConfig, speedScale float64) sim.PursuerRules {
	r := sim.PursuerRules{
		Count:                 pc.Count,
		Radius:                pc.Radius,
		Speed:                 pc.Speed * speedScale,
		DecisionMin:           Millis(pc.DecisionMinMs),
		DecisionMax:           Millis(pc.DecisionMaxMs),
		Points:                pc.Points,
		LeadDistance:          pc.LeadDistance,
		FlankOffset:           pc.FlankOffset,
		OpportunistRange:      pc.OpportunistRange,
		FleeLookahead:         pc.FleeLookahead,
		Jitter:                pc.Jitter,
		EdgeMargin:            pc.EdgeMargin,
		EdgeRepulsion:         pc.EdgeRepulsion,
		ChaseResponse:         pc.ChaseResponse,
		FrightenedResponse:    pc.FrightenedResponse,
		EatenResponse:         pc.EatenResponse,
		FrightenedSpeedFactor: pc.FrightenedSpeedFactor,
		EatenSpeedFactor:      pc.EatenSpeedFactor,
	}
	for _, ms := range pc.SpawnDelaysMs {
		r.SpawnDelays = append(r.SpawnDelays, Millis(ms))
	}
	for _, name := range pc.Personalities {
		p, _ := sim.ParsePersonality(name)
		r.Personalities = append(r.Personalities, p)
	}
	return r
}

// Schedule builds the scatter/chase schedule. Unknown mode names become chase.
func Schedule(sc config.ScheduleConfig) sim.Schedule {
	return sim.Schedule{
		Phases: phases(sc.Phases),
		Cycle:  phases(sc.Cycle),
	}
}

func phases(in []config.PhaseConfig) []sim.Phase {
	if len(in) == 0 {
		return nil
	}
	out := make([]sim.Phase, 0, len(in))
	for _, p := range in {
		m, _ := sim.ParseMode(p.Mode)
		out = append(out, sim.Phase{Mode: m, Duration: Millis(p.Ms)})
	}
	return out
}

// Combo builds the combo rules.
func Combo(cc config.ComboConfig) sim.ComboRules {
	return sim.ComboRules{Cap: cc.Cap, Timeout: Millis(cc.TimeoutMs)}
}
