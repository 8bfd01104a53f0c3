package marcopolo

import (
	"math"
	"time"

	"github.com/vovakirdan/chase-arcade/internal/config"
	"github.com/vovakirdan/chase-arcade/internal/games/arena"
	"github.com/vovakirdan/chase-arcade/internal/sim"
)

// minReveal keeps hard difficulty from shrinking the call reveal to nothing.
const minReveal = 0.3

// Rules turns the pool tuning into engine rules. The difficulty level
// speeds fish and sharks up and shortens how long a call reveals fish.
func Rules(cfg config.MarcoPoloConfig) sim.Rules {
	dm := config.NewDifficultyManager(cfg.Difficulty)
	at := config.Progress{Level: 1}
	speed := dm.Speed(1, at)

	b := arena.Bounds(cfg.Arena)
	r := sim.Rules{
		Arena:   b,
		OnClear: sim.ClearWin,
		Player:  arena.Player(cfg.Player, b),
		Special: sim.SpecialRules{
			Charges:  cfg.Call.Charges,
			Cooldown: arena.Millis(cfg.Call.CooldownMs),
			Duration: arena.Millis(cfg.Call.ActiveMs),
			Radius:   cfg.Call.Radius,
		},
		Wall: sim.WallRules{
			Penalty:  cfg.Wall.Penalty,
			Cooldown: arena.Millis(cfg.Wall.CooldownMs),
			Bounce:   cfg.Wall.Bounce,
		},
		Pursuers: arena.Pursuers(cfg.Sharks, speed),
		Collectibles: sim.CollectibleRules{
			Layout:        sim.LayoutScatter,
			Kind:          sim.KindFish,
			Count:         cfg.Fish.Count,
			Radius:        cfg.Fish.Radius,
			Points:        cfg.Fish.Points,
			MinPlayerDist: cfg.Fish.MinPlayerDist,
		},
		Fish: sim.FishRules{
			Speed:            cfg.Fish.Speed * speed,
			FleeSpeed:        cfg.Fish.FleeSpeed * speed,
			FleeDistance:     cfg.Fish.FleeDistance,
			FleeExitDistance: cfg.Fish.FleeExitDistance,
			Response:         cfg.Fish.Response,
			DecisionMin:      arena.Millis(cfg.Fish.DecisionMinMs),
			DecisionMax:      arena.Millis(cfg.Fish.DecisionMaxMs),
			IdleChance:       cfg.Fish.IdleChance,
			RetargetChance:   cfg.Fish.RetargetChance,
			ArriveDistance:   cfg.Fish.ArriveDistance,
			Freeze:           arena.Millis(cfg.Fish.FreezeMs),
			Reveal:           reveal(dm, cfg.Fish.RevealMs, at),
		},
		Combo: arena.Combo(cfg.Combo),
	}
	arena.ApplyRound(&r, cfg.Round)
	return r
}

func reveal(dm *config.DifficultyManager, ms int, at config.Progress) time.Duration {
	base := arena.Millis(ms).Seconds()
	if base <= 0 {
		return 0
	}
	s := dm.Shrink(base, min(minReveal, base), at)
	return time.Duration(math.Round(s*1000)) * time.Millisecond
}
