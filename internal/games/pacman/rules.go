package pacman

import (
	"github.com/vovakirdan/chase-arcade/internal/config"
	"github.com/vovakirdan/chase-arcade/internal/games/arena"
	"github.com/vovakirdan/chase-arcade/internal/sim"
)

// Rules turns the maze tuning into engine rules. The difficulty manager
// sets the first-level ghost speed and scales it on every level clear.
func Rules(cfg config.PacmanConfig) sim.Rules {
	dm := config.NewDifficultyManager(cfg.Difficulty)

	b := arena.Bounds(cfg.Arena)
	r := sim.Rules{
		Arena:    b,
		OnClear:  sim.ClearAdvance,
		Player:   arena.Player(cfg.Player, b),
		Pursuers: arena.Pursuers(cfg.Ghosts, dm.Speed(1, config.Progress{Level: 1})),
		Collectibles: sim.CollectibleRules{
			Layout:        sim.LayoutGrid,
			Kind:          sim.KindPellet,
			Spacing:       cfg.Pellets.Spacing,
			Radius:        cfg.Pellets.Radius,
			Points:        cfg.Pellets.Points,
			MinPlayerDist: cfg.Pellets.MinPlayerDist,
			PowerCount:    cfg.Pellets.PowerCount,
			PowerRadius:   cfg.Pellets.PowerRadius,
			PowerPoints:   cfg.Pellets.PowerPoints,
		},
		Combo:         arena.Combo(cfg.Combo),
		Power:         arena.Millis(cfg.Power.DurationMs),
		Schedule:      arena.Schedule(cfg.Schedule),
		SpeedForLevel: dm.LevelSpeed(),
	}
	arena.ApplyRound(&r, cfg.Round)
	return r
}
