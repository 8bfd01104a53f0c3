package config

import (
	_ "embed"
)

//go:embed defaults/marcopolo.yaml
var defaultMarcoPoloYAML []byte

//go:embed defaults/pacman.yaml
var defaultPacmanYAML []byte

// DefaultMarcoPoloConfig returns the default Marco Polo configuration.
func DefaultMarcoPoloConfig() MarcoPoloConfig {
	return MarcoPoloConfig{
		Arena: ArenaConfig{Width: 80, Height: 40},
		Round: RoundConfig{
			Lives:         1,
			TimeLimitSec:  90,
			MaxDeltaMs:    100,
			SpatialHashAt: 32,
			CaptureSlack:  0.3,
		},
		Player: PlayerConfig{
			StartX:   -1,
			StartY:   -1,
			Radius:   1.2,
			Speed:    14,
			Response: 6,
		},
		Call: CallConfig{
			Charges:    5,
			CooldownMs: 2500,
			ActiveMs:   800,
			Radius:     25,
		},
		Wall: WallConfig{
			Penalty:    5,
			CooldownMs: 400,
			Bounce:     0.5,
		},
		Fish: FishConfig{
			Count:            8,
			Radius:           0.9,
			Points:           100,
			MinPlayerDist:    12,
			Speed:            5,
			FleeSpeed:        11,
			FleeDistance:     7,
			FleeExitDistance: 14,
			Response:         3,
			DecisionMinMs:    800,
			DecisionMaxMs:    2500,
			IdleChance:       0.25,
			RetargetChance:   0.35,
			ArriveDistance:   1.5,
			FreezeMs:         600,
			RevealMs:         1800,
		},
		Sharks: PursuerConfig{
			Count:                 0,
			Radius:                1.6,
			Speed:                 8,
			DecisionMinMs:         700,
			DecisionMaxMs:         1600,
			Personalities:         []string{"direct", "ambusher"},
			LeadDistance:          8,
			FlankOffset:           6,
			OpportunistRange:      10,
			FleeLookahead:         12,
			Jitter:                0.15,
			EdgeMargin:            4,
			EdgeRepulsion:         1.5,
			ChaseResponse:         2.5,
			FrightenedResponse:    5,
			EatenResponse:         6,
			FrightenedSpeedFactor: 0.5,
			EatenSpeedFactor:      1.5,
		},
		Combo: ComboConfig{Cap: 4, TimeoutMs: 3000},
		Fog:   FogConfig{Radius: 10},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 1,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.6,
				TimeReduction:   0.3,
			},
		},
	}
}

// DefaultPacmanConfig returns the default Pac-Man 3D configuration.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Arena: ArenaConfig{Width: 28, Height: 31},
		Round: RoundConfig{
			Lives:         3,
			MaxDeltaMs:    100,
			SpatialHashAt: 24,
			CaptureSlack:  0.15,
		},
		Player: PlayerConfig{
			StartX:   14,
			StartY:   23,
			Radius:   0.6,
			Speed:    7.5,
			Response: 14,
		},
		Pellets: PelletConfig{
			Spacing:       2,
			Radius:        0.2,
			Points:        10,
			MinPlayerDist: 1.5,
			PowerCount:    4,
			PowerRadius:   0.45,
			PowerPoints:   50,
		},
		Ghosts: PursuerConfig{
			Count:                 4,
			Radius:                0.7,
			Speed:                 6.5,
			Points:                200,
			DecisionMinMs:         400,
			DecisionMaxMs:         1200,
			SpawnDelaysMs:         []int{0, 3000, 6000, 9000},
			Personalities:         []string{"direct", "ambusher", "flanker", "opportunist"},
			LeadDistance:          4,
			FlankOffset:           4,
			OpportunistRange:      8,
			FleeLookahead:         8,
			Jitter:                0.12,
			EdgeMargin:            2,
			EdgeRepulsion:         1.5,
			ChaseResponse:         4,
			FrightenedResponse:    8,
			EatenResponse:         10,
			FrightenedSpeedFactor: 0.5,
			EatenSpeedFactor:      2,
		},
		Power: PowerConfig{DurationMs: 6000},
		Combo: ComboConfig{Cap: 8},
		Schedule: ScheduleConfig{
			Phases: []PhaseConfig{
				{Mode: "scatter", Ms: 7000},
				{Mode: "chase", Ms: 20000},
				{Mode: "scatter", Ms: 7000},
				{Mode: "chase", Ms: 20000},
				{Mode: "scatter", Ms: 5000},
			},
			Cycle: []PhaseConfig{
				{Mode: "chase", Ms: 20000},
				{Mode: "scatter", Ms: 5000},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				TimeReduction:   0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "marcopolo":
		return defaultMarcoPoloYAML
	case "pacman":
		return defaultPacmanYAML
	default:
		return nil
	}
}
