// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// MarcoPoloConfig contains all configuration for the Marco Polo pool game.
type MarcoPoloConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Round      RoundConfig      `yaml:"round"`
	Player     PlayerConfig     `yaml:"player"`
	Call       CallConfig       `yaml:"call"`
	Wall       WallConfig       `yaml:"wall"`
	Fish       FishConfig       `yaml:"fish"`
	Sharks     PursuerConfig    `yaml:"sharks"`
	Combo      ComboConfig      `yaml:"combo"`
	Fog        FogConfig        `yaml:"fog"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PacmanConfig contains all configuration for the Pac-Man 3D maze game.
type PacmanConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Round      RoundConfig      `yaml:"round"`
	Player     PlayerConfig     `yaml:"player"`
	Pellets    PelletConfig     `yaml:"pellets"`
	Ghosts     PursuerConfig    `yaml:"ghosts"`
	Power      PowerConfig      `yaml:"power"`
	Combo      ComboConfig      `yaml:"combo"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig is the playfield size in world units.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RoundConfig holds round-level limits.
type RoundConfig struct {
	Lives         int     `yaml:"lives"`
	TimeLimitSec  int     `yaml:"time_limit_sec"` // 0 = untimed
	MaxLevel      int     `yaml:"max_level"`      // 0 = endless
	MaxDeltaMs    int     `yaml:"max_delta_ms"`
	SpatialHashAt int     `yaml:"spatial_hash_at"` // live collectibles that switch on the spatial hash
	CaptureSlack  float64 `yaml:"capture_slack"`
}

// PlayerConfig defines the controlled entity.
type PlayerConfig struct {
	StartX   float64 `yaml:"start_x"` // negative = arena center
	StartY   float64 `yaml:"start_y"`
	Radius   float64 `yaml:"radius"`
	Speed    float64 `yaml:"speed"`
	Response float64 `yaml:"response"`
}

// CallConfig defines the Marco Polo call.
type CallConfig struct {
	Charges    int     `yaml:"charges"`
	CooldownMs int     `yaml:"cooldown_ms"`
	ActiveMs   int     `yaml:"active_ms"`
	Radius     float64 `yaml:"radius"`
}

// WallConfig defines the pool-edge penalty.
type WallConfig struct {
	Penalty    int     `yaml:"penalty"`
	CooldownMs int     `yaml:"cooldown_ms"`
	Bounce     float64 `yaml:"bounce"`
}

// FishConfig defines the fish collectibles and their AI.
type FishConfig struct {
	Count            int     `yaml:"count"`
	Radius           float64 `yaml:"radius"`
	Points           int     `yaml:"points"`
	MinPlayerDist    float64 `yaml:"min_player_dist"`
	Speed            float64 `yaml:"speed"`
	FleeSpeed        float64 `yaml:"flee_speed"`
	FleeDistance     float64 `yaml:"flee_distance"`
	FleeExitDistance float64 `yaml:"flee_exit_distance"`
	Response         float64 `yaml:"response"`
	DecisionMinMs    int     `yaml:"decision_min_ms"`
	DecisionMaxMs    int     `yaml:"decision_max_ms"`
	IdleChance       float64 `yaml:"idle_chance"`
	RetargetChance   float64 `yaml:"retarget_chance"`
	ArriveDistance   float64 `yaml:"arrive_distance"`
	FreezeMs         int     `yaml:"freeze_ms"`
	RevealMs         int     `yaml:"reveal_ms"`
}

// FogConfig limits what the swimmer can see.
type FogConfig struct {
	Radius float64 `yaml:"radius"`
}

// PelletConfig defines the Pac-Man pellet lattice.
type PelletConfig struct {
	Spacing       float64 `yaml:"spacing"`
	Radius        float64 `yaml:"radius"`
	Points        int     `yaml:"points"`
	MinPlayerDist float64 `yaml:"min_player_dist"`
	PowerCount    int     `yaml:"power_count"`
	PowerRadius   float64 `yaml:"power_radius"`
	PowerPoints   int     `yaml:"power_points"`
}

// PursuerConfig defines ghosts or sharks.
type PursuerConfig struct {
	Count                 int      `yaml:"count"`
	Radius                float64  `yaml:"radius"`
	Speed                 float64  `yaml:"speed"`
	Points                int      `yaml:"points"`
	DecisionMinMs         int      `yaml:"decision_min_ms"`
	DecisionMaxMs         int      `yaml:"decision_max_ms"`
	SpawnDelaysMs         []int    `yaml:"spawn_delays_ms"`
	Personalities         []string `yaml:"personalities"` // direct, ambusher, flanker, opportunist
	LeadDistance          float64  `yaml:"lead_distance"`
	FlankOffset           float64  `yaml:"flank_offset"`
	OpportunistRange      float64  `yaml:"opportunist_range"`
	FleeLookahead         float64  `yaml:"flee_lookahead"`
	Jitter                float64  `yaml:"jitter"`
	EdgeMargin            float64  `yaml:"edge_margin"`
	EdgeRepulsion         float64  `yaml:"edge_repulsion"`
	ChaseResponse         float64  `yaml:"chase_response"`
	FrightenedResponse    float64  `yaml:"frightened_response"`
	EatenResponse         float64  `yaml:"eaten_response"`
	FrightenedSpeedFactor float64  `yaml:"frightened_speed_factor"`
	EatenSpeedFactor      float64  `yaml:"eaten_speed_factor"`
}

// PowerConfig defines the frightened window.
type PowerConfig struct {
	DurationMs int `yaml:"duration_ms"`
}

// ComboConfig defines the capture multiplier.
type ComboConfig struct {
	Cap       int `yaml:"cap"`
	TimeoutMs int `yaml:"timeout_ms"` // 0 = no decay
}

// ScheduleConfig is the scatter/chase timing.
type ScheduleConfig struct {
	Phases []PhaseConfig `yaml:"phases"`
	Cycle  []PhaseConfig `yaml:"cycle"`
}

// PhaseConfig is one schedule entry.
type PhaseConfig struct {
	Mode string `yaml:"mode"` // scatter or chase
	Ms   int    `yaml:"ms"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", "level", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks/level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
	TimeReduction   float64 `yaml:"time_reduction"`   // Fraction of timers removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
