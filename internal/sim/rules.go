package sim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/chase-arcade/internal/core"
)

// ErrInvalidConfig is matched by every error New returns for bad rules.
var ErrInvalidConfig = errors.New("sim: invalid config")

// ConfigError names the rule that failed validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("sim: invalid config: %s: %s", e.Field, e.Reason)
}

// Is reports ErrInvalidConfig so callers can use errors.Is.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Layout selects how collectibles are placed at round start.
type Layout uint8

const (
	// LayoutScatter places Count collectibles at random, away from the player.
	LayoutScatter Layout = iota
	// LayoutGrid places collectibles on a lattice covering the arena.
	LayoutGrid
)

// ClearPolicy decides what clearing every collectible does.
type ClearPolicy uint8

const (
	ClearWin ClearPolicy = iota
	ClearAdvance
)

// DefaultMaxDelta is the per-step delta ceiling used when Rules leaves it unset.
const DefaultMaxDelta = 100 * time.Millisecond

// PlayerRules describes the controlled entity.
type PlayerRules struct {
	Start    core.Vec2
	Radius   float64
	Speed    float64 // units per second
	Response float64 // velocity smoothing rate per second
}

// SpecialRules describes the player's special action (the Marco Polo call).
// Zero Charges disables the action.
type SpecialRules struct {
	Charges  int
	Cooldown time.Duration
	Duration time.Duration
	Radius   float64 // area of effect on fish
	Shield   bool    // player cannot be hit while the action is active
}

// WallRules is the response to the player touching the arena edge.
type WallRules struct {
	Penalty  int
	Cooldown time.Duration
	Bounce   float64 // fraction of the normal velocity kept, reversed
}

// PursuerRules configures the antagonists.
type PursuerRules struct {
	Count         int
	Radius        float64
	Speed         float64
	DecisionMin   time.Duration
	DecisionMax   time.Duration
	SpawnDelays   []time.Duration // by index, missing entries mean no delay
	Personalities []Personality   // by index, cycled through when shorter than Count
	Points        int             // base points for defeating a frightened pursuer

	LeadDistance     float64 // ambusher look-ahead
	FlankOffset      float64 // flanker side offset
	OpportunistRange float64 // opportunist retreats inside this distance
	FleeLookahead    float64 // frightened target distance

	Jitter        float64 // fraction of speed added as random noise
	EdgeMargin    float64
	EdgeRepulsion float64 // inward push per unit of penetration

	ChaseResponse      float64
	FrightenedResponse float64
	EatenResponse      float64

	FrightenedSpeedFactor float64
	EatenSpeedFactor      float64
}

// CollectibleRules configures what the player gathers.
type CollectibleRules struct {
	Layout        Layout
	Kind          Kind // KindPellet or KindFish
	Count         int  // LayoutScatter only
	Spacing       float64
	Radius        float64
	Points        int
	MinPlayerDist float64

	PowerCount  int // grid corners promoted to power pellets
	PowerRadius float64
	PowerPoints int
}

// FishRules configures the collectible AI of the fish variant.
type FishRules struct {
	Speed            float64
	FleeSpeed        float64
	FleeDistance     float64
	FleeExitDistance float64
	Response         float64
	DecisionMin      time.Duration
	DecisionMax      time.Duration
	IdleChance       float64 // probability a decision picks Idle
	RetargetChance   float64 // probability a decision retargets mid-swim
	ArriveDistance   float64
	Freeze           time.Duration
	Reveal           time.Duration
}

// ComboRules configures the consecutive-capture multiplier.
type ComboRules struct {
	Cap     int           // highest multiplier, 0 means uncapped
	Timeout time.Duration // fish capture window, 0 disables decay
}

// Phase is one entry of the scatter/chase schedule.
type Phase struct {
	Mode     Mode
	Duration time.Duration
}

// Schedule alternates pursuer modes over level time. Phases play once,
// then Cycle repeats forever. An empty schedule is permanent Chase.
type Schedule struct {
	Phases []Phase
	Cycle  []Phase
}

// CanonicalSchedule is the arcade scatter/chase timing.
func CanonicalSchedule() Schedule {
	return Schedule{
		Phases: []Phase{
			{ModeScatter, 7 * time.Second},
			{ModeChase, 20 * time.Second},
			{ModeScatter, 7 * time.Second},
			{ModeChase, 20 * time.Second},
			{ModeScatter, 5 * time.Second},
		},
		Cycle: []Phase{
			{ModeChase, 20 * time.Second},
			{ModeScatter, 5 * time.Second},
		},
	}
}

// ModeAt returns the scheduled mode after t seconds of level time.
func (s Schedule) ModeAt(t float64) Mode {
	for _, p := range s.Phases {
		d := p.Duration.Seconds()
		if t < d {
			return p.Mode
		}
		t -= d
	}
	var total float64
	for _, p := range s.Cycle {
		total += p.Duration.Seconds()
	}
	if total <= 0 {
		if len(s.Phases) > 0 {
			return s.Phases[len(s.Phases)-1].Mode
		}
		return ModeChase
	}
	t = math.Mod(t, total)
	for _, p := range s.Cycle {
		d := p.Duration.Seconds()
		if t < d {
			return p.Mode
		}
		t -= d
	}
	return s.Cycle[len(s.Cycle)-1].Mode
}

// Rules is the behavior table that parameterizes one game variant.
type Rules struct {
	Arena     core.Bounds
	Lives     int
	TimeLimit time.Duration // 0 means untimed
	MaxDelta  time.Duration
	OnClear   ClearPolicy
	MaxLevel  int // with ClearAdvance, clearing this level wins; 0 is endless

	Player       PlayerRules
	Special      SpecialRules
	Wall         WallRules
	Pursuers     PursuerRules
	Collectibles CollectibleRules
	Fish         FishRules
	Combo        ComboRules
	Power        time.Duration // frightened window; 0 disables power pellets
	Schedule     Schedule

	CaptureSlack   float64
	SpatialHashMin int // live collectibles at which the spatial hash kicks in, 0 never

	// SpeedForLevel scales pursuer base speed per level; nil keeps it flat.
	SpeedForLevel func(level int) float64
}

// Validate checks structural invariants. Tuning values that are merely
// out of range are left to the config layer to clamp.
func (r Rules) Validate() error {
	a := r.Arena
	if !finite(a.MinX, a.MinY, a.MaxX, a.MaxY) || a.Width() <= 0 || a.Height() <= 0 {
		return &ConfigError{"Arena", "must have positive width and height"}
	}
	if r.Lives < 1 {
		return &ConfigError{"Lives", "must be at least 1"}
	}
	if r.TimeLimit < 0 {
		return &ConfigError{"TimeLimit", "must not be negative"}
	}
	if r.MaxDelta < 0 {
		return &ConfigError{"MaxDelta", "must not be negative"}
	}
	if r.MaxLevel < 0 {
		return &ConfigError{"MaxLevel", "must not be negative"}
	}

	p := r.Player
	if !finite(p.Radius, p.Speed, p.Response) || p.Radius <= 0 {
		return &ConfigError{"Player.Radius", "must be positive"}
	}
	if 2*p.Radius > math.Min(a.Width(), a.Height()) {
		return &ConfigError{"Player.Radius", "does not fit inside the arena"}
	}
	if p.Speed < 0 || p.Response < 0 {
		return &ConfigError{"Player.Speed", "speed and response must not be negative"}
	}
	if !p.Start.Finite() || !a.Contains(p.Start) {
		return &ConfigError{"Player.Start", "must lie inside the arena"}
	}

	if r.Special.Charges < 0 || r.Special.Cooldown < 0 || r.Special.Duration < 0 || r.Special.Radius < 0 {
		return &ConfigError{"Special", "values must not be negative"}
	}
	if r.Wall.Penalty < 0 || r.Wall.Cooldown < 0 || r.Wall.Bounce < 0 || r.Wall.Bounce > 1 {
		return &ConfigError{"Wall", "penalty and cooldown must not be negative, bounce must be in [0,1]"}
	}

	if err := r.validatePursuers(); err != nil {
		return err
	}
	if err := r.validateCollectibles(); err != nil {
		return err
	}

	if r.Combo.Cap < 0 || r.Combo.Timeout < 0 {
		return &ConfigError{"Combo", "values must not be negative"}
	}
	if r.Power < 0 {
		return &ConfigError{"Power", "must not be negative"}
	}
	if r.CaptureSlack < 0 || r.SpatialHashMin < 0 {
		return &ConfigError{"CaptureSlack", "must not be negative"}
	}
	for _, ph := range append(append([]Phase(nil), r.Schedule.Phases...), r.Schedule.Cycle...) {
		if ph.Duration < 0 {
			return &ConfigError{"Schedule", "phase durations must not be negative"}
		}
		if ph.Mode != ModeScatter && ph.Mode != ModeChase {
			return &ConfigError{"Schedule", "phases may only be Scatter or Chase"}
		}
	}
	return nil
}

func (r Rules) validatePursuers() error {
	q := r.Pursuers
	if q.Count < 0 {
		return &ConfigError{"Pursuers.Count", "must not be negative"}
	}
	if q.Count == 0 {
		return nil
	}
	if !finite(q.Radius, q.Speed) || q.Radius <= 0 {
		return &ConfigError{"Pursuers.Radius", "must be positive"}
	}
	if q.Speed < 0 {
		return &ConfigError{"Pursuers.Speed", "must not be negative"}
	}
	if q.DecisionMin <= 0 || q.DecisionMax < q.DecisionMin {
		return &ConfigError{"Pursuers.DecisionMin", "decision range must be positive and ordered"}
	}
	for _, d := range q.SpawnDelays {
		if d < 0 {
			return &ConfigError{"Pursuers.SpawnDelays", "must not be negative"}
		}
	}
	for _, pe := range q.Personalities {
		if pe > Opportunist {
			return &ConfigError{"Pursuers.Personalities", "unknown personality"}
		}
	}
	if q.FrightenedSpeedFactor < 0 || q.EatenSpeedFactor < 0 || q.Points < 0 {
		return &ConfigError{"Pursuers", "factors and points must not be negative"}
	}
	if r.Power > 0 && q.EatenSpeedFactor <= 0 {
		return &ConfigError{"Pursuers.EatenSpeedFactor", "eaten pursuers could never return home"}
	}
	return nil
}

func (r Rules) validateCollectibles() error {
	c := r.Collectibles
	if c.Kind != KindPellet && c.Kind != KindFish {
		return &ConfigError{"Collectibles.Kind", "must be pellet or fish"}
	}
	if !finite(c.Radius, c.Spacing, c.MinPlayerDist, c.PowerRadius) || c.Radius <= 0 {
		return &ConfigError{"Collectibles.Radius", "must be positive"}
	}
	if c.Points < 0 || c.PowerPoints < 0 || c.MinPlayerDist < 0 {
		return &ConfigError{"Collectibles", "points and distances must not be negative"}
	}
	switch c.Layout {
	case LayoutScatter:
		if c.Count < 1 {
			return &ConfigError{"Collectibles.Count", "round needs at least one collectible"}
		}
	case LayoutGrid:
		if c.Spacing <= 0 {
			return &ConfigError{"Collectibles.Spacing", "must be positive"}
		}
		if c.PowerCount < 0 || c.PowerCount > 4 {
			return &ConfigError{"Collectibles.PowerCount", "must be between 0 and 4"}
		}
		if c.PowerCount > 0 && c.PowerRadius <= 0 {
			return &ConfigError{"Collectibles.PowerRadius", "must be positive"}
		}
	default:
		return &ConfigError{"Collectibles.Layout", "unknown layout"}
	}
	if c.Kind == KindFish {
		f := r.Fish
		if f.DecisionMin <= 0 || f.DecisionMax < f.DecisionMin {
			return &ConfigError{"Fish.DecisionMin", "decision range must be positive and ordered"}
		}
		if f.FleeExitDistance < f.FleeDistance {
			return &ConfigError{"Fish.FleeExitDistance", "must not be below FleeDistance"}
		}
		if f.Speed < 0 || f.FleeSpeed < 0 || f.Response < 0 || f.Freeze < 0 || f.Reveal < 0 {
			return &ConfigError{"Fish", "values must not be negative"}
		}
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
