package sim

import (
	"math"

	"github.com/vovakirdan/chase-arcade/internal/core"
)

// EntityID identifies an entity for its whole lifetime.
type EntityID uint32

// Entity is the capability set shared by everything the engine moves.
type Entity struct {
	ID     EntityID
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Active bool

	// Visual is owned by the renderer. The engine copies it along but never
	// reads it.
	Visual any
}

// Player is the controlled entity. Timers are in seconds.
type Player struct {
	Entity
	Speed        float64
	Facing       float64 // radians, follows velocity
	Special      bool
	SpecialUntil float64 // engine clock
	Cooldown     float64 // remaining
	Charges      int

	wallCooldown float64
}

// Mode is a pursuer behavior mode.
type Mode uint8

const (
	ModeScatter Mode = iota
	ModeChase
	ModeFrightened
	ModeEaten
)

func (m Mode) String() string {
	switch m {
	case ModeScatter:
		return "scatter"
	case ModeChase:
		return "chase"
	case ModeFrightened:
		return "frightened"
	case ModeEaten:
		return "eaten"
	default:
		return "unknown"
	}
}

// ParseMode reads a schedule mode name. Only scatter and chase can be scheduled.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "scatter":
		return ModeScatter, true
	case "chase":
		return ModeChase, true
	default:
		return ModeChase, false
	}
}

// Personality selects a pursuer's chase targeting heuristic.
type Personality uint8

const (
	Direct Personality = iota
	Ambusher
	Flanker
	Opportunist
)

func (p Personality) String() string {
	switch p {
	case Direct:
		return "direct"
	case Ambusher:
		return "ambusher"
	case Flanker:
		return "flanker"
	case Opportunist:
		return "opportunist"
	default:
		return "unknown"
	}
}

// ParsePersonality reads a personality name.
func ParsePersonality(s string) (Personality, bool) {
	for p := Direct; p <= Opportunist; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return Direct, false
}

// Pursuer is an AI antagonist. Active stays false until SpawnDelay seconds
// of level time have passed.
type Pursuer struct {
	Entity
	Mode        Mode
	BaseSpeed   float64
	Speed       float64
	Decision    float64 // seconds until the next retarget
	SpawnDelay  float64 // seconds
	Personality Personality
	Home        core.Vec2
	Target      core.Vec2
}

// Kind tells collectibles apart, and marks pursuer defeats in Captured.
type Kind uint8

const (
	KindPellet Kind = iota
	KindPower
	KindFish
	KindPursuer
)

func (k Kind) String() string {
	switch k {
	case KindPellet:
		return "pellet"
	case KindPower:
		return "power"
	case KindFish:
		return "fish"
	case KindPursuer:
		return "pursuer"
	default:
		return "unknown"
	}
}

// FishState is the sub-state of a fish collectible.
type FishState uint8

const (
	FishIdle FishState = iota
	FishSwimming
	FishFleeing
	FishResponding
)

func (s FishState) String() string {
	switch s {
	case FishIdle:
		return "idle"
	case FishSwimming:
		return "swimming"
	case FishFleeing:
		return "fleeing"
	case FishResponding:
		return "responding"
	default:
		return "unknown"
	}
}

// Collectible is a pellet, power pellet or fish. Caught is terminal.
type Collectible struct {
	Entity
	Kind   Kind
	Points int
	Caught bool

	// Fish only.
	AI          FishState
	Target      core.Vec2
	RevealStart float64
	RevealEnd   float64
	FreezeUntil float64
	Decision    float64
}

// Revealed reports whether the fish is visible through fog at engine time now.
func (c Collectible) Revealed(now float64) bool {
	return c.RevealEnd > c.RevealStart && now >= c.RevealStart && now <= c.RevealEnd
}

type idSource struct{ next EntityID }

func (s *idSource) take() EntityID {
	s.next++
	return s.next
}

func newPlayer(id EntityID, r Rules) Player {
	return Player{
		Entity: Entity{
			ID:     id,
			Pos:    r.Player.Start,
			Radius: r.Player.Radius,
			Active: true,
		},
		Speed:   r.Player.Speed,
		Charges: r.Special.Charges,
	}
}

// spawnPursuers spreads pursuers evenly around the arena perimeter.
// Each one's spawn point is also its scatter home.
func spawnPursuers(ids *idSource, r Rules, speedScale float64) []Pursuer {
	q := r.Pursuers
	out := make([]Pursuer, q.Count)
	edge := r.Arena.Inset(q.Radius)
	for i := range out {
		home := edge.PerimeterPoint(float64(i) / float64(q.Count))
		p := Pursuer{
			Entity: Entity{
				ID:     ids.take(),
				Pos:    home,
				Radius: q.Radius,
			},
			Mode:      ModeScatter,
			BaseSpeed: q.Speed * speedScale,
			Home:      home,
			Target:    home,
		}
		p.Speed = p.BaseSpeed
		if i < len(q.SpawnDelays) {
			p.SpawnDelay = q.SpawnDelays[i].Seconds()
		}
		if n := len(q.Personalities); n > 0 {
			p.Personality = q.Personalities[i%n]
		} else {
			p.Personality = Personality(i % 4)
		}
		out[i] = p
	}
	return out
}

const scatterAttempts = 64

// spawnCollectibles builds the collectible set for a round or level.
func spawnCollectibles(ids *idSource, r Rules, rng core.Rand, dst []Collectible) []Collectible {
	dst = dst[:0]
	c := r.Collectibles
	switch c.Layout {
	case LayoutGrid:
		return spawnGrid(ids, r, dst)
	default:
		inner := r.Arena.Inset(c.Radius)
		minSq := c.MinPlayerDist * c.MinPlayerDist
		for i := 0; i < c.Count; i++ {
			var pos core.Vec2
			for attempt := 0; attempt < scatterAttempts; attempt++ {
				pos = core.V2(
					inner.MinX+rng.Float64()*inner.Width(),
					inner.MinY+rng.Float64()*inner.Height(),
				)
				if pos.DistSq(r.Player.Start) >= minSq {
					break
				}
			}
			dst = append(dst, newCollectible(ids.take(), c.Kind, pos, c.Radius, c.Points, r, rng))
		}
		return dst
	}
}

func spawnGrid(ids *idSource, r Rules, dst []Collectible) []Collectible {
	c := r.Collectibles
	cols := int(math.Floor(r.Arena.Width() / c.Spacing))
	rows := int(math.Floor(r.Arena.Height() / c.Spacing))
	if cols < 1 || rows < 1 {
		return dst
	}
	offX := r.Arena.MinX + (r.Arena.Width()-float64(cols-1)*c.Spacing)/2
	offY := r.Arena.MinY + (r.Arena.Height()-float64(rows-1)*c.Spacing)/2

	corners := [4][2]int{{0, 0}, {cols - 1, 0}, {cols - 1, rows - 1}, {0, rows - 1}}
	isPower := func(i, j int) bool {
		for k := 0; k < c.PowerCount; k++ {
			if corners[k][0] == i && corners[k][1] == j {
				return true
			}
		}
		return false
	}

	minSq := c.MinPlayerDist * c.MinPlayerDist
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			pos := core.V2(offX+float64(i)*c.Spacing, offY+float64(j)*c.Spacing)
			if isPower(i, j) {
				dst = append(dst, newCollectible(ids.take(), KindPower, pos, c.PowerRadius, c.PowerPoints, r, nil))
				continue
			}
			if pos.DistSq(r.Player.Start) < minSq {
				continue
			}
			dst = append(dst, newCollectible(ids.take(), c.Kind, pos, c.Radius, c.Points, r, nil))
		}
	}
	return dst
}

func newCollectible(id EntityID, kind Kind, pos core.Vec2, radius float64, points int, r Rules, rng core.Rand) Collectible {
	col := Collectible{
		Entity: Entity{ID: id, Pos: pos, Radius: radius, Active: true},
		Kind:   kind,
		Points: points,
		Target: pos,
	}
	if kind == KindFish && rng != nil {
		col.Decision = randRange(rng, r.Fish.DecisionMin.Seconds(), r.Fish.DecisionMax.Seconds())
	}
	return col
}

func randRange(rng core.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
