package sim

import "github.com/vovakirdan/chase-arcade/internal/core"

// Event is a discrete gameplay occurrence emitted by Step.
// Use a type switch to handle specific events.
type Event interface {
	isEvent()
}

// EffectsSink receives every event as it is emitted, before Step returns.
// Audio and other cosmetic collaborators implement it.
type EffectsSink interface {
	Emit(Event)
}

// Sinks fans events out to several sinks in order. Nil entries are skipped.
type Sinks []EffectsSink

func (s Sinks) Emit(ev Event) {
	for _, sink := range s {
		if sink != nil {
			sink.Emit(ev)
		}
	}
}

// EndReason explains a RoundEnded event.
type EndReason uint8

const (
	ReasonWon EndReason = iota
	ReasonTimeUp
	ReasonNoLives
	ReasonLevelCleared
)

func (r EndReason) String() string {
	switch r {
	case ReasonWon:
		return "won"
	case ReasonTimeUp:
		return "time_up"
	case ReasonNoLives:
		return "no_lives"
	case ReasonLevelCleared:
		return "level_cleared"
	default:
		return "unknown"
	}
}

// Captured is emitted when the player takes a collectible or defeats a
// frightened pursuer (Kind == KindPursuer).
type Captured struct {
	ID       EntityID
	Kind     Kind
	Points   int
	Position core.Vec2
	Combo    int // combo count after this capture
}

// SpecialActionUsed is emitted when the player triggers the special action.
type SpecialActionUsed struct {
	Position    core.Vec2
	ChargesLeft int
}

// TargetResponded is emitted for each fish caught in a call's radius.
type TargetResponded struct {
	ID       EntityID
	Position core.Vec2
}

// RoundEnded is emitted on Won, Lost and level clears.
type RoundEnded struct {
	Reason EndReason
	Score  int
	Level  int
}

// WallContact is emitted when the player hits the arena edge.
type WallContact struct {
	Position core.Vec2
	Penalty  int
}

// ScoreChanged is emitted whenever the score moves.
type ScoreChanged struct {
	NewScore int
	Delta    int
}

// PlayerHit is emitted when a pursuer costs the player a life.
type PlayerHit struct {
	By        EntityID
	LivesLeft int
}

type PowerStarted struct {
	DurationMs float64
}

type PowerEnded struct{}

// ModeChanged is emitted when the scatter/chase schedule flips.
type ModeChanged struct {
	Mode Mode
}

type PursuerReleased struct {
	ID EntityID
}

// PursuerRespawned is emitted when an eaten pursuer gets back home.
type PursuerRespawned struct {
	ID EntityID
}

// NewBest is emitted after a round end that set a best score.
type NewBest struct {
	Score int
}

func (Captured) isEvent()          {}
func (SpecialActionUsed) isEvent() {}
func (TargetResponded) isEvent()   {}
func (RoundEnded) isEvent()        {}
func (WallContact) isEvent()       {}
func (ScoreChanged) isEvent()      {}
func (PlayerHit) isEvent()         {}
func (PowerStarted) isEvent()      {}
func (PowerEnded) isEvent()        {}
func (ModeChanged) isEvent()       {}
func (PursuerReleased) isEvent()   {}
func (PursuerRespawned) isEvent()  {}
func (NewBest) isEvent()           {}
