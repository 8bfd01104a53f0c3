package sim

// Status is the round state machine:
// Ready -> Playing <-> Paused -> Won | Lost.
type Status uint8

const (
	StatusReady Status = iota
	StatusPlaying
	StatusPaused
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether only Reset can leave this status.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Combo tracks consecutive qualifying captures.
type Combo struct {
	Count     int
	ExpiresAt float64 // engine clock, used by the fish capture window
}

// maxMultiplier bounds an uncapped combo.
const maxMultiplier = 1 << 30

// Multiplier is 2^Count, capped when limit > 0 and saturating at
// maxMultiplier otherwise.
func (c Combo) Multiplier(limit int) int {
	if limit <= 0 || limit > maxMultiplier {
		limit = maxMultiplier
	}
	m := 1
	for i := 0; i < c.Count; i++ {
		m *= 2
		if m >= limit {
			return limit
		}
	}
	return m
}

// Round is the mutable per-round state. Times are seconds.
type Round struct {
	Score         int
	Lives         int
	Level         int
	Status        Status
	Elapsed       float64
	LevelElapsed  float64
	TimeRemaining float64
	Combo         Combo
	PowerUntil    float64
	Powered       bool
	Collected     int
	Total         int
}

// Stats is the read-only snapshot handed to UI collaborators.
type Stats struct {
	Score          int
	Best           int
	Lives          int
	Level          int
	Status         Status
	Elapsed        float64
	TimeRemaining  float64
	Collected      int
	Total          int
	ChargesLeft    int
	Cooldown       float64
	Combo          int
	Multiplier     int
	Frightened     bool
	FrightenedLeft float64
	ScheduleMode   Mode
}
