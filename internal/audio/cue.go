package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/chase-arcade/internal/sim"
)

// Cue is a short sound effect.
type Cue int

const (
	CueNone Cue = iota
	CueChomp
	CuePower
	CueEatPursuer
	CueCatch
	CueCall
	CueAnswer
	CueWall
	CueHit
	CueLevel
	CueWin
	CueLose
	CueBest
	cueCount
)

var cueNames = [cueCount]string{
	"none", "chomp", "power", "eat", "catch", "call", "answer",
	"wall", "hit", "level", "win", "lose", "best",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// CueFor maps a gameplay event to the cue that plays for it.
func CueFor(ev sim.Event) Cue {
	switch ev := ev.(type) {
	case sim.Captured:
		switch ev.Kind {
		case sim.KindPellet:
			return CueChomp
		case sim.KindPower:
			return CuePower
		case sim.KindPursuer:
			return CueEatPursuer
		default:
			return CueCatch
		}
	case sim.SpecialActionUsed:
		return CueCall
	case sim.TargetResponded:
		return CueAnswer
	case sim.WallContact:
		return CueWall
	case sim.PlayerHit:
		return CueHit
	case sim.RoundEnded:
		switch ev.Reason {
		case sim.ReasonWon:
			return CueWin
		case sim.ReasonLevelCleared:
			return CueLevel
		default:
			return CueLose
		}
	case sim.NewBest:
		return CueBest
	}
	return CueNone
}

type note struct {
	freq, end float64
	d         time.Duration
	wave      Wave
}

var cueNotes = [cueCount][]note{
	CueChomp:      {{440, 220, 60 * time.Millisecond, WaveTriangle}},
	CuePower:      {{220, 880, 250 * time.Millisecond, WaveSquare}},
	CueEatPursuer: {{880, 1760, 120 * time.Millisecond, WaveSquare}, {1760, 1760, 80 * time.Millisecond, WaveSquare}},
	CueCatch:      {{987.77, 987.77, 80 * time.Millisecond, WaveSquare}, {1318.51, 1318.51, 160 * time.Millisecond, WaveSquare}},
	CueCall:       {{330, 330, 150 * time.Millisecond, WaveSine}, {262, 262, 200 * time.Millisecond, WaveSine}},
	CueAnswer:     {{660, 660, 90 * time.Millisecond, WaveSine}},
	CueWall:       {{110, 80, 100 * time.Millisecond, WaveSquare}},
	CueHit:        {{600, 80, 600 * time.Millisecond, WaveTriangle}},
	CueLevel:      {{523, 523, 100 * time.Millisecond, WaveSquare}, {659, 659, 100 * time.Millisecond, WaveSquare}, {784, 784, 200 * time.Millisecond, WaveSquare}},
	CueWin:        {{523, 523, 120 * time.Millisecond, WaveSine}, {784, 784, 120 * time.Millisecond, WaveSine}, {1047, 1047, 300 * time.Millisecond, WaveSine}},
	CueLose:       {{392, 392, 200 * time.Millisecond, WaveTriangle}, {294, 196, 500 * time.Millisecond, WaveTriangle}},
	CueBest:       {{1047, 1568, 300 * time.Millisecond, WaveSine}},
}

const (
	attack  = 5 * time.Millisecond
	release = 30 * time.Millisecond
)

// Streamer builds the sound for c at unity gain. CueNone gives nil.
func Streamer(c Cue, rate beep.SampleRate) beep.Streamer {
	if c <= CueNone || c >= cueCount {
		return nil
	}
	notes := cueNotes[c]
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, Shape(Tone(n.freq, n.end, n.d, n.wave, rate), n.d, attack, release, rate))
	}
	return beep.Seq(parts...)
}

// Length is the duration of the sound for c.
func Length(c Cue) time.Duration {
	if c <= CueNone || c >= cueCount {
		return 0
	}
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.d
	}
	return d
}
