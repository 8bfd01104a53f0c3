package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

type tone struct {
	freq  float64 // start frequency
	slide float64 // frequency change per second
	phase float64
	left  int
	wave  Wave
	rate  beep.SampleRate
}

// Tone streams a mono wave for d, optionally sliding from freq to end.
func Tone(freq, end float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	slide := 0.0
	if d > 0 {
		slide = (end - freq) / d.Seconds()
	}
	return &tone{freq: freq, slide: slide, left: rate.N(d), wave: wave, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.left <= 0 {
		return 0, false
	}
	step := 1 / float64(t.rate)
	n := min(len(samples), t.left)
	for i := range n {
		var v float64
		switch t.wave {
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		samples[i][0], samples[i][1] = v, v

		t.phase += t.freq * step
		t.phase -= math.Floor(t.phase)
		t.freq = math.Max(t.freq+t.slide*step, 0)
	}
	t.left -= n
	return n, true
}

func (t *tone) Err() error { return nil }

type envelope struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

// Shape applies a linear attack and release over a stream of length d.
func Shape(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, total: rate.N(d), attack: rate.N(attack), release: rate.N(release)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := range n {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if rest := e.total - e.pos; rest < e.release {
			vol = math.Max(float64(rest)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// gain wraps s in a volume effect. math.Log2(0) is -Inf, so zero is silent.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
