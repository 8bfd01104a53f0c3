// Package audio plays synthesized sound effects for gameplay events.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/chase-arcade/internal/sim"
)

// Options configures the speaker.
type Options struct {
	Enabled    bool
	Volume     float64 // 0..1
	SampleRate int
	// MinGap drops repeats of the same cue closer together than this.
	MinGap time.Duration
}

// DefaultOptions returns enabled audio at half volume.
func DefaultOptions() Options {
	return Options{
		Enabled:    true,
		Volume:     0.5,
		SampleRate: 44100,
		MinGap:     50 * time.Millisecond,
	}
}

// Speaker turns engine events into sound. It stays silent when disabled
// or when no audio device could be opened.
type Speaker struct {
	mu     sync.Mutex
	opts   Options
	rate   beep.SampleRate
	mixer  *beep.Mixer
	log    *log.Logger
	active bool

	now    func() time.Time
	output func(beep.Streamer)
	last   [cueCount]time.Time
	played [cueCount]int
}

var _ sim.EffectsSink = (*Speaker)(nil)

// New creates a speaker. Call Start to open the device.
func New(opts Options, logger *log.Logger) *Speaker {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultOptions().SampleRate
	}
	opts.Volume = max(0, min(opts.Volume, 1))
	return &Speaker{
		opts:  opts,
		rate:  beep.SampleRate(opts.SampleRate),
		mixer: &beep.Mixer{},
		log:   logger,
		now:   time.Now,
	}
}

// Start opens the audio device. Failure leaves the speaker silent.
func (s *Speaker) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opts.Enabled || s.active {
		return
	}
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		if s.log != nil {
			s.log.Warn("audio unavailable, continuing muted", "err", err)
		}
		return
	}
	speaker.Play(s.mixer)
	s.output = func(st beep.Streamer) {
		speaker.Lock()
		s.mixer.Add(st)
		speaker.Unlock()
	}
	s.active = true
}

// Close stops playback.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.active = false
	s.output = nil
}

// Emit plays the cue for ev, if any.
func (s *Speaker) Emit(ev sim.Event) {
	s.Play(CueFor(ev))
}

// Play queues c unless the same cue played within MinGap.
func (s *Speaker) Play(c Cue) {
	if c <= CueNone || c >= cueCount {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.last[c].IsZero() && now.Sub(s.last[c]) < s.opts.MinGap {
		return
	}
	s.last[c] = now
	s.played[c]++

	if s.output == nil || !s.opts.Enabled {
		return
	}
	s.output(gain(Streamer(c, s.rate), s.opts.Volume))
}

// Played reports how many times c was accepted for playback.
func (s *Speaker) Played(c Cue) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c < 0 || c >= cueCount {
		return 0
	}
	return s.played[c]
}
