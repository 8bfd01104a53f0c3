package arena

import (
	"math/rand"
	"strconv"

	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/registry"
	"github.com/vovakirdan/chase-arcade/internal/sim"
)

// popupLife is how long a capture popup stays on screen, in engine seconds.
const popupLife = 0.8

// Popup is a short-lived score label left where something was captured.
type Popup struct {
	Pos   core.Vec2
	Text  string
	Until float64
}

// Session owns one engine and adapts it to the registry contract.
// Games embed it and add ID, Title, Reset and Render.
type Session struct {
	host   registry.Host
	engine *sim.Engine
	last   sim.Result
	popups []Popup
}

// Attach stores the platform services used by the next Start.
func (s *Session) Attach(h registry.Host) {
	s.host = h
}

// Start builds a fresh engine for rules seeded with seed.
func (s *Session) Start(rules sim.Rules, seed int64) error {
	opts := []sim.Option{sim.WithRand(rand.New(rand.NewSource(seed)))}
	if s.host.Best != nil {
		opts = append(opts, sim.WithBest(s.host.Best))
	}
	if s.host.Sink != nil {
		opts = append(opts, sim.WithSink(s.host.Sink))
	}
	if s.host.Logger != nil {
		opts = append(opts, sim.WithLogger(s.host.Logger))
	}
	e, err := sim.New(rules, opts...)
	if err != nil {
		return err
	}
	s.engine = e
	s.last = sim.Result{Stats: e.Stats()}
	s.popups = s.popups[:0]
	return nil
}

// Engine returns the running engine, nil before Start.
func (s *Session) Engine() *sim.Engine {
	return s.engine
}

// Step advances the engine to the frame timestamp nowMs.
func (s *Session) Step(in core.Intent, nowMs float64) core.StepResult {
	if s.engine == nil {
		return core.StepResult{}
	}
	s.last = s.engine.Step(in, nowMs)
	s.trackPopups()
	return core.StepResult{State: s.State()}
}

func (s *Session) trackPopups() {
	now := s.engine.Now()
	live := s.popups[:0]
	for _, p := range s.popups {
		if p.Until > now {
			live = append(live, p)
		}
	}
	s.popups = live
	for _, ev := range s.last.Events {
		if c, ok := ev.(sim.Captured); ok && c.Points > 0 {
			s.popups = append(s.popups, Popup{Pos: c.Position, Text: "+" + strconv.Itoa(c.Points), Until: now + popupLife})
		}
	}
}

// Last returns the result of the latest Step.
func (s *Session) Last() sim.Result {
	return s.last
}

// Popups returns the capture labels still on screen.
func (s *Session) Popups() []Popup {
	return s.popups
}

// State returns the coarse state the platform needs.
func (s *Session) State() core.GameState {
	if s.engine == nil {
		return core.GameState{}
	}
	st := s.engine.Stats()
	return core.GameState{
		Score:    st.Score,
		Best:     st.Best,
		GameOver: st.Status.Terminal(),
		Won:      st.Status == sim.StatusWon,
		Paused:   st.Status == sim.StatusPaused,
	}
}
