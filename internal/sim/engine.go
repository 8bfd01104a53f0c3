// Package sim is the simulation engine shared by the chase games: entity
// state, pursuer and fish AI, collision detection and the round state
// machine. It is deterministic given a seeded random source and never
// touches the terminal, the clock or storage.
package sim

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chase-arcade/internal/core"
)

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the random source. Tests pass a seeded one.
func WithRand(r core.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithBest sets the best-score collaborator offered every round result.
func WithBest(b BestScore) Option {
	return func(e *Engine) { e.best = b }
}

// WithSink sets the collaborator that receives events as they happen.
func WithSink(s EffectsSink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithLogger sets the logger for round transitions.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Result is what one Step produced. Events is owned by the engine and is
// only valid until the next call to Step, Tick or Reset.
type Result struct {
	Events []Event
	Stats  Stats
}

// scratch holds per-step temporaries so the hot path does not allocate.
type scratch struct {
	candidates []int
}

// Engine owns every entity and the round state.
// It is not safe for concurrent use.
type Engine struct {
	rules Rules
	rng   core.Rand
	best  BestScore
	sink  EffectsSink
	log   *log.Logger

	ids          idSource
	player       Player
	pursuers     []Pursuer
	collectibles []Collectible
	round        Round

	now       float64 // seconds of simulated play
	schedMode Mode
	maxDelta  float64

	lastStamp float64
	haveStamp bool
	prevPause bool

	hash    *SpatialHash
	scratch scratch
	events  []Event
}

// New validates rules and returns an engine in the Ready state.
func New(rules Rules, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{rules: rules}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1))
	}
	if e.log == nil {
		e.log = log.New(io.Discard)
	}
	e.maxDelta = rules.MaxDelta.Seconds()
	if e.maxDelta <= 0 {
		e.maxDelta = DefaultMaxDelta.Seconds()
	}
	if rules.SpatialHashMin > 0 {
		reach := math.Max(rules.Collectibles.Radius, rules.Collectibles.PowerRadius)
		e.hash = NewSpatialHash(rules.Arena, 2*reach+rules.Player.Radius+rules.CaptureSlack)
	}

	e.Reset()
	if e.round.Total == 0 {
		return nil, &ConfigError{"Collectibles", "layout places no collectibles"}
	}
	return e, nil
}

// Reset rebuilds every entity and returns the round to Ready.
func (e *Engine) Reset() {
	e.ids = idSource{}
	e.now = 0
	e.haveStamp = false
	e.prevPause = false
	e.events = e.events[:0]

	e.player = newPlayer(e.ids.take(), e.rules)
	e.round = Round{
		Lives:         e.rules.Lives,
		Level:         1,
		Status:        StatusReady,
		TimeRemaining: e.rules.TimeLimit.Seconds(),
	}
	e.pursuers = spawnPursuers(&e.ids, e.rules, e.speedScale())
	e.collectibles = spawnCollectibles(&e.ids, e.rules, e.rng, e.collectibles)
	e.round.Total = len(e.collectibles)
	e.schedMode = e.rules.Schedule.ModeAt(0)
	for i := range e.pursuers {
		e.pursuers[i].Mode = e.schedMode
	}
	e.log.Debug("round reset", "collectibles", e.round.Total, "pursuers", len(e.pursuers))
}

// Step advances the simulation to the frame-scheduler timestamp ts
// (milliseconds). The first call after Reset only records ts.
func (e *Engine) Step(in core.Intent, ts float64) Result {
	var delta float64
	if finite(ts) {
		if e.haveStamp {
			delta = ts - e.lastStamp
		}
		e.lastStamp = ts
		e.haveStamp = true
	}
	return e.Tick(in, delta)
}

// Tick advances the simulation by deltaMs milliseconds. Negative, NaN and
// infinite deltas count as zero; large ones are clamped.
func (e *Engine) Tick(in core.Intent, deltaMs float64) Result {
	e.events = e.events[:0]
	pauseEdge := in.Pause && !e.prevPause
	e.prevPause = in.Pause

	dt := deltaMs / 1000
	if !finite(dt) || dt < 0 {
		dt = 0
	}
	if dt > e.maxDelta {
		dt = e.maxDelta
	}

	switch e.round.Status {
	case StatusWon, StatusLost:
		return e.result()
	case StatusPaused:
		if pauseEdge {
			e.round.Status = StatusPlaying
			e.log.Debug("resumed")
		}
		return e.result()
	case StatusReady:
		if !in.Any() {
			return e.result()
		}
		e.round.Status = StatusPlaying
		e.log.Debug("round started")
	case StatusPlaying:
		if pauseEdge {
			e.round.Status = StatusPaused
			e.log.Debug("paused")
			return e.result()
		}
	}

	e.advance(in, dt)
	return e.result()
}

func (e *Engine) advance(in core.Intent, dt float64) {
	e.now += dt
	e.round.Elapsed += dt
	e.round.LevelElapsed += dt

	if e.rules.TimeLimit > 0 {
		e.round.TimeRemaining -= dt
		if e.round.TimeRemaining <= 0 {
			e.round.TimeRemaining = 0
			e.finish(StatusLost, ReasonTimeUp)
			return
		}
	}

	e.updatePlayerTimers(dt)
	if in.Action {
		e.trySpecial()
	}
	e.integratePlayer(in, dt)

	e.updateSchedule()
	e.updatePower()
	for i := range e.pursuers {
		p := &e.pursuers[i]
		if !p.Active {
			if e.round.LevelElapsed >= p.SpawnDelay {
				e.release(p)
			}
			continue
		}
		e.steerPursuer(p, dt)
	}
	for i := range e.collectibles {
		c := &e.collectibles[i]
		if c.Kind == KindFish && !c.Caught {
			e.updateFish(c, dt)
		}
	}

	e.detectCaptures(&e.scratch)
	e.detectPursuerContacts()

	if e.round.Total > 0 && e.round.Collected >= e.round.Total {
		if e.rules.OnClear == ClearAdvance && (e.rules.MaxLevel == 0 || e.round.Level < e.rules.MaxLevel) {
			e.advanceLevel()
		} else {
			e.finish(StatusWon, ReasonWon)
		}
		return
	}
	if e.round.Lives <= 0 {
		e.finish(StatusLost, ReasonNoLives)
	}
}

func (e *Engine) updatePlayerTimers(dt float64) {
	pl := &e.player
	pl.Cooldown = math.Max(0, pl.Cooldown-dt)
	pl.wallCooldown = math.Max(0, pl.wallCooldown-dt)
	if pl.Special && e.now >= pl.SpecialUntil {
		pl.Special = false
	}
}

func (e *Engine) trySpecial() {
	pl := &e.player
	s := e.rules.Special
	if s.Charges == 0 || pl.Charges <= 0 || pl.Cooldown > 0 || pl.Special {
		return
	}
	pl.Cooldown = s.Cooldown.Seconds()
	pl.Charges--
	if s.Duration > 0 {
		pl.Special = true
		pl.SpecialUntil = e.now + s.Duration.Seconds()
	}
	e.emit(SpecialActionUsed{Position: pl.Pos, ChargesLeft: pl.Charges})

	if s.Radius <= 0 {
		return
	}
	rSq := s.Radius * s.Radius
	f := e.rules.Fish
	for i := range e.collectibles {
		c := &e.collectibles[i]
		if c.Kind != KindFish || c.Caught || c.Pos.DistSq(pl.Pos) > rSq {
			continue
		}
		c.AI = FishResponding
		c.Vel = core.Vec2{}
		c.FreezeUntil = e.now + f.Freeze.Seconds()
		c.RevealStart = e.now
		c.RevealEnd = e.now + f.Reveal.Seconds()
		e.emit(TargetResponded{ID: c.ID, Position: c.Pos})
	}
}

func (e *Engine) integratePlayer(in core.Intent, dt float64) {
	pl := &e.player
	want := in.Direction().Scale(pl.Speed)
	pl.Vel = pl.Vel.Lerp(want, core.ClampF(e.rules.Player.Response*dt, 0, 1))
	pl.Pos = pl.Pos.Add(pl.Vel.Scale(dt))
	if pl.Vel.LenSq() > 1e-6 {
		pl.Facing = pl.Vel.Angle()
	}

	inner := e.rules.Arena.Inset(pl.Radius)
	clamped := inner.ClampPoint(pl.Pos)
	if clamped == pl.Pos {
		return
	}
	bounce := e.rules.Wall.Bounce
	if clamped.X != pl.Pos.X {
		pl.Vel.X = -pl.Vel.X * bounce
	}
	if clamped.Y != pl.Pos.Y {
		pl.Vel.Y = -pl.Vel.Y * bounce
	}
	pl.Pos = clamped

	w := e.rules.Wall
	if (w.Penalty == 0 && w.Bounce == 0) || pl.wallCooldown > 0 {
		return
	}
	pl.wallCooldown = w.Cooldown.Seconds()
	e.emit(WallContact{Position: pl.Pos, Penalty: w.Penalty})
	if w.Penalty > 0 {
		e.addScore(-w.Penalty)
	}
}

func (e *Engine) advanceLevel() {
	e.emit(RoundEnded{Reason: ReasonLevelCleared, Score: e.round.Score, Level: e.round.Level})
	e.round.Level++
	e.round.LevelElapsed = 0
	e.round.Combo = Combo{}
	e.round.Powered = false
	e.round.Collected = 0

	e.player.Pos = e.rules.Player.Start
	e.player.Vel = core.Vec2{}

	// Pursuers keep their identifiers across levels.
	scale := e.speedScale()
	e.schedMode = e.rules.Schedule.ModeAt(0)
	for i := range e.pursuers {
		p := &e.pursuers[i]
		p.BaseSpeed = e.rules.Pursuers.Speed * scale
		p.Speed = p.BaseSpeed
		p.Active = false
		p.Pos = p.Home
		p.Vel = core.Vec2{}
		p.Target = p.Home
		p.Decision = 0
		p.Mode = e.schedMode
	}
	e.collectibles = spawnCollectibles(&e.ids, e.rules, e.rng, e.collectibles)
	e.round.Total = len(e.collectibles)
	e.log.Debug("level advanced", "level", e.round.Level, "speed", scale)
}

func (e *Engine) speedScale() float64 {
	if e.rules.SpeedForLevel == nil {
		return 1
	}
	s := e.rules.SpeedForLevel(e.round.Level)
	if !finite(s) || s <= 0 {
		return 1
	}
	return s
}

func (e *Engine) finish(status Status, reason EndReason) {
	e.round.Status = status
	e.emit(RoundEnded{Reason: reason, Score: e.round.Score, Level: e.round.Level})
	if e.best != nil && e.best.Offer(e.round.Score) {
		e.emit(NewBest{Score: e.round.Score})
	}
	e.log.Debug("round over", "status", status, "reason", reason, "score", e.round.Score, "level", e.round.Level)
}

// addScore applies delta, flooring the score at zero.
func (e *Engine) addScore(delta int) {
	old := e.round.Score
	e.round.Score = max(0, old+delta)
	if e.round.Score != old {
		e.emit(ScoreChanged{NewScore: e.round.Score, Delta: e.round.Score - old})
	}
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
	if e.sink != nil {
		e.sink.Emit(ev)
	}
}

func (e *Engine) result() Result {
	return Result{Events: e.events, Stats: e.Stats()}
}

// Stats recomputes the UI snapshot.
func (e *Engine) Stats() Stats {
	s := Stats{
		Score:         e.round.Score,
		Lives:         e.round.Lives,
		Level:         e.round.Level,
		Status:        e.round.Status,
		Elapsed:       e.round.Elapsed,
		TimeRemaining: e.round.TimeRemaining,
		Collected:     e.round.Collected,
		Total:         e.round.Total,
		ChargesLeft:   e.player.Charges,
		Cooldown:      e.player.Cooldown,
		Combo:         e.round.Combo.Count,
		Multiplier:    e.round.Combo.Multiplier(e.rules.Combo.Cap),
		Frightened:    e.round.Powered,
		ScheduleMode:  e.schedMode,
	}
	if e.round.Powered {
		s.FrightenedLeft = math.Max(0, e.round.PowerUntil-e.now)
	}
	if e.best != nil {
		s.Best = max(e.best.Best(), e.round.Score)
	}
	return s
}

// Status returns the round status.
func (e *Engine) Status() Status { return e.round.Status }

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() Rules { return e.rules }

// Now returns seconds of simulated play since Reset.
func (e *Engine) Now() float64 { return e.now }

// Player returns a copy of the player.
func (e *Engine) Player() Player { return e.player }

// Pursuers returns a copy of the pursuers.
func (e *Engine) Pursuers() []Pursuer {
	return append([]Pursuer(nil), e.pursuers...)
}

// Collectibles returns a copy of the collectibles, caught ones included.
func (e *Engine) Collectibles() []Collectible {
	return append([]Collectible(nil), e.collectibles...)
}

// SetVisual stores the renderer's handle on an entity. It is the only
// mutation allowed from outside Step and reports whether id exists.
func (e *Engine) SetVisual(id EntityID, v any) bool {
	if e.player.ID == id {
		e.player.Visual = v
		return true
	}
	for i := range e.pursuers {
		if e.pursuers[i].ID == id {
			e.pursuers[i].Visual = v
			return true
		}
	}
	for i := range e.collectibles {
		if e.collectibles[i].ID == id {
			e.collectibles[i].Visual = v
			return true
		}
	}
	return false
}

// Snapshot is a deep copy of the engine state for renderers that draw
// from another goroutine.
type Snapshot struct {
	Now          float64
	Player       Player
	Pursuers     []Pursuer
	Collectibles []Collectible
	Round        Round
	Stats        Stats
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Now:          e.now,
		Player:       e.player,
		Pursuers:     e.Pursuers(),
		Collectibles: e.Collectibles(),
		Round:        e.round,
		Stats:        e.Stats(),
	}
}
