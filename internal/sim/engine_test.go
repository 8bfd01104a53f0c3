package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/chase-arcade/internal/core"
)

var (
	move  = core.Intent{Right: true}
	idle  = core.Intent{}
	pause = core.Intent{Pause: true}
)

// baseRules is a small pellet arena with no pursuers and two collectibles.
func baseRules() Rules {
	return Rules{
		Arena: core.Bounds{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		Lives: 3,
		Player: PlayerRules{
			Start:    core.V2(0, 0),
			Radius:   0.1,
			Speed:    5,
			Response: 10,
		},
		Collectibles: CollectibleRules{
			Layout:        LayoutScatter,
			Kind:          KindPellet,
			Count:         2,
			Radius:        0.2,
			Points:        10,
			MinPlayerDist: 5,
		},
		Pursuers: PursuerRules{
			Radius:                0.5,
			Speed:                 4,
			DecisionMin:           200 * time.Millisecond,
			DecisionMax:           600 * time.Millisecond,
			Points:                200,
			LeadDistance:          4,
			FlankOffset:           3,
			OpportunistRange:      5,
			FleeLookahead:         6,
			Jitter:                0.1,
			EdgeMargin:            1,
			EdgeRepulsion:         2,
			ChaseResponse:         4,
			FrightenedResponse:    8,
			EatenResponse:         10,
			FrightenedSpeedFactor: 0.5,
			EatenSpeedFactor:      2,
		},
		Combo: ComboRules{Cap: 8},
		Power: 6 * time.Second,
	}
}

func withPursuers(r Rules, n int) Rules {
	r.Pursuers.Count = n
	return r
}

func newTestEngine(t *testing.T, r Rules, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(42)))}, opts...)
	e, err := New(r, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return e
}

// start moves the engine from Ready to Playing without advancing time.
func start(t *testing.T, e *Engine) {
	t.Helper()
	e.Tick(core.Intent{Action: true}, 0)
	if e.Status() != StatusPlaying {
		t.Fatalf("status = %v, expected playing", e.Status())
	}
}

func countEvents[T Event](events []Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}

func findEvent[T Event](events []Event) (T, bool) {
	for _, ev := range events {
		if v, ok := ev.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func TestNewRejectsInvalidRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
		field  string
	}{
		{"empty arena", func(r *Rules) { r.Arena = core.Bounds{} }, "Arena"},
		{"no lives", func(r *Rules) { r.Lives = 0 }, "Lives"},
		{"negative player radius", func(r *Rules) { r.Player.Radius = -1 }, "Player.Radius"},
		{"start outside arena", func(r *Rules) { r.Player.Start = core.V2(50, 0) }, "Player.Start"},
		{"zero collectibles", func(r *Rules) { r.Collectibles.Count = 0 }, "Collectibles.Count"},
		{"negative collectible radius", func(r *Rules) { r.Collectibles.Radius = -0.2 }, "Collectibles.Radius"},
		{"unordered decision range", func(r *Rules) {
			r.Pursuers.Count = 1
			r.Pursuers.DecisionMax = time.Millisecond
		}, "Pursuers.DecisionMin"},
		{"bounce above one", func(r *Rules) { r.Wall.Bounce = 2 }, "Wall"},
		{"frightened phase in schedule", func(r *Rules) {
			r.Schedule = Schedule{Phases: []Phase{{ModeFrightened, time.Second}}}
		}, "Schedule"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := baseRules()
			tc.mutate(&r)
			_, err := New(r)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("New() error = %v, expected ErrInvalidConfig", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tc.field {
				t.Errorf("ConfigError field = %v, expected %q", ce, tc.field)
			}
		})
	}
}

func TestNewRejectsEmptyGrid(t *testing.T) {
	r := baseRules()
	r.Collectibles.Layout = LayoutGrid
	r.Collectibles.Spacing = 2
	r.Collectibles.MinPlayerDist = 100 // every lattice point is too close

	if _, err := New(r); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestReadyWaitsForInput(t *testing.T) {
	e := newTestEngine(t, baseRules())

	e.Step(idle, 1000)
	e.Step(idle, 1016)
	e.Step(pause, 1032)
	if e.Status() != StatusReady {
		t.Fatalf("status = %v, expected ready without gameplay input", e.Status())
	}

	res := e.Step(move, 1048)
	if res.Stats.Status != StatusPlaying {
		t.Fatalf("status = %v, expected playing", res.Stats.Status)
	}
	if e.Now() <= 0 {
		t.Error("first moving step should advance by the delta since the last stamp")
	}
}

func TestFirstStepHasZeroDelta(t *testing.T) {
	e := newTestEngine(t, baseRules())

	e.Step(move, 5_000_000)
	if e.Now() != 0 {
		t.Errorf("Now() = %v after first step, expected 0", e.Now())
	}
	e.Step(move, 5_000_016)
	if math.Abs(e.Now()-0.016) > 1e-9 {
		t.Errorf("Now() = %v, expected 0.016", e.Now())
	}
}

func TestDeltaIsClamped(t *testing.T) {
	e := newTestEngine(t, baseRules())
	start(t, e)

	e.Tick(move, 10_000)
	if math.Abs(e.Now()-DefaultMaxDelta.Seconds()) > 1e-9 {
		t.Errorf("Now() = %v, expected one clamped delta", e.Now())
	}
}

func TestInvalidDeltaIsZero(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
	}{
		{"NaN", math.NaN()},
		{"negative", -50},
		{"infinite", math.Inf(1)},
		{"negative infinite", math.Inf(-1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t, withPursuers(baseRules(), 2))
			start(t, e)
			for i := 0; i < 10; i++ {
				e.Tick(move, 16)
			}
			before := e.Snapshot()

			e.Tick(move, tc.delta)

			after := e.Snapshot()
			if after.Player.Pos != before.Player.Pos {
				t.Errorf("player moved: %v -> %v", before.Player.Pos, after.Player.Pos)
			}
			for i := range after.Pursuers {
				if after.Pursuers[i].Pos != before.Pursuers[i].Pos {
					t.Errorf("pursuer %d moved", i)
				}
			}
			if after.Now != before.Now {
				t.Errorf("clock advanced by %v", after.Now-before.Now)
			}
		})
	}
}

func TestPauseIsIdempotent(t *testing.T) {
	e := newTestEngine(t, withPursuers(baseRules(), 4))
	start(t, e)
	for i := 0; i < 30; i++ {
		e.Tick(move, 16)
	}

	e.Tick(pause, 16)
	if e.Status() != StatusPaused {
		t.Fatalf("status = %v, expected paused", e.Status())
	}
	before := e.Snapshot()

	// Holding pause or sending gameplay input must not resume or move anything
	for i := 0; i < 100; i++ {
		in := pause
		if i%2 == 0 {
			in = core.Intent{Pause: true, Up: true, Action: true}
		}
		e.Tick(in, 16)
	}
	after := e.Snapshot()

	if after.Player.Pos != before.Player.Pos || after.Round.Score != before.Round.Score {
		t.Error("paused steps changed player or score")
	}
	for i := range after.Pursuers {
		if after.Pursuers[i].Pos != before.Pursuers[i].Pos {
			t.Errorf("paused steps moved pursuer %d", i)
		}
	}
	if after.Now != before.Now {
		t.Error("paused steps advanced the clock")
	}

	// Release then press again to resume
	e.Tick(idle, 16)
	e.Tick(pause, 16)
	if e.Status() != StatusPlaying {
		t.Fatalf("status = %v, expected playing after second press", e.Status())
	}
}

func TestPauseTracksTimestamps(t *testing.T) {
	e := newTestEngine(t, baseRules())
	e.Step(move, 0)
	e.Step(move, 16)
	e.Step(pause, 32)
	e.Step(pause, 60_000)
	e.Step(idle, 60_016)

	now := e.Now()
	e.Step(pause, 60_032) // resume
	e.Step(move, 60_048)
	if d := e.Now() - now; math.Abs(d-0.016) > 1e-9 {
		t.Errorf("resume applied %v seconds, expected only the last frame", d)
	}
}

func TestCaptureScenario(t *testing.T) {
	e := newTestEngine(t, baseRules())
	start(t, e)
	e.collectibles[0].Pos = core.V2(0.1, 0)
	e.collectibles[1].Pos = core.V2(8, 8)

	res := e.Tick(idle, 16)

	if n := countEvents[Captured](res.Events); n != 1 {
		t.Fatalf("Captured events = %d, expected 1", n)
	}
	c, _ := findEvent[Captured](res.Events)
	if c.ID != e.collectibles[0].ID || c.Points != 10 {
		t.Errorf("Captured = %+v", c)
	}
	if res.Stats.Score != 10 {
		t.Errorf("score = %d, expected 10", res.Stats.Score)
	}
	sc, ok := findEvent[ScoreChanged](res.Events)
	if !ok || sc.NewScore != 10 || sc.Delta != 10 {
		t.Errorf("ScoreChanged = %+v", sc)
	}
}

func TestCapturedNeverRepeats(t *testing.T) {
	r := withPursuers(baseRules(), 2)
	r.Lives = 1000
	r.Collectibles = CollectibleRules{
		Layout:  LayoutGrid,
		Kind:    KindPellet,
		Spacing: 2,
		Radius:  0.3,
		Points:  10,
	}
	e := newTestEngine(t, r)
	start(t, e)

	rng := rand.New(rand.NewSource(7))
	seen := map[EntityID]bool{}
	dirs := []core.Intent{{Up: true}, {Down: true}, {Left: true}, {Right: true}, {Up: true, Left: true}}
	in := dirs[0]
	for i := 0; i < 5000 && !e.Status().Terminal(); i++ {
		if i%40 == 0 {
			in = dirs[rng.Intn(len(dirs))]
		}
		res := e.Tick(in, 16)
		for _, ev := range res.Events {
			c, ok := ev.(Captured)
			if !ok || c.Kind == KindPursuer {
				continue
			}
			if seen[c.ID] {
				t.Fatalf("collectible %d captured twice", c.ID)
			}
			seen[c.ID] = true
		}
	}
	if len(seen) == 0 {
		t.Fatal("random walk captured nothing")
	}
}

func TestEntitiesStayInBounds(t *testing.T) {
	r := withPursuers(baseRules(), 4)
	r.Lives = 1000
	r.Collectibles.Kind = KindFish
	r.Collectibles.Count = 6
	r.Fish = testFish()
	r.Wall = WallRules{Penalty: 1, Cooldown: 100 * time.Millisecond, Bounce: 0.5}
	e := newTestEngine(t, r)
	start(t, e)

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 3000 && !e.Status().Terminal(); i++ {
		in := core.Intent{
			Up:    rng.Intn(2) == 0,
			Down:  rng.Intn(3) == 0,
			Left:  rng.Intn(2) == 0,
			Right: rng.Intn(3) == 0,
		}
		res := e.Tick(in, float64(rng.Intn(120)))
		if res.Stats.Score < 0 {
			t.Fatalf("score went negative: %d", res.Stats.Score)
		}

		const eps = 1e-9
		check := func(what string, p core.Vec2, radius float64) {
			box := r.Arena.Inset(radius)
			if p.X < box.MinX-eps || p.X > box.MaxX+eps || p.Y < box.MinY-eps || p.Y > box.MaxY+eps {
				t.Fatalf("step %d: %s at %v outside %+v", i, what, p, box)
			}
		}
		check("player", e.player.Pos, e.player.Radius)
		for _, p := range e.pursuers {
			check("pursuer", p.Pos, p.Radius)
		}
		for _, c := range e.collectibles {
			check("fish", c.Pos, c.Radius)
		}
	}
}

func TestLivesNeverIncrease(t *testing.T) {
	r := withPursuers(baseRules(), 4)
	r.Lives = 5
	e := newTestEngine(t, r)
	start(t, e)

	lives := e.Stats().Lives
	for i := 0; i < 4000 && !e.Status().Terminal(); i++ {
		res := e.Tick(core.Intent{Left: i%200 < 100, Up: i%300 < 150}, 16)
		if res.Stats.Lives > lives {
			t.Fatalf("lives increased from %d to %d", lives, res.Stats.Lives)
		}
		lives = res.Stats.Lives
	}
}

func TestBestScoreOffered(t *testing.T) {
	best := &MemoryBest{Value: 5}
	r := baseRules()
	r.Collectibles.Count = 1
	e := newTestEngine(t, r, WithBest(best))
	start(t, e)
	e.collectibles[0].Pos = core.V2(0.1, 0)

	res := e.Tick(idle, 16)

	if res.Stats.Status != StatusWon {
		t.Fatalf("status = %v, expected won", res.Stats.Status)
	}
	nb, ok := findEvent[NewBest](res.Events)
	if !ok || nb.Score != 10 || best.Value != 10 {
		t.Errorf("NewBest = %+v (found %v), stored %d", nb, ok, best.Value)
	}
	if res.Stats.Best != 10 {
		t.Errorf("Stats.Best = %d", res.Stats.Best)
	}

	// Lower score does not replace the record
	e.Reset()
	best.Value = 100
	start(t, e)
	e.collectibles[0].Pos = core.V2(0.1, 0)
	res = e.Tick(idle, 16)
	if _, ok := findEvent[NewBest](res.Events); ok {
		t.Error("NewBest emitted for a lower score")
	}
}

type recordingSink struct{ events []Event }

func (s *recordingSink) Emit(ev Event) { s.events = append(s.events, ev) }

func TestSinkSeesEveryEvent(t *testing.T) {
	sink := &recordingSink{}
	e := newTestEngine(t, withPursuers(baseRules(), 2), WithSink(sink))

	var returned int
	for i := 0; i < 500 && !e.Status().Terminal(); i++ {
		returned += len(e.Tick(core.Intent{Up: i%100 < 50, Right: true}, 16).Events)
	}
	if returned == 0 {
		t.Fatal("expected some events")
	}
	if len(sink.events) != returned {
		t.Errorf("sink saw %d events, Step returned %d", len(sink.events), returned)
	}
}

func TestSetVisualIsOpaque(t *testing.T) {
	e := newTestEngine(t, withPursuers(baseRules(), 1))
	type mesh struct{ name string }

	if !e.SetVisual(e.player.ID, &mesh{"player"}) {
		t.Fatal("SetVisual(player) = false")
	}
	if !e.SetVisual(e.pursuers[0].ID, &mesh{"ghost"}) {
		t.Fatal("SetVisual(pursuer) = false")
	}
	if e.SetVisual(9999, nil) {
		t.Error("SetVisual on unknown id should report false")
	}

	start(t, e)
	for i := 0; i < 20; i++ {
		e.Tick(move, 16)
	}
	if m, ok := e.Player().Visual.(*mesh); !ok || m.name != "player" {
		t.Errorf("player visual = %v", e.Player().Visual)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		r := withPursuers(baseRules(), 4)
		r.Lives = 100
		e := newTestEngine(t, r)
		start(t, e)
		for i := 0; i < 600; i++ {
			e.Tick(core.Intent{Up: i%90 < 45, Left: i%70 < 20}, 16)
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	if a.Player.Pos != b.Player.Pos || a.Round.Score != b.Round.Score {
		t.Error("runs with the same seed diverged")
	}
	for i := range a.Pursuers {
		if a.Pursuers[i].Pos != b.Pursuers[i].Pos {
			t.Errorf("pursuer %d diverged", i)
		}
	}
}
