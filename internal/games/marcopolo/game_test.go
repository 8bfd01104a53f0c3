package marcopolo

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/chase-arcade/internal/config"
	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/registry"
	"github.com/vovakirdan/chase-arcade/internal/sim"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func newGame(t *testing.T) *Game {
	t.Helper()
	isolate(t)
	g := New()
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	if err := g.Reset(cfg); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return g
}

func countFish(s *core.Screen) int {
	n := 0
	for y := 1; y < s.Height(); y++ {
		n += strings.Count(s.Row(y), "<") + strings.Count(s.Row(y), ">")
	}
	return n
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("%s not registered", ID)
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatal(err)
	}
	if g.ID() != ID || g.Title() != "Marco Polo" {
		t.Errorf("got %s / %s", g.ID(), g.Title())
	}
}

func TestRulesFromDefaults(t *testing.T) {
	cfg := config.DefaultMarcoPoloConfig()
	r := Rules(cfg)

	if err := r.Validate(); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}
	if r.Arena.Width() != 80 || r.Arena.Height() != 40 {
		t.Errorf("arena = %+v", r.Arena)
	}
	if r.Player.Start != r.Arena.Center() {
		t.Errorf("start = %v, want pool center", r.Player.Start)
	}
	if r.Lives != 1 || r.TimeLimit != 90*time.Second || r.OnClear != sim.ClearWin {
		t.Errorf("round = lives %d, limit %v, clear %v", r.Lives, r.TimeLimit, r.OnClear)
	}
	if r.Special.Charges != 5 || r.Special.Cooldown != 2500*time.Millisecond ||
		r.Special.Duration != 800*time.Millisecond || r.Special.Radius != 25 {
		t.Errorf("call = %+v", r.Special)
	}
	if r.Wall.Penalty != 5 || r.Wall.Cooldown != 400*time.Millisecond || r.Wall.Bounce != 0.5 {
		t.Errorf("wall = %+v", r.Wall)
	}
	if r.Collectibles.Kind != sim.KindFish || r.Collectibles.Count != 8 || r.Collectibles.MinPlayerDist != 12 {
		t.Errorf("fish = %+v", r.Collectibles)
	}
	if r.Combo.Cap != 4 || r.Combo.Timeout != 3*time.Second {
		t.Errorf("combo = %+v", r.Combo)
	}
	if r.Pursuers.Count != 0 || r.Power != 0 {
		t.Errorf("pool should have no sharks or power by default: %+v", r.Pursuers)
	}
	// Defaults start at easy, so nothing is scaled.
	if r.Fish.Speed != cfg.Fish.Speed || r.Fish.Reveal != 1800*time.Millisecond {
		t.Errorf("fish ai = speed %v, reveal %v", r.Fish.Speed, r.Fish.Reveal)
	}
}

func TestRulesHardPresetScales(t *testing.T) {
	cfg := config.DefaultMarcoPoloConfig()
	config.ApplyMarcoPoloPreset(&cfg, config.DifficultyHard)
	r := Rules(cfg)

	if r.Fish.Speed <= cfg.Fish.Speed || r.Fish.FleeSpeed <= cfg.Fish.FleeSpeed {
		t.Errorf("hard fish should be faster: %v / %v", r.Fish.Speed, r.Fish.FleeSpeed)
	}
	if r.Fish.Reveal >= 1800*time.Millisecond || r.Fish.Reveal < 300*time.Millisecond {
		t.Errorf("hard reveal = %v", r.Fish.Reveal)
	}
	if r.TimeLimit != 60*time.Second || r.Special.Charges != 3 {
		t.Errorf("hard round = %v, %d charges", r.TimeLimit, r.Special.Charges)
	}
}

func TestRevealDisabledStaysDisabled(t *testing.T) {
	cfg := config.DefaultMarcoPoloConfig()
	cfg.Fish.RevealMs = 0
	if got := Rules(cfg).Fish.Reveal; got != 0 {
		t.Errorf("reveal = %v, want 0", got)
	}
}

func TestResetErrors(t *testing.T) {
	isolate(t)
	g := New()

	cfg := core.DefaultConfig()
	cfg.Difficulty = "nightmare"
	if err := g.Reset(cfg); err == nil {
		t.Error("unknown difficulty should fail")
	}

	cfg = core.DefaultConfig()
	cfg.ConfigPath = "does/not/exist.yaml"
	if err := g.Reset(cfg); err == nil {
		t.Error("missing config path should fail")
	}
}

func TestStepLifecycle(t *testing.T) {
	g := newGame(t)

	res := g.Step(core.Intent{}, 0)
	if res.State.GameOver || res.State.Paused {
		t.Fatalf("fresh round state = %+v", res.State)
	}
	if g.Engine().Status() != sim.StatusReady {
		t.Fatalf("status = %v, want ready until input", g.Engine().Status())
	}

	g.Step(core.Intent{Right: true}, 16)
	if g.Engine().Status() != sim.StatusPlaying {
		t.Fatalf("status = %v, want playing", g.Engine().Status())
	}

	g.Step(core.Intent{Pause: true}, 32)
	if !g.State().Paused {
		t.Error("pause edge should pause")
	}
	g.Step(core.Intent{}, 48)
	g.Step(core.Intent{Pause: true}, 64)
	if g.State().Paused {
		t.Error("second pause edge should resume")
	}
}

func TestTimeRunsOut(t *testing.T) {
	g := newGame(t)
	g.Step(core.Intent{Left: true}, 0)

	ts := 0.0
	for i := 0; i < 2000 && !g.State().GameOver; i++ {
		ts += 100
		g.Step(core.Intent{}, ts)
	}
	st := g.State()
	if !st.GameOver || st.Won {
		t.Fatalf("state after 200s = %+v, want lost", st)
	}
	if g.Engine().Stats().TimeRemaining != 0 {
		t.Errorf("time remaining = %v", g.Engine().Stats().TimeRemaining)
	}
}

func TestRenderFogHidesFish(t *testing.T) {
	g := newGame(t)
	g.Step(core.Intent{}, 0)

	s := core.NewScreen(80, 24)
	g.Render(s)
	if n := countFish(s); n != 0 {
		t.Fatalf("fish spawn outside the fog and should be hidden, saw %d", n)
	}
	if !strings.ContainsRune(s.String(), SwimmerChar) {
		t.Error("swimmer not drawn")
	}
	if !strings.ContainsRune(s.String(), FogChar) {
		t.Error("fog not drawn")
	}

	// The call reveals every fish inside its radius.
	g.Step(core.Intent{Action: true}, 16)
	inRange := 0
	p := g.Engine().Player()
	for _, c := range g.Engine().Collectibles() {
		if c.Revealed(g.Engine().Now()) && p.Pos.Dist(c.Pos) <= 25 {
			inRange++
		}
	}
	g.Render(s)
	if inRange > 0 && countFish(s) == 0 {
		t.Errorf("%d fish answered the call but none were drawn", inRange)
	}
	if !strings.Contains(s.Row(0), "Marco 4") {
		t.Errorf("HUD should show the spent call: %q", s.Row(0))
	}
}

func TestRenderBeforeResetAndTinyScreen(t *testing.T) {
	New().Render(core.NewScreen(20, 6))

	g := newGame(t)
	g.Step(core.Intent{Down: true}, 0)
	g.Render(core.NewScreen(3, 2))
}
