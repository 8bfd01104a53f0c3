package arena

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/chase-arcade/internal/config"
	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/registry"
	"github.com/vovakirdan/chase-arcade/internal/sim"
)

func TestPlayerStart(t *testing.T) {
	b := core.NewBounds(20, 10)
	tests := []struct {
		name string
		x, y float64
		want core.Vec2
	}{
		{"both negative centers", -1, -1, core.V2(10, 5)},
		{"explicit", 3, 4, core.V2(3, 4)},
		{"mixed", 2, -5, core.V2(2, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Player(config.PlayerConfig{StartX: tt.x, StartY: tt.y, Radius: 1}, b).Start
			if got != tt.want {
				t.Errorf("start = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPursuersConversion(t *testing.T) {
	r := Pursuers(config.PursuerConfig{
		Count:         3,
		Speed:         4,
		DecisionMinMs: 250,
		SpawnDelaysMs: []int{0, 1500},
		Personalities: []string{"flanker", "bogus", "opportunist"},
	}, 1.5)

	if r.Speed != 6 {
		t.Errorf("speed = %v, want scaled 6", r.Speed)
	}
	if r.DecisionMin != 250*time.Millisecond {
		t.Errorf("decision min = %v", r.DecisionMin)
	}
	if len(r.SpawnDelays) != 2 || r.SpawnDelays[1] != 1500*time.Millisecond {
		t.Errorf("delays = %v", r.SpawnDelays)
	}
	want := []sim.Personality{sim.Flanker, sim.Direct, sim.Opportunist}
	for i, p := range want {
		if r.Personalities[i] != p {
			t.Errorf("personality %d = %v, want %v", i, r.Personalities[i], p)
		}
	}
}

func TestScheduleConversion(t *testing.T) {
	s := Schedule(config.ScheduleConfig{
		Phases: []config.PhaseConfig{{Mode: "scatter", Ms: 1000}, {Mode: "weird", Ms: 500}},
	})
	if len(s.Phases) != 2 || s.Cycle != nil {
		t.Fatalf("schedule = %+v", s)
	}
	if s.Phases[0] != (sim.Phase{Mode: sim.ModeScatter, Duration: time.Second}) {
		t.Errorf("phase 0 = %+v", s.Phases[0])
	}
	if s.Phases[1].Mode != sim.ModeChase {
		t.Errorf("unknown mode should become chase, got %v", s.Phases[1].Mode)
	}
}

func TestApplyRound(t *testing.T) {
	var r sim.Rules
	ApplyRound(&r, config.RoundConfig{Lives: 2, TimeLimitSec: 30, MaxDeltaMs: 50, MaxLevel: 3, SpatialHashAt: 10, CaptureSlack: 0.2})
	if r.Lives != 2 || r.TimeLimit != 30*time.Second || r.MaxDelta != 50*time.Millisecond ||
		r.MaxLevel != 3 || r.SpatialHashMin != 10 || r.CaptureSlack != 0.2 {
		t.Errorf("rules = %+v", r)
	}
}

func testRules() sim.Rules {
	return sim.Rules{
		Arena:  core.Bounds{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		Lives:  1,
		Player: sim.PlayerRules{Radius: 0.5, Speed: 5, Response: 10},
		Collectibles: sim.CollectibleRules{
			Layout:        sim.LayoutScatter,
			Kind:          sim.KindPellet,
			Count:         1,
			Radius:        0.5,
			Points:        10,
			MinPlayerDist: 5,
		},
	}
}

type recorder struct{ events []sim.Event }

func (r *recorder) Emit(ev sim.Event) { r.events = append(r.events, ev) }

func TestSessionLifecycle(t *testing.T) {
	var s Session
	if s.State() != (core.GameState{}) || s.Step(core.Intent{Up: true}, 0).State != (core.GameState{}) {
		t.Fatal("an unstarted session should report zero state")
	}

	rec := &recorder{}
	best := &sim.MemoryBest{Value: 40}
	s.Attach(registry.Host{Best: best, Sink: rec})
	if err := s.Start(testRules(), 1); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.State().Best != 40 {
		t.Errorf("best = %d, want attached store value", s.State().Best)
	}

	s.Step(core.Intent{Action: true}, 0)
	s.Step(core.Intent{Pause: true}, 16)
	if !s.State().Paused {
		t.Error("pause edge should pause")
	}

	bad := testRules()
	bad.Lives = 0
	if err := s.Start(bad, 1); err == nil {
		t.Error("invalid rules should fail to start")
	}
}

func TestSessionPopups(t *testing.T) {
	var s Session
	r := testRules()
	r.Collectibles.MinPlayerDist = 0
	r.Collectibles.Radius = 9 // covers the arena so the first frame captures it
	if err := s.Start(r, 1); err != nil {
		t.Fatal(err)
	}
	s.Step(core.Intent{Right: true}, 0)

	pops := s.Popups()
	if len(pops) != 1 || pops[0].Text != "+10" {
		t.Fatalf("popups = %+v", pops)
	}
	if !s.State().GameOver || !s.State().Won {
		t.Errorf("clearing the only pellet should win: %+v", s.State())
	}

	// Terminal rounds freeze the clock, so popups never expire on their own.
	s.Step(core.Intent{}, 5000)
	if len(s.Popups()) != 1 {
		t.Errorf("popups = %+v", s.Popups())
	}
}

func TestDrawHelpers(t *testing.T) {
	dst := core.NewScreen(40, 12)
	v := Playfield(dst, core.NewBounds(20, 10), core.ColorBlue)
	if v.Screen.Y <= HUDRows || v.Screen.X < 1 {
		t.Errorf("viewport %+v overlaps the HUD or border", v.Screen)
	}
	if dst.Get(v.Screen.X-1, v.Screen.Y-1) != '┌' {
		t.Error("border not drawn")
	}

	DrawHUD(dst, "left", "right")
	if !strings.HasPrefix(dst.Row(0), " left") || !strings.HasSuffix(dst.Row(0), "right ") {
		t.Errorf("HUD row = %q", dst.Row(0))
	}

	DrawStatus(dst, sim.Stats{Status: sim.StatusLost, Score: 12}, "READY", "WON", "LOST")
	if !strings.Contains(dst.String(), "LOST") || !strings.Contains(dst.String(), "score 12") {
		t.Errorf("status overlay missing:\n%s", dst.String())
	}
}
