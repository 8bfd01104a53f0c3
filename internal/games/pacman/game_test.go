package pacman

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/chase-arcade/internal/config"
	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/registry"
	"github.com/vovakirdan/chase-arcade/internal/sim"
)

func newGame(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	g := New()
	cfg := core.DefaultConfig()
	cfg.Seed = 3
	if err := g.Reset(cfg); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return g
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Pac-Man 3D" {
		t.Errorf("title = %q", g.Title())
	}
}

func TestRulesFromDefaults(t *testing.T) {
	r := Rules(config.DefaultPacmanConfig())

	if err := r.Validate(); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}
	if r.Arena.Width() != 28 || r.Arena.Height() != 31 {
		t.Errorf("arena = %+v", r.Arena)
	}
	if r.Player.Start != core.V2(14, 23) {
		t.Errorf("start = %v", r.Player.Start)
	}
	if r.Lives != 3 || r.OnClear != sim.ClearAdvance || r.Power != 6*time.Second {
		t.Errorf("round = lives %d, clear %v, power %v", r.Lives, r.OnClear, r.Power)
	}
	c := r.Collectibles
	if c.Layout != sim.LayoutGrid || c.Spacing != 2 || c.PowerCount != 4 {
		t.Errorf("pellets = %+v", c)
	}

	q := r.Pursuers
	if q.Count != 4 || q.Points != 200 || q.Speed != 6.5 {
		t.Errorf("ghosts = count %d, points %d, speed %v", q.Count, q.Points, q.Speed)
	}
	wantDelays := []time.Duration{0, 3 * time.Second, 6 * time.Second, 9 * time.Second}
	if !reflect.DeepEqual(q.SpawnDelays, wantDelays) {
		t.Errorf("spawn delays = %v", q.SpawnDelays)
	}
	wantPersonalities := []sim.Personality{sim.Direct, sim.Ambusher, sim.Flanker, sim.Opportunist}
	if !reflect.DeepEqual(q.Personalities, wantPersonalities) {
		t.Errorf("personalities = %v", q.Personalities)
	}
	if r.Combo.Cap != 8 {
		t.Errorf("combo cap = %d", r.Combo.Cap)
	}
	if !reflect.DeepEqual(r.Schedule, sim.CanonicalSchedule()) {
		t.Errorf("schedule = %+v, want canonical", r.Schedule)
	}

	if r.SpeedForLevel == nil {
		t.Fatal("SpeedForLevel not wired")
	}
	if s := r.SpeedForLevel(1); math.Abs(s-1) > 1e-9 {
		t.Errorf("level 1 speed scale = %v", s)
	}
	if r.SpeedForLevel(2) <= r.SpeedForLevel(1) || r.SpeedForLevel(20) != r.SpeedForLevel(30) {
		t.Error("ghost speed should rise per level and cap at max difficulty")
	}
}

func TestPowerPelletsAtCorners(t *testing.T) {
	g := newGame(t)
	power := 0
	for _, c := range g.Engine().Collectibles() {
		if c.Kind == sim.KindPower {
			power++
		}
	}
	if power != 4 {
		t.Errorf("power pellets = %d, want 4", power)
	}
}

func TestGhostsReleaseOnDelay(t *testing.T) {
	g := newGame(t)
	g.Step(core.Intent{Left: true}, 0)

	for ts := 100.0; ts <= 3100; ts += 100 {
		g.Step(core.Intent{}, ts)
	}
	active := 0
	for _, gh := range g.Engine().Pursuers() {
		if gh.Active {
			active++
		}
	}
	if active != 2 {
		t.Errorf("active ghosts after 3.1s = %d, want 2", active)
	}
}

func TestWorldPositions(t *testing.T) {
	ghost := sim.Pursuer{Entity: sim.Entity{ID: 5, Pos: core.V2(3, 4)}, Mode: sim.ModeChase}

	seen := map[float64]bool{}
	for _, now := range []float64{0, 0.3, 0.9, 1.4} {
		w := GhostWorld(ghost, now)
		if w.X != 3 || w.Z != 4 {
			t.Fatalf("ghost ground position = %v", w)
		}
		if w.Y < GhostHeight-BobAmplitude || w.Y > GhostHeight+BobAmplitude {
			t.Errorf("bob height %v out of range", w.Y)
		}
		seen[w.Y] = true
	}
	if len(seen) < 2 {
		t.Error("live ghosts should bob over time")
	}

	ghost.Mode = sim.ModeEaten
	if w := GhostWorld(ghost, 0.3); w.Y != EyesHeight {
		t.Errorf("eaten ghost height = %v, want eyes at %v", w.Y, EyesHeight)
	}

	pellet := sim.Collectible{Entity: sim.Entity{Pos: core.V2(1, 1)}, Kind: sim.KindPellet}
	power := pellet
	power.Kind = sim.KindPower
	if PelletWorld(power).Y <= PelletWorld(pellet).Y {
		t.Error("power pellets should sit above plain pellets")
	}
}

func TestWorldPosLookup(t *testing.T) {
	g := newGame(t)
	p := g.Engine().Player()
	w, ok := g.WorldPos(p.ID)
	if !ok || w.XZ() != p.Pos || w.Y != PlayerHeight {
		t.Errorf("player world = %v, %v", w, ok)
	}
	for _, gh := range g.Engine().Pursuers() {
		if _, ok := g.WorldPos(gh.ID); !ok {
			t.Errorf("ghost %d missing", gh.ID)
		}
	}
	if _, ok := g.WorldPos(1 << 30); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestProjectLiftsByAltitude(t *testing.T) {
	v := core.FitViewport(core.NewBounds(28, 31), core.NewRect(1, 2, 78, 21))
	ground := core.Ground(core.V2(14, 15), 0)
	_, gy, ok := project(v, ground)
	if !ok {
		t.Fatal("center should project")
	}
	_, ey, _ := project(v, core.Ground(core.V2(14, 15), EyesHeight))
	if ey != gy-1 {
		t.Errorf("eyes row = %d, want one above %d", ey, gy)
	}
	_, top, _ := project(v, core.Ground(core.V2(14, 0), 50))
	if top < v.Screen.Y {
		t.Errorf("lifted row %d escaped the viewport top %d", top, v.Screen.Y)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t)
	g.Step(core.Intent{}, 0)

	s := core.NewScreen(80, 24)
	g.Render(s)
	out := s.String()
	if !strings.ContainsRune(out, PelletChar) {
		t.Error("pellets not drawn")
	}
	if !strings.Contains(s.Row(0), "Lives CCC") || !strings.Contains(s.Row(0), "SCATTER") {
		t.Errorf("HUD = %q", s.Row(0))
	}
	if !strings.Contains(out, "PAC-MAN 3D") {
		t.Error("ready overlay missing")
	}

	New().Render(core.NewScreen(10, 4))
}
