package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chase-arcade/internal/core"
	_ "github.com/vovakirdan/chase-arcade/internal/games/marcopolo"
	_ "github.com/vovakirdan/chase-arcade/internal/games/pacman"
	"github.com/vovakirdan/chase-arcade/internal/sim"
	"github.com/vovakirdan/chase-arcade/internal/storage"
)

func press(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testServices(t *testing.T) Services {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	store, err := storage.Open(filepath.Join(t.TempDir(), "arcade.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return Services{Store: store, Theme: DefaultTheme()}
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = 80, 24
	cfg.Seed = 7
	return cfg
}

func TestLatchHoldExpires(t *testing.T) {
	keys := DefaultGameKeyMap()
	l := NewLatch(DefaultHold)
	t0 := time.Unix(1000, 0)

	if !l.Press(press("up"), keys, t0) {
		t.Fatal("up not a gameplay key")
	}
	if in := l.Intent(t0.Add(100 * time.Millisecond)); !in.Up {
		t.Errorf("up released early: %+v", in)
	}
	if in := l.Intent(t0.Add(DefaultHold + time.Millisecond)); in.Up {
		t.Errorf("up still held after hold window: %+v", in)
	}

	// A repeat extends the hold.
	l.Press(press("w"), keys, t0.Add(500*time.Millisecond))
	if in := l.Intent(t0.Add(900 * time.Millisecond)); !in.Up {
		t.Errorf("repeat did not extend hold: %+v", in)
	}
}

func TestLatchOppositeReleases(t *testing.T) {
	keys := DefaultGameKeyMap()
	l := NewLatch(DefaultHold)
	t0 := time.Unix(1000, 0)

	l.Press(press("left"), keys, t0)
	l.Press(press("up"), keys, t0)
	l.Press(press("right"), keys, t0.Add(10*time.Millisecond))

	in := l.Intent(t0.Add(20 * time.Millisecond))
	if in.Left || !in.Right || !in.Up {
		t.Errorf("intent = %+v, want up+right", in)
	}
}

func TestLatchSticky(t *testing.T) {
	keys := DefaultGameKeyMap()
	l := NewLatch(0)
	t0 := time.Unix(1000, 0)

	if in := l.Intent(t0); in.Any() {
		t.Fatalf("fresh latch moving: %+v", in)
	}
	l.Press(press("d"), keys, t0)
	if in := l.Intent(t0.Add(time.Hour)); !in.Right {
		t.Errorf("sticky right lost: %+v", in)
	}
	l.Press(press("k"), keys, t0)
	in := l.Intent(t0)
	if !in.Up || in.Right {
		t.Errorf("intent = %+v, want up only", in)
	}

	l.Release()
	if in := l.Intent(t0); in.Any() {
		t.Errorf("released latch moving: %+v", in)
	}
}

func TestLatchOneShots(t *testing.T) {
	keys := DefaultGameKeyMap()
	l := NewLatch(DefaultHold)
	t0 := time.Unix(1000, 0)

	l.Press(press(" "), keys, t0)
	l.Press(press("p"), keys, t0)
	if l.Press(press("x"), keys, t0) {
		t.Error("x reported as gameplay key")
	}

	in := l.Intent(t0)
	if !in.Action || !in.Pause {
		t.Fatalf("intent = %+v, want action and pause", in)
	}
	if in := l.Intent(t0); in.Action || in.Pause {
		t.Errorf("one-shots repeated: %+v", in)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		key  string
		want MenuAction
	}{
		{"up", MenuActionUp},
		{"k", MenuActionUp},
		{"down", MenuActionDown},
		{"j", MenuActionDown},
		{"left", MenuActionLeft},
		{"l", MenuActionRight},
		{"enter", MenuActionSelect},
		{" ", MenuActionSelect},
		{"esc", MenuActionBack},
		{"tab", MenuActionScoreboard},
		{"q", MenuActionQuit},
		{"ctrl+c", MenuActionQuit},
		{"x", MenuActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := MapKeyToMenuAction(press(tt.key)); got != tt.want {
				t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "chase")
	s.DrawTextColor(0, 1, "ok", core.ColorYellow)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0] != s.Row(0) {
		t.Errorf("default row = %q, want %q", lines[0], s.Row(0))
	}
	if !strings.Contains(lines[1], "ok") {
		t.Errorf("coloured row = %q", lines[1])
	}
}

func TestRunRecorderSkipsLevelClears(t *testing.T) {
	r := &runRecorder{}
	r.Emit(sim.Captured{ID: 1, Kind: sim.KindPellet, Points: 10})
	r.Emit(sim.RoundEnded{Reason: sim.ReasonLevelCleared, Score: 100, Level: 1})
	r.Emit(sim.RoundEnded{Reason: sim.ReasonNoLives, Score: 250, Level: 2})

	ended := r.take()
	if len(ended) != 1 || ended[0].Score != 250 {
		t.Fatalf("take = %+v", ended)
	}
	if again := r.take(); len(again) != 0 {
		t.Errorf("second take = %+v", again)
	}
}

// tick advances m by one frame at now.
func tick(t *testing.T, m GameModel, now time.Time) GameModel {
	t.Helper()
	next, cmd := m.Update(TickMsg{Time: now, Gen: m.gen})
	if cmd == nil {
		t.Fatal("tick did not schedule the next frame")
	}
	return next.(GameModel)
}

func hit(m GameModel, k string, now time.Time) GameModel {
	next, _ := m.handleKey(press(k), now)
	return next.(GameModel)
}

func TestGameModelRoundSavesRun(t *testing.T) {
	svc := testServices(t)
	m, err := NewGameModel("marcopolo", svc, testConfig())
	if err != nil {
		t.Fatalf("NewGameModel: %v", err)
	}

	base := time.Now()
	m = hit(m, "left", base)
	now := base
	for i := 0; i < 2000 && !m.State().GameOver; i++ {
		m = tick(t, m, now)
		now = now.Add(100 * time.Millisecond)
	}
	if !m.State().GameOver {
		t.Fatal("round never ended")
	}

	runs, err := svc.Store.RecentRuns("marcopolo", 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Score != m.State().Score {
		t.Errorf("run score = %d, state score = %d", runs[0].Score, m.State().Score)
	}
	if runs[0].Reason != sim.ReasonTimeUp.String() || runs[0].Won {
		t.Errorf("run = %+v, want time_up loss", runs[0])
	}
	if runs[0].Duration < 30*time.Second {
		t.Errorf("run duration = %v", runs[0].Duration)
	}

	// More frames after the end store nothing new.
	m = tick(t, m, now)
	if runs, _ := svc.Store.RecentRuns("marcopolo", 10); len(runs) != 1 {
		t.Errorf("got %d runs after extra frame", len(runs))
	}

	m = hit(m, "r", now)
	if m.State().GameOver {
		t.Error("restart after game over did not reset")
	}
}

func TestGameModelRestartAndBackGuards(t *testing.T) {
	svc := testServices(t)
	m, err := NewGameModel("pacman", svc, testConfig())
	if err != nil {
		t.Fatalf("NewGameModel: %v", err)
	}

	now := time.Now()
	m = tick(t, m, now)
	m = hit(m, "esc", now)
	if m.BackToMenu() {
		t.Error("back allowed mid-round")
	}

	m = hit(m, "right", now)
	m = tick(t, m, now.Add(16*time.Millisecond))
	m = hit(m, "p", now)
	m = tick(t, m, now.Add(32*time.Millisecond))
	if !m.State().Paused {
		t.Fatalf("state = %+v, want paused", m.State())
	}

	score := m.State().Score
	m = hit(m, "r", now)
	if m.State().Score != score || !m.State().Paused {
		t.Error("restart allowed while paused")
	}

	m = hit(m, "esc", now)
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("back = %v, quitting = %v", m.BackToMenu(), m.IsQuitting())
	}
}

func TestGameModelDropsStaleTicks(t *testing.T) {
	m, err := NewGameModel("pacman", testServices(t), testConfig())
	if err != nil {
		t.Fatalf("NewGameModel: %v", err)
	}
	next, cmd := m.Update(TickMsg{Time: time.Now(), Gen: m.gen + 1})
	if cmd != nil {
		t.Error("stale tick scheduled a frame")
	}
	if !next.(GameModel).epoch.IsZero() {
		t.Error("stale tick advanced the game")
	}
}

func TestGameModelResizeKeepsRound(t *testing.T) {
	m, err := NewGameModel("pacman", testServices(t), testConfig())
	if err != nil {
		t.Fatalf("NewGameModel: %v", err)
	}
	now := time.Now()
	m = hit(m, "left", now)
	m = tick(t, m, now)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(GameModel)
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, want 120x39", m.screen.Width(), m.screen.Height())
	}
	if m.epoch.IsZero() {
		t.Error("resize reset the round")
	}
	if v := m.View(); !strings.Contains(v, "quit") {
		t.Error("view missing help footer")
	}
}

func TestNewGameModelUnknownGame(t *testing.T) {
	if _, err := NewGameModel("tetris", Services{}, testConfig()); err == nil {
		t.Error("unknown game started")
	}
}

func TestMenuCyclesDifficulty(t *testing.T) {
	svc := testServices(t)
	if _, err := svc.Store.SaveScore("pacman", 500); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(svc, testConfig())
	if len(m.items) != 2 || m.items[0].GameID != "marcopolo" || m.items[1].Best != 500 {
		t.Fatalf("items = %+v", m.items)
	}

	step := func(k string) {
		next, _ := m.Update(press(k))
		m = next.(MenuModel)
	}
	step("left")  // easy
	step("left")  // wraps to fixed
	step("down")  // pacman
	step("down")  // stays on the last item
	step("enter") // select

	sel := m.Selected()
	if sel == nil || sel.GameID != "pacman" {
		t.Fatalf("selected = %+v", sel)
	}
	if got := m.Config().Difficulty; got != "fixed" {
		t.Errorf("difficulty = %q, want fixed", got)
	}
}

func TestSessionFlow(t *testing.T) {
	svc := testServices(t)
	var s tea.Model = NewSessionModel(svc, testConfig(), "tester")
	send := func(msg tea.Msg) {
		s, _ = s.Update(msg)
	}
	screen := func() string { return s.(SessionModel).Screen() }

	send(tea.WindowSizeMsg{Width: 100, Height: 30})
	send(press("tab"))
	if screen() != "scores" {
		t.Fatalf("screen = %s, want scores", screen())
	}
	send(press("esc"))
	if screen() != "menu" {
		t.Fatalf("screen = %s, want menu", screen())
	}

	send(press("right"))
	send(press("enter"))
	if screen() != "game" {
		t.Fatalf("screen = %s, want game", screen())
	}
	sm := s.(SessionModel)
	if sm.config.Difficulty != "hard" || sm.game.game.ID() != "marcopolo" {
		t.Errorf("started %s on %s", sm.game.game.ID(), sm.config.Difficulty)
	}
	if sm.game.screen.Width() != 100 {
		t.Errorf("game screen width = %d", sm.game.screen.Width())
	}

	now := time.Now()
	send(press("right"))
	send(TickMsg{Time: now, Gen: s.(SessionModel).game.gen})
	send(press("p"))
	send(TickMsg{Time: now.Add(16 * time.Millisecond), Gen: s.(SessionModel).game.gen})
	send(press("esc"))
	if screen() != "menu" {
		t.Fatalf("screen = %s after back, want menu", screen())
	}
	if !strings.Contains(s.View(), "Marco Polo") {
		t.Error("menu view missing game titles")
	}

	s, cmd := s.Update(press("q"))
	if cmd == nil || s.View() != "" {
		t.Error("quit did not end the session")
	}
}

func TestScoreboardToggle(t *testing.T) {
	svc := testServices(t)
	for _, score := range []int{120, 340, 90} {
		if _, err := svc.Store.SaveScore("marcopolo", score); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.Store.SaveRun(storage.Run{GameID: "marcopolo", Score: 340, Level: 1, Reason: "won", Won: true}); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(svc, 100, 30)
	if len(m.rows) != 3 || m.stats == nil || m.stats.HighScore != 340 {
		t.Fatalf("rows = %d, stats = %+v", len(m.rows), m.stats)
	}
	if m.rows[0][1] != "340" {
		t.Errorf("top row = %v", m.rows[0])
	}

	next, _ := m.Update(press("v"))
	m = next.(ScoreboardModel)
	if m.view != ViewRecentRuns || len(m.rows) != 1 {
		t.Fatalf("view = %v, rows = %d", m.view, len(m.rows))
	}

	next, _ = m.Update(press("tab"))
	m = next.(ScoreboardModel)
	if m.gameID() != "pacman" || len(m.rows) != 0 || m.stats != nil {
		t.Errorf("pacman board = %s, %d rows", m.gameID(), len(m.rows))
	}
	if !strings.Contains(m.View(), "Pac-Man") {
		t.Error("view missing game title")
	}

	next, _ = m.Update(press("esc"))
	if m = next.(ScoreboardModel); !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc did not go back")
	}
}
