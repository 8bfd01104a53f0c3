package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/registry"
	"github.com/vovakirdan/chase-arcade/internal/sim"
	"github.com/vovakirdan/chase-arcade/internal/storage"
)

// Services are the platform collaborators shared by every game a
// session starts. All fields are optional.
type Services struct {
	Store  *storage.Store
	Sink   sim.EffectsSink // audio or other cosmetic effects
	Logger *log.Logger
	Theme  Theme
}

// stickyGames steer on a grid, so the last direction keeps the
// player moving.
var stickyGames = map[string]bool{"pacman": true}

// runRecorder collects round endings so the model can store them as
// runs. Level clears are not run endings.
type runRecorder struct {
	ended []sim.RoundEnded
}

func (r *runRecorder) Emit(ev sim.Event) {
	if e, ok := ev.(sim.RoundEnded); ok && e.Reason != sim.ReasonLevelCleared {
		r.ended = append(r.ended, e)
	}
}

func (r *runRecorder) take() []sim.RoundEnded {
	ended := r.ended
	r.ended = nil
	return ended
}

// GameModel is the Bubble Tea model for running one arcade game.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	svc       Services
	config    core.RuntimeConfig
	fixedSeed bool
	keys      GameKeyMap
	help      help.Model
	latch     *Latch
	runs      *runRecorder
	gen       uint64
	gameState core.GameState
	epoch     time.Time // wall time of frame zero
	roundAt   time.Time // wall time the current round started
	lastErr   error
	quitting  bool
	back      bool
	// quitOnBack ends the program on back when no menu is behind it.
	quitOnBack bool
}

// NewGameModel starts gameID with the given services.
func NewGameModel(gameID string, svc Services, cfg core.RuntimeConfig) (GameModel, error) {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	runs := &runRecorder{}
	host := registry.Host{
		Best:   storage.BestFor(svc.Store, gameID, svc.Logger),
		Sink:   sim.Sinks{svc.Sink, runs},
		Logger: svc.Logger,
	}
	game, err := registry.Start(gameID, cfg, host)
	if err != nil {
		return GameModel{}, err
	}

	hold := DefaultHold
	if stickyGames[gameID] {
		hold = 0
	}
	h := help.New()
	h.ShowAll = false

	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, playRows(cfg.ScreenH)),
		svc:       svc,
		config:    cfg,
		fixedSeed: fixed,
		keys:      DefaultGameKeyMap(),
		help:      h,
		latch:     NewLatch(hold),
		runs:      runs,
		gen:       nextGen(),
		gameState: game.State(),
	}, nil
}

// playRows leaves the bottom row for the help line.
func playRows(h int) int {
	return max(h-1, 1)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playRows(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.gameState.GameOver || m.gameState.Paused {
			m.back = true
			if m.quitOnBack {
				return m, tea.Quit
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		if m.gameState.GameOver {
			m.restart(now)
		}
		return m, nil
	}

	m.latch.Press(msg, m.keys, now)
	return m, nil
}

// restart resets the game for a new round. Time-seeded runs get a fresh
// seed; a fixed seed replays the same round.
func (m *GameModel) restart(now time.Time) {
	if !m.fixedSeed {
		m.config.Seed = now.UnixNano()
	}
	m.runs.take()
	m.latch.Release()
	if err := m.game.Reset(m.config); err != nil {
		m.lastErr = err
		if m.svc.Logger != nil {
			m.svc.Logger.Error("restart failed", "game", m.game.ID(), "err", err)
		}
		return
	}
	m.gameState = m.game.State()
	m.roundAt = now
}

// handleTick advances the game to the tick's wall time.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.epoch.IsZero() {
		m.epoch = now
		m.roundAt = now
	}
	nowMs := float64(now.Sub(m.epoch)) / float64(time.Millisecond)

	result := m.game.Step(m.latch.Intent(now), nowMs)
	m.gameState = result.State

	for _, ended := range m.runs.take() {
		m.saveRun(ended, now)
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveRun stores a finished round. The score itself is recorded by the
// engine's best-score collaborator.
func (m *GameModel) saveRun(e sim.RoundEnded, now time.Time) {
	if m.svc.Store == nil {
		return
	}
	run, err := m.svc.Store.SaveRun(storage.Run{
		GameID:   m.game.ID(),
		Score:    e.Score,
		Level:    e.Level,
		Reason:   e.Reason.String(),
		Won:      e.Reason == sim.ReasonWon,
		Duration: now.Sub(m.roundAt),
	})
	if err != nil {
		if m.svc.Logger != nil {
			m.svc.Logger.Warn("cannot save run", "game", m.game.ID(), "err", err)
		}
		return
	}
	if m.svc.Logger != nil {
		m.svc.Logger.Debug("run saved", "game", run.GameID, "run", run.ID, "score", run.Score, "reason", run.Reason)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.lastErr != nil {
		footer = "error: " + m.lastErr.Error()
	}
	return RenderScreen(m.screen) + "\n" + m.svc.Theme.Help.Render(footer)
}

// State returns the last frame's game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.back
}

// Run plays one game until the player quits.
func Run(gameID string, svc Services, cfg core.RuntimeConfig) error {
	model, err := NewGameModel(gameID, svc, cfg)
	if err != nil {
		return err
	}
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
