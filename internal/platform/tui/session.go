package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chase-arcade/internal/core"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages the full arcade session flow: menu -> game -> menu,
// with the scoreboard reachable from the menu. Local play and SSH
// sessions both run it.
type SessionModel struct {
	svc      Services
	config   core.RuntimeConfig
	user     string
	current  screenKind
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	notice   string // last start failure, shown on the menu
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(svc Services, cfg core.RuntimeConfig, user string) SessionModel {
	return SessionModel{
		svc:    svc,
		config: cfg,
		user:   user,
		menu:   NewMenuModel(svc, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, _ := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.svc, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		cfg := m.menu.Config()
		cfg.ScreenW, cfg.ScreenH = m.config.ScreenW, m.config.ScreenH
		id := m.menu.Selected().GameID

		game, err := NewGameModel(id, m.svc, cfg)
		if err != nil {
			if m.svc.Logger != nil {
				m.svc.Logger.Error("cannot start game", "game", id, "user", m.user, "err", err)
			}
			m.notice = err.Error()
			m.menu = NewMenuModel(m.svc, cfg)
			return m, nil
		}
		m.config = cfg
		m.game = &game
		m.current = screenGame
		m.notice = ""
		return m, m.game.Init()
	}

	return m, nil
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = &game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.backToMenu()
		// The pending tick is dropped on the menu screen.
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.backToMenu()
		return m, nil
	}
	return m, cmd
}

func (m *SessionModel) backToMenu() {
	m.game = nil
	m.current = screenMenu
	m.menu = NewMenuModel(m.svc, m.config)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}

	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + centerText(m.svc.Theme.Help.Render("error: "+m.notice), m.config.ScreenW)
	}
	return view
}

// Screen reports which screen is active: "menu", "game" or "scores".
func (m SessionModel) Screen() string {
	switch m.current {
	case screenGame:
		return "game"
	case screenScores:
		return "scores"
	}
	return "menu"
}

// RunSession runs the interactive arcade in the local terminal.
func RunSession(svc Services, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(svc, cfg, ""),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
