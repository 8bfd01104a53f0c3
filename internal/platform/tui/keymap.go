package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chase-arcade/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Action     key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Action, k.Pause, k.Restart, k.Back, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Action, k.Pause, k.Restart},
		{k.Back, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Action: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "action"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

type dir int

const (
	dirUp dir = iota
	dirDown
	dirLeft
	dirRight
	dirCount
)

// DefaultHold covers the gap before a terminal starts auto-repeating.
const DefaultHold = 550 * time.Millisecond

// Latch turns key presses into held intents. Terminals report presses
// only, so a direction counts as held until Hold passes without a
// repeat. Pressing a direction releases the opposite one. With Hold 0
// the last direction sticks until another is pressed.
type Latch struct {
	Hold time.Duration

	until  [dirCount]time.Time
	sticky dir
	moving bool
	action bool
	pause  bool
}

// NewLatch creates a latch with the given hold window.
func NewLatch(hold time.Duration) *Latch {
	return &Latch{Hold: hold}
}

// Press records a key press at now. It reports whether the key was a
// gameplay key.
func (l *Latch) Press(msg tea.KeyMsg, keys GameKeyMap, now time.Time) bool {
	switch {
	case key.Matches(msg, keys.Up):
		l.press(dirUp, dirDown, now)
	case key.Matches(msg, keys.Down):
		l.press(dirDown, dirUp, now)
	case key.Matches(msg, keys.Left):
		l.press(dirLeft, dirRight, now)
	case key.Matches(msg, keys.Right):
		l.press(dirRight, dirLeft, now)
	case key.Matches(msg, keys.Action):
		l.action = true
	case key.Matches(msg, keys.Pause):
		l.pause = true
	default:
		return false
	}
	return true
}

func (l *Latch) press(d, opposite dir, now time.Time) {
	if l.Hold <= 0 {
		l.sticky, l.moving = d, true
		return
	}
	l.until[opposite] = time.Time{}
	l.until[d] = now.Add(l.Hold)
}

// Intent returns the intent for the frame at now. Action and pause are
// one-shot and cleared by the call.
func (l *Latch) Intent(now time.Time) core.Intent {
	in := core.Intent{Action: l.action, Pause: l.pause}
	l.action, l.pause = false, false

	var held [dirCount]bool
	if l.Hold <= 0 {
		if l.moving {
			held[l.sticky] = true
		}
	} else {
		for d := range dirCount {
			held[d] = now.Before(l.until[d])
		}
	}
	in.Up, in.Down, in.Left, in.Right = held[dirUp], held[dirDown], held[dirLeft], held[dirRight]
	return in
}

// Release drops every held direction and pending one-shot.
func (l *Latch) Release() {
	*l = Latch{Hold: l.Hold}
}
