// Package pacman implements the Pac-Man 3D maze: clear the pellet lattice
// while four ghosts with distinct personalities hunt you, and turn the
// tables with power pellets.
package pacman

import (
	"fmt"

	"github.com/vovakirdan/chase-arcade/internal/config"
	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/games/arena"
	"github.com/vovakirdan/chase-arcade/internal/registry"
)

// ID is the registry and score storage key.
const ID = "pacman"

// Game is the Pac-Man 3D registry adapter.
type Game struct {
	arena.Session
	cfg config.PacmanConfig
}

// New creates an unstarted game; Reset loads its configuration.
func New() *Game {
	return &Game{cfg: config.DefaultPacmanConfig()}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Pac-Man 3D" }

// Reset loads the tuning, applies the difficulty preset and starts a new game.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	cfg, err := config.LoadPacman(rc.ConfigPath)
	if err != nil {
		return fmt.Errorf("pacman: %w", err)
	}
	preset, ok := config.ParsePreset(rc.Difficulty)
	if !ok {
		return fmt.Errorf("pacman: unknown difficulty %q", rc.Difficulty)
	}
	config.ApplyPacmanPreset(&cfg, preset)
	cfg.Normalize()

	if err := g.Start(Rules(cfg), rc.Seed); err != nil {
		return fmt.Errorf("pacman: %w", err)
	}
	g.cfg = cfg
	return nil
}

// Config returns the tuning of the current game.
func (g *Game) Config() config.PacmanConfig {
	return g.cfg
}
