// Package marcopolo implements the pool hide-and-seek game: the swimmer
// hunts fish through fog, calling "Marco" to make them answer and show
// where they are.
package marcopolo

import (
	"fmt"

	"github.com/vovakirdan/chase-arcade/internal/config"
	"github.com/vovakirdan/chase-arcade/internal/core"
	"github.com/vovakirdan/chase-arcade/internal/games/arena"
	"github.com/vovakirdan/chase-arcade/internal/registry"
)

// ID is the registry and score storage key.
const ID = "marcopolo"

// Game is the Marco Polo registry adapter.
type Game struct {
	arena.Session
	cfg config.MarcoPoloConfig
}

// New creates an unstarted game; Reset loads its configuration.
func New() *Game {
	return &Game{cfg: config.DefaultMarcoPoloConfig()}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Marco Polo" }

// Reset loads the tuning, applies the difficulty preset and starts a new round.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	cfg, err := config.LoadMarcoPolo(rc.ConfigPath)
	if err != nil {
		return fmt.Errorf("marcopolo: %w", err)
	}
	preset, ok := config.ParsePreset(rc.Difficulty)
	if !ok {
		return fmt.Errorf("marcopolo: unknown difficulty %q", rc.Difficulty)
	}
	config.ApplyMarcoPoloPreset(&cfg, preset)
	cfg.Normalize()
	return g.start(cfg, rc.Seed)
}

func (g *Game) start(cfg config.MarcoPoloConfig, seed int64) error {
	if err := g.Start(Rules(cfg), seed); err != nil {
		return fmt.Errorf("marcopolo: %w", err)
	}
	g.cfg = cfg
	return nil
}

// Config returns the tuning of the current round.
func (g *Game) Config() config.MarcoPoloConfig {
	return g.cfg
}
