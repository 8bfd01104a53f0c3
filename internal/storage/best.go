package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chase-arcade/internal/sim"
)

// Best adapts a Store to the engine's best-score collaborator for one
// game. Every offered round score is saved; the best is cached so the
// engine can read it each frame without touching the database.
type Best struct {
	store  *Store
	gameID string
	log    *log.Logger
	best   int
}

var _ sim.BestScore = (*Best)(nil)

// BestFor loads the stored high score for gameID. A nil store gives an
// in-memory best. Read failures are logged and start from zero.
func BestFor(store *Store, gameID string, logger *log.Logger) *Best {
	b := &Best{store: store, gameID: gameID, log: logger}
	if store == nil {
		return b
	}
	high, err := store.HighScore(gameID)
	if err != nil {
		b.warn("cannot load high score", "err", err)
		return b
	}
	b.best = high
	return b
}

// Best returns the highest score seen so far.
func (b *Best) Best() int {
	return b.best
}

// Offer saves a finished round's score and reports whether it beat the
// previous best. Zero scores are not saved.
func (b *Best) Offer(score int) bool {
	if score <= 0 {
		return false
	}
	if b.store != nil {
		if _, err := b.store.SaveScore(b.gameID, score); err != nil {
			b.warn("cannot save score", "score", score, "err", err)
		}
	}
	if score > b.best {
		b.best = score
		return true
	}
	return false
}

func (b *Best) warn(msg string, kv ...any) {
	if b.log != nil {
		b.log.Warn(msg, append([]any{"game", b.gameID}, kv...)...)
	}
}
