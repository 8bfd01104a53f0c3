package sim

// BestScore is the persistence collaborator for the single high score.
type BestScore interface {
	Best() int
	// Offer records score if it beats the best and reports whether it did.
	Offer(score int) bool
}

// MemoryBest keeps the best score in memory.
type MemoryBest struct {
	Value int
}

func (m *MemoryBest) Best() int { return m.Value }

func (m *MemoryBest) Offer(score int) bool {
	if score <= m.Value {
		return false
	}
	m.Value = score
	return true
}
