package model

// historySize is how many recent generations are remembered; enough to catch
// still lifes and period-2 and period-3 oscillators.
const historySize = 5

// History remembers hashes of recent generations for stagnation detection
type History struct {
	hashes []string
}

// Update records the grid's current state, keeping only the most recent entries
func (h *History) Update(g *Grid) {
	h.hashes = append(h.hashes, g.Hash())
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant reports whether the grid repeats one of the last three recorded states
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}

	current := g.Hash()
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == current {
			return true
		}
	}
	return false
}

// Clear forgets every recorded state
func (h *History) Clear() {
	h.hashes = nil
}
