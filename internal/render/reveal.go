package render

import "sync"

// Reveal tracks which cards have scrolled into view. A card goes from
// pending to revealed once and never back.
type Reveal struct {
	mu       sync.Mutex
	revealed map[int64]struct{}
}

func NewReveal() *Reveal {
	return &Reveal{revealed: make(map[int64]struct{})}
}

// Observe records a visibility callback for id. Only visible==true has an
// effect.
func (r *Reveal) Observe(id int64, visible bool) {
	if r == nil || !visible {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.revealed == nil {
		r.revealed = make(map[int64]struct{})
	}
	r.revealed[id] = struct{}{}
}

// ObserveAll marks every card as revealed; used by renderers that have no
// viewport.
func (r *Reveal) ObserveAll(ids ...int64) {
	for _, id := range ids {
		r.Observe(id, true)
	}
}

func (r *Reveal) IsRevealed(id int64) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revealed[id]
	return ok
}
