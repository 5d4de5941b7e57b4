// Package guard provides a per-ID mutual exclusion primitive for service
// mutations. One write per record may be in flight at a time; a second
// caller is told to back off instead of queuing behind the first.
package guard

import "sync"

// Guard tracks in-flight operations by record ID
type Guard struct {
	mu     sync.Mutex
	active map[int]struct{}
}

func New() *Guard {
	return &Guard{active: make(map[int]struct{})}
}

// Acquire marks id as busy, reporting false if it already is
func (g *Guard) Acquire(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[id]; busy {
		return false
	}
	g.active[id] = struct{}{}
	return true
}

// Release clears the in-flight mark for id
func (g *Guard) Release(id int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, id)
}
