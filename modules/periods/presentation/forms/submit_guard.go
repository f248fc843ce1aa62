package forms

import (
	"sync"
)

// SubmitGuard allows at most one submission in flight per key. Keys are
// form tokens, so two tabs editing the same period are independent.
type SubmitGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewSubmitGuard() *SubmitGuard {
	return &SubmitGuard{inFlight: make(map[string]struct{})}
}

// Acquire marks key as in flight. ok is false when it already was; otherwise
// release must be called once the submission is over. Extra calls to release
// are no-ops.
func (g *SubmitGuard) Acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[key]; busy {
		return func() {}, false
	}
	g.inFlight[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, key)
			g.mu.Unlock()
		})
	}, true
}

func (g *SubmitGuard) Held(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.inFlight[key]
	return busy
}
