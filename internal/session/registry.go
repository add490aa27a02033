package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	gate *Gate
	seen time.Time
}

// Registry holds gates by session id. Gates are only touched under its lock.
type Registry struct {
	mu    sync.Mutex
	gates map[string]*entry
	ttl   time.Duration
	now   func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{gates: make(map[string]*entry), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

func (r *Registry) Create() string {
	id := uuid.New().String()
	r.mu.Lock()
	r.gates[id] = &entry{gate: NewGate(), seen: r.now()}
	r.mu.Unlock()
	return id
}

func (r *Registry) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.gates[id]
	return ok
}

// With runs fn on the session's gate. It reports false for unknown ids.
func (r *Registry) With(id string, fn func(g *Gate)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.gates[id]
	if !ok {
		return false
	}
	e.seen = r.now()
	fn(e.gate)
	return true
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.gates, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.gates)
}

// Expire drops sessions idle longer than the ttl and returns how many went.
func (r *Registry) Expire() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.gates {
		if r.now().Sub(e.seen) > r.ttl {
			delete(r.gates, id)
			n++
		}
	}
	return n
}

// Sweep calls Expire every interval until ctx is done.
func (r *Registry) Sweep(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Expire()
		}
	}
}
