// Package idgen hands out integer identifiers derived from the millisecond
// clock. Identifiers are strictly increasing within a Generator even when
// several are requested in the same millisecond or the clock steps back.
package idgen

import (
	"errors"
	"math"
	"sync"
	"time"
)

// ErrExhausted is returned by Next once math.MaxInt64 has been issued or
// observed.
var ErrExhausted = errors.New("id space exhausted")

type Option func(*Generator)

// WithClock replaces time.Now as the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns the current millisecond epoch, or last+1 if that would not be
// larger than every id returned or observed so far.
func (g *Generator) Next() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		if g.last == math.MaxInt64 {
			return 0, ErrExhausted
		}
		id = g.last + 1
	}
	g.last = id
	return id, nil
}

// Observe records an id issued elsewhere, e.g. one loaded from disk, so that
// Next never returns it again.
func (g *Generator) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id > g.last {
		g.last = id
	}
}
