// Package site is the client for the public pages: catalog, blogs, FAQ,
// gallery and the order, demo, application and newsletter forms.
package site

import (
	"math/rand"
	"sync"
	"time"

	"github.com/voltrak-labs/showroom/internal/backend"
)

// RelatedCount is how many related entries a detail page shows.
const RelatedCount = 2

// Site reads and submits through one backend client.
type Site struct {
	client *backend.Client

	mu   sync.Mutex
	rand *rand.Rand
}

// Option configures a Site.
type Option func(*Site)

// WithRand sets the source used to pick related entries.
func WithRand(r *rand.Rand) Option {
	return func(s *Site) {
		s.rand = r
	}
}

// New creates a Site.
func New(client *backend.Client, opts ...Option) *Site {
	s := &Site{
		client: client,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// pickRelated returns up to n entries of items, excluding those for which
// self is true, in random order.
func pickRelated[T any](s *Site, items []T, self func(T) bool, n int) []T {
	pool := make([]T, 0, len(items))
	for _, item := range items {
		if !self(item) {
			pool = append(pool, item)
		}
	}
	s.mu.Lock()
	s.rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	s.mu.Unlock()
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

func sameID(id *int64, want int64) bool {
	return id != nil && *id == want
}
