// Package notify is an in-process change signal keyed by callout ID.
// Writers stamp a callout after every attendance mutation; stream
// channels poll the stamp each tick and only rebuild their snapshot
// when something is newer than what they last emitted. Only
// "is there something newer" matters — reconciliation is always
// full-snapshot, never delta — so a single last-write-wins timestamp
// per callout is enough.
package notify

import (
	"sync"
	"time"
)

// Registry tracks the last change time per callout. Safe for
// concurrent use by mutation handlers and stream goroutines.
type Registry struct {
	mu      sync.RWMutex
	touched map[string]time.Time
	now     func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		touched: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Touch records the current time against a callout ID.
func (r *Registry) Touch(calloutID string) {
	r.mu.Lock()
	r.touched[calloutID] = r.now()
	r.mu.Unlock()
}

// ChangedSince reports whether the callout was touched after lastSeen.
// An untouched callout reports false.
func (r *Registry) ChangedSince(calloutID string, lastSeen time.Time) bool {
	r.mu.RLock()
	t, ok := r.touched[calloutID]
	r.mu.RUnlock()
	return ok && t.After(lastSeen)
}

// LastTouched returns the last touch time for a callout, zero if never
// touched.
func (r *Registry) LastTouched(calloutID string) time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.touched[calloutID]
}

// Forget drops the entry for a callout. Called when a callout is
// submitted so the map does not grow unbounded.
func (r *Registry) Forget(calloutID string) {
	r.mu.Lock()
	delete(r.touched, calloutID)
	r.mu.Unlock()
}
