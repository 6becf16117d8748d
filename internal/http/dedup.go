package http

import (
	"context"
	"sync"
)

// DedupEntry represents one in-flight call shared between callers. The
// owner performs the network call and settles the entry; waiters block on
// done or their own context.
type DedupEntry struct {
	mu       sync.Mutex
	response *Response
	err      error
	done     chan struct{}
}

// Wait blocks until the owning call settles or ctx is cancelled. A
// cancelled waiter detaches with its own context error; the shared call
// keeps running for everyone else.
func (e *DedupEntry) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-e.done:
		e.mu.Lock()
		defer e.mu.Unlock()

		return e.response, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// DedupTracker coalesces concurrent identical requests onto one network
// call. At most one live call exists per key; the entry is removed the
// instant the call settles, so a later call always starts fresh.
type DedupTracker struct {
	mu      sync.Mutex
	entries map[string]*DedupEntry
}

// NewDedupTracker returns an empty tracker.
func NewDedupTracker() *DedupTracker {
	return &DedupTracker{
		entries: make(map[string]*DedupEntry),
	}
}

// GetOrCreate returns the entry for key and whether the caller owns it.
// The owner must call Complete exactly once.
func (t *DedupTracker) GetOrCreate(key string) (*DedupEntry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, ok := t.entries[key]; ok {
		return entry, false
	}

	entry := &DedupEntry{done: make(chan struct{})}
	t.entries[key] = entry

	return entry, true
}

// Complete settles the entry for key and releases all waiters. The entry
// is removed before waiters wake so no new caller can attach to a settled
// outcome.
func (t *DedupTracker) Complete(key string, resp *Response, err error) {
	t.mu.Lock()
	entry, ok := t.entries[key]
	delete(t.entries, key)
	t.mu.Unlock()

	if !ok {
		return
	}

	entry.mu.Lock()
	entry.response = resp
	entry.err = err
	entry.mu.Unlock()

	close(entry.done)
}

// Len returns the number of in-flight entries.
func (t *DedupTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}
