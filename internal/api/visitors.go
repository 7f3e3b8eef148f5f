package api

import (
	"sort"
	"sync"
	"time"
)

// maxVisitors caps the table so an address scan cannot grow it without
// bound. When full, new addresses evict the least recently seen entry.
const maxVisitors = 256

// visitor is one remote address and its access history.
type visitor struct {
	Addr    string    `json:"addr"`
	Count   int       `json:"count"`
	FirstAt time.Time `json:"first_at"`
	LastAt  time.Time `json:"last_at"`
}

// visitorTable tracks which remote addresses have hit the status pages.
// The pool status page is deliberately unauthenticated on the LAN, so the
// table is the only record of who has been looking.
type visitorTable struct {
	mu      sync.Mutex
	entries map[string]*visitor
}

func newVisitorTable() *visitorTable {
	return &visitorTable{entries: make(map[string]*visitor)}
}

// Record notes one request from addr.
func (t *visitorTable) Record(addr string) {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if v, ok := t.entries[addr]; ok {
		v.Count++
		v.LastAt = now
		return
	}

	if len(t.entries) >= maxVisitors {
		t.evictOldestLocked()
	}
	t.entries[addr] = &visitor{Addr: addr, Count: 1, FirstAt: now, LastAt: now}
}

// evictOldestLocked removes the least recently seen entry.
func (t *visitorTable) evictOldestLocked() {
	var oldest *visitor
	for _, v := range t.entries {
		if oldest == nil || v.LastAt.Before(oldest.LastAt) {
			oldest = v
		}
	}
	if oldest != nil {
		delete(t.entries, oldest.Addr)
	}
}

// Snapshot returns the visitors ordered most recently seen first.
func (t *visitorTable) Snapshot() []visitor {
	t.mu.Lock()
	out := make([]visitor, 0, len(t.entries))
	for _, v := range t.entries {
		out = append(out, *v)
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].LastAt.After(out[j].LastAt)
	})
	return out
}
