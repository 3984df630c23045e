package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store implements Cache on top of go-cache.
//
// Entries are inserted with NoExpiration and carry their own ExpiresAt
// instead: go-cache's janitor would evict expired items, which would
// make stale reads impossible.
type Store struct {
	items    *gocache.Cache
	snapshot *Snapshot
	now      func() time.Time
}

// NewStore creates a Store. A nil snapshot keeps the cache memory-only;
// otherwise previously persisted entries are loaded immediately.
func NewStore(snapshot *Snapshot) *Store {
	s := &Store{
		items:    gocache.New(gocache.NoExpiration, 0),
		snapshot: snapshot,
		now:      time.Now,
	}

	if snapshot != nil {
		for key, entry := range snapshot.Load() {
			s.items.Set(key, entry, gocache.NoExpiration)
		}
	}

	return s
}

// Get returns the payload for key while the entry is still fresh
func (s *Store) Get(key string) ([]byte, bool) {
	entry, ok := s.lookup(key)
	if !ok || !entry.Fresh(s.now()) {
		return nil, false
	}
	return entry.Payload, true
}

// GetStale returns the most recent payload for key regardless of expiry
func (s *Store) GetStale(key string) ([]byte, bool) {
	entry, ok := s.lookup(key)
	if !ok {
		return nil, false
	}
	return entry.Payload, true
}

// Set stores payload under key, valid for ttl
func (s *Store) Set(key string, payload []byte, ttl time.Duration) {
	entry := Entry{
		ExpiresAt: s.now().Add(ttl).UnixMilli(),
		Payload:   payload,
	}
	s.items.Set(key, entry, gocache.NoExpiration)

	if s.snapshot != nil {
		s.snapshot.Store(s.entries())
	}
}

// Delete removes an entry, fresh or stale
func (s *Store) Delete(key string) {
	s.items.Delete(key)
}

// ItemCount returns the number of entries, including expired ones
func (s *Store) ItemCount() int {
	return s.items.ItemCount()
}

func (s *Store) lookup(key string) (Entry, bool) {
	value, found := s.items.Get(key)
	if !found {
		return Entry{}, false
	}
	entry, ok := value.(Entry)
	return entry, ok
}

// entries copies the current cache contents for a snapshot write
func (s *Store) entries() map[string]Entry {
	items := s.items.Items()
	out := make(map[string]Entry, len(items))
	for key, item := range items {
		if entry, ok := item.Object.(Entry); ok {
			out[key] = entry
		}
	}
	return out
}
