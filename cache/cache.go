package cache

import "time"

// Cache is the keyed store consulted by every remote call.
//
// Entries carry their own expiry. Get honors it; GetStale ignores it and
// exists only for the fetcher's last-resort fallback when every live
// attempt has failed.
type Cache interface {
	// Get returns the payload for key while the entry is still fresh
	Get(key string) ([]byte, bool)

	// GetStale returns the most recent payload for key regardless of
	// expiry
	GetStale(key string) ([]byte, bool)

	// Set stores payload under key, valid for ttl, overwriting any
	// prior entry. Storage failures are swallowed: a cache that cannot
	// persist degrades to memory-only, it never fails the caller.
	Set(key string, payload []byte, ttl time.Duration)
}

// Entry is a stored payload with its expiry, mirroring the on-disk shape
type Entry struct {
	// ExpiresAt is a millisecond epoch timestamp; the entry is fresh
	// while now < ExpiresAt
	ExpiresAt int64 `json:"expires_at"`

	Payload []byte `json:"payload"`
}

// Fresh reports whether the entry is still valid at the given time
func (e Entry) Fresh(now time.Time) bool {
	return now.UnixMilli() < e.ExpiresAt
}
