package cache

import (
	"context"
	"time"

	"github.com/maypok86/otter/v2"
)

type otterEntry struct {
	ExpiresAt time.Time
	Data      []byte
}

// OtterStore is the default in-process cache. Per-entry TTLs are tracked on
// the entry itself; otter's write-expiry acts as an upper bound.
type OtterStore struct {
	cache otter.Cache[string, otterEntry]
}

func NewOtterStore(maxEntries int, maxTTL time.Duration) *OtterStore {
	c := otter.Must(&otter.Options[string, otterEntry]{
		MaximumSize:      maxEntries,
		InitialCapacity:  maxEntries / 10,
		ExpiryCalculator: otter.ExpiryWriting[string, otterEntry](maxTTL),
	})
	return &OtterStore{cache: *c}
}

func (s *OtterStore) Get(_ context.Context, key string) ([]byte, bool) {
	entry, ok := s.cache.GetIfPresent(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		s.cache.Invalidate(key)
		return nil, false
	}
	return entry.Data, true
}

func (s *OtterStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	s.cache.Set(key, otterEntry{
		ExpiresAt: time.Now().Add(ttl),
		Data:      value,
	})
}
