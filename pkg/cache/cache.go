// Package cache provides the read-through byte stores used by the pipeline
// for candidate lookups and travel estimates. No correctness invariant
// depends on a cache hit, only latency does, so every implementation is
// allowed to drop entries at will.
package cache

import (
	"context"
	"time"
)

// Store is a TTL'd byte cache safe for concurrent use from multiple
// in-flight requests.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
