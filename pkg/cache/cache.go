// Package cache provides caching for parse results and other derived
// artifacts, keyed by a hash of the DSL source and the parse options.
//
// Three backends implement the same interface:
//   - [FileCache]: directory of JSON entry files, for CLI usage
//   - [RedisCache]: shared cache for multi-instance server deployments
//   - [NullCache]: disabled caching, for tests and --no-cache
//
// Keys are built with a [Keyer] so that different deployments can
// namespace entries (see [ScopedKeyer]).
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the time-to-live applied when callers have no opinion.
// Parse results are content-addressed, so staleness only matters when the
// toolchain itself changes; a day is plenty.
const DefaultTTL = 24 * time.Hour

// Cache is the interface all cache backends implement.
//
// Get returns (data, true, nil) on a hit, (nil, false, nil) on a miss.
// Backends treat corrupt or expired entries as misses, never as errors.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys from source text and a discriminator describing
// the operation (backend name, option fingerprint).
type Keyer interface {
	Key(kind, source string) string
}

// DefaultKeyer hashes source content into keys of the form "kind:hash".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard content-hashing keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// Key returns "kind:sha256(source)".
func (DefaultKeyer) Key(kind, source string) string {
	return kind + ":" + Hash([]byte(source))
}
