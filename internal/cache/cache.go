// Package cache stores raw extraction payloads keyed by page URL so that
// re-runs inside the TTL do not spend extraction credits twice.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ecotrace/campaignscan/internal/model"
)

// Cache is the storage interface shared by the backends
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a page URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "campaignscan:v1:" + hex.EncodeToString(hash[:])
}

// FromConfig builds the configured cache backend, or nil when caching is
// disabled.
func FromConfig(cfg model.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Backend {
	case "memory", "":
		return NewMemoryCache(cfg.TTL, 10*time.Minute), nil
	case "disk":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("disk cache requires cache.dir")
		}
		return NewDiskCache(cfg.Dir, cfg.TTL), nil
	case "layered":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("layered cache requires cache.dir")
		}
		return NewLayeredCache(cfg.TTL, cfg.Dir, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, disk, layered)", cfg.Backend)
	}
}
