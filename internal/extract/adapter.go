package extract

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ecotrace/campaignscan/internal/cache"
	"github.com/ecotrace/campaignscan/internal/model"
)

// Adapter wraps a Provider with the batch-safety contract: a failure on
// one page is logged and becomes a nil page, never an aborted run. It also
// caches raw extraction payloads by URL so re-runs within the TTL skip the
// service call.
type Adapter struct {
	provider Provider
	cache    cache.Cache // nil disables caching
	cacheTTL time.Duration
}

// NewAdapter creates an Adapter. Pass a nil cache to disable caching.
func NewAdapter(provider Provider, c cache.Cache, ttl time.Duration) *Adapter {
	return &Adapter{provider: provider, cache: c, cacheTTL: ttl}
}

// ExtractPage returns the page's extraction result, or nil when the page
// failed and was skipped.
func (a *Adapter) ExtractPage(ctx context.Context, url string) *model.PageExtraction {
	if page, ok := a.cached(url); ok {
		log.Debug("extraction cache hit", "url", url)
		return page
	}

	page, err := a.provider.ExtractPage(ctx, url)
	if err != nil {
		log.Warn("extraction failed, skipping page", "url", url, "provider", a.provider.Name(), "err", err)
		return nil
	}

	a.store(url, page)
	return page
}

func (a *Adapter) cached(url string) (*model.PageExtraction, bool) {
	if a.cache == nil {
		return nil, false
	}
	data, found := a.cache.Get(cache.Key(url))
	if !found {
		return nil, false
	}
	var page model.PageExtraction
	if err := json.Unmarshal(data, &page); err != nil {
		// Stale or corrupt entry; fall through to a fresh call
		_ = a.cache.Delete(cache.Key(url))
		return nil, false
	}
	return &page, true
}

func (a *Adapter) store(url string, page *model.PageExtraction) {
	if a.cache == nil || page == nil {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := a.cache.Set(cache.Key(url), data, a.cacheTTL); err != nil {
		log.Debug("cache write failed", "url", url, "err", err)
	}
}
