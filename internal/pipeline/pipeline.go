// Package pipeline runs the full collection sequence: discovery, per-page
// extraction, normalization, accumulation, aggregation. Processing is
// strictly sequential — one page finishes before the next begins — and the
// only shared state is the record list owned by the run loop.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ecotrace/campaignscan/internal/discover"
	"github.com/ecotrace/campaignscan/internal/extract"
	"github.com/ecotrace/campaignscan/internal/model"
	"github.com/ecotrace/campaignscan/internal/normalize"
	"github.com/ecotrace/campaignscan/internal/stats"
)

// Pipeline orchestrates one collection run
type Pipeline struct {
	discoverer *discover.Discoverer
	adapter    *extract.Adapter
	normalizer *normalize.Normalizer
	pacer      *Pacer
	cfg        *model.Config

	out io.Writer // per-page console reporting; nil silences it
	now func() time.Time

	// OnPage, when set, is called before each page is processed (1-based
	// index). The CLI uses it to drive the spinner.
	OnPage func(i, total int, url string)
}

// New creates a Pipeline
func New(cfg *model.Config, discoverer *discover.Discoverer, adapter *extract.Adapter, out io.Writer) *Pipeline {
	return &Pipeline{
		discoverer: discoverer,
		adapter:    adapter,
		normalizer: normalize.New(),
		pacer:      NewPacer(cfg.Pacing.PageDelay),
		cfg:        cfg,
		out:        out,
		now:        time.Now,
	}
}

// Result is the outcome of a run
type Result struct {
	Records         []model.Record
	Summary         model.Summary
	PagesProcessed  int
	PagesFailed     int
	EntitiesSkipped int
}

// Run executes the full pipeline. Once discovery has produced a page
// list, page-level failures never abort the batch; partial results are
// always preferred over an all-or-nothing failure.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	urls, err := p.discoverer.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	if !p.cfg.Discovery.FullRun && len(urls) > p.cfg.Discovery.SampleSize {
		urls = urls[:p.cfg.Discovery.SampleSize]
		log.Info("sample mode: truncated page list", "pages", len(urls))
	}

	result := &Result{}

	for i, url := range urls {
		// Fixed inter-page spacing, enforced regardless of the previous
		// page's outcome. The first page starts immediately.
		if err := p.pacer.Wait(ctx); err != nil {
			result.Summary = stats.Summarize(result.Records)
			return result, fmt.Errorf("pacing interrupted: %w", err)
		}

		if p.OnPage != nil {
			p.OnPage(i+1, len(urls), url)
		}
		p.printf("\n[%d/%d] Processing: %s\n", i+1, len(urls), url)

		page := p.adapter.ExtractPage(ctx, url)
		result.PagesProcessed++
		if page == nil {
			result.PagesFailed++
			continue
		}

		pctx := normalize.PageContext{
			URL:       url,
			ScrapedAt: p.now(),
		}
		records, skipped := p.normalizer.NormalizePage(page, pctx)
		result.EntitiesSkipped += skipped
		if skipped > 0 {
			log.Warn("skipped malformed entities", "url", url, "count", skipped)
		}

		if len(records) == 0 {
			p.printf("  ℹ️  No target companies found on this page\n")
			continue
		}

		p.printf("  ✅ Found %d target companies\n", len(records))
		for _, rec := range records {
			p.printf("     - %s (%s) - %s [%s priority]\n",
				rec.CompanyName, sectorLabel(rec.IndustrySector),
				joinCategories(rec.PollutionCategories), rec.ActivistPriorityLevel)
		}
		result.Records = append(result.Records, records...)
	}

	result.Summary = stats.Summarize(result.Records)
	return result, nil
}

func (p *Pipeline) printf(format string, args ...any) {
	if p.out != nil {
		fmt.Fprintf(p.out, format, args...)
	}
}

func sectorLabel(sector *string) string {
	if sector == nil || *sector == "" {
		return "unknown sector"
	}
	return *sector
}

func joinCategories(categories []model.PollutionCategory) string {
	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
