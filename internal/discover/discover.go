// Package discover produces the bounded, ordered list of campaign pages to
// process. Greenpeace USA organizes campaigns by issue area rather than a
// single campaigns page, so discovery starts from known issue-area seeds
// and optionally augments them with a best-effort site-mapping call.
package discover

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ecotrace/campaignscan/internal/model"
)

// seedURLs are the known Greenpeace USA issue-area pages
var seedURLs = []string{
	"https://www.greenpeace.org/usa/toxics/",
	"https://www.greenpeace.org/usa/oceans/",
	"https://www.greenpeace.org/usa/climate/",
	"https://www.greenpeace.org/usa/fighting-plastic-pollution/",
	"https://www.greenpeace.org/usa/issues/",
	"https://www.greenpeace.org/usa/preventing-chemical-disasters/",
	"https://www.greenpeace.org/usa/pvc-free/",
	"https://www.greenpeace.org/usa/green-electronics/",
	"https://www.greenpeace.org/usa/industrial-pollution/",
}

// mapBaseURL and mapSearch drive the site-mapping call
const (
	mapBaseURL = "https://www.greenpeace.org/usa"
	mapSearch  = "toxic pollution chemical campaign"
)

// includeKeywords select campaign/issue URLs from the mapped set
var includeKeywords = []string{
	"/toxics/", "/pollution/", "/chemical", "/oil", "/gas",
	"/coal", "/plastic", "/ocean", "/climate", "/industrial",
	"/electronics", "/fashion", "/detox", "/pvc",
	"/preventing-", "/fighting-", "disaster",
}

// excludeKeywords drop navigation, donation, and taxonomy pages
var excludeKeywords = []string{
	"donate", "give", "volunteer", "shop", "jobs",
	"about", "contact", "login", "privacy", "terms",
	"/tag/", "/author/", "/category/",
}

// Mapper is the external site-mapping collaborator. Its failure is
// expected sometimes and never fatal.
type Mapper interface {
	MapURLs(ctx context.Context, url, search string) ([]string, error)
}

// Discoverer builds the page list
type Discoverer struct {
	mapper Mapper // nil disables mapping
	cfg    model.DiscoveryConfig
}

// New creates a Discoverer. A nil mapper means seeds only.
func New(mapper Mapper, cfg model.DiscoveryConfig) *Discoverer {
	return &Discoverer{mapper: mapper, cfg: cfg}
}

// Discover returns the ordered page list: seeds first, then mapped URLs
// that pass the keyword filters, deduplicated and capped. Mapping failure
// degrades gracefully to the seed list.
func (d *Discoverer) Discover(ctx context.Context) ([]string, error) {
	seeds, err := d.seeds()
	if err != nil {
		return nil, err
	}

	maxURLs := d.cfg.MaxURLs
	if maxURLs <= 0 {
		maxURLs = 50
	}

	urls := make([]string, 0, len(seeds))
	seen := make(map[string]bool)
	for _, u := range seeds {
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	if d.mapper != nil && d.cfg.UseMapper {
		mapped, err := d.mapper.MapURLs(ctx, mapBaseURL, mapSearch)
		if err != nil {
			log.Warn("site mapping failed, using seed URLs only", "err", err)
		} else {
			log.Info("discovered URLs via mapping", "count", len(mapped))
			for _, u := range mapped {
				if relevantURL(u) && !seen[u] {
					seen[u] = true
					urls = append(urls, u)
				}
			}
		}
	}

	if len(urls) > maxURLs {
		urls = urls[:maxURLs]
	}
	return urls, nil
}

// relevantURL applies the include and exclude keyword vocabularies
func relevantURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, kw := range excludeKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	for _, kw := range includeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// seeds returns the built-in seed list or the contents of the configured
// seeds file.
func (d *Discoverer) seeds() ([]string, error) {
	if d.cfg.SeedsFile == "" {
		out := make([]string, len(seedURLs))
		copy(out, seedURLs)
		return out, nil
	}
	return ReadSeedsFile(d.cfg.SeedsFile)
}

// ReadSeedsFile reads one URL per line, skipping blanks, comments, and
// duplicates.
func ReadSeedsFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seeds file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan seeds file: %w", err)
	}
	return urls, nil
}
