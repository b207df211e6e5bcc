// Package extract defines the extraction capability boundary: given a page
// URL, a fixed schema, and a fixed instruction, a provider returns the
// page's campaign-target entities. The page understanding itself is an
// opaque capability supplied by a concrete provider.
package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ecotrace/campaignscan/internal/model"
)

// Provider extracts campaign-target entities from one page
type Provider interface {
	// Name returns the provider name
	Name() string

	// ExtractPage scrapes and extracts a single page. A nil error with a
	// HasCampaignTargets=false result means the page genuinely has no
	// targets; an error means the page could not be processed.
	ExtractPage(ctx context.Context, url string) (*model.PageExtraction, error)
}

// NewProvider creates a Provider from configuration. The required API key
// is taken from the config or, when empty, from the provider's
// conventional environment variable. A missing key is a fatal, pre-run
// condition.
func NewProvider(cfg *model.Config) (Provider, error) {
	switch strings.ToLower(cfg.Extractor.Provider) {
	case "firecrawl", "":
		apiKey := cfg.Extractor.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("FIRECRAWL_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("FIRECRAWL_API_KEY environment variable not set")
		}
		return NewFirecrawlProvider(cfg, apiKey)

	case "openai":
		apiKey := cfg.Extractor.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		return NewOpenAIProvider(cfg, apiKey)

	default:
		return nil, fmt.Errorf("unknown extraction provider: %s (supported: firecrawl, openai)", cfg.Extractor.Provider)
	}
}
