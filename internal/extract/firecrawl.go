package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecotrace/campaignscan/internal/firecrawl"
	"github.com/ecotrace/campaignscan/internal/model"
)

// FirecrawlProvider delegates scraping and entity extraction to the
// managed service in a single call per page.
type FirecrawlProvider struct {
	client *firecrawl.Client
}

// NewFirecrawlProvider creates the provider
func NewFirecrawlProvider(cfg *model.Config, apiKey string) (*FirecrawlProvider, error) {
	client, err := firecrawl.New(firecrawl.Options{
		APIKey:     apiKey,
		BaseURL:    cfg.Extractor.BaseURL,
		Timeout:    cfg.Extractor.Timeout,
		HTTPProxy:  cfg.HTTP.HTTPProxy,
		HTTPSProxy: cfg.HTTP.HTTPSProxy,
	})
	if err != nil {
		return nil, err
	}
	return &FirecrawlProvider{client: client}, nil
}

// Name returns the provider name
func (p *FirecrawlProvider) Name() string { return "firecrawl" }

// Client exposes the underlying service client so discovery can reuse it
// for the map endpoint.
func (p *FirecrawlProvider) Client() *firecrawl.Client { return p.client }

// ExtractPage extracts campaign targets from one page
func (p *FirecrawlProvider) ExtractPage(ctx context.Context, url string) (*model.PageExtraction, error) {
	resp, err := p.client.Extract(ctx, firecrawl.ExtractRequest{
		URLs:   []string{url},
		Schema: Schema,
		Prompt: Instruction,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		// The service saw the page but extracted nothing
		return &model.PageExtraction{}, nil
	}

	var page model.PageExtraction
	if err := json.Unmarshal(resp.Data[0], &page); err != nil {
		return nil, fmt.Errorf("parse extraction payload: %w", err)
	}
	return &page, nil
}
