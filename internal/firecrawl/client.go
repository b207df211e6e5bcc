// Package firecrawl is a minimal client for the managed extraction
// service. Only the two endpoints the pipeline needs are covered: extract
// (scrape + schema-guided entity extraction in one call) and map (site URL
// discovery).
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ecotrace/campaignscan/internal/util"
)

// DefaultBaseURL is the hosted service endpoint
const DefaultBaseURL = "https://api.firecrawl.dev"

// Client talks to the extraction service over HTTP
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Options configures a Client
type Options struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPProxy  string
	HTTPSProxy string
}

// New creates a Client. The API key is required.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("firecrawl API key is required")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 2 * time.Minute
	}

	return &Client{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(opts.HTTPProxy, opts.HTTPSProxy, ""),
			},
		},
	}, nil
}

// ExtractRequest asks the service to scrape one or more URLs and fill the
// given JSON schema guided by the prompt.
type ExtractRequest struct {
	URLs   []string        `json:"urls"`
	Schema json.RawMessage `json:"schema,omitempty"`
	Prompt string          `json:"prompt,omitempty"`
}

// ExtractResponse is the service's extraction result. Data carries one
// element per requested URL.
type ExtractResponse struct {
	Success bool              `json:"success"`
	Data    []json.RawMessage `json:"data"`
	Error   string            `json:"error,omitempty"`
}

// Extract runs scrape + extraction for the requested URLs
func (c *Client) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	var resp ExtractResponse
	if err := c.post(ctx, "/v1/extract", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("extract: service error: %s", resp.Error)
	}
	return &resp, nil
}

// MapRequest asks the service for URLs discovered on a site, optionally
// ranked by a search string.
type MapRequest struct {
	URL    string `json:"url"`
	Search string `json:"search,omitempty"`
}

// Link is one discovered URL. The service returns links either as bare
// strings or as {"url": ...} objects, so it unmarshals both.
type Link struct {
	URL string `json:"url"`
}

// UnmarshalJSON accepts both string and object link forms
func (l *Link) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &l.URL)
	}
	type alias Link
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*l = Link(a)
	return nil
}

// MapResponse is the service's discovery result
type MapResponse struct {
	Success bool   `json:"success"`
	Links   []Link `json:"links"`
	Error   string `json:"error,omitempty"`
}

// Map discovers URLs on a site
func (c *Client) Map(ctx context.Context, req MapRequest) (*MapResponse, error) {
	var resp MapResponse
	if err := c.post(ctx, "/v1/map", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("map: service error: %s", resp.Error)
	}
	return &resp, nil
}

// MapURLs is a convenience wrapper returning the discovered URLs as strings
func (c *Client) MapURLs(ctx context.Context, url, search string) ([]string, error) {
	resp, err := c.Map(ctx, MapRequest{URL: url, Search: search})
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(resp.Links))
	for _, link := range resp.Links {
		if link.URL != "" {
			urls = append(urls, link.URL)
		}
	}
	return urls, nil
}

// post sends a JSON request and decodes the JSON response
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10_000_000))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
