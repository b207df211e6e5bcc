package model

import "time"

// Config is the full runtime configuration, resolved from defaults, the
// config file, CAMPAIGNSCAN_* environment variables, and CLI flags.
type Config struct {
	Extractor ExtractorConfig `yaml:"extractor"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	HTTP      HTTPConfig      `yaml:"http"`
	Cache     CacheConfig     `yaml:"cache"`
	Pacing    PacingConfig    `yaml:"pacing"`
	Output    OutputConfig    `yaml:"output"`
}

// ExtractorConfig selects and configures the extraction provider
type ExtractorConfig struct {
	// Provider name: "firecrawl" or "openai"
	Provider string `yaml:"provider"`

	// APIKey for the selected provider. Usually left empty here and read
	// from FIRECRAWL_API_KEY / OPENAI_API_KEY instead.
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint (useful for tests)
	BaseURL string `yaml:"base_url,omitempty"`

	// Model is the model name for the OpenAI provider
	Model string `yaml:"model,omitempty"`

	// Timeout for a single extraction call
	Timeout time.Duration `yaml:"timeout"`
}

// DiscoveryConfig controls how the page list is produced
type DiscoveryConfig struct {
	// UseMapper enables the best-effort site-mapping call on top of seeds
	UseMapper bool `yaml:"use_mapper"`

	// SeedsFile optionally replaces the built-in seed list (one URL per line)
	SeedsFile string `yaml:"seeds_file,omitempty"`

	// MaxURLs caps the discovered list
	MaxURLs int `yaml:"max_urls"`

	// SampleSize is how many URLs a sample-mode run processes
	SampleSize int `yaml:"sample_size"`

	// FullRun disables sample-mode truncation
	FullRun bool `yaml:"full_run"`
}

// HTTPConfig configures outbound HTTP used by providers
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
}

// CacheConfig configures the extraction response cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Backend string        `yaml:"backend"` // "memory", "disk", or "layered"
	Dir     string        `yaml:"dir,omitempty"`
	TTL     time.Duration `yaml:"ttl"`
}

// PacingConfig is the fixed inter-page delay. It is a deliberate flat
// rate limit, not a backoff algorithm.
type PacingConfig struct {
	PageDelay time.Duration `yaml:"page_delay"`
}

// OutputConfig controls the persisted artifact and console output
type OutputConfig struct {
	Path    string `yaml:"path"`
	Verbose bool   `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Extractor: ExtractorConfig{
			Provider: "firecrawl",
			Timeout:  2 * time.Minute,
		},
		Discovery: DiscoveryConfig{
			UseMapper:  true,
			MaxURLs:    50,
			SampleSize: 5,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "campaignscan/0.1 (+https://github.com/ecotrace/campaignscan)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "memory",
			TTL:     24 * time.Hour,
		},
		Pacing: PacingConfig{
			PageDelay: 2 * time.Second,
		},
		Output: OutputConfig{
			Path: "greenpeace_targets.json",
		},
	}
}
