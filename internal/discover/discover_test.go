package discover

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ecotrace/campaignscan/internal/model"
)

type fakeMapper struct {
	urls []string
	err  error
}

func (m *fakeMapper) MapURLs(ctx context.Context, url, search string) ([]string, error) {
	return m.urls, m.err
}

func defaultCfg() model.DiscoveryConfig {
	return model.DiscoveryConfig{UseMapper: true, MaxURLs: 50}
}

func TestDiscover_MapperFailureFallsBackToSeeds(t *testing.T) {
	mapper := &fakeMapper{err: fmt.Errorf("service unavailable")}
	d := New(mapper, defaultCfg())

	urls, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(urls) != len(seedURLs) {
		t.Fatalf("Expected %d seed URLs, got %d", len(seedURLs), len(urls))
	}
	for i, u := range urls {
		if u != seedURLs[i] {
			t.Errorf("Expected seed list unmodified, position %d differs: %s", i, u)
		}
	}
}

func TestDiscover_NilMapperUsesSeedsOnly(t *testing.T) {
	d := New(nil, defaultCfg())
	urls, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(urls) != len(seedURLs) {
		t.Errorf("Expected %d URLs, got %d", len(seedURLs), len(urls))
	}
}

func TestDiscover_FiltersAndDeduplicates(t *testing.T) {
	mapper := &fakeMapper{urls: []string{
		"https://www.greenpeace.org/usa/toxics/",              // duplicate of a seed
		"https://www.greenpeace.org/usa/toxics/pvc-phaseout/", // relevant, new
		"https://www.greenpeace.org/usa/donate/",              // excluded keyword
		"https://www.greenpeace.org/usa/toxics/tag/benzene/",  // include + exclude: exclusion wins
		"https://www.greenpeace.org/usa/press-releases/",      // no include keyword
	}}
	d := New(mapper, defaultCfg())

	urls, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(urls) != len(seedURLs)+1 {
		t.Fatalf("Expected seeds plus one mapped URL, got %d", len(urls))
	}
	if urls[len(urls)-1] != "https://www.greenpeace.org/usa/toxics/pvc-phaseout/" {
		t.Errorf("Unexpected appended URL: %s", urls[len(urls)-1])
	}
}

func TestDiscover_CapsResultLength(t *testing.T) {
	var mapped []string
	for i := 0; i < 100; i++ {
		mapped = append(mapped, fmt.Sprintf("https://www.greenpeace.org/usa/toxics/page-%d/", i))
	}
	d := New(&fakeMapper{urls: mapped}, defaultCfg())

	urls, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(urls) != 50 {
		t.Errorf("Expected 50 URLs, got %d", len(urls))
	}
	// Seeds stay at the front of the capped list
	if urls[0] != seedURLs[0] {
		t.Errorf("Expected seeds first, got %s", urls[0])
	}
}

func TestDiscover_MapperDisabledByConfig(t *testing.T) {
	cfg := defaultCfg()
	cfg.UseMapper = false
	d := New(&fakeMapper{urls: []string{"https://www.greenpeace.org/usa/oil-campaign/"}}, cfg)

	urls, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(urls) != len(seedURLs) {
		t.Errorf("Expected seeds only when mapper disabled, got %d URLs", len(urls))
	}
}

func TestRelevantURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.greenpeace.org/usa/toxics/benzene/", true},
		{"https://www.greenpeace.org/usa/fighting-plastic-pollution/", true},
		{"https://www.greenpeace.org/usa/OIL-watch/", true}, // matching is case-insensitive
		{"https://www.greenpeace.org/usa/donate/", false},
		{"https://www.greenpeace.org/usa/newsletter/", false},
	}
	for _, tt := range tests {
		if got := relevantURL(tt.url); got != tt.want {
			t.Errorf("relevantURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestReadSeedsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.txt")
	content := `# campaign pages
https://example.org/toxics/

https://example.org/oceans/
https://example.org/toxics/
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadSeedsFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("Expected 2 URLs (comments, blanks, duplicates skipped), got %d", len(urls))
	}
	if urls[0] != "https://example.org/toxics/" || urls[1] != "https://example.org/oceans/" {
		t.Errorf("Unexpected URLs: %v", urls)
	}

	if _, err := ReadSeedsFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}
