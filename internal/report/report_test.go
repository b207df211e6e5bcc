package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ecotrace/campaignscan/internal/model"
	"github.com/ecotrace/campaignscan/internal/normalize"
)

func makeRecords(t *testing.T, n int) []model.Record {
	t.Helper()
	norm := normalize.New()
	pctx := normalize.PageContext{
		URL:       "https://www.greenpeace.org/usa/toxics/",
		ScrapedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	var records []model.Record
	for i := 0; i < n; i++ {
		rec, err := norm.Normalize(model.TargetCompany{
			CompanyName:         "Acme Oil",
			PollutionCategories: []model.PollutionCategory{model.CategoryAir},
			AccusationSummary:   "Accused of methane leaks.",
		}, pctx)
		if err != nil {
			t.Fatal(err)
		}
		records = append(records, rec)
	}
	return records
}

func TestBuild_Metadata(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	artifact := Build(makeRecords(t, 3), now)

	meta := artifact.Metadata
	if meta.SourceOrganization != "Greenpeace" {
		t.Errorf("Unexpected source organization: %q", meta.SourceOrganization)
	}
	if meta.TotalRecords != 3 || meta.UniqueCompanies != 1 {
		t.Errorf("Unexpected counts: %+v", meta)
	}
	if _, err := time.Parse(time.RFC3339, meta.ScrapeDate); err != nil {
		t.Errorf("scrape_date is not RFC3339: %q", meta.ScrapeDate)
	}
}

func TestBuild_TestModeHeuristic(t *testing.T) {
	now := time.Now()

	if a := Build(makeRecords(t, 9), now); !a.Metadata.TestMode {
		t.Error("Expected test_mode=true for 9 records")
	}
	if a := Build(makeRecords(t, 10), now); a.Metadata.TestMode {
		t.Error("Expected test_mode=false for 10 records")
	}
	if a := Build(nil, now); !a.Metadata.TestMode {
		t.Error("Expected test_mode=true for empty run")
	}
}

func TestWrite_JSONShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.json")
	artifact := Build(makeRecords(t, 1), time.Now())

	if err := Write(artifact, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Artifact is not valid JSON: %v", err)
	}
	for _, key := range []string{"metadata", "summary_statistics", "records"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("Artifact missing %q block", key)
		}
	}

	// Absent optional fields serialize as null, list fields as []
	text := string(data)
	for _, want := range []string{
		`"industry_sector": null`,
		`"response_type": null`,
		`"response_summary": null`,
		`"specific_issues": []`,
		`"pollutants": []`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected artifact to contain %s", want)
		}
	}

	// Empty location stays an object, not null
	if !strings.Contains(text, `"location": {}`) {
		t.Error("Expected empty location to marshal as {}")
	}
}

func TestRenderSummary(t *testing.T) {
	artifact := Build(makeRecords(t, 2), time.Now())

	var sb strings.Builder
	RenderSummary(&sb, artifact.SummaryStatistics)

	out := sb.String()
	if !strings.Contains(out, "Unique companies: 1") {
		t.Errorf("Expected unique company count, got:\n%s", out)
	}
	if !strings.Contains(out, "air: 2") {
		t.Errorf("Expected category counts, got:\n%s", out)
	}
	if !strings.Contains(out, "Company responses detected: 0 (0.0%)") {
		t.Errorf("Expected response line, got:\n%s", out)
	}
}
