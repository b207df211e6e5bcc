// Package report assembles and persists the run artifact and renders the
// console summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ecotrace/campaignscan/internal/model"
	"github.com/ecotrace/campaignscan/internal/normalize"
	"github.com/ecotrace/campaignscan/internal/stats"
)

// testModeThreshold: runs with fewer records than this are flagged
// test_mode in the artifact metadata. A heuristic, not a run-mode flag.
const testModeThreshold = 10

// Build assembles the persisted artifact from the record set. The summary
// block is recomputed here rather than reusing an earlier aggregate, so the
// artifact is always consistent with the records it carries.
func Build(records []model.Record, now time.Time) model.Artifact {
	summary := stats.Summarize(records)
	return model.Artifact{
		Metadata: model.Metadata{
			ScrapeDate:         now.Format(time.RFC3339),
			SourceOrganization: normalize.SourceOrganization,
			TotalRecords:       len(records),
			UniqueCompanies:    summary.UniqueCompanies,
			TestMode:           len(records) < testModeThreshold,
		},
		SummaryStatistics: summary,
		Records:           records,
	}
}

// Write persists the artifact as indented JSON
func Write(artifact model.Artifact, path string) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// RenderSummary prints the run statistics block
func RenderSummary(w io.Writer, summary model.Summary) {
	line := "════════════════════════════════════════════════════════════"

	fmt.Fprintf(w, "\n📊 Summary statistics\n%s\n", line)
	fmt.Fprintf(w, "Unique companies: %d\n", summary.UniqueCompanies)

	if len(summary.TopIndustries) > 0 {
		fmt.Fprintf(w, "\nTop industries targeted:\n")
		for _, e := range summary.TopIndustries {
			fmt.Fprintf(w, "  - %s: %d\n", e.Key, e.Count)
		}
	}

	if len(summary.CategoriesByCount) > 0 {
		fmt.Fprintf(w, "\nPollution categories:\n")
		for _, e := range summary.CategoriesByCount {
			fmt.Fprintf(w, "  - %s: %d\n", e.Key, e.Count)
		}
	}

	if len(summary.PrioritiesByCount) > 0 {
		fmt.Fprintf(w, "\nPriority distribution:\n")
		for _, e := range summary.PrioritiesByCount {
			fmt.Fprintf(w, "  - %s: %d\n", e.Key, e.Count)
		}
	}

	fmt.Fprintf(w, "\nCompany responses detected: %d (%.1f%%)\n%s\n",
		summary.ResponsesDetected, summary.ResponseRatePercent, line)
}
