// Package stats computes aggregate statistics over a record set. Every
// computation is a pure function of the records passed in; nothing is
// maintained incrementally, so it is safe to call on any sub-window of a
// run (per-page progress vs whole-run summary).
package stats

import (
	"math"
	"sort"

	"github.com/ecotrace/campaignscan/internal/model"
)

// topIndustryCount is how many industry sectors the breakdown keeps
const topIndustryCount = 5

// Counter is a frequency table that remembers first-seen insertion order,
// so MostCommon has a deterministic tie-break.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter creates an empty counter
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add increments the count for key
func (c *Counter) Add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Len returns the number of distinct keys
func (c *Counter) Len() int {
	return len(c.order)
}

// MostCommon returns the n highest-count entries, ties broken by
// first-seen order. n <= 0 returns all entries.
func (c *Counter) MostCommon(n int) []model.CountEntry {
	entries := make([]model.CountEntry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, model.CountEntry{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Map returns the counter as a plain map for JSON serialization
func (c *Counter) Map() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Summarize computes the full aggregate block for a record set. Records
// are never mutated. Company names are compared case-sensitively with no
// normalization of naming variants — a known precision limitation.
func Summarize(records []model.Record) model.Summary {
	companies := make(map[string]struct{})
	industries := NewCounter()
	categories := NewCounter()
	priorities := NewCounter()
	responses := 0

	for _, r := range records {
		companies[r.CompanyName] = struct{}{}
		if r.IndustrySector != nil && *r.IndustrySector != "" {
			industries.Add(*r.IndustrySector)
		}
		for _, cat := range r.PollutionCategories {
			categories.Add(string(cat))
		}
		if r.ActivistPriorityLevel != "" {
			priorities.Add(string(r.ActivistPriorityLevel))
		}
		if r.CompanyResponse.Detected {
			responses++
		}
	}

	topIndustries := industries.MostCommon(topIndustryCount)
	breakdown := make(map[string]int, len(topIndustries))
	for _, e := range topIndustries {
		breakdown[e.Key] = e.Count
	}

	return model.Summary{
		TotalRecords:         len(records),
		UniqueCompanies:      len(companies),
		IndustryBreakdown:    breakdown,
		PollutionCategories:  categories.Map(),
		PriorityDistribution: priorities.Map(),
		ResponsesDetected:    responses,
		ResponseRatePercent:  responseRate(responses, len(records)),

		TopIndustries:     topIndustries,
		CategoriesByCount: categories.MostCommon(0),
		PrioritiesByCount: priorities.MostCommon(0),
	}
}

// responseRate returns detected/total as a percentage rounded to one
// decimal, and 0 for an empty record set.
func responseRate(detected, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(detected)/float64(total)*1000) / 10
}
