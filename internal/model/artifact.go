package model

// Summary holds the aggregate statistics computed over a record set.
// It is always a pure function of the records it was computed from and is
// recomputed rather than incrementally maintained.
type Summary struct {
	TotalRecords         int            `json:"-"`
	UniqueCompanies      int            `json:"-"`
	IndustryBreakdown    map[string]int `json:"industry_breakdown"`
	PollutionCategories  map[string]int `json:"pollution_categories"`
	PriorityDistribution map[string]int `json:"priority_distribution"`
	ResponsesDetected    int            `json:"company_responses_detected"`
	ResponseRatePercent  float64        `json:"response_rate_percent"`

	// Ordered views for console reporting. Counter maps lose insertion
	// order once marshaled, so the renderer uses these instead.
	TopIndustries     []CountEntry `json:"-"`
	CategoriesByCount []CountEntry `json:"-"`
	PrioritiesByCount []CountEntry `json:"-"`
}

// CountEntry is one row of a frequency table
type CountEntry struct {
	Key   string
	Count int
}

// Metadata is the artifact's provenance block
type Metadata struct {
	ScrapeDate         string `json:"scrape_date"`
	SourceOrganization string `json:"source_organization"`
	TotalRecords       int    `json:"total_records"`
	UniqueCompanies    int    `json:"unique_companies"`
	// TestMode is a heuristic (true iff fewer than 10 records), not a
	// faithful run-mode flag.
	TestMode bool `json:"test_mode"`
}

// Artifact is the single persisted output document
type Artifact struct {
	Metadata          Metadata `json:"metadata"`
	SummaryStatistics Summary  `json:"summary_statistics"`
	Records           []Record `json:"records"`
}
