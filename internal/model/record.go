package model

// PollutionCategory is the fixed vocabulary of broad pollution categories
type PollutionCategory string

const (
	CategoryAir        PollutionCategory = "air"
	CategoryWater      PollutionCategory = "water"
	CategoryLand       PollutionCategory = "land"
	CategoryNuclear    PollutionCategory = "nuclear"
	CategoryToxicWaste PollutionCategory = "toxic_waste"
	CategoryClimate    PollutionCategory = "climate"
)

// Priority is the campaign priority level assigned by the extraction service
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether the priority is one of the three allowed levels
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ResponseType classifies how a company reacted to an accusation.
// SLAPP = Strategic Lawsuit Against Public Participation.
type ResponseType string

const (
	ResponseLawsuit         ResponseType = "lawsuit"
	ResponseSLAPPLawsuit    ResponseType = "slapp_lawsuit"
	ResponsePublicStatement ResponseType = "public_statement"
	ResponsePolicyChange    ResponseType = "policy_change"
	ResponseDenial          ResponseType = "denial"
	ResponseNone            ResponseType = "no_response"
)

// Location holds geographic detail for an accusation. All fields are
// optional; an empty Location marshals as {}.
type Location struct {
	Site    string `json:"site,omitempty"`    // Specific site or facility name
	Region  string `json:"region,omitempty"`  // State, province, or region
	Country string `json:"country,omitempty"` // Country
}

// CompanyResponse is always emitted as a three-key structure, even when
// nothing was detected (detected=false, type and summary null).
type CompanyResponse struct {
	Detected        bool          `json:"detected"`
	ResponseType    *ResponseType `json:"response_type"`
	ResponseSummary *string       `json:"response_summary"`
}

// Record is the canonical unit of output: one company accused on one page.
// Optional scalar fields are pointers so absence serializes as null rather
// than an empty string; list fields default to an empty sequence.
type Record struct {
	// Source metadata
	RecordID           string `json:"record_id"`
	SourceOrganization string `json:"source_organization"`
	SourceURL          string `json:"source_url"`
	ScrapeDate         string `json:"scrape_date"` // ISO-8601, set at extraction time

	// Target company
	CompanyName    string  `json:"company_name"`
	IndustrySector *string `json:"industry_sector"`

	// Campaign context
	CampaignName          string   `json:"campaign_name"`
	ActivistPriorityLevel Priority `json:"activist_priority_level"`

	// Pollution details
	PollutionCategories []PollutionCategory `json:"pollution_categories"`
	SpecificIssues      []string            `json:"specific_issues"`
	Pollutants          []string            `json:"pollutants"`
	ProjectOrAsset      *string             `json:"project_or_asset"`
	Location            Location            `json:"location"`

	// Claim details
	AccusationSummary string  `json:"accusation_summary"`
	EvidenceExcerpt   *string `json:"evidence_excerpt"`
	ClaimDate         *string `json:"claim_date"`

	// Company response
	CompanyResponse CompanyResponse `json:"company_response"`

	// Data quality. Confidence does not vary yet and manual review is
	// reserved for future use.
	ExtractionConfidence string `json:"extraction_confidence"`
	NeedsManualReview    bool   `json:"needs_manual_review"`
}
