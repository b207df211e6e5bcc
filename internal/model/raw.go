package model

// PageExtraction is the extraction service's verdict for one page: whether
// the page names campaign targets at all, page-level campaign context, and
// the raw per-company entities.
type PageExtraction struct {
	HasCampaignTargets bool            `json:"has_campaign_targets"`
	CampaignName       string          `json:"campaign_name,omitempty"`
	CampaignPriority   string          `json:"campaign_priority,omitempty"`
	TargetCompanies    []TargetCompany `json:"target_companies"`
}

// TargetCompany is one raw extracted entity as returned by the service.
// It is held only while a page is being normalized and never persisted.
type TargetCompany struct {
	CompanyName         string              `json:"company_name"`
	IndustrySector      *string             `json:"industry_sector,omitempty"`
	PollutionCategories []PollutionCategory `json:"pollution_categories"`
	SpecificIssues      []string            `json:"specific_issues,omitempty"`
	Pollutants          []string            `json:"pollutants,omitempty"`
	ProjectOrAsset      *string             `json:"project_or_asset,omitempty"`
	Location            Location            `json:"location,omitempty"`

	AccusationSummary string  `json:"accusation_summary"`
	EvidenceExcerpt   *string `json:"evidence_excerpt,omitempty"`
	ClaimDate         *string `json:"claim_date,omitempty"`

	CompanyResponseDetected bool          `json:"company_response_detected,omitempty"`
	ResponseType            *ResponseType `json:"response_type,omitempty"`
	ResponseSummary         *string       `json:"response_summary,omitempty"`
}
