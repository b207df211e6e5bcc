// Package normalize turns raw extraction-service entities into canonical
// records with deterministic identifiers and default-filled fields.
package normalize

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecotrace/campaignscan/internal/model"
)

// SourceOrganization is the constant provenance tag on every record
const SourceOrganization = "Greenpeace"

// recordIDPrefix is the organization prefix baked into every record id
const recordIDPrefix = "GP"

// Validation errors for malformed entities. A malformed entity is skipped,
// never allowed to abort the page.
var (
	ErrMissingCompanyName = errors.New("entity has no company name")
	ErrMissingAccusation  = errors.New("entity has no accusation summary")
)

// PageContext carries the per-page values shared by every entity extracted
// from that page.
type PageContext struct {
	URL              string
	CampaignName     string
	CampaignPriority string
	// ScrapedAt is the processing timestamp, generated once per page at
	// extraction time (not at final write time).
	ScrapedAt time.Time
}

// Normalizer converts raw entities to records
type Normalizer struct {
	now func() time.Time // injectable for deterministic tests
}

// New creates a Normalizer
func New() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NormalizePage gates on the page-level target flag and converts every
// well-formed entity. The gate is deliberate precision-over-recall: when
// HasCampaignTargets is false the page contributes zero records even if an
// entity list is present. Returns the records and the number of entities
// skipped as malformed.
func (n *Normalizer) NormalizePage(page *model.PageExtraction, pctx PageContext) ([]model.Record, int) {
	if page == nil || !page.HasCampaignTargets {
		return nil, 0
	}

	if pctx.CampaignName == "" {
		pctx.CampaignName = page.CampaignName
	}
	if pctx.CampaignPriority == "" {
		pctx.CampaignPriority = page.CampaignPriority
	}

	var records []model.Record
	skipped := 0
	for _, company := range page.TargetCompanies {
		rec, err := n.Normalize(company, pctx)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped
}

// Normalize converts one raw entity plus its page context into exactly one
// record, or fails the individual conversion.
func (n *Normalizer) Normalize(company model.TargetCompany, pctx PageContext) (model.Record, error) {
	name := strings.TrimSpace(company.CompanyName)
	if name == "" {
		return model.Record{}, ErrMissingCompanyName
	}
	if strings.TrimSpace(company.AccusationSummary) == "" {
		return model.Record{}, ErrMissingAccusation
	}

	scrapedAt := pctx.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = n.now()
	}

	campaign := pctx.CampaignName
	if campaign == "" {
		campaign = "Unknown Campaign"
	}

	priority := model.Priority(pctx.CampaignPriority)
	if !priority.Valid() {
		priority = model.PriorityMedium
	}

	return model.Record{
		RecordID:           RecordID(name, pctx.URL, scrapedAt.Year()),
		SourceOrganization: SourceOrganization,
		SourceURL:          pctx.URL,
		ScrapeDate:         scrapedAt.Format(time.RFC3339),

		CompanyName:    name,
		IndustrySector: company.IndustrySector,

		CampaignName:          campaign,
		ActivistPriorityLevel: priority,

		PollutionCategories: emptyIfNil(company.PollutionCategories),
		SpecificIssues:      emptyIfNil(company.SpecificIssues),
		Pollutants:          emptyIfNil(company.Pollutants),
		ProjectOrAsset:      company.ProjectOrAsset,
		Location:            company.Location,

		AccusationSummary: company.AccusationSummary,
		EvidenceExcerpt:   company.EvidenceExcerpt,
		ClaimDate:         company.ClaimDate,

		CompanyResponse: buildResponse(company),

		ExtractionConfidence: "high",
		NeedsManualReview:    false,
	}, nil
}

// buildResponse assembles the three-key response structure. When no
// response was detected the type and summary are forced to null.
func buildResponse(company model.TargetCompany) model.CompanyResponse {
	if !company.CompanyResponseDetected {
		return model.CompanyResponse{Detected: false}
	}
	return model.CompanyResponse{
		Detected:        true,
		ResponseType:    company.ResponseType,
		ResponseSummary: company.ResponseSummary,
	}
}

// RecordID derives the deterministic record identifier:
// GP_<year>_<NAMESHORT>_<md5(url)[:6]>. Uniqueness is best-effort — the
// truncations can collide for distinct inputs, and that is accepted rather
// than detected.
func RecordID(companyName, url string, year int) string {
	short := shortName(companyName)
	sum := md5.Sum([]byte(url))
	urlHash := hex.EncodeToString(sum[:])[:6]
	return fmt.Sprintf("%s_%d_%s_%s", recordIDPrefix, year, short, urlHash)
}

// shortName strips whitespace and commas, uppercases, and truncates to 10
// characters; empty names get a fixed placeholder token.
func shortName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' || r == '\t' || r == '\n' {
			return -1
		}
		return r
	}, name)
	if cleaned == "" {
		return "UNKNOWN"
	}
	runes := []rune(strings.ToUpper(cleaned))
	if len(runes) > 10 {
		runes = runes[:10]
	}
	return string(runes)
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
