package extract

import "encoding/json"

// Instruction is the fixed extraction policy sent with every page. It is
// configuration, not something re-derived per page.
const Instruction = `Extract information about companies being targeted by Greenpeace for pollution violations.

CRITICAL RULES:
- Only include companies that are explicitly named as targets of criticism or campaigns
- Do NOT include Greenpeace itself, partner organizations, or companies mentioned positively
- Only include companies clearly associated with pollution/environmental harm
- Pollution categories must be from: air, water, land, nuclear, toxic_waste, climate
- For location, extract as much detail as available (site, region/state, country)
- For dates, use YYYY-MM-DD format if you can determine a specific date, otherwise null
- For evidence_excerpt, copy verbatim text from the page (direct quote)
- For accusation_summary, write a clear 2-3 sentence summary in your own words
- Identify company responses like lawsuits (especially SLAPP suits), denials, or policy changes
- Campaign priority: HIGH if prominently featured with detailed info, MEDIUM if mentioned with some context, LOW if brief mention
- Be conservative - if unsure whether a company is a target, do not include it`

// Schema is the fixed JSON Schema the extraction service fills per page.
// Described once, never regenerated per call.
var Schema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "has_campaign_targets": {
      "type": "boolean",
      "description": "Whether this page describes a campaign targeting specific companies for pollution"
    },
    "campaign_name": {
      "type": "string",
      "description": "Name of the campaign or issue, if clearly stated"
    },
    "campaign_priority": {
      "type": "string",
      "enum": ["high", "medium", "low"],
      "description": "Priority level based on prominence on page, detail level, and call-to-action presence"
    },
    "target_companies": {
      "type": "array",
      "description": "List of companies being targeted for pollution violations",
      "items": {
        "type": "object",
        "properties": {
          "company_name": {"type": "string", "description": "Exact name of the company as mentioned"},
          "industry_sector": {"type": "string", "description": "Industry sector (e.g., oil & gas, coal, petrochemical, manufacturing, fashion, electronics, insurance, finance)"},
          "pollution_categories": {
            "type": "array",
            "items": {"type": "string", "enum": ["air", "water", "land", "nuclear", "toxic_waste", "climate"]}
          },
          "specific_issues": {"type": "array", "items": {"type": "string"}},
          "pollutants": {"type": "array", "items": {"type": "string"}},
          "project_or_asset": {"type": "string"},
          "location": {
            "type": "object",
            "properties": {
              "site": {"type": "string"},
              "region": {"type": "string"},
              "country": {"type": "string"}
            }
          },
          "accusation_summary": {"type": "string", "description": "Clear summary of what the company is accused of (2-3 sentences max)"},
          "evidence_excerpt": {"type": "string", "description": "Key quote from the page that supports the accusation (verbatim)"},
          "claim_date": {"type": "string", "description": "Date of the claim in YYYY-MM-DD format if available, or null"},
          "company_response_detected": {"type": "boolean"},
          "response_type": {
            "type": "string",
            "enum": ["lawsuit", "slapp_lawsuit", "public_statement", "policy_change", "denial", "no_response", null]
          },
          "response_summary": {"type": "string"}
        },
        "required": ["company_name", "pollution_categories", "accusation_summary"]
      }
    }
  },
  "required": ["has_campaign_targets", "target_companies"]
}`)
