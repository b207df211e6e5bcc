package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/ecotrace/campaignscan/internal/model"
)

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
		default:
			_, _ = w.Write([]byte("<html><body>campaign page naming Acme Oil</body></html>"))
		}
	}))
}

func TestOpenAIProvider_RefusesDisallowedPage(t *testing.T) {
	pages := newPageServer(t)
	defer pages.Close()

	// The model endpoint must never be reached for a disallowed page
	modelServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Unexpected model call for disallowed page: %s", r.URL.Path)
	}))
	defer modelServer.Close()

	cfg := model.DefaultConfig()
	cfg.Extractor.BaseURL = modelServer.URL
	provider, err := NewOpenAIProvider(cfg, "test-key")
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.ExtractPage(context.Background(), pages.URL+"/private/report")
	if err == nil || !strings.Contains(err.Error(), "disallowed by robots.txt") {
		t.Errorf("Expected robots.txt refusal, got %v", err)
	}
}

func TestOpenAIProvider_ExtractPage_Success(t *testing.T) {
	pages := newPageServer(t)
	defer pages.Close()

	modelServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header: %s", r.Header.Get("Authorization"))
		}

		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-123",
			Object: "chat.completion",
			Model:  "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role: "assistant",
						Content: `{"has_campaign_targets": true, "campaign_name": "Toxic Free Future",
							"target_companies": [{"company_name": "Acme Oil",
							"pollution_categories": ["air"],
							"accusation_summary": "Accused of methane leaks."}]}`,
					},
					FinishReason: "stop",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer modelServer.Close()

	cfg := model.DefaultConfig()
	cfg.Extractor.BaseURL = modelServer.URL
	provider, err := NewOpenAIProvider(cfg, "test-key")
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	page, err := provider.ExtractPage(context.Background(), pages.URL+"/toxics/")
	if err != nil {
		t.Fatalf("ExtractPage failed: %v", err)
	}
	if !page.HasCampaignTargets || page.CampaignName != "Toxic Free Future" {
		t.Errorf("Unexpected page extraction: %+v", page)
	}
	if len(page.TargetCompanies) != 1 || page.TargetCompanies[0].CompanyName != "Acme Oil" {
		t.Errorf("Unexpected target companies: %+v", page.TargetCompanies)
	}
}

func TestOpenAIProvider_ExtractPage_FencedResponse(t *testing.T) {
	pages := newPageServer(t)
	defer pages.Close()

	modelServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: "```json\n{\"has_campaign_targets\": false, \"target_companies\": []}\n```",
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer modelServer.Close()

	cfg := model.DefaultConfig()
	cfg.Extractor.BaseURL = modelServer.URL
	provider, err := NewOpenAIProvider(cfg, "test-key")
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	page, err := provider.ExtractPage(context.Background(), pages.URL+"/toxics/")
	if err != nil {
		t.Fatalf("ExtractPage failed: %v", err)
	}
	if page.HasCampaignTargets {
		t.Errorf("Unexpected page extraction: %+v", page)
	}
}
