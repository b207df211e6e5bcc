package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ecotrace/campaignscan/internal/model"
	"github.com/ecotrace/campaignscan/internal/util"
)

// OpenAIProvider is an alternative extraction backend: it fetches the page
// body itself (after a robots.txt check, since unlike the managed service
// the fetch happens from this process) and asks a chat model to fill the
// fixed schema. Useful when no managed extraction account is available.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	fetcher *Fetcher
	robots  *util.RobotsChecker
}

// NewOpenAIProvider creates the provider
func NewOpenAIProvider(cfg *model.Config, apiKey string) (*OpenAIProvider, error) {
	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.Extractor.BaseURL != "" {
		clientConfig.BaseURL = cfg.Extractor.BaseURL
	}

	chatModel := cfg.Extractor.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   chatModel,
		fetcher: NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy),
		robots:  util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string { return "openai" }

// ExtractPage fetches the page and extracts campaign targets with the
// chat model.
func (p *OpenAIProvider) ExtractPage(ctx context.Context, url string) (*model.PageExtraction, error) {
	allowed, _, err := p.robots.CanFetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("disallowed by robots.txt: %s", url)
	}

	body, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You extract structured data from web page source. Respond with a single JSON object matching the provided JSON Schema exactly. No prose, no markdown fences.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildExtractionPrompt(url, body),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := stripCodeFences(resp.Choices[0].Message.Content)

	var page model.PageExtraction
	if err := json.Unmarshal([]byte(content), &page); err != nil {
		return nil, fmt.Errorf("parse extraction payload: %w", err)
	}
	return &page, nil
}

// maxPromptBytes bounds how much page source goes into the prompt
const maxPromptBytes = 120_000

func buildExtractionPrompt(url, body string) string {
	if len(body) > maxPromptBytes {
		body = body[:maxPromptBytes]
	}
	return fmt.Sprintf("%s\n\nJSON Schema:\n%s\n\nPage URL: %s\n\nPage source:\n%s",
		Instruction, string(Schema), url, body)
}

// stripCodeFences removes a leading/trailing markdown fence some models
// emit despite the JSON response format.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
