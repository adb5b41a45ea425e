// Package openrouter implements llm.Client on the OpenRouter chat API.
package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"jobfit-backend/internal/llm"
)

const apiURL = "https://openrouter.ai/api/v1/chat/completions"

// Client calls OpenRouter for match analyses. OpenRouter fronts many models
// behind an OpenAI-compatible chat endpoint, so model names look like
// "openai/gpt-4o-mini" or "google/gemini-2.0-flash-001".
type Client struct {
	creds *llm.CredentialStore
	opts  llm.Options
	http  *resty.Client
}

// NewClient constructs an OpenRouter-backed client.
func NewClient(creds *llm.CredentialStore, opts llm.Options) (*Client, error) {
	if creds == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		creds: creds,
		opts:  opts,
		http:  resty.New().SetTimeout(opts.Timeout),
	}, nil
}

func (c *Client) AnalyzeMatch(ctx context.Context, input llm.MatchInput) (json.RawMessage, error) {
	key, ok := c.creds.Get(llm.ProviderOpenRouter)
	if !ok {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not configured: %w", llm.ErrAuth)
	}

	template, _ := llm.PromptTemplate(input.PromptVersion)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+key).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model":       c.opts.Model,
			"temperature": c.opts.Temperature,
			"max_tokens":  c.opts.MaxOutputTokens,
			"response_format": map[string]string{
				"type": "json_object",
			},
			"messages": []map[string]string{
				{"role": "system", "content": template},
				{"role": "user", "content": llm.BuildUserContent(input.ResumeText, input.JobDescription)},
			},
		}).
		Post(apiURL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openrouter request timeout: %w", llm.ErrUnavailable)
		}
		return nil, fmt.Errorf("openrouter request: %v: %w", err, llm.ErrUnavailable)
	}

	body := resp.String()
	if err := classifyStatus(resp.StatusCode(), body); err != nil {
		return nil, err
	}

	content := llm.StripCodeFence(gjson.Get(body, "choices.0.message.content").String())
	if content == "" {
		if msg := gjson.Get(body, "error.message").String(); msg != "" {
			return nil, fmt.Errorf("openrouter error: %s", msg)
		}
		return nil, fmt.Errorf("openrouter response empty content")
	}
	return json.RawMessage(content), nil
}

// classifyStatus maps non-2xx responses onto the shared error taxonomy.
func classifyStatus(status int, body string) error {
	if status >= 200 && status < 300 {
		return nil
	}
	detail := gjson.Get(body, "error.message").String()
	if detail == "" {
		detail = "request failed"
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("openrouter: %s: %w", detail, llm.ErrAuth)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("openrouter: %s: %w", detail, llm.ErrRateLimited)
	case status >= 500:
		return fmt.Errorf("openrouter: %s: %w", detail, llm.ErrUnavailable)
	default:
		return fmt.Errorf("openrouter: status %d: %s", status, detail)
	}
}

var _ llm.Client = (*Client)(nil)
