// Package openai implements llm.Client on the OpenAI Chat Completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"jobfit-backend/internal/llm"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Client calls OpenAI Chat Completions for match analyses.
type Client struct {
	creds      *llm.CredentialStore
	opts       llm.Options
	httpClient *http.Client
}

// NewClient constructs an OpenAI-backed client.
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
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *chatUsage `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func (c *Client) AnalyzeMatch(ctx context.Context, input llm.MatchInput) (json.RawMessage, error) {
	key, ok := c.creds.Get(llm.ProviderOpenAI)
	if !ok {
		return nil, fmt.Errorf("OPENAI_API_KEY not configured: %w", llm.ErrAuth)
	}

	template, _ := llm.PromptTemplate(input.PromptVersion)
	temp := float32(c.opts.Temperature)
	reqBody := chatRequest{
		Model: c.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: template},
			{Role: "user", Content: llm.BuildUserContent(input.ResumeText, input.JobDescription)},
		},
		Temperature: &temp,
		MaxTokens:   c.opts.MaxOutputTokens,
		ResponseFormat: responseFormat{
			Type: "json_object",
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openai request timeout: %w", llm.ErrUnavailable)
		}
		return nil, fmt.Errorf("openai request: %v: %w", err, llm.ErrUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai response read: %v: %w", err, llm.ErrUnavailable)
	}

	if err := classifyStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}

	logUsage(c.opts.Model, input.PromptVersion, parsed.Usage)

	content := llm.StripCodeFence(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("openai response empty content")
	}
	return json.RawMessage(content), nil
}

// classifyStatus maps non-2xx responses onto the shared error taxonomy.
func classifyStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	detail := errorDetail(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("openai: %s: %w", detail, llm.ErrAuth)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("openai: %s: %w", detail, llm.ErrRateLimited)
	case status >= 500:
		return fmt.Errorf("openai: %s: %w", detail, llm.ErrUnavailable)
	default:
		return fmt.Errorf("openai: status %d: %s", status, detail)
	}
}

func errorDetail(body []byte) string {
	var parsed struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return "request failed"
}

func logUsage(model, promptVersion string, usage *chatUsage) {
	if usage == nil {
		log.Printf("llm response model=%s prompt_version=%s", model, promptVersion)
		return
	}
	log.Printf("llm response model=%s prompt_version=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		model, promptVersion, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
}

var _ llm.Client = (*Client)(nil)
