// Package gemini implements llm.Client on the Google Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"jobfit-backend/internal/llm"
)

// matchSchema constrains the completion to the analysis result shape. The
// model can still return junk inside the strings, so normalization remains
// the caller's job.
var matchSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"matchPercentage": {
			Type:        genai.TypeInteger,
			Description: "Match between resume and job description as a percentage from 0 to 100.",
		},
		"missingKeywords": {
			Type:        genai.TypeArray,
			Description: "Keywords from the job description absent from the resume, most important first.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
		"strengths": {
			Type:        genai.TypeArray,
			Description: "Resume strengths relevant to this job.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
		"improvements": {
			Type:        genai.TypeArray,
			Description: "Concrete changes that would raise the match.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
		"summary": {
			Type:        genai.TypeString,
			Description: "Short narrative assessment of candidate fit.",
		},
	},
	Required: []string{"matchPercentage", "missingKeywords", "strengths", "improvements", "summary"},
}

// Client calls the Gemini API for match analyses.
type Client struct {
	creds *llm.CredentialStore
	opts  llm.Options
}

// NewClient constructs a Gemini-backed client. The API key is read from the
// store per call so a cleared store immediately disables the client.
func NewClient(creds *llm.CredentialStore, opts llm.Options) (*Client, error) {
	if creds == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Client{creds: creds, opts: opts}, nil
}

func (c *Client) AnalyzeMatch(ctx context.Context, input llm.MatchInput) (json.RawMessage, error) {
	key, ok := c.creds.Get(llm.ProviderGemini)
	if !ok {
		return nil, fmt.Errorf("GEMINI_API_KEY not configured: %w", llm.ErrAuth)
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, classify(err)
	}

	template, _ := llm.PromptTemplate(input.PromptVersion)
	result, err := client.Models.GenerateContent(ctx,
		c.opts.Model,
		genai.Text(llm.BuildUserContent(input.ResumeText, input.JobDescription)),
		&genai.GenerateContentConfig{
			Temperature:       genai.Ptr(float32(c.opts.Temperature)),
			MaxOutputTokens:   int32(c.opts.MaxOutputTokens),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    matchSchema,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: template}}},
		},
	)
	if err != nil {
		return nil, classify(err)
	}
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	text := llm.StripCodeFence(result.Text())
	if text == "" {
		return nil, fmt.Errorf("gemini returned empty content")
	}
	return json.RawMessage(text), nil
}

// classify maps Gemini API failures onto the shared error taxonomy.
func classify(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return fmt.Errorf("gemini: %s: %w", apiErr.Message, llm.ErrAuth)
		case 429:
			return fmt.Errorf("gemini: %s: %w", apiErr.Message, llm.ErrRateLimited)
		case 500, 502, 503, 504:
			return fmt.Errorf("gemini: %s: %w", apiErr.Message, llm.ErrUnavailable)
		case 400:
			if strings.Contains(apiErr.Message, "API key") {
				return fmt.Errorf("gemini: %s: %w", apiErr.Message, llm.ErrAuth)
			}
		}
		return fmt.Errorf("gemini: %s", apiErr.Message)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("gemini request timeout: %w", llm.ErrUnavailable)
	}
	msg := err.Error()
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "EOF") {
		return fmt.Errorf("gemini: %v: %w", err, llm.ErrUnavailable)
	}
	return err
}

var _ llm.Client = (*Client)(nil)
