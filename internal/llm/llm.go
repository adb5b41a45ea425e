package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Provider names, used as credential store keys and in request logs.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
)

// Client abstracts LLM providers for resume-to-job matching. Implementations
// make exactly one completion call per invocation and never retry on their
// own; callers decide whether a failed analysis is worth repeating.
type Client interface {
	AnalyzeMatch(ctx context.Context, input MatchInput) (json.RawMessage, error)
}

// MatchInput captures the inputs for a single match analysis.
type MatchInput struct {
	ResumeText     string
	JobDescription string
	PromptVersion  string
}

// Options carries the completion parameters shared by all providers.
type Options struct {
	Model           string        `validate:"required"`
	Temperature     float64       `validate:"gte=0,lte=1"`
	MaxOutputTokens int           `validate:"gt=0"`
	Timeout         time.Duration `validate:"gt=0"`
}

var validate = validator.New()

// Validate checks completion parameters before any provider is constructed.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("llm options: %w", err)
	}
	return nil
}

// Unconfigured returns a Client whose calls always fail with ErrAuth. It
// stands in when no API key is present so the server can still boot and
// report the problem per request.
func Unconfigured(provider string) Client {
	return unconfiguredClient{provider: provider}
}

type unconfiguredClient struct {
	provider string
}

func (c unconfiguredClient) AnalyzeMatch(ctx context.Context, input MatchInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, fmt.Errorf("%s credential not configured: %w", c.provider, ErrAuth)
}
