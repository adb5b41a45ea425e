// Package bootstrap wires configuration, credentials, the provider client,
// and the HTTP router into a runnable app.
package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"jobfit-backend/internal/analysis"
	"jobfit-backend/internal/llm"
	"jobfit-backend/internal/llm/gemini"
	"jobfit-backend/internal/llm/openai"
	"jobfit-backend/internal/llm/openrouter"
	"jobfit-backend/internal/shared/config"
	"jobfit-backend/internal/shared/server"
	"jobfit-backend/internal/shared/telemetry"
)

// Default models per provider, used when LLM_MODEL is unset. The defaults
// favor fast, low-cost models; match quality is acceptable for screening.
const (
	defaultGeminiModel     = "gemini-2.5-flash-lite"
	defaultOpenAIModel     = "gpt-4o-mini"
	defaultOpenRouterModel = "deepseek/deepseek-chat-v3.1:free"
)

// App holds the wired application.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	Credentials     *llm.CredentialStore
	LLM             llm.Client
	AnalysisService *analysis.Service
}

// Build prepares the app from configuration. Credentials are read from the
// environment exactly once, here; nothing else touches the key variables.
func Build(cfg config.Config) (*App, error) {
	creds := llm.NewCredentialStore()
	SeedCredentials(creds)

	if cfg.LLMModel == "" {
		cfg.LLMModel = DefaultModel(cfg.LLMProvider)
	}
	opts := llm.Options{
		Model:           cfg.LLMModel,
		Temperature:     cfg.LLMTemperature,
		MaxOutputTokens: cfg.LLMMaxOutputTokens,
		Timeout:         time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
	}

	client, err := NewLLMClient(cfg.LLMProvider, creds, opts)
	if err != nil {
		return nil, err
	}

	svc := analysis.NewService(client, cfg.LLMProvider, cfg.LLMModel)
	handler := analysis.NewHandler(svc, cfg.MaxUploadBytes)

	app := &App{
		Config:          cfg,
		Router:          server.NewRouter(cfg, handler),
		Credentials:     creds,
		LLM:             client,
		AnalysisService: svc,
	}

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":      cfg.Env,
		"provider": cfg.LLMProvider,
		"model":    cfg.LLMModel,
	})
	return app, nil
}

// Shutdown releases process-wide state. After it returns, provider calls
// fail with ErrAuth.
func (a *App) Shutdown() {
	a.Credentials.Clear()
}

// NewLLMClient builds the provider client for the named provider. A missing
// credential yields a client whose calls fail with ErrAuth instead of a
// build failure, so the server still boots and reports per request.
func NewLLMClient(provider string, creds *llm.CredentialStore, opts llm.Options) (llm.Client, error) {
	switch provider {
	case llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderOpenRouter:
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", provider)
	}

	if _, ok := creds.Get(provider); !ok {
		telemetry.Warn("bootstrap.credential_missing", map[string]any{
			"provider": provider,
		})
		return llm.Unconfigured(provider), nil
	}

	switch provider {
	case llm.ProviderOpenAI:
		return openai.NewClient(creds, opts)
	case llm.ProviderOpenRouter:
		return openrouter.NewClient(creds, opts)
	default:
		return gemini.NewClient(creds, opts)
	}
}

// SeedCredentials fills a store from the process environment.
func SeedCredentials(creds *llm.CredentialStore) {
	creds.Set(llm.ProviderGemini, os.Getenv("GEMINI_API_KEY"))
	creds.Set(llm.ProviderOpenAI, os.Getenv("OPENAI_API_KEY"))
	creds.Set(llm.ProviderOpenRouter, os.Getenv("OPENROUTER_API_KEY"))
}

// DefaultModel names the model used for a provider when LLM_MODEL is unset.
func DefaultModel(provider string) string {
	switch provider {
	case llm.ProviderOpenAI:
		return defaultOpenAIModel
	case llm.ProviderOpenRouter:
		return defaultOpenRouterModel
	default:
		return defaultGeminiModel
	}
}
