package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobfit-backend/internal/llm"
	"jobfit-backend/internal/shared/config"
)

func testConfig() config.Config {
	return config.Config{
		Port:               "0",
		Env:                "dev",
		CORSAllowOrigin:    []string{"http://localhost:5173"},
		LLMProvider:        "gemini",
		LLMTemperature:     0.3,
		LLMMaxOutputTokens: 512,
		LLMTimeoutSeconds:  5,
		MaxUploadBytes:     1 << 20,
		AnalyzeRatePerMin:  600,
		AnalyzeBurst:       10,
	}
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
}

func TestBuildWiresRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clearKeyEnv(t)

	app, err := Build(testConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/about", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("about: expected 200, got %d", resp.Code)
	}
	var about struct {
		Provider string `json:"provider"`
		Model    string `json:"model"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&about); err != nil {
		t.Fatalf("decode about: %v", err)
	}
	if about.Provider != "gemini" {
		t.Fatalf("expected provider gemini, got %q", about.Provider)
	}
	if about.Model != defaultGeminiModel {
		t.Fatalf("expected default model, got %q", about.Model)
	}

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); !strings.Contains(body, "analysis_requested_total") {
		t.Fatalf("expected counters in metrics output, got:\n%s", body)
	}

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/analyses", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("analyses without body: expected 400, got %d", resp.Code)
	}
}

func TestBuildWithoutCredentialYieldsAuthFailures(t *testing.T) {
	clearKeyEnv(t)

	app, err := Build(testConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	_, err = app.LLM.AnalyzeMatch(context.Background(), llm.MatchInput{ResumeText: "r", JobDescription: "j"})
	if !errors.Is(err, llm.ErrAuth) {
		t.Fatalf("expected ErrAuth from unconfigured client, got %v", err)
	}
}

func TestBuildRejectsUnknownProvider(t *testing.T) {
	clearKeyEnv(t)

	cfg := testConfig()
	cfg.LLMProvider = "mystery"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestShutdownClearsCredentials(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	app, err := Build(testConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := app.Credentials.Get(llm.ProviderGemini); !ok {
		t.Fatalf("expected gemini key seeded from env")
	}

	app.Shutdown()
	if _, ok := app.Credentials.Get(llm.ProviderGemini); ok {
		t.Fatalf("expected credentials cleared after shutdown")
	}
}
