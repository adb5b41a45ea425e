package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCredentialStoreSetGetClear(t *testing.T) {
	store := NewCredentialStore()

	if _, ok := store.Get("gemini"); ok {
		t.Fatalf("expected empty store to miss")
	}

	store.Set("gemini", "  test-key  ")
	key, ok := store.Get("gemini")
	if !ok {
		t.Fatalf("expected key after Set")
	}
	if key != "test-key" {
		t.Fatalf("expected trimmed key, got %q", key)
	}

	store.Set("openai", "")
	if _, ok := store.Get("openai"); ok {
		t.Fatalf("expected blank key to be ignored")
	}

	store.Clear()
	if _, ok := store.Get("gemini"); ok {
		t.Fatalf("expected no keys after Clear")
	}
}

func TestUnconfiguredClientFailsWithAuth(t *testing.T) {
	client := Unconfigured("gemini")
	_, err := client.AnalyzeMatch(context.Background(), MatchInput{
		ResumeText:     "resume",
		JobDescription: "jd",
	})
	if err == nil {
		t.Fatalf("expected error from unconfigured client")
	}
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	good := Options{Model: "gemini-2.5-flash-lite", Temperature: 0.3, MaxOutputTokens: 2048, Timeout: 90 * time.Second}
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := good
	bad.Temperature = 1.5
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected temperature > 1 to fail validation")
	}

	bad = good
	bad.Model = ""
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected missing model to fail validation")
	}

	bad = good
	bad.MaxOutputTokens = 0
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected zero token budget to fail validation")
	}
}
