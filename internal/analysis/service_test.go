package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jobfit-backend/internal/extract"
	"jobfit-backend/internal/llm"
)

const goodPayload = `{
  "matchPercentage": 85,
  "missingKeywords": ["Kafka"],
  "strengths": ["Distributed systems work"],
  "improvements": ["Mention streaming experience"],
  "summary": "Very close match."
}`

func docxRequest(t *testing.T, jobDescription string) Request {
	t.Helper()
	return Request{
		ResumeData:     buildDocxResume(t, "Jane Doe", "Go Engineer with five years of API work"),
		ResumeMimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		ResumeFileName: "resume.docx",
		JobDescription: jobDescription,
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	client := &fakeLLM{resp: goodPayload}
	svc := NewService(client, "gemini", "gemini-2.5-flash-lite")

	analysis, err := svc.Analyze(context.Background(), docxRequest(t, "Looking for a Go engineer."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Result.MatchPercentage != 85 {
		t.Fatalf("expected score 85, got %d", analysis.Result.MatchPercentage)
	}
	if analysis.ScoreBand != BandStrong {
		t.Fatalf("expected strong band, got %s", analysis.ScoreBand)
	}
	if analysis.Provider != "gemini" || analysis.Model != "gemini-2.5-flash-lite" {
		t.Fatalf("expected provider metadata, got %+v", analysis)
	}
	if analysis.PromptVersion != DefaultPromptVersion {
		t.Fatalf("expected default prompt version, got %s", analysis.PromptVersion)
	}
	if analysis.Resume.FileName != "resume.docx" || analysis.Resume.Words == 0 {
		t.Fatalf("expected resume stats, got %+v", analysis.Resume)
	}
	if analysis.JobDescription.Words != 5 {
		t.Fatalf("expected job description word count 5, got %+v", analysis.JobDescription)
	}

	if client.calls != 1 {
		t.Fatalf("expected exactly one completion call, got %d", client.calls)
	}
	if !strings.Contains(client.last.ResumeText, "Jane Doe") {
		t.Fatalf("expected extracted resume text in prompt input, got %q", client.last.ResumeText)
	}
	if client.last.PromptVersion != DefaultPromptVersion {
		t.Fatalf("expected prompt version forwarded, got %q", client.last.PromptVersion)
	}
}

func TestAnalyzeValidatesInputs(t *testing.T) {
	client := &fakeLLM{resp: goodPayload}
	svc := NewService(client, "gemini", "model")

	if _, err := svc.Analyze(context.Background(), Request{JobDescription: "role"}); !errors.Is(err, ErrResumeRequired) {
		t.Fatalf("expected ErrResumeRequired, got %v", err)
	}
	if _, err := svc.Analyze(context.Background(), docxRequest(t, "   ")); !errors.Is(err, ErrJobDescriptionRequired) {
		t.Fatalf("expected ErrJobDescriptionRequired, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("expected no completion calls on validation failure, got %d", client.calls)
	}
}

func TestAnalyzeReportsExtractionFailure(t *testing.T) {
	client := &fakeLLM{resp: goodPayload}
	svc := NewService(client, "gemini", "model")

	req := Request{
		ResumeData:     []byte("not a real document"),
		ResumeMimeType: "application/pdf",
		ResumeFileName: "resume.pdf",
		JobDescription: "role",
	}
	if _, err := svc.Analyze(context.Background(), req); !errors.Is(err, extract.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("expected no completion call after extraction failure, got %d", client.calls)
	}
}

func TestAnalyzePropagatesProviderErrorsWithoutRetry(t *testing.T) {
	cases := []error{llm.ErrAuth, llm.ErrRateLimited, llm.ErrUnavailable}
	for _, sentinel := range cases {
		client := &fakeLLM{err: sentinel}
		svc := NewService(client, "openai", "gpt-4o-mini")

		if _, err := svc.Analyze(context.Background(), docxRequest(t, "role")); !errors.Is(err, sentinel) {
			t.Fatalf("expected %v, got %v", sentinel, err)
		}
		if client.calls != 1 {
			t.Fatalf("expected exactly one completion attempt for %v, got %d", sentinel, client.calls)
		}
	}
}

func TestAnalyzeRejectsUnparsableOutput(t *testing.T) {
	client := &fakeLLM{resp: "I cannot answer in JSON."}
	svc := NewService(client, "gemini", "model")

	if _, err := svc.Analyze(context.Background(), docxRequest(t, "role")); !errors.Is(err, ErrUnparsable) {
		t.Fatalf("expected ErrUnparsable, got %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("expected exactly one completion attempt, got %d", client.calls)
	}
}

func TestAnalyzeDefaultsPartialOutput(t *testing.T) {
	client := &fakeLLM{resp: `{"summary": "Only a summary came back."}`}
	svc := NewService(client, "gemini", "model")

	analysis, err := svc.Analyze(context.Background(), docxRequest(t, "role"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Result.MatchPercentage != 0 {
		t.Fatalf("expected missing score to default to 0, got %d", analysis.Result.MatchPercentage)
	}
	if analysis.ScoreBand != BandWeak {
		t.Fatalf("expected weak band for zero score, got %s", analysis.ScoreBand)
	}
	if analysis.Result.MissingKeywords == nil {
		t.Fatalf("expected empty keyword slice, got nil")
	}
	if analysis.Result.Summary != "Only a summary came back." {
		t.Fatalf("expected summary kept, got %q", analysis.Result.Summary)
	}
}

func TestAnalyzeForwardsPromptVersion(t *testing.T) {
	client := &fakeLLM{resp: goodPayload}
	svc := NewService(client, "gemini", "model")

	req := docxRequest(t, "role")
	req.PromptVersion = "match_v1"
	if _, err := svc.Analyze(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.last.PromptVersion != "match_v1" {
		t.Fatalf("expected explicit prompt version forwarded, got %q", client.last.PromptVersion)
	}
}
