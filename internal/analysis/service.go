package analysis

import (
	"context"
	"strings"
	"time"

	"jobfit-backend/internal/extract"
	"jobfit-backend/internal/llm"
	"jobfit-backend/internal/shared/metrics"
	"jobfit-backend/internal/shared/telemetry"
	"jobfit-backend/internal/shared/util"
)

// DefaultPromptVersion selects the instruction template sent to providers.
const DefaultPromptVersion = "match_v1"

// Request carries the inputs for one analysis invocation.
type Request struct {
	ResumeData     []byte
	ResumeMimeType string
	ResumeFileName string
	JobDescription string
	PromptVersion  string
}

// Service orchestrates extraction, the completion call, and normalization.
type Service struct {
	client   llm.Client
	provider string
	model    string
}

// NewService constructs a Service over a provider client.
func NewService(client llm.Client, provider, model string) *Service {
	return &Service{client: client, provider: provider, model: model}
}

// Provider reports which provider the service was built with.
func (s *Service) Provider() string {
	return s.provider
}

// Analyze runs one analysis end to end. It makes exactly one completion
// call; a failure is returned to the caller, never retried here. Logs carry
// document fingerprints and sizes, never document text.
func (s *Service) Analyze(ctx context.Context, req Request) (Analysis, error) {
	if len(req.ResumeData) == 0 {
		return Analysis{}, ErrResumeRequired
	}
	jd := strings.TrimSpace(req.JobDescription)
	if jd == "" {
		return Analysis{}, ErrJobDescriptionRequired
	}
	promptVersion := req.PromptVersion
	if promptVersion == "" {
		promptVersion = DefaultPromptVersion
	}

	metrics.IncAnalysisRequested()
	started := time.Now()

	resumeText, err := extract.Text(ctx, req.ResumeData, req.ResumeMimeType, req.ResumeFileName)
	if err != nil {
		metrics.IncExtractionFailed()
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.extract_failed", map[string]any{
			"file_name": req.ResumeFileName,
			"mime_type": req.ResumeMimeType,
			"err":       err.Error(),
		})
		return Analysis{}, err
	}

	telemetry.Info("analysis.start", map[string]any{
		"provider":       s.provider,
		"model":          s.model,
		"prompt_version": promptVersion,
		"resume_sha":     util.Fingerprint(resumeText),
		"jd_sha":         util.Fingerprint(jd),
	})

	llmStarted := time.Now()
	raw, err := s.client.AnalyzeMatch(ctx, llm.MatchInput{
		ResumeText:     resumeText,
		JobDescription: jd,
		PromptVersion:  promptVersion,
	})
	metrics.ObserveLLMCallDurationMs(float64(time.Since(llmStarted).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.llm_failed", map[string]any{
			"provider": s.provider,
			"model":    s.model,
			"err":      err.Error(),
		})
		return Analysis{}, err
	}

	result, err := Normalize(raw)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.normalize_failed", map[string]any{
			"provider":  s.provider,
			"model":     s.model,
			"raw_bytes": len(raw),
			"err":       err.Error(),
		})
		return Analysis{}, err
	}

	analysis := Analysis{
		Result:         result,
		ScoreBand:      ScoreBand(result.MatchPercentage),
		Provider:       s.provider,
		Model:          s.model,
		PromptVersion:  promptVersion,
		Resume:         StatsFor(req.ResumeFileName, resumeText),
		JobDescription: StatsFor("", jd),
	}

	durationMs := float64(time.Since(started).Microseconds()) / 1000.0
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs)
	telemetry.Info("analysis.complete", map[string]any{
		"provider":    s.provider,
		"model":       s.model,
		"match":       result.MatchPercentage,
		"score_band":  analysis.ScoreBand,
		"duration_ms": durationMs,
	})
	return analysis, nil
}
