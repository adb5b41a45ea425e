// Command analyze runs one resume-to-job match from the command line and
// prints the result as JSON, optionally writing the flat-text report.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jobfit-backend/internal/analysis"
	"jobfit-backend/internal/bootstrap"
	"jobfit-backend/internal/extract"
	"jobfit-backend/internal/llm"
	"jobfit-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume file (pdf or docx)")
	jdPath := flag.String("jd", "", "Path to job description text file")
	promptVersion := flag.String("prompt-version", analysis.DefaultPromptVersion, "Prompt version")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	outPath := flag.String("out", "", "Path to write the analysis JSON (optional)")
	reportPath := flag.String("report", "", "Path to write the flat-text report (optional)")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}
	if strings.TrimSpace(*jdPath) == "" {
		exitErr("job description path is required")
	}

	mimeType, err := mimeFromExt(*resumePath)
	if err != nil {
		exitErr(err.Error())
	}
	resumeBytes, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}
	jdBytes, err := os.ReadFile(*jdPath)
	if err != nil {
		exitErr(fmt.Sprintf("read job description: %v", err))
	}
	jobDescription := strings.TrimSpace(string(jdBytes))
	if jobDescription == "" {
		exitErr("job description file is empty")
	}
	fileName := filepath.Base(*resumePath)

	ctx := context.Background()
	resumeText, err := extract.Text(ctx, resumeBytes, mimeType, fileName)
	if err != nil {
		exitErr(fmt.Sprintf("extract resume text: %v", err))
	}

	creds := llm.NewCredentialStore()
	bootstrap.SeedCredentials(creds)
	defer creds.Clear()

	providerName := strings.ToLower(strings.TrimSpace(*provider))
	modelName := strings.TrimSpace(*model)
	if modelName == "" {
		modelName = bootstrap.DefaultModel(providerName)
	}
	client, err := bootstrap.NewLLMClient(providerName, creds, llm.Options{
		Model:           modelName,
		Temperature:     cfg.LLMTemperature,
		MaxOutputTokens: cfg.LLMMaxOutputTokens,
		Timeout:         time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
	})
	if err != nil {
		exitErr(err.Error())
	}

	raw, err := client.AnalyzeMatch(ctx, llm.MatchInput{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		PromptVersion:  *promptVersion,
	})
	if err != nil {
		exitErr(fmt.Sprintf("llm analyze: %v", err))
	}

	result, err := analysis.Normalize(raw)
	if err != nil {
		exitErr(fmt.Sprintf("normalize result: %v", err))
	}

	a := analysis.Analysis{
		Result:         result,
		ScoreBand:      analysis.ScoreBand(result.MatchPercentage),
		Provider:       providerName,
		Model:          modelName,
		PromptVersion:  *promptVersion,
		Resume:         analysis.StatsFor(fileName, resumeText),
		JobDescription: analysis.StatsFor("", jobDescription),
	}

	pretty, err := prettyJSON(a)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}
	if *reportPath != "" {
		if err := os.WriteFile(*reportPath, []byte(analysis.Render(a)), 0o644); err != nil {
			exitErr(fmt.Sprintf("write report: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(pretty) == 0 || pretty[len(pretty)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func mimeFromExt(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf", nil
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document", nil
	default:
		return "", fmt.Errorf("unsupported resume file type: %s", filepath.Ext(path))
	}
}

func prettyJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
