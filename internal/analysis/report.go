package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

// ReportFileName is the download name for rendered reports.
const ReportFileName = "resume_analysis_report.txt"

const (
	reportTitle  = "Resume Match Analysis Report"
	reportFooter = "Generated by JobFit"
	emptyValue   = "-"

	sectionMissingKeywords = "Missing Keywords:"
	sectionStrengths       = "Strengths:"
	sectionImprovements    = "Improvements:"
	sectionSummary         = "Summary:"
)

var reportSeparator = strings.Repeat("-", 32)

// Render produces the flat-text report for an analysis. The output is
// deterministic and Parse recovers the analysis exactly, so a downloaded
// report is as good as the API response it came from.
func Render(a Analysis) string {
	var b strings.Builder

	b.WriteString(reportTitle + "\n")
	b.WriteString(strings.Repeat("=", len(reportTitle)) + "\n\n")

	fmt.Fprintf(&b, "Match Score: %d%%\n", a.Result.MatchPercentage)
	fmt.Fprintf(&b, "Score Band: %s\n", orEmpty(a.ScoreBand))
	fmt.Fprintf(&b, "Provider: %s\n", orEmpty(a.Provider))
	fmt.Fprintf(&b, "Model: %s\n", orEmpty(a.Model))
	fmt.Fprintf(&b, "Prompt Version: %s\n", orEmpty(a.PromptVersion))
	fmt.Fprintf(&b, "Resume File: %s\n", orEmpty(a.Resume.FileName))
	fmt.Fprintf(&b, "Resume Size: %d characters, %d words\n", a.Resume.Characters, a.Resume.Words)
	fmt.Fprintf(&b, "Job Description Size: %d characters, %d words\n", a.JobDescription.Characters, a.JobDescription.Words)
	b.WriteString("\n")

	writeSection(&b, sectionMissingKeywords, a.Result.MissingKeywords)
	writeSection(&b, sectionStrengths, a.Result.Strengths)
	writeSection(&b, sectionImprovements, a.Result.Improvements)

	b.WriteString(sectionSummary + "\n")
	if a.Result.Summary != "" {
		b.WriteString(a.Result.Summary + "\n")
	}
	b.WriteString("\n")
	b.WriteString(reportSeparator + "\n")
	b.WriteString(reportFooter + "\n")

	return b.String()
}

func writeSection(b *strings.Builder, header string, entries []string) {
	b.WriteString(header + "\n")
	for _, entry := range entries {
		b.WriteString("- " + entry + "\n")
	}
	b.WriteString("\n")
}

func orEmpty(value string) string {
	if strings.TrimSpace(value) == "" {
		return emptyValue
	}
	return value
}

func fromEmpty(value string) string {
	if value == emptyValue {
		return ""
	}
	return value
}

// Parse reads a rendered report back into an Analysis. The footer and
// separator are discarded; everything else round-trips.
func Parse(text string) (Analysis, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != reportTitle {
		return Analysis{}, fmt.Errorf("not a %s", reportTitle)
	}

	a := Analysis{
		Result: Result{
			MissingKeywords: []string{},
			Strengths:       []string{},
			Improvements:    []string{},
		},
	}

	section := ""
	var summaryLines []string
	for _, line := range lines[1:] {
		if section == sectionSummary {
			if strings.TrimSpace(line) == reportSeparator {
				break
			}
			summaryLines = append(summaryLines, line)
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch trimmed {
		case "", strings.Repeat("=", len(reportTitle)):
			continue
		case sectionMissingKeywords, sectionStrengths, sectionImprovements, sectionSummary:
			section = trimmed
			continue
		}

		if strings.HasPrefix(line, "- ") && section != "" {
			entry := strings.TrimPrefix(line, "- ")
			switch section {
			case sectionMissingKeywords:
				a.Result.MissingKeywords = append(a.Result.MissingKeywords, entry)
			case sectionStrengths:
				a.Result.Strengths = append(a.Result.Strengths, entry)
			case sectionImprovements:
				a.Result.Improvements = append(a.Result.Improvements, entry)
			}
			continue
		}

		if err := parseMetadataLine(&a, trimmed); err != nil {
			return Analysis{}, err
		}
	}

	a.Result.Summary = strings.TrimSpace(strings.Join(summaryLines, "\n"))
	return a, nil
}

func parseMetadataLine(a *Analysis, line string) error {
	key, value, found := cutMetadata(line)
	if !found {
		return fmt.Errorf("unrecognized report line: %q", line)
	}
	switch key {
	case "Match Score":
		score, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil {
			return fmt.Errorf("malformed match score: %q", value)
		}
		a.Result.MatchPercentage = score
	case "Score Band":
		a.ScoreBand = fromEmpty(value)
	case "Provider":
		a.Provider = fromEmpty(value)
	case "Model":
		a.Model = fromEmpty(value)
	case "Prompt Version":
		a.PromptVersion = fromEmpty(value)
	case "Resume File":
		a.Resume.FileName = fromEmpty(value)
	case "Resume Size":
		if _, err := fmt.Sscanf(value, "%d characters, %d words", &a.Resume.Characters, &a.Resume.Words); err != nil {
			return fmt.Errorf("malformed resume size: %q", value)
		}
	case "Job Description Size":
		if _, err := fmt.Sscanf(value, "%d characters, %d words", &a.JobDescription.Characters, &a.JobDescription.Words); err != nil {
			return fmt.Errorf("malformed job description size: %q", value)
		}
	default:
		return fmt.Errorf("unrecognized report line: %q", line)
	}
	return nil
}

func cutMetadata(line string) (key, value string, found bool) {
	idx := strings.Index(line, ": ")
	if idx < 0 {
		return "", "", false
	}
	return line[:idx], line[idx+2:], true
}
