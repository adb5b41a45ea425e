// Package analysis runs the resume-to-job match pipeline: extract text,
// make one completion call, normalize the result. Nothing here outlives the
// request that created it.
package analysis

import (
	"strings"
	"unicode/utf8"
)

// Result is the normalized outcome of one match analysis. Lists are never
// nil and every entry is a single line; Summary may span multiple lines.
type Result struct {
	MatchPercentage int      `json:"matchPercentage"`
	MissingKeywords []string `json:"missingKeywords"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Summary         string   `json:"summary"`
}

// Score bands group match percentages for presentation.
const (
	BandStrong   = "strong"
	BandModerate = "moderate"
	BandWeak     = "weak"
)

// ScoreBand buckets a match percentage: 80 and above is strong, 60 and
// above moderate, everything else weak.
func ScoreBand(matchPercentage int) string {
	switch {
	case matchPercentage >= 80:
		return BandStrong
	case matchPercentage >= 60:
		return BandModerate
	default:
		return BandWeak
	}
}

// DocumentStats summarizes an input document without retaining its text.
type DocumentStats struct {
	FileName   string `json:"fileName,omitempty"`
	Characters int    `json:"characters"`
	Words      int    `json:"words"`
}

// StatsFor counts characters and words in a document body.
func StatsFor(fileName, text string) DocumentStats {
	return DocumentStats{
		FileName:   fileName,
		Characters: utf8.RuneCountInString(text),
		Words:      len(strings.Fields(text)),
	}
}

// Analysis is the full envelope returned to callers.
type Analysis struct {
	Result         Result        `json:"result"`
	ScoreBand      string        `json:"scoreBand"`
	Provider       string        `json:"provider"`
	Model          string        `json:"model"`
	PromptVersion  string        `json:"promptVersion"`
	Resume         DocumentStats `json:"resume"`
	JobDescription DocumentStats `json:"jobDescription"`
}
