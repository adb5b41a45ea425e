package llm

import (
	_ "embed"
	"fmt"
)

var (
	//go:embed prompts/match_v1.txt
	matchPromptV1 string
)

// PromptTemplate returns the instruction template text and whether the
// version was recognized. Unknown versions fall back to match_v1.
func PromptTemplate(version string) (string, bool) {
	switch version {
	case "match_v1", "":
		return matchPromptV1, true
	default:
		return matchPromptV1, false
	}
}

// BuildUserContent renders the resume and job description block appended to
// the instruction template by every provider.
func BuildUserContent(resumeText, jobDescription string) string {
	return fmt.Sprintf("Resume:\n%s\n\nJob Description:\n%s", resumeText, jobDescription)
}
