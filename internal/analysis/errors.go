package analysis

import "errors"

var (
	// ErrUnparsable marks model output with no usable JSON object. Partial
	// or malformed fields never raise it; only a payload that cannot be
	// read as an object at all.
	ErrUnparsable = errors.New("analysis result unparsable")
	// ErrResumeRequired marks a request with no resume upload.
	ErrResumeRequired = errors.New("resume file is required")
	// ErrJobDescriptionRequired marks a request with a blank job description.
	ErrJobDescriptionRequired = errors.New("job description is required")
)

// Error envelope codes returned by the API.
const (
	CodeValidation       = "validation"
	CodeExtractionFailed = "extraction_failed"
	CodeAuthFailed       = "auth_failed"
	CodeRateLimited      = "rate_limited"
	CodeLLMUnavailable   = "llm_unavailable"
	CodeAnalysisFailed   = "analysis_failed"
	CodeInternal         = "internal"
)
