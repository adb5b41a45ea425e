package analysis

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobfit-backend/internal/extract"
	"jobfit-backend/internal/llm"
	"jobfit-backend/internal/shared/metrics"
	"jobfit-backend/internal/shared/server/respond"
	"jobfit-backend/internal/shared/util"
)

// Handler exposes the analysis endpoints.
type Handler struct {
	svc            *Service
	maxUploadBytes int64
}

// NewHandler constructs an analysis handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes under the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.create)
	rg.POST("/analyses/report", h.report)
}

// create accepts a multipart resume upload plus a job description and
// returns the structured match analysis.
func (h *Handler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, CodeValidation, "resume file too large", gin.H{"maxBytes": h.maxUploadBytes})
			return
		}
		respond.Error(c, http.StatusBadRequest, CodeValidation, "resume file is required", nil)
		return
	}

	jobDescription := c.PostForm("job_description")

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "could not open uploaded file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "could not read uploaded file", nil)
		return
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		fileName = "resume"
	}

	analysis, err := h.svc.Analyze(c.Request.Context(), Request{
		ResumeData:     data,
		ResumeMimeType: fileHeader.Header.Get("Content-Type"),
		ResumeFileName: fileName,
		JobDescription: jobDescription,
	})
	if err != nil {
		h.respondAnalyzeError(c, err)
		return
	}

	c.Set("llmProvider", analysis.Provider)
	c.Set("scoreBand", analysis.ScoreBand)
	respond.OK(c, analysis)
}

// respondAnalyzeError maps service failures onto the API error taxonomy.
func (h *Handler) respondAnalyzeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrResumeRequired):
		respond.Error(c, http.StatusBadRequest, CodeValidation, "resume file is required", nil)
	case errors.Is(err, ErrJobDescriptionRequired):
		respond.Error(c, http.StatusBadRequest, CodeValidation, "job description is required", nil)
	case errors.Is(err, extract.ErrExtraction):
		respond.Error(c, http.StatusUnprocessableEntity, CodeExtractionFailed, "could not extract text from resume", gin.H{"reason": util.SanitizeErrorMessage(err.Error())})
	case errors.Is(err, llm.ErrAuth):
		respond.Error(c, http.StatusUnauthorized, CodeAuthFailed, "analysis provider rejected credentials", nil)
	case errors.Is(err, llm.ErrRateLimited):
		respond.Error(c, http.StatusTooManyRequests, CodeRateLimited, "analysis provider rate limit reached", nil)
	case errors.Is(err, llm.ErrUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, CodeLLMUnavailable, "analysis provider unavailable", nil)
	case errors.Is(err, ErrUnparsable):
		respond.Error(c, http.StatusBadGateway, CodeAnalysisFailed, "analysis response could not be interpreted", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, CodeInternal, "analysis failed", gin.H{"reason": util.SanitizeErrorMessage(err.Error())})
	}
}

// report renders a previously returned analysis as a downloadable
// plain-text report.
func (h *Handler) report(c *gin.Context) {
	var a Analysis
	if err := c.ShouldBindJSON(&a); err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "invalid analysis payload", gin.H{"reason": util.SanitizeErrorMessage(err.Error())})
		return
	}
	a.Result = a.Result.Normalized()
	a.ScoreBand = ScoreBand(a.Result.MatchPercentage)

	metrics.IncReportRendered()
	respond.TextAttachment(c, ReportFileName, Render(a))
}
