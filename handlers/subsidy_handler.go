package handlers

import (
	"net/http"

	"applauncher-backend/models"
	"applauncher-backend/service"

	"github.com/gin-gonic/gin"
)

// SubsidyHandler handles HTTP requests for criteria extraction and assessment
type SubsidyHandler struct {
	subsidyService *service.SubsidyService
}

// NewSubsidyHandler creates a new subsidy handler
func NewSubsidyHandler(subsidyService *service.SubsidyService) *SubsidyHandler {
	return &SubsidyHandler{subsidyService: subsidyService}
}

// QueryRequest represents the request body for criteria extraction
type QueryRequest struct {
	UserInput string `json:"user_input" binding:"required"`
	Model     string `json:"model"`
}

// ApplicationRequest represents an application together with the criteria to assess
type ApplicationRequest struct {
	ApplicationText string                    `json:"application_text" binding:"required"`
	Criteria        []models.SubsidyCriterion `json:"criteria" binding:"required,min=1"`
	Model           string                    `json:"model"`
}

func (r ApplicationRequest) toService() service.AssessRequest {
	return service.AssessRequest{
		ApplicationText: r.ApplicationText,
		Criteria:        r.Criteria,
		Model:           r.Model,
	}
}

// SummarizeRequest represents the request body for an application summary
type SummarizeRequest struct {
	ApplicationText string `json:"application_text" binding:"required"`
	Model           string `json:"model"`
}

// ReportRequest represents the request body for the final report
type ReportRequest struct {
	AssessmentResults models.Assessment          `json:"assessment_results" binding:"required,min=1"`
	SummaryResult     *models.ApplicationSummary `json:"summary_result" binding:"required"`
	Model             string                     `json:"model"`
}

// Query handles POST /api/subsidies/query
func (h *SubsidyHandler) Query(c *gin.Context) {
	var req QueryRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.subsidyService.Query(c.Request.Context(), service.QueryRequest{
		UserID:    currentUser(c).ID,
		UserInput: req.UserInput,
		Model:     req.Model,
	})
	if err != nil {
		serviceError(c, err, "QUERY_FAILED", "Interne serverfout")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Assess handles POST /api/subsidies/assess
func (h *SubsidyHandler) Assess(c *gin.Context) {
	var req ApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	assessment, err := h.subsidyService.Assess(c.Request.Context(), req.toService())
	if err != nil {
		serviceError(c, err, "ASSESS_FAILED", "Interne serverfout bij beoordeling")
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessment": assessment})
}

// Summarize handles POST /api/subsidies/summarize
func (h *SubsidyHandler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := h.subsidyService.Summarize(c.Request.Context(), service.SummarizeRequest{
		ApplicationText: req.ApplicationText,
		Model:           req.Model,
	})
	if err != nil {
		serviceError(c, err, "SUMMARIZE_FAILED", "Interne serverfout bij samenvatting")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GenerateReport handles POST /api/subsidies/generate_report
func (h *SubsidyHandler) GenerateReport(c *gin.Context) {
	var req ReportRequest
	if !bindJSON(c, &req) {
		return
	}

	report, err := h.subsidyService.GenerateReport(c.Request.Context(), service.ReportRequest{
		Assessment: req.AssessmentResults,
		Summary:    *req.SummaryResult,
		Model:      req.Model,
	})
	if err != nil {
		serviceError(c, err, "REPORT_FAILED", "Interne serverfout bij het genereren van het rapport")
		return
	}

	c.JSON(http.StatusOK, report)
}

// CompleteAssessment handles POST /api/subsidies/complete_assessment
func (h *SubsidyHandler) CompleteAssessment(c *gin.Context) {
	var req ApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.subsidyService.CompleteAssessment(c.Request.Context(), req.toService())
	if err != nil {
		serviceError(c, err, "ASSESSMENT_FAILED", "Fout bij complete beoordeling")
		return
	}

	c.JSON(http.StatusOK, result)
}
