package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the route handlers mounted by NewRouter
type Handlers struct {
	Simplify *SimplifyHandler
	Subsidy  *SubsidyHandler
	Criteria *CriteriaHandler
}

// NewRouter builds the gin engine with all API routes
func NewRouter(h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")

	taal := api.Group("/taalniveau")
	{
		taal.GET("/config", h.Simplify.Config)
		taal.POST("/translate", Identity(), h.Simplify.Translate)
	}

	subsidies := api.Group("/subsidies", Identity())
	{
		subsidies.POST("/query", h.Subsidy.Query)
		subsidies.POST("/assess", h.Subsidy.Assess)
		subsidies.POST("/summarize", h.Subsidy.Summarize)
		subsidies.POST("/generate_report", h.Subsidy.GenerateReport)
		subsidies.POST("/complete_assessment", h.Subsidy.CompleteAssessment)

		subsidies.POST("/save", h.Criteria.Save)
		subsidies.GET("/list", h.Criteria.List)
		subsidies.GET("/selection", h.Criteria.Selection)
		subsidies.POST("/select/:id", h.Criteria.Select)
		subsidies.GET("/global", h.Criteria.Global)
		subsidies.POST("/global/set/:id", h.Criteria.SetGlobal)
		subsidies.GET("/:id", h.Criteria.Get)
		subsidies.DELETE("/:id", h.Criteria.Delete)
	}

	return r
}
