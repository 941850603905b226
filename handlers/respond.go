package handlers

import (
	"errors"
	"net/http"

	"applauncher-backend/service"

	"github.com/gin-gonic/gin"
)

// errorResponse writes the failure envelope. detail carries the same message
// for clients that read FastAPI-style errors.
func errorResponse(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"detail":  message,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// serviceError maps a service error onto a status and envelope. fallback is
// the Dutch message prefix used for unexpected failures.
func serviceError(c *gin.Context, err error, code, fallback string) {
	var verr *service.ValidationError
	var uerr *service.UpstreamError
	switch {
	case errors.As(err, &verr):
		errorResponse(c, verr.Status, verr.Code, verr.Detail)
	case errors.As(err, &uerr):
		errorResponse(c, http.StatusInternalServerError, "UPSTREAM_FAILED", uerr.Error())
	case errors.Is(err, service.ErrSetNotFound):
		errorResponse(c, http.StatusNotFound, "NOT_FOUND", "Subsidiecriteria niet gevonden")
	case errors.Is(err, service.ErrForbidden):
		errorResponse(c, http.StatusForbidden, "FORBIDDEN", "Alleen beheerders kunnen de globale selectie instellen")
	default:
		errorResponse(c, http.StatusInternalServerError, code, fallback+": "+err.Error())
	}
}
