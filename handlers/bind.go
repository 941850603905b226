package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type fieldError struct {
	code    string
	message string
}

// fieldErrors holds the Dutch message for each field that fails its binding tag
var fieldErrors = map[string]fieldError{
	"UserInput":         {"EMPTY_INPUT", "Input mag niet leeg zijn."},
	"ApplicationText":   {"EMPTY_APPLICATION", "Subsidieaanvraag tekst mag niet leeg zijn."},
	"Criteria":          {"NO_CRITERIA", "Er zijn geen criteria opgegeven om te beoordelen."},
	"AssessmentResults": {"NO_ASSESSMENT", "Beoordelingsresultaten zijn vereist voor het rapport."},
	"SummaryResult":     {"NO_SUMMARY", "Samenvattingsresultaat is vereist voor het rapport."},
}

func bindJSON(c *gin.Context, v any) bool {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if fe, ok := fieldErrors[verrs[0].StructField()]; ok {
			errorResponse(c, http.StatusBadRequest, fe.code, fe.message)
			return false
		}
	}
	errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Ongeldig verzoek: "+err.Error())
	return false
}
