package handlers

import (
	"errors"
	"net/http"
	"time"

	"applauncher-backend/models"
	"applauncher-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CriteriaHandler handles HTTP requests for saved criteria sets and selections
type CriteriaHandler struct {
	criteriaService *service.CriteriaService
}

// NewCriteriaHandler creates a new criteria handler
func NewCriteriaHandler(criteriaService *service.CriteriaService) *CriteriaHandler {
	return &CriteriaHandler{criteriaService: criteriaService}
}

// SaveCriteriaRequest represents the request body for saving a criteria set
type SaveCriteriaRequest struct {
	Criteria    []models.SubsidyCriterion `json:"criteria"`
	Summary     string                    `json:"summary"`
	Name        string                    `json:"name"`
	IsSelection bool                      `json:"isSelection"`
}

// CriteriaSetView is a saved set in the shape the frontend reads
type CriteriaSetView struct {
	Criteria          []models.SubsidyCriterion `json:"criteria"`
	Summary           string                    `json:"summary"`
	SavedID           string                    `json:"savedId"`
	Timestamp         time.Time                 `json:"timestamp"`
	Name              string                    `json:"name"`
	IsSelection       bool                      `json:"isSelection,omitempty"`
	IsGlobalSelection bool                      `json:"isGlobalSelection,omitempty"`
}

func viewOf(set *models.CriteriaSet) CriteriaSetView {
	criteria := []models.SubsidyCriterion(set.Criteria)
	if criteria == nil {
		criteria = []models.SubsidyCriterion{}
	}
	return CriteriaSetView{
		Criteria:    criteria,
		Summary:     set.Summary,
		SavedID:     set.ID.String(),
		Timestamp:   set.Timestamp,
		Name:        set.Name,
		IsSelection: set.IsSelection,
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_ID", "Ongeldig ID")
		return uuid.Nil, false
	}
	return id, true
}

// Save handles POST /api/subsidies/save
func (h *CriteriaHandler) Save(c *gin.Context) {
	var req SaveCriteriaRequest
	if !bindJSON(c, &req) {
		return
	}

	set, err := h.criteriaService.SaveCriteria(c.Request.Context(), service.SaveCriteriaRequest{
		UserID:      currentUser(c).ID,
		Name:        req.Name,
		Criteria:    req.Criteria,
		Summary:     req.Summary,
		IsSelection: req.IsSelection,
	})
	if err != nil {
		serviceError(c, err, "SAVE_FAILED", "Kon criteria niet opslaan")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      set.ID.String(),
		"message": "Subsidie criteria opgeslagen",
	})
}

// List handles GET /api/subsidies/list
func (h *CriteriaHandler) List(c *gin.Context) {
	sets, err := h.criteriaService.ListCriteria(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		serviceError(c, err, "LIST_FAILED", "Kon criteria niet ophalen")
		return
	}

	views := make([]CriteriaSetView, len(sets))
	for i, set := range sets {
		views[i] = viewOf(set)
	}
	c.JSON(http.StatusOK, views)
}

// Get handles GET /api/subsidies/:id
func (h *CriteriaHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	set, err := h.criteriaService.GetCriteria(c.Request.Context(), id, currentUser(c).ID)
	if err != nil {
		serviceError(c, err, "RETRIEVAL_FAILED", "Kon criteria niet ophalen")
		return
	}

	c.JSON(http.StatusOK, viewOf(set))
}

// Delete handles DELETE /api/subsidies/:id
func (h *CriteriaHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.criteriaService.DeleteCriteria(c.Request.Context(), id, currentUser(c).ID); err != nil {
		serviceError(c, err, "DELETE_FAILED", "Kon criteria niet verwijderen")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Subsidiecriteria verwijderd",
	})
}

// Select handles POST /api/subsidies/select/:id
func (h *CriteriaHandler) Select(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.criteriaService.Select(c.Request.Context(), currentUser(c), id); err != nil {
		serviceError(c, err, "SELECT_FAILED", "Kon selectie niet instellen")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Subsidie selectie ingesteld",
		"selection_id": id.String(),
	})
}

// Selection handles GET /api/subsidies/selection
func (h *CriteriaHandler) Selection(c *gin.Context) {
	set, err := h.criteriaService.CurrentSelection(c.Request.Context(), currentUser(c).ID)
	switch {
	case errors.Is(err, service.ErrNoSelection):
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"has_selection": false,
			"message":       "Geen huidige selectie gevonden",
		})
		return
	case errors.Is(err, service.ErrSetNotFound):
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"has_selection": false,
			"message":       "Geselecteerde subsidie niet meer gevonden",
		})
		return
	case err != nil:
		serviceError(c, err, "SELECTION_FAILED", "Kon selectie niet ophalen")
		return
	}

	view := viewOf(set)
	view.IsSelection = true
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"has_selection": true,
		"selection":     view,
	})
}

// SetGlobal handles POST /api/subsidies/global/set/:id
func (h *CriteriaHandler) SetGlobal(c *gin.Context) {
	user := currentUser(c)
	if !user.IsAdmin() {
		errorResponse(c, http.StatusForbidden, "FORBIDDEN", "Alleen beheerders kunnen de globale selectie instellen")
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.criteriaService.SetGlobalSelection(c.Request.Context(), user, id); err != nil {
		serviceError(c, err, "GLOBAL_SELECT_FAILED", "Kon globale selectie niet instellen")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Globale subsidie selectie ingesteld voor alle gebruikers",
		"selection_id": id.String(),
	})
}

// Global handles GET /api/subsidies/global
func (h *CriteriaHandler) Global(c *gin.Context) {
	set, sel, err := h.criteriaService.GlobalSelection(c.Request.Context())
	switch {
	case errors.Is(err, service.ErrNoSelection):
		c.JSON(http.StatusOK, gin.H{
			"success":              true,
			"has_global_selection": false,
			"message":              "Geen globale selectie gevonden",
		})
		return
	case errors.Is(err, service.ErrSetNotFound):
		c.JSON(http.StatusOK, gin.H{
			"success":              true,
			"has_global_selection": false,
			"message":              "Globale selectie niet meer gevonden",
		})
		return
	case err != nil:
		serviceError(c, err, "GLOBAL_SELECTION_FAILED", "Kon globale selectie niet ophalen")
		return
	}

	view := viewOf(set)
	view.IsSelection = true
	view.IsGlobalSelection = true
	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"has_global_selection": true,
		"selection":            view,
		"set_by_user_id":       sel.SetByUserID,
		"set_by_user_name":     sel.SetByUserName,
		"timestamp":            sel.Timestamp,
	})
}
