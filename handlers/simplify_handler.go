package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"applauncher-backend/models"
	"applauncher-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SimplifyHandler handles HTTP requests for the reading-level simplifier
type SimplifyHandler struct {
	simplifyService *service.SimplifyService
	maxInputWords   int
	logger          *zap.Logger
}

// NewSimplifyHandler creates a new simplify handler
func NewSimplifyHandler(simplifyService *service.SimplifyService, maxInputWords int, logger *zap.Logger) *SimplifyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimplifyHandler{
		simplifyService: simplifyService,
		maxInputWords:   maxInputWords,
		logger:          logger,
	}
}

// TranslateRequest represents the request body for simplifying text
type TranslateRequest struct {
	Text           string   `json:"text"`
	Model          string   `json:"model"`
	PreservedWords []string `json:"preserved_words"`
	LanguageLevel  string   `json:"language_level"`
}

// Translate handles POST /api/taalniveau/translate. The response is a stream:
// first the chunk count, then one result per chunk in completion order, then
// a summary unless there were no chunks.
func (h *SimplifyHandler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Ongeldig verzoek: "+err.Error())
		return
	}

	plan, err := h.simplifyService.Prepare(service.SimplifyRequest{
		Text:           req.Text,
		Model:          req.Model,
		PreservedWords: req.PreservedWords,
		Level:          req.LanguageLevel,
	})
	if err != nil {
		serviceError(c, err, "TRANSLATE_FAILED", "Kon tekst niet verwerken")
		return
	}

	sse := strings.Contains(c.GetHeader("Accept"), "text/event-stream")
	header := c.Writer.Header()
	if sse {
		header.Set("Content-Type", "text/event-stream")
		header.Set("Cache-Control", "no-cache")
		header.Set("Connection", "keep-alive")
		header.Set("X-Accel-Buffering", "no")
	} else {
		header.Set("Content-Type", "application/x-ndjson")
	}
	c.Status(http.StatusOK)

	out := &streamWriter{c: c, sse: sse}
	if err := out.data(models.ChunkCount{TotalChunks: len(plan.Chunks)}); err != nil {
		h.logger.Warn("stream closed before first event", zap.Error(err))
		return
	}

	emitted, err := h.simplifyService.Run(c.Request.Context(), plan, out.result)
	if err != nil {
		h.logger.Warn("simplify stream aborted",
			zap.Int("total_chunks", len(plan.Chunks)),
			zap.Int("emitted", emitted),
			zap.Error(err))
		return
	}

	if len(plan.Chunks) == 0 {
		return
	}
	summary := models.StreamSummary{TotalChunks: len(plan.Chunks), Emitted: emitted}
	if sse {
		err = out.event("done", summary)
	} else {
		summary.Done = true
		err = out.data(summary)
	}
	if err != nil {
		h.logger.Warn("failed to write stream summary", zap.Error(err))
	}
}

// Config handles GET /api/taalniveau/config
func (h *SimplifyHandler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"max_input_words":  h.maxInputWords,
		"max_chunk_tokens": h.simplifyService.MaxChunkTokens(),
	})
}

// streamWriter writes JSON values as NDJSON lines, or as SSE events through
// gin's SSEvent, and flushes after each one.
type streamWriter struct {
	c   *gin.Context
	sse bool
}

func (s *streamWriter) data(v any) error {
	return s.event("", v)
}

func (s *streamWriter) result(r models.SelectionResult) error {
	return s.event("", r)
}

// event writes v; name is only used by the SSE framing.
func (s *streamWriter) event(name string, v any) error {
	if s.sse {
		errs := len(s.c.Errors)
		s.c.SSEvent(name, v)
		if len(s.c.Errors) > errs {
			return s.c.Errors.Last().Err
		}
	} else {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := s.c.Writer.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	s.c.Writer.Flush()
	return nil
}
