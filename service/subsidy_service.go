package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"applauncher-backend/llm"
	"applauncher-backend/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	extractionTemperature = 0.5
	assessmentTemperature = 0.2
	summaryTemperature    = 0.3
	reportTemperature     = 0.4
)

var completionValidator = validator.New(validator.WithRequiredStructEnabled())

// SubsidyService extracts criteria from subsidy schemes and assesses
// applications against them. Every step is a single JSON-mode completion.
type SubsidyService struct {
	completer    llm.Completer
	criteria     *CriteriaService
	defaultModel string
	logger       *zap.Logger
}

// SubsidyServiceOption is a functional option for SubsidyService
type SubsidyServiceOption func(*SubsidyService)

// SubsidyWithCompleter sets the completion client
func SubsidyWithCompleter(c llm.Completer) SubsidyServiceOption {
	return func(s *SubsidyService) {
		s.completer = c
	}
}

// SubsidyWithCriteriaService sets where extracted sets are saved
func SubsidyWithCriteriaService(cs *CriteriaService) SubsidyServiceOption {
	return func(s *SubsidyService) {
		s.criteria = cs
	}
}

// SubsidyWithDefaultModel sets the model used when a request names none
func SubsidyWithDefaultModel(model string) SubsidyServiceOption {
	return func(s *SubsidyService) {
		s.defaultModel = model
	}
}

// SubsidyWithLogger sets the logger
func SubsidyWithLogger(logger *zap.Logger) SubsidyServiceOption {
	return func(s *SubsidyService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSubsidyService creates a new subsidy service
func NewSubsidyService(opts ...SubsidyServiceOption) *SubsidyService {
	s := &SubsidyService{defaultModel: "openai/gpt-4o", logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SubsidyService) model(requested string) string {
	if m := strings.TrimSpace(requested); m != "" {
		return m
	}
	return s.defaultModel
}

// completeJSON runs one JSON-mode completion and decodes the fence-stripped
// answer into out.
func (s *SubsidyService) completeJSON(ctx context.Context, model, system, user string, temperature float64, out any) error {
	if s.completer == nil {
		return ErrCompleterNotSet
	}
	resp, err := s.completer.Complete(ctx, llm.Request{
		Model:       model,
		Messages:    llm.SystemAndUser(system, user),
		Temperature: temperature,
		JSONMode:    true,
	})
	if err != nil {
		return &UpstreamError{Detail: "Fout bij aanroepen van het taalmodel", Err: err}
	}

	content := StripFences(resp.Content)
	if content == "" {
		return &UpstreamError{Detail: "Lege response van LLM."}
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		s.logger.Warn("unparseable completion", zap.String("model", model), zap.String("content", truncate(content, 500)), zap.Error(err))
		return &UpstreamError{Detail: "Kon de LLM response niet correct verwerken", Err: err}
	}
	return nil
}

// checkCompletion validates a decoded completion against its validate tags.
func (s *SubsidyService) checkCompletion(model string, v any) error {
	if err := completionValidator.Struct(v); err != nil {
		s.logger.Warn("incomplete completion", zap.String("model", model), zap.Error(err))
		return &UpstreamError{Detail: "LLM response mist verplichte velden", Err: err}
	}
	return nil
}

// QueryRequest represents a criteria extraction request
type QueryRequest struct {
	UserID    string
	UserInput string
	Model     string
}

// QueryResult is the extracted and saved criteria set
type QueryResult struct {
	Criteria   []models.SubsidyCriterion `json:"criteria"`
	Summary    string                    `json:"summary"`
	SavedID    string                    `json:"savedId,omitempty"`
	PreviousID string                    `json:"previousId,omitempty"`
}

// Query extracts the criteria of a subsidy scheme and saves them as a new set
func (s *SubsidyService) Query(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	if strings.TrimSpace(req.UserInput) == "" {
		return nil, badRequest("EMPTY_INPUT", "Input mag niet leeg zijn.")
	}
	model := s.model(req.Model)

	var raw struct {
		Criteria json.RawMessage `json:"criteria"`
		Summary  string          `json:"summary"`
	}
	if err := s.completeJSON(ctx, model, extractionSystemPrompt, req.UserInput, extractionTemperature, &raw); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw.Criteria)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &UpstreamError{Detail: "LLM response bevat geen geldige 'criteria' lijst."}
	}
	var criteria []models.SubsidyCriterion
	if err := json.Unmarshal(trimmed, &criteria); err != nil {
		return nil, &UpstreamError{Detail: "Kon de LLM response niet correct verwerken", Err: err}
	}
	for i := range criteria {
		if err := s.checkCompletion(model, &criteria[i]); err != nil {
			return nil, err
		}
	}

	result := &QueryResult{Criteria: criteria, Summary: raw.Summary}
	if s.criteria == nil {
		return result, nil
	}

	hash := ContentHash(req.UserInput)
	if prev, err := s.criteria.FindPrevious(ctx, req.UserID, hash); err == nil {
		result.PreviousID = prev.ID.String()
	}

	set, err := s.criteria.SaveCriteria(ctx, SaveCriteriaRequest{
		UserID:      req.UserID,
		Criteria:    criteria,
		Summary:     raw.Summary,
		ContentHash: hash,
	})
	if err != nil {
		// The extraction itself succeeded; the caller still gets the criteria.
		s.logger.Error("failed to save extracted criteria", zap.String("user_id", req.UserID), zap.Error(err))
		return result, nil
	}
	result.SavedID = set.ID.String()
	return result, nil
}

// AssessRequest represents an application assessment request
type AssessRequest struct {
	ApplicationText string
	Criteria        []models.SubsidyCriterion
	Model           string
}

func (r AssessRequest) validate() error {
	if strings.TrimSpace(r.ApplicationText) == "" {
		return badRequest("EMPTY_APPLICATION", "Subsidieaanvraag tekst mag niet leeg zijn.")
	}
	if len(r.Criteria) == 0 {
		return badRequest("NO_CRITERIA", "Er zijn geen criteria opgegeven om te beoordelen.")
	}
	return nil
}

// Assess scores the application against every criterion
func (s *SubsidyService) Assess(ctx context.Context, req AssessRequest) (models.Assessment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	lines := make([]string, len(req.Criteria))
	for i, c := range req.Criteria {
		lines[i] = fmt.Sprintf("Criterium %d: %s", c.ID, c.Text)
	}
	user := fmt.Sprintf(`Beoordeel de volgende subsidieaanvraag:
--- START SUBSIDIEAANVRAAG ---
%s
--- EINDE SUBSIDIEAANVRAAG ---

Aan de hand van de volgende criteria uit de subsidieregeling:
--- START CRITERIA SUBSIDIEREGELING ---
%s
--- EINDE CRITERIA SUBSIDIEREGELING ---

Volg de instructies in de system prompt nauwkeurig voor de beoordeling en de outputstructuur.
Zorg ervoor dat elk criterium uit de lijst hierboven wordt beoordeeld.
Het "Criterium" veld in je JSON output MOET de volledige tekst van het beoordeelde criterium bevatten.
De output moet een JSON-object zijn waarbij de sleutels genummerd zijn (als strings, "1", "2", etc.) overeenkomend met de nummering van de criteria hierboven.
`, req.ApplicationText, strings.Join(lines, "\n"))

	var assessment models.Assessment
	model := s.model(req.Model)
	if err := s.completeJSON(ctx, model, assessmentSystemPrompt, user, assessmentTemperature, &assessment); err != nil {
		return nil, err
	}
	if len(assessment) == 0 {
		return nil, &UpstreamError{Detail: "LLM response bevat geen beoordeling."}
	}
	for _, item := range assessment {
		if err := s.checkCompletion(model, &item); err != nil {
			return nil, err
		}
	}
	return assessment, nil
}

// SummarizeRequest represents an application summary request
type SummarizeRequest struct {
	ApplicationText string
	Model           string
}

// Summarize extracts applicant, dates, amount and a short description
func (s *SubsidyService) Summarize(ctx context.Context, req SummarizeRequest) (*models.ApplicationSummary, error) {
	if strings.TrimSpace(req.ApplicationText) == "" {
		return nil, badRequest("EMPTY_APPLICATION", "Subsidieaanvraag tekst mag niet leeg zijn.")
	}

	user := fmt.Sprintf(`Maak een samenvatting van de volgende subsidieaanvraag:
--- START SUBSIDIEAANVRAAG ---
%s
--- EINDE SUBSIDIEAANVRAAG ---

Identificeer de aanvrager, datums, bedrag en maak een beknopte samenvatting.
Zorg ervoor dat je de JSON output structuur volgt zoals beschreven in de systeemprompt.
`, req.ApplicationText)

	model := s.model(req.Model)
	var summary models.ApplicationSummary
	if err := s.completeJSON(ctx, model, summarySystemPrompt, user, summaryTemperature, &summary); err != nil {
		return nil, err
	}
	if err := s.checkCompletion(model, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ReportRequest represents a final report request
type ReportRequest struct {
	Assessment models.Assessment
	Summary    models.ApplicationSummary
	Model      string
}

// GenerateReport combines an assessment and a summary into a verdict
func (s *SubsidyService) GenerateReport(ctx context.Context, req ReportRequest) (*models.AssessmentReport, error) {
	summaryJSON, err := json.MarshalIndent(req.Summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary: %w", err)
	}
	assessmentJSON, err := json.MarshalIndent(req.Assessment, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal assessment: %w", err)
	}

	user := fmt.Sprintf("Maak een eindrapport voor de volgende subsidieaanvraag.\n\n"+
		"Informatie over de aanvraag (samenvatting):\n```json\n%s\n```\n\n"+
		"Beoordeling van de subsidieaanvraag:\n```json\n%s\n```\n\n"+
		"Analyseer de samenvatting en beoordeling, en genereer een eindrapport volgens de structuur in de system prompt.\n"+
		"Focus specifiek op criteria die niet (volledig) aan de eisen voldoen (scores lager dan 8),\n"+
		"en leg uit of deze nog verbeterd kunnen worden.\n", summaryJSON, assessmentJSON)

	model := s.model(req.Model)
	var report models.AssessmentReport
	if err := s.completeJSON(ctx, model, reportSystemPrompt, user, reportTemperature, &report); err != nil {
		return nil, err
	}
	if err := s.checkCompletion(model, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// CompleteAssessment runs assessment and summary concurrently, then the report
func (s *SubsidyService) CompleteAssessment(ctx context.Context, req AssessRequest) (*models.CompleteAssessment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var (
		assessment models.Assessment
		summary    *models.ApplicationSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assessment, err = s.Assess(gctx, req)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = s.Summarize(gctx, SummarizeRequest{ApplicationText: req.ApplicationText, Model: req.Model})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report, err := s.GenerateReport(ctx, ReportRequest{Assessment: assessment, Summary: *summary, Model: req.Model})
	if err != nil {
		return nil, err
	}

	return &models.CompleteAssessment{
		Assessment: assessment,
		Summary:    *summary,
		Report:     *report,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
