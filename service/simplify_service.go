package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"applauncher-backend/config"
	"applauncher-backend/llm"
	"applauncher-backend/models"

	"go.uber.org/zap"
)

// SimplifyLimits bounds what a single simplify request may ask for
type SimplifyLimits struct {
	MaxTextLength          int
	MaxInputWords          int
	MaxChunks              int
	MaxPreservedWords      int
	MaxPreservedWordLength int
}

// SimplifyService rewrites text to a reading level: chunk, generate one
// candidate per temperature, select per chunk, stream in completion order.
type SimplifyService struct {
	chunker      *Chunker
	generator    *Generator
	selector     *Selector
	temperatures []float64
	limits       SimplifyLimits
	defaultModel string
	logger       *zap.Logger
}

// SimplifyServiceOption is a functional option for SimplifyService
type SimplifyServiceOption func(*SimplifyService)

// SimplifyWithChunker sets the chunker
func SimplifyWithChunker(c *Chunker) SimplifyServiceOption {
	return func(s *SimplifyService) {
		s.chunker = c
	}
}

// SimplifyWithCompleter builds the generator and selector around completer
func SimplifyWithCompleter(completer llm.Completer, callTimeout time.Duration) SimplifyServiceOption {
	return func(s *SimplifyService) {
		s.generator = NewGenerator(completer, callTimeout, s.logger)
		s.selector = NewSelector(completer, callTimeout, s.logger)
	}
}

// SimplifyWithTemperatures sets the sampling temperatures, one candidate each
func SimplifyWithTemperatures(temps []float64) SimplifyServiceOption {
	return func(s *SimplifyService) {
		s.temperatures = append([]float64(nil), temps...)
	}
}

// SimplifyWithLimits sets the request limits
func SimplifyWithLimits(limits SimplifyLimits) SimplifyServiceOption {
	return func(s *SimplifyService) {
		s.limits = limits
	}
}

// SimplifyWithDefaultModel sets the model used when a request names none
func SimplifyWithDefaultModel(model string) SimplifyServiceOption {
	return func(s *SimplifyService) {
		s.defaultModel = model
	}
}

// SimplifyWithLogger sets the logger. Pass it before SimplifyWithCompleter.
func SimplifyWithLogger(logger *zap.Logger) SimplifyServiceOption {
	return func(s *SimplifyService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSimplifyService creates a new simplify service
func NewSimplifyService(opts ...SimplifyServiceOption) *SimplifyService {
	s := &SimplifyService{
		temperatures: []float64{1.0, 0.8, 0.6},
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.chunker == nil {
		s.chunker = NewChunker(HeuristicTokenizer{}, 1200, 30)
	}
	return s
}

// NewSimplifyServiceFromConfig wires a service from the loaded configuration
func NewSimplifyServiceFromConfig(cfg *config.Config, completer llm.Completer, tokenizer Tokenizer, logger *zap.Logger) *SimplifyService {
	sc := cfg.Simplify
	return NewSimplifyService(
		SimplifyWithLogger(logger),
		SimplifyWithChunker(NewChunker(tokenizer, sc.MaxChunkTokens, sc.MinChunkTokens)),
		SimplifyWithCompleter(completer, time.Duration(sc.GenerationTimeoutSeconds)*time.Second),
		SimplifyWithTemperatures(sc.Temperatures),
		SimplifyWithDefaultModel(cfg.LLM.DefaultModel),
		SimplifyWithLimits(SimplifyLimits{
			MaxTextLength:          sc.MaxTextLength,
			MaxInputWords:          sc.MaxInputWords,
			MaxChunks:              sc.MaxChunks,
			MaxPreservedWords:      sc.MaxPreservedWords,
			MaxPreservedWordLength: sc.MaxPreservedWordLength,
		}),
	)
}

// SimplifyRequest represents a request to simplify text
type SimplifyRequest struct {
	Text           string
	Model          string
	PreservedWords []string
	Level          string
}

// SimplifyPlan is a validated request split into chunks
type SimplifyPlan struct {
	Chunks         []models.Chunk
	Model          string
	PreservedWords []string
	Level          models.Level
}

// Prepare validates req and chunks its text. It returns a *ValidationError
// for input the service refuses.
func (s *SimplifyService) Prepare(req SimplifyRequest) (*SimplifyPlan, error) {
	lim := s.limits
	if lim.MaxTextLength > 0 && CountChars(req.Text) > lim.MaxTextLength {
		return nil, tooLarge("TEXT_TOO_LONG", "Tekst is te lang (max %d tekens).", lim.MaxTextLength)
	}
	if n := CountWords(req.Text); lim.MaxInputWords > 0 && n > lim.MaxInputWords {
		return nil, tooLarge("TOO_MANY_WORDS", "Tekst bevat te veel woorden (%d, max %d).", n, lim.MaxInputWords)
	}

	level, ok := models.ParseLevel(req.Level)
	if !ok {
		return nil, unprocessable("INVALID_LEVEL", "Ongeldig taalniveau '%s'. Kies B1 of B2.", req.Level)
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = s.defaultModel
	}
	if len(model) < 2 || len(model) > 64 {
		return nil, unprocessable("INVALID_MODEL", "Ongeldig model '%s'.", model)
	}

	if lim.MaxPreservedWords > 0 && len(req.PreservedWords) > lim.MaxPreservedWords {
		return nil, unprocessable("TOO_MANY_PRESERVED_WORDS", "Te veel behouden woorden (%d, max %d).", len(req.PreservedWords), lim.MaxPreservedWords)
	}
	var words []string
	for _, w := range req.PreservedWords {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if lim.MaxPreservedWordLength > 0 && CountChars(w) > lim.MaxPreservedWordLength {
			return nil, unprocessable("PRESERVED_WORD_TOO_LONG", "Behouden woord '%s' is te lang (max %d tekens).", w, lim.MaxPreservedWordLength)
		}
		words = append(words, w)
	}
	words = dedupe(append(words, LegalCitations(req.Text)...))

	chunks := s.chunker.Split(req.Text)
	if lim.MaxChunks > 0 && len(chunks) > lim.MaxChunks {
		return nil, unprocessable("TOO_MANY_CHUNKS", "Tekst resulteert in te veel delen (%d chunks, max %d). Verkort of vereenvoudig de tekst.", len(chunks), lim.MaxChunks)
	}

	return &SimplifyPlan{Chunks: chunks, Model: model, PreservedWords: words, Level: level}, nil
}

// Run executes plan and calls emit once per chunk, in completion order, from
// the calling goroutine. It returns the number of results emitted. An emit
// error stops the run and cancels outstanding calls.
//
// Every chunk is guaranteed a result: failed generations degrade to the
// original text, so the per-chunk barrier always opens.
func (s *SimplifyService) Run(ctx context.Context, plan *SimplifyPlan, emit func(models.SelectionResult) error) (int, error) {
	if s.generator == nil || s.selector == nil {
		return 0, ErrCompleterNotSet
	}
	n := len(plan.Chunks)
	if n == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	temps := s.temperatures
	generated := make(chan models.Candidate, n*len(temps))
	selected := make(chan models.SelectionResult, n)

	outstanding := make(map[int]int, n)
	candidates := make(map[int][]models.Candidate, n)
	for _, chunk := range plan.Chunks {
		outstanding[chunk.Index] = len(temps)
		if len(temps) == 0 {
			go s.selectChunk(ctx, plan, chunk, nil, selected)
			continue
		}
		for _, t := range temps {
			go s.generateCandidate(ctx, plan, chunk, t, generated)
		}
	}

	emitted := 0
	for emitted < n {
		select {
		case cand := <-generated:
			idx := cand.ChunkIndex
			candidates[idx] = append(candidates[idx], cand)
			outstanding[idx]--
			if outstanding[idx] == 0 {
				go s.selectChunk(ctx, plan, plan.Chunks[idx], candidates[idx], selected)
			}
		case res := <-selected:
			res.Text = StripMarkers(res.Text)
			if err := emit(res); err != nil {
				return emitted, fmt.Errorf("emit chunk %d: %w", res.Index, err)
			}
			emitted++
		}
	}
	return emitted, nil
}

func (s *SimplifyService) generateCandidate(ctx context.Context, plan *SimplifyPlan, chunk models.Chunk, temperature float64, out chan<- models.Candidate) {
	cand := models.Candidate{ChunkIndex: chunk.Index, Temperature: temperature, Text: chunk.Text}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("candidate generation panicked", zap.Int("chunk_index", chunk.Index), zap.Any("panic", r))
			cand.Error = fmt.Sprint(r)
			out <- cand
		}
	}()
	cand = s.generator.Generate(ctx, chunk, plan.Model, plan.PreservedWords, plan.Level, temperature)
	out <- cand
}

func (s *SimplifyService) selectChunk(ctx context.Context, plan *SimplifyPlan, chunk models.Chunk, candidates []models.Candidate, out chan<- models.SelectionResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("selection panicked", zap.Int("chunk_index", chunk.Index), zap.Any("panic", r))
			out <- models.SelectionResult{Index: chunk.Index, Text: chunk.Text, Error: fmt.Sprint(r)}
		}
	}()
	out <- s.selector.Select(ctx, chunk, candidates, plan.Model, plan.PreservedWords, plan.Level)
}

// MaxChunkTokens returns the chunk token budget, as reported by GET /config.
func (s *SimplifyService) MaxChunkTokens() int {
	return s.chunker.MaxTokens()
}

// Chunk exposes the chunker for inspection tools.
func (s *SimplifyService) Chunk(text string) []models.Chunk {
	return s.chunker.Split(text)
}

// Reassemble orders results by chunk index and joins their text.
func Reassemble(results []models.SelectionResult) string {
	ordered := make([]string, len(results))
	for _, r := range results {
		if r.Index >= 0 && r.Index < len(ordered) {
			ordered[r.Index] = r.Text
		}
	}
	return strings.Join(ordered, "\n\n")
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := words[:0]
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
