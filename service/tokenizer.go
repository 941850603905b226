package service

import (
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const tokenEncoding = "cl100k_base"

// Tokenizer estimates how many model tokens a piece of text costs.
type Tokenizer interface {
	Count(text string) int
}

// HeuristicTokenizer assumes three characters per token.
type HeuristicTokenizer struct{}

// Count returns max(1, characters/3).
func (HeuristicTokenizer) Count(text string) int {
	n := utf8.RuneCountInString(text) / 3
	if n < 1 {
		return 1
	}
	return n
}

// TiktokenTokenizer counts tokens with a BPE encoding.
type TiktokenTokenizer struct {
	enc      *tiktoken.Tiktoken
	fallback HeuristicTokenizer
}

// Count encodes text; an encoder panic on odd input falls back to the heuristic.
func (t *TiktokenTokenizer) Count(text string) (n int) {
	defer func() {
		if recover() != nil {
			n = t.fallback.Count(text)
		}
	}()
	return len(t.enc.Encode(text, nil, nil))
}

// NewTokenizer returns a cl100k_base tokenizer, or the heuristic when the
// encoding cannot be loaded.
func NewTokenizer(logger *zap.Logger) Tokenizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	enc, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		logger.Warn("token encoding unavailable, using heuristic",
			zap.String("encoding", tokenEncoding), zap.Error(err))
		return HeuristicTokenizer{}
	}
	return &TiktokenTokenizer{enc: enc}
}
