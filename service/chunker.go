package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"applauncher-backend/models"
)

var paragraphBreak = regexp.MustCompile(`\n+`)

// Chunker splits text into token-bounded chunks along paragraph and word
// boundaries.
//
// Words are accumulated until adding the next one would exceed the maximum.
// A paragraph break closes the current chunk once it holds at least the
// minimum, otherwise the next paragraph continues it. Empty paragraphs are
// dropped. Whatever remains at the end of the input is always emitted, even
// below the minimum. A single word longer than the maximum is cut into slices
// of maxTokens*3 characters.
type Chunker struct {
	tokenizer Tokenizer
	maxTokens int
	minTokens int
}

// NewChunker creates a chunker. A nil tokenizer uses the heuristic.
func NewChunker(tokenizer Tokenizer, maxTokens, minTokens int) *Chunker {
	if tokenizer == nil {
		tokenizer = HeuristicTokenizer{}
	}
	if maxTokens < 1 {
		maxTokens = 1
	}
	if minTokens > maxTokens {
		minTokens = maxTokens
	}
	return &Chunker{tokenizer: tokenizer, maxTokens: maxTokens, minTokens: minTokens}
}

// MaxTokens returns the per-chunk token budget.
func (c *Chunker) MaxTokens() int {
	return c.maxTokens
}

type chunkBuilder struct {
	chunks  []models.Chunk
	text    strings.Builder
	tokens  int
	start   int
	newPara bool
}

func (b *chunkBuilder) empty() bool {
	return b.text.Len() == 0
}

func (b *chunkBuilder) add(word string, pos, tokens int) {
	if b.empty() {
		b.start = pos
	} else if b.newPara {
		b.text.WriteByte('\n')
	} else {
		b.text.WriteByte(' ')
	}
	b.newPara = false
	b.text.WriteString(word)
	b.tokens += tokens
}

func (b *chunkBuilder) flush() {
	if b.empty() {
		return
	}
	b.chunks = append(b.chunks, models.Chunk{
		Index:    len(b.chunks),
		Text:     b.text.String(),
		Position: b.start,
	})
	b.text.Reset()
	b.tokens = 0
	b.newPara = false
}

// Split returns the chunks of text in document order. It returns no chunks
// only for empty or whitespace-only input.
func (c *Chunker) Split(text string) []models.Chunk {
	b := &chunkBuilder{}

	offset := 0
	bounds := paragraphBreak.FindAllStringIndex(text, -1)
	bounds = append(bounds, []int{len(text), len(text)})
	for _, bound := range bounds {
		para := text[offset:bound[0]]
		c.addParagraph(b, para, offset)
		offset = bound[1]

		if b.tokens >= c.minTokens {
			b.flush()
		} else if !b.empty() {
			b.newPara = true
		}
	}
	b.flush()

	return b.chunks
}

func (c *Chunker) addParagraph(b *chunkBuilder, para string, base int) {
	for _, w := range fields(para) {
		pos := base + w.pos
		tokens := c.tokenizer.Count(w.text)
		if tokens <= c.maxTokens {
			c.addWord(b, w.text, pos, tokens)
			continue
		}
		for _, part := range sliceRunes(w.text, c.maxTokens*3) {
			c.addWord(b, part.text, pos+part.pos, c.tokenizer.Count(part.text))
		}
	}
}

func (c *Chunker) addWord(b *chunkBuilder, word string, pos, tokens int) {
	if !b.empty() && b.tokens+tokens > c.maxTokens {
		b.flush()
	}
	b.add(word, pos, tokens)
}

type span struct {
	text string
	pos  int
}

// fields is strings.Fields that also reports byte offsets.
func fields(s string) []span {
	var out []span
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, span{text: s[start:i], pos: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, span{text: s[start:], pos: start})
	}
	return out
}

// sliceRunes cuts s into pieces of at most n runes.
func sliceRunes(s string, n int) []span {
	var out []span
	start, count := 0, 0
	for i := range s {
		if count == n {
			out = append(out, span{text: s[start:i], pos: start})
			start, count = i, 0
		}
		count++
	}
	if start < len(s) {
		out = append(out, span{text: s[start:], pos: start})
	}
	return out
}

// CountWords counts whitespace-separated words.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// CountChars counts characters, not bytes.
func CountChars(s string) int {
	return utf8.RuneCountInString(s)
}
