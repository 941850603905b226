package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinChunks(t *testing.T, text string, c *Chunker) string {
	t.Helper()
	var parts []string
	for i, ch := range c.Split(text) {
		assert.Equal(t, i, ch.Index)
		parts = append(parts, ch.Text)
	}
	return strings.Join(parts, "\n")
}

func TestChunker_EmptyInput(t *testing.T) {
	c := NewChunker(HeuristicTokenizer{}, 50, 10)
	assert.Empty(t, c.Split(""))
	assert.Empty(t, c.Split("   \n\n\t \n"))
}

func TestChunker_ShortTextIsOneChunk(t *testing.T) {
	c := NewChunker(HeuristicTokenizer{}, 1200, 30)
	chunks := c.Split("Dit is een korte alinea.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "Dit is een korte alinea.", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Position)
}

func TestChunker_RoundTrip(t *testing.T) {
	text := "Eerste alinea met een aantal woorden die samen een zin vormen.\n\n" +
		"Tweede alinea, iets langer, met nog meer woorden en bijzinnen die de lezer moet volgen.\n" +
		"Derde regel direct eronder.\n\n\n" +
		"Laatste alinea."

	for _, max := range []int{3, 8, 20, 1200} {
		c := NewChunker(HeuristicTokenizer{}, max, 5)
		joined := joinChunks(t, text, c)
		assert.Equal(t, strings.Fields(text), strings.Fields(joined), "max=%d", max)
	}
}

func TestChunker_RespectsBudget(t *testing.T) {
	tok := HeuristicTokenizer{}
	text := strings.Repeat("woord ", 200)
	c := NewChunker(tok, 10, 2)

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)
	for _, ch := range chunks {
		total := 0
		for _, w := range strings.Fields(ch.Text) {
			total += tok.Count(w)
		}
		assert.LessOrEqual(t, total, 10)
	}
}

func TestChunker_ParagraphBreakFlushesAboveMinimum(t *testing.T) {
	// each paragraph costs 3 heuristic tokens (9 chars)
	c := NewChunker(HeuristicTokenizer{}, 100, 3)
	chunks := c.Split("aaaaaaaaa\n\nbbbbbbbbb\n\nccccccccc")
	require.Len(t, chunks, 3)
	assert.Equal(t, "bbbbbbbbb", chunks[1].Text)
	assert.Equal(t, 11, chunks[1].Position)
}

func TestChunker_SmallParagraphsAreMerged(t *testing.T) {
	c := NewChunker(HeuristicTokenizer{}, 100, 30)
	chunks := c.Split("Kop\n\nEen korte zin.\nNog een.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "Kop\nEen korte zin.\nNog een.", chunks[0].Text)
}

func TestChunker_TrailingContentBelowMinimumIsKept(t *testing.T) {
	c := NewChunker(HeuristicTokenizer{}, 100, 3)
	chunks := c.Split("aaaaaaaaa\n\nb")
	require.Len(t, chunks, 2)
	assert.Equal(t, "b", chunks[1].Text)
}

func TestChunker_LongWordIsSliced(t *testing.T) {
	word := strings.Repeat("x", 100)
	c := NewChunker(HeuristicTokenizer{}, 10, 1)

	chunks := c.Split(word)
	require.NotEmpty(t, chunks)

	var rebuilt strings.Builder
	for _, ch := range chunks {
		for _, part := range strings.Fields(ch.Text) {
			assert.LessOrEqual(t, len(part), 30)
			rebuilt.WriteString(part)
		}
	}
	assert.Equal(t, word, rebuilt.String())
}

func TestChunker_LongWordKeepsRunesIntact(t *testing.T) {
	word := strings.Repeat("é", 40)
	c := NewChunker(HeuristicTokenizer{}, 5, 1)

	var rebuilt strings.Builder
	for _, ch := range c.Split(word) {
		rebuilt.WriteString(strings.ReplaceAll(ch.Text, " ", ""))
	}
	assert.Equal(t, word, rebuilt.String())
}

func TestHeuristicTokenizer(t *testing.T) {
	tok := HeuristicTokenizer{}
	assert.Equal(t, 1, tok.Count(""))
	assert.Equal(t, 1, tok.Count("ab"))
	assert.Equal(t, 3, tok.Count("123456789"))
	assert.Equal(t, 1, tok.Count("ééé"))
}
