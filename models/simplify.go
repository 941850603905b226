package models

import "strings"

// Level is a target reading level for the simplifier
type Level string

const (
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"

	DefaultLevel = LevelB1
)

// ParseLevel normalizes s and reports whether it names a supported level.
// An empty string yields the default level.
func ParseLevel(s string) (Level, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultLevel, true
	}
	switch Level(s) {
	case LevelB1, LevelB2:
		return Level(s), true
	default:
		return "", false
	}
}

// Chunk is an ordered, contiguous slice of the input document
type Chunk struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	Position int    `json:"position"` // byte offset of the first word in the input
}

// Candidate is one rewrite attempt for a chunk. On failure Text holds the
// original chunk text and Error is set.
type Candidate struct {
	ChunkIndex  int     `json:"chunk_index"`
	Temperature float64 `json:"temperature"`
	Text        string  `json:"text"`
	Error       string  `json:"error,omitempty"`
}

// Usable reports whether the candidate may be offered to the selector
func (c Candidate) Usable() bool {
	return c.Error == "" && strings.TrimSpace(c.Text) != ""
}

// SelectionResult is the final text for one chunk, as streamed to the client
type SelectionResult struct {
	Index                 int      `json:"index"`
	Text                  string   `json:"text"`
	Error                 string   `json:"error,omitempty"`
	SelectionError        string   `json:"selection_error,omitempty"`
	SelectionWarning      string   `json:"selection_warning,omitempty"`
	MissingPreservedWords []string `json:"missing_preserved_words,omitempty"`
}

// ChunkCount is the first object of every simplify stream
type ChunkCount struct {
	TotalChunks int `json:"total_chunks"`
}

// StreamSummary closes a non-empty simplify stream. NDJSON lines set Done so
// clients can tell it apart from a chunk result.
type StreamSummary struct {
	Done        bool `json:"done,omitempty"`
	TotalChunks int  `json:"total_chunks"`
	Emitted     int  `json:"emitted"`
}
