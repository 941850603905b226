package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"applauncher-backend/llm"
	"applauncher-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_ParsesDelimitedAnswer(t *testing.T) {
	fake := &fakeCompleter{
		generate: func(req llm.Request) (string, error) { return "Hier is het:\n<<<Een simpele zin.>>>", nil },
	}
	g := NewGenerator(fake, time.Second, nil)

	cand := g.Generate(context.Background(), models.Chunk{Index: 1, Text: "Een complexe zin."}, "m", []string{"Awb"}, models.LevelB2, 0.8)

	assert.Equal(t, "Een simpele zin.", cand.Text)
	assert.Empty(t, cand.Error)
	assert.Equal(t, 1, cand.ChunkIndex)
	assert.Equal(t, 0.8, cand.Temperature)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, 0.8, req.Temperature)
	assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "'Awb'")
	assert.Equal(t, "Een complexe zin.", req.Messages[1].Content)
}

func TestGenerator_FailureFallsBackToOriginal(t *testing.T) {
	fake := &fakeCompleter{
		generate: func(req llm.Request) (string, error) { return "", errors.New("boom") },
	}
	cand := NewGenerator(fake, 0, nil).Generate(context.Background(), models.Chunk{Text: "origineel"}, "m", nil, models.LevelB1, 1.0)

	assert.Equal(t, "origineel", cand.Text)
	assert.Equal(t, "boom", cand.Error)
	assert.False(t, cand.Usable())
}

func TestGenerator_TimeoutFallsBackToOriginal(t *testing.T) {
	slow := llm.CompleterFunc(func(ctx context.Context, req llm.Request) (*llm.Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	cand := NewGenerator(slow, 10*time.Millisecond, nil).Generate(context.Background(), models.Chunk{Text: "origineel"}, "m", nil, models.LevelB1, 1.0)

	assert.Equal(t, "origineel", cand.Text)
	assert.Contains(t, cand.Error, "deadline exceeded")
}

func TestGenerator_WhitespaceChunkSkipsCall(t *testing.T) {
	fake := &fakeCompleter{}
	cand := NewGenerator(fake, 0, nil).Generate(context.Background(), models.Chunk{Text: "  "}, "m", nil, models.LevelB1, 1.0)

	assert.Equal(t, "  ", cand.Text)
	assert.Empty(t, cand.Error)
	assert.Empty(t, fake.requests)
}
