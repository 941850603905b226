package llm

import (
	"context"
	"testing"

	"applauncher-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig(t *testing.T) {
	var cfg config.Config
	config.ApplyDefaults(&cfg)

	c, closer, err := NewFromConfig(context.Background(), cfg.LLM, nil)
	require.NoError(t, err)
	assert.IsType(t, &Limited{}, c)
	assert.NoError(t, closer.Close())

	cfg.LLM.Provider = "claude-direct"
	_, _, err = NewFromConfig(context.Background(), cfg.LLM, nil)
	assert.ErrorContains(t, err, "unknown llm provider")
}
