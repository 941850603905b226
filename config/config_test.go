package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_missingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 2500, cfg.Simplify.MaxInputWords)
	assert.Equal(t, 1200, cfg.Simplify.MaxChunkTokens)
	assert.Equal(t, 30, cfg.Simplify.MinChunkTokens)
	assert.Equal(t, []float64{1.0, 0.8, 0.6}, cfg.Simplify.Temperatures)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "openai/gpt-4o", cfg.LLM.DefaultModel)
}

func TestLoad_yaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
debug: true
server:
  port: "9000"
simplify:
  max_chunk_tokens: 800
  temperatures: [0.9, 0.3]
storage:
  type: s3
  s3_bucket: criteria
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 800, cfg.Simplify.MaxChunkTokens)
	assert.Equal(t, []float64{0.9, 0.3}, cfg.Simplify.Temperatures)
	assert.Equal(t, "s3", cfg.Storage.Type)
	assert.Equal(t, "criteria", cfg.Storage.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.Storage.S3Region)
}

func TestLoad_envOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simplify:\n  max_input_words: 100\n"), 0600))

	t.Setenv("MAX_INPUT_WORDS", "4000")
	t.Setenv("MAX_CHUNK_TOKENS", "600")
	t.Setenv("STORAGE_TYPE", "postgres")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Simplify.MaxInputWords)
	assert.Equal(t, 600, cfg.Simplify.MaxChunkTokens)
	assert.Equal(t, "postgres", cfg.Storage.Type)
}

func TestLoad_invalidEnvNumber(t *testing.T) {
	t.Setenv("MAX_CHUNKS", "many")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_CHUNKS")
}

func TestLoad_invalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0600))

	_, err := Load(path)
	require.Error(t, err)
}
