// Package config provides configuration loading for the app launcher server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	LLM      LLMConfig      `yaml:"llm"`
	Simplify SimplifyConfig `yaml:"simplify"`
	Storage  StorageConfig  `yaml:"storage"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// LLMConfig holds settings for the chat completion backend.
type LLMConfig struct {
	Provider       string `yaml:"provider"` // openai or gemini
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	GeminiAPIKey   string `yaml:"gemini_api_key"`
	DefaultModel   string `yaml:"default_model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
	MaxConcurrency int    `yaml:"max_concurrency"`
}

// SimplifyConfig holds the limits of the text simplifier.
type SimplifyConfig struct {
	MaxInputWords            int       `yaml:"max_input_words"`
	MaxTextLength            int       `yaml:"max_text_length"`
	MaxChunkTokens           int       `yaml:"max_chunk_tokens"`
	MinChunkTokens           int       `yaml:"min_chunk_tokens"`
	MaxChunks                int       `yaml:"max_chunks"`
	MaxPreservedWords        int       `yaml:"max_preserved_words"`
	MaxPreservedWordLength   int       `yaml:"max_preserved_word_length"`
	Temperatures             []float64 `yaml:"temperatures"`
	GenerationTimeoutSeconds int       `yaml:"generation_timeout_seconds"`
}

// StorageConfig selects the criteria store backend.
type StorageConfig struct {
	Type        string `yaml:"type"` // local, s3 or postgres
	LocalPath   string `yaml:"local_path"`
	S3Bucket    string `yaml:"s3_bucket"`
	S3Region    string `yaml:"s3_region"`
	S3Prefix    string `yaml:"s3_prefix"`
	S3Endpoint  string `yaml:"s3_endpoint"` // S3-compatible stores such as MinIO
	DatabaseURL string `yaml:"database_url"`
}

// Load reads the YAML file at path, applies environment overrides and defaults.
// A missing file is not an error; an empty path skips the file entirely.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// ApplyEnv overrides cfg with any of the supported environment variables that are set.
func ApplyEnv(cfg *Config) error {
	var errs []error

	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = n
	}

	if v, ok := os.LookupEnv("DEBUG"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("DEBUG: %w", err))
		} else {
			cfg.Debug = b
		}
	}

	setString("PORT", &cfg.Server.Port)

	setString("LLM_PROVIDER", &cfg.LLM.Provider)
	setString("LLM_BASE_URL", &cfg.LLM.BaseURL)
	setString("LLM_API_KEY", &cfg.LLM.APIKey)
	setString("GEMINI_API_KEY", &cfg.LLM.GeminiAPIKey)
	setString("DEFAULT_MODEL", &cfg.LLM.DefaultModel)
	setInt("LLM_TIMEOUT_SECONDS", &cfg.LLM.TimeoutSeconds)
	setInt("LLM_MAX_RETRIES", &cfg.LLM.MaxRetries)
	setInt("LLM_MAX_CONCURRENCY", &cfg.LLM.MaxConcurrency)

	setInt("MAX_INPUT_WORDS", &cfg.Simplify.MaxInputWords)
	setInt("MAX_TEXT_LENGTH", &cfg.Simplify.MaxTextLength)
	setInt("MAX_CHUNK_TOKENS", &cfg.Simplify.MaxChunkTokens)
	setInt("MIN_CHUNK_TOKENS", &cfg.Simplify.MinChunkTokens)
	setInt("MAX_CHUNKS", &cfg.Simplify.MaxChunks)
	setInt("MAX_PRESERVED_WORDS", &cfg.Simplify.MaxPreservedWords)
	setInt("MAX_PRESERVED_WORD_LENGTH", &cfg.Simplify.MaxPreservedWordLength)
	setInt("GENERATION_TIMEOUT_SECONDS", &cfg.Simplify.GenerationTimeoutSeconds)

	setString("STORAGE_TYPE", &cfg.Storage.Type)
	setString("STORAGE_LOCAL_PATH", &cfg.Storage.LocalPath)
	setString("AWS_S3_BUCKET", &cfg.Storage.S3Bucket)
	setString("AWS_REGION", &cfg.Storage.S3Region)
	setString("S3_PREFIX", &cfg.Storage.S3Prefix)
	setString("S3_ENDPOINT", &cfg.Storage.S3Endpoint)
	setString("DATABASE_URL", &cfg.Storage.DatabaseURL)

	return errors.Join(errs...)
}
