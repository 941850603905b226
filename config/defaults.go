package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "http://localhost:8080/api"
	}
	if cfg.LLM.DefaultModel == "" {
		cfg.LLM.DefaultModel = "openai/gpt-4o"
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = 120
	}
	if cfg.LLM.MaxRetries == 0 {
		cfg.LLM.MaxRetries = 3
	}
	if cfg.LLM.MaxConcurrency == 0 {
		cfg.LLM.MaxConcurrency = 8
	}

	if cfg.Simplify.MaxInputWords == 0 {
		cfg.Simplify.MaxInputWords = 2500
	}
	if cfg.Simplify.MaxTextLength == 0 {
		cfg.Simplify.MaxTextLength = 15000
	}
	if cfg.Simplify.MaxChunkTokens == 0 {
		cfg.Simplify.MaxChunkTokens = 1200
	}
	if cfg.Simplify.MinChunkTokens == 0 {
		cfg.Simplify.MinChunkTokens = 30
	}
	if cfg.Simplify.MaxChunks == 0 {
		cfg.Simplify.MaxChunks = 30
	}
	if cfg.Simplify.MaxPreservedWords == 0 {
		cfg.Simplify.MaxPreservedWords = 100
	}
	if cfg.Simplify.MaxPreservedWordLength == 0 {
		cfg.Simplify.MaxPreservedWordLength = 50
	}
	if len(cfg.Simplify.Temperatures) == 0 {
		cfg.Simplify.Temperatures = []float64{1.0, 0.8, 0.6}
	}
	if cfg.Simplify.GenerationTimeoutSeconds == 0 {
		cfg.Simplify.GenerationTimeoutSeconds = 60
	}

	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = "./data/subsidies"
	}
	if cfg.Storage.S3Region == "" {
		cfg.Storage.S3Region = "us-east-1"
	}
}
