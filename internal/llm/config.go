package llm

import (
	"os"
	"strconv"
)

// Config holds all configuration for the Gemini client. The API key and
// endpoint are consumed as plain strings; where they come from is the
// environment's concern.
type Config struct {
	APIKey       string
	Endpoint     string
	Model        string
	TimeoutMs    int // per-attempt request timeout
	MaxAttempts  int // total attempts, including the first
	RetryDelayMs int // fixed delay between retryable attempts
	LogCalls     bool
}

// Enabled reports whether summarization can be offered at all.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}

// DefaultConfig returns a Config with the stock Gemini endpoint and the
// fixed 3-attempt / 5-second retry policy.
func DefaultConfig() Config {
	return Config{
		Endpoint:     "https://generativelanguage.googleapis.com",
		Model:        "gemini-2.0-flash",
		TimeoutMs:    60000,
		MaxAttempts:  3,
		RetryDelayMs: 5000,
	}
}

// LoadConfig reads client configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	if v := os.Getenv("WORKLENS_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("WORKLENS_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("WORKLENS_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("WORKLENS_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxAttempts = n
		}
	}
	if v := os.Getenv("WORKLENS_LLM_RETRY_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RetryDelayMs = n
		}
	}
	if v := os.Getenv("WORKLENS_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
