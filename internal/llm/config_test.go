package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled())
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Endpoint)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 5000, cfg.RetryDelayMs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("WORKLENS_LLM_ENDPOINT", "http://localhost:9999")
	t.Setenv("WORKLENS_LLM_MODEL", "gemini-test")
	t.Setenv("WORKLENS_LLM_TIMEOUT_MS", "1234")
	t.Setenv("WORKLENS_LLM_MAX_ATTEMPTS", "5")
	t.Setenv("WORKLENS_LLM_RETRY_DELAY_MS", "10")
	t.Setenv("WORKLENS_LLM_LOG_CALLS", "true")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled())
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.Endpoint)
	assert.Equal(t, "gemini-test", cfg.Model)
	assert.Equal(t, 1234, cfg.TimeoutMs)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 10, cfg.RetryDelayMs)
	assert.True(t, cfg.LogCalls)
}

func TestLoadConfig_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("WORKLENS_LLM_TIMEOUT_MS", "not-a-number")
	t.Setenv("WORKLENS_LLM_MAX_ATTEMPTS", "0")
	t.Setenv("WORKLENS_LLM_RETRY_DELAY_MS", "-1")

	cfg := LoadConfig()

	assert.Equal(t, DefaultConfig().TimeoutMs, cfg.TimeoutMs)
	assert.Equal(t, DefaultConfig().MaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, DefaultConfig().RetryDelayMs, cfg.RetryDelayMs)
}
