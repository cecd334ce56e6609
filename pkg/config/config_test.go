package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	conf := LoadConfig(false)

	assert.Equal(t, "models/gemini-2.5-flash", conf.GeminiModel)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", conf.GeminiBaseURL)
	assert.Equal(t, 60*time.Second, conf.GeminiTimeout)
	assert.Equal(t, "5000", conf.HTTPPort)
	assert.Equal(t, "debug", conf.LogLevel)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "models/other")
	t.Setenv("GEMINI_TIMEOUT_SECONDS", "5")
	t.Setenv("HTTP_PORT", "8080")

	conf := LoadConfig(false)

	assert.Equal(t, "models/other", conf.GeminiModel)
	assert.Equal(t, 5*time.Second, conf.GeminiTimeout)
	assert.Equal(t, "8080", conf.HTTPPort)
}

func TestLoadConfigInvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("GEMINI_TIMEOUT_SECONDS", "soon")

	conf := LoadConfig(false)
	assert.Equal(t, 60*time.Second, conf.GeminiTimeout)
}
