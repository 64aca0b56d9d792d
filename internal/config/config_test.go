package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "HR Interviewer API", cfg.AppName)
	require.Equal(t, "1.1", cfg.AppVersion)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, "ollama", cfg.AIProvider)
	require.Equal(t, DefaultAIEndpoint, cfg.AIEndpoint)
	require.Equal(t, "gemma3:270m", cfg.AIModel)
	require.InDelta(t, 0.7, cfg.AITemperature, 0.0001)
	require.Equal(t, 180*time.Second, cfg.AITimeout)
	require.Equal(t, 10*1024*1024, cfg.UploadMaxBytes())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("INTERVIEWER_APP_PORT", ":9090")
	t.Setenv("INTERVIEWER_AI_PROVIDER", "OpenAI")
	t.Setenv("INTERVIEWER_AI_ENDPOINT", "http://localhost:11434/v1")
	t.Setenv("INTERVIEWER_AI_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, "openai", cfg.AIProvider)
	require.Equal(t, "http://localhost:11434/v1", cfg.AIEndpoint)
	require.Equal(t, 30*time.Second, cfg.AITimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown_provider":  {"INTERVIEWER_AI_PROVIDER": "bard"},
		"bad_timeout":       {"INTERVIEWER_AI_TIMEOUT": "soon"},
		"anthropic_no_key":  {"INTERVIEWER_AI_PROVIDER": "anthropic"},
		"endpoint_not_url":  {"INTERVIEWER_AI_ENDPOINT": "not a url"},
		"temperature_range": {"INTERVIEWER_AI_TEMPERATURE": "3.5"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for key, value := range env {
				t.Setenv(key, value)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadKeepsZeroTemperature(t *testing.T) {
	t.Setenv("INTERVIEWER_AI_TEMPERATURE", "0")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, float32(0), cfg.AITemperature)
}
