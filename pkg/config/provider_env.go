package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ProviderEnvMapping maps provider config keys to environment variable names
// This is the single source of truth for how config keys map to env vars
var ProviderEnvMapping = map[string]map[string]string{
	"openai": {
		"api_key":      "OPENAI_API_KEY",
		"base_url":     "OPENAI_BASE_URL",
		"organization": "OPENAI_ORG_ID",
	},
}

// Environment variables for non-provider settings.
const (
	EnvAssistantID    = "ASSISTANT_ID"
	EnvInstructions   = "ASSISTANT_INSTRUCTIONS"
	EnvThreadFallback = "ASSISTANT_THREAD_FALLBACK"
	EnvPort           = "CHATGE_PORT"
	EnvRenderMode     = "CHATGE_RENDER_MODE"
	EnvPollInterval   = "CHATGE_POLL_INTERVAL"
	EnvPollAttempts   = "CHATGE_POLL_ATTEMPTS"
	EnvShowErrorTurns = "CHATGE_SHOW_ERRORS"
	EnvLogLevel       = "CHATGE_LOG_LEVEL"
	EnvServerURL      = "CHATGE_SERVER_URL"
)

// ApplyEnv overlays environment variables onto cfg. Set variables win over the file.
// Malformed numeric or duration values are ignored.
func ApplyEnv(cfg *AppConfig) {
	for providerName, mapping := range ProviderEnvMapping {
		for cfgKey, envKey := range mapping {
			if v := env(envKey); v != "" {
				if cfg.Providers == nil {
					cfg.Providers = make(map[string]ProviderConfig)
				}
				if cfg.Providers[providerName] == nil {
					cfg.Providers[providerName] = make(ProviderConfig)
				}
				cfg.Providers[providerName][cfgKey] = v
			}
		}
	}

	if v := env(EnvAssistantID); v != "" {
		cfg.Assistant.ID = v
	}
	if v := env(EnvInstructions); v != "" {
		cfg.Assistant.Instructions = v
	}
	if v := env(EnvThreadFallback); v != "" {
		cfg.Assistant.ThreadFallback = v
	}
	if v := env(EnvRenderMode); v != "" {
		cfg.General.RenderMode = strings.ToLower(v)
	}
	if v := env(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.General.Port = port
		}
	}
	if v := env(EnvPollInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Assistant.PollInterval = d
		}
	}
	if v := env(EnvPollAttempts); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Assistant.MaxAttempts = n
		}
	}
	if v := env(EnvShowErrorTurns); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.General.ShowErrorTurns = b
		}
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
