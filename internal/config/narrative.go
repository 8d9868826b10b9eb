package config

import (
	"strings"
	"sync"
	"time"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderNone       = "none"
)

type NarrativeConfig struct {
	Provider string
	Timeout  time.Duration
}

var (
	narrativeConfig *NarrativeConfig
	narrativeOnce   sync.Once
)

func LoadNarrativeConfig() *NarrativeConfig {
	narrativeOnce.Do(func() {
		narrativeConfig = &NarrativeConfig{
			Provider: strings.ToLower(getEnvDefault("NARRATIVE_PROVIDER", ProviderGemini)),
			Timeout:  getEnvDuration("NARRATIVE_TIMEOUT", 90*time.Second),
		}
	})
	return narrativeConfig
}
