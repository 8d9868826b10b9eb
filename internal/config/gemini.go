package config

import (
	"os"
	"sync"
)

type GeminiConfig struct {
	APIKey string
	Model  string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = &GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnvDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		}
	})
	return geminiConfig
}
