package config

import (
	"os"
	"sync"
	"time"
)

type RendererConfig struct {
	// ChromePath overrides browser discovery when set.
	ChromePath string
	Timeout    time.Duration
}

var (
	rendererConfig *RendererConfig
	rendererOnce   sync.Once
)

func LoadRendererConfig() *RendererConfig {
	rendererOnce.Do(func() {
		rendererConfig = &RendererConfig{
			ChromePath: os.Getenv("CHROME_PATH"),
			Timeout:    getEnvDuration("RENDER_TIMEOUT", 90*time.Second),
		}
	})
	return rendererConfig
}
