package config

import (
	"log"
	"os"
	"sync"
	"time"
)

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	UploadMaxMB int
	DatasetTTL  time.Duration
	ProfilePath string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		name := os.Getenv("APP_NAME")
		if name == "" {
			name = "Stress Manometer Report Generator"
		}
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = ":8080"
		}
		appConfig = &AppConfig{
			Name:        name,
			Env:         env,
			Port:        port,
			UploadMaxMB: getEnvInt("UPLOAD_MAX_MB", 10),
			DatasetTTL:  getEnvDuration("DATASET_TTL", time.Hour),
			ProfilePath: os.Getenv("REPORT_PROFILE"),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
