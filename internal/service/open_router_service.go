package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/stress-manometer/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type OpenRouterService struct {
	APIKey string
	Model  string
	URL    string
	client *resty.Client
}

func NewOpenRouterService(cfg *config.OpenRouterConfig) *OpenRouterService {
	return &OpenRouterService{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		URL:    cfg.URL,
		client: resty.New().SetTimeout(90 * time.Second),
	}
}

func (s *OpenRouterService) Name() string {
	return config.ProviderOpenRouter
}

// Complete posts one chat completion and returns the assistant message.
func (s *OpenRouterService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": "You are an expert education data analyst. Reply with JSON only."},
				{"role": "user", "content": prompt},
			},
			"response_format": map[string]string{"type": "json_object"},
		}).
		Post(s.URL)
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("openrouter returned %s: %s", resp.Status(), gjson.Get(resp.String(), "error.message").String())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}
