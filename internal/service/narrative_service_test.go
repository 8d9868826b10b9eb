package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/stress-manometer/internal/config"
	"github.com/fadilmartias/stress-manometer/internal/model"
	"github.com/tidwall/gjson"
)

const validNarrative = `{
  "p1": "Summary one.",
  "p2": "Summary two.",
  "key_finding": "Anxiety leads.",
  "conclusion": "Act now.",
  "quote": "Keep going.",
  "strengths": "Support is good.",
  "weaknesses": "Anxiety is high."
}`

type stubProvider struct {
	reply  string
	err    error
	prompt string
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Complete(_ context.Context, prompt string) (string, error) {
	p.prompt = prompt
	return p.reply, p.err
}

func sampleAggregate() *model.SchoolAggregate {
	return &model.SchoolAggregate{
		School:            "Green Valley",
		Count:             10,
		Counts:            [5]int{2, 2, 2, 2, 2},
		Percentages:       [5]float64{20, 20, 20, 20, 20},
		AnxietyPct:        50,
		ParentPressurePct: 40,
		SupportPct:        30,
	}
}

func TestParseNarrative(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", validNarrative, false},
		{"fenced", "```json\n" + validNarrative + "\n```", false},
		{"bare fence", "```\n" + validNarrative + "\n```", false},
		{"not json", "the model rambled", true},
		{"missing key", `{"p1":"a","p2":"b"}`, true},
		{"non string", strings.Replace(validNarrative, `"Keep going."`, `42`, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseNarrative(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidNarrative) {
					t.Fatalf("expected ErrInvalidNarrative, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.Quote != "Keep going." || n.KeyFinding != "Anxiety leads." {
				t.Errorf("fields not extracted: %+v", n)
			}
			if n.Source != model.NarrativeFromLLM {
				t.Errorf("source = %q", n.Source)
			}
		})
	}
}

func TestGenerateDisabled(t *testing.T) {
	svc := NewNarrativeService(nil, config.DefaultReportProfile().Benchmarks, 0)
	n := svc.Generate(context.Background(), "Green Valley", sampleAggregate())

	if n.Source != model.NarrativeDisabled {
		t.Fatalf("source = %q, want disabled", n.Source)
	}
	if !strings.Contains(n.Strengths, "30.0%") {
		t.Errorf("strengths should cite support rate: %q", n.Strengths)
	}
	if !strings.Contains(n.Weaknesses, "50.0%") {
		t.Errorf("weaknesses should cite anxiety rate: %q", n.Weaknesses)
	}
}

func TestGenerateProviderError(t *testing.T) {
	p := &stubProvider{err: errors.New("quota exceeded")}
	svc := NewNarrativeService(p, config.DefaultReportProfile().Benchmarks, time.Second)

	n := svc.Generate(context.Background(), "Green Valley", sampleAggregate())
	if n != FailedNarrative() {
		t.Fatalf("expected failure fallback, got %+v", n)
	}
}

func TestGenerateInvalidReply(t *testing.T) {
	p := &stubProvider{reply: "Sorry, I cannot help with that."}
	svc := NewNarrativeService(p, config.DefaultReportProfile().Benchmarks, time.Second)

	n := svc.Generate(context.Background(), "Green Valley", sampleAggregate())
	if n.Source != model.NarrativeFailed {
		t.Fatalf("source = %q, want failed", n.Source)
	}
}

func TestGenerateSuccessPromptCarriesFigures(t *testing.T) {
	p := &stubProvider{reply: validNarrative}
	svc := NewNarrativeService(p, config.DefaultReportProfile().Benchmarks, time.Second)

	n := svc.Generate(context.Background(), "Green Valley", sampleAggregate())
	if n.Source != model.NarrativeFromLLM {
		t.Fatalf("source = %q, want llm", n.Source)
	}
	for _, want := range []string{`"Green Valley"`, "Total Students: 10", "Anxiety: 50.0% (Nat: 81%)", "Support: 30.0% (Nat: 28%)"} {
		if !strings.Contains(p.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestOpenRouterComplete(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"{\"p1\":\"x\"}"}}]}`)
	}))
	defer srv.Close()

	svc := NewOpenRouterService(&config.OpenRouterConfig{APIKey: "secret", Model: "test/model", URL: srv.URL})
	text, err := svc.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != `{"p1":"x"}` {
		t.Errorf("text = %q", text)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gjson.Get(gotBody, "model").String() != "test/model" {
		t.Errorf("model not sent: %s", gotBody)
	}
	if gjson.Get(gotBody, "messages.1.content").String() != "hello" {
		t.Errorf("prompt not sent: %s", gotBody)
	}
}

func TestOpenRouterHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"bad key"}}`)
	}))
	defer srv.Close()

	svc := NewOpenRouterService(&config.OpenRouterConfig{APIKey: "x", Model: "m", URL: srv.URL})
	_, err := svc.Complete(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "bad key") {
		t.Fatalf("expected error carrying provider message, got %v", err)
	}
}

func TestNewNarrativeProvider(t *testing.T) {
	ctx := context.Background()
	gem := &config.GeminiConfig{}
	or := &config.OpenRouterConfig{APIKey: "k", Model: "m", URL: "http://localhost"}

	p, err := NewNarrativeProvider(ctx, &config.NarrativeConfig{Provider: config.ProviderNone}, gem, or)
	if err != nil || p != nil {
		t.Fatalf("none: got %v, %v", p, err)
	}
	p, err = NewNarrativeProvider(ctx, &config.NarrativeConfig{Provider: config.ProviderGemini}, gem, or)
	if err != nil || p != nil {
		t.Fatalf("gemini without key should disable: got %v, %v", p, err)
	}
	p, err = NewNarrativeProvider(ctx, &config.NarrativeConfig{Provider: config.ProviderOpenRouter}, gem, or)
	if err != nil || p == nil || p.Name() != config.ProviderOpenRouter {
		t.Fatalf("openrouter: got %v, %v", p, err)
	}
	if _, err := NewNarrativeProvider(ctx, &config.NarrativeConfig{Provider: "claude"}, gem, or); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
