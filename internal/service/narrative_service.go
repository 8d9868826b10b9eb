package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fadilmartias/stress-manometer/internal/config"
	"github.com/fadilmartias/stress-manometer/internal/model"
	"github.com/tidwall/gjson"
)

// NarrativeProvider is an LLM backend returning raw completion text.
type NarrativeProvider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// NarrativeGenerator writes the prose sections of a report. It never fails:
// callers always receive a usable narrative.
type NarrativeGenerator interface {
	Generate(ctx context.Context, school string, agg *model.SchoolAggregate) model.Narrative
}

var ErrInvalidNarrative = errors.New("invalid narrative response")

type NarrativeService struct {
	provider   NarrativeProvider
	benchmarks config.Benchmarks
	timeout    time.Duration
}

// NewNarrativeService builds a generator over provider. A nil provider means
// narrative generation is disabled.
func NewNarrativeService(provider NarrativeProvider, benchmarks config.Benchmarks, timeout time.Duration) *NarrativeService {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &NarrativeService{provider: provider, benchmarks: benchmarks, timeout: timeout}
}

func (s *NarrativeService) Generate(ctx context.Context, school string, agg *model.SchoolAggregate) model.Narrative {
	if s.provider == nil {
		return DisabledNarrative(agg)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.provider.Complete(ctx, BuildNarrativePrompt(school, agg, s.benchmarks))
	if err != nil {
		log.Printf("Narrative via %s failed for %q: %v", s.provider.Name(), school, err)
		return FailedNarrative()
	}
	narrative, err := ParseNarrative(text)
	if err != nil {
		log.Printf("Narrative via %s unusable for %q: %v", s.provider.Name(), school, err)
		return FailedNarrative()
	}
	log.Printf("Narrative via %s generated for %q in %v", s.provider.Name(), school, time.Since(start))
	return narrative
}

// BuildNarrativePrompt states the school's figures and asks for the seven
// narrative fields as a JSON object.
func BuildNarrativePrompt(school string, agg *model.SchoolAggregate, bench config.Benchmarks) string {
	return fmt.Sprintf(`
ROLE: You are an Expert Education Data Analyst with a calm, professional, and clinical demeanor. You transform complex data into clear, narrative-driven insights grounded in evidence, with a deep understanding of student psychology and of stress around academic assessments. Your tone is polite, empathetic yet authoritative.

CRITICAL INSTRUCTION: Weave the statistics below directly into the narrative. Do not simply list numbers; integrate them into sentences, and explicitly compare school data against the National (Nat) averages where provided.

TASK: Write an analytical report section for School: %q.

DATA:
- Total Students: %d
- Balanced: %.1f%%
- Mild: %.1f%%
- Moderate: %.1f%%
- High: %.1f%%
- Severe: %.1f%%
- Anxiety: %.1f%% (Nat: %g%%)
- Pressure: %.1f%% (Nat: %g%%)
- Support: %.1f%% (Nat: %g%%)

OUTPUT FORMAT (JSON object with exactly these string keys):
{
  "p1": "Executive Summary P1 (40-60 words). State the school name, total students assessed, and summarize the category distribution. Contrast the Balanced percentage against the High and Severe percentages.",
  "p2": "Executive Summary P2 (50-70 words). Compare Anxiety and Pressure to their National averages, then Support to its benchmark, framed as a foundation for interventions.",
  "key_finding": "Headline summarizing the primary emotional concern (max 10 words).",
  "conclusion": "Conclusion (40-50 words). An actionable takeaway calling for focused, holistic well-being strategies.",
  "quote": "A positive, motivational quote relevant to student well-being.",
  "strengths": "Insight on strengths such as support levels (max 40 words).",
  "weaknesses": "Insight on points of intervention (max 40 words)."
}
`,
		school,
		agg.Count,
		agg.PctOf(model.CategoryBalanced),
		agg.PctOf(model.CategoryMild),
		agg.PctOf(model.CategoryModerate),
		agg.PctOf(model.CategoryHigh),
		agg.PctOf(model.CategorySevere),
		agg.AnxietyPct, bench.Anxiety,
		agg.ParentPressurePct, bench.ParentPressure,
		agg.SupportPct, bench.Support,
	)
}

var narrativeKeys = []string{"p1", "p2", "key_finding", "conclusion", "quote", "strengths", "weaknesses"}

// ParseNarrative extracts the seven fields from an LLM reply. Markdown code
// fences around the JSON are tolerated; a missing or non-string field is not.
func ParseNarrative(text string) (model.Narrative, error) {
	text = stripCodeFence(text)
	if !gjson.Valid(text) {
		return model.Narrative{}, fmt.Errorf("%w: not valid JSON", ErrInvalidNarrative)
	}

	fields := gjson.GetMany(text, narrativeKeys...)
	for i, f := range fields {
		if f.Type != gjson.String {
			return model.Narrative{}, fmt.Errorf("%w: field %q missing or not a string", ErrInvalidNarrative, narrativeKeys[i])
		}
	}
	return model.Narrative{
		P1:         fields[0].String(),
		P2:         fields[1].String(),
		KeyFinding: fields[2].String(),
		Conclusion: fields[3].String(),
		Quote:      fields[4].String(),
		Strengths:  fields[5].String(),
		Weaknesses: fields[6].String(),
		Source:     model.NarrativeFromLLM,
	}, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// DisabledNarrative is used when no LLM is configured.
func DisabledNarrative(agg *model.SchoolAggregate) model.Narrative {
	return model.Narrative{
		P1:         "The students exhibited a diverse range of emotional responses.",
		P2:         "Detailed analysis suggests that while some students possess robust coping mechanisms, a notable segment requires targeted intervention.",
		KeyFinding: "Moderate Correlation between Preparation and Panic.",
		Conclusion: "Implementing structured mentorship programs is recommended.",
		Quote:      "Success is not final, failure is not fatal: it is the courage to continue that counts.",
		Strengths:  fmt.Sprintf("Support Accessibility score of %.1f%% indicates positive interaction.", agg.SupportPct),
		Weaknesses: fmt.Sprintf("Exam anxiety is recorded at %.1f%%.", agg.AnxietyPct),
		Source:     model.NarrativeDisabled,
	}
}

// FailedNarrative is used when the LLM call or its reply was unusable.
func FailedNarrative() model.Narrative {
	return model.Narrative{
		P1:         "Analysis generation failed.",
		P2:         "Please check API Key.",
		KeyFinding: "Data Processing Complete",
		Conclusion: "Review numerical data below.",
		Quote:      "Data speaks for itself.",
		Strengths:  "N/A",
		Weaknesses: "N/A",
		Source:     model.NarrativeFailed,
	}
}

// NewNarrativeProvider picks the configured LLM backend. It returns nil when
// narrative generation is disabled or the selected backend has no API key.
func NewNarrativeProvider(ctx context.Context, cfg *config.NarrativeConfig, gemini *config.GeminiConfig, openRouter *config.OpenRouterConfig) (NarrativeProvider, error) {
	switch cfg.Provider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderOpenRouter:
		if openRouter.APIKey == "" {
			log.Println("Warning: OPENROUTER_API_KEY not set, narrative generation disabled")
			return nil, nil
		}
		return NewOpenRouterService(openRouter), nil
	case config.ProviderGemini, "":
		if gemini.APIKey == "" {
			log.Println("Warning: GEMINI_API_KEY not set, narrative generation disabled")
			return nil, nil
		}
		svc, err := NewGeminiService(ctx, gemini)
		if err != nil {
			return nil, err
		}
		svc.RequestTimeout = cfg.Timeout
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown narrative provider %q", cfg.Provider)
	}
}
