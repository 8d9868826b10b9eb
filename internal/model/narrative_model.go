package model

type NarrativeSource string

const (
	NarrativeFromLLM  NarrativeSource = "llm"
	NarrativeDisabled NarrativeSource = "disabled"
	NarrativeFailed   NarrativeSource = "failed"
)

// Narrative holds the prose sections written into the report.
type Narrative struct {
	P1         string          `json:"p1"`
	P2         string          `json:"p2"`
	KeyFinding string          `json:"key_finding"`
	Conclusion string          `json:"conclusion"`
	Quote      string          `json:"quote"`
	Strengths  string          `json:"strengths"`
	Weaknesses string          `json:"weaknesses"`
	Source     NarrativeSource `json:"-"`
}
