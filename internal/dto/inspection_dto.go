package dto

import "github.com/fadilmartias/stress-manometer/internal/model"

// PreviewQuestions is how many raw answers each inspected row shows.
const PreviewQuestions = 5

type ScoredRowDTO struct {
	Row        int            `json:"row"`
	School     string         `json:"school"`
	TotalScore int            `json:"total_score"`
	Category   model.Category `json:"category"`
	Defaulted  int            `json:"defaulted"`
	Answers    []string       `json:"answers"`
}

type InspectionDTO struct {
	Aggregate *model.SchoolAggregate `json:"aggregate"`
	Rows      []ScoredRowDTO         `json:"rows"`
}

// NewScoredRows converts rows[from:to] for display. Row numbers are 1-based
// positions within the school's rows. The window is clipped to rows.
func NewScoredRows(rows []model.ScoredResponse, from, to int) []ScoredRowDTO {
	to = min(max(to, 0), len(rows))
	from = min(max(from, 0), to)
	out := make([]ScoredRowDTO, 0, to-from)
	for i := from; i < to; i++ {
		r := rows[i]
		answers := make([]string, PreviewQuestions)
		copy(answers, r.Answers[:PreviewQuestions])
		out = append(out, ScoredRowDTO{
			Row:        i + 1,
			School:     r.School,
			TotalScore: r.TotalScore,
			Category:   r.Category,
			Defaulted:  r.Defaulted,
			Answers:    answers,
		})
	}
	return out
}
