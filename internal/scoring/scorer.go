// Package scoring turns raw survey answers into stress scores and per-school
// aggregates.
package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fadilmartias/stress-manometer/internal/model"
)

const (
	// ForwardQuestions is the number of leading questions scored on the
	// forward scale. The remaining ones are protective statements scored in
	// reverse.
	ForwardQuestions = 15

	neutralScore = 3

	MinScore = model.QuestionCount * 1
	MaxScore = model.QuestionCount * 5
)

var forwardScale = map[string]int{
	"Never":     1,
	"Rarely":    2,
	"Sometimes": 3,
	"Often":     4,
	"Always":    5,
}

var reverseScale = map[string]int{
	"Never":     5,
	"Rarely":    4,
	"Sometimes": 3,
	"Often":     2,
	"Always":    1,
}

// Normalize cleans a cell the way respondents' answers drift in practice:
// surrounding whitespace, non-breaking spaces and casing.
func Normalize(v string) string {
	s := strings.TrimSpace(v)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// lookup returns the scale value of an answer, and false when the answer was
// not recognised and the neutral score was used instead.
func lookup(answer string, scale map[string]int) (int, bool) {
	if v, ok := scale[Normalize(answer)]; ok {
		return v, true
	}
	return neutralScore, false
}

// ForwardValue scores an answer on the forward scale.
func ForwardValue(answer string) int {
	v, _ := lookup(answer, forwardScale)
	return v
}

// ReverseValue scores an answer on the reverse scale.
func ReverseValue(answer string) int {
	v, _ := lookup(answer, reverseScale)
	return v
}

// Categorize maps a total score onto its band. Each band is inclusive on its
// upper bound.
func Categorize(score int) model.Category {
	switch {
	case score <= 39:
		return model.CategoryBalanced
	case score <= 54:
		return model.CategoryMild
	case score <= 69:
		return model.CategoryModerate
	case score <= 84:
		return model.CategoryHigh
	default:
		return model.CategorySevere
	}
}

// Score computes the total score and category of one response. It never
// rejects a row: unknown answers count as neutral and are tallied in
// Defaulted.
func Score(resp model.SurveyResponse) model.ScoredResponse {
	total, defaulted := 0, 0
	for i, answer := range resp.Answers {
		scale := forwardScale
		if i >= ForwardQuestions {
			scale = reverseScale
		}
		v, ok := lookup(answer, scale)
		if !ok {
			defaulted++
		}
		total += v
	}
	return model.ScoredResponse{
		SurveyResponse: resp,
		TotalScore:     total,
		Category:       Categorize(total),
		Defaulted:      defaulted,
	}
}

func ScoreAll(responses []model.SurveyResponse) []model.ScoredResponse {
	scored := make([]model.ScoredResponse, len(responses))
	for i, r := range responses {
		scored[i] = Score(r)
	}
	return scored
}
