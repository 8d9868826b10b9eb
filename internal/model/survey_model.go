package model

// Category is one of the five stress bands a total score falls into.
type Category string

const (
	CategoryBalanced Category = "Balanced"
	CategoryMild     Category = "Mild"
	CategoryModerate Category = "Moderate"
	CategoryHigh     Category = "High"
	CategorySevere   Category = "Severe"
)

// Categories lists the bands from lowest to highest stress. Aggregate arrays
// are indexed in this order.
var Categories = [5]Category{
	CategoryBalanced,
	CategoryMild,
	CategoryModerate,
	CategoryHigh,
	CategorySevere,
}

// Index returns the position of c in Categories, or -1.
func (c Category) Index() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return -1
}

const QuestionCount = 20

// SurveyResponse is one anonymous row of the uploaded sheet.
type SurveyResponse struct {
	School  string
	Answers [QuestionCount]string
	Raw     []string
}

type ScoredResponse struct {
	SurveyResponse
	TotalScore int      `json:"total_score"`
	Category   Category `json:"category"`
	// Defaulted counts answers that were blank or unrecognised and scored as 3.
	Defaulted int `json:"defaulted"`
}
