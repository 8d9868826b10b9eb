package model

type SchoolAggregate struct {
	School      string     `json:"school"`
	Count       int        `json:"count"`
	Counts      [5]int     `json:"counts"`
	Percentages [5]float64 `json:"percentages"`

	AnxietyPct        float64 `json:"anxiety_pct"`
	ParentPressurePct float64 `json:"parent_pressure_pct"`
	SupportPct        float64 `json:"support_pct"`
}

func (a *SchoolAggregate) CountOf(c Category) int {
	if i := c.Index(); i >= 0 {
		return a.Counts[i]
	}
	return 0
}

func (a *SchoolAggregate) PctOf(c Category) float64 {
	if i := c.Index(); i >= 0 {
		return a.Percentages[i]
	}
	return 0
}
