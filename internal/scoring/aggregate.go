package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fadilmartias/stress-manometer/internal/model"
)

var ErrNoSchoolData = errors.New("no data for school")

// Question positions (0-based within the 20 answers) behind the three
// indicator rates.
const (
	AnxietyQuestion        = 0
	ParentPressureQuestion = 4
	SupportQuestion        = 18
)

// FilterSchool keeps the rows whose school matches name exactly, ignoring
// surrounding whitespace.
func FilterSchool(rows []model.ScoredResponse, name string) []model.ScoredResponse {
	name = strings.TrimSpace(name)
	var out []model.ScoredResponse
	for _, r := range rows {
		if strings.TrimSpace(r.School) == name {
			out = append(out, r)
		}
	}
	return out
}

// Aggregate reduces the scored rows of one school into category counts,
// percentages and indicator rates.
func Aggregate(school string, rows []model.ScoredResponse) (*model.SchoolAggregate, error) {
	total := len(rows)
	if total == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSchoolData, school)
	}

	agg := &model.SchoolAggregate{School: school, Count: total}
	var anxiety, pressure, support int
	for _, r := range rows {
		if i := r.Category.Index(); i >= 0 {
			agg.Counts[i]++
		}
		if isFrequent(r.Answers[AnxietyQuestion]) {
			anxiety++
		}
		if isFrequent(r.Answers[ParentPressureQuestion]) {
			pressure++
		}
		if isFrequent(r.Answers[SupportQuestion]) {
			support++
		}
	}

	agg.Percentages = categoryPercentages(agg.Counts, total)
	agg.AnxietyPct = percent(anxiety, total)
	agg.ParentPressurePct = percent(pressure, total)
	agg.SupportPct = percent(support, total)
	return agg, nil
}

func isFrequent(answer string) bool {
	switch Normalize(answer) {
	case "Often", "Always":
		return true
	}
	return false
}

func percent(n, total int) float64 {
	return math.Round(float64(n)/float64(total)*1000) / 10
}

// categoryPercentages rounds each share to one decimal on its own. When the
// rounded values drift more than a tenth from 100, as with 1/1/1/1/17 of 21,
// they are apportioned instead.
func categoryPercentages(counts [5]int, total int) [5]float64 {
	var pct [5]float64
	sum := 0
	for i, c := range counts {
		tenths := (c*2000 + total) / (2 * total)
		pct[i] = float64(tenths) / 10
		sum += tenths
	}
	if sum < 999 || sum > 1001 {
		return apportion(counts, total)
	}
	return pct
}

// apportion converts counts into one-decimal percentages that sum to exactly
// 100.0. Every value is its exact share rounded down to a tenth; the tenths
// left over go to the largest remainders, earlier categories first on ties.
func apportion(counts [5]int, total int) [5]float64 {
	var tenths [5]int
	var rem [5]int
	assigned := 0
	for i, c := range counts {
		tenths[i] = c * 1000 / total
		rem[i] = c * 1000 % total
		assigned += tenths[i]
	}

	order := []int{0, 1, 2, 3, 4}
	sort.SliceStable(order, func(a, b int) bool { return rem[order[a]] > rem[order[b]] })
	for k := 0; k < 1000-assigned; k++ {
		tenths[order[k]]++
	}

	var pct [5]float64
	for i, t := range tenths {
		pct[i] = float64(t) / 10
	}
	return pct
}
