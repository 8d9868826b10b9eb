// Package report fills the fixed HTML report template.
package report

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/fadilmartias/stress-manometer/internal/config"
	"github.com/fadilmartias/stress-manometer/internal/model"
)

var ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

var placeholderPattern = regexp.MustCompile(`\[[A-Z][A-Z0-9_]*\]`)

// Placeholders returns the distinct tokens of a template in first-seen order.
func Placeholders(template string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, tok := range placeholderPattern.FindAllString(template, -1) {
		if !seen[tok] {
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Assemble replaces every occurrence of every token in one pass, so text
// inserted for one token is never rescanned for another. It refuses to emit
// a document when the template holds a token with no replacement.
func Assemble(template string, replacements map[string]string) (string, error) {
	var missing []string
	for _, tok := range Placeholders(template) {
		if _, ok := replacements[tok]; !ok {
			missing = append(missing, tok)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrUnresolvedPlaceholder, strings.Join(missing, ", "))
	}

	pairs := make([]string, 0, len(replacements)*2)
	for tok, val := range replacements {
		pairs = append(pairs, tok, val)
	}
	return strings.NewReplacer(pairs...).Replace(template), nil
}

// Input carries everything a report needs besides the template.
type Input struct {
	School    string
	LogoURI   string
	ChartURI  string
	Aggregate *model.SchoolAggregate
	Narrative model.Narrative
	Profile   config.ReportProfile
}

var bracketEscaper = strings.NewReplacer("[", "&#91;")

// escapeText HTML-escapes free text and encodes '[' so the output never
// contains something that reads as a template token.
func escapeText(s string) string {
	return bracketEscaper.Replace(html.EscapeString(s))
}

// BuildReplacements maps template tokens to their values. Free text is
// escaped; data URIs and the scoring table are inserted as-is.
func BuildReplacements(in Input) map[string]string {
	agg := in.Aggregate
	esc := escapeText
	bench := in.Profile.Benchmarks

	return map[string]string{
		"[SCHOOL_NAME]":     esc(in.School),
		"[SCHOOL_LOGO_URL]": in.LogoURI,
		"[ORG_NAME]":        esc(in.Profile.Organization),
		"[ORG_TEAM]":        esc(in.Profile.Team),
		"[ORG_WEBSITE]":     esc(in.Profile.Website),
		"[PUBLISHED_YEAR]":  strconv.Itoa(in.Profile.PublishedYear),
		"[MODE]":            esc(in.Profile.Mode),
		"[COUNT]":           strconv.Itoa(agg.Count),
		"[SCORING_TABLE]":   ScoringTable,

		"[DYNAMIC_CHART_IMAGE]": in.ChartURI,

		"[EXEC_SUMMARY_P1]":          esc(in.Narrative.P1),
		"[EXEC_SUMMARY_P2]":          esc(in.Narrative.P2),
		"[EXEC_SUMMARY_KEY_FINDING]": esc(in.Narrative.KeyFinding),
		"[EXEC_SUMMARY_CONCLUSION]":  esc(in.Narrative.Conclusion),
		"[INSERT_KEY_QUOTE]":         esc(in.Narrative.Quote),
		"[INSIGHT_STRENGTHS]":        esc(in.Narrative.Strengths),
		"[INSIGHT_WEAKNESS]":         esc(in.Narrative.Weaknesses),

		"[VAL_BALANCED]": strconv.Itoa(agg.CountOf(model.CategoryBalanced)),
		"[VAL_MILD]":     strconv.Itoa(agg.CountOf(model.CategoryMild)),
		"[VAL_MOD]":      strconv.Itoa(agg.CountOf(model.CategoryModerate)),
		"[VAL_HIGH]":     strconv.Itoa(agg.CountOf(model.CategoryHigh)),
		"[VAL_SEVERE]":   strconv.Itoa(agg.CountOf(model.CategorySevere)),
		"[VAL_TOTAL]":    strconv.Itoa(agg.Count),

		"[PCT_BALANCED]": pct(agg.PctOf(model.CategoryBalanced)),
		"[PCT_MILD]":     pct(agg.PctOf(model.CategoryMild)),
		"[PCT_MOD]":      pct(agg.PctOf(model.CategoryModerate)),
		"[PCT_HIGH]":     pct(agg.PctOf(model.CategoryHigh)),
		"[PCT_SEVERE]":   pct(agg.PctOf(model.CategorySevere)),

		"[PCT_ANXIETY]":         pct(agg.AnxietyPct),
		"[PCT_PARENT_PRESSURE]": pct(agg.ParentPressurePct),
		"[PCT_SUPPORT]":         pct(agg.SupportPct),
		"[NAT_ANXIETY]":         benchmark(bench.Anxiety),
		"[NAT_PARENT_PRESSURE]": benchmark(bench.ParentPressure),
		"[NAT_SUPPORT]":         benchmark(bench.Support),
	}
}

// Render builds the replacements for in and assembles the report template.
func Render(in Input) (string, error) {
	if in.Aggregate == nil {
		return "", errors.New("report input has no aggregate")
	}
	return Assemble(Template, BuildReplacements(in))
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// benchmark prints whole numbers without a decimal, as they are published.
func benchmark(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filename derives the download name of a school's report.
func Filename(school, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return -1
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, strings.TrimSpace(school))
	if name == "" {
		name = "School"
	}
	return name + "_Report." + ext
}
