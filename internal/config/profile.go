package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Benchmarks are the national reference percentages the school's indicator
// rates are compared against.
type Benchmarks struct {
	Anxiety        float64 `yaml:"anxiety"`
	ParentPressure float64 `yaml:"parent_pressure"`
	Support        float64 `yaml:"support"`
}

// ReportProfile holds the branding printed on every report.
type ReportProfile struct {
	Organization  string     `yaml:"organization"`
	Team          string     `yaml:"team"`
	Website       string     `yaml:"website"`
	PublishedYear int        `yaml:"published_year"`
	Mode          string     `yaml:"mode"`
	Benchmarks    Benchmarks `yaml:"benchmarks"`
}

func DefaultReportProfile() ReportProfile {
	return ReportProfile{
		Organization:  "EDXSO",
		Team:          "EDXSO Research Team (New Delhi)",
		Website:       "www.edxso.com",
		PublishedYear: 2026,
		Mode:          "Online Survey",
		Benchmarks: Benchmarks{
			Anxiety:        81,
			ParentPressure: 66,
			Support:        28,
		},
	}
}

// LoadReportProfile reads a YAML profile and fills unset fields from the
// defaults. An empty path returns the defaults.
func LoadReportProfile(path string) (ReportProfile, error) {
	profile := DefaultReportProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("failed to read report profile: %w", err)
	}
	var loaded ReportProfile
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return profile, fmt.Errorf("failed to parse report profile %s: %w", path, err)
	}
	mergeProfile(&profile, loaded)
	return profile, nil
}

func mergeProfile(dst *ReportProfile, src ReportProfile) {
	if src.Organization != "" {
		dst.Organization = src.Organization
	}
	if src.Team != "" {
		dst.Team = src.Team
	}
	if src.Website != "" {
		dst.Website = src.Website
	}
	if src.PublishedYear != 0 {
		dst.PublishedYear = src.PublishedYear
	}
	if src.Mode != "" {
		dst.Mode = src.Mode
	}
	if src.Benchmarks.Anxiety != 0 {
		dst.Benchmarks.Anxiety = src.Benchmarks.Anxiety
	}
	if src.Benchmarks.ParentPressure != 0 {
		dst.Benchmarks.ParentPressure = src.Benchmarks.ParentPressure
	}
	if src.Benchmarks.Support != 0 {
		dst.Benchmarks.Support = src.Benchmarks.Support
	}
}
