package rampcheck

import (
	"fmt"
	"sort"
	"strings"
)

// BuildValidationNotes turns a validity report into a readable quality
// summary suitable for terminals and plain-text artifacts.
func BuildValidationNotes(r *ValidityReport) string {
	if r == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Data quality: %s (score %.1f/100, %s)\n", statusHeadline(r.Status), r.QualityScore, r.QualityLabel())

	b.WriteString("\nCriteria\n")
	for _, name := range sortedCriteriaNames(r) {
		passed := r.Criteria[name]
		detail, hasDetail := r.CriteriaDetails[name]

		mark := "PASS"
		if !passed {
			mark = "FAIL"
		}
		label := name
		if bounds, ok := validationCriteria[name]; ok {
			label = bounds.Description
		}

		switch {
		case hasDetail && detail.Measured():
			fmt.Fprintf(&b, "- [%s] %s: %s (expected %s)\n", mark, label, detail.ValueDisplay, detail.Expected)
		case hasDetail && detail.Note != "":
			fmt.Fprintf(&b, "- [%s] %s: %s\n", mark, label, detail.Note)
		case hasDetail && detail.Error != "":
			fmt.Fprintf(&b, "- [%s] %s: %s\n", mark, label, detail.Error)
		default:
			fmt.Fprintf(&b, "- [%s] %s\n", mark, label)
		}
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\nRecommendations\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\nWarnings\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return strings.TrimSpace(b.String())
}

func statusHeadline(s Status) string {
	switch s {
	case StatusValid:
		return "VALID - safe to analyze"
	case StatusConditional:
		return "CONDITIONAL - analyze with reduced confidence"
	case StatusInvalid:
		return "INVALID - do not analyze"
	default:
		return string(s)
	}
}

// sortedCriteriaNames keeps the breakdown in a stable reading order, fixed
// criteria first.
func sortedCriteriaNames(r *ValidityReport) []string {
	order := []string{
		CriterionDuration,
		CriterionStepsCount,
		CriterionMonotonicity,
		CriterionDataGaps,
		CriterionCadence,
		CriterionPowerStability,
	}
	known := make(map[string]bool, len(order))
	names := make([]string, 0, len(r.Criteria))
	for _, name := range order {
		known[name] = true
		if _, ok := r.Criteria[name]; ok {
			names = append(names, name)
		}
	}
	extras := make([]string, 0)
	for name := range r.Criteria {
		if !known[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return append(names, extras...)
}
