package rampcheck

import (
	"strings"
	"testing"
)

func TestBuildValidationNotesFullReport(t *testing.T) {
	table := syntheticRampTable(t, 600, 5)
	report := Validate(table, Options{})

	notes := BuildValidationNotes(report)

	if !strings.Contains(notes, "VALID - safe to analyze") {
		t.Fatalf("notes should lead with the verdict, got:\n%s", notes)
	}
	if !strings.Contains(notes, "High") {
		t.Fatalf("notes should include the quality label, got:\n%s", notes)
	}
	for _, label := range []string{"Test duration", "Number of test steps", "Monotonic power progression"} {
		if !strings.Contains(notes, label) {
			t.Fatalf("notes missing criterion %q:\n%s", label, notes)
		}
	}
}

func TestBuildValidationNotesHandlesUnavailableDetails(t *testing.T) {
	table := columnTable("time", rampArray(0, 599, 600))
	report := Validate(table, Options{})

	notes := BuildValidationNotes(report)

	if !strings.Contains(notes, "power column not found") {
		t.Fatalf("notes should render error-only details, got:\n%s", notes)
	}
	if !strings.Contains(notes, "no cadence data") {
		t.Fatalf("notes should render note-only details, got:\n%s", notes)
	}
	if !strings.Contains(notes, "Recommendations") {
		t.Fatalf("notes should list recommendations, got:\n%s", notes)
	}
	if !strings.Contains(notes, "[FAIL]") {
		t.Fatalf("failed criteria should be marked, got:\n%s", notes)
	}
}

func TestBuildValidationNotesNilReport(t *testing.T) {
	if got := BuildValidationNotes(nil); got != "" {
		t.Fatalf("nil report should produce empty notes, got %q", got)
	}
}
