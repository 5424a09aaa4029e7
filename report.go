package rampcheck

// Status is the tri-state validity verdict for one ramp test recording.
type Status string

const (
	// StatusValid means the recording is trustworthy for threshold analysis.
	StatusValid Status = "valid"
	// StatusConditional means analysis may proceed with reduced confidence.
	StatusConditional Status = "conditional"
	// StatusInvalid means the recording should not be analyzed.
	StatusInvalid Status = "invalid"
)

// Step is one detected power plateau. End is exclusive; Duration is in
// samples (seconds at the nominal 1 Hz).
type Step struct {
	Start    int     `json:"start"`
	End      int     `json:"end"`
	Duration int     `json:"duration"`
	AvgPower float64 `json:"avg_power"`
}

// CriterionDetail describes one evaluated criterion. A measured detail
// carries Value, ValueDisplay and Expected; a criterion that could not be
// evaluated carries Note (benign absence) or Error (blocking absence)
// instead of ValueDisplay.
type CriterionDetail struct {
	Value        float64 `json:"value"`
	ValueDisplay string  `json:"value_display,omitempty"`
	Expected     string  `json:"expected,omitempty"`
	Note         string  `json:"note,omitempty"`
	Error        string  `json:"error,omitempty"`
	Steps        []Step  `json:"steps,omitempty"`
}

func measuredDetail(value float64, display, expected string) CriterionDetail {
	return CriterionDetail{Value: value, ValueDisplay: display, Expected: expected}
}

func unavailableDetail(note string) CriterionDetail {
	return CriterionDetail{Note: note}
}

func errorDetail(reason string) CriterionDetail {
	return CriterionDetail{Error: reason}
}

// Measured reports whether the criterion was actually evaluated against
// data, as opposed to defaulting because a column was absent.
func (d CriterionDetail) Measured() bool {
	return d.Note == "" && d.Error == ""
}

// ValidityReport is the structured verdict for one validation call. It is a
// value object: callers must treat it as immutable once returned.
type ValidityReport struct {
	Status          Status                     `json:"status"`
	Criteria        map[string]bool            `json:"criteria"`
	CriteriaDetails map[string]CriterionDetail `json:"criteria_details"`
	QualityScore    float64                    `json:"quality_score"`
	Recommendations []string                   `json:"recommendations"`
	Warnings        []string                   `json:"warnings"`
}

// IsValid reports whether the status is StatusValid.
func (r *ValidityReport) IsValid() bool {
	return r != nil && r.Status == StatusValid
}

// HasWarnings reports whether any cautionary messages were emitted.
func (r *ValidityReport) HasWarnings() bool {
	return r != nil && len(r.Warnings) > 0
}

// QualityLabel maps the quality score onto a coarse tier.
func (r *ValidityReport) QualityLabel() string {
	switch {
	case r == nil || r.QualityScore < 50:
		return "Low"
	case r.QualityScore < 80:
		return "Medium"
	default:
		return "High"
	}
}
