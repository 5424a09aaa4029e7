package rampcheck

import (
	"fmt"
	"math"
)

// Criterion names. The set is fixed: every report carries exactly these six
// keys in its criteria map.
const (
	CriterionDuration       = "duration"
	CriterionStepsCount     = "steps_count"
	CriterionMonotonicity   = "monotonicity"
	CriterionDataGaps       = "data_gaps"
	CriterionCadence        = "cadence"
	CriterionPowerStability = "power_stability"
)

// CriterionBounds holds the acceptable range and scoring weight for one
// validation criterion.
type CriterionBounds struct {
	Min         float64
	Max         float64
	Weight      float64
	Description string
}

// validationCriteria is process-wide read-only configuration. Weights sum to
// 1.0 across the six criteria. Never mutate at runtime.
var validationCriteria = map[string]CriterionBounds{
	CriterionDuration:       {Min: 300, Max: 3600, Weight: 0.15, Description: "Test duration"},
	CriterionStepsCount:     {Min: 3, Max: 20, Weight: 0.20, Description: "Number of test steps"},
	CriterionMonotonicity:   {Min: 0.70, Max: 1.0, Weight: 0.25, Description: "Monotonic power progression"},
	CriterionDataGaps:       {Min: 0, Max: 5, Weight: 0.15, Description: "Largest gap in recorded data"},
	CriterionCadence:        {Min: 60, Max: 120, Weight: 0.10, Description: "Cadence within acceptable range"},
	CriterionPowerStability: {Min: 0.0, Max: 0.15, Weight: 0.15, Description: "Power stability within steps"},
}

// CriteriaConfig returns a copy of the criteria configuration table.
func CriteriaConfig() map[string]CriterionBounds {
	out := make(map[string]CriterionBounds, len(validationCriteria))
	for k, v := range validationCriteria {
		out[k] = v
	}
	return out
}

const (
	defaultPowerColumn     = "watts"
	defaultTimeColumn      = "time"
	defaultCadenceColumn   = "cadence"
	defaultMinStepDuration = 30

	monotonicityWindow     = 30
	cadenceInRangeMinShare = 0.80
)

// Options configures one validation call. Zero values select the defaults:
// power column "watts", time column "time", cadence column "cadence", and a
// 30-sample minimum step duration. Samples are assumed to arrive at 1 Hz;
// callers with other sampling rates must resample before validating.
type Options struct {
	PowerColumn     string
	TimeColumn      string
	CadenceColumn   string
	MinStepDuration int
}

func (o Options) withDefaults() Options {
	if o.PowerColumn == "" {
		o.PowerColumn = defaultPowerColumn
	}
	if o.TimeColumn == "" {
		o.TimeColumn = defaultTimeColumn
	}
	if o.CadenceColumn == "" {
		o.CadenceColumn = defaultCadenceColumn
	}
	if o.MinStepDuration <= 0 {
		o.MinStepDuration = defaultMinStepDuration
	}
	return o
}

// Validate inspects one ramp test series and reports whether it is
// trustworthy enough for threshold analysis. Bad data never produces an
// error: quality problems surface as failed criteria with recommendations
// and warnings, and the report is always well-formed. The call is pure and
// safe for concurrent use on independent tables.
func Validate(table *Table, opts Options) *ValidityReport {
	opts = opts.withDefaults()

	criteria := make(map[string]bool, len(validationCriteria))
	details := make(map[string]CriterionDetail, len(validationCriteria))
	recommendations := []string{}
	warnings := []string{}

	power, hasPower := table.Column(opts.PowerColumn)
	times, hasTime := table.Column(opts.TimeColumn)
	cadence, hasCadence := table.Column(opts.CadenceColumn)

	// Duration: sample count doubles as seconds at the nominal 1 Hz.
	durationSec := table.Len()
	durationMin := float64(durationSec) / 60
	durBounds := validationCriteria[CriterionDuration]
	criteria[CriterionDuration] = float64(durationSec) >= durBounds.Min && float64(durationSec) <= durBounds.Max
	details[CriterionDuration] = measuredDetail(
		float64(durationSec),
		fmt.Sprintf("%.1f min", durationMin),
		fmt.Sprintf("%.0f-%.0f min", durBounds.Min/60, durBounds.Max/60),
	)
	if float64(durationSec) < durBounds.Min {
		recommendations = append(recommendations, fmt.Sprintf("Test too short (%.1f min). Minimum: 5 minutes.", durationMin))
	} else if float64(durationSec) > durBounds.Max {
		warnings = append(warnings, fmt.Sprintf("Test unusually long (%.1f min). Verify this is a ramp test.", durationMin))
	}

	if hasPower {
		steps := detectPowerSteps(power, opts.MinStepDuration)
		stepBounds := validationCriteria[CriterionStepsCount]
		stepsCount := len(steps)
		criteria[CriterionStepsCount] = float64(stepsCount) >= stepBounds.Min && float64(stepsCount) <= stepBounds.Max
		stepDetail := measuredDetail(
			float64(stepsCount),
			fmt.Sprintf("%d steps", stepsCount),
			fmt.Sprintf("%.0f-%.0f steps", stepBounds.Min, stepBounds.Max),
		)
		stepDetail.Steps = steps
		details[CriterionStepsCount] = stepDetail
		if float64(stepsCount) < stepBounds.Min {
			recommendations = append(recommendations, fmt.Sprintf("Only %d steps detected. Minimum: 3 for reliable analysis.", stepsCount))
		}

		monotonicity := calculateMonotonicity(power, monotonicityWindow)
		monoBounds := validationCriteria[CriterionMonotonicity]
		criteria[CriterionMonotonicity] = monotonicity >= monoBounds.Min
		details[CriterionMonotonicity] = measuredDetail(
			monotonicity,
			fmt.Sprintf("%.0f%%", monotonicity*100),
			fmt.Sprintf(">=%.0f%%", monoBounds.Min*100),
		)
		if monotonicity < monoBounds.Min {
			recommendations = append(recommendations, fmt.Sprintf(
				"Low monotonicity (%.0f%%). A ramp test should have steadily increasing power.", monotonicity*100))
		}

		powerCV := calculatePowerStability(power, steps)
		cvBounds := validationCriteria[CriterionPowerStability]
		criteria[CriterionPowerStability] = powerCV <= cvBounds.Max
		details[CriterionPowerStability] = measuredDetail(
			powerCV,
			fmt.Sprintf("%.1f%% CV", powerCV*100),
			fmt.Sprintf("<=%.0f%%", cvBounds.Max*100),
		)
		if powerCV > cvBounds.Max {
			warnings = append(warnings, fmt.Sprintf(
				"High power variability within steps (%.1f%% CV). May affect accuracy.", powerCV*100))
		}
	} else {
		criteria[CriterionStepsCount] = false
		criteria[CriterionMonotonicity] = false
		criteria[CriterionPowerStability] = false
		details[CriterionStepsCount] = errorDetail("power column not found")
		details[CriterionMonotonicity] = errorDetail("power column not found")
		details[CriterionPowerStability] = errorDetail("power column not found")
		recommendations = append(recommendations, "Power data missing - analysis is not possible.")
	}

	if hasTime {
		maxGap := detectMaxGap(times)
		gapBounds := validationCriteria[CriterionDataGaps]
		criteria[CriterionDataGaps] = float64(maxGap) <= gapBounds.Max
		details[CriterionDataGaps] = measuredDetail(
			float64(maxGap),
			fmt.Sprintf("%ds", maxGap),
			fmt.Sprintf("<=%.0fs", gapBounds.Max),
		)
		if float64(maxGap) > gapBounds.Max {
			warnings = append(warnings, fmt.Sprintf("Data gap of %ds detected. May affect accuracy.", maxGap))
		}
	} else {
		// Absence of timing data is not treated as a gap.
		criteria[CriterionDataGaps] = true
		details[CriterionDataGaps] = unavailableDetail("time column not found")
	}

	cadenceSamples := dropNaN(cadence)
	if hasCadence && len(cadenceSamples) > 0 {
		cadBounds := validationCriteria[CriterionCadence]
		inRange := 0
		for _, c := range cadenceSamples {
			if c >= cadBounds.Min && c <= cadBounds.Max {
				inRange++
			}
		}
		share := float64(inRange) / float64(len(cadenceSamples))
		criteria[CriterionCadence] = share >= cadenceInRangeMinShare
		details[CriterionCadence] = measuredDetail(
			share,
			fmt.Sprintf("%.0f%% in range", share*100),
			fmt.Sprintf("%.0f-%.0f rpm (>=80%%)", cadBounds.Min, cadBounds.Max),
		)
		if share < cadenceInRangeMinShare {
			warnings = append(warnings, "Cadence outside optimal range (60-120 rpm).")
		}
	} else {
		criteria[CriterionCadence] = true
		details[CriterionCadence] = unavailableDetail("no cadence data")
	}

	score := calculateQualityScore(criteria)

	return &ValidityReport{
		Status:          classifyStatus(score, criteria),
		Criteria:        criteria,
		CriteriaDetails: details,
		QualityScore:    score,
		Recommendations: recommendations,
		Warnings:        warnings,
	}
}

// fallbackWeight applies to criteria missing from the configuration table.
// Unreachable with the fixed six-criterion set; kept so a future criterion
// cannot silently zero the score.
const fallbackWeight = 0.1

// calculateQualityScore computes the weighted share of passing criteria as a
// percentage, rounded to one decimal place.
func calculateQualityScore(criteria map[string]bool) float64 {
	if len(criteria) == 0 {
		return 0.0
	}

	totalWeight := 0.0
	passedWeight := 0.0
	for name, passed := range criteria {
		weight := fallbackWeight
		if bounds, ok := validationCriteria[name]; ok {
			weight = bounds.Weight
		}
		totalWeight += weight
		if passed {
			passedWeight += weight
		}
	}
	if totalWeight == 0 {
		return 0.0
	}
	return math.Round(passedWeight/totalWeight*1000) / 10
}

// classifyStatus derives the tri-state verdict. First match wins: a perfect
// criteria set with a score of at least 80 is valid; otherwise a score of at
// least 50 is conditional; everything else is invalid.
func classifyStatus(score float64, criteria map[string]bool) Status {
	allPassed := true
	for _, passed := range criteria {
		if !passed {
			allPassed = false
			break
		}
	}
	switch {
	case score >= 80 && allPassed:
		return StatusValid
	case score >= 50:
		return StatusConditional
	default:
		return StatusInvalid
	}
}
