package rampcheck

import (
	"math"
	"math/rand"
	"testing"
)

func TestDetectPowerStepsFindsPlateaus(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	power := make([]float64, 0, 5*60)
	for i := 0; i < 5; i++ {
		base := 100 + float64(i)*40
		for j := 0; j < 60; j++ {
			power = append(power, base+rng.NormFloat64()*3)
		}
	}

	steps := detectPowerSteps(power, 30)

	if len(steps) < 3 {
		t.Fatalf("expected at least 3 detected steps, got %d", len(steps))
	}
	for i, step := range steps {
		if step.Start >= step.End {
			t.Fatalf("step %d has start %d >= end %d", i, step.Start, step.End)
		}
		if step.Duration != step.End-step.Start {
			t.Fatalf("step %d duration %d != end-start %d", i, step.Duration, step.End-step.Start)
		}
		if step.Duration < 30 {
			t.Fatalf("step %d shorter than minimum duration: %d", i, step.Duration)
		}
		if i > 0 && steps[i-1].End > step.Start {
			t.Fatalf("steps %d and %d overlap", i-1, i)
		}
		if i > 0 && step.AvgPower <= steps[i-1].AvgPower {
			t.Fatalf("ramp steps should rise in average power: step %d %.1f <= step %d %.1f", i, step.AvgPower, i-1, steps[i-1].AvgPower)
		}
	}
}

func TestDetectPowerStepsEmptyAndShortInput(t *testing.T) {
	if steps := detectPowerSteps(nil, 30); len(steps) != 0 {
		t.Fatalf("empty input should yield no steps, got %d", len(steps))
	}
	short := make([]float64, 20)
	for i := range short {
		short[i] = 1
	}
	if steps := detectPowerSteps(short, 30); len(steps) != 0 {
		t.Fatalf("input shorter than the minimum step duration should yield no steps, got %d", len(steps))
	}
}

func TestMonotonicityLinearRamp(t *testing.T) {
	power := rampArray(100, 400, 600)
	if mono := calculateMonotonicity(power, 30); mono < 0.9 {
		t.Fatalf("a pure ramp should score monotonicity >= 0.9, got %v", mono)
	}
}

func TestMonotonicityConstantSignal(t *testing.T) {
	power := make([]float64, 600)
	for i := range power {
		power[i] = 200
	}
	if mono := calculateMonotonicity(power, 30); mono != 1.0 {
		t.Fatalf("a flat signal should score exactly 1.0, got %v", mono)
	}
}

func TestMonotonicityPenalizesDecline(t *testing.T) {
	power := append(rampArray(100, 400, 100), rampArray(400, 100, 100)...)
	power = append(power, rampArray(100, 400, 100)...)

	mono := calculateMonotonicity(power, 30)

	if mono >= 1.0 || mono <= 0 {
		t.Fatalf("a ramp with a long decline should score strictly between 0 and 1, got %v", mono)
	}
	if mono >= 0.70 {
		t.Fatalf("a third of the test declining should fail the 0.70 threshold, got %v", mono)
	}
}

func TestMonotonicityShorterThanWindow(t *testing.T) {
	if mono := calculateMonotonicity(rampArray(100, 200, 10), 30); mono != 1.0 {
		t.Fatalf("series shorter than the window scores 1.0 by convention, got %v", mono)
	}
}

func TestDetectMaxGapUniformSeries(t *testing.T) {
	if gap := detectMaxGap(rampArray(0, 599, 600)); gap != 0 {
		t.Fatalf("uniform 1 Hz time should have max gap 0, got %d", gap)
	}
}

func TestDetectMaxGapMissingSamples(t *testing.T) {
	times := make([]float64, 0, 590)
	for i := 0; i < 600; i++ {
		if i >= 100 && i < 110 {
			continue
		}
		times = append(times, float64(i))
	}
	if gap := detectMaxGap(times); gap < 9 {
		t.Fatalf("a 10-sample hole should report a gap >= 9, got %d", gap)
	}
}

func TestDetectMaxGapClampsNegative(t *testing.T) {
	// Duplicate and out-of-order timestamps never report negative gaps.
	if gap := detectMaxGap([]float64{0, 0, 0, 0}); gap != 0 {
		t.Fatalf("duplicate timestamps should clamp to 0, got %d", gap)
	}
	if gap := detectMaxGap([]float64{5, 4, 3}); gap != 0 {
		t.Fatalf("decreasing timestamps should clamp to 0, got %d", gap)
	}
}

func TestDetectMaxGapTinySeries(t *testing.T) {
	if gap := detectMaxGap([]float64{42}); gap != 0 {
		t.Fatalf("fewer than two samples yields gap 0, got %d", gap)
	}
	if gap := detectMaxGap(nil); gap != 0 {
		t.Fatalf("empty time series yields gap 0, got %d", gap)
	}
}

func TestPowerStabilitySentinels(t *testing.T) {
	power := rampArray(100, 400, 600)

	// No detected steps at all: worst-case sentinel, always fails the
	// criterion. Preserved deliberately; see DESIGN.md.
	if cv := calculatePowerStability(power, nil); cv != 1.0 {
		t.Fatalf("empty step list should return the 1.0 sentinel, got %v", cv)
	}

	// Steps exist but none produce a usable CV.
	single := []Step{{Start: 0, End: 1, Duration: 1}}
	if cv := calculatePowerStability(power, single); cv != 0.0 {
		t.Fatalf("steps without a usable CV should return 0.0, got %v", cv)
	}
	zeroMean := []Step{{Start: 0, End: 40, Duration: 40}}
	if cv := calculatePowerStability(make([]float64, 600), zeroMean); cv != 0.0 {
		t.Fatalf("zero-mean steps should return 0.0, got %v", cv)
	}
}

func TestPowerStabilityConstantSteps(t *testing.T) {
	power := make([]float64, 120)
	for i := range power {
		power[i] = 250
	}
	steps := []Step{
		{Start: 0, End: 60, Duration: 60},
		{Start: 60, End: 120, Duration: 60},
	}
	if cv := calculatePowerStability(power, steps); cv != 0.0 {
		t.Fatalf("perfectly steady steps should have CV 0.0, got %v", cv)
	}
}

func TestPowerStabilityNoisySteps(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	power := make([]float64, 120)
	for i := range power {
		power[i] = 200 + rng.NormFloat64()*10
	}
	steps := []Step{{Start: 0, End: 120, Duration: 120}}

	cv := calculatePowerStability(power, steps)

	if cv <= 0 || cv > 0.15 {
		t.Fatalf("5%% noise should land in (0, 0.15], got %v", cv)
	}
}

func TestCenteredRollingMeanKnownWindow(t *testing.T) {
	got := centeredRollingMean([]float64{1, 2, 3, 4, 5}, 3)
	want := []float64{2, 2, 3, 4, 4}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("window-3 smoothing mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestCenteredRollingMeanEdgeHold(t *testing.T) {
	values := rampArray(0, 99, 100)
	smoothed := centeredRollingMean(values, 30)

	if len(smoothed) != len(values) {
		t.Fatalf("smoothing must preserve length: %d != %d", len(smoothed), len(values))
	}
	// Leading samples hold the first defined window mean, not zero.
	if smoothed[0] == 0 || smoothed[0] != smoothed[1] {
		t.Fatalf("leading edge should hold the first defined value, got %v and %v", smoothed[0], smoothed[1])
	}
	if smoothed[len(smoothed)-1] != smoothed[len(smoothed)-2] {
		t.Fatalf("trailing edge should hold the last defined value, got %v and %v",
			smoothed[len(smoothed)-2], smoothed[len(smoothed)-1])
	}
}

func TestCenteredRollingMeanBackfillsInteriorNaN(t *testing.T) {
	values := rampArray(100, 200, 100)
	values[50] = math.NaN()

	smoothed := centeredRollingMean(values, 10)

	for i, v := range smoothed {
		if math.IsNaN(v) {
			t.Fatalf("no NaN may survive smoothing fill, found one at %d", i)
		}
	}
}

func TestGradient(t *testing.T) {
	got := gradient([]float64{0, 1, 3})
	want := []float64{1, 1.5, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("gradient mismatch at %d: got %v want %v", i, got, want)
		}
	}
	if g := gradient([]float64{5}); len(g) != 1 || g[0] != 0 {
		t.Fatalf("single-sample gradient should be zero, got %v", g)
	}
}
