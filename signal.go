package rampcheck

import (
	"math"

	"github.com/montanaflynn/stats"
)

// stepGradientThreshold is the smoothed power slope (W per sample) above
// which the segmenter considers the rider to be transitioning between steps.
const stepGradientThreshold = 0.5

// monotonicityNoiseFloor is the minimum smoothed sample-to-sample change (W)
// that counts as a real power transition rather than noise.
const monotonicityNoiseFloor = 1.0

// expectedSampleSpacing is the nominal spacing between samples in seconds.
const expectedSampleSpacing = 1.0

// centeredRollingMean computes a centered moving average. Positions whose
// window runs off either end, or contains a NaN sample, are undefined and
// filled from the nearest defined neighbor (backward fill first, then
// forward), never zero-filled.
func centeredRollingMean(values []float64, window int) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if window < 1 {
		window = 1
	}

	sums := make([]float64, n+1)
	nans := make([]int, n+1)
	for i, v := range values {
		sums[i+1] = sums[i]
		nans[i+1] = nans[i]
		if math.IsNaN(v) {
			nans[i+1]++
		} else {
			sums[i+1] += v
		}
	}

	// Centered labeling: the value at i averages a trailing window shifted
	// back by (window-1)/2 samples.
	offset := (window - 1) / 2
	for i := 0; i < n; i++ {
		hi := i + offset
		lo := hi - window + 1
		if lo < 0 || hi >= n || nans[hi+1]-nans[lo] > 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (sums[hi+1] - sums[lo]) / float64(window)
	}

	// Backward fill, then forward fill.
	next := math.NaN()
	for i := n - 1; i >= 0; i-- {
		if math.IsNaN(out[i]) {
			out[i] = next
		} else {
			next = out[i]
		}
	}
	prev := math.NaN()
	for i := 0; i < n; i++ {
		if math.IsNaN(out[i]) {
			out[i] = prev
		} else {
			prev = out[i]
		}
	}
	return out
}

// gradient computes the discrete derivative with central differences in the
// interior and one-sided differences at the edges.
func gradient(values []float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	out[0] = values[1] - values[0]
	out[n-1] = values[n-1] - values[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (values[i+1] - values[i-1]) / 2
	}
	return out
}

// detectPowerSteps segments the power series into contiguous plateaus. A new
// step boundary is registered each time the smoothed gradient settles back
// below the transition threshold, provided the segment since the previous
// boundary lasted at least minStepDuration samples. Inputs shorter than
// minStepDuration yield no steps.
func detectPowerSteps(power []float64, minStepDuration int) []Step {
	if len(power) < minStepDuration {
		return nil
	}

	window := len(power) / 10
	if window > 30 {
		window = 30
	}
	if window < 5 {
		window = 5
	}

	smoothed := centeredRollingMean(power, window)
	grad := gradient(smoothed)

	stepStarts := []int{0}
	inTransition := false
	for i := 1; i < len(grad); i++ {
		switch {
		case math.Abs(grad[i]) > stepGradientThreshold && !inTransition:
			inTransition = true
		case math.Abs(grad[i]) <= stepGradientThreshold && inTransition:
			inTransition = false
			if i-stepStarts[len(stepStarts)-1] >= minStepDuration {
				stepStarts = append(stepStarts, i)
			}
		}
	}

	steps := make([]Step, 0, len(stepStarts))
	for i, start := range stepStarts {
		end := len(power)
		if i+1 < len(stepStarts) {
			end = stepStarts[i+1]
		}
		if end-start < minStepDuration {
			continue
		}
		// Missing samples are excluded from the step average.
		avg := 0.0
		if clean := dropNaN(power[start:end]); len(clean) > 0 {
			avg, _ = stats.Mean(clean)
		}
		steps = append(steps, Step{
			Start:    start,
			End:      end,
			Duration: end - start,
			AvgPower: avg,
		})
	}
	return steps
}

// calculateMonotonicity returns the fraction of significant smoothed power
// transitions that are increases. A signal with no significant transitions
// (flat, or shorter than the smoothing window) scores 1.0: flatness is not
// penalized.
func calculateMonotonicity(power []float64, window int) float64 {
	if len(power) < window {
		return 1.0
	}

	smoothed := centeredRollingMean(power, window)

	increases := 0
	transitions := 0
	for i := 1; i < len(smoothed); i++ {
		diff := smoothed[i] - smoothed[i-1]
		if math.Abs(diff) > monotonicityNoiseFloor {
			transitions++
			if diff > 0 {
				increases++
			}
		}
	}
	if transitions == 0 {
		return 1.0
	}
	return float64(increases) / float64(transitions)
}

// detectMaxGap returns the largest deviation, in whole seconds, from the
// expected 1 s sample spacing. Out-of-order or duplicate timestamps clamp
// to zero rather than reporting a negative gap.
func detectMaxGap(times []float64) int {
	if len(times) < 2 {
		return 0
	}
	gaps := make([]float64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		gaps = append(gaps, times[i]-times[i-1]-expectedSampleSpacing)
	}
	maxGap, err := stats.Max(gaps)
	if err != nil || math.IsNaN(maxGap) {
		return 0
	}
	if maxGap < 0 {
		return 0
	}
	return int(maxGap)
}

// calculatePowerStability averages the per-step coefficient of variation of
// the raw power signal. An empty step list returns the 1.0 worst-case
// sentinel (always failing the criterion); steps that exist but yield no
// usable CV return 0.0.
func calculatePowerStability(power []float64, steps []Step) float64 {
	if len(steps) == 0 {
		return 1.0
	}

	cvs := make([]float64, 0, len(steps))
	for _, step := range steps {
		segment := power[step.Start:step.End]
		if len(segment) <= 1 {
			continue
		}
		mean, _ := stats.Mean(segment)
		if !(mean > 0) {
			continue
		}
		std, _ := stats.StandardDeviation(segment)
		cvs = append(cvs, std/mean)
	}
	if len(cvs) == 0 {
		return 0.0
	}
	avg, _ := stats.Mean(cvs)
	return avg
}
