package pipeline

import (
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/tormoder/fit"

	"rampcheck"
)

// loadFITTable decodes an activity FIT file into a validator table with the
// default column names (time/watts/cadence). Records are ordered by
// timestamp; elapsed seconds count from the first valid timestamp. Invalid
// FIT sentinel values load as NaN.
func loadFITTable(path string) (*rampcheck.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()

	decoded, err := fit.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}

	records := make([]*fit.RecordMsg, 0, len(activity.Records))
	for _, rec := range activity.Records {
		if rec == nil {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	var (
		start     time.Time
		haveStart bool
		times     []float64
		power     []float64
		cadence   []float64
	)
	for _, rec := range records {
		ts := validTimeOrZero(rec.Timestamp)
		if ts.IsZero() {
			continue
		}
		if !haveStart {
			start = ts
			haveStart = true
		}

		times = append(times, ts.Sub(start).Seconds())
		power = append(power, extractPower(rec))
		cadence = append(cadence, extractCadence(rec))
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("activity file has no timestamped record samples")
	}

	table := rampcheck.NewTable()
	table.AddColumn("time", times)
	table.AddColumn("watts", power)
	table.AddColumn("cadence", cadence)
	return table, nil
}

func extractPower(rec *fit.RecordMsg) float64 {
	if rec.Power == math.MaxUint16 {
		return math.NaN()
	}
	return float64(rec.Power)
}

func extractCadence(rec *fit.RecordMsg) float64 {
	cad256 := rec.GetCadence256Scaled()
	if !math.IsNaN(cad256) && !math.IsInf(cad256, 0) && cad256 > 0 {
		return cad256
	}
	if rec.Cadence == math.MaxUint8 {
		return math.NaN()
	}
	return float64(rec.Cadence)
}

func validTimeOrZero(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t
}
