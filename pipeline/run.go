package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"rampcheck"
)

// Run executes the full ramp_validate pipeline: load the source table,
// validate it, and write the report, summary, and canonical sample
// artifacts.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.SourcePath) == "" {
		return nil, fmt.Errorf("source path is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "parquet" {
		return nil, fmt.Errorf("unsupported format %q (expected csv|parquet)", format)
	}

	if err := prepareOutDir(opts.OutDir, opts.Overwrite); err != nil {
		return nil, err
	}

	table, err := LoadTable(opts.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(opts.SourcePath), err)
	}

	report := rampcheck.Validate(table, rampcheck.Options{
		PowerColumn:   opts.PowerColumn,
		TimeColumn:    opts.TimeColumn,
		CadenceColumn: opts.CadenceColumn,
	})

	reportPath := filepath.Join(opts.OutDir, "validity_report.json")
	if err := writeJSON(reportPath, report); err != nil {
		return nil, fmt.Errorf("write validity_report.json: %w", err)
	}

	summaryPath := filepath.Join(opts.OutDir, "validation_summary.txt")
	summary := rampcheck.BuildValidationNotes(report) + "\n"
	if err := os.WriteFile(summaryPath, []byte(summary), 0o644); err != nil {
		return nil, fmt.Errorf("write validation_summary.txt: %w", err)
	}

	samples := buildCanonicalSamples(table, opts)
	canonicalPath := filepath.Join(opts.OutDir, "canonical_samples."+format)
	switch format {
	case "csv":
		if err := writeCanonicalCSV(canonicalPath, samples); err != nil {
			return nil, fmt.Errorf("write canonical csv: %w", err)
		}
	case "parquet":
		if err := writeCanonicalParquet(canonicalPath, samples); err != nil {
			return nil, fmt.Errorf("write canonical parquet: %w", err)
		}
	}

	return &Result{
		OutputDir:            opts.OutDir,
		ReportPath:           reportPath,
		SummaryPath:          summaryPath,
		CanonicalSamplesPath: canonicalPath,
		SampleCount:          len(samples),
	}, nil
}

// LoadTable reads a sample table from disk, dispatching on extension.
func LoadTable(path string) (*rampcheck.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSVTable(path)
	case ".fit":
		return loadFITTable(path)
	case ".parquet":
		return loadParquetTable(path)
	default:
		return nil, fmt.Errorf("unsupported source extension %q (expected .csv, .fit, or .parquet)", filepath.Ext(path))
	}
}

func prepareOutDir(dir string, overwrite bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if overwrite {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("output directory %s is not empty (use overwrite)", dir)
	}
	return nil
}

// loadCSVTable parses a header-led CSV of numeric columns. Empty cells load
// as NaN; a non-numeric cell is a caller contract violation and fails with
// the offending column named.
func loadCSVTable(path string) (*rampcheck.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	header := rows[0]
	columns := make([][]float64, len(header))
	for i := range columns {
		columns[i] = make([]float64, 0, len(rows)-1)
	}
	for rowIdx, row := range rows[1:] {
		for colIdx := range header {
			if colIdx >= len(row) || strings.TrimSpace(row[colIdx]) == "" {
				columns[colIdx] = append(columns[colIdx], math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[colIdx]), 64)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: non-numeric value %q", header[colIdx], rowIdx+2, row[colIdx])
			}
			columns[colIdx] = append(columns[colIdx], v)
		}
	}

	table := rampcheck.NewTable()
	for i, name := range header {
		table.AddColumn(name, columns[i])
	}
	return table, nil
}

// buildCanonicalSamples flattens the resolved time/power/cadence columns
// into row form for the canonical sample artifact.
func buildCanonicalSamples(table *rampcheck.Table, opts Options) []CanonicalSample {
	powerCol := firstNonEmpty(opts.PowerColumn, "watts")
	timeCol := firstNonEmpty(opts.TimeColumn, "time")
	cadenceCol := firstNonEmpty(opts.CadenceColumn, "cadence")

	power, _ := table.Column(powerCol)
	times, _ := table.Column(timeCol)
	cadence, _ := table.Column(cadenceCol)

	out := make([]CanonicalSample, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		s := CanonicalSample{ElapsedS: float64(i)}
		if i < len(times) && !math.IsNaN(times[i]) {
			s.ElapsedS = times[i]
		}
		if i < len(power) {
			s.PowerW = ptrOrNil(power[i])
		}
		if i < len(cadence) {
			s.CadenceRPM = ptrOrNil(cadence[i])
		}
		out = append(out, s)
	}
	return out
}

func writeCanonicalCSV(path string, samples []CanonicalSample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"elapsed_s", "power_w", "cadence_rpm"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.ElapsedS, 'f', -1, 64),
			formatOptional(s.PowerW),
			formatOptional(s.CadenceRPM),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func ptrOrNil(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	out := v
	return &out
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
