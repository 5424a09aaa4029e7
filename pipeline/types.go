package pipeline

// Options configures the ramp_validate pipeline.
type Options struct {
	// SourcePath points at the input table: .csv, .fit, or .parquet.
	SourcePath string
	// OutDir receives the generated artifacts.
	OutDir string
	// Format selects the canonical sample output: csv|parquet.
	Format string
	// Column overrides; empty values select the validator defaults.
	PowerColumn   string
	TimeColumn    string
	CadenceColumn string
	Overwrite     bool
}

// Result returns generated output paths.
type Result struct {
	OutputDir            string `json:"output_dir"`
	ReportPath           string `json:"report_path"`
	SummaryPath          string `json:"summary_path"`
	CanonicalSamplesPath string `json:"canonical_samples_path"`
	SampleCount          int    `json:"sample_count"`
}

// CanonicalSample is one normalized 1 Hz sample row. Pointer fields are nil
// when the source carried no value for that sample.
type CanonicalSample struct {
	ElapsedS   float64  `json:"elapsed_s"`
	PowerW     *float64 `json:"power_w,omitempty"`
	CadenceRPM *float64 `json:"cadence_rpm,omitempty"`
}
