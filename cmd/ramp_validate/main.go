package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rampcheck/pipeline"
)

func main() {
	var (
		inPath     = flag.String("in", "", "Path to input table (.csv, .fit, or .parquet)")
		outDir     = flag.String("out", "", "Output directory")
		format     = flag.String("format", "csv", "Canonical sample format: csv|parquet")
		powerCol   = flag.String("power-col", "", "Power column name (default: watts)")
		timeCol    = flag.String("time-col", "", "Time column name (default: time)")
		cadenceCol = flag.String("cadence-col", "", "Cadence column name (default: cadence)")
		overwrite  = flag.Bool("overwrite", true, "Allow writing into non-empty output directories")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --in test.csv --out outdir [--format csv|parquet] [--power-col watts]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*inPath) == "" || strings.TrimSpace(*outDir) == "" {
		flag.Usage()
		os.Exit(2)
	}

	result, err := pipeline.Run(pipeline.Options{
		SourcePath:    *inPath,
		OutDir:        *outDir,
		Format:        *format,
		PowerColumn:   *powerCol,
		TimeColumn:    *timeCol,
		CadenceColumn: *cadenceCol,
		Overwrite:     *overwrite,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ramp_validate failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ramp_validate complete\n")
	fmt.Printf("Output dir:        %s\n", result.OutputDir)
	fmt.Printf("validity report:   %s\n", result.ReportPath)
	fmt.Printf("summary:           %s\n", result.SummaryPath)
	fmt.Printf("canonical samples: %s (%d rows)\n", result.CanonicalSamplesPath, result.SampleCount)
}
