package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rampcheck"
	"rampcheck/pipeline"
)

func main() {
	var (
		inPath     = flag.String("in", "", "Path to input table (.csv, .fit, or .parquet)")
		powerCol   = flag.String("power-col", "", "Power column name (default: watts)")
		timeCol    = flag.String("time-col", "", "Time column name (default: time)")
		cadenceCol = flag.String("cadence-col", "", "Cadence column name (default: cadence)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --in test.csv [--power-col watts]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*inPath) == "" {
		flag.Usage()
		os.Exit(2)
	}

	table, err := pipeline.LoadTable(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rampnotes failed: %v\n", err)
		os.Exit(1)
	}

	report := rampcheck.Validate(table, rampcheck.Options{
		PowerColumn:   *powerCol,
		TimeColumn:    *timeCol,
		CadenceColumn: *cadenceCol,
	})

	fmt.Println(rampcheck.BuildValidationNotes(report))
	if !report.IsValid() {
		os.Exit(1)
	}
}
