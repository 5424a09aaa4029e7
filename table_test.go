package rampcheck

import (
	"math"
	"testing"
)

func TestTableColumnResolution(t *testing.T) {
	table := NewTable()
	table.AddColumn("  Watts ", []float64{100, 110, 120})
	table.AddColumn("Cadence", []float64{85, 86, 87})

	for _, name := range []string{"watts", "WATTS", " watts ", "Watts"} {
		col, ok := table.Column(name)
		if !ok {
			t.Fatalf("column %q should resolve case-insensitively", name)
		}
		if len(col) != 3 || col[0] != 100 {
			t.Fatalf("column %q resolved to wrong data: %v", name, col)
		}
	}

	if _, ok := table.Column("heart_rate"); ok {
		t.Fatal("absent columns must resolve to not-found, not error")
	}
	if table.HasColumn("") {
		t.Fatal("the empty column name never resolves")
	}
}

func TestTableKeepsRectangularShape(t *testing.T) {
	table := NewTable()
	table.AddColumn("time", []float64{0, 1, 2, 3})
	table.AddColumn("watts", []float64{100, 110})
	table.AddColumn("cadence", []float64{85, 85, 85, 85, 85, 85})

	if table.Len() != 4 {
		t.Fatalf("row count is fixed by the first column: got %d", table.Len())
	}
	watts, _ := table.Column("watts")
	if len(watts) != 4 || !math.IsNaN(watts[2]) || !math.IsNaN(watts[3]) {
		t.Fatalf("short columns pad with NaN: %v", watts)
	}
	cadence, _ := table.Column("cadence")
	if len(cadence) != 4 {
		t.Fatalf("long columns truncate to the row count: %v", cadence)
	}
}

func TestTableColumnNamesNormalized(t *testing.T) {
	table := NewTable()
	table.AddColumn(" Time ", []float64{0, 1})
	table.AddColumn("WATTS", []float64{100, 110})

	names := table.ColumnNames()
	if len(names) != 2 || names[0] != "time" || names[1] != "watts" {
		t.Fatalf("expected normalized names [time watts], got %v", names)
	}
}

func TestDropNaN(t *testing.T) {
	got := dropNaN([]float64{1, math.NaN(), 2, math.NaN()})
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("dropNaN mismatch: %v", got)
	}
	if got := dropNaN(nil); len(got) != 0 {
		t.Fatalf("dropNaN(nil) should be empty, got %v", got)
	}
}
