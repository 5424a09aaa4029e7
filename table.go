package rampcheck

import (
	"math"
	"strings"
)

// Table is a column-oriented view of one recorded session at a nominal
// 1 sample/second. Missing cells are NaN. Column names are normalized to
// lower case with surrounding whitespace trimmed, so lookups are
// case-insensitive.
type Table struct {
	names   []string
	columns map[string][]float64
	rows    int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{columns: make(map[string][]float64)}
}

// AddColumn appends a named column. The first column fixes the row count;
// shorter columns are padded with NaN and longer ones truncated so every
// column stays rectangular.
func (t *Table) AddColumn(name string, values []float64) {
	key := normalizeColumnName(name)
	if key == "" {
		return
	}
	if len(t.names) == 0 {
		t.rows = len(values)
	}
	col := make([]float64, t.rows)
	for i := range col {
		if i < len(values) {
			col[i] = values[i]
		} else {
			col[i] = math.NaN()
		}
	}
	if _, exists := t.columns[key]; !exists {
		t.names = append(t.names, key)
	}
	t.columns[key] = col
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// ColumnNames returns the normalized column names in insertion order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Column resolves a column by name, case-insensitively after trimming.
// Absence is an expected state, not an error.
func (t *Table) Column(name string) ([]float64, bool) {
	if t == nil {
		return nil, false
	}
	key := normalizeColumnName(name)
	if key == "" {
		return nil, false
	}
	col, ok := t.columns[key]
	return col, ok
}

// HasColumn reports whether a column resolves.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

func normalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// dropNaN returns values with NaN samples removed.
func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
