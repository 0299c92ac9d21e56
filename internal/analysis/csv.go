package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Table is a tabular dataset read from a CSV file: a header row plus
// string cells. All derived statistics are computed on demand.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Summary is the statistics payload returned for an uploaded file.
type Summary struct {
	RowCount     int                           `json:"row_count"`
	ColumnCount  int                           `json:"column_count"`
	Columns      []string                      `json:"columns"`
	DataTypes    map[string]string             `json:"data_types"`
	SampleData   []map[string]interface{}      `json:"sample_data"`
	SummaryStats map[string]map[string]float64 `json:"summary_stats"`
}

// SampleSize bounds the number of records included in SampleData.
const SampleSize = 5

// ReadTable parses CSV content. The first record is the header; every
// data row must have the same number of fields.
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no columns to parse from file")
	}
	return &Table{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

// DropDuplicates removes duplicate rows, keeping the first occurrence
// and preserving row order.
func (t *Table) DropDuplicates() {
	seen := make(map[string]bool, len(t.Rows))
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
	}
	t.Rows = kept
}

// FillMissing replaces empty cells with the given value.
func (t *Table) FillMissing(value string) {
	for _, row := range t.Rows {
		for i, cell := range row {
			if strings.TrimSpace(cell) == "" {
				row[i] = value
			}
		}
	}
}

// Summarize computes the full statistics payload: counts, inferred
// per-column types, a bounded head sample, and numeric summary stats.
func (t *Table) Summarize() *Summary {
	summary := &Summary{
		RowCount:     len(t.Rows),
		ColumnCount:  len(t.Columns),
		Columns:      t.Columns,
		DataTypes:    make(map[string]string, len(t.Columns)),
		SampleData:   []map[string]interface{}{},
		SummaryStats: map[string]map[string]float64{},
	}

	types := make([]string, len(t.Columns))
	for i, name := range t.Columns {
		types[i] = t.columnType(i)
		summary.DataTypes[name] = types[i]
	}

	for r := 0; r < len(t.Rows) && r < SampleSize; r++ {
		record := make(map[string]interface{}, len(t.Columns))
		for i, name := range t.Columns {
			record[name] = typedValue(t.Rows[r][i], types[i])
		}
		summary.SampleData = append(summary.SampleData, record)
	}

	for i, name := range t.Columns {
		if types[i] != "int64" && types[i] != "float64" {
			continue
		}
		values := make([]float64, 0, len(t.Rows))
		for _, row := range t.Rows {
			if v, err := strconv.ParseFloat(row[i], 64); err == nil {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			summary.SummaryStats[name] = describe(values)
		}
	}

	return summary
}

// columnType infers a column's type name from its cells. Integer wins
// over float, float over bool, and anything else is object.
func (t *Table) columnType(col int) string {
	if len(t.Rows) == 0 {
		return "object"
	}
	allInt, allFloat, allBool := true, true, true
	for _, row := range t.Rows {
		cell := row[col]
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			allFloat = false
		}
		if _, err := strconv.ParseBool(cell); err != nil {
			allBool = false
		}
	}
	switch {
	case allInt:
		return "int64"
	case allFloat:
		return "float64"
	case allBool:
		return "bool"
	default:
		return "object"
	}
}

func typedValue(cell, dtype string) interface{} {
	switch dtype {
	case "int64":
		if v, err := strconv.ParseInt(cell, 10, 64); err == nil {
			return v
		}
	case "float64":
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			return v
		}
	case "bool":
		if v, err := strconv.ParseBool(cell); err == nil {
			return v
		}
	}
	return cell
}

// describe computes count, mean, sample standard deviation, min, three
// quartiles, and max for a numeric column.
func describe(values []float64) map[string]float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / n

	var std float64
	if len(sorted) > 1 {
		var sq float64
		for _, v := range sorted {
			sq += (v - mean) * (v - mean)
		}
		std = math.Sqrt(sq / (n - 1))
	}

	return map[string]float64{
		"count": n,
		"mean":  mean,
		"std":   std,
		"min":   sorted[0],
		"25%":   quantile(sorted, 0.25),
		"50%":   quantile(sorted, 0.5),
		"75%":   quantile(sorted, 0.75),
		"max":   sorted[len(sorted)-1],
	}
}

// quantile evaluates the q-th quantile of sorted values with linear
// interpolation between the closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	frac := pos - float64(lower)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}
