package analysis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"soxutil/internal/analysis"
)

func TestReadTable(t *testing.T) {
	table, err := analysis.ReadTable(strings.NewReader("a,b\n1,x\n2,y\n"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Columns)
	assert.Len(t, table.Rows, 2)
}

func TestReadTableEmpty(t *testing.T) {
	_, err := analysis.ReadTable(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadTableRaggedRow(t *testing.T) {
	_, err := analysis.ReadTable(strings.NewReader("a,b\n1\n"))
	assert.Error(t, err)
}

func TestDropDuplicates(t *testing.T) {
	table, err := analysis.ReadTable(strings.NewReader("a,b\n1,x\n2,y\n1,x\n"))
	assert.NoError(t, err)

	table.DropDuplicates()
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "x"}, table.Rows[0])
	assert.Equal(t, []string{"2", "y"}, table.Rows[1])
}

func TestFillMissing(t *testing.T) {
	table, err := analysis.ReadTable(strings.NewReader("a,b\n1,\n,y\n"))
	assert.NoError(t, err)

	table.FillMissing("0")
	assert.Equal(t, []string{"1", "0"}, table.Rows[0])
	assert.Equal(t, []string{"0", "y"}, table.Rows[1])
}

func TestSummarizeTypes(t *testing.T) {
	table, err := analysis.ReadTable(strings.NewReader(
		"ints,floats,bools,words\n1,1.5,true,hello\n2,2.5,false,world\n"))
	assert.NoError(t, err)

	summary := table.Summarize()
	assert.Equal(t, "int64", summary.DataTypes["ints"])
	assert.Equal(t, "float64", summary.DataTypes["floats"])
	assert.Equal(t, "bool", summary.DataTypes["bools"])
	assert.Equal(t, "object", summary.DataTypes["words"])

	assert.Equal(t, int64(1), summary.SampleData[0]["ints"])
	assert.Equal(t, 1.5, summary.SampleData[0]["floats"])
	assert.Equal(t, true, summary.SampleData[0]["bools"])
	assert.Equal(t, "hello", summary.SampleData[0]["words"])

	// Non-numeric columns carry no summary statistics.
	assert.Contains(t, summary.SummaryStats, "ints")
	assert.Contains(t, summary.SummaryStats, "floats")
	assert.NotContains(t, summary.SummaryStats, "bools")
	assert.NotContains(t, summary.SummaryStats, "words")
}

func TestSummarizeDescribe(t *testing.T) {
	table, err := analysis.ReadTable(strings.NewReader("v\n1\n2\n3\n4\n"))
	assert.NoError(t, err)

	stats := table.Summarize().SummaryStats["v"]
	assert.Equal(t, 4.0, stats["count"])
	assert.Equal(t, 2.5, stats["mean"])
	assert.InDelta(t, 1.2909944, stats["std"], 1e-6)
	assert.Equal(t, 1.0, stats["min"])
	assert.Equal(t, 4.0, stats["max"])
	// Quantiles use linear interpolation between closest ranks.
	assert.InDelta(t, 1.75, stats["25%"], 1e-9)
	assert.InDelta(t, 2.5, stats["50%"], 1e-9)
	assert.InDelta(t, 3.25, stats["75%"], 1e-9)
}

func TestSummarizeDeduplicatedScenario(t *testing.T) {
	// Three rows, two columns, one duplicate row.
	table, err := analysis.ReadTable(strings.NewReader("a,b\n1,2\n1,2\n3,4\n"))
	assert.NoError(t, err)

	table.DropDuplicates()
	table.FillMissing("0")
	summary := table.Summarize()

	assert.Equal(t, 2, summary.RowCount)
	assert.Equal(t, 2, summary.ColumnCount)
	assert.LessOrEqual(t, len(summary.SampleData), 5)
}

func TestSummarizeSampleBounded(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("n\n")
	for i := 0; i < 10; i++ {
		sb.WriteString("7\n")
	}
	table, err := analysis.ReadTable(strings.NewReader(sb.String()))
	assert.NoError(t, err)

	// Duplicate rows left in place: sample is capped, row count is not.
	summary := table.Summarize()
	assert.Equal(t, 10, summary.RowCount)
	assert.Len(t, summary.SampleData, 5)
}
