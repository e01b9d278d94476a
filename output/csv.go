package output

import (
	"encoding/csv"
	"io"

	"github.com/vegasq/spl/engine"
)

// CSVFormatter outputs rows as CSV with a header row in select order
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// Format writes the header and rows. Null values become empty cells.
func (c *CSVFormatter) Format(res *engine.Result) error {
	csvWriter := csv.NewWriter(c.writer)

	if err := csvWriter.Write(res.Columns); err != nil {
		return err
	}
	for _, row := range res.Rows {
		if err := csvWriter.Write(record(res.Columns, row)); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func record(columns []string, row map[string]interface{}) []string {
	rec := make([]string, len(columns))
	for i, col := range columns {
		rec[i] = formatValue(row[col])
	}
	return rec
}
