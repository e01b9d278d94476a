package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/spl/engine"
)

// TableFormatter renders rows as an ASCII table for terminals
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// Format renders the header and rows. Null values are shown as NULL.
func (t *TableFormatter) Format(res *engine.Result) error {
	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(res.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range res.Rows {
		rec := record(res.Columns, row)
		for i, col := range res.Columns {
			if row[col] == nil {
				rec[i] = "NULL"
			}
		}
		table.Append(rec)
	}

	table.Render()
	return nil
}
