package output

import (
	"fmt"
	"io"

	"github.com/vegasq/spl/engine"
)

// Formatter writes a query result to its output.
type Formatter interface {
	// Format writes res in the formatter's specific format
	Format(res *engine.Result) error
}

// Formats lists the names accepted by New
var Formats = []string{"jsonl", "json", "csv", "table"}

// New returns the formatter registered under name
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "jsonl":
		return NewJSONLinesFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "table":
		return NewTableFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", name)
	}
}

// formatValue renders a cell value as text. nil renders as empty.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
