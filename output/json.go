package output

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/vegasq/spl/engine"
)

// JSONLinesFormatter writes one JSON object per row
type JSONLinesFormatter struct {
	writer io.Writer
}

// NewJSONLinesFormatter creates a new JSON Lines formatter
func NewJSONLinesFormatter(w io.Writer) *JSONLinesFormatter {
	return &JSONLinesFormatter{writer: w}
}

// Format writes rows as JSON Lines, keys in column order
func (j *JSONLinesFormatter) Format(res *engine.Result) error {
	encoder := json.NewEncoder(j.writer)
	for _, row := range res.Rows {
		obj, err := orderedObject(res.Columns, row)
		if err != nil {
			return err
		}
		if err := encoder.Encode(obj); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter writes all rows as a single indented JSON array
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON array formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Format writes rows as a JSON array, keys in column order
func (j *JSONFormatter) Format(res *engine.Result) error {
	objects := make([]json.RawMessage, 0, len(res.Rows))
	for _, row := range res.Rows {
		obj, err := orderedObject(res.Columns, row)
		if err != nil {
			return err
		}
		objects = append(objects, obj)
	}
	encoder := json.NewEncoder(j.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(objects)
}

// orderedObject encodes row as a JSON object whose keys follow columns.
// encoding/json sorts map keys, so the object is assembled by hand.
func orderedObject(columns []string, row map[string]interface{}) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(row[col])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
