package reader

import (
	"fmt"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// Column describes a leaf column of a parquet schema. Nested fields use dot
// notation ("address.street").
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional"`
	Repeated bool   `json:"repeated"`
}

// Columns lists the leaf columns of the file schema
func (r *Reader) Columns() []Column {
	var columns []Column
	for _, field := range r.pqFile.Schema().Fields() {
		columns = appendColumns(columns, field, "", false)
	}
	return columns
}

func appendColumns(columns []Column, field parquet.Field, prefix string, parentRepeated bool) []Column {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}
	repeated := parentRepeated || field.Repeated()

	if children := field.Fields(); len(children) > 0 {
		for _, child := range children {
			columns = appendColumns(columns, child, name, repeated)
		}
		return columns
	}

	return append(columns, Column{
		Name:     name,
		Type:     typeName(field),
		Optional: field.Optional(),
		Repeated: repeated,
	})
}

// typeName prefers the logical type and falls back to the physical one
func typeName(field parquet.Field) string {
	typ := field.Type()
	if typ == nil {
		return "GROUP"
	}
	if lt := typ.LogicalType(); lt != nil {
		switch s := lt.String(); s {
		case "STRING", "UTF8":
			return "STRING"
		case "DATE", "TIME", "TIMESTAMP", "DECIMAL", "JSON", "UUID", "ENUM":
			return s
		}
	}

	switch typ.Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

// OpenSchema opens the file named by pattern or, for a glob pattern, the
// first matching file. It also returns how many files the pattern matched.
func OpenSchema(pattern string) (*Reader, int, error) {
	if !IsPattern(pattern) {
		r, err := NewReader(pattern)
		if err != nil {
			return nil, 0, err
		}
		return r, 1, nil
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, 0, fmt.Errorf("no files match pattern: %s", pattern)
	}
	r, err := NewReader(matches[0])
	if err != nil {
		return nil, 0, err
	}
	return r, len(matches), nil
}

// ColumnNames returns the column names available in the file or, for a glob
// pattern, in the first matching file. Glob reads also expose FileColumn.
func ColumnNames(pattern string) ([]string, error) {
	r, _, err := OpenSchema(pattern)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	var names []string
	for _, col := range r.Columns() {
		names = append(names, col.Name)
	}
	if IsPattern(pattern) {
		names = append(names, FileColumn)
	}
	return names, nil
}
