// Package reader loads rows from Apache Parquet files for query execution.
//
// Rows are returned as []map[string]interface{} keyed by column name, the
// shape the engine package evaluates queries against.
//
// # Basic Usage
//
//	r, err := reader.NewReader("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	rows, err := r.ReadAll()
//
// # Multi-file Reads
//
// ReadFiles accepts a single path or a glob pattern. Rows read through a
// pattern carry their source path in the "_file" column:
//
//	rows, err := reader.ReadFiles("logs/2024-*.parquet")
//
// # Schema
//
// Columns lists leaf columns with a simplified type name; ColumnNames is a
// convenience used to check that a query only references existing columns.
//
// The package uses github.com/parquet-go/parquet-go for the underlying file
// operations.
package reader
