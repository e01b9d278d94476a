// Package output writes query results in various formats.
//
// Every formatter consumes an *engine.Result and respects its column order,
// which is the order of the query's select list.
//
// # Supported Formats
//
//   - jsonl: one JSON object per line (suitable for streaming)
//   - json: a single indented JSON array
//   - csv: comma-separated values with a header row, nulls as empty cells
//   - table: an ASCII table for terminals, nulls shown as NULL
//
// # Basic Usage
//
//	f, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := f.Format(res); err != nil {
//	    log.Fatal(err)
//	}
package output
