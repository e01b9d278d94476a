package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/vegasq/spl/engine"
	"github.com/vegasq/spl/output"
	"github.com/vegasq/spl/query"
	"github.com/vegasq/spl/reader"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	query   string
	format  string
	ast     bool
	plot    bool
	schema  bool
	verbose bool
	source  string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("spl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.query, "q", "", "SPL query (read from stdin when empty)")
	fs.StringVar(&opts.format, "f", "jsonl", "Output format: "+strings.Join(output.Formats, ", "))
	fs.BoolVar(&opts.ast, "ast", false, "Print the parsed query as JSON and exit")
	fs.BoolVar(&opts.plot, "plot", false, "Print plot series JSON instead of rows")
	fs.BoolVar(&opts.schema, "schema", false, "Show the file's columns instead of running a query")
	fs.BoolVar(&opts.verbose, "v", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: spl [options] [file.parquet | 'glob/*.parquet']\n\n")
		fmt.Fprintf(stderr, "Parse an SPL query and run it against parquet files.\n\n")
		fmt.Fprintf(stderr, "IMPORTANT: All flags must come BEFORE file arguments.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  spl -ast -q \"SELECT a, COUNT() GROUPBY a\"\n")
		fmt.Fprintf(stderr, "  spl -q \"SELECT name, age WHERE age > 30 LIMIT 10\" data.parquet\n")
		fmt.Fprintf(stderr, "  spl -plot -q \"PLOT BAR(dept, n) SELECT dept, COUNT() AS n GROUPBY dept\" data.parquet\n")
		fmt.Fprintf(stderr, "  spl -schema -f table data.parquet\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.schema && opts.query != "" {
		return nil, fmt.Errorf("-schema and -q cannot be used together")
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one file argument, got %d", fs.NArg())
	}
	opts.source = fs.Arg(0)
	return opts, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", uuid.NewString())
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	logger := newLogger(stderr, opts.verbose)

	if opts.schema {
		return runSchema(opts, stdout, stderr, logger)
	}

	text := opts.query
	if text == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			logger.Error("failed to read query from stdin", "error", err)
			return exitFailure
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		fmt.Fprintf(stderr, "Error: empty query\n")
		return exitUsage
	}

	q, err := query.Parse(text)
	if err != nil {
		reportSyntaxError(stderr, text, err)
		return exitUsage
	}
	logger.Debug("parsed query", "columns", len(q.SelectColumns), "filtered", q.WhereCondition != nil)

	if opts.ast {
		if err := writeJSON(stdout, q); err != nil {
			logger.Error("failed to write query", "error", err)
			return exitFailure
		}
		return exitOK
	}

	if opts.source == "" {
		fmt.Fprintf(stderr, "Error: missing parquet file argument\n")
		return exitUsage
	}

	formatter, err := output.New(opts.format, stdout)
	if err != nil && !opts.plot {
		fmt.Fprintf(stderr, "Error: %v\nSupported formats: %s\n", err, strings.Join(output.Formats, ", "))
		return exitUsage
	}

	if err := checkColumns(q, opts.source); err != nil {
		logger.Error("query does not match file schema", "source", opts.source, "error", err)
		return exitFailure
	}

	rows, err := reader.ReadFiles(opts.source)
	if err != nil {
		logger.Error("failed to read rows", "source", opts.source, "error", err)
		return exitFailure
	}
	logger.Debug("loaded rows", "source", opts.source, "rows", len(rows))

	res, err := engine.Execute(q, rows)
	if err != nil {
		logger.Error("failed to execute query", "error", err)
		return exitFailure
	}
	logger.Debug("executed query", "rows", len(res.Rows))

	if opts.plot {
		data, err := engine.BuildPlot(q, res)
		if err != nil {
			logger.Error("failed to build plot", "error", err)
			return exitFailure
		}
		if err := writeJSON(stdout, data); err != nil {
			logger.Error("failed to write plot", "error", err)
			return exitFailure
		}
		return exitOK
	}

	if err := formatter.Format(res); err != nil {
		logger.Error("failed to format output", "format", opts.format, "error", err)
		return exitFailure
	}
	return exitOK
}

// checkColumns verifies every source column in q exists in the file schema
func checkColumns(q *query.SPLQuery, source string) error {
	available, err := reader.ColumnNames(source)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(available))
	for _, name := range available {
		known[name] = true
	}

	var missing []string
	for _, name := range query.Columns(q) {
		if !known[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (available: %s)", engine.ErrUnknownColumn,
			strings.Join(missing, ", "), strings.Join(available, ", "))
	}
	return nil
}

// runSchema prints the leaf columns of the file, or of the first file a glob
// pattern matches, through the selected formatter
func runSchema(opts *options, stdout, stderr io.Writer, logger *slog.Logger) int {
	if opts.source == "" {
		fmt.Fprintf(stderr, "Error: missing parquet file argument\n")
		return exitUsage
	}
	formatter, err := output.New(opts.format, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\nSupported formats: %s\n", err, strings.Join(output.Formats, ", "))
		return exitUsage
	}

	r, matched, err := reader.OpenSchema(opts.source)
	if err != nil {
		logger.Error("failed to open file", "source", opts.source, "error", err)
		return exitFailure
	}
	defer func() { _ = r.Close() }()
	if matched > 1 {
		logger.Info("showing schema of first match", "path", r.Path(), "matched", matched)
	}

	res := &engine.Result{Columns: []string{"name", "type", "optional", "repeated"}}
	for _, col := range r.Columns() {
		res.Rows = append(res.Rows, map[string]interface{}{
			"name":     col.Name,
			"type":     col.Type,
			"optional": col.Optional,
			"repeated": col.Repeated,
		})
	}
	if err := formatter.Format(res); err != nil {
		logger.Error("failed to format schema", "format", opts.format, "error", err)
		return exitFailure
	}
	return exitOK
}

// reportSyntaxError prints the error with a caret under the offending token
func reportSyntaxError(w io.Writer, text string, err error) {
	var se *query.SyntaxError
	if !errors.As(err, &se) {
		fmt.Fprintf(w, "Error parsing query: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Error parsing query: %s\n\n", se.Msg)
	start := se.Token.Pos
	if strings.Contains(text, "\n") || start > len(text) {
		fmt.Fprintf(w, "  at offset %d\n", start)
		return
	}
	fmt.Fprintf(w, "  %s\n  %s^\n", text, strings.Repeat(" ", start))
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
