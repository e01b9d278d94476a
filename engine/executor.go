package engine

import (
	"fmt"

	"github.com/vegasq/spl/query"
)

// Result is the output of a query: rows keyed by select identifier, plus the
// identifiers in select order.
type Result struct {
	Columns []string
	Rows    []map[string]interface{}
}

// Execute runs q over rows. The input rows are not modified.
func Execute(q *query.SPLQuery, rows []map[string]interface{}) (*Result, error) {
	if q == nil || len(q.SelectColumns) == 0 {
		return nil, fmt.Errorf("query has no select columns")
	}

	rows, err := ApplyFilter(rows, q.WhereCondition)
	if err != nil {
		return nil, fmt.Errorf("failed to apply filter: %w", err)
	}

	if q.GroupKey != "" || HasAggregate(q.SelectColumns) {
		rows, err = GroupAndAggregate(rows, q.GroupKey, q.SelectColumns)
		if err != nil {
			return nil, fmt.Errorf("failed to apply aggregation: %w", err)
		}
	} else {
		rows, err = Project(rows, q.SelectColumns)
		if err != nil {
			return nil, fmt.Errorf("failed to apply select list: %w", err)
		}
	}

	if q.LimitAndOffset != nil {
		rows = ApplyLimitOffset(rows, q.LimitAndOffset.Limit, q.LimitAndOffset.Offset)
	}

	columns := make([]string, len(q.SelectColumns))
	for i, col := range q.SelectColumns {
		columns[i] = col.Identifier
	}
	return &Result{Columns: columns, Rows: rows}, nil
}

// Project builds new rows holding only the selected columns, keyed by their
// identifiers
func Project(rows []map[string]interface{}, columns []query.SelectColumn) ([]map[string]interface{}, error) {
	result := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		out := make(map[string]interface{}, len(columns))
		for _, col := range columns {
			value, exists := row[col.Column]
			if !exists {
				return nil, fmt.Errorf("%q: %w", col.Column, ErrUnknownColumn)
			}
			out[col.Identifier] = value
		}
		result = append(result, out)
	}
	return result, nil
}

// ApplyLimitOffset skips offset rows and keeps at most limit of the rest.
// Negative values count as zero.
func ApplyLimitOffset(rows []map[string]interface{}, limit, offset int) []map[string]interface{} {
	limit = max(limit, 0)
	offset = max(offset, 0)
	if offset >= len(rows) {
		return rows[:0]
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
