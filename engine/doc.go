// Package engine evaluates parsed SPL queries against rows held in memory.
//
// Rows are represented as []map[string]interface{}, the shape produced by the
// reader package. Execute applies the WHERE predicate, then either groups and
// aggregates (when the query has a GROUPBY key or any aggregation) or projects
// the selected columns, and finally applies LIMIT/OFFSET:
//
//	q, err := query.Parse("SELECT dept, AVG(salary) AS avg WHERE age > 30 GROUPBY dept")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := engine.Execute(q, rows)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Result columns are the select identifiers in query order. Groups appear in
// the order their key is first seen.
//
// # Comparison Semantics
//
//   - Numeric values of any Go numeric type are compared as float64
//   - A missing column makes the comparison false
//   - = NULL matches nil values, != NULL matches everything else
//   - Type mismatches are false for = and relational operators, true for !=
//
// # Plotting
//
// BuildPlot turns the result of a query with a PLOT clause into the series a
// chart renderer needs: labels and values for BAR, x/y pairs for LINE and
// SCATTER.
package engine
