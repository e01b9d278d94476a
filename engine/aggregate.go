package engine

import (
	"fmt"

	"github.com/vegasq/spl/query"
)

// group is a set of rows sharing a GROUPBY value
type group struct {
	value interface{}
	rows  []map[string]interface{}
}

// GroupAndAggregate computes one output row per group. Without a group key
// every row belongs to a single group, which yields one row even for empty
// input (so COUNT() is 0).
func GroupAndAggregate(rows []map[string]interface{}, groupKey string, columns []query.SelectColumn) ([]map[string]interface{}, error) {
	if err := validateGrouping(columns, groupKey); err != nil {
		return nil, err
	}

	if groupKey == "" {
		out, err := aggregateGroup(&group{rows: rows}, columns)
		if err != nil {
			return nil, err
		}
		return []map[string]interface{}{out}, nil
	}

	var order []string
	groups := make(map[string]*group)
	for _, row := range rows {
		value, exists := row[groupKey]
		if !exists {
			return nil, fmt.Errorf("GROUPBY %q: %w", groupKey, ErrUnknownColumn)
		}
		// %#v keeps 1 and "1" apart
		key := fmt.Sprintf("%#v", value)
		g, ok := groups[key]
		if !ok {
			g = &group{value: value}
			groups[key] = g
			order = append(order, key)
		}
		g.rows = append(g.rows, row)
	}

	result := make([]map[string]interface{}, 0, len(order))
	for _, key := range order {
		out, err := aggregateGroup(groups[key], columns)
		if err != nil {
			return nil, err
		}
		result = append(result, out)
	}
	return result, nil
}

// validateGrouping checks that bare columns are the group key
func validateGrouping(columns []query.SelectColumn, groupKey string) error {
	for _, col := range columns {
		if !col.IsAggregate() && col.Column != groupKey {
			return fmt.Errorf("%q: %w", col.Column, ErrNotGrouped)
		}
	}
	return nil
}

func aggregateGroup(g *group, columns []query.SelectColumn) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(columns))
	for _, col := range columns {
		if !col.IsAggregate() {
			out[col.Identifier] = g.value
			continue
		}
		value, err := evaluateAggregate(col, g.rows)
		if err != nil {
			return nil, err
		}
		out[col.Identifier] = value
	}
	return out, nil
}

// evaluateAggregate evaluates an aggregate function over a set of rows
func evaluateAggregate(col query.SelectColumn, rows []map[string]interface{}) (interface{}, error) {
	if col.AggregationFunction == query.AggregationCount {
		return int64(len(rows)), nil
	}

	nums, err := numbers(col, rows)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, nil // NULL when there is nothing to aggregate
	}

	switch col.AggregationFunction {
	case query.AggregationSum:
		return sum(nums), nil
	case query.AggregationAvg:
		return sum(nums) / float64(len(nums)), nil
	case query.AggregationMin:
		lo := nums[0]
		for _, n := range nums[1:] {
			if n < lo {
				lo = n
			}
		}
		return lo, nil
	case query.AggregationMax:
		hi := nums[0]
		for _, n := range nums[1:] {
			if n > hi {
				hi = n
			}
		}
		return hi, nil
	default:
		return nil, fmt.Errorf("unknown aggregate function: %s", col.AggregationFunction)
	}
}

// numbers collects the non-null values of the aggregated column
func numbers(col query.SelectColumn, rows []map[string]interface{}) ([]float64, error) {
	nums := make([]float64, 0, len(rows))
	for _, row := range rows {
		value, exists := row[col.Column]
		if !exists {
			return nil, fmt.Errorf("%s: %q: %w", col.AggregationFunction, col.Column, ErrUnknownColumn)
		}
		if value == nil {
			continue
		}
		num, ok := toFloat64(value)
		if !ok {
			return nil, fmt.Errorf("%s: %q is %T: %w", col.AggregationFunction, col.Column, value, ErrNotNumeric)
		}
		nums = append(nums, num)
	}
	return nums, nil
}

func sum(nums []float64) float64 {
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return total
}

// HasAggregate reports whether any column applies an aggregation function
func HasAggregate(columns []query.SelectColumn) bool {
	for _, col := range columns {
		if col.IsAggregate() {
			return true
		}
	}
	return false
}
