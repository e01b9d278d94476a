package engine

import (
	"fmt"

	"github.com/vegasq/spl/query"
)

// Match evaluates a WHERE condition against a row. A nil condition matches
// every row.
func Match(row map[string]interface{}, cond query.WhereCondition) (bool, error) {
	switch c := cond.(type) {
	case nil:
		return true, nil
	case *query.And:
		for _, child := range c.Conditions {
			ok, err := Match(row, child)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case *query.Or:
		for _, child := range c.Conditions {
			ok, err := Match(row, child)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case *query.Gt:
		return compareNumber(row, c.Key, func(v float64) bool { return v > c.Value }), nil
	case *query.Gte:
		return compareNumber(row, c.Key, func(v float64) bool { return v >= c.Value }), nil
	case *query.Lt:
		return compareNumber(row, c.Key, func(v float64) bool { return v < c.Value }), nil
	case *query.Lte:
		return compareNumber(row, c.Key, func(v float64) bool { return v <= c.Value }), nil
	case *query.Eq:
		value, exists := row[c.Key]
		if !exists {
			return false, nil
		}
		return equals(value, c.Value), nil
	case *query.Neq:
		value, exists := row[c.Key]
		if !exists {
			return false, nil
		}
		return !equals(value, c.Value), nil
	default:
		return false, fmt.Errorf("unsupported condition %T", cond)
	}
}

// compareNumber applies cmp to the numeric value of a row column. Missing,
// null and non-numeric values do not match.
func compareNumber(row map[string]interface{}, key string, cmp func(float64) bool) bool {
	num, ok := toFloat64(row[key])
	return ok && cmp(num)
}

// equals compares a row value with a literal
func equals(value interface{}, literal query.Value) bool {
	switch literal.Kind {
	case query.ValueNull:
		return value == nil
	case query.ValueNumber:
		num, ok := toFloat64(value)
		return ok && num == literal.Num
	case query.ValueString:
		switch v := value.(type) {
		case string:
			return v == literal.Str
		case []byte:
			return string(v) == literal.Str
		}
	}
	return false
}

// toFloat64 converts a value to float64 if possible
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// ApplyFilter returns the rows matching cond
func ApplyFilter(rows []map[string]interface{}, cond query.WhereCondition) ([]map[string]interface{}, error) {
	if cond == nil {
		return rows, nil
	}

	filtered := make([]map[string]interface{}, 0)
	for _, row := range rows {
		match, err := Match(row, cond)
		if err != nil {
			return nil, err
		}
		if match {
			filtered = append(filtered, row)
		}
	}

	return filtered, nil
}
