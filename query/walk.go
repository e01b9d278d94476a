package query

// Walk calls fn for cond and each of its descendants, depth-first in source
// order. Children are skipped when fn returns false.
func Walk(cond WhereCondition, fn func(WhereCondition) bool) {
	if cond == nil || !fn(cond) {
		return
	}
	switch c := cond.(type) {
	case *And:
		for _, child := range c.Conditions {
			Walk(child, fn)
		}
	case *Or:
		for _, child := range c.Conditions {
			Walk(child, fn)
		}
	}
}

// ConditionKey returns the column compared by a leaf condition, or "" for
// And and Or.
func ConditionKey(cond WhereCondition) string {
	switch c := cond.(type) {
	case *Gt:
		return c.Key
	case *Gte:
		return c.Key
	case *Lt:
		return c.Key
	case *Lte:
		return c.Key
	case *Eq:
		return c.Key
	case *Neq:
		return c.Key
	default:
		return ""
	}
}

// Columns returns the source columns referenced anywhere in q, without
// duplicates, in order of first appearance. Aliases and plot identifiers that
// name select columns are not source columns and are left out.
func Columns(q *SPLQuery) []string {
	seen := make(map[string]bool)
	var columns []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			columns = append(columns, name)
		}
	}

	for _, col := range q.SelectColumns {
		add(col.Column)
	}
	Walk(q.WhereCondition, func(c WhereCondition) bool {
		add(ConditionKey(c))
		return true
	})
	add(q.GroupKey)
	return columns
}
