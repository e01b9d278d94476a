package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vegasq/spl/query"
)

func mustParse(t *testing.T, text string) *query.SPLQuery {
	t.Helper()
	q, err := query.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", text, err)
	}
	return q
}

func TestExecute_Projection(t *testing.T) {
	res, err := Execute(mustParse(t, "SELECT name AS who, age WHERE dept = 'eng'"), testRows())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !reflect.DeepEqual(res.Columns, []string{"who", "age"}) {
		t.Errorf("Columns = %v", res.Columns)
	}
	want := []map[string]interface{}{
		{"who": "alice", "age": int64(30)},
		{"who": "carol", "age": int64(35)},
	}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("Rows = %v, want %v", res.Rows, want)
	}
}

func TestExecute_GroupBy(t *testing.T) {
	res, err := Execute(mustParse(t, "SELECT dept, COUNT() AS n, SUM(salary), AVG(salary) AS avg, MIN(age), MAX(age) GROUPBY dept"), testRows())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := []map[string]interface{}{
		{"dept": "eng", "n": int64(2), "SUM(salary)": 220.0, "avg": 110.0, "MIN(age)": 30.0, "MAX(age)": 35.0},
		{"dept": "ops", "n": int64(2), "SUM(salary)": 80.0, "avg": 80.0, "MIN(age)": 25.0, "MAX(age)": 42.0},
		{"dept": "sales", "n": int64(1), "SUM(salary)": 70.0, "avg": 70.0, "MIN(age)": 28.0, "MAX(age)": 28.0},
	}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("Rows =\n%v\nwant\n%v", res.Rows, want)
	}
}

func TestExecute_AggregateWithoutGroup(t *testing.T) {
	res, err := Execute(mustParse(t, "SELECT COUNT() AS n, MAX(salary) AS top WHERE age > 100"), testRows())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := []map[string]interface{}{{"n": int64(0), "top": nil}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("Rows = %v, want %v", res.Rows, want)
	}
}

func TestExecute_Window(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{query: "SELECT name LIMIT 2", want: []string{"alice", "bob"}},
		{query: "SELECT name LIMIT 2 OFFSET 3", want: []string{"dave", "erin"}},
		{query: "SELECT name LIMIT 10 OFFSET 4", want: []string{"erin"}},
		{query: "SELECT name LIMIT 10 OFFSET 9", want: []string{}},
		{query: "SELECT name LIMIT 0", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res, err := Execute(mustParse(t, tt.query), testRows())
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			got := make([]string, 0, len(res.Rows))
			for _, row := range res.Rows {
				got = append(got, row["name"].(string))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("names = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyLimitOffset_Negative(t *testing.T) {
	tests := []struct {
		name          string
		limit, offset int
		want          int
	}{
		{name: "negative limit", limit: -1, offset: 0, want: 0},
		{name: "negative offset", limit: 2, offset: -3, want: 2},
		{name: "both negative", limit: -5, offset: -5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyLimitOffset(testRows(), tt.limit, tt.offset)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}

	q := mustParse(t, "SELECT name")
	q.LimitAndOffset = &query.LimitAndOffset{Limit: -1, Offset: -1}
	res, err := Execute(q, testRows())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(res.Rows) != 0 {
		t.Errorf("rows = %v, want none", res.Rows)
	}
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  error
	}{
		{name: "unknown projected column", query: "SELECT nope", want: ErrUnknownColumn},
		{name: "unknown group key", query: "SELECT COUNT() GROUPBY nope", want: ErrUnknownColumn},
		{name: "unknown aggregated column", query: "SELECT SUM(nope)", want: ErrUnknownColumn},
		{name: "bare column with aggregate", query: "SELECT name, COUNT()", want: ErrNotGrouped},
		{name: "bare column not the key", query: "SELECT name GROUPBY dept", want: ErrNotGrouped},
		{name: "aggregate over strings", query: "SELECT SUM(name)", want: ErrNotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Execute(mustParse(t, tt.query), testRows())
			if !errors.Is(err, tt.want) {
				t.Errorf("Execute() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Execute(nil, testRows()); err == nil {
		t.Error("expected error for nil query")
	}
}

func TestExecute_DoesNotModifyInput(t *testing.T) {
	rows := testRows()
	if _, err := Execute(mustParse(t, "SELECT name AS n LIMIT 1"), rows); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !reflect.DeepEqual(rows, testRows()) {
		t.Error("input rows were modified")
	}
}
