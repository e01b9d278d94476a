package query

import (
	"encoding/json"
	"strconv"
)

// PlotFunction names the chart kind of a PLOT clause.
type PlotFunction string

const (
	PlotBar     PlotFunction = "BAR"
	PlotLine    PlotFunction = "LINE"
	PlotScatter PlotFunction = "SCATTER"
)

// AggregationFunction names an aggregate applied to a selected column.
// The zero value means a bare column reference.
type AggregationFunction string

const (
	AggregationMin   AggregationFunction = "MIN"
	AggregationMax   AggregationFunction = "MAX"
	AggregationAvg   AggregationFunction = "AVG"
	AggregationSum   AggregationFunction = "SUM"
	AggregationCount AggregationFunction = "COUNT"
)

// SPLQuery represents a parsed SPL query
type SPLQuery struct {
	PlotClause     PlotClause      `json:"plotClause,omitempty"`
	SelectColumns  []SelectColumn  `json:"selectColumns"`
	WhereCondition WhereCondition  `json:"whereCondition,omitempty"`
	GroupKey       string          `json:"groupKey,omitempty"`
	LimitAndOffset *LimitAndOffset `json:"limitAndOffset,omitempty"`
}

// LimitAndOffset is the result window of a query.
type LimitAndOffset struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// SelectColumn describes one projected column. Column is empty for COUNT.
type SelectColumn struct {
	Identifier          string              `json:"identifier"`
	Column              string              `json:"column,omitempty"`
	AggregationFunction AggregationFunction `json:"aggregationFunction,omitempty"`
}

// IsAggregate reports whether the column applies an aggregation function.
func (c SelectColumn) IsAggregate() bool {
	return c.AggregationFunction != ""
}

// PlotClause is either a *CategoricalPlot or a *PointPlot.
type PlotClause interface {
	Function() PlotFunction
	plotClause()
}

// CategoricalPlot is a BAR plot.
type CategoricalPlot struct {
	CategoriesIdentifier string
	ValuesIdentifier     string
}

// Function implements PlotClause.
func (*CategoricalPlot) Function() PlotFunction { return PlotBar }
func (*CategoricalPlot) plotClause()            {}

// MarshalJSON flattens the plot function tag into the object.
func (p *CategoricalPlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PlotFunction         PlotFunction `json:"plotFunction"`
		CategoriesIdentifier string       `json:"categoriesIdentifier"`
		ValuesIdentifier     string       `json:"valuesIdentifier"`
	}{PlotBar, p.CategoriesIdentifier, p.ValuesIdentifier})
}

// PointPlot is a LINE or SCATTER plot.
type PointPlot struct {
	PlotFunction PlotFunction
	XIdentifier  string
	YIdentifier  string
}

// Function implements PlotClause.
func (p *PointPlot) Function() PlotFunction { return p.PlotFunction }
func (*PointPlot) plotClause()              {}

// MarshalJSON flattens the plot function tag into the object.
func (p *PointPlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PlotFunction PlotFunction `json:"plotFunction"`
		XIdentifier  string       `json:"xIdentifier"`
		YIdentifier  string       `json:"yIdentifier"`
	}{p.PlotFunction, p.XIdentifier, p.YIdentifier})
}

// WhereCondition is a node of the predicate tree. The implementations are
// *And, *Or, *Gt, *Gte, *Lt, *Lte, *Eq and *Neq.
type WhereCondition interface {
	whereCondition()
}

// And holds two or more conditions that must all be true.
type And struct {
	Conditions []WhereCondition
}

// Or holds two or more conditions of which at least one must be true.
type Or struct {
	Conditions []WhereCondition
}

// Gt is key > value.
type Gt struct {
	Key   string
	Value float64
}

// Gte is key >= value.
type Gte struct {
	Key   string
	Value float64
}

// Lt is key < value.
type Lt struct {
	Key   string
	Value float64
}

// Lte is key <= value.
type Lte struct {
	Key   string
	Value float64
}

// Eq is key = value.
type Eq struct {
	Key   string
	Value Value
}

// Neq is key != value.
type Neq struct {
	Key   string
	Value Value
}

func (*And) whereCondition() {}
func (*Or) whereCondition()  {}
func (*Gt) whereCondition()  {}
func (*Gte) whereCondition() {}
func (*Lt) whereCondition()  {}
func (*Lte) whereCondition() {}
func (*Eq) whereCondition()  {}
func (*Neq) whereCondition() {}

func (c *And) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]WhereCondition{"and": c.Conditions})
}

func (c *Or) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]WhereCondition{"or": c.Conditions})
}

func (c *Gt) MarshalJSON() ([]byte, error)  { return marshalComparison("gt", c.Key, c.Value) }
func (c *Gte) MarshalJSON() ([]byte, error) { return marshalComparison("gte", c.Key, c.Value) }
func (c *Lt) MarshalJSON() ([]byte, error)  { return marshalComparison("lt", c.Key, c.Value) }
func (c *Lte) MarshalJSON() ([]byte, error) { return marshalComparison("lte", c.Key, c.Value) }
func (c *Eq) MarshalJSON() ([]byte, error)  { return marshalComparison("eq", c.Key, c.Value) }
func (c *Neq) MarshalJSON() ([]byte, error) { return marshalComparison("neq", c.Key, c.Value) }

type comparisonJSON struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func marshalComparison(op, key string, value any) ([]byte, error) {
	return json.Marshal(map[string]comparisonJSON{op: {Key: key, Value: value}})
}

// ValueKind tags the literal held by a Value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueString
	ValueNumber
)

// Value is the right-hand side of an equality comparison: a string, a number
// or null. The zero Value is null.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
}

// StringValue returns a string literal value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// NumberValue returns a numeric literal value.
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Num: n} }

// NullValue returns the null literal.
func NullValue() Value { return Value{Kind: ValueNull} }

// Interface returns the value as string, float64 or nil.
func (v Value) Interface() any {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return v.Num
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return strconv.Quote(v.Str)
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	default:
		return LiteralNull
	}
}

// MarshalJSON encodes the value as a JSON string, number or null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}
