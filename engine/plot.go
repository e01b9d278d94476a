package engine

import (
	"fmt"

	"github.com/vegasq/spl/query"
)

// PlotData holds chart series derived from a query result. BAR plots fill
// Categories and Values; LINE and SCATTER plots fill X and Y.
type PlotData struct {
	PlotFunction query.PlotFunction `json:"plotFunction"`
	Categories   []string           `json:"categories,omitempty"`
	Values       []float64          `json:"values,omitempty"`
	X            []float64          `json:"x,omitempty"`
	Y            []float64          `json:"y,omitempty"`
}

// BuildPlot extracts the series named by the query's PLOT clause from res.
// Rows with a null in either series are skipped.
func BuildPlot(q *query.SPLQuery, res *Result) (*PlotData, error) {
	if q.PlotClause == nil {
		return nil, ErrNoPlot
	}

	switch p := q.PlotClause.(type) {
	case *query.CategoricalPlot:
		if err := requireColumns(res, p.CategoriesIdentifier, p.ValuesIdentifier); err != nil {
			return nil, err
		}
		data := &PlotData{PlotFunction: query.PlotBar}
		for _, row := range res.Rows {
			label, value := row[p.CategoriesIdentifier], row[p.ValuesIdentifier]
			if label == nil || value == nil {
				continue
			}
			num, ok := toFloat64(value)
			if !ok {
				return nil, fmt.Errorf("plot values %q is %T: %w", p.ValuesIdentifier, value, ErrNotNumeric)
			}
			data.Categories = append(data.Categories, fmt.Sprint(label))
			data.Values = append(data.Values, num)
		}
		return data, nil
	case *query.PointPlot:
		if err := requireColumns(res, p.XIdentifier, p.YIdentifier); err != nil {
			return nil, err
		}
		data := &PlotData{PlotFunction: p.PlotFunction}
		for _, row := range res.Rows {
			xv, yv := row[p.XIdentifier], row[p.YIdentifier]
			if xv == nil || yv == nil {
				continue
			}
			x, ok := toFloat64(xv)
			if !ok {
				return nil, fmt.Errorf("plot x %q is %T: %w", p.XIdentifier, xv, ErrNotNumeric)
			}
			y, ok := toFloat64(yv)
			if !ok {
				return nil, fmt.Errorf("plot y %q is %T: %w", p.YIdentifier, yv, ErrNotNumeric)
			}
			data.X = append(data.X, x)
			data.Y = append(data.Y, y)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported plot clause %T", q.PlotClause)
	}
}

func requireColumns(res *Result, names ...string) error {
	for _, name := range names {
		found := false
		for _, col := range res.Columns {
			if col == name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("plot references %q, which is not selected: %w", name, ErrUnknownColumn)
		}
	}
	return nil
}
