// Package charts renders the dashboard charts as PNG images.
package charts

import (
	"bytes"
	"fmt"

	"budget/internal/core"

	"github.com/wcharczuk/go-chart/v2"
)

// SpendingPie renders the share of total spend per category. It returns
// (nil, nil) when there is nothing to draw: categories with zero spend carry
// no slice.
func SpendingPie(rows []core.CategorySummary) ([]byte, error) {
	var total int64
	for _, r := range rows {
		total += r.Spent
	}
	if total <= 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(rows))
	for _, r := range rows {
		if r.Spent <= 0 {
			continue
		}
		pct := float64(r.Spent) / float64(total) * 100
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %d (%.1f%%)", r.Name, r.Spent, pct),
			Value: float64(r.Spent),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 500,
		Values: values,
		Background: chart.Style{
			Padding:   chart.Box{Top: 30, Left: 30, Right: 30, Bottom: 30},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render spending pie: %w", err)
	}
	return buffer.Bytes(), nil
}

// BudgetBars renders budget next to spent for every category, so over-budget
// categories stand out as a spent bar taller than its budget bar.
func BudgetBars(rows []core.CategorySummary) ([]byte, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(rows)*2)
	for _, r := range rows {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s budget: %d", r.Name, r.Budget),
			Value: float64(r.Budget),
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				FillColor:   chart.ColorBlue.WithAlpha(100),
				FontSize:    11,
				FontColor:   chart.ColorBlack,
			},
		})
		spentColor := chart.ColorGreen
		if r.Remaining < 0 {
			spentColor = chart.ColorRed
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s spent: %d", r.Name, r.Spent),
			Value: float64(r.Spent),
			Style: chart.Style{
				StrokeColor: spentColor,
				FillColor:   spentColor,
				FontSize:    11,
				FontColor:   chart.ColorBlack,
			},
		})
	}

	graph := chart.BarChart{
		Title: "Budget vs spent",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:    1000,
		Height:   500,
		BarWidth: 40,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 30, Right: 30, Bottom: 30},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  11,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render budget bars: %w", err)
	}
	return buffer.Bytes(), nil
}
