// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package view renders result states to a plain terminal with pterm.
// It is used by commands that print one settled result and exit.
package view

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pterm/pterm"

	"sentiscope/cli/internal/chart"
	"sentiscope/cli/internal/sentiment"
)

// defaultChartWidth is used when the terminal width is unknown.
const defaultChartWidth = 40

// Renderer writes result states to a terminal.
type Renderer struct {
	w          io.Writer
	chartWidth int
}

// NewRenderer creates a renderer writing to w. A chartWidth <= 0 selects the default.
func NewRenderer(w io.Writer, chartWidth int) *Renderer {
	if chartWidth <= 0 {
		chartWidth = defaultChartWidth
	}
	return &Renderer{w: w, chartWidth: chartWidth}
}

// Render writes the status line, the summary table and the bar chart for s.
// The table and the chart are built from the same shown aggregate.
func (r *Renderer) Render(s sentiment.State) error {
	if _, err := fmt.Fprintln(r.w, StatusLine(s)); err != nil {
		return err
	}

	agg, ok := s.Shown()
	if !ok {
		return nil
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(summaryRows(agg)).Srender()
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	if _, err := fmt.Fprintf(r.w, "\n%s\n\n", table); err != nil {
		return err
	}

	bars, err := r.Chart(chart.FromState(s))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.w, bars)
	return err
}

// StatusLine describes the request lifecycle in one line.
func StatusLine(s sentiment.State) string {
	switch s.Status {
	case sentiment.StatusPending:
		return pterm.NewStyle(pterm.FgLightCyan).Sprintf("Searching for %q...", s.Query)
	case sentiment.StatusSuccess:
		msg := s.Message
		if msg == "" {
			msg = "Search complete."
		}
		return pterm.NewStyle(pterm.FgGreen).Sprint("✓ ") + msg
	case sentiment.StatusFailure:
		return pterm.NewStyle(pterm.FgRed).Sprint("❌ " + s.Message)
	default:
		return pterm.NewStyle(pterm.FgGray).Sprint("Enter a topic or keyword to analyze.")
	}
}

func summaryRows(agg sentiment.Aggregate) pterm.TableData {
	return pterm.TableData{
		{"Total", "Positive", "Negative", "Neutral"},
		{
			fmt.Sprintf("%d", agg.Total),
			Percent(agg.Positive),
			Percent(agg.Negative),
			Percent(agg.Neutral),
		},
	}
}

// Percent formats a percentage with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Chart renders in as a horizontal bar chart. Each bar is labelled with the
// same formatted percentage the summary table shows. Empty input renders as a
// placeholder line.
func (r *Renderer) Chart(in chart.Input) (string, error) {
	if in.Empty {
		return pterm.NewStyle(pterm.FgGray).Sprint("(no sentiment data to chart)"), nil
	}
	bars, nonZero := toBars(in)
	if !nonZero {
		// pterm cannot scale a chart whose bars are all zero.
		lines := make([]string, 0, len(bars))
		for _, b := range bars {
			lines = append(lines, b.Style.Sprint(b.Label))
		}
		return strings.Join(lines, "\n"), nil
	}
	out, err := pterm.DefaultBarChart.
		WithBars(bars).
		WithHorizontal().
		WithWidth(r.chartWidth).
		Srender()
	if err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return out, nil
}

var barStyles = map[chart.Category]*pterm.Style{
	chart.Positive: pterm.NewStyle(pterm.FgGreen),
	chart.Negative: pterm.NewStyle(pterm.FgRed),
	chart.Neutral:  pterm.NewStyle(pterm.FgGray),
}

// barScale keeps one decimal of the percentage in the integer bar length.
const barScale = 10

// toBars converts points to pterm bars labelled with Percent. It reports
// whether any bar has a non-zero length.
func toBars(in chart.Input) (pterm.Bars, bool) {
	bars := make(pterm.Bars, 0, len(in.Points))
	nonZero := false
	for _, p := range in.Points {
		v := int(math.Round(p.Value * barScale))
		if v > 0 {
			nonZero = true
		}
		bars = append(bars, pterm.Bar{
			Label: p.Label + " " + Percent(p.Value),
			Value: v,
			Style: barStyles[p.Category],
		})
	}
	return bars, nonZero
}
