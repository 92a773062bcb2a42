// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package view

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentiscope/cli/internal/chart"
	"sentiscope/cli/internal/sentiment"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	agg := sentiment.Aggregate{Total: 120, Positive: 55.5, Negative: 20.1, Neutral: 24.4}

	tests := []struct {
		name        string
		state       sentiment.State
		contains    []string
		notContains []string
	}{
		{
			name:        "idle",
			state:       sentiment.State{Status: sentiment.StatusIdle},
			contains:    []string{"Enter a topic"},
			notContains: []string{"Total", "Positive"},
		},
		{
			name:     "success",
			state:    sentiment.State{Status: sentiment.StatusSuccess, Query: "climate change", Message: "ok", Aggregate: agg, HasAggregate: true},
			contains: []string{"ok", "120", "55.5%", "20.1%", "24.4%", "Positive", "Negative", "Neutral"},
		},
		{
			name:     "pending keeps previous numbers",
			state:    sentiment.State{Status: sentiment.StatusPending, Query: "golang", Aggregate: agg, HasAggregate: true},
			contains: []string{`Searching for "golang"`, "55.5%"},
		},
		{
			name:        "failure",
			state:       sentiment.State{Status: sentiment.StatusFailure, Query: "x", Message: sentiment.FailureMessage},
			contains:    []string{"An error occurred while searching."},
			notContains: []string{"Total", "%"},
		},
		{
			name:        "all zeros",
			state:       sentiment.State{Status: sentiment.StatusSuccess, Message: "nothing found", HasAggregate: true},
			contains:    []string{"nothing found", "Positive 0.0%", "Negative 0.0%", "Neutral 0.0%"},
			notContains: []string{"no sentiment data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewRenderer(&buf, 30).Render(tt.state))

			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestChartPlaceholderForEmptyInput(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, 0)

	out, err := r.Chart(chart.FromState(sentiment.State{}))
	require.NoError(t, err)
	assert.Contains(t, out, "no sentiment data")
}

func TestChartLabelsMatchSummary(t *testing.T) {
	tests := []struct {
		name string
		agg  sentiment.Aggregate
		want []string
	}{
		{
			name: "fractional percentages",
			agg:  sentiment.Aggregate{Total: 120, Positive: 55.5, Negative: 20.1, Neutral: 24.4},
			want: []string{"Positive 55.5%", "Negative 20.1%", "Neutral 24.4%"},
		},
		{
			name: "below half a percent",
			agg:  sentiment.Aggregate{Total: 1000, Positive: 0.4, Negative: 0.3, Neutral: 0.2},
			want: []string{"Positive 0.4%", "Negative 0.3%", "Neutral 0.2%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := sentiment.State{Status: sentiment.StatusSuccess, Aggregate: tt.agg, HasAggregate: true}

			out, err := NewRenderer(&bytes.Buffer{}, 40).Chart(chart.FromState(state))
			require.NoError(t, err)
			assert.NotContains(t, out, "no sentiment data")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}

			var buf bytes.Buffer
			require.NoError(t, NewRenderer(&buf, 40).Render(state))
			row := summaryRows(tt.agg)[1]
			for _, cell := range row[1:] {
				assert.Equal(t, 2, strings.Count(buf.String(), cell), "table and chart should both show %s", cell)
			}
		})
	}
}

func TestToBarsScalesAndOrders(t *testing.T) {
	in := chart.FromState(sentiment.State{
		Status:       sentiment.StatusSuccess,
		Aggregate:    sentiment.Aggregate{Positive: 0.4, Negative: 49.5, Neutral: 50.2},
		HasAggregate: true,
	})

	bars, nonZero := toBars(in)
	require.Len(t, bars, 3)
	assert.True(t, nonZero)
	assert.Equal(t, "Positive 0.4%", bars[0].Label)
	assert.Equal(t, "Negative 49.5%", bars[1].Label)
	assert.Equal(t, "Neutral 50.2%", bars[2].Label)
	assert.Equal(t, 4, bars[0].Value)
	assert.Equal(t, 495, bars[1].Value)
	assert.Equal(t, 502, bars[2].Value)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0.0%", Percent(0))
	assert.Equal(t, "100.0%", Percent(100))
	assert.Equal(t, "33.3%", Percent(33.333))
}
