// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package chart maps a result state to the input of a bar chart.
package chart

import "sentiscope/cli/internal/sentiment"

// Category identifies one bar.
type Category string

const (
	Positive Category = "positive"
	Negative Category = "negative"
	Neutral  Category = "neutral"
)

// Point is one bar: a category and its percentage.
type Point struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Value    float64  `json:"value"`
}

// Input is everything a chart renderer needs. Points are always present, in
// the order positive, negative, neutral.
type Input struct {
	Points [3]Point `json:"points"`
	Total  int      `json:"total"`
	// Empty is set when the state has no aggregate to show.
	Empty bool `json:"empty"`
}

// Categories returns the fixed bar order.
func Categories() [3]Category {
	return [3]Category{Positive, Negative, Neutral}
}

// Label returns the display label of c.
func (c Category) Label() string {
	switch c {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	case Neutral:
		return "Neutral"
	default:
		return string(c)
	}
}

// FromState builds chart input from the aggregate the state shows. It reads the
// same value as the text summary, so the two never disagree.
func FromState(s sentiment.State) Input {
	agg, ok := s.Shown()
	return fromAggregate(agg, !ok)
}

func fromAggregate(agg sentiment.Aggregate, empty bool) Input {
	values := [3]float64{agg.Positive, agg.Negative, agg.Neutral}
	var in Input
	for i, c := range Categories() {
		in.Points[i] = Point{Category: c, Label: c.Label(), Value: values[i]}
	}
	in.Total = agg.Total
	in.Empty = empty
	return in
}

