package sentiment

import "math"

// RawAggregate mirrors the analysis response fields as optional values.
// A nil field was absent from the response.
type RawAggregate struct {
	Total    *float64
	Positive *float64
	Negative *float64
	Neutral  *float64
}

// Normalize converts a raw aggregate into an Aggregate. Absent fields become 0,
// totals are truncated and clamped to [0, math.MaxInt], percentages are
// clamped to [0,100].
// It is the only place where response values are defaulted.
func Normalize(raw RawAggregate) Aggregate {
	return Aggregate{
		Total:    clampTotal(valueOrZero(raw.Total)),
		Positive: clampPct(valueOrZero(raw.Positive)),
		Negative: clampPct(valueOrZero(raw.Negative)),
		Neutral:  clampPct(valueOrZero(raw.Neutral)),
	}
}

func clampTotal(v float64) int {
	v = math.Trunc(v)
	switch {
	case v <= 0:
		return 0
	// float64(math.MaxInt) rounds up to a power of two, so anything at or
	// above it does not fit in an int.
	case v >= float64(math.MaxInt):
		return math.MaxInt
	}
	return int(v)
}

func valueOrZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}

func clampPct(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
