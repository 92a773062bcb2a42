package sentiment

// Status is the lifecycle position of the search pipeline.
type Status int

const (
	// StatusIdle means nothing has been submitted yet.
	StatusIdle Status = iota
	// StatusPending means the latest issued request has not settled.
	StatusPending
	// StatusSuccess means the latest issued request returned an aggregate.
	StatusSuccess
	// StatusFailure means the latest issued request failed.
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name in JSON output.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// State is the result state consumed by views. It is a value: views receive
// copies and never write back.
type State struct {
	// Status of the latest issued request.
	Status Status `json:"status"`
	// Query is the text of the latest issued request.
	Query string `json:"query,omitempty"`
	// Seq is the sequence number of the latest issued request.
	Seq uint64 `json:"seq"`
	// Version increases on every transition. Snapshots with a lower Version are older.
	Version uint64 `json:"version"`
	// Message is the service message on success or FailureMessage on failure.
	// It is empty while idle or pending.
	Message string `json:"message,omitempty"`
	// Aggregate is the last successful aggregate. It stays in place while a
	// newer request is pending and is cleared by a failure.
	Aggregate Aggregate `json:"aggregate"`
	// HasAggregate reports whether Aggregate holds a result.
	HasAggregate bool `json:"has_aggregate"`
}

// Shown returns the aggregate a view should display, and whether there is one.
// Text summaries and charts both read it so they never disagree.
func (s State) Shown() (Aggregate, bool) {
	switch s.Status {
	case StatusSuccess, StatusPending:
		if s.HasAggregate {
			return s.Aggregate, true
		}
	}
	return Aggregate{}, false
}

// Settled reports whether the latest issued request has completed.
func (s State) Settled() bool {
	return s.Status == StatusSuccess || s.Status == StatusFailure
}
