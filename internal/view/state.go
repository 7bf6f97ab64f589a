package view

import "time"

// State is the explicit view state the caller threads through the
// engines: the free-text query, the date range, and which buckets are
// expanded. It is plain data passed as a parameter, never ambient, so
// the engines stay pure and independently testable. Expansion is a
// presentation flag only; the grouping contract ignores it.
type State struct {
	Query    string
	From     *time.Time
	To       *time.Time
	Expanded map[string]bool
}

// Filter derives the filter for this state
func (s State) Filter() Filter {
	return NewFilter(s.Query, s.From, s.To)
}

// IsExpanded reports whether a bucket is expanded in this state
func (s State) IsExpanded(bucket string) bool {
	return s.Expanded[bucket]
}

// DefaultOrderHubState returns the initial order hub view state: only
// the review queue expanded.
func DefaultOrderHubState() State {
	return State{
		Expanded: map[string]bool{
			BucketWaitingForReview: true,
			BucketUploadingPending: false,
			BucketUploadSuccessful: false,
			BucketArchived:         false,
		},
	}
}
