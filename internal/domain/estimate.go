package domain

import "time"

// EstimateLineItem is one line of a project estimate. Line items seed the
// initial schedule: one schedule item per line, grouped by trade category.
type EstimateLineItem struct {
	ID          string
	ProjectID   string
	Category    string // trade tag, e.g. "framing", "electrical"
	Name        string
	Description string
	AmountCents int64
	Position    int // entry order within the estimate
	CreatedAt   time.Time
}
