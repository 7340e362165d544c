package domain

import "time"

// MinDurationDays is the floor applied to every schedule item duration.
// Anything at or below zero coming from the edit layer clamps to this.
const MinDurationDays = 1

// ScheduleItem is one unit of scheduled work. It is created one-to-one with
// an estimate line item at generation time and freely editable afterward.
//
// EndDate is derived: it always equals StartDate + DurationDays and is never
// set directly. PredecessorID is the single effective predecessor; an item
// with no predecessor owns its StartDate outright and is never shifted by
// cascade.
type ScheduleItem struct {
	ID              string
	ProjectID       string
	Seq             int // 1-based position within the schedule, for display and CLI reference
	Name            string
	Description     string
	Category        string // trade tag, display grouping only
	StartDate       time.Time
	DurationDays    int
	EndDate         time.Time
	PredecessorID   *string
	Status          ItemStatus
	PercentComplete int
}

// ComputeEnd returns StartDate + DurationDays at day granularity.
func (i *ScheduleItem) ComputeEnd() time.Time {
	return i.StartDate.AddDate(0, 0, i.DurationDays)
}

// ClampDuration enforces the minimum one-day duration.
func ClampDuration(days int) int {
	if days < MinDurationDays {
		return MinDurationDays
	}
	return days
}

// ProjectSchedule is the whole-schedule aggregate persisted wholesale.
// DurationDays and PercentComplete are derived and restamped at save time.
type ProjectSchedule struct {
	ProjectID       string
	Items           []ScheduleItem
	StartDate       time.Time
	EndDate         time.Time // zero when the schedule has no items
	DurationDays    int
	PercentComplete int
	UpdatedAt       time.Time
}

// Item returns a pointer to the item with the given id, or nil.
func (s *ProjectSchedule) Item(id string) *ScheduleItem {
	for idx := range s.Items {
		if s.Items[idx].ID == id {
			return &s.Items[idx]
		}
	}
	return nil
}

// ItemBySeq returns a pointer to the item with the given display number, or nil.
func (s *ProjectSchedule) ItemBySeq(seq int) *ScheduleItem {
	for idx := range s.Items {
		if s.Items[idx].Seq == seq {
			return &s.Items[idx]
		}
	}
	return nil
}
