package schedule

import (
	"slices"

	"github.com/mhollis/lath/internal/domain"
)

// DanglingPredecessor flags an item whose predecessor id resolved to
// nothing during an auto-calculate pass. The item's dates are left alone;
// this is a warning, not a failure.
type DanglingPredecessor struct {
	ItemID        string
	PredecessorID string
}

// AutoCalculate runs one reconciliation pass over the schedule: every item
// with a predecessor is moved to start one buffer day after that
// predecessor's current end.
//
// Items are processed in collection order, not dependency order. When a
// chain's predecessor sits later in the collection than its dependent, the
// dependent reads the predecessor's pre-pass dates, so one pass is not
// guaranteed to reach a fixed point on multi-hop chains. Run it again, or
// edit a date to trigger cascade, for full transitive consistency.
func AutoCalculate(items []domain.ScheduleItem) ([]domain.ScheduleItem, []DanglingPredecessor) {
	out := slices.Clone(items)

	var dangling []DanglingPredecessor
	for i := range out {
		if out[i].PredecessorID == nil {
			continue
		}
		predIdx := indexOf(out, *out[i].PredecessorID)
		if predIdx < 0 {
			dangling = append(dangling, DanglingPredecessor{
				ItemID:        out[i].ID,
				PredecessorID: *out[i].PredecessorID,
			})
			continue
		}
		out[i].StartDate = out[predIdx].EndDate.AddDate(0, 0, BufferDays)
		out[i].EndDate = out[i].ComputeEnd()
	}
	return out, dangling
}
