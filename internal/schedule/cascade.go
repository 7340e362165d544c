package schedule

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/mhollis/lath/internal/domain"
)

// ErrItemNotFound is returned when a patch or edge references an id that
// does not exist in the schedule.
var ErrItemNotFound = errors.New("schedule item not found")

// CycleError reports a dependency cycle, naming the item at which the
// cycle was detected.
type CycleError struct {
	ItemID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency detected at item %s", e.ItemID)
}

// ItemPatch is a partial update to one schedule item. Nil fields are left
// untouched. Supplying StartDate or DurationDays recomputes the item's end
// date and cascades the shift to every transitive dependent; all other
// fields apply verbatim with no date side effects.
type ItemPatch struct {
	Name            *string
	Description     *string
	Category        *string
	StartDate       *time.Time
	DurationDays    *int
	Status          *domain.ItemStatus
	PercentComplete *int
}

func (p ItemPatch) touchesDates() bool {
	return p.StartDate != nil || p.DurationDays != nil
}

// ApplyPatch applies a patch to the item with the given id and, when the
// patch moved its dates, pushes consistent shifts through the dependency
// graph. The input slice is not mutated; the updated copy is returned.
//
// A malformed graph containing a cycle is reported as a CycleError rather
// than recursed into.
func ApplyPatch(items []domain.ScheduleItem, id string, patch ItemPatch) ([]domain.ScheduleItem, error) {
	out := slices.Clone(items)
	idx := indexOf(out, id)
	if idx < 0 {
		return nil, fmt.Errorf("applying patch to %s: %w", id, ErrItemNotFound)
	}

	item := &out[idx]
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}
	if patch.PercentComplete != nil {
		item.PercentComplete = *patch.PercentComplete
	}
	if patch.StartDate != nil {
		item.StartDate = *patch.StartDate
	}
	if patch.DurationDays != nil {
		item.DurationDays = domain.ClampDuration(*patch.DurationDays)
	}

	if !patch.touchesDates() {
		return out, nil
	}

	item.EndDate = item.ComputeEnd()
	visited := map[string]bool{id: true}
	if err := cascade(out, idx, visited); err != nil {
		return nil, err
	}
	return out, nil
}

// SetPredecessor commits a dependency edge after checking that it would not
// close a cycle: the dependent must not already be an ancestor of the
// chosen predecessor. On success the dependent is repositioned to start one
// buffer day after its predecessor ends, and its own dependents cascade.
func SetPredecessor(items []domain.ScheduleItem, id, predecessorID string) ([]domain.ScheduleItem, error) {
	out := slices.Clone(items)
	idx := indexOf(out, id)
	if idx < 0 {
		return nil, fmt.Errorf("linking %s: %w", id, ErrItemNotFound)
	}
	predIdx := indexOf(out, predecessorID)
	if predIdx < 0 {
		return nil, fmt.Errorf("linking %s to predecessor %s: %w", id, predecessorID, ErrItemNotFound)
	}
	if id == predecessorID {
		return nil, &CycleError{ItemID: id}
	}

	// Ancestor reachability: walking up from the candidate predecessor must
	// never arrive back at the dependent.
	seen := map[string]bool{}
	for cur := predIdx; cur >= 0; {
		curID := out[cur].ID
		if curID == id {
			return nil, &CycleError{ItemID: id}
		}
		if seen[curID] {
			return nil, &CycleError{ItemID: curID}
		}
		seen[curID] = true
		if out[cur].PredecessorID == nil {
			break
		}
		cur = indexOf(out, *out[cur].PredecessorID)
	}

	out[idx].PredecessorID = &predecessorID
	out[idx].StartDate = out[predIdx].EndDate.AddDate(0, 0, BufferDays)
	out[idx].EndDate = out[idx].ComputeEnd()

	visited := map[string]bool{id: true}
	if err := cascade(out, idx, visited); err != nil {
		return nil, err
	}
	return out, nil
}

// ClearPredecessor removes the dependency edge. The item keeps its current
// dates; from here on its start date is authoritative again.
func ClearPredecessor(items []domain.ScheduleItem, id string) ([]domain.ScheduleItem, error) {
	out := slices.Clone(items)
	idx := indexOf(out, id)
	if idx < 0 {
		return nil, fmt.Errorf("unlinking %s: %w", id, ErrItemNotFound)
	}
	out[idx].PredecessorID = nil
	return out, nil
}

// cascade shifts every dependent of items[idx] to start one buffer day
// after it ends, then recurses. Each dependent reads its parent's freshly
// computed end date, so the result is consistent down every chain. The
// visited set turns a graph cycle into an error instead of unbounded
// recursion.
func cascade(items []domain.ScheduleItem, idx int, visited map[string]bool) error {
	parent := items[idx]
	for i := range items {
		if items[i].PredecessorID == nil || *items[i].PredecessorID != parent.ID {
			continue
		}
		if visited[items[i].ID] {
			return &CycleError{ItemID: items[i].ID}
		}
		visited[items[i].ID] = true

		items[i].StartDate = parent.EndDate.AddDate(0, 0, BufferDays)
		items[i].EndDate = items[i].ComputeEnd()
		if err := cascade(items, i, visited); err != nil {
			return err
		}
	}
	return nil
}

func indexOf(items []domain.ScheduleItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
