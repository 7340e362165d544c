package schedule

import (
	"time"

	"github.com/google/uuid"
	"github.com/mhollis/lath/internal/domain"
)

const (
	// DefaultDurationDays is the fixed duration assigned to every generated
	// item. Generation is deliberately naive: durations are a policy
	// constant, not derived from the estimate.
	DefaultDurationDays = 5

	// BufferDays is the mandatory gap between an item and whatever follows
	// it, both at generation time and when cascade repositions a dependent.
	BufferDays = 1
)

// GenerateOptions controls the initial schedule layout.
type GenerateOptions struct {
	StartDate    time.Time
	DurationDays int // 0 means DefaultDurationDays
}

func (o GenerateOptions) durationDays() int {
	if o.DurationDays == 0 {
		return DefaultDurationDays
	}
	return domain.ClampDuration(o.DurationDays)
}

// Generate produces the initial schedule items from estimate line items:
// one item per line, grouped by first-seen category, laid out sequentially
// from the start date with a one-day buffer between consecutive items. No
// predecessor edges are created; dependency wiring is a manual step.
//
// Re-running with the same input and start date reproduces the same layout
// (item ids differ). Prior manual edits are not consulted; regeneration is
// destructive and the caller must confirm it.
func Generate(projectID string, lines []domain.EstimateLineItem, opts GenerateOptions) []domain.ScheduleItem {
	var categories []string
	grouped := make(map[string][]domain.EstimateLineItem)
	for _, line := range lines {
		if _, seen := grouped[line.Category]; !seen {
			categories = append(categories, line.Category)
		}
		grouped[line.Category] = append(grouped[line.Category], line)
	}

	duration := opts.durationDays()
	cursor := opts.StartDate

	var items []domain.ScheduleItem
	seq := 1
	for _, category := range categories {
		for _, line := range grouped[category] {
			item := domain.ScheduleItem{
				ID:           uuid.New().String(),
				ProjectID:    projectID,
				Seq:          seq,
				Name:         line.Name,
				Description:  line.Description,
				Category:     category,
				StartDate:    cursor,
				DurationDays: duration,
				Status:       domain.ItemNotStarted,
			}
			item.EndDate = item.ComputeEnd()
			cursor = item.EndDate.AddDate(0, 0, BufferDays)
			items = append(items, item)
			seq++
		}
	}
	return items
}

// Build assembles a full ProjectSchedule from estimate line items. The
// schedule window starts at the configured start date; the end is the end
// of the last generated item, or left zero when the estimate is empty.
func Build(projectID string, lines []domain.EstimateLineItem, opts GenerateOptions) domain.ProjectSchedule {
	items := Generate(projectID, lines, opts)
	sched := domain.ProjectSchedule{
		ProjectID: projectID,
		Items:     items,
		StartDate: opts.StartDate,
	}
	if len(items) > 0 {
		sched.EndDate = items[len(items)-1].EndDate
	}
	return sched
}
