package schedule

import (
	"math"
	"time"

	"github.com/mhollis/lath/internal/domain"
)

// Summary holds whole-schedule derived statistics for display and
// persistence. DaysElapsed and DaysRemaining are not clamped: a schedule
// that has not started yet shows negative elapsed days, an overdue one
// shows negative remaining days.
type Summary struct {
	DurationDays    int
	PercentComplete int
	DaysElapsed     int
	DaysRemaining   int
}

// Summarize computes the schedule-level aggregate as of now. An empty
// schedule has a zero end date; its window fields stay zero rather than
// being measured against the zero time.
func Summarize(sched *domain.ProjectSchedule, now time.Time) Summary {
	summary := Summary{
		PercentComplete: meanPercentComplete(sched.Items),
		DaysElapsed:     ceilDays(now.Sub(sched.StartDate)),
	}
	if !sched.EndDate.IsZero() {
		summary.DurationDays = ceilDays(sched.EndDate.Sub(sched.StartDate))
		summary.DaysRemaining = ceilDays(sched.EndDate.Sub(now))
	}
	return summary
}

// Finalize restamps the derived aggregate fields onto the schedule prior
// to persistence.
func Finalize(sched *domain.ProjectSchedule, now time.Time) {
	sched.DurationDays = 0
	if !sched.EndDate.IsZero() {
		sched.DurationDays = ceilDays(sched.EndDate.Sub(sched.StartDate))
	}
	sched.PercentComplete = meanPercentComplete(sched.Items)
	sched.UpdatedAt = now
}

func meanPercentComplete(items []domain.ScheduleItem) int {
	if len(items) == 0 {
		return 0
	}
	total := 0
	for i := range items {
		total += items[i].PercentComplete
	}
	return total / len(items)
}

// ceilDays converts a duration to whole days, rounded up.
func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}
