package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/mhollis/lath/internal/domain"
	"github.com/mhollis/lath/internal/schedule"
)

// FormatSchedule renders the full schedule: one row per item plus a
// summary footer with the whole-schedule aggregates as of now.
func FormatSchedule(sched *domain.ProjectSchedule, now time.Time) string {
	var b strings.Builder

	b.WriteString(FormatScheduleItems(sched.Items))

	summary := schedule.Summarize(sched, now)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s\n",
		Dim("Window:"),
		fmt.Sprintf("%s → %s", FormatDate(sched.StartDate), FormatDate(sched.EndDate)),
		Dim("Duration:"), FormatDays(summary.DurationDays)))
	b.WriteString(fmt.Sprintf("%s %s  %s %s\n",
		Dim("Elapsed:"), FormatDays(summary.DaysElapsed),
		Dim("Remaining:"), FormatDays(summary.DaysRemaining)))
	b.WriteString(fmt.Sprintf("%s %s\n",
		Dim("Overall:"), RenderProgress(summary.PercentComplete, 20)))

	return b.String()
}

// FormatScheduleItems renders schedule items as an aligned table.
// Predecessors are shown by sequence number rather than id.
func FormatScheduleItems(items []domain.ScheduleItem) string {
	seqByID := make(map[string]int, len(items))
	for _, item := range items {
		seqByID[item.ID] = item.Seq
	}

	headers := []string{"#", "NAME", "CATEGORY", "START", "END", "DAYS", "AFTER", "STATUS", "DONE"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		after := Dim("—")
		if item.PredecessorID != nil {
			if seq, ok := seqByID[*item.PredecessorID]; ok {
				after = fmt.Sprintf("#%d", seq)
			} else {
				after = StyleRed.Render("?")
			}
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", item.Seq)),
			item.Name,
			StylePurple.Render(item.Category),
			FormatDate(item.StartDate),
			FormatDate(item.EndDate),
			fmt.Sprintf("%d", item.DurationDays),
			after,
			StatusIndicator(item.Status),
			fmt.Sprintf("%3d%%", item.PercentComplete),
		})
	}
	return RenderTable(headers, rows)
}

// FormatDanglingWarnings renders one warning line per dangling predecessor.
func FormatDanglingWarnings(dangling []schedule.DanglingPredecessor, items []domain.ScheduleItem) string {
	if len(dangling) == 0 {
		return ""
	}
	seqByID := make(map[string]int, len(items))
	for _, item := range items {
		seqByID[item.ID] = item.Seq
	}
	var b strings.Builder
	for _, d := range dangling {
		label := d.ItemID
		if seq, ok := seqByID[d.ItemID]; ok {
			label = fmt.Sprintf("#%d", seq)
		}
		b.WriteString(StyleYellow.Render(
			fmt.Sprintf("warning: item %s references missing predecessor %s; skipped", label, d.PredecessorID)))
		b.WriteString("\n")
	}
	return b.String()
}
