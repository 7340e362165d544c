package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/mhollis/lath/internal/domain"
	"github.com/mhollis/lath/internal/schedule"
	"github.com/stretchr/testify/assert"
)

func sampleSchedule() *domain.ProjectSchedule {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	a := domain.ScheduleItem{
		ID: "item-a", Seq: 1, Name: "Gut kitchen", Category: "demolition",
		StartDate: start, DurationDays: 5, Status: domain.ItemComplete, PercentComplete: 100,
	}
	a.EndDate = a.ComputeEnd()
	b := domain.ScheduleItem{
		ID: "item-b", Seq: 2, Name: "New wall", Category: "framing",
		StartDate: a.EndDate.AddDate(0, 0, 1), DurationDays: 4,
		PredecessorID: &a.ID, Status: domain.ItemInProgress, PercentComplete: 50,
	}
	b.EndDate = b.ComputeEnd()
	return &domain.ProjectSchedule{
		ProjectID: "p1",
		Items:     []domain.ScheduleItem{a, b},
		StartDate: start,
		EndDate:   b.EndDate,
	}
}

func TestFormatScheduleItems_ShowsPredecessorBySeq(t *testing.T) {
	out := FormatScheduleItems(sampleSchedule().Items)
	assert.Contains(t, out, "Gut kitchen")
	assert.Contains(t, out, "New wall")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "complete")
	assert.Contains(t, out, "in-progress")
}

func TestFormatScheduleItems_MissingPredecessorMarked(t *testing.T) {
	sched := sampleSchedule()
	ghost := "gone"
	sched.Items[1].PredecessorID = &ghost
	out := FormatScheduleItems(sched.Items)
	assert.Contains(t, out, "?")
}

func TestFormatSchedule_SummaryFooter(t *testing.T) {
	sched := sampleSchedule()
	now := sched.StartDate.AddDate(0, 0, 3)
	out := FormatSchedule(sched, now)

	assert.Contains(t, out, "2026-06-01")
	assert.Contains(t, out, "Elapsed:")
	assert.Contains(t, out, "Remaining:")
	assert.Contains(t, out, " 75%")
}

func TestFormatDanglingWarnings(t *testing.T) {
	sched := sampleSchedule()
	warnings := FormatDanglingWarnings([]schedule.DanglingPredecessor{
		{ItemID: "item-b", PredecessorID: "gone"},
	}, sched.Items)

	assert.Contains(t, warnings, "#2")
	assert.Contains(t, warnings, "gone")
	assert.Equal(t, 1, strings.Count(warnings, "\n"))
}

func TestFormatDanglingWarnings_EmptyIsSilent(t *testing.T) {
	assert.Empty(t, FormatDanglingWarnings(nil, nil))
}
