package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(n int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestScheduleItem_ComputeEnd(t *testing.T) {
	item := ScheduleItem{StartDate: day(0), DurationDays: 5}
	assert.Equal(t, day(5), item.ComputeEnd())
}

func TestClampDuration(t *testing.T) {
	assert.Equal(t, 1, ClampDuration(0))
	assert.Equal(t, 1, ClampDuration(-3))
	assert.Equal(t, 1, ClampDuration(1))
	assert.Equal(t, 14, ClampDuration(14))
}

func TestProjectSchedule_ItemLookup(t *testing.T) {
	sched := ProjectSchedule{Items: []ScheduleItem{
		{ID: "a", Seq: 1},
		{ID: "b", Seq: 2},
	}}

	assert.Equal(t, "b", sched.Item("b").ID)
	assert.Nil(t, sched.Item("missing"))
	assert.Equal(t, "a", sched.ItemBySeq(1).ID)
	assert.Nil(t, sched.ItemBySeq(99))
}

func TestValidStatusSets(t *testing.T) {
	for _, st := range []ItemStatus{ItemNotStarted, ItemInProgress, ItemComplete, ItemDelayed} {
		assert.True(t, ValidItemStatuses[st], st)
	}
	assert.False(t, ValidItemStatuses[ItemStatus("paused")])

	for _, st := range []ProjectStatus{ProjectActive, ProjectOnHold, ProjectComplete, ProjectArchived} {
		assert.True(t, ValidProjectStatuses[st], st)
	}
	assert.False(t, ValidProjectStatuses[ProjectStatus("cancelled")])
}

func TestProject_DisplayID(t *testing.T) {
	p := Project{ID: "0123456789abcdef", ShortID: "ELM24"}
	assert.Equal(t, "ELM24", p.DisplayID())

	p.ShortID = ""
	assert.Equal(t, "01234567", p.DisplayID())
}

func TestProject_ValidateShortID(t *testing.T) {
	p := Project{ShortID: "ELM24"}
	assert.NoError(t, p.ValidateShortID())

	p.ShortID = ""
	assert.Error(t, p.ValidateShortID())

	p.ShortID = "elm24"
	assert.Error(t, p.ValidateShortID())
}
