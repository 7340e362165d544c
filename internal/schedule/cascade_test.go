package schedule

import (
	"testing"
	"time"

	"github.com/mhollis/lath/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeItem builds a schedule item with derived end date and optional
// predecessor.
func makeItem(id string, start time.Time, durationDays int, predecessorID string) domain.ScheduleItem {
	item := domain.ScheduleItem{
		ID:           id,
		ProjectID:    "proj-1",
		Name:         id,
		StartDate:    start,
		DurationDays: durationDays,
		Status:       domain.ItemNotStarted,
	}
	item.EndDate = item.ComputeEnd()
	if predecessorID != "" {
		item.PredecessorID = &predecessorID
	}
	return item
}

func itemByID(t *testing.T, items []domain.ScheduleItem, id string) domain.ScheduleItem {
	t.Helper()
	for _, item := range items {
		if item.ID == id {
			return item
		}
	}
	t.Fatalf("item %s not found", id)
	return domain.ScheduleItem{}
}

func assertDerivedEnds(t *testing.T, items []domain.ScheduleItem) {
	t.Helper()
	for _, item := range items {
		assert.Equal(t, item.StartDate.AddDate(0, 0, item.DurationDays), item.EndDate,
			"item %s end date must equal start + duration", item.ID)
	}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestApplyPatch_SingleHopCascade(t *testing.T) {
	items := []domain.ScheduleItem{
		makeItem("a", day(0), 5, ""),
		makeItem("b", day(6), 3, "a"),
	}

	updated, err := ApplyPatch(items, "a", ItemPatch{StartDate: timePtr(day(10))})
	require.NoError(t, err)

	a := itemByID(t, updated, "a")
	b := itemByID(t, updated, "b")
	assert.Equal(t, day(10), a.StartDate)
	assert.Equal(t, day(15), a.EndDate)
	assert.Equal(t, day(16), b.StartDate, "dependent starts one day after its predecessor ends")
	assert.Equal(t, day(19), b.EndDate)
	assertDerivedEnds(t, updated)
}

func TestApplyPatch_TransitiveCascade(t *testing.T) {
	items := []domain.ScheduleItem{
		makeItem("a", day(0), 5, ""),
		makeItem("b", day(6), 3, "a"),
		makeItem("c", day(10), 4, "b"),
	}

	updated, err := ApplyPatch(items, "a", ItemPatch{DurationDays: intPtr(8)})
	require.NoError(t, err)

	a := itemByID(t, updated, "a")
	b := itemByID(t, updated, "b")
	c := itemByID(t, updated, "c")
	assert.Equal(t, day(8), a.EndDate)
	assert.Equal(t, day(9), b.StartDate)
	assert.Equal(t, day(12), b.EndDate)
	assert.Equal(t, day(13), c.StartDate)
	assert.Equal(t, day(17), c.EndDate)
	assertDerivedEnds(t, updated)
}

func TestApplyPatch_IndependentBranches(t *testing.T) {
	items := []domain.ScheduleItem{
		makeItem("a", day(0), 5, ""),
		makeItem("b", day(6), 3, "a"),
		makeItem("c", day(6), 2, "a"),
	}

	updated, err := ApplyPatch(items, "a", ItemPatch{DurationDays: intPtr(6)})
	require.NoError(t, err)

	b := itemByID(t, updated, "b")
	c := itemByID(t, updated, "c")
	assert.Equal(t, day(7), b.StartDate)
	assert.Equal(t, day(7), c.StartDate)
	assertDerivedEnds(t, updated)
}

func TestApplyPatch_NonDateFieldsDoNotCascade(t *testing.T) {
	items := []domain.ScheduleItem{
		makeItem("a", day(0), 5, ""),
		makeItem("b", day(6), 3, "a"),
	}

	status := domain.ItemInProgress
	updated, err := ApplyPatch(items, "a", ItemPatch{
		Status:          &status,
		PercentComplete: intPtr(40),
		Name:            strPtr("Demo and prep"),
	})
	require.NoError(t, err)

	a := itemByID(t, updated, "a")
	b := itemByID(t, updated, "b")
	assert.Equal(t, domain.ItemInProgress, a.Status)
	assert.Equal(t, 40, a.PercentComplete)
	assert.Equal(t, "Demo and prep", a.Name)
	assert.Equal(t, items[0].StartDate, a.StartDate)
	assert.Equal(t, items[0].EndDate, a.EndDate)
	assert.Equal(t, items[1].StartDate, b.StartDate, "dependents untouched by non-date updates")
	assert.Equal(t, items[1].EndDate, b.EndDate)
}

func TestApplyPatch_ClampsDuration(t *testing.T) {
	items := []domain.ScheduleItem{makeItem("a", day(0), 5, "")}

	updated, err := ApplyPatch(items, "a", ItemPatch{DurationDays: intPtr(0)})
	require.NoError(t, err)

	a := itemByID(t, updated, "a")
	assert.Equal(t, 1, a.DurationDays)
	assert.Equal(t, day(1), a.EndDate)
}

func TestApplyPatch_UnknownItem(t *testing.T) {
	items := []domain.ScheduleItem{makeItem("a", day(0), 5, "")}

	_, err := ApplyPatch(items, "nope", ItemPatch{DurationDays: intPtr(2)})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestApplyPatch_InputNotMutated(t *testing.T) {
	items := []domain.ScheduleItem{
		makeItem("a", day(0), 5, ""),
		makeItem("b", day(6), 3, "a"),
	}

	_, err := ApplyPatch(items, "a", ItemPatch{StartDate: timePtr(day(20))})
	require.NoError(t, err)

	assert.Equal(t, day(0), items[0].StartDate, "caller's slice must be untouched")
	assert.Equal(t, day(6), items[1].StartDate)
}

func TestApplyPatch_CycleDetected(t *testing.T) {
	// A malformed graph: a and b point at each other. Cascade must fail
	// fast instead of recursing forever.
	items := []domain.ScheduleItem{
		makeItem("a", day(0), 5, "b"),
		makeItem("b", day(6), 3, "a"),
	}

	_, err := ApplyPatch(items, "a", ItemPatch{StartDate: timePtr(day(1))})
	require.Error(t, err)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, "a", cycleErr.ItemID)
}

func TestSetPredecessor_RepositionsDependent(t *testing.T) {
	items := []domain.ScheduleItem{
		makeItem("a", day(0), 5, ""),
		makeItem("b", day(0), 3, ""),
	}

	updated, err := SetPredecessor(items, "b", "a")
	require.NoError(t, err)

	b := itemByID(t, updated, "b")
	require.NotNil(t, b.PredecessorID)
	assert.Equal(t, "a", *b.PredecessorID)
	assert.Equal(t, day(6), b.StartDate)
	assert.Equal(t, day(9), b.EndDate)
}

func TestSetPredecessor_CascadesToDependents(t *testing.T) {
	items := []domain.ScheduleItem{
		makeItem("a", day(0), 5, ""),
		makeItem("b", day(0), 3, ""),
		makeItem("c", day(4), 2, "b"),
	}

	updated, err := SetPredecessor(items, "b", "a")
	require.NoError(t, err)

	c := itemByID(t, updated, "c")
	assert.Equal(t, day(10), c.StartDate)
	assertDerivedEnds(t, updated)
}

func TestSetPredecessor_RejectsCycle(t *testing.T) {
	items := []domain.ScheduleItem{
		makeItem("a", day(0), 5, ""),
		makeItem("b", day(6), 3, "a"),
		makeItem("c", day(10), 2, "b"),
	}

	// a -> b -> c already; linking a after c would close the loop.
	_, err := SetPredecessor(items, "a", "c")
	require.Error(t, err)
	var cycleErr *CycleError
	assert.ErrorAs(t, err, &cycleErr)

	_, err = SetPredecessor(items, "a", "a")
	assert.ErrorAs(t, err, &cycleErr)
}

func TestClearPredecessor_KeepsDates(t *testing.T) {
	items := []domain.ScheduleItem{
		makeItem("a", day(0), 5, ""),
		makeItem("b", day(6), 3, "a"),
	}

	updated, err := ClearPredecessor(items, "b")
	require.NoError(t, err)

	b := itemByID(t, updated, "b")
	assert.Nil(t, b.PredecessorID)
	assert.Equal(t, day(6), b.StartDate)
	assert.Equal(t, day(9), b.EndDate)
}
