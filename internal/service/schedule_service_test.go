package service

import (
	"context"
	"testing"
	"time"

	"github.com/mhollis/lath/internal/domain"
	"github.com/mhollis/lath/internal/repository"
	"github.com/mhollis/lath/internal/schedule"
	"github.com/mhollis/lath/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduleFixture struct {
	svc   ScheduleService
	store repository.ScheduleStore
	proj  *domain.Project
	ctx   context.Context
}

func newScheduleFixture(t *testing.T, quiet time.Duration) *scheduleFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(db)
	lines := repository.NewSQLiteEstimateLineRepo(db)
	store := repository.NewSQLiteScheduleStore(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Remodel",
		testutil.WithProjectStart(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, projects.Create(ctx, proj))

	for i, spec := range []struct{ category, name string }{
		{"demolition", "Gut kitchen"},
		{"framing", "New wall"},
		{"framing", "Header beam"},
		{"electrical", "Rewire circuits"},
	} {
		require.NoError(t, lines.Create(ctx, testutil.NewTestLineItem(
			proj.ID, spec.category, spec.name, testutil.WithPosition(i+1))))
	}

	return &scheduleFixture{
		svc:   NewScheduleService(projects, lines, store, quiet),
		store: store,
		proj:  proj,
		ctx:   ctx,
	}
}

func TestScheduleService_GeneratePersists(t *testing.T) {
	f := newScheduleFixture(t, time.Hour)

	sched, err := f.svc.Generate(f.ctx, f.proj.ID, schedule.GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, sched.Items, 4)
	assert.True(t, sched.StartDate.Equal(f.proj.StartDate))
	assert.Equal(t, "Gut kitchen", sched.Items[0].Name)

	stored, err := f.store.Get(f.ctx, f.proj.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 4)
	assert.True(t, stored.EndDate.Equal(sched.EndDate))
}

func TestScheduleService_GenerateUnknownProject(t *testing.T) {
	f := newScheduleFixture(t, time.Hour)

	_, err := f.svc.Generate(f.ctx, "missing", schedule.GenerateOptions{})
	assert.ErrorIs(t, err, repository.ErrProjectNotFound)
}

func TestScheduleService_UpdateItemCascades(t *testing.T) {
	f := newScheduleFixture(t, time.Hour)

	sched, err := f.svc.Generate(f.ctx, f.proj.ID, schedule.GenerateOptions{})
	require.NoError(t, err)

	first, second := sched.Items[0], sched.Items[1]
	linked, err := f.svc.SetPredecessor(f.ctx, f.proj.ID, second.ID, first.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.Item(second.ID).PredecessorID)

	dur := 10
	updated, err := f.svc.UpdateItem(f.ctx, f.proj.ID, first.ID, schedule.ItemPatch{DurationDays: &dur})
	require.NoError(t, err)

	a := updated.Item(first.ID)
	b := updated.Item(second.ID)
	assert.Equal(t, 10, a.DurationDays)
	assert.True(t, b.StartDate.Equal(a.EndDate.AddDate(0, 0, 1)))
}

func TestScheduleService_SetPredecessorRejectsCycle(t *testing.T) {
	f := newScheduleFixture(t, time.Hour)

	sched, err := f.svc.Generate(f.ctx, f.proj.ID, schedule.GenerateOptions{})
	require.NoError(t, err)

	a, b := sched.Items[0], sched.Items[1]
	_, err = f.svc.SetPredecessor(f.ctx, f.proj.ID, b.ID, a.ID)
	require.NoError(t, err)

	_, err = f.svc.SetPredecessor(f.ctx, f.proj.ID, a.ID, b.ID)
	var cycleErr *schedule.CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestScheduleService_AutoCalculateReportsDangling(t *testing.T) {
	f := newScheduleFixture(t, time.Hour)

	_, err := f.svc.Generate(f.ctx, f.proj.ID, schedule.GenerateOptions{})
	require.NoError(t, err)

	ghost := "no-such-item"

	// Wire a dangling edge directly through the store to simulate an
	// import from elsewhere.
	stored, err := f.store.Get(f.ctx, f.proj.ID)
	require.NoError(t, err)
	stored.Items[1].PredecessorID = &ghost
	require.NoError(t, f.store.Save(f.ctx, stored))

	fresh := newScheduleServiceOver(t, f)
	result, err := fresh.AutoCalculate(f.ctx, f.proj.ID)
	require.NoError(t, err)
	require.Len(t, result.Dangling, 1)
	assert.Equal(t, ghost, result.Dangling[0].PredecessorID)
}

// newScheduleServiceOver builds a second service over the same store so it
// reads the persisted state instead of a cached working copy.
func newScheduleServiceOver(t *testing.T, f *scheduleFixture) ScheduleService {
	t.Helper()
	return NewScheduleService(nil, nil, f.store, time.Hour)
}

func TestScheduleService_AutosaveFiresAfterQuietPeriod(t *testing.T) {
	f := newScheduleFixture(t, 25*time.Millisecond)

	sched, err := f.svc.Generate(f.ctx, f.proj.ID, schedule.GenerateOptions{})
	require.NoError(t, err)

	dur := 8
	_, err = f.svc.UpdateItem(f.ctx, f.proj.ID, sched.Items[0].ID, schedule.ItemPatch{DurationDays: &dur})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		stored, err := f.store.Get(f.ctx, f.proj.ID)
		return err == nil && stored.Item(sched.Items[0].ID).DurationDays == 8
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduleService_ExplicitSavePersistsImmediately(t *testing.T) {
	f := newScheduleFixture(t, time.Hour)

	sched, err := f.svc.Generate(f.ctx, f.proj.ID, schedule.GenerateOptions{})
	require.NoError(t, err)

	dur := 12
	_, err = f.svc.UpdateItem(f.ctx, f.proj.ID, sched.Items[0].ID, schedule.ItemPatch{DurationDays: &dur})
	require.NoError(t, err)
	require.NoError(t, f.svc.Save(f.ctx, f.proj.ID))

	stored, err := f.store.Get(f.ctx, f.proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.Item(sched.Items[0].ID).DurationDays)
}

func TestScheduleService_FlushPersistsPendingEdits(t *testing.T) {
	f := newScheduleFixture(t, time.Hour)

	sched, err := f.svc.Generate(f.ctx, f.proj.ID, schedule.GenerateOptions{})
	require.NoError(t, err)

	name := "Reframe wall"
	_, err = f.svc.UpdateItem(f.ctx, f.proj.ID, sched.Items[1].ID, schedule.ItemPatch{Name: &name})
	require.NoError(t, err)
	require.NoError(t, f.svc.Flush(f.ctx))

	stored, err := f.store.Get(f.ctx, f.proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reframe wall", stored.Item(sched.Items[1].ID).Name)
}

func TestScheduleService_DeleteDropsCacheAndStore(t *testing.T) {
	f := newScheduleFixture(t, time.Hour)

	_, err := f.svc.Generate(f.ctx, f.proj.ID, schedule.GenerateOptions{})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(f.ctx, f.proj.ID))

	_, err = f.svc.Get(f.ctx, f.proj.ID)
	assert.ErrorIs(t, err, repository.ErrScheduleNotFound)
}

func TestScheduleService_FinalizeStampsAggregates(t *testing.T) {
	f := newScheduleFixture(t, time.Hour)

	sched, err := f.svc.Generate(f.ctx, f.proj.ID, schedule.GenerateOptions{})
	require.NoError(t, err)

	pc := 100
	_, err = f.svc.UpdateItem(f.ctx, f.proj.ID, sched.Items[0].ID, schedule.ItemPatch{PercentComplete: &pc})
	require.NoError(t, err)
	require.NoError(t, f.svc.Save(f.ctx, f.proj.ID))

	stored, err := f.store.Get(f.ctx, f.proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.PercentComplete)
	assert.Positive(t, stored.DurationDays)
}
