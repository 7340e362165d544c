package cli

import (
	"context"
	"testing"
	"time"

	"github.com/mhollis/lath/internal/repository"
	"github.com/mhollis/lath/internal/service"
	"github.com/mhollis/lath/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(db)
	lines := repository.NewSQLiteEstimateLineRepo(db)
	store := repository.NewSQLiteScheduleStore(db)

	return &App{
		Projects:  service.NewProjectService(projects),
		Estimates: service.NewEstimateService(projects, lines),
		Schedules: service.NewScheduleService(projects, lines, store, time.Hour),
	}
}

func TestResolveProjectID_ByShortID(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	p := testutil.NewTestProject("Kitchen", testutil.WithShortID("KIT01"))
	require.NoError(t, app.Projects.Create(ctx, p))

	id, err := resolveProjectID(ctx, app, "kit01")
	require.NoError(t, err)
	assert.Equal(t, p.ID, id)
}

func TestResolveProjectID_ByUUIDPrefix(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	p := testutil.NewTestProject("Deck")
	require.NoError(t, app.Projects.Create(ctx, p))

	id, err := resolveProjectID(ctx, app, p.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, p.ID, id)
}

func TestResolveProjectID_NotFound(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	_, err := resolveProjectID(ctx, app, "nope")
	assert.Error(t, err)
}

func TestResolveProjectID_EmptyInput(t *testing.T) {
	app := newTestApp(t)

	_, err := resolveProjectID(context.Background(), app, "")
	assert.Error(t, err)
}
