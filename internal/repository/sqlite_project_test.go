package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mhollis/lath/internal/domain"
	"github.com/mhollis/lath/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	proj := testutil.NewTestProject("Kitchen Remodel",
		testutil.WithProjectStart(start),
		testutil.WithClient("Hargrove"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Kitchen Remodel", fetched.Name)
	assert.Equal(t, "Hargrove", fetched.Client)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
	assert.True(t, fetched.StartDate.Equal(start))
}

func TestProjectRepo_GetByShortID_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Deck Build", testutil.WithShortID("DECK01"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByShortID(ctx, "deck01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "DECK01", fetched.ShortID)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectRepo_DuplicateShortID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	first := testutil.NewTestProject("Garage", testutil.WithShortID("GAR01"))
	require.NoError(t, repo.Create(ctx, first))

	dup := testutil.NewTestProject("Garage Two", testutil.WithShortID("GAR01"))
	assert.Error(t, repo.Create(ctx, dup))
}

func TestProjectRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Bathroom")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Status = domain.ProjectOnHold
	proj.Client = "Mercer"
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectOnHold, fetched.Status)
	assert.Equal(t, "Mercer", fetched.Client)
}

func TestProjectRepo_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	ghost := testutil.NewTestProject("Ghost")
	err := repo.Update(ctx, ghost)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	a := testutil.NewTestProject("Alpha")
	b := testutil.NewTestProject("Beta")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestProjectRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Teardown")
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, repo.Delete(ctx, proj.ID))

	_, err := repo.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, proj.ID), ErrProjectNotFound)
}
