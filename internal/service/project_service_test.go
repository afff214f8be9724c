package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/repository"
	"github.com/alexanderramin/encore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create_ValidShortID(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	svc := NewProjectService(r.projects)

	proj := &domain.Project{
		Name:       "Spring Dance Tour",
		ShortID:    "dance01",
		Discipline: "dance",
	}

	err := svc.Create(ctx, proj)
	require.NoError(t, err)
	assert.NotEmpty(t, proj.ID, "UUID should be generated")
	assert.Equal(t, "DANCE01", proj.ShortID, "short ID is upper-cased")
	assert.Equal(t, domain.ProjectActive, proj.Status, "status should default to active")

	fetched, err := svc.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring Dance Tour", fetched.Name)
	assert.Zero(t, fetched.Budget.ItemCount(), "new projects start with an empty budget")
	assert.True(t, fetched.EstimatedSales.IsZero())
}

func TestProjectService_Create_InvalidShortID(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	svc := NewProjectService(r.projects)

	tests := []struct {
		name    string
		shortID string
	}{
		{"empty", ""},
		{"no digits", "DANCE"},
		{"too short letters", "DA01"},
		{"too long letters", "DANCETOUR01"},
		{"only digits", "12345"},
		{"special chars", "DA!01"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Create(ctx, &domain.Project{Name: "Test", ShortID: tc.shortID})
			assert.Error(t, err, "short ID %q should be rejected", tc.shortID)
		})
	}
}

func TestProjectService_Create_RequiresName(t *testing.T) {
	r := setupRepos(t)
	svc := NewProjectService(r.projects)

	err := svc.Create(context.Background(), &domain.Project{ShortID: "DANCE01", Name: "  "})
	assert.Error(t, err)
}

func TestProjectService_Resolve(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	proj := testutil.NewTestProject("Harbour Festival", testutil.WithShortID("FEST24"))
	require.NoError(t, r.projects.Create(ctx, proj))

	byShort, err := svc.Resolve(ctx, "fest24")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, byShort.ID)

	byID, err := svc.Resolve(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "FEST24", byID.ShortID)

	_, err = svc.Resolve(ctx, "NOPE99")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectService_Delete_RequiresArchiveFirst(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	svc := NewProjectService(r.projects)

	proj := testutil.NewTestProject("Active Project")
	require.NoError(t, r.projects.Create(ctx, proj))

	err := svc.Delete(ctx, proj.ID, false)
	assert.Error(t, err, "should require archive before delete")

	require.NoError(t, svc.Archive(ctx, proj.ID))
	require.NoError(t, svc.Delete(ctx, proj.ID, false))

	_, err = svc.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectService_Delete_Force(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	proj := testutil.NewTestProject("Forced")
	require.NoError(t, r.projects.Create(ctx, proj))

	require.NoError(t, svc.Delete(ctx, proj.ID, true))
	_, err := svc.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectService_ArchiveHidesFromList(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	keep := testutil.NewTestProject("Kept")
	gone := testutil.NewTestProject("Archived")
	require.NoError(t, r.projects.Create(ctx, keep))
	require.NoError(t, r.projects.Create(ctx, gone))
	require.NoError(t, svc.Archive(ctx, gone.ID))

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, keep.ID, active[0].ID)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Unarchive(ctx, gone.ID))
	active, err = svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}
