package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

func addProject(t *testing.T, db database.Database, title, category, status string, sortOrder int) models.Project {
	t.Helper()
	p, err := db.ProjectRepo().Add(models.Project{
		Title:        title,
		Description:  "d",
		Technologies: "x",
		Category:     category,
		Status:       status,
		SortOrder:    sortOrder,
	})
	require.NoError(t, err)
	return p
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	db, _ := testDB(t)

	first := addProject(t, db, "one", "c", "", 0)
	second := addProject(t, db, "two", "c", "", 0)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	// IDs are never reused after deletion.
	_, err := db.ProjectRepo().Delete(second.ID)
	require.NoError(t, err)
	third := addProject(t, db, "three", "c", "", 0)
	assert.Equal(t, 2, third.ID)
}

func TestAddDefaults(t *testing.T) {
	db, _ := testDB(t)

	p := addProject(t, db, "defaults", "c", "", 0)
	assert.Equal(t, models.StatusPublished, p.Status)
	assert.NotEmpty(t, p.ReleaseDate)
	assert.NotNil(t, p.MediaFiles)
	assert.Empty(t, p.MediaFiles)
	assert.NotNil(t, p.LinkButtons)
	assert.False(t, p.CreatedAt.IsZero())
	assert.False(t, p.UpdatedAt.IsZero())

	// The defaulted release date is the creation timestamp.
	released, err := time.Parse(time.RFC3339, p.ReleaseDate)
	require.NoError(t, err)
	assert.WithinDuration(t, p.CreatedAt, released, time.Second)
}

func TestAddKeepsSuppliedReleaseDate(t *testing.T) {
	db, _ := testDB(t)

	p, err := db.ProjectRepo().Add(models.Project{Title: "A", ReleaseDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", p.ReleaseDate)
}

func TestUpdateMergesOnlySuppliedFields(t *testing.T) {
	db, _ := testDB(t)

	p := addProject(t, db, "before", "tools", models.StatusDraft, 5)

	newTitle := "after"
	updated, err := db.ProjectRepo().Update(p.ID, models.ProjectPatch{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "tools", updated.Category)
	assert.Equal(t, models.StatusDraft, updated.Status)
	assert.Equal(t, 5, updated.SortOrder)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
}

func TestUpdateMissingProject(t *testing.T) {
	db, _ := testDB(t)

	title := "x"
	_, err := db.ProjectRepo().Update(42, models.ProjectPatch{Title: &title})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteReturnsRemovedRecord(t *testing.T) {
	db, _ := testDB(t)

	p := addProject(t, db, "gone", "c", "", 0)
	removed, err := db.ProjectRepo().Delete(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, removed.Title)

	_, err = db.ProjectRepo().FindByID(p.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = db.ProjectRepo().Delete(p.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListFiltersStatusAndCategory(t *testing.T) {
	db, _ := testDB(t)

	addProject(t, db, "pub-web", "web", models.StatusPublished, 0)
	addProject(t, db, "draft-web", "web", models.StatusDraft, 0)
	addProject(t, db, "pub-tools", "tools", models.StatusPublished, 0)
	addProject(t, db, "arch-web", "web", models.StatusArchived, 0)

	// Default listing is published only.
	page, err := db.ProjectRepo().List(database.ProjectFilter{})
	require.NoError(t, err)
	for _, p := range page.Projects {
		assert.Equal(t, models.StatusPublished, p.Status)
	}
	assert.Equal(t, 2, page.Total)

	page, err = db.ProjectRepo().List(database.ProjectFilter{Status: database.StatusAll, Category: "web"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	for _, p := range page.Projects {
		assert.Equal(t, "web", p.Category)
	}
}

func TestListSortsBySortOrderThenRecency(t *testing.T) {
	db, _ := testDB(t)

	addProject(t, db, "late-low", "c", "", 2)
	addProject(t, db, "early-high", "c", "", 1)
	newest := addProject(t, db, "newest-high", "c", "", 1)

	page, err := db.ProjectRepo().List(database.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, page.Projects, 3)
	// Sort order ascending, ties broken by newer first.
	assert.Equal(t, newest.ID, page.Projects[0].ID)
	assert.Equal(t, "early-high", page.Projects[1].Title)
	assert.Equal(t, "late-low", page.Projects[2].Title)
}

func TestListPagination(t *testing.T) {
	db, _ := testDB(t)

	for i := 0; i < 5; i++ {
		addProject(t, db, "p", "c", "", i)
	}

	page, err := db.ProjectRepo().List(database.ProjectFilter{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.Len(t, page.Projects, 2)
	assert.Equal(t, 5, page.Total)
	assert.True(t, page.HasMore)

	page, err = db.ProjectRepo().List(database.ProjectFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, page.Projects, 1)
	// offset+limit >= total: nothing further.
	assert.False(t, page.HasMore)

	page, err = db.ProjectRepo().List(database.ProjectFilter{Limit: 2, Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, 3+2 < 5, page.HasMore)
}

func TestCategoriesDistinctSorted(t *testing.T) {
	db, _ := testDB(t)

	addProject(t, db, "a", "web", "", 0)
	addProject(t, db, "b", "tools", "", 0)
	addProject(t, db, "c", "web", "", 0)

	categories, err := db.ProjectRepo().Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"tools", "web"}, categories)
}
