package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
)

func TestCreateProjectScenario(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodPost, "/api/projects", CreateProjectRequest{
		Title:        "A",
		Description:  "d",
		Technologies: "x",
		Category:     "c",
		ReleaseDate:  "2024-01-01",
	}, s.adminToken(t))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Project
	decodeBody(t, rec, &created)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, models.StatusPublished, created.Status)
	assert.Equal(t, "2024-01-01", created.ReleaseDate)
	assert.Empty(t, created.MediaFiles)

	rec = s.request(t, http.MethodGet, "/api/projects?status=all", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page database.ProjectPage
	decodeBody(t, rec, &page)
	require.Len(t, page.Projects, 1)
	assert.Equal(t, 1, page.Projects[0].ID)
}

func TestCreateProjectValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodPost, "/api/projects", map[string]string{
		"description": "d",
	}, s.adminToken(t))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "title", body["field"])
}

func TestCreateProjectRejectsNonImageCover(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodPost, "/api/projects", CreateProjectRequest{
		Title:        "A",
		Description:  "d",
		Technologies: "x",
		Category:     "c",
		MediaFiles: []models.MediaFile{
			{ID: "m1", URL: "http://x/videos/v.mp4", Type: models.MediaTypeVideo},
		},
	}, s.adminToken(t))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "mediaFiles", body["field"])
}

func TestUpdateProjectRejectsNonImageCover(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	rec := s.request(t, http.MethodPost, "/api/projects", CreateProjectRequest{
		Title:        "A",
		Description:  "d",
		Technologies: "x",
		Category:     "c",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	// The cover invariant holds on update too.
	rec = s.request(t, http.MethodPut, "/api/projects/1", map[string]any{
		"mediaFiles": []models.MediaFile{
			{ID: "m1", URL: "http://x/videos/v.mp4", Type: models.MediaTypeVideo},
		},
	}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "mediaFiles", body["field"])

	// The rejected patch left the record untouched.
	rec = s.request(t, http.MethodGet, "/api/projects/1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var project models.Project
	decodeBody(t, rec, &project)
	assert.Empty(t, project.MediaFiles)
}

func TestGetProjectNotFoundMessage(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodGet, "/api/projects/999", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "Project with ID 999 does not exist", body["error"])
}

func TestListProjectsDefaultsToPublished(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	for i, status := range []string{models.StatusPublished, models.StatusDraft, models.StatusArchived} {
		rec := s.request(t, http.MethodPost, "/api/projects", CreateProjectRequest{
			Title:        fmt.Sprintf("p%d", i),
			Description:  "d",
			Technologies: "x",
			Category:     "c",
			Status:       status,
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := s.request(t, http.MethodGet, "/api/projects", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page database.ProjectPage
	decodeBody(t, rec, &page)
	require.Len(t, page.Projects, 1)
	assert.Equal(t, models.StatusPublished, page.Projects[0].Status)

	// The admin listing sees every status.
	rec = s.request(t, http.MethodGet, "/api/projects/admin/all", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &page)
	assert.Len(t, page.Projects, 3)
}

func TestUpdateProjectMergePatch(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	rec := s.request(t, http.MethodPost, "/api/projects", CreateProjectRequest{
		Title:        "before",
		Description:  "d",
		Technologies: "x",
		Category:     "c",
		SortOrder:    4,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.request(t, http.MethodPut, "/api/projects/1", map[string]string{"title": "after"}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Project
	decodeBody(t, rec, &updated)
	assert.Equal(t, 1, updated.ID)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "c", updated.Category)
	assert.Equal(t, 4, updated.SortOrder)
}

func TestUpdateProjectRejectsUnknownStatus(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	rec := s.request(t, http.MethodPost, "/api/projects", CreateProjectRequest{
		Title:        "p",
		Description:  "d",
		Technologies: "x",
		Category:     "c",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.request(t, http.MethodPut, "/api/projects/1", map[string]string{"status": "hidden"}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProject(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	rec := s.request(t, http.MethodPost, "/api/projects", CreateProjectRequest{
		Title:        "goner",
		Description:  "d",
		Technologies: "x",
		Category:     "c",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.request(t, http.MethodDelete, "/api/projects/1", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var body DeleteProjectResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "goner", body.Project.Title)

	rec = s.request(t, http.MethodGet, "/api/projects/1", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.request(t, http.MethodDelete, "/api/projects/1", nil, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectMutationsRequireAuth(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodPost, "/api/projects", CreateProjectRequest{
		Title:        "A",
		Description:  "d",
		Technologies: "x",
		Category:     "c",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCategoriesEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	for _, category := range []string{"web", "tools", "web"} {
		rec := s.request(t, http.MethodPost, "/api/projects", CreateProjectRequest{
			Title:        "p",
			Description:  "d",
			Technologies: "x",
			Category:     category,
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := s.request(t, http.MethodGet, "/api/projects/categories", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Categories []string `json:"categories"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, []string{"tools", "web"}, body.Categories)
}
