package api

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	files       *storage.Gateway
}

func newProjectHandler(projectRepo *database.ProjectRepo, files *storage.Gateway, development bool) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger, development),
		logger:      logger,
		projectRepo: projectRepo,
		files:       files,
	}
}

// CreateProjectRequest is the payload accepted by POST /projects.
type CreateProjectRequest struct {
	Title        string              `json:"title" validate:"required"`
	Description  string              `json:"description" validate:"required"`
	Technologies string              `json:"technologies" validate:"required"`
	Category     string              `json:"category" validate:"required"`
	ReleaseDate  string              `json:"releaseDate"`
	MediaFiles   []models.MediaFile  `json:"mediaFiles"`
	LinkButtons  []models.LinkButton `json:"linkButtons"`
	Status       string              `json:"status" validate:"omitempty,oneof=draft published archived"`
	SortOrder    int                 `json:"sortOrder"`
	ImageURL     string              `json:"imageUrl"`
	ProjectURL   string              `json:"projectUrl"`
	GithubURL    string              `json:"githubUrl"`
}

// DeleteProjectResponse returns the removed record alongside the
// acknowledgement.
type DeleteProjectResponse struct {
	Message string         `json:"message"`
	Project models.Project `json:"project"`
}

func projectNotFound(id int) *errs.ApiErr {
	return errs.NewNotFoundError(fmt.Sprintf("Project with ID %d does not exist", id))
}

// validateMediaFiles checks media types and the cover invariant: the
// first entry in the media list must be an image.
func validateMediaFiles(mediaFiles []models.MediaFile) *errs.ApiErr {
	for i, m := range mediaFiles {
		if !models.ValidMediaType(m.Type) {
			return errs.NewInvalidFieldError("mediaFiles",
				fmt.Sprintf("entry %d has unknown type %q", i, m.Type))
		}
	}
	if len(mediaFiles) > 0 && mediaFiles[0].Type != models.MediaTypeImage {
		return errs.NewInvalidFieldError("mediaFiles", "first media file must be an image")
	}
	return nil
}

func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filter := database.ProjectFilter{
			Status:   query.Get("status"),
			Category: query.Get("category"),
		}
		if limit := query.Get("limit"); limit != "" {
			n, err := strconv.Atoi(limit)
			if err != nil || n < 0 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("limit", "must be a non-negative integer"))
				return
			}
			filter.Limit = n
		}
		if offset := query.Get("offset"); offset != "" {
			n, err := strconv.Atoi(offset)
			if err != nil || n < 0 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("offset", "must be a non-negative integer"))
				return
			}
			filter.Offset = n
		}
		if filter.Status != "" && filter.Status != database.StatusAll && !models.ValidStatus(filter.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be one of: draft published archived all"))
			return
		}

		page, err := h.projectRepo.List(filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "projects", err))
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

func (h projectHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.projectRepo.Categories()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "categories", err))
			return
		}
		if categories == nil {
			categories = []string{}
		}

		h.responder.WriteJSON(w, map[string]any{"categories": categories})
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, apiErr := projectIDParam(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projectRepo.FindByID(id)
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, projectNotFound(id))
			} else {
				h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			}
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProjectRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if apiErr := validateMediaFiles(req.MediaFiles); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projectRepo.Add(models.Project{
			Title:        req.Title,
			Description:  req.Description,
			Technologies: req.Technologies,
			Category:     req.Category,
			ReleaseDate:  req.ReleaseDate,
			MediaFiles:   req.MediaFiles,
			LinkButtons:  req.LinkButtons,
			Status:       req.Status,
			SortOrder:    req.SortOrder,
			ImageURL:     req.ImageURL,
			ProjectURL:   req.ProjectURL,
			GithubURL:    req.GithubURL,
		})
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "project", err))
			return
		}

		h.logger.Info().Int("projectID", project.ID).Str("title", project.Title).Msg("project created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, apiErr := projectIDParam(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		var patch models.ProjectPatch
		if err := decodeAndValidate(r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if patch.Status != nil && !models.ValidStatus(*patch.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be one of: draft published archived"))
			return
		}
		if patch.MediaFiles != nil {
			if apiErr := validateMediaFiles(*patch.MediaFiles); apiErr != nil {
				h.responder.WriteError(w, apiErr)
				return
			}
		}

		project, err := h.projectRepo.Update(id, patch)
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, projectNotFound(id))
			} else {
				h.responder.WriteError(w, errs.NewDatabaseError("update", "project", err))
			}
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, apiErr := projectIDParam(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projectRepo.Delete(id)
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, projectNotFound(id))
			} else {
				h.responder.WriteError(w, errs.NewDatabaseError("delete", "project", err))
			}
			return
		}

		// Best-effort cleanup: the record is already gone, so failures
		// here only leave orphaned objects behind. Logged, never
		// propagated.
		h.cleanupProjectFiles(r.Context(), project)

		h.logger.Info().Int("projectID", project.ID).Msg("project deleted")
		h.responder.WriteJSON(w, DeleteProjectResponse{
			Message: "Project deleted",
			Project: project,
		})
	}
}

func (h projectHandler) listAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.projectRepo.List(database.ProjectFilter{Status: database.StatusAll})
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "projects", err))
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// cleanupProjectFiles removes the deleted project's stored media.
// Entries uploaded through this API carry their storage key; legacy
// entries only have a URL, so their filename is probed across the
// candidate folders.
func (h projectHandler) cleanupProjectFiles(ctx context.Context, project models.Project) {
	if h.files == nil {
		return
	}

	for _, media := range project.MediaFiles {
		var err error
		switch {
		case media.StorageKey != "":
			err = h.files.Delete(ctx, media.StorageKey)
		case media.URL != "":
			_, err = h.files.DeleteByFilename(ctx, path.Base(media.URL))
		default:
			continue
		}
		if err != nil {
			h.logger.Warn().Err(err).
				Int("projectID", project.ID).
				Str("mediaID", media.ID).
				Msg("failed to delete project media file")
		}
	}

	if project.ImageURL != "" {
		if _, err := h.files.DeleteByFilename(ctx, path.Base(project.ImageURL)); err != nil {
			h.logger.Warn().Err(err).
				Int("projectID", project.ID).
				Msg("failed to delete legacy project image")
		}
	}
}

func projectIDParam(r *http.Request) (int, *errs.ApiErr) {
	idStr := chi.URLParam(r, "projectID")
	if idStr == "" {
		return 0, errs.NewBadRequestError("missing projectID")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		return 0, errs.NewBadRequestError("invalid projectID")
	}
	return id, nil
}
