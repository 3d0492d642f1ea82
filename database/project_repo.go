package database

import (
	"fmt"
	"sort"
	"time"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// StatusAll disables status filtering in ProjectFilter.
const StatusAll = "all"

// ProjectFilter narrows a project listing. An empty Status defaults to
// published; StatusAll returns every status. Limit <= 0 means no
// pagination.
type ProjectFilter struct {
	Status   string
	Category string
	Limit    int
	Offset   int
}

// ProjectPage is one page of a filtered project listing.
type ProjectPage struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
	HasMore  bool             `json:"hasMore"`
}

type ProjectRepo struct {
	store *store
}

func NewProjectRepo(store *store) *ProjectRepo {
	return &ProjectRepo{store}
}

// List returns the projects matching filter, stably sorted by explicit
// sort order and tie-broken by recency, then sliced by offset/limit.
func (r *ProjectRepo) List(filter ProjectFilter) (ProjectPage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	status := filter.Status
	if status == "" {
		status = models.StatusPublished
	}

	matching := make([]models.Project, 0, len(r.store.doc.Projects))
	for _, p := range r.store.doc.Projects {
		if status != StatusAll && p.Status != status {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		matching = append(matching, p)
	}

	sort.SliceStable(matching, func(i, j int) bool {
		if matching[i].SortOrder != matching[j].SortOrder {
			return matching[i].SortOrder < matching[j].SortOrder
		}
		return matching[i].CreatedAt.After(matching[j].CreatedAt)
	})

	total := len(matching)
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}

	page := matching[offset:]
	hasMore := false
	if filter.Limit > 0 {
		if filter.Limit < len(page) {
			page = page[:filter.Limit]
		}
		hasMore = offset+filter.Limit < total
	}

	return ProjectPage{
		Projects: page,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   offset,
		HasMore:  hasMore,
	}, nil
}

// Categories returns the distinct project categories, sorted.
func (r *ProjectRepo) Categories() ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[string]struct{})
	var categories []string
	for _, p := range r.store.doc.Projects {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// FindByID returns the project with the given id.
func (r *ProjectRepo) FindByID(id int) (models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, p := range r.store.doc.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("project %d: %w", id, errs.ErrNotFound)
}

// Add assigns an id (one greater than the current maximum, never
// reused after deletion), fills defaults and timestamps, appends the
// project and flushes the store.
func (r *ProjectRepo) Add(project models.Project) (models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	maxID := 0
	for _, p := range r.store.doc.Projects {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	now := time.Now().UTC()
	project.ID = maxID + 1
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.Status == "" {
		project.Status = models.StatusPublished
	}
	if project.ReleaseDate == "" {
		project.ReleaseDate = now.Format(time.RFC3339)
	}
	if project.MediaFiles == nil {
		project.MediaFiles = []models.MediaFile{}
	}
	if project.LinkButtons == nil {
		project.LinkButtons = []models.LinkButton{}
	}

	r.store.doc.Projects = append(r.store.doc.Projects, project)
	if err := r.store.flush(); err != nil {
		r.store.doc.Projects = r.store.doc.Projects[:len(r.store.doc.Projects)-1]
		return models.Project{}, err
	}
	return project, nil
}

// Update applies a merge-patch to the project with the given id:
// supplied fields overwrite, everything else keeps its prior value.
func (r *ProjectRepo) Update(id int, patch models.ProjectPatch) (models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.doc.Projects {
		if r.store.doc.Projects[i].ID != id {
			continue
		}
		prev := r.store.doc.Projects[i]
		r.store.doc.Projects[i].ApplyPatch(patch)
		if err := r.store.flush(); err != nil {
			r.store.doc.Projects[i] = prev
			return models.Project{}, err
		}
		return r.store.doc.Projects[i], nil
	}
	return models.Project{}, fmt.Errorf("project %d: %w", id, errs.ErrNotFound)
}

// Delete removes the project with the given id and returns the removed
// record so the caller can clean up its media files afterward.
func (r *ProjectRepo) Delete(id int) (models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, p := range r.store.doc.Projects {
		if p.ID != id {
			continue
		}
		prev := r.store.doc.Projects
		remaining := make([]models.Project, 0, len(prev)-1)
		remaining = append(remaining, prev[:i]...)
		remaining = append(remaining, prev[i+1:]...)
		r.store.doc.Projects = remaining
		if err := r.store.flush(); err != nil {
			r.store.doc.Projects = prev
			return models.Project{}, err
		}
		return p, nil
	}
	return models.Project{}, fmt.Errorf("project %d: %w", id, errs.ErrNotFound)
}
