package models

import "time"

// Project status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Media file types.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeGif   = "gif"
)

// MediaFile is one entry in a project's ordered media list. The first
// entry is the project's cover and must be of type image. StorageKey
// records the canonical object-store key assigned at upload time;
// legacy entries imported from older data may only carry a URL.
type MediaFile struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Type       string `json:"type"`
	Name       string `json:"name,omitempty"`
	Size       int64  `json:"size,omitempty"`
	Caption    string `json:"caption,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Alt        string `json:"alt,omitempty"`
	StorageKey string `json:"storageKey,omitempty"`
}

// LinkButton is a custom call-to-action button attached to a project
// or to the contact settings.
type LinkButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Project represents a portfolio project with its media and links.
type Project struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Technologies string       `json:"technologies"`
	Category     string       `json:"category"`
	ReleaseDate  string       `json:"releaseDate"`
	MediaFiles   []MediaFile  `json:"mediaFiles"`
	LinkButtons  []LinkButton `json:"linkButtons"`
	Status       string       `json:"status"`
	SortOrder    int          `json:"sortOrder"`

	// Legacy single-URL fields kept for backward compatibility with
	// records created before the media list existed.
	ImageURL   string `json:"imageUrl,omitempty"`
	ProjectURL string `json:"projectUrl,omitempty"`
	GithubURL  string `json:"githubUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectPatch carries a merge-patch update: nil fields are left at
// their prior values, non-nil fields overwrite. The ID is never
// patchable.
type ProjectPatch struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	Technologies *string       `json:"technologies"`
	Category     *string       `json:"category"`
	ReleaseDate  *string       `json:"releaseDate"`
	MediaFiles   *[]MediaFile  `json:"mediaFiles"`
	LinkButtons  *[]LinkButton `json:"linkButtons"`
	Status       *string       `json:"status"`
	SortOrder    *int          `json:"sortOrder"`
	ImageURL     *string       `json:"imageUrl"`
	ProjectURL   *string       `json:"projectUrl"`
	GithubURL    *string       `json:"githubUrl"`
}

// ValidStatus reports whether s is one of the known project statuses.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// ValidMediaType reports whether t is one of the known media types.
func ValidMediaType(t string) bool {
	return t == MediaTypeImage || t == MediaTypeVideo || t == MediaTypeGif
}

// ApplyPatch merges the supplied fields of patch into p and bumps
// UpdatedAt.
func (p *Project) ApplyPatch(patch ProjectPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Technologies != nil {
		p.Technologies = *patch.Technologies
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.ReleaseDate != nil {
		p.ReleaseDate = *patch.ReleaseDate
	}
	if patch.MediaFiles != nil {
		p.MediaFiles = *patch.MediaFiles
	}
	if patch.LinkButtons != nil {
		p.LinkButtons = *patch.LinkButtons
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.SortOrder != nil {
		p.SortOrder = *patch.SortOrder
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.ProjectURL != nil {
		p.ProjectURL = *patch.ProjectURL
	}
	if patch.GithubURL != nil {
		p.GithubURL = *patch.GithubURL
	}
	p.UpdatedAt = time.Now().UTC()
}
