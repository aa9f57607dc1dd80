package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stevenshelley58-afk/redner-vault/internal/status"
)

type ProjectImage struct {
	ID               uuid.UUID          `json:"id"`
	ProjectID        uuid.UUID          `json:"project_id"`
	Title            string             `json:"title"`
	Status           status.ImageStatus `json:"status"`
	PreviewURL       *string            `json:"preview_url"`
	PrimaryOutputURL *string            `json:"primary_output_url"`
	SortOrder        int                `json:"sort_order"`
	LatestVersion    int                `json:"latest_version"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// ImageVersion rows are immutable: a revision is a new row with the next
// version_number, never an update to an existing one.
type ImageVersion struct {
	ID            uuid.UUID            `json:"id"`
	ImageID       uuid.UUID            `json:"image_id"`
	VersionNumber int                  `json:"version_number"`
	Status        status.VersionStatus `json:"status"`
	OutputURL     string               `json:"output_url"`
	PreviewURL    *string              `json:"preview_url"`
	Notes         *string              `json:"notes"`
	CreatedByName *string              `json:"created_by_name"`
	CreatedAt     time.Time            `json:"created_at"`
}

// ImageComment references its version by number, not by row id; the number is
// caller-supplied and not FK-enforced.
type ImageComment struct {
	ID            uuid.UUID  `json:"id"`
	ImageID       uuid.UUID  `json:"image_id"`
	VersionNumber int        `json:"version_number"`
	AuthorType    AuthorType `json:"author_type"`
	AuthorName    *string    `json:"author_name"`
	Body          string     `json:"body"`
	CreatedAt     time.Time  `json:"created_at"`
}
