// Package store defines the data-source abstraction the API handlers are
// written against. The Postgres implementation lives in internal/supabase;
// the in-memory implementation in store/memory backs demo mode and tests.
package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/status"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("record not found")

type Store interface {
	// Profiles and billing. Profile and billing rows are provisioned lazily
	// on the first /me fetch.
	GetProfile(userID uuid.UUID) (*models.Profile, error)
	CreateProfile(p *models.Profile) (*models.Profile, error)
	GetBrand(userID uuid.UUID) (*models.Brand, error)
	GetBillingAccount(userID uuid.UUID) (*models.BillingAccount, error)
	CreateBillingAccount(userID uuid.UUID) (*models.BillingAccount, error)
	ListBillingTransactions(accountID uuid.UUID, limit int) ([]models.BillingTransaction, error)

	// Projects. Ownership is re-derived by the handler layer, so GetProject
	// resolves by id alone.
	ListProjects(userID uuid.UUID, q string, statuses []string) ([]models.Project, error)
	CreateProject(p *models.Project) (*models.Project, error)
	GetProject(projectID uuid.UUID) (*models.Project, error)
	TouchProject(projectID uuid.UUID, at time.Time) error
	UpdateProjectCounters(projectID uuid.UUID, imagesCount, latestVersion int, at time.Time) error

	ListAssets(projectID uuid.UUID) ([]models.ProjectAsset, error)
	CreateAsset(a *models.ProjectAsset) (*models.ProjectAsset, error)
	ListNotes(projectID uuid.UUID) ([]models.ProjectNote, error)
	CreateNote(n *models.ProjectNote) (*models.ProjectNote, error)

	ListImages(projectID uuid.UUID) ([]models.ProjectImage, error)
	CountImages(projectID uuid.UUID) (int, error)
	GetImage(imageID uuid.UUID) (*models.ProjectImage, error)
	CreateImage(img *models.ProjectImage) (*models.ProjectImage, error)
	UpdateImageStatus(imageID uuid.UUID, st status.ImageStatus, at time.Time) (*models.ProjectImage, error)
	SetImageLatestVersion(imageID uuid.UUID, latest int, at time.Time) error

	// Versions are ordered by version_number descending; comments by
	// created_at ascending.
	ListVersions(imageID uuid.UUID) ([]models.ImageVersion, error)
	CountVersions(imageID uuid.UUID) (int, error)
	CreateVersion(v *models.ImageVersion) (*models.ImageVersion, error)
	ListComments(imageID uuid.UUID) ([]models.ImageComment, error)
	CreateComment(cm *models.ImageComment) (*models.ImageComment, error)
}
