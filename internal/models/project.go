package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stevenshelley58-afk/redner-vault/internal/status"
)

type ProjectType string

const (
	ProjectTypeImageRender  ProjectType = "image_render"
	ProjectTypeWebsiteBuild ProjectType = "website_build"
	ProjectTypeOther        ProjectType = "other"
)

// SanitizeProjectType falls back to image_render for anything outside the
// known set, matching how blank intake submissions are treated.
func SanitizeProjectType(s string) ProjectType {
	switch ProjectType(s) {
	case ProjectTypeImageRender, ProjectTypeWebsiteBuild, ProjectTypeOther:
		return ProjectType(s)
	}
	return ProjectTypeImageRender
}

type Project struct {
	ID                 uuid.UUID            `json:"id"`
	UserID             uuid.UUID            `json:"user_id"`
	Name               string               `json:"name"`
	ProjectType        ProjectType          `json:"project_type"`
	Status             status.ProjectStatus `json:"status"`
	Brief              *string              `json:"brief"`
	AgreedDeliverables *string              `json:"agreed_deliverables"`
	DueDate            *time.Time           `json:"due_date"`
	BillingPeriodLabel *string              `json:"billing_period_label"`
	ImagesCount        int                  `json:"images_count"`
	LatestVersion      int                  `json:"latest_version"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

type AssetType string

const (
	AssetSourceImage    AssetType = "source_image"
	AssetReferenceImage AssetType = "reference_image"
	AssetMaterialDoc    AssetType = "material_doc"
	AssetInspiration    AssetType = "inspiration"
	AssetOther          AssetType = "other"
)

func SanitizeAssetType(s string) AssetType {
	switch AssetType(s) {
	case AssetSourceImage, AssetReferenceImage, AssetMaterialDoc, AssetInspiration, AssetOther:
		return AssetType(s)
	}
	return AssetOther
}

type ProjectAsset struct {
	ID               uuid.UUID `json:"id"`
	ProjectID        uuid.UUID `json:"project_id"`
	Type             AssetType `json:"type"`
	Label            string    `json:"label"`
	FileURL          *string   `json:"file_url"`
	FileThumbnailURL *string   `json:"file_thumbnail_url"`
	CreatedAt        time.Time `json:"created_at"`
}

type AuthorType string

const (
	AuthorCustomer AuthorType = "customer"
	AuthorStaff    AuthorType = "staff"
)

type ProjectNote struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  uuid.UUID  `json:"project_id"`
	AuthorType AuthorType `json:"author_type"`
	AuthorName *string    `json:"author_name"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"created_at"`
}
