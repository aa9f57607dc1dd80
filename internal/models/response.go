package models

import (
	"time"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ContactResponse struct {
	Success bool `json:"success"`
}

type ProjectResponse struct {
	Project Project `json:"project"`
}

type ProjectListResponse struct {
	Projects []Project `json:"projects"`
}

type ProjectDetailResponse struct {
	Project Project        `json:"project"`
	Assets  []ProjectAsset `json:"assets"`
	Notes   []ProjectNote  `json:"notes"`
	Images  []ProjectImage `json:"images"`
}

type NoteResponse struct {
	Note ProjectNote `json:"note"`
}

type AssetResponse struct {
	Asset ProjectAsset `json:"asset"`
}

type ImageCreatedResponse struct {
	Image   ProjectImage `json:"image"`
	Version ImageVersion `json:"version"`
}

type ImageResponse struct {
	Image ProjectImage `json:"image"`
}

type VersionResponse struct {
	Version ImageVersion `json:"version"`
}

type CommentResponse struct {
	Comment ImageComment `json:"comment"`
}

type RevisionResponse struct {
	Image   ProjectImage `json:"image"`
	Comment ImageComment `json:"comment"`
}

// ProjectRef is the slim parent reference returned alongside an image detail.
type ProjectRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ImageDetailResponse struct {
	Project  ProjectRef     `json:"project"`
	Image    ProjectImage   `json:"image"`
	Versions []ImageVersion `json:"versions"`
	Comments []ImageComment `json:"comments"`
}

type BillingInfo struct {
	Plan               *string              `json:"plan"`
	CreditsBalance     int                  `json:"credits_balance"`
	RecentTransactions []BillingTransaction `json:"recent_transactions"`
}

type UsageInfo struct {
	TotalProjects   int        `json:"total_projects"`
	ActiveProjects  int        `json:"active_projects"`
	CompletedImages int        `json:"completed_images"`
	LastActivity    *time.Time `json:"last_activity"`
}

type MeResponse struct {
	Profile Profile     `json:"profile"`
	Brand   Brand       `json:"brand"`
	Billing BillingInfo `json:"billing"`
	Usage   UsageInfo   `json:"usage"`
}
