package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/status"
	"github.com/stevenshelley58-afk/redner-vault/internal/store"
)

type ProjectsHandler struct {
	store store.Store
}

func NewProjectsHandler(s store.Store) *ProjectsHandler {
	return &ProjectsHandler{store: s}
}

// fallbackName labels a project created without one.
func fallbackName(now time.Time) string {
	return "New project " + now.Format("2006-01-02 15:04")
}

// billingPeriodLabel is the YYYY-MM bucket the project bills into, derived
// from the due date when present.
func billingPeriodLabel(dueDate *time.Time, now time.Time) string {
	if dueDate != nil {
		return dueDate.Format("2006-01")
	}
	return now.Format("2006-01")
}

func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	var statuses []string
	if raw := c.Query("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	projects, err := h.store.ListProjects(userID, q, statuses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load projects", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: projects})
}

func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	// A missing or malformed body falls back to all defaults.
	_ = c.ShouldBindJSON(&req)
	req.Name = strings.TrimSpace(req.Name)
	req.Brief = strings.TrimSpace(req.Brief)
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid input", Details: err.Error()})
		return
	}

	now := time.Now()
	name := req.Name
	if name == "" {
		name = fallbackName(now)
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid input", Details: "due_date must be YYYY-MM-DD"})
			return
		}
		dueDate = &parsed
	}

	label := billingPeriodLabel(dueDate, now)
	project := &models.Project{
		UserID:             userID,
		Name:               name,
		ProjectType:        models.SanitizeProjectType(req.ProjectType),
		Status:             status.ProjectDraft,
		Brief:              &req.Brief,
		DueDate:            dueDate,
		BillingPeriodLabel: &label,
	}

	created, err := h.store.CreateProject(project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create project", Details: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, models.ProjectResponse{Project: *created})
}

func (h *ProjectsHandler) GetProject(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	project, ok := ownedProject(c, h.store, projectID, userID)
	if !ok {
		return
	}

	assets, err := h.store.ListAssets(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load assets", Details: err.Error()})
		return
	}
	notes, err := h.store.ListNotes(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load notes", Details: err.Error()})
		return
	}
	images, err := h.store.ListImages(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load images", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ProjectDetailResponse{
		Project: *project,
		Assets:  assets,
		Notes:   notes,
		Images:  images,
	})
}
