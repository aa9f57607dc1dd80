package handlers_test

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/status"
)

func TestCreateProject_Defaults(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")

	w := env.do(t, "POST", "/api/v1/projects", auth, map[string]string{})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.ProjectResponse
	decode(t, w, &resp)

	assert.Regexp(t, regexp.MustCompile(`^New project \d{4}-\d{2}-\d{2} \d{2}:\d{2}$`), resp.Project.Name)
	assert.Equal(t, status.ProjectDraft, resp.Project.Status)
	assert.Equal(t, models.ProjectTypeImageRender, resp.Project.ProjectType)
	assert.Equal(t, userID, resp.Project.UserID)
	require.NotNil(t, resp.Project.BillingPeriodLabel)
	assert.Equal(t, time.Now().Format("2006-01"), *resp.Project.BillingPeriodLabel)
}

func TestCreateProject_WithFields(t *testing.T) {
	env := newTestEnv(t)
	auth := bearerToken(t, uuid.New(), "client@example.com")

	w := env.do(t, "POST", "/api/v1/projects", auth, map[string]string{
		"name":         "  Spring lookbook  ",
		"project_type": "website_build",
		"brief":        "Six hero renders",
		"due_date":     "2026-10-15",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.ProjectResponse
	decode(t, w, &resp)

	assert.Equal(t, "Spring lookbook", resp.Project.Name)
	assert.Equal(t, models.ProjectTypeWebsiteBuild, resp.Project.ProjectType)
	require.NotNil(t, resp.Project.DueDate)
	assert.Equal(t, "2026-10-15", resp.Project.DueDate.Format("2006-01-02"))
	require.NotNil(t, resp.Project.BillingPeriodLabel)
	assert.Equal(t, "2026-10", *resp.Project.BillingPeriodLabel)
}

func TestCreateProject_UnknownTypeFallsBack(t *testing.T) {
	env := newTestEnv(t)
	auth := bearerToken(t, uuid.New(), "client@example.com")

	w := env.do(t, "POST", "/api/v1/projects", auth, map[string]string{
		"name":         "Typed",
		"project_type": "hologram",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.ProjectResponse
	decode(t, w, &resp)
	assert.Equal(t, models.ProjectTypeImageRender, resp.Project.ProjectType)
}

func TestCreateProject_BadDueDate(t *testing.T) {
	env := newTestEnv(t)
	auth := bearerToken(t, uuid.New(), "client@example.com")

	w := env.do(t, "POST", "/api/v1/projects", auth, map[string]string{
		"due_date": "15/10/2026",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProject_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, "POST", "/api/v1/projects", "", map[string]string{"name": "X"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListProjects_Filters(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")

	env.createProject(t, userID, "Kitchen renders")
	p2 := env.createProject(t, userID, "Bathroom pack")
	env.createProject(t, uuid.New(), "Another tenant")

	require.NoError(t, env.store.TouchProject(p2.ID, time.Now().UTC().Add(time.Hour)))

	w := env.do(t, "GET", "/api/v1/projects", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ProjectListResponse
	decode(t, w, &resp)
	require.Len(t, resp.Projects, 2)
	assert.Equal(t, "Bathroom pack", resp.Projects[0].Name)

	w = env.do(t, "GET", "/api/v1/projects?q=kitchen", auth, nil)
	decode(t, w, &resp)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "Kitchen renders", resp.Projects[0].Name)

	w = env.do(t, "GET", "/api/v1/projects?status=draft,archived", auth, nil)
	decode(t, w, &resp)
	assert.Len(t, resp.Projects, 2)

	w = env.do(t, "GET", "/api/v1/projects?status=completed", auth, nil)
	decode(t, w, &resp)
	assert.Empty(t, resp.Projects)
}

func TestGetProject_Detail(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Detail")
	env.createDeliveredImage(t, project.ID)

	w := env.do(t, "GET", "/api/v1/projects/"+project.ID.String(), auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ProjectDetailResponse
	decode(t, w, &resp)
	assert.Equal(t, project.ID, resp.Project.ID)
	assert.NotNil(t, resp.Assets)
	assert.NotNil(t, resp.Notes)
	require.Len(t, resp.Images, 1)
}

func TestGetProject_NotFound(t *testing.T) {
	env := newTestEnv(t)
	auth := bearerToken(t, uuid.New(), "client@example.com")

	w := env.do(t, "GET", "/api/v1/projects/"+uuid.NewString(), auth, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProject_ForeignOwnerIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, uuid.New(), "Not yours")

	auth := bearerToken(t, uuid.New(), "intruder@example.com")
	w := env.do(t, "GET", "/api/v1/projects/"+project.ID.String(), auth, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestGetProject_BadID(t *testing.T) {
	env := newTestEnv(t)
	auth := bearerToken(t, uuid.New(), "client@example.com")

	w := env.do(t, "GET", "/api/v1/projects/not-a-uuid", auth, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
