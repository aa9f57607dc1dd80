package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stevenshelley58-afk/redner-vault/internal/config"
	"github.com/stevenshelley58-afk/redner-vault/internal/handlers"
	"github.com/stevenshelley58-afk/redner-vault/internal/mailer"
	"github.com/stevenshelley58-afk/redner-vault/internal/middleware"
	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/ratelimit"
	"github.com/stevenshelley58-afk/redner-vault/internal/status"
	"github.com/stevenshelley58-afk/redner-vault/internal/store/memory"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

// fakeUploader satisfies handlers.Uploader without touching object storage.
type fakeUploader struct {
	uploads int
	fail    bool
}

func (f *fakeUploader) UploadFile(userID, projectID uuid.UUID, filename, contentType string, data []byte) (string, string, error) {
	if f.fail {
		return "", "", fmt.Errorf("storage unavailable")
	}
	f.uploads++
	path := fmt.Sprintf("%s/%s/%s", userID, projectID, filename)
	return path, "https://cdn.example.com/" + path, nil
}

// testEnv wires the full router against the in-memory store.
type testEnv struct {
	router   *gin.Engine
	store    *memory.Store
	uploader *fakeUploader
	mailer   *mailer.Recorder
	limiter  *ratelimit.Limiter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{SupabaseJWTSecret: testJWTSecret}
	st := memory.New()
	uploader := &fakeUploader{}
	rec := &mailer.Recorder{}
	limiter := ratelimit.New(time.Minute)

	projectsHandler := handlers.NewProjectsHandler(st)
	notesHandler := handlers.NewNotesHandler(st)
	assetsHandler := handlers.NewAssetsHandler(st, uploader)
	imagesHandler := handlers.NewImagesHandler(st, uploader, nil)
	versionsHandler := handlers.NewVersionsHandler(st, uploader, nil)
	commentsHandler := handlers.NewCommentsHandler(st, nil)
	meHandler := handlers.NewMeHandler(st)
	contactHandler := handlers.NewContactHandler(limiter, rec)

	router := gin.New()
	router.GET("/health", handlers.HealthHandler)
	router.POST("/api/v1/contact", contactHandler.SubmitContact)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))
	api.GET("/me", meHandler.GetMe)
	api.GET("/projects", projectsHandler.ListProjects)
	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.POST("/projects/:project_id/notes", notesHandler.CreateNote)
	api.POST("/projects/:project_id/assets", assetsHandler.CreateAsset)
	api.POST("/projects/:project_id/images", imagesHandler.CreateImage)
	api.GET("/projects/:project_id/images/:image_id", imagesHandler.GetImage)
	api.PATCH("/projects/:project_id/images/:image_id", imagesHandler.UpdateImageStatus)
	api.POST("/projects/:project_id/images/:image_id/approve", imagesHandler.Approve)
	api.POST("/projects/:project_id/images/:image_id/request_revision", imagesHandler.RequestRevision)
	api.POST("/projects/:project_id/images/:image_id/versions", versionsHandler.CreateVersion)
	api.POST("/projects/:project_id/images/:image_id/comments", commentsHandler.CreateComment)

	return &testEnv{router: router, store: st, uploader: uploader, mailer: rec, limiter: limiter}
}

func bearerToken(t *testing.T, userID uuid.UUID, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func (e *testEnv) do(t *testing.T, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doMultipart(t *testing.T, method, path, auth string, fields map[string]string, fileField, filename string, file []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// createProject provisions a project directly through the store.
func (e *testEnv) createProject(t *testing.T, userID uuid.UUID, name string) *models.Project {
	t.Helper()
	p, err := e.store.CreateProject(&models.Project{
		UserID:      userID,
		Name:        name,
		ProjectType: models.ProjectTypeImageRender,
		Status:      status.ProjectDraft,
	})
	require.NoError(t, err)
	return p
}

// createDeliveredImage provisions an image with one delivered version.
func (e *testEnv) createDeliveredImage(t *testing.T, projectID uuid.UUID) *models.ProjectImage {
	t.Helper()
	img, err := e.store.CreateImage(&models.ProjectImage{
		ProjectID:     projectID,
		Title:         "Hero shot",
		Status:        status.ImageDelivered,
		SortOrder:     1,
		LatestVersion: 1,
	})
	require.NoError(t, err)
	_, err = e.store.CreateVersion(&models.ImageVersion{
		ImageID:       img.ID,
		VersionNumber: 1,
		Status:        status.VersionDelivered,
		OutputURL:     "https://cdn.example.com/v1.jpg",
	})
	require.NoError(t, err)
	return img
}
