package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/status"
)

func TestCreateImage_MultipartUpload(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Uploads")

	w := env.doMultipart(t, "POST", "/api/v1/projects/"+project.ID.String()+"/images", auth,
		map[string]string{"title": "Front elevation"}, "file", "render.jpg", []byte("jpeg-bytes"))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.ImageCreatedResponse
	decode(t, w, &resp)

	assert.Equal(t, "Front elevation", resp.Image.Title)
	assert.Equal(t, status.ImageDelivered, resp.Image.Status)
	assert.Equal(t, 1, resp.Image.SortOrder)
	assert.Equal(t, 1, resp.Image.LatestVersion)
	require.NotNil(t, resp.Image.PrimaryOutputURL)

	assert.Equal(t, 1, resp.Version.VersionNumber)
	assert.Equal(t, status.VersionDelivered, resp.Version.Status)
	assert.NotEmpty(t, resp.Version.OutputURL)
	assert.Equal(t, 1, env.uploader.uploads)

	got, err := env.store.GetProject(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ImagesCount)
	assert.Equal(t, 1, got.LatestVersion)
}

func TestCreateImage_JSONWithoutOutput(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Pending")

	w := env.do(t, "POST", "/api/v1/projects/"+project.ID.String()+"/images", auth, map[string]string{})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.ImageCreatedResponse
	decode(t, w, &resp)

	assert.Equal(t, "New render", resp.Image.Title)
	assert.Equal(t, status.ImageProcessing, resp.Image.Status)
	assert.Equal(t, status.VersionCandidate, resp.Version.Status)
}

func TestCreateImage_SortOrderIncrements(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Ordering")

	for n := 1; n <= 3; n++ {
		w := env.do(t, "POST", "/api/v1/projects/"+project.ID.String()+"/images", auth,
			map[string]string{"output_url": "https://cdn.example.com/out.jpg"})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp models.ImageCreatedResponse
		decode(t, w, &resp)
		assert.Equal(t, n, resp.Image.SortOrder)
	}
}

func TestCreateImage_ForeignProject(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, uuid.New(), "Not yours")
	auth := bearerToken(t, uuid.New(), "intruder@example.com")

	w := env.do(t, "POST", "/api/v1/projects/"+project.ID.String()+"/images", auth, map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetImage_Detail(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Detail")
	img := env.createDeliveredImage(t, project.ID)

	_, err := env.store.CreateVersion(&models.ImageVersion{
		ImageID: img.ID, VersionNumber: 2,
		Status: status.VersionDelivered, OutputURL: "https://cdn.example.com/v2.jpg",
	})
	require.NoError(t, err)

	w := env.do(t, "GET", "/api/v1/projects/"+project.ID.String()+"/images/"+img.ID.String(), auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ImageDetailResponse
	decode(t, w, &resp)

	assert.Equal(t, project.ID, resp.Project.ID)
	assert.Equal(t, "Detail", resp.Project.Name)
	assert.Equal(t, img.ID, resp.Image.ID)
	require.Len(t, resp.Versions, 2)
	assert.Equal(t, 2, resp.Versions[0].VersionNumber)
	assert.Equal(t, 1, resp.Versions[1].VersionNumber)
}

func TestGetImage_NotFound(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Empty")

	w := env.do(t, "GET", "/api/v1/projects/"+project.ID.String()+"/images/"+uuid.NewString(), auth, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateImageStatus(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Statuses")
	img := env.createDeliveredImage(t, project.ID)

	base := "/api/v1/projects/" + project.ID.String() + "/images/" + img.ID.String()

	w := env.do(t, "PATCH", base, auth, map[string]string{"status": "needs_revision"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ImageResponse
	decode(t, w, &resp)
	assert.Equal(t, status.ImageNeedsRevision, resp.Image.Status)
}

func TestUpdateImageStatus_InvalidIsRejectedWithoutWrite(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Statuses")
	img := env.createDeliveredImage(t, project.ID)

	base := "/api/v1/projects/" + project.ID.String() + "/images/" + img.ID.String()

	for _, bad := range []string{"", "done", "Delivered", "candidate"} {
		w := env.do(t, "PATCH", base, auth, map[string]string{"status": bad})
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.Contains(t, w.Body.String(), "Invalid image status")
	}

	got, err := env.store.GetImage(img.ID)
	require.NoError(t, err)
	assert.Equal(t, status.ImageDelivered, got.Status)
}

func TestUpdateImageStatus_ForeignImageIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	victimProject := env.createProject(t, uuid.New(), "Victim")
	victimImg := env.createDeliveredImage(t, victimProject.ID)

	attackerID := uuid.New()
	auth := bearerToken(t, attackerID, "intruder@example.com")
	attackerProject := env.createProject(t, attackerID, "Mine")

	w := env.do(t, "PATCH",
		"/api/v1/projects/"+attackerProject.ID.String()+"/images/"+victimImg.ID.String(),
		auth, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	got, err := env.store.GetImage(victimImg.ID)
	require.NoError(t, err)
	assert.Equal(t, status.ImageDelivered, got.Status)
}

func TestApprove(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Approvals")
	img := env.createDeliveredImage(t, project.ID)

	w := env.do(t, "POST", "/api/v1/projects/"+project.ID.String()+"/images/"+img.ID.String()+"/approve", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ImageResponse
	decode(t, w, &resp)
	assert.Equal(t, status.ImageApproved, resp.Image.Status)
}

func TestApprove_RejectedActiveVersion(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Approvals")
	img := env.createDeliveredImage(t, project.ID)

	_, err := env.store.CreateVersion(&models.ImageVersion{
		ImageID: img.ID, VersionNumber: 2,
		Status: status.VersionRejected, OutputURL: "https://cdn.example.com/v2.jpg",
	})
	require.NoError(t, err)

	w := env.do(t, "POST", "/api/v1/projects/"+project.ID.String()+"/images/"+img.ID.String()+"/approve", auth, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	got, err := env.store.GetImage(img.ID)
	require.NoError(t, err)
	assert.Equal(t, status.ImageDelivered, got.Status)
}

func TestApprove_NoVersions(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Approvals")

	img, err := env.store.CreateImage(&models.ProjectImage{
		ProjectID: project.ID, Title: "No versions", Status: status.ImageDraft, SortOrder: 1,
	})
	require.NoError(t, err)

	w := env.do(t, "POST", "/api/v1/projects/"+project.ID.String()+"/images/"+img.ID.String()+"/approve", auth, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Image has no versions")
}

func TestRequestRevision_AppendsAutoComment(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Revisions")
	img := env.createDeliveredImage(t, project.ID)

	w := env.do(t, "POST", "/api/v1/projects/"+project.ID.String()+"/images/"+img.ID.String()+"/request_revision", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.RevisionResponse
	decode(t, w, &resp)
	assert.Equal(t, status.ImageNeedsRevision, resp.Image.Status)
	assert.Equal(t, status.AutoRevisionComment, resp.Comment.Body)
	assert.Equal(t, 1, resp.Comment.VersionNumber)

	comments, err := env.store.ListComments(img.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.NotNil(t, comments[0].AuthorName)
	assert.Equal(t, "client@example.com", *comments[0].AuthorName)
}

func TestRequestRevision_ApprovedActiveVersion(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearerToken(t, userID, "client@example.com")
	project := env.createProject(t, userID, "Revisions")
	img := env.createDeliveredImage(t, project.ID)

	_, err := env.store.CreateVersion(&models.ImageVersion{
		ImageID: img.ID, VersionNumber: 2,
		Status: status.VersionApproved, OutputURL: "https://cdn.example.com/v2.jpg",
	})
	require.NoError(t, err)

	w := env.do(t, "POST", "/api/v1/projects/"+project.ID.String()+"/images/"+img.ID.String()+"/request_revision", auth, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	comments, err := env.store.ListComments(img.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
