package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/status"
	"github.com/stevenshelley58-afk/redner-vault/internal/store"
	"github.com/stevenshelley58-afk/redner-vault/internal/supabase"
)

type ImagesHandler struct {
	store    store.Store
	uploader Uploader
	realtime Publisher
}

func NewImagesHandler(s store.Store, uploader Uploader, realtime Publisher) *ImagesHandler {
	return &ImagesHandler{store: s, uploader: uploader, realtime: orNoop(realtime)}
}

// CreateImage accepts either a multipart upload (the file becomes version 1's
// output) or a JSON body carrying URLs. The image row and the version row are
// two inserts with no transaction; if the second fails the first stands and
// the error is surfaced.
func (h *ImagesHandler) CreateImage(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	if _, ok := ownedProject(c, h.store, projectID, userID); !ok {
		return
	}

	var title, previewURL, outputURL string

	if strings.Contains(c.ContentType(), "multipart/form-data") {
		if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid input", Details: err.Error()})
			return
		}
		title = strings.TrimSpace(c.PostForm("title"))

		if fileHeader, err := c.FormFile("file"); err == nil {
			src, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Upload failed", Details: err.Error()})
				return
			}
			data, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Upload failed", Details: err.Error()})
				return
			}

			contentType := fileHeader.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "image/jpeg"
			}
			_, publicURL, err := h.uploader.UploadFile(userID, projectID, fileHeader.Filename, contentType, data)
			if err != nil {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Upload failed", Details: err.Error()})
				return
			}
			previewURL = publicURL
			outputURL = publicURL
			if title == "" {
				title = fileHeader.Filename
			}
		}
	} else {
		var req models.CreateImageRequest
		_ = c.ShouldBindJSON(&req)
		title = strings.TrimSpace(req.Title)
		previewURL = req.PreviewURL
		outputURL = req.OutputURL
		if outputURL == "" {
			outputURL = previewURL
		}
	}

	if title == "" {
		title = "New render"
	}

	existingCount, err := h.store.CountImages(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create image record", Details: err.Error()})
		return
	}

	imageStatus := status.ImageProcessing
	versionStatus := status.VersionCandidate
	if outputURL != "" {
		imageStatus = status.ImageDelivered
		versionStatus = status.VersionDelivered
	}

	image := &models.ProjectImage{
		ProjectID:     projectID,
		Title:         title,
		Status:        imageStatus,
		SortOrder:     existingCount + 1,
		LatestVersion: 1,
	}
	if previewURL != "" {
		image.PreviewURL = &previewURL
	}
	if outputURL != "" {
		image.PrimaryOutputURL = &outputURL
	}

	createdImage, err := h.store.CreateImage(image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create image record", Details: err.Error()})
		return
	}

	creator := authorName(c)
	version := &models.ImageVersion{
		ImageID:       createdImage.ID,
		VersionNumber: 1,
		Status:        versionStatus,
		OutputURL:     outputURL,
		CreatedByName: &creator,
	}
	if previewURL != "" {
		version.PreviewURL = &previewURL
	}

	createdVersion, err := h.store.CreateVersion(version)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create initial version", Details: err.Error()})
		return
	}

	updatedCount, err := h.store.CountImages(projectID)
	if err != nil {
		updatedCount = existingCount + 1
	}
	_ = h.store.UpdateProjectCounters(projectID, updatedCount, 1, time.Now().UTC())

	h.realtime.PublishProjectEvent(projectID, "image_created",
		supabase.ImageCreatedPayload(projectID, createdImage.ID, string(createdImage.Status)))

	c.JSON(http.StatusCreated, models.ImageCreatedResponse{Image: *createdImage, Version: *createdVersion})
}

// loadOwnedImage resolves an image and re-derives ownership through its
// owning project. A missing image is 404; a foreign owner is 401.
func loadOwnedImage(c *gin.Context, s store.Store, imageIDParam string) (*models.ProjectImage, bool) {
	userID, ok := sessionUserID(c)
	if !ok {
		return nil, false
	}
	imageID, ok := pathUUID(c, imageIDParam)
	if !ok {
		return nil, false
	}

	image, err := s.GetImage(imageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Image not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load image", Details: err.Error()})
		return nil, false
	}

	project, err := s.GetProject(image.ProjectID)
	if err != nil {
		respondStoreError(c, "Failed to load project", err)
		return nil, false
	}
	if project.UserID != userID {
		unauthorized(c)
		return nil, false
	}
	return image, true
}

func (h *ImagesHandler) GetImage(c *gin.Context) {
	image, ok := loadOwnedImage(c, h.store, "image_id")
	if !ok {
		return
	}

	project, err := h.store.GetProject(image.ProjectID)
	if err != nil {
		respondStoreError(c, "Failed to load project", err)
		return
	}
	versions, err := h.store.ListVersions(image.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load versions", Details: err.Error()})
		return
	}
	comments, err := h.store.ListComments(image.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load comments", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ImageDetailResponse{
		Project:  models.ProjectRef{ID: project.ID, Name: project.Name},
		Image:    *image,
		Versions: versions,
		Comments: comments,
	})
}

// UpdateImageStatus is the raw status PATCH: any of the six valid statuses is
// accepted with no transition guard beyond enum validity.
func (h *ImagesHandler) UpdateImageStatus(c *gin.Context) {
	target, ok := loadOwnedImage(c, h.store, "image_id")
	if !ok {
		return
	}

	var req models.UpdateImageStatusRequest
	_ = c.ShouldBindJSON(&req)
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid image status"})
		return
	}

	image, err := h.store.UpdateImageStatus(target.ID, status.ImageStatus(req.Status), time.Now().UTC())
	if err != nil {
		respondStoreError(c, "Failed to update image status", err)
		return
	}

	h.realtime.PublishImageEvent(image.ID, "image_status_changed",
		supabase.ImageStatusChangedPayload(image.ID, string(image.Status)))

	c.JSON(http.StatusOK, models.ImageResponse{Image: *image})
}

// activeVersion is the highest-numbered version for an image.
func (h *ImagesHandler) activeVersion(c *gin.Context, image *models.ProjectImage) (*models.ImageVersion, bool) {
	versions, err := h.store.ListVersions(image.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load versions", Details: err.Error()})
		return nil, false
	}
	if len(versions) == 0 {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "Image has no versions"})
		return nil, false
	}
	return &versions[0], true
}

// Approve sets the image status to approved; allowed only while the active
// version is delivered or candidate.
func (h *ImagesHandler) Approve(c *gin.Context) {
	image, ok := loadOwnedImage(c, h.store, "image_id")
	if !ok {
		return
	}
	active, ok := h.activeVersion(c, image)
	if !ok {
		return
	}
	if !status.CanApprove(active.Status) {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "Active version cannot be approved"})
		return
	}

	updated, err := h.store.UpdateImageStatus(image.ID, status.ImageApproved, time.Now().UTC())
	if err != nil {
		respondStoreError(c, "Failed to update image status", err)
		return
	}

	h.realtime.PublishImageEvent(image.ID, "image_status_changed",
		supabase.ImageStatusChangedPayload(image.ID, string(updated.Status)))

	c.JSON(http.StatusOK, models.ImageResponse{Image: *updated})
}

// RequestRevision sets the image status to needs_revision and appends the
// automatic comment against the active version.
func (h *ImagesHandler) RequestRevision(c *gin.Context) {
	image, ok := loadOwnedImage(c, h.store, "image_id")
	if !ok {
		return
	}
	active, ok := h.activeVersion(c, image)
	if !ok {
		return
	}
	if !status.CanRequestRevision(active.Status) {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "Active version is already approved"})
		return
	}

	updated, err := h.store.UpdateImageStatus(image.ID, status.ImageNeedsRevision, time.Now().UTC())
	if err != nil {
		respondStoreError(c, "Failed to update image status", err)
		return
	}

	name := authorName(c)
	comment, err := h.store.CreateComment(&models.ImageComment{
		ImageID:       image.ID,
		VersionNumber: active.VersionNumber,
		AuthorType:    models.AuthorCustomer,
		AuthorName:    &name,
		Body:          status.AutoRevisionComment,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to add comment", Details: err.Error()})
		return
	}

	h.realtime.PublishImageEvent(image.ID, "image_status_changed",
		supabase.ImageStatusChangedPayload(image.ID, string(updated.Status)))

	c.JSON(http.StatusOK, models.RevisionResponse{Image: *updated, Comment: *comment})
}
