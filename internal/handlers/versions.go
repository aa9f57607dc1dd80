package handlers

import (
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

type VersionsHandler struct {
	store    store.Store
	uploader Uploader
	realtime Publisher
}

func NewVersionsHandler(s store.Store, uploader Uploader, realtime Publisher) *VersionsHandler {
	return &VersionsHandler{store: s, uploader: uploader, realtime: orNoop(realtime)}
}

// CreateVersion delivers a new rendered output for an image. The new row is
// numbered count+1; existing versions are never renumbered or mutated. The
// image flips to delivered and both latest_version counters advance.
func (h *VersionsHandler) CreateVersion(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}
	image, ok := loadOwnedImage(c, h.store, "image_id")
	if !ok {
		return
	}

	var outputURL, previewURL, notes string

	if strings.Contains(c.ContentType(), "multipart/form-data") {
		if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid input", Details: err.Error()})
			return
		}
		notes = strings.TrimSpace(c.PostForm("notes"))

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No file uploaded"})
			return
		}
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
		_, publicURL, err := h.uploader.UploadFile(userID, image.ProjectID, fileHeader.Filename, contentType, data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Upload failed", Details: err.Error()})
			return
		}
		outputURL = publicURL
		previewURL = publicURL
	} else {
		var req models.CreateVersionRequest
		_ = c.ShouldBindJSON(&req)
		req.OutputURL = strings.TrimSpace(req.OutputURL)
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid input", Details: err.Error()})
			return
		}
		outputURL = req.OutputURL
		previewURL = req.PreviewURL
		notes = strings.TrimSpace(req.Notes)
	}

	count, err := h.store.CountVersions(image.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create version", Details: err.Error()})
		return
	}
	versionNumber := count + 1

	creator := authorName(c)
	version := &models.ImageVersion{
		ImageID:       image.ID,
		VersionNumber: versionNumber,
		Status:        status.VersionDelivered,
		OutputURL:     outputURL,
		CreatedByName: &creator,
	}
	if previewURL != "" {
		version.PreviewURL = &previewURL
	}
	if notes != "" {
		version.Notes = &notes
	}

	created, err := h.store.CreateVersion(version)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create version", Details: err.Error()})
		return
	}

	now := time.Now().UTC()
	_ = h.store.SetImageLatestVersion(image.ID, versionNumber, now)
	if _, err := h.store.UpdateImageStatus(image.ID, status.ImageDelivered, now); err == nil {
		imagesCount, cerr := h.store.CountImages(image.ProjectID)
		if cerr == nil {
			_ = h.store.UpdateProjectCounters(image.ProjectID, imagesCount, versionNumber, now)
		}
	}

	h.realtime.PublishImageEvent(image.ID, "version_delivered",
		supabase.VersionDeliveredPayload(image.ID, versionNumber))

	c.JSON(http.StatusCreated, models.VersionResponse{Version: *created})
}
