package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/store"
)

// maxUploadMemory caps the in-memory multipart buffer (32MB). Uploads are
// single-shot; there is no streaming or resumable path.
const maxUploadMemory = 32 << 20

type AssetsHandler struct {
	store    store.Store
	uploader Uploader
}

func NewAssetsHandler(s store.Store, uploader Uploader) *AssetsHandler {
	return &AssetsHandler{store: s, uploader: uploader}
}

func (h *AssetsHandler) CreateAsset(c *gin.Context) {
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

	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No file uploaded"})
		return
	}

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

	label := strings.TrimSpace(c.PostForm("label"))
	if label == "" {
		label = fileHeader.Filename
	}
	assetType := models.SanitizeAssetType(c.PostForm("type"))

	contentType := fileHeader.Header.Get("Content-Type")
	_, publicURL, err := h.uploader.UploadFile(userID, projectID, fileHeader.Filename, contentType, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Upload failed", Details: err.Error()})
		return
	}

	asset := &models.ProjectAsset{
		ProjectID:        projectID,
		Type:             assetType,
		Label:            label,
		FileURL:          &publicURL,
		FileThumbnailURL: &publicURL,
	}

	created, err := h.store.CreateAsset(asset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record asset", Details: err.Error()})
		return
	}

	_ = h.store.TouchProject(projectID, time.Now().UTC())

	c.JSON(http.StatusCreated, models.AssetResponse{Asset: *created})
}
