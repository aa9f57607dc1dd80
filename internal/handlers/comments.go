package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/store"
	"github.com/stevenshelley58-afk/redner-vault/internal/supabase"
)

type CommentsHandler struct {
	store    store.Store
	realtime Publisher
}

func NewCommentsHandler(s store.Store, realtime Publisher) *CommentsHandler {
	return &CommentsHandler{store: s, realtime: orNoop(realtime)}
}

// CreateComment attaches a comment to one version of an image. Versions are
// referenced by number rather than row id, so comments survive redelivery of
// the file behind a version. The number is not checked against existing
// versions; a comment on a future version simply stays hidden until that
// version lands.
func (h *CommentsHandler) CreateComment(c *gin.Context) {
	image, ok := loadOwnedImage(c, h.store, "image_id")
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	_ = c.ShouldBindJSON(&req)
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Comment is required"})
		return
	}
	if req.VersionNumber < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "version_number is required"})
		return
	}

	name := authorName(c)
	comment := &models.ImageComment{
		ImageID:       image.ID,
		VersionNumber: req.VersionNumber,
		AuthorType:    models.AuthorCustomer,
		AuthorName:    &name,
		Body:          req.Body,
	}
	created, err := h.store.CreateComment(comment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create comment", Details: err.Error()})
		return
	}

	_ = h.store.TouchProject(image.ProjectID, time.Now().UTC())

	h.realtime.PublishImageEvent(image.ID, "comment_added",
		supabase.CommentAddedPayload(image.ID, req.VersionNumber))

	c.JSON(http.StatusCreated, models.CommentResponse{Comment: *created})
}
