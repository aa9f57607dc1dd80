// Package handlers implements the REST API. Every project-scoped handler
// follows the same shape: resolve path params, resolve the session user,
// re-fetch the parent project and compare owners, validate the body, run the
// store operations, return JSON.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stevenshelley58-afk/redner-vault/internal/middleware"
	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/store"
)

// Uploader pushes a buffered file to object storage and returns its storage
// path and public URL. Implemented by supabase.StorageClient.
type Uploader interface {
	UploadFile(userID, projectID uuid.UUID, filename, contentType string, data []byte) (string, string, error)
}

// Publisher fans out dashboard refresh events. Implemented by
// supabase.RealtimeClient; nil-safe via the noopPublisher fallback.
type Publisher interface {
	PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error
	PublishImageEvent(imageID uuid.UUID, event string, payload map[string]interface{}) error
}

type noopPublisher struct{}

func (noopPublisher) PublishProjectEvent(uuid.UUID, string, map[string]interface{}) error { return nil }
func (noopPublisher) PublishImageEvent(uuid.UUID, string, map[string]interface{}) error   { return nil }

func orNoop(p Publisher) Publisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
}

// sessionUserID pulls the authenticated user id set by the auth middleware.
// Anything short of a parseable id is treated as an absent session.
func sessionUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		unauthorized(c)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		unauthorized(c)
		return uuid.Nil, false
	}
	return id, true
}

func sessionEmail(c *gin.Context) string {
	if raw, exists := c.Get(middleware.UserEmailKey); exists {
		if email, ok := raw.(string); ok {
			return email
		}
	}
	return ""
}

// authorName resolves the display name stamped on customer-authored rows.
func authorName(c *gin.Context) string {
	if email := sessionEmail(c); email != "" {
		return email
	}
	return "You"
}

func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

// ownedProject re-derives authorization for a project-scoped request: the
// project must exist and belong to the session user. An owner mismatch is
// reported as 401, never 403, so callers learn nothing about other tenants'
// resources.
func ownedProject(c *gin.Context, s store.Store, projectID, userID uuid.UUID) (*models.Project, bool) {
	project, err := s.GetProject(projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Project not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load project", Details: err.Error()})
		return nil, false
	}
	if project.UserID != userID {
		unauthorized(c)
		return nil, false
	}
	return project, true
}

// respondStoreError translates a store failure at the call site; not-found
// maps to 404, everything else to 500 with non-sensitive details.
func respondStoreError(c *gin.Context, message string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: message})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: message, Details: err.Error()})
}
