package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/store"
)

type NotesHandler struct {
	store store.Store
}

func NewNotesHandler(s store.Store) *NotesHandler {
	return &NotesHandler{store: s}
}

func (h *NotesHandler) CreateNote(c *gin.Context) {
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

	var req models.CreateNoteRequest
	_ = c.ShouldBindJSON(&req)
	req.Body = strings.TrimSpace(req.Body)
	req.AuthorName = strings.TrimSpace(req.AuthorName)
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Note body is required"})
		return
	}

	name := req.AuthorName
	if name == "" {
		name = authorName(c)
	}
	note := &models.ProjectNote{
		ProjectID:  projectID,
		AuthorType: models.AuthorCustomer,
		AuthorName: &name,
		Body:       req.Body,
	}

	created, err := h.store.CreateNote(note)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to add note", Details: err.Error()})
		return
	}

	// Bump the project so the workspace list reflects the activity.
	_ = h.store.TouchProject(projectID, time.Now().UTC())

	c.JSON(http.StatusCreated, models.NoteResponse{Note: *created})
}
