package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stevenshelley58-afk/redner-vault/internal/status"
)

func TestValidImageStatus(t *testing.T) {
	for _, s := range []string{"draft", "processing", "delivered", "needs_revision", "approved", "archived"} {
		assert.True(t, status.ValidImageStatus(s), s)
	}
	assert.False(t, status.ValidImageStatus(""))
	assert.False(t, status.ValidImageStatus("Delivered"))
	assert.False(t, status.ValidImageStatus("done"))
}

func TestValidProjectStatus(t *testing.T) {
	for _, s := range []string{"draft", "in_review", "in_progress", "awaiting_client", "completed", "archived"} {
		assert.True(t, status.ValidProjectStatus(s), s)
	}
	assert.False(t, status.ValidProjectStatus("in review"))
}

func TestValidVersionStatus(t *testing.T) {
	for _, s := range []string{"candidate", "delivered", "approved", "rejected"} {
		assert.True(t, status.ValidVersionStatus(s), s)
	}
	assert.False(t, status.ValidVersionStatus("needs_revision"))
}

func TestCanApprove(t *testing.T) {
	assert.True(t, status.CanApprove(status.VersionDelivered))
	assert.True(t, status.CanApprove(status.VersionCandidate))
	assert.False(t, status.CanApprove(status.VersionApproved))
	assert.False(t, status.CanApprove(status.VersionRejected))
}

func TestCanRequestRevision(t *testing.T) {
	assert.True(t, status.CanRequestRevision(status.VersionDelivered))
	assert.True(t, status.CanRequestRevision(status.VersionCandidate))
	assert.True(t, status.CanRequestRevision(status.VersionRejected))
	assert.False(t, status.CanRequestRevision(status.VersionApproved))
}

func TestStatusConfigsComplete(t *testing.T) {
	for s, cfg := range status.ProjectStatusConfig {
		assert.NotEmpty(t, cfg.Label, string(s))
		assert.NotEmpty(t, cfg.ClassName, string(s))
	}
	for s, cfg := range status.ImageStatusConfig {
		assert.NotEmpty(t, cfg.Label, string(s))
		assert.NotEmpty(t, cfg.ClassName, string(s))
	}
	for s, cfg := range status.VersionStatusConfig {
		assert.NotEmpty(t, cfg.Label, string(s))
		assert.NotEmpty(t, cfg.ClassName, string(s))
	}
}
