package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// RealtimeClient fans dashboard events out over Supabase Realtime channels so
// an open project workspace can refresh without polling.
type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Go client has no direct Realtime publish; row writes on the
	// subscribed tables trigger Realtime postgres_changes themselves. Kept as
	// the single seam for explicit event publishing over the REST API.
	return nil
}

func (r *RealtimeClient) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("project:%s", projectID.String())
	return r.PublishEvent(channel, event, payload)
}

func (r *RealtimeClient) PublishImageEvent(imageID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("image:%s", imageID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads

func ImageCreatedPayload(projectID, imageID uuid.UUID, imageStatus string) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"image_id":   imageID.String(),
		"status":     imageStatus,
	}
}

func ImageStatusChangedPayload(imageID uuid.UUID, imageStatus string) map[string]interface{} {
	return map[string]interface{}{
		"image_id": imageID.String(),
		"status":   imageStatus,
	}
}

func VersionDeliveredPayload(imageID uuid.UUID, versionNumber int) map[string]interface{} {
	return map[string]interface{}{
		"image_id":       imageID.String(),
		"version_number": versionNumber,
		"status":         "delivered",
	}
}

func CommentAddedPayload(imageID uuid.UUID, versionNumber int) map[string]interface{} {
	return map[string]interface{}{
		"image_id":       imageID.String(),
		"version_number": versionNumber,
	}
}
