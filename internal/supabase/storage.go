package supabase

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

var whitespace = regexp.MustCompile(`\s+`)

// StorageClient uploads project files to one Supabase storage bucket and
// derives their public URLs. Separate instances are used for reference
// assets and rendered outputs.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// UploadFile buffers the whole payload and pushes it in one shot; there is no
// streaming or resumable path. Returns the storage path and public URL.
func (s *StorageClient) UploadFile(userID, projectID uuid.UUID, filename, contentType string, data []byte) (string, string, error) {
	safeName := whitespace.ReplaceAllString(filename, "-")
	storagePath := fmt.Sprintf("%s/%s/%d-%s", userID.String(), projectID.String(), time.Now().UnixMilli(), safeName)

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := false
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload file: %w", err)
	}

	return storagePath, s.PublicURL(storagePath), nil
}

func (s *StorageClient) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, storagePath)
}
