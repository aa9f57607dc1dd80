package supabase

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
)

func (d *DatabaseClient) ListAssets(projectID uuid.UUID) ([]models.ProjectAsset, error) {
	rows, err := d.db.Query(`
		SELECT id, project_id, type, label, file_url, file_thumbnail_url, created_at
		FROM project_assets
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]models.ProjectAsset, 0)
	for rows.Next() {
		var a models.ProjectAsset
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Type, &a.Label, &a.FileURL, &a.FileThumbnailURL, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (d *DatabaseClient) CreateAsset(a *models.ProjectAsset) (*models.ProjectAsset, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	var created models.ProjectAsset
	err := d.db.QueryRow(`
		INSERT INTO project_assets (id, project_id, type, label, file_url, file_thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, project_id, type, label, file_url, file_thumbnail_url, created_at
	`, a.ID, a.ProjectID, a.Type, a.Label, a.FileURL, a.FileThumbnailURL).Scan(
		&created.ID, &created.ProjectID, &created.Type, &created.Label,
		&created.FileURL, &created.FileThumbnailURL, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return &created, nil
}

func (d *DatabaseClient) ListNotes(projectID uuid.UUID) ([]models.ProjectNote, error) {
	rows, err := d.db.Query(`
		SELECT id, project_id, author_type, author_name, body, created_at
		FROM project_notes
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]models.ProjectNote, 0)
	for rows.Next() {
		var n models.ProjectNote
		if err := rows.Scan(&n.ID, &n.ProjectID, &n.AuthorType, &n.AuthorName, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (d *DatabaseClient) CreateNote(n *models.ProjectNote) (*models.ProjectNote, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	var created models.ProjectNote
	err := d.db.QueryRow(`
		INSERT INTO project_notes (id, project_id, author_type, author_name, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, project_id, author_type, author_name, body, created_at
	`, n.ID, n.ProjectID, n.AuthorType, n.AuthorName, n.Body).Scan(
		&created.ID, &created.ProjectID, &created.AuthorType, &created.AuthorName, &created.Body, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &created, nil
}

func (d *DatabaseClient) ListComments(imageID uuid.UUID) ([]models.ImageComment, error) {
	rows, err := d.db.Query(`
		SELECT id, image_id, version_number, author_type, author_name, body, created_at
		FROM image_comments
		WHERE image_id = $1
		ORDER BY created_at ASC
	`, imageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.ImageComment, 0)
	for rows.Next() {
		var c models.ImageComment
		if err := rows.Scan(&c.ID, &c.ImageID, &c.VersionNumber, &c.AuthorType, &c.AuthorName, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CreateComment stores the caller-supplied version_number as-is; there is no
// FK from comments to version rows.
func (d *DatabaseClient) CreateComment(cm *models.ImageComment) (*models.ImageComment, error) {
	if cm.ID == uuid.Nil {
		cm.ID = uuid.New()
	}
	var created models.ImageComment
	err := d.db.QueryRow(`
		INSERT INTO image_comments (id, image_id, version_number, author_type, author_name, body)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, image_id, version_number, author_type, author_name, body, created_at
	`, cm.ID, cm.ImageID, cm.VersionNumber, cm.AuthorType, cm.AuthorName, cm.Body).Scan(
		&created.ID, &created.ImageID, &created.VersionNumber, &created.AuthorType, &created.AuthorName, &created.Body, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &created, nil
}
