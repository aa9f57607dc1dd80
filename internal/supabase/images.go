package supabase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/status"
)

const imageColumns = `id, project_id, title, status, preview_url, primary_output_url, sort_order, latest_version, created_at, updated_at`

func scanImage(row interface{ Scan(...interface{}) error }) (*models.ProjectImage, error) {
	var img models.ProjectImage
	err := row.Scan(
		&img.ID, &img.ProjectID, &img.Title, &img.Status, &img.PreviewURL,
		&img.PrimaryOutputURL, &img.SortOrder, &img.LatestVersion, &img.CreatedAt, &img.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (d *DatabaseClient) ListImages(projectID uuid.UUID) ([]models.ProjectImage, error) {
	rows, err := d.db.Query(`
		SELECT `+imageColumns+`
		FROM project_images
		WHERE project_id = $1
		ORDER BY sort_order ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := make([]models.ProjectImage, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, *img)
	}
	return images, rows.Err()
}

func (d *DatabaseClient) CountImages(projectID uuid.UUID) (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM project_images WHERE project_id = $1`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return count, nil
}

func (d *DatabaseClient) GetImage(imageID uuid.UUID) (*models.ProjectImage, error) {
	row := d.db.QueryRow(`SELECT `+imageColumns+` FROM project_images WHERE id = $1`, imageID)
	img, err := scanImage(row)
	if err != nil {
		return nil, notFound(err)
	}
	return img, nil
}

func (d *DatabaseClient) CreateImage(img *models.ProjectImage) (*models.ProjectImage, error) {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	row := d.db.QueryRow(`
		INSERT INTO project_images (id, project_id, title, status, preview_url, primary_output_url, sort_order, latest_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+imageColumns,
		img.ID, img.ProjectID, img.Title, img.Status, img.PreviewURL, img.PrimaryOutputURL, img.SortOrder, img.LatestVersion,
	)
	created, err := scanImage(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	return created, nil
}

func (d *DatabaseClient) UpdateImageStatus(imageID uuid.UUID, st status.ImageStatus, at time.Time) (*models.ProjectImage, error) {
	row := d.db.QueryRow(`
		UPDATE project_images
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING `+imageColumns,
		st, at, imageID,
	)
	img, err := scanImage(row)
	if err != nil {
		return nil, notFound(err)
	}
	return img, nil
}

func (d *DatabaseClient) SetImageLatestVersion(imageID uuid.UUID, latest int, at time.Time) error {
	_, err := d.db.Exec(`
		UPDATE project_images
		SET latest_version = $1, updated_at = $2
		WHERE id = $3
	`, latest, at, imageID)
	return err
}

const versionColumns = `id, image_id, version_number, status, output_url, preview_url, notes, created_by_name, created_at`

func scanVersion(row interface{ Scan(...interface{}) error }) (*models.ImageVersion, error) {
	var v models.ImageVersion
	err := row.Scan(
		&v.ID, &v.ImageID, &v.VersionNumber, &v.Status, &v.OutputURL,
		&v.PreviewURL, &v.Notes, &v.CreatedByName, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *DatabaseClient) ListVersions(imageID uuid.UUID) ([]models.ImageVersion, error) {
	rows, err := d.db.Query(`
		SELECT `+versionColumns+`
		FROM image_versions
		WHERE image_id = $1
		ORDER BY version_number DESC
	`, imageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	versions := make([]models.ImageVersion, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, *v)
	}
	return versions, rows.Err()
}

func (d *DatabaseClient) CountVersions(imageID uuid.UUID) (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM image_versions WHERE image_id = $1`, imageID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count versions: %w", err)
	}
	return count, nil
}

func (d *DatabaseClient) CreateVersion(v *models.ImageVersion) (*models.ImageVersion, error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	row := d.db.QueryRow(`
		INSERT INTO image_versions (id, image_id, version_number, status, output_url, preview_url, notes, created_by_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+versionColumns,
		v.ID, v.ImageID, v.VersionNumber, v.Status, v.OutputURL, v.PreviewURL, v.Notes, v.CreatedByName,
	)
	created, err := scanVersion(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create version: %w", err)
	}
	return created, nil
}
