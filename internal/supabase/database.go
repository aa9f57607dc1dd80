package supabase

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/store"
)

// DatabaseClient is the Postgres-backed store.Store. All queries go straight
// at the Supabase database over lib/pq; the database is the sole source of
// truth and nothing is cached here.
type DatabaseClient struct {
	db *sql.DB
}

var _ store.Store = (*DatabaseClient)(nil)

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

// notFound translates the driver's sentinel so handlers only ever see
// store.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

const projectColumns = `id, user_id, name, project_type, status, brief, agreed_deliverables, due_date, billing_period_label, images_count, latest_version, created_at, updated_at`

func scanProject(row interface{ Scan(...interface{}) error }) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.ProjectType, &p.Status,
		&p.Brief, &p.AgreedDeliverables, &p.DueDate, &p.BillingPeriodLabel,
		&p.ImagesCount, &p.LatestVersion, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *DatabaseClient) ListProjects(userID uuid.UUID, q string, statuses []string) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1`
	args := []interface{}{userID}

	if q != "" {
		args = append(args, "%"+q+"%")
		query += fmt.Sprintf(` AND (name ILIKE $%d OR brief ILIKE $%d)`, len(args), len(args))
	}
	filtered := make([]string, 0, len(statuses))
	for _, s := range statuses {
		if s != "" {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) > 0 {
		args = append(args, pq.Array(filtered))
		query += fmt.Sprintf(` AND status = ANY($%d)`, len(args))
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (d *DatabaseClient) CreateProject(p *models.Project) (*models.Project, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	row := d.db.QueryRow(`
		INSERT INTO projects (id, user_id, name, project_type, status, brief, agreed_deliverables, due_date, billing_period_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+projectColumns,
		p.ID, p.UserID, p.Name, p.ProjectType, p.Status, p.Brief, p.AgreedDeliverables, p.DueDate, p.BillingPeriodLabel,
	)
	created, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

func (d *DatabaseClient) GetProject(projectID uuid.UUID) (*models.Project, error) {
	row := d.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = $1`, projectID)
	p, err := scanProject(row)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (d *DatabaseClient) TouchProject(projectID uuid.UUID, at time.Time) error {
	_, err := d.db.Exec(`UPDATE projects SET updated_at = $1 WHERE id = $2`, at, projectID)
	return err
}

func (d *DatabaseClient) UpdateProjectCounters(projectID uuid.UUID, imagesCount, latestVersion int, at time.Time) error {
	_, err := d.db.Exec(`
		UPDATE projects
		SET images_count = $1, latest_version = GREATEST(latest_version, $2), updated_at = $3
		WHERE id = $4
	`, imagesCount, latestVersion, at, projectID)
	return err
}
