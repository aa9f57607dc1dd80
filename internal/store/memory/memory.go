// Package memory is the in-memory store.Store used by demo mode and by the
// handler tests. It mirrors the ordering and filtering semantics of the
// Postgres implementation.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/status"
	"github.com/stevenshelley58-afk/redner-vault/internal/store"
)

type Store struct {
	mu sync.RWMutex

	profiles     map[uuid.UUID]models.Profile
	brands       map[uuid.UUID]models.Brand
	billing      map[uuid.UUID]models.BillingAccount
	transactions []models.BillingTransaction
	projects     map[uuid.UUID]models.Project
	assets       []models.ProjectAsset
	notes        []models.ProjectNote
	images       map[uuid.UUID]models.ProjectImage
	versions     []models.ImageVersion
	comments     []models.ImageComment
}

func New() *Store {
	return &Store{
		profiles: make(map[uuid.UUID]models.Profile),
		brands:   make(map[uuid.UUID]models.Brand),
		billing:  make(map[uuid.UUID]models.BillingAccount),
		projects: make(map[uuid.UUID]models.Project),
		images:   make(map[uuid.UUID]models.ProjectImage),
	}
}

var _ store.Store = (*Store)(nil)

func (s *Store) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Store) CreateProfile(p *models.Profile) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.profiles[cp.ID] = cp
	return &cp, nil
}

func (s *Store) GetBrand(userID uuid.UUID) (*models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.brands[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &b, nil
}

// SeedBrand is used by demo mode to pre-populate a brand row.
func (s *Store) SeedBrand(b models.Brand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands[b.UserID] = b
}

func (s *Store) GetBillingAccount(userID uuid.UUID) (*models.BillingAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.billing[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &b, nil
}

func (s *Store) CreateBillingAccount(userID uuid.UUID) (*models.BillingAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	b := models.BillingAccount{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.billing[userID] = b
	return &b, nil
}

func (s *Store) ListBillingTransactions(accountID uuid.UUID, limit int) ([]models.BillingTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.BillingTransaction, 0)
	for _, tx := range s.transactions {
		if tx.BillingAccountID == accountID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListProjects(userID uuid.UUID, q string, statuses []string) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	statusSet := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		if st != "" {
			statusSet[st] = true
		}
	}
	needle := strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Project, 0)
	for _, p := range s.projects {
		if p.UserID != userID {
			continue
		}
		if needle != "" {
			brief := ""
			if p.Brief != nil {
				brief = *p.Brief
			}
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(brief), needle) {
				continue
			}
		}
		if len(statusSet) > 0 && !statusSet[string(p.Status)] {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *Store) CreateProject(p *models.Project) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.projects[cp.ID] = cp
	return &cp, nil
}

func (s *Store) GetProject(projectID uuid.UUID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[projectID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Store) TouchProject(projectID uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok {
		return store.ErrNotFound
	}
	p.UpdatedAt = at
	s.projects[projectID] = p
	return nil
}

func (s *Store) UpdateProjectCounters(projectID uuid.UUID, imagesCount, latestVersion int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok {
		return store.ErrNotFound
	}
	p.ImagesCount = imagesCount
	if latestVersion > p.LatestVersion {
		p.LatestVersion = latestVersion
	}
	p.UpdatedAt = at
	s.projects[projectID] = p
	return nil
}

func (s *Store) ListAssets(projectID uuid.UUID) ([]models.ProjectAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ProjectAsset, 0)
	for _, a := range s.assets {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateAsset(a *models.ProjectAsset) (*models.ProjectAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ca := *a
	if ca.ID == uuid.Nil {
		ca.ID = uuid.New()
	}
	ca.CreatedAt = time.Now().UTC()
	s.assets = append(s.assets, ca)
	return &ca, nil
}

func (s *Store) ListNotes(projectID uuid.UUID) ([]models.ProjectNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ProjectNote, 0)
	for _, n := range s.notes {
		if n.ProjectID == projectID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateNote(n *models.ProjectNote) (*models.ProjectNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cn := *n
	if cn.ID == uuid.Nil {
		cn.ID = uuid.New()
	}
	cn.CreatedAt = time.Now().UTC()
	s.notes = append(s.notes, cn)
	return &cn, nil
}

func (s *Store) ListImages(projectID uuid.UUID) ([]models.ProjectImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ProjectImage, 0)
	for _, img := range s.images {
		if img.ProjectID == projectID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (s *Store) CountImages(projectID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, img := range s.images {
		if img.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (s *Store) GetImage(imageID uuid.UUID) (*models.ProjectImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[imageID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &img, nil
}

func (s *Store) CreateImage(img *models.ProjectImage) (*models.ProjectImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ci := *img
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	now := time.Now().UTC()
	ci.CreatedAt = now
	ci.UpdatedAt = now
	s.images[ci.ID] = ci
	return &ci, nil
}

func (s *Store) UpdateImageStatus(imageID uuid.UUID, st status.ImageStatus, at time.Time) (*models.ProjectImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.images[imageID]
	if !ok {
		return nil, store.ErrNotFound
	}
	img.Status = st
	img.UpdatedAt = at
	s.images[imageID] = img
	return &img, nil
}

func (s *Store) SetImageLatestVersion(imageID uuid.UUID, latest int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.images[imageID]
	if !ok {
		return store.ErrNotFound
	}
	img.LatestVersion = latest
	img.UpdatedAt = at
	s.images[imageID] = img
	return nil
}

func (s *Store) ListVersions(imageID uuid.UUID) ([]models.ImageVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ImageVersion, 0)
	for _, v := range s.versions {
		if v.ImageID == imageID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber > out[j].VersionNumber })
	return out, nil
}

func (s *Store) CountVersions(imageID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, v := range s.versions {
		if v.ImageID == imageID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CreateVersion(v *models.ImageVersion) (*models.ImageVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cv := *v
	if cv.ID == uuid.Nil {
		cv.ID = uuid.New()
	}
	if cv.CreatedAt.IsZero() {
		cv.CreatedAt = time.Now().UTC()
	}
	s.versions = append(s.versions, cv)
	return &cv, nil
}

func (s *Store) ListComments(imageID uuid.UUID) ([]models.ImageComment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ImageComment, 0)
	for _, c := range s.comments {
		if c.ImageID == imageID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateComment(cm *models.ImageComment) (*models.ImageComment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cc := *cm
	if cc.ID == uuid.Nil {
		cc.ID = uuid.New()
	}
	if cc.CreatedAt.IsZero() {
		cc.CreatedAt = time.Now().UTC()
	}
	s.comments = append(s.comments, cc)
	return &cc, nil
}
