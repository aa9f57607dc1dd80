// Package review models the image-review screen: version selection, the
// zoom/pan viewport, the freehand annotation overlay, and the approve /
// request-revision actions. All state here is per-session scratch space and
// is never persisted.
package review

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/status"
)

var (
	ErrNoActiveVersion = errors.New("review: no active version")
	ErrUnknownVersion  = errors.New("review: unknown version number")
	ErrNoDraft         = errors.New("review: no stroke in progress")
	ErrEmptyNote       = errors.New("review: annotation note is required")
	ErrCannotApprove   = errors.New("review: active version cannot be approved")
	ErrCannotRevise    = errors.New("review: active version is already approved")
)

const (
	zoomStep = 0.25
	zoomMin  = 0.5
	zoomMax  = 3.0
)

// Session holds the review state for one image. It is not safe for
// concurrent use; each reviewer owns their own session.
type Session struct {
	image    models.ProjectImage
	versions []models.ImageVersion
	comments []models.ImageComment

	active    int // version_number of the displayed version, 0 when none
	byVersion map[int][]Annotation
	draft     *Stroke

	zoom       float64
	panX, panY float64

	authorName string
	now        func() time.Time
}

// NewSession seeds a session from the fetched image detail. Versions are
// ordered newest-first and the highest version number becomes active.
func NewSession(image models.ProjectImage, versions []models.ImageVersion, comments []models.ImageComment) *Session {
	vs := make([]models.ImageVersion, len(versions))
	copy(vs, versions)
	sort.Slice(vs, func(i, j int) bool { return vs[i].VersionNumber > vs[j].VersionNumber })

	cs := make([]models.ImageComment, len(comments))
	copy(cs, comments)
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].CreatedAt.Before(cs[j].CreatedAt) })

	s := &Session{
		image:      image,
		versions:   vs,
		comments:   cs,
		byVersion:  make(map[int][]Annotation),
		zoom:       1,
		authorName: "You",
		now:        time.Now,
	}
	if len(vs) > 0 {
		s.active = vs[0].VersionNumber
	}
	return s
}

// SetAuthorName overrides the name stamped on comments added through the
// session.
func (s *Session) SetAuthorName(name string) {
	if name = strings.TrimSpace(name); name != "" {
		s.authorName = name
	}
}

func (s *Session) Image() models.ProjectImage { return s.image }

func (s *Session) Versions() []models.ImageVersion {
	out := make([]models.ImageVersion, len(s.versions))
	copy(out, s.versions)
	return out
}

// ActiveVersion returns the currently displayed version.
func (s *Session) ActiveVersion() (models.ImageVersion, bool) {
	for _, v := range s.versions {
		if v.VersionNumber == s.active {
			return v, true
		}
	}
	return models.ImageVersion{}, false
}

// SelectVersion switches the displayed version. The viewport resets and any
// stroke in progress is dropped; saved annotations stay keyed to the version
// they were drawn on.
func (s *Session) SelectVersion(versionNumber int) error {
	found := false
	for _, v := range s.versions {
		if v.VersionNumber == versionNumber {
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownVersion
	}
	s.active = versionNumber
	s.draft = nil
	s.ResetView()
	return nil
}

// VisibleComments returns the comment thread filtered to the active version,
// oldest first.
func (s *Session) VisibleComments() []models.ImageComment {
	out := make([]models.ImageComment, 0)
	for _, c := range s.comments {
		if c.VersionNumber == s.active {
			out = append(out, c)
		}
	}
	return out
}

// AddComment appends a local comment against the active version, mirroring a
// successful POST to the comments endpoint.
func (s *Session) AddComment(body string) (models.ImageComment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.ImageComment{}, ErrEmptyNote
	}
	if _, ok := s.ActiveVersion(); !ok {
		return models.ImageComment{}, ErrNoActiveVersion
	}
	name := s.authorName
	c := models.ImageComment{
		ID:            uuid.New(),
		ImageID:       s.image.ID,
		VersionNumber: s.active,
		AuthorType:    models.AuthorCustomer,
		AuthorName:    &name,
		Body:          body,
		CreatedAt:     s.now().UTC(),
	}
	s.comments = append(s.comments, c)
	return c, nil
}

// CanApprove reports whether the approve action is available for the active
// version.
func (s *Session) CanApprove() bool {
	v, ok := s.ActiveVersion()
	return ok && status.CanApprove(v.Status)
}

// CanRequestRevision reports whether a revision may be requested.
func (s *Session) CanRequestRevision() bool {
	v, ok := s.ActiveVersion()
	return ok && status.CanRequestRevision(v.Status)
}

// Approve marks the image approved. Allowed only while the active version is
// delivered or candidate.
func (s *Session) Approve() (status.ImageStatus, error) {
	if !s.CanApprove() {
		return s.image.Status, ErrCannotApprove
	}
	s.image.Status = status.ImageApproved
	return s.image.Status, nil
}

// RequestRevision marks the image needs_revision and appends the automatic
// comment against the active version.
func (s *Session) RequestRevision() (status.ImageStatus, error) {
	if !s.CanRequestRevision() {
		return s.image.Status, ErrCannotRevise
	}
	s.image.Status = status.ImageNeedsRevision
	if _, err := s.AddComment(status.AutoRevisionComment); err != nil {
		return s.image.Status, err
	}
	return s.image.Status, nil
}

// Zoom returns the current zoom factor.
func (s *Session) Zoom() float64 { return s.zoom }

func (s *Session) ZoomIn() {
	if s.zoom += zoomStep; s.zoom > zoomMax {
		s.zoom = zoomMax
	}
}

func (s *Session) ZoomOut() {
	if s.zoom -= zoomStep; s.zoom < zoomMin {
		s.zoom = zoomMin
	}
}

// Pan shifts the viewport; panning only applies while zoomed in.
func (s *Session) Pan(dx, dy float64) {
	if s.zoom <= 1 {
		return
	}
	s.panX += dx
	s.panY += dy
}

func (s *Session) Offset() (x, y float64) { return s.panX, s.panY }

func (s *Session) ResetView() {
	s.zoom = 1
	s.panX = 0
	s.panY = 0
}
