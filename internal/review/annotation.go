package review

import (
	"strings"

	"github.com/google/uuid"
)

// Point is a viewport coordinate normalized to [0,1]² so annotations stay
// positioned regardless of the displayed pixel size.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Palette cycles as annotations accumulate on a version.
var Palette = [7]string{
	"#0071E3",
	"#E3456A",
	"#10B981",
	"#F59E0B",
	"#8B5CF6",
	"#EF4444",
	"#14B8A6",
}

// Annotation is a completed freehand stroke with its note. Never persisted;
// lost when the session goes away.
type Annotation struct {
	ID            uuid.UUID `json:"id"`
	Points        []Point   `json:"points"`
	Note          string    `json:"note"`
	VersionNumber int       `json:"version_number"`
	Color         string    `json:"color"`
	Hidden        bool      `json:"hidden"`
}

// Stroke is an in-progress freehand drawing; it becomes an Annotation once a
// note is attached.
type Stroke struct {
	Points []Point
	Done   bool
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BeginStroke starts drawing at a normalized coordinate (pointer-down).
func (s *Session) BeginStroke(x, y float64) error {
	if _, ok := s.ActiveVersion(); !ok {
		return ErrNoActiveVersion
	}
	s.draft = &Stroke{Points: []Point{{clamp01(x), clamp01(y)}}}
	return nil
}

// ExtendStroke appends a point while the pointer is held.
func (s *Session) ExtendStroke(x, y float64) error {
	if s.draft == nil || s.draft.Done {
		return ErrNoDraft
	}
	s.draft.Points = append(s.draft.Points, Point{clamp01(x), clamp01(y)})
	return nil
}

// EndStroke finishes drawing (pointer-up/leave); the stroke stays pending
// until a note is saved or the draft is discarded.
func (s *Session) EndStroke() error {
	if s.draft == nil {
		return ErrNoDraft
	}
	s.draft.Done = true
	return nil
}

// Draft returns the pending stroke, if any.
func (s *Session) Draft() (Stroke, bool) {
	if s.draft == nil {
		return Stroke{}, false
	}
	return *s.draft, true
}

// SaveDraft attaches a note to the pending stroke and appends it to the
// active version's annotations with the next palette color. An empty trimmed
// note rejects the save and leaves the draft pending.
func (s *Session) SaveDraft(note string) (Annotation, error) {
	if s.draft == nil {
		return Annotation{}, ErrNoDraft
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return Annotation{}, ErrEmptyNote
	}

	existing := s.byVersion[s.active]
	ann := Annotation{
		ID:            uuid.New(),
		Points:        s.draft.Points,
		Note:          note,
		VersionNumber: s.active,
		Color:         Palette[len(existing)%len(Palette)],
	}
	s.byVersion[s.active] = append(existing, ann)
	s.draft = nil
	return ann, nil
}

// DiscardDraft drops the pending stroke without saving.
func (s *Session) DiscardDraft() {
	s.draft = nil
}

// Annotations returns all annotations for the active version, oldest first.
func (s *Session) Annotations() []Annotation {
	anns := s.byVersion[s.active]
	out := make([]Annotation, len(anns))
	copy(out, anns)
	return out
}

// EraseLast removes the most recently added annotation that is not hidden.
func (s *Session) EraseLast() bool {
	anns := s.byVersion[s.active]
	for i := len(anns) - 1; i >= 0; i-- {
		if !anns[i].Hidden {
			s.byVersion[s.active] = append(anns[:i], anns[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleHidden flips an annotation's visibility without deleting it.
func (s *Session) ToggleHidden(id uuid.UUID) bool {
	anns := s.byVersion[s.active]
	for i := range anns {
		if anns[i].ID == id {
			anns[i].Hidden = !anns[i].Hidden
			return true
		}
	}
	return false
}
