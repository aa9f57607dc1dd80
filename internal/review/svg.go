package review

import (
	"strconv"
	"strings"
)

// ViewBoxSize is the side of the normalized SVG viewBox annotations render
// into (viewBox="0 0 1000 1000", preserveAspectRatio="none").
const ViewBoxSize = 1000

// OverlayPath is one renderable stroke for the active version's SVG overlay.
type OverlayPath struct {
	ID    string `json:"id"`
	D     string `json:"d"`
	Color string `json:"color"`
	Note  string `json:"note"`
}

func coord(v float64) string {
	return strconv.FormatFloat(v*ViewBoxSize, 'f', 1, 64)
}

// PathData renders normalized points as an SVG path in the 1000×1000
// viewBox: "M x y L x y ...".
func PathData(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(coord(p.X))
		b.WriteString(" ")
		b.WriteString(coord(p.Y))
	}
	return b.String()
}

// Overlay returns the visible annotation paths for the active version, in
// draw order.
func (s *Session) Overlay() []OverlayPath {
	anns := s.byVersion[s.active]
	out := make([]OverlayPath, 0, len(anns))
	for _, a := range anns {
		if a.Hidden {
			continue
		}
		out = append(out, OverlayPath{
			ID:    a.ID.String(),
			D:     PathData(a.Points),
			Color: a.Color,
			Note:  a.Note,
		})
	}
	return out
}
