package font

import (
	"strconv"

	"github.com/rivo/uniseg"
)

// Source is a resolved font file, either found on the system or one of the
// bundled fallback faces.
type Source struct {
	Family string // as reported by the font itself
	Path   string // file path, or "embed:<name>" for bundled faces
	Index  int    // face index inside a collection
	Data   []byte

	Bold   bool
	Italic bool

	// Fallback marks a bundled face used because nothing on the system matched.
	Fallback bool
}

// Key identifies the source for backend caches.
func (s *Source) Key() string {
	if s == nil {
		return ""
	}
	return s.Path + "#" + strconv.Itoa(s.Index)
}

// Face is a source at a concrete size. One point maps to one pixel.
type Face struct {
	Source   *Source
	Size     float64
	Tracking float64
}

// TrackingPixels is the extra advance added after every grapheme cluster.
func (f Face) TrackingPixels() float64 { return f.Tracking * f.Size }

// Metrics are measured in pixels.
type Metrics struct {
	Advance float64
	Ascent  float64
	Descent float64
	LineGap float64
}

// Height is the line height: ascent + descent + leading.
func (m Metrics) Height() float64 { return m.Ascent + m.Descent + m.LineGap }

// Clusters splits text into user-perceived characters, the unit tracking is
// applied to.
func Clusters(text string) []string {
	var out []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
