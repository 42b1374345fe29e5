// Package sfntrenderer draws text with golang.org/x/image/font/opentype.
//
// Faces are created at 72 DPI without hinting so one point is one pixel and
// glyph positions stay fractional, the same geometry the canvas backend uses.
package sfntrenderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/textart/font"
	"github.com/ByLCY/textart/renderer"
)

// Renderer is a renderer.Backend on top of sfnt outlines.
type Renderer struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
}

var _ renderer.Backend = (*Renderer)(nil)

// NewRenderer creates an sfnt backed text renderer.
func NewRenderer() *Renderer {
	return &Renderer{fonts: map[string]*opentype.Font{}}
}

// MeasureText implements renderer.Backend.
func (r *Renderer) MeasureText(text string, face font.Face) (font.Metrics, error) {
	xf, err := r.newFace(face)
	if err != nil {
		return font.Metrics{}, err
	}
	defer xf.Close()

	m := xf.Metrics()
	metrics := font.Metrics{
		Ascent:  fixedToFloat64(m.Ascent),
		Descent: fixedToFloat64(m.Descent),
	}
	metrics.LineGap = fixedToFloat64(m.Height) - metrics.Ascent - metrics.Descent
	if metrics.LineGap < 0 {
		metrics.LineGap = 0
	}

	tracking := floatToFixed(face.TrackingPixels())
	var advance fixed.Int26_6
	for _, cluster := range font.Clusters(text) {
		advance += xfont.MeasureString(xf, cluster) + tracking
	}
	metrics.Advance = fixedToFloat64(advance)
	return metrics, nil
}

// DrawText implements renderer.Backend.
func (r *Renderer) DrawText(dst draw.Image, text string, face font.Face, x, y float64, ink color.Color) error {
	xf, err := r.newFace(face)
	if err != nil {
		return err
	}
	defer xf.Close()

	d := &xfont.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: xf,
		Dot: fixed.Point26_6{
			X: floatToFixed(x) + fixed.I(dst.Bounds().Min.X),
			Y: floatToFixed(y) + fixed.I(dst.Bounds().Min.Y),
		},
	}
	tracking := floatToFixed(face.TrackingPixels())
	for _, cluster := range font.Clusters(text) {
		d.DrawString(cluster)
		d.Dot.X += tracking
	}
	return nil
}

func (r *Renderer) newFace(face font.Face) (xfont.Face, error) {
	if face.Size <= 0 {
		return nil, fmt.Errorf("sfnt: invalid font size %g", face.Size)
	}
	f, err := r.parse(face.Source)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    face.Size,
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
}

func (r *Renderer) parse(src *font.Source) (*opentype.Font, error) {
	if src == nil || len(src.Data) == 0 {
		return nil, fmt.Errorf("sfnt: font source has no data")
	}
	key := src.Key()
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fonts[key]; ok {
		return f, nil
	}

	coll, err := opentype.ParseCollection(src.Data)
	if err != nil {
		return nil, fmt.Errorf("sfnt: failed to parse font %s: %w", src.Path, err)
	}
	if src.Index < 0 || src.Index >= coll.NumFonts() {
		return nil, fmt.Errorf("sfnt: font %s has no face %d", src.Path, src.Index)
	}
	f, err := coll.Font(src.Index)
	if err != nil {
		return nil, fmt.Errorf("sfnt: failed to load face %d of %s: %w", src.Index, src.Path, err)
	}
	r.fonts[key] = f
	return f, nil
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// floatToFixed converts a float64 pixel value to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
