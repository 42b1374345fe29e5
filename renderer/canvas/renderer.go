package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/textart/font"
	"github.com/ByLCY/textart/renderer"
)

// Conversion constants between pt and mm. Text is rendered at 72 DPI, so a
// point is a pixel.
const (
	PtToMm = 25.4 / 72
	MmToPt = 72 / 25.4
)

// Renderer measures and draws text via github.com/tdewolff/canvas.
type Renderer struct {
	fontMu       sync.Mutex
	fontFamilies map[string]*fontFamilyEntry
}

var _ renderer.Backend = (*Renderer)(nil)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// NewRenderer creates a canvas backed text renderer.
func NewRenderer() *Renderer {
	return &Renderer{fontFamilies: map[string]*fontFamilyEntry{}}
}

// MeasureText implements renderer.Backend. Each grapheme cluster is measured
// on its own and followed by the tracking gap, matching DrawText.
func (r *Renderer) MeasureText(text string, face font.Face) (font.Metrics, error) {
	ff, err := r.fontFace(face, canvas.White)
	if err != nil {
		return font.Metrics{}, err
	}

	// canvas 的度量单位为 mm，这里统一换算成像素（pt）。
	m := ff.Metrics()
	metrics := font.Metrics{
		Ascent:  toPt(m.Ascent),
		Descent: toPt(m.Descent),
		LineGap: toPt(m.LineGap),
	}
	for _, cluster := range font.Clusters(text) {
		metrics.Advance += toPt(ff.TextWidth(cluster)) + face.TrackingPixels()
	}
	return metrics, nil
}

// DrawText implements renderer.Backend. The text is rasterized onto a
// transparent layer of dst's size and composited over dst.
func (r *Renderer) DrawText(dst draw.Image, text string, face font.Face, x, y float64, ink color.Color) error {
	ff, err := r.fontFace(face, ink)
	if err != nil {
		return err
	}

	bounds := dst.Bounds()
	c := canvas.New(toMm(float64(bounds.Dx())), toMm(float64(bounds.Dy())))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与位图保持左上角为原点

	cursor := x
	for _, cluster := range font.Clusters(text) {
		ctx.DrawText(toMm(cursor), toMm(y), canvas.NewTextLine(ff, cluster, canvas.Left))
		cursor += toPt(ff.TextWidth(cluster)) + face.TrackingPixels()
	}

	layer := rasterizer.Draw(c, canvas.DPMM(MmToPt), canvas.DefaultColorSpace)
	draw.Draw(dst, bounds, layer, image.Point{}, draw.Over)
	return nil
}

func (r *Renderer) fontFace(face font.Face, ink color.Color) (*canvas.FontFace, error) {
	if face.Size <= 0 {
		return nil, fmt.Errorf("canvas: invalid font size %g", face.Size)
	}
	family, style, err := r.ensureFontFamily(face.Source)
	if err != nil {
		return nil, err
	}
	return family.Face(face.Size, ink, style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(src *font.Source) (*canvas.FontFamily, canvas.FontStyle, error) {
	if src == nil || len(src.Data) == 0 {
		return nil, canvas.FontRegular, fmt.Errorf("canvas: font source has no data")
	}
	key := src.Key()
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := fontStyle(src.Bold, src.Italic)
	family := canvas.NewFontFamily(src.Family)
	if err := family.LoadFont(src.Data, src.Index, style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("canvas: load font %s: %w", src.Path, err)
	}

	r.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func fontStyle(bold, italic bool) canvas.FontStyle {
	result := canvas.FontRegular
	if bold {
		result = canvas.FontBold
	}
	if italic {
		result |= canvas.FontItalic
	}
	return result
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * PtToMm }
