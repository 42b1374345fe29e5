package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"math"

	"github.com/ByLCY/textart/asciiart"
	"github.com/ByLCY/textart/font"
	"github.com/ByLCY/textart/imageio"
)

// Backend is the text rasterization capability a Renderer drives. Metrics
// and coordinates are in pixels; y grows downwards and (x, y) is the left end
// of the baseline.
type Backend interface {
	MeasureText(text string, face font.Face) (font.Metrics, error)
	DrawText(dst draw.Image, text string, face font.Face, x, y float64, ink color.Color) error
}

// Size is a pixel size.
type Size struct {
	Width  int
	Height int
}

// Renderer turns text into bitmaps, encoded images and ASCII art. Its own
// settings are fixed at construction; the font travels with every call.
type Renderer struct {
	backend       Backend
	resolver      *font.Resolver
	logger        *slog.Logger
	onWarning     func(error)
	lineSeparator string
}

// New creates a Renderer drawing through backend.
func New(backend Backend, opts ...Option) *Renderer {
	r := &Renderer{
		backend: backend,
		logger:  newNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.resolver == nil {
		r.resolver = font.NewResolver(font.WithResolverLogger(r.logger))
	}
	return r
}

// Measure returns the pixel box text occupies: the advance width including
// tracking, and the line height of the font. Empty text measures zero wide.
func (r *Renderer) Measure(text string, cfg font.Config) (Size, error) {
	face, err := r.face(cfg)
	if err != nil {
		return Size{}, err
	}
	return r.measure(text, face)
}

// Rasterize draws text in white on an opaque black buffer sized by Measure.
// The baseline sits at y = point size.
func (r *Renderer) Rasterize(text string, cfg font.Config) (*image.RGBA, error) {
	face, err := r.face(cfg)
	if err != nil {
		return nil, err
	}
	size, err := r.measure(text, face)
	if err != nil {
		return nil, err
	}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d for %q", ErrInvalidDimension, size.Width, size.Height, text)
	}

	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	if err := r.backend.DrawText(img, text, face, 0, float64(cfg.Size), color.White); err != nil {
		return nil, fmt.Errorf("renderer: draw %q: %w", text, err)
	}
	r.logger.Debug("rasterized text", "font", cfg.String(), "width", size.Width, "height", size.Height)
	return img, nil
}

// EncodeToFile rasterizes text and writes it to path in the format implied
// by the file extension. An unknown extension fails before anything is
// rendered or written, and a failed write never leaves a partial file.
func (r *Renderer) EncodeToFile(text string, cfg font.Config, path string) error {
	format, err := imageio.FromPath(path)
	if err != nil {
		return err
	}
	data, err := r.encode(text, cfg, format)
	if err != nil {
		return err
	}
	if err := imageio.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	r.logger.Debug("wrote image", "path", path, "format", format.Name, "bytes", len(data))
	return nil
}

// EncodeToStream rasterizes text and writes it to w in the named format.
// The image is encoded completely before the first byte reaches w.
func (r *Renderer) EncodeToStream(text string, cfg font.Config, formatName string, w io.Writer) error {
	format, err := imageio.Lookup(formatName)
	if err != nil {
		return err
	}
	data, err := r.encode(text, cfg, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: write %s stream: %w", ErrIO, format.Name, err)
	}
	return nil
}

// ASCIIArt rasterizes text and maps every pixel to ' ', '#' or '*'. Rows
// without ink are left out.
func (r *Renderer) ASCIIArt(text string, cfg font.Config) (string, error) {
	img, err := r.Rasterize(text, cfg)
	if err != nil {
		return "", err
	}
	return asciiart.Convert(img, asciiart.Options{LineSeparator: r.lineSeparator}), nil
}

func (r *Renderer) encode(text string, cfg font.Config, format imageio.Format) ([]byte, error) {
	img, err := r.Rasterize(text, cfg)
	if err != nil {
		return nil, err
	}
	data, err := imageio.Marshal(img, format)
	if err != nil {
		return nil, fmt.Errorf("renderer: encode %s: %w", format.Name, err)
	}
	return data, nil
}

func (r *Renderer) face(cfg font.Config) (font.Face, error) {
	if r.backend == nil {
		return font.Face{}, errors.New("renderer: no backend")
	}
	if err := cfg.Validate(); err != nil {
		return font.Face{}, fmt.Errorf("%w: %w", ErrInvalidDimension, err)
	}

	src, err := r.resolver.Resolve(cfg)
	var substituted *font.ResolutionError
	switch {
	case errors.As(err, &substituted):
		r.warn(substituted)
	case err != nil:
		return font.Face{}, fmt.Errorf("renderer: resolve font %s: %w", cfg.String(), err)
	}
	r.logger.Debug("resolved font", "font", cfg.String(), "family", src.Family, "path", src.Path)

	return font.Face{
		Source:   src,
		Size:     float64(cfg.Size),
		Tracking: cfg.Tracking,
	}, nil
}

func (r *Renderer) measure(text string, face font.Face) (Size, error) {
	m, err := r.backend.MeasureText(text, face)
	if err != nil {
		return Size{}, fmt.Errorf("renderer: measure %q: %w", text, err)
	}
	size := Size{
		Width:  int(math.Ceil(m.Advance)),
		Height: int(math.Ceil(m.Height())),
	}
	if text == "" {
		size.Width = 0
	}
	return size, nil
}

func (r *Renderer) warn(err *font.ResolutionError) {
	r.logger.Warn("font substituted", "requested", err.Requested, "substitute", err.Substitute, "cause", err.Err)
	if r.onWarning != nil {
		r.onWarning(err)
	}
}
