package sfntrenderer_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/ByLCY/textart/font"
	"github.com/ByLCY/textart/renderer"
	canvasrenderer "github.com/ByLCY/textart/renderer/canvas"
	sfntrenderer "github.com/ByLCY/textart/renderer/sfnt"
)

func newRenderer() *renderer.Renderer {
	return renderer.New(sfntrenderer.NewRenderer(),
		renderer.WithResolver(font.NewResolver(font.WithSystemFonts(false))),
		renderer.WithLineSeparator("\n"),
	)
}

func TestHiSerifBold12(t *testing.T) {
	r := newRenderer()
	cfg := font.Default()

	size, err := r.Measure("Hi", cfg)
	if err != nil {
		t.Fatalf("measure failed: %v", err)
	}
	if size.Width <= 0 || size.Height <= 0 {
		t.Fatalf("expected positive size, got %dx%d", size.Width, size.Height)
	}

	var buf bytes.Buffer
	if err := r.EncodeToStream("Hi", cfg, "png", &buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if img.Bounds().Dx() != size.Width || img.Bounds().Dy() != size.Height {
		t.Fatalf("decoded %v, measured %dx%d", img.Bounds(), size.Width, size.Height)
	}

	art, err := r.ASCIIArt("Hi", cfg)
	if err != nil {
		t.Fatalf("ascii art failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	if art == "" || len(lines) > size.Height {
		t.Fatalf("expected between 1 and %d rows, got %d", size.Height, len(lines))
	}
	for _, line := range lines {
		if strings.Trim(line, " #*") != "" {
			t.Fatalf("unexpected characters in %q", line)
		}
		if strings.TrimSpace(line) == "" {
			t.Fatalf("blank row emitted")
		}
	}
}

func TestRasterizeInksOnBlack(t *testing.T) {
	r := newRenderer()
	img, err := r.Rasterize("H", font.Default().WithSize(24))
	if err != nil {
		t.Fatalf("rasterize failed: %v", err)
	}
	inked := 0
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			c := img.RGBAAt(x, y)
			if c.A != 0xff {
				t.Fatalf("pixel (%d,%d) is not opaque: %v", x, y, c)
			}
			if c != (color.RGBA{0, 0, 0, 0xff}) {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Fatalf("expected glyph pixels")
	}
	// nothing below the baseline for a capital H
	for x := 0; x < img.Bounds().Dx(); x++ {
		if c := img.RGBAAt(x, img.Bounds().Dy()-1); c != (color.RGBA{0, 0, 0, 0xff}) {
			t.Fatalf("unexpected ink in the last row at x=%d: %v", x, c)
		}
	}
}

func TestTrackingWidensText(t *testing.T) {
	r := newRenderer()
	tight, err := r.Measure("WWWWWWWWWW", font.Default().WithSize(20).WithTracking(0))
	if err != nil {
		t.Fatalf("measure failed: %v", err)
	}
	loose, err := r.Measure("WWWWWWWWWW", font.Default().WithSize(20))
	if err != nil {
		t.Fatalf("measure failed: %v", err)
	}
	if d := loose.Width - tight.Width; d < 7 || d > 9 {
		t.Fatalf("expected about 8px of tracking, got %d", d)
	}
}

func TestRasterizeDeterministic(t *testing.T) {
	r := newRenderer()
	cfg := font.Default().WithStyles(font.Bold, font.Italic).WithSize(18)
	a, err := r.Rasterize("Deterministic", cfg)
	if err != nil {
		t.Fatalf("rasterize failed: %v", err)
	}
	b, err := newRenderer().Rasterize("Deterministic", cfg)
	if err != nil {
		t.Fatalf("rasterize failed: %v", err)
	}
	if !a.Bounds().Eq(b.Bounds()) || !bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("rasterizations differ")
	}
}

func TestDrawEmptyText(t *testing.T) {
	backend := sfntrenderer.NewRenderer()
	src, _ := font.NewResolver(font.WithSystemFonts(false)).Resolve(font.Default())
	face := font.Face{Source: src, Size: 16}

	dst := image.NewRGBA(image.Rect(0, 0, 40, 20))
	if err := backend.DrawText(dst, "", face, 0, 16, color.White); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	for _, v := range dst.Pix {
		if v != 0 {
			t.Fatalf("empty text should draw nothing")
		}
	}
}

func TestMissingSourceData(t *testing.T) {
	backend := sfntrenderer.NewRenderer()
	if _, err := backend.MeasureText("x", font.Face{Source: &font.Source{Path: "none"}, Size: 12}); err == nil {
		t.Fatalf("expected error for a source without data")
	}

	src, _ := font.NewResolver(font.WithSystemFonts(false)).Resolve(font.Default())
	bad := *src
	bad.Index = 3
	if _, err := backend.MeasureText("x", font.Face{Source: &bad, Size: 12}); err == nil {
		t.Fatalf("expected error for a face index outside the file")
	}
}

func TestAgreesWithCanvasBackend(t *testing.T) {
	opts := []renderer.Option{
		renderer.WithResolver(font.NewResolver(font.WithSystemFonts(false))),
	}
	sfnt := renderer.New(sfntrenderer.NewRenderer(), opts...)
	cv := renderer.New(canvasrenderer.NewRenderer(), opts...)

	for _, text := range []string{"Hi", "textart", "ASCII 42"} {
		a, err := sfnt.Measure(text, font.Default().WithSize(32))
		if err != nil {
			t.Fatalf("sfnt measure failed: %v", err)
		}
		b, err := cv.Measure(text, font.Default().WithSize(32))
		if err != nil {
			t.Fatalf("canvas measure failed: %v", err)
		}
		if abs(a.Width-b.Width) > 2 {
			t.Fatalf("%q: sfnt width %d, canvas width %d", text, a.Width, b.Width)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
