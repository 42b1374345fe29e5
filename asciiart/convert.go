// Package asciiart turns a rendered bitmap into a character grid.
//
// The quantization has exactly three buckets, compared with exact integer
// equality: pure black is blank, pure white is full, anything else is partial.
// Rows that contain only blanks are dropped. Alpha is ignored, the buffers
// produced by the renderer are always opaque.
package asciiart

import (
	"image"
	"image/color"
	"runtime"
	"strings"
)

// Characters emitted for each bucket.
const (
	Blank   = ' '
	Full    = '#'
	Partial = '*'
)

// LineSeparator is the platform line separator.
var LineSeparator = platformSeparator(runtime.GOOS)

func platformSeparator(goos string) string {
	if goos == "windows" {
		return "\r\n"
	}
	return "\n"
}

// Options controls the text layout of the conversion.
type Options struct {
	// LineSeparator terminates every emitted row. Empty means the platform
	// separator.
	LineSeparator string
}

func (o Options) separator() string {
	if o.LineSeparator == "" {
		return LineSeparator
	}
	return o.LineSeparator
}

// Classify maps one pixel to its character.
func Classify(c color.Color) rune {
	r, g, b, _ := c.RGBA()
	switch {
	case r == 0 && g == 0 && b == 0:
		return Blank
	case r == 0xffff && g == 0xffff && b == 0xffff:
		return Full
	default:
		return Partial
	}
}

// Convert renders img row by row. Every emitted row is followed by the line
// separator; blank rows are skipped entirely.
func Convert(img image.Image, opts Options) string {
	sep := opts.separator()
	bounds := img.Bounds()

	var sb strings.Builder
	row := make([]rune, bounds.Dx())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		inked := false
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ch := classifyAt(img, x, y)
			if ch != Blank {
				inked = true
			}
			row[x-bounds.Min.X] = ch
		}
		if !inked {
			continue
		}
		sb.WriteString(string(row))
		sb.WriteString(sep)
	}
	return sb.String()
}

func classifyAt(img image.Image, x, y int) rune {
	if rgba, ok := img.(*image.RGBA); ok {
		c := rgba.RGBAAt(x, y)
		switch {
		case c.R == 0 && c.G == 0 && c.B == 0:
			return Blank
		case c.R == 0xff && c.G == 0xff && c.B == 0xff:
			return Full
		default:
			return Partial
		}
	}
	return Classify(img.At(x, y))
}

// Lines splits converted art back into its rows.
func Lines(art, sep string) []string {
	if sep == "" {
		sep = LineSeparator
	}
	art = strings.TrimSuffix(art, sep)
	if art == "" {
		return nil
	}
	return strings.Split(art, sep)
}
