package asciiart

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func newCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

func TestClassifyBuckets(t *testing.T) {
	cases := []struct {
		c    color.Color
		want rune
	}{
		{color.Black, Blank},
		{color.White, Full},
		{color.RGBA{0xfe, 0xfe, 0xfe, 0xff}, Partial},
		{color.RGBA{0x01, 0x00, 0x00, 0xff}, Partial},
		{color.Gray{0x80}, Partial},
		{color.NRGBA{0xff, 0xff, 0xff, 0xff}, Full},
	}
	for _, tc := range cases {
		if got := Classify(tc.c); got != tc.want {
			t.Fatalf("Classify(%v): expected %q, got %q", tc.c, tc.want, got)
		}
	}
}

func TestConvertSkipsBlankRows(t *testing.T) {
	img := newCanvas(4, 5)
	img.Set(0, 1, color.White)
	img.Set(2, 1, color.Gray{0x40})
	img.Set(3, 3, color.White)

	got := Convert(img, Options{LineSeparator: "\n"})
	want := "# * \n   #\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestConvertAllBlank(t *testing.T) {
	if got := Convert(newCanvas(3, 3), Options{}); got != "" {
		t.Fatalf("expected empty art, got %q", got)
	}
}

func TestConvertUsesSeparatorAfterEveryRow(t *testing.T) {
	img := newCanvas(2, 2)
	img.Set(0, 0, color.White)
	img.Set(1, 1, color.White)

	got := Convert(img, Options{LineSeparator: "\r\n"})
	if got != "# \r\n #\r\n" {
		t.Fatalf("unexpected art %q", got)
	}
	lines := Lines(got, "\r\n")
	if len(lines) != 2 || lines[0] != "# " || lines[1] != " #" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestConvertGenericImage(t *testing.T) {
	img := image.NewGray(image.Rect(10, 10, 13, 11))
	img.SetGray(10, 10, color.Gray{0xff})
	img.SetGray(12, 10, color.Gray{0x10})

	got := Convert(img, Options{LineSeparator: "\n"})
	if got != "# *\n" {
		t.Fatalf("unexpected art %q", got)
	}
}

func TestPlatformSeparator(t *testing.T) {
	if platformSeparator("windows") != "\r\n" {
		t.Fatalf("windows should use CRLF")
	}
	if platformSeparator("linux") != "\n" || platformSeparator("darwin") != "\n" {
		t.Fatalf("unix systems should use LF")
	}
	if !strings.HasSuffix(Convert(func() *image.RGBA {
		img := newCanvas(1, 1)
		img.Set(0, 0, color.White)
		return img
	}(), Options{}), LineSeparator) {
		t.Fatalf("default options should use the platform separator")
	}
}

func TestLinesEmpty(t *testing.T) {
	if Lines("", "\n") != nil {
		t.Fatalf("expected no lines")
	}
}
