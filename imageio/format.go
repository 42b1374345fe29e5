package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for format names and file extensions no
// registered encoder handles.
var ErrUnsupportedFormat = errors.New("imageio: unsupported format")

// JPEGQuality matches the default quality of common JPEG writers.
const JPEGQuality = 75

// Format is a registered image encoder.
type Format struct {
	Name       string
	Extensions []string
	encode     func(w io.Writer, img image.Image) error
}

var formats = []Format{
	{
		Name:       "png",
		Extensions: []string{".png"},
		encode:     png.Encode,
	},
	{
		Name:       "jpeg",
		Extensions: []string{".jpg", ".jpeg"},
		encode: func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
		},
	},
	{
		Name:       "gif",
		Extensions: []string{".gif"},
		encode: func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		},
	},
	{
		Name:       "bmp",
		Extensions: []string{".bmp"},
		encode:     bmp.Encode,
	},
	{
		Name:       "tiff",
		Extensions: []string{".tif", ".tiff"},
		encode: func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		},
	},
}

var aliases = map[string]string{
	"jpg": "jpeg",
	"tif": "tiff",
}

// Lookup finds a format by name, case-insensitively. jpg and tif are
// accepted as aliases.
func Lookup(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	for _, f := range formats {
		if f.Name == key {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FromPath infers the format from the file extension, case-insensitively.
func FromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return Format{}, fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	for _, f := range formats {
		for _, e := range f.Extensions {
			if e == ext {
				return f, nil
			}
		}
	}
	return Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Names lists the registered format names.
func Names() []string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// Encode writes img in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	if f.encode == nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f.Name)
	}
	return f.encode(w, img)
}

// Marshal encodes img into memory.
func Marshal(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes data to path through a temporary file in the same
// directory, so path either keeps its old content or gets all of data.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
