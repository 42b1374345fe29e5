package main

import (
	"bytes"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func quietLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func baseOptions() options {
	return options{
		text:    "Hi",
		font:    "Serif-BOLD-12",
		backend: "sfnt",
		format:  "png",
	}
}

func TestRunPrintsASCIIArt(t *testing.T) {
	var out bytes.Buffer
	if err := run(baseOptions(), &out, quietLogger()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.Len() == 0 || strings.Trim(out.String(), " #*\r\n") != "" {
		t.Fatalf("unexpected ascii output %q", out.String())
	}
}

func TestRunWritesImageToStream(t *testing.T) {
	opts := baseOptions()
	opts.output = "-"
	opts.backend = "canvas"

	var out bytes.Buffer
	if err := run(opts, &out, quietLogger()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := png.Decode(&out); err != nil {
		t.Fatalf("stdout is not a png: %v", err)
	}
}

func TestRunWritesFileAndCreatesDirectory(t *testing.T) {
	opts := baseOptions()
	opts.output = filepath.Join(t.TempDir(), "nested", "hi.bmp")

	if err := run(opts, &bytes.Buffer{}, quietLogger()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if info, err := os.Stat(opts.output); err != nil || info.Size() == 0 {
		t.Fatalf("expected a non-empty file, err=%v", err)
	}
}

func TestRunBindsJSONData(t *testing.T) {
	plain := baseOptions()
	plain.text = "Ada"
	var want bytes.Buffer
	if err := run(plain, &want, quietLogger()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	bound := baseOptions()
	bound.text = "${user.name}"
	bound.dataJSON = `{"user":{"name":"Ada"}}`
	var got bytes.Buffer
	if err := run(bound, &got, quietLogger()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got.String() != want.String() {
		t.Fatalf("bound text should render like the literal value")
	}
}

func TestRunErrors(t *testing.T) {
	cases := map[string]func(*options){
		"empty text":     func(o *options) { o.text = "  " },
		"bad font":       func(o *options) { o.font = "Serif#12" },
		"unknown format": func(o *options) { o.output = filepath.Join(t.TempDir(), "x.xyz") },
		"bad backend":    func(o *options) { o.backend = "cairo" },
	}
	for name, mutate := range cases {
		opts := baseOptions()
		mutate(&opts)
		if err := run(opts, &bytes.Buffer{}, quietLogger()); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
