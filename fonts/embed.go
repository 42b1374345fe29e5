package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Family names reported for the bundled faces.
const (
	Proportional = "Go"
	Monospace    = "Go Mono"
)

var builtin = map[string][]byte{
	"Go-Regular.ttf":         goregular.TTF,
	"Go-Bold.ttf":            gobold.TTF,
	"Go-Italic.ttf":          goitalic.TTF,
	"Go-BoldItalic.ttf":      gobolditalic.TTF,
	"Go-Mono.ttf":            gomono.TTF,
	"Go-Mono-Bold.ttf":       gomonobold.TTF,
	"Go-Mono-Italic.ttf":     gomonoitalic.TTF,
	"Go-Mono-BoldItalic.ttf": gomonobolditalic.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:Go-Bold.ttf" 或直接 "Go-Bold.ttf".
func Load(name string) ([]byte, error) {
	clean := strings.TrimPrefix(name, "embed:")
	data, ok := builtin[clean]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 不存在", clean)
	}
	return data, nil
}

// Names lists the bundled faces.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select picks the bundled face closest to the requested aspect and returns
// its family and file name.
func Select(mono, bold, italic bool) (family, name string) {
	family = Proportional
	prefix := "Go-"
	if mono {
		family = Monospace
		prefix = "Go-Mono-"
	}
	switch {
	case bold && italic:
		name = prefix + "BoldItalic.ttf"
	case bold:
		name = prefix + "Bold.ttf"
	case italic:
		name = prefix + "Italic.ttf"
	case mono:
		name = "Go-Mono.ttf"
	default:
		name = "Go-Regular.ttf"
	}
	return family, name
}
