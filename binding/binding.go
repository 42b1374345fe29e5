package binding

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 JSON data 中的值。
// 若 data 为空、不是合法 JSON 或路径不存在，则保留原占位符。
func Interpolate(text string, data []byte) string {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path := strings.TrimSpace(groups[1])
		if path == "" {
			return match
		}
		val := gjson.GetBytes(data, toGJSONPath(path))
		if !val.Exists() {
			return match
		}
		return val.String()
	})
}

// toGJSONPath rewrites items[0].name into gjson's items.0.name form.
func toGJSONPath(path string) string {
	segments := strings.Split(path, ".")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		name, indexes := parseSegment(segment)
		if name != "" {
			out = append(out, escapeKey(name))
		}
		out = append(out, indexes...)
	}
	return strings.Join(out, ".")
}

func parseSegment(segment string) (string, []string) {
	name := segment
	indexes := []string{}
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 {
			if rest[0] != '[' {
				break
			}
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, strings.TrimSpace(rest[1:end]))
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

// escapeKey protects gjson's wildcard and modifier characters in plain keys.
func escapeKey(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '*', '?', '|', '#', '@', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
