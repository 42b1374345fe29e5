package fontspec

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/textart/font"
)

var (
	specLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Size", Pattern: `\d+(?:pt)?`},
		{Name: "Style", Pattern: `(?i:bolditalic|bold|italic|plain|regular)\b`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_.]*`},
		{Name: "Sep", Pattern: `[-,:/]`},
	})

	specParser = participle.MustBuild[Spec](
		participle.Lexer(specLexer),
		participle.Elide("Whitespace"),
	)

	plainIdent = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_.]*(?: [\p{L}_][\p{L}\p{N}_.]*)*$`)
)

// Spec is the parsed form of a font descriptor such as Serif-BOLD-12 or
// "DejaVu Serif" bold italic 14pt. Every part is optional.
type Spec struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Family *Family        `parser:"@@?"`
	Attrs  []*Attr        `parser:"( Sep? @@ )*"`
}

// Family is either a quoted name or a run of bare words.
type Family struct {
	Quoted *StringLiteral `parser:"  @String"`
	Words  []string       `parser:"| @Ident+"`
}

// Name joins the family words with single spaces.
func (f *Family) Name() string {
	if f == nil {
		return ""
	}
	if f.Quoted != nil {
		return string(*f.Quoted)
	}
	return strings.Join(f.Words, " ")
}

// Attr is a style word or a point size.
type Attr struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Style *StyleWord     `parser:"  @Style"`
	Size  *Size          `parser:"| @Size"`
}

// StyleWord captures one style token, bolditalic expanding to two styles.
type StyleWord struct {
	Styles []font.Style
}

// Capture implements participle.Capture.
func (s *StyleWord) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("style capture requires value")
	}
	word := strings.ToLower(values[0])
	if word == "bolditalic" {
		s.Styles = []font.Style{font.Bold, font.Italic}
		return nil
	}
	st, err := font.ParseStyle(word)
	if err != nil {
		return err
	}
	s.Styles = []font.Style{st}
	return nil
}

// Size is a point size, with or without the pt suffix.
type Size int

// Capture implements participle.Capture.
func (s *Size) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("size capture requires value")
	}
	n, err := strconv.Atoi(strings.TrimSuffix(values[0], "pt"))
	if err != nil {
		return err
	}
	*s = Size(n)
	return nil
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// ParseSpec parses a descriptor from an io.Reader.
func ParseSpec(r io.Reader) (*Spec, error) {
	return specParser.Parse("", r)
}

// ParseSpecString parses a descriptor string.
func ParseSpecString(input string) (*Spec, error) {
	return specParser.ParseString("", input)
}

// Apply layers the descriptor over base. Style words replace the whole style
// set of base; a later size wins over an earlier one.
func (s *Spec) Apply(base font.Config) (font.Config, error) {
	cfg := base
	if s == nil {
		return cfg, cfg.Validate()
	}
	if name := strings.TrimSpace(s.Family.Name()); name != "" {
		cfg = cfg.WithFamily(name)
	}
	var styles []font.Style
	sawStyle := false
	for _, attr := range s.Attrs {
		switch {
		case attr.Style != nil:
			sawStyle = true
			styles = append(styles, attr.Style.Styles...)
		case attr.Size != nil:
			cfg = cfg.WithSize(int(*attr.Size))
		}
	}
	if sawStyle {
		cfg = cfg.WithStyles(styles...)
	}
	if err := cfg.Validate(); err != nil {
		return font.Config{}, err
	}
	return cfg, nil
}

// Parse reads a descriptor and applies it over base. An empty descriptor
// returns base unchanged.
func Parse(input string, base font.Config) (font.Config, error) {
	if strings.TrimSpace(input) == "" {
		return base, base.Validate()
	}
	spec, err := ParseSpecString(input)
	if err != nil {
		return font.Config{}, fmt.Errorf("fontspec: parse %q: %w", input, err)
	}
	return spec.Apply(base)
}

// Format renders cfg as a descriptor that Parse reads back to the same
// family, size and effective style. Plain is dropped when combined with
// another style since it contributes nothing.
func Format(cfg font.Config) string {
	family := cfg.Family
	if !plainIdent.MatchString(family) || hasStyleWord(family) {
		family = strconv.Quote(family)
	}
	return family + "-" + cfg.StyleName() + "-" + strconv.Itoa(cfg.Size)
}

func hasStyleWord(family string) bool {
	for _, word := range strings.Fields(family) {
		switch strings.ToLower(word) {
		case "bolditalic", "bold", "italic", "plain", "regular":
			return true
		}
	}
	return false
}
