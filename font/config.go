package font

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Style is a single font style flag. Styles combine: a config holding both
// Bold and Italic renders bold italic.
type Style int

const (
	Plain Style = iota
	Bold
	Italic
)

var allStyles = []Style{Plain, Bold, Italic}

func (s Style) String() string {
	switch s {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	default:
		return "style(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseStyle accepts plain (or regular), bold and italic, case-insensitively.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain", "regular":
		return Plain, nil
	case "bold":
		return Bold, nil
	case "italic":
		return Italic, nil
	}
	return Plain, fmt.Errorf("font: unknown style %q", name)
}

// Defaults used when no font is given: bold 12pt Serif, loosely tracked.
const (
	DefaultFamily = "Serif"
	DefaultSize   = 12

	// TrackingLoose is the extra spacing, as a fraction of the point size,
	// added after every character.
	TrackingLoose = 0.04
)

var (
	ErrInvalidSize   = errors.New("font: size must be positive")
	ErrEmptyFamily   = errors.New("font: family must not be empty")
	ErrInvalidTrack  = errors.New("font: tracking must not be negative")
	errUnknownStyles = errors.New("font: unknown style in set")
)

type styleSet uint8

func (s styleSet) has(st Style) bool { return s&(1<<uint(st)) != 0 }

func (s styleSet) with(st Style) styleSet { return s | 1<<uint(st) }

// Config describes the font a piece of text is rendered with. It is a value:
// the With* methods return modified copies and never touch the receiver.
type Config struct {
	Family   string
	Size     int
	Tracking float64

	styles styleSet
}

// Default returns Serif, 12pt, bold, loose tracking.
func Default() Config {
	return Config{
		Family:   DefaultFamily,
		Size:     DefaultSize,
		Tracking: TrackingLoose,
	}.WithStyle(Bold)
}

func (c Config) WithFamily(family string) Config {
	c.Family = family
	return c
}

func (c Config) WithSize(size int) Config {
	c.Size = size
	return c
}

func (c Config) WithTracking(tracking float64) Config {
	c.Tracking = tracking
	return c
}

// WithStyle replaces the style set with exactly one style.
func (c Config) WithStyle(s Style) Config {
	c.styles = styleSet(0).with(s)
	return c
}

// WithStyles replaces the style set. Duplicates collapse; an empty call
// leaves the set empty, which renders like Plain.
func (c Config) WithStyles(styles ...Style) Config {
	var set styleSet
	for _, s := range styles {
		set = set.with(s)
	}
	c.styles = set
	return c
}

// Styles returns the style set ordered by ordinal.
func (c Config) Styles() []Style {
	out := make([]Style, 0, len(allStyles))
	for _, s := range allStyles {
		if c.styles.has(s) {
			out = append(out, s)
		}
	}
	return out
}

func (c Config) Has(s Style) bool { return c.styles.has(s) }

func (c Config) Bold() bool { return c.styles.has(Bold) }

func (c Config) Italic() bool { return c.styles.has(Italic) }

// StyleCode sums the ordinals of the styles in the set, so Bold+Italic is 3
// and Plain contributes nothing.
func (c Config) StyleCode() int {
	code := 0
	for _, s := range c.Styles() {
		code += int(s)
	}
	return code
}

// Validate reports configurations no backend can render.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Family) == "" {
		return ErrEmptyFamily
	}
	if c.Size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, c.Size)
	}
	if c.Tracking < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidTrack, c.Tracking)
	}
	if c.styles>>uint(len(allStyles)) != 0 {
		return errUnknownStyles
	}
	return nil
}

// StyleName is the combined style word used in descriptors: plain, bold,
// italic or bolditalic.
func (c Config) StyleName() string {
	switch {
	case c.Bold() && c.Italic():
		return "bolditalic"
	case c.Bold():
		return "bold"
	case c.Italic():
		return "italic"
	default:
		return "plain"
	}
}

// String renders the config as family-style-size, e.g. Serif-bold-12.
func (c Config) String() string {
	return c.Family + "-" + c.StyleName() + "-" + strconv.Itoa(c.Size)
}
