package font

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"

	"github.com/ByLCY/textart/fonts"
)

// ErrFamilyUnavailable is the cause carried by a ResolutionError when the
// requested family could not be matched at all.
var ErrFamilyUnavailable = errors.New("font: family not available")

// ResolutionError reports that the requested family was replaced by another
// face. It is a warning: the accompanying Source is usable.
type ResolutionError struct {
	Requested  string
	Substitute string
	Err        error
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("font: %q not available, substituted %q", e.Requested, e.Substitute)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Generic family names accepted in Config.Family. Logical names such as
// Serif and DialogInput map onto the CSS generic families fontscan knows.
var genericFamilies = map[string]string{
	"serif":       fontscan.Serif,
	"sansserif":   fontscan.SansSerif,
	"sans-serif":  fontscan.SansSerif,
	"dialog":      fontscan.SansSerif,
	"monospaced":  fontscan.Monospace,
	"monospace":   fontscan.Monospace,
	"dialoginput": fontscan.Monospace,
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithSystemFonts toggles the system font lookup. Without it every family
// resolves to a bundled Go face.
func WithSystemFonts(enabled bool) ResolverOption {
	return func(r *Resolver) { r.system = enabled }
}

// WithCacheDir sets where fontscan keeps its index of system fonts.
func WithCacheDir(dir string) ResolverOption {
	return func(r *Resolver) { r.cacheDir = dir }
}

// WithResolverLogger routes resolution diagnostics to l.
func WithResolverLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

type resolveKey struct {
	family       string
	bold, italic bool
}

type resolved struct {
	src  *Source
	warn *ResolutionError
}

func (r resolved) result() (*Source, error) {
	if r.warn != nil {
		return r.src, r.warn
	}
	return r.src, nil
}

// Resolver maps a Config onto a concrete font file. Results are cached, and
// the system scan happens at most once per Resolver.
type Resolver struct {
	system   bool
	cacheDir string
	logger   *slog.Logger

	scanOnce sync.Once
	fontMap  *fontscan.FontMap
	scanErr  error

	mu    sync.Mutex
	cache map[resolveKey]resolved
}

// NewResolver creates a resolver that consults system fonts by default.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		system: true,
		logger: slog.New(slog.DiscardHandler),
		cache:  map[resolveKey]resolved{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the source for cfg. A non-nil *ResolutionError comes with a
// usable source; any other error means nothing could be loaded.
func (r *Resolver) Resolve(cfg Config) (*Source, error) {
	key := resolveKey{
		family: strings.ToLower(strings.TrimSpace(cfg.Family)),
		bold:   cfg.Bold(),
		italic: cfg.Italic(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if hit, ok := r.cache[key]; ok {
		return hit.result()
	}

	hit, err := r.resolve(cfg)
	if err != nil {
		return nil, err
	}
	r.cache[key] = hit
	return hit.result()
}

func (r *Resolver) resolve(cfg Config) (resolved, error) {
	generic, isGeneric := genericFamilies[strings.ToLower(strings.TrimSpace(cfg.Family))]

	cause := ErrFamilyUnavailable
	if r.system {
		src, err := r.lookupSystem(cfg, generic, isGeneric)
		switch {
		case err == nil && (isGeneric || sameFamily(src.Family, cfg.Family)):
			return resolved{src: src}, nil
		case err == nil:
			r.logger.Debug("font family substituted", "requested", cfg.Family, "resolved", src.Family, "path", src.Path)
			return resolved{src: src, warn: &ResolutionError{Requested: cfg.Family, Substitute: src.Family, Err: ErrFamilyUnavailable}}, nil
		default:
			cause = err
		}
	}

	src, err := bundled(generic == fontscan.Monospace, cfg.Bold(), cfg.Italic())
	if err != nil {
		return resolved{}, err
	}
	r.logger.Debug("font family falls back to bundled face", "requested", cfg.Family, "resolved", src.Path, "cause", cause)
	return resolved{src: src, warn: &ResolutionError{Requested: cfg.Family, Substitute: src.Family, Err: cause}}, nil
}

func (r *Resolver) lookupSystem(cfg Config, generic string, isGeneric bool) (*Source, error) {
	fm, err := r.systemFonts()
	if err != nil {
		return nil, err
	}

	families := []string{cfg.Family}
	if isGeneric {
		families = []string{generic}
	}
	aspect := gotext.Aspect{
		Style:   gotext.StyleNormal,
		Weight:  gotext.WeightNormal,
		Stretch: gotext.StretchNormal,
	}
	if cfg.Bold() {
		aspect.Weight = gotext.WeightBold
	}
	if cfg.Italic() {
		aspect.Style = gotext.StyleItalic
	}
	fm.SetQuery(fontscan.Query{Families: families, Aspect: aspect})

	face := fm.ResolveFace('A')
	if face == nil || face.Font == nil {
		return nil, ErrFamilyUnavailable
	}
	loc := fm.FontLocation(face.Font)
	if loc.File == "" {
		return nil, ErrFamilyUnavailable
	}
	data, err := os.ReadFile(loc.File)
	if err != nil {
		return nil, fmt.Errorf("font: read %s: %w", loc.File, err)
	}
	family, desc := fm.FontMetadata(face.Font)
	return &Source{
		Family: family,
		Path:   loc.File,
		Index:  int(loc.Index),
		Data:   data,
		Bold:   desc.Weight >= gotext.WeightSemibold,
		Italic: desc.Style == gotext.StyleItalic,
	}, nil
}

func (r *Resolver) systemFonts() (*fontscan.FontMap, error) {
	r.scanOnce.Do(func() {
		dir := r.cacheDir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				base = os.TempDir()
			}
			dir = filepath.Join(base, "textart", "fonts")
		}
		fm := fontscan.NewFontMap(slog.NewLogLogger(r.logger.Handler(), slog.LevelDebug))
		if err := fm.UseSystemFonts(dir); err != nil {
			r.scanErr = fmt.Errorf("font: scan system fonts: %w", err)
			return
		}
		r.fontMap = fm
	})
	return r.fontMap, r.scanErr
}

func bundled(mono, bold, italic bool) (*Source, error) {
	family, name := fonts.Select(mono, bold, italic)
	data, err := fonts.Load(name)
	if err != nil {
		return nil, err
	}
	return &Source{
		Family:   family,
		Path:     "embed:" + name,
		Data:     data,
		Bold:     bold,
		Italic:   italic,
		Fallback: true,
	}, nil
}

func sameFamily(a, b string) bool {
	return normalizeFamily(a) == normalizeFamily(b)
}

func normalizeFamily(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
