package renderer

import (
	"log/slog"

	"github.com/ByLCY/textart/font"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. By default a Renderer produces no log output.
// Pass nil to keep it silent.
//
// Levels used:
//   - [slog.LevelDebug]: resolved font, measured and rasterized sizes
//   - [slog.LevelWarn]: font family substitutions
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithResolver replaces the font resolver. Renderers sharing a resolver
// share its system font scan and cache.
func WithResolver(res *font.Resolver) Option {
	return func(r *Renderer) {
		if res != nil {
			r.resolver = res
		}
	}
}

// WithWarningHandler receives non-fatal conditions, currently
// *font.ResolutionError, in addition to the warn log line.
func WithWarningHandler(fn func(error)) Option {
	return func(r *Renderer) { r.onWarning = fn }
}

// WithLineSeparator overrides the separator terminating ASCII art rows.
func WithLineSeparator(sep string) Option {
	return func(r *Renderer) { r.lineSeparator = sep }
}

func newNopLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }
