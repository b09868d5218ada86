package background

import (
	"context"
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/hildon-home/internal/domain/theme"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/hildon-home/internal/shared/paths"
	"github.com/GriffinCanCode/hildon-home/internal/store"
)

// Source names the step of the fallback chain that produced a thumbnail
type Source string

const (
	SourceOverride     Source = "override"
	SourceCurrentTheme Source = "current-theme"
	SourceDefaultTheme Source = "default-theme"
	SourcePlaceholder  Source = "placeholder"
)

// OverrideReader reads per-view background overrides
type OverrideReader interface {
	GetString(ctx context.Context, key string) (string, error)
}

// Result is the outcome of resolving one view
type Result struct {
	View   int
	Image  image.Image
	Source Source
	// Path is the image that was decoded; empty for the placeholder
	Path string
	// Diagnostics collects the non-fatal problems met on the way
	Diagnostics []error
}

// Options configures a Resolver
type Options struct {
	CurrentTheme string
	DefaultTheme string
	Logger       *zap.Logger
	Metrics      *monitoring.Metrics
}

// Resolver resolves view backgrounds through the override and theme chain.
// A Resolver is meant to live for one picker session: each descriptor is
// parsed at most once and then reused.
type Resolver struct {
	config   OverrideReader
	decoder  Decoder
	current  *theme.Lazy
	fallback *theme.Lazy
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// NewResolver creates a resolver. Empty descriptor paths fall back to the system locations.
func NewResolver(config OverrideReader, decoder Decoder, opts Options) *Resolver {
	if decoder == nil {
		decoder = FileDecoder{}
	}
	if opts.CurrentTheme == "" {
		opts.CurrentTheme = paths.CurrentThemeBackgrounds
	}
	if opts.DefaultTheme == "" {
		opts.DefaultTheme = paths.DefaultThemeBackgrounds
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		config:   config,
		decoder:  decoder,
		current:  theme.NewLazy(opts.CurrentTheme),
		fallback: theme.NewLazy(opts.DefaultTheme),
		logger:   logger,
		metrics:  opts.Metrics,
	}
}

// Resolve returns the thumbnail for view. It never fails: every problem becomes
// a diagnostic and the chain moves on, ending at the placeholder.
func (r *Resolver) Resolve(ctx context.Context, view int) Result {
	res := Result{View: view}

	if path, ok := r.override(ctx, view, &res); ok {
		if r.try(view, SourceOverride, path, &res) {
			return r.done(res)
		}
	}

	for _, step := range []struct {
		source Source
		lazy   *theme.Lazy
	}{
		{SourceCurrentTheme, r.current},
		{SourceDefaultTheme, r.fallback},
	} {
		path, ok := r.descriptorEntry(step.lazy, view, &res)
		if !ok {
			continue
		}
		if r.try(view, step.source, path, &res) {
			return r.done(res)
		}
	}

	res.Image = Placeholder()
	res.Source = SourcePlaceholder
	res.Path = ""
	return r.done(res)
}

func (r *Resolver) override(ctx context.Context, view int, res *Result) (string, bool) {
	if r.config == nil {
		return "", false
	}

	key := paths.BackgroundKey(view)
	path, err := r.config.GetString(ctx, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "", false
	case err != nil:
		r.metrics.IncConfigReadErrors("background")
		r.report(res, fmt.Errorf("view %d: read %s: %w", view, key, err),
			"Could not get background image for view", zap.Int("view", view), zap.String("key", key))
		return "", false
	}
	return path, path != ""
}

func (r *Resolver) descriptorEntry(lazy *theme.Lazy, view int, res *Result) (string, bool) {
	desc, loaded, err := lazy.Get()
	if loaded && err != nil {
		// A missing descriptor behaves as an empty one.
		res.Diagnostics = append(res.Diagnostics, err)
		r.logger.Debug("Theme descriptor unavailable", zap.String("path", lazy.Path()), zap.Error(err))
	}
	return desc.Background(view)
}

func (r *Resolver) try(view int, source Source, path string, res *Result) bool {
	img, err := r.decoder.DecodeScaled(path, ThumbWidth, ThumbHeight)
	if err != nil {
		r.metrics.IncDecodeErrors()
		r.report(res, fmt.Errorf("view %d: %s %q: %w", view, source, path, err),
			"Could not get background image for view",
			zap.Int("view", view), zap.String("source", string(source)), zap.String("path", path))
		return false
	}
	res.Image = img
	res.Source = source
	res.Path = path
	return true
}

func (r *Resolver) report(res *Result, err error, msg string, fields ...zap.Field) {
	res.Diagnostics = append(res.Diagnostics, err)
	r.logger.Warn(msg, append(fields, zap.Error(err))...)
}

func (r *Resolver) done(res Result) Result {
	r.metrics.ObserveResolution(string(res.Source))
	r.logger.Debug("Resolved background",
		zap.Int("view", res.View),
		zap.String("source", string(res.Source)),
		zap.String("path", res.Path))
	return res
}
