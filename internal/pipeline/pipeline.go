// Package pipeline turns an image and settings into a published colorscheme,
// consulting the fingerprint cache first.
package pipeline

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/gwal/internal/cache"
	"github.com/jmylchreest/gwal/internal/colour"
	"github.com/jmylchreest/gwal/internal/config"
	"github.com/jmylchreest/gwal/internal/image"
)

// Options control a single Run.
type Options struct {
	// SkipCache bypasses both the cache lookup and the cache write.
	SkipCache bool
}

// Result describes the outcome of a Run.
type Result struct {
	Scheme      colour.Colorscheme
	Fingerprint string
	CacheHit    bool
}

// Pipeline wires the image loader, the colour stages and the cache.
type Pipeline struct {
	loader    image.Loader
	store     *cache.Store
	publisher *cache.Publisher
	logger    hclog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger hclog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithLoader replaces the image loader.
func WithLoader(loader image.Loader) Option {
	return func(p *Pipeline) {
		p.loader = loader
	}
}

// New creates a Pipeline that caches into store and publishes through publisher.
func New(store *cache.Store, publisher *cache.Publisher, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:    image.NewFileLoader(),
		store:     store,
		publisher: publisher,
		logger:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run produces the colorscheme for imagePath and publishes it as the current
// scheme. On a cache hit the stored scheme is published without touching the
// image. Nothing is written when generation or publishing fails. Cache read
// and write failures are logged and otherwise ignored.
func (p *Pipeline) Run(ctx context.Context, imagePath string, s config.Settings, opts Options) (Result, error) {
	fingerprint := cache.Fingerprint(s, imagePath)
	logger := p.logger.With("image", imagePath)

	if !opts.SkipCache {
		cs, ok, err := p.store.Load(fingerprint)
		switch {
		case err != nil:
			logger.Warn("ignoring unreadable cache entry", "fingerprint", fingerprint, "error", err)
		case ok:
			logger.Info("cache hit", "fingerprint", fingerprint)
			if err := p.publish(cs); err != nil {
				return Result{}, err
			}
			return Result{Scheme: cs, Fingerprint: fingerprint, CacheHit: true}, nil
		default:
			logger.Debug("cache miss", "fingerprint", fingerprint)
		}
	} else {
		logger.Info("skipping cache")
	}

	cs, err := p.Generate(ctx, imagePath, s)
	if err != nil {
		return Result{}, err
	}

	if err := p.publish(cs); err != nil {
		return Result{}, err
	}

	if !opts.SkipCache {
		if err := p.store.Save(fingerprint, cs); err != nil {
			logger.Warn("failed to write cache entry", "fingerprint", fingerprint, "error", err)
		}
	}
	return Result{Scheme: cs, Fingerprint: fingerprint}, nil
}

// publish writes the current colorscheme and then the preview. Nothing else
// is written when the current file cannot be replaced.
func (p *Pipeline) publish(cs colour.Colorscheme) error {
	if err := p.publisher.PublishCurrent(cs); err != nil {
		return fmt.Errorf("failed to publish colorscheme: %w", err)
	}
	p.logger.Debug("published colorscheme", "path", p.publisher.CurrentFile())

	if err := p.publisher.PublishPreview(cs); err != nil {
		p.logger.Warn("failed to write preview", "error", err)
	}
	return nil
}

// Generate runs decode, normalisation, quantisation, ordering and synthesis
// without consulting or writing any files other than the image.
func (p *Pipeline) Generate(ctx context.Context, imagePath string, s config.Settings) (colour.Colorscheme, error) {
	logger := p.logger.With("image", imagePath)

	quantizer, err := colour.NewQuantizer(s.Backend)
	if err != nil {
		return colour.Colorscheme{}, err
	}

	logger.Debug("loading image", "thumb_w", s.ThumbW, "thumb_h", s.ThumbH)
	samples, err := image.Thumbnail(p.loader, imagePath, s.ThumbW, s.ThumbH)
	if err != nil {
		return colour.Colorscheme{}, err
	}
	if err := ctx.Err(); err != nil {
		return colour.Colorscheme{}, err
	}

	colours := colour.Normalize(samples, s.Normalization())
	logger.Debug("normalised samples", "sampled", len(samples), "kept", len(colours))
	if len(colours) == 0 {
		return colour.Colorscheme{}, colour.ErrEmptyInput
	}

	logger.Debug("quantising", "backend", s.Backend, "count", colour.PaletteSize)
	palette, err := quantizer.Quantize(colours, colour.PaletteSize)
	if err != nil {
		return colour.Colorscheme{}, err
	}
	if err := ctx.Err(); err != nil {
		return colour.Colorscheme{}, err
	}

	palette = colour.SortByHue(palette)
	logger.Trace("ordered palette", "colours", colour.HexList(palette))

	cs, err := colour.Synthesize(palette, s.Scheme())
	if err != nil {
		return colour.Colorscheme{}, err
	}
	logger.Info("generated colorscheme", "background", cs.Background().Hex(), "foreground", cs.Foreground().Hex())
	return cs, nil
}
