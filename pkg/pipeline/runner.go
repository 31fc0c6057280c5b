package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// Cache key types reported to observability hooks.
const (
	keyTypeGeometry = "geometry"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the normalize → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, t tree.Tree, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("run", result.RunID)

	hash, err := cache.TreeHash(t)
	if err != nil {
		return nil, fmt.Errorf("hash tree: %w", err)
	}
	result.TreeHash = hash

	// Stage 1: Normalize
	normalizeStart := time.Now()
	g, geometryHit, err := r.normalize(ctx, t, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	result.Geometry = g
	result.Stats.NormalizeTime = time.Since(normalizeStart)
	result.Stats.RingCount = len(g.Rings)
	result.Stats.ItemCount = len(g.Items)
	result.CacheInfo.GeometryHit = geometryHit

	logger.Info("normalized tree",
		"rings", len(g.Rings),
		"items", len(g.Items),
		"cached", geometryHit,
		"duration", result.Stats.NormalizeTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.render(ctx, t, hash, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"viz", opts.VizType,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// NormalizeWithCacheInfo computes geometry with caching and returns cache hit info.
func (r *Runner) NormalizeWithCacheInfo(ctx context.Context, t tree.Tree, opts Options) (geometry.Geometry, bool, error) {
	if err := opts.ValidateForNormalize(); err != nil {
		return geometry.Geometry{}, false, err
	}
	r.applyLogger(&opts)

	hash, err := cache.TreeHash(t)
	if err != nil {
		return geometry.Geometry{}, false, fmt.Errorf("hash tree: %w", err)
	}
	return r.normalize(ctx, t, hash, opts)
}

// Normalize is a convenience wrapper that calls NormalizeWithCacheInfo and discards the cache hit info.
func (r *Runner) Normalize(ctx context.Context, t tree.Tree, opts Options) (geometry.Geometry, error) {
	g, _, err := r.NormalizeWithCacheInfo(ctx, t, opts)
	return g, err
}

func (r *Runner) normalize(ctx context.Context, t tree.Tree, hash string, opts Options) (g geometry.Geometry, hit bool, err error) {
	ctx, span := observability.StartSpan(ctx, "pipeline.normalize",
		attribute.Int("layers", t.LayerCount()),
		attribute.Bool("strict", opts.Strict))
	defer func() {
		span.SetAttributes(attribute.Bool("cache_hit", hit))
		observability.EndSpan(span, err)
	}()

	cacheKey := r.Keyer.GeometryKey(hash, opts.GeometryKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, cacheKey); err == nil && ok {
			var cached geometry.Geometry
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeGeometry)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeGeometry)

	hooks := observability.Pipeline()
	hooks.OnNormalizeStart(ctx, t.LayerCount())
	start := time.Now()
	g, err = Normalize(t, opts)
	hooks.OnNormalizeComplete(ctx, len(g.Rings), len(g.Items), time.Since(start), err)
	if err != nil {
		return geometry.Geometry{}, false, err
	}

	if data, err := json.Marshal(g); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLGeometry); err != nil {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeGeometry, len(data))
		}
	}

	return g, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, t tree.Tree, g geometry.Geometry, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hash, err := cache.TreeHash(t)
	if err != nil {
		return nil, false, fmt.Errorf("hash tree: %w", err)
	}
	return r.render(ctx, t, hash, g, opts)
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, t tree.Tree, g geometry.Geometry, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, t, g, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, t tree.Tree, hash string, g geometry.Geometry, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	ctx, span := observability.StartSpan(ctx, "pipeline.render",
		attribute.String("viz_type", opts.VizType),
		attribute.StringSlice("formats", opts.Formats))
	defer func() {
		span.SetAttributes(attribute.Bool("cache_hit", hit))
		observability.EndSpan(span, err)
	}()

	geomKey := opts.GeometryKeyOpts()

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts = make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(hash, geomKey, opts.ArtifactKeyOpts(format))
			data, ok, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.VizType, opts.Formats)
	start := time.Now()
	artifacts, err = Render(ctx, t, g, opts)
	hooks.OnRenderComplete(ctx, opts.VizType, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range artifacts {
		cacheKey := r.Keyer.ArtifactKey(hash, geomKey, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
