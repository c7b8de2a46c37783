package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/pack"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, logger and font measurer; it
// doesn't store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	measurerOnce sync.Once
	measurer     *fonts.Measurer
	measurerErr  error
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

// Execute runs the complete layout → pack → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1+2: Layout and pack
	scene, stats, sceneHit, err := r.SceneWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Scene = scene
	result.Stats = stats
	result.CacheInfo.SceneHit = sceneHit
	result.InputHash, _ = opts.inputHash()

	r.Logger.Info("computed layout",
		"words", stats.WordCount,
		"placed", len(scene.Glyphs),
		"cached", sceneHit,
		"duration", stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SceneWithCacheInfo computes the scene with caching and returns cache hit info.
// Stats are only fully populated on a miss; a hit cannot tell how many words
// were dropped.
func (r *Runner) SceneWithCacheInfo(ctx context.Context, opts Options) (render.Scene, Stats, bool, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	if err := opts.Config.Validate(); err != nil {
		return render.Scene{}, Stats{}, false, err
	}

	inputHash, err := opts.inputHash()
	if err != nil {
		return render.Scene{}, Stats{}, false, err
	}
	cacheKey := r.Keyer.SceneKey(inputHash, opts.SceneKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var scene render.Scene
			if err := json.Unmarshal(data, &scene); err == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				stats := Stats{WordCount: len(opts.Words), ItemCount: len(scene.Glyphs), Placed: len(scene.Glyphs)}
				return scene, stats, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	packer, err := r.packer(opts)
	if err != nil {
		return render.Scene{}, Stats{}, false, err
	}
	scene, stats, err := ComputeScene(ctx, packer, opts)
	if err != nil {
		return render.Scene{}, stats, false, err
	}

	if data, err := json.Marshal(scene); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.SceneTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "scene", len(data))
		}
	}

	return scene, stats, false, nil
}

// RenderWithCacheInfo encodes scene with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene render.Scene, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	// Compute cache key from scene data
	sceneHash, err := cache.HashJSON(scene)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}

	// Render all formats
	rendered, err := RenderScene(ctx, scene, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	if r.measurer != nil {
		_ = r.measurer.Close()
	}
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// packer returns a spiral packer seeded from opts, sharing one font measurer
// across runs.
func (r *Runner) packer(opts Options) (pack.Packer, error) {
	r.measurerOnce.Do(func() {
		r.measurer, r.measurerErr = fonts.NewMeasurer()
	})
	if r.measurerErr != nil {
		return nil, r.measurerErr
	}
	return pack.NewSpiral(
		pack.WithMeasurer(r.measurer),
		pack.WithSeed(opts.Seed),
		pack.WithLogger(opts.Logger),
	)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
