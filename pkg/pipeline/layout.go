package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/pack"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// ComputeScene runs the layout and pack stages with packer and returns the
// packed scene. An empty word list yields an empty scene, not an error.
func ComputeScene(ctx context.Context, packer pack.Packer, opts Options) (render.Scene, Stats, error) {
	scene := render.Scene{Width: opts.Config.Width, Height: opts.Config.Height, Font: opts.Config.Font}
	stats := Stats{WordCount: len(opts.Words)}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(opts.Words))
	req, err := layout.Build(opts.Words, opts.Config, layout.NewRand(opts.Seed))
	observability.Pipeline().OnLayoutComplete(ctx, len(req.Items), time.Since(start), err)
	if errors.Is(err, errors.ErrCodeEmptyInput) {
		stats.LayoutTime = time.Since(start)
		return scene, stats, nil
	}
	if err != nil {
		return scene, stats, fmt.Errorf("build request: %w", err)
	}
	stats.ItemCount = len(req.Items)

	placed, err := packer.Pack(ctx, req)
	if err != nil {
		return scene, stats, fmt.Errorf("pack: %w", err)
	}
	stats.Placed = len(placed)

	rec := render.NewReconciler(opts.Mode)
	rec.Reconcile(placed)
	scene.Glyphs = rec.Glyphs()
	stats.LayoutTime = time.Since(start)
	return scene, stats, nil
}
