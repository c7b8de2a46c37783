package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// RenderScene encodes scene in every requested format.
func RenderScene(ctx context.Context, scene render.Scene, opts Options) (map[string][]byte, error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts, err := renderFormats(scene, opts)

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(scene render.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data = render.RenderSVG(scene, buildSVGOptions(opts)...)
		case FormatJSON:
			data, err = render.RenderJSON(scene, render.WithJSONSeed(opts.Seed), render.WithJSONMode(opts.Mode))
		default:
			err = fmt.Errorf("unsupported format: %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(opts Options) []render.SVGOption {
	var svgOpts []render.SVGOption
	if opts.EmbedFont {
		svgOpts = append(svgOpts, render.WithEmbeddedFont())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, render.WithBackground(opts.Background))
	}
	return svgOpts
}
