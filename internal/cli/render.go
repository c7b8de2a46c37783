package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	wcio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// renderOptions holds the flags of the render command.
type renderOptions struct {
	output     string
	formats    string
	seed       uint64
	mode       string
	embedFont  bool
	background string
	noCache    bool
	refresh    bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOptions{mode: render.ModeIncremental.String()}

	cmd := &cobra.Command{
		Use:   "render <words-file>",
		Short: "Render a word file to SVG or JSON",
		Long: `Lay out a TOML or JSON word file and write the cloud as SVG and/or JSON.

Scenes are cached by content hash, so re-rendering an unchanged file with the
same seed is instant. Without --seed a fixed default seed is used, making
output reproducible.`,
		Example: `  wordcloud render words.toml
  wordcloud render words.json -f svg,json -o out/cloud
  wordcloud render words.toml --seed 7 --background "#fff" --embed-font`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output formats, comma separated (svg, json)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "layout seed")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "mode recorded in JSON output: incremental or redraw")
	cmd.Flags().BoolVar(&opts.embedFont, "embed-font", false, "embed the font in the SVG")
	cmd.Flags().StringVar(&opts.background, "background", "", "SVG background color")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-pack even when a cached scene exists")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOptions) error {
	mode, err := render.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	doc, err := wcio.ImportFile(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded word file", "path", input, "words", len(doc.Words), "config", doc.Settings)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spin := newSpinner(ctx, os.Stderr, fmt.Sprintf("Packing %d words...", len(doc.Words)))
	spin.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Words:      doc.Words,
		Config:     doc.Settings,
		Seed:       opts.seed,
		Mode:       mode,
		Formats:    formats,
		EmbedFont:  opts.embedFont,
		Background: opts.background,
		Refresh:    opts.refresh,
	})
	spin.Stop()
	if err != nil {
		if spin.Cancelled() {
			return ctx.Err()
		}
		return err
	}
	prog.done(fmt.Sprintf("Packed %d of %d words", result.Stats.Placed, result.Stats.ItemCount))

	paths, err := writeArtifacts(result.Artifacts, formats, input, opts.output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", filepath.Base(input))
	printStats(result.Stats, result.CacheInfo.SceneHit)
	for _, p := range paths {
		printFile(p)
	}
	if n := result.Stats.Dropped(); n > 0 && !result.CacheInfo.SceneHit {
		printWarning("%d words did not fit the %gx%g canvas", n, doc.Settings.Width, doc.Settings.Height)
	}
	printNextStep("Edit interactively", "wordcloud edit "+input)
	return nil
}

// writeArtifacts writes each format and returns the paths written. A single
// format goes to output verbatim when given; otherwise output (or the input
// path) serves as the base name and gets one extension per format.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if len(formats) > 1 {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	var paths []string
	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
