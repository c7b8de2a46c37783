package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/internal/server"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// serveOptions holds the flags of the serve command.
type serveOptions struct {
	addr       string
	mode       string
	seed       uint64
	embedFont  bool
	sessionTTL time.Duration
	width      float64
	height     float64
}

// serveCommand creates the serve command for the browser editor.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOptions{mode: render.ModeIncremental.String()}
	def := cloud.Default()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the interactive word-cloud editor in the browser",
		Long: `Serve the word-cloud editor over HTTP.

Each browser session gets its own word list and canvas. Adding, deleting and
reordering words re-lays the cloud and animates the changes in place.

The listen address defaults to $PORT when set, otherwise :8080.`,
		Example: `  wordcloud serve
  wordcloud serve --addr :3000 --mode redraw
  PORT=9000 wordcloud serve --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default $PORT or :8080)")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "scene transitions: incremental or redraw")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "fix layout randomness (0 picks a random seed per session)")
	cmd.Flags().BoolVar(&opts.embedFont, "embed-font", false, "embed the font in downloaded SVGs")
	cmd.Flags().DurationVar(&opts.sessionTTL, "session-ttl", 0, "drop idle sessions after this long (default 2h)")
	cmd.Flags().Float64Var(&opts.width, "width", def.Width, "initial canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", def.Height, "initial canvas height")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	mode, err := render.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	cfg := cloud.Default()
	cfg.Width, cfg.Height = opts.width, opts.height
	if err := cfg.Validate(); err != nil {
		return err
	}

	addr := resolveAddr(opts.addr)
	srv := server.New(server.Options{
		Mode:       mode,
		Config:     cfg,
		SessionTTL: opts.sessionTTL,
		EmbedFont:  opts.embedFont,
		Seed:       opts.seed,
		Logger:     c.Logger,
	})
	defer srv.Close()

	printSuccess("Editor running at %s", StyleLink.Render(displayURL(addr)))
	printKeyValue("Mode", mode.String())
	printKeyValue("Canvas", fmt.Sprintf("%gx%g", cfg.Width, cfg.Height))

	if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	printInfo("Server stopped")
	return nil
}

// resolveAddr picks the flag value, then $PORT, then the server default.
func resolveAddr(flag string) string {
	if flag != "" {
		return flag
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if strings.Contains(port, ":") {
			return port
		}
		return ":" + port
	}
	return server.DefaultAddr
}

func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
