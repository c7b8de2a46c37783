package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/internal/editor"
	wcio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// editOptions holds the flags of the edit command.
type editOptions struct {
	seed uint64
	mode string
}

// editCommand creates the edit command for the terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	opts := editOptions{mode: render.ModeIncremental.String()}

	cmd := &cobra.Command{
		Use:   "edit <words-file>",
		Short: "Edit a word file in the terminal",
		Long: `Open a TOML or JSON word file in an interactive terminal editor.

Words can be added, deleted and reordered while the cloud is re-laid out in
the background; the table shows where each word landed. A missing file starts
from the default word list and is created on save.`,
		Example: `  wordcloud edit words.toml
  wordcloud edit new.json --seed 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "fix layout randomness")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "reconciliation: incremental or redraw")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, path string, opts editOptions) error {
	mode, err := render.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	doc, created, err := loadOrDefault(path)
	if err != nil {
		return err
	}

	// The terminal belongs to the program while it runs.
	edOpts := []editor.Option{
		editor.WithMode(mode),
		editor.WithConfig(doc.Settings),
		editor.WithLogger(log.New(io.Discard)),
	}
	if opts.seed != 0 {
		edOpts = append(edOpts, editor.WithSeed(opts.seed))
	}
	ed, err := editor.New(edOpts...)
	if err != nil {
		return err
	}
	defer ed.Close()

	updates := ed.Subscribe()
	if err := ed.LoadWords(doc.Words); err != nil {
		return err
	}

	model := NewEditModel(ed, updates, path)
	model.Dirty = created
	if created {
		model.Status = "New file. Press s to create it."
	}

	final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	if m, ok := final.(EditModel); ok {
		switch {
		case m.Saved:
			printSuccess("Saved %s", path)
			printNextStep("Render it", "wordcloud render "+path)
		case m.Dirty:
			printWarning("Quit without saving %s", path)
		}
	}
	return nil
}

// loadOrDefault reads path, falling back to the starter document when the
// file does not exist yet.
func loadOrDefault(path string) (wcio.Document, bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return wcio.Default(), true, nil
	}
	doc, err := wcio.ImportFile(path)
	return doc, false, err
}
