package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/matzehuels/wordcloud/internal/viewmodel"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/words"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestWordList(t *testing.T) {
	entries := []words.Entry{{Text: "<b>go</b>", Weight: 2.5}, {Text: "chan", Weight: 1}, {Text: "select", Weight: 1}}
	out := renderString(t, WordList(viewmodel.NewWordList(entries, 2)))

	if strings.Contains(out, "<b>go</b>") {
		t.Error("word text not escaped")
	}
	if !strings.Contains(out, "&lt;b&gt;go&lt;/b&gt;") || !strings.Contains(out, "<td>2.5</td>") {
		t.Errorf("missing row content:\n%s", out)
	}
	if n := strings.Count(out, `/delete"`); n != 3 {
		t.Errorf("delete forms = %d, want 3", n)
	}
	// first row has no up, last row has no down
	if n := strings.Count(out, `/move"`); n != 4 {
		t.Errorf("move forms = %d, want 4", n)
	}
	if n := strings.Count(out, "hidden-word"); n != 1 {
		t.Errorf("rows beyond limit = %d, want 1", n)
	}
}

func TestWordListEmpty(t *testing.T) {
	out := renderString(t, WordList(viewmodel.NewWordList(nil, 15)))
	if !strings.Contains(out, `id="words"`) || !strings.Contains(out, "No words yet") {
		t.Errorf("empty list = %q", out)
	}
}

func TestSettingsForm(t *testing.T) {
	cfg := cloud.Default()
	cfg.Rotation = cloud.RotateFixed
	cfg.FixedDegree = 45
	data := viewmodel.NewSettings(cfg)
	data.Error = "bad width"
	out := renderString(t, SettingsForm(data))

	for _, want := range []string{
		`name="width" value="600"`,
		`name="word_limit" value="15"`,
		`<option value="fixed" selected>`,
		`name="fixed_degree" value="45"`,
		`name="padding" value="5"`,
		`id="settings-error" class="error" role="alert">bad width</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("settings form missing %q", want)
		}
	}
}

func TestCanvasCarriesSize(t *testing.T) {
	out := renderString(t, Canvas(viewmodel.Canvas{Width: 640, Height: 480.5, SVG: `<svg id="cloud"></svg>`}))
	for _, want := range []string{`data-width="640"`, `data-height="480.5"`, `<svg id="cloud"></svg></div>`} {
		if !strings.Contains(out, want) {
			t.Errorf("canvas missing %q:\n%s", want, out)
		}
	}
}

func TestWordListActionTargets(t *testing.T) {
	entries := []words.Entry{{Text: "a", Weight: 1}, {Text: "b", Weight: 1}}
	out := renderString(t, WordList(viewmodel.NewWordList(entries, 15)))
	for _, want := range []string{
		`action="/words/0/move"><input type="hidden" name="to" value="1">`,
		`action="/words/1/move"><input type="hidden" name="to" value="0">`,
		`action="/words/1/delete"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("word list missing %q", want)
		}
	}
}

func TestInlineErrorHiddenWhenEmpty(t *testing.T) {
	out := renderString(t, InlineError(viewmodel.ErrorFragment{Target: "x"}))
	if !strings.Contains(out, " hidden>") {
		t.Errorf("empty error slot not hidden: %q", out)
	}
}

func TestEditorPage(t *testing.T) {
	data := viewmodel.EditorPage{
		Title:    "Word Cloud",
		Words:    viewmodel.NewWordList(words.FromSeeds(words.Defaults), 15),
		Settings: viewmodel.NewSettings(cloud.Default()),
		Canvas:   viewmodel.Canvas{Width: 600, Height: 500, SVG: `<svg id="cloud"></svg>`},
	}
	out := renderString(t, EditorPage(data))
	for _, want := range []string{
		"<!doctype html>",
		"<title>Word Cloud</title>",
		`/static/cloud.js`,
		`<svg id="cloud"></svg>`,
		`action="/words"`,
		`action="/settings"`,
		`action="/words/load"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
