package server

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wordcloud/internal/viewmodel"
	"github.com/matzehuels/wordcloud/internal/views"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	wcio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/render"
)

const (
	pageTitle = "Word Cloud"
	// maxUpload bounds word-file uploads.
	maxUpload = 1 << 20
)

type editorHandler struct {
	server *Server
}

func (h *editorHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.page)
	r.Post("/words", h.addWord)
	r.Post("/words/load", h.loadWords)
	r.Post("/words/{index}/delete", h.deleteWord)
	r.Post("/words/{index}/move", h.moveWord)
	r.Post("/settings", h.applySettings)
	r.Get("/words", h.wordsFragment)
	r.Get("/cloud.svg", h.cloudSVG)
	r.Get("/scene.json", h.sceneJSON)
}

func (h *editorHandler) page(w http.ResponseWriter, r *http.Request) {
	ed := editorFrom(r)
	cfg := ed.Config()
	scene := ed.Scene()
	data := viewmodel.EditorPage{
		Title:    pageTitle,
		Words:    viewmodel.NewWordList(ed.Words(), cfg.WordLimit),
		Settings: viewmodel.NewSettings(cfg),
		Canvas: viewmodel.Canvas{
			Width:  cfg.Width,
			Height: cfg.Height,
			SVG:    string(render.RenderSVG(scene, render.WithID("cloud"))),
		},
	}
	renderComponent(w, r, views.EditorPage(data))
}

func (h *editorHandler) wordsFragment(w http.ResponseWriter, r *http.Request) {
	ed := editorFrom(r)
	renderComponent(w, r, views.WordList(viewmodel.NewWordList(ed.Words(), ed.Config().WordLimit)))
}

func (h *editorHandler) addWord(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	weight, err := parseFloat(r.FormValue("weight"), "weight")
	if err == nil {
		_, err = editorFrom(r).AddWord(r.FormValue("text"), weight)
	}
	h.respond(w, r, "add-error", err)
}

func (h *editorHandler) deleteWord(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(chi.URLParam(r, "index"))
	if err == nil {
		_, err = editorFrom(r).DeleteWord(index)
	}
	h.respond(w, r, "add-error", err)
}

func (h *editorHandler) moveWord(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	from, err := parseIndex(chi.URLParam(r, "index"))
	if err == nil {
		var to int
		to, err = parseIndex(r.FormValue("to"))
		if err == nil {
			err = editorFrom(r).ReorderWord(from, to)
		}
	}
	h.respond(w, r, "add-error", err)
}

// loadWords accepts a word file either as the "file" field of a multipart
// form or as the raw request body.
func (h *editorHandler) loadWords(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(w, r)
	if err != nil {
		h.respond(w, r, "load-error", err)
		return
	}
	doc, err := wcio.Parse(data)
	if err == nil {
		ed := editorFrom(r)
		if err = ed.ApplySettings(doc.Settings); err == nil {
			err = ed.LoadWords(doc.Words)
		}
	}
	h.respond(w, r, "load-error", err)
}

func (h *editorHandler) applySettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ed := editorFrom(r)
	cfg, err := parseSettings(r, ed.Config())
	if err == nil {
		err = ed.ApplySettings(cfg)
	}
	h.respond(w, r, "settings-error", err)
}

func (h *editorHandler) cloudSVG(w http.ResponseWriter, r *http.Request) {
	scene := editorFrom(r).Scene()
	artifacts, hit, err := h.server.runner.RenderWithCacheInfo(r.Context(), scene, pipeline.Options{
		Formats:   []string{pipeline.FormatSVG},
		EmbedFont: h.server.opts.EmbedFont,
	})
	if err != nil {
		h.server.logger.Error("render svg", "error", err)
		http.Error(w, "failed to render", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Cache", cacheStatus(hit))
	_, _ = w.Write(artifacts[pipeline.FormatSVG])
}

func (h *editorHandler) sceneJSON(w http.ResponseWriter, r *http.Request) {
	data, err := render.RenderJSON(editorFrom(r).Scene(), render.WithJSONMode(h.server.opts.Mode))
	if err != nil {
		h.server.logger.Error("render json", "error", err)
		http.Error(w, "failed to render", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// respond finishes a form post. User errors become a 422 fragment for
// scripted requests and a re-rendered page otherwise; anything else is a 500.
func (h *editorHandler) respond(w http.ResponseWriter, r *http.Request, target string, err error) {
	if err != nil && !errors.IsUserError(err) {
		h.server.logger.Error("request failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	htmx := r.Header.Get("HX-Request") == "true"
	switch {
	case err == nil && htmx:
		w.WriteHeader(http.StatusNoContent)
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case htmx:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = views.InlineError(viewmodel.ErrorFragment{Target: target, Message: errors.UserMessage(err)}).Render(r.Context(), w)
	default:
		h.pageWithError(w, r, target, errors.UserMessage(err))
	}
}

// pageWithError re-renders the editor with msg shown next to the form that
// failed.
func (h *editorHandler) pageWithError(w http.ResponseWriter, r *http.Request, target, msg string) {
	ed := editorFrom(r)
	cfg := ed.Config()
	data := viewmodel.EditorPage{
		Title:    pageTitle,
		Words:    viewmodel.NewWordList(ed.Words(), cfg.WordLimit),
		Settings: viewmodel.NewSettings(cfg),
		Canvas: viewmodel.Canvas{
			Width:  cfg.Width,
			Height: cfg.Height,
			SVG:    string(render.RenderSVG(ed.Scene(), render.WithID("cloud"))),
		},
	}
	switch target {
	case "settings-error":
		data.Settings.Error = msg
	default:
		data.Error = msg
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = views.EditorPage(data).Render(r.Context(), w)
}

// =============================================================================
// Form parsing
// =============================================================================

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New(errors.ErrCodeIndexOutOfRange, "invalid index %q", s)
	}
	return i, nil
}

func parseFloat(s, field string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeValidation, "%s must be a number", field)
	}
	return f, nil
}

// parseSettings overlays the posted fields onto current. Missing fields keep
// their current value; a field posted empty takes its default.
func parseSettings(r *http.Request, current cloud.Config) (cloud.Config, error) {
	cfg := current
	def := cloud.Default()
	floats := []struct {
		name string
		dst  *float64
		def  float64
	}{
		{"width", &cfg.Width, def.Width},
		{"height", &cfg.Height, def.Height},
		{"min_font_size", &cfg.MinFontSize, def.MinFontSize},
		{"max_font_size", &cfg.MaxFontSize, def.MaxFontSize},
		{"fixed_degree", &cfg.FixedDegree, def.FixedDegree},
		{"padding", &cfg.Padding, def.Padding},
	}
	for _, f := range floats {
		if _, ok := r.Form[f.name]; !ok {
			continue
		}
		v := strings.TrimSpace(r.FormValue(f.name))
		if v == "" {
			*f.dst = f.def
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return current, errors.New(errors.ErrCodeInvalidConfig, "%s must be a number", strings.ReplaceAll(f.name, "_", " "))
		}
		*f.dst = n
	}
	if _, ok := r.Form["word_limit"]; ok {
		cfg.WordLimit = def.WordLimit
		if v := strings.TrimSpace(r.FormValue("word_limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return current, errors.New(errors.ErrCodeInvalidConfig, "word limit must be a whole number")
			}
			cfg.WordLimit = n
		}
	}
	if _, ok := r.Form["rotation"]; ok {
		mode, err := cloud.ParseMode(r.FormValue("rotation"))
		if err != nil {
			return current, err
		}
		cfg.Rotation = mode
	}
	return cfg, nil
}

func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid upload")
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "no word file uploaded")
		}
		defer f.Close()
		return readAll(f)
	}
	return readAll(r.Body)
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read word file")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "word file is empty")
	}
	return data, nil
}

// =============================================================================
// Rendering helpers
// =============================================================================

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}

func renderToString(r *http.Request, component templ.Component) string {
	var buf bytes.Buffer
	_ = component.Render(r.Context(), &buf)
	return buf.String()
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
