// Package server serves the interactive word-cloud editor over HTTP.
//
// Every visitor gets their own [editor.Editor], looked up through a session
// cookie. Form posts mutate the editor and redirect back to the page; scripted
// posts (HX-Request: true) get 204 or a 422 error fragment instead. Scene
// changes reach the browser over a server-sent event stream as batches of
// enter, update and exit operations.
package server

import (
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wordcloud/internal/editor"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/session"
)

//go:embed static/*
var embeddedStatic embed.FS

// DefaultAddr is used when neither --addr nor PORT is set.
const DefaultAddr = ":8080"

const (
	sessionCookie   = "wordcloud_session"
	requestTimeout  = 15 * time.Second
	cleanupInterval = 5 * time.Minute
	artifactEntries = 256
)

// Options configures a Server.
type Options struct {
	// Mode selects how each visitor's scene is reconciled.
	Mode render.Mode
	// Config is the initial cloud settings for new visitors.
	Config cloud.Config
	// SessionTTL is how long an idle visitor's editor is kept.
	SessionTTL time.Duration
	// EmbedFont inlines the measurement font into downloaded SVGs.
	EmbedFont bool
	// Seed fixes layout randomness for every editor. Zero picks a random seed
	// per editor.
	Seed uint64
	// Debounce overrides the editor's re-layout delay.
	Debounce time.Duration
	Logger   *log.Logger
}

// Server is the editor web application.
type Server struct {
	opts     Options
	logger   *log.Logger
	sessions *session.Store[*editor.Editor]
	runner   *pipeline.Runner
}

// New creates a server. Call [Server.Close] to release every editor.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.SessionTTL == 0 {
		opts.SessionTTL = session.DefaultTTL
	}
	opts.Config.SetDefaults()

	s := &Server{
		opts:   opts,
		logger: opts.Logger,
		runner: pipeline.NewRunner(cache.NewMemoryCache(artifactEntries), nil, opts.Logger),
	}
	s.sessions = session.NewStore(s.newEditor, opts.SessionTTL)
	return s
}

func (s *Server) newEditor(id string) (*editor.Editor, error) {
	opts := []editor.Option{
		editor.WithMode(s.opts.Mode),
		editor.WithConfig(s.opts.Config),
		editor.WithLogger(s.logger.With("session", shortID(id))),
	}
	if s.opts.Seed != 0 {
		opts = append(opts, editor.WithSeed(s.opts.Seed))
	}
	if s.opts.Debounce > 0 {
		opts = append(opts, editor.WithDebounce(s.opts.Debounce))
	}
	ed, err := editor.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := ed.LoadWords(editor.DefaultWords()); err != nil {
		ed.Close()
		return nil, err
	}
	s.logger.Debug("session created", "session", shortID(id))
	return ed, nil
}

// Handler returns the application's routes.
func (s *Server) Handler() http.Handler {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.DebugLevel}),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		panic(err)
	}
	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))

	h := &editorHandler{server: s}
	r.Group(func(r chi.Router) {
		r.Use(s.withEditor)
		r.Get("/stream", h.stream)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))
			h.RegisterRoutes(r)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Idle sessions are swept periodically.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go s.sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Cleanup(); n > 0 {
				s.logger.Debug("expired sessions removed", "count", n, "remaining", s.sessions.Len())
			}
		}
	}
}

// Close releases every editor and the render cache.
func (s *Server) Close() error {
	_ = s.sessions.Close()
	return s.runner.Close()
}

// =============================================================================
// Sessions
// =============================================================================

type (
	editorKey  struct{}
	sessionKey struct{}
)

// withEditor resolves the visitor's editor from the session cookie, creating
// a session for new visitors.
func (s *Server) withEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = c.Value
		}
		sess, created, err := s.sessions.GetOrCreate(id)
		if err != nil {
			s.logger.Error("create session", "error", err)
			http.Error(w, "failed to create session", http.StatusInternalServerError)
			return
		}
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(s.opts.SessionTTL.Seconds()),
			})
		}
		ctx := context.WithValue(r.Context(), editorKey{}, sess.Value)
		ctx = context.WithValue(ctx, sessionKey{}, sess.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func editorFrom(r *http.Request) *editor.Editor {
	return r.Context().Value(editorKey{}).(*editor.Editor)
}

func sessionIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}

// touchInterval is how often an open stream refreshes its session. It stays
// well inside the TTL so a connected visitor is never swept.
func (s *Server) touchInterval() time.Duration {
	if d := s.opts.SessionTTL / 2; d > 0 && d < keepAliveInterval {
		return d
	}
	return keepAliveInterval
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
