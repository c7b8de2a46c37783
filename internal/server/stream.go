package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/wordcloud/internal/editor"
	"github.com/matzehuels/wordcloud/internal/viewmodel"
	"github.com/matzehuels/wordcloud/internal/views"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/words"
)

const keepAliveInterval = 25 * time.Second

// stream pushes scene and word-list changes to the browser.
//
// The first events are a full "scene" snapshot and the current "words"
// fragment; after that the client receives "ops" batches to animate and
// "words" fragments to swap in. When the editor drops a lagging subscriber
// the stream ends and the browser's EventSource reconnects, starting over
// from a fresh snapshot. An open stream keeps its session from expiring.
func (h *editorHandler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	ed := editorFrom(r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := ed.Subscribe()
	defer ed.Unsubscribe(sub)

	scene, err := render.RenderJSON(ed.Scene())
	if err != nil {
		h.server.logger.Error("encode scene", "error", err)
		return
	}
	writeSSE(w, "scene", string(scene))
	h.writeWords(w, r, ed, ed.Words())
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	// The session stays alive as long as the stream is open.
	id := sessionIDFrom(r)
	touch := time.NewTicker(h.server.touchInterval())
	defer touch.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case u, ok := <-sub:
			if !ok {
				return
			}
			if u.Ops == nil {
				h.writeWords(w, r, ed, u.Words)
			} else {
				data, err := render.EncodeOps(u.Generation, u.Ops)
				if err != nil {
					h.server.logger.Error("encode ops", "error", err)
					continue
				}
				writeSSE(w, "ops", string(data))
			}
			flusher.Flush()
			h.server.sessions.Touch(id)
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		case <-touch.C:
			h.server.sessions.Touch(id)
		}
	}
}

func (h *editorHandler) writeWords(w http.ResponseWriter, r *http.Request, ed *editor.Editor, entries []words.Entry) {
	list := viewmodel.NewWordList(entries, ed.Config().WordLimit)
	writeSSE(w, "words", renderToString(r, views.WordList(list)))
}

func writeSSE(w http.ResponseWriter, event string, data string) {
	_, _ = w.Write([]byte("event: " + event + "\n"))
	for _, line := range strings.Split(data, "\n") {
		_, _ = w.Write([]byte("data: " + line + "\n"))
	}
	_, _ = w.Write([]byte("\n"))
}
