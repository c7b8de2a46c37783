// Package editor holds the state of one word-cloud editing session.
//
// An [Editor] owns a word list, the cloud settings, and the rendered scene.
// All mutations are serialized under the editor's mutex. Word additions and
// deletions schedule a debounced re-layout; settings changes and [Editor.Refresh]
// lay out immediately. Packing runs on a background goroutine and only the
// latest pass is applied to the scene, so a slow pass can never overwrite a
// newer one.
//
// Subscribers receive every scene change as an [Update] carrying the enter,
// update and exit operations that transform the previous scene into the new one.
package editor

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/pack"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// DefaultDebounce is the quiet period after a word edit before re-layout.
const DefaultDebounce = 800 * time.Millisecond

// subscriberBuffer is the number of updates a subscriber may lag behind
// before it is dropped.
const subscriberBuffer = 32

// Update is one batch of scene changes.
//
// Ops is nil for updates that only carry a new word list.
type Update struct {
	Generation uint64
	Ops        []render.Op
	Words      []words.Entry
}

// Editor is a single user's editing session. It is safe for concurrent use.
type Editor struct {
	mu       sync.Mutex
	list     *words.List
	cfg      cloud.Config
	rec      *render.Reconciler
	disp     *pack.Dispatcher
	seeds    *rand.Rand
	logger   *log.Logger
	debounce time.Duration

	timer   *time.Timer
	pending uint64

	subs   map[<-chan Update]chan Update
	closed bool
}

// Option configures an Editor.
type Option func(*options)

type options struct {
	packer   pack.Packer
	mode     render.Mode
	cfg      cloud.Config
	debounce time.Duration
	seed     uint64
	seeded   bool
	logger   *log.Logger
	listOpts []words.Option
}

// WithPacker replaces the default spiral packer.
func WithPacker(p pack.Packer) Option { return func(o *options) { o.packer = p } }

// WithMode selects how successive layouts are reconciled.
func WithMode(m render.Mode) Option { return func(o *options) { o.mode = m } }

// WithConfig sets the initial cloud settings. Zero fields take their defaults
// except where zero is a valid setting.
func WithConfig(cfg cloud.Config) Option { return func(o *options) { o.cfg = cfg } }

// WithDebounce overrides [DefaultDebounce].
func WithDebounce(d time.Duration) Option { return func(o *options) { o.debounce = d } }

// WithSeed makes rotation sampling and packing deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// WithWordOptions passes options through to the underlying word list.
func WithWordOptions(opts ...words.Option) Option {
	return func(o *options) { o.listOpts = append(o.listOpts, opts...) }
}

// New creates an editor with an empty word list.
func New(opts ...Option) (*Editor, error) {
	o := options{cfg: cloud.Default(), debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	o.cfg.SetDefaults()
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	if !o.seeded {
		o.seed = rand.Uint64()
	}
	if o.packer == nil {
		p, err := pack.NewSpiral(pack.WithSeed(o.seed), pack.WithLogger(o.logger))
		if err != nil {
			return nil, err
		}
		o.packer = p
	}

	return &Editor{
		list:     words.NewList(o.listOpts...),
		cfg:      o.cfg,
		rec:      render.NewReconciler(o.mode),
		disp:     pack.NewDispatcher(o.packer, o.logger),
		seeds:    layout.NewRand(o.seed),
		logger:   o.logger,
		debounce: o.debounce,
		subs:     make(map[<-chan Update]chan Update),
	}, nil
}

// DefaultWords returns the word list a fresh editor is seeded with.
func DefaultWords() []words.Entry {
	return words.FromSeeds(words.Defaults)
}

// =============================================================================
// Actions
// =============================================================================

// AddWord appends a word and schedules a re-layout.
func (e *Editor) AddWord(text string, weight float64) (words.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.list.Append(text, weight)
	e.record("add", err)
	if err != nil {
		return words.Entry{}, err
	}
	e.logger.Debug("word added", "text", entry.Text, "weight", entry.Weight)
	e.wordsChangedLocked()
	e.scheduleLocked()
	return entry, nil
}

// DeleteWord removes the word at index and schedules a re-layout.
func (e *Editor) DeleteWord(index int) (words.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.list.RemoveAt(index)
	e.record("delete", err)
	if err != nil {
		return words.Entry{}, err
	}
	e.logger.Debug("word deleted", "text", entry.Text, "index", index)
	e.wordsChangedLocked()
	e.scheduleLocked()
	return entry, nil
}

// ReorderWord moves a word within the list. The cloud is not re-laid out;
// the new order takes effect on the next pass.
func (e *Editor) ReorderWord(from, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.list.Move(from, to)
	e.record("reorder", err)
	if err != nil {
		return err
	}
	e.wordsChangedLocked()
	return nil
}

// LoadWords replaces the whole list and lays out immediately.
func (e *Editor) LoadWords(entries []words.Entry) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.list.ReplaceAll(entries)
	e.record("load", err)
	if err != nil {
		return err
	}
	e.logger.Debug("words loaded", "count", len(entries))
	e.wordsChangedLocked()
	e.layoutLocked()
	return nil
}

// ApplySettings replaces the cloud settings and lays out immediately.
// The current settings are kept if cfg is invalid.
func (e *Editor) ApplySettings(cfg cloud.Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := cfg.Validate()
	e.record("settings", err)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.logger.Debug("settings applied", "config", cfg.String())
	e.layoutLocked()
	return nil
}

// Refresh lays out the current list immediately.
func (e *Editor) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("refresh", nil)
	e.layoutLocked()
}

func (e *Editor) record(action string, err error) {
	observability.Editor().OnAction(action, err)
}

// =============================================================================
// Snapshots
// =============================================================================

// Words returns the word list in display order.
func (e *Editor) Words() []words.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.list.Entries()
}

// Config returns the current settings.
func (e *Editor) Config() cloud.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Scene returns the glyphs currently drawn.
func (e *Editor) Scene() render.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sceneLocked()
}

// Generation returns the generation of the latest layout pass issued.
func (e *Editor) Generation() uint64 {
	return e.disp.Generation()
}

func (e *Editor) sceneLocked() render.Scene {
	return render.Scene{
		Width:  e.cfg.Width,
		Height: e.cfg.Height,
		Font:   e.cfg.Font,
		Glyphs: e.rec.Glyphs(),
	}
}

// =============================================================================
// Layout
// =============================================================================

func (e *Editor) scheduleLocked() {
	if e.closed {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.pending++
	seq := e.pending
	e.timer = time.AfterFunc(e.debounce, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.closed || seq != e.pending {
			return
		}
		e.layoutLocked()
	})
}

// layoutLocked starts a pass over the current list. Any scheduled pass is
// folded into this one.
func (e *Editor) layoutLocked() {
	if e.closed {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.pending++

	rng := layout.NewRand(e.seeds.Uint64())
	req, err := layout.Build(e.list.Entries(), e.cfg, rng)
	if errors.Is(err, errors.ErrCodeEmptyInput) {
		gen := e.disp.Invalidate()
		if e.rec.Len() > 0 {
			e.publishOpsLocked(gen, e.rec.Reset())
		}
		return
	}
	if err != nil {
		e.logger.Error("build layout request", "error", err)
		return
	}

	gen := e.disp.Dispatch(context.Background(), req, e.complete)
	e.logger.Debug("layout dispatched", "generation", gen, "items", len(req.Items))
}

func (e *Editor) complete(res pack.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	if !e.disp.IsCurrent(res.Generation) {
		latest := e.disp.Generation()
		e.logger.Debug("discarding stale layout", "generation", res.Generation, "latest", latest)
		observability.Editor().OnStaleResult(res.Generation, latest)
		return
	}
	if res.Err != nil {
		e.logger.Error("layout failed", "generation", res.Generation, "error", res.Err)
		return
	}
	e.applyLocked(res.Generation, res.Placed)
}

func (e *Editor) applyLocked(gen uint64, placed []pack.Placed) {
	e.publishOpsLocked(gen, e.rec.Reconcile(placed))
}

func (e *Editor) publishOpsLocked(gen uint64, ops []render.Op) {
	enter, update, exit := render.Counts(ops)
	observability.Editor().OnReconcile(gen, enter, update, exit)
	e.logger.Debug("scene reconciled", "generation", gen, "enter", enter, "update", update, "exit", exit)
	if len(ops) == 0 {
		return
	}
	e.publishLocked(Update{Generation: gen, Ops: ops})
}

// =============================================================================
// Subscriptions
// =============================================================================

// Subscribe registers a listener for scene and word-list updates.
//
// A subscriber that falls too far behind is dropped and its channel closed;
// it should resubscribe and resynchronize from [Editor.Scene].
func (e *Editor) Subscribe() <-chan Update {
	e.mu.Lock()
	defer e.mu.Unlock()
	ch := make(chan Update, subscriberBuffer)
	if e.closed {
		close(ch)
		return ch
	}
	e.subs[ch] = ch
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (e *Editor) Unsubscribe(ch <-chan Update) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if c, ok := e.subs[ch]; ok {
		delete(e.subs, ch)
		close(c)
	}
}

func (e *Editor) wordsChangedLocked() {
	e.publishLocked(Update{Generation: e.disp.Generation(), Words: e.list.Entries()})
}

func (e *Editor) publishLocked(u Update) {
	for key, ch := range e.subs {
		select {
		case ch <- u:
		default:
			e.logger.Warn("dropping lagging subscriber", "generation", u.Generation)
			delete(e.subs, key)
			close(ch)
		}
	}
}

// Closed reports whether Close has been called.
func (e *Editor) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Close stops the debounce timer, cancels any pass in flight and closes all
// subscriber channels. The editor rejects no calls afterwards but no longer
// lays out.
func (e *Editor) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	for key, ch := range e.subs {
		delete(e.subs, key)
		close(ch)
	}
	e.mu.Unlock()

	// Completion callbacks take e.mu, so the dispatcher must be drained unlocked.
	e.disp.Close()
	return nil
}
