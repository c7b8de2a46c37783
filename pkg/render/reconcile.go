package render

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/wordcloud/pkg/pack"
)

// Transition windows.
const (
	EnterDuration  = 600 * time.Millisecond
	UpdateDuration = 600 * time.Millisecond
	ExitDuration   = 200 * time.Millisecond
)

// ExitOpacity is the opacity an exiting glyph fades to before removal.
const ExitOpacity = 1e-6

// Mode selects how successive passes are reconciled.
type Mode int

const (
	// ModeIncremental diffs each pass against the live glyphs.
	ModeIncremental Mode = iota
	// ModeFullRedraw exits every glyph and enters the whole placement.
	ModeFullRedraw
)

func (m Mode) String() string {
	switch m {
	case ModeIncremental:
		return "incremental"
	case ModeFullRedraw:
		return "redraw"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "incremental" or "redraw".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "incremental":
		return ModeIncremental, nil
	case "redraw", "full", "full-redraw":
		return ModeFullRedraw, nil
	}
	return 0, fmt.Errorf("invalid render mode: %q (must be incremental or redraw)", s)
}

// Glyph is one word as drawn.
type Glyph struct {
	Key      string  `json:"key"`
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotate   float64 `json:"rotate"`
	FontSize float64 `json:"size"`
	Fill     string  `json:"fill"`
	Opacity  float64 `json:"opacity"`
}

// OpKind is the treatment applied to a glyph.
type OpKind int

const (
	OpEnter OpKind = iota
	OpUpdate
	OpExit
)

func (k OpKind) String() string {
	switch k {
	case OpEnter:
		return "enter"
	case OpUpdate:
		return "update"
	case OpExit:
		return "exit"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k OpKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Op is one visual operation: animate the glyph Key from From to To over
// Duration. For exits, the glyph is removed once the animation ends.
type Op struct {
	Kind     OpKind
	Key      string
	From     Glyph
	To       Glyph
	Duration time.Duration
}

// Counts tallies ops by kind.
func Counts(ops []Op) (enter, update, exit int) {
	for _, op := range ops {
		switch op.Kind {
		case OpEnter:
			enter++
		case OpUpdate:
			update++
		case OpExit:
			exit++
		}
	}
	return enter, update, exit
}

// Reconciler tracks the live glyph set. It is safe for concurrent use.
type Reconciler struct {
	mode Mode

	mu     sync.Mutex
	glyphs []Glyph
}

// NewReconciler creates a reconciler with an empty scene.
func NewReconciler(mode Mode) *Reconciler {
	return &Reconciler{mode: mode}
}

// Mode returns the reconciliation mode.
func (r *Reconciler) Mode() Mode { return r.mode }

// Glyphs returns a copy of the live glyphs in display order.
func (r *Reconciler) Glyphs() []Glyph {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.glyphs)
}

// Len returns the number of live glyphs.
func (r *Reconciler) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.glyphs)
}

// Reconcile applies a new placement and returns the operations that
// transform the previous scene into it. Duplicate keys in placed keep their
// first occurrence.
func (r *Reconciler) Reconcile(placed []pack.Placed) []Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]Glyph, 0, len(placed))
	nextKeys := make(map[string]struct{}, len(placed))
	for i, p := range placed {
		if _, dup := nextKeys[p.Key]; dup {
			continue
		}
		nextKeys[p.Key] = struct{}{}
		next = append(next, Glyph{
			Key:      p.Key,
			Text:     p.Text,
			X:        p.X,
			Y:        p.Y,
			Rotate:   p.Rotate,
			FontSize: p.FontSize,
			Fill:     Fill(i),
			Opacity:  1,
		})
	}

	prev := make(map[string]Glyph, len(r.glyphs))
	var ops []Op
	for _, g := range r.glyphs {
		_, kept := nextKeys[g.Key]
		if kept && r.mode == ModeIncremental {
			prev[g.Key] = g
			continue
		}
		ops = append(ops, exitOp(g))
	}

	for _, g := range next {
		old, ok := prev[g.Key]
		switch {
		case !ok:
			ops = append(ops, enterOp(g))
		case old != g:
			ops = append(ops, Op{Kind: OpUpdate, Key: g.Key, From: old, To: g, Duration: UpdateDuration})
		}
	}

	r.glyphs = next
	return ops
}

// Reset drops every glyph, returning exit ops for them.
func (r *Reconciler) Reset() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]Op, 0, len(r.glyphs))
	for _, g := range r.glyphs {
		ops = append(ops, exitOp(g))
	}
	r.glyphs = nil
	return ops
}

func enterOp(g Glyph) Op {
	from := g
	from.FontSize = 1
	return Op{Kind: OpEnter, Key: g.Key, From: from, To: g, Duration: EnterDuration}
}

func exitOp(g Glyph) Op {
	to := g
	to.FontSize = 1
	to.Opacity = ExitOpacity
	return Op{Kind: OpExit, Key: g.Key, From: g, To: to, Duration: ExitDuration}
}
