package words

import (
	"fmt"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

func seqIDs() Option {
	n := 0
	return WithIDFunc(func() string {
		n++
		return fmt.Sprintf("w%d", n)
	})
}

func texts(l *List) []string {
	var out []string
	for _, e := range l.Entries() {
		out = append(out, e.Text)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newABC(t *testing.T) *List {
	t.Helper()
	l := NewList(seqIDs())
	for _, s := range []Seed{{"A", 10}, {"B", 20}, {"C", 30}} {
		if _, err := l.Append(s.Text, s.Weight); err != nil {
			t.Fatalf("Append(%q): %v", s.Text, err)
		}
	}
	return l
}

func TestAppend(t *testing.T) {
	l := NewList(seqIDs())
	e, err := l.Append("  Test  ", 10)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if e.Text != "Test" {
		t.Errorf("Text = %q, want trimmed %q", e.Text, "Test")
	}
	if e.ID != "w1" {
		t.Errorf("ID = %q, want w1", e.ID)
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
}

func TestAppendValidation(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		weight float64
	}{
		{"empty text", "", 10},
		{"blank text", "   ", 10},
		{"zero weight", "A", 0},
		{"negative weight", "A", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewList()
			_, err := l.Append(tt.text, tt.weight)
			if !errors.Is(err, errors.ErrCodeValidation) {
				t.Fatalf("Append error = %v, want VALIDATION", err)
			}
			if l.Len() != 0 {
				t.Errorf("list modified on invalid append")
			}
		})
	}
}

func TestAppendDefaultIDsAreUnique(t *testing.T) {
	l := NewList()
	a, _ := l.Append("same", 1)
	b, _ := l.Append("same", 1)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs not unique: %q, %q", a.ID, b.ID)
	}
}

func TestRemoveAt(t *testing.T) {
	l := newABC(t)
	e, err := l.RemoveAt(1)
	if err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	if e.Text != "B" {
		t.Errorf("removed %q, want B", e.Text)
	}
	if got := texts(l); !equal(got, []string{"A", "C"}) {
		t.Errorf("texts = %v", got)
	}
}

func TestRemoveAtOutOfRangeLeavesListUnmodified(t *testing.T) {
	l := newABC(t)
	for _, i := range []int{5, 3, -1} {
		_, err := l.RemoveAt(i)
		if !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
			t.Errorf("RemoveAt(%d) error = %v, want INDEX_OUT_OF_RANGE", i, err)
		}
	}
	if got := texts(l); !equal(got, []string{"A", "B", "C"}) {
		t.Errorf("texts = %v, want unmodified", got)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"B", "C", "A"}},
		{"backward", 2, 0, []string{"C", "A", "B"}},
		{"adjacent", 0, 1, []string{"B", "A", "C"}},
		{"same", 1, 1, []string{"A", "B", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newABC(t)
			if err := l.Move(tt.from, tt.to); err != nil {
				t.Fatalf("Move: %v", err)
			}
			if got := texts(l); !equal(got, tt.want) {
				t.Errorf("texts = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoveOutOfRange(t *testing.T) {
	l := newABC(t)
	if err := l.Move(0, 3); !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
		t.Errorf("Move(0,3) error = %v", err)
	}
	if err := l.Move(-1, 0); !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
		t.Errorf("Move(-1,0) error = %v", err)
	}
	if got := texts(l); !equal(got, []string{"A", "B", "C"}) {
		t.Errorf("texts = %v, want unmodified", got)
	}
}

func TestReplaceAll(t *testing.T) {
	l := newABC(t)
	keep := l.Entries()[0]

	err := l.ReplaceAll([]Entry{keep, {Text: "Z", Weight: 5}})
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	got := l.Entries()
	if len(got) != 2 || got[0].ID != keep.ID || got[1].ID == "" {
		t.Errorf("entries = %+v", got)
	}
}

func TestReplaceAllIsAtomic(t *testing.T) {
	l := newABC(t)
	err := l.ReplaceAll([]Entry{{Text: "ok", Weight: 1}, {Text: "", Weight: 1}})
	if !errors.Is(err, errors.ErrCodeValidation) {
		t.Fatalf("ReplaceAll error = %v, want VALIDATION", err)
	}
	if got := texts(l); !equal(got, []string{"A", "B", "C"}) {
		t.Errorf("texts = %v, want unmodified", got)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := newABC(t)
	es := l.Entries()
	es[0].Text = "mutated"
	if first, _ := l.At(0); first.Text != "A" {
		t.Errorf("Entries leaked internal slice")
	}
}

func TestFromSeeds(t *testing.T) {
	es := FromSeeds(Defaults)
	if len(es) != len(Defaults) {
		t.Fatalf("len = %d", len(es))
	}
	if es[0].Text != "This" || es[0].Weight != 50 || es[0].ID != "" {
		t.Errorf("first = %+v", es[0])
	}
}
