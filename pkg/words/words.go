package words

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Entry is one (text, weight) pair of the word list.
type Entry struct {
	ID     string  `json:"id" toml:"-"`
	Text   string  `json:"text" toml:"text"`
	Weight float64 `json:"weight" toml:"weight"`
}

// List is an ordered, in-memory word list.
type List struct {
	entries []Entry
	newID   func() string
}

// Option configures a List.
type Option func(*List)

// WithIDFunc replaces the ID generator. Tests use it for readable IDs.
func WithIDFunc(fn func() string) Option {
	return func(l *List) { l.newID = fn }
}

// NewList creates an empty list.
func NewList(opts ...Option) *List {
	l := &List{newID: uuid.NewString}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.entries) }

// Entries returns a copy of the entries in display order.
func (l *List) Entries() []Entry { return slices.Clone(l.entries) }

// At returns the entry at index i.
func (l *List) At(i int) (Entry, error) {
	if err := errors.ValidateIndex(i, len(l.entries)); err != nil {
		return Entry{}, err
	}
	return l.entries[i], nil
}

// Append validates and adds a word at the end of the list.
// Surrounding whitespace is trimmed from text.
func (l *List) Append(text string, weight float64) (Entry, error) {
	text = strings.TrimSpace(text)
	if err := errors.ValidateWord(text, weight); err != nil {
		return Entry{}, err
	}
	e := Entry{ID: l.newID(), Text: text, Weight: weight}
	l.entries = append(l.entries, e)
	return e, nil
}

// RemoveAt deletes the entry at index i and returns it.
// The list is left unmodified when i is out of range.
func (l *List) RemoveAt(i int) (Entry, error) {
	if err := errors.ValidateIndex(i, len(l.entries)); err != nil {
		return Entry{}, err
	}
	e := l.entries[i]
	l.entries = slices.Delete(l.entries, i, i+1)
	return e, nil
}

// Move relocates the entry at from so that it ends up at index to.
func (l *List) Move(from, to int) error {
	n := len(l.entries)
	if err := errors.ValidateIndex(from, n); err != nil {
		return err
	}
	if err := errors.ValidateIndex(to, n); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	e := l.entries[from]
	l.entries = slices.Delete(l.entries, from, from+1)
	l.entries = slices.Insert(l.entries, to, e)
	return nil
}

// ReplaceAll validates every entry and swaps in the new sequence.
// Entries without an ID are assigned one. Nothing changes if any entry
// is invalid.
func (l *List) ReplaceAll(entries []Entry) error {
	next := make([]Entry, 0, len(entries))
	for i, e := range entries {
		e.Text = strings.TrimSpace(e.Text)
		if err := errors.ValidateWord(e.Text, e.Weight); err != nil {
			return errors.New(errors.ErrCodeValidation, "entry %d: %s", i, errors.UserMessage(err))
		}
		if e.ID == "" {
			e.ID = l.newID()
		}
		next = append(next, e)
	}
	l.entries = next
	return nil
}

// Seed is a text/weight pair used to populate lists.
type Seed struct {
	Text   string
	Weight float64
}

// Defaults is the list a fresh editor starts with.
var Defaults = []Seed{
	{"This", 50},
	{"is", 45},
	{"my", 40},
	{"first", 35},
	{"Go", 30},
	{"app", 30},
	{"Thank", 25},
	{"You", 20},
}

// FromSeeds builds entries from seeds without assigning IDs.
func FromSeeds(seeds []Seed) []Entry {
	out := make([]Entry, len(seeds))
	for i, s := range seeds {
		out[i] = Entry{Text: s.Text, Weight: s.Weight}
	}
	return out
}
