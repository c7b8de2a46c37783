package layout

import (
	"math/rand/v2"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// Item is one word to be packed.
type Item struct {
	Key      string  `json:"key"`
	Text     string  `json:"text"`
	Weight   float64 `json:"weight"`
	FontSize float64 `json:"font_size"`
}

// RotateFunc returns the rotation in degrees for the next word.
type RotateFunc func() float64

// Request is the complete input of one packing pass.
type Request struct {
	Items   []Item
	Width   float64
	Height  float64
	Rotate  RotateFunc
	Padding float64
	Font    string
}

// Keys returns the item keys in request order.
func (r Request) Keys() []string {
	keys := make([]string, len(r.Items))
	for i, it := range r.Items {
		keys[i] = it.Key
	}
	return keys
}

// NewRand returns a seeded generator for reproducible layouts.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Build creates the packing request for entries under cfg.
//
// Build fails with INVALID_CONFIG if cfg does not validate and with
// EMPTY_INPUT if no entry survives truncation. rng drives random rotation; a
// nil rng falls back to the global source.
func Build(entries []words.Entry, cfg cloud.Config, rng *rand.Rand) (Request, error) {
	if err := cfg.Validate(); err != nil {
		return Request{}, err
	}

	kept := Truncate(entries, cfg.WordLimit)
	if len(kept) == 0 {
		return Request{}, errors.New(errors.ErrCodeEmptyInput, "no words to lay out")
	}

	scale := NewScale(kept, cfg.MinFontSize, cfg.MaxFontSize)
	items := make([]Item, len(kept))
	for i, e := range kept {
		key := e.ID
		if key == "" {
			key = e.Text
		}
		items[i] = Item{Key: key, Text: e.Text, Weight: e.Weight, FontSize: scale.Size(e.Weight)}
	}

	return Request{
		Items:   items,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Rotate:  RotationFunc(cfg, rng),
		Padding: cfg.Padding,
		Font:    cfg.Font,
	}, nil
}

// Truncate returns at most limit leading entries, preserving order.
func Truncate(entries []words.Entry, limit int) []words.Entry {
	if limit < 0 {
		limit = 0
	}
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

// RotationFunc resolves the rotation mode of cfg.
func RotationFunc(cfg cloud.Config, rng *rand.Rand) RotateFunc {
	switch cfg.Rotation {
	case cloud.RotateRandom:
		intN := rand.IntN
		if rng != nil {
			intN = rng.IntN
		}
		return func() float64 { return float64(intN(2) * 90) }
	case cloud.RotateFixed:
		deg := cfg.FixedDegree
		return func() float64 { return deg }
	default:
		return func() float64 { return 0 }
	}
}
