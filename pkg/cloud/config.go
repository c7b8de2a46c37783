// Package cloud defines the configuration of a word cloud: canvas size, word
// limit, font-size range, rotation mode and packing padding.
//
// A Config is pure data. [Config.SetDefaults] fills unset (zero) fields with
// the defaults below; [Config.Validate] enforces the invariants and returns an
// INVALID_CONFIG error on the first violation. Validation never applies
// defaults, so a zero width submitted to the editor is rejected rather than
// silently replaced.
package cloud

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Default values, matching the editor's initial settings panel.
const (
	DefaultWidth       = 600.0
	DefaultHeight      = 500.0
	DefaultWordLimit   = 15
	DefaultMinFontSize = 20.0
	DefaultMaxFontSize = 70.0
	DefaultPadding     = 5.0
	DefaultFont        = "Impact"
)

// Mode selects how each word's rotation is chosen.
type Mode string

const (
	// RotateNone draws every word horizontally.
	RotateNone Mode = "none"
	// RotateRandom picks 0° or 90° per word, re-sampled on every layout pass.
	RotateRandom Mode = "random"
	// RotateFixed draws every word at Config.FixedDegree.
	RotateFixed Mode = "fixed"
)

// ParseMode accepts a mode name or the numeric form used by the settings
// form (0 = none, 1 = random, 2 = fixed). An empty string means none.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", string(RotateNone):
		return RotateNone, nil
	case "1", string(RotateRandom):
		return RotateRandom, nil
	case "2", string(RotateFixed):
		return RotateFixed, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "invalid rotation mode: %q (must be one of: none, random, fixed)", s)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case RotateNone, RotateRandom, RotateFixed:
		return true
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML and JSON.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Config holds the settings of one cloud.
type Config struct {
	Width       float64 `json:"width" toml:"width"`
	Height      float64 `json:"height" toml:"height"`
	WordLimit   int     `json:"word_limit" toml:"word_limit"`
	MinFontSize float64 `json:"min_font_size" toml:"min_font_size"`
	MaxFontSize float64 `json:"max_font_size" toml:"max_font_size"`
	Rotation    Mode    `json:"rotation" toml:"rotation"`
	FixedDegree float64 `json:"fixed_degree,omitempty" toml:"fixed_degree"`
	Padding     float64 `json:"padding" toml:"padding"`
	Font        string  `json:"font,omitempty" toml:"font"`
}

// Default returns a Config with every field set to its default.
func Default() Config {
	c := Config{Padding: DefaultPadding}
	c.SetDefaults()
	return c
}

// SetDefaults fills zero-valued fields with defaults. Fields whose zero value
// is a valid setting, Padding and FixedDegree, are left alone.
func (c *Config) SetDefaults() {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.WordLimit == 0 {
		c.WordLimit = DefaultWordLimit
	}
	if c.MinFontSize == 0 {
		c.MinFontSize = DefaultMinFontSize
	}
	if c.MaxFontSize == 0 {
		c.MaxFontSize = DefaultMaxFontSize
	}
	if c.Rotation == "" {
		c.Rotation = RotateNone
	}
	if c.Font == "" {
		c.Font = DefaultFont
	}
}

// Validate checks the config invariants.
func (c Config) Validate() error {
	if !positive(c.Width) || !positive(c.Height) {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.WordLimit <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "word limit must be positive, got %d", c.WordLimit)
	}
	if !positive(c.MinFontSize) || !positive(c.MaxFontSize) {
		return errors.New(errors.ErrCodeInvalidConfig, "font sizes must be positive, got %g and %g", c.MinFontSize, c.MaxFontSize)
	}
	if c.MinFontSize > c.MaxFontSize {
		return errors.New(errors.ErrCodeInvalidConfig, "min font size %g exceeds max font size %g", c.MinFontSize, c.MaxFontSize)
	}
	if !c.Rotation.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid rotation mode: %q", c.Rotation)
	}
	if c.Rotation == RotateFixed && !finite(c.FixedDegree) {
		return errors.New(errors.ErrCodeInvalidConfig, "fixed degree must be a number")
	}
	if c.Padding < 0 || !finite(c.Padding) {
		return errors.New(errors.ErrCodeInvalidConfig, "padding must not be negative, got %g", c.Padding)
	}
	return nil
}

// String returns a compact one-line description for logs.
func (c Config) String() string {
	rot := string(c.Rotation)
	if c.Rotation == RotateFixed {
		rot = fmt.Sprintf("fixed(%g°)", c.FixedDegree)
	}
	return fmt.Sprintf("%gx%g limit=%d font=%g-%g rotate=%s", c.Width, c.Height, c.WordLimit, c.MinFontSize, c.MaxFontSize, rot)
}

func finite(f float64) bool   { return !math.IsNaN(f) && !math.IsInf(f, 0) }
func positive(f float64) bool { return finite(f) && f > 0 }
