// Package pipeline provides the batch word-cloud pipeline.
//
// This package implements the complete layout → pack → render pipeline used
// by the CLI render command and by the web server's snapshot endpoints. By
// centralizing this logic, batch renders and interactive editors produce the
// same scenes from the same inputs.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: Build a packing request from the word list and settings
//  2. Pack: Place the words on the canvas without overlap
//  3. Render: Encode the resulting scene (SVG, JSON)
//
// Stages 1 and 2 together produce a [render.Scene], which is cached by input
// hash; stage 3 output is cached by scene hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Words:   doc.Words,
//	    Config:  doc.Settings,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultSeed is the default random seed for reproducible batch renders.
const DefaultSeed = uint64(42)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input
	Words  []words.Entry `json:"words"`
	Config cloud.Config  `json:"config"`

	// Layout options
	Seed uint64      `json:"seed,omitempty"`
	Mode render.Mode `json:"mode,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	EmbedFont  bool     `json:"embed_font,omitempty"`
	Background string   `json:"background,omitempty"`

	// Refresh bypasses cached scenes.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the packed cloud.
	Scene render.Scene

	// InputHash is the content hash of the words and settings.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WordCount  int
	ItemCount  int
	Placed     int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// Dropped returns how many requested words the packer could not place.
func (s Stats) Dropped() int { return s.ItemCount - s.Placed }

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks the options.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := o.Config.Validate(); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	o.Config.SetDefaults()
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SceneKeyOpts returns cache key options for scene computation.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{Seed: o.Seed, Mode: o.Mode.String()}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		EmbedFont:  o.EmbedFont,
		Background: o.Background,
	}
}

// inputHash hashes what determines a scene: the text and weight of every
// word (IDs excluded) and the settings.
func (o *Options) inputHash() (string, error) {
	type word struct {
		Text   string  `json:"text"`
		Weight float64 `json:"weight"`
	}
	in := struct {
		Words  []word       `json:"words"`
		Config cloud.Config `json:"config"`
	}{Words: make([]word, len(o.Words)), Config: o.Config}
	for i, e := range o.Words {
		in.Words[i] = word{Text: e.Text, Weight: e.Weight}
	}
	return cache.HashJSON(in)
}
