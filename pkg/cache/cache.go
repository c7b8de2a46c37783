// Package cache stores rendered clouds so repeated renders of an unchanged
// word list skip layout and packing.
//
// Two layers are cached, each under a content-addressed key from a [Keyer]:
//
//   - scenes: the placed glyphs for one (word list, settings, seed) input
//   - artifacts: an encoded output (SVG, JSON) of one scene
//
// [FileCache] backs the CLI, [MemoryCache] backs the web server, and
// [NullCache] disables caching.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Default TTLs.
const (
	SceneTTL    = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SceneKeyOpts are the inputs besides the document that shape a scene.
type SceneKeyOpts struct {
	Seed uint64 `json:"seed"`
	Mode string `json:"mode"`
}

// ArtifactKeyOpts are the inputs that shape an encoded artifact.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	EmbedFont  bool   `json:"embed_font,omitempty"`
	Background string `json:"background,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	SceneKey(inputHash string, opts SceneKeyOpts) string
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneKey returns the key of a scene computed from inputHash.
func (DefaultKeyer) SceneKey(inputHash string, opts SceneKeyOpts) string {
	return hashKey("scene", inputHash, opts)
}

// ArtifactKey returns the key of an artifact of the scene sceneHash.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), sceneHash, opts)
}
