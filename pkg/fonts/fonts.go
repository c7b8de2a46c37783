// Package fonts provides the embedded font used to measure word extents.
//
// The packer needs the width and height of every word at its resolved font
// size before it can test for collisions. Measuring against a real font keeps
// boxes tight; the Go Bold face from golang.org/x/image is embedded in the
// binary, so measurement needs no system fonts.
//
// Browsers draw the words in the configured family (Impact by default), which
// is narrower than Go Bold at the same size, so measured boxes are a safe upper
// bound. SVG output can embed Go Bold itself via [GoBoldBase64] when an exact
// match between measurement and drawing matters.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS family name used when Go Bold is embedded.
const FontFamily = "Go Bold"

// FallbackFontFamily is appended to the configured family in SVG output.
const FallbackFontFamily = `'Arial Black', 'Helvetica Neue', sans-serif`

var (
	parsed     *opentype.Font
	parseErr   error
	parseOnce  sync.Once
	ttfBase64  string
	base64Once sync.Once
)

// GoBold returns the parsed Go Bold font. Parsing happens once.
func GoBold() (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(gobold.TTF)
		if parseErr != nil {
			parseErr = fmt.Errorf("parse go bold: %w", parseErr)
		}
	})
	return parsed, parseErr
}

// GoBoldBase64 returns the TTF data as a base64 string.
// The result is cached after first computation.
func GoBoldBase64() string {
	base64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(gobold.TTF)
	})
	return ttfBase64
}

// Extent is the measured box of a string at one font size, in pixels.
// Ascent and Descent are both positive distances from the baseline.
type Extent struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Height returns Ascent + Descent.
func (e Extent) Height() float64 { return e.Ascent + e.Descent }

// Measurer measures strings at arbitrary sizes. Faces are created lazily per
// size and reused. A Measurer is safe for concurrent use.
type Measurer struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewMeasurer creates a measurer over the embedded Go Bold font.
func NewMeasurer() (*Measurer, error) {
	f, err := GoBold()
	if err != nil {
		return nil, err
	}
	return &Measurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// Measure returns the extent of text at size.
func (m *Measurer) Measure(text string, size float64) (Extent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, ok := m.faces[size]
	if !ok {
		var err error
		face, err = opentype.NewFace(m.font, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return Extent{}, fmt.Errorf("face at %gpx: %w", size, err)
		}
		m.faces[size] = face
	}

	metrics := face.Metrics()
	return Extent{
		Width:   float64(font.MeasureString(face, text)) / 64,
		Ascent:  float64(metrics.Ascent) / 64,
		Descent: float64(metrics.Descent) / 64,
	}, nil
}

// Close releases all cached faces.
func (m *Measurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for size, face := range m.faces {
		_ = face.Close()
		delete(m.faces, size)
	}
	return nil
}
