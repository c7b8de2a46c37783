package pack

import (
	"cmp"
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/observability"
)

// spiralStep is the angular step of the spiral walk in radians; the radius
// grows by the same amount per step, scaled by the canvas aspect ratio.
const spiralStep = 0.1

// Measurer returns the extent of text at a font size.
type Measurer interface {
	Measure(text string, size float64) (fonts.Extent, error)
}

// Spiral is the default Packer.
type Spiral struct {
	measurer Measurer
	newRand  func() *rand.Rand
	logger   *log.Logger
}

// SpiralOption configures a Spiral packer.
type SpiralOption func(*Spiral)

// WithMeasurer replaces the font measurer.
func WithMeasurer(m Measurer) SpiralOption {
	return func(s *Spiral) { s.measurer = m }
}

// WithSeed makes every pass use the same start phases and directions.
func WithSeed(seed uint64) SpiralOption {
	return func(s *Spiral) { s.newRand = func() *rand.Rand { return layout.NewRand(seed) } }
}

// WithLogger sets the logger for per-pass debug output.
func WithLogger(l *log.Logger) SpiralOption {
	return func(s *Spiral) { s.logger = l }
}

// NewSpiral creates a spiral packer measuring with the embedded font.
func NewSpiral(opts ...SpiralOption) (*Spiral, error) {
	s := &Spiral{
		newRand: func() *rand.Rand { return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.measurer == nil {
		m, err := fonts.NewMeasurer()
		if err != nil {
			return nil, err
		}
		s.measurer = m
	}
	return s, nil
}

type candidate struct {
	index int
	item  layout.Item
	angle float64
	w, h  float64 // rotated box including padding
	offX  float64 // anchor minus box center, rotated
	offY  float64
}

// Pack places the items of req. The result follows request order and omits
// items that did not fit.
func (s *Spiral) Pack(ctx context.Context, req layout.Request) ([]Placed, error) {
	start := time.Now()
	observability.Pipeline().OnPackStart(ctx, len(req.Items))

	placed, err := s.pack(ctx, req)

	dropped := len(req.Items) - len(placed)
	observability.Pipeline().OnPackComplete(ctx, len(placed), dropped, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if s.logger != nil && dropped > 0 {
		s.logger.Debug("words dropped", "placed", len(placed), "dropped", dropped)
	}
	return placed, nil
}

func (s *Spiral) pack(ctx context.Context, req layout.Request) ([]Placed, error) {
	rotateFn := req.Rotate
	if rotateFn == nil {
		rotateFn = func() float64 { return 0 }
	}

	cands := make([]candidate, len(req.Items))
	for i, it := range req.Items {
		c, err := s.measure(i, it, rotateFn(), req.Padding)
		if err != nil {
			return nil, err
		}
		cands[i] = c
	}

	order := slices.Clone(cands)
	slices.SortStableFunc(order, func(a, b candidate) int {
		return cmp.Compare(b.item.FontSize, a.item.FontSize)
	})

	rng := s.newRand()
	aspect := req.Width / req.Height
	maxRadius := math.Hypot(req.Width, req.Height)

	boxes := make([]box, 0, len(order))
	results := make(map[int]Placed, len(order))
	for _, c := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, ok := search(c, boxes, req.Width, req.Height, aspect, maxRadius, rng)
		if !ok {
			continue
		}
		boxes = append(boxes, b)
		results[c.index] = Placed{
			Key:      c.item.Key,
			Text:     c.item.Text,
			X:        b.cx + c.offX,
			Y:        b.cy + c.offY,
			Rotate:   c.angle,
			FontSize: c.item.FontSize,
		}
	}

	out := make([]Placed, 0, len(results))
	for i := range cands {
		if p, ok := results[i]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Spiral) measure(i int, it layout.Item, angle, padding float64) (candidate, error) {
	ext, err := s.measurer.Measure(it.Text, it.FontSize)
	if err != nil {
		return candidate{}, err
	}
	w, h := rotatedSize(ext.Width+2*padding, ext.Height()+2*padding, angle)

	// The anchor sits on the baseline; the unrotated box center is
	// (ascent-descent)/2 above it.
	offX, offY := rotate(0, (ext.Ascent-ext.Descent)/2, angle)
	return candidate{index: i, item: it, angle: angle, w: w, h: h, offX: offX, offY: offY}, nil
}

// search walks the spiral for c and returns the first free in-bounds box.
func search(c candidate, placed []box, width, height, aspect, maxRadius float64, rng *rand.Rand) (box, bool) {
	phase := rng.Float64() * 2 * math.Pi
	dir := 1.0
	if rng.IntN(2) == 0 {
		dir = -1
	}

	for t := 0.0; ; t += spiralStep {
		if t > maxRadius {
			return box{}, false
		}
		b := box{
			cx: aspect * t * math.Cos(dir*t+phase),
			cy: t * math.Sin(dir*t+phase),
			w:  c.w,
			h:  c.h,
		}
		if !b.within(width, height) {
			continue
		}
		if !collides(b, placed) {
			return b, true
		}
	}
}

func collides(b box, placed []box) bool {
	for _, p := range placed {
		if b.overlaps(p) {
			return true
		}
	}
	return false
}
