package render

// Scene is a snapshot of a cloud ready for output.
type Scene struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Font   string  `json:"font"`
	Glyphs []Glyph `json:"glyphs"`
}
