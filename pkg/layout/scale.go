package layout

import "github.com/matzehuels/wordcloud/pkg/words"

// Scale maps weights linearly onto a font-size range.
type Scale struct {
	MinWeight, MaxWeight float64
	MinSize, MaxSize     float64
}

// NewScale fits a scale to the weight extent of entries.
func NewScale(entries []words.Entry, minSize, maxSize float64) Scale {
	s := Scale{MinSize: minSize, MaxSize: maxSize}
	for i, e := range entries {
		if i == 0 {
			s.MinWeight, s.MaxWeight = e.Weight, e.Weight
			continue
		}
		s.MinWeight = min(s.MinWeight, e.Weight)
		s.MaxWeight = max(s.MaxWeight, e.Weight)
	}
	return s
}

// Size returns the font size for weight w, clamped to [MinSize, MaxSize].
// A degenerate scale (all weights equal) returns MaxSize.
func (s Scale) Size(w float64) float64 {
	span := s.MaxWeight - s.MinWeight
	if span <= 0 {
		return s.MaxSize
	}
	size := s.MinSize + (w-s.MinWeight)/span*(s.MaxSize-s.MinSize)
	return max(s.MinSize, min(size, s.MaxSize))
}
