package pack

import (
	"context"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

// Placed is a word positioned by the packer.
type Placed struct {
	Key      string  `json:"key"`
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotate   float64 `json:"rotate"`
	FontSize float64 `json:"size"`
}

// Packer computes non-overlapping positions for the items of a request.
type Packer interface {
	Pack(ctx context.Context, req layout.Request) ([]Placed, error)
}

// PackerFunc adapts a function to the Packer interface.
type PackerFunc func(ctx context.Context, req layout.Request) ([]Placed, error)

// Pack calls f(ctx, req).
func (f PackerFunc) Pack(ctx context.Context, req layout.Request) ([]Placed, error) {
	return f(ctx, req)
}
