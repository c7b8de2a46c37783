package render

import (
	"encoding/json"
	"fmt"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	seed   uint64
	seeded bool
	mode   string
}

// WithJSONSeed records the packing seed, enabling reproducible re-rendering.
func WithJSONSeed(seed uint64) JSONOption {
	return func(r *jsonRenderer) { r.seed = seed; r.seeded = true }
}

// WithJSONMode records the reconciliation mode.
func WithJSONMode(m Mode) JSONOption { return func(r *jsonRenderer) { r.mode = m.String() } }

type jsonScene struct {
	Scene
	Seed *uint64 `json:"seed,omitempty"`
	Mode string  `json:"mode,omitempty"`
}

// RenderJSON encodes s as indented JSON.
func RenderJSON(s Scene, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonScene{Scene: s, Mode: r.mode}
	if out.Glyphs == nil {
		out.Glyphs = []Glyph{}
	}
	if r.seeded {
		out.Seed = &r.seed
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return data, nil
}

type jsonOp struct {
	Kind       OpKind `json:"kind"`
	Key        string `json:"key"`
	From       Glyph  `json:"from"`
	To         Glyph  `json:"to"`
	DurationMS int64  `json:"duration_ms"`
}

// EncodeOps encodes a batch of ops as compact JSON for streaming.
func EncodeOps(generation uint64, ops []Op) ([]byte, error) {
	wire := struct {
		Generation uint64   `json:"generation"`
		Ops        []jsonOp `json:"ops"`
	}{Generation: generation, Ops: make([]jsonOp, len(ops))}
	for i, op := range ops {
		wire.Ops[i] = jsonOp{
			Kind:       op.Kind,
			Key:        op.Key,
			From:       op.From,
			To:         op.To,
			DurationMS: op.Duration.Milliseconds(),
		}
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode ops: %w", err)
	}
	return data, nil
}
