// Package layout turns a word list and a cloud configuration into a packing
// request.
//
// # Overview
//
// A [Request] is the exact input the packer consumes: one [Item] per word with
// its resolved font size, the canvas dimensions, padding, and a rotation
// function. Requests are built fresh for every layout pass and are never
// mutated afterwards.
//
// # Truncation
//
// [Build] keeps the first Config.WordLimit entries. Display order is priority:
// entries are never re-sorted by weight, so moving a word to the top of the
// list is how a user guarantees it is drawn.
//
// # Font Sizes
//
// Weights are mapped linearly from [minWeight, maxWeight] of the truncated set
// onto [MinFontSize, MaxFontSize]:
//
//	size = MinFontSize + (w - minWeight) / (maxWeight - minWeight) * (MaxFontSize - MinFontSize)
//
// The result is clamped to the font range. When every weight is equal the
// mapping degenerates and every word gets MaxFontSize.
//
// # Rotation
//
// [RotationFunc] resolves the configured mode:
//
//   - none: always 0
//   - random: 0 or 90, sampled independently for every call
//   - fixed: always Config.FixedDegree
//
// Because the function is sampled by the packer once per word per pass, random
// rotations change on every re-layout.
package layout
