// Package render turns packer output into a live, animated glyph scene.
//
// # Overview
//
// A [Reconciler] owns the set of glyphs currently on screen. Each layout pass
// hands it the packer's [pack.Placed] words; it diffs them against the live
// set by key and returns the ordered [Op] list a client needs to animate the
// change:
//
//   - Enter: a new key. The glyph appears at its target position with font
//     size 1 and grows to its target size over [EnterDuration].
//   - Update: a known key whose position, size, rotation or fill changed.
//     Animates to the new values over [UpdateDuration].
//   - Exit: a key no longer placed. Fades to near-zero opacity and size over
//     [ExitDuration], then is removed.
//
// Exits come first, in previous display order, followed by enters and updates
// in placed order. Updates whose target equals the current glyph are omitted,
// so reconciling the same placement twice yields no operations.
//
// # Modes
//
// [ModeIncremental] preserves glyphs across passes. [ModeFullRedraw] tears the
// whole scene down on every pass (an Exit for every live glyph) and enters
// every placed word afresh. The mode is fixed when the reconciler is created.
//
// # Colors
//
// Fill colors come from the 20-color categorical [Palette], indexed by a
// word's position in the current placement. A word can change color between
// passes when its position in the placement shifts.
//
// # Sinks
//
// [RenderSVG] writes a standalone SVG document of a [Scene]; [RenderJSON]
// encodes the scene for tooling; [EncodeOps] produces the wire form of an op
// batch streamed to browsers.
package render
