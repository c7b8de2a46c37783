// Package pack places sized words on a canvas without overlap.
//
// # Packer
//
// [Packer] is the packing capability the rest of the pipeline depends on:
// given a [layout.Request] it returns one [Placed] word per item it managed to
// fit. Items that cannot be placed are dropped silently; callers must accept a
// result shorter than the request.
//
// [Spiral] is the built-in implementation. Words are placed largest first.
// For each word it measures the text with the embedded font, takes the
// axis-aligned box of the rotated text plus padding, and walks an Archimedean
// spiral outward from the canvas center (with a random start phase and
// direction) until the box fits inside the canvas without intersecting any
// placed box. A word whose spiral leaves the canvas diagonal is dropped.
//
// Coordinates of [Placed] are relative to the canvas center and name the text
// anchor: the point that an SVG <text text-anchor="middle"> element is
// translated to before rotation.
//
// # Dispatcher
//
// [Dispatcher] runs packs on a goroutine. Every dispatch is stamped with a
// monotonically increasing generation; a completion is delivered only if its
// generation is still the latest one issued. Results from superseded passes
// are logged and discarded, so a slow pass can never overwrite a newer one.
package pack
