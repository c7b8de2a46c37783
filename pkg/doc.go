// Package pkg provides the libraries behind the wordcloud editor and CLI.
//
// # Overview
//
// A word cloud is an ordered list of weighted words laid out on a fixed
// canvas, with font size proportional to weight. The pkg directory is
// organized by stage:
//
//  1. [words] and [cloud] - The word list and the cloud settings
//  2. [layout] and [pack] - Sizing words and placing them without overlap
//  3. [render] - Reconciling passes into enter/update/exit operations and
//     writing scenes as SVG or JSON
//  4. [pipeline] - Orchestration (words → layout → pack → render) with caching
//  5. [io], [cache], [session] - Word files, result caching, per-visitor state
//
// # Architecture
//
// The typical data flow:
//
//	Word list + settings
//	         ↓
//	    [layout] package (truncate, scale, pick rotations)
//	         ↓
//	    [pack] package (spiral placement, stale-pass discard)
//	         ↓
//	    [render] package (reconcile, SVG/JSON)
//
// # Quick Start
//
// Render a word file to SVG:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/wordcloud/pkg/io"
//	    "github.com/matzehuels/wordcloud/pkg/pipeline"
//	)
//
//	doc, _ := io.ImportFile("words.toml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//	res, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Words:  doc.Words,
//	    Config: doc.Settings,
//	    Seed:   42,
//	})
//	svg := res.Artifacts[pipeline.FormatSVG]
//
// Interactive editing, where every change re-lays the cloud and only the
// difference is animated, lives in internal/editor and builds on the same
// packages through [pack.Dispatcher] and [render.Reconciler].
//
// # Supporting Packages
//
//   - [errors]: Error codes separating user input mistakes from failures
//   - [fonts]: The embedded measurement font
//   - [observability]: Hooks for layout and editor events
//   - [buildinfo]: Version information stamped at build time
//
// [words]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/words
// [cloud]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cloud
// [layout]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/layout
// [pack]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/pack
// [render]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/session
// [errors]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/errors
// [fonts]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/fonts
// [observability]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/buildinfo
// [pack.Dispatcher]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/pack#Dispatcher
// [render.Reconciler]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/render#Reconciler
package pkg
