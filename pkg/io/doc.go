// Package io reads and writes word-list files: a cloud configuration plus an
// ordered list of weighted words.
//
// # Overview
//
// Word-list files feed the batch renderer (wordcloud render), the terminal
// editor (wordcloud edit), and the web editor's load action. Two encodings are
// accepted:
//
//   - TOML, the canonical format written by [WriteTOML]
//   - JSON, useful for tooling that already speaks JSON
//
// # TOML Format
//
//	[settings]
//	width = 600
//	height = 500
//	word_limit = 15
//	min_font_size = 20
//	max_font_size = 70
//	rotation = "fixed"
//	fixed_degree = 45
//
//	[[word]]
//	text = "This"
//	weight = 50
//
//	[[word]]
//	text = "is"
//	weight = 45
//
// The settings table is optional; missing keys take the defaults from
// [cloud.Config.SetDefaults]. Word order in the file is display order, which is
// also the priority used when the cloud truncates to its word limit.
//
// # JSON Format
//
//	{
//	  "settings": {"width": 600, "rotation": "random"},
//	  "words": [{"text": "This", "weight": 50}]
//	}
//
// # Validation
//
// Every reader decodes, applies settings defaults, and then validates both the
// settings and each word. Decode failures and unknown TOML keys return an
// INVALID_FORMAT error; bad settings return INVALID_CONFIG; bad words return
// VALIDATION with the offending position in the message. Entry IDs are never
// stored in files, so decoded entries carry an empty ID and the word list
// assigns fresh ones on load.
package io
