// Package words holds the ordered word list a cloud is drawn from.
//
// A [List] is the editor's source of truth: an ordered sequence of [Entry]
// values whose order is the display order of the CRUD list and, through the
// cloud's word limit, the priority order for layout. The list is mutated only
// through four operations:
//
//   - [List.Append] adds an entry at the end
//   - [List.RemoveAt] deletes the entry at an index
//   - [List.Move] relocates an entry from one index to another
//   - [List.ReplaceAll] swaps in a whole new sequence
//
// Each entry carries a synthetic ID assigned when it enters the list. Two
// entries with the same text are still distinct glyphs in the rendered cloud
// because reconciliation keys on ID, never on text.
//
// List is not safe for concurrent use; the editor serializes access.
package words
