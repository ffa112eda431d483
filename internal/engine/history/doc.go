// Package history provides the undo/redo ledger for the transaction log.
//
// Finalized transactions land on the past stack; Undo replays one in
// reverse through the transaction manager and moves it to the future
// stack, Redo does the opposite. Because every change record is its own
// inverse (execute twice returns the tree to its pre-mutation state),
// undo and redo are replays of the same records, not a separate code
// path.
//
// Pushing a new transaction clears the future stack; the timeline does
// not branch. The past stack is bounded (WithMaxEntries); eviction drops
// the oldest entries and never touches the future stack. Undoing or
// redoing on an empty stack reports a benign ErrNothingToUndo /
// ErrNothingToRedo rather than failing.
package history
