// Package txn implements the transactional change log that sits under
// every mutation of the document tree.
//
// A Manager owns a nesting counter and the in-flight Transaction. Begin
// and End bracket edits at any depth; only the outermost End finalizes:
// it fires the before-commit notification (where collaborators may extend
// the same transaction), pushes the transaction to the history sink,
// fires the commit notification with the finalized change list, and
// fires the end-edit notification. Execute records a change into the
// open transaction, opening an implicit top-level transaction when none
// is open.
//
// # Notification order
//
// For one top-level transaction the bus sees, in order:
//
//	txn.begin (per nesting entry) → txn.execute (per change)
//	→ txn.end (per nesting exit) → txn.before-commit → txn.commit
//	→ txn.end-edit
//
// # Re-entrancy
//
// Handlers invoked during finalization may call Begin, Execute, and End
// on the same call stack. The finalizing flag makes those calls extend
// the transaction under finalization instead of opening a second one, so
// a layout reaction is captured in the same undo unit as the edit that
// triggered it. This is the central correctness property of the package.
//
// There is no abort: once a change has executed, the only way back is to
// execute its inverse. Partially-built transactions always leave the tree
// consistent with the changes already applied.
package txn
