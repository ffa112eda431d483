// Package engine is the facade over the diagram document model: one
// document tree, its transactional change log, the undo/redo history,
// and the notification bus, wired together one instance per tree.
//
// Structural operations (AddCell, MoveCell, SetGeometry, ...) validate
// their arguments, construct the matching reversible change record, and
// run it through the transaction manager. Wrap related operations in
// BeginUpdate/EndUpdate to coalesce them into a single undo unit:
//
//	eng.BeginUpdate()
//	eng.MoveCell(a, b, 0)
//	eng.SetGeometry(a, model.NewGeometry(0, 0, 10, 10))
//	err := eng.EndUpdate()
//
// Collaborators subscribe to the txn topics on the engine's bus.
// Handlers reacting to txn.TopicBeforeCommit or txn.TopicCommit may call
// back into the engine synchronously; their changes extend the
// transaction under finalization, so one Undo reverses the user edit and
// the reactions together.
//
// The engine assumes a single logical editor thread (see package txn).
package engine
