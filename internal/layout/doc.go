// Package layout runs automatic layouts as a transaction participant.
//
// The stack manager subscribes to the before-commit notification and
// restacks the children of any container styled layout=stack that a
// pending transaction touched. Its corrective geometry changes extend
// the same transaction, so one undo reverts the user's edit and the
// layout's response together.
package layout
