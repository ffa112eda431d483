// Package change defines the reversible change records that represent
// every mutation of the document tree.
//
// Each record is a closed variant of the Change interface, one per
// mutable facet: root replacement, child membership, edge terminals,
// geometry, visibility, collapse state, style, and value. A record is
// constructed before the tree is touched, capturing the pre-mutation
// state; Execute applies the stored new state and swaps it with the
// previous state, so executing the same record twice returns the tree to
// where it started (involution). Undo is therefore a structural reversal,
// not a separate code path.
//
// Records carry a Kind tag that doubles as the discriminant for the
// codec registry (package codec).
package change
