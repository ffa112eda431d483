// Package model implements the diagram document tree.
//
// The tree is pure data: cells with geometry, style, visibility, and
// parent/child plus source/target relations. It has no transaction
// awareness; the structural mutators (LinkChild, UnlinkChild, SwapRoot,
// SwapTerminal) are meant to be driven by change records, which pair
// every mutation with its inverse.
//
// # Cells
//
// A Cell is either a vertex (a shape with geometry) or an edge (a
// connection with optional source/target terminals). Cells form a single
// tree rooted at the model's root cell. The parent pointer and the
// parent's child list are kept mutually consistent by the Model's
// mutators; cycles in the parent chain are never created by them.
//
// # Identity
//
// Every cell in a model carries a stable string ID. The model maintains
// an ID index (CellByID) that follows cells as subtrees are linked and
// unlinked.
//
// # Invariants
//
//   - Exactly one root per model; the root has no parent.
//   - cell.Parent() == p if and only if p's child list contains cell.
//   - The ID index contains exactly the cells reachable from the root.
package model
