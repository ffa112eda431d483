package engine

import "errors"

// Errors returned by engine operations. Structural errors are detected
// before any mutation, so a rejected operation leaves the tree untouched.
var (
	// ErrNilCell indicates a required cell argument was nil.
	ErrNilCell = errors.New("cell is nil")

	// ErrCellNotInModel indicates the cell is not reachable from the root.
	ErrCellNotInModel = errors.New("cell is not in the model")

	// ErrCellIsRoot indicates a structural operation targeted the root cell.
	ErrCellIsRoot = errors.New("cell is the root")

	// ErrWouldCreateCycle indicates a child change that would make a cell
	// its own ancestor.
	ErrWouldCreateCycle = errors.New("change would create a cycle")

	// ErrRootElsewhere indicates a root replacement with a cell that is
	// still attached to a tree.
	ErrRootElsewhere = errors.New("cell is already rooted elsewhere")

	// ErrDuplicateID indicates an added cell's ID is already taken by a
	// different cell.
	ErrDuplicateID = errors.New("duplicate cell ID")

	// ErrNotAnEdge indicates a terminal change on a non-edge cell.
	ErrNotAnEdge = errors.New("cell is not an edge")
)
