package model

// RootID is the ID of the root cell a new model starts with.
const RootID = "root"

// Model owns a single cell tree and its ID index.
//
// The mutators here are raw: they maintain structural consistency (parent
// pointers, child lists, the ID index) but perform no validation and emit
// no notifications. Change records drive them; callers go through the
// engine facade, which validates first.
type Model struct {
	root  *Cell
	cells map[string]*Cell
}

// New creates a model with a fresh root cell.
func New() *Model {
	m := &Model{cells: make(map[string]*Cell)}
	m.SwapRoot(NewCell(RootID))
	return m
}

// Root returns the current root cell.
func (m *Model) Root() *Cell {
	return m.root
}

// CellByID looks up a cell in the ID index.
func (m *Model) CellByID(id string) (*Cell, bool) {
	c, ok := m.cells[id]
	return c, ok
}

// Contains reports whether cell is reachable from the root.
func (m *Model) Contains(cell *Cell) bool {
	for c := cell; c != nil; c = c.parent {
		if c == m.root {
			return true
		}
	}
	return false
}

// IsAncestor reports whether ancestor appears in cell's parent chain.
// A cell is considered its own ancestor.
func (m *Model) IsAncestor(ancestor, cell *Cell) bool {
	if ancestor == nil || cell == nil {
		return false
	}
	for c := cell; c != nil; c = c.parent {
		if c == ancestor {
			return true
		}
	}
	return false
}

// SwapRoot replaces the root cell and returns the previous root.
// The old subtree is unregistered from the ID index, the new one
// registered; any ancestry cached off the old root is thereby invalid.
func (m *Model) SwapRoot(root *Cell) *Cell {
	previous := m.root
	if previous != nil {
		m.unregister(previous)
	}
	m.root = root
	if root != nil {
		root.parent = nil
		m.register(root)
	}
	return previous
}

// LinkChild inserts child into parent's child list at index and returns
// the index actually used. A negative index appends, and an index past
// the end is clamped to it. If the parent is in the model, the child's
// subtree is registered in the ID index.
func (m *Model) LinkChild(child, parent *Cell, index int) int {
	if index < 0 {
		index = len(parent.children)
	}
	if index > len(parent.children) {
		index = len(parent.children)
	}
	parent.insertChild(child, index)
	if m.Contains(parent) {
		m.register(child)
	}
	return index
}

// UnlinkChild detaches child from its parent and returns the previous
// parent and index. Detaching a cell with no parent returns (nil, -1).
// If the child was in the model, its subtree leaves the ID index.
func (m *Model) UnlinkChild(child *Cell) (*Cell, int) {
	parent := child.parent
	if parent == nil {
		return nil, -1
	}
	inModel := m.Contains(child)
	index := parent.removeChild(child)
	if inModel {
		m.unregister(child)
	}
	return parent, index
}

// SwapTerminal sets an edge's source or target terminal and returns the
// previous terminal.
func (m *Model) SwapTerminal(edge, terminal *Cell, source bool) *Cell {
	var previous *Cell
	if source {
		previous = edge.source
		edge.source = terminal
	} else {
		previous = edge.target
		edge.target = terminal
	}
	return previous
}

// register adds cell and its descendants to the ID index.
func (m *Model) register(cell *Cell) {
	cell.walk(func(c *Cell) {
		if c.ID != "" {
			m.cells[c.ID] = c
		}
	})
}

// unregister removes cell and its descendants from the ID index.
func (m *Model) unregister(cell *Cell) {
	cell.walk(func(c *Cell) {
		if c.ID != "" && m.cells[c.ID] == c {
			delete(m.cells, c.ID)
		}
	})
}
