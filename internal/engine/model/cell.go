package model

// Cell is a node in the diagram tree: a vertex (shape), an edge
// (connection), or a plain group/layer container.
//
// Structural relations (parent/children, source/target) are read-only
// here; they are mutated through the owning Model so the bookkeeping
// invariants hold.
type Cell struct {
	ID    string
	Value string

	Geometry *Geometry
	Style    *Style

	Visible   bool
	Collapsed bool

	Vertex bool
	Edge   bool

	parent   *Cell
	children []*Cell

	source *Cell
	target *Cell
}

// NewCell creates a visible cell with an empty style.
func NewCell(id string) *Cell {
	return &Cell{ID: id, Style: NewStyle(), Visible: true}
}

// NewVertex creates a vertex cell with the given label and geometry.
func NewVertex(id, value string, geometry *Geometry) *Cell {
	c := NewCell(id)
	c.Value = value
	c.Geometry = geometry
	c.Vertex = true
	return c
}

// NewEdge creates an edge cell with the given label. Terminals are
// attached through the model.
func NewEdge(id, value string) *Cell {
	c := NewCell(id)
	c.Value = value
	c.Edge = true
	return c
}

// Parent returns the cell's parent, or nil for the root and detached cells.
func (c *Cell) Parent() *Cell {
	return c.parent
}

// ChildCount returns the number of children.
func (c *Cell) ChildCount() int {
	return len(c.children)
}

// ChildAt returns the child at the given index, or nil if out of range.
func (c *Cell) ChildAt(index int) *Cell {
	if index < 0 || index >= len(c.children) {
		return nil
	}
	return c.children[index]
}

// Children returns a copy of the ordered child list.
func (c *Cell) Children() []*Cell {
	if len(c.children) == 0 {
		return nil
	}
	out := make([]*Cell, len(c.children))
	copy(out, c.children)
	return out
}

// ChildIndex returns the index of child in c's child list, or -1.
func (c *Cell) ChildIndex(child *Cell) int {
	for i, ch := range c.children {
		if ch == child {
			return i
		}
	}
	return -1
}

// Source returns the edge's source terminal.
func (c *Cell) Source() *Cell {
	return c.source
}

// Target returns the edge's target terminal.
func (c *Cell) Target() *Cell {
	return c.target
}

// Terminal returns the source or target terminal.
func (c *Cell) Terminal(source bool) *Cell {
	if source {
		return c.source
	}
	return c.target
}

// insertChild links child into c's child list at index and sets the
// parent pointer. The index must already be clamped by the caller.
func (c *Cell) insertChild(child *Cell, index int) {
	c.children = append(c.children, nil)
	copy(c.children[index+1:], c.children[index:])
	c.children[index] = child
	child.parent = c
}

// removeChild unlinks child from c's child list and clears the parent
// pointer. Returns the index it occupied, or -1 if it was not a child.
func (c *Cell) removeChild(child *Cell) int {
	i := c.ChildIndex(child)
	if i < 0 {
		return -1
	}
	c.children = append(c.children[:i], c.children[i+1:]...)
	child.parent = nil
	return i
}

// walk visits c and every descendant in depth-first order.
func (c *Cell) walk(visit func(*Cell)) {
	visit(c)
	for _, ch := range c.children {
		ch.walk(visit)
	}
}
