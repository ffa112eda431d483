package change

import (
	"github.com/dshills/graphdoc/internal/engine/model"
)

// RootChange replaces the model's root cell.
type RootChange struct {
	Model *model.Model

	// Root is the root applied by the next Execute; Previous is the root
	// in effect after the last Execute.
	Root     *model.Cell
	Previous *model.Cell
}

// NewRootChange creates a root replacement. The current root is captured
// as the previous state.
func NewRootChange(m *model.Model, root *model.Cell) *RootChange {
	return &RootChange{Model: m, Root: root, Previous: m.Root()}
}

// Kind returns KindRoot.
func (c *RootChange) Kind() Kind { return KindRoot }

// Execute swaps the model root. All ancestry derived from the old root is
// invalid afterwards; collaborators re-anchor via the commit notification.
func (c *RootChange) Execute() {
	applied := c.Root
	c.Previous = c.Model.SwapRoot(applied)
	c.Root, c.Previous = c.Previous, applied
}

// ChildChange moves a cell between parents, into the tree, or out of it
// (nil parent). Both the old and new parent's child lists are updated
// atomically with the child's parent pointer.
type ChildChange struct {
	Model *model.Model
	Child *model.Cell

	// Parent/Index are applied by the next Execute; Previous*/ hold the
	// membership in effect after the last Execute.
	Parent         *model.Cell
	Index          int
	PreviousParent *model.Cell
	PreviousIndex  int
}

// NewChildChange creates a membership change targeting the given parent
// and index. The child's current membership is captured as the previous
// state; a detached child records a nil previous parent.
func NewChildChange(m *model.Model, child, parent *model.Cell, index int) *ChildChange {
	cc := &ChildChange{Model: m, Child: child, Parent: parent, Index: index}
	if p := child.Parent(); p != nil {
		cc.PreviousParent = p
		cc.PreviousIndex = p.ChildIndex(child)
	} else {
		cc.PreviousIndex = -1
	}
	return cc
}

// Kind returns KindChild.
func (c *ChildChange) Kind() Kind { return KindChild }

// Execute moves the child to the target parent at the target index
// (clamped to the parent's child count) and flips the record.
func (c *ChildChange) Execute() {
	prevParent, prevIndex := c.Model.UnlinkChild(c.Child)
	appliedParent, appliedIndex := c.Parent, c.Index
	if appliedParent != nil {
		appliedIndex = c.Model.LinkChild(c.Child, appliedParent, appliedIndex)
	}
	c.Parent, c.Index = prevParent, prevIndex
	c.PreviousParent, c.PreviousIndex = appliedParent, appliedIndex
}

// TerminalChange reconnects one end of an edge.
type TerminalChange struct {
	Model *model.Model
	Edge  *model.Cell

	// Source selects which end is changed.
	Source bool

	Terminal *model.Cell
	Previous *model.Cell
}

// NewTerminalChange creates a terminal reconnection; a nil terminal
// disconnects the end. The current terminal is captured as the previous
// state.
func NewTerminalChange(m *model.Model, edge, terminal *model.Cell, source bool) *TerminalChange {
	return &TerminalChange{
		Model:    m,
		Edge:     edge,
		Source:   source,
		Terminal: terminal,
		Previous: edge.Terminal(source),
	}
}

// Kind returns KindTerminal.
func (c *TerminalChange) Kind() Kind { return KindTerminal }

// Execute reconnects the end and flips the record.
func (c *TerminalChange) Execute() {
	applied := c.Terminal
	c.Previous = c.Model.SwapTerminal(c.Edge, applied, c.Source)
	c.Terminal, c.Previous = c.Previous, applied
}

// GeometryChange replaces a cell's geometry.
type GeometryChange struct {
	Cell *model.Cell

	Geometry *model.Geometry
	Previous *model.Geometry
}

// NewGeometryChange creates a geometry replacement, capturing the current
// geometry as the previous state.
func NewGeometryChange(cell *model.Cell, geometry *model.Geometry) *GeometryChange {
	return &GeometryChange{Cell: cell, Geometry: geometry, Previous: cell.Geometry}
}

// Kind returns KindGeometry.
func (c *GeometryChange) Kind() Kind { return KindGeometry }

// Execute applies the stored geometry and flips the record.
func (c *GeometryChange) Execute() {
	applied := c.Geometry
	c.Previous = c.Cell.Geometry
	c.Cell.Geometry = applied
	c.Geometry, c.Previous = c.Previous, applied
}

// VisibleChange toggles a cell's visibility flag.
type VisibleChange struct {
	Cell *model.Cell

	Visible  bool
	Previous bool
}

// NewVisibleChange creates a visibility change, capturing the current
// flag as the previous state.
func NewVisibleChange(cell *model.Cell, visible bool) *VisibleChange {
	return &VisibleChange{Cell: cell, Visible: visible, Previous: cell.Visible}
}

// Kind returns KindVisible.
func (c *VisibleChange) Kind() Kind { return KindVisible }

// Execute applies the stored flag and flips the record.
func (c *VisibleChange) Execute() {
	applied := c.Visible
	c.Previous = c.Cell.Visible
	c.Cell.Visible = applied
	c.Visible, c.Previous = c.Previous, applied
}

// CollapseChange toggles a cell's collapsed flag.
type CollapseChange struct {
	Cell *model.Cell

	Collapsed bool
	Previous  bool
}

// NewCollapseChange creates a collapse change, capturing the current flag
// as the previous state.
func NewCollapseChange(cell *model.Cell, collapsed bool) *CollapseChange {
	return &CollapseChange{Cell: cell, Collapsed: collapsed, Previous: cell.Collapsed}
}

// Kind returns KindCollapse.
func (c *CollapseChange) Kind() Kind { return KindCollapse }

// Execute applies the stored flag and flips the record.
func (c *CollapseChange) Execute() {
	applied := c.Collapsed
	c.Previous = c.Cell.Collapsed
	c.Cell.Collapsed = applied
	c.Collapsed, c.Previous = c.Previous, applied
}

// StyleChange replaces a cell's style.
type StyleChange struct {
	Cell *model.Cell

	Style    *model.Style
	Previous *model.Style
}

// NewStyleChange creates a style replacement, capturing the current style
// as the previous state.
func NewStyleChange(cell *model.Cell, style *model.Style) *StyleChange {
	return &StyleChange{Cell: cell, Style: style, Previous: cell.Style}
}

// Kind returns KindStyle.
func (c *StyleChange) Kind() Kind { return KindStyle }

// Execute applies the stored style and flips the record.
func (c *StyleChange) Execute() {
	applied := c.Style
	c.Previous = c.Cell.Style
	c.Cell.Style = applied
	c.Style, c.Previous = c.Previous, applied
}

// ValueChange replaces a cell's user label.
type ValueChange struct {
	Cell *model.Cell

	Value    string
	Previous string
}

// NewValueChange creates a value replacement, capturing the current value
// as the previous state.
func NewValueChange(cell *model.Cell, value string) *ValueChange {
	return &ValueChange{Cell: cell, Value: value, Previous: cell.Value}
}

// Kind returns KindValue.
func (c *ValueChange) Kind() Kind { return KindValue }

// Execute applies the stored value and flips the record.
func (c *ValueChange) Execute() {
	applied := c.Value
	c.Previous = c.Cell.Value
	c.Cell.Value = applied
	c.Value, c.Previous = c.Previous, applied
}
