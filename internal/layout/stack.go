package layout

import (
	"github.com/dshills/graphdoc/internal/engine"
	"github.com/dshills/graphdoc/internal/engine/change"
	"github.com/dshills/graphdoc/internal/engine/model"
	"github.com/dshills/graphdoc/internal/engine/txn"
	"github.com/dshills/graphdoc/internal/event"
)

// StyleKey is the style entry that marks a container as stack-managed.
const StyleKey = "layout"

// StyleStack is the StyleKey value the manager responds to.
const StyleStack = "stack"

// DefaultSpacing is the vertical gap applied between stacked children.
const DefaultSpacing = 8.0

// Manager restacks the children of layout=stack containers whenever a
// transaction touches them. Corrections are issued through the engine
// while the transaction is finalizing, so they join its change list.
type Manager struct {
	eng     *engine.Engine
	sub     *event.Subscription
	spacing float64
}

// Option configures a Manager.
type Option func(*Manager)

// WithSpacing sets the vertical gap between stacked children.
func WithSpacing(spacing float64) Option {
	return func(m *Manager) {
		if spacing >= 0 {
			m.spacing = spacing
		}
	}
}

// Attach subscribes a new Manager to the engine's before-commit
// notification.
func Attach(eng *engine.Engine, opts ...Option) (*Manager, error) {
	m := &Manager{eng: eng, spacing: DefaultSpacing}
	for _, opt := range opts {
		opt(m)
	}

	sub, err := eng.Subscribe(txn.TopicBeforeCommit, m.onBeforeCommit)
	if err != nil {
		return nil, err
	}
	m.sub = sub
	return m, nil
}

// Detach unsubscribes the manager. Further transactions commit without
// layout corrections.
func (m *Manager) Detach() error {
	if m.sub == nil {
		return nil
	}
	err := m.eng.Unsubscribe(m.sub)
	m.sub = nil
	return err
}

// Spacing reports the configured vertical gap.
func (m *Manager) Spacing() float64 {
	return m.spacing
}

func (m *Manager) onBeforeCommit(_, data any) error {
	tx, ok := data.(*txn.Transaction)
	if !ok {
		return nil
	}

	for _, parent := range m.affectedContainers(tx) {
		if err := m.restack(parent); err != nil {
			return err
		}
	}
	return nil
}

// affectedContainers collects, in first-touched order, the stack-managed
// parents the transaction's records reach.
func (m *Manager) affectedContainers(tx *txn.Transaction) []*model.Cell {
	seen := make(map[*model.Cell]bool)
	var order []*model.Cell
	add := func(c *model.Cell) {
		if c == nil || seen[c] || !isStack(c) {
			return
		}
		seen[c] = true
		order = append(order, c)
	}

	for _, rec := range tx.Changes() {
		switch c := rec.(type) {
		case *change.ChildChange:
			// Both memberships: the container the child left and the one
			// it joined.
			add(c.Parent)
			add(c.PreviousParent)
			add(c.Child.Parent())
		case *change.GeometryChange:
			add(c.Cell.Parent())
		case *change.VisibleChange:
			add(c.Cell.Parent())
		case *change.CollapseChange:
			add(c.Cell)
		case *change.StyleChange:
			add(c.Cell)
		}
	}
	return order
}

// restack lays the container's visible children out top to bottom,
// preserving each child's x and size. Children already in place elide to
// nothing, so a correction-triggered before-commit pass converges.
func (m *Manager) restack(parent *model.Cell) error {
	if parent.Collapsed {
		return nil
	}

	y := m.spacing
	for _, child := range parent.Children() {
		if !child.Visible || child.Geometry == nil {
			continue
		}
		g := child.Geometry
		if g.Y != y {
			moved := g.Clone()
			moved.Y = y
			if err := m.eng.SetGeometry(child, moved); err != nil {
				return err
			}
		}
		y += g.Height + m.spacing
	}
	return nil
}

func isStack(c *model.Cell) bool {
	if c == nil || c.Style == nil {
		return false
	}
	v, ok := c.Style.Get(StyleKey)
	return ok && v == StyleStack
}
