package engine

import (
	"github.com/google/uuid"

	"github.com/dshills/graphdoc/internal/engine/change"
	"github.com/dshills/graphdoc/internal/engine/history"
	"github.com/dshills/graphdoc/internal/engine/model"
	"github.com/dshills/graphdoc/internal/engine/txn"
	"github.com/dshills/graphdoc/internal/event"
)

// Engine owns one document tree and the machinery around it: the
// transaction manager, the undo/redo history, and the notification bus.
// One engine per tree; components are not shared across engines.
type Engine struct {
	model   *model.Model
	bus     *event.Bus
	history *history.History
	txn     *txn.Manager

	// Configuration
	maxUndoEntries int
	keepEmpty      bool
	historyOff     bool
	initRoot       *model.Cell
}

// nullSink discards committed transactions when history is disabled.
type nullSink struct{}

func (nullSink) Push(*txn.Transaction) {}

// New creates an engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.model = model.New()
	if e.initRoot != nil {
		e.model.SwapRoot(e.initRoot)
	}

	e.bus = event.NewBus()

	histOpts := []history.Option{history.WithMaxEntries(e.maxUndoEntries)}
	if e.keepEmpty {
		histOpts = append(histOpts, history.WithKeepEmpty())
	}
	e.history = history.New(histOpts...)

	var sink txn.Sink = e.history
	if e.historyOff {
		sink = nullSink{}
	}
	e.txn = txn.NewManager(e.bus, sink)

	return e
}

// ============================================================================
// Read Access
// ============================================================================

// Model returns the document tree for read access. Collaborators must
// not mutate it directly; mutations go through the engine's operations.
func (e *Engine) Model() *model.Model {
	return e.model
}

// Root returns the current root cell.
func (e *Engine) Root() *model.Cell {
	return e.model.Root()
}

// CellByID looks up a cell in the model's ID index.
func (e *Engine) CellByID(id string) (*model.Cell, bool) {
	return e.model.CellByID(id)
}

// ============================================================================
// Transaction Protocol
// ============================================================================

// BeginUpdate enters an update level. Never fails.
func (e *Engine) BeginUpdate() {
	e.txn.Begin()
}

// EndUpdate exits an update level. The outermost exit commits the open
// transaction and returns any listener failures; the commit itself is
// never unwound by them.
func (e *Engine) EndUpdate() error {
	return e.txn.End()
}

// Update runs fn inside a BeginUpdate/EndUpdate pair. The level is
// closed even if fn panics, so a panicking callback cannot leave the
// engine stuck in an open update.
func (e *Engine) Update(fn func() error) (err error) {
	e.BeginUpdate()
	defer func() {
		eerr := e.EndUpdate()
		if err == nil {
			err = eerr
		}
	}()
	return fn()
}

// InUpdate reports whether an update is open.
func (e *Engine) InUpdate() bool {
	return e.txn.InUpdate()
}

// Execute applies a change record through the transaction log. Callers
// normally use the structural operations below, which validate before
// constructing the record.
func (e *Engine) Execute(c change.Change) error {
	return e.txn.Execute(c)
}

// Subscribe registers a handler for a transaction topic on the engine's
// bus (see package txn for topics and payloads).
func (e *Engine) Subscribe(topic event.Topic, fn event.HandlerFunc) (*event.Subscription, error) {
	return e.bus.Subscribe(topic, fn)
}

// Unsubscribe removes a subscription.
func (e *Engine) Unsubscribe(sub *event.Subscription) error {
	return e.bus.Unsubscribe(sub)
}

// ============================================================================
// Structural Operations
// ============================================================================

// SetRoot replaces the root cell and returns the previous root. The new
// root must be detached; all ancestry cached off the old root is invalid
// afterwards, which collaborators observe through the commit
// notification.
func (e *Engine) SetRoot(root *model.Cell) (*model.Cell, error) {
	if root == nil {
		return nil, ErrNilCell
	}
	if root.Parent() != nil {
		return nil, ErrRootElsewhere
	}
	previous := e.model.Root()
	if root == previous {
		return previous, nil
	}
	if err := e.txn.Execute(change.NewRootChange(e.model, root)); err != nil {
		return previous, err
	}
	return previous, nil
}

// AddCell inserts a detached cell (and its subtree) under parent at
// index; index is clamped to the child count, and a nil parent means the
// root. A cell with an empty ID is assigned a generated one.
func (e *Engine) AddCell(cell, parent *model.Cell, index int) (*model.Cell, error) {
	if cell == nil {
		return nil, ErrNilCell
	}
	if parent == nil {
		parent = e.model.Root()
	}
	if !e.model.Contains(parent) {
		return nil, ErrCellNotInModel
	}
	if e.model.IsAncestor(cell, parent) {
		return nil, ErrWouldCreateCycle
	}
	if cell.ID == "" {
		cell.ID = uuid.NewString()
	} else if existing, ok := e.model.CellByID(cell.ID); ok && existing != cell {
		return nil, ErrDuplicateID
	}
	if err := e.txn.Execute(change.NewChildChange(e.model, cell, parent, index)); err != nil {
		return cell, err
	}
	return cell, nil
}

// MoveCell reparents a cell within the model. Moving a cell under itself
// or one of its descendants is rejected before any mutation. A move to
// the same parent and index is still recorded so listeners observe it.
func (e *Engine) MoveCell(cell, parent *model.Cell, index int) error {
	if cell == nil || parent == nil {
		return ErrNilCell
	}
	if cell == e.model.Root() {
		return ErrCellIsRoot
	}
	if !e.model.Contains(cell) || !e.model.Contains(parent) {
		return ErrCellNotInModel
	}
	if e.model.IsAncestor(cell, parent) {
		return ErrWouldCreateCycle
	}
	return e.txn.Execute(change.NewChildChange(e.model, cell, parent, index))
}

// RemoveCell detaches a cell and its subtree from the model.
func (e *Engine) RemoveCell(cell *model.Cell) error {
	if cell == nil {
		return ErrNilCell
	}
	if cell == e.model.Root() {
		return ErrCellIsRoot
	}
	if !e.model.Contains(cell) {
		return ErrCellNotInModel
	}
	return e.txn.Execute(change.NewChildChange(e.model, cell, nil, 0))
}

// SetTerminal connects one end of an edge to a terminal cell; a nil
// terminal disconnects the end. Reconnecting to the current terminal is
// elided.
func (e *Engine) SetTerminal(edge, terminal *model.Cell, source bool) error {
	if edge == nil {
		return ErrNilCell
	}
	if !edge.Edge {
		return ErrNotAnEdge
	}
	if !e.model.Contains(edge) {
		return ErrCellNotInModel
	}
	if terminal != nil && !e.model.Contains(terminal) {
		return ErrCellNotInModel
	}
	if edge.Terminal(source) == terminal {
		return nil
	}
	return e.txn.Execute(change.NewTerminalChange(e.model, edge, terminal, source))
}

// ============================================================================
// Facet Operations
// ============================================================================
//
// Setters where the new state equals the current state record nothing,
// to avoid needless undo entries. Child membership changes are never
// elided (see MoveCell).

// SetGeometry replaces a cell's geometry.
func (e *Engine) SetGeometry(cell *model.Cell, geometry *model.Geometry) error {
	if cell == nil {
		return ErrNilCell
	}
	if !e.model.Contains(cell) {
		return ErrCellNotInModel
	}
	if cell.Geometry.Equal(geometry) {
		return nil
	}
	return e.txn.Execute(change.NewGeometryChange(cell, geometry))
}

// SetVisible sets a cell's visibility flag.
func (e *Engine) SetVisible(cell *model.Cell, visible bool) error {
	if cell == nil {
		return ErrNilCell
	}
	if !e.model.Contains(cell) {
		return ErrCellNotInModel
	}
	if cell.Visible == visible {
		return nil
	}
	return e.txn.Execute(change.NewVisibleChange(cell, visible))
}

// SetCollapsed sets a cell's collapsed flag.
func (e *Engine) SetCollapsed(cell *model.Cell, collapsed bool) error {
	if cell == nil {
		return ErrNilCell
	}
	if !e.model.Contains(cell) {
		return ErrCellNotInModel
	}
	if cell.Collapsed == collapsed {
		return nil
	}
	return e.txn.Execute(change.NewCollapseChange(cell, collapsed))
}

// SetStyle replaces a cell's style.
func (e *Engine) SetStyle(cell *model.Cell, style *model.Style) error {
	if cell == nil {
		return ErrNilCell
	}
	if !e.model.Contains(cell) {
		return ErrCellNotInModel
	}
	if cell.Style.Equal(style) {
		return nil
	}
	return e.txn.Execute(change.NewStyleChange(cell, style))
}

// SetValue replaces a cell's user label.
func (e *Engine) SetValue(cell *model.Cell, value string) error {
	if cell == nil {
		return ErrNilCell
	}
	if !e.model.Contains(cell) {
		return ErrCellNotInModel
	}
	if cell.Value == value {
		return nil
	}
	return e.txn.Execute(change.NewValueChange(cell, value))
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverses the most recent committed transaction. An empty history
// returns history.ErrNothingToUndo and leaves the tree unchanged.
func (e *Engine) Undo() error {
	return e.history.Undo(e.txn)
}

// Redo reapplies the most recently undone transaction.
func (e *Engine) Redo() error {
	return e.history.Redo(e.txn)
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of undoable transactions.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of redoable transactions.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// ClearHistory drops all undo/redo history.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}
