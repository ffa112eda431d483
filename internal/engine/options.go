package engine

import (
	"github.com/dshills/graphdoc/internal/engine/model"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = 1000
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithRoot sets the initial root cell. The cell must be detached; an
// attached cell is ignored and the default root is kept.
func WithRoot(root *model.Cell) Option {
	return func(e *Engine) {
		if root != nil && root.Parent() == nil {
			e.initRoot = root
		}
	}
}

// WithMaxUndoEntries bounds the undo history.
func WithMaxUndoEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxUndoEntries = n
		}
	}
}

// WithKeepEmptyTransactions records committed transactions even when they
// carry no change records. By default empty transactions are discarded
// before reaching the undo history.
func WithKeepEmptyTransactions() Option {
	return func(e *Engine) {
		e.keepEmpty = true
	}
}

// WithHistoryDisabled commits transactions without recording them, for
// bulk loads and other callers that never undo. Undo and redo report
// empty history.
func WithHistoryDisabled() Option {
	return func(e *Engine) {
		e.historyOff = true
	}
}
