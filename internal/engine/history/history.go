package history

import (
	"errors"
	"sync"

	"github.com/dshills/graphdoc/internal/engine/txn"
)

// Common errors for history operations. Both describe benign conditions:
// callers asked for a reversal that does not exist.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the past stack when no option overrides it.
const DefaultMaxEntries = 1000

// Replayer re-executes a finalized transaction. The transaction manager
// implements it; History stays a pure ledger.
type Replayer interface {
	Replay(tx *txn.Transaction, reverse bool) error
}

// History is the two-stack ledger of finalized transactions. It
// implements txn.Sink, so the transaction manager pushes every committed
// transaction here.
type History struct {
	mu sync.Mutex

	past   []*txn.Transaction
	future []*txn.Transaction

	maxEntries int
	keepEmpty  bool
}

// Option configures a History.
type Option func(*History)

// WithMaxEntries bounds the past stack; oldest entries are evicted first.
// Values <= 0 leave the default in place.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.maxEntries = n
		}
	}
}

// WithKeepEmpty records transactions that carry no change records.
// The default discards them before push.
func WithKeepEmpty() Option {
	return func(h *History) {
		h.keepEmpty = true
	}
}

// New creates a history ledger.
func New(opts ...Option) *History {
	h := &History{maxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Push appends a committed transaction to the past stack and clears the
// future stack: any new edit invalidates redo (branching is not
// supported). The size bound evicts the oldest past entries; it never
// touches future.
func (h *History) Push(tx *txn.Transaction) {
	if tx == nil || (tx.Empty() && !h.keepEmpty) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.past = append(h.past, tx)
	h.future = nil

	if len(h.past) > h.maxEntries {
		excess := len(h.past) - h.maxEntries
		h.past = h.past[excess:]
	}
}

// Undo replays the most recent past transaction in reverse and moves the
// now-inverted transaction to the future stack. An empty past stack
// returns ErrNothingToUndo and leaves the tree unchanged.
func (h *History) Undo(r Replayer) error {
	h.mu.Lock()
	if len(h.past) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	tx := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.mu.Unlock()

	if err := r.Replay(tx, true); err != nil && !isListenerFailure(err) {
		h.mu.Lock()
		h.past = append(h.past, tx)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.future = append(h.future, tx)
	h.mu.Unlock()
	return nil
}

// Redo replays the most recent future transaction forward and moves it
// back to the past stack. An empty future stack returns ErrNothingToRedo.
func (h *History) Redo(r Replayer) error {
	h.mu.Lock()
	if len(h.future) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	tx := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.mu.Unlock()

	if err := r.Replay(tx, false); err != nil && !isListenerFailure(err) {
		h.mu.Lock()
		h.future = append(h.future, tx)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.past = append(h.past, tx)
	h.mu.Unlock()
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future) > 0
}

// UndoCount returns the number of undoable transactions.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past)
}

// RedoCount returns the number of redoable transactions.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future)
}

// Clear drops all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.past = nil
	h.future = nil
}

// MaxEntries returns the past-stack bound.
func (h *History) MaxEntries() int {
	return h.maxEntries
}

// isListenerFailure reports whether the replay error came from observers
// rather than the replay itself. Applied effects are real regardless of
// listener failures, so the stack movement still happens; only protocol
// errors restore the popped entry.
func isListenerFailure(err error) bool {
	return !errors.Is(err, txn.ErrUpdateInProgress)
}
