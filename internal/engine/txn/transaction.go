package txn

import (
	"errors"

	"github.com/dshills/graphdoc/internal/engine/change"
)

// ErrTransactionFrozen is returned when appending to a finalized transaction.
var ErrTransactionFrozen = errors.New("transaction is frozen")

// Transaction is the ordered list of change records produced between one
// balanced Begin/End pair. It accumulates records in causal order,
// including records appended by collaborators reacting during
// finalization, and freezes once the final end-edit notification has
// fired. From then on it is immutable and owned by the history ledger.
type Transaction struct {
	seq     uint64
	changes []change.Change
	frozen  bool
}

func newTransaction(seq uint64) *Transaction {
	return &Transaction{seq: seq}
}

// Seq returns the transaction's sequence number. Sequence numbers are
// assigned per manager in commit order.
func (t *Transaction) Seq() uint64 {
	return t.seq
}

// Add appends a change record in causal order.
func (t *Transaction) Add(c change.Change) error {
	if t.frozen {
		return ErrTransactionFrozen
	}
	t.changes = append(t.changes, c)
	return nil
}

// Changes returns a copy of the ordered change list.
func (t *Transaction) Changes() []change.Change {
	if len(t.changes) == 0 {
		return nil
	}
	out := make([]change.Change, len(t.changes))
	copy(out, t.changes)
	return out
}

// Len returns the number of recorded changes.
func (t *Transaction) Len() int {
	return len(t.changes)
}

// Empty reports whether the transaction recorded no changes.
func (t *Transaction) Empty() bool {
	return len(t.changes) == 0
}

// Frozen reports whether the transaction has been finalized.
func (t *Transaction) Frozen() bool {
	return t.frozen
}

// freeze makes the transaction immutable.
func (t *Transaction) freeze() {
	t.frozen = true
}
