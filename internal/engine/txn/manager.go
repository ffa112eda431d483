package txn

import (
	"errors"

	"github.com/dshills/graphdoc/internal/engine/change"
	"github.com/dshills/graphdoc/internal/event"
)

// Topics published by the transaction manager.
const (
	// TopicBegin fires on every nesting entry. Data: UpdateLevel.
	TopicBegin event.Topic = "txn.begin"

	// TopicEnd fires on every nesting exit. Data: UpdateLevel.
	TopicEnd event.Topic = "txn.end"

	// TopicExecute fires after each change record is applied. Data: change.Change.
	TopicExecute event.Topic = "txn.execute"

	// TopicBeforeCommit fires on the outermost exit, before the
	// transaction is pushed to history. Handlers may extend the same
	// transaction. Data: *Transaction.
	TopicBeforeCommit event.Topic = "txn.before-commit"

	// TopicCommit fires once per top-level transaction with the committed
	// change list. Data: *Transaction.
	TopicCommit event.Topic = "txn.commit"

	// TopicEndEdit fires after commit delivery completes. Data: *Transaction.
	TopicEndEdit event.Topic = "txn.end-edit"

	// TopicUndo fires after a transaction is replayed in reverse. Data: *Transaction.
	TopicUndo event.Topic = "txn.undo"

	// TopicRedo fires after a transaction is replayed forward. Data: *Transaction.
	TopicRedo event.Topic = "txn.redo"
)

// Sentinel errors for the transaction protocol.
var (
	// ErrUnbalancedUpdate is returned by End when no update is open.
	// The nesting counter is clamped at zero; state is not corrupted.
	ErrUnbalancedUpdate = errors.New("end update without matching begin")

	// ErrUpdateInProgress is returned by Replay while an update is open.
	ErrUpdateInProgress = errors.New("update in progress")
)

// UpdateLevel is the payload for TopicBegin and TopicEnd.
type UpdateLevel struct {
	// Nesting is the depth after the entry or exit.
	Nesting int

	// Opened reports whether this entry opened a new transaction.
	Opened bool
}

// Sink receives finalized transactions. The history ledger implements it;
// the sink decides whether empty transactions are kept.
type Sink interface {
	Push(*Transaction)
}

// Manager coordinates nested updates over one document tree. It is not
// safe for concurrent use; the library assumes a single logical editor
// thread, and the only re-entrancy is synchronous callbacks on the same
// stack (see the package comment).
type Manager struct {
	bus  *event.Bus
	sink Sink

	nesting    int
	finalizing bool
	replaying  bool
	current    *Transaction
	nextSeq    uint64

	// errs collects listener failures during the current top-level
	// transaction; they are reported from the outermost End.
	errs []error
}

// NewManager creates a manager publishing on bus and committing to sink.
func NewManager(bus *event.Bus, sink Sink) *Manager {
	return &Manager{bus: bus, sink: sink}
}

// Nesting returns the current update depth.
func (m *Manager) Nesting() int {
	return m.nesting
}

// InUpdate reports whether an update is open.
func (m *Manager) InUpdate() bool {
	return m.nesting > 0
}

// Begin enters an update level. The first entry opens a new transaction;
// entries made while a transaction is finalizing extend it instead.
// Begin never fails.
func (m *Manager) Begin() {
	m.nesting++
	opened := false
	if m.current == nil {
		m.current = newTransaction(m.nextSeq)
		m.nextSeq++
		opened = true
	}
	m.publish(TopicBegin, UpdateLevel{Nesting: m.nesting, Opened: opened})
}

// End exits an update level. The outermost exit finalizes the open
// transaction and returns any listener failures collected during the
// transaction; the commit itself is never unwound by them. Calling End
// with no update open returns ErrUnbalancedUpdate and changes nothing.
func (m *Manager) End() error {
	if m.nesting == 0 {
		return ErrUnbalancedUpdate
	}
	m.nesting--
	m.publish(TopicEnd, UpdateLevel{Nesting: m.nesting})

	// Re-entrant exits during finalization never finalize again.
	if m.nesting > 0 || m.finalizing || m.current == nil {
		return nil
	}
	return m.finalize()
}

// Execute applies a change record and appends it to the open transaction,
// opening (and closing) an implicit top-level transaction when none is
// open. It returns listener failures only when it closes the implicit
// transaction.
func (m *Manager) Execute(c change.Change) error {
	implicit := m.nesting == 0 && !m.finalizing
	if implicit {
		m.Begin()
	}

	c.Execute()
	if err := m.current.Add(c); err != nil {
		m.errs = append(m.errs, err)
	}
	m.publish(TopicExecute, c)

	if implicit {
		return m.End()
	}
	return nil
}

// Replay re-executes a finalized transaction's records, in reverse order
// for undo and forward for redo, inside its own begin/end pair so the
// reversal is notification-visible. The history sink is not pushed; the
// ledger moves the entry between its own stacks. Replay cannot run while
// an update is open.
func (m *Manager) Replay(tx *Transaction, reverse bool) error {
	if m.nesting > 0 {
		return ErrUpdateInProgress
	}

	m.replaying = true
	defer func() { m.replaying = false }()

	m.Begin()
	changes := tx.Changes()
	if reverse {
		// Later records may depend on state established by earlier ones,
		// so effects are undone last-first.
		for i := len(changes) - 1; i >= 0; i-- {
			m.replayOne(changes[i])
		}
	} else {
		for _, c := range changes {
			m.replayOne(c)
		}
	}
	err := m.End()

	topic := TopicRedo
	if reverse {
		topic = TopicUndo
	}
	if perr := m.bus.Publish(topic, m, tx); perr != nil {
		err = errors.Join(err, perr)
	}
	return err
}

// replayOne re-executes one record and mirrors it into the replay
// transaction so commit listeners observe the replayed change list.
func (m *Manager) replayOne(c change.Change) {
	c.Execute()
	if err := m.current.Add(c); err != nil {
		m.errs = append(m.errs, err)
	}
	m.publish(TopicExecute, c)
}

// finalize closes the top-level transaction: before-commit (extensible),
// history push, commit, end-edit, freeze.
func (m *Manager) finalize() error {
	m.finalizing = true
	tx := m.current

	m.publish(TopicBeforeCommit, tx)
	if !m.replaying {
		m.sink.Push(tx)
	}
	m.publish(TopicCommit, tx)
	m.publish(TopicEndEdit, tx)

	tx.freeze()
	m.current = nil
	m.finalizing = false

	errs := m.errs
	m.errs = nil
	return errors.Join(errs...)
}

// publish delivers on the bus, parking listener failures for the
// outermost End to report.
func (m *Manager) publish(topic event.Topic, data any) {
	if err := m.bus.Publish(topic, m, data); err != nil {
		m.errs = append(m.errs, err)
	}
}
