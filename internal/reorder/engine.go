package reorder

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/thruflo/targetorder/internal/logging"
	"github.com/thruflo/targetorder/internal/notify"
	"github.com/thruflo/targetorder/internal/sequence"
)

// DefaultGroupNameFormat renders a new group's display name from its ordinal.
const DefaultGroupNameFormat = "Group %d"

var (
	// ErrInvalidMove is returned for requests that cannot be applied without
	// breaking a group apart, or that name the same endpoint twice.
	ErrInvalidMove = errors.New("invalid move")

	// ErrBusy is returned when an operation starts while another is in flight.
	ErrBusy = errors.New("reorder operation already in progress")
)

// Runtime is the collaborator that owns the live target list.
// *sequence.Sequence satisfies it.
type Runtime interface {
	Targets() []*sequence.Target
	SetTargets(targets []*sequence.Target)
	TargetByID(id string) *sequence.Target
}

// Commit describes one committed operation.
type Commit struct {
	Txn   string
	Op    string
	Order []string
}

// Engine applies reorder operations to a Runtime.
type Engine struct {
	rt         Runtime
	notifier   *notify.Notifier
	log        *logging.Logger
	nameFormat string
	observer   func(Commit)

	inFlight sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is the package-level logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithNotifier sets the change notifier. The default is a fresh Notifier.
func WithNotifier(n *notify.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithGroupNameFormat sets the format used to name new groups. It receives
// the group's ordinal as its only argument.
func WithGroupNameFormat(format string) Option {
	return func(e *Engine) {
		if format != "" {
			e.nameFormat = format
		}
	}
}

// WithCommitObserver sets a function called with the details of every
// committed operation, before the notifier fires.
func WithCommitObserver(fn func(Commit)) Option {
	return func(e *Engine) { e.observer = fn }
}

// New creates an Engine for rt.
func New(rt Runtime, opts ...Option) *Engine {
	e := &Engine{
		rt:         rt,
		notifier:   notify.New(),
		log:        logging.Default(),
		nameFormat: DefaultGroupNameFormat,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("component", "reorder")
	return e
}

// Notifier returns the notifier fired after every committed operation.
func (e *Engine) Notifier() *notify.Notifier {
	return e.notifier
}

// OnSequenceChanged registers hook with the engine's notifier and returns
// its subscription id.
func (e *Engine) OnSequenceChanged(hook func()) string {
	return e.notifier.Subscribe(hook)
}

// groupName renders the display name for the group with the given ordinal.
func (e *Engine) groupName(order int) string {
	return fmt.Sprintf(e.nameFormat, order)
}

// run executes fn as one transaction named op.
func (e *Engine) run(op string, fn func(tx *txn) error) error {
	if !e.inFlight.TryLock() {
		return fmt.Errorf("%s: %w", op, ErrBusy)
	}

	txnID := uuid.NewString()
	log := e.log.WithFields(map[string]interface{}{
		"op":  op,
		"txn": txnID,
	})

	err := func() error {
		defer e.inFlight.Unlock()
		return e.apply(log, fn)
	}()
	if err != nil {
		log.Debug("operation rejected", "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	committed := e.rt.Targets()
	log.Info("sequence committed", "len", len(committed))
	if e.observer != nil {
		order := make([]string, len(committed))
		for i, t := range committed {
			order[i] = t.ID
		}
		e.observer(Commit{Txn: txnID, Op: op, Order: order})
	}
	e.notifier.Notify()
	return nil
}

// apply runs fn against a working copy and commits it if the result holds.
func (e *Engine) apply(log *logging.Logger, fn func(tx *txn) error) error {
	live := sequence.New(e.rt.Targets()...)
	tx := &txn{seq: live.Clone(), log: log}
	before := tx.seq.Len()

	if err := fn(tx); err != nil {
		return err
	}

	if tx.seq.Len() != before {
		return sequence.InvariantError{
			Rule:    "length",
			Message: fmt.Sprintf("sequence length changed from %d to %d", before, tx.seq.Len()),
		}
	}
	if err := tx.seq.Validate(); err != nil {
		return err
	}

	ordered := make([]*sequence.Target, 0, before)
	for _, w := range tx.seq.Targets() {
		t := live.Get(w.ID)
		if t == nil {
			return sequence.InvariantError{
				Rule:    "target",
				Message: fmt.Sprintf("working target %q has no live counterpart", w.ID),
			}
		}
		ordered = append(ordered, t)
	}

	// Nothing below can fail, so the commit is all-or-nothing.
	for i, w := range tx.seq.Targets() {
		ordered[i].SetGroup(w.Group())
	}
	e.rt.SetTargets(ordered)
	return nil
}
