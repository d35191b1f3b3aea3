// Package ledger implements the recurring billing and installment engine:
// it splits purchases into installments, assigns credit charges to invoice
// periods, catches up recurring rules, aggregates balances and keeps
// derived state consistent when entries are edited, paid or deleted.
package ledger

import (
	"time"

	"github.com/ledgerline/backend/internal/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Ledger runs the ledger operations against a Store.
type Ledger struct {
	store Store
	now   func() time.Time
	log   zerolog.Logger
}

type Option func(*Ledger)

// WithClock sets the function used to determine the current time.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithLogger sets the logger. The global zerolog logger is used by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Ledger) {
		l.log = logger
	}
}

// New returns a Ledger working on the store.
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
		log:   log.Logger,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Store returns the store the ledger works on.
func (l *Ledger) Store() Store {
	return l.store
}

// Today returns the current calendar day.
func (l *Ledger) Today() time.Time {
	return types.Day(l.now())
}
