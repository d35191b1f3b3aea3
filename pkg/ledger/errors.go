package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies errors returned by the ledger so that callers can decide
// how to react to them.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindNotFound
	KindStoreUnavailable
	KindInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindNotFound:
		return "not found"
	case KindStoreUnavailable:
		return "store unavailable"
	case KindInvariantViolation:
		return "invariant violation"
	}
	return "unknown"
}

// Error is the error type returned by all ledger operations.
type Error struct {
	Kind Kind
	Op   string // Operation that failed, e.g. "catch-up"
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}

	if e.Op == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches other errors of the same Kind that carry no further detail,
// which makes the Err* kind sentinels usable with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrInvalidArgument    = &Error{Kind: KindInvalidArgument}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrStoreUnavailable   = &Error{Kind: KindStoreUnavailable}
	ErrInvariantViolation = &Error{Kind: KindInvariantViolation}
)

var (
	ErrInstallmentCountInvalid = errors.New("the installment count must be between 1 and 360")
	ErrCreditAccountRequired   = errors.New("credit payments need an account with credit enabled")
	ErrFirstPeriodInFuture     = errors.New("the first period of a recurring rule must not be after the current month")
	ErrDeleteScopeInvalid      = errors.New("the delete scope must be one of single, group")
	ErrEntryNotInInvoice       = errors.New("the entry is not a credit charge of this account and invoice period")
	ErrInvoiceAlreadySettled   = errors.New("the entry has already been settled with an invoice payment")
	ErrNothingToPay            = errors.New("there are no unsettled entries in this invoice")
	ErrEntryNotDebt            = errors.New("only debt entries can be settled")
	ErrInvoicePaymentImmutable = errors.New("invoice payments cannot be edited, delete and recreate them instead")
	ErrSettledEntryImmutable   = errors.New("the amount, date and account of entries settled by an invoice payment cannot be changed")
	ErrInstallmentImmutable    = errors.New("the amount and date of an installment cannot be changed, delete and recreate the installments instead")
	ErrSoleDefaultAccount      = errors.New("the only default account cannot be deleted")
	ErrAccountInUse            = errors.New("the account still has entries or recurring rules")
	ErrAmountInvalid           = errors.New("the amount must be positive")
	ErrInstallmentTooSmall     = errors.New("every installment must be at least 0.01")
)

// E creates a new *Error.
func E(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind of err. Errors that are not ledger errors are
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// wrap adds the operation to a ledger error, keeping its kind. Errors that
// carry no kind yet are treated as failures of the store.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Op != "" {
			return err
		}
		return &Error{Kind: e.Kind, Op: op, Err: e.Err}
	}

	return &Error{Kind: KindStoreUnavailable, Op: op, Err: err}
}
