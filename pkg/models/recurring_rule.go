package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// RecurringRule is a template for entries that are created every month,
// e.g. a subscription or a loan installment.
type RecurringRule struct {
	DefaultModel
	Amount        types.Money `gorm:"not null"`
	Kind          EntryKind   `gorm:"not null"`
	CategoryName  string
	CategoryGroup string
	Description   string
	DayOfMonth    int // Target day, clamped to the length of each month

	AccountID     *uuid.UUID `gorm:"index"`
	Account       *Account
	PaymentMethod PaymentMethod `gorm:"not null"`

	CounterpartyID *uuid.UUID // Set for recurring debts
	Counterparty   *Counterparty
	IsDebt         bool

	Active              bool
	LastProcessedPeriod types.Month `gorm:"not null"` // Last month an entry was emitted for
}

func (r *RecurringRule) Normalize() {
	r.CategoryName = strings.TrimSpace(r.CategoryName)
	r.CategoryGroup = strings.TrimSpace(r.CategoryGroup)
	r.Description = strings.TrimSpace(r.Description)

	if r.Kind == "" {
		r.Kind = KindExpense
	}

	if r.PaymentMethod == "" {
		r.PaymentMethod = PaymentDirect
	}

	if r.AccountID != nil && *r.AccountID == uuid.Nil {
		r.AccountID = nil
	}

	if r.CounterpartyID != nil && *r.CounterpartyID == uuid.Nil {
		r.CounterpartyID = nil
	}
}

func (r RecurringRule) Validate() error {
	if !r.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !r.Kind.Valid() {
		return ErrEntryKindInvalid
	}

	if !r.PaymentMethod.Valid() {
		return ErrPaymentMethodInvalid
	}

	if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
		return ErrDayOfMonthInvalid
	}

	if r.PaymentMethod == PaymentCredit && r.AccountID == nil {
		return ErrCreditWithoutAccount
	}

	if r.LastProcessedPeriod.IsZero() {
		return ErrLastProcessedPeriodMissing
	}

	return nil
}

func (r *RecurringRule) BeforeSave(_ *gorm.DB) error {
	r.Normalize()
	return r.Validate()
}
