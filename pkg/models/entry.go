package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// EntryKind defines the direction of an entry.
type EntryKind string

const (
	KindExpense    EntryKind = "expense"
	KindIncome     EntryKind = "income"
	KindInvestment EntryKind = "investment"
)

func (k EntryKind) Valid() bool {
	return k == KindExpense || k == KindIncome || k == KindInvestment
}

// PaymentMethod defines how an entry is paid.
type PaymentMethod string

const (
	PaymentDirect PaymentMethod = "direct"
	PaymentCredit PaymentMethod = "credit"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentDirect || p == PaymentCredit
}

// Entry is a single money movement in the ledger.
type Entry struct {
	DefaultModel
	Amount        types.Money `gorm:"not null"` // Always positive, the direction is defined by Kind
	Kind          EntryKind   `gorm:"not null;index"`
	CategoryName  string
	CategoryGroup string `gorm:"index"`
	Description   string
	OccurredOn    time.Time `gorm:"index"` // Calendar day, midnight UTC

	AccountID      *uuid.UUID `gorm:"index"`
	Account        *Account
	CounterpartyID *uuid.UUID `gorm:"index"`
	Counterparty   *Counterparty
	AssetID        *uuid.UUID // Asset an investment contributes to
	Asset          *Asset     `gorm:"constraint:OnDelete:SET NULL"`

	IsDebt          bool // Tracked against the counterparty
	DebtSettled     bool
	IsFutureReceipt bool // Income that is not realized yet
	IsTransfer      bool

	PaymentMethod    PaymentMethod `gorm:"not null"`
	InvoicePeriod    *types.Month  `gorm:"index"` // Only set for credit payments
	IsInvoicePayment bool
	IsInvoiceSettled bool     // Only meaningful for credit payments
	RelatedEntryIDs  EntryIDs // Entries an invoice payment settles

	InstallmentGroupID *string `gorm:"index"` // Shared by all installments split from one purchase
	InstallmentIndex   int     // 1-based
	InstallmentTotal   int

	RecurringRuleID *uuid.UUID     `gorm:"index"`
	RecurringRule   *RecurringRule `gorm:"constraint:OnDelete:SET NULL"`
	RecurrenceKey   *string        `gorm:"uniqueIndex"` // Unique per rule and period
}

// Normalize trims strings, truncates the date to its day and applies defaults.
func (e *Entry) Normalize() {
	e.CategoryName = strings.TrimSpace(e.CategoryName)
	e.CategoryGroup = strings.TrimSpace(e.CategoryGroup)
	e.Description = strings.TrimSpace(e.Description)

	if e.OccurredOn.IsZero() {
		e.OccurredOn = time.Now()
	}
	e.OccurredOn = types.Day(e.OccurredOn)

	if e.Kind == "" {
		e.Kind = KindExpense
	}

	if e.PaymentMethod == "" {
		e.PaymentMethod = PaymentDirect
	}

	// Ensure that IDs are nil and not pointers to a nil UUID
	for _, id := range []**uuid.UUID{&e.AccountID, &e.CounterpartyID, &e.AssetID, &e.RecurringRuleID} {
		if *id != nil && **id == uuid.Nil {
			*id = nil
		}
	}

	if e.PaymentMethod != PaymentCredit {
		e.InvoicePeriod = nil
		e.IsInvoiceSettled = false
	}

	if e.InvoicePeriod != nil && e.InvoicePeriod.IsZero() {
		e.InvoicePeriod = nil
	}
}

// Validate checks the invariants of a single entry.
func (e Entry) Validate() error {
	if !e.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !e.Kind.Valid() {
		return ErrEntryKindInvalid
	}

	if !e.PaymentMethod.Valid() {
		return ErrPaymentMethodInvalid
	}

	if e.DebtSettled && !e.IsDebt {
		return ErrDebtSettledWithoutDebt
	}

	if e.IsInvoicePayment && len(e.RelatedEntryIDs) == 0 {
		return ErrInvoicePaymentWithoutEntries
	}

	if e.PaymentMethod == PaymentCredit && e.AccountID == nil {
		return ErrCreditWithoutAccount
	}

	if e.InstallmentTotal > 1 && (e.InstallmentIndex < 1 || e.InstallmentIndex > e.InstallmentTotal) {
		return ErrInstallmentIndexInvalid
	}

	return nil
}

// Signed returns the amount with the sign of its effect on an account:
// income is positive, expenses and investments are negative.
func (e Entry) Signed() types.Money {
	if e.Kind == KindIncome {
		return e.Amount
	}
	return e.Amount.Neg()
}

// IsInstallment reports if the entry is part of an installment group.
func (e Entry) IsInstallment() bool {
	return e.InstallmentGroupID != nil && e.InstallmentTotal > 1
}

// BeforeSave normalizes the entry and enforces its invariants.
func (e *Entry) BeforeSave(_ *gorm.DB) error {
	e.Normalize()
	return e.Validate()
}

// AfterFind enforces dates to be in UTC.
func (e *Entry) AfterFind(tx *gorm.DB) error {
	err := e.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	e.OccurredOn = e.OccurredOn.In(time.UTC)
	return nil
}

// EntryIDs is a set of entry IDs, stored as a JSON array.
type EntryIDs []uuid.UUID

// Contains reports if the ID is in the set.
func (ids EntryIDs) Contains(id uuid.UUID) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}

// Scan reads the JSON array from the database.
func (ids *EntryIDs) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*ids = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported database type %T for entry IDs", value)
	}

	if len(data) == 0 {
		*ids = nil
		return nil
	}

	return json.Unmarshal(data, (*[]uuid.UUID)(ids))
}

// Value writes the set as a JSON array.
func (ids EntryIDs) Value() (driver.Value, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	b, err := json.Marshal([]uuid.UUID(ids))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// GormDataType defines the data type used by gorm for the type.
func (EntryIDs) GormDataType() string {
	return "text"
}
