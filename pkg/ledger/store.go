package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/pkg/models"
)

// EntryFilter selects entries. Zero values do not filter.
type EntryFilter struct {
	IDs                []uuid.UUID
	AccountID          *uuid.UUID
	CounterpartyID     *uuid.UUID
	AssetID            *uuid.UUID
	RecurringRuleID    *uuid.UUID
	InstallmentGroupID *string
	InvoicePeriod      *types.Month
	Kind               models.EntryKind
	PaymentMethod      models.PaymentMethod
	InvoiceSettled     *bool
	FromDate           time.Time // Entries on and after this day
	UntilDate          time.Time // Entries on and before this day
	CategoryGroup      string
	Description        string // Glob pattern, e.g. "*netflix*"
	Offset             uint
	Limit              int
}

// RuleFilter selects recurring rules. Zero values do not filter.
type RuleFilter struct {
	Active    *bool
	AccountID *uuid.UUID
}

// Patches modify the loaded record in place. The store persists the whole
// record afterwards, so model validation sees the complete result.
type (
	EntryPatch   func(*models.Entry)
	RulePatch    func(*models.RecurringRule)
	AccountPatch func(*models.Account)
	AssetPatch   func(*models.Asset)
)

// Store is the persistence the ledger works on.
//
// Single record operations are atomic. Atomic runs fn against a Store that
// commits all of its writes together or none of them. Inside fn, only the
// Store passed to fn may be used.
type Store interface {
	ListEntries(ctx context.Context, filter EntryFilter) ([]models.Entry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (models.Entry, error)
	WriteEntries(ctx context.Context, entries []models.Entry) ([]models.Entry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, patch EntryPatch) (models.Entry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	ListRules(ctx context.Context, filter RuleFilter) ([]models.RecurringRule, error)
	GetRule(ctx context.Context, id uuid.UUID) (models.RecurringRule, error)
	WriteRule(ctx context.Context, rule models.RecurringRule) (models.RecurringRule, error)
	UpdateRule(ctx context.Context, id uuid.UUID, patch RulePatch) (models.RecurringRule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error

	ListAccounts(ctx context.Context) ([]models.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (models.Account, error)
	WriteAccount(ctx context.Context, account models.Account) (models.Account, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, patch AccountPatch) (models.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error

	ListCounterparties(ctx context.Context) ([]models.Counterparty, error)
	GetCounterparty(ctx context.Context, id uuid.UUID) (models.Counterparty, error)

	ListBudgetLimits(ctx context.Context) ([]models.BudgetLimit, error)

	ListAssets(ctx context.Context) ([]models.Asset, error)
	GetAsset(ctx context.Context, id uuid.UUID) (models.Asset, error)
	UpdateAsset(ctx context.Context, id uuid.UUID, patch AssetPatch) (models.Asset, error)
	DeleteAsset(ctx context.Context, id uuid.UUID) error

	Atomic(ctx context.Context, fn func(tx Store) error) error
}
