// Package store persists the ledger in the database with gorm.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/pkg/ledger"
	"github.com/ledgerline/backend/pkg/models"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// Store implements ledger.Store on a gorm database.
type Store struct {
	db *gorm.DB
}

var _ ledger.Store = (*Store)(nil)

// New returns a Store using the database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Atomic runs fn in a database transaction.
func (s *Store) Atomic(ctx context.Context, fn func(tx ledger.Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})

	return mapError(err)
}

func (s *Store) ListEntries(ctx context.Context, filter ledger.EntryFilter) ([]models.Entry, error) {
	q := s.db.WithContext(ctx).Model(&models.Entry{})

	if len(filter.IDs) > 0 {
		q = q.Where("entries.id IN ?", filter.IDs)
	}

	if filter.AccountID != nil {
		q = q.Where("entries.account_id = ?", *filter.AccountID)
	}

	if filter.CounterpartyID != nil {
		q = q.Where("entries.counterparty_id = ?", *filter.CounterpartyID)
	}

	if filter.AssetID != nil {
		q = q.Where("entries.asset_id = ?", *filter.AssetID)
	}

	if filter.RecurringRuleID != nil {
		q = q.Where("entries.recurring_rule_id = ?", *filter.RecurringRuleID)
	}

	if filter.InstallmentGroupID != nil {
		q = q.Where("entries.installment_group_id = ?", *filter.InstallmentGroupID)
	}

	if filter.InvoicePeriod != nil {
		q = q.Where("entries.invoice_period = ?", *filter.InvoicePeriod)
	}

	if filter.Kind != "" {
		q = q.Where("entries.kind = ?", filter.Kind)
	}

	if filter.PaymentMethod != "" {
		q = q.Where("entries.payment_method = ?", filter.PaymentMethod)
	}

	if filter.InvoiceSettled != nil {
		q = q.Where("entries.is_invoice_settled = ?", *filter.InvoiceSettled)
	}

	if filter.CategoryGroup != "" {
		q = q.Where("entries.category_group = ?", filter.CategoryGroup)
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("entries.occurred_on >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("entries.occurred_on < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	q = q.Order("entries.occurred_on, entries.installment_index, entries.created_at")

	// The description is matched after loading, so offset and limit
	// are applied afterwards, too
	if filter.Description == "" {
		if filter.Offset > 0 {
			q = q.Offset(int(filter.Offset))
		}

		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
	}

	var entries []models.Entry
	if err := q.Find(&entries).Error; err != nil {
		return nil, mapError(err)
	}

	if filter.Description == "" {
		return entries, nil
	}

	pattern := strings.ToLower(filter.Description)
	matched := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if glob.Glob(pattern, strings.ToLower(e.Description)) {
			matched = append(matched, e)
		}
	}

	return paginate(matched, filter.Offset, filter.Limit), nil
}

func paginate[T any](s []T, offset uint, limit int) []T {
	if int(offset) >= len(s) {
		return []T{}
	}

	s = s[offset:]
	if limit > 0 && limit < len(s) {
		s = s[:limit]
	}
	return s
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (models.Entry, error) {
	return get[models.Entry](ctx, s.db, id)
}

// WriteEntries creates all entries in one statement.
func (s *Store) WriteEntries(ctx context.Context, entries []models.Entry) ([]models.Entry, error) {
	if len(entries) == 0 {
		return []models.Entry{}, nil
	}

	if err := s.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, mapError(err)
	}

	return entries, nil
}

func (s *Store) UpdateEntry(ctx context.Context, id uuid.UUID, patch ledger.EntryPatch) (models.Entry, error) {
	return update[models.Entry](ctx, s.db, id, patch)
}

func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return remove[models.Entry](ctx, s.db, id)
}

func (s *Store) ListRules(ctx context.Context, filter ledger.RuleFilter) ([]models.RecurringRule, error) {
	q := s.db.WithContext(ctx).Model(&models.RecurringRule{})

	if filter.Active != nil {
		q = q.Where("recurring_rules.active = ?", *filter.Active)
	}

	if filter.AccountID != nil {
		q = q.Where("recurring_rules.account_id = ?", *filter.AccountID)
	}

	var rules []models.RecurringRule
	if err := q.Order("recurring_rules.created_at").Find(&rules).Error; err != nil {
		return nil, mapError(err)
	}

	return rules, nil
}

func (s *Store) GetRule(ctx context.Context, id uuid.UUID) (models.RecurringRule, error) {
	return get[models.RecurringRule](ctx, s.db, id)
}

func (s *Store) WriteRule(ctx context.Context, rule models.RecurringRule) (models.RecurringRule, error) {
	return create(ctx, s.db, rule)
}

func (s *Store) UpdateRule(ctx context.Context, id uuid.UUID, patch ledger.RulePatch) (models.RecurringRule, error) {
	return update[models.RecurringRule](ctx, s.db, id, patch)
}

func (s *Store) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return remove[models.RecurringRule](ctx, s.db, id)
}

func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return list[models.Account](ctx, s.db, "created_at, name")
}

func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	return get[models.Account](ctx, s.db, id)
}

func (s *Store) WriteAccount(ctx context.Context, account models.Account) (models.Account, error) {
	return create(ctx, s.db, account)
}

func (s *Store) UpdateAccount(ctx context.Context, id uuid.UUID, patch ledger.AccountPatch) (models.Account, error) {
	return update[models.Account](ctx, s.db, id, patch)
}

func (s *Store) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return remove[models.Account](ctx, s.db, id)
}

func (s *Store) ListCounterparties(ctx context.Context) ([]models.Counterparty, error) {
	return list[models.Counterparty](ctx, s.db, "name")
}

func (s *Store) GetCounterparty(ctx context.Context, id uuid.UUID) (models.Counterparty, error) {
	return get[models.Counterparty](ctx, s.db, id)
}

func (s *Store) ListBudgetLimits(ctx context.Context) ([]models.BudgetLimit, error) {
	return list[models.BudgetLimit](ctx, s.db, "category_group")
}

func (s *Store) ListAssets(ctx context.Context) ([]models.Asset, error) {
	return list[models.Asset](ctx, s.db, "name")
}

func (s *Store) GetAsset(ctx context.Context, id uuid.UUID) (models.Asset, error) {
	return get[models.Asset](ctx, s.db, id)
}

func (s *Store) UpdateAsset(ctx context.Context, id uuid.UUID, patch ledger.AssetPatch) (models.Asset, error) {
	return update[models.Asset](ctx, s.db, id, patch)
}

func (s *Store) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	return remove[models.Asset](ctx, s.db, id)
}

// record is the set of models the generic helpers work on.
type record interface {
	models.Entry | models.RecurringRule | models.Account | models.Counterparty | models.BudgetLimit | models.Asset
}

func list[R record](ctx context.Context, db *gorm.DB, order string) ([]R, error) {
	var records []R
	if err := db.WithContext(ctx).Order(order).Find(&records).Error; err != nil {
		return nil, mapError(err)
	}

	return records, nil
}

func get[R record](ctx context.Context, db *gorm.DB, id uuid.UUID) (R, error) {
	var r R
	if err := db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return r, mapError(err)
	}

	return r, nil
}

func create[R record](ctx context.Context, db *gorm.DB, r R) (R, error) {
	if err := db.WithContext(ctx).Create(&r).Error; err != nil {
		return r, mapError(err)
	}

	return r, nil
}

// update loads the record, applies the patch and saves all fields.
func update[R record](ctx context.Context, db *gorm.DB, id uuid.UUID, patch func(*R)) (R, error) {
	r, err := get[R](ctx, db, id)
	if err != nil {
		return r, err
	}

	patch(&r)

	if err := db.WithContext(ctx).Save(&r).Error; err != nil {
		return r, mapError(err)
	}

	return r, nil
}

func remove[R record](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	r, err := get[R](ctx, db, id)
	if err != nil {
		return err
	}

	return mapError(db.WithContext(ctx).Delete(&r).Error)
}

// mapError classifies errors of the database into ledger errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var e *ledger.Error
	if errors.As(err, &e) {
		return err
	}

	// Transactions can fail before any callback of the models runs
	err = models.GeneralError(err)

	switch {
	case errors.Is(err, models.ErrResourceNotFound), errors.Is(err, models.ErrReferenceInvalid):
		return ledger.E(ledger.KindNotFound, "", err)

	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrAccountNameNotUnique),
		errors.Is(err, models.ErrCounterpartyNameNotUnique),
		errors.Is(err, models.ErrAssetNameNotUnique),
		errors.Is(err, models.ErrBudgetLimitGroupNotUnique):
		return ledger.E(ledger.KindInvalidArgument, "", err)

	case errors.Is(err, models.ErrRecurrenceAlreadyEmitted), errors.Is(err, models.ErrResourceInUse):
		return ledger.E(ledger.KindInvariantViolation, "", err)
	}

	return ledger.E(ledger.KindStoreUnavailable, "", err)
}
