package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/pkg/models"
	"github.com/oklog/ulid/v2"
)

// MaxInstallments is the highest number of installments a purchase can be split into.
const MaxInstallments = 360

// InstallmentPlan describes a purchase that is paid in installments.
type InstallmentPlan struct {
	Amount types.Money // Nominal amount of the purchase
	Count  int
	Start  time.Time // Date of the first installment

	// Template holds the metadata all installments share, e.g. the
	// category, account and payment method.
	Template models.Entry
}

// SplitInstallments splits the plan into one entry per installment, spaced
// one calendar month apart on the day of the month of the start date.
//
// The installments sum up to exactly the nominal amount, see types.Money.Split.
// Credit installments are assigned to the invoice period of their own date,
// which requires a credit enabled account.
//
// A plan with a single installment results in one ordinary entry.
func SplitInstallments(plan InstallmentPlan, account *models.Account) ([]models.Entry, error) {
	if plan.Count < 1 || plan.Count > MaxInstallments {
		return nil, ErrInstallmentCountInvalid
	}

	if !plan.Amount.IsPositive() {
		return nil, ErrAmountInvalid
	}

	if plan.Amount < types.Money(plan.Count) {
		return nil, ErrInstallmentTooSmall
	}

	amounts, err := plan.Amount.Split(plan.Count)
	if err != nil {
		return nil, err
	}

	start := types.Day(plan.Start)

	var groupID *string
	if plan.Count > 1 {
		id := ulid.Make().String()
		groupID = &id
	}

	entries := make([]models.Entry, 0, plan.Count)
	for i, amount := range amounts {
		entry := plan.Template
		entry.ID = uuid.Nil
		entry.Amount = amount
		entry.OccurredOn = types.AddMonthsClamped(start, i, start.Day())
		entry.Normalize()

		if groupID != nil {
			entry.InstallmentGroupID = groupID
			entry.InstallmentIndex = i + 1
			entry.InstallmentTotal = plan.Count
		} else {
			entry.InstallmentGroupID = nil
			entry.InstallmentIndex = 0
			entry.InstallmentTotal = 0
		}

		if err := assignInvoicePeriod(&entry, account); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// CreateInstallments splits the plan and writes all installments together.
func (l *Ledger) CreateInstallments(ctx context.Context, plan InstallmentPlan) ([]models.Entry, error) {
	const op = "create installments"

	account, err := l.lookupAccount(ctx, l.store, plan.Template.AccountID)
	if err != nil {
		return nil, wrap(op, err)
	}

	entries, err := SplitInstallments(plan, account)
	if err != nil {
		return nil, E(KindInvalidArgument, op, err)
	}

	var written []models.Entry
	err = l.store.Atomic(ctx, func(tx Store) error {
		if err := checkReferences(ctx, tx, plan.Template); err != nil {
			return err
		}

		written, err = tx.WriteEntries(ctx, entries)
		if err != nil {
			return err
		}

		return applyAssetContributions(ctx, tx, written, 1)
	})
	if err != nil {
		return nil, wrap(op, err)
	}

	l.log.Debug().Int("count", len(written)).Str("amount", plan.Amount.String()).Msg("installments created")
	return written, nil
}
