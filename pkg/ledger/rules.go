package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/pkg/models"
)

// NewRule describes a recurring rule to create.
type NewRule struct {
	Rule models.RecurringRule

	// AlreadyPaid marks the occurrence of the current month as paid, the
	// first entry is created next month.
	AlreadyPaid bool

	// FirstPeriod back-dates the rule. The next catch-up creates entries for
	// all months from FirstPeriod on. It must not be after the current month
	// and takes precedence over AlreadyPaid.
	FirstPeriod *types.Month
}

// CreateRule creates an active recurring rule.
//
// Without AlreadyPaid or FirstPeriod, the rule is seeded with the previous
// month so that the next catch-up creates the entry for the current month.
func (l *Ledger) CreateRule(ctx context.Context, req NewRule) (models.RecurringRule, error) {
	const op = "create recurring rule"

	rule := req.Rule
	rule.ID = uuid.Nil
	rule.Active = true
	rule.Normalize()

	current := types.MonthOf(l.Today())
	switch {
	case req.FirstPeriod != nil:
		if req.FirstPeriod.After(current) {
			return models.RecurringRule{}, E(KindInvalidArgument, op, ErrFirstPeriodInFuture)
		}
		rule.LastProcessedPeriod = req.FirstPeriod.AddDate(0, -1)
	case req.AlreadyPaid:
		rule.LastProcessedPeriod = current
	default:
		rule.LastProcessedPeriod = current.AddDate(0, -1)
	}

	var result models.RecurringRule
	err := l.store.Atomic(ctx, func(tx Store) error {
		if err := l.checkRuleReferences(ctx, tx, rule); err != nil {
			return err
		}

		if err := rule.Validate(); err != nil {
			return E(KindInvalidArgument, "", err)
		}

		var err error
		result, err = tx.WriteRule(ctx, rule)
		return err
	})
	if err != nil {
		return models.RecurringRule{}, wrap(op, err)
	}

	return result, nil
}

// UpdateRule applies the patch to a recurring rule. Entries that have
// already been created are not changed. The progress of the rule and its
// state can only be changed by catch-up and SetRuleActive.
func (l *Ledger) UpdateRule(ctx context.Context, id uuid.UUID, patch RulePatch) (models.RecurringRule, error) {
	const op = "update recurring rule"

	var result models.RecurringRule
	err := l.store.Atomic(ctx, func(tx Store) error {
		current, err := tx.GetRule(ctx, id)
		if err != nil {
			return err
		}

		updated := current
		patch(&updated)
		updated.Normalize()
		updated.DefaultModel = current.DefaultModel
		updated.Active = current.Active
		updated.LastProcessedPeriod = current.LastProcessedPeriod

		if err := l.checkRuleReferences(ctx, tx, updated); err != nil {
			return err
		}

		if err := updated.Validate(); err != nil {
			return E(KindInvalidArgument, "", err)
		}

		result, err = tx.UpdateRule(ctx, id, func(r *models.RecurringRule) {
			*r = updated
		})
		return err
	})
	if err != nil {
		return models.RecurringRule{}, wrap(op, err)
	}

	return result, nil
}

// SetRuleActive pauses or reactivates a recurring rule.
//
// Months that passed while the rule was paused are skipped: on
// reactivation, the rule continues with the current month.
func (l *Ledger) SetRuleActive(ctx context.Context, id uuid.UUID, active bool) (models.RecurringRule, error) {
	const op = "set recurring rule state"

	resume := types.MonthOf(l.Today()).AddDate(0, -1)

	rule, err := l.store.UpdateRule(ctx, id, func(r *models.RecurringRule) {
		if active && !r.Active && r.LastProcessedPeriod.Before(resume) {
			r.LastProcessedPeriod = resume
		}
		r.Active = active
	})
	if err != nil {
		return models.RecurringRule{}, wrap(op, err)
	}

	l.log.Debug().Str("rule", id.String()).Bool("active", active).Str("lastProcessedPeriod", rule.LastProcessedPeriod.String()).Msg("recurring rule state changed")
	return rule, nil
}

// DeleteRule deletes a recurring rule. Entries it created are kept.
func (l *Ledger) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return wrap("delete recurring rule", l.store.DeleteRule(ctx, id))
}

// checkRuleReferences verifies the account and counterparty of a rule.
// Credit rules need an account with credit enabled.
func (l *Ledger) checkRuleReferences(ctx context.Context, tx Store, rule models.RecurringRule) error {
	account, err := l.lookupAccount(ctx, tx, rule.AccountID)
	if err != nil {
		return err
	}

	if rule.PaymentMethod == models.PaymentCredit && (account == nil || !account.HasCredit) {
		return E(KindInvalidArgument, "", ErrCreditAccountRequired)
	}

	if rule.CounterpartyID != nil {
		if _, err := tx.GetCounterparty(ctx, *rule.CounterpartyID); err != nil {
			return err
		}
	}

	return nil
}
