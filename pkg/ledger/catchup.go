package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/helpers"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/pkg/models"
)

// RuleWarning reports a recurring rule that could not be caught up completely.
type RuleWarning struct {
	RuleID uuid.UUID   `json:"ruleId"`
	Period types.Month `json:"period"` // First period that was not processed
	Reason string      `json:"reason"`
}

// CatchUpReport lists what a catch-up run did.
type CatchUpReport struct {
	Emitted  []models.Entry `json:"emitted"`
	Warnings []RuleWarning  `json:"warnings"`
}

// CatchUp creates the entries of all active recurring rules that are due
// on or before today, one for each month since the last processed period.
//
// Each entry is written together with the progress of its rule, so running
// CatchUp again, concurrently or after an abort never creates a second
// entry for the same rule and month.
//
// Rules whose account cannot be found are skipped with a warning. When the
// store fails, the run stops and the entries created so far are reported
// together with the error. A retry continues where the run stopped.
func (l *Ledger) CatchUp(ctx context.Context, today time.Time) (CatchUpReport, error) {
	const op = "catch-up"

	report := CatchUpReport{
		Emitted:  []models.Entry{},
		Warnings: []RuleWarning{},
	}

	today = types.Day(today)
	active := true
	rules, err := l.store.ListRules(ctx, RuleFilter{Active: &active})
	if err != nil {
		catchUpRuns.WithLabelValues("error").Inc()
		return report, wrap(op, err)
	}

	for _, rule := range rules {
		emitted, warning, err := l.catchUpRule(ctx, rule, today)
		report.Emitted = append(report.Emitted, emitted...)

		if warning != nil {
			report.Warnings = append(report.Warnings, *warning)
			catchUpWarnings.Inc()
			l.log.Warn().Str("rule", rule.ID.String()).Str("period", warning.Period.String()).Msg(warning.Reason)
		}

		if err != nil {
			catchUpRuns.WithLabelValues("error").Inc()
			return report, wrap(op, err)
		}
	}

	catchUpRuns.WithLabelValues("success").Inc()
	if len(report.Emitted) > 0 {
		l.log.Info().Int("emitted", len(report.Emitted)).Int("warnings", len(report.Warnings)).Msg("catch-up finished")
	}

	return report, nil
}

// catchUpRule emits all due entries of one rule.
func (l *Ledger) catchUpRule(ctx context.Context, rule models.RecurringRule, today time.Time) ([]models.Entry, *RuleWarning, error) {
	var emitted []models.Entry

	last := types.DateIn(rule.LastProcessedPeriod, rule.DayOfMonth)
	for next := types.AddMonthsClamped(last, 1, rule.DayOfMonth); !next.After(today); next = types.AddMonthsClamped(next, 1, rule.DayOfMonth) {
		if err := ctx.Err(); err != nil {
			return emitted, nil, E(KindStoreUnavailable, "", err)
		}

		entry, err := l.emitRecurrence(ctx, rule, next)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return emitted, &RuleWarning{
					RuleID: rule.ID,
					Period: types.MonthOf(next),
					Reason: err.Error(),
				}, nil
			}

			return emitted, nil, err
		}

		if entry != nil {
			emitted = append(emitted, *entry)
			entriesEmitted.Inc()
			l.log.Debug().Str("rule", rule.ID.String()).Str("period", types.MonthOf(next).String()).Str("entry", entry.ID.String()).Msg("recurring entry created")
		}
	}

	return emitted, nil, nil
}

// emitRecurrence writes the entry of a rule for the month of date and
// advances the rule to that month.
//
// If the entry already exists, only the rule is advanced and nil is returned.
func (l *Ledger) emitRecurrence(ctx context.Context, rule models.RecurringRule, date time.Time) (*models.Entry, error) {
	period := types.MonthOf(date)
	key := helpers.Sha256Key(rule.ID, period)

	var entry *models.Entry
	err := l.store.Atomic(ctx, func(tx Store) error {
		e, err := l.recurrenceEntry(ctx, tx, rule, date)
		if err != nil {
			return err
		}
		e.RecurrenceKey = &key

		written, err := tx.WriteEntries(ctx, []models.Entry{e})
		if err != nil {
			return err
		}

		if err := applyAssetContributions(ctx, tx, written, 1); err != nil {
			return err
		}

		if err := advanceRule(ctx, tx, rule.ID, period); err != nil {
			return err
		}

		entry = &written[0]
		return nil
	})

	if errors.Is(err, models.ErrRecurrenceAlreadyEmitted) {
		return nil, advanceRule(ctx, l.store, rule.ID, period)
	}

	return entry, err
}

// recurrenceEntry builds the entry of a rule for a date. Credit rules fall
// back to direct payment when their account has no credit enabled anymore.
func (l *Ledger) recurrenceEntry(ctx context.Context, tx Store, rule models.RecurringRule, date time.Time) (models.Entry, error) {
	entry := models.Entry{
		Amount:          rule.Amount,
		Kind:            rule.Kind,
		CategoryName:    rule.CategoryName,
		CategoryGroup:   rule.CategoryGroup,
		Description:     rule.Description,
		OccurredOn:      date,
		AccountID:       rule.AccountID,
		CounterpartyID:  rule.CounterpartyID,
		IsDebt:          rule.IsDebt,
		PaymentMethod:   models.PaymentDirect,
		RecurringRuleID: &rule.ID,
	}

	account, err := l.lookupAccount(ctx, tx, rule.AccountID)
	if err != nil {
		return entry, err
	}

	if rule.PaymentMethod == models.PaymentCredit && account != nil && account.HasCredit {
		entry.PaymentMethod = models.PaymentCredit
	}

	if err := assignInvoicePeriod(&entry, account); err != nil {
		return entry, E(KindInvalidArgument, "", err)
	}

	return entry, nil
}

// advanceRule moves the last processed period of a rule forward to period.
// It never moves backwards.
func advanceRule(ctx context.Context, s Store, id uuid.UUID, period types.Month) error {
	_, err := s.UpdateRule(ctx, id, func(r *models.RecurringRule) {
		if r.LastProcessedPeriod.Before(period) {
			r.LastProcessedPeriod = period
		}
	})
	return err
}
