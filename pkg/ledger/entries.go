package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/pkg/models"
)

var errInvoicePaymentCreate = errors.New("invoice payments are created by paying an invoice")

// CreateEntries validates the entries and writes them together.
//
// Credit entries are assigned to the invoice period of their date and
// investment entries with an asset add their amount to it.
func (l *Ledger) CreateEntries(ctx context.Context, entries []models.Entry) ([]models.Entry, error) {
	const op = "create entries"

	var written []models.Entry
	err := l.store.Atomic(ctx, func(tx Store) error {
		prepared := make([]models.Entry, 0, len(entries))
		for _, entry := range entries {
			entry, err := l.prepareEntry(ctx, tx, entry)
			if err != nil {
				return err
			}
			prepared = append(prepared, entry)
		}

		var err error
		written, err = tx.WriteEntries(ctx, prepared)
		if err != nil {
			return err
		}

		return applyAssetContributions(ctx, tx, written, 1)
	})
	if err != nil {
		return nil, wrap(op, err)
	}

	return written, nil
}

// prepareEntry checks the references of a new entry and sets the fields
// derived by the ledger.
func (l *Ledger) prepareEntry(ctx context.Context, tx Store, entry models.Entry) (models.Entry, error) {
	if entry.IsInvoicePayment {
		return entry, E(KindInvalidArgument, "", errInvoicePaymentCreate)
	}

	entry.ID = uuid.Nil
	entry.IsInvoiceSettled = false
	entry.RelatedEntryIDs = nil
	entry.RecurrenceKey = nil
	entry.InstallmentGroupID = nil
	entry.InstallmentIndex = 0
	entry.InstallmentTotal = 0
	entry.Normalize()

	if err := checkReferences(ctx, tx, entry); err != nil {
		return entry, err
	}

	account, err := l.lookupAccount(ctx, tx, entry.AccountID)
	if err != nil {
		return entry, err
	}

	if err := assignInvoicePeriod(&entry, account); err != nil {
		return entry, E(KindInvalidArgument, "", err)
	}

	if err := entry.Validate(); err != nil {
		return entry, E(KindInvalidArgument, "", err)
	}

	return entry, nil
}

// UpdateEntry applies the patch to an entry.
//
// The invoice period is recomputed from the result and asset contributions
// are moved by the difference. Invoice payments and the amount, date and
// account of entries they settle cannot be changed. Neither can the amount
// and date of installments.
func (l *Ledger) UpdateEntry(ctx context.Context, id uuid.UUID, patch EntryPatch) (models.Entry, error) {
	const op = "update entry"

	var result models.Entry
	err := l.store.Atomic(ctx, func(tx Store) error {
		current, err := tx.GetEntry(ctx, id)
		if err != nil {
			return err
		}

		if current.IsInvoicePayment {
			return E(KindInvariantViolation, "", ErrInvoicePaymentImmutable)
		}

		updated := current
		patch(&updated)
		updated.Normalize()

		// Fields maintained by the ledger only
		updated.DefaultModel = current.DefaultModel
		updated.IsInvoicePayment = current.IsInvoicePayment
		updated.IsInvoiceSettled = current.IsInvoiceSettled
		updated.RelatedEntryIDs = current.RelatedEntryIDs
		updated.RecurrenceKey = current.RecurrenceKey
		updated.RecurringRuleID = current.RecurringRuleID
		updated.InstallmentGroupID = current.InstallmentGroupID
		updated.InstallmentIndex = current.InstallmentIndex
		updated.InstallmentTotal = current.InstallmentTotal

		if current.IsInvoiceSettled && settlementChanged(current, updated) {
			return E(KindInvariantViolation, "", ErrSettledEntryImmutable)
		}

		if current.InstallmentTotal > 1 && scheduleChanged(current, updated) {
			return E(KindInvariantViolation, "", ErrInstallmentImmutable)
		}

		if err := checkReferences(ctx, tx, updated); err != nil {
			return err
		}

		account, err := l.lookupAccount(ctx, tx, updated.AccountID)
		if err != nil {
			return err
		}

		if err := assignInvoicePeriod(&updated, account); err != nil {
			return E(KindInvalidArgument, "", err)
		}

		if err := updated.Validate(); err != nil {
			return E(KindInvalidArgument, "", err)
		}

		if err := moveAssetContribution(ctx, tx, current, updated); err != nil {
			return err
		}

		result, err = tx.UpdateEntry(ctx, id, func(e *models.Entry) {
			*e = updated
		})
		return err
	})
	if err != nil {
		return models.Entry{}, wrap(op, err)
	}

	return result, nil
}

// scheduleChanged reports if a change breaks the amounts or monthly dates
// of an installment group.
func scheduleChanged(current, updated models.Entry) bool {
	return current.Amount != updated.Amount || !current.OccurredOn.Equal(updated.OccurredOn)
}

// settlementChanged reports if a change affects the invoice payment that
// settled the entry.
func settlementChanged(current, updated models.Entry) bool {
	return current.Amount != updated.Amount ||
		!current.OccurredOn.Equal(updated.OccurredOn) ||
		!sameID(current.AccountID, updated.AccountID) ||
		current.PaymentMethod != updated.PaymentMethod
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// lookupAccount returns the account with the ID, or nil if the ID is nil.
func (l *Ledger) lookupAccount(ctx context.Context, s Store, id *uuid.UUID) (*models.Account, error) {
	if id == nil {
		return nil, nil
	}

	account, err := s.GetAccount(ctx, *id)
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// checkReferences verifies that the counterparty and asset of an entry exist.
func checkReferences(ctx context.Context, s Store, entry models.Entry) error {
	if entry.CounterpartyID != nil {
		if _, err := s.GetCounterparty(ctx, *entry.CounterpartyID); err != nil {
			return err
		}
	}

	if entry.AssetID != nil {
		if _, err := s.GetAsset(ctx, *entry.AssetID); err != nil {
			return err
		}
	}

	return nil
}

// contribution returns the asset an entry contributes to and the amount.
func contribution(e models.Entry) (*uuid.UUID, types.Money) {
	if e.Kind != models.KindInvestment || e.AssetID == nil {
		return nil, 0
	}
	return e.AssetID, e.Amount
}

// applyAssetContributions adds (sign 1) or removes (sign -1) the amounts of
// investment entries to and from their assets.
func applyAssetContributions(ctx context.Context, tx Store, entries []models.Entry, sign types.Money) error {
	for _, e := range entries {
		assetID, amount := contribution(e)
		if assetID == nil {
			continue
		}

		if err := adjustAsset(ctx, tx, *assetID, amount*sign, sign < 0); err != nil {
			return err
		}
	}

	return nil
}

// moveAssetContribution updates assets when an investment entry changes.
func moveAssetContribution(ctx context.Context, tx Store, current, updated models.Entry) error {
	oldAsset, oldAmount := contribution(current)
	newAsset, newAmount := contribution(updated)

	if oldAsset != nil && newAsset != nil && *oldAsset == *newAsset {
		if oldAmount == newAmount {
			return nil
		}
		return adjustAsset(ctx, tx, *newAsset, newAmount-oldAmount, false)
	}

	if oldAsset != nil {
		if err := adjustAsset(ctx, tx, *oldAsset, oldAmount.Neg(), false); err != nil {
			return err
		}
	}

	if newAsset != nil {
		return adjustAsset(ctx, tx, *newAsset, newAmount, false)
	}

	return nil
}

// adjustAsset changes the invested amount and current value of an asset by
// delta. Values never drop below zero. With removeEmpty, an asset that has
// no value left afterwards is deleted.
func adjustAsset(ctx context.Context, tx Store, id uuid.UUID, delta types.Money, removeEmpty bool) error {
	asset, err := tx.UpdateAsset(ctx, id, func(a *models.Asset) {
		a.Invested = clampZero(a.Invested + delta)
		a.CurrentValue = clampZero(a.CurrentValue + delta)
	})
	if err != nil {
		return err
	}

	if removeEmpty && asset.CurrentValue <= 0 {
		return tx.DeleteAsset(ctx, id)
	}

	return nil
}

func clampZero(m types.Money) types.Money {
	if m < 0 {
		return 0
	}
	return m
}
