package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/pkg/models"
)

// DeleteScope selects which entries are deleted together with an installment.
type DeleteScope string

const (
	ScopeSingle DeleteScope = "single" // Only the entry itself
	ScopeGroup  DeleteScope = "group"  // All installments of the entry's group
)

var errSettledEntryDelete = errors.New("entries settled by an invoice payment cannot be deleted, delete the payment first")

// DeleteEntry deletes an entry and reverses everything derived from it.
//
// Deleting an investment removes its amount from the asset, deleting the
// asset once it has no value left. Deleting an invoice payment marks all
// entries it settled as unsettled again. With ScopeGroup, every installment
// of the entry's group is deleted. Either all of this happens or nothing.
func (l *Ledger) DeleteEntry(ctx context.Context, id uuid.UUID, scope DeleteScope) ([]uuid.UUID, error) {
	const op = "delete entry"

	if scope == "" {
		scope = ScopeSingle
	}

	if scope != ScopeSingle && scope != ScopeGroup {
		return nil, E(KindInvalidArgument, op, ErrDeleteScopeInvalid)
	}

	var deleted []uuid.UUID
	err := l.store.Atomic(ctx, func(tx Store) error {
		entry, err := tx.GetEntry(ctx, id)
		if err != nil {
			return err
		}

		targets := []models.Entry{entry}
		if scope == ScopeGroup && entry.InstallmentGroupID != nil {
			targets, err = tx.ListEntries(ctx, EntryFilter{InstallmentGroupID: entry.InstallmentGroupID})
			if err != nil {
				return err
			}
		}

		for _, target := range targets {
			if err := reverseEntry(ctx, tx, target); err != nil {
				return err
			}

			if err := tx.DeleteEntry(ctx, target.ID); err != nil {
				return err
			}
			deleted = append(deleted, target.ID)
		}

		return nil
	})
	if err != nil {
		return nil, wrap(op, err)
	}

	l.log.Debug().Str("entry", id.String()).Str("scope", string(scope)).Int("deleted", len(deleted)).Msg("entries deleted")
	return deleted, nil
}

// reverseEntry undoes the changes an entry caused on other records.
func reverseEntry(ctx context.Context, tx Store, entry models.Entry) error {
	if entry.IsInvoiceSettled {
		return E(KindInvariantViolation, "", errSettledEntryDelete)
	}

	if entry.IsInvoicePayment {
		for _, relatedID := range entry.RelatedEntryIDs {
			_, err := tx.UpdateEntry(ctx, relatedID, func(e *models.Entry) {
				e.IsInvoiceSettled = false
			})
			if err != nil {
				return err
			}
		}
	}

	return applyAssetContributions(ctx, tx, []models.Entry{entry}, -1)
}

// ToggleDebtSettlement flips the settlement of a debt entry.
func (l *Ledger) ToggleDebtSettlement(ctx context.Context, id uuid.UUID) (models.Entry, error) {
	const op = "toggle debt settlement"

	var result models.Entry
	err := l.store.Atomic(ctx, func(tx Store) error {
		entry, err := tx.GetEntry(ctx, id)
		if err != nil {
			return err
		}

		if !entry.IsDebt {
			return E(KindInvariantViolation, "", ErrEntryNotDebt)
		}

		result, err = tx.UpdateEntry(ctx, id, func(e *models.Entry) {
			e.DebtSettled = !e.DebtSettled
		})
		return err
	})
	if err != nil {
		return models.Entry{}, wrap(op, err)
	}

	return result, nil
}

// InvoicePayment is a request to pay the invoice of a credit account.
type InvoicePayment struct {
	AccountID uuid.UUID   // The credit account
	Period    types.Month // The invoice period

	// EntryIDs are the entries to settle. If empty, all unsettled entries of
	// the invoice are settled.
	EntryIDs []uuid.UUID

	FromAccountID *uuid.UUID // Account the payment is made from. Defaults to the credit account.
	Date          time.Time  // Date of the payment. Defaults to today.
}

// PayInvoice creates an invoice payment for the entries and marks them as settled.
func (l *Ledger) PayInvoice(ctx context.Context, req InvoicePayment) (models.Entry, error) {
	const op = "pay invoice"

	if req.Period.IsZero() {
		return models.Entry{}, E(KindInvalidArgument, op, types.ErrInvalidMonth)
	}

	var payment models.Entry
	err := l.store.Atomic(ctx, func(tx Store) error {
		account, err := tx.GetAccount(ctx, req.AccountID)
		if err != nil {
			return err
		}

		if !account.HasCredit {
			return E(KindInvalidArgument, "", ErrCreditAccountRequired)
		}

		from := account.ID
		if req.FromAccountID != nil {
			source, err := tx.GetAccount(ctx, *req.FromAccountID)
			if err != nil {
				return err
			}
			from = source.ID
		}

		entries, err := invoiceEntries(ctx, tx, account, req)
		if err != nil {
			return err
		}

		ids := make(models.EntryIDs, 0, len(entries))
		var total types.Money
		for _, e := range entries {
			ids = append(ids, e.ID)
			total += e.Amount
		}

		date := req.Date
		if date.IsZero() {
			date = l.Today()
		}

		written, err := tx.WriteEntries(ctx, []models.Entry{{
			Amount:           total,
			Kind:             models.KindExpense,
			CategoryName:     "Invoice",
			Description:      fmt.Sprintf("%s invoice %s", account.Name, req.Period),
			OccurredOn:       date,
			AccountID:        &from,
			PaymentMethod:    models.PaymentDirect,
			IsInvoicePayment: true,
			RelatedEntryIDs:  ids,
		}})
		if err != nil {
			return err
		}
		payment = written[0]

		for _, id := range ids {
			_, err := tx.UpdateEntry(ctx, id, func(e *models.Entry) {
				e.IsInvoiceSettled = true
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return models.Entry{}, wrap(op, err)
	}

	l.log.Info().Str("account", req.AccountID.String()).Str("period", req.Period.String()).Str("amount", payment.Amount.String()).Msg("invoice paid")
	return payment, nil
}

// invoiceEntries returns the entries an invoice payment settles.
func invoiceEntries(ctx context.Context, tx Store, account models.Account, req InvoicePayment) ([]models.Entry, error) {
	if len(req.EntryIDs) == 0 {
		unsettled := false
		entries, err := tx.ListEntries(ctx, EntryFilter{
			AccountID:      &account.ID,
			InvoicePeriod:  &req.Period,
			PaymentMethod:  models.PaymentCredit,
			InvoiceSettled: &unsettled,
		})
		if err != nil {
			return nil, err
		}

		if len(entries) == 0 {
			return nil, E(KindInvariantViolation, "", ErrNothingToPay)
		}
		return entries, nil
	}

	ids := make([]uuid.UUID, 0, len(req.EntryIDs))
	seen := make(map[uuid.UUID]bool, len(req.EntryIDs))
	for _, id := range req.EntryIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	entries, err := tx.ListEntries(ctx, EntryFilter{IDs: ids})
	if err != nil {
		return nil, err
	}

	if len(entries) != len(ids) {
		return nil, E(KindNotFound, "", fmt.Errorf("%w entry for %d of the IDs", models.ErrResourceNotFound, len(ids)-len(entries)))
	}

	for _, e := range entries {
		if e.PaymentMethod != models.PaymentCredit || !sameID(e.AccountID, &account.ID) || e.InvoicePeriod == nil || !e.InvoicePeriod.Equal(req.Period) {
			return nil, E(KindInvalidArgument, "", fmt.Errorf("%w: %s", ErrEntryNotInInvoice, e.ID))
		}

		if e.IsInvoiceSettled {
			return nil, E(KindInvariantViolation, "", fmt.Errorf("%w: %s", ErrInvoiceAlreadySettled, e.ID))
		}
	}

	return entries, nil
}
