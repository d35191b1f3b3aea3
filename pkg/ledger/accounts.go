package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/pkg/models"
	"golang.org/x/exp/slices"
)

var errDefaultAccountRequired = errors.New("there must be a default account, set another account as default instead")

// CreateAccount creates an account. The first account always is the
// default account. A new default account replaces the previous one.
func (l *Ledger) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	const op = "create account"

	account.ID = uuid.Nil

	var result models.Account
	err := l.store.Atomic(ctx, func(tx Store) error {
		accounts, err := tx.ListAccounts(ctx)
		if err != nil {
			return err
		}

		if len(accounts) == 0 {
			account.IsDefault = true
		}

		if account.IsDefault {
			if err := clearDefault(ctx, tx, accounts, uuid.Nil); err != nil {
				return err
			}
		}

		result, err = tx.WriteAccount(ctx, account)
		return err
	})
	if err != nil {
		return models.Account{}, wrap(op, err)
	}

	return result, nil
}

// UpdateAccount applies the patch to an account.
//
// Making an account the default clears the previous default. The default
// flag cannot be removed from the default account directly, another
// account needs to be made the default instead.
//
// Changes to the closing day only apply to entries created afterwards.
func (l *Ledger) UpdateAccount(ctx context.Context, id uuid.UUID, patch AccountPatch) (models.Account, error) {
	const op = "update account"

	var result models.Account
	err := l.store.Atomic(ctx, func(tx Store) error {
		current, err := tx.GetAccount(ctx, id)
		if err != nil {
			return err
		}

		updated := current
		patch(&updated)
		updated.DefaultModel = current.DefaultModel

		if current.IsDefault && !updated.IsDefault {
			return E(KindInvariantViolation, "", errDefaultAccountRequired)
		}

		if !current.IsDefault && updated.IsDefault {
			accounts, err := tx.ListAccounts(ctx)
			if err != nil {
				return err
			}

			if err := clearDefault(ctx, tx, accounts, id); err != nil {
				return err
			}
		}

		result, err = tx.UpdateAccount(ctx, id, func(a *models.Account) {
			*a = updated
		})
		return err
	})
	if err != nil {
		return models.Account{}, wrap(op, err)
	}

	return result, nil
}

// SetDefaultAccount makes the account the default account.
func (l *Ledger) SetDefaultAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	account, err := l.UpdateAccount(ctx, id, func(a *models.Account) {
		a.IsDefault = true
	})
	if err != nil {
		return models.Account{}, wrap("set default account", err)
	}

	return account, nil
}

// DeleteAccount deletes an account that has no entries and no recurring rules.
//
// When the default account is deleted, the oldest remaining account becomes
// the default. The last account cannot be deleted.
func (l *Ledger) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	const op = "delete account"

	err := l.store.Atomic(ctx, func(tx Store) error {
		account, err := tx.GetAccount(ctx, id)
		if err != nil {
			return err
		}

		entries, err := tx.ListEntries(ctx, EntryFilter{AccountID: &id, Limit: 1})
		if err != nil {
			return err
		}

		rules, err := tx.ListRules(ctx, RuleFilter{AccountID: &id})
		if err != nil {
			return err
		}

		if len(entries) > 0 || len(rules) > 0 {
			return E(KindInvariantViolation, "", ErrAccountInUse)
		}

		if account.IsDefault {
			accounts, err := tx.ListAccounts(ctx)
			if err != nil {
				return err
			}

			others := slices.DeleteFunc(accounts, func(a models.Account) bool {
				return a.ID == id
			})
			if len(others) == 0 {
				return E(KindInvariantViolation, "", ErrSoleDefaultAccount)
			}

			oldest := slices.MinFunc(others, func(a, b models.Account) int {
				return a.CreatedAt.Compare(b.CreatedAt)
			})

			_, err = tx.UpdateAccount(ctx, oldest.ID, func(a *models.Account) {
				a.IsDefault = true
			})
			if err != nil {
				return err
			}
		}

		return tx.DeleteAccount(ctx, id)
	})

	return wrap(op, err)
}

// clearDefault removes the default flag from all accounts except keep.
func clearDefault(ctx context.Context, tx Store, accounts []models.Account, keep uuid.UUID) error {
	for _, a := range accounts {
		if !a.IsDefault || a.ID == keep {
			continue
		}

		_, err := tx.UpdateAccount(ctx, a.ID, func(a *models.Account) {
			a.IsDefault = false
		})
		if err != nil {
			return err
		}
	}

	return nil
}
