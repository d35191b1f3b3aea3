package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/pkg/models"
	"golang.org/x/exp/slices"
)

// The aggregations are computed from the entries only. They do not modify
// anything and can run at any time.

// AccountBalance returns the realized balance of an account as of now.
//
// Income adds to the balance, expenses and investments subtract from it.
// Future receipts and entries after now are not included. Credit charges
// only affect the balance through the invoice payment, settled debts are
// netted out.
func AccountBalance(entries []models.Entry, accountID uuid.UUID, now time.Time) types.Money {
	var balance types.Money
	for _, e := range entries {
		if !sameID(e.AccountID, &accountID) || !types.SameDayOrBefore(e.OccurredOn, now) || e.IsFutureReceipt {
			continue
		}

		if e.Kind == models.KindIncome {
			balance += e.Amount
			continue
		}

		if e.PaymentMethod == models.PaymentCredit || (e.IsDebt && e.DebtSettled) {
			continue
		}

		balance -= e.Amount
	}

	return balance
}

// OpenInvoiceTotal returns the unsettled amount of an account's invoice for the period.
func OpenInvoiceTotal(entries []models.Entry, accountID uuid.UUID, period types.Month) types.Money {
	var total types.Money
	for _, e := range entries {
		if isOpenCharge(e, accountID) && e.InvoicePeriod.Equal(period) {
			total += e.Amount
		}
	}
	return total
}

// UnpaidInvoicesTotal returns the unsettled amount of all invoices of an account.
func UnpaidInvoicesTotal(entries []models.Entry, accountID uuid.UUID) types.Money {
	var total types.Money
	for _, e := range entries {
		if isOpenCharge(e, accountID) {
			total += e.Amount
		}
	}
	return total
}

func isOpenCharge(e models.Entry, accountID uuid.UUID) bool {
	return e.PaymentMethod == models.PaymentCredit &&
		e.InvoicePeriod != nil &&
		!e.IsInvoiceSettled &&
		sameID(e.AccountID, &accountID)
}

// CounterpartyBalance returns what a counterparty owes. Unsettled debt
// expenses add to it, unsettled debt income subtracts from it. A negative
// balance is owed to the counterparty.
func CounterpartyBalance(entries []models.Entry, counterpartyID uuid.UUID) types.Money {
	var balance types.Money
	for _, e := range entries {
		if !e.IsDebt || e.DebtSettled || !sameID(e.CounterpartyID, &counterpartyID) {
			continue
		}

		switch e.Kind {
		case models.KindExpense:
			balance += e.Amount
		case models.KindIncome:
			balance -= e.Amount
		}
	}
	return balance
}

// BudgetSpent returns the expenses of the limit's category group in the month of now.
func BudgetSpent(entries []models.Entry, categoryGroup string, now time.Time) types.Money {
	month := types.MonthOf(now)

	var spent types.Money
	for _, e := range entries {
		if e.Kind != models.KindExpense || e.CategoryGroup != categoryGroup || !month.Contains(e.OccurredOn) {
			continue
		}

		if e.IsDebt && e.DebtSettled {
			continue
		}

		spent += e.Amount
	}
	return spent
}

// BudgetRemaining returns how much of the limit is left in the month of now.
func BudgetRemaining(entries []models.Entry, limit models.BudgetLimit, now time.Time) types.Money {
	return limit.LimitAmount - BudgetSpent(entries, limit.CategoryGroup, now)
}

// FutureReceiptTotal returns the income that is not realized yet.
func FutureReceiptTotal(entries []models.Entry) types.Money {
	var total types.Money
	for _, e := range entries {
		if e.Kind == models.KindIncome && e.IsFutureReceipt {
			total += e.Amount
		}
	}
	return total
}

// Invoice is the invoice of a credit account for one period.
type Invoice struct {
	Period      types.Month `json:"period"`
	Total       types.Money `json:"total"`   // All charges
	Open        types.Money `json:"open"`    // Charges not settled yet
	Settled     bool        `json:"settled"` // All charges are settled
	Entries     int         `json:"entries"` // Number of charges
	ClosingDate time.Time   `json:"closingDate"`
	DueDate     time.Time   `json:"dueDate"`
}

// Invoices returns the invoices of an account, sorted by period.
func Invoices(entries []models.Entry, account models.Account) []Invoice {
	byPeriod := make(map[string]*Invoice)
	for _, e := range entries {
		if e.PaymentMethod != models.PaymentCredit || e.InvoicePeriod == nil || !sameID(e.AccountID, &account.ID) {
			continue
		}

		invoice, ok := byPeriod[e.InvoicePeriod.String()]
		if !ok {
			invoice = &Invoice{
				Period:      *e.InvoicePeriod,
				ClosingDate: InvoiceClosingDate(*e.InvoicePeriod, account.ClosingDay),
				DueDate:     InvoiceDueDate(*e.InvoicePeriod, account.ClosingDay, account.DueDay),
			}
			byPeriod[e.InvoicePeriod.String()] = invoice
		}

		invoice.Total += e.Amount
		invoice.Entries++
		if !e.IsInvoiceSettled {
			invoice.Open += e.Amount
		}
	}

	invoices := make([]Invoice, 0, len(byPeriod))
	for _, invoice := range byPeriod {
		invoice.Settled = invoice.Open == 0
		invoices = append(invoices, *invoice)
	}

	slices.SortFunc(invoices, func(a, b Invoice) int {
		return time.Time(a.Period).Compare(time.Time(b.Period))
	})

	return invoices
}

// Snapshot is the state aggregations are computed from.
type Snapshot struct {
	Entries        []models.Entry
	Accounts       []models.Account
	Counterparties []models.Counterparty
	BudgetLimits   []models.BudgetLimit
}

type AccountSummary struct {
	Account        models.Account `json:"account"`
	Balance        types.Money    `json:"balance"`
	InvoicePeriod  *types.Month   `json:"invoicePeriod"` // Current invoice period for credit accounts
	OpenInvoice    types.Money    `json:"openInvoice"`   // Open amount of the current invoice
	UnpaidInvoices types.Money    `json:"unpaidInvoices"`
}

type CounterpartySummary struct {
	Counterparty models.Counterparty `json:"counterparty"`
	Balance      types.Money         `json:"balance"`
}

type BudgetSummary struct {
	Limit     models.BudgetLimit `json:"limit"`
	Spent     types.Money        `json:"spent"`
	Remaining types.Money        `json:"remaining"`
}

// Summary aggregates a snapshot as of one point in time.
type Summary struct {
	Month                 types.Month           `json:"month"`
	Accounts              []AccountSummary      `json:"accounts"`
	Counterparties        []CounterpartySummary `json:"counterparties"`
	Budgets               []BudgetSummary       `json:"budgets"`
	FutureReceipts        types.Money           `json:"futureReceipts"`
	NetWorth              types.Money           `json:"netWorth"`              // Sum of all account balances
	NetWorthAfterInvoices types.Money           `json:"netWorthAfterInvoices"` // Net worth minus all unpaid invoices
}

// Summarize computes all aggregations of the snapshot as of now.
func Summarize(s Snapshot, now time.Time) Summary {
	summary := Summary{
		Month:          types.MonthOf(now),
		Accounts:       make([]AccountSummary, 0, len(s.Accounts)),
		Counterparties: make([]CounterpartySummary, 0, len(s.Counterparties)),
		Budgets:        make([]BudgetSummary, 0, len(s.BudgetLimits)),
		FutureReceipts: FutureReceiptTotal(s.Entries),
	}

	var unpaid types.Money
	for _, account := range s.Accounts {
		as := AccountSummary{
			Account:        account,
			Balance:        AccountBalance(s.Entries, account.ID, now),
			UnpaidInvoices: UnpaidInvoicesTotal(s.Entries, account.ID),
		}

		if account.HasCredit {
			period := InvoicePeriod(now, account.ClosingDay)
			as.InvoicePeriod = &period
			as.OpenInvoice = OpenInvoiceTotal(s.Entries, account.ID, period)
		}

		summary.NetWorth += as.Balance
		unpaid += as.UnpaidInvoices
		summary.Accounts = append(summary.Accounts, as)
	}
	summary.NetWorthAfterInvoices = summary.NetWorth - unpaid

	for _, c := range s.Counterparties {
		summary.Counterparties = append(summary.Counterparties, CounterpartySummary{
			Counterparty: c,
			Balance:      CounterpartyBalance(s.Entries, c.ID),
		})
	}

	for _, limit := range s.BudgetLimits {
		spent := BudgetSpent(s.Entries, limit.CategoryGroup, now)
		summary.Budgets = append(summary.Budgets, BudgetSummary{
			Limit:     limit,
			Spent:     spent,
			Remaining: limit.LimitAmount - spent,
		})
	}

	return summary
}

// Snapshot loads everything aggregations are computed from.
func (l *Ledger) Snapshot(ctx context.Context) (Snapshot, error) {
	const op = "snapshot"

	var s Snapshot
	err := l.store.Atomic(ctx, func(tx Store) error {
		var err error
		if s.Entries, err = tx.ListEntries(ctx, EntryFilter{}); err != nil {
			return err
		}

		if s.Accounts, err = tx.ListAccounts(ctx); err != nil {
			return err
		}

		if s.Counterparties, err = tx.ListCounterparties(ctx); err != nil {
			return err
		}

		s.BudgetLimits, err = tx.ListBudgetLimits(ctx)
		return err
	})
	if err != nil {
		return Snapshot{}, wrap(op, err)
	}

	return s, nil
}

// Summary loads a snapshot and summarizes it as of today.
func (l *Ledger) Summary(ctx context.Context) (Summary, error) {
	s, err := l.Snapshot(ctx)
	if err != nil {
		return Summary{}, err
	}

	return Summarize(s, l.now()), nil
}
