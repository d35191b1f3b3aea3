package ledger

import (
	"time"

	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/pkg/models"
)

// InvoicePeriod returns the invoice period a credit charge on date belongs to.
//
// Charges on or after the closing day are billed with the next month's
// invoice. A closing day that does not exist in a month is clamped to the
// last day of that month.
func InvoicePeriod(date time.Time, closingDay int) types.Month {
	month := types.MonthOf(date)
	year, m := month.Calendar()

	if date.Day() >= types.ClampDay(year, m, closingDay) {
		return month.AddDate(0, 1)
	}
	return month
}

// InvoiceClosingDate returns the day on which the invoice for the period closes.
func InvoiceClosingDate(period types.Month, closingDay int) time.Time {
	return types.DateIn(period, closingDay)
}

// InvoiceDueDate returns the day on which the invoice for the period is due.
//
// If the due day is after the closing day, the invoice is due in the same
// month, otherwise in the month after. Without a due day, the invoice is due
// when it closes.
func InvoiceDueDate(period types.Month, closingDay, dueDay int) time.Time {
	if dueDay == 0 {
		return InvoiceClosingDate(period, closingDay)
	}

	if dueDay > closingDay {
		return types.DateIn(period, dueDay)
	}
	return types.DateIn(period.AddDate(0, 1), dueDay)
}

// assignInvoicePeriod sets the invoice period for credit entries. Entries
// paid directly never have one.
func assignInvoicePeriod(entry *models.Entry, account *models.Account) error {
	if entry.PaymentMethod != models.PaymentCredit {
		entry.InvoicePeriod = nil
		entry.IsInvoiceSettled = false
		return nil
	}

	if account == nil || !account.HasCredit {
		return ErrCreditAccountRequired
	}

	period := InvoicePeriod(entry.OccurredOn, account.ClosingDay)
	entry.InvoicePeriod = &period
	return nil
}
