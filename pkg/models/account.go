package models

import (
	"strings"

	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// Account represents a store of value, e.g. a bank account. Accounts with
// credit also have a credit card whose charges are billed in invoice periods.
type Account struct {
	DefaultModel
	Name        string      `json:"name" gorm:"uniqueIndex" example:"Checking"`
	IsDefault   bool        `json:"isDefault" example:"true"`
	HasCredit   bool        `json:"hasCredit" example:"false"`
	ClosingDay  int         `json:"closingDay" example:"5"` // Day of the month on which the invoice closes. Charges on or after it go to the next invoice.
	DueDay      int         `json:"dueDay" example:"12"`    // Day of the month the invoice is due. 0 if unset.
	CreditLimit types.Money `json:"creditLimit" example:"2500.00"`
}

func (a *Account) Normalize() {
	a.Name = strings.TrimSpace(a.Name)

	if !a.HasCredit {
		a.ClosingDay = 0
		a.DueDay = 0
		a.CreditLimit = 0
	}
}

func (a Account) Validate() error {
	if a.Name == "" {
		return ErrAccountNameEmpty
	}

	if a.HasCredit && (a.ClosingDay < 1 || a.ClosingDay > 31) {
		return ErrClosingDayInvalid
	}

	if a.DueDay < 0 || a.DueDay > 31 {
		return ErrDueDayInvalid
	}

	if a.CreditLimit < 0 {
		return ErrCreditLimitNegative
	}

	return nil
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Normalize()
	return a.Validate()
}
